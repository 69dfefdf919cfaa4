package consts

const (
	File        = "TELEDIR_FILE"         // 电话簿数据文件路径
	Config      = "TELEDIR_CONFIG"       // 配置文件目录
	PushGateway = "TELEDIR_PUSH_GATEWAY" // prometheus pushgateway地址，为空不推送
	Sync        = "TELEDIR_SYNC"         // 每次修改后刷盘
	NoColor     = "TELEDIR_NO_COLOR"     // 关闭控制台颜色
	Env         = "TELEDIR_ENV"          // 运行环境，test为测试环境
	EnvPrefix   = "TELEDIR"              // viper环境变量前缀
	Home        = "HOME"                 // 家目录
)
