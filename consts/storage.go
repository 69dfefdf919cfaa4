package consts

import (
	"fmt"
	"github.com/mitchellh/go-homedir"
)

const (
	DefaultFileName = "telephone_directory.txt"

	// Header 数据文件首行，每次初始化时写入，不是数据记录
	Header = "NAME                    NUMBER\n"

	NameColumnWidth = 20 // 名字列宽，不足部分用空格补齐
	MaxNameLength   = 19 // 名字最大字节数
	MaxNumberLength = 10 // 号码最大字节数
)

func init() {
	home, _ := homedir.Dir()
	BaseDir = fmt.Sprintf("%s/teledir", home)
	DefaultConfigPath = fmt.Sprintf("%s/config", BaseDir)
}

var (
	BaseDir           string
	DefaultConfigPath string
	TmpDir            = "/tmp/teledir"
)
