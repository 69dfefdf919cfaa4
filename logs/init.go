package logs

import (
	"os"
	"path/filepath"

	"github.com/Trinoooo/teledir/consts"
	"github.com/Trinoooo/teledir/utils"
	"go.uber.org/zap"
)

// Logger 全局日志
// 控制台输出留给菜单交互，生产环境日志写到 consts.TmpDir 下的文件
var Logger *zap.Logger

func init() {
	var err error
	option := zap.AddCaller()
	if utils.IsTest() {
		Logger, err = zap.NewDevelopment(option)
	} else {
		Logger, err = newFileLogger(option)
		if err != nil {
			Logger, err = zap.NewProduction(option)
		}
	}

	if err != nil {
		panic(err)
	}
}

func newFileLogger(options ...zap.Option) (*zap.Logger, error) {
	if err := os.MkdirAll(consts.TmpDir, 0770); err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{filepath.Join(consts.TmpDir, "teledir.log")}
	cfg.ErrorOutputPaths = cfg.OutputPaths
	return cfg.Build(options...)
}

// Component 带公共字段的子日志
func Component(name string) *zap.Logger {
	return Logger.With(zap.String(consts.LogFieldComponent, name))
}
