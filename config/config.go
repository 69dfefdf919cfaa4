package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Trinoooo/teledir/consts"
	"github.com/Trinoooo/teledir/errs"
	"github.com/Trinoooo/teledir/logs"
	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	KeyDirectoryPath     = "directory.path"
	KeyDirectoryFilePerm = "directory.file_perm"
	KeyDirectoryDirPerm  = "directory.dir_perm"
	KeyDirectorySync     = "directory.sync"
	KeyShellHistoryFile  = "shell.history_file"
	KeyShellColor        = "shell.color"
	KeyMetricsGateway    = "metrics.push_gateway"
	KeyMetricsInterval   = "metrics.push_interval"
)

type Config struct {
	Directory DirectoryConfig
	Shell     ShellConfig
	Metrics   MetricsConfig
}

type DirectoryConfig struct {
	Path     string
	FilePerm os.FileMode
	DirPerm  os.FileMode
	Sync     bool
}

type ShellConfig struct {
	HistoryFile string
	Color       bool
}

type MetricsConfig struct {
	PushGateway  string
	PushInterval time.Duration
}

// Load 读取dir下的config.yaml，文件不存在时使用默认值
// 环境变量 TELEDIR_<SECTION>_<KEY> 优先于配置文件
func Load(dir string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir != "" {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix(consts.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			logs.Logger.Info("config file not found, use defaults", zap.String(consts.LogFieldPath, dir))
			return v, nil
		}

		e := errs.NewLoadConfigErr().WithErr(err)
		logs.Logger.Error(e.Error(), zap.String(consts.LogFieldPath, dir))
		return nil, pkgerrors.Wrapf(e, "config dir %q", dir)
	}

	logs.Logger.Info("config loaded", zap.String(consts.LogFieldPath, v.ConfigFileUsed()))
	return v, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyDirectoryPath, consts.DefaultFileName)
	v.SetDefault(KeyDirectoryFilePerm, "0660")
	v.SetDefault(KeyDirectoryDirPerm, "0770")
	v.SetDefault(KeyDirectorySync, false)
	v.SetDefault(KeyShellHistoryFile, filepath.Join(consts.TmpDir, fmt.Sprintf("cmd_history_%s", time.Now().Format("20060102"))))
	v.SetDefault(KeyShellColor, true)
	v.SetDefault(KeyMetricsGateway, "")
	v.SetDefault(KeyMetricsInterval, 5*time.Second)
}

// New 从viper中取出配置并校验
func New(v *viper.Viper) (*Config, error) {
	filePerm, err := parsePerm(v, KeyDirectoryFilePerm)
	if err != nil {
		return nil, err
	}

	dirPerm, err := parsePerm(v, KeyDirectoryDirPerm)
	if err != nil {
		return nil, err
	}

	return &Config{
		Directory: DirectoryConfig{
			Path:     v.GetString(KeyDirectoryPath),
			FilePerm: filePerm,
			DirPerm:  dirPerm,
			Sync:     v.GetBool(KeyDirectorySync),
		},
		Shell: ShellConfig{
			HistoryFile: v.GetString(KeyShellHistoryFile),
			Color:       v.GetBool(KeyShellColor),
		},
		Metrics: MetricsConfig{
			PushGateway:  v.GetString(KeyMetricsGateway),
			PushInterval: v.GetDuration(KeyMetricsInterval),
		},
	}, nil
}

// parsePerm 权限位按八进制字符串配置，例如 "0660"
func parsePerm(v *viper.Viper, key string) (os.FileMode, error) {
	raw := v.GetString(key)
	perm, err := strconv.ParseUint(raw, 8, 32)
	if err != nil || perm == 0 || perm > 0777 {
		e := errs.NewInvalidParamErr()
		if err != nil {
			e = e.WithErr(err)
		}
		logs.Logger.Error(e.Error(), zap.String(consts.LogFieldParams, key), zap.String(consts.LogFieldValue, raw))
		return 0, e
	}
	return os.FileMode(perm), nil
}
