package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Trinoooo/teledir/config"
	"github.com/Trinoooo/teledir/consts"
	"github.com/Trinoooo/teledir/directory"
	"github.com/Trinoooo/teledir/errs"
	"github.com/Trinoooo/teledir/interactive/menu"
	"github.com/Trinoooo/teledir/logs"
	"github.com/Trinoooo/teledir/metrics"
	"github.com/chzyer/readline"
	pkgerrors "github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var (
	flagFile = &cli.StringFlag{
		Name:    "file",
		Aliases: []string{"f"},
		Usage:   "directory file path, recreated on every start.",
		EnvVars: []string{consts.File},
	}
	flagConfig = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Value:   consts.DefaultConfigPath,
		Usage:   "directory containing config.yaml.",
		EnvVars: []string{consts.Config},
	}
	flagPushGateway = &cli.StringFlag{
		Name:    "push-gateway",
		Usage:   "prometheus pushgateway url, empty disables pushing.",
		EnvVars: []string{consts.PushGateway},
	}
	flagSync = &cli.BoolFlag{
		Name:    "sync",
		Usage:   "fsync the directory file after every change.",
		EnvVars: []string{consts.Sync},
	}
	flagNoColor = &cli.BoolFlag{
		Name:    "no-color",
		Usage:   "print errors without ansi colors.",
		EnvVars: []string{consts.NoColor},
	}
)

type Wrapper struct {
	app *cli.App
}

func NewWrapper() *Wrapper {
	wrapper := &Wrapper{
		app: &cli.App{
			Name:    "teledir",
			Usage:   "a telephone directory kept in a flat text file",
			Version: "0.1.0",
		},
	}
	wrapper.modifyDefaultHelp()
	wrapper.withFlags()
	wrapper.withAction()
	wrapper.withCommands()
	wrapper.withAuthor()
	return wrapper
}

func (wrapper *Wrapper) Run(args []string) error {
	return wrapper.app.Run(args)
}

func (wrapper *Wrapper) modifyDefaultHelp() {
	cli.HelpFlag = &cli.BoolFlag{
		Name: "help",
	}
	cli.AppHelpTemplate = consts.HelpTemplate
}

func (wrapper *Wrapper) withFlags() {
	wrapper.app.Flags = []cli.Flag{
		flagFile,
		flagConfig,
		flagPushGateway,
		flagSync,
		flagNoColor,
	}
}

// withAction 默认动作：重建电话簿文件并进入交互菜单
func (wrapper *Wrapper) withAction() {
	wrapper.app.Action = func(ctx *cli.Context) error {
		cfg, err := loadConfig(ctx)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}

		helper := metrics.NewHelper()
		store, err := directory.Open(cfg.Directory.Path, storeOptions(cfg).SetObserver(helper))
		if err != nil {
			logs.Logger.Error("open directory failed", zap.String(consts.LogFieldPath, cfg.Directory.Path), zap.Error(err))
			return cli.Exit(fmt.Sprintf("Unable to create the file. %s", err), 1)
		}

		if err = helper.StartPush(cfg.Metrics.PushGateway, cfg.Metrics.PushInterval); err != nil {
			_ = store.Close()
			return cli.Exit(err.Error(), 1)
		}
		defer helper.Stop()

		if err = os.MkdirAll(filepath.Dir(cfg.Shell.HistoryFile), 0770); err != nil {
			logs.Logger.Warn("create history dir failed", zap.String(consts.LogFieldPath, cfg.Shell.HistoryFile), zap.Error(err))
		}

		input, err := readline.NewEx(&readline.Config{
			HistoryFile: cfg.Shell.HistoryFile,
			AutoComplete: readline.NewPrefixCompleter(
				readline.PcItem("1"),
				readline.PcItem("2"),
				readline.PcItem("3"),
				readline.PcItem("4"),
			),
		})
		if err != nil {
			_ = store.Close()
			return cli.Exit(err.Error(), 1)
		}
		defer input.Close()

		return menu.New(store, input, input.Stdout(), menu.WithColor(cfg.Shell.Color)).Run()
	}
}

func (wrapper *Wrapper) withCommands() {
	wrapper.app.Commands = []*cli.Command{
		{
			Name:   "show",
			Usage:  "print the entries of an existing directory file without recreating it.",
			Action: show,
		},
	}
}

func (wrapper *Wrapper) withAuthor() {
	wrapper.app.Authors = []*cli.Author{
		{
			Name:  "Trino",
			Email: "sujun.trinoooo@gmail.com",
		},
	}
}

// show 只读展示已有电话簿，编号与菜单中的编号一致
func show(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	store, err := directory.Load(cfg.Directory.Path, storeOptions(cfg).SetReadOnly(true))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer store.Close()

	records, err := store.Entries()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	w := ctx.App.Writer
	_, _ = fmt.Fprintf(w, "    %s", consts.Header)
	for i, r := range records {
		_, _ = fmt.Fprintf(w, "%-3d %s\n", i+1, r)
	}
	return nil
}

// loadConfig 读取配置文件，命令行参数和环境变量覆盖配置文件
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	v, err := config.Load(ctx.String(flagConfig.Name))
	if err != nil {
		return nil, err
	}

	if ctx.IsSet(flagFile.Name) {
		v.Set(config.KeyDirectoryPath, ctx.String(flagFile.Name))
	}
	if ctx.IsSet(flagPushGateway.Name) {
		v.Set(config.KeyMetricsGateway, ctx.String(flagPushGateway.Name))
	}
	if ctx.IsSet(flagSync.Name) {
		v.Set(config.KeyDirectorySync, ctx.Bool(flagSync.Name))
	}
	if ctx.Bool(flagNoColor.Name) {
		v.Set(config.KeyShellColor, false)
	}

	cfg, err := config.New(v)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "build config, code %d", errs.GetCode(err))
	}
	return cfg, nil
}

func storeOptions(cfg *config.Config) *directory.Options {
	return directory.NewOptions().
		SetDataPerm(cfg.Directory.FilePerm).
		SetDirPerm(cfg.Directory.DirPerm).
		SetSync(cfg.Directory.Sync)
}
