package menu

import (
	"fmt"

	"github.com/Trinoooo/teledir/consts"
	"github.com/Trinoooo/teledir/errs"
	"github.com/luci/go-render/render"
	"go.uber.org/zap"
)

type HandleFunc func(cmd *Command) error

type MiddlewareFunc func(handleFn HandleFunc) HandleFunc

func LogMw(handleFn HandleFunc) HandleFunc {
	return func(cmd *Command) error {
		menuLogger.Debug("cmd", zap.String(consts.LogFieldOp, cmd.Choice.String()), zap.String(consts.LogFieldValue, render.Render(cmd)))
		err := handleFn(cmd)
		if err != nil {
			menuLogger.Warn("cmd failed", zap.String(consts.LogFieldOp, cmd.Choice.String()), zap.Int64("code", errs.GetCode(err)), zap.Error(err))
		}
		return err
	}
}

// RecoverMw handler中的panic转成错误返回，菜单循环继续
func RecoverMw(handleFn HandleFunc) HandleFunc {
	return func(cmd *Command) (err error) {
		defer func() {
			if r := recover(); r != nil {
				e := errs.NewUnknownErr().WithErr(fmt.Errorf("panic: %v", r))
				menuLogger.Error(e.Error(), zap.String(consts.LogFieldOp, cmd.Choice.String()), zap.Stack("stack"))
				err = e
			}
		}()
		return handleFn(cmd)
	}
}
