package directory

import (
	"os"

	"github.com/Trinoooo/teledir/consts"
	"github.com/Trinoooo/teledir/directory/logs"
	"github.com/Trinoooo/teledir/errs"
	"go.uber.org/zap"
)

// Observer 接收每次操作的结果和当前记录数，由 metrics.Helper 实现
type Observer interface {
	ObserveOp(op string, err error)
	SetRecords(n int)
}

type nopObserver struct{}

func (nopObserver) ObserveOp(string, error) {}

func (nopObserver) SetRecords(int) {}

// Options 电话簿存储选项
type Options struct {
	// dirPerm 数据文件所在目录权限位
	// dataPerm 数据文件权限位
	dataPerm, dirPerm os.FileMode
	// sync 为true时每次修改后立刻刷盘
	sync bool
	// readOnly 只读打开，所有修改操作返回 ReadOnly，只能用于 Load
	readOnly bool
	observer Observer
}

func NewOptions() *Options {
	return &Options{
		dataPerm: 0660,
		dirPerm:  0770,
		observer: nopObserver{},
	}
}

func (opts *Options) SetDataPerm(dataPerm os.FileMode) *Options {
	opts.dataPerm = dataPerm
	return opts
}

func (opts *Options) SetDirPerm(dirPerm os.FileMode) *Options {
	opts.dirPerm = dirPerm
	return opts
}

func (opts *Options) SetSync(sync bool) *Options {
	opts.sync = sync
	return opts
}

func (opts *Options) SetReadOnly(readOnly bool) *Options {
	opts.readOnly = readOnly
	return opts
}

func (opts *Options) SetObserver(observer Observer) *Options {
	if observer == nil {
		observer = nopObserver{}
	}
	opts.observer = observer
	return opts
}

func (opts *Options) check() error {
	if opts.dataPerm == 0 || opts.dataPerm > 0777 {
		e := errs.NewInvalidParamErr()
		logs.Error(e.Error(), zap.String(consts.LogFieldParams, "dataPerm"), zap.Uint32(consts.LogFieldValue, uint32(opts.dataPerm)))
		return e
	}

	if opts.dirPerm == 0 || opts.dirPerm > 0777 {
		e := errs.NewInvalidParamErr()
		logs.Error(e.Error(), zap.String(consts.LogFieldParams, "dirPerm"), zap.Uint32(consts.LogFieldValue, uint32(opts.dirPerm)))
		return e
	}

	return nil
}
