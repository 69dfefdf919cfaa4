package directory

import (
	"bytes"
	"strings"

	"github.com/Trinoooo/teledir/consts"
	"github.com/Trinoooo/teledir/directory/logs"
	"github.com/Trinoooo/teledir/errs"
	"go.uber.org/zap"
)

// Record 电话簿中的一条记录
// 文件内存储结构（文本行）：
// ---------------------------------------------------------
// | name - 空格补齐到20列 | number - 不补齐，最多10字节 | \n |
// ---------------------------------------------------------
// 名字最多19字节，保证名字和号码之间至少有一个空格
type Record struct {
	Name   string
	Number string
}

// NewRecord 去掉首尾空白后校验长度，超长直接报错，不做截断
func NewRecord(name, number string) (*Record, error) {
	r := &Record{
		Name:   strings.TrimSpace(name),
		Number: strings.TrimSpace(number),
	}
	if err := r.check(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Record) check() error {
	if err := checkField("name", r.Name, consts.MaxNameLength, errs.NewNameTooLongErr); err != nil {
		return err
	}
	return checkField("number", r.Number, consts.MaxNumberLength, errs.NewNumberTooLongErr)
}

func checkField(field, value string, max int, tooLong func() *errs.DirErr) error {
	var e *errs.DirErr
	switch {
	case len(value) == 0, strings.ContainsAny(value, "\r\n"):
		e = errs.NewInvalidParamErr()
	case len(value) > max:
		e = tooLong()
	default:
		return nil
	}

	logs.Warn(e.Error(), zap.String(consts.LogFieldParams, field), zap.String(consts.LogFieldValue, value))
	return e
}

func (r *Record) marshal() []byte {
	buf := make([]byte, 0, consts.NameColumnWidth+len(r.Number)+1)
	buf = append(buf, r.Name...)
	for i := len(r.Name); i < consts.NameColumnWidth; i++ {
		buf = append(buf, ' ')
	}
	buf = append(buf, r.Number...)
	return append(buf, '\n')
}

func (r *Record) unmarshal(line []byte) error {
	line = bytes.TrimSuffix(line, []byte{'\n'})
	if lol := len(line); lol < consts.NameColumnWidth {
		e := errs.NewCorruptErr()
		logs.Error(
			e.Error(),
			zap.String(consts.LogFieldParams, "len(line)"),
			zap.Int(consts.LogFieldValue, lol),
		)
		return e
	}

	r.Name = strings.TrimRight(string(line[:consts.NameColumnWidth]), " ")
	r.Number = string(line[consts.NameColumnWidth:])
	return nil
}

// String 与文件中的行格式一致，不含换行
func (r *Record) String() string {
	return string(bytes.TrimSuffix(r.marshal(), []byte{'\n'}))
}
