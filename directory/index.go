package directory

import (
	"bufio"
	"bytes"
	"errors"
	"io"

	"github.com/Trinoooo/teledir/consts"
	"github.com/Trinoooo/teledir/directory/logs"
	"github.com/Trinoooo/teledir/errs"
	"go.uber.org/zap"
)

// lpos 一条数据行在文件中的位置
// start 行首偏移量
// end 行尾偏移量（包含换行符，不包含在区间内）
type lpos struct {
	start int64
	end   int64
}

func (p *lpos) length() int64 {
	return p.end - p.start
}

// loadIndex 从文件内容重建行索引
// 首行必须是表头，表头不计入索引
// 返回索引和文件总长度
func loadIndex(r io.Reader) ([]*lpos, int64, error) {
	br := bufio.NewReader(r)
	header, err := br.ReadBytes('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, 0, errs.NewReadFileErr().WithErr(err)
	}
	if !bytes.Equal(header, []byte(consts.Header)) {
		e := errs.NewCorruptErr()
		logs.Error(e.Error(), zap.String(consts.LogFieldParams, "header"), zap.ByteString(consts.LogFieldValue, header))
		return nil, 0, e
	}

	start := int64(len(header))
	index := make([]*lpos, 0, 64)
	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			// 最后一行没有换行符说明上次写入不完整
			if line[len(line)-1] != '\n' {
				e := errs.NewCorruptErr()
				logs.Error(e.Error(), zap.String(consts.LogFieldParams, "line"), zap.Int(consts.LogFieldEntry, len(index)+1))
				return nil, 0, e
			}

			var r Record
			if e := r.unmarshal(line); e != nil {
				return nil, 0, e
			}

			index = append(index, &lpos{
				start: start,
				end:   start + int64(len(line)),
			})
			start += int64(len(line))
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, errs.NewReadFileErr().WithErr(err)
		}
	}

	return index, start, nil
}
