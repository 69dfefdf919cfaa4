package errs

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestDirErr_Error 错误输出格式，带与不带底层错误
func TestDirErr_Error(t *testing.T) {
	e := NewEntryOutOfRangeErr()
	assert.Equal(t, "[100004] entry number out of range", e.Error())

	e = NewOpenFileErr().WithErr(os.ErrPermission)
	assert.Equal(t, fmt.Sprintf("[100005] open file failed => %s", os.ErrPermission), e.Error())
	assert.True(t, errors.Is(e, os.ErrPermission))

	assert.Equal(t, "[100013] directory opened read-only", NewReadOnlyErr().Error())
}

// TestGetCode 从包装过的错误中取错误码
func TestGetCode(t *testing.T) {
	wrapped := fmt.Errorf("insert: %w", NewNameTooLongErr())
	assert.Equal(t, int64(NameTooLongErrCode), GetCode(wrapped))
	assert.Equal(t, int64(UnknownErrCode), GetCode(errors.New("plain")))
	assert.Equal(t, int64(UnknownErrCode), GetCode(nil))
}
