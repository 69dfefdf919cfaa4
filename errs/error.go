package errs

import (
	"errors"
	"fmt"
)

type DirErr struct {
	msg  string
	code int64
	err  error
}

// Error 输出格式：
// [错误码] 错误类型描述 ( => 包含错误详细描述 )
// 解释：(xxx) 表示可选内容
func (de *DirErr) Error() string {
	details := fmt.Sprintf("[%d] %s", de.code, de.msg)
	if de.err != nil {
		details += fmt.Sprintf(" => %s", de.err)
	}

	return details
}

func (de *DirErr) Code() int64 {
	return de.code
}

func (de *DirErr) Unwrap() error {
	return de.err
}

func (de *DirErr) WithErr(err error) *DirErr {
	de.err = err
	return de
}

func GetCode(err error) int64 {
	var de *DirErr
	if errors.As(err, &de) {
		return de.code
	}
	return UnknownErrCode
}

const (
	UnknownErrCode           = 0
	InvalidParamErrCode      = 100001
	NameTooLongErrCode       = 100002
	NumberTooLongErrCode     = 100003
	EntryOutOfRangeErrCode   = 100004
	OpenFileErrCode          = 100005
	FileNoPermissionErrCode  = 100006
	FileStatErrCode          = 100007
	MkdirErrCode             = 100008
	ReadFileErrCode          = 100009
	WriteFileErrCode         = 100010
	SyncFileErrCode          = 100011
	CloseFileErrCode         = 100012
	ReadOnlyErrCode          = 100013
	TruncateFileErrCode      = 100014
	CreateTempFileErrCode    = 100015
	RenameFileErrCode        = 100016
	RemoveFileErrCode        = 100017
	FileClosedErrCode        = 100018
	CorruptErrCode           = 100019
	ParseIntErrCode          = 100020
	UnsupportedChoiceErrCode = 100021
	LoadConfigErrCode        = 100022
)

func NewUnknownErr() *DirErr {
	return &DirErr{msg: "unknown error", code: UnknownErrCode}
}

func NewInvalidParamErr() *DirErr {
	return &DirErr{msg: "invalid params", code: InvalidParamErrCode}
}

func NewNameTooLongErr() *DirErr {
	return &DirErr{msg: "name too long, at most 19 characters", code: NameTooLongErrCode}
}

func NewNumberTooLongErr() *DirErr {
	return &DirErr{msg: "number too long, at most 10 characters", code: NumberTooLongErrCode}
}

func NewEntryOutOfRangeErr() *DirErr {
	return &DirErr{msg: "entry number out of range", code: EntryOutOfRangeErrCode}
}

func NewOpenFileErr() *DirErr {
	return &DirErr{msg: "open file failed", code: OpenFileErrCode}
}

func NewFileNoPermissionErr() *DirErr {
	return &DirErr{msg: "file no permission", code: FileNoPermissionErrCode}
}

func NewFileStatErr() *DirErr {
	return &DirErr{msg: "file stat failed", code: FileStatErrCode}
}

func NewMkdirErr() *DirErr {
	return &DirErr{msg: "mkdir failed", code: MkdirErrCode}
}

func NewReadFileErr() *DirErr {
	return &DirErr{msg: "read file failed", code: ReadFileErrCode}
}

func NewWriteFileErr() *DirErr {
	return &DirErr{msg: "write file failed", code: WriteFileErrCode}
}

func NewSyncFileErr() *DirErr {
	return &DirErr{msg: "sync file failed", code: SyncFileErrCode}
}

func NewCloseFileErr() *DirErr {
	return &DirErr{msg: "close file failed", code: CloseFileErrCode}
}

func NewReadOnlyErr() *DirErr {
	return &DirErr{msg: "directory opened read-only", code: ReadOnlyErrCode}
}

func NewTruncateFileErr() *DirErr {
	return &DirErr{msg: "truncate file failed", code: TruncateFileErrCode}
}

func NewCreateTempFileErr() *DirErr {
	return &DirErr{msg: "create temp file failed", code: CreateTempFileErrCode}
}

func NewRenameFileErr() *DirErr {
	return &DirErr{msg: "rename file failed", code: RenameFileErrCode}
}

func NewRemoveFileErr() *DirErr {
	return &DirErr{msg: "remove file failed", code: RemoveFileErrCode}
}

func NewFileClosedErr() *DirErr {
	return &DirErr{msg: "file already closed", code: FileClosedErrCode}
}

func NewCorruptErr() *DirErr {
	return &DirErr{msg: "file content corrupt", code: CorruptErrCode}
}

func NewParseIntErr() *DirErr {
	return &DirErr{msg: "strconv parse int failed", code: ParseIntErrCode}
}

func NewUnsupportedChoiceErr() *DirErr {
	return &DirErr{msg: "unsupported menu choice", code: UnsupportedChoiceErrCode}
}

func NewLoadConfigErr() *DirErr {
	return &DirErr{msg: "load config failed", code: LoadConfigErrCode}
}
