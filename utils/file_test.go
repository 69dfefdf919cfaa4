package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Trinoooo/teledir/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestFile struct {
	Description string
	Path        string
	Code        int64
}

func TestCheckAndCreateFile(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0660))

	testList := []*TestFile{
		{
			Description: "dir not exist",
			Path:        filepath.Join(base, "a", "b", "f1"),
			Code:        errs.UnknownErrCode,
		},
		{
			Description: "dir exist",
			Path:        filepath.Join(base, "f2"),
			Code:        errs.UnknownErrCode,
		},
		{
			Description: "parent is a regular file",
			Path:        filepath.Join(blocker, "f3"),
			Code:        errs.OpenFileErrCode,
		},
	}

	for _, item := range testList {
		fd, err := CheckAndCreateFile(item.Path, os.O_CREATE|os.O_RDWR, 0660)
		if item.Code == errs.UnknownErrCode {
			assert.NoError(t, err, item.Description)
			if fd != nil {
				assert.NoError(t, fd.Close())
			}
			continue
		}
		assert.EqualValues(t, item.Code, errs.GetCode(err), item.Description)
		t.Log(item.Description, ":", err)
	}
}

// TestCheckAndCreateFileOpenFailed 父目录存在但文件不能打开
func TestCheckAndCreateFileOpenFailed(t *testing.T) {
	_, err := CheckAndCreateFile(filepath.Join(t.TempDir(), "missing"), os.O_RDONLY, 0660)
	assert.EqualValues(t, errs.OpenFileErrCode, errs.GetCode(err))
}
