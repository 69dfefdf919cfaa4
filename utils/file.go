package utils

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/Trinoooo/teledir/errs"
)

// CheckAndCreateFile 检查父目录，不存在则创建，然后按flag打开文件
func CheckAndCreateFile(filePath string, flag int, perm os.FileMode) (*os.File, error) {
	return CheckAndCreateFileWithDirPerm(filePath, flag, perm, 0770)
}

func CheckAndCreateFileWithDirPerm(filePath string, flag int, perm, dirPerm os.FileMode) (*os.File, error) {
	dir := filepath.Dir(filePath)
	_, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		if err = os.MkdirAll(dir, dirPerm); err != nil {
			return nil, errs.NewMkdirErr().WithErr(err)
		}
	} else if err != nil {
		if errors.Is(err, os.ErrPermission) {
			return nil, errs.NewFileNoPermissionErr().WithErr(err)
		}
		return nil, errs.NewFileStatErr().WithErr(err)
	}

	fd, err := os.OpenFile(filePath, flag, perm)
	if err != nil {
		if errors.Is(err, os.ErrPermission) {
			return nil, errs.NewFileNoPermissionErr().WithErr(err)
		}
		return nil, errs.NewOpenFileErr().WithErr(err)
	}
	return fd, nil
}
