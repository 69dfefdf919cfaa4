package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Trinoooo/teledir/consts"
	"github.com/Trinoooo/teledir/directory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func newTestWrapper(out *bytes.Buffer) *Wrapper {
	wrapper := NewWrapper()
	wrapper.app.Writer = out
	wrapper.app.ErrWriter = out
	// 不让 cli.Exit 结束测试进程
	wrapper.app.ExitErrHandler = func(*cli.Context, error) {}
	return wrapper
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var coder cli.ExitCoder
	require.True(t, errors.As(err, &coder), "expect exit coder, got %v", err)
	return coder.ExitCode()
}

// TestShow 展示已有文件的记录，编号从1开始
func TestShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), consts.DefaultFileName)
	store, err := directory.Open(path, nil)
	require.NoError(t, err)
	require.NoError(t, store.Insert("Alice", "5551234"))
	require.NoError(t, store.Insert("Bob", "5555678"))
	require.NoError(t, store.Close())

	out := &bytes.Buffer{}
	err = newTestWrapper(out).Run([]string{"teledir", "--config", t.TempDir(), "--file", path, "show"})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "    "+strings.TrimSuffix(consts.Header, "\n"), lines[0])
	assert.Equal(t, "1   Alice               5551234", lines[1])
	assert.Equal(t, "2   Bob                 5555678", lines[2])
}

// TestShow_ReadOnlyFile 只读文件也能展示，内容不变
func TestShow_ReadOnlyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), consts.DefaultFileName)
	store, err := directory.Open(path, nil)
	require.NoError(t, err)
	require.NoError(t, store.Insert("Alice", "5551234"))
	require.NoError(t, store.Close())
	require.NoError(t, os.Chmod(path, 0440))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	err = newTestWrapper(out).Run([]string{"teledir", "--config", t.TempDir(), "--file", path, "show"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "1   Alice               5551234")

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

// TestShow_Missing 文件不存在时以状态码1退出
func TestShow_Missing(t *testing.T) {
	out := &bytes.Buffer{}
	err := newTestWrapper(out).Run([]string{"teledir", "--config", t.TempDir(), "--file", filepath.Join(t.TempDir(), "missing.txt"), "show"})
	assert.Equal(t, 1, exitCode(t, err))
}

// TestAction_CreateFailed 文件无法创建时以状态码1退出
func TestAction_CreateFailed(t *testing.T) {
	out := &bytes.Buffer{}
	err := newTestWrapper(out).Run([]string{"teledir", "--config", t.TempDir(), "--file", t.TempDir()})
	assert.Equal(t, 1, exitCode(t, err))
	assert.Contains(t, err.Error(), "Unable to create the file.")
}

// TestLoadConfig_BadConfig 配置文件非法时以状态码1退出
func TestLoadConfig_BadConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, writeFile(filepath.Join(dir, "config.yaml"), "directory:\n  file_perm: \"abc\"\n"))

	out := &bytes.Buffer{}
	err := newTestWrapper(out).Run([]string{"teledir", "--config", dir, "--file", filepath.Join(t.TempDir(), "f.txt"), "show"})
	assert.Equal(t, 1, exitCode(t, err))
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0660)
}
