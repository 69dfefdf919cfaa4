package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Trinoooo/teledir/consts"
	"github.com/Trinoooo/teledir/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, dir string, content map[string]any) {
	t.Helper()
	b, err := yaml.Marshal(content)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), b, 0660))
}

// TestLoad_Defaults 没有配置文件时使用默认值
func TestLoad_Defaults(t *testing.T) {
	v, err := Load(t.TempDir())
	require.NoError(t, err)

	cfg, err := New(v)
	require.NoError(t, err)
	assert.Equal(t, consts.DefaultFileName, cfg.Directory.Path)
	assert.Equal(t, os.FileMode(0660), cfg.Directory.FilePerm)
	assert.Equal(t, os.FileMode(0770), cfg.Directory.DirPerm)
	assert.False(t, cfg.Directory.Sync)
	assert.True(t, cfg.Shell.Color)
	assert.Contains(t, cfg.Shell.HistoryFile, "cmd_history_")
	assert.Empty(t, cfg.Metrics.PushGateway)
	assert.Equal(t, 5*time.Second, cfg.Metrics.PushInterval)
}

// TestLoad_File 配置文件覆盖默认值
func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, map[string]any{
		"directory": map[string]any{
			"path":      "/data/phones.txt",
			"file_perm": "0600",
			"sync":      true,
		},
		"shell": map[string]any{
			"color": false,
		},
		"metrics": map[string]any{
			"push_gateway":  "http://127.0.0.1:9091",
			"push_interval": "1s",
		},
	})

	v, err := Load(dir)
	require.NoError(t, err)
	cfg, err := New(v)
	require.NoError(t, err)

	assert.Equal(t, "/data/phones.txt", cfg.Directory.Path)
	assert.Equal(t, os.FileMode(0600), cfg.Directory.FilePerm)
	assert.True(t, cfg.Directory.Sync)
	assert.False(t, cfg.Shell.Color)
	assert.Equal(t, "http://127.0.0.1:9091", cfg.Metrics.PushGateway)
	assert.Equal(t, time.Second, cfg.Metrics.PushInterval)
}

// TestLoad_Env 环境变量优先于配置文件
func TestLoad_Env(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, map[string]any{
		"directory": map[string]any{"path": "from_file.txt"},
	})
	t.Setenv("TELEDIR_DIRECTORY_PATH", "from_env.txt")

	v, err := Load(dir)
	require.NoError(t, err)
	cfg, err := New(v)
	require.NoError(t, err)
	assert.Equal(t, "from_env.txt", cfg.Directory.Path)
}

// TestLoad_Malformed 配置文件格式错误
func TestLoad_Malformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("directory: [\n"), 0660))

	_, err := Load(dir)
	assert.EqualValues(t, errs.LoadConfigErrCode, errs.GetCode(err))
}

// TestNew_BadPerm 权限位不是合法八进制
func TestNew_BadPerm(t *testing.T) {
	for _, perm := range []string{"abc", "0", "1777", "999"} {
		v, err := Load(t.TempDir())
		require.NoError(t, err)
		v.Set(KeyDirectoryFilePerm, perm)

		_, err = New(v)
		assert.EqualValues(t, errs.InvalidParamErrCode, errs.GetCode(err), perm)
	}
}
