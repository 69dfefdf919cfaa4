package directory

import (
	"strings"
	"testing"

	"github.com/Trinoooo/teledir/consts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadIndex 行位置从表头之后开始累计
func TestLoadIndex(t *testing.T) {
	a := "Alice               5551234\n"
	b := "Bob                 9\n"
	index, size, err := loadIndex(strings.NewReader(consts.Header + a + b))
	require.NoError(t, err)

	h := int64(len(consts.Header))
	require.Len(t, index, 2)
	assert.Equal(t, &lpos{start: h, end: h + int64(len(a))}, index[0])
	assert.Equal(t, &lpos{start: h + int64(len(a)), end: h + int64(len(a)+len(b))}, index[1])
	assert.Equal(t, h+int64(len(a)+len(b)), size)
}

// TestLoadIndex_HeaderOnly 只有表头时索引为空
func TestLoadIndex_HeaderOnly(t *testing.T) {
	index, size, err := loadIndex(strings.NewReader(consts.Header))
	require.NoError(t, err)
	assert.Empty(t, index)
	assert.Equal(t, int64(len(consts.Header)), size)
}
