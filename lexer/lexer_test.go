package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrimStartCount(t *testing.T) {
	rest, n := TrimStartCount("   abc")
	assert.Equal(t, "abc", rest)
	assert.Equal(t, 3, n)

	rest, n = TrimStartCount("abc")
	assert.Equal(t, "abc", rest)
	assert.Equal(t, 0, n)
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank("   \t"))
	assert.False(t, IsBlank("  x "))
}

func TestScanIdent(t *testing.T) {
	assert.Equal(t, 4, ScanIdent("word rest"))
	assert.Equal(t, 8, ScanIdent("B_ASCII_ x"))
	assert.Equal(t, 1, ScanIdent("_"))
}

func TestScanString(t *testing.T) {
	content, length, ok := ScanString(`"hello" rest`)
	assert.True(t, ok)
	assert.Equal(t, "hello", content)
	assert.Equal(t, 7, length)

	_, _, ok = ScanString(`"unterminated`)
	assert.False(t, ok)

	content, length, ok = ScanString(`""`)
	assert.True(t, ok)
	assert.Equal(t, "", content)
	assert.Equal(t, 2, length)
}

func TestIdentStartAndCont(t *testing.T) {
	assert.True(t, IsIdentStart('_'))
	assert.True(t, IsIdentStart('a'))
	assert.False(t, IsIdentStart('9'))
	assert.True(t, IsIdentCont('9'))
}
