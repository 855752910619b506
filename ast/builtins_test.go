package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuiltinPredicates(t *testing.T) {
	cases := []struct {
		name string
		r    rune
		want bool
	}{
		{"B_ANY", 'x', true},
		{"B_ANY", '\n', true},
		{"B_NEWLINE_CR", '\r', true},
		{"B_NEWLINE_CR", '\n', false},
		{"B_NEWLINE_LF", '\n', true},
		{"B_DOUBLE_QUOTE", '"', true},
		{"B_DOUBLE_QUOTE", '\'', false},
		{"B_ASCII", 'z', true},
		{"B_ASCII", 'é', false},
		{"B_ASCII_ALPHABETIC", 'q', true},
		{"B_ASCII_ALPHABETIC", '9', false},
		{"B_ASCII_ALPHANUMERIC", '9', true},
		{"B_ASCII_DIGIT", '5', true},
		{"B_ASCII_DIGIT", 'a', false},
		{"B_ASCII_HEXDIGIT", 'f', true},
		{"B_ASCII_HEXDIGIT", 'g', false},
		{"B_ASCII_LOWERCASE", 'a', true},
		{"B_ASCII_LOWERCASE", 'A', false},
		{"B_ASCII_UPPERCASE", 'A', true},
		{"B_ASCII_WHITESPACE", ' ', true},
		{"B_ASCII_WHITESPACE", 'x', false},
		{"B_ASCII_PUNCTUATION", '!', true},
		{"B_ASCII_PUNCTUATION", 'a', false},
		{"B_ASCII_GRAPHIC", '~', true},
		{"B_ASCII_GRAPHIC", ' ', false},
		{"B_ASCII_CONTROL", '\x01', true},
		{"B_ASCII_CONTROL", 'a', false},
		{"B_CONTROL", '\x01', true},
		{"B_LOWERCASE", 'à', true},
		{"B_UPPERCASE", 'À', true},
		{"B_NUMERIC", '7', true},
		{"B_WHITESPACE", ' ', true},
	}
	for _, c := range cases {
		pred, ok := Builtins[c.name]
		if !assert.Truef(t, ok, "missing builtin %s", c.name) {
			continue
		}
		assert.Equalf(t, c.want, pred(c.r), "%s(%q)", c.name, c.r)
	}
}

func TestBuiltinTableIsClosed(t *testing.T) {
	assert.False(t, IsValidBuiltin("B_MADE_UP"))
	assert.True(t, IsBuiltinName("B_MADE_UP"))
}
