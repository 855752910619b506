package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna-peggy/peggy/ast"
	"github.com/mna-peggy/peggy/diag"
	"github.com/mna-peggy/peggy/parser"
)

func mustParse(t *testing.T, src string) *ast.Grammar {
	t.Helper()
	g, err := parser.Parse(src)
	require.NoError(t, err)
	return g
}

func TestValidateAcceptsBuiltinsAndExternals(t *testing.T) {
	g := mustParse(t, "main = B_ASCII_ALPHABETIC | E_Custom")
	assert.NoError(t, Validate(g))
}

func TestValidateAcceptsDeclaredChain(t *testing.T) {
	g := mustParse(t, "main = word\nword = B_ASCII_ALPHABETIC+")
	assert.NoError(t, Validate(g))
}

func TestValidateRejectsUndefinedRuleRef(t *testing.T) {
	g := mustParse(t, "main = missing")
	err := Validate(g)
	require.Error(t, err)
	dErr, ok := err.(*diag.Error)
	require.True(t, ok)
	assert.Equal(t, diag.UndefinedRuleRef, dErr.Kind)
}

func TestValidateRejectsInvalidBuiltinName(t *testing.T) {
	g := mustParse(t, "main = B_NOT_REAL")
	err := Validate(g)
	require.Error(t, err)
	dErr, ok := err.(*diag.Error)
	require.True(t, ok)
	assert.Equal(t, diag.InvalidBuiltinName, dErr.Kind)
}

func TestValidateIsIdempotent(t *testing.T) {
	g := mustParse(t, "main = word\nword = B_ASCII_ALPHABETIC+")
	err1 := Validate(g)
	err2 := Validate(g)
	assert.Equal(t, err1, err2)
}
