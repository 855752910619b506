// Package diag defines the compile-time diagnostic surface shared by the
// lexer, parser and validator: every grammar-source error carries a precise
// location, an underline length, a kind, and an optional hint.
package diag

import (
	"fmt"

	"github.com/samber/oops"

	"github.com/mna-peggy/peggy/ast"
)

// Kind enumerates the compile-time error kinds from spec.md §4.1 and §4.2.
type Kind string

const (
	ExpectedRuleDeclaration      Kind = "ExpectedRuleDeclaration"
	IllegalSymbol                Kind = "IllegalSymbol"
	ExpectedAssignmentOp         Kind = "ExpectedAssignmentOp"
	ReservedRuleName             Kind = "ReservedRuleName"
	DuplicateRuleName            Kind = "DuplicateRuleName"
	ExpectedPatternContent       Kind = "ExpectedPatternContent"
	ExpectedPatternSeparatorOrEnd Kind = "ExpectedPatternSeparatorOrEnd"
	UnterminatedMultiLineComment Kind = "UnterminatedMultiLineComment"
	UnterminatedString           Kind = "UnterminatedString"
	UnterminatedGroup            Kind = "UnterminatedGroup"
	MissingMainRule              Kind = "MissingMainRule"

	// UndefinedRuleRef and InvalidBuiltinName are validator-only kinds
	// (spec.md §4.2).
	UndefinedRuleRef   Kind = "UndefinedRuleRef"
	InvalidBuiltinName Kind = "InvalidBuiltinName"
)

// Error is a single compile-time diagnostic. It carries enough information
// to underline the offending span in the original source.
type Error struct {
	Pos   ast.Pos
	Len   int
	Kind  Kind
	Hint  string
	cause error
}

// New builds an Error at pos spanning length characters.
func New(kind Kind, pos ast.Pos, length int, hint string) *Error {
	return &Error{Pos: pos, Len: length, Kind: kind, Hint: hint}
}

// Error implements the error interface. It is built lazily via oops so that
// every diagnostic carries the same structured context (kind, position,
// hint) that the rest of this module's error paths use.
func (e *Error) Error() string {
	b := oops.
		Code(string(e.Kind)).
		With("line", e.Pos.Line+1).
		With("col", e.Pos.Col+1).
		With("len", e.Len)
	if e.Hint != "" {
		b = b.Hint(e.Hint)
	}
	wrapped := b.Errorf("%s at %s", e.Kind, e.Pos)
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", wrapped.Error(), e.cause.Error())
	}
	return wrapped.Error()
}

// Unwrap exposes a wrapped cause, if any, so that errors.Is/As work as
// expected against sentinel errors returned from embedder code.
func (e *Error) Unwrap() error {
	return e.cause
}

// WithCause attaches an underlying cause to the diagnostic (used when a
// diagnostic is raised in response to another error, e.g. a malformed
// embedder callback) and returns the same *Error for chaining.
func (e *Error) WithCause(cause error) *Error {
	e.cause = cause
	return e
}
