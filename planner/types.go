// Package planner implements spec.md §4.4: it turns a validated ast.Grammar,
// together with the four analyzer.* analyses, into an abstract Plan
// describing what an emitter would need to generate for each rule. No
// target-language tokens are produced here (emission itself is out of
// scope, spec.md §1) -- only the structural description.
package planner

import "github.com/mna-peggy/peggy/analyzer"

// Type is the matched-value type of a rule or piece (spec.md §4.4). It is a
// closed sum over the variants below.
type Type interface {
	isType()
}

// Bottom is the matched type of anything silent: no value is carried.
type Bottom struct{}

func (Bottom) isType() {}

// StringType is the matched type of a CstString piece: the singleton type
// for its deduplicated literal.
type StringType struct {
	Key analyzer.StringKey
}

func (StringType) isType() {}

// BuiltinType is the matched type of a reference to a builtin rule.
type BuiltinType struct {
	Name string
}

func (BuiltinType) isType() {}

// ExternalType is the matched type of a reference to an E_-prefixed rule;
// its shape is defined by the embedder, not by this module.
type ExternalType struct {
	Name string
}

func (ExternalType) isType() {}

// RuleType is the matched type of a reference to a declared rule. Shared is
// true when the reference closes a recursion cycle (analyzer.RecursiveRefs)
// and must therefore be wrapped in a shared-ownership indirection to give
// the type a finite representation (spec.md §5, §9).
type RuleType struct {
	Name   string
	Shared bool
}

func (RuleType) isType() {}

// TupleType is the matched type of a Suite with two or more non-silent
// children. A Suite with exactly one non-silent child collapses to that
// child's type directly (no TupleType of length 1 is ever constructed);
// a Suite with zero non-silent children is Bottom.
type TupleType struct {
	Elems []Type
}

func (TupleType) isType() {}

// UnionType is the matched type of a Union: one tagged variant per
// alternative, sharing a representation with every other Union of the same
// Arity (analyzer.UnionArities).
type UnionType struct {
	Arity int
	Alts  []Type
}

func (UnionType) isType() {}

// SeqType is the matched type of a piece repeated with Any or OneOrMore: an
// ordered sequence of the inner type.
type SeqType struct {
	Elem Type
}

func (SeqType) isType() {}

// OptionalType is the matched type of a piece repeated with Optional.
type OptionalType struct {
	Elem Type
}

func (OptionalType) isType() {}
