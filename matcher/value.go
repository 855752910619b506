// Package matcher is the executable reference interpreter for the
// operational contract of spec.md §4.5: it matches a rule directly against
// an ast.Grammar, independent of any target language. It is grounded on
// the teacher's vm package's peek/read matcher split (vm/matchers.go)
// translated from a byte-oriented ϡpeekReader into plain []rune indexing,
// and on original_source/peggy/src/generators/rust.rs's emitted matcher
// bodies for the exact longest-match-union and greedy-repetition behavior.
package matcher

// Value is the result of a successful match. It mirrors planner.Type's
// shape one-to-one so that a caller who already knows a rule's
// planner.Type can type-assert the corresponding matcher.Value
// constructor.
type Value interface {
	isValue()
}

// Unit is produced by a silent piece: the match still consumed input, but
// carries no payload (spec.md §4.5 "Silence").
type Unit struct{}

func (Unit) isValue() {}

// Str is the value of a matched CstString.
type Str struct {
	Literal string
}

func (Str) isValue() {}

// Char is the value of a matched builtin rule: the single rune consumed.
type Char struct {
	Rune rune
}

func (Char) isValue() {}

// Tuple is the value of a Suite with two or more non-silent elements.
type Tuple struct {
	Elems []Value
}

func (Tuple) isValue() {}

// Seq is the value of a piece repeated with Any or OneOrMore.
type Seq struct {
	Elems []Value
}

func (Seq) isValue() {}

// Opt is the value of a piece repeated with Optional.
type Opt struct {
	Value   Value
	Present bool
}

func (Opt) isValue() {}

// Choice is the value of a matched Union: which alternative fired, and its
// value.
type Choice struct {
	Index int
	Value Value
}

func (Choice) isValue() {}
