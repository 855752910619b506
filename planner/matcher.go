package planner

import "github.com/mna-peggy/peggy/analyzer"

// MatchKind tags the shape of a Matcher node.
type MatchKind int

const (
	MatchString MatchKind = iota
	MatchBuiltin
	MatchExternal
	MatchRuleRef
	MatchGroup
	MatchSuite
	MatchUnion
	MatchRepeatAny
	MatchRepeatOneOrMore
	MatchRepeatOptional
)

// Matcher is a structural description of how one piece is matched,
// suitable for direct translation into emitted code (spec.md §4.4: "mirrors
// the matched type, with silent branches producing a unit-like sentinel").
// It is not itself executable -- matcher.Match interprets ast.Grammar
// directly; this type exists only to describe what an emitter would need
// to generate.
type Matcher struct {
	Kind      MatchKind
	Silent    bool
	RuleName  string // MatchRuleRef / MatchBuiltin / MatchExternal
	StringKey analyzer.StringKey
	Children  []*Matcher // MatchGroup (len 1), MatchSuite, MatchUnion
	Repeat    *Matcher   // inner matcher, for MatchRepeat*
}
