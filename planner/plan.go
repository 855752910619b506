package planner

import (
	"github.com/mna-peggy/peggy/analyzer"
	"github.com/mna-peggy/peggy/ast"
)

// Plan is the abstract emission plan of spec.md §4.4.
type Plan struct {
	MatchedTypes     map[string]Type
	Matchers         map[string]*Matcher
	StringSingletons map[string]analyzer.StringKey
	BuiltinsUsed     map[string]bool
	UnionArities     map[int]bool
}

// Build runs the four analyzer passes over g and assembles the Plan. g must
// already have passed validator.Validate.
func Build(g *ast.Grammar) *Plan {
	silent := analyzer.ComputeSilence(g)
	recursive := analyzer.FindRecursiveRefs(g)
	strings := analyzer.StringSingletons(g)
	arities := analyzer.UnionArities(g)
	reachable := analyzer.ReachableRules(g, ast.MainRuleName)

	types := map[string]Type{}
	matchers := map[string]*Matcher{}
	for _, name := range g.Names() {
		rule, _ := g.Lookup(name)
		types[name] = ruleType(silent, recursive, strings, name, rule.Pattern)
		matchers[name] = buildMatcher(strings, rule.Pattern)
	}

	builtinsUsed := map[string]bool{}
	for name := range reachable {
		rule, ok := g.Lookup(name)
		if !ok {
			continue
		}
		collectBuiltins(rule.Pattern, builtinsUsed)
	}

	return &Plan{
		MatchedTypes:     types,
		Matchers:         matchers,
		StringSingletons: strings,
		BuiltinsUsed:     builtinsUsed,
		UnionArities:     arities,
	}
}

func ruleType(silent analyzer.Silence, recursive analyzer.RecursiveRefs, strs map[string]analyzer.StringKey, currentRule string, p *ast.Pattern) Type {
	if silent[currentRule] {
		return Bottom{}
	}
	return pieceType(silent, recursive, strs, currentRule, p)
}

// pieceSilent mirrors analyzer's fixed-point silence at the granularity of
// one piece inside an already-resolved rule: p.IsSilent short-circuits, a
// RuleRef defers to the precomputed per-rule table, and the structural
// cases recurse. Unlike analyzer.ComputeSilence, no cycle guard is needed:
// silent is already a fully-settled fixed point, so every RuleRef lookup
// here is a plain map read.
func pieceSilent(silent analyzer.Silence, p *ast.Pattern) bool {
	if p.IsSilent {
		return true
	}
	switch v := p.Value.(type) {
	case ast.CstString:
		return false
	case ast.RuleRef:
		if ast.IsBuiltinName(v.Name) || ast.IsExternalName(v.Name) {
			return false
		}
		return silent[v.Name]
	case ast.Group:
		return pieceSilent(silent, v.Inner)
	case ast.Suite:
		for _, item := range v.Items {
			if !pieceSilent(silent, item) {
				return false
			}
		}
		return true
	case ast.Union:
		for _, alt := range v.Alts {
			if !pieceSilent(silent, alt) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func pieceType(silent analyzer.Silence, recursive analyzer.RecursiveRefs, strs map[string]analyzer.StringKey, currentRule string, p *ast.Pattern) Type {
	if pieceSilent(silent, p) {
		return Bottom{}
	}

	base := pieceBaseType(silent, recursive, strs, currentRule, p)

	switch p.Repetition {
	case ast.Any, ast.OneOrMore:
		return SeqType{Elem: base}
	case ast.Optional:
		return OptionalType{Elem: base}
	default:
		return base
	}
}

func pieceBaseType(silent analyzer.Silence, recursive analyzer.RecursiveRefs, strs map[string]analyzer.StringKey, currentRule string, p *ast.Pattern) Type {
	switch v := p.Value.(type) {
	case ast.CstString:
		return StringType{Key: strs[v.Value]}
	case ast.RuleRef:
		if ast.IsBuiltinName(v.Name) {
			return BuiltinType{Name: v.Name}
		}
		if ast.IsExternalName(v.Name) {
			return ExternalType{Name: v.Name}
		}
		return RuleType{Name: v.Name, Shared: recursive[currentRule][v.Name]}
	case ast.Group:
		return pieceType(silent, recursive, strs, currentRule, v.Inner)
	case ast.Suite:
		var elems []Type
		for _, item := range v.Items {
			if pieceSilent(silent, item) {
				continue
			}
			elems = append(elems, pieceType(silent, recursive, strs, currentRule, item))
		}
		switch len(elems) {
		case 0:
			return Bottom{}
		case 1:
			return elems[0]
		default:
			return TupleType{Elems: elems}
		}
	case ast.Union:
		alts := make([]Type, len(v.Alts))
		for i, alt := range v.Alts {
			alts[i] = pieceType(silent, recursive, strs, currentRule, alt)
		}
		return UnionType{Arity: len(v.Alts), Alts: alts}
	default:
		return Bottom{}
	}
}

func buildMatcher(strs map[string]analyzer.StringKey, p *ast.Pattern) *Matcher {
	m := &Matcher{Silent: p.IsSilent}

	switch v := p.Value.(type) {
	case ast.CstString:
		m.Kind = MatchString
		m.StringKey = strs[v.Value]
	case ast.RuleRef:
		switch {
		case ast.IsBuiltinName(v.Name):
			m.Kind = MatchBuiltin
		case ast.IsExternalName(v.Name):
			m.Kind = MatchExternal
		default:
			m.Kind = MatchRuleRef
		}
		m.RuleName = v.Name
	case ast.Group:
		m.Kind = MatchGroup
		m.Children = []*Matcher{buildMatcher(strs, v.Inner)}
	case ast.Suite:
		m.Kind = MatchSuite
		for _, item := range v.Items {
			m.Children = append(m.Children, buildMatcher(strs, item))
		}
	case ast.Union:
		m.Kind = MatchUnion
		for _, alt := range v.Alts {
			m.Children = append(m.Children, buildMatcher(strs, alt))
		}
	}

	switch p.Repetition {
	case ast.Any:
		return &Matcher{Kind: MatchRepeatAny, Repeat: m}
	case ast.OneOrMore:
		return &Matcher{Kind: MatchRepeatOneOrMore, Repeat: m}
	case ast.Optional:
		return &Matcher{Kind: MatchRepeatOptional, Repeat: m}
	default:
		return m
	}
}

func collectBuiltins(p *ast.Pattern, used map[string]bool) {
	switch v := p.Value.(type) {
	case ast.RuleRef:
		if ast.IsBuiltinName(v.Name) {
			used[v.Name] = true
		}
	case ast.Group:
		collectBuiltins(v.Inner, used)
	case ast.Suite:
		for _, item := range v.Items {
			collectBuiltins(item, used)
		}
	case ast.Union:
		for _, alt := range v.Alts {
			collectBuiltins(alt, used)
		}
	}
}
