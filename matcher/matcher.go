package matcher

import (
	"fmt"

	"github.com/mna-peggy/peggy/analyzer"
	"github.com/mna-peggy/peggy/ast"
)

// Match runs rule against input and returns its matched value and the
// number of runes consumed. If rule is "main" and the match succeeds
// without consuming the whole input, the call fails with
// ExpectedEndOfInput (spec.md §4.5 "Entry point"); other rule names may
// legitimately leave a remainder, which callers can inspect via the
// returned consumed count.
func Match(g *ast.Grammar, rule string, input string) (Value, int, error) {
	runes := []rune(input)
	silent := analyzer.ComputeSilence(g)

	value, consumed, err := matchRuleRef(g, silent, runes, 0, rule)
	if err != nil {
		return nil, 0, err
	}
	if rule == ast.MainRuleName && consumed != len(runes) {
		return nil, consumed, &Error{Kind: ExpectedEndOfInput, Offset: consumed}
	}
	return value, consumed, nil
}

func matchRuleRef(g *ast.Grammar, silent analyzer.Silence, input []rune, offset int, name string) (Value, int, error) {
	if ast.IsBuiltinName(name) {
		return matchBuiltin(input, offset, name)
	}
	if ast.IsExternalName(name) {
		return nil, 0, fmt.Errorf("matcher: external rule %q has no embedder-provided implementation", name)
	}
	rule, ok := g.Lookup(name)
	if !ok {
		return nil, 0, fmt.Errorf("matcher: rule %q is not declared", name)
	}
	return matchPattern(g, silent, input, offset, rule.Pattern)
}

func matchBuiltin(input []rune, offset int, name string) (Value, int, error) {
	pred, ok := ast.Builtins[name]
	if !ok {
		return nil, 0, fmt.Errorf("matcher: %q is not a valid builtin", name)
	}
	if offset >= len(input) || !pred(input[offset]) {
		return nil, 0, &Error{Kind: FailedToMatchBuiltinPattern, Offset: offset, Expected: name}
	}
	return Char{Rune: input[offset]}, 1, nil
}

// matchPattern applies p's repetition to its value, then folds the result
// to the silent Unit sentinel if p.IsSilent -- silence and repetition are
// independent axes on the same ast.Pattern (spec.md §3), so both apply
// here regardless of which combination the grammar author wrote.
func matchPattern(g *ast.Grammar, silent analyzer.Silence, input []rune, offset int, p *ast.Pattern) (Value, int, error) {
	value, consumed, err := matchRepeated(g, silent, input, offset, p)
	if err != nil {
		return nil, 0, err
	}
	if p.IsSilent {
		return Unit{}, consumed, nil
	}
	return value, consumed, nil
}

func matchRepeated(g *ast.Grammar, silent analyzer.Silence, input []rune, offset int, p *ast.Pattern) (Value, int, error) {
	switch p.Repetition {
	case ast.Any:
		return matchAny(g, silent, input, offset, p.Value)
	case ast.OneOrMore:
		return matchOneOrMore(g, silent, input, offset, p.Value)
	case ast.Optional:
		return matchOptional(g, silent, input, offset, p.Value)
	default:
		return matchValue(g, silent, input, offset, p.Value)
	}
}

func matchAny(g *ast.Grammar, silent analyzer.Silence, input []rune, offset int, v ast.Value) (Value, int, error) {
	var elems []Value
	cur := offset
	for {
		val, n, err := matchValue(g, silent, input, cur, v)
		if err != nil {
			break
		}
		elems = append(elems, val)
		cur += n
		if n == 0 {
			break
		}
	}
	return Seq{Elems: elems}, cur - offset, nil
}

func matchOneOrMore(g *ast.Grammar, silent analyzer.Silence, input []rune, offset int, v ast.Value) (Value, int, error) {
	first, n, err := matchValue(g, silent, input, offset, v)
	if err != nil {
		return nil, 0, err
	}
	elems := []Value{first}
	cur := offset + n
	for n != 0 {
		val, n2, err := matchValue(g, silent, input, cur, v)
		if err != nil {
			break
		}
		elems = append(elems, val)
		cur += n2
		n = n2
	}
	return Seq{Elems: elems}, cur - offset, nil
}

func matchOptional(g *ast.Grammar, silent analyzer.Silence, input []rune, offset int, v ast.Value) (Value, int, error) {
	val, n, err := matchValue(g, silent, input, offset, v)
	if err != nil {
		return Opt{Present: false}, 0, nil
	}
	return Opt{Value: val, Present: true}, n, nil
}

func matchValue(g *ast.Grammar, silent analyzer.Silence, input []rune, offset int, v ast.Value) (Value, int, error) {
	switch val := v.(type) {
	case ast.CstString:
		return matchCstString(input, offset, val.Value)
	case ast.RuleRef:
		return matchRuleRef(g, silent, input, offset, val.Name)
	case ast.Group:
		return matchPattern(g, silent, input, offset, val.Inner)
	case ast.Suite:
		return matchSuite(g, silent, input, offset, val.Items)
	case ast.Union:
		return matchUnion(g, silent, input, offset, val.Alts)
	default:
		return nil, 0, fmt.Errorf("matcher: unknown pattern value %T", v)
	}
}

func matchCstString(input []rune, offset int, s string) (Value, int, error) {
	want := []rune(s)
	if offset+len(want) > len(input) {
		return nil, 0, &Error{Kind: ExpectedCstString, Offset: offset, Expected: s}
	}
	for i, r := range want {
		if input[offset+i] != r {
			return nil, 0, &Error{Kind: ExpectedCstString, Offset: offset, Expected: s}
		}
	}
	return Str{Literal: s}, len(want), nil
}

// pieceSilent reports whether a Suite/Union member contributes nothing to
// its parent's matched value -- mirroring planner.pieceSilent exactly
// (plan.go) so the two packages agree on which pieces fold away. A bare
// RuleRef piece is silent not only when marked with "_:" at the call site
// but also when the referenced rule is itself intrinsically silent at its
// own declaration (e.g. "word = _:B_ASCII_ALPHABETIC+"): the caller sees
// none of that through the reference.
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

// matchSuite matches each piece in order with no backtracking: a failure
// at any position propagates immediately (spec.md §4.5 "Suite"). The
// result folds out silent pieces before collapsing to a Tuple, mirroring
// planner.TupleType's construction rule exactly (0 -> Unit, 1 -> bare
// value, 2+ -> Tuple).
func matchSuite(g *ast.Grammar, silent analyzer.Silence, input []rune, offset int, items []*ast.Pattern) (Value, int, error) {
	var elems []Value
	cur := offset
	for _, item := range items {
		val, n, err := matchPattern(g, silent, input, cur, item)
		if err != nil {
			return nil, 0, err
		}
		cur += n
		if !pieceSilent(silent, item) {
			elems = append(elems, val)
		}
	}

	switch len(elems) {
	case 0:
		return Unit{}, cur - offset, nil
	case 1:
		return elems[0], cur - offset, nil
	default:
		return Tuple{Elems: elems}, cur - offset, nil
	}
}

// matchUnion implements the longest-match rule of spec.md §4.5: every
// alternative is attempted from the same offset; the winner is whichever
// consumed strictly more than the current best, so an earlier alternative
// with equal consumption is never displaced by a later one.
func matchUnion(g *ast.Grammar, silent analyzer.Silence, input []rune, offset int, alts []*ast.Pattern) (Value, int, error) {
	var subErrors []error
	bestIndex := -1
	var bestValue Value
	bestConsumed := -1

	for i, alt := range alts {
		val, n, err := matchPattern(g, silent, input, offset, alt)
		if err != nil {
			subErrors = append(subErrors, err)
			continue
		}
		if n > bestConsumed {
			bestIndex, bestValue, bestConsumed = i, val, n
		}
	}

	if bestIndex == -1 {
		return nil, 0, &Error{Kind: NoMatchInUnion, Offset: offset, Errors: subErrors}
	}
	return Choice{Index: bestIndex, Value: bestValue}, bestConsumed, nil
}
