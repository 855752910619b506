package analyzer

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/mna-peggy/peggy/ast"
)

// StringKey identifies one distinct constant-string literal assigned a
// symbolic singleton type. Two CstString nodes with the same Value always
// share a StringKey (literal deduplication, spec.md §4.3(c)).
type StringKey struct {
	Value      string
	Base       string
	Occurrence int
}

// Name returns the symbolic identifier for k, following the Str_<base> /
// Str<n>_<base> convention of spec.md §6.
func (k StringKey) Name() string {
	if k.Occurrence == 0 {
		return "Str_" + k.Base
	}
	return fmt.Sprintf("Str%d_%s", k.Occurrence, k.Base)
}

// StringSingletons walks every rule's pattern tree in declaration order and
// assigns each distinct CstString value a StringKey, per spec.md §4.3(c).
//
// Occurrence counters are kept per derived base identifier, because
// DeriveIdentBase is not injective ("a b" and "aB" both derive "aB"): the
// first literal to reach a given base is unsuffixed and each later distinct
// literal with the same base takes the next counter value (Str1_aB, ...).
// Repeated occurrences of one literal reuse its memoized StringKey -- see
// SPEC_FULL.md §9.2.
func StringSingletons(g *ast.Grammar) map[string]StringKey {
	counters := map[string]int{}
	assigned := map[string]StringKey{}

	for _, name := range g.Names() {
		rule, _ := g.Lookup(name)
		collectStrings(rule.Pattern, counters, assigned)
	}
	return assigned
}

func collectStrings(p *ast.Pattern, counters map[string]int, assigned map[string]StringKey) {
	switch v := p.Value.(type) {
	case ast.CstString:
		if _, ok := assigned[v.Value]; ok {
			return
		}
		base := DeriveIdentBase(v.Value)
		occ := counters[base]
		counters[base] = occ + 1
		assigned[v.Value] = StringKey{Value: v.Value, Base: base, Occurrence: occ}
	case ast.Group:
		collectStrings(v.Inner, counters, assigned)
	case ast.Suite:
		for _, item := range v.Items {
			collectStrings(item, counters, assigned)
		}
	case ast.Union:
		for _, alt := range v.Alts {
			collectStrings(alt, counters, assigned)
		}
	}
}

// DeriveIdentBase derives the base identifier fragment for a string
// literal, character by character (spec.md §6):
//   - a run of whitespace suppresses itself, except that the second and
//     later whitespace rune in the same run each contribute a literal '_';
//     it otherwise only causes the next alphanumeric rune to be uppercased;
//   - alphanumeric runes are appended as-is, unless preceded by a
//     whitespace run, in which case they are uppercased;
//   - '_' is appended as-is;
//   - any other rune is escaped as "__<Tag>__" using the fixed symbol table.
func DeriveIdentBase(s string) string {
	var b strings.Builder
	gotSpace := false
	for _, c := range s {
		switch {
		case unicode.IsSpace(c):
			if gotSpace {
				b.WriteByte('_')
			} else {
				gotSpace = true
			}
		case unicode.IsLetter(c) || unicode.IsDigit(c):
			if gotSpace {
				b.WriteString(strings.ToUpper(string(c)))
				gotSpace = false
			} else {
				b.WriteRune(c)
			}
		case c == '_':
			gotSpace = false
			b.WriteByte('_')
		default:
			gotSpace = false
			b.WriteString("__")
			b.WriteString(symbolTag(c))
			b.WriteString("__")
		}
	}
	return b.String()
}

func symbolTag(c rune) string {
	switch c {
	case '+':
		return "Plus"
	case '-':
		return "Less"
	case '*':
		return "Multiply"
	case '/':
		return "Divide"
	case '(':
		return "OpeningParenthesis"
	case ')':
		return "ClosingParenthesis"
	case '[':
		return "OpeningBracket"
	case ']':
		return "ClosingBracket"
	case '{':
		return "OpeningBrace"
	case '}':
		return "ClosingBrace"
	case '\\':
		return "Backslash"
	case '@':
		return "At"
	case '=':
		return "Equal"
	case '!':
		return "Bang"
	case '^':
		return "CircumflexAccent"
	case ',':
		return "Comma"
	case '.':
		return "Dot"
	case ';':
		return "SemiColon"
	default:
		return fmt.Sprintf("Char%d", byte(c))
	}
}
