// Package parser implements the grammar front-end (spec.md §4.1): it turns
// PEG grammar source text into a validated-shape ast.Grammar, reporting the
// first error encountered with a precise source location.
//
// The algorithm is grounded directly on
// original_source/peggy/src/compiler/parser.rs's parse_peg_nocheck /
// parse_rule_content / parse_pattern / parse_pattern_piece, restructured
// around Go's multiple-return-value idiom instead of Rust's Result
// combinators, and around the teacher's (32bitkid-pigeon) convention of
// keeping the front-end a single hand-rolled recursive-descent package with
// no parser-generator dependency of its own.
package parser

import (
	"strings"
	"unicode"

	"github.com/mna-peggy/peggy/ast"
	"github.com/mna-peggy/peggy/diag"
	"github.com/mna-peggy/peggy/lexer"
)

// Parse compiles grammar source into a Grammar tree. It stops at the first
// error (spec.md §7: "the first error stops compilation; no multi-error
// accumulation is required").
func Parse(source string) (*ast.Grammar, error) {
	g := ast.NewGrammar()
	lines := strings.Split(source, "\n")

	commentOpen := false
	var commentStart ast.Pos

	for lineIdx, raw := range lines {
		trimmedLine, trimmedCol := lexer.TrimStartCount(raw)
		rtrimmed := strings.TrimRight(trimmedLine, " \t\r")

		if rtrimmed == "###" {
			if !commentOpen {
				commentOpen = true
				commentStart = ast.Pos{Line: lineIdx, Col: trimmedCol}
			} else {
				commentOpen = false
			}
			continue
		}
		if commentOpen {
			continue
		}
		if lexer.IsBlank(trimmedLine) {
			continue
		}

		rule, err := parseRuleLine(g, trimmedLine, lineIdx, trimmedCol)
		if err != nil {
			return nil, err
		}
		g.Add(rule)
	}

	if commentOpen {
		return nil, diag.New(diag.UnterminatedMultiLineComment, commentStart, 3,
			"you can add '###' on a single line to close the comment")
	}

	if _, ok := g.Lookup(ast.MainRuleName); !ok {
		lastLine := len(lines) - 1
		if lastLine < 0 {
			lastLine = 0
		}
		return nil, diag.New(diag.MissingMainRule, ast.Pos{Line: lastLine, Col: 0}, 0,
			"you must declare a rule named 'main' which will be the entrypoint of your grammar")
	}

	return g, nil
}

// parseRuleLine parses "<name> [ws] = <content>" at the given line, whose
// trimmed content starts at column trimmedCol.
func parseRuleLine(g *ast.Grammar, content string, lineIdx, trimmedCol int) (*ast.Rule, error) {
	runes := []rune(content)

	c := runes[0]
	if !lexer.IsIdentStart(c) {
		hint := "only alphabetic and underscore characters are allowed to begin a rule's name"
		if c >= '0' && c <= '9' {
			hint = "digits are not allowed to begin a rule's name"
		}
		return nil, diag.New(diag.ExpectedRuleDeclaration, ast.Pos{Line: lineIdx, Col: trimmedCol}, 1, hint)
	}

	nameLen := 1
	nameEnded := false
	opSpaces := 0
	i := 1
	for {
		if i >= len(runes) {
			return nil, diag.New(diag.ExpectedAssignmentOp, ast.Pos{Line: lineIdx, Col: trimmedCol + nameLen}, 1,
				"you may have forgotten to add the rule assignment operator '='")
		}
		rc := runes[i]
		switch {
		case !nameEnded && lexer.IsIdentCont(rc):
			nameLen++
		case rc == '=':
			i++
			goto nameDone
		case unicode.IsSpace(rc):
			nameEnded = true
			opSpaces++
		default:
			return nil, diag.New(diag.IllegalSymbol, ast.Pos{Line: lineIdx, Col: trimmedCol + nameLen}, 1,
				"only alphanumeric and underscore characters are allowed in a rule's name")
		}
		i++
	}
nameDone:
	name := string(runes[:nameLen])

	if ast.IsReservedName(name) {
		return nil, diag.New(diag.ReservedRuleName, ast.Pos{Line: lineIdx, Col: trimmedCol}, nameLen,
			"try to use a name that doesn't start with 'B_' (builtin rules) or 'E_' (external rules)")
	}
	if _, exists := g.Lookup(name); exists {
		return nil, diag.New(diag.DuplicateRuleName, ast.Pos{Line: lineIdx, Col: trimmedCol}, nameLen,
			"a rule with this name was already declared")
	}

	startCol := nameLen + opSpaces + 1
	rest := sliceRunes(content, startCol)
	trimmedRest, trimmed2 := lexer.TrimStartCount(rest)
	contentCol := trimmedCol + startCol + trimmed2

	if lexer.IsBlank(trimmedRest) {
		return nil, diag.New(diag.ExpectedPatternContent, ast.Pos{Line: lineIdx, Col: contentCol}, 0,
			"you need to provide a rule pattern, such as a group, a string or a rule's name")
	}

	pattern, _, err := parseContent(trimmedRest, false)
	if err != nil {
		return nil, placeErr(err, ast.Pos{Line: lineIdx, Col: contentCol})
	}
	pattern.RelativeLoc = (ast.Pos{Line: lineIdx, Col: contentCol}).Add(pattern.RelativeLoc)

	return &ast.Rule{Name: name, Pattern: pattern}, nil
}

// stopReason records why parsePattern stopped consuming input, mirroring
// PatternParserStoppedAt in the original Rust source.
type stopReason int

const (
	stopEnd stopReason = iota
	stopContinuation
	stopUnion
)

// parseContent parses one full content segment: either the whole of a
// rule's right-hand side (insideGroup == false) or the body of a group, up
// to (but not including) its closing parenthesis (insideGroup == true). The
// returned Pattern's RelativeLoc is relative to the start of input.
func parseContent(input string, insideGroup bool) (*ast.Pattern, int, error) {
	first, firstLen, stop, err := parsePattern(input, insideGroup)
	if err != nil {
		return nil, 0, err
	}
	if stop == stopEnd {
		return first, firstLen, nil
	}

	var patterns []*ast.Pattern
	var unions []*ast.Pattern
	if stop == stopUnion {
		unions = append(unions, makeUnionChild([]*ast.Pattern{first}))
	} else {
		patterns = append(patterns, first)
	}

	col := firstLen
	rest := sliceRunes(input, firstLen)

	for {
		next, nextLen, nextStop, err := parsePattern(rest, insideGroup)
		if err != nil {
			return nil, 0, offsetErr(err, col)
		}
		next.RelativeLoc = ast.Pos{Line: 0, Col: col}
		patterns = append(patterns, next)
		rest = sliceRunes(rest, nextLen)
		col += nextLen

		switch nextStop {
		case stopEnd:
			var value ast.Value
			if stop != stopUnion && len(unions) == 0 {
				if len(patterns) == 1 {
					return patterns[0], col, nil
				}
				value = ast.Suite{Items: patterns}
			} else {
				if len(patterns) > 0 {
					unions = append(unions, makeUnionChild(patterns))
				}
				value = ast.Union{Alts: unions}
			}
			return &ast.Pattern{Value: value}, col, nil
		case stopUnion:
			unions = append(unions, makeUnionChild(patterns))
			patterns = nil
		case stopContinuation:
			// keep accumulating into patterns
		}
	}
}

// makeUnionChild turns a run of accumulated patterns into a single union
// alternative: a bare pattern if there is only one (the collapse rule of
// spec.md §9 / SPEC_FULL.md §9.1), or a Suite with locations re-based to the
// first member, matching original_source's create_union_child exactly
// (including its asymmetry: a singleton alternative keeps its
// segment-absolute RelativeLoc rather than being re-based to (0,0)).
func makeUnionChild(patterns []*ast.Pattern) *ast.Pattern {
	if len(patterns) == 1 {
		return patterns[0]
	}
	base := patterns[0].RelativeLoc
	items := make([]*ast.Pattern, len(patterns))
	for i, p := range patterns {
		q := *p
		q.RelativeLoc = ast.Sub(base, p.RelativeLoc)
		items[i] = &q
	}
	return &ast.Pattern{RelativeLoc: items[0].RelativeLoc, Value: ast.Suite{Items: items}}
}

// parsePattern parses one piece and decides, from what follows it, whether
// the content segment ends here, continues as a suite, or continues as a
// union.
func parsePattern(input string, insideGroup bool) (*ast.Pattern, int, stopReason, error) {
	trimmedInput, trimmed := lexer.TrimStartCount(input)
	piece, pieceLen, err := parsePatternPiece(trimmedInput)
	if err != nil {
		return nil, 0, 0, offsetErr(err, trimmed)
	}

	rest := sliceRunes(trimmedInput, pieceLen)
	if isEndOfSegment(rest, insideGroup) {
		return piece, trimmed + pieceLen, stopEnd, nil
	}

	restRunes := []rune(rest)
	r0 := restRunes[0]

	if unicode.IsSpace(r0) {
		idx := 0
		for idx < len(restRunes) && unicode.IsSpace(restRunes[idx]) {
			idx++
		}
		after := string(restRunes[idx:])
		if isEndOfSegment(after, insideGroup) {
			return piece, trimmed + pieceLen + idx, stopEnd, nil
		}
		if strings.HasPrefix(after, "|") {
			return piece, trimmed + pieceLen + idx + 1, stopUnion, nil
		}
		return piece, trimmed + pieceLen + idx, stopContinuation, nil
	}

	if r0 == '|' {
		return piece, trimmed + pieceLen + 1, stopUnion, nil
	}

	return nil, 0, 0, diag.New(diag.ExpectedPatternSeparatorOrEnd,
		ast.Pos{Line: 0, Col: trimmed + pieceLen}, 1,
		"adding another pattern to the suite requires a whitespace, or a vertical bar (|) for a union")
}

// parsePatternPiece parses "[_:] atom [repetition]".
func parsePatternPiece(input string) (*ast.Pattern, int, error) {
	isSilent := strings.HasPrefix(input, "_:")
	silentLen := 0
	if isSilent {
		silentLen = 2
	}
	rest := sliceRunes(input, silentLen)
	runes := []rune(rest)

	if len(runes) == 0 {
		return nil, 0, diag.New(diag.ExpectedPatternContent, ast.Pos{Line: 0, Col: silentLen}, 0,
			"you need to provide a rule pattern, such as a group, a string or a rule's name")
	}

	var value ast.Value
	var atomLen int

	switch {
	case runes[0] == '"':
		str, l, ok := lexer.ScanString(rest)
		if !ok {
			return nil, 0, diag.New(diag.UnterminatedString, ast.Pos{Line: 0, Col: silentLen}, 1,
				"add a closing double-quote to terminate the string literal")
		}
		if str == "" {
			return nil, 0, diag.New(diag.ExpectedPatternContent, ast.Pos{Line: 0, Col: silentLen}, l,
				"a constant string literal cannot be empty")
		}
		value, atomLen = ast.CstString{Value: str}, l

	case lexer.IsIdentStart(runes[0]):
		l := lexer.ScanIdent(rest)
		value, atomLen = ast.RuleRef{Name: string(runes[:l])}, l

	case runes[0] == '(':
		inner, consumed, ok, err := parseGroupBody(sliceRunes(rest, 1))
		if err != nil {
			return nil, 0, offsetErr(err, silentLen+1)
		}
		if !ok {
			return nil, 0, diag.New(diag.UnterminatedGroup, ast.Pos{Line: 0, Col: silentLen}, 1,
				"add a closing parenthesis to terminate the group")
		}
		value, atomLen = ast.Group{Inner: inner}, 1+consumed+1

	default:
		hint := "you may either open a group with '(', a string with '\"', or specify a rule's name"
		if runes[0] == '\'' {
			hint = "strings require double quotes"
		}
		return nil, 0, diag.New(diag.ExpectedPatternContent, ast.Pos{Line: 0, Col: silentLen}, 1, hint)
	}

	totalLen := silentLen + atomLen
	repetition := ast.None
	if afterAtom := []rune(sliceRunes(input, totalLen)); len(afterAtom) > 0 {
		switch afterAtom[0] {
		case '*':
			repetition = ast.Any
			totalLen++
		case '+':
			repetition = ast.OneOrMore
			totalLen++
		case '?':
			repetition = ast.Optional
			totalLen++
		}
	}

	return &ast.Pattern{Repetition: repetition, IsSilent: isSilent, Value: value}, totalLen, nil
}

// parseGroupBody parses the content following an opening '(' (s must not
// include the '(' itself). ok is false when no matching ')' follows the
// parsed content (including when s is empty, i.e. nothing follows '(' at
// all) -- the caller reports UnterminatedGroup in that case.
func parseGroupBody(s string) (*ast.Pattern, int, bool, error) {
	if s == "" {
		return nil, 0, false, nil
	}
	inner, consumed, err := parseContent(s, true)
	if err != nil {
		return nil, 0, false, err
	}
	if !strings.HasPrefix(sliceRunes(s, consumed), ")") {
		return nil, 0, false, nil
	}
	return inner, consumed, true, nil
}

func isEndOfSegment(s string, insideGroup bool) bool {
	if s == "" {
		return true
	}
	return insideGroup && strings.HasPrefix(s, ")")
}

func sliceRunes(s string, n int) string {
	r := []rune(s)
	if n > len(r) {
		n = len(r)
	}
	return string(r[n:])
}

// offsetErr shifts a nested diagnostic's column by delta, used when
// propagating an error from a sub-parse back up through a parent whose
// input started delta runes later.
func offsetErr(err error, delta int) error {
	if e, ok := err.(*diag.Error); ok {
		e.Pos.Col += delta
		return e
	}
	return err
}

// placeErr rebases a diagnostic computed relative to a content segment onto
// an absolute source position.
func placeErr(err error, base ast.Pos) error {
	if e, ok := err.(*diag.Error); ok {
		e.Pos = base.Add(e.Pos)
		return e
	}
	return err
}
