// Package validator runs the semantic checks of spec.md §4.2 over a parsed
// ast.Grammar: every RuleRef must resolve to a declared rule, a valid
// builtin, or an external (E_-prefixed) name.
package validator

import (
	"github.com/mna-peggy/peggy/ast"
	"github.com/mna-peggy/peggy/diag"
)

// Validate walks every rule's pattern tree and reports the first invalid
// RuleRef encountered (spec.md §7: first error stops compilation).
func Validate(g *ast.Grammar) error {
	for _, name := range g.Names() {
		rule, _ := g.Lookup(name)
		if err := validatePattern(g, rule.Pattern); err != nil {
			return err
		}
	}
	return nil
}

func validatePattern(g *ast.Grammar, p *ast.Pattern) error {
	switch v := p.Value.(type) {
	case ast.CstString:
		return nil
	case ast.RuleRef:
		return validateRuleRef(g, v.Name, p.RelativeLoc)
	case ast.Group:
		return validatePattern(g, v.Inner)
	case ast.Suite:
		for _, item := range v.Items {
			if err := validatePattern(g, item); err != nil {
				return err
			}
		}
		return nil
	case ast.Union:
		for _, alt := range v.Alts {
			if err := validatePattern(g, alt); err != nil {
				return err
			}
		}
		return nil
	default:
		return nil
	}
}

func validateRuleRef(g *ast.Grammar, name string, loc ast.Pos) error {
	if ast.IsExternalName(name) {
		return nil
	}
	if ast.IsBuiltinName(name) {
		if ast.IsValidBuiltin(name) {
			return nil
		}
		return diag.New(diag.InvalidBuiltinName, loc, len(name),
			"not a member of the fixed builtin rule table")
	}
	if _, ok := g.Lookup(name); ok {
		return nil
	}
	return diag.New(diag.UndefinedRuleRef, loc, len(name),
		"this rule name is neither declared, a builtin, nor an external (E_-prefixed) name")
}
