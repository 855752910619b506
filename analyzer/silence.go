package analyzer

import "github.com/mna-peggy/peggy/ast"

// Silence maps a declared rule name to whether every match it produces
// carries no captured value (spec.md §4.3(b)).
type Silence map[string]bool

// ComputeSilence implements the fixed-point silence propagation of
// spec.md §4.3(b): a CstString is never silent; a RuleRef is silent iff it
// resolves to a silent declared rule (builtins and externals are never
// silent); a Group is silent iff its inner pattern is; a Suite or Union is
// silent iff every child is.
//
// A rule currently being visited on the same DFS path is treated as
// non-silent rather than recursed into again -- a sound underestimation
// (spec.md §4.3(b) explicitly allows this: marking a silent rule as
// non-silent never changes matcher semantics, only whether a redundant
// unit value is threaded through a Suite or Union result).
func ComputeSilence(g *ast.Grammar) Silence {
	silent := Silence{}
	visiting := map[string]bool{}
	for _, name := range g.Names() {
		ruleSilent(g, silent, visiting, name)
	}
	return silent
}

func ruleSilent(g *ast.Grammar, silent Silence, visiting map[string]bool, name string) bool {
	if v, ok := silent[name]; ok {
		return v
	}
	if ast.IsBuiltinName(name) || ast.IsExternalName(name) {
		return false
	}
	if visiting[name] {
		return false
	}
	rule, ok := g.Lookup(name)
	if !ok {
		return false
	}

	visiting[name] = true
	result := patternSilent(g, silent, visiting, rule.Pattern)
	delete(visiting, name)

	silent[name] = result
	return result
}

func patternSilent(g *ast.Grammar, silent Silence, visiting map[string]bool, p *ast.Pattern) bool {
	if p.IsSilent {
		return true
	}
	switch v := p.Value.(type) {
	case ast.CstString:
		return false
	case ast.RuleRef:
		return ruleSilent(g, silent, visiting, v.Name)
	case ast.Group:
		return patternSilent(g, silent, visiting, v.Inner)
	case ast.Suite:
		for _, item := range v.Items {
			if !patternSilent(g, silent, visiting, item) {
				return false
			}
		}
		return true
	case ast.Union:
		for _, alt := range v.Alts {
			if !patternSilent(g, silent, visiting, alt) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
