package analyzer

import "github.com/mna-peggy/peggy/ast"

// UnionArities returns the set of arities (n >= 2) at which a Union appears
// anywhere in the grammar. The planner emits one tagged-variant shape per
// distinct arity (spec.md §4.4(e)) rather than one per Union site, so
// sibling Unions of equal arity share a single matched type.
func UnionArities(g *ast.Grammar) map[int]bool {
	arities := map[int]bool{}
	for _, name := range g.Names() {
		rule, _ := g.Lookup(name)
		collectArities(rule.Pattern, arities)
	}
	return arities
}

func collectArities(p *ast.Pattern, arities map[int]bool) {
	switch v := p.Value.(type) {
	case ast.Group:
		collectArities(v.Inner, arities)
	case ast.Suite:
		for _, item := range v.Items {
			collectArities(item, arities)
		}
	case ast.Union:
		arities[len(v.Alts)] = true
		for _, alt := range v.Alts {
			collectArities(alt, arities)
		}
	}
}
