// Package analyzer implements the four pure analyses of spec.md §4.3 over a
// validated ast.Grammar: recursion-cycle detection, silence propagation,
// constant-string singleton assignment, and union arity discovery.
//
// Grounded on original_source/peggy/src/generators/rust.rs's
// find_recursive_patterns, list_silent_patterns/check_pattern_silence/
// is_silent_piece and format_str_type, translated from Rust's HashMap/
// HashSet-based state threading into Go maps built by plain tree walks.
package analyzer

import "github.com/mna-peggy/peggy/ast"

// RecursiveRefs maps a rule name to the set of rule names it references
// that close a cycle back onto the current DFS path -- the minimal set of
// back-edges that must be materialized through a shared-ownership
// indirection to break recursion in a matched-value representation
// (spec.md §9). Every declared rule has an entry, possibly empty.
type RecursiveRefs map[string]map[string]bool

// FindRecursiveRefs performs the DFS from the grammar's main rule described
// in spec.md §4.3(a).
func FindRecursiveRefs(g *ast.Grammar) RecursiveRefs {
	rec := RecursiveRefs{}
	findRecursiveIn(g, nil, rec, ast.MainRuleName)

	for _, name := range g.Names() {
		if _, ok := rec[name]; !ok {
			rec[name] = map[string]bool{}
		}
	}
	return rec
}

func findRecursiveIn(g *ast.Grammar, path []string, rec RecursiveRefs, name string) {
	if ast.IsBuiltinName(name) || ast.IsExternalName(name) {
		return
	}
	rule, ok := g.Lookup(name)
	if !ok {
		return
	}
	path = append(path, name)
	walkRefs(g, path, rec, rule.Pattern)
}

func walkRefs(g *ast.Grammar, path []string, rec RecursiveRefs, p *ast.Pattern) {
	switch v := p.Value.(type) {
	case ast.RuleRef:
		if onPath(path, v.Name) {
			parent := path[len(path)-1]
			if rec[parent] == nil {
				rec[parent] = map[string]bool{}
			}
			rec[parent][v.Name] = true
			return
		}
		findRecursiveIn(g, path, rec, v.Name)
	case ast.Group:
		walkRefs(g, path, rec, v.Inner)
	case ast.Suite:
		for _, item := range v.Items {
			walkRefs(g, path, rec, item)
		}
	case ast.Union:
		for _, alt := range v.Alts {
			walkRefs(g, path, rec, alt)
		}
	}
}

func onPath(path []string, name string) bool {
	for _, p := range path {
		if p == name {
			return true
		}
	}
	return false
}

// ReachableRules returns the set of declared rule names reachable from root
// through RuleRefs (builtins and externals are leaves, not included).
// Used by the planner to compute BuiltinsUsed, scoped to rules reachable
// from main (SPEC_FULL.md §4.3). The validator does not call it and
// performs no left-recursion check.
func ReachableRules(g *ast.Grammar, root string) map[string]bool {
	reached := map[string]bool{}
	var visit func(name string)
	visit = func(name string) {
		if ast.IsBuiltinName(name) || ast.IsExternalName(name) || reached[name] {
			return
		}
		rule, ok := g.Lookup(name)
		if !ok {
			return
		}
		reached[name] = true
		walkReachable(rule.Pattern, visit)
	}
	visit(root)
	return reached
}

func walkReachable(p *ast.Pattern, visit func(string)) {
	switch v := p.Value.(type) {
	case ast.RuleRef:
		visit(v.Name)
	case ast.Group:
		walkReachable(v.Inner, visit)
	case ast.Suite:
		for _, item := range v.Items {
			walkReachable(item, visit)
		}
	case ast.Union:
		for _, alt := range v.Alts {
			walkReachable(alt, visit)
		}
	}
}
