package planner

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna-peggy/peggy/parser"
)

func TestBuildMatchedTypeForLiteral(t *testing.T) {
	g, err := parser.Parse(`main = "hello"`)
	require.NoError(t, err)

	plan := Build(g)
	st, ok := plan.MatchedTypes["main"].(StringType)
	require.True(t, ok)
	assert.Equal(t, "hello", st.Key.Value)
}

func TestBuildSilentRuleHasBottomType(t *testing.T) {
	g, err := parser.Parse("main = _:word\nword = B_ASCII_ALPHABETIC+")
	require.NoError(t, err)

	plan := Build(g)
	_, isBottom := plan.MatchedTypes["main"].(Bottom)
	assert.True(t, isBottom)
}

func TestBuildSuiteCollapsesSingleNonSilentChild(t *testing.T) {
	g, err := parser.Parse("main = _:B_ASCII_WHITESPACE* word\nword = B_ASCII_ALPHABETIC+")
	require.NoError(t, err)

	plan := Build(g)
	_, isTuple := plan.MatchedTypes["main"].(TupleType)
	assert.False(t, isTuple, "a Suite with one non-silent child must collapse, not stay a TupleType")
	ruleType, ok := plan.MatchedTypes["main"].(RuleType)
	require.True(t, ok)
	assert.Equal(t, "word", ruleType.Name)
}

func TestBuildUnionTypeCarriesArityAndAlternatives(t *testing.T) {
	g, err := parser.Parse("main = kw | id\nkw = \"if\"\nid = B_ASCII_ALPHABETIC+")
	require.NoError(t, err)

	plan := Build(g)
	u, ok := plan.MatchedTypes["main"].(UnionType)
	require.True(t, ok)
	assert.Equal(t, 2, u.Arity)
	assert.True(t, plan.UnionArities[2])
}

func TestBuildRecursiveRuleTypeIsShared(t *testing.T) {
	g, err := parser.Parse(`main = "(" main ")" | "x"`)
	require.NoError(t, err)

	plan := Build(g)
	u, ok := plan.MatchedTypes["main"].(UnionType)
	require.True(t, ok)
	tup, ok := u.Alts[0].(TupleType)
	require.True(t, ok)
	require.Len(t, tup.Elems, 3)
	ruleType, ok := tup.Elems[1].(RuleType)
	require.True(t, ok)
	assert.Equal(t, "main", ruleType.Name)
	assert.True(t, ruleType.Shared)
}

func TestBuildBuiltinsUsedIsScopedToReachableFromMain(t *testing.T) {
	g, err := parser.Parse("main = word\nword = B_ASCII_ALPHABETIC+\nunused = B_ASCII_DIGIT")
	require.NoError(t, err)

	plan := Build(g)
	assert.True(t, plan.BuiltinsUsed["B_ASCII_ALPHABETIC"])
	assert.False(t, plan.BuiltinsUsed["B_ASCII_DIGIT"])
}

func TestBuildIsDeterministicAcrossRuns(t *testing.T) {
	g, err := parser.Parse("main = kw | id\nkw = \"if\"\nid = B_ASCII_ALPHABETIC+")
	require.NoError(t, err)

	first := Build(g)
	second := Build(g)
	if diff := cmp.Diff(first.UnionArities, second.UnionArities); diff != "" {
		t.Errorf("UnionArities not deterministic (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(first.BuiltinsUsed, second.BuiltinsUsed); diff != "" {
		t.Errorf("BuiltinsUsed not deterministic (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(first.StringSingletons, second.StringSingletons); diff != "" {
		t.Errorf("StringSingletons not deterministic (-first +second):\n%s", diff)
	}
}
