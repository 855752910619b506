package analyzer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna-peggy/peggy/parser"
)

func TestFindRecursiveRefsDetectsSelfCycle(t *testing.T) {
	g, err := parser.Parse(`main = "(" main ")" | "x"`)
	require.NoError(t, err)

	rec := FindRecursiveRefs(g)
	require.Contains(t, rec, "main")
	assert.True(t, rec["main"]["main"])
}

func TestFindRecursiveRefsHasEntryForEveryRule(t *testing.T) {
	g, err := parser.Parse("main = word\nword = B_ASCII_ALPHABETIC+\nunused = \"z\"")
	require.NoError(t, err)

	rec := FindRecursiveRefs(g)
	for _, name := range g.Names() {
		if _, ok := rec[name]; !ok {
			t.Errorf("missing recursion entry for rule %q", name)
		}
	}
	assert.Empty(t, rec["word"])
	assert.Empty(t, rec["unused"])
}

func TestReachableRulesExcludesUnreferencedRules(t *testing.T) {
	g, err := parser.Parse("main = word\nword = B_ASCII_ALPHABETIC+\nunused = \"z\"")
	require.NoError(t, err)

	reach := ReachableRules(g, "main")
	assert.True(t, reach["main"])
	assert.True(t, reach["word"])
	assert.False(t, reach["unused"])
}

func TestComputeSilenceHonorsSilentFlagOnRuleRef(t *testing.T) {
	g, err := parser.Parse("main = _:word\nword = B_ASCII_ALPHABETIC+")
	require.NoError(t, err)

	silent := ComputeSilence(g)
	assert.True(t, silent["main"])
	assert.False(t, silent["word"])
}

func TestComputeSilenceSuiteRequiresAllChildrenSilent(t *testing.T) {
	g, err := parser.Parse("main = _:B_ASCII_WHITESPACE* word\nword = B_ASCII_ALPHABETIC+")
	require.NoError(t, err)

	silent := ComputeSilence(g)
	assert.False(t, silent["main"], "main has a non-silent child (word)")
}

func TestComputeSilenceUnionRequiresAllAltsSilent(t *testing.T) {
	g, err := parser.Parse("main = _:a | _:b\na = \"x\"\nb = \"y\"")
	require.NoError(t, err)

	silent := ComputeSilence(g)
	assert.True(t, silent["main"])
}

func TestComputeSilenceSelfRecursionDoesNotInfiniteLoop(t *testing.T) {
	g, err := parser.Parse(`main = "(" main ")" | "x"`)
	require.NoError(t, err)

	// Must terminate; a CstString branch makes the rule non-silent.
	silent := ComputeSilence(g)
	assert.False(t, silent["main"])
}

func TestUnionArities(t *testing.T) {
	g, err := parser.Parse("main = a | b | c\na = \"1\"\nb = \"2\"\nc = \"3\"")
	require.NoError(t, err)

	arities := UnionArities(g)
	assert.True(t, arities[3])
	assert.False(t, arities[2])
}

func TestStringSingletonsDeduplicateLiterals(t *testing.T) {
	g, err := parser.Parse("main = a | b\na = \"if\"\nb = \"if\"")
	require.NoError(t, err)

	keys := StringSingletons(g)
	require.Contains(t, keys, "if")
	assert.Equal(t, 0, keys["if"].Occurrence)
}

func TestDeriveIdentBaseEscapesSymbols(t *testing.T) {
	assert.Equal(t, "ifX", DeriveIdentBase("if x"))
	assert.Equal(t, "__Plus__", DeriveIdentBase("+"))
	assert.Equal(t, "a_b", DeriveIdentBase("a_b"))
}

func TestAnalysesAreDeterministicAcrossRuns(t *testing.T) {
	g, err := parser.Parse("main = a | b\na = \"if\"\nb = B_ASCII_ALPHABETIC+")
	require.NoError(t, err)

	first := StringSingletons(g)
	second := StringSingletons(g)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("StringSingletons is not deterministic across runs (-first +second):\n%s", diff)
	}

	rec1 := FindRecursiveRefs(g)
	rec2 := FindRecursiveRefs(g)
	if diff := cmp.Diff(rec1, rec2); diff != "" {
		t.Errorf("FindRecursiveRefs is not deterministic across runs (-first +second):\n%s", diff)
	}
}
