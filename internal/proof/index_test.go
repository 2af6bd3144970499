package proof

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xDarkicex/satcheck/internal/sat"
)

func TestCanonicalizeSortsDedupesAndDetectsTautology(t *testing.T) {
	a := sat.NewLit(0, false)
	b := sat.NewLit(1, false)
	notA := sat.NewLit(0, true)

	out, taut := Canonicalize([]sat.Lit{b, a, a})
	require.False(t, taut)
	require.Equal(t, []sat.Lit{a, b}, out)

	out, taut = Canonicalize([]sat.Lit{a, notA, b})
	require.True(t, taut)
	require.Len(t, out, 3)
}

func TestClauseIndexInsertDedupesIdenticalClauseAndBumpsRefCounts(t *testing.T) {
	idx := NewClauseIndex(NewHashWidth())
	a := sat.NewLit(0, false)
	b := sat.NewLit(1, false)

	c1, fresh1 := idx.Insert([]sat.Lit{a, b}, false)
	require.True(t, fresh1)
	require.Equal(t, 1, c1.RefIrred)
	require.Equal(t, 0, c1.RefRed)

	c2, fresh2 := idx.Insert([]sat.Lit{a, b}, true)
	require.False(t, fresh2)
	require.Same(t, c1, c2)
	require.Equal(t, 1, c1.RefIrred)
	require.Equal(t, 1, c1.RefRed)
	require.Equal(t, 1, idx.LiveCount())
}

func TestClauseIndexRemoveReportsDeadAndNewlyRedundant(t *testing.T) {
	idx := NewClauseIndex(NewHashWidth())
	a := sat.NewLit(0, false)
	b := sat.NewLit(1, false)

	idx.Insert([]sat.Lit{a, b}, false) // irredundant ref=1
	idx.Insert([]sat.Lit{a, b}, true)  // redundant ref=1 too

	dead, newlyRedundant, c := idx.Remove([]sat.Lit{a, b}, false)
	require.False(t, dead)
	require.True(t, newlyRedundant)
	require.Equal(t, 0, c.RefIrred)
	require.Equal(t, 1, c.RefRed)

	dead, newlyRedundant, c = idx.Remove([]sat.Lit{a, b}, true)
	require.True(t, dead)
	require.False(t, newlyRedundant)
	require.Equal(t, 0, idx.LiveCount())
	_ = c
}

func TestClauseIndexRemoveUnknownClauseIsNoOp(t *testing.T) {
	idx := NewClauseIndex(NewHashWidth())
	a := sat.NewLit(0, false)

	dead, newlyRedundant, c := idx.Remove([]sat.Lit{a}, false)
	require.False(t, dead)
	require.False(t, newlyRedundant)
	require.Nil(t, c)
}

func TestClauseIndexTracksUnitValuesAndClearsOnRemoval(t *testing.T) {
	idx := NewClauseIndex(NewHashWidth())
	a := sat.NewLit(0, false)

	idx.Insert([]sat.Lit{a}, false)
	lit, ok := idx.UnitValue(a.Var())
	require.True(t, ok)
	require.Equal(t, a, lit)

	idx.Remove([]sat.Lit{a}, false)
	_, ok = idx.UnitValue(a.Var())
	require.False(t, ok)
}

func TestClauseIndexRehashPreservesLookup(t *testing.T) {
	idx := NewClauseIndex(NewHashWidth())
	a := sat.NewLit(0, false)
	b := sat.NewLit(1, false)
	c := sat.NewLit(2, true)

	idx.Insert([]sat.Lit{a, b}, false)
	idx.Insert([]sat.Lit{b, c}, false)
	require.Equal(t, 2, idx.LiveCount())

	idx.Rehash(8)
	require.Equal(t, 2, idx.LiveCount())
	require.NotNil(t, idx.Find([]sat.Lit{a, b}))
	require.NotNil(t, idx.Find([]sat.Lit{b, c}))
	require.Nil(t, idx.Find([]sat.Lit{a, c}))
}

func TestClauseIndexBucketCandidatesMatchesActiveWidth(t *testing.T) {
	idx := NewClauseIndex(NewHashWidth())
	a := sat.NewLit(0, false)
	b := sat.NewLit(1, false)

	idx.Insert([]sat.Lit{a, b}, false)
	full := ClauseHashGlobal([]sat.Lit{a, b})
	candidates := idx.BucketCandidates(full)
	require.Len(t, candidates, 1)
	require.Equal(t, []sat.Lit{a, b}, candidates[0].Literals)
}
