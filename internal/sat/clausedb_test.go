package sat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTierForGlue(t *testing.T) {
	cases := []struct {
		glue int
		want Tier
	}{
		{0, TierCore}, {2, TierCore}, {3, TierMid}, {6, TierMid}, {7, TierLocal}, {100, TierLocal},
	}
	for _, c := range cases {
		require.Equal(t, c.want, tierForGlue(c.glue))
	}
}

func TestClauseDBAddAndCount(t *testing.T) {
	alloc := NewClauseAllocator()
	db := NewClauseDB(alloc)

	db.AddIrredundant([]Lit{NewLit(0, false), NewLit(1, false), NewLit(2, false)})
	db.AddLearned([]Lit{NewLit(3, false), NewLit(4, false), NewLit(5, false)}, 2)
	db.AddLearned([]Lit{NewLit(6, false), NewLit(7, false), NewLit(8, false)}, 10)

	require.Equal(t, 1, db.CountByTier(TierIrred))
	require.Equal(t, 1, db.CountByTier(TierCore))
	require.Equal(t, 1, db.CountByTier(TierLocal))
	require.Equal(t, 3, db.Size())
}

func TestClauseDBDeleteUpdatesCounts(t *testing.T) {
	alloc := NewClauseAllocator()
	db := NewClauseDB(alloc)
	h := db.AddLearned([]Lit{NewLit(0, false), NewLit(1, false), NewLit(2, false)}, 8)

	require.Equal(t, 1, db.CountByTier(TierLocal))
	db.Delete(h)
	require.Equal(t, 0, db.CountByTier(TierLocal))
	require.True(t, alloc.Deleted(h))
}

func TestClauseDBChangeTier(t *testing.T) {
	alloc := NewClauseAllocator()
	db := NewClauseDB(alloc)
	h := db.AddLearned([]Lit{NewLit(0, false), NewLit(1, false), NewLit(2, false)}, 4)

	require.Equal(t, 1, db.CountByTier(TierMid))
	db.ChangeTier(h, TierLocal)
	require.Equal(t, 0, db.CountByTier(TierMid))
	require.Equal(t, 1, db.CountByTier(TierLocal))
	require.Equal(t, TierLocal, alloc.Tier(h))
}

func TestClauseDBNeedsCompaction(t *testing.T) {
	alloc := NewClauseAllocator()
	db := NewClauseDB(alloc)
	require.False(t, db.NeedsCompaction())
}
