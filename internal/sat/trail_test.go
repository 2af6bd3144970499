package sat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTrailDecideAndBacktrack(t *testing.T) {
	tr := NewTrail(4)
	require.Equal(t, int32(0), tr.Level())

	tr.Decide(NewLit(0, false))
	require.Equal(t, int32(1), tr.Level())
	require.Equal(t, LTrue, tr.VarValue(0))

	tr.EnqueueClauseReason(NewLit(1, true), HandleNone)
	require.Equal(t, LFalse, tr.VarValue(1))

	tr.Decide(NewLit(2, false))
	require.Equal(t, int32(2), tr.Level())

	tr.BacktrackTo(0)
	require.Equal(t, int32(0), tr.Level())
	require.Equal(t, LUnassigned, tr.VarValue(0))
	require.Equal(t, LUnassigned, tr.VarValue(1))
	require.Equal(t, LUnassigned, tr.VarValue(2))

	// phase saving survives the unassign
	require.Equal(t, LTrue, tr.LastPhase(0))
}

func TestTrailReasonsAndDecisionFlag(t *testing.T) {
	tr := NewTrail(4)
	tr.Decide(NewLit(0, false))
	require.True(t, tr.IsDecision(0))

	tr.EnqueueBinaryReason(NewLit(1, false), NewLit(0, true))
	require.False(t, tr.IsDecision(1))
	require.True(t, tr.HasBinaryReason(1))
	require.Equal(t, NewLit(0, true), tr.BinaryReason(1))
}

func TestTrailLiteralsAtLevel(t *testing.T) {
	tr := NewTrail(4)
	tr.Decide(NewLit(0, false))
	tr.EnqueueClauseReason(NewLit(1, false), HandleNone)
	tr.Decide(NewLit(2, false))

	require.Equal(t, []Lit{NewLit(0, false), NewLit(1, false)}, tr.LiteralsAt(1))
	require.Equal(t, []Lit{NewLit(2, false)}, tr.LiteralsAt(2))
}
