package sat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAssumptionStateNextUnassigned(t *testing.T) {
	trail := NewTrail(4)
	a := NewLit(0, false)
	b := NewLit(1, false)
	c := NewLit(2, false)

	asm := NewAssumptionState()
	asm.Set([]Lit{a, b, c})

	trail.Decide(a) // satisfied
	lit, idx, conflicted := asm.NextUnassigned(trail, 0)
	require.Equal(t, b, lit)
	require.Equal(t, 1, idx)
	require.False(t, conflicted)

	trail.Decide(b.Negate()) // falsifies assumption b
	lit, idx, conflicted = asm.NextUnassigned(trail, 1)
	require.Equal(t, b, lit)
	require.Equal(t, 1, idx)
	require.True(t, conflicted)
}

func TestAssumptionStateNextUnassignedExhausted(t *testing.T) {
	trail := NewTrail(2)
	a := NewLit(0, false)
	asm := NewAssumptionState()
	asm.Set([]Lit{a})
	trail.Decide(a)

	_, idx, conflicted := asm.NextUnassigned(trail, 0)
	require.Equal(t, 1, idx)
	require.False(t, conflicted)
}

func TestAssumptionStateBuildFailedCoreBinaryChain(t *testing.T) {
	alloc := NewClauseAllocator()
	trail := NewTrail(4)
	a := NewLit(0, false)
	e := NewLit(2, false)

	asm := NewAssumptionState()
	asm.Set([]Lit{a})

	trail.Decide(a)                        // level 1, assumption
	trail.EnqueueBinaryReason(e, a.Negate()) // e forced by clause {a, e}

	core := asm.BuildFailedCore(trail, alloc, e)
	require.Equal(t, []Lit{a}, core) // reported in the assumption's original polarity
	require.Equal(t, core, asm.FailedCore())
}

func TestAssumptionStateBuildFailedCoreLongClauseJoinsTwoAssumptions(t *testing.T) {
	alloc := NewClauseAllocator()
	trail := NewTrail(4)
	a := NewLit(0, false)
	b := NewLit(1, false)
	e := NewLit(2, false)

	asm := NewAssumptionState()
	asm.Set([]Lit{a, b})

	trail.Decide(a) // level 1
	trail.Decide(b) // level 2
	h := alloc.Add([]Lit{a.Negate(), b.Negate(), e}, TierIrred, 0, false)
	trail.EnqueueClauseReason(e, h)

	core := asm.BuildFailedCore(trail, alloc, e)
	require.ElementsMatch(t, []Lit{a, b}, core)
}
