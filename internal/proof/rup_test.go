package proof

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xDarkicex/satcheck/internal/sat"
)

func TestRUPCheckShortCircuitsWhenTargetAlreadyContainsAKnownUnit(t *testing.T) {
	idx := NewClauseIndex(NewHashWidth())
	a := sat.NewLit(0, false)
	b := sat.NewLit(1, false)
	unit, _ := idx.Insert([]sat.Lit{a}, false)

	ok, trace := NewRUPChecker(idx).Check([]sat.Lit{a, b}, nil)
	require.True(t, ok)
	require.Equal(t, []CheckerClauseID{unit.ID}, trace)
}

func TestRUPCheckSucceedsViaUnitPropagationToConflict(t *testing.T) {
	idx := NewClauseIndex(NewHashWidth())
	a := sat.NewLit(0, false)
	b := sat.NewLit(1, false)

	unit, _ := idx.Insert([]sat.Lit{a}, false)            // "1"
	bin, _ := idx.Insert([]sat.Lit{a.Negate(), b}, false) // "-1 2"

	// target clause "2": negate to assume ¬2, then unit-propagate "1"
	// via the fact clause, which conflicts with "-1 2" once both of its
	// literals are false. Check applies the active hash width itself,
	// so hints are passed as full (unshifted) hashes.
	hints := []uint64{
		ClauseHashGlobal(unit.Literals),
		ClauseHashGlobal(bin.Literals),
	}

	ok, trace := NewRUPChecker(idx).Check([]sat.Lit{b}, hints)
	require.True(t, ok)
	require.Equal(t, []CheckerClauseID{unit.ID, bin.ID}, trace)
}

func TestRUPCheckFailsWhenHintsNeverReachAConflict(t *testing.T) {
	idx := NewClauseIndex(NewHashWidth())
	a := sat.NewLit(0, false)
	b := sat.NewLit(1, false)
	c := sat.NewLit(2, false)

	// Only a 2-unassigned-literal clause is offered as a hint: it can
	// never propagate (needs exactly one unassigned literal to fire),
	// so the walk never reaches a conflicting clause.
	stuck, _ := idx.Insert([]sat.Lit{a, b}, false)

	ok, trace := NewRUPChecker(idx).Check([]sat.Lit{c}, []uint64{ClauseHashGlobal(stuck.Literals)})
	require.False(t, ok)
	require.Nil(t, trace)
}
