package proof

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xDarkicex/satcheck/internal/sat"
)

func dimacsLits(nums ...int) []sat.Lit {
	out := make([]sat.Lit, len(nums))
	for i, n := range nums {
		v := n
		neg := false
		if v < 0 {
			v = -v
			neg = true
		}
		out[i] = sat.NewLit(sat.Var(v-1), neg)
	}
	return out
}

// TestCheckerConflictingUnitsFlagsUnsatCore mirrors S1: `1; -1` recorded
// as two AddClause steps must flip the checker into a unit conflict.
func TestCheckerConflictingUnitsFlagsUnsatCore(t *testing.T) {
	c := NewChecker()
	require.NoError(t, c.Process(Step{Kind: StepAddClause, Lits: dimacsLits(1)}))
	require.NoError(t, c.Process(Step{Kind: StepAddClause, Lits: dimacsLits(-1)}))

	verdict, err := c.Verdict()
	require.Equal(t, CheckNotVerified, verdict)
	require.Error(t, err)
	require.True(t, c.hasConflict)
}

// TestCheckerTautologicalAddClauseIsRecordedNotInserted mirrors S2: `1
// -1 2` is a tautology and must be accepted without entering the clause
// index.
func TestCheckerTautologicalAddClauseIsRecordedNotInserted(t *testing.T) {
	c := NewChecker()
	require.NoError(t, c.Process(Step{Kind: StepAddClause, Lits: dimacsLits(1, -1, 2)}))
	require.Equal(t, 0, c.idx.LiveCount())
	require.False(t, c.hasConflict)
}

// TestCheckerUnitClausesStepVerifiesViaRUP exercises the batched
// UnitClauses step (the propagation-trail record of §4.O): once `1` is
// an established fact, re-asserting it as a propagated unit with the
// fact clause's own hash as its hint passes via the RUP short-circuit
// for an already-known unit value.
func TestCheckerUnitClausesStepVerifiesViaRUP(t *testing.T) {
	c := NewChecker()
	require.NoError(t, c.Process(Step{Kind: StepAddClause, Lits: dimacsLits(1)}))

	fact := c.idx.Find(dimacsLits(1))
	require.NotNil(t, fact)

	hash := ClauseHashGlobal(dimacsLits(1))
	err := c.Process(Step{
		Kind:  StepUnitClauses,
		Units: []UnitEntry{{Lit: dimacsLits(1)[0], Hash: hash}},
	})
	require.NoError(t, err)

	lit, ok := c.idx.UnitValue(dimacsLits(1)[0].Var())
	require.True(t, ok)
	require.Equal(t, dimacsLits(1)[0], lit)
}

func TestCheckerAtClauseRejectsTautologicalTarget(t *testing.T) {
	c := NewChecker()
	err := c.Process(Step{Kind: StepAtClauseRedundant, Lits: dimacsLits(1, -1, 2)})
	require.Error(t, err)
}

func TestCheckerAtClauseFailsWhenRUPCannotDeriveClause(t *testing.T) {
	c := NewChecker()
	require.NoError(t, c.Process(Step{Kind: StepAddClause, Lits: dimacsLits(1, 2)}))

	hash := ClauseHashGlobal(dimacsLits(1, 2))
	err := c.Process(Step{Kind: StepAtClauseRedundant, Lits: dimacsLits(3), Hashes: []uint64{hash}})
	require.Error(t, err)
}

// TestCheckerDuplicateDeletionFailsOnceRefCountExhausted mirrors S6:
// three redundant copies of the same clause require three delete steps
// before a fourth delete of the same clause fails with "unknown
// clause".
func TestCheckerDuplicateDeletionFailsOnceRefCountExhausted(t *testing.T) {
	c := NewChecker()
	canon, taut := Canonicalize(dimacsLits(1, 2, 3))
	require.False(t, taut)

	c.idx.Insert(canon, true)
	c.idx.Insert(canon, true)
	c.idx.Insert(canon, true)
	require.Equal(t, 1, c.idx.LiveCount())

	for i := 0; i < 3; i++ {
		require.NoError(t, c.processDelete(canon, deleteRedundant), "delete %d", i+1)
	}
	require.Equal(t, 0, c.idx.LiveCount())

	err := c.processDelete(canon, deleteRedundant)
	require.Error(t, err)
}

func TestCheckerDeleteSimplifiedRequiresStrictSupersetOfLastIrredundant(t *testing.T) {
	c := NewChecker()
	wide := dimacsLits(1, 2, 3)
	hash := ClauseHashGlobal(dimacsLits(1))

	// Insert the wide clause as the AT/irredundant predecessor via a
	// trivial unit shortcut: "1" is already a fact, so any clause
	// containing it is immediately RUP-satisfied.
	c.idx.Insert(dimacsLits(1), false)
	c.vars.MarkUnit(int32(dimacsLits(1)[0].Var()), dimacsLits(1)[0])
	require.NoError(t, c.Process(Step{Kind: StepAtClauseIrredundant, Lits: wide, Hashes: []uint64{hash}}))

	narrower := dimacsLits(1, 2)
	c.idx.Insert(narrower, true) // must already be present for Delete to reach the superset check
	err := c.processDelete(narrower, deleteSimplified)
	require.Error(t, err, "narrower clause is not a strict superset of the irredundant predecessor")
}

func TestCheckerVerdictIsUnknownUntilEndStep(t *testing.T) {
	c := NewChecker()
	require.NoError(t, c.Process(Step{Kind: StepAddClause, Lits: dimacsLits(1, 2)}))

	verdict, err := c.Verdict()
	require.Equal(t, CheckUnknown, verdict)
	require.Error(t, err)

	require.NoError(t, c.Process(Step{Kind: StepEnd}))
	verdict, err = c.Verdict()
	require.Equal(t, CheckVerified, verdict)
	require.NoError(t, err)
}
