package sat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVariableTableEnsureUserVarIsIdempotent(t *testing.T) {
	vt := NewVariableTable()
	v1 := vt.EnsureUserVar(1)
	v2 := vt.EnsureUserVar(1)
	require.Equal(t, v1, v2)
	require.Equal(t, 1, vt.UserOf(v1))
	require.Equal(t, ModeSample, vt.Mode(v1))
}

func TestVariableTableNewWitnessHasNoUserName(t *testing.T) {
	vt := NewVariableTable()
	w := vt.NewWitness()
	require.Equal(t, 0, vt.UserOf(w))
	require.Equal(t, ModeWitness, vt.Mode(w))
}

func TestVariableTableDemoteIsForwardOnly(t *testing.T) {
	vt := NewVariableTable()
	v := vt.EnsureUserVar(1)

	vt.Demote(v, ModeHidden)
	require.Equal(t, ModeHidden, vt.Mode(v))

	vt.Demote(v, ModeSample) // attempted backward transition, ignored
	require.Equal(t, ModeHidden, vt.Mode(v))
}

func TestVariableTableDeleteFreesSolverSlotForReuse(t *testing.T) {
	vt := NewVariableTable()
	v1 := vt.EnsureUserVar(1)
	g1 := vt.GlobalOf(v1)
	capBefore := vt.SolverCapacity()

	vt.Delete(v1)
	require.Equal(t, Var(-1), vt.SolverOf(g1))
	require.Equal(t, ModeHidden, vt.byGlobal[g1].Mode)

	v2 := vt.EnsureUserVar(2)
	require.Equal(t, v1, v2) // reused the freed dense slot
	require.Equal(t, capBefore, vt.SolverCapacity())

	// the deleted variable's global/user identity remains valid
	require.Equal(t, 1, int(vt.byGlobal[g1].User))
}

func TestVariableTableCountGrowsPerGlobalAllocation(t *testing.T) {
	vt := NewVariableTable()
	vt.EnsureUserVar(1)
	vt.EnsureUserVar(2)
	vt.NewWitness()
	require.Equal(t, 3, vt.Count())
}
