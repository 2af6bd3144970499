package proof

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xDarkicex/satcheck/internal/sat"
)

func TestDRATWriterTextAddAndDelete(t *testing.T) {
	var buf bytes.Buffer
	w := NewDRATWriter(&buf, false)

	a := sat.NewLit(0, false)
	b := sat.NewLit(1, true)

	require.NoError(t, w.Write(Step{Kind: StepAddClause, Lits: []sat.Lit{a, b}}))
	require.NoError(t, w.Write(Step{Kind: StepDeleteClauseRedundant, Lits: []sat.Lit{a, b}}))
	require.NoError(t, w.Flush())

	require.Equal(t, "1 -2 0\nd 1 -2 0\n", buf.String())
}

func TestDRATWriterSkipsUnrepresentableSteps(t *testing.T) {
	var buf bytes.Buffer
	w := NewDRATWriter(&buf, false)

	require.NoError(t, w.Write(Step{Kind: StepAssumptions, Lits: []sat.Lit{sat.NewLit(0, false)}}))
	require.NoError(t, w.Write(Step{Kind: StepChangeHashBits, Bits: 8}))
	require.NoError(t, w.Flush())

	require.Empty(t, buf.String())
}

func TestDRATWriterBinaryTagsAndTerminatesWithZero(t *testing.T) {
	var buf bytes.Buffer
	w := NewDRATWriter(&buf, true)

	a := sat.NewLit(0, false)
	require.NoError(t, w.Write(Step{Kind: StepAddClause, Lits: []sat.Lit{a}}))
	require.NoError(t, w.Flush())

	out := buf.Bytes()
	require.Equal(t, byte('a'), out[0])
	require.Equal(t, byte(0), out[len(out)-1])
	// a's code is 0, so the LEB128 payload is a single byte (0+2=2).
	require.Equal(t, []byte{'a', 2, 0}, out)
}

func TestDRATWriterBinaryDeletionTag(t *testing.T) {
	var buf bytes.Buffer
	w := NewDRATWriter(&buf, true)

	a := sat.NewLit(0, false)
	require.NoError(t, w.Write(Step{Kind: StepDeleteClauseSatisfied, Lits: []sat.Lit{a}}))
	require.NoError(t, w.Flush())

	require.Equal(t, byte('d'), buf.Bytes()[0])
}
