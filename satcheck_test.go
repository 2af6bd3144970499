package satcheck

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xDarkicex/satcheck/internal/proof"
	"github.com/xDarkicex/satcheck/internal/sat"
)

func TestSessionSatisfiableRoundTripsThroughProofFile(t *testing.T) {
	var buf bytes.Buffer
	s := NewSession(SessionConfig{ProofWriter: &buf})

	require.NoError(t, s.AddClause(1))
	require.NoError(t, s.AddClause(-1, 2))
	require.NoError(t, s.AddClause(-2, 3))

	res, err := s.Solve()
	require.NoError(t, err)
	require.Equal(t, sat.Satisfiable, res.Verdict)

	verdict, err := Verify(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, proof.CheckVerified, verdict)
}

func TestSessionUnsatisfiableRoundTripsThroughProofFile(t *testing.T) {
	var buf bytes.Buffer
	s := NewSession(SessionConfig{ProofWriter: &buf})

	require.NoError(t, s.AddClause(1))
	require.NoError(t, s.AddClause(-1))

	res, err := s.Solve()
	require.NoError(t, err)
	require.Equal(t, sat.Unsatisfiable, res.Verdict)

	verdict, err := Verify(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, proof.CheckVerified, verdict)
}

func TestSessionVerifyOnTheFlyChecksInProcessDuringSolve(t *testing.T) {
	s := NewSession(SessionConfig{VerifyOnTheFly: true})
	require.NotNil(t, s.Checker())

	require.NoError(t, s.AddClause(1, 2))
	require.NoError(t, s.AddClause(-1, 2))
	require.NoError(t, s.AddClause(-2))

	res, err := s.Solve()
	require.NoError(t, err)
	require.Equal(t, sat.Unsatisfiable, res.Verdict)

	verdict, err := s.Checker().Verdict()
	require.NoError(t, err)
	require.Equal(t, proof.CheckVerified, verdict)
}

func TestSessionStatsReflectsSolverRun(t *testing.T) {
	s := NewSession(SessionConfig{})
	require.NoError(t, s.AddClause(1, 2))
	require.NoError(t, s.AddClause(-1, 2))
	require.NoError(t, s.AddClause(-2, 3))
	require.NoError(t, s.AddClause(-2, -3))

	_, err := s.Solve()
	require.NoError(t, err)
	require.GreaterOrEqual(t, s.Stats().Conflicts, uint64(1))
}
