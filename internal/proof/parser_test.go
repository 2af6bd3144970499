package proof

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xDarkicex/satcheck/internal/sat"
)

func TestParserRunReturnsVerifiedOnCleanEndStep(t *testing.T) {
	var buf bytes.Buffer
	enc := NewNativeEncoder(&buf)
	require.NoError(t, enc.Encode(Step{Kind: StepAddClause, Lits: []sat.Lit{sat.NewLit(0, false), sat.NewLit(1, false)}}))
	require.NoError(t, enc.Encode(Step{Kind: StepEnd}))

	p := NewParser(NewNativeDecoder(&buf), NewChecker())
	verdict, err := p.Run()
	require.NoError(t, err)
	require.Equal(t, CheckVerified, verdict)
}

func TestParserRunReportsIncompleteOnTruncatedStream(t *testing.T) {
	var buf bytes.Buffer
	enc := NewNativeEncoder(&buf)
	require.NoError(t, enc.Encode(Step{Kind: StepAddClause, Lits: []sat.Lit{sat.NewLit(0, false)}}))
	require.NoError(t, enc.Flush())
	// No End step written: the stream simply stops.

	p := NewParser(NewNativeDecoder(&buf), NewChecker())
	verdict, err := p.Run()
	require.Error(t, err)
	require.Equal(t, CheckNotVerified, verdict)
}

func TestParserRunPropagatesCheckerProcessingError(t *testing.T) {
	var buf bytes.Buffer
	enc := NewNativeEncoder(&buf)
	tautology := []sat.Lit{sat.NewLit(0, false), sat.NewLit(0, true)}
	require.NoError(t, enc.Encode(Step{Kind: StepAtClauseRedundant, Lits: tautology}))
	require.NoError(t, enc.Encode(Step{Kind: StepEnd}))

	p := NewParser(NewNativeDecoder(&buf), NewChecker())
	verdict, err := p.Run()
	require.Error(t, err)
	require.Equal(t, CheckNotVerified, verdict)
}
