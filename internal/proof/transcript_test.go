package proof

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xDarkicex/satcheck/internal/sat"
)

func TestTranscriptRecordsEventsInOrder(t *testing.T) {
	tr := NewTranscript()
	a := sat.NewLit(0, false)

	tr.RecordAssumptions([]sat.Lit{a})
	tr.RecordModel([]sat.Lit{a})
	tr.RecordTautology(5)
	tr.RecordNewlyIrredundant(6)
	tr.RecordFailedAssumptions([]sat.Lit{a})

	events := tr.Events()
	require.Len(t, events, 5)
	require.Equal(t, EventAssumptions, events[0].Kind)
	require.Equal(t, EventModel, events[1].Kind)
	require.Equal(t, EventTautology, events[2].Kind)
	require.Equal(t, CheckerClauseID(5), events[2].ClauseID)
	require.Equal(t, EventNewlyIrredundant, events[3].Kind)
	require.Equal(t, CheckerClauseID(6), events[3].ClauseID)
	require.Equal(t, EventFailedAssumptions, events[4].Kind)
}
