package sat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSchedulerRestartsAtLubySchedule(t *testing.T) {
	s := NewScheduler()

	var restarts []uint64
	for i := uint64(1); i <= 900; i++ {
		if s.OnConflict() {
			restarts = append(restarts, i)
		}
	}

	require.Equal(t, []uint64{128, 256, 512, 640, 768}, restarts)
	require.Equal(t, uint64(900), s.Conflicts())
}

func TestSchedulerReduceTriggers(t *testing.T) {
	s := NewScheduler()
	require.False(t, s.DueMidsReduce())
	require.False(t, s.DueLocalsReduce())

	for i := 0; i < reduceMidsInterval; i++ {
		s.OnConflict()
	}
	require.True(t, s.DueMidsReduce())
	require.False(t, s.DueLocalsReduce())

	s.MarkMidsReduced()
	require.False(t, s.DueMidsReduce())

	for i := 0; i < reduceLocalsInterval-reduceMidsInterval; i++ {
		s.OnConflict()
	}
	require.True(t, s.DueLocalsReduce())

	s.MarkLocalsReduced()
	require.False(t, s.DueLocalsReduce())
}
