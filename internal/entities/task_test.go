package entities

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTaskStatusValid(t *testing.T) {
	for _, s := range []TaskStatus{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled} {
		require.True(t, s.Valid(), "status %q", s)
	}
	for _, s := range []TaskStatus{"", "done", "PENDING", "archived"} {
		require.False(t, s.Valid(), "status %q", s)
	}
}

func TestTaskPriorityValid(t *testing.T) {
	for _, p := range []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent} {
		require.True(t, p.Valid(), "priority %q", p)
	}
	for _, p := range []TaskPriority{"", "asap", "critical", "HIGH"} {
		require.False(t, p.Valid(), "priority %q", p)
	}
}
