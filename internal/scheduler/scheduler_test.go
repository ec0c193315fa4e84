package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-posture-summary/internal/model"
)

func TestAddRequiresSchedule(t *testing.T) {
	s := New()
	err := s.Add("run-1", model.RunSpec{})
	assert.Error(t, err)
	assert.Zero(t, s.Count())
}

func TestAddRejectsInvalidExpression(t *testing.T) {
	s := New()
	err := s.Add("run-1", model.RunSpec{Schedule: "not a cron expr"})
	assert.Error(t, err)
	assert.Zero(t, s.Count())
}

func TestAddAndRemove(t *testing.T) {
	s := New()
	require.NoError(t, s.Add("run-1", model.RunSpec{Schedule: "0 3 * * *"}))
	require.NoError(t, s.Add("run-2", model.RunSpec{Schedule: "@hourly"}))
	assert.Equal(t, 2, s.Count())

	s.Remove("run-1")
	assert.Equal(t, 1, s.Count())

	// Removing an unknown owner is a no-op.
	s.Remove("run-1")
	assert.Equal(t, 1, s.Count())
}
