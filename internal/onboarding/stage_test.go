package onboarding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageValid(t *testing.T) {
	for _, stage := range Stages {
		assert.True(t, stage.Valid(), "stage %q should be valid", stage)
	}

	assert.False(t, Stage("").Valid())
	assert.False(t, Stage("Welcome").Valid())
	assert.False(t, Stage("onboarded").Valid())
}

func TestStageNext(t *testing.T) {
	next, err := StageWelcome.Next()
	require.NoError(t, err)
	assert.Equal(t, StageProfile, next)

	next, err = StageProfile.Next()
	require.NoError(t, err)
	assert.Equal(t, StageCompany, next)

	next, err = StageCompany.Next()
	require.NoError(t, err)
	assert.Equal(t, StageComplete, next)
}

func TestStageNextAtTerminal(t *testing.T) {
	_, err := StageComplete.Next()
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestStagePrevious(t *testing.T) {
	previous, err := StageComplete.Previous()
	require.NoError(t, err)
	assert.Equal(t, StageCompany, previous)

	previous, err = StageProfile.Previous()
	require.NoError(t, err)
	assert.Equal(t, StageWelcome, previous)
}

func TestStagePreviousAtFirst(t *testing.T) {
	_, err := StageWelcome.Previous()
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestStageUnknown(t *testing.T) {
	_, err := Stage("resume").Next()
	assert.ErrorIs(t, err, ErrUnknownStage)

	_, err = Stage("resume").Previous()
	assert.ErrorIs(t, err, ErrUnknownStage)
}

func TestRequire(t *testing.T) {
	assert.NoError(t, Require(StageProfile, StageProfile))
	assert.ErrorIs(t, Require(StageWelcome, StageProfile), ErrStageMismatch)
	assert.ErrorIs(t, Require(StageProfile, Stage("nonsense")), ErrUnknownStage)
}

func TestWalkForwardAndBack(t *testing.T) {
	// A full forward walk visits every stage exactly once
	current := StageWelcome
	visited := []Stage{current}
	for {
		next, err := current.Next()
		if err != nil {
			break
		}
		visited = append(visited, next)
		current = next
	}
	assert.Equal(t, Stages, visited)

	// And the walk back ends where it started
	for {
		previous, err := current.Previous()
		if err != nil {
			break
		}
		current = previous
	}
	assert.Equal(t, StageWelcome, current)
}
