// Package onboarding holds the fixed four-step stage machine a new user
// walks through before the rest of the product opens up.
package onboarding

import "errors"

// Stage is one of the fixed onboarding steps
type Stage string

const (
	StageWelcome  Stage = "welcome"
	StageProfile  Stage = "profile"
	StageCompany  Stage = "company"
	StageComplete Stage = "complete"
)

// Stages lists every stage in walk order
var Stages = []Stage{StageWelcome, StageProfile, StageCompany, StageComplete}

var (
	// ErrInvalidTransition is returned when advancing past the terminal
	// stage or retreating before the first one
	ErrInvalidTransition = errors.New("no such onboarding transition")

	// ErrStageMismatch is returned when an operation requires the user to
	// be at a specific stage and they are not
	ErrStageMismatch = errors.New("user is not at the requested onboarding stage")

	// ErrUnknownStage is returned for a stage name outside the fixed set
	ErrUnknownStage = errors.New("invalid onboarding stage")
)

// Valid reports whether s is one of the fixed stages
func (s Stage) Valid() bool {
	return s.index() >= 0
}

func (s Stage) index() int {
	for i, stage := range Stages {
		if stage == s {
			return i
		}
	}
	return -1
}

// Next returns the stage after s. Advancing from the terminal stage fails
// with ErrInvalidTransition.
func (s Stage) Next() (Stage, error) {
	i := s.index()
	if i < 0 {
		return "", ErrUnknownStage
	}
	if i >= len(Stages)-1 {
		return "", ErrInvalidTransition
	}
	return Stages[i+1], nil
}

// Previous returns the stage before s. Retreating from the first stage
// fails with ErrInvalidTransition.
func (s Stage) Previous() (Stage, error) {
	i := s.index()
	if i < 0 {
		return "", ErrUnknownStage
	}
	if i <= 0 {
		return "", ErrInvalidTransition
	}
	return Stages[i-1], nil
}

// Require checks that current equals want, the gate every stage-specific
// action runs before touching anything.
func Require(current, want Stage) error {
	if !want.Valid() {
		return ErrUnknownStage
	}
	if current != want {
		return ErrStageMismatch
	}
	return nil
}
