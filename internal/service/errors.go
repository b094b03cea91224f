package service

import "errors"

var (
	// ErrNotAssigned is returned when an operation needs an existing
	// employee+track assignment and there is none.
	ErrNotAssigned = errors.New("track not assigned to employee")
	// ErrStepNotInTrack is returned when a step ID is not part of the
	// assigned track.
	ErrStepNotInTrack = errors.New("step not in track")
	ErrTrackExists    = errors.New("track already exists")
	ErrInvalidAnswers = errors.New("invalid survey answers")
)
