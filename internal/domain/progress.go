package domain

import (
	"maps"
	"time"
)

// StepProgressEntry is one employee's completion record for a single step.
type StepProgressEntry struct {
	Completed bool
	Answers   map[string]string
	UpdatedAt time.Time
}

// StepProgress maps step IDs to completion records. Values are treated as
// immutable: With and Without return new maps and leave the receiver intact.
type StepProgress map[string]StepProgressEntry

// IsCompleted reports whether stepID is recorded as completed.
func (p StepProgress) IsCompleted(stepID string) bool {
	e, ok := p[stepID]
	return ok && e.Completed
}

// With returns a copy of p with stepID set to entry.
func (p StepProgress) With(stepID string, entry StepProgressEntry) StepProgress {
	next := make(StepProgress, len(p)+1)
	maps.Copy(next, p)
	if entry.Answers != nil {
		entry.Answers = maps.Clone(entry.Answers)
	}
	next[stepID] = entry
	return next
}

// Without returns a copy of p with stepID removed.
func (p StepProgress) Without(stepID string) StepProgress {
	next := maps.Clone(p)
	if next == nil {
		next = StepProgress{}
	}
	delete(next, stepID)
	return next
}

// CompletedIDs returns the IDs of completed steps in no particular order.
func (p StepProgress) CompletedIDs() []string {
	var ids []string
	for id, e := range p {
		if e.Completed {
			ids = append(ids, id)
		}
	}
	return ids
}
