package tracking

import (
	"fmt"
	"testing"

	"github.com/alexanderramin/adapta/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fourStepTrack() *domain.Track {
	return &domain.Track{
		ID:    "t1",
		Title: "Onboarding",
		Milestones: []domain.Milestone{
			{ID: "m1", Title: "First week", Steps: []domain.Step{
				{ID: "s1", Title: "Accounts", Required: true, Content: domain.TaskContent{}},
				{ID: "s2", Title: "Survey", Content: domain.SurveyContent{Questions: []string{"q1"}}},
				{ID: "s3", Title: "Deck", Content: domain.PresentationContent{}},
				{ID: "s4", Title: "Kickoff", Required: true, Content: domain.MeetingContent{}},
			}},
		},
	}
}

func TestAggregate_HalfDone(t *testing.T) {
	p := Aggregate(fourStepTrack(), domain.StepProgress{
		"s1": {Completed: true},
		"s3": {Completed: true},
	})
	assert.Equal(t, Progress{Completed: 2, Total: 4, Percent: 50}, p)
}

func TestAggregate_AllDone(t *testing.T) {
	progress := domain.StepProgress{}
	for _, id := range []string{"s1", "s2", "s3", "s4"} {
		progress = progress.With(id, domain.StepProgressEntry{Completed: true})
	}
	p := Aggregate(fourStepTrack(), progress)
	assert.Equal(t, Progress{Completed: 4, Total: 4, Percent: 100}, p)
}

func TestAggregate_EmptyTrack(t *testing.T) {
	p := Aggregate(&domain.Track{Title: "empty"}, domain.StepProgress{"ghost": {Completed: true}})
	assert.Equal(t, Progress{}, p)
}

func TestAggregate_NilTrack(t *testing.T) {
	assert.Equal(t, Progress{}, Aggregate(nil, nil))
}

func TestAggregate_IgnoresStaleAndIncompleteEntries(t *testing.T) {
	p := Aggregate(fourStepTrack(), domain.StepProgress{
		"s1":      {Completed: true},
		"s2":      {Completed: false},
		"removed": {Completed: true},
	})
	assert.Equal(t, 1, p.Completed)
	assert.Equal(t, 4, p.Total)
	assert.Equal(t, 25, p.Percent)
}

func TestPercent_Rounding(t *testing.T) {
	cases := []struct {
		completed, total, want int
	}{
		{0, 0, 0},
		{0, 3, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13}, // 12.5 rounds up
		{3, 3, 100},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Percent(tc.completed, tc.total), "%d/%d", tc.completed, tc.total)
	}
}

func TestAggregateMilestones(t *testing.T) {
	track := fourStepTrack()
	track.Milestones = append(track.Milestones, domain.Milestone{
		ID: "m2", Title: "Second week", Steps: []domain.Step{
			{ID: "s5", Title: "Retro", Content: domain.TaskContent{}},
		},
	})

	got := AggregateMilestones(track, domain.StepProgress{
		"s1": {Completed: true},
		"s5": {Completed: true},
	})
	require.Len(t, got, 2)

	assert.Equal(t, "m1", got[0].MilestoneID)
	assert.Equal(t, Progress{Completed: 1, Total: 4, Percent: 25}, got[0].Progress)
	assert.False(t, got[0].RequiredMet, "s4 is required and open")

	assert.Equal(t, "m2", got[1].MilestoneID)
	assert.Equal(t, 100, got[1].Progress.Percent)
	assert.True(t, got[1].RequiredMet)
}

func TestStaleEntries(t *testing.T) {
	stale := StaleEntries(fourStepTrack(), domain.StepProgress{
		"s1":   {Completed: true},
		"old1": {Completed: true},
		"old2": {},
	})
	assert.ElementsMatch(t, []string{"old1", "old2"}, stale)
}

func BenchmarkAggregate(b *testing.B) {
	track := &domain.Track{Title: "big"}
	progress := domain.StepProgress{}
	for m := 0; m < 20; m++ {
		ms := domain.Milestone{ID: fmt.Sprintf("m%d", m)}
		for s := 0; s < 50; s++ {
			id := fmt.Sprintf("m%d-s%d", m, s)
			ms.Steps = append(ms.Steps, domain.Step{ID: id, Content: domain.TaskContent{}})
			if s%2 == 0 {
				progress[id] = domain.StepProgressEntry{Completed: true}
			}
		}
		track.Milestones = append(track.Milestones, ms)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Aggregate(track, progress)
	}
}
