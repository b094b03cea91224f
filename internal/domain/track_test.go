package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)

func sampleTrack() *Track {
	return &Track{
		ID:    "t1",
		Title: "Backend onboarding",
		Milestones: []Milestone{
			{ID: "m-a", Title: "Week 1", Steps: []Step{
				{ID: "s1", Title: "Read handbook", Content: TaskContent{}},
				{ID: "s2", Title: "Intro survey", Content: SurveyContent{Questions: []string{"q1", "q2"}}},
			}},
			{ID: "m-b", Title: "Week 2", Steps: []Step{
				{ID: "s3", Title: "Architecture deck", Content: PresentationContent{}},
				{ID: "s4", Title: "Mentor 1:1", Content: MeetingContent{MeetingDetails{Start: testNow, DurationMin: 30}}},
			}},
		},
	}
}

func TestTrack_StepsPreservesOrder(t *testing.T) {
	steps := sampleTrack().Steps()
	require.Len(t, steps, 4)
	ids := make([]string, len(steps))
	for i, s := range steps {
		ids[i] = s.ID
	}
	assert.Equal(t, []string{"s1", "s2", "s3", "s4"}, ids)
}

func TestTrack_StepCount(t *testing.T) {
	assert.Equal(t, 4, sampleTrack().StepCount())
	assert.Equal(t, 0, (&Track{Title: "empty"}).StepCount())

	var nilTrack *Track
	assert.Equal(t, 0, nilTrack.StepCount())
	assert.Nil(t, nilTrack.Steps())
}

func TestTrack_StepByID(t *testing.T) {
	tr := sampleTrack()

	s, ok := tr.StepByID("s3")
	require.True(t, ok)
	assert.Equal(t, StepPresentation, s.Type())

	_, ok = tr.StepByID("missing")
	assert.False(t, ok)
}

func TestTrack_MilestoneForStep(t *testing.T) {
	tr := sampleTrack()

	m, ok := tr.MilestoneForStep("s4")
	require.True(t, ok)
	assert.Equal(t, "m-b", m.ID)

	_, ok = tr.MilestoneForStep("nope")
	assert.False(t, ok)
}

func TestStep_Meeting(t *testing.T) {
	slot := MeetingDetails{Start: testNow, DurationMin: 45, Location: "Room 4"}
	cases := []struct {
		name    string
		content StepContent
		want    bool
	}{
		{"meeting", MeetingContent{slot}, true},
		{"task with meeting", TaskContent{Meeting: &slot}, true},
		{"plain task", TaskContent{}, false},
		{"survey", SurveyContent{Questions: []string{"q"}}, false},
		{"presentation", PresentationContent{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Step{ID: "x", Content: tc.content}.Meeting()
			assert.Equal(t, tc.want, ok)
			if tc.want {
				assert.Equal(t, slot.Start, got.Start)
				assert.Equal(t, 45, got.DurationMin)
			}
		})
	}
}

func TestStep_TypeWithoutContent(t *testing.T) {
	assert.Equal(t, StepType(""), Step{ID: "x"}.Type())
}

func TestTrack_Validate(t *testing.T) {
	require.NoError(t, sampleTrack().Validate())

	dup := sampleTrack()
	dup.Milestones[1].Steps[0].ID = "s1"
	err := dup.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate step id")

	untitled := sampleTrack()
	untitled.Title = ""
	assert.Error(t, untitled.Validate())

	noContent := sampleTrack()
	noContent.Milestones[0].Steps[0].Content = nil
	assert.Error(t, noContent.Validate())
}
