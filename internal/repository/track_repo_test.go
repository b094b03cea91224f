package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/adapta/internal/domain"
	"github.com/alexanderramin/adapta/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTrack() *domain.Track {
	kickoff := time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)
	demoAt := time.Date(2024, 6, 14, 15, 30, 0, 0, time.UTC)
	return testutil.NewTestTrack("Backend onboarding",
		testutil.WithTrackDescription("First two weeks"),
		testutil.WithMilestone("m1", "Week one",
			testutil.TaskStep("laptop"),
			testutil.MeetingStep("kickoff", kickoff, 45),
		),
		testutil.WithMilestone("m2", "Week two",
			testutil.SurveyStep("feedback", "q1", "q2"),
			testutil.PresentationStep("arch", "https://example.com/arch"),
			domain.Step{ID: "demo", Title: "Demo", Content: domain.TaskContent{
				Meeting: &domain.MeetingDetails{Start: demoAt, Location: "Room 4", Participants: []string{"lead"}},
			}},
		),
		testutil.WithMilestoneEndDate("m2", time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC)),
	)
}

func TestTrackRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTrackRepo(db)
	ctx := context.Background()

	track := sampleTrack()
	require.NoError(t, repo.Create(ctx, track))

	fetched, err := repo.GetByID(ctx, track.ID)
	require.NoError(t, err)
	assert.Equal(t, "Backend onboarding", fetched.Title)
	assert.Equal(t, "First two weeks", fetched.Description)
	require.Len(t, fetched.Milestones, 2)
	assert.Equal(t, "m1", fetched.Milestones[0].ID)
	assert.Nil(t, fetched.Milestones[0].EndDate)
	require.NotNil(t, fetched.Milestones[1].EndDate)
	assert.Equal(t, "2024-06-21", fetched.Milestones[1].EndDate.Format(dateLayout))

	var ids []string
	for _, s := range fetched.Steps() {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"laptop", "kickoff", "feedback", "arch", "demo"}, ids)

	kickoff, ok := fetched.StepByID("kickoff")
	require.True(t, ok)
	m, ok := kickoff.Meeting()
	require.True(t, ok)
	assert.True(t, m.Start.Equal(time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, 45, m.DurationMin)
	assert.Equal(t, "zoom", m.Tool)

	feedback, _ := fetched.StepByID("feedback")
	assert.Equal(t, []string{"q1", "q2"}, feedback.Questions())

	arch, _ := fetched.StepByID("arch")
	assert.Equal(t, domain.PresentationContent{URL: "https://example.com/arch"}, arch.Content)
	assert.False(t, arch.Required)

	demo, _ := fetched.StepByID("demo")
	assert.Equal(t, domain.StepTask, demo.Type())
	dm, ok := demo.Meeting()
	require.True(t, ok)
	assert.Equal(t, "Room 4", dm.Location)
	assert.Equal(t, 0, dm.DurationMin)
	assert.Equal(t, []string{"lead"}, dm.Participants)
}

func TestTrackRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTrackRepo(db)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestTrackRepo_List(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTrackRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleTrack()))
	require.NoError(t, repo.Create(ctx, testutil.NewTestTrack("Empty")))

	tracks, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, tracks, 2)

	counts := map[string]int{}
	for _, tr := range tracks {
		counts[tr.Title] = tr.StepCount()
	}
	assert.Equal(t, map[string]int{"Backend onboarding": 5, "Empty": 0}, counts)
}

func TestTrackRepo_Replace(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTrackRepo(db)
	ctx := context.Background()

	track := sampleTrack()
	require.NoError(t, repo.Create(ctx, track))

	next := testutil.NewTestTrack("Backend onboarding v2",
		testutil.WithTrackID(track.ID),
		testutil.WithMilestone("only", "Single", testutil.TaskStep("laptop")),
	)
	require.NoError(t, repo.Replace(ctx, next))

	fetched, err := repo.GetByID(ctx, track.ID)
	require.NoError(t, err)
	assert.Equal(t, "Backend onboarding v2", fetched.Title)
	require.Len(t, fetched.Milestones, 1)
	assert.Equal(t, 1, fetched.StepCount())

	var steps int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM steps WHERE track_id = ?`, track.ID).Scan(&steps))
	assert.Equal(t, 1, steps)
}

func TestTrackRepo_Replace_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTrackRepo(db)

	err := repo.Replace(context.Background(), testutil.NewTestTrack("Ghost"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTrackRepo_Delete_Cascades(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTrackRepo(db)
	ctx := context.Background()

	track := sampleTrack()
	require.NoError(t, repo.Create(ctx, track))
	require.NoError(t, repo.Delete(ctx, track.ID))

	var milestones, steps int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM milestones`).Scan(&milestones))
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM steps`).Scan(&steps))
	assert.Zero(t, milestones)
	assert.Zero(t, steps)

	assert.ErrorIs(t, repo.Delete(ctx, track.ID), ErrNotFound)
}

func TestStepContent_UnknownTypeRejected(t *testing.T) {
	_, err := decodeStepContent("quiz", `{}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown step type")
}
