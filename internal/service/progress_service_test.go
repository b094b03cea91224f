package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/adapta/internal/app"
	"github.com/alexanderramin/adapta/internal/domain"
	"github.com/alexanderramin/adapta/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressOverview_AllAssignments(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	emp := seedEmployee(t, r, "Ada")
	mentor := seedEmployee(t, r, "Grace")
	onboarding := seedTrack(t, r, fourStepTrack())
	security := seedTrack(t, r, testutil.NewTestTrack("Security",
		testutil.WithMilestone("s1", "Basics", testutil.TaskStep("sso"), testutil.TaskStep("vpn")),
		testutil.WithMilestone("s2", "Advanced", testutil.PresentationStep("threats", "")),
	))

	assignments := NewAssignmentService(r.assignments, r.uow)
	req := assignReq(emp.ID, onboarding.ID)
	req.MentorID = &mentor.ID
	_, err := assignments.AssignTrack(ctx, req)
	require.NoError(t, err)
	secReq := assignReq(emp.ID, security.ID)
	secReq.StartDate = startDate.AddDate(0, 0, 1)
	_, err = assignments.AssignTrack(ctx, secReq)
	require.NoError(t, err)
	for _, id := range []string{"sso", "vpn"} {
		_, err := assignments.MarkStepCompleted(ctx, emp.ID, security.ID, id)
		require.NoError(t, err)
	}

	svc := NewProgressService(r.employees, r.tracks, r.assignments)
	resp, err := svc.Overview(ctx, app.ProgressRequest{EmployeeID: emp.ID})
	require.NoError(t, err)
	assert.Equal(t, "Ada", resp.EmployeeName)
	require.Len(t, resp.Assignments, 2)

	first := resp.Assignments[0]
	assert.Equal(t, "Onboarding", first.TrackTitle)
	assert.Equal(t, "Grace", first.MentorName)
	assert.Equal(t, domain.StatusNotStarted, first.Status)

	sec := resp.Assignments[1]
	assert.Equal(t, "Security", sec.TrackTitle)
	assert.Equal(t, 67, sec.Progress.Percent)
	assert.Equal(t, domain.StatusInProgress, sec.Status)
	require.Len(t, sec.Milestones, 2)
	assert.True(t, sec.Milestones[0].RequiredMet)
	assert.Equal(t, 100, sec.Milestones[0].Progress.Percent)
	assert.Equal(t, 0, sec.Milestones[1].Progress.Percent)
	assert.True(t, sec.Milestones[1].RequiredMet, "presentation steps are optional")
}

func TestProgressOverview_SingleTrackAndStaleEntries(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	emp := seedEmployee(t, r, "Ada")
	track := seedTrack(t, r, fourStepTrack())
	require.NoError(t, r.assignments.Upsert(ctx, testutil.NewTestAssignment(emp.ID, track.ID)))
	now := time.Now().UTC()
	require.NoError(t, r.assignments.SetStepProgress(ctx, emp.ID, track.ID, "laptop", domain.StepProgressEntry{Completed: true, UpdatedAt: now}))
	require.NoError(t, r.assignments.SetStepProgress(ctx, emp.ID, track.ID, "removed-step", domain.StepProgressEntry{Completed: true, UpdatedAt: now}))

	svc := NewProgressService(r.employees, r.tracks, r.assignments)
	resp, err := svc.Overview(ctx, app.ProgressRequest{EmployeeID: emp.ID, TrackID: track.ID})
	require.NoError(t, err)
	require.Len(t, resp.Assignments, 1)
	view := resp.Assignments[0]
	assert.Equal(t, 1, view.Progress.Completed)
	assert.Equal(t, 4, view.Progress.Total)
	assert.Equal(t, 25, view.Progress.Percent)
	assert.Equal(t, []string{"removed-step"}, view.StaleStepIDs)
}

func TestProgressOverview_Errors(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	emp := seedEmployee(t, r, "Ada")
	svc := NewProgressService(r.employees, r.tracks, r.assignments)

	_, err := svc.Overview(ctx, app.ProgressRequest{EmployeeID: emp.ID, TrackID: "nope"})
	assert.ErrorIs(t, err, ErrNotAssigned)

	resp, err := svc.Overview(ctx, app.ProgressRequest{EmployeeID: emp.ID})
	require.NoError(t, err)
	assert.Empty(t, resp.Assignments)

	_, err = svc.GetProgress(ctx, emp.ID, "nope")
	assert.ErrorIs(t, err, ErrNotAssigned)
}
