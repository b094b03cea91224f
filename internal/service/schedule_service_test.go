package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/adapta/internal/app"
	"github.com/alexanderramin/adapta/internal/calendar"
	"github.com/alexanderramin/adapta/internal/domain"
	"github.com/alexanderramin/adapta/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFeed struct {
	events   []domain.CalendarEvent
	err      error
	from, to time.Time
}

func (f *stubFeed) Name() string { return "stub" }

func (f *stubFeed) Events(_ context.Context, _ *domain.Employee, from, to time.Time) ([]domain.CalendarEvent, error) {
	f.from, f.to = from, to
	return f.events, f.err
}

func scheduleFixture(t *testing.T) (repos, *domain.Employee, *domain.Track) {
	t.Helper()
	r := setupRepos(t)
	emp := seedEmployee(t, r, "Ada")
	track := seedTrack(t, r, fourStepTrack())
	_, err := NewAssignmentService(r.assignments, r.uow).AssignTrack(context.Background(), assignReq(emp.ID, track.ID))
	require.NoError(t, err)
	return r, emp, track
}

func allEvents(days []calendar.DayGroup) []domain.CalendarEvent {
	var out []domain.CalendarEvent
	for _, d := range days {
		out = append(out, d.Events...)
	}
	return out
}

func TestSchedule_DerivedEventsOnly(t *testing.T) {
	r, emp, _ := scheduleFixture(t)
	ctx := context.Background()
	svc := NewScheduleService(r.employees, r.tracks, r.assignments, r.events, calendar.DefaultMeetingDuration)

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	resp, err := svc.Schedule(ctx, app.ScheduleRequest{EmployeeID: emp.ID, Now: &now})
	require.NoError(t, err)
	assert.Equal(t, domain.WindowAll, resp.Window)
	assert.Equal(t, 2, resp.EventCount)
	require.Len(t, resp.Days, 2)

	events := allEvents(resp.Days)
	assert.Equal(t, "m1", events[0].Stage())
	assert.Equal(t, kickoffAt.Add(time.Hour), events[0].End, "default duration applies")
	assert.Equal(t, "review", events[1].Stage())
	assert.Equal(t, reviewAt.Add(30*time.Minute), events[1].End)
}

func TestSchedule_ExternalEventOverridesDerived(t *testing.T) {
	r, emp, _ := scheduleFixture(t)
	ctx := context.Background()

	moved := kickoffAt.Add(26 * time.Hour)
	require.NoError(t, r.events.Create(ctx, testutil.NewTestEvent(emp.ID, "Kickoff (rescheduled)", moved, testutil.WithStage("m1"))))

	svc := NewScheduleService(r.employees, r.tracks, r.assignments, r.events, calendar.DefaultMeetingDuration)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	resp, err := svc.Schedule(ctx, app.ScheduleRequest{EmployeeID: emp.ID, Now: &now})
	require.NoError(t, err)

	var m1 []domain.CalendarEvent
	for _, ev := range allEvents(resp.Days) {
		if ev.Stage() == "m1" {
			m1 = append(m1, ev)
		}
	}
	require.Len(t, m1, 1)
	assert.Equal(t, "Kickoff (rescheduled)", m1[0].Title)
	assert.True(t, moved.Equal(m1[0].Start))
	assert.Equal(t, domain.SourceLocal, m1[0].Source)
	assert.Equal(t, []string{"m1"}, resp.Overridden)
}

func TestSchedule_TodayWindow(t *testing.T) {
	r, emp, _ := scheduleFixture(t)
	svc := NewScheduleService(r.employees, r.tracks, r.assignments, r.events, calendar.DefaultMeetingDuration)

	// kickoff starts 2024-06-10T09:00, review 2024-06-11T09:00
	now := time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)
	resp, err := svc.Schedule(context.Background(), app.ScheduleRequest{EmployeeID: emp.ID, Now: &now, Window: domain.WindowToday})
	require.NoError(t, err)
	events := allEvents(resp.Days)
	require.Len(t, events, 1)
	assert.Equal(t, "m1", events[0].Stage())

	upcoming, err := svc.Schedule(context.Background(), app.ScheduleRequest{EmployeeID: emp.ID, Now: &now, Window: domain.WindowUpcoming})
	require.NoError(t, err)
	events = allEvents(upcoming.Days)
	require.Len(t, events, 1)
	assert.Equal(t, "review", events[0].Stage())
}

func TestSchedule_CompletedStepMarksEventCompleted(t *testing.T) {
	r, emp, track := scheduleFixture(t)
	ctx := context.Background()
	_, err := NewAssignmentService(r.assignments, r.uow).MarkStepCompleted(ctx, emp.ID, track.ID, "m1")
	require.NoError(t, err)

	svc := NewScheduleService(r.employees, r.tracks, r.assignments, r.events, calendar.DefaultMeetingDuration)
	now := time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)
	resp, err := svc.Schedule(ctx, app.ScheduleRequest{EmployeeID: emp.ID, Now: &now, Window: domain.WindowPast})
	require.NoError(t, err)
	events := allEvents(resp.Days)
	require.Len(t, events, 2)
	assert.Equal(t, domain.EventCompleted, events[0].Status)
	assert.Equal(t, domain.EventScheduled, events[1].Status)
}

func TestSchedule_FeedEventsAndOrphans(t *testing.T) {
	r, emp, _ := scheduleFixture(t)
	ctx := context.Background()

	orphan := *testutil.NewTestEvent(emp.ID, "Old kickoff", kickoffAt, testutil.WithStage("retired"), testutil.WithEventSource(domain.SourceGoogle))
	review := *testutil.NewTestEvent(emp.ID, "Review (Google)", reviewAt.Add(2*time.Hour), testutil.WithStage("review"), testutil.WithEventSource(domain.SourceGoogle))
	lunch := *testutil.NewTestEvent(emp.ID, "Team lunch", reviewAt.Add(3*time.Hour), testutil.WithEventSource(domain.SourceGoogle))
	feed := &stubFeed{events: []domain.CalendarEvent{orphan, review, lunch}}

	svc := NewScheduleService(r.employees, r.tracks, r.assignments, r.events, calendar.DefaultMeetingDuration, feed)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	resp, err := svc.Schedule(ctx, app.ScheduleRequest{EmployeeID: emp.ID, Now: &now})
	require.NoError(t, err)

	titles := []string{}
	for _, ev := range allEvents(resp.Days) {
		titles = append(titles, ev.Title)
	}
	assert.ElementsMatch(t, []string{"Meeting m1", "Old kickoff", "Review (Google)", "Team lunch"}, titles)
	assert.Equal(t, []string{"review"}, resp.Overridden)
	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], `"retired"`)
	assert.True(t, feed.from.Before(now) && feed.to.After(now))
}

func TestSchedule_TrackScopeDropsOtherStagesKeepsStageless(t *testing.T) {
	r, emp, track := scheduleFixture(t)
	ctx := context.Background()
	require.NoError(t, r.events.Create(ctx, testutil.NewTestEvent(emp.ID, "Lunch", kickoffAt.Add(3*time.Hour))))
	require.NoError(t, r.events.Create(ctx, testutil.NewTestEvent(emp.ID, "Old kickoff", kickoffAt.Add(4*time.Hour), testutil.WithStage("retired"))))

	svc := NewScheduleService(r.employees, r.tracks, r.assignments, r.events, calendar.DefaultMeetingDuration)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	all, err := svc.Schedule(ctx, app.ScheduleRequest{EmployeeID: emp.ID, Now: &now})
	require.NoError(t, err)
	assert.Equal(t, 4, all.EventCount)

	scoped, err := svc.Schedule(ctx, app.ScheduleRequest{EmployeeID: emp.ID, TrackID: track.ID, Now: &now})
	require.NoError(t, err)
	titles := []string{}
	for _, ev := range allEvents(scoped.Days) {
		titles = append(titles, ev.Title)
	}
	assert.Contains(t, titles, "Lunch", "events without a stage survive the track scope")
	assert.NotContains(t, titles, "Old kickoff")
	assert.Equal(t, 3, scoped.EventCount)

	_, err = svc.Schedule(ctx, app.ScheduleRequest{EmployeeID: emp.ID, TrackID: "other", Now: &now})
	assert.ErrorIs(t, err, ErrNotAssigned)
}

func TestSchedule_FeedErrorPropagates(t *testing.T) {
	r, emp, _ := scheduleFixture(t)
	feed := &stubFeed{err: errors.New("503 backend unavailable")}
	svc := NewScheduleService(r.employees, r.tracks, r.assignments, r.events, calendar.DefaultMeetingDuration, feed)

	_, err := svc.Schedule(context.Background(), app.NewScheduleRequest(emp.ID))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetching stub events")
	assert.Contains(t, err.Error(), "503 backend unavailable")
}

func TestSchedule_GroupsInRequestedLocation(t *testing.T) {
	r, emp, _ := scheduleFixture(t)
	svc := NewScheduleService(r.employees, r.tracks, r.assignments, r.events, calendar.DefaultMeetingDuration)

	// 09:00 UTC is 23:00 of the previous day in UTC-10.
	minus10 := time.FixedZone("UTC-10", -10*3600)
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	resp, err := svc.Schedule(context.Background(), app.ScheduleRequest{EmployeeID: emp.ID, Now: &now, Location: minus10})
	require.NoError(t, err)
	require.Len(t, resp.Days, 2)
	assert.Equal(t, "2024-06-09", resp.Days[0].Key())
	assert.Equal(t, "2024-06-10", resp.Days[1].Key())
}
