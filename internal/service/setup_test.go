package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/adapta/internal/db"
	"github.com/alexanderramin/adapta/internal/domain"
	"github.com/alexanderramin/adapta/internal/repository"
	"github.com/alexanderramin/adapta/internal/testutil"
	"github.com/stretchr/testify/require"
)

type repos struct {
	db          *sql.DB
	employees   *repository.SQLiteEmployeeRepo
	tracks      *repository.SQLiteTrackRepo
	assignments *repository.SQLiteAssignmentRepo
	events      *repository.SQLiteEventRepo
	uow         db.UnitOfWork
}

func setupRepos(t *testing.T) repos {
	t.Helper()
	database := testutil.NewTestDB(t)
	return repos{
		db:          database,
		employees:   repository.NewSQLiteEmployeeRepo(database),
		tracks:      repository.NewSQLiteTrackRepo(database),
		assignments: repository.NewSQLiteAssignmentRepo(database),
		events:      repository.NewSQLiteEventRepo(database),
		uow:         testutil.NewTestUoW(database),
	}
}

var (
	kickoffAt = time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	reviewAt  = time.Date(2024, 6, 11, 9, 0, 0, 0, time.UTC)
)

// fourStepTrack has one milestone with a task, a meeting, a survey and a
// task with an embedded meeting.
func fourStepTrack() *domain.Track {
	review := testutil.TaskStep("review")
	review.Content = domain.TaskContent{Meeting: &domain.MeetingDetails{Start: reviewAt, DurationMin: 30}}
	return testutil.NewTestTrack("Onboarding",
		testutil.WithMilestone("m-1", "First week",
			testutil.TaskStep("laptop"),
			testutil.MeetingStep("m1", kickoffAt, 0),
			testutil.SurveyStep("survey", "q1", "q2"),
			review,
		),
	)
}

func seedEmployee(t *testing.T, r repos, name string) *domain.Employee {
	t.Helper()
	e := testutil.NewTestEmployee(name)
	require.NoError(t, r.employees.Create(context.Background(), e))
	return e
}

func seedTrack(t *testing.T, r repos, track *domain.Track) *domain.Track {
	t.Helper()
	require.NoError(t, r.tracks.Create(context.Background(), track))
	return track
}
