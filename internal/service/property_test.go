package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/adapta/internal/app"
	"github.com/alexanderramin/adapta/internal/db"
	"github.com/alexanderramin/adapta/internal/domain"
	"github.com/alexanderramin/adapta/internal/repository"
	"github.com/alexanderramin/adapta/internal/testutil"
	"pgregory.net/rapid"
)

var fourStepIDs = []string{"laptop", "m1", "survey", "review"}

type stepWrite struct {
	StepID    string
	Completed bool
}

func genStepWrites(t *rapid.T) []stepWrite {
	return rapid.SliceOfN(rapid.Custom(func(t *rapid.T) stepWrite {
		return stepWrite{
			StepID:    rapid.SampledFrom(fourStepIDs).Draw(t, "step"),
			Completed: rapid.Bool().Draw(t, "completed"),
		}
	}), 0, 12).Draw(t, "writes")
}

// assignedFixture opens a fresh database with one employee assigned to the
// four-step track.
func assignedFixture(t *rapid.T) (AssignmentService, repository.AssignmentRepo, string, string, func()) {
	ctx := context.Background()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	emp := testutil.NewTestEmployee("Ada")
	track := fourStepTrack()
	if err := repository.NewSQLiteEmployeeRepo(database).Create(ctx, emp); err != nil {
		t.Fatalf("create employee: %v", err)
	}
	if err := repository.NewSQLiteTrackRepo(database).Create(ctx, track); err != nil {
		t.Fatalf("create track: %v", err)
	}
	assignments := repository.NewSQLiteAssignmentRepo(database)
	svc := NewAssignmentService(assignments, db.NewSQLiteUnitOfWork(database))
	if _, err := svc.AssignTrack(ctx, assignReq(emp.ID, track.ID)); err != nil {
		t.Fatalf("assign: %v", err)
	}
	return svc, assignments, emp.ID, track.ID, func() { database.Close() }
}

func TestProperty_StepWritesConvergeToLastWrite(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		svc, assignments, empID, trackID, closeDB := assignedFixture(rt)
		defer closeDB()
		ctx := context.Background()

		want := map[string]bool{}
		for _, w := range genStepWrites(rt) {
			if _, err := svc.UpdateStepProgress(ctx, empID, trackID, w.StepID, w.Completed); err != nil {
				rt.Fatalf("update %s: %v", w.StepID, err)
			}
			want[w.StepID] = w.Completed
		}

		got, err := assignments.GetProgress(ctx, empID, trackID)
		if err != nil {
			rt.Fatalf("get progress: %v", err)
		}
		for _, id := range fourStepIDs {
			if got.IsCompleted(id) != want[id] {
				rt.Fatalf("step %s: completed=%v, want %v", id, got.IsCompleted(id), want[id])
			}
		}
	})
}

func TestProperty_UpdateKeepsProgressAssignResets(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		svc, assignments, empID, trackID, closeDB := assignedFixture(rt)
		defer closeDB()
		ctx := context.Background()

		for _, w := range genStepWrites(rt) {
			if _, err := svc.UpdateStepProgress(ctx, empID, trackID, w.StepID, w.Completed); err != nil {
				rt.Fatalf("update %s: %v", w.StepID, err)
			}
		}
		before, err := assignments.GetProgress(ctx, empID, trackID)
		if err != nil {
			rt.Fatalf("get progress: %v", err)
		}

		shift := rapid.IntRange(1, 60).Draw(rt, "shift_days")
		req := app.AssignTrackRequest{EmployeeID: empID, TrackID: trackID, StartDate: startDate.AddDate(0, 0, shift)}
		if _, err := svc.UpdateTrack(ctx, req); err != nil {
			rt.Fatalf("update track: %v", err)
		}
		afterUpdate, err := assignments.GetProgress(ctx, empID, trackID)
		if err != nil {
			rt.Fatalf("get progress: %v", err)
		}
		if len(afterUpdate) != len(before) {
			rt.Fatalf("updateTrack changed progress: %d entries -> %d", len(before), len(afterUpdate))
		}
		for id, e := range before {
			if afterUpdate.IsCompleted(id) != e.Completed {
				rt.Fatalf("updateTrack changed step %s", id)
			}
		}

		if _, err := svc.AssignTrack(ctx, req); err != nil {
			rt.Fatalf("assign: %v", err)
		}
		afterAssign, err := assignments.GetProgress(ctx, empID, trackID)
		if err != nil {
			rt.Fatalf("get progress: %v", err)
		}
		if len(afterAssign) != 0 {
			rt.Fatalf("assignTrack kept %d progress entries", len(afterAssign))
		}
	})
}

func TestProperty_StatusIdempotentOverStoredProgress(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		database, err := db.OpenDB(":memory:")
		if err != nil {
			rt.Fatalf("open db: %v", err)
		}
		defer database.Close()
		ctx := context.Background()

		emp := testutil.NewTestEmployee("Ada")
		track := fourStepTrack()
		employees := repository.NewSQLiteEmployeeRepo(database)
		tracks := repository.NewSQLiteTrackRepo(database)
		assignments := repository.NewSQLiteAssignmentRepo(database)
		_ = employees.Create(ctx, emp)
		_ = tracks.Create(ctx, track)
		_ = assignments.Upsert(ctx, testutil.NewTestAssignment(emp.ID, track.ID))
		for _, id := range rapid.SliceOfDistinct(rapid.SampledFrom(fourStepIDs), rapid.ID[string]).Draw(rt, "done") {
			_ = assignments.SetStepProgress(ctx, emp.ID, track.ID, id, domain.StepProgressEntry{Completed: true})
		}

		progress := NewProgressService(employees, tracks, assignments)
		first, err := progress.GetStatus(ctx, emp.ID, track.ID)
		if err != nil {
			rt.Fatalf("status: %v", err)
		}
		second, err := progress.GetStatus(ctx, emp.ID, track.ID)
		if err != nil {
			rt.Fatalf("status: %v", err)
		}
		if first != second {
			rt.Fatalf("status not idempotent: %s then %s", first, second)
		}
	})
}
