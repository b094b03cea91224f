package cli

import "github.com/alexanderramin/adapta/internal/app"

func (a *App) assignTrackUseCase() app.AssignTrackUseCase {
	if a.AssignTrack != nil {
		return a.AssignTrack
	}
	return a.Assignments
}

func (a *App) stepProgressUseCase() app.StepProgressUseCase {
	if a.StepProgress != nil {
		return a.StepProgress
	}
	return a.Assignments
}

func (a *App) importTrackUseCase() app.ImportTrackUseCase {
	if a.ImportTrack != nil {
		return a.ImportTrack
	}
	return a.Import
}

func (a *App) progressUseCase() app.ProgressUseCase {
	if a.ProgressView != nil {
		return a.ProgressView
	}
	return a.Progress
}

func (a *App) scheduleUseCase() app.ScheduleUseCase {
	if a.ScheduleView != nil {
		return a.ScheduleView
	}
	return a.Schedule
}
