package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/adapta/internal/cli"
	"github.com/alexanderramin/adapta/internal/config"
	"github.com/alexanderramin/adapta/internal/db"
	"github.com/alexanderramin/adapta/internal/gcal"
	"github.com/alexanderramin/adapta/internal/repository"
	"github.com/alexanderramin/adapta/internal/service"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	// Plain output when piped.
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	employeeRepo := repository.NewSQLiteEmployeeRepo(database)
	trackRepo := repository.NewSQLiteTrackRepo(database)
	assignmentRepo := repository.NewSQLiteAssignmentRepo(database)
	eventRepo := repository.NewSQLiteEventRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr, cfg.LogFormat))
	}

	gcalCfg := gcal.Config{
		CredentialsFile: cfg.GCal.CredentialsFile,
		TokenFile:       cfg.GCal.TokenFile,
		CalendarID:      cfg.GCal.CalendarID,
	}
	var feeds []service.EventFeed
	if cfg.GCal.Enabled {
		srv, err := gcal.NewService(context.Background(), gcalCfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Google Calendar feed disabled: %v\n", err)
		} else {
			feeds = append(feeds, gcal.NewFeed(srv, gcalCfg.CalendarID, loc))
		}
	}

	assignmentSvc := service.NewAssignmentService(assignmentRepo, uow, observers...)
	importSvc := service.NewImportService(uow, loc, observers...)

	app := &cli.App{
		Tracks:      service.NewTrackService(trackRepo, assignmentRepo),
		Employees:   service.NewEmployeeService(employeeRepo),
		Assignments: assignmentSvc,
		Progress:    service.NewProgressService(employeeRepo, trackRepo, assignmentRepo),
		Schedule:    service.NewScheduleService(employeeRepo, trackRepo, assignmentRepo, eventRepo, cfg.DefaultMeetingDuration(), feeds...),
		Events:      service.NewEventService(eventRepo, uow, cfg.DefaultMeetingDuration(), observers...),
		Import:      importSvc,

		AssignTrack:  assignmentSvc,
		StepProgress: assignmentSvc,
		ImportTrack:  importSvc,

		Location: loc,
		GCalLogin: func(ctx context.Context, in io.Reader, out io.Writer) error {
			return gcal.Login(ctx, gcalCfg, in, out)
		},
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(context.Background())
}
