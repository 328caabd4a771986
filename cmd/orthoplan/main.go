package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/alexanderramin/orthoplan/internal/cli"
	"github.com/alexanderramin/orthoplan/internal/db"
	"github.com/alexanderramin/orthoplan/internal/nemo"
	"github.com/alexanderramin/orthoplan/internal/repository"
	"github.com/alexanderramin/orthoplan/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Determine DB path: env var or default ~/.orthoplan/library.db
	dbPath := os.Getenv("ORTHOPLAN_DB")
	if dbPath == "" {
		dbPath = db.DefaultPath()
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening library: %w", err)
	}
	defer database.Close()

	remote, err := nemo.LoadConfig()
	if err != nil {
		return err
	}

	var (
		useCaseObserver service.UseCaseObserver = service.NoopUseCaseObserver{}
		remoteObserver  nemo.Observer           = nemo.NoopObserver{}
	)
	if logOn, _ := strconv.ParseBool(os.Getenv("ORTHOPLAN_LOG")); logOn {
		useCaseObserver = service.NewLogUseCaseObserver(os.Stderr)
		remoteObserver = nemo.NewLogObserver(os.Stderr)
	}

	planRepo := repository.NewSQLitePlanRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	app := &cli.App{
		Plans:   service.NewPlanService(remote, service.NewNemoFetcher(remoteObserver), useCaseObserver),
		Library: service.NewLibraryService(planRepo, uow, useCaseObserver),
	}

	// Detect interactive terminal for the viewer entrypoints.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
