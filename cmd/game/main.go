package main

import (
	"context"
	"flag"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/mccartn3y/tetris-cli/pkg/game"
	"github.com/mccartn3y/tetris-cli/pkg/game/types"
	"github.com/mccartn3y/tetris-cli/pkg/input"
	"github.com/mccartn3y/tetris-cli/pkg/log"
	"github.com/mccartn3y/tetris-cli/pkg/queue"
	"github.com/mccartn3y/tetris-cli/pkg/repositories"
	"github.com/mccartn3y/tetris-cli/pkg/terminal"
	"github.com/mccartn3y/tetris-cli/pkg/version"
	"github.com/mccartn3y/tetris-cli/pkg/workers"
)

// loggingApplier stands in for the board: it logs every command it is
// handed and accepts them all.
type loggingApplier struct{}

func (a *loggingApplier) ApplyCommand(cmd types.MoveCommand) error {
	log.Info("Applying command %s", cmd)
	return nil
}

func main() {
	turnDuration := flag.Uint("turn-duration", 10, "Turn duration in seconds")
	turns := flag.Int("turns", 5, "Number of turns to play, 0 plays until interrupted")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	log.Info("Starting game version %s", version.Get())
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file loaded: %v", err)
	}

	repository := newRepository(ctx)
	defer repository.Close(ctx)

	saveTurnRecordChannelSize := 100
	saveTurnRecordChan := make(chan workers.SaveTurnRecordRequest, saveTurnRecordChannelSize)

	saveTurnRecordWorker := workers.NewSaveTurnRecordWorker(workers.NewSaveTurnRecordWorkerOptions{
		Repository:         repository,
		SaveTurnRecordChan: saveTurnRecordChan,
	})
	workerCtx, stopWorker := context.WithCancel(ctx)
	workerDone := make(chan struct{})
	go func() {
		saveTurnRecordWorker.Start(workerCtx)
		close(workerDone)
	}()

	dispatchQueue := queue.NewInMemoryQueue[types.MoveCommand](queue.DefaultBufferSize)

	turnManager := game.NewTurnManager(game.NewTurnManagerOptions{
		TurnDurationSeconds: *turnDuration,
		Turns:               *turns,
		NewCollector: func() (input.CommandCollector, error) {
			return terminal.NewCollector()
		},
		Applier:            &loggingApplier{},
		DispatchQueue:      dispatchQueue,
		SaveTurnRecordChan: saveTurnRecordChan,
	})

	log.Info("Starting turn manager")
	if err := turnManager.Start(ctx); err != nil {
		panic(fmt.Sprintf("Failed to run turn manager: %v", err))
	}

	// Let the worker write out any records still in flight before reading
	// the session back.
	stopWorker()
	<-workerDone

	printSessionSummary(ctx, repository, turnManager.SessionID())
}

// newRepository selects the repository from TETRIS_DATABASE_URL, defaulting
// to a local sqlite file.
func newRepository(ctx context.Context) repositories.Repository {
	connStr := os.Getenv("TETRIS_DATABASE_URL")
	if connStr == "" {
		connStr = "sqlite://tetris.db"
	}

	u, err := url.Parse(connStr)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse connection string: %v", err))
	}

	switch u.Scheme {
	case "sqlite":
		repository, err := repositories.NewSQLiteRepository(ctx, u.Host)
		if err != nil {
			panic(fmt.Sprintf("Failed to create SQLite repository: %v", err))
		}
		return repository
	case "postgresql":
		return repositories.NewPostgresRepository(ctx, u.String())
	default:
		panic(fmt.Sprintf("Unknown database type %s", u.Scheme))
	}
}

// printSessionSummary reads the finished session back from storage so the
// player sees what was recorded.
func printSessionSummary(ctx context.Context, repository repositories.Repository, sessionID uuid.UUID) {
	records, err := repository.LoadTurnRecords(ctx, sessionID)
	if err != nil {
		log.Error("Failed to load turn records: %v", err)
		return
	}

	log.Info("Session %s saved %d turns", sessionID, len(records))
	for _, record := range records {
		log.Info("Turn %d: %d commands, %s, took %s",
			record.Sequence, len(record.Commands), record.Outcome, record.Duration.Round(time.Millisecond))
	}
}
