package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"net/url"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/joho/godotenv"
	"golang.org/x/image/font"

	"github.com/mccartn3y/tetris-cli/client/fonts"
	clientinput "github.com/mccartn3y/tetris-cli/client/input"
	"github.com/mccartn3y/tetris-cli/pkg/game"
	gametypes "github.com/mccartn3y/tetris-cli/pkg/game/types"
	"github.com/mccartn3y/tetris-cli/pkg/input"
	"github.com/mccartn3y/tetris-cli/pkg/log"
	"github.com/mccartn3y/tetris-cli/pkg/queue"
	"github.com/mccartn3y/tetris-cli/pkg/repositories"
	"github.com/mccartn3y/tetris-cli/pkg/state"
	"github.com/mccartn3y/tetris-cli/pkg/version"
	"github.com/mccartn3y/tetris-cli/pkg/workers"
)

type GameMode int

const (
	GameModeMenu GameMode = iota
	GameModePlay
	GameModeOver
	GameModeError
)

func (m GameMode) String() string {
	switch m {
	case GameModeMenu:
		return "Menu"
	case GameModePlay:
		return "Play"
	case GameModeOver:
		return "Over"
	case GameModeError:
		return "Error"
	}
	return "Unknown"
}

// sessionResult is what the session goroutine reports back to the UI.
type sessionResult struct {
	summary []string
	err     error
}

// Game implements ebiten.Game interface, which has Update, Draw and Layout methods.
type Game struct {
	// handler feeds just-pressed keys to the per-turn collectors.
	handler *clientinput.Handler
	// stateManager carries session-state snapshots from the turn manager.
	stateManager state.StateManager
	// sessionResultChan yields once, when the session goroutine finishes.
	sessionResultChan chan sessionResult
	// sessionState is the latest snapshot, read each frame while playing.
	sessionState *gametypes.SessionState
	// summary holds the lines shown on the game-over screen.
	summary []string
	// errorText holds the message shown on the error screen.
	errorText string
	// mode is the current game mode.
	mode GameMode

	turnDurationSeconds uint
	turns               int
}

func NewGame(turnDurationSeconds uint, turns int) *Game {
	return &Game{
		handler:             clientinput.NewHandler(),
		stateManager:        state.NewInMemoryStateManager(),
		sessionResultChan:   make(chan sessionResult, 1),
		sessionState:        &gametypes.SessionState{},
		mode:                GameModeMenu,
		turnDurationSeconds: turnDurationSeconds,
		turns:               turns,
	}
}

func (g *Game) Update() error {
	switch g.mode {
	case GameModeMenu:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			return ebiten.Termination
		}
		if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			go g.runSession(context.Background())
			g.mode = GameModePlay
		}
	case GameModePlay:
		g.handler.Update()

		sessionState, err := g.stateManager.Get(context.Background())
		if err != nil {
			log.Error("Failed to get session state: %v", err)
			break
		}
		g.sessionState = sessionState

		select {
		case result := <-g.sessionResultChan:
			if result.err != nil {
				log.Error("Session failed: %v", result.err)
				g.errorText = result.err.Error()
				g.mode = GameModeError
				break
			}
			g.summary = result.summary
			g.mode = GameModeOver
		default:
		}
	case GameModeOver, GameModeError:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			return ebiten.Termination
		}
	}

	return nil
}

// runSession plays a full session on its own goroutine and reports the
// stored summary when it ends.
func (g *Game) runSession(ctx context.Context) {
	result := sessionResult{}
	defer func() { g.sessionResultChan <- result }()

	repository, err := newRepository(ctx)
	if err != nil {
		result.err = err
		return
	}
	defer repository.Close(ctx)

	saveTurnRecordChan := make(chan workers.SaveTurnRecordRequest, 100)
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

	turnManager := game.NewTurnManager(game.NewTurnManagerOptions{
		TurnDurationSeconds: g.turnDurationSeconds,
		Turns:               g.turns,
		NewCollector: func() (input.CommandCollector, error) {
			return g.handler.NewCollector(), nil
		},
		Applier:            &loggingApplier{},
		DispatchQueue:      queue.NewInMemoryQueue[gametypes.MoveCommand](queue.DefaultBufferSize),
		SaveTurnRecordChan: saveTurnRecordChan,
		StateManager:       g.stateManager,
	})

	if err := turnManager.Start(ctx); err != nil {
		stopWorker()
		result.err = fmt.Errorf("failed to run turn manager: %v", err)
		return
	}

	stopWorker()
	<-workerDone

	records, err := repository.LoadTurnRecords(ctx, turnManager.SessionID())
	if err != nil {
		result.err = fmt.Errorf("failed to load turn records: %v", err)
		return
	}
	for _, record := range records {
		result.summary = append(result.summary, fmt.Sprintf("turn %d: %d commands, %s",
			record.Sequence, len(record.Commands), record.Outcome))
	}
}

// loggingApplier stands in for the board: it logs every command it is
// handed and accepts them all.
type loggingApplier struct{}

func (a *loggingApplier) ApplyCommand(cmd gametypes.MoveCommand) error {
	log.Debug("Applying command %s", cmd)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %0.2f", ebiten.ActualFPS()))
	ebitenutil.DebugPrint(screen, fmt.Sprintf("\nTPS: %0.2f", ebiten.ActualTPS()))

	switch g.mode {
	case GameModeMenu:
		drawCenteredText(screen, "Press Space to Play", fonts.TitleFont, ScreenHeight/2)
	case GameModePlay:
		g.drawSession(screen)
	case GameModeOver:
		drawCenteredText(screen, "Session Over", fonts.TitleFont, 120)
		for i, line := range g.summary {
			text.Draw(screen, line, fonts.HUDFont, 80, 180+24*i, color.White)
		}
	case GameModeError:
		drawCenteredText(screen, "Error", fonts.TitleFont, 120)
		text.Draw(screen, g.errorText, fonts.HUDFont, 80, 180, color.White)
	}
}

// drawSession renders the live turn status lines.
func (g *Game) drawSession(screen *ebiten.Image) {
	sessionState := g.sessionState

	lines := []string{
		fmt.Sprintf("session %s", sessionState.SessionID),
		fmt.Sprintf("turn %d (%s)", sessionState.Turn, sessionState.Phase),
	}
	if len(sessionState.Commands) > 0 {
		names := make([]string, len(sessionState.Commands))
		for i, cmd := range sessionState.Commands {
			names[i] = cmd.String()
		}
		lines = append(lines, fmt.Sprintf("commands: %s", strings.Join(names, " ")))
	}
	if sessionState.LastOutcome != "" {
		lines = append(lines, fmt.Sprintf("last turn: %s", sessionState.LastOutcome))
	}
	lines = append(lines, "arrows move, z/x rotate, any other key forfeits the turn")

	for i, line := range lines {
		text.Draw(screen, line, fonts.HUDFont, 20, 80+24*i, color.White)
	}
}

func drawCenteredText(screen *ebiten.Image, t string, face font.Face, y int) {
	t = strings.ToUpper(t)
	bounds, _ := font.BoundString(face, t)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(ScreenWidth/2-float64(bounds.Max.X>>6)/2, float64(y))
	op.ColorScale.ScaleWithColor(color.White)
	text.DrawWithOptions(screen, t, face, op)
}

const (
	ScreenWidth  = 640
	ScreenHeight = 480
)

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return ScreenWidth, ScreenHeight
}

// newRepository selects the repository from TETRIS_DATABASE_URL, defaulting
// to a local sqlite file.
func newRepository(ctx context.Context) (repositories.Repository, error) {
	connStr := os.Getenv("TETRIS_DATABASE_URL")
	if connStr == "" {
		connStr = "sqlite://tetris.db"
	}

	u, err := url.Parse(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %v", err)
	}

	switch u.Scheme {
	case "sqlite":
		return repositories.NewSQLiteRepository(ctx, u.Host)
	case "postgresql":
		return repositories.NewPostgresRepository(ctx, u.String()), nil
	default:
		return nil, fmt.Errorf("unknown database type %s", u.Scheme)
	}
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

	log.Info("Starting client version %s", version.Get())

	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file loaded: %v", err)
	}

	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle("Tetris Turns")
	if err := ebiten.RunGame(NewGame(*turnDuration, *turns)); err != nil {
		panic(fmt.Sprintf("Failed to run game: %v", err))
	}
}
