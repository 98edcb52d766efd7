package workers

import (
	"context"

	"github.com/mccartn3y/tetris-cli/pkg/log"
	"github.com/mccartn3y/tetris-cli/pkg/repositories"
	"github.com/mccartn3y/tetris-cli/pkg/repositories/models"
)

type SaveTurnRecordWorker struct {
	repository         repositories.Repository
	saveTurnRecordChan <-chan SaveTurnRecordRequest
}

type NewSaveTurnRecordWorkerOptions struct {
	Repository         repositories.Repository
	SaveTurnRecordChan <-chan SaveTurnRecordRequest
}

type SaveTurnRecordRequest struct {
	Record *models.TurnRecord
}

// NewSaveTurnRecordWorker creates a new SaveTurnRecordWorker.
// The worker processes save requests from the turn manager so storage
// latency never delays the next turn.
func NewSaveTurnRecordWorker(opts NewSaveTurnRecordWorkerOptions) *SaveTurnRecordWorker {
	return &SaveTurnRecordWorker{
		repository:         opts.Repository,
		saveTurnRecordChan: opts.SaveTurnRecordChan,
	}
}

// Start processes save requests until the context is cancelled. Requests
// already queued at cancellation are still written, so a session summary
// read after Start returns sees every finished turn.
func (w *SaveTurnRecordWorker) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return
		case saveRequest := <-w.saveTurnRecordChan:
			if ctx.Err() != nil {
				// The select can pick a queued request after cancellation.
				w.saveTurnRecord(context.Background(), saveRequest)
				continue
			}
			w.saveTurnRecord(ctx, saveRequest)
		}
	}
}

// drain writes whatever is still queued. The caller's context is already
// cancelled at this point, so writes use a fresh one.
func (w *SaveTurnRecordWorker) drain() {
	for {
		select {
		case saveRequest := <-w.saveTurnRecordChan:
			w.saveTurnRecord(context.Background(), saveRequest)
		default:
			return
		}
	}
}

func (w *SaveTurnRecordWorker) saveTurnRecord(ctx context.Context, saveRequest SaveTurnRecordRequest) {
	if err := w.repository.SaveTurnRecord(ctx, saveRequest.Record); err != nil {
		log.Error("Failed to save turn record: %v", err)
		return
	}
	log.Debug("Saved turn %d of session %s", saveRequest.Record.Sequence, saveRequest.Record.SessionID)
}
