package workers

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mccartn3y/tetris-cli/pkg/repositories/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	saved chan *models.TurnRecord
}

func (r *fakeRepository) Close(ctx context.Context) error {
	return nil
}

func (r *fakeRepository) SaveTurnRecord(ctx context.Context, record *models.TurnRecord) error {
	r.saved <- record
	return nil
}

func (r *fakeRepository) LoadTurnRecord(ctx context.Context, turnID uuid.UUID) (*models.TurnRecord, error) {
	return nil, nil
}

func (r *fakeRepository) LoadTurnRecords(ctx context.Context, sessionID uuid.UUID) ([]*models.TurnRecord, error) {
	return nil, nil
}

func TestSaveTurnRecordWorker_SavesRequests(t *testing.T) {
	repo := &fakeRepository{saved: make(chan *models.TurnRecord, 1)}
	saveTurnRecordChan := make(chan SaveTurnRecordRequest, 1)
	worker := NewSaveTurnRecordWorker(NewSaveTurnRecordWorkerOptions{
		Repository:         repo,
		SaveTurnRecordChan: saveTurnRecordChan,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go worker.Start(ctx)

	record := &models.TurnRecord{TurnID: uuid.New(), Sequence: 1}
	saveTurnRecordChan <- SaveTurnRecordRequest{Record: record}

	select {
	case saved := <-repo.saved:
		assert.Same(t, record, saved)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not save the record")
	}
}

func TestSaveTurnRecordWorker_DrainsQueuedRequestsOnCancel(t *testing.T) {
	repo := &fakeRepository{saved: make(chan *models.TurnRecord, 2)}
	saveTurnRecordChan := make(chan SaveTurnRecordRequest, 2)
	worker := NewSaveTurnRecordWorker(NewSaveTurnRecordWorkerOptions{
		Repository:         repo,
		SaveTurnRecordChan: saveTurnRecordChan,
	})

	first := &models.TurnRecord{TurnID: uuid.New(), Sequence: 1}
	second := &models.TurnRecord{TurnID: uuid.New(), Sequence: 2}
	saveTurnRecordChan <- SaveTurnRecordRequest{Record: first}
	saveTurnRecordChan <- SaveTurnRecordRequest{Record: second}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	worker.Start(ctx)

	require.Len(t, repo.saved, 2)
	assert.Same(t, first, <-repo.saved)
	assert.Same(t, second, <-repo.saved)
}

func TestSaveTurnRecordWorker_StopsOnContextCancel(t *testing.T) {
	repo := &fakeRepository{saved: make(chan *models.TurnRecord, 1)}
	saveTurnRecordChan := make(chan SaveTurnRecordRequest)
	worker := NewSaveTurnRecordWorker(NewSaveTurnRecordWorkerOptions{
		Repository:         repo,
		SaveTurnRecordChan: saveTurnRecordChan,
	})

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(stopped)
	}()

	cancel()

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
	require.Empty(t, repo.saved)
}
