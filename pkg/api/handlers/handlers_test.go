package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/mccartn3y/tetris-cli/pkg/game/types"
	"github.com/mccartn3y/tetris-cli/pkg/repositories"
	"github.com/mccartn3y/tetris-cli/pkg/repositories/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepository struct {
	records map[uuid.UUID]*models.TurnRecord
}

func (r *stubRepository) Close(ctx context.Context) error {
	return nil
}

func (r *stubRepository) SaveTurnRecord(ctx context.Context, record *models.TurnRecord) error {
	r.records[record.TurnID] = record
	return nil
}

func (r *stubRepository) LoadTurnRecord(ctx context.Context, turnID uuid.UUID) (*models.TurnRecord, error) {
	record, ok := r.records[turnID]
	if !ok {
		return nil, &repositories.ErrNotFound{}
	}
	return record, nil
}

func (r *stubRepository) LoadTurnRecords(ctx context.Context, sessionID uuid.UUID) ([]*models.TurnRecord, error) {
	records := []*models.TurnRecord{}
	for _, record := range r.records {
		if record.SessionID == sessionID {
			records = append(records, record)
		}
	}
	return records, nil
}

func newServeMux(repository repositories.Repository) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("GET /sessions/{sessionID}/turns", HandleListTurnRecords(repository))
	mux.Handle("GET /turns/{turnID}", HandleGetTurnRecord(repository))
	return mux
}

func TestHandleListTurnRecords(t *testing.T) {
	sessionID := uuid.New()
	record := &models.TurnRecord{
		TurnID:    uuid.New(),
		SessionID: sessionID,
		Sequence:  1,
		Commands:  []types.MoveCommand{types.MoveLeft, types.MoveDown},
		Outcome:   "timer complete",
	}
	repository := &stubRepository{records: map[uuid.UUID]*models.TurnRecord{record.TurnID: record}}
	mux := newServeMux(repository)

	request := httptest.NewRequest(http.MethodGet, "/sessions/"+sessionID.String()+"/turns", nil)
	response := httptest.NewRecorder()
	mux.ServeHTTP(response, request)

	require.Equal(t, http.StatusOK, response.Code)
	assert.Equal(t, "application/json", response.Header().Get("Content-Type"))

	var records []*models.TurnRecord
	require.NoError(t, json.NewDecoder(response.Body).Decode(&records))
	require.Len(t, records, 1)
	assert.Equal(t, record.TurnID, records[0].TurnID)
	assert.Equal(t, record.Commands, records[0].Commands)
}

func TestHandleListTurnRecords_InvalidSessionID(t *testing.T) {
	repository := &stubRepository{records: map[uuid.UUID]*models.TurnRecord{}}
	mux := newServeMux(repository)

	request := httptest.NewRequest(http.MethodGet, "/sessions/not-a-uuid/turns", nil)
	response := httptest.NewRecorder()
	mux.ServeHTTP(response, request)

	assert.Equal(t, http.StatusBadRequest, response.Code)
}

func TestHandleGetTurnRecord(t *testing.T) {
	record := &models.TurnRecord{
		TurnID:    uuid.New(),
		SessionID: uuid.New(),
		Sequence:  3,
		Outcome:   "invalid input",
	}
	repository := &stubRepository{records: map[uuid.UUID]*models.TurnRecord{record.TurnID: record}}
	mux := newServeMux(repository)

	request := httptest.NewRequest(http.MethodGet, "/turns/"+record.TurnID.String(), nil)
	response := httptest.NewRecorder()
	mux.ServeHTTP(response, request)

	require.Equal(t, http.StatusOK, response.Code)

	var got models.TurnRecord
	require.NoError(t, json.NewDecoder(response.Body).Decode(&got))
	assert.Equal(t, record.TurnID, got.TurnID)
	assert.Equal(t, record.Sequence, got.Sequence)
}

func TestHandleGetTurnRecord_NotFound(t *testing.T) {
	repository := &stubRepository{records: map[uuid.UUID]*models.TurnRecord{}}
	mux := newServeMux(repository)

	request := httptest.NewRequest(http.MethodGet, "/turns/"+uuid.NewString(), nil)
	response := httptest.NewRecorder()
	mux.ServeHTTP(response, request)

	assert.Equal(t, http.StatusNotFound, response.Code)
}
