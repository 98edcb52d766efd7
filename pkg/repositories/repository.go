package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mccartn3y/tetris-cli/pkg/repositories/models"
)

// Repository stores completed turns and hands back session history.
type Repository interface {
	Close(ctx context.Context) error
	SaveTurnRecord(ctx context.Context, record *models.TurnRecord) error
	LoadTurnRecord(ctx context.Context, turnID uuid.UUID) (*models.TurnRecord, error)
	LoadTurnRecords(ctx context.Context, sessionID uuid.UUID) ([]*models.TurnRecord, error)
}

// rowScanner is the common surface of database/sql and pgx row types.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanTurnRecord reads one turns row. Scan errors are returned unwrapped so
// callers can branch on their driver's no-rows sentinel.
func scanTurnRecord(row rowScanner) (*models.TurnRecord, error) {
	var (
		turnID     string
		sessionID  string
		sequence   int
		outcome    string
		payload    []byte
		startedAt  int64
		durationMS int64
	)
	if err := row.Scan(&turnID, &sessionID, &sequence, &outcome, &payload, &startedAt, &durationMS); err != nil {
		return nil, err
	}

	parsedTurnID, err := uuid.Parse(turnID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse turn id: %v", err)
	}
	parsedSessionID, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse session id: %v", err)
	}
	commands, err := DeserializeCommands(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize commands: %v", err)
	}

	return &models.TurnRecord{
		TurnID:    parsedTurnID,
		SessionID: parsedSessionID,
		Sequence:  sequence,
		Commands:  commands,
		Outcome:   outcome,
		StartedAt: time.UnixMilli(startedAt),
		Duration:  time.Duration(durationMS) * time.Millisecond,
	}, nil
}
