package repositories

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/google/uuid"
	"github.com/mccartn3y/tetris-cli/pkg/repositories/models"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrations embed.FS

type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens (or creates) the database at path and applies
// the embedded migrations in file order.
func NewSQLiteRepository(ctx context.Context, path string) (Repository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	entries, err := migrations.ReadDir("migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %v", err)
	}

	for _, entry := range entries {
		migration, err := migrations.ReadFile("migrations/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %v", entry.Name(), err)
		}

		if _, err := db.ExecContext(ctx, string(migration)); err != nil {
			return nil, fmt.Errorf("failed to execute migration %s: %v", entry.Name(), err)
		}
	}

	return &SQLiteRepository{
		db: db,
	}, nil
}

func (r *SQLiteRepository) Close(ctx context.Context) error {
	return r.db.Close()
}

func (r *SQLiteRepository) SaveTurnRecord(ctx context.Context, record *models.TurnRecord) error {
	payload, err := SerializeCommands(record.Commands)
	if err != nil {
		return fmt.Errorf("failed to serialize commands: %v", err)
	}

	q := `
	INSERT OR REPLACE INTO turns (turn_id, session_id, sequence, outcome, commands, started_at, duration_ms)
	VALUES (?, ?, ?, ?, ?, ?, ?);
	`
	_, err = r.db.ExecContext(ctx, q,
		record.TurnID.String(),
		record.SessionID.String(),
		record.Sequence,
		record.Outcome,
		payload,
		record.StartedAt.UnixMilli(),
		record.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert turn: %v", err)
	}

	return nil
}

func (r *SQLiteRepository) LoadTurnRecord(ctx context.Context, turnID uuid.UUID) (*models.TurnRecord, error) {
	q := `
	SELECT turn_id, session_id, sequence, outcome, commands, started_at, duration_ms
	FROM turns WHERE turn_id = ?;
	`
	record, err := scanTurnRecord(r.db.QueryRowContext(ctx, q, turnID.String()))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan turn: %v", err)
	}

	return record, nil
}

func (r *SQLiteRepository) LoadTurnRecords(ctx context.Context, sessionID uuid.UUID) ([]*models.TurnRecord, error) {
	q := `
	SELECT turn_id, session_id, sequence, outcome, commands, started_at, duration_ms
	FROM turns WHERE session_id = ? ORDER BY sequence;
	`
	rows, err := r.db.QueryContext(ctx, q, sessionID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query turns: %v", err)
	}
	defer rows.Close()

	var records []*models.TurnRecord
	for rows.Next() {
		record, err := scanTurnRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan turn: %v", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}
