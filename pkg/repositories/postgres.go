package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/mccartn3y/tetris-cli/pkg/log"
	"github.com/mccartn3y/tetris-cli/pkg/repositories/models"
)

type PostgresRepository struct {
	conn *pgx.Conn
}

// NewPostgresRepository connects to the database at connStr. It panics if
// it is unable to connect. The caller is responsible for calling Close on
// the repository; the turns table itself is managed externally.
func NewPostgresRepository(ctx context.Context, connStr string) Repository {
	return &PostgresRepository{
		conn: connectDB(ctx, connStr),
	}
}

func connectDB(ctx context.Context, connStr string) *pgx.Conn {
	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		panic(fmt.Sprintf("Unable to connect to database: %v", err))
	}

	var username string
	var database string
	if err := conn.QueryRow(ctx, "SELECT current_user, current_database()").Scan(&username, &database); err != nil {
		panic(fmt.Sprintf("Unable to query database: %v", err))
	}
	log.Info("Connected to %s as %s", database, username)

	return conn
}

func (r *PostgresRepository) Close(ctx context.Context) error {
	return r.conn.Close(ctx)
}

func (r *PostgresRepository) SaveTurnRecord(ctx context.Context, record *models.TurnRecord) error {
	payload, err := SerializeCommands(record.Commands)
	if err != nil {
		return fmt.Errorf("failed to serialize commands: %v", err)
	}

	q := `
	INSERT INTO turns (turn_id, session_id, sequence, outcome, commands, started_at, duration_ms)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (turn_id) DO UPDATE SET outcome = $4, commands = $5, duration_ms = $7;
	`
	_, err = r.conn.Exec(ctx, q,
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

func (r *PostgresRepository) LoadTurnRecord(ctx context.Context, turnID uuid.UUID) (*models.TurnRecord, error) {
	q := `
	SELECT turn_id, session_id, sequence, outcome, commands, started_at, duration_ms
	FROM turns WHERE turn_id = $1;
	`
	record, err := scanTurnRecord(r.conn.QueryRow(ctx, q, turnID.String()))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan turn: %v", err)
	}

	return record, nil
}

func (r *PostgresRepository) LoadTurnRecords(ctx context.Context, sessionID uuid.UUID) ([]*models.TurnRecord, error) {
	q := `
	SELECT turn_id, session_id, sequence, outcome, commands, started_at, duration_ms
	FROM turns WHERE session_id = $1 ORDER BY sequence;
	`
	rows, err := r.conn.Query(ctx, q, sessionID.String())
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
