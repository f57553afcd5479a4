package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/staff-availability/internal/persistence"
)

// SessionRepository stores sessions in sqlite.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository constructs a SessionRepository.
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, record persistence.SessionRecord) error {
	var revokedAt any
	if record.RevokedAt != nil {
		revokedAt = formatTime(*record.RevokedAt)
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, account_id, token, expires_at, created_at, revoked_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.AccountID,
		record.Token,
		formatTime(record.ExpiresAt),
		formatTime(record.CreatedAt),
		revokedAt,
	)
	if err != nil {
		return mapError(err)
	}
	return nil
}

func (r *SessionRepository) GetByToken(ctx context.Context, token string) (persistence.SessionRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, account_id, token, expires_at, created_at, revoked_at
		 FROM sessions WHERE token = ?`, token)

	var record persistence.SessionRecord
	var expiresAt, createdAt string
	var revokedAt sql.NullString
	err := row.Scan(
		&record.ID,
		&record.AccountID,
		&record.Token,
		&expiresAt,
		&createdAt,
		&revokedAt,
	)
	if err != nil {
		return persistence.SessionRecord{}, mapError(err)
	}
	if record.ExpiresAt, err = parseTime(expiresAt); err != nil {
		return persistence.SessionRecord{}, fmt.Errorf("parse expires_at: %w", err)
	}
	if record.CreatedAt, err = parseTime(createdAt); err != nil {
		return persistence.SessionRecord{}, fmt.Errorf("parse created_at: %w", err)
	}
	if revokedAt.Valid {
		t, err := parseTime(revokedAt.String)
		if err != nil {
			return persistence.SessionRecord{}, fmt.Errorf("parse revoked_at: %w", err)
		}
		record.RevokedAt = &t
	}
	return record, nil
}

func (r *SessionRepository) Revoke(ctx context.Context, id string, revokedAt time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET revoked_at = ? WHERE id = ? AND revoked_at IS NULL`,
		formatTime(revokedAt), id)
	if err != nil {
		return mapError(err)
	}
	return requireRowAffected(result)
}

// DeleteExpired removes sessions that expired before the cutoff.
func (r *SessionRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at < ?`, formatTime(before))
	if err != nil {
		return 0, mapError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, mapError(err)
	}
	return affected, nil
}

var _ persistence.SessionRepository = (*SessionRepository)(nil)
