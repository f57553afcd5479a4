package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/staff-availability/internal/persistence"
)

// AccountRepository stores administrative accounts in sqlite.
type AccountRepository struct {
	db *sql.DB
}

// NewAccountRepository constructs an AccountRepository.
func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = "id, email, display_name, password_hash, is_admin, disabled, created_at, updated_at"

func (r *AccountRepository) Create(ctx context.Context, record persistence.AccountRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (`+accountColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Email,
		record.DisplayName,
		record.PasswordHash,
		record.IsAdmin,
		record.Disabled,
		formatTime(record.CreatedAt),
		formatTime(record.UpdatedAt),
	)
	if err != nil {
		return mapError(err)
	}
	return nil
}

func (r *AccountRepository) Get(ctx context.Context, id string) (persistence.AccountRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
	return scanAccount(row)
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (persistence.AccountRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = ?`, email)
	return scanAccount(row)
}

func scanAccount(row rowScanner) (persistence.AccountRecord, error) {
	var record persistence.AccountRecord
	var createdAt, updatedAt string
	err := row.Scan(
		&record.ID,
		&record.Email,
		&record.DisplayName,
		&record.PasswordHash,
		&record.IsAdmin,
		&record.Disabled,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return persistence.AccountRecord{}, mapError(err)
	}
	if record.CreatedAt, err = parseTime(createdAt); err != nil {
		return persistence.AccountRecord{}, fmt.Errorf("parse created_at: %w", err)
	}
	if record.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return persistence.AccountRecord{}, fmt.Errorf("parse updated_at: %w", err)
	}
	return record, nil
}

var _ persistence.AccountRepository = (*AccountRepository)(nil)
