package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/staff-availability/internal/persistence"
)

// StaffRepository stores staff rows in sqlite.
type StaffRepository struct {
	db *sql.DB
}

// NewStaffRepository constructs a StaffRepository.
func NewStaffRepository(db *sql.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

const staffColumns = "id, display_name, email, phone, timezone, skills, weight, cooldown_sec, active, created_at, updated_at"

func (r *StaffRepository) Create(ctx context.Context, record persistence.StaffRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO staff (`+staffColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.DisplayName,
		record.Email,
		record.Phone,
		record.Timezone,
		record.Skills,
		record.Weight,
		record.CooldownSec,
		record.Active,
		formatTime(record.CreatedAt),
		formatTime(record.UpdatedAt),
	)
	if err != nil {
		return mapError(err)
	}
	return nil
}

func (r *StaffRepository) Get(ctx context.Context, id string) (persistence.StaffRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+staffColumns+` FROM staff WHERE id = ?`, id)
	return scanStaff(row)
}

func (r *StaffRepository) List(ctx context.Context, includeInactive bool) ([]persistence.StaffRecord, error) {
	query := `SELECT ` + staffColumns + ` FROM staff`
	if !includeInactive {
		query += ` WHERE active = 1`
	}
	query += ` ORDER BY display_name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var records []persistence.StaffRecord
	for rows.Next() {
		record, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return records, nil
}

func (r *StaffRepository) Update(ctx context.Context, record persistence.StaffRecord) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE staff
		 SET display_name = ?, email = ?, phone = ?, timezone = ?, skills = ?,
		     weight = ?, cooldown_sec = ?, active = ?, updated_at = ?
		 WHERE id = ?`,
		record.DisplayName,
		record.Email,
		record.Phone,
		record.Timezone,
		record.Skills,
		record.Weight,
		record.CooldownSec,
		record.Active,
		formatTime(record.UpdatedAt),
		record.ID,
	)
	if err != nil {
		return mapError(err)
	}
	return requireRowAffected(result)
}

func (r *StaffRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM staff WHERE id = ?`, id)
	if err != nil {
		return mapError(err)
	}
	return requireRowAffected(result)
}

func (r *StaffRepository) SetActive(ctx context.Context, id string, active bool, updatedAt time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE staff SET active = ?, updated_at = ? WHERE id = ?`,
		active, formatTime(updatedAt), id)
	if err != nil {
		return mapError(err)
	}
	return requireRowAffected(result)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStaff(row rowScanner) (persistence.StaffRecord, error) {
	var record persistence.StaffRecord
	var createdAt, updatedAt string
	err := row.Scan(
		&record.ID,
		&record.DisplayName,
		&record.Email,
		&record.Phone,
		&record.Timezone,
		&record.Skills,
		&record.Weight,
		&record.CooldownSec,
		&record.Active,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return persistence.StaffRecord{}, mapError(err)
	}
	if record.CreatedAt, err = parseTime(createdAt); err != nil {
		return persistence.StaffRecord{}, fmt.Errorf("parse created_at: %w", err)
	}
	if record.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return persistence.StaffRecord{}, fmt.Errorf("parse updated_at: %w", err)
	}
	return record, nil
}

func requireRowAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return mapError(err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}
