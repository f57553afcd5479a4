package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/example/staff-availability/internal/persistence"
)

// ExceptionRepository stores exception rows in sqlite.
type ExceptionRepository struct {
	db *sql.DB
}

// NewExceptionRepository constructs an ExceptionRepository.
func NewExceptionRepository(db *sql.DB) *ExceptionRepository {
	return &ExceptionRepository{db: db}
}

func (r *ExceptionRepository) Create(ctx context.Context, record persistence.ExceptionRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO staff_exceptions (id, staff_id, type, start_utc, end_utc, note)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.StaffID,
		record.Type,
		record.StartUTC,
		record.EndUTC,
		record.Note,
	)
	if err != nil {
		return mapError(err)
	}
	return nil
}

// ListOverlapping returns the rows overlapping [from, to) half-open:
// a row matches when it starts before to and ends after from. Rows
// that merely touch a boundary are excluded.
func (r *ExceptionRepository) ListOverlapping(ctx context.Context, staffID string, from, to time.Time) ([]persistence.ExceptionRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, staff_id, type, start_utc, end_utc, note
		 FROM staff_exceptions
		 WHERE staff_id = ? AND start_utc < ? AND end_utc > ?
		 ORDER BY start_utc ASC`,
		staffID, formatTime(to), formatTime(from))
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var records []persistence.ExceptionRecord
	for rows.Next() {
		var record persistence.ExceptionRecord
		if err := rows.Scan(
			&record.ID,
			&record.StaffID,
			&record.Type,
			&record.StartUTC,
			&record.EndUTC,
			&record.Note,
		); err != nil {
			return nil, mapError(err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return records, nil
}

func (r *ExceptionRepository) Delete(ctx context.Context, staffID, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM staff_exceptions WHERE staff_id = ? AND id = ?`,
		staffID, id)
	if err != nil {
		return mapError(err)
	}
	return requireRowAffected(result)
}

var _ persistence.ExceptionRepository = (*ExceptionRepository)(nil)
var _ persistence.StaffRepository = (*StaffRepository)(nil)
var _ persistence.WeeklyHoursRepository = (*WeeklyHoursRepository)(nil)
