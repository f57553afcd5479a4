package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/staff-availability/internal/persistence"
)

// WeeklyHoursRepository stores the weekly shift template in sqlite.
type WeeklyHoursRepository struct {
	db *sql.DB
}

// NewWeeklyHoursRepository constructs a WeeklyHoursRepository.
func NewWeeklyHoursRepository(db *sql.DB) *WeeklyHoursRepository {
	return &WeeklyHoursRepository{db: db}
}

func (r *WeeklyHoursRepository) ListWeekday(ctx context.Context, staffID string, weekday int) ([]persistence.ShiftRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT staff_id, weekday, start_min, end_min
		 FROM staff_hours
		 WHERE staff_id = ? AND weekday = ?
		 ORDER BY start_min ASC, end_min ASC`,
		staffID, weekday)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()
	return collectShifts(rows)
}

func (r *WeeklyHoursRepository) ListWeek(ctx context.Context, staffID string) ([]persistence.ShiftRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT staff_id, weekday, start_min, end_min
		 FROM staff_hours
		 WHERE staff_id = ?
		 ORDER BY weekday ASC, start_min ASC, end_min ASC`,
		staffID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()
	return collectShifts(rows)
}

// ReplaceWeekday swaps the template for one weekday inside a single
// transaction so readers never observe a partially written day.
func (r *WeeklyHoursRepository) ReplaceWeekday(ctx context.Context, staffID string, weekday int, shifts []persistence.ShiftRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return mapError(err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM staff_hours WHERE staff_id = ? AND weekday = ?`,
		staffID, weekday); err != nil {
		return mapError(err)
	}
	for _, shift := range shifts {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO staff_hours (staff_id, weekday, start_min, end_min) VALUES (?, ?, ?, ?)`,
			staffID, weekday, shift.StartMin, shift.EndMin); err != nil {
			return mapError(err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit shift replacement: %w", mapError(err))
	}
	return nil
}

func collectShifts(rows *sql.Rows) ([]persistence.ShiftRecord, error) {
	var records []persistence.ShiftRecord
	for rows.Next() {
		var record persistence.ShiftRecord
		if err := rows.Scan(&record.StaffID, &record.Weekday, &record.StartMin, &record.EndMin); err != nil {
			return nil, mapError(err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return records, nil
}
