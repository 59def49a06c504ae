package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/geoattend/attendance-backend-go/internal/domain/attendance"
	"github.com/geoattend/attendance-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

const dailyRecordColumns = `
	id, company_id, employee_id, date,
	check_in_time, check_out_time, status, late_minutes, late_reason,
	is_emergency_checkout, emergency_checkout_reason, door_unlock_time,
	needs_review, is_correction, check_in_source, device_id,
	created_at, updated_at
`

func scanDailyRecord(row pgx.Row) (attendance.DailyRecord, error) {
	var rec attendance.DailyRecord
	err := row.Scan(
		&rec.ID, &rec.CompanyID, &rec.EmployeeID, &rec.Date,
		&rec.CheckInTime, &rec.CheckOutTime, &rec.Status, &rec.LateMinutes, &rec.LateReason,
		&rec.IsEmergencyCheckout, &rec.EmergencyCheckoutReason, &rec.DoorUnlockTime,
		&rec.NeedsReview, &rec.IsCorrection, &rec.CheckInSource, &rec.DeviceID,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

// GetByEmployeeAndDate implements attendance.Repository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*attendance.DailyRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + dailyRecordColumns + `
		FROM daily_records
		WHERE employee_id = $1
		  AND date = $2
		  AND company_id = $3
		LIMIT 1
	`

	rec, err := scanDailyRecord(q.QueryRow(ctx, query, employeeID, date, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get daily record: %w", err)
	}

	return &rec, nil
}

// CreateWithEvent implements attendance.Repository. The record and its
// originating event commit together or not at all.
func (a *attendanceRepository) CreateWithEvent(ctx context.Context, rec attendance.DailyRecord, ev attendance.Event) (attendance.DailyRecord, error) {
	err := WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		if err := insertDailyRecord(ctx, tx, &rec); err != nil {
			return err
		}
		return insertAttendanceEvent(ctx, tx, ev)
	})
	if err != nil {
		return attendance.DailyRecord{}, fmt.Errorf("failed to create daily record: %w", err)
	}

	return rec, nil
}

// UpdateWithEvent implements attendance.Repository.
func (a *attendanceRepository) UpdateWithEvent(ctx context.Context, rec attendance.DailyRecord, ev attendance.Event) (attendance.DailyRecord, error) {
	err := WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		if err := updateDailyRecord(ctx, tx, &rec); err != nil {
			return err
		}
		return insertAttendanceEvent(ctx, tx, ev)
	})
	if err != nil {
		return attendance.DailyRecord{}, fmt.Errorf("failed to update daily record: %w", err)
	}

	return rec, nil
}

// Update implements attendance.Repository.
func (a *attendanceRepository) Update(ctx context.Context, rec attendance.DailyRecord) error {
	q := GetQuerier(ctx, a.db)

	if err := updateDailyRecord(ctx, q, &rec); err != nil {
		return fmt.Errorf("failed to update daily record: %w", err)
	}
	return nil
}

// ListByEmployeeRange implements attendance.Repository.
func (a *attendanceRepository) ListByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]attendance.DailyRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + dailyRecordColumns + `
		FROM daily_records
		WHERE employee_id = $1
		  AND date BETWEEN $2 AND $3
		  AND company_id = $4
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, from, to, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily records: %w", err)
	}
	defer rows.Close()

	return collectDailyRecords(rows)
}

// ListByMonth implements attendance.Repository.
func (a *attendanceRepository) ListByMonth(ctx context.Context, employeeID string, year int, month time.Month, companyID string) ([]attendance.DailyRecord, error) {
	q := GetQuerier(ctx, a.db)

	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	nextMonth := monthStart.AddDate(0, 1, 0)

	query := `
		SELECT ` + dailyRecordColumns + `
		FROM daily_records
		WHERE employee_id = $1
		  AND date >= $2
		  AND date < $3
		  AND company_id = $4
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, monthStart, nextMonth, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily records: %w", err)
	}
	defer rows.Close()

	return collectDailyRecords(rows)
}

// ListUncorrelated implements attendance.Repository.
func (a *attendanceRepository) ListUncorrelated(ctx context.Context, companyID string, since time.Time) ([]attendance.DailyRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + dailyRecordColumns + `
		FROM daily_records
		WHERE company_id = $1
		  AND date >= $2
		  AND check_in_time IS NOT NULL
		  AND device_id IS NOT NULL
		  AND door_unlock_time IS NULL
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, companyID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list uncorrelated records: %w", err)
	}
	defer rows.Close()

	return collectDailyRecords(rows)
}

// ListEvents implements attendance.Repository.
func (a *attendanceRepository) ListEvents(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]attendance.Event, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, company_id, employee_id, event_type, source, timestamp,
			   latitude, longitude, device_id, created_at
		FROM attendance_events
		WHERE employee_id = $1
		  AND timestamp BETWEEN $2 AND $3
		  AND company_id = $4
		ORDER BY timestamp ASC
	`

	rows, err := q.Query(ctx, query, employeeID, from, to, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance events: %w", err)
	}
	defer rows.Close()

	var events []attendance.Event
	for rows.Next() {
		var ev attendance.Event
		err := rows.Scan(
			&ev.ID, &ev.CompanyID, &ev.EmployeeID, &ev.Type, &ev.Source, &ev.Timestamp,
			&ev.Latitude, &ev.Longitude, &ev.DeviceID, &ev.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance event: %w", err)
		}
		events = append(events, ev)
	}

	return events, rows.Err()
}

func insertDailyRecord(ctx context.Context, q database.Querier, rec *attendance.DailyRecord) error {
	query := `
		INSERT INTO daily_records (
			id, company_id, employee_id, date,
			check_in_time, check_out_time, status, late_minutes, late_reason,
			is_emergency_checkout, emergency_checkout_reason, door_unlock_time,
			needs_review, is_correction, check_in_source, device_id
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
		) RETURNING created_at, updated_at
	`

	return q.QueryRow(ctx, query,
		rec.ID, rec.CompanyID, rec.EmployeeID, rec.Date,
		rec.CheckInTime, rec.CheckOutTime, rec.Status, rec.LateMinutes, rec.LateReason,
		rec.IsEmergencyCheckout, rec.EmergencyCheckoutReason, rec.DoorUnlockTime,
		rec.NeedsReview, rec.IsCorrection, rec.CheckInSource, rec.DeviceID,
	).Scan(&rec.CreatedAt, &rec.UpdatedAt)
}

func updateDailyRecord(ctx context.Context, q database.Querier, rec *attendance.DailyRecord) error {
	query := `
		UPDATE daily_records SET
			check_in_time = $2,
			check_out_time = $3,
			status = $4,
			late_minutes = $5,
			late_reason = $6,
			is_emergency_checkout = $7,
			emergency_checkout_reason = $8,
			door_unlock_time = $9,
			needs_review = $10,
			is_correction = $11,
			check_in_source = $12,
			device_id = $13,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	return q.QueryRow(ctx, query,
		rec.ID,
		rec.CheckInTime, rec.CheckOutTime, rec.Status, rec.LateMinutes, rec.LateReason,
		rec.IsEmergencyCheckout, rec.EmergencyCheckoutReason, rec.DoorUnlockTime,
		rec.NeedsReview, rec.IsCorrection, rec.CheckInSource, rec.DeviceID,
	).Scan(&rec.UpdatedAt)
}

func insertAttendanceEvent(ctx context.Context, q database.Querier, ev attendance.Event) error {
	query := `
		INSERT INTO attendance_events (
			id, company_id, employee_id, event_type, source, timestamp,
			latitude, longitude, device_id
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
	`

	_, err := q.Exec(ctx, query,
		ev.ID, ev.CompanyID, ev.EmployeeID, ev.Type, ev.Source, ev.Timestamp,
		ev.Latitude, ev.Longitude, ev.DeviceID,
	)
	return err
}

func collectDailyRecords(rows pgx.Rows) ([]attendance.DailyRecord, error) {
	var records []attendance.DailyRecord
	for rows.Next() {
		rec, err := scanDailyRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
