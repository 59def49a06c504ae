package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/geoattend/attendance-backend-go/internal/domain/door"
	"github.com/geoattend/attendance-backend-go/internal/pkg/database"
)

type doorEventRepository struct {
	db *database.DB
}

func NewDoorEventRepository(db *database.DB) door.Repository {
	return &doorEventRepository{db: db}
}

const doorEventColumns = `
	id, company_id, device_id, event_type, trigger_reason, employee_id, timestamp, created_at
`

func scanDoorEvent(row pgx.Row) (door.Event, error) {
	var ev door.Event
	err := row.Scan(
		&ev.ID, &ev.CompanyID, &ev.DeviceID, &ev.Type,
		&ev.TriggerReason, &ev.EmployeeID, &ev.Timestamp, &ev.CreatedAt,
	)
	return ev, err
}

// CreateEvent implements door.Repository.
func (d *doorEventRepository) CreateEvent(ctx context.Context, ev door.Event) (door.Event, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		INSERT INTO door_events (
			id, company_id, device_id, event_type, trigger_reason, employee_id, timestamp
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		ev.ID, ev.CompanyID, ev.DeviceID, ev.Type, ev.TriggerReason, ev.EmployeeID, ev.Timestamp,
	).Scan(&ev.CreatedAt)
	if err != nil {
		return door.Event{}, fmt.Errorf("failed to create door event: %w", err)
	}

	return ev, nil
}

// ListEventsByRange implements door.Repository.
func (d *doorEventRepository) ListEventsByRange(ctx context.Context, companyID string, from, to time.Time) ([]door.Event, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		SELECT ` + doorEventColumns + `
		FROM door_events
		WHERE company_id = $1
		  AND timestamp >= $2
		  AND timestamp < $3
		ORDER BY timestamp ASC
	`

	rows, err := q.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list door events: %w", err)
	}
	defer rows.Close()

	return collectDoorEvents(rows)
}

// ListEventsByDevice implements door.Repository.
func (d *doorEventRepository) ListEventsByDevice(ctx context.Context, companyID, deviceID string, since time.Time) ([]door.Event, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		SELECT ` + doorEventColumns + `
		FROM door_events
		WHERE company_id = $1
		  AND device_id = $2
		  AND timestamp >= $3
		ORDER BY timestamp ASC
	`

	rows, err := q.Query(ctx, query, companyID, deviceID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list door events: %w", err)
	}
	defer rows.Close()

	return collectDoorEvents(rows)
}

func collectDoorEvents(rows pgx.Rows) ([]door.Event, error) {
	var events []door.Event
	for rows.Next() {
		ev, err := scanDoorEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan door event: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
