package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/geoattend/attendance-backend-go/internal/domain/schedule"
	"github.com/geoattend/attendance-backend-go/internal/pkg/database"
)

type scheduleRepository struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) schedule.Repository {
	return &scheduleRepository{db: db}
}

// GetByCompany implements schedule.Repository.
func (s *scheduleRepository) GetByCompany(ctx context.Context, companyID string) (schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT company_id, start_time, end_time, timezone, super_late_threshold_minutes, updated_at
		FROM work_schedules
		WHERE company_id = $1
	`

	var ws schedule.WorkSchedule
	err := q.QueryRow(ctx, query, companyID).Scan(
		&ws.CompanyID, &ws.StartTime, &ws.EndTime, &ws.Timezone,
		&ws.SuperLateThresholdMinutes, &ws.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return schedule.WorkSchedule{}, schedule.ErrScheduleNotFound
		}
		return schedule.WorkSchedule{}, fmt.Errorf("failed to get work schedule: %w", err)
	}

	return ws, nil
}

// Upsert implements schedule.Repository.
func (s *scheduleRepository) Upsert(ctx context.Context, ws schedule.WorkSchedule) (schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		INSERT INTO work_schedules (
			company_id, start_time, end_time, timezone, super_late_threshold_minutes
		) VALUES (
			$1, $2, $3, $4, $5
		)
		ON CONFLICT (company_id) DO UPDATE SET
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			timezone = EXCLUDED.timezone,
			super_late_threshold_minutes = EXCLUDED.super_late_threshold_minutes,
			updated_at = NOW()
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		ws.CompanyID, ws.StartTime, ws.EndTime, ws.Timezone, ws.SuperLateThresholdMinutes,
	).Scan(&ws.UpdatedAt)
	if err != nil {
		return schedule.WorkSchedule{}, fmt.Errorf("failed to upsert work schedule: %w", err)
	}

	return ws, nil
}
