package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/geoattend/attendance-backend-go/internal/domain/schedule"
)

// Defaults applied when a company has no configured schedule. The punch
// is still accepted; classification degrades to UTC with a warning.
var defaultSchedule = schedule.WorkSchedule{
	StartTime:                 "09:00",
	EndTime:                   "17:00",
	Timezone:                  "UTC",
	SuperLateThresholdMinutes: 30,
}

type ResolverImpl struct {
	schedule.Repository
}

func NewScheduleResolver(repo schedule.Repository) schedule.Resolver {
	return &ResolverImpl{Repository: repo}
}

// Resolve implements schedule.Resolver.
func (s *ResolverImpl) Resolve(ctx context.Context, companyID string, at time.Time) (schedule.Resolved, error) {
	ws, err := s.Repository.GetByCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, schedule.ErrScheduleNotFound) {
			return schedule.Resolved{}, schedule.ErrScheduleNotFound
		}
		return schedule.Resolved{}, fmt.Errorf("failed to load work schedule: %w", err)
	}

	return materialize(ws, at, false), nil
}

// ResolveOrDefault implements schedule.Resolver.
func (s *ResolverImpl) ResolveOrDefault(ctx context.Context, companyID string, at time.Time) (schedule.Resolved, error) {
	ws, err := s.Repository.GetByCompany(ctx, companyID)
	if err != nil {
		if !errors.Is(err, schedule.ErrScheduleNotFound) {
			return schedule.Resolved{}, fmt.Errorf("failed to load work schedule: %w", err)
		}
		slog.Warn("no work schedule configured, classifying against UTC defaults",
			"company_id", companyID)
		ws = defaultSchedule
		ws.CompanyID = companyID
		return materialize(ws, at, true), nil
	}

	return materialize(ws, at, false), nil
}

// Get implements schedule.Resolver.
func (s *ResolverImpl) Get(ctx context.Context, companyID string) (schedule.WorkSchedule, error) {
	return s.Repository.GetByCompany(ctx, companyID)
}

// Update implements schedule.Resolver.
func (s *ResolverImpl) Update(ctx context.Context, companyID string, req schedule.UpdateScheduleRequest) (schedule.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	ws := schedule.WorkSchedule{
		CompanyID:                 companyID,
		StartTime:                 req.StartTime,
		EndTime:                   req.EndTime,
		Timezone:                  req.Timezone,
		SuperLateThresholdMinutes: req.SuperLateThresholdMinutes,
	}

	saved, err := s.Repository.Upsert(ctx, ws)
	if err != nil {
		return schedule.ScheduleResponse{}, fmt.Errorf("failed to save work schedule: %w", err)
	}

	return schedule.NewScheduleResponse(saved), nil
}

// materialize pins the schedule's wall-clock bounds to the local day the
// instant falls on, applying the correct DST offset for that instant.
func materialize(ws schedule.WorkSchedule, at time.Time, degraded bool) schedule.Resolved {
	loc, err := time.LoadLocation(ws.Timezone)
	if err != nil {
		slog.Warn("invalid schedule timezone, falling back to UTC",
			"company_id", ws.CompanyID, "timezone", ws.Timezone)
		loc = time.UTC
		degraded = true
	}

	local := at.In(loc)
	y, m, d := local.Date()

	startH, startM := parseWallClock(ws.StartTime, 9, 0)
	endH, endM := parseWallClock(ws.EndTime, 17, 0)

	return schedule.Resolved{
		Schedule:    ws,
		Location:    loc,
		LocalTime:   local,
		LocalDate:   time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		DayStart:    time.Date(y, m, d, startH, startM, 0, 0, loc),
		DayEnd:      time.Date(y, m, d, endH, endM, 0, 0, loc),
		DegradedUTC: degraded,
	}
}

func parseWallClock(s string, fallbackH, fallbackM int) (int, int) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return fallbackH, fallbackM
	}
	return t.Hour(), t.Minute()
}
