package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoattend/attendance-backend-go/internal/domain/schedule"
)

type fakeScheduleRepo struct {
	ws *schedule.WorkSchedule
}

func (f *fakeScheduleRepo) GetByCompany(context.Context, string) (schedule.WorkSchedule, error) {
	if f.ws == nil {
		return schedule.WorkSchedule{}, schedule.ErrScheduleNotFound
	}
	return *f.ws, nil
}

func (f *fakeScheduleRepo) Upsert(_ context.Context, ws schedule.WorkSchedule) (schedule.WorkSchedule, error) {
	f.ws = &ws
	return ws, nil
}

func TestScheduleResolver_Resolve_LocalDay(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	resolver := NewScheduleResolver(&fakeScheduleRepo{ws: &schedule.WorkSchedule{
		CompanyID:                 "company-1",
		StartTime:                 "09:00",
		EndTime:                   "17:00",
		Timezone:                  "Asia/Dhaka",
		SuperLateThresholdMinutes: 30,
	}})

	// 20:30 UTC on March 10 is 02:30 on March 11 in Dhaka.
	res, err := resolver.Resolve(ctx, "company-1", time.Date(2024, 3, 10, 20, 30, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.Equal(t, "2024-03-11", res.LocalDate.Format("2006-01-02"))
	assert.False(t, res.DegradedUTC)

	loc, err := time.LoadLocation("Asia/Dhaka")
	require.NoError(t, err)
	assert.True(t, res.DayStart.Equal(time.Date(2024, 3, 11, 9, 0, 0, 0, loc)))
	assert.True(t, res.DayEnd.Equal(time.Date(2024, 3, 11, 17, 0, 0, 0, loc)))
}

func TestScheduleResolver_Resolve_DSTSpringForward(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	resolver := NewScheduleResolver(&fakeScheduleRepo{ws: &schedule.WorkSchedule{
		CompanyID:                 "company-1",
		StartTime:                 "09:00",
		EndTime:                   "17:00",
		Timezone:                  "America/New_York",
		SuperLateThresholdMinutes: 30,
	}})

	// March 10 2024 is the US spring-forward day: EST became EDT at
	// 02:00. 13:05 UTC is 09:05 EDT, five minutes after start.
	res, err := resolver.Resolve(ctx, "company-1", time.Date(2024, 3, 10, 13, 5, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.Equal(t, "2024-03-10", res.LocalDate.Format("2006-01-02"))
	assert.Equal(t, 5*time.Minute, res.LocalTime.Sub(res.DayStart))

	// The day before, still EST, the same wall clock is an hour later
	// in UTC.
	res, err = resolver.Resolve(ctx, "company-1", time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, res.LocalTime.Sub(res.DayStart))
}

func TestScheduleResolver_Resolve_NotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	resolver := NewScheduleResolver(&fakeScheduleRepo{})

	_, err := resolver.Resolve(ctx, "company-1", time.Now())
	assert.ErrorIs(t, err, schedule.ErrScheduleNotFound)
}

func TestScheduleResolver_ResolveOrDefault_DegradesToUTC(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	resolver := NewScheduleResolver(&fakeScheduleRepo{})

	res, err := resolver.ResolveOrDefault(ctx, "company-1", time.Date(2024, 3, 11, 9, 30, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.True(t, res.DegradedUTC)
	assert.Equal(t, "2024-03-11", res.LocalDate.Format("2006-01-02"))
	assert.Equal(t, 30*time.Minute, res.LocalTime.Sub(res.DayStart))
}

func TestScheduleResolver_Resolve_InvalidTimezoneFallsBackToUTC(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	resolver := NewScheduleResolver(&fakeScheduleRepo{ws: &schedule.WorkSchedule{
		CompanyID:                 "company-1",
		StartTime:                 "09:00",
		EndTime:                   "17:00",
		Timezone:                  "Mars/Olympus",
		SuperLateThresholdMinutes: 30,
	}})

	res, err := resolver.Resolve(ctx, "company-1", time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.True(t, res.DegradedUTC)
	assert.Equal(t, time.UTC, res.Location)
}

func TestScheduleResolver_Update_Validation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	resolver := NewScheduleResolver(&fakeScheduleRepo{})

	tests := []struct {
		name string
		req  schedule.UpdateScheduleRequest
	}{
		{"bad time format", schedule.UpdateScheduleRequest{StartTime: "9am", EndTime: "17:00", Timezone: "UTC", SuperLateThresholdMinutes: 30}},
		{"start after end", schedule.UpdateScheduleRequest{StartTime: "18:00", EndTime: "09:00", Timezone: "UTC", SuperLateThresholdMinutes: 30}},
		{"unknown timezone", schedule.UpdateScheduleRequest{StartTime: "09:00", EndTime: "17:00", Timezone: "Mars/Olympus", SuperLateThresholdMinutes: 30}},
		{"zero threshold", schedule.UpdateScheduleRequest{StartTime: "09:00", EndTime: "17:00", Timezone: "UTC", SuperLateThresholdMinutes: 0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := resolver.Update(ctx, "company-1", tc.req)
			assert.Error(t, err)
		})
	}
}

func TestScheduleResolver_Update_Success(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := &fakeScheduleRepo{}
	resolver := NewScheduleResolver(repo)

	resp, err := resolver.Update(ctx, "company-1", schedule.UpdateScheduleRequest{
		StartTime:                 "08:30",
		EndTime:                   "16:30",
		Timezone:                  "Asia/Dhaka",
		SuperLateThresholdMinutes: 45,
	})

	require.NoError(t, err)
	assert.Equal(t, "08:30", resp.StartTime)
	assert.Equal(t, "Asia/Dhaka", resp.Timezone)
	require.NotNil(t, repo.ws)

	// The updated schedule is in force immediately.
	res, err := resolver.Resolve(ctx, "company-1", time.Date(2024, 3, 11, 3, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "08:30", res.Schedule.StartTime)
}
