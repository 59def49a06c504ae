package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoattend/attendance-backend-go/internal/domain/attendance"
	"github.com/geoattend/attendance-backend-go/internal/domain/report"
	"github.com/geoattend/attendance-backend-go/internal/domain/schedule"
	scheduleservice "github.com/geoattend/attendance-backend-go/internal/service/schedule"
)

func newUTCResolver() schedule.Resolver {
	return scheduleservice.NewScheduleResolver(fakeScheduleRepo{})
}

type fakeAttendanceRepo struct {
	records []attendance.DailyRecord
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(context.Context, string, time.Time, string) (*attendance.DailyRecord, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) CreateWithEvent(_ context.Context, rec attendance.DailyRecord, _ attendance.Event) (attendance.DailyRecord, error) {
	f.records = append(f.records, rec)
	return rec, nil
}

func (f *fakeAttendanceRepo) UpdateWithEvent(_ context.Context, rec attendance.DailyRecord, _ attendance.Event) (attendance.DailyRecord, error) {
	return rec, nil
}

func (f *fakeAttendanceRepo) Update(context.Context, attendance.DailyRecord) error {
	return nil
}

func (f *fakeAttendanceRepo) ListByEmployeeRange(context.Context, string, time.Time, time.Time, string) ([]attendance.DailyRecord, error) {
	return f.records, nil
}

func (f *fakeAttendanceRepo) ListByMonth(_ context.Context, employeeID string, year int, month time.Month, _ string) ([]attendance.DailyRecord, error) {
	var out []attendance.DailyRecord
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID && rec.Date.Year() == year && rec.Date.Month() == month {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListUncorrelated(context.Context, string, time.Time) ([]attendance.DailyRecord, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) ListEvents(context.Context, string, time.Time, time.Time, string) ([]attendance.Event, error) {
	return nil, nil
}

type fakeScheduleRepo struct{}

func (fakeScheduleRepo) GetByCompany(context.Context, string) (schedule.WorkSchedule, error) {
	return schedule.WorkSchedule{}, schedule.ErrScheduleNotFound
}

func (fakeScheduleRepo) Upsert(_ context.Context, ws schedule.WorkSchedule) (schedule.WorkSchedule, error) {
	return ws, nil
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func record(employeeID string, date time.Time, status attendance.Status, createdAt time.Time) attendance.DailyRecord {
	return attendance.DailyRecord{
		EmployeeID: employeeID,
		Date:       date,
		Status:     status,
		CreatedAt:  createdAt,
	}
}

// ===== PURE AGGREGATION =====

func TestAggregate_FullMonth(t *testing.T) {
	t.Parallel()

	// March 2024 has 21 weekdays.
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	records := []attendance.DailyRecord{
		record("EMP-1", day(2024, 3, 4), attendance.StatusPresent, created),
		record("EMP-1", day(2024, 3, 5), attendance.StatusLate, created),
		record("EMP-1", day(2024, 3, 6), attendance.StatusSuperLate, created),
		record("EMP-1", day(2024, 3, 7), attendance.StatusPresent, created),
	}

	asOf := day(2024, 4, 15) // well past month end
	summary := Aggregate(records, 2024, time.March, asOf, report.DefaultWorkWeek())

	assert.Equal(t, 21, summary.ExpectedDays)
	assert.Equal(t, 2, summary.Present)
	assert.Equal(t, 1, summary.Late)
	assert.Equal(t, 1, summary.SuperLate)
	assert.Equal(t, 17, summary.Absent)
}

func TestAggregate_CountsSumToExpectedDays(t *testing.T) {
	t.Parallel()

	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	records := []attendance.DailyRecord{
		record("EMP-1", day(2024, 3, 4), attendance.StatusPresent, created),
		record("EMP-1", day(2024, 3, 5), attendance.StatusLate, created),
		// Weekend attendance earns no credit and must not break the sum.
		record("EMP-1", day(2024, 3, 9), attendance.StatusPresent, created),
	}

	summary := Aggregate(records, 2024, time.March, day(2024, 3, 31), report.DefaultWorkWeek())

	total := summary.Present + summary.Late + summary.SuperLate + summary.Absent
	assert.Equal(t, summary.ExpectedDays, total)
}

func TestAggregate_MidMonthCutoff(t *testing.T) {
	t.Parallel()

	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	records := []attendance.DailyRecord{
		record("EMP-1", day(2024, 3, 4), attendance.StatusPresent, created),
		record("EMP-1", day(2024, 3, 5), attendance.StatusPresent, created),
	}

	// As of Friday March 8: weekdays 1, 4, 5, 6, 7, 8 are expected.
	summary := Aggregate(records, 2024, time.March, day(2024, 3, 8), report.DefaultWorkWeek())

	assert.Equal(t, 6, summary.ExpectedDays)
	assert.Equal(t, 2, summary.Present)
	assert.Equal(t, 4, summary.Absent)
}

func TestAggregate_FutureMonth(t *testing.T) {
	t.Parallel()

	summary := Aggregate(nil, 2024, time.June, day(2024, 3, 8), report.DefaultWorkWeek())

	assert.Equal(t, 0, summary.ExpectedDays)
	assert.Equal(t, 0, summary.Absent)
}

func TestAggregate_Deterministic(t *testing.T) {
	t.Parallel()

	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	records := []attendance.DailyRecord{
		record("EMP-1", day(2024, 3, 4), attendance.StatusLate, created),
		record("EMP-1", day(2024, 3, 5), attendance.StatusPresent, created),
	}

	first := Aggregate(records, 2024, time.March, day(2024, 3, 31), report.DefaultWorkWeek())
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Aggregate(records, 2024, time.March, day(2024, 3, 31), report.DefaultWorkWeek()))
	}
}

func TestAggregate_DuplicateRecordsCountOnce(t *testing.T) {
	t.Parallel()

	// Two records for the same day: only the earlier-created one counts.
	records := []attendance.DailyRecord{
		record("EMP-1", day(2024, 3, 4), attendance.StatusLate, time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)),
		record("EMP-1", day(2024, 3, 4), attendance.StatusPresent, time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)),
	}

	summary := Aggregate(records, 2024, time.March, day(2024, 3, 31), report.DefaultWorkWeek())

	assert.Equal(t, 1, summary.Present)
	assert.Equal(t, 0, summary.Late)
}

func TestAggregate_LegacyStatusSpelling(t *testing.T) {
	t.Parallel()

	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	records := []attendance.DailyRecord{
		record("EMP-1", day(2024, 3, 4), attendance.Status("super_late"), created),
		record("EMP-1", day(2024, 3, 5), attendance.Status("LATE"), created),
	}

	summary := Aggregate(records, 2024, time.March, day(2024, 3, 31), report.DefaultWorkWeek())

	assert.Equal(t, 1, summary.SuperLate)
	assert.Equal(t, 1, summary.Late)
}

func TestAggregate_CustomWorkWeek(t *testing.T) {
	t.Parallel()

	// Sunday-Thursday work week, common in Gulf deployments.
	workWeek := report.WorkWeek{
		time.Sunday:    true,
		time.Monday:    true,
		time.Tuesday:   true,
		time.Wednesday: true,
		time.Thursday:  true,
	}

	summary := Aggregate(nil, 2024, time.March, day(2024, 3, 31), workWeek)

	// March 2024: 5 Sundays, 4 each of Mon-Thu.
	assert.Equal(t, 21, summary.ExpectedDays)
	assert.Equal(t, 21, summary.Absent)
}

// ===== SERVICE =====

func TestMonthlyAggregator_Summarize(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := &fakeAttendanceRepo{}
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	repo.records = []attendance.DailyRecord{
		record("EMP-1", day(2024, 3, 4), attendance.StatusPresent, created),
		record("EMP-2", day(2024, 3, 4), attendance.StatusLate, created),
	}

	agg := NewMonthlyAggregator(repo, newUTCResolver(), nil)

	summary, err := agg.Summarize(ctx, "company-1", "EMP-1", 2024, time.March, day(2024, 4, 10))

	require.NoError(t, err)
	assert.Equal(t, "EMP-1", summary.EmployeeID)
	assert.Equal(t, 21, summary.ExpectedDays)
	// Only EMP-1's records contribute.
	assert.Equal(t, 1, summary.Present)
	assert.Equal(t, 0, summary.Late)
}

func TestMonthlyAggregator_Summarize_InvalidMonth(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	agg := NewMonthlyAggregator(&fakeAttendanceRepo{}, newUTCResolver(), nil)

	_, err := agg.Summarize(ctx, "company-1", "EMP-1", 2024, time.Month(13), time.Now())
	assert.ErrorIs(t, err, report.ErrInvalidMonth)
}
