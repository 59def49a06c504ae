package report

import (
	"context"
	"fmt"
	"time"

	"github.com/geoattend/attendance-backend-go/internal/domain/attendance"
	"github.com/geoattend/attendance-backend-go/internal/domain/report"
	"github.com/geoattend/attendance-backend-go/internal/domain/schedule"
)

type AggregatorImpl struct {
	attendanceRepo attendance.Repository
	resolver       schedule.Resolver
	workWeek       report.WorkWeek
}

func NewMonthlyAggregator(
	attendanceRepo attendance.Repository,
	resolver schedule.Resolver,
	workWeek report.WorkWeek,
) report.Aggregator {
	if workWeek == nil {
		workWeek = report.DefaultWorkWeek()
	}
	return &AggregatorImpl{
		attendanceRepo: attendanceRepo,
		resolver:       resolver,
		workWeek:       workWeek,
	}
}

// Summarize implements report.Aggregator.
func (r *AggregatorImpl) Summarize(ctx context.Context, companyID, employeeID string, year int, month time.Month, asOf time.Time) (report.MonthlySummary, error) {
	if month < time.January || month > time.December {
		return report.MonthlySummary{}, report.ErrInvalidMonth
	}
	if year < 2000 || year > 2200 {
		return report.MonthlySummary{}, report.ErrInvalidYear
	}

	// The "today" cutoff is the company-local calendar day of asOf, so a
	// late-night UTC query does not prematurely expect tomorrow.
	res, err := r.resolver.ResolveOrDefault(ctx, companyID, asOf)
	if err != nil {
		return report.MonthlySummary{}, fmt.Errorf("failed to resolve schedule: %w", err)
	}

	records, err := r.attendanceRepo.ListByMonth(ctx, employeeID, year, month, companyID)
	if err != nil {
		return report.MonthlySummary{}, fmt.Errorf("failed to list daily records: %w", err)
	}

	summary := Aggregate(records, year, month, res.LocalDate, r.workWeek)
	summary.EmployeeID = employeeID
	return summary, nil
}

// Aggregate is the pure rollup: identical inputs always yield identical
// output. asOfLocalDate is the company-local calendar day of the query.
func Aggregate(records []attendance.DailyRecord, year int, month time.Month, asOfLocalDate time.Time, workWeek report.WorkWeek) report.MonthlySummary {
	summary := report.MonthlySummary{
		Year:  year,
		Month: int(month),
	}

	lastExpected := lastExpectedDay(year, month, asOfLocalDate)

	// Expected days: business days from the 1st through the cutoff.
	for day := 1; day <= lastExpected; day++ {
		d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		if workWeek.IsBusinessDay(d.Weekday()) {
			summary.ExpectedDays++
		}
	}

	// If a replay produced two records for one key, only the earliest
	// chronological one counts.
	earliest := make(map[string]attendance.DailyRecord)
	for _, rec := range records {
		key := attendance.DateKey(rec.EmployeeID, rec.Date)
		prev, seen := earliest[key]
		if !seen || rec.CreatedAt.Before(prev.CreatedAt) {
			earliest[key] = rec
		}
	}

	for _, rec := range earliest {
		if rec.Date.Year() != year || rec.Date.Month() != month {
			continue
		}
		// Non-business-day attendance earns no credit against absences,
		// and days past the cutoff are not yet expected.
		if rec.Date.Day() > lastExpected || !workWeek.IsBusinessDay(rec.Date.Weekday()) {
			continue
		}

		status, err := attendance.ParseStatus(string(rec.Status))
		if err != nil {
			continue
		}
		switch status {
		case attendance.StatusPresent:
			summary.Present++
		case attendance.StatusLate:
			summary.Late++
		case attendance.StatusSuperLate:
			summary.SuperLate++
		}
	}

	absent := summary.ExpectedDays - summary.Present - summary.Late - summary.SuperLate
	if absent < 0 {
		absent = 0
	}
	summary.Absent = absent

	return summary
}

// lastExpectedDay clamps the absence window to min(asOf local day, last
// day of month); future days never count as absences.
func lastExpectedDay(year int, month time.Month, asOfLocalDate time.Time) int {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	if asOfLocalDate.Before(monthStart) {
		return 0
	}

	lastOfMonth := monthStart.AddDate(0, 1, -1).Day()
	if asOfLocalDate.Year() == year && asOfLocalDate.Month() == month {
		if asOfLocalDate.Day() < lastOfMonth {
			return asOfLocalDate.Day()
		}
	}
	return lastOfMonth
}
