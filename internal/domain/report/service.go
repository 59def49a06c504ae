package report

import (
	"context"
	"time"
)

// Aggregator rolls daily records up into monthly summaries with
// business-day absence inference. Summarize is idempotent: identical
// underlying records always yield an identical summary.
type Aggregator interface {
	// Summarize computes the summary for the month as of the given
	// instant. Days after asOf (company-local) are not yet expected and
	// accrue no absences.
	Summarize(ctx context.Context, companyID, employeeID string, year int, month time.Month, asOf time.Time) (MonthlySummary, error)
}
