package postgresql

import (
	"context"
	"fmt"

	"github.com/geoattend/attendance-backend-go/internal/pkg/database"
)

// NewCompanyLister returns the set of company IDs known to the system,
// used by background sweeps that iterate every tenant. A company is
// known once it has a schedule, a geofence, or a registered device.
func NewCompanyLister(db *database.DB) func(ctx context.Context) ([]string, error) {
	return func(ctx context.Context) ([]string, error) {
		q := GetQuerier(ctx, db)

		query := `
			SELECT company_id FROM work_schedules
			UNION
			SELECT company_id FROM geofences
			UNION
			SELECT company_id FROM devices
		`

		rows, err := q.Query(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("failed to list companies: %w", err)
		}
		defer rows.Close()

		var ids []string
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				return nil, fmt.Errorf("failed to scan company id: %w", err)
			}
			ids = append(ids, id)
		}

		return ids, rows.Err()
	}
}
