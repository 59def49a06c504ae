package geofence

import (
	"context"
)

// Repository persists the one geofence Config per company.
type Repository interface {
	// GetByCompany returns ErrGeofenceNotFound when none is configured.
	GetByCompany(ctx context.Context, companyID string) (Config, error)

	// Upsert replaces the company's geofence.
	Upsert(ctx context.Context, cfg Config) (Config, error)
}
