package geofence

import (
	"context"
)

// Validator checks reported punch coordinates against the company
// geofence.
type Validator interface {
	// Validate computes the great-circle distance between the reported
	// point and the office center. A nil coordinate yields
	// Inside=false, MissingCoordinate=true.
	Validate(ctx context.Context, companyID string, lat, lon *float64) (Result, error)

	// Get returns the raw configured geofence.
	Get(ctx context.Context, companyID string) (Config, error)

	// Update replaces the company's geofence.
	Update(ctx context.Context, companyID string, req UpdateGeofenceRequest) (GeofenceResponse, error)
}
