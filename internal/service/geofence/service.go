package geofence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/geoattend/attendance-backend-go/internal/domain/geofence"
	"github.com/geoattend/attendance-backend-go/internal/pkg/utils"
)

type ValidatorImpl struct {
	geofence.Repository
}

func NewGeofenceValidator(repo geofence.Repository) geofence.Validator {
	return &ValidatorImpl{Repository: repo}
}

// Validate implements geofence.Validator.
func (g *ValidatorImpl) Validate(ctx context.Context, companyID string, lat, lon *float64) (geofence.Result, error) {
	cfg, err := g.Repository.GetByCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, geofence.ErrGeofenceNotFound) {
			// No fence configured: nothing to violate. Degraded mode,
			// punch proceeds.
			slog.Warn("no geofence configured, accepting punch location unchecked",
				"company_id", companyID)
			return geofence.Result{Inside: true}, nil
		}
		return geofence.Result{}, fmt.Errorf("failed to load geofence: %w", err)
	}

	if lat == nil || lon == nil {
		return geofence.Result{
			Inside:            false,
			MissingCoordinate: true,
			RejectOffsite:     cfg.RejectOffsite,
		}, nil
	}

	distance := utils.CalculateHaversineDistance(*lat, *lon, cfg.Latitude, cfg.Longitude)

	return geofence.Result{
		Inside:         distance <= cfg.RadiusMeters,
		DistanceMeters: distance,
		RejectOffsite:  cfg.RejectOffsite,
	}, nil
}

// Get implements geofence.Validator.
func (g *ValidatorImpl) Get(ctx context.Context, companyID string) (geofence.Config, error) {
	return g.Repository.GetByCompany(ctx, companyID)
}

// Update implements geofence.Validator.
func (g *ValidatorImpl) Update(ctx context.Context, companyID string, req geofence.UpdateGeofenceRequest) (geofence.GeofenceResponse, error) {
	if err := req.Validate(); err != nil {
		return geofence.GeofenceResponse{}, err
	}

	cfg := geofence.Config{
		CompanyID:     companyID,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		RadiusMeters:  req.RadiusMeters,
		RejectOffsite: req.RejectOffsite,
	}

	saved, err := g.Repository.Upsert(ctx, cfg)
	if err != nil {
		return geofence.GeofenceResponse{}, fmt.Errorf("failed to save geofence: %w", err)
	}

	return geofence.NewGeofenceResponse(saved), nil
}
