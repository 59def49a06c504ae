package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/geoattend/attendance-backend-go/internal/domain/geofence"
	"github.com/geoattend/attendance-backend-go/internal/pkg/database"
)

type geofenceRepository struct {
	db *database.DB
}

func NewGeofenceRepository(db *database.DB) geofence.Repository {
	return &geofenceRepository{db: db}
}

// GetByCompany implements geofence.Repository.
func (g *geofenceRepository) GetByCompany(ctx context.Context, companyID string) (geofence.Config, error) {
	q := GetQuerier(ctx, g.db)

	query := `
		SELECT company_id, latitude, longitude, radius_meters, reject_offsite, updated_at
		FROM geofences
		WHERE company_id = $1
	`

	var cfg geofence.Config
	err := q.QueryRow(ctx, query, companyID).Scan(
		&cfg.CompanyID, &cfg.Latitude, &cfg.Longitude,
		&cfg.RadiusMeters, &cfg.RejectOffsite, &cfg.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return geofence.Config{}, geofence.ErrGeofenceNotFound
		}
		return geofence.Config{}, fmt.Errorf("failed to get geofence: %w", err)
	}

	return cfg, nil
}

// Upsert implements geofence.Repository.
func (g *geofenceRepository) Upsert(ctx context.Context, cfg geofence.Config) (geofence.Config, error) {
	q := GetQuerier(ctx, g.db)

	query := `
		INSERT INTO geofences (
			company_id, latitude, longitude, radius_meters, reject_offsite
		) VALUES (
			$1, $2, $3, $4, $5
		)
		ON CONFLICT (company_id) DO UPDATE SET
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			radius_meters = EXCLUDED.radius_meters,
			reject_offsite = EXCLUDED.reject_offsite,
			updated_at = NOW()
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		cfg.CompanyID, cfg.Latitude, cfg.Longitude, cfg.RadiusMeters, cfg.RejectOffsite,
	).Scan(&cfg.UpdatedAt)
	if err != nil {
		return geofence.Config{}, fmt.Errorf("failed to upsert geofence: %w", err)
	}

	return cfg, nil
}
