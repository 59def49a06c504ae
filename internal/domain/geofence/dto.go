package geofence

import (
	"github.com/geoattend/attendance-backend-go/internal/pkg/validator"
)

type UpdateGeofenceRequest struct {
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	RadiusMeters  float64 `json:"radius_meters"`
	RejectOffsite bool    `json:"reject_offsite"`
}

func (r *UpdateGeofenceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Latitude < -90 || r.Latitude > 90 {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude < -180 || r.Longitude > 180 {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if r.RadiusMeters <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "radius_meters",
			Message: "radius_meters must be greater than zero",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type GeofenceResponse struct {
	CompanyID     string  `json:"company_id"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	RadiusMeters  float64 `json:"radius_meters"`
	RejectOffsite bool    `json:"reject_offsite"`
}

func NewGeofenceResponse(cfg Config) GeofenceResponse {
	return GeofenceResponse{
		CompanyID:     cfg.CompanyID,
		Latitude:      cfg.Latitude,
		Longitude:     cfg.Longitude,
		RadiusMeters:  cfg.RadiusMeters,
		RejectOffsite: cfg.RejectOffsite,
	}
}
