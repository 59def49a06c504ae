package geofence

import (
	"time"
)

// Config is a company's office geofence: a circular boundary around the
// office coordinates used to validate punch locations.
type Config struct {
	CompanyID     string
	Latitude      float64
	Longitude     float64
	RadiusMeters  float64
	RejectOffsite bool // when set, offsite checkouts are hard-rejected
	UpdatedAt     time.Time
}

// Result is the outcome of validating a reported coordinate.
type Result struct {
	Inside         bool    `json:"inside"`
	DistanceMeters float64 `json:"distance_meters"`
	// MissingCoordinate marks punches with no usable location; those are
	// flagged for manual review rather than accepted or rejected.
	MissingCoordinate bool `json:"missing_coordinate"`
	// RejectOffsite echoes the company policy in force when the point
	// was validated, so callers can decide between flagging and
	// rejecting without a second config read.
	RejectOffsite bool `json:"-"`
}
