package geofence

import "errors"

// Geofence domain errors
var (
	ErrGeofenceNotFound = errors.New("no geofence configured for company")
)
