package door

import "errors"

// Door domain errors
var (
	ErrDeviceNotFound   = errors.New("hardware device not found")
	ErrDeviceInactive   = errors.New("hardware device is deactivated")
	ErrInvalidDeviceKey = errors.New("invalid device key")
	ErrStaleDeviceClock = errors.New("reported device time is outside the accepted tolerance")
)
