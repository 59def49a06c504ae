package door

import (
	"context"
	"time"
)

// Repository persists door events and the hardware device registry.
type Repository interface {
	CreateEvent(ctx context.Context, ev Event) (Event, error)

	// ListEventsByRange returns events in an inclusive UTC range, oldest
	// first.
	ListEventsByRange(ctx context.Context, companyID string, from, to time.Time) ([]Event, error)

	// ListEventsByDevice returns events for one device since the given
	// instant, oldest first.
	ListEventsByDevice(ctx context.Context, companyID, deviceID string, since time.Time) ([]Event, error)
}

// Device is a registered punch/door device. SecretHash is a bcrypt hash
// of the device key presented in X-Device-Key.
type Device struct {
	ID         string
	CompanyID  string
	DeviceUID  string
	DeviceType string
	Location   string
	SecretHash string
	Active     bool
	CreatedAt  time.Time
}

// DeviceRepository is the hardware device registry.
type DeviceRepository interface {
	// GetByUID returns ErrDeviceNotFound when no device matches.
	GetByUID(ctx context.Context, deviceUID string) (Device, error)

	// GetByID looks a device up within a company.
	GetByID(ctx context.Context, id string, companyID string) (Device, error)
}
