package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/geoattend/attendance-backend-go/internal/domain/door"
	"github.com/geoattend/attendance-backend-go/internal/pkg/database"
)

type deviceRepository struct {
	db *database.DB
}

func NewDeviceRepository(db *database.DB) door.DeviceRepository {
	return &deviceRepository{db: db}
}

const deviceColumns = `
	id, company_id, device_uid, device_type, location, secret_hash, active, created_at
`

func scanDevice(row pgx.Row) (door.Device, error) {
	var dev door.Device
	err := row.Scan(
		&dev.ID, &dev.CompanyID, &dev.DeviceUID, &dev.DeviceType,
		&dev.Location, &dev.SecretHash, &dev.Active, &dev.CreatedAt,
	)
	return dev, err
}

// GetByUID implements door.DeviceRepository.
func (d *deviceRepository) GetByUID(ctx context.Context, deviceUID string) (door.Device, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		SELECT ` + deviceColumns + `
		FROM devices
		WHERE device_uid = $1
	`

	dev, err := scanDevice(q.QueryRow(ctx, query, deviceUID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return door.Device{}, door.ErrDeviceNotFound
		}
		return door.Device{}, fmt.Errorf("failed to get device: %w", err)
	}

	return dev, nil
}

// GetByID implements door.DeviceRepository.
func (d *deviceRepository) GetByID(ctx context.Context, id string, companyID string) (door.Device, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		SELECT ` + deviceColumns + `
		FROM devices
		WHERE id = $1
		  AND company_id = $2
	`

	dev, err := scanDevice(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return door.Device{}, door.ErrDeviceNotFound
		}
		return door.Device{}, fmt.Errorf("failed to get device: %w", err)
	}

	return dev, nil
}
