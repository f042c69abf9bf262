package store

import (
	"context"
	"fmt"

	"github.com/Lanun66/Stay-D-Hidrated-2/internal/logger"
	"github.com/Lanun66/Stay-D-Hidrated-2/models"
	"github.com/jackc/pgerrcode"
)

// deviceRepository is the PostgreSQL-backed implementation of
// [DeviceRepository]. Rows in the "devices" table associate a user with the
// push endpoints created for their registered device tokens.
type deviceRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewDeviceRepository constructs a [DeviceRepository] backed by the provided
// database connection and logger.
func NewDeviceRepository(db *DB, logger *logger.Logger) DeviceRepository {
	logger.Debug().Msg("creating device repository")
	return &deviceRepository{
		db:     db,
		logger: logger,
	}
}

// RegisterDevice stores (or refreshes) a device registration. Re-registering
// the same token replaces the platform and endpoint in place.
func (r *deviceRepository) RegisterDevice(ctx context.Context, device models.Device) error {
	log := logger.FromContext(ctx)

	_, err := r.db.ExecContext(ctx, registerDevice, device.UserID, device.Platform, device.TokenHash, device.EndpointARN)
	if err != nil {
		log.Err(err).Str("func", "*deviceRepository.RegisterDevice").Msg("error: upsert failed")

		switch postgresError(err) {
		case pgerrcode.ForeignKeyViolation:
			return ErrRecordNotFound
		default:
			return r.db.wrapUnexpected(err)
		}
	}

	return nil
}

// GetDevices retrieves all registered devices for a user. An unregistered
// user yields an empty slice, not an error.
func (r *deviceRepository) GetDevices(ctx context.Context, userID string) ([]models.Device, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, getDevices, userID)
	if err != nil {
		log.Err(err).Str("func", "*deviceRepository.GetDevices").Msg("error: query failed")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var devices []models.Device
	for rows.Next() {
		var device models.Device
		if err = rows.Scan(&device.UserID, &device.Platform, &device.TokenHash, &device.EndpointARN); err != nil {
			log.Err(err).Str("func", "*deviceRepository.GetDevices").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		devices = append(devices, device)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*deviceRepository.GetDevices").Msg("error: iteration error")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return devices, nil
}
