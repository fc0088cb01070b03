package carrierrepo

import (
	"context"
	"errors"

	"shipping/internal/core/domain/model/carrier"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCarrierRepository implements the read-only CarrierRepository using GORM.
// It reads outside any unit of work: the directory is reference data and
// never written by this service.
type GormCarrierRepository struct {
	db *gorm.DB
}

// NewGormCarrierRepository creates a new GORM carrier repository.
func NewGormCarrierRepository(db *gorm.DB) *GormCarrierRepository {
	return &GormCarrierRepository{db: db}
}

// Get retrieves a carrier by ID.
func (r *GormCarrierRepository) Get(ctx context.Context, id kernel.UUID) (*carrier.Carrier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CarrierDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("carrierId", id.String())
		}
		return nil, err
	}

	return carrierToDomain(dto)
}

// GetDrivers retrieves the driver pool of a carrier.
func (r *GormCarrierRepository) GetDrivers(ctx context.Context, carrierID kernel.UUID) ([]*carrier.Driver, error) {
	if err := carrierID.Validate(); err != nil {
		return nil, err
	}

	var dtos []DriverDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "carrier_id = ?", carrierID.Bytes()).Error; err != nil {
		return nil, err
	}

	drivers := make([]*carrier.Driver, 0, len(dtos))
	for _, dto := range dtos {
		d, err := driverToDomain(dto)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, d)
	}

	return drivers, nil
}
