package orderspackagerepo

import (
	"context"
	"errors"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/model/orderspackage"
	"donations/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrdersPackageRepository implements ports.OrdersPackageRepository using GORM.
type GormOrdersPackageRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrdersPackageRepository(db *gorm.DB, tracker aggregateTracker) *GormOrdersPackageRepository {
	return &GormOrdersPackageRepository{db: db, tracker: tracker}
}

func (r *GormOrdersPackageRepository) Add(ctx context.Context, entry *orderspackage.OrdersPackage) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(entry.ID(), entry)
	return nil
}

// Update writes every column so that zero quantities and cleared sent_on values persist.
func (r *GormOrdersPackageRepository) Update(ctx context.Context, entry *orderspackage.OrdersPackage) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	result := r.db.WithContext(ctx).
		Model(&OrdersPackageDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("orders package", entry.ID().String())
	}

	r.tracker.TrackAggregate(entry.ID(), entry)
	return nil
}

func (r *GormOrdersPackageRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&OrdersPackageDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("orders package", id.String())
	}
	return nil
}

func (r *GormOrdersPackageRepository) Get(ctx context.Context, id kernel.UUID) (*orderspackage.OrdersPackage, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrdersPackageDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orders package", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrdersPackageRepository) ListByPackage(
	ctx context.Context,
	packageID kernel.UUID,
) ([]*orderspackage.OrdersPackage, error) {
	return r.list(ctx, "package_id = ?", packageID)
}

func (r *GormOrdersPackageRepository) ListByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) ([]*orderspackage.OrdersPackage, error) {
	return r.list(ctx, "order_id = ?", orderID)
}

func (r *GormOrdersPackageRepository) DeleteRedundant(
	ctx context.Context,
	orderID kernel.UUID,
	packageID *kernel.UUID,
) (int64, error) {
	if err := orderID.Validate(); err != nil {
		return 0, err
	}

	q := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Where("state = ? AND quantity = 0", orderspackage.Cancelled.String())
	if packageID != nil {
		q = q.Where("package_id = ?", packageID.Bytes())
	}

	result := q.Delete(&OrdersPackageDTO{})
	return result.RowsAffected, result.Error
}

func (r *GormOrdersPackageRepository) ListOrderIDsWithRedundant(ctx context.Context, limit int) ([]kernel.UUID, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&OrdersPackageDTO{}).
		Where("state = ? AND quantity = 0", orderspackage.Cancelled.String()).
		Distinct("order_id").
		Order("order_id").
		Limit(limit).
		Pluck("order_id", &ids).Error
	if err != nil {
		return nil, err
	}

	out := make([]kernel.UUID, 0, len(ids))
	for _, raw := range ids {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func (r *GormOrdersPackageRepository) list(
	ctx context.Context,
	cond string,
	id kernel.UUID,
) ([]*orderspackage.OrdersPackage, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrdersPackageDTO
	if err := r.db.WithContext(ctx).Where(cond, id.Bytes()).Order("created_at ASC").Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainList(dtos)
}
