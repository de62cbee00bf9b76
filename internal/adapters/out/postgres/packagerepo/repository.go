package packagerepo

import (
	"context"
	"errors"

	"donations/internal/core/domain/model/donation"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPackageRepository implements ports.PackageRepository using GORM.
type GormPackageRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormPackageRepository(db *gorm.DB, tracker aggregateTracker) *GormPackageRepository {
	return &GormPackageRepository{db: db, tracker: tracker}
}

func (r *GormPackageRepository) Add(ctx context.Context, pkg *donation.Package) error {
	if err := pkg.Validate(); err != nil {
		return err
	}

	dto := fromDomain(pkg)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(pkg.ID(), pkg)
	return nil
}

// Update writes the package row and inserts location history entries that are not stored
// yet. History rows are never rewritten.
func (r *GormPackageRepository) Update(ctx context.Context, pkg *donation.Package) error {
	if err := pkg.Validate(); err != nil {
		return err
	}

	dto := fromDomain(pkg)
	result := r.db.WithContext(ctx).
		Model(&PackageDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("created_at", "Locations").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("package", pkg.ID().String())
	}

	if len(dto.Locations) > 0 {
		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
			Create(&dto.Locations).Error
		if err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(pkg.ID(), pkg)
	return nil
}

func (r *GormPackageRepository) Get(ctx context.Context, id kernel.UUID) (*donation.Package, error) {
	return r.get(ctx, r.db, id)
}

// GetForUpdate issues SELECT ... FOR UPDATE on the package row. Only meaningful inside a
// transaction.
func (r *GormPackageRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*donation.Package, error) {
	return r.get(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormPackageRepository) get(ctx context.Context, db *gorm.DB, id kernel.UUID) (*donation.Package, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PackageDTO
	err := db.WithContext(ctx).
		Preload("Locations", func(tx *gorm.DB) *gorm.DB { return tx.Order("recorded_at ASC") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("package", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
