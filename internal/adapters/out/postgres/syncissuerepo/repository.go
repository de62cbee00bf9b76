// Package syncissuerepo stores inventory mirror drift flags.
package syncissuerepo

import (
	"context"
	"time"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/ports"
	"donations/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SyncIssueDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	PackageID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	OrderID    *uuid.UUID `gorm:"type:uuid"`
	Operation  string     `gorm:"type:varchar(32);not null"`
	Reason     string     `gorm:"type:text;not null"`
	OccurredAt time.Time  `gorm:"not null"`
	ResolvedAt *time.Time `gorm:"index"`
}

func (SyncIssueDTO) TableName() string {
	return "stockit_sync_issues"
}

// GormSyncIssueRepository implements ports.SyncIssueRepository. It writes outside of any
// ledger transaction so that flags survive when the caller's work is already committed.
type GormSyncIssueRepository struct {
	db *gorm.DB
}

func NewGormSyncIssueRepository(db *gorm.DB) *GormSyncIssueRepository {
	return &GormSyncIssueRepository{db: db}
}

func (r *GormSyncIssueRepository) Record(ctx context.Context, issue ports.SyncIssue) error {
	if err := issue.PackageID.Validate(); err != nil {
		return err
	}
	if issue.ID.Validate() != nil {
		issue.ID = kernel.NewUUID()
	}
	if issue.OccurredAt.IsZero() {
		issue.OccurredAt = time.Now()
	}

	var orderID *uuid.UUID
	if issue.OrderID != nil {
		raw := issue.OrderID.Bytes()
		orderID = &raw
	}

	dto := SyncIssueDTO{
		ID:         issue.ID.Bytes(),
		PackageID:  issue.PackageID.Bytes(),
		OrderID:    orderID,
		Operation:  string(issue.Operation),
		Reason:     issue.Reason,
		OccurredAt: issue.OccurredAt.UTC(),
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormSyncIssueRepository) CountOpen(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&SyncIssueDTO{}).Where("resolved_at IS NULL").Count(&n).Error
	return n, err
}

func (r *GormSyncIssueRepository) ListOpen(ctx context.Context, limit int) ([]ports.SyncIssue, error) {
	var dtos []SyncIssueDTO
	err := r.db.WithContext(ctx).
		Where("resolved_at IS NULL").
		Order("occurred_at ASC").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	out := make([]ports.SyncIssue, 0, len(dtos))
	for _, dto := range dtos {
		issue := ports.SyncIssue{
			ID:         kernel.UUIDFromGoogle(dto.ID),
			PackageID:  kernel.UUIDFromGoogle(dto.PackageID),
			Operation:  ports.SyncOperation(dto.Operation),
			Reason:     dto.Reason,
			OccurredAt: dto.OccurredAt,
		}
		if dto.OrderID != nil {
			id := kernel.UUIDFromGoogle(*dto.OrderID)
			issue.OrderID = &id
		}
		out = append(out, issue)
	}
	return out, nil
}

func (r *GormSyncIssueRepository) Resolve(ctx context.Context, id kernel.UUID, at time.Time) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&SyncIssueDTO{}).
		Where("id = ? AND resolved_at IS NULL", id.Bytes()).
		Update("resolved_at", at.UTC())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("sync issue", id.String())
	}
	return nil
}
