// Package auditrepo persists access-audit records and supports retention
// housekeeping. Rows carry identifiers only, never resource content.
package auditrepo

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/audit"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditRecordDTO maps one audit trail row.
type AuditRecordDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Timestamp        time.Time `gorm:"index"`
	Event            string
	RequestingUserID int64
	ResourceID       string `gorm:"index"`
	ResourceType     string
	ActualOwnerID    *int64
}

// TableName overrides GORM's default naming to use "audit_records".
func (AuditRecordDTO) TableName() string {
	return "audit_records"
}

// GormAuditStore implements ports.AuditStore using GORM.
type GormAuditStore struct {
	db *gorm.DB
}

// NewGormAuditStore creates a new GORM audit store.
func NewGormAuditStore(db *gorm.DB) *GormAuditStore {
	return &GormAuditStore{db: db}
}

// Append stores one audit record.
func (s *GormAuditStore) Append(ctx context.Context, record audit.Record) error {
	dto := fromDomain(record)
	return s.db.WithContext(ctx).Create(&dto).Error
}

// PurgeOlderThan deletes records observed before the cutoff.
func (s *GormAuditStore) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("timestamp < ?", cutoff).
		Delete(&AuditRecordDTO{})
	return result.RowsAffected, result.Error
}

func fromDomain(record audit.Record) AuditRecordDTO {
	var actualOwner *int64
	if record.ActualOwnerID != nil {
		raw := record.ActualOwnerID.Int64()
		actualOwner = &raw
	}

	return AuditRecordDTO{
		ID:               uuid.New(),
		Timestamp:        record.Timestamp,
		Event:            string(record.Event),
		RequestingUserID: record.RequestingUserID.Int64(),
		ResourceID:       record.ResourceID,
		ResourceType:     record.ResourceType,
		ActualOwnerID:    actualOwner,
	}
}

