package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/you/schoolauth/domain"
)

// DeliveryRepositoryImpl implements domain.DeliveryRepository using GORM.
// The table is an audit trail: rows are created and updated, never deleted.
type DeliveryRepositoryImpl struct {
	db *gorm.DB
}

// DBDeliveryRecord represents the database model for DeliveryRecord
type DBDeliveryRecord struct {
	ID                uint       `gorm:"primaryKey"`
	ProviderMessageID string     `gorm:"index;size:128"`
	Recipient         string     `gorm:"index;size:32"`
	BodySnapshot      string     `gorm:"size:1024"`
	Status            string     `gorm:"index;size:16"`
	CreatedAt         time.Time  `gorm:"index"`
	UpdatedAt         time.Time
	DeliveredAt       *time.Time
}

// TableName returns the table name for GORM
func (DBDeliveryRecord) TableName() string {
	return "delivery_records"
}

// NewDeliveryRepository creates a new delivery repository
func NewDeliveryRepository(db *gorm.DB) domain.DeliveryRepository {
	return &DeliveryRepositoryImpl{db: db}
}

// Create implements domain.DeliveryRepository
func (r *DeliveryRepositoryImpl) Create(ctx context.Context, record *domain.DeliveryRecord) error {
	dbRecord := r.domainToDB(record)
	if err := r.db.WithContext(ctx).Create(dbRecord).Error; err != nil {
		return err
	}
	record.ID = dbRecord.ID
	return nil
}

// FindByID implements domain.DeliveryRepository
func (r *DeliveryRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.DeliveryRecord, error) {
	var dbRecord DBDeliveryRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbRecord).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrDeliveryNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbRecord), nil
}

// FindByProviderMessageID implements domain.DeliveryRepository
func (r *DeliveryRepositoryImpl) FindByProviderMessageID(ctx context.Context, providerMessageID string) (*domain.DeliveryRecord, error) {
	if providerMessageID == "" {
		return nil, domain.ErrDeliveryNotFound
	}

	var dbRecord DBDeliveryRecord
	err := r.db.WithContext(ctx).Where("provider_message_id = ?", providerMessageID).First(&dbRecord).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrDeliveryNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbRecord), nil
}

// Update implements domain.DeliveryRepository
func (r *DeliveryRepositoryImpl) Update(ctx context.Context, record *domain.DeliveryRecord) error {
	dbRecord := r.domainToDB(record)
	return r.db.WithContext(ctx).Save(dbRecord).Error
}

// List implements domain.DeliveryRepository, newest first
func (r *DeliveryRepositoryImpl) List(ctx context.Context, limit, offset int) ([]domain.DeliveryRecord, error) {
	var dbRecords []DBDeliveryRecord
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&dbRecords).Error
	if err != nil {
		return nil, err
	}

	records := make([]domain.DeliveryRecord, 0, len(dbRecords))
	for i := range dbRecords {
		records = append(records, *r.dbToDomain(&dbRecords[i]))
	}
	return records, nil
}

func (r *DeliveryRepositoryImpl) domainToDB(record *domain.DeliveryRecord) *DBDeliveryRecord {
	return &DBDeliveryRecord{
		ID:                record.ID,
		ProviderMessageID: record.ProviderMessageID,
		Recipient:         record.Recipient,
		BodySnapshot:      record.BodySnapshot,
		Status:            string(record.Status),
		CreatedAt:         record.CreatedAt,
		UpdatedAt:         record.UpdatedAt,
		DeliveredAt:       record.DeliveredAt,
	}
}

func (r *DeliveryRepositoryImpl) dbToDomain(dbRecord *DBDeliveryRecord) *domain.DeliveryRecord {
	return &domain.DeliveryRecord{
		ID:                dbRecord.ID,
		ProviderMessageID: dbRecord.ProviderMessageID,
		Recipient:         dbRecord.Recipient,
		BodySnapshot:      dbRecord.BodySnapshot,
		Status:            domain.DeliveryStatus(dbRecord.Status),
		CreatedAt:         dbRecord.CreatedAt,
		UpdatedAt:         dbRecord.UpdatedAt,
		DeliveredAt:       dbRecord.DeliveredAt,
	}
}
