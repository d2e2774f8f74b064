package notification

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Create(ctx context.Context, n *InAppNotification) error
	List(ctx context.Context, limit int) ([]InAppNotification, error)
	MarkRead(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create inserts a notification; redeliveries of the same Kafka message are
// silently dropped via the MessageID unique index.
func (r *repository) Create(ctx context.Context, n *InAppNotification) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "message_id"}},
			DoNothing: true,
		}).
		Create(n).Error
}

func (r *repository) List(ctx context.Context, limit int) ([]InAppNotification, error) {
	if limit <= 0 {
		limit = 20
	}
	var notifications []InAppNotification
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

func (r *repository) MarkRead(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&InAppNotification{}).
		Where("id = ?", id).
		Update("is_read", true).Error
}
