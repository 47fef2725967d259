package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/shopnext/backend/internal/models"
)

func (r *GormRepo) EnqueueOutbox(ctx context.Context, msg *models.OutboxMessage) error {
	return r.DB.WithContext(ctx).Create(msg).Error
}

func (r *GormRepo) PendingOutbox(ctx context.Context, maxAttempts, limit int) ([]models.OutboxMessage, error) {
	var msgs []models.OutboxMessage
	err := r.DB.WithContext(ctx).
		Where("sent_at IS NULL AND attempts < ?", maxAttempts).
		Order("created_at ASC").
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *GormRepo) MarkOutboxSent(ctx context.Context, id string) error {
	now := time.Now()
	return r.DB.WithContext(ctx).
		Model(&models.OutboxMessage{}).
		Where("id = ?", id).
		Updates(map[string]any{"sent_at": &now, "last_error": ""}).Error
}

func (r *GormRepo) MarkOutboxFailed(ctx context.Context, id, reason string) error {
	return r.DB.WithContext(ctx).
		Model(&models.OutboxMessage{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"attempts":   gorm.Expr("attempts + 1"),
			"last_error": reason,
		}).Error
}
