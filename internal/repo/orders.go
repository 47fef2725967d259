package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/shopnext/backend/internal/models"
)

// AdminOrderRow is an order joined with its owner for the admin listing.
type AdminOrderRow struct {
	models.Order
	UserName string `json:"user_name"`
	Email    string `json:"email"`
}

// CreateOrder inserts the order and its confirmation notification in one
// transaction, so a placed order always has a queued notification.
func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order, msg *models.OutboxMessage) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		if msg != nil {
			if err := tx.Create(msg).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *GormRepo) OrderByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) OrdersByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) AllOrdersWithOwners(ctx context.Context) ([]AdminOrderRow, error) {
	var rows []AdminOrderRow
	err := r.DB.WithContext(ctx).
		Model(&models.Order{}).
		Select("orders.*, users.name AS user_name, users.email AS email").
		Joins("JOIN users ON orders.user_id = users.id").
		Order("orders.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateOrderStatus commits the status change and the status notification
// together; actual delivery is the outbox dispatcher's job.
func (r *GormRepo) UpdateOrderStatus(ctx context.Context, id uint, status string, msg *models.OutboxMessage) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).Where("id = ?", id).Update("status", status)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if msg != nil {
			if err := tx.Create(msg).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
