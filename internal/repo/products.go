package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/shopnext/backend/internal/models"
)

func (r *GormRepo) CreateProduct(ctx context.Context, p *models.Product) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *GormRepo) ProductByID(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	if err := r.DB.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *GormRepo) ListProducts(ctx context.Context, category string) ([]models.Product, error) {
	q := r.DB.WithContext(ctx).Model(&models.Product{})
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var products []models.Product
	if err := q.Order("id DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormRepo) UpdateProduct(ctx context.Context, p *models.Product) error {
	res := r.DB.WithContext(ctx).Model(&models.Product{}).Where("id = ?", p.ID).Updates(map[string]any{
		"title":    p.Title,
		"category": p.Category,
		"price":    p.Price,
		"image":    p.Image,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.Product{}, id).Error
}

func (r *GormRepo) CreateContact(ctx context.Context, c *models.Contact) error {
	return r.DB.WithContext(ctx).Create(c).Error
}
