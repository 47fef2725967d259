package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopnext/backend/internal/logging"
	"github.com/shopnext/backend/internal/models"
	"github.com/shopnext/backend/internal/repo"
	"github.com/shopnext/backend/internal/search"
	"github.com/shopnext/backend/internal/transport"
)

type CatalogService struct {
	Repo    *repo.GormRepo
	Indexer search.Indexer
}

func (s *CatalogService) Get(ctx context.Context, id uint) (*models.Product, error) {
	p, err := s.Repo.ProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, fmt.Errorf("%w: product", ErrNotFound)
		}
		return nil, err
	}
	return p, nil
}

func (s *CatalogService) List(ctx context.Context, category string) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx, category)
}

func (s *CatalogService) Create(ctx context.Context, req transport.ProductRequest) (*models.Product, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title required", ErrValidation)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}

	p := &models.Product{
		Title:     req.Title,
		Category:  req.Category,
		Price:     req.Price,
		Image:     req.Image,
		CreatedAt: time.Now(),
	}
	if err := s.Repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	s.reindex(ctx, p)
	return p, nil
}

func (s *CatalogService) Update(ctx context.Context, id uint, req transport.ProductRequest) (*models.Product, error) {
	p := &models.Product{
		ID:       id,
		Title:    req.Title,
		Category: req.Category,
		Price:    req.Price,
		Image:    req.Image,
	}
	if err := s.Repo.UpdateProduct(ctx, p); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, fmt.Errorf("%w: product", ErrNotFound)
		}
		return nil, err
	}
	s.reindex(ctx, p)
	return p, nil
}

func (s *CatalogService) Delete(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return err
	}
	if s.Indexer != nil {
		if err := s.Indexer.DeleteProduct(ctx, id); err != nil {
			logging.FromContext(ctx).Error("search deindex failed", "product_id", id, "error", err)
		}
	}
	return nil
}

// Search index writes are best-effort; the catalog row is the source of
// truth and a stale index heals on the next write.
func (s *CatalogService) reindex(ctx context.Context, p *models.Product) {
	if s.Indexer == nil {
		return
	}
	if err := s.Indexer.IndexProduct(ctx, p); err != nil {
		logging.FromContext(ctx).Error("search index failed", "product_id", p.ID, "error", err)
	}
}
