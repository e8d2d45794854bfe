package category

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/storefront-api/internal/domain"
)

type Service interface {
	Create(ctx context.Context, req domain.CreateCategoryRequest) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Get(ctx context.Context, categoryID string) (*domain.Category, error)
	Update(ctx context.Context, categoryID string, req domain.UpdateCategoryRequest) (*domain.Category, error)
	// Reorder rewrites every listed category's sort order to its position in ids.
	Reorder(ctx context.Context, ids []string) error
	Delete(ctx context.Context, categoryID string) error
}

type categoryStore interface {
	Put(ctx context.Context, c *domain.Category) error
	Get(ctx context.Context, categoryID string) (*domain.Category, error)
	Scan(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, categoryID string, updates map[string]interface{}) error
	Delete(ctx context.Context, categoryID string) error
}

type service struct {
	repo categoryStore
}

func NewService(repo categoryStore) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req domain.CreateCategoryRequest) (*domain.Category, error) {
	if _, err := s.repo.Get(ctx, req.CategoryID); err == nil {
		return nil, fmt.Errorf("category id already exists: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if req.Status == "" {
		req.Status = domain.CategoryActive
	}
	now := time.Now().UTC()
	c := &domain.Category{
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		SortOrder:   req.SortOrder,
		Status:      req.Status,
		SEO:         req.SEO,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Put(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// List returns all categories ordered by sort order, ties broken by title.
func (s *service) List(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.repo.Scan(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].SortOrder != categories[j].SortOrder {
			return categories[i].SortOrder < categories[j].SortOrder
		}
		return categories[i].Title < categories[j].Title
	})
	return categories, nil
}

func (s *service) Get(ctx context.Context, categoryID string) (*domain.Category, error) {
	return s.repo.Get(ctx, categoryID)
}

func (s *service) Update(ctx context.Context, categoryID string, req domain.UpdateCategoryRequest) (*domain.Category, error) {
	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if req.SortOrder != nil {
		updates["sort_order"] = *req.SortOrder
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.SEO != nil {
		updates["seo"] = *req.SEO
	}
	if len(updates) == 0 {
		return s.repo.Get(ctx, categoryID)
	}
	if err := s.repo.Update(ctx, categoryID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, categoryID)
}

func (s *service) Reorder(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return fmt.Errorf("ids must not be empty: %w", domain.ErrBadRequest)
	}
	for i, id := range ids {
		if err := s.repo.Update(ctx, id, map[string]interface{}{"sort_order": i}); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) Delete(ctx context.Context, categoryID string) error {
	return s.repo.Delete(ctx, categoryID)
}
