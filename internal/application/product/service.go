package product

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/storefront-api/internal/domain"
	"github.com/storefront-api/internal/pkg/id"
	"github.com/storefront-api/internal/pkg/slug"
)

type Service interface {
	Create(ctx context.Context, req domain.CreateProductRequest, createdBy string) (*domain.Product, error)
	List(ctx context.Context, search, category string, page, perPage int) ([]domain.Product, int, error)
	Get(ctx context.Context, productID string) (*domain.Product, error)
	GetBySlug(ctx context.Context, productSlug string) (*domain.Product, error)
	Update(ctx context.Context, productID string, req domain.UpdateProductRequest) (*domain.Product, error)
	Delete(ctx context.Context, productID string) error
}

type productStore interface {
	Put(ctx context.Context, p *domain.Product) error
	Get(ctx context.Context, productID string) (*domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	Scan(ctx context.Context, category string) ([]domain.Product, error)
	Update(ctx context.Context, productID string, updates map[string]interface{}) error
	Delete(ctx context.Context, productID string) error
}

type service struct {
	repo productStore
}

func NewService(repo productStore) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req domain.CreateProductRequest, createdBy string) (*domain.Product, error) {
	if req.Slug == "" {
		req.Slug = slug.Make(req.Title)
	}
	if req.Currency == "" {
		req.Currency = "INR"
	}
	now := time.Now().UTC()
	p := &domain.Product{
		ProductID:   id.New(),
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		Price:       req.Price,
		Currency:    req.Currency,
		Category:    req.Category,
		Images:      req.Images,
		Tags:        req.Tags,
		SEO:         req.SEO,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Put(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// List returns a page of products, newest first, plus the total match count.
// The search term matches case-insensitively against title, description,
// tags and the SEO meta title.
func (s *service) List(ctx context.Context, search, category string, page, perPage int) ([]domain.Product, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 12
	}
	products, err := s.repo.Scan(ctx, category)
	if err != nil {
		return nil, 0, err
	}
	if search != "" {
		matched := products[:0]
		for _, p := range products {
			if matchesSearch(p, search) {
				matched = append(matched, p)
			}
		}
		products = matched
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
	total := len(products)
	start := (page - 1) * perPage
	if start >= total {
		return []domain.Product{}, total, nil
	}
	end := start + perPage
	if end > total {
		end = total
	}
	return products[start:end], total, nil
}

func (s *service) Get(ctx context.Context, productID string) (*domain.Product, error) {
	return s.repo.Get(ctx, productID)
}

func (s *service) GetBySlug(ctx context.Context, productSlug string) (*domain.Product, error) {
	return s.repo.GetBySlug(ctx, productSlug)
}

func matchesSearch(p domain.Product, search string) bool {
	q := strings.ToLower(search)
	if strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(p.SEO.MetaTitle), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func (s *service) Update(ctx context.Context, productID string, req domain.UpdateProductRequest) (*domain.Product, error) {
	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
		if req.Slug == nil {
			updates["slug"] = slug.Make(*req.Title)
		}
	}
	if req.Slug != nil {
		updates["slug"] = *req.Slug
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Currency != nil {
		updates["currency"] = *req.Currency
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Images != nil {
		updates["images"] = *req.Images
	}
	if req.Tags != nil {
		updates["tags"] = *req.Tags
	}
	if req.SEO != nil {
		updates["seo"] = *req.SEO
	}
	if len(updates) == 0 {
		return s.repo.Get(ctx, productID)
	}
	if err := s.repo.Update(ctx, productID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, productID)
}

func (s *service) Delete(ctx context.Context, productID string) error {
	return s.repo.Delete(ctx, productID)
}
