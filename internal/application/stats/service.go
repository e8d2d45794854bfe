package stats

import (
	"context"
	"sort"

	"github.com/storefront-api/internal/domain"
)

// Summary is the admin dashboard aggregation: real counts over the stores and
// a revenue breakdown computed from the order ledger.
type Summary struct {
	Products        int              `json:"products"`
	Categories      int              `json:"categories"`
	Orders          int              `json:"orders"`
	RevenueByStatus map[string]int64 `json:"revenue_by_status"`
	LatestProducts  []domain.Product `json:"latest_products"`
}

type Service interface {
	Summary(ctx context.Context) (*Summary, error)
}

type productStore interface {
	Scan(ctx context.Context, category string) ([]domain.Product, error)
}

type categoryStore interface {
	Count(ctx context.Context) (int, error)
}

type orderStore interface {
	Scan(ctx context.Context) ([]domain.Order, error)
}

type service struct {
	products   productStore
	categories categoryStore
	orders     orderStore
}

func NewService(products productStore, categories categoryStore, orders orderStore) Service {
	return &service{products: products, categories: categories, orders: orders}
}

func (s *service) Summary(ctx context.Context) (*Summary, error) {
	products, err := s.products.Scan(ctx, "")
	if err != nil {
		return nil, err
	}
	categoryCount, err := s.categories.Count(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.Scan(ctx)
	if err != nil {
		return nil, err
	}

	revenue := map[string]int64{}
	for _, o := range orders {
		revenue[o.Status] += o.Total
	}

	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
	latest := products
	if len(latest) > 6 {
		latest = latest[:6]
	}

	return &Summary{
		Products:        len(products),
		Categories:      categoryCount,
		Orders:          len(orders),
		RevenueByStatus: revenue,
		LatestProducts:  latest,
	}, nil
}
