package order

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/storefront-api/internal/domain"
	"github.com/storefront-api/internal/infrastructure/sns"
	"github.com/storefront-api/internal/pkg/id"
)

type Service interface {
	// Create accepts a public checkout. Totals are computed server-side from
	// the submitted items, never trusted from the client.
	Create(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderID, status string) (*domain.Order, error)
}

type orderStore interface {
	Put(ctx context.Context, o *domain.Order) error
	Get(ctx context.Context, orderID string) (*domain.Order, error)
	Scan(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderID, status string) error
}

type service struct {
	repo      orderStore
	smsSender sns.SMSSender // optional; nil disables shipped notifications
}

func NewService(repo orderStore, smsSender sns.SMSSender) Service {
	return &service{repo: repo, smsSender: smsSender}
}

func (s *service) Create(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error) {
	var subtotal int64
	for _, it := range req.Items {
		if it.Qty <= 0 || it.Price < 0 {
			return nil, fmt.Errorf("invalid item quantity or price: %w", domain.ErrBadRequest)
		}
		subtotal += int64(it.Qty) * it.Price
	}
	now := time.Now().UTC()
	o := &domain.Order{
		OrderID:   id.New(),
		Customer:  req.Customer,
		Items:     req.Items,
		Subtotal:  subtotal,
		Total:     subtotal, // taxes/shipping not modelled yet
		Status:    domain.OrderPending,
		Source:    req.Source,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Put(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) List(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.repo.Scan(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func (s *service) UpdateStatus(ctx context.Context, orderID, status string) (*domain.Order, error) {
	if !domain.ValidOrderStatus(status) {
		return nil, fmt.Errorf("unknown order status %q: %w", status, domain.ErrBadRequest)
	}
	o, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}
	o.Status = status

	if status == domain.OrderShipped {
		s.notifyShipped(o)
	}
	return o, nil
}

// notifyShipped texts the customer that their order is on the way.
// Fire-and-forget: failures are logged, never surfaced to the admin request.
func (s *service) notifyShipped(o *domain.Order) {
	if s.smsSender == nil || o.Customer.Phone == "" {
		return
	}
	msg := fmt.Sprintf("Your order %s has shipped.", o.OrderID)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.smsSender.SendSMS(ctx, o.Customer.Phone, msg); err != nil {
			slog.Warn("order shipped SMS failed", "order_id", o.OrderID, "err", err)
		}
	}()
}
