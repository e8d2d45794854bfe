package domain

import "time"

const (
	OrderPending   = "pending"
	OrderPaid      = "paid"
	OrderShipped   = "shipped"
	OrderCancelled = "cancelled"
)

// ValidOrderStatus reports whether s is one of the known order states.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderPaid, OrderShipped, OrderCancelled:
		return true
	}
	return false
}

type OrderCustomer struct {
	Name    string `json:"name" dynamodbav:"name"`
	Email   string `json:"email" dynamodbav:"email"`
	Phone   string `json:"phone" dynamodbav:"phone"`
	Address string `json:"address" dynamodbav:"address"`
}

type OrderItem struct {
	ProductID string `json:"product_id" dynamodbav:"product_id"`
	Title     string `json:"title" dynamodbav:"title"`
	Qty       int    `json:"qty" dynamodbav:"qty"`
	Price     int64  `json:"price" dynamodbav:"price"` // minor units, per unit
}

type Order struct {
	OrderID   string        `json:"id" dynamodbav:"order_id"`
	Customer  OrderCustomer `json:"customer" dynamodbav:"customer"`
	Items     []OrderItem   `json:"items" dynamodbav:"items"`
	Subtotal  int64         `json:"subtotal" dynamodbav:"subtotal"`
	Total     int64         `json:"total" dynamodbav:"total"`
	Status    string        `json:"status" dynamodbav:"status"`
	Source    string        `json:"source" dynamodbav:"source"`
	CreatedAt time.Time     `json:"created" dynamodbav:"created_at"`
	UpdatedAt time.Time     `json:"updated" dynamodbav:"updated_at"`
}

type CreateOrderRequest struct {
	Customer OrderCustomer `json:"customer" validate:"required"`
	Items    []OrderItem   `json:"items" validate:"required,min=1,dive"`
	Source   string        `json:"source"`
}
