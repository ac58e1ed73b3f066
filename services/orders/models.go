package orders

import (
	"github.com/shopspring/decimal"

	ordersms "github.com/sidgim/orders-ms"
)

type CreateOrderItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int32 `json:"quantity"`
}

// CreateOrderRequest keeps its lines in request order; duplicate productIds
// are not merged, each line becomes its own stored item.
type CreateOrderRequest struct {
	Items []CreateOrderItem `json:"items"`
}

type NamedItem struct {
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int32           `json:"quantity"`
	ProductID int64           `json:"productId"`
}

// OrderWithProducts is an order decorated with product names resolved from
// the product service. Names live only on the wire, never in storage.
type OrderWithProducts struct {
	ordersms.Order
	OrderItems []NamedItem `json:"orderItems"`
}

type PaginationRequest struct {
	Status string `json:"status,omitempty"`
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
}

type PageMeta struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	LastPage int64 `json:"lastPage"`
}

type PaginatedOrders struct {
	Data []*ordersms.Order `json:"data"`
	Meta PageMeta          `json:"meta"`
}

// PaidOrderEvent is the payment service's confirmation, delivered at least
// once.
type PaidOrderEvent struct {
	OrderID          string `json:"orderId"`
	ExternalChargeID string `json:"externalChargeId"`
	ReceiptURL       string `json:"receiptUrl"`
}
