package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate reform

type OrderStatus string

const (
	Pending   OrderStatus = "PENDING"
	Paid      OrderStatus = "PAID"
	Delivered OrderStatus = "DELIVERED"
	Cancelled OrderStatus = "CANCELLED"
)

var Statuses = []OrderStatus{Pending, Paid, Delivered, Cancelled}

// ParseStatus maps a wire status string to a recognized OrderStatus.
func ParseStatus(s string) (OrderStatus, error) {
	for _, st := range Statuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", ErrUnknownStatus
}

//reform:orders
type Order struct {
	OrderID string      `reform:"order_id,pk" json:"id"`
	Status  OrderStatus `reform:"status" json:"status"`

	TotalAmount decimal.Decimal `reform:"total_amount" json:"totalAmount"`
	TotalItems  int32           `reform:"total_items" json:"totalItems"`

	Paid             bool       `reform:"paid" json:"paid"`
	PaidAt           *time.Time `reform:"paid_at" json:"paidAt"`
	ExternalChargeID *string    `reform:"external_charge_id" json:"externalChargeId,omitempty"`

	CreatedAt time.Time `reform:"created_at" json:"createdAt"`
	UpdatedAt time.Time `reform:"updated_at" json:"updatedAt"`
}

func (o *Order) BeforeInsert() error {
	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now
	return nil
}

func (o *Order) BeforeUpdate() error {
	o.UpdatedAt = time.Now()
	return nil
}

func NewOrder(totalAmount decimal.Decimal, totalItems int32) *Order {
	return &Order{
		OrderID:     uuid.NewString(),
		Status:      Pending,
		TotalAmount: totalAmount,
		TotalItems:  totalItems,
	}
}

// AlreadyPaidWith reports whether this exact payment confirmation was applied
// before. Confirmations arrive at least once; a repeat must not move paidAt
// or produce a second receipt.
func (o *Order) AlreadyPaidWith(chargeID string) bool {
	return o.Paid && o.ExternalChargeID != nil && *o.ExternalChargeID == chargeID
}

// MarkPaid applies a payment confirmation to the order fields. paid, status,
// paidAt and externalChargeId always change together.
func (o *Order) MarkPaid(chargeID string, at time.Time) {
	o.Status = Paid
	o.Paid = true
	o.PaidAt = &at
	o.ExternalChargeID = &chargeID
}

// OrderItem is a line of an order. Price is snapshotted from the validated
// product at creation time and never changes afterwards.
//reform:order_items
type OrderItem struct {
	OrderItemID int64  `reform:"order_item_id,pk" json:"-"`
	OrderID     string `reform:"order_id" json:"-"`

	ProductID int64           `reform:"product_id" json:"productId"`
	Quantity  int32           `reform:"quantity" json:"quantity"`
	Price     decimal.Decimal `reform:"price" json:"price"`
}

// OrderReceipt is created exactly once per order, on payment confirmation.
//reform:order_receipts
type OrderReceipt struct {
	ReceiptID  int64  `reform:"receipt_id,pk" json:"-"`
	OrderID    string `reform:"order_id" json:"orderId"`
	ReceiptURL string `reform:"receipt_url" json:"receiptUrl"`

	CreatedAt time.Time `reform:"created_at" json:"createdAt"`
}

func (r *OrderReceipt) BeforeInsert() error {
	r.CreatedAt = time.Now()
	return nil
}
