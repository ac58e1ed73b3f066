package orders

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	ordersms "github.com/sidgim/orders-ms"
	"github.com/sidgim/orders-ms/provider/payments"
	"github.com/sidgim/orders-ms/provider/products"
)

// Store is the persistence surface the orchestrator needs.
type Store interface {
	CreateOrder(o *ordersms.Order, items []*ordersms.OrderItem) error
	FindByID(id string) (*ordersms.Order, error)
	ItemsByOrder(orderID string) ([]*ordersms.OrderItem, error)
	List(status *ordersms.OrderStatus, page, limit int) ([]*ordersms.Order, int64, error)
	UpdateStatus(id string, status ordersms.OrderStatus) (*ordersms.Order, error)
	MarkPaid(id, chargeID, receiptURL string) (*ordersms.Order, error)
}

// ProductValidator resolves product ids to current product data on the
// remote product service.
type ProductValidator interface {
	ValidateProducts(ctx context.Context, ids []int64) ([]products.Product, error)
}

// PaymentSessions creates checkout sessions on the remote payment service.
type PaymentSessions interface {
	CreateSession(ctx context.Context, req payments.SessionRequest) (json.RawMessage, error)
}

func NewService(store Store, validator ProductValidator, sessions PaymentSessions, currency string, pageLimit int) *Service {
	return &Service{
		store:     store,
		validator: validator,
		sessions:  sessions,
		currency:  currency,
		pageLimit: pageLimit,
		l:         zap.L().Named("orders_service"),
	}
}

// Service orchestrates order creation, lookup, status transitions and
// payment reconciliation across the product service, the payment service and
// the order store.
type Service struct {
	store     Store
	validator ProductValidator
	sessions  PaymentSessions
	currency  string
	pageLimit int
	l         *zap.Logger
}

// Create validates all requested products with exactly one round-trip,
// computes the totals server-side from the validated snapshot and persists
// the order with all items atomically. Identical repeated calls create
// distinct orders.
func (s *Service) Create(ctx context.Context, req CreateOrderRequest) (*OrderWithProducts, error) {
	if len(req.Items) == 0 {
		return nil, ordersms.ErrEmptyOrder
	}
	ids := make([]int64, 0, len(req.Items))
	for _, line := range req.Items {
		if line.Quantity <= 0 {
			return nil, ordersms.ErrInvalidQuantity
		}
		ids = append(ids, line.ProductID)
	}

	list, err := s.validator.ValidateProducts(ctx, ids)
	if err != nil {
		return nil, err
	}
	snap := products.MakeSnapshot(list)
	if missing := snap.Missing(ids); len(missing) > 0 {
		s.l.Info("Rejected order with unresolved products.", zap.Int64s("product_ids", missing))
		return nil, ordersms.ErrProductsMismatch
	}

	totalAmount := decimal.Zero
	var totalItems int32
	items := make([]*ordersms.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		price := snap[line.ProductID].Price
		totalAmount = totalAmount.Add(price.Mul(decimal.NewFromInt32(line.Quantity)))
		totalItems += line.Quantity
		items = append(items, &ordersms.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     price,
		})
	}

	order := ordersms.NewOrder(totalAmount, totalItems)
	if err := s.store.CreateOrder(order, items); err != nil {
		return nil, errors.Wrap(err, "failed persist order")
	}
	ordersCreated.Inc()
	s.l.Info("Order created.",
		zap.String("order_id", order.OrderID),
		zap.String("total_amount", order.TotalAmount.String()),
		zap.Int32("total_items", order.TotalItems),
	)
	return withNames(order, items, snap), nil
}

func (s *Service) FindAll(ctx context.Context, req PaginationRequest) (*PaginatedOrders, error) {
	var status *ordersms.OrderStatus
	if req.Status != "" {
		st, err := ordersms.ParseStatus(req.Status)
		if err != nil {
			return nil, err
		}
		status = &st
	}
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 {
		limit = s.pageLimit
	}

	data, total, err := s.store.List(status, page, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed list orders")
	}
	return &PaginatedOrders{
		Data: data,
		Meta: PageMeta{
			Total:    total,
			Page:     page,
			LastPage: lastPage(total, limit),
		},
	}, nil
}

// FindOne re-resolves item names with a second validator call keyed by the
// order's productIds. A product that no longer resolves leaves that item's
// name empty instead of failing the read.
func (s *Service) FindOne(ctx context.Context, id string) (*OrderWithProducts, error) {
	order, err := s.store.FindByID(id)
	if err != nil {
		return nil, err
	}
	items, err := s.store.ItemsByOrder(id)
	if err != nil {
		return nil, errors.Wrap(err, "failed load order items")
	}

	snap := products.Snapshot{}
	if len(items) > 0 {
		ids := make([]int64, 0, len(items))
		for _, item := range items {
			ids = append(ids, item.ProductID)
		}
		list, err := s.validator.ValidateProducts(ctx, ids)
		if err != nil {
			return nil, err
		}
		snap = products.MakeSnapshot(list)
	}
	return withNames(order, items, snap), nil
}

// ChangeStatus is an unconditional transition between recognized statuses.
func (s *Service) ChangeStatus(ctx context.Context, id, status string) (*ordersms.Order, error) {
	st, err := ordersms.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	order, err := s.store.UpdateStatus(id, st)
	if err != nil {
		return nil, err
	}
	s.l.Info("Order status changed.", zap.String("order_id", id), zap.String("status", status))
	return order, nil
}

// CreatePaymentSession sends the order id, the fixed currency and the
// flattened item lines to the payment service; the session descriptor comes
// back verbatim.
func (s *Service) CreatePaymentSession(ctx context.Context, order *OrderWithProducts) (json.RawMessage, error) {
	req := payments.SessionRequest{
		OrderID:  order.OrderID,
		Currency: s.currency,
		Items:    make([]payments.SessionItem, 0, len(order.OrderItems)),
	}
	for _, item := range order.OrderItems {
		req.Items = append(req.Items, payments.SessionItem{
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}
	return s.sessions.CreateSession(ctx, req)
}

// PaidOrder reconciles a payment confirmation. Redelivered confirmations for
// the same charge id leave the order and its single receipt untouched.
func (s *Service) PaidOrder(ctx context.Context, event PaidOrderEvent) (*ordersms.Order, error) {
	order, err := s.store.MarkPaid(event.OrderID, event.ExternalChargeID, event.ReceiptURL)
	if err != nil {
		return nil, err
	}
	ordersPaid.Inc()
	s.l.Info("Order paid.",
		zap.String("order_id", event.OrderID),
		zap.String("external_charge_id", event.ExternalChargeID),
	)
	return order, nil
}

func withNames(order *ordersms.Order, items []*ordersms.OrderItem, snap products.Snapshot) *OrderWithProducts {
	out := &OrderWithProducts{
		Order:      *order,
		OrderItems: make([]NamedItem, 0, len(items)),
	}
	for _, item := range items {
		out.OrderItems = append(out.OrderItems, NamedItem{
			Name:      snap[item.ProductID].Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			ProductID: item.ProductID,
		})
	}
	return out
}

func lastPage(total int64, limit int) int64 {
	if limit < 1 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}
