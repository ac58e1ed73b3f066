package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ordersms "github.com/sidgim/orders-ms"
	"github.com/sidgim/orders-ms/provider/payments"
	"github.com/sidgim/orders-ms/provider/products"
)

type fakeStore struct {
	orders    []*ordersms.Order
	items     map[string][]*ordersms.OrderItem
	receipts  map[string][]*ordersms.OrderReceipt
	createErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		items:    map[string][]*ordersms.OrderItem{},
		receipts: map[string][]*ordersms.OrderReceipt{},
	}
}

func (f *fakeStore) CreateOrder(o *ordersms.Order, items []*ordersms.OrderItem) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.orders = append(f.orders, o)
	for _, item := range items {
		item.OrderID = o.OrderID
	}
	f.items[o.OrderID] = items
	return nil
}

func (f *fakeStore) byID(id string) *ordersms.Order {
	for _, o := range f.orders {
		if o.OrderID == id {
			return o
		}
	}
	return nil
}

func (f *fakeStore) FindByID(id string) (*ordersms.Order, error) {
	if o := f.byID(id); o != nil {
		return o, nil
	}
	return nil, ordersms.ErrOrderNotFound
}

func (f *fakeStore) ItemsByOrder(orderID string) ([]*ordersms.OrderItem, error) {
	return f.items[orderID], nil
}

func (f *fakeStore) List(status *ordersms.OrderStatus, page, limit int) ([]*ordersms.Order, int64, error) {
	var filtered []*ordersms.Order
	for _, o := range f.orders {
		if status == nil || o.Status == *status {
			filtered = append(filtered, o)
		}
	}
	total := int64(len(filtered))
	start := (page - 1) * limit
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end], total, nil
}

func (f *fakeStore) UpdateStatus(id string, status ordersms.OrderStatus) (*ordersms.Order, error) {
	o := f.byID(id)
	if o == nil {
		return nil, ordersms.ErrOrderNotFound
	}
	o.Status = status
	return o, nil
}

func (f *fakeStore) MarkPaid(id, chargeID, receiptURL string) (*ordersms.Order, error) {
	o := f.byID(id)
	if o == nil {
		return nil, ordersms.ErrOrderNotFound
	}
	if o.Paid {
		return o, nil
	}
	o.MarkPaid(chargeID, time.Now())
	f.receipts[id] = append(f.receipts[id], &ordersms.OrderReceipt{OrderID: id, ReceiptURL: receiptURL})
	return o, nil
}

type fakeValidator struct {
	products []products.Product
	err      error
	calls    int
	lastIDs  []int64
}

func (f *fakeValidator) ValidateProducts(ctx context.Context, ids []int64) ([]products.Product, error) {
	f.calls++
	f.lastIDs = ids
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

type fakeSessions struct {
	lastReq payments.SessionRequest
	reply   json.RawMessage
	err     error
}

func (f *fakeSessions) CreateSession(ctx context.Context, req payments.SessionRequest) (json.RawMessage, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.reply, nil
}

func newTestService(st Store, v ProductValidator, p PaymentSessions) *Service {
	return NewService(st, v, p, "usd", 10)
}

func product(id int64, name string, price int64) products.Product {
	return products.Product{ID: id, Name: name, Price: decimal.NewFromInt(price), Available: true}
}

func TestCreateComputesTotals(t *testing.T) {
	st := newFakeStore()
	v := &fakeValidator{products: []products.Product{
		product(1, "Coffee", 10),
		product(2, "Tea", 5),
	}}
	svc := newTestService(st, v, &fakeSessions{})

	res, err := svc.Create(context.Background(), CreateOrderRequest{Items: []CreateOrderItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	}})
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(25).Equal(res.TotalAmount), "totalAmount = %s", res.TotalAmount)
	assert.Equal(t, int32(3), res.TotalItems)
	assert.Equal(t, ordersms.Pending, res.Status)
	require.Len(t, res.OrderItems, 2)
	assert.Equal(t, "Coffee", res.OrderItems[0].Name)
	assert.Equal(t, "Tea", res.OrderItems[1].Name)

	// one validator round-trip per create, all ids batched
	assert.Equal(t, 1, v.calls)
	assert.Equal(t, []int64{1, 2}, v.lastIDs)

	require.Len(t, st.orders, 1)
	assert.Len(t, st.items[res.OrderID], 2)
}

func TestCreateKeepsDuplicateLines(t *testing.T) {
	st := newFakeStore()
	v := &fakeValidator{products: []products.Product{product(1, "Coffee", 10)}}
	svc := newTestService(st, v, &fakeSessions{})

	res, err := svc.Create(context.Background(), CreateOrderRequest{Items: []CreateOrderItem{
		{ProductID: 1, Quantity: 1},
		{ProductID: 1, Quantity: 2},
	}})
	require.NoError(t, err)

	// duplicate productIds are not merged
	require.Len(t, res.OrderItems, 2)
	assert.Len(t, st.items[res.OrderID], 2)
	assert.True(t, decimal.NewFromInt(30).Equal(res.TotalAmount))
	assert.Equal(t, int32(3), res.TotalItems)
	assert.Equal(t, []int64{1, 1}, v.lastIDs)
}

func TestCreateDistinctOrdersOnRepeat(t *testing.T) {
	st := newFakeStore()
	v := &fakeValidator{products: []products.Product{product(1, "Coffee", 10)}}
	svc := newTestService(st, v, &fakeSessions{})
	req := CreateOrderRequest{Items: []CreateOrderItem{{ProductID: 1, Quantity: 1}}}

	first, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.NotEqual(t, first.OrderID, second.OrderID)
	assert.Len(t, st.orders, 2)
}

func TestCreateUnresolvedProduct(t *testing.T) {
	st := newFakeStore()
	v := &fakeValidator{products: []products.Product{product(1, "Coffee", 10)}}
	svc := newTestService(st, v, &fakeSessions{})

	_, err := svc.Create(context.Background(), CreateOrderRequest{Items: []CreateOrderItem{
		{ProductID: 1, Quantity: 1},
		{ProductID: 2, Quantity: 1},
	}})

	assert.Equal(t, ordersms.ErrProductsMismatch, err)
	assert.Empty(t, st.orders, "no write may happen before validation passes")
}

func TestCreateValidatorUnavailable(t *testing.T) {
	st := newFakeStore()
	v := &fakeValidator{err: ordersms.ErrProductsUnavailable}
	svc := newTestService(st, v, &fakeSessions{})

	_, err := svc.Create(context.Background(), CreateOrderRequest{Items: []CreateOrderItem{
		{ProductID: 1, Quantity: 1},
	}})

	assert.Equal(t, ordersms.ErrProductsUnavailable, err)
	assert.Empty(t, st.orders)
}

func TestCreateRequestGuards(t *testing.T) {
	v := &fakeValidator{}
	svc := newTestService(newFakeStore(), v, &fakeSessions{})

	_, err := svc.Create(context.Background(), CreateOrderRequest{})
	assert.Equal(t, ordersms.ErrEmptyOrder, err)

	_, err = svc.Create(context.Background(), CreateOrderRequest{Items: []CreateOrderItem{
		{ProductID: 1, Quantity: 0},
	}})
	assert.Equal(t, ordersms.ErrInvalidQuantity, err)

	assert.Equal(t, 0, v.calls)
}

func TestFindAllPaginationMeta(t *testing.T) {
	st := newFakeStore()
	for i := 0; i < 25; i++ {
		st.orders = append(st.orders, ordersms.NewOrder(decimal.NewFromInt(int64(i)), 1))
	}
	svc := newTestService(st, &fakeValidator{}, &fakeSessions{})

	res, err := svc.FindAll(context.Background(), PaginationRequest{Page: 3, Limit: 10})
	require.NoError(t, err)

	assert.Len(t, res.Data, 5)
	assert.Equal(t, int64(25), res.Meta.Total)
	assert.Equal(t, 3, res.Meta.Page)
	assert.Equal(t, int64(3), res.Meta.LastPage)
}

func TestFindAllStatusFilter(t *testing.T) {
	st := newFakeStore()
	paid := ordersms.NewOrder(decimal.NewFromInt(10), 1)
	paid.Status = ordersms.Paid
	st.orders = append(st.orders, ordersms.NewOrder(decimal.NewFromInt(5), 1), paid)
	svc := newTestService(st, &fakeValidator{}, &fakeSessions{})

	res, err := svc.FindAll(context.Background(), PaginationRequest{Status: "PAID", Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, res.Data, 1)
	assert.Equal(t, paid.OrderID, res.Data[0].OrderID)

	_, err = svc.FindAll(context.Background(), PaginationRequest{Status: "NOPE", Page: 1, Limit: 10})
	assert.Equal(t, ordersms.ErrUnknownStatus, err)
}

func TestFindOneDecoratesNames(t *testing.T) {
	st := newFakeStore()
	o := ordersms.NewOrder(decimal.NewFromInt(15), 2)
	st.orders = append(st.orders, o)
	st.items[o.OrderID] = []*ordersms.OrderItem{
		{OrderID: o.OrderID, ProductID: 1, Quantity: 1, Price: decimal.NewFromInt(10)},
		{OrderID: o.OrderID, ProductID: 2, Quantity: 1, Price: decimal.NewFromInt(5)},
	}
	// product 2 is gone from the catalog by read time
	v := &fakeValidator{products: []products.Product{product(1, "Coffee", 10)}}
	svc := newTestService(st, v, &fakeSessions{})

	res, err := svc.FindOne(context.Background(), o.OrderID)
	require.NoError(t, err)

	require.Len(t, res.OrderItems, 2)
	assert.Equal(t, "Coffee", res.OrderItems[0].Name)
	assert.Empty(t, res.OrderItems[1].Name, "unresolvable product must not fail the read")
	assert.Equal(t, 1, v.calls)
	assert.Equal(t, []int64{1, 2}, v.lastIDs)
}

func TestFindOneNotFound(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeValidator{}, &fakeSessions{})

	_, err := svc.FindOne(context.Background(), "missing")
	assert.Equal(t, ordersms.ErrOrderNotFound, err)
}

func TestChangeStatus(t *testing.T) {
	st := newFakeStore()
	o := ordersms.NewOrder(decimal.NewFromInt(10), 1)
	st.orders = append(st.orders, o)
	svc := newTestService(st, &fakeValidator{}, &fakeSessions{})

	res, err := svc.ChangeStatus(context.Background(), o.OrderID, "DELIVERED")
	require.NoError(t, err)
	assert.Equal(t, ordersms.Delivered, res.Status)

	_, err = svc.ChangeStatus(context.Background(), "missing", "DELIVERED")
	assert.Equal(t, ordersms.ErrOrderNotFound, err)

	_, err = svc.ChangeStatus(context.Background(), o.OrderID, "SHIPPED")
	assert.Equal(t, ordersms.ErrUnknownStatus, err)
	assert.Equal(t, ordersms.Delivered, o.Status)
}

func TestCreatePaymentSession(t *testing.T) {
	sessions := &fakeSessions{reply: json.RawMessage(`{"url":"https://pay.example/s_1"}`)}
	svc := newTestService(newFakeStore(), &fakeValidator{}, sessions)

	order := &OrderWithProducts{
		Order: *ordersms.NewOrder(decimal.NewFromInt(25), 3),
		OrderItems: []NamedItem{
			{Name: "Coffee", Price: decimal.NewFromInt(10), Quantity: 2, ProductID: 1},
			{Name: "Tea", Price: decimal.NewFromInt(5), Quantity: 1, ProductID: 2},
		},
	}

	res, err := svc.CreatePaymentSession(context.Background(), order)
	require.NoError(t, err)

	// descriptor is returned verbatim
	assert.Equal(t, sessions.reply, res)
	assert.Equal(t, order.OrderID, sessions.lastReq.OrderID)
	assert.Equal(t, "usd", sessions.lastReq.Currency)
	require.Len(t, sessions.lastReq.Items, 2)
	assert.Equal(t, payments.SessionItem{Name: "Coffee", Price: decimal.NewFromInt(10), Quantity: 2}, sessions.lastReq.Items[0])
}

func TestPaidOrderIdempotent(t *testing.T) {
	st := newFakeStore()
	o := ordersms.NewOrder(decimal.NewFromInt(25), 3)
	st.orders = append(st.orders, o)
	svc := newTestService(st, &fakeValidator{}, &fakeSessions{})

	event := PaidOrderEvent{OrderID: o.OrderID, ExternalChargeID: "ch_123", ReceiptURL: "https://receipts.example/r_1"}

	first, err := svc.PaidOrder(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, ordersms.Paid, first.Status)
	assert.True(t, first.Paid)
	require.NotNil(t, first.PaidAt)
	paidAt := *first.PaidAt

	// the confirmation is delivered at least once
	second, err := svc.PaidOrder(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, ordersms.Paid, second.Status)
	assert.Equal(t, paidAt, *second.PaidAt, "paidAt must not move on redelivery")
	assert.Len(t, st.receipts[o.OrderID], 1, "receipt count must stay at one")
}

func TestPaidOrderUnknownOrder(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeValidator{}, &fakeSessions{})

	_, err := svc.PaidOrder(context.Background(), PaidOrderEvent{OrderID: "missing", ExternalChargeID: "ch_1"})
	assert.Equal(t, ordersms.ErrOrderNotFound, err)
}

func TestLastPage(t *testing.T) {
	for _, tt := range []struct {
		total int64
		limit int
		want  int64
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
	} {
		assert.Equal(t, tt.want, lastPage(tt.total, tt.limit), fmt.Sprintf("total=%d limit=%d", tt.total, tt.limit))
	}
}
