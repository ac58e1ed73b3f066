package store

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	reform "gopkg.in/reform.v1"

	ordersms "github.com/sidgim/orders-ms"
)

func NewOrdersPG(db *reform.DB) *OrdersPG {
	return &OrdersPG{
		db: db,
		l:  zap.L().Named("orders_store"),
	}
}

// OrdersPG persists orders, their items and receipts in PostgreSQL.
type OrdersPG struct {
	db *reform.DB
	l  *zap.Logger
}

// CreateOrder inserts the order and all of its items in one transaction.
// Items are never added or removed after this point.
func (s *OrdersPG) CreateOrder(o *ordersms.Order, items []*ordersms.OrderItem) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "failed begin transaction")
	}
	if err := tx.Insert(o); err != nil {
		s.rollback(tx)
		return errors.Wrap(err, "failed insert order")
	}
	for _, item := range items {
		item.OrderID = o.OrderID
		if err := tx.Insert(item); err != nil {
			s.rollback(tx)
			return errors.Wrap(err, "failed insert order item")
		}
	}
	return errors.Wrap(tx.Commit(), "failed commit order")
}

func (s *OrdersPG) FindByID(id string) (*ordersms.Order, error) {
	var o ordersms.Order
	if err := s.db.FindByPrimaryKeyTo(&o, id); err != nil {
		if err == reform.ErrNoRows {
			return nil, ordersms.ErrOrderNotFound
		}
		return nil, errors.Wrap(err, "failed find order by id")
	}
	return &o, nil
}

func (s *OrdersPG) ItemsByOrder(orderID string) ([]*ordersms.OrderItem, error) {
	structs, err := s.db.SelectAllFrom(ordersms.OrderItemTable, "WHERE order_id = $1 ORDER BY order_item_id", orderID)
	if err != nil {
		return nil, errors.Wrap(err, "failed select order items")
	}
	items := make([]*ordersms.OrderItem, 0, len(structs))
	for _, str := range structs {
		items = append(items, str.(*ordersms.OrderItem))
	}
	return items, nil
}

// List returns one page of orders (1-based page index, newest first) and the
// total row count for the optional status filter.
func (s *OrdersPG) List(status *ordersms.OrderStatus, page, limit int) ([]*ordersms.Order, int64, error) {
	tail, args := listTail(status)

	var total int64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM "+s.db.QualifiedView(ordersms.OrderTable)+" "+tail, args...).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, "failed count orders")
	}

	args = append(args, limit, pageOffset(page, limit))
	pageTail := fmt.Sprintf("%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d", tail, len(args)-1, len(args))
	structs, err := s.db.SelectAllFrom(ordersms.OrderTable, pageTail, args...)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed select orders page")
	}
	data := make([]*ordersms.Order, 0, len(structs))
	for _, str := range structs {
		data = append(data, str.(*ordersms.Order))
	}
	return data, total, nil
}

// UpdateStatus is an unconditional transition between recognized statuses.
// The update must hit an existing row; zero affected rows means the order
// does not exist.
func (s *OrdersPG) UpdateStatus(id string, status ordersms.OrderStatus) (*ordersms.Order, error) {
	res, err := s.db.Exec(
		"UPDATE "+s.db.QualifiedView(ordersms.OrderTable)+" SET status = $1, updated_at = $2 WHERE order_id = $3",
		status, time.Now(), id,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed update order status")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, errors.Wrap(err, "failed get affected rows")
	}
	if affected == 0 {
		return nil, ordersms.ErrOrderNotFound
	}
	return s.FindByID(id)
}

// MarkPaid applies a payment confirmation atomically: status=PAID, paid
// flags, external charge id and exactly one receipt. The row lock plus the
// charge-id check make redelivered confirmations no-ops, so the receipt
// count stays at one; a unique index on orders.external_charge_id backs this
// at the schema level.
func (s *OrdersPG) MarkPaid(id, chargeID, receiptURL string) (*ordersms.Order, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, errors.Wrap(err, "failed begin transaction")
	}
	var o ordersms.Order
	if err := tx.SelectOneTo(&o, "WHERE order_id = $1 FOR UPDATE", id); err != nil {
		s.rollback(tx)
		if err == reform.ErrNoRows {
			return nil, ordersms.ErrOrderNotFound
		}
		return nil, errors.Wrap(err, "failed select order for update")
	}
	if o.Paid {
		s.rollback(tx)
		if !o.AlreadyPaidWith(chargeID) {
			// first confirmation wins
			s.l.Warn("Order already paid with another charge.",
				zap.String("order_id", id),
				zap.String("external_charge_id", chargeID),
			)
		}
		return &o, nil
	}

	o.MarkPaid(chargeID, time.Now())
	if err := tx.Update(&o); err != nil {
		s.rollback(tx)
		return nil, errors.Wrap(err, "failed update paid order")
	}
	receipt := &ordersms.OrderReceipt{
		OrderID:    o.OrderID,
		ReceiptURL: receiptURL,
	}
	if err := tx.Insert(receipt); err != nil {
		s.rollback(tx)
		return nil, errors.Wrap(err, "failed insert order receipt")
	}
	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "failed commit paid order")
	}
	return &o, nil
}

func (s *OrdersPG) rollback(tx *reform.TX) {
	if err := tx.Rollback(); err != nil {
		s.l.Error("Failed tx rollback.", zap.Error(err))
	}
}

func listTail(status *ordersms.OrderStatus) (string, []interface{}) {
	if status == nil {
		return "", nil
	}
	return "WHERE status = $1", []interface{}{*status}
}

func pageOffset(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}
