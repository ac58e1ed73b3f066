package orders

// generated with gopkg.in/reform.v1

import (
	"fmt"
	"strings"

	"gopkg.in/reform.v1"
	"gopkg.in/reform.v1/parse"
)

type orderTableType struct {
	s parse.StructInfo
	z []interface{}
}

// Schema returns a schema name in SQL database ("").
func (v *orderTableType) Schema() string {
	return v.s.SQLSchema
}

// Name returns a view or table name in SQL database ("orders").
func (v *orderTableType) Name() string {
	return v.s.SQLName
}

// Columns returns a new slice of column names for that view or table in SQL database.
func (v *orderTableType) Columns() []string {
	return []string{"order_id", "status", "total_amount", "total_items", "paid", "paid_at", "external_charge_id", "created_at", "updated_at"}
}

// NewStruct makes a new struct for that view or table.
func (v *orderTableType) NewStruct() reform.Struct {
	return new(Order)
}

// NewRecord makes a new record for that table.
func (v *orderTableType) NewRecord() reform.Record {
	return new(Order)
}

// PKColumnIndex returns an index of primary key column for that table in SQL database.
func (v *orderTableType) PKColumnIndex() uint {
	return uint(v.s.PKFieldIndex)
}

// OrderTable represents orders view or table in SQL database.
var OrderTable = &orderTableType{
	s: parse.StructInfo{Type: "Order", SQLSchema: "", SQLName: "orders", Fields: []parse.FieldInfo{{Name: "OrderID", Type: "string", Column: "order_id"}, {Name: "Status", Type: "OrderStatus", Column: "status"}, {Name: "TotalAmount", Type: "decimal.Decimal", Column: "total_amount"}, {Name: "TotalItems", Type: "int32", Column: "total_items"}, {Name: "Paid", Type: "bool", Column: "paid"}, {Name: "PaidAt", Type: "*time.Time", Column: "paid_at"}, {Name: "ExternalChargeID", Type: "*string", Column: "external_charge_id"}, {Name: "CreatedAt", Type: "time.Time", Column: "created_at"}, {Name: "UpdatedAt", Type: "time.Time", Column: "updated_at"}}, PKFieldIndex: 0},
	z: new(Order).Values(),
}

// String returns a string representation of this struct or record.
func (s Order) String() string {
	res := make([]string, 9)
	res[0] = "OrderID: " + reform.Inspect(s.OrderID, true)
	res[1] = "Status: " + reform.Inspect(s.Status, true)
	res[2] = "TotalAmount: " + reform.Inspect(s.TotalAmount, true)
	res[3] = "TotalItems: " + reform.Inspect(s.TotalItems, true)
	res[4] = "Paid: " + reform.Inspect(s.Paid, true)
	res[5] = "PaidAt: " + reform.Inspect(s.PaidAt, true)
	res[6] = "ExternalChargeID: " + reform.Inspect(s.ExternalChargeID, true)
	res[7] = "CreatedAt: " + reform.Inspect(s.CreatedAt, true)
	res[8] = "UpdatedAt: " + reform.Inspect(s.UpdatedAt, true)
	return strings.Join(res, ", ")
}

// Values returns a slice of struct or record field values.
// Returned interface{} values are never untyped nils.
func (s *Order) Values() []interface{} {
	return []interface{}{
		s.OrderID,
		s.Status,
		s.TotalAmount,
		s.TotalItems,
		s.Paid,
		s.PaidAt,
		s.ExternalChargeID,
		s.CreatedAt,
		s.UpdatedAt,
	}
}

// Pointers returns a slice of pointers to struct or record fields.
// Returned interface{} values are never untyped nils.
func (s *Order) Pointers() []interface{} {
	return []interface{}{
		&s.OrderID,
		&s.Status,
		&s.TotalAmount,
		&s.TotalItems,
		&s.Paid,
		&s.PaidAt,
		&s.ExternalChargeID,
		&s.CreatedAt,
		&s.UpdatedAt,
	}
}

// View returns View object for that struct.
func (s *Order) View() reform.View {
	return OrderTable
}

// Table returns Table object for that record.
func (s *Order) Table() reform.Table {
	return OrderTable
}

// PKValue returns a value of primary key for that record.
// Returned interface{} value is never untyped nil.
func (s *Order) PKValue() interface{} {
	return s.OrderID
}

// PKPointer returns a pointer to primary key field for that record.
// Returned interface{} value is never untyped nil.
func (s *Order) PKPointer() interface{} {
	return &s.OrderID
}

// HasPK returns true if record has non-zero primary key set, false otherwise.
func (s *Order) HasPK() bool {
	return s.OrderID != OrderTable.z[OrderTable.s.PKFieldIndex]
}

// SetPK sets record primary key, if possible.
//
// Deprecated: prefer direct field assignment where possible: s.OrderID = pk.
func (s *Order) SetPK(pk interface{}) {
	reform.SetPK(s, pk)
}

// check interfaces
var (
	_ reform.View   = OrderTable
	_ reform.Struct = new(Order)
	_ reform.Table  = OrderTable
	_ reform.Record = new(Order)
	_ fmt.Stringer  = new(Order)
)

type orderItemTableType struct {
	s parse.StructInfo
	z []interface{}
}

// Schema returns a schema name in SQL database ("").
func (v *orderItemTableType) Schema() string {
	return v.s.SQLSchema
}

// Name returns a view or table name in SQL database ("order_items").
func (v *orderItemTableType) Name() string {
	return v.s.SQLName
}

// Columns returns a new slice of column names for that view or table in SQL database.
func (v *orderItemTableType) Columns() []string {
	return []string{"order_item_id", "order_id", "product_id", "quantity", "price"}
}

// NewStruct makes a new struct for that view or table.
func (v *orderItemTableType) NewStruct() reform.Struct {
	return new(OrderItem)
}

// NewRecord makes a new record for that table.
func (v *orderItemTableType) NewRecord() reform.Record {
	return new(OrderItem)
}

// PKColumnIndex returns an index of primary key column for that table in SQL database.
func (v *orderItemTableType) PKColumnIndex() uint {
	return uint(v.s.PKFieldIndex)
}

// OrderItemTable represents order_items view or table in SQL database.
var OrderItemTable = &orderItemTableType{
	s: parse.StructInfo{Type: "OrderItem", SQLSchema: "", SQLName: "order_items", Fields: []parse.FieldInfo{{Name: "OrderItemID", Type: "int64", Column: "order_item_id"}, {Name: "OrderID", Type: "string", Column: "order_id"}, {Name: "ProductID", Type: "int64", Column: "product_id"}, {Name: "Quantity", Type: "int32", Column: "quantity"}, {Name: "Price", Type: "decimal.Decimal", Column: "price"}}, PKFieldIndex: 0},
	z: new(OrderItem).Values(),
}

// String returns a string representation of this struct or record.
func (s OrderItem) String() string {
	res := make([]string, 5)
	res[0] = "OrderItemID: " + reform.Inspect(s.OrderItemID, true)
	res[1] = "OrderID: " + reform.Inspect(s.OrderID, true)
	res[2] = "ProductID: " + reform.Inspect(s.ProductID, true)
	res[3] = "Quantity: " + reform.Inspect(s.Quantity, true)
	res[4] = "Price: " + reform.Inspect(s.Price, true)
	return strings.Join(res, ", ")
}

// Values returns a slice of struct or record field values.
// Returned interface{} values are never untyped nils.
func (s *OrderItem) Values() []interface{} {
	return []interface{}{
		s.OrderItemID,
		s.OrderID,
		s.ProductID,
		s.Quantity,
		s.Price,
	}
}

// Pointers returns a slice of pointers to struct or record fields.
// Returned interface{} values are never untyped nils.
func (s *OrderItem) Pointers() []interface{} {
	return []interface{}{
		&s.OrderItemID,
		&s.OrderID,
		&s.ProductID,
		&s.Quantity,
		&s.Price,
	}
}

// View returns View object for that struct.
func (s *OrderItem) View() reform.View {
	return OrderItemTable
}

// Table returns Table object for that record.
func (s *OrderItem) Table() reform.Table {
	return OrderItemTable
}

// PKValue returns a value of primary key for that record.
// Returned interface{} value is never untyped nil.
func (s *OrderItem) PKValue() interface{} {
	return s.OrderItemID
}

// PKPointer returns a pointer to primary key field for that record.
// Returned interface{} value is never untyped nil.
func (s *OrderItem) PKPointer() interface{} {
	return &s.OrderItemID
}

// HasPK returns true if record has non-zero primary key set, false otherwise.
func (s *OrderItem) HasPK() bool {
	return s.OrderItemID != OrderItemTable.z[OrderItemTable.s.PKFieldIndex]
}

// SetPK sets record primary key, if possible.
//
// Deprecated: prefer direct field assignment where possible: s.OrderItemID = pk.
func (s *OrderItem) SetPK(pk interface{}) {
	reform.SetPK(s, pk)
}

// check interfaces
var (
	_ reform.View   = OrderItemTable
	_ reform.Struct = new(OrderItem)
	_ reform.Table  = OrderItemTable
	_ reform.Record = new(OrderItem)
	_ fmt.Stringer  = new(OrderItem)
)

type orderReceiptTableType struct {
	s parse.StructInfo
	z []interface{}
}

// Schema returns a schema name in SQL database ("").
func (v *orderReceiptTableType) Schema() string {
	return v.s.SQLSchema
}

// Name returns a view or table name in SQL database ("order_receipts").
func (v *orderReceiptTableType) Name() string {
	return v.s.SQLName
}

// Columns returns a new slice of column names for that view or table in SQL database.
func (v *orderReceiptTableType) Columns() []string {
	return []string{"receipt_id", "order_id", "receipt_url", "created_at"}
}

// NewStruct makes a new struct for that view or table.
func (v *orderReceiptTableType) NewStruct() reform.Struct {
	return new(OrderReceipt)
}

// NewRecord makes a new record for that table.
func (v *orderReceiptTableType) NewRecord() reform.Record {
	return new(OrderReceipt)
}

// PKColumnIndex returns an index of primary key column for that table in SQL database.
func (v *orderReceiptTableType) PKColumnIndex() uint {
	return uint(v.s.PKFieldIndex)
}

// OrderReceiptTable represents order_receipts view or table in SQL database.
var OrderReceiptTable = &orderReceiptTableType{
	s: parse.StructInfo{Type: "OrderReceipt", SQLSchema: "", SQLName: "order_receipts", Fields: []parse.FieldInfo{{Name: "ReceiptID", Type: "int64", Column: "receipt_id"}, {Name: "OrderID", Type: "string", Column: "order_id"}, {Name: "ReceiptURL", Type: "string", Column: "receipt_url"}, {Name: "CreatedAt", Type: "time.Time", Column: "created_at"}}, PKFieldIndex: 0},
	z: new(OrderReceipt).Values(),
}

// String returns a string representation of this struct or record.
func (s OrderReceipt) String() string {
	res := make([]string, 4)
	res[0] = "ReceiptID: " + reform.Inspect(s.ReceiptID, true)
	res[1] = "OrderID: " + reform.Inspect(s.OrderID, true)
	res[2] = "ReceiptURL: " + reform.Inspect(s.ReceiptURL, true)
	res[3] = "CreatedAt: " + reform.Inspect(s.CreatedAt, true)
	return strings.Join(res, ", ")
}

// Values returns a slice of struct or record field values.
// Returned interface{} values are never untyped nils.
func (s *OrderReceipt) Values() []interface{} {
	return []interface{}{
		s.ReceiptID,
		s.OrderID,
		s.ReceiptURL,
		s.CreatedAt,
	}
}

// Pointers returns a slice of pointers to struct or record fields.
// Returned interface{} values are never untyped nils.
func (s *OrderReceipt) Pointers() []interface{} {
	return []interface{}{
		&s.ReceiptID,
		&s.OrderID,
		&s.ReceiptURL,
		&s.CreatedAt,
	}
}

// View returns View object for that struct.
func (s *OrderReceipt) View() reform.View {
	return OrderReceiptTable
}

// Table returns Table object for that record.
func (s *OrderReceipt) Table() reform.Table {
	return OrderReceiptTable
}

// PKValue returns a value of primary key for that record.
// Returned interface{} value is never untyped nil.
func (s *OrderReceipt) PKValue() interface{} {
	return s.ReceiptID
}

// PKPointer returns a pointer to primary key field for that record.
// Returned interface{} value is never untyped nil.
func (s *OrderReceipt) PKPointer() interface{} {
	return &s.ReceiptID
}

// HasPK returns true if record has non-zero primary key set, false otherwise.
func (s *OrderReceipt) HasPK() bool {
	return s.ReceiptID != OrderReceiptTable.z[OrderReceiptTable.s.PKFieldIndex]
}

// SetPK sets record primary key, if possible.
//
// Deprecated: prefer direct field assignment where possible: s.ReceiptID = pk.
func (s *OrderReceipt) SetPK(pk interface{}) {
	reform.SetPK(s, pk)
}

// check interfaces
var (
	_ reform.View   = OrderReceiptTable
	_ reform.Struct = new(OrderReceipt)
	_ reform.Table  = OrderReceiptTable
	_ reform.Record = new(OrderReceipt)
	_ fmt.Stringer  = new(OrderReceipt)
)

func init() {
	parse.AssertUpToDate(&OrderTable.s, new(Order))
	parse.AssertUpToDate(&OrderItemTable.s, new(OrderItem))
	parse.AssertUpToDate(&OrderReceiptTable.s, new(OrderReceipt))
}
