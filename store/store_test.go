package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	ordersms "github.com/sidgim/orders-ms"
)

func TestListTail(t *testing.T) {
	tail, args := listTail(nil)
	assert.Empty(t, tail)
	assert.Empty(t, args)

	st := ordersms.Paid
	tail, args = listTail(&st)
	assert.Equal(t, "WHERE status = $1", tail)
	assert.Equal(t, []interface{}{ordersms.Paid}, args)
}

func TestPageOffset(t *testing.T) {
	assert.Equal(t, 0, pageOffset(1, 10))
	assert.Equal(t, 20, pageOffset(3, 10))
	// pages are 1-based; anything below clamps to the first page
	assert.Equal(t, 0, pageOffset(0, 10))
	assert.Equal(t, 0, pageOffset(-2, 10))
}
