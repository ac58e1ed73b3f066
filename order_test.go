package orders

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, st := range Statuses {
		got, err := ParseStatus(string(st))
		require.NoError(t, err)
		assert.Equal(t, st, got)
	}

	_, err := ParseStatus("SHIPPED")
	assert.Equal(t, ErrUnknownStatus, err)
	_, err = ParseStatus("")
	assert.Equal(t, ErrUnknownStatus, err)
}

func TestNewOrder(t *testing.T) {
	o := NewOrder(decimal.NewFromInt(25), 3)

	_, err := uuid.Parse(o.OrderID)
	require.NoError(t, err)
	assert.Equal(t, Pending, o.Status)
	assert.False(t, o.Paid)
	assert.Nil(t, o.PaidAt)
	assert.Nil(t, o.ExternalChargeID)
}

func TestOrderMarkPaid(t *testing.T) {
	o := NewOrder(decimal.NewFromInt(10), 1)
	now := time.Now()

	o.MarkPaid("ch_123", now)

	assert.Equal(t, Paid, o.Status)
	assert.True(t, o.Paid)
	require.NotNil(t, o.PaidAt)
	assert.Equal(t, now, *o.PaidAt)
	require.NotNil(t, o.ExternalChargeID)
	assert.Equal(t, "ch_123", *o.ExternalChargeID)
}

func TestOrderAlreadyPaidWith(t *testing.T) {
	o := NewOrder(decimal.NewFromInt(10), 1)
	assert.False(t, o.AlreadyPaidWith("ch_123"))

	o.MarkPaid("ch_123", time.Now())
	assert.True(t, o.AlreadyPaidWith("ch_123"))
	assert.False(t, o.AlreadyPaidWith("ch_456"))
}
