package payments

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	ordersms "github.com/sidgim/orders-ms"
)

// Subject is the payment service's session-creation endpoint on the bus.
const Subject = "create.payment.session"

type SessionItem struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int32           `json:"quantity"`
}

type SessionRequest struct {
	OrderID  string        `json:"orderId"`
	Currency string        `json:"currency"`
	Items    []SessionItem `json:"items"`
}

func NewClient(nc *nats.Conn, timeout time.Duration) *Client {
	return &Client{
		nc:      nc,
		timeout: timeout,
		l:       zap.L().Named("payments_client"),
	}
}

// Client calls the remote payment service over the bus.
type Client struct {
	nc      *nats.Conn
	timeout time.Duration
	l       *zap.Logger
}

// CreateSession blocks for one reply carrying the session descriptor, which
// is handed back verbatim and never persisted locally.
func (c *Client) CreateSession(ctx context.Context, req SessionRequest) (json.RawMessage, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed marshal payment session request")
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	msg, err := c.nc.RequestWithContext(ctx, Subject, data)
	if err != nil {
		c.l.Warn("Create payment session request failed.",
			zap.String("order_id", req.OrderID),
			zap.Error(err),
		)
		return nil, ordersms.ErrPaymentUnavailable
	}
	return json.RawMessage(msg.Data), nil
}
