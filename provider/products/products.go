package products

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

// Subject is the product service's validation endpoint on the bus.
const Subject = "validate_products"

// Product is the product service's reply shape for one validated product.
type Product struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Available bool            `json:"available"`
	CreatedAt string          `json:"createdAt"`
	UpdatedAt string          `json:"updatedAt"`
}

func NewClient(nc *nats.Conn, timeout time.Duration) *Client {
	return &Client{
		nc:      nc,
		timeout: timeout,
		l:       zap.L().Named("products_client"),
	}
}

// Client calls the remote product service over the bus.
type Client struct {
	nc      *nats.Conn
	timeout time.Duration
	l       *zap.Logger
}

// ValidateProducts resolves product ids with a single request/reply
// round-trip. The wait is bounded by the client timeout; a timeout, missing
// responder or bad reply surfaces as ordersms.ErrProductsUnavailable, never
// as a silently empty result. Callers must check returned-set coverage
// against the requested ids.
func (c *Client) ValidateProducts(ctx context.Context, ids []int64) ([]Product, error) {
	data, err := json.Marshal(ids)
	if err != nil {
		return nil, errors.Wrap(err, "failed marshal product ids")
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	msg, err := c.nc.RequestWithContext(ctx, Subject, data)
	if err != nil {
		c.l.Warn("Validate products request failed.", zap.Int("requested", len(ids)), zap.Error(err))
		return nil, ordersms.ErrProductsUnavailable
	}
	var list []Product
	if err := json.Unmarshal(msg.Data, &list); err != nil {
		c.l.Warn("Malformed validate products reply.", zap.Error(err))
		return nil, ordersms.ErrProductsUnavailable
	}
	return list, nil
}

// Snapshot indexes one validation reply by product id. Price and name
// resolution for an order happens against this in-memory snapshot, never by
// re-fetching per line.
type Snapshot map[int64]Product

func MakeSnapshot(list []Product) Snapshot {
	m := make(Snapshot, len(list))
	for _, p := range list {
		m[p.ID] = p
	}
	return m
}

// Missing reports requested ids absent from the snapshot, each once even if
// requested multiple times.
func (s Snapshot) Missing(ids []int64) []int64 {
	var missing []int64
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if _, ok := s[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
