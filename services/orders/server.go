package orders

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	ordersms "github.com/sidgim/orders-ms"
)

// Bus subjects served by this service. payment.succeeded is produced by the
// payment service; the rest are request/reply entrypoints.
const (
	SubjectCreate               = "orders.create"
	SubjectFindAll              = "orders.find_all"
	SubjectFindOne              = "orders.find_one"
	SubjectChangeStatus         = "orders.change_status"
	SubjectCreatePaymentSession = "orders.create_payment_session"
	SubjectPaymentSucceeded     = "payment.succeeded"

	queueGroup = "orders-ms"
)

var errBadPayload = errors.New("invalid request payload")

// rpcFault is the uniform error envelope crossing the bus. Internal error
// text never leaks into it.
type rpcFault struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

func faultEnvelope(err error) rpcFault {
	cause := errors.Cause(err)
	switch cause {
	case ordersms.ErrProductsMismatch, ordersms.ErrUnknownStatus, ordersms.ErrEmptyOrder, ordersms.ErrInvalidQuantity, errBadPayload:
		return rpcFault{StatusCode: http.StatusBadRequest, Message: cause.Error()}
	case ordersms.ErrOrderNotFound:
		return rpcFault{StatusCode: http.StatusNotFound, Message: cause.Error()}
	case ordersms.ErrProductsUnavailable, ordersms.ErrPaymentUnavailable:
		return rpcFault{StatusCode: http.StatusServiceUnavailable, Message: cause.Error()}
	}
	return rpcFault{StatusCode: http.StatusInternalServerError, Message: "internal error"}
}

func NewServer(nc *nats.Conn, svc *Service, handleTimeout time.Duration) *Server {
	return &Server{
		nc:      nc,
		svc:     svc,
		timeout: handleTimeout,
		l:       zap.L().Named("orders_server"),
	}
}

// Server binds the orchestrator to the bus: JSON in, JSON out, one reply per
// request, faults re-expressed as the uniform envelope.
type Server struct {
	nc      *nats.Conn
	svc     *Service
	timeout time.Duration
	l       *zap.Logger
	subs    []*nats.Subscription
}

type handlerFunc func(ctx context.Context, data []byte) (interface{}, error)

func (s *Server) Subscribe() error {
	handlers := []struct {
		subject string
		h       handlerFunc
	}{
		{SubjectCreate, s.createOrder},
		{SubjectFindAll, s.findAllOrders},
		{SubjectFindOne, s.findOneOrder},
		{SubjectChangeStatus, s.changeOrderStatus},
		{SubjectCreatePaymentSession, s.createPaymentSession},
		{SubjectPaymentSucceeded, s.paidOrder},
	}
	for _, ep := range handlers {
		sub, err := s.nc.QueueSubscribe(ep.subject, queueGroup, s.handle(ep.subject, ep.h))
		if err != nil {
			return errors.Wrap(err, "failed subscribe "+ep.subject)
		}
		s.subs = append(s.subs, sub)
	}
	s.l.Info("Subscribed.", zap.Int("subjects", len(s.subs)))
	return nil
}

func (s *Server) Unsubscribe() {
	for _, sub := range s.subs {
		if err := sub.Unsubscribe(); err != nil {
			s.l.Warn("Failed unsubscribe.", zap.String("subject", sub.Subject), zap.Error(err))
		}
	}
	s.subs = nil
}

func (s *Server) handle(subject string, h handlerFunc) nats.MsgHandler {
	return func(msg *nats.Msg) {
		start := time.Now()
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		out, err := s.safeCall(ctx, h, msg.Data)
		handleDuration.WithLabelValues(subject).Observe(time.Since(start).Seconds())
		if err != nil {
			fault := faultEnvelope(err)
			busFaults.WithLabelValues(subject, strconv.Itoa(fault.StatusCode)).Inc()
			s.l.Warn("Request failed.",
				zap.String("subject", subject),
				zap.Int("status_code", fault.StatusCode),
				zap.Error(err),
			)
			s.respond(msg, fault)
			return
		}
		s.respond(msg, out)
	}
}

// safeCall keeps a panicking handler from taking the subscription down; the
// caller still gets a well-formed envelope.
func (s *Server) safeCall(ctx context.Context, h handlerFunc, data []byte) (out interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("recovered handler panic: %v", r)
		}
	}()
	return h(ctx, data)
}

func (s *Server) respond(msg *nats.Msg, v interface{}) {
	if msg.Reply == "" {
		// events published without a reply subject
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		s.l.Error("Failed marshal reply.", zap.Error(err))
		data, _ = json.Marshal(faultEnvelope(err))
	}
	if err := msg.Respond(data); err != nil {
		s.l.Error("Failed respond.", zap.Error(err))
	}
}

func (s *Server) createOrder(ctx context.Context, data []byte) (interface{}, error) {
	var req CreateOrderRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, errors.Wrap(errBadPayload, err.Error())
	}
	return s.svc.Create(ctx, req)
}

func (s *Server) findAllOrders(ctx context.Context, data []byte) (interface{}, error) {
	var req PaginationRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, errors.Wrap(errBadPayload, err.Error())
	}
	return s.svc.FindAll(ctx, req)
}

func (s *Server) findOneOrder(ctx context.Context, data []byte) (interface{}, error) {
	var req struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, errors.Wrap(errBadPayload, err.Error())
	}
	return s.svc.FindOne(ctx, req.ID)
}

func (s *Server) changeOrderStatus(ctx context.Context, data []byte) (interface{}, error) {
	var req struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, errors.Wrap(errBadPayload, err.Error())
	}
	return s.svc.ChangeStatus(ctx, req.ID, req.Status)
}

func (s *Server) createPaymentSession(ctx context.Context, data []byte) (interface{}, error) {
	var req struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, errors.Wrap(errBadPayload, err.Error())
	}
	order, err := s.svc.FindOne(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return s.svc.CreatePaymentSession(ctx, order)
}

func (s *Server) paidOrder(ctx context.Context, data []byte) (interface{}, error) {
	var event PaidOrderEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, errors.Wrap(errBadPayload, err.Error())
	}
	return s.svc.PaidOrder(ctx, event)
}
