package service

import (
	"context"
	"errors"
	"time"

	"giftoria/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrEmptyCart = errors.New("cart is empty")
)

// Order summarizes a completed checkout. Orders are not persisted; the
// mock payment leaves no transaction behind beyond the cleared cart.
type Order struct {
	ID        string    `json:"id"`
	Total     float64   `json:"total"`
	ItemCount int       `json:"item_count"`
	PlacedAt  time.Time `json:"placed_at"`
}

// CheckoutService runs the checkout flow: mock payment, then cart clear.
type CheckoutService struct {
	cart         *store.Cart
	paymentDelay time.Duration
	logger       *zap.Logger
}

// NewCheckoutService creates a new CheckoutService. paymentDelay is the
// fixed simulated latency standing in for the payment gateway.
func NewCheckoutService(cart *store.Cart, paymentDelay time.Duration, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		cart:         cart,
		paymentDelay: paymentDelay,
		logger:       logger,
	}
}

// PlaceOrder submits the current cart for payment. The mock payment always
// succeeds after the configured delay; on completion the cart is cleared.
// An empty cart is rejected before the payment simulation starts.
func (s *CheckoutService) PlaceOrder(ctx context.Context) (Order, error) {
	items := s.cart.Items()
	if len(items) == 0 {
		return Order{}, ErrEmptyCart
	}

	order := Order{
		ID:        uuid.New().String(),
		Total:     s.cart.Total(),
		ItemCount: s.cart.Count(),
	}

	if err := SimulateLatency(ctx, s.paymentDelay); err != nil {
		return Order{}, err
	}

	if err := s.cart.Clear(ctx); err != nil {
		return Order{}, err
	}

	order.PlacedAt = time.Now()
	s.logger.Info("Order placed",
		zap.String("order_id", order.ID),
		zap.Float64("total", order.Total),
		zap.Int("items", order.ItemCount),
	)
	return order, nil
}

// SimulateLatency blocks for the fixed delay that stands in for a network
// call. A zero or negative delay returns immediately.
func SimulateLatency(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
