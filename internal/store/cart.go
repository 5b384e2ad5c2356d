package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"giftoria/internal/domain"
	"giftoria/internal/storage"

	"go.uber.org/zap"
)

var (
	ErrItemNotFound = errors.New("cart item not found")
)

const cartSlot = "cart"

// Cart owns the active line items. At most one line item exists per
// product identifier; each item embeds the product snapshot taken when it
// was first added. The drawer visibility flag is transient and never hits
// the persistence layer.
type Cart struct {
	mu     sync.RWMutex
	slots  *storage.Slots
	logger *zap.Logger
	items  []domain.CartItem
	open   bool
}

// NewCart loads the persisted line items. Malformed stored data loads as an
// empty cart rather than an error.
func NewCart(ctx context.Context, slots *storage.Slots, logger *zap.Logger) (*Cart, error) {
	c := &Cart{
		slots:  slots,
		logger: logger,
	}

	data, ok, err := slots.Read(ctx, cartSlot)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if ok {
		if err := json.Unmarshal(data, &c.items); err != nil {
			logger.Warn("Discarding malformed cart data", zap.Error(err))
			c.items = nil
		}
	}

	return c, nil
}

// Items returns the current line items in insertion order.
func (c *Cart) Items() []domain.CartItem {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Add puts the given quantity of a product in the cart. If a line item for
// the product already exists its quantity accumulates; otherwise a new line
// item is created with the supplied snapshot. Inventory limits are the
// caller's concern, not the cart's.
func (c *Cart) Add(ctx context.Context, product domain.Product, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, item := range c.items {
		if item.Product.ID == product.ID {
			c.items[i].Quantity += quantity
			if err := c.persist(ctx); err != nil {
				return err
			}
			c.logger.Info("Cart quantity increased",
				zap.String("product_id", product.ID),
				zap.Int("quantity", c.items[i].Quantity),
			)
			return nil
		}
	}

	c.items = append(c.items, domain.CartItem{Product: product, Quantity: quantity})
	if err := c.persist(ctx); err != nil {
		return err
	}

	c.logger.Info("Product added to cart",
		zap.String("product_id", product.ID),
		zap.Int("quantity", quantity),
	)
	return nil
}

// Remove deletes the line item for the given product identifier. An absent
// identifier is a no-op.
func (c *Cart) Remove(ctx context.Context, productID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.remove(ctx, productID)
}

func (c *Cart) remove(ctx context.Context, productID string) error {
	for i, item := range c.items {
		if item.Product.ID != productID {
			continue
		}

		c.items = append(c.items[:i], c.items[i+1:]...)
		if err := c.persist(ctx); err != nil {
			return err
		}

		c.logger.Info("Product removed from cart", zap.String("product_id", productID))
		return nil
	}

	return nil
}

// UpdateQuantity sets the line item's quantity exactly. A quantity of zero
// or below removes the line item.
func (c *Cart) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity <= 0 {
		return c.remove(ctx, productID)
	}

	for i, item := range c.items {
		if item.Product.ID == productID {
			c.items[i].Quantity = quantity
			return c.persist(ctx)
		}
	}

	return ErrItemNotFound
}

// Clear empties the cart.
func (c *Cart) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	if err := c.persist(ctx); err != nil {
		return err
	}

	c.logger.Info("Cart cleared")
	return nil
}

// Total returns the sum of price times quantity over all line items. It is
// recomputed from current state on every call, never stored.
func (c *Cart) Total() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var total float64
	for _, item := range c.items {
		total += item.Subtotal()
	}
	return total
}

// Count returns the sum of quantities over all line items.
func (c *Cart) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var count int
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

// IsOpen reports the transient drawer visibility flag.
func (c *Cart) IsOpen() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.open
}

// Toggle flips the drawer visibility flag and returns the new value.
func (c *Cart) Toggle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = !c.open
	return c.open
}

// persist re-serializes the full line-item collection. Callers must hold
// the lock.
func (c *Cart) persist(ctx context.Context) error {
	data, err := json.Marshal(c.items)
	if err != nil {
		return fmt.Errorf("failed to serialize cart: %w", err)
	}
	if err := c.slots.Write(ctx, cartSlot, data); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}
