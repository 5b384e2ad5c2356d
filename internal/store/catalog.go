package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"giftoria/internal/domain"
	"giftoria/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

const productsSlot = "products"

// Catalog owns the product collection. Products are kept in insertion order
// and the whole collection is re-serialized to its slot on every mutation,
// so a reload immediately after a mutation always observes it.
type Catalog struct {
	mu       sync.RWMutex
	slots    *storage.Slots
	logger   *zap.Logger
	products []domain.Product
}

// NewCatalog loads the persisted collection, or installs the built-in
// sample set when nothing has been persisted yet and seeding is enabled.
// A stored blob that fails to parse is treated the same as an absent one.
func NewCatalog(ctx context.Context, slots *storage.Slots, seed bool, logger *zap.Logger) (*Catalog, error) {
	c := &Catalog{
		slots:  slots,
		logger: logger,
	}

	data, ok, err := slots.Read(ctx, productsSlot)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	if ok {
		if err := json.Unmarshal(data, &c.products); err != nil {
			logger.Warn("Discarding malformed catalog data", zap.Error(err))
			ok = false
			c.products = nil
		}
	}

	if !ok && seed {
		c.products = SampleProducts()
		if err := c.persist(ctx); err != nil {
			return nil, fmt.Errorf("failed to persist seed catalog: %w", err)
		}
		logger.Info("Seeded catalog with sample products", zap.Int("count", len(c.products)))
	}

	return c, nil
}

// List returns all products in insertion order. An empty catalog is valid.
func (c *Catalog) List() []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Get returns the product with the given identifier.
func (c *Catalog) Get(id string) (domain.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, p := range c.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, ErrProductNotFound
}

// Add creates a new product from the input, assigning a fresh identifier
// and creation timestamp, and appends it to the collection.
func (c *Catalog) Add(ctx context.Context, input domain.ProductInput) (domain.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	product := domain.Product{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		ImageURL:    input.ImageURL,
		Featured:    input.Featured,
		Inventory:   input.Inventory,
		CreatedAt:   time.Now(),
	}

	c.products = append(c.products, product)

	if err := c.persist(ctx); err != nil {
		return domain.Product{}, err
	}

	c.logger.Info("Product added", zap.String("product_id", product.ID), zap.String("name", product.Name))
	return product, nil
}

// Update replaces the mutable fields of an existing product in place,
// preserving its identifier and original creation timestamp. An input
// without a matching identifier yields ErrProductNotFound.
func (c *Catalog) Update(ctx context.Context, input domain.ProductInput) (domain.Product, error) {
	if input.ID == "" {
		return domain.Product{}, ErrProductNotFound
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i, p := range c.products {
		if p.ID != input.ID {
			continue
		}

		p.Name = input.Name
		p.Description = input.Description
		p.Price = input.Price
		p.Category = input.Category
		p.ImageURL = input.ImageURL
		p.Featured = input.Featured
		p.Inventory = input.Inventory
		c.products[i] = p

		if err := c.persist(ctx); err != nil {
			return domain.Product{}, err
		}

		c.logger.Info("Product updated", zap.String("product_id", p.ID))
		return p, nil
	}

	return domain.Product{}, ErrProductNotFound
}

// Delete removes the matching product. An absent identifier is a harmless
// no-op; existing cart line items keep their embedded snapshot either way.
func (c *Catalog) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, p := range c.products {
		if p.ID != id {
			continue
		}

		c.products = append(c.products[:i], c.products[i+1:]...)

		if err := c.persist(ctx); err != nil {
			return err
		}

		c.logger.Info("Product deleted", zap.String("product_id", id))
		return nil
	}

	return nil
}

// Stats summarizes the catalog for the admin dashboard.
type Stats struct {
	TotalProducts    int     `json:"total_products"`
	InventoryValue   float64 `json:"inventory_value"`
	FeaturedProducts int     `json:"featured_products"`
	LowStockProducts int     `json:"low_stock_products"`
}

// LowStockThreshold is the inventory level under which a product counts as
// low stock on the dashboard.
const LowStockThreshold = 5

// Stats computes dashboard statistics from the current collection.
func (c *Catalog) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var s Stats
	s.TotalProducts = len(c.products)
	for _, p := range c.products {
		s.InventoryValue += p.Price * float64(p.Inventory)
		if p.Featured {
			s.FeaturedProducts++
		}
		if p.Inventory < LowStockThreshold {
			s.LowStockProducts++
		}
	}
	return s
}

// persist re-serializes the full collection. Callers must hold the lock.
func (c *Catalog) persist(ctx context.Context) error {
	data, err := json.Marshal(c.products)
	if err != nil {
		return fmt.Errorf("failed to serialize catalog: %w", err)
	}
	if err := c.slots.Write(ctx, productsSlot, data); err != nil {
		return fmt.Errorf("failed to persist catalog: %w", err)
	}
	return nil
}
