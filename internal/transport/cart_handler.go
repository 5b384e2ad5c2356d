package transport

import (
	"errors"
	"net/http"

	"giftoria/internal/domain"
	"giftoria/internal/middleware"
	"giftoria/internal/store"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AddItemRequest represents the add-to-cart payload. A zero quantity means
// one, matching the detail page's default selector value.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
}

// UpdateItemRequest represents the quantity update payload. Zero or
// negative quantities remove the line item.
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartResponse represents the cart with its derived totals
type CartResponse struct {
	Items  []domain.CartItem `json:"items"`
	Total  float64           `json:"total"`
	Count  int               `json:"count"`
	IsOpen bool              `json:"is_open"`
}

// CartHandler handles HTTP requests for cart operations
type CartHandler struct {
	cart    *store.Cart
	catalog *store.Catalog
	logger  *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cart *store.Cart, catalog *store.Catalog, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		cart:    cart,
		catalog: catalog,
		logger:  logger,
	}
}

// RegisterRoutes registers all cart routes
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Delete("/", h.Clear)
		r.Post("/toggle", h.Toggle)
		r.Post("/items", h.AddItem)
		r.Put("/items/{id}", h.UpdateItem)
		r.Delete("/items/{id}", h.RemoveItem)
	})
}

// Get returns the cart and its derived totals
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, h.cartResponse())
}

// AddItem adds a product to the cart. The inventory ceiling is enforced
// here, at the boundary, before the cart store is ever invoked; the store
// itself has no concept of inventory limits.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Quantity == 0 {
		req.Quantity = 1
	}

	product, err := h.catalog.Get(req.ProductID)
	if err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to look up product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to add to cart")
		return
	}

	held := 0
	for _, item := range h.cart.Items() {
		if item.Product.ID == product.ID {
			held = item.Quantity
			break
		}
	}
	if held+req.Quantity > product.Inventory {
		middleware.RespondWithError(w, http.StatusConflict, "requested quantity exceeds available inventory")
		return
	}

	if err := h.cart.Add(r.Context(), product, req.Quantity); err != nil {
		h.logger.Error("Failed to add to cart", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to add to cart")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, h.cartResponse())
}

// UpdateItem sets a line item's quantity exactly
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.cart.UpdateQuantity(r.Context(), id, req.Quantity); err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "cart item not found")
			return
		}
		h.logger.Error("Failed to update cart item", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update cart item")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, h.cartResponse())
}

// RemoveItem deletes a line item; an absent id is a no-op
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.cart.Remove(r.Context(), id); err != nil {
		h.logger.Error("Failed to remove cart item", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to remove cart item")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, h.cartResponse())
}

// Clear empties the cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.Clear(r.Context()); err != nil {
		h.logger.Error("Failed to clear cart", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to clear cart")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, h.cartResponse())
}

// Toggle flips the drawer visibility flag
func (h *CartHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	open := h.cart.Toggle()
	middleware.RespondWithJSON(w, http.StatusOK, map[string]bool{"is_open": open})
}

func (h *CartHandler) cartResponse() CartResponse {
	items := h.cart.Items()
	if items == nil {
		items = []domain.CartItem{}
	}
	return CartResponse{
		Items:  items,
		Total:  h.cart.Total(),
		Count:  h.cart.Count(),
		IsOpen: h.cart.IsOpen(),
	}
}
