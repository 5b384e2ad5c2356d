package transport

import (
	"errors"
	"net/http"
	"time"

	"giftoria/internal/domain"
	"giftoria/internal/middleware"
	"giftoria/internal/service"
	"giftoria/internal/store"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProductRequest represents the product create/update payload
type ProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	Category    string  `json:"category" validate:"required"`
	ImageURL    string  `json:"image_url"`
	Featured    bool    `json:"featured"`
	Inventory   int     `json:"inventory" validate:"gte=0"`
}

// ProductListResponse represents the shop query result
type ProductListResponse struct {
	Products []domain.Product `json:"products"`
	Count    int              `json:"count"`
}

// ProductHandler handles HTTP requests for catalog operations
type ProductHandler struct {
	catalog    *store.Catalog
	writeDelay time.Duration
	logger     *zap.Logger
}

// NewProductHandler creates a new ProductHandler. writeDelay is the
// simulated latency applied to product create and update.
func NewProductHandler(catalog *store.Catalog, writeDelay time.Duration, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		catalog:    catalog,
		writeDelay: writeDelay,
		logger:     logger,
	}
}

// RegisterRoutes registers all catalog routes
func (h *ProductHandler) RegisterRoutes(r chi.Router, requireAdmin func(http.Handler) http.Handler) {
	r.Route("/api/products", func(r chi.Router) {
		// Public shop routes
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)

		// Admin dashboard routes
		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})

	r.With(requireAdmin).Get("/api/dashboard/stats", h.Stats)
}

// List handles the shop query: category filter, search, and sort
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	query := store.ShopQuery{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
		Sort:     store.ParseSortKey(r.URL.Query().Get("sort")),
	}

	products := query.Apply(h.catalog.List())

	middleware.RespondWithJSON(w, http.StatusOK, ProductListResponse{
		Products: products,
		Count:    len(products),
	})
}

// Get handles the product detail lookup
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.catalog.Get(id)
	if err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to get product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Create handles product creation from the admin dashboard
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := service.SimulateLatency(r.Context(), h.writeDelay); err != nil {
		middleware.RespondWithError(w, http.StatusRequestTimeout, "request cancelled")
		return
	}

	product, err := h.catalog.Add(r.Context(), productInput(req, ""))
	if err != nil {
		h.logger.Error("Failed to add product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to add product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// Update handles product updates from the admin dashboard
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req ProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := service.SimulateLatency(r.Context(), h.writeDelay); err != nil {
		middleware.RespondWithError(w, http.StatusRequestTimeout, "request cancelled")
		return
	}

	product, err := h.catalog.Update(r.Context(), productInput(req, id))
	if err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to update product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Delete handles product deletion from the admin dashboard
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.catalog.Delete(r.Context(), id); err != nil {
		h.logger.Error("Failed to delete product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

// Stats handles the admin dashboard statistics
func (h *ProductHandler) Stats(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, h.catalog.Stats())
}

func productInput(req ProductRequest, id string) domain.ProductInput {
	return domain.ProductInput{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Featured:    req.Featured,
		Inventory:   req.Inventory,
	}
}
