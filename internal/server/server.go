package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"giftoria/internal/config"
	custommiddleware "giftoria/internal/middleware"
	"giftoria/internal/service"
	"giftoria/internal/storage"
	"giftoria/internal/store"
	"giftoria/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	redis  *redis.Client
}

// NewServer constructs the three state containers once and wires every
// view onto them by reference; nothing reaches the stores except through
// these explicit instances.
func NewServer(cfg *config.Config, logger *zap.Logger, redisClient *redis.Client) (*Server, error) {
	ctx := context.Background()
	slots := storage.NewSlots(redisClient, cfg.Store.KeyPrefix)

	// Initialize state containers
	catalog, err := store.NewCatalog(ctx, slots, cfg.Store.Seed, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize catalog: %w", err)
	}
	cart, err := store.NewCart(ctx, slots, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cart: %w", err)
	}
	sessions, err := store.NewSessions(ctx, slots, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sessions: %w", err)
	}

	// Initialize services
	checkout := service.NewCheckoutService(cart, cfg.Mock.PaymentDelay, logger)

	// Initialize handlers
	tokenTTL := time.Duration(cfg.JWT.Expiry) * time.Hour
	productHandler := transport.NewProductHandler(catalog, cfg.Mock.WriteDelay, logger)
	cartHandler := transport.NewCartHandler(cart, catalog, logger)
	sessionHandler := transport.NewSessionHandler(sessions, cfg.JWT.Secret, tokenTTL, logger)
	checkoutHandler := transport.NewCheckoutHandler(checkout, logger)

	metrics := custommiddleware.NewMetrics(prometheus.DefaultRegisterer)

	// Create router
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(nil, cfg.Server.Env == "development"))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(metrics.Middleware)
	router.Use(custommiddleware.SessionMiddleware(cfg.JWT.Secret, sessions, logger))
	router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
		RequestsPerWindow: 120,
		Window:            time.Minute,
		KeyPrefix:         cfg.Store.KeyPrefix + ":ratelimit",
	}, logger))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := slots.Health(r.Context()); err != nil {
			custommiddleware.RespondWithError(w, http.StatusServiceUnavailable, "storage unreachable")
			return
		}
		custommiddleware.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.Handle("/metrics", promhttp.Handler())

	// Register API routes
	requireAdminAPI := custommiddleware.RequireAdminAPI(logger)
	productHandler.RegisterRoutes(router, requireAdminAPI)
	cartHandler.RegisterRoutes(router)
	sessionHandler.RegisterRoutes(router)
	checkoutHandler.RegisterRoutes(router)

	// Guarded dashboard page entry: anonymous visitors bounce to /login,
	// authenticated non-admins bounce home.
	router.Route("/dashboard", func(r chi.Router) {
		r.Use(custommiddleware.RequireAuth(logger))
		r.Use(custommiddleware.RequireAdmin(logger))
		r.Get("/", productHandler.Stats)
	})

	router.Get(custommiddleware.HomePath, func(w http.ResponseWriter, r *http.Request) {
		custommiddleware.RespondWithJSON(w, http.StatusOK, map[string]string{"service": "giftoria storefront"})
	})
	router.Get(custommiddleware.LoginPath, func(w http.ResponseWriter, r *http.Request) {
		custommiddleware.RespondWithJSON(w, http.StatusOK, map[string]string{
			"message": "sign in via POST /api/session/login",
			"from":    r.URL.Query().Get("from"),
		})
	})

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		redis:  redisClient,
	}

	return server, nil
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close storage connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
