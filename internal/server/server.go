// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"log"
	"strconv"
	"time"

	"shareit/internal/cache"
	"shareit/internal/config"
	"shareit/internal/database"
	"shareit/internal/middleware"
	"shareit/internal/models"
	"shareit/internal/observability"
	"shareit/internal/repository"
	"shareit/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	shutdownCtx    context.Context
	shutdownFn     context.CancelFunc
	userRepo       repository.UserRepository
	itemRepo       repository.ItemRepository
	bookingRepo    repository.BookingRepository
	commentRepo    repository.CommentRepository
	requestRepo    repository.RequestRepository
	userService    *service.UserService
	itemService    *service.ItemService
	bookingService *service.BookingService
	requestService *service.RequestService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis first.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewItemRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	requestRepo := repository.NewRequestRepository(db)

	prom := middleware.InitMetrics("shareit-server")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		userRepo:       userRepo,
		itemRepo:       itemRepo,
		bookingRepo:    bookingRepo,
		commentRepo:    commentRepo,
		requestRepo:    requestRepo,
	}

	clock := service.SystemClock()
	server.userService = service.NewUserService(userRepo)
	server.itemService = service.NewItemService(itemRepo, userRepo, bookingRepo, commentRepo, clock)
	server.bookingService = service.NewBookingService(bookingRepo, userRepo, itemRepo, db, clock)
	server.requestService = service.NewRequestService(requestRepo, userRepo, clock)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Distributed tracing
	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware runs before middlewares that can short-circuit (e.g.
	// limiter) so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, " + models.SharerUserHeader,
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	app.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "ShareIt Server Metrics Dashboard",
	}))

	// User routes work without the sharer header: user management is the
	// bootstrap surface everything else identifies against.
	users := app.Group("/users")
	users.Post("/", middleware.RateLimit(s.redis, 10, time.Minute, "create_user"), s.CreateUser)
	users.Get("/", s.GetAllUsers)
	users.Get("/:userId", s.GetUser)
	users.Patch("/:userId", s.UpdateUser)
	users.Delete("/:userId", s.DeleteUser)

	// Everything below acts on behalf of the user named in the sharer header
	sharer := app.Group("", s.SharerRequired())

	items := sharer.Group("/items")
	items.Post("/", s.CreateItem)
	items.Get("/", s.GetOwnItems)
	items.Get("/search", middleware.RateLimit(s.redis, 30, time.Minute, "search_items"), s.SearchItems)
	items.Post("/:itemId/comment", middleware.RateLimit(s.redis, 5, time.Minute, "create_comment"), s.CreateComment)
	items.Patch("/:itemId", s.UpdateItem)
	items.Get("/:itemId", s.GetItem)

	bookings := sharer.Group("/bookings")
	bookings.Post("/", s.CreateBooking)
	bookings.Get("/", s.GetOwnBookings)
	bookings.Get("/owner", s.GetOwnedItemBookings)
	bookings.Patch("/:bookingId", s.SetBookingApproval)
	bookings.Get("/:bookingId", s.GetBooking)

	requests := sharer.Group("/requests")
	requests.Post("/", s.CreateRequest)
	requests.Get("/", s.GetOwnRequests)
	requests.Get("/all", s.GetAllRequests)
	requests.Get("/:requestId", s.GetRequest)
}

// SharerRequired parses the sharer header into the acting user's id. The id
// is trusted as-is; the gateway in front of this service is the place where
// any real authentication would live.
func (s *Server) SharerRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get(models.SharerUserHeader)
		if raw == "" {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(models.SharerUserHeader+" header is required"))
		}

		userID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || userID == 0 {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid "+models.SharerUserHeader+" header"))
		}

		c.Locals("userID", uint(userID))
		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, uint(userID))
		c.SetUserContext(ctx)
		observability.AddTraceAttributesToContext(ctx, attribute.Int("user.id", int(userID)))

		return c.Next()
	}
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// Redis only backs rate limiting, so its absence degrades rather
		// than fails readiness.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.shutdownCtx = ctx
	s.shutdownFn = cancel

	app := fiber.New(fiber.Config{
		AppName: "ShareIt Server",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			observability.RecordErrorInContext(c.UserContext(), err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
