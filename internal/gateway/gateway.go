// Package gateway implements the lightweight front tier: it validates
// request shape and rejects obviously bad input before anything reaches the
// server, then forwards everything else untouched.
package gateway

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"shareit/internal/config"
	"shareit/internal/middleware"
	"shareit/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// Gateway validates incoming requests and forwards them to the server tier.
type Gateway struct {
	config *config.Config
	app    *fiber.App
	client *Client
}

// NewGateway creates a gateway forwarding to the configured server URL.
func NewGateway(cfg *config.Config) *Gateway {
	return &Gateway{
		config: cfg,
		client: NewClient(cfg.ServerURL),
	}
}

// SetupMiddleware configures middleware for the gateway app
func (g *Gateway) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())
	app.Use(middleware.StructuredLogger())

	origins := g.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, " + models.SharerUserHeader,
		AllowCredentials: true,
		MaxAge:           86400,
	}))
}

// SetupRoutes wires the validated routes. Every route ends in Forward; the
// handlers before it only ever reject.
func (g *Gateway) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "up", "time": time.Now()})
	})

	users := app.Group("/users")
	users.Post("/", g.validateCreateUser, g.forward)
	users.Patch("/:userId", g.validateUpdateUser, g.forward)
	users.Get("/", g.forward)
	users.Get("/:userId", g.forward)
	users.Delete("/:userId", g.forward)

	sharer := app.Group("", g.sharerRequired)

	items := sharer.Group("/items")
	items.Post("/", g.validateCreateItem, g.forward)
	items.Post("/:itemId/comment", g.validateCreateComment, g.forward)
	items.Patch("/:itemId", g.forward)
	items.Get("/", g.validatePageParams, g.forward)
	items.Get("/search", g.validatePageParams, g.forward)
	items.Get("/:itemId", g.forward)

	bookings := sharer.Group("/bookings")
	bookings.Post("/", g.validateCreateBooking, g.forward)
	bookings.Patch("/:bookingId", g.validateApprovedParam, g.forward)
	bookings.Get("/", g.validateBookingQuery, g.forward)
	bookings.Get("/owner", g.validateBookingQuery, g.forward)
	bookings.Get("/:bookingId", g.forward)

	requests := sharer.Group("/requests")
	requests.Post("/", g.validateCreateRequest, g.forward)
	requests.Get("/", g.forward)
	requests.Get("/all", g.validatePageParams, g.forward)
	requests.Get("/:requestId", g.forward)
}

func (g *Gateway) forward(c *fiber.Ctx) error {
	return g.client.Forward(c)
}

// sharerRequired rejects requests without a plausible sharer header so the
// server never sees them.
func (g *Gateway) sharerRequired(c *fiber.Ctx) error {
	raw := c.Get(models.SharerUserHeader)
	if raw == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(models.SharerUserHeader+" header is required"))
	}
	if id, err := strconv.ParseUint(raw, 10, 32); err != nil || id == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+models.SharerUserHeader+" header"))
	}
	return c.Next()
}

func (g *Gateway) validateCreateUser(c *fiber.Ctx) error {
	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}
	if strings.TrimSpace(req.Name) == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Name is required"))
	}
	if err := validEmail(req.Email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}
	return c.Next()
}

func (g *Gateway) validateUpdateUser(c *fiber.Ctx) error {
	var req struct {
		Name  *string `json:"name"`
		Email *string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}
	if req.Email != nil {
		if err := validEmail(*req.Email); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest, err)
		}
	}
	return c.Next()
}

func (g *Gateway) validateCreateItem(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Available   *bool  `json:"available"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}
	if strings.TrimSpace(req.Name) == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Name is required"))
	}
	if strings.TrimSpace(req.Description) == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Description is required"))
	}
	if req.Available == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Available is required"))
	}
	return c.Next()
}

func (g *Gateway) validateCreateComment(c *fiber.Ctx) error {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}
	if strings.TrimSpace(req.Text) == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Text is required"))
	}
	return c.Next()
}

// validateCreateBooking rejects windows that are already wrong at the edge:
// missing fields, a start in the past, an end not in the future. The full
// window check stays with the server.
func (g *Gateway) validateCreateBooking(c *fiber.Ctx) error {
	var req struct {
		ItemID uint       `json:"item_id"`
		Start  *time.Time `json:"start"`
		End    *time.Time `json:"end"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}
	if req.ItemID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Item id is required"))
	}
	if req.Start == nil || req.End == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Wrong booking time"))
	}
	now := time.Now()
	if req.Start.Before(now.Add(-time.Second)) || !req.End.After(now) {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Wrong booking time"))
	}
	return c.Next()
}

func (g *Gateway) validateApprovedParam(c *fiber.Ctx) error {
	raw := c.Query("approved")
	if raw == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Approved query parameter is required"))
	}
	if _, err := strconv.ParseBool(raw); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid approved query parameter"))
	}
	return c.Next()
}

func (g *Gateway) validateBookingQuery(c *fiber.Ctx) error {
	if _, err := models.ParseBookingFilter(c.Query("state", "ALL")); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}
	return g.validatePageParams(c)
}

func (g *Gateway) validatePageParams(c *fiber.Ctx) error {
	from := c.QueryInt("from", 0)
	size := c.QueryInt("size", 10)
	if from < 0 || size <= 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid pagination parameters"))
	}
	return c.Next()
}

func (g *Gateway) validateCreateRequest(c *fiber.Ctx) error {
	var req struct {
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}
	if strings.TrimSpace(req.Description) == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Description is required"))
	}
	return c.Next()
}

func validEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return models.NewValidationError("Email is required")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return models.NewValidationError("Email is not valid")
	}
	return nil
}

// Start starts the gateway
func (g *Gateway) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "ShareIt Gateway",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	g.app = app

	g.SetupMiddleware(app)
	g.SetupRoutes(app)

	log.Printf("Gateway starting on port %s (forwarding to %s)...", g.config.GatewayPort, g.config.ServerURL)
	return app.Listen(":" + g.config.GatewayPort)
}

// Shutdown gracefully shuts down the gateway
func (g *Gateway) Shutdown(ctx context.Context) error {
	if g.app != nil {
		return g.app.ShutdownWithContext(ctx)
	}
	return nil
}
