package gateway

import (
	"time"

	"shareit/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Client forwards validated requests to the backing server and relays its
// response verbatim, status code included.
type Client struct {
	baseURL string
	timeout time.Duration
}

// NewClient creates a forwarding client for the given server base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		timeout: 30 * time.Second,
	}
}

// Forward replays the incoming request against the server. Every forwarded
// request carries a request id so the two tiers correlate in logs.
func (cl *Client) Forward(c *fiber.Ctx) error {
	agent := fiber.AcquireAgent()
	defer fiber.ReleaseAgent(agent)

	req := agent.Request()
	req.Header.SetMethod(c.Method())
	req.SetRequestURI(cl.baseURL + c.OriginalURL())
	req.Header.SetContentType(fiber.MIMEApplicationJSON)

	if sharer := c.Get(models.SharerUserHeader); sharer != "" {
		req.Header.Set(models.SharerUserHeader, sharer)
	}

	rid := c.Get(fiber.HeaderXRequestID)
	if rid == "" {
		rid = uuid.NewString()
	}
	req.Header.Set(fiber.HeaderXRequestID, rid)

	if body := c.Body(); len(body) > 0 {
		req.SetBody(body)
	}

	agent.Timeout(cl.timeout)
	if err := agent.Parse(); err != nil {
		return models.RespondWithError(c, fiber.StatusBadGateway, models.NewInternalError(err))
	}

	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return models.RespondWithError(c, fiber.StatusBadGateway, models.NewInternalError(errs[0]))
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(status).Send(body)
}
