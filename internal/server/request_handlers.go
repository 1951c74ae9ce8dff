package server

import (
	"shareit/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateRequest records a wish for an item that does not exist yet
func (s *Server) CreateRequest(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req struct {
		Description string `json:"description"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	request, err := s.requestService.AddRequest(ctx, userID, req.Description)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(request)
}

// GetOwnRequests lists the sharer user's item requests, newest first
func (s *Server) GetOwnRequests(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	requests, err := s.requestService.GetUserRequests(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(requests)
}

// GetAllRequests pages through other users' item requests
func (s *Server) GetAllRequests(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	page, err := s.parsePageParams(c)
	if err != nil {
		return nil
	}

	requests, err := s.requestService.GetAllRequests(ctx, userID, page.From, page.Size)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(requests)
}

// GetRequest returns one item request with its fulfilling items
func (s *Server) GetRequest(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	requestID, err := s.parseID(c, "requestId")
	if err != nil {
		return nil
	}

	request, err := s.requestService.GetRequestByID(ctx, userID, requestID)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(request)
}
