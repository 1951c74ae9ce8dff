package server

import (
	"shareit/internal/models"
	"shareit/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateItem lists a new item owned by the sharer user
func (s *Server) CreateItem(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Available   *bool  `json:"available"`
		RequestID   *uint  `json:"request_id"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	item, err := s.itemService.AddItem(ctx, userID, service.CreateItemInput{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
		RequestID:   req.RequestID,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

// UpdateItem applies a partial update to an item (owner only)
func (s *Server) UpdateItem(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	itemID, err := s.parseID(c, "itemId")
	if err != nil {
		return nil
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Available   *bool   `json:"available"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	item, err := s.itemService.UpdateItem(ctx, userID, itemID, service.UpdateItemInput{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(item)
}

// GetItem returns the item detail view; booking info is included for the owner
func (s *Server) GetItem(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	itemID, err := s.parseID(c, "itemId")
	if err != nil {
		return nil
	}

	details, err := s.itemService.GetItemByID(ctx, userID, itemID)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(details)
}

// GetOwnItems pages through the sharer user's own items, with booking info
func (s *Server) GetOwnItems(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	page, err := s.parsePageParams(c)
	if err != nil {
		return nil
	}

	items, err := s.itemService.GetUserItems(ctx, userID, page.From, page.Size)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(items)
}

// SearchItems pages through available items matching the text query
func (s *Server) SearchItems(c *fiber.Ctx) error {
	ctx := c.UserContext()

	page, err := s.parsePageParams(c)
	if err != nil {
		return nil
	}

	items, err := s.itemService.SearchItems(ctx, c.Query("text"), page.From, page.Size)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(items)
}

// CreateComment adds a comment to an item the sharer user has finished booking
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	itemID, err := s.parseID(c, "itemId")
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	comment, err := s.itemService.AddComment(ctx, userID, itemID, req.Text)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}
