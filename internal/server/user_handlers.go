package server

import (
	"shareit/internal/models"
	"shareit/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateUser registers a new user
func (s *Server) CreateUser(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.AddUser(ctx, service.CreateUserInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// UpdateUser applies a partial update to a user
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	ctx := c.UserContext()

	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	var req struct {
		Name  *string `json:"name"`
		Email *string `json:"email"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateUser(ctx, userID, service.UpdateUserInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(user)
}

// GetUser returns one user by id
func (s *Server) GetUser(c *fiber.Ctx) error {
	ctx := c.UserContext()

	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUserByID(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(user)
}

// GetAllUsers returns every registered user
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	ctx := c.UserContext()

	users, err := s.userService.GetAllUsers(ctx)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(users)
}

// DeleteUser removes a user
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	ctx := c.UserContext()

	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.userService.DeleteUser(ctx, userID); err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.SendStatus(fiber.StatusOK)
}
