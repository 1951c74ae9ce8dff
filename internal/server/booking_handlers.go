package server

import (
	"context"
	"strconv"
	"time"

	"shareit/internal/middleware"
	"shareit/internal/models"
	"shareit/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateBooking places a booking request for an item on behalf of the sharer user
func (s *Server) CreateBooking(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req struct {
		ItemID uint      `json:"item_id"`
		Start  time.Time `json:"start"`
		End    time.Time `json:"end"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	booking, err := s.bookingService.AddBooking(ctx, service.CreateBookingInput{
		BookerID: userID,
		ItemID:   req.ItemID,
		Start:    req.Start,
		End:      req.End,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(booking)
}

// SetBookingApproval approves or rejects a waiting booking (item owner only)
func (s *Server) SetBookingApproval(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	bookingID, err := s.parseID(c, "bookingId")
	if err != nil {
		return nil
	}

	raw := c.Query("approved")
	if raw == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Approved query parameter is required"))
	}
	approved, parseErr := strconv.ParseBool(raw)
	if parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid approved query parameter"))
	}

	booking, err := s.bookingService.SetBookingStatus(ctx, userID, bookingID, approved)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	middleware.BookingTransitions.WithLabelValues(string(booking.Status)).Inc()
	return c.JSON(booking)
}

// GetBooking returns one booking to its booker or the owner of the booked item
func (s *Server) GetBooking(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	bookingID, err := s.parseID(c, "bookingId")
	if err != nil {
		return nil
	}

	booking, err := s.bookingService.GetBookingByID(ctx, userID, bookingID)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(booking)
}

// GetOwnBookings lists the sharer user's bookings filtered by the state token
func (s *Server) GetOwnBookings(c *fiber.Ctx) error {
	return s.listBookings(c, s.bookingService.ListForBooker)
}

// GetOwnedItemBookings lists bookings of every item the sharer user owns
func (s *Server) GetOwnedItemBookings(c *fiber.Ctx) error {
	return s.listBookings(c, s.bookingService.ListForOwner)
}

func (s *Server) listBookings(
	c *fiber.Ctx,
	list func(ctx context.Context, userID uint, f models.BookingFilter, from, size int) ([]*models.Booking, error),
) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	filter, err := models.ParseBookingFilter(c.Query("state", "ALL"))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	page, err := s.parsePageParams(c)
	if err != nil {
		return nil
	}

	bookings, err := list(ctx, userID, filter, page.From, page.Size)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(bookings)
}
