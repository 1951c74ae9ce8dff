package server

import (
	"errors"
	"strings"
	"unicode"

	"shareit/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// PageParams holds parsed from/size query parameters.
type PageParams struct {
	From int
	Size int
}

// parsePageParams extracts the from/size query parameters with their
// historical defaults. On invalid values it writes a 400 JSON response and
// returns errResponseWritten.
func (s *Server) parsePageParams(c *fiber.Ctx) (PageParams, error) {
	from := c.QueryInt("from", 0)
	size := c.QueryInt("size", 10)
	if from < 0 || size <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid pagination parameters"))
		return PageParams{}, errResponseWritten
	}
	return PageParams{From: from, Size: size}, nil
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "userId" -> "user ID", "bookingId" -> "booking ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	if strings.HasSuffix(param, "Id") {
		prefix := param[:len(param)-2]
		words := splitCamel(prefix)
		return strings.ToLower(strings.Join(words, " ")) + " ID"
	}
	return param
}

// splitCamel splits a camelCase string into words.
func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])
	return words
}

// statusForError maps a service error to its HTTP status. Ownership
// mismatches answer 404 so non-owners cannot probe resource existence.
func statusForError(err error) int {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case models.CodeNotFound, models.CodeOwnerMismatch:
		return fiber.StatusNotFound
	case models.CodeValidation, models.CodeUnavailable:
		return fiber.StatusBadRequest
	case models.CodeConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
