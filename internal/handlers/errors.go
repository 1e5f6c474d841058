package handlers

import (
	"errors"
	"log"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/compliance-dashboard/internal/models"
	"alfredoptarigan/compliance-dashboard/internal/services"
)

// respondError maps a service error onto a status and a message specific to
// its kind. The selectable sources and pairs are attached whenever they can
// be loaded so clients keep their selection controls.
func respondError(c *fiber.Ctx, dashboard services.DashboardService, source string, pairNumber int, err error) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		log.Printf("❌ %s %s: %v\n", c.Method(), c.Path(), err)
	}

	response := models.ErrorResponse{
		Error:   services.ErrorMessage(source, pairNumber, err),
		Kind:    services.ErrorKind(err),
		Code:    status,
		Sources: dashboard.Sources(),
	}
	if labels, labelErr := dashboard.PairLabels(c.UserContext()); labelErr == nil {
		response.Pairs = labels
	}

	return c.Status(status).JSON(response)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrSourceNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrMalformedSource):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, services.ErrIndexOutOfRange):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrResultsNotAvailable):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrUploadsDisabled):
		return fiber.StatusMethodNotAllowed
	default:
		return fiber.StatusInternalServerError
	}
}

// sourceParam returns the decoded :source route parameter. Source names may
// contain spaces.
func sourceParam(c *fiber.Ctx) string {
	raw := c.Params("source")
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}
