package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/compliance-dashboard/internal/models"
	"alfredoptarigan/compliance-dashboard/internal/services"
)

type DashboardHandler struct {
	dashboard services.DashboardService
}

func NewDashboardHandler(dashboard services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboard: dashboard,
	}
}

// HandleSources handles GET /sources
func (h *DashboardHandler) HandleSources(c *fiber.Ctx) error {
	return c.JSON(models.SourcesResponse{
		DocumentPairs: h.dashboard.PairsSource(),
		Sources:       h.dashboard.Sources(),
	})
}

// HandlePairs handles GET /pairs
func (h *DashboardHandler) HandlePairs(c *fiber.Ctx) error {
	labels, err := h.dashboard.PairLabels(c.UserContext())
	if err != nil {
		return respondError(c, h.dashboard, h.dashboard.PairsSource(), 0, err)
	}

	if len(labels) == 0 {
		return c.JSON(fiber.Map{
			"pairs":   labels,
			"warning": "No document pairs found in the data.",
		})
	}

	return c.JSON(models.PairsResponse{Pairs: labels})
}

// HandleGetPair handles GET /sources/:source/pairs/:pair where :pair is the
// 1-based number shown in the pair label.
func (h *DashboardHandler) HandleGetPair(c *fiber.Ctx) error {
	source := sourceParam(c)

	pairNumber, err := strconv.Atoi(c.Params("pair"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid pair number",
		})
	}

	view, err := h.dashboard.View(c.UserContext(), source, pairNumber-1)
	if err != nil {
		return respondError(c, h.dashboard, source, pairNumber, err)
	}

	return c.JSON(view)
}

// HandleReload handles POST /sources/:source/reload
func (h *DashboardHandler) HandleReload(c *fiber.Ctx) error {
	source := sourceParam(c)
	if err := h.dashboard.CheckSource(source); err != nil {
		return respondError(c, h.dashboard, source, 0, err)
	}

	h.dashboard.Reload(source)

	return c.JSON(fiber.Map{
		"message": "Source reloaded",
		"source":  source,
	})
}
