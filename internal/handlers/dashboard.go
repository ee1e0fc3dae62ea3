// internal/handlers/dashboard.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/resona/resona-api/internal/services"
	"github.com/resona/resona-api/internal/utils"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GET /dashboard/artist
func (h *DashboardHandler) GetArtistDashboard(c *gin.Context) {
	view, err := h.dashboardService.Artist(c.Request.Context(), utils.GetSessionFromContext(c))
	if err != nil {
		utils.ServiceErrorResponse(c, err, "profile")
		return
	}

	utils.SuccessResponse(c, view)
}

// GET /dashboard/buyer
func (h *DashboardHandler) GetBuyerDashboard(c *gin.Context) {
	view, err := h.dashboardService.Buyer(c.Request.Context(), utils.GetSessionFromContext(c))
	if err != nil {
		utils.ServiceErrorResponse(c, err, "profile")
		return
	}

	utils.SuccessResponse(c, view)
}

// GET /dashboard/hub/:id
func (h *DashboardHandler) GetHubDashboard(c *gin.Context) {
	view, err := h.dashboardService.Hub(c.Request.Context(), utils.GetSessionFromContext(c), c.Param("id"))
	if err != nil {
		utils.ServiceErrorResponse(c, err, "hub")
		return
	}

	utils.SuccessResponse(c, view)
}
