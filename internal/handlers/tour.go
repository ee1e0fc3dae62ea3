// internal/handlers/tour.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/resona/resona-api/internal/i18n"
	"github.com/resona/resona-api/internal/models"
	"github.com/resona/resona-api/internal/services"
	"github.com/resona/resona-api/internal/utils"
)

type TourHandler struct {
	tourService *services.TourService
}

func NewTourHandler(tourService *services.TourService) *TourHandler {
	return &TourHandler{
		tourService: tourService,
	}
}

// GET /tours
func (h *TourHandler) GetTours(c *gin.Context) {
	result, err := h.tourService.List(c.Request.Context(), utils.GetSessionFromContext(c))
	if err != nil {
		utils.ServiceErrorResponse(c, err, "tour")
		return
	}

	utils.ListResponse(c, result.Items, result.Available)
}

// GET /tours/mine
func (h *TourHandler) GetMyTours(c *gin.Context) {
	var status *models.TourStatus
	if value := c.Query("status"); value != "" && value != "all" {
		s := models.TourStatus(value)
		if !s.Valid() {
			utils.BadRequestResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyValidationInvalid, "status"), nil)
			return
		}
		status = &s
	}

	result, err := h.tourService.Mine(c.Request.Context(), utils.GetSessionFromContext(c), status)
	if err != nil {
		utils.ServiceErrorResponse(c, err, "tour")
		return
	}

	utils.SuccessResponseWithMeta(c, gin.H{
		"tours":   result.Tours,
		"summary": result.Summary,
	}, gin.H{"available": result.Available})
}

// GET /tours/summary
func (h *TourHandler) GetTourSummary(c *gin.Context) {
	summary, err := h.tourService.Summary(c.Request.Context(), utils.GetSessionFromContext(c))
	if err != nil {
		utils.ServiceErrorResponse(c, err, "tour")
		return
	}

	utils.SuccessResponse(c, summary)
}

// POST /tours
func (h *TourHandler) CreateTour(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.TourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	tour, err := h.tourService.Create(c.Request.Context(), utils.GetSessionFromContext(c), &req)
	if err != nil {
		utils.ServiceErrorResponse(c, err, "tour")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyTourCreated),
		"tour":    tour,
	})
}

// PUT /tours/:id
func (h *TourHandler) UpdateTour(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.TourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	tour, err := h.tourService.Update(c.Request.Context(), utils.GetSessionFromContext(c), c.Param("id"), &req)
	if err != nil {
		utils.ServiceErrorResponse(c, err, "tour")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyTourUpdated),
		"tour":    tour,
	})
}

// DELETE /tours/:id
func (h *TourHandler) DeleteTour(c *gin.Context) {
	if err := h.tourService.Delete(c.Request.Context(), utils.GetSessionFromContext(c), c.Param("id")); err != nil {
		utils.ServiceErrorResponse(c, err, "tour")
		return
	}

	utils.MessageResponse(c, i18n.KeyTourDeleted)
}
