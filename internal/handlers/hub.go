// internal/handlers/hub.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/resona/resona-api/internal/i18n"
	"github.com/resona/resona-api/internal/models"
	"github.com/resona/resona-api/internal/services"
	"github.com/resona/resona-api/internal/utils"
)

var moderationMessages = map[services.HubAction]string{
	services.HubActionApprove:    i18n.KeyHubApproved,
	services.HubActionReject:     i18n.KeyHubRejected,
	services.HubActionSuspend:    i18n.KeyHubSuspended,
	services.HubActionReactivate: i18n.KeyHubReactivated,
}

type HubHandler struct {
	hubService *services.HubService
}

func NewHubHandler(hubService *services.HubService) *HubHandler {
	return &HubHandler{
		hubService: hubService,
	}
}

// GET /hubs
func (h *HubHandler) GetHubs(c *gin.Context) {
	result, err := h.hubService.ListApproved(c.Request.Context(), utils.GetSessionFromContext(c))
	if err != nil {
		utils.ServiceErrorResponse(c, err, "hub")
		return
	}

	utils.ListResponse(c, result.Items, result.Available)
}

// GET /hubs/mine
func (h *HubHandler) GetMyHubs(c *gin.Context) {
	result, err := h.hubService.Mine(c.Request.Context(), utils.GetSessionFromContext(c))
	if err != nil {
		utils.ServiceErrorResponse(c, err, "hub")
		return
	}

	utils.ListResponse(c, result.Items, result.Available)
}

// POST /hubs/apply
func (h *HubHandler) ApplyForHub(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var app models.HubApplication
	if err := c.ShouldBindJSON(&app); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	id, err := h.hubService.Apply(c.Request.Context(), utils.GetSessionFromContext(c), &app)
	if err != nil {
		utils.ServiceErrorResponse(c, err, "hub")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyHubApplied),
		"id":      id,
	})
}

// PUT /hubs/:id
func (h *HubHandler) UpdateHub(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.UpdateHubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	hub, err := h.hubService.Update(c.Request.Context(), utils.GetSessionFromContext(c), c.Param("id"), &req)
	if err != nil {
		utils.ServiceErrorResponse(c, err, "hub")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyHubUpdated),
		"hub":     hub,
	})
}

// POST /hubs/:id/submit
func (h *HubHandler) SubmitHub(c *gin.Context) {
	if err := h.hubService.Submit(c.Request.Context(), utils.GetSessionFromContext(c), c.Param("id")); err != nil {
		utils.ServiceErrorResponse(c, err, "hub")
		return
	}

	utils.MessageResponse(c, i18n.KeyHubSubmitted)
}

// GET /admin/hubs
func (h *HubHandler) GetAdminHubs(c *gin.Context) {
	var status *models.HubStatus
	if value := c.Query("status"); value != "" && value != "all" {
		s := models.HubStatus(value)
		if !s.Valid() {
			utils.BadRequestResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyValidationInvalid, "status"), nil)
			return
		}
		status = &s
	}

	result, err := h.hubService.ListForAdmin(c.Request.Context(), utils.GetSessionFromContext(c), status)
	if err != nil {
		utils.ServiceErrorResponse(c, err, "hub")
		return
	}

	utils.SuccessResponseWithMeta(c, gin.H{
		"hubs":   result.Hubs,
		"counts": result.Counts,
	}, gin.H{"available": result.Available})
}

// PUT /admin/hubs/:id/:action
func (h *HubHandler) ModerateHub(c *gin.Context) {
	action := services.HubAction(c.Param("action"))

	if err := h.hubService.Moderate(c.Request.Context(), utils.GetSessionFromContext(c), c.Param("id"), action); err != nil {
		utils.ServiceErrorResponse(c, err, "hub")
		return
	}

	utils.MessageResponse(c, moderationMessages[action])
}

// DELETE /admin/hubs/:id
func (h *HubHandler) DeleteHub(c *gin.Context) {
	if err := h.hubService.Delete(c.Request.Context(), utils.GetSessionFromContext(c), c.Param("id")); err != nil {
		utils.ServiceErrorResponse(c, err, "hub")
		return
	}

	utils.MessageResponse(c, i18n.KeyHubDeleted)
}
