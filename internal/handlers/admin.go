// internal/handlers/admin.go
package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/resona/resona-api/internal/i18n"
	"github.com/resona/resona-api/internal/services"
	"github.com/resona/resona-api/internal/utils"
)

type AdminHandler struct {
	adminService        *services.AdminService
	notificationService *services.NotificationService
}

func NewAdminHandler(adminService *services.AdminService, notificationService *services.NotificationService) *AdminHandler {
	return &AdminHandler{
		adminService:        adminService,
		notificationService: notificationService,
	}
}

// GET /admin/overview
func (h *AdminHandler) GetOverview(c *gin.Context) {
	overview, err := h.adminService.Overview(c.Request.Context(), utils.GetSessionFromContext(c))
	if err != nil {
		utils.ServiceErrorResponse(c, err, "hub")
		return
	}

	utils.SuccessResponse(c, overview)
}

// GET /admin/audit-logs
func (h *AdminHandler) GetAuditLogs(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	filter := services.AuditLogFilter{
		PaginationParams: params,
		Principal:        c.Query("principal"),
		Action:           c.Query("action"),
		ResourceType:     c.Query("resource_type"),
	}

	if after := c.Query("created_after"); after != "" {
		t, err := time.Parse(time.RFC3339, after)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid created_after format (RFC 3339)", nil)
			return
		}
		filter.CreatedAfter = &t
	}

	if before := c.Query("created_before"); before != "" {
		t, err := time.Parse(time.RFC3339, before)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid created_before format (RFC 3339)", nil)
			return
		}
		filter.CreatedBefore = &t
	}

	logs, total, err := h.adminService.AuditLogs(filter)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(logs, total, params))
}

// GET /admin/notifications
func (h *AdminHandler) GetNotifications(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	notifications, total, err := h.notificationService.List(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(notifications, total, params))
}

// PUT /admin/notifications/:id/read
func (h *AdminHandler) MarkNotificationRead(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "id"), nil)
		return
	}

	notification, err := h.notificationService.MarkRead(id)
	if err != nil {
		utils.ServiceErrorResponse(c, err, "notification")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":      i18n.T(lang, i18n.KeyNotificationRead),
		"notification": notification,
	})
}

// GET /admin/analytics
func (h *AdminHandler) GetAnalytics(c *gin.Context) {
	startDateStr := c.Query("start_date")
	endDateStr := c.Query("end_date")

	if startDateStr == "" || endDateStr == "" {
		utils.BadRequestResponse(c, "start_date and end_date are required", nil)
		return
	}

	startDate, err := time.Parse(dateLayout, startDateStr)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid start_date format (YYYY-MM-DD)", nil)
		return
	}

	endDate, err := time.Parse(dateLayout, endDateStr)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid end_date format (YYYY-MM-DD)", nil)
		return
	}

	var metrics []string
	if metricsStr := c.Query("metrics"); metricsStr != "" {
		metrics = strings.Split(metricsStr, ",")
	}

	analytics, err := h.adminService.Analytics(services.AnalyticsQuery{
		Metrics:   metrics,
		StartDate: startDate,
		EndDate:   endDate.Add(24*time.Hour - time.Nanosecond),
	})
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"analytics":  analytics,
		"start_date": startDate.Format(dateLayout),
		"end_date":   endDate.Format(dateLayout),
	})
}
