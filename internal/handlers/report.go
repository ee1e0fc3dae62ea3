// internal/handlers/report.go
package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/resona/resona-api/internal/i18n"
	"github.com/resona/resona-api/internal/services"
	"github.com/resona/resona-api/internal/utils"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// GET /reports/orders?hub=&format=
func (h *ReportHandler) OrdersReport(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	format, err := services.ParseReportFormat(c.Query("format"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyReportFormatInvalid), nil)
		return
	}

	hubID := c.Query("hub")
	if hubID == "" {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationRequired, "hub"), nil)
		return
	}

	report, err := h.reportService.Orders(c.Request.Context(), utils.GetSessionFromContext(c), hubID, format)
	if err != nil {
		utils.ServiceErrorResponse(c, err, "hub")
		return
	}

	sendReport(c, report)
}

// GET /reports/inventory?format=
func (h *ReportHandler) InventoryReport(c *gin.Context) {
	format, err := services.ParseReportFormat(c.Query("format"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyReportFormatInvalid), nil)
		return
	}

	report, err := h.reportService.Inventory(c.Request.Context(), utils.GetSessionFromContext(c), format)
	if err != nil {
		utils.ServiceErrorResponse(c, err, "product")
		return
	}

	sendReport(c, report)
}

func sendReport(c *gin.Context, report *services.Report) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename))
	c.Header("X-Total-Count", strconv.Itoa(report.Rows))
	c.Data(http.StatusOK, report.ContentType, report.Data)
}
