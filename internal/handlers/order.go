// internal/handlers/order.go
package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/resona/resona-api/internal/dashboard"
	"github.com/resona/resona-api/internal/i18n"
	"github.com/resona/resona-api/internal/models"
	"github.com/resona/resona-api/internal/services"
	"github.com/resona/resona-api/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
	now          func() time.Time
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		now:          time.Now,
	}
}

// GET /orders
func (h *OrderHandler) GetOrders(c *gin.Context) {
	result, err := h.orderService.ListAll(c.Request.Context(), utils.GetSessionFromContext(c))
	if err != nil {
		utils.ServiceErrorResponse(c, err, "order")
		return
	}

	utils.ListResponse(c, result.Items, result.Available)
}

// GET /orders/mine
func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	result, err := h.orderService.ListForBuyer(c.Request.Context(), utils.GetSessionFromContext(c))
	if err != nil {
		utils.ServiceErrorResponse(c, err, "order")
		return
	}

	utils.ListResponse(c, result.Items, result.Available)
}

// GET /orders/artist
func (h *OrderHandler) GetArtistOrders(c *gin.Context) {
	filter, err := h.parseOrderFilter(c)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	result, err := h.orderService.ListForArtist(c.Request.Context(), utils.GetSessionFromContext(c), filter)
	if err != nil {
		utils.ServiceErrorResponse(c, err, "order")
		return
	}

	utils.SuccessResponseWithMeta(c, gin.H{
		"orders":  result.Orders,
		"summary": result.Summary,
	}, gin.H{"available": result.Available})
}

// GET /orders/summary
func (h *OrderHandler) GetOrderSummary(c *gin.Context) {
	summary, err := h.orderService.Summary(c.Request.Context(), utils.GetSessionFromContext(c))
	if err != nil {
		utils.ServiceErrorResponse(c, err, "order")
		return
	}

	utils.SuccessResponse(c, summary)
}

// GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orderService.Get(c.Request.Context(), utils.GetSessionFromContext(c), c.Param("id"))
	if err != nil {
		utils.ServiceErrorResponse(c, err, "order")
		return
	}

	utils.SuccessResponse(c, order)
}

// POST /orders
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	order, err := h.orderService.Place(c.Request.Context(), utils.GetSessionFromContext(c), &req)
	if err != nil {
		utils.ServiceErrorResponse(c, err, "product")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyOrderPlaced),
		"order":   order,
	})
}

// PUT /orders/:id/status
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if err := h.orderService.UpdateStatus(c.Request.Context(), utils.GetSessionFromContext(c), c.Param("id"), &req); err != nil {
		utils.ServiceErrorResponse(c, err, "order")
		return
	}

	utils.MessageResponse(c, i18n.KeyOrderStatusUpdated)
}

// GET /hubs/:id/orders
func (h *OrderHandler) GetHubOrders(c *gin.Context) {
	result, err := h.orderService.ListForHub(c.Request.Context(), utils.GetSessionFromContext(c), c.Param("id"))
	if err != nil {
		utils.ServiceErrorResponse(c, err, "order")
		return
	}

	utils.ListResponse(c, result.Items, result.Available)
}

// parseOrderFilter reads status, days, start, end, hub and search.
// days is a shortcut for a start date that many days back; an explicit
// start wins over it. start and end accept RFC 3339 or YYYY-MM-DD.
func (h *OrderHandler) parseOrderFilter(c *gin.Context) (models.OrderFilter, error) {
	var filter models.OrderFilter

	if days := c.Query("days"); days != "" {
		n, err := strconv.Atoi(days)
		if err != nil || n < 0 {
			return filter, fmt.Errorf("invalid days value %q", days)
		}
		filter = dashboard.DateRangeFilter(n, h.now())
	}

	if status := c.Query("status"); status != "" && status != "all" {
		s := models.OrderStatus(status)
		if !s.Valid() {
			return filter, fmt.Errorf("invalid order status %q", status)
		}
		filter.Status = &s
	}

	if start := c.Query("start"); start != "" {
		t, err := parseDate(start)
		if err != nil {
			return filter, fmt.Errorf("invalid start date %q", start)
		}
		ns := t.UnixNano()
		filter.StartDate = &ns
	}

	if end := c.Query("end"); end != "" {
		t, err := parseDate(end)
		if err != nil {
			return filter, fmt.Errorf("invalid end date %q", end)
		}
		if len(end) == len(dateLayout) {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		ns := t.UnixNano()
		filter.EndDate = &ns
	}

	if hub := c.Query("hub"); hub != "" && hub != "all" {
		filter.Hub = &hub
	}

	if search := c.Query("search"); search != "" {
		filter.SearchTerm = &search
	}

	return filter, nil
}

const dateLayout = "2006-01-02"

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse(dateLayout, value)
}
