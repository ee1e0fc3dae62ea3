// internal/handlers/inventory.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/resona/resona-api/internal/i18n"
	"github.com/resona/resona-api/internal/services"
	"github.com/resona/resona-api/internal/utils"
)

type InventoryHandler struct {
	inventoryService *services.InventoryService
}

func NewInventoryHandler(inventoryService *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
	}
}

// GET /inventory/matrix
func (h *InventoryHandler) GetMatrix(c *gin.Context) {
	result, err := h.inventoryService.Matrix(c.Request.Context(), utils.GetSessionFromContext(c), c.Query("search"))
	if err != nil {
		utils.ServiceErrorResponse(c, err, "product")
		return
	}

	utils.ListResponse(c, result.Items, result.Available)
}

// GET /hubs/:id/inventory
func (h *InventoryHandler) GetHubInventory(c *gin.Context) {
	result, err := h.inventoryService.ByHub(c.Request.Context(), utils.GetSessionFromContext(c), c.Param("id"))
	if err != nil {
		utils.ServiceErrorResponse(c, err, "hub")
		return
	}

	utils.ListResponse(c, result.Items, result.Available)
}

// GET /hubs/:id/inventory/summary
func (h *InventoryHandler) GetHubSummary(c *gin.Context) {
	summary, err := h.inventoryService.HubSummary(c.Request.Context(), utils.GetSessionFromContext(c), c.Param("id"))
	if err != nil {
		utils.ServiceErrorResponse(c, err, "hub")
		return
	}

	utils.SuccessResponse(c, summary)
}

// GET /hubs/:id/activity
func (h *InventoryHandler) GetHubActivity(c *gin.Context) {
	result, err := h.inventoryService.HubActivity(c.Request.Context(), utils.GetSessionFromContext(c), c.Param("id"))
	if err != nil {
		utils.ServiceErrorResponse(c, err, "hub")
		return
	}

	utils.ListResponse(c, result.Items, result.Available)
}

// GET /products/:id/inventory
func (h *InventoryHandler) GetProductInventory(c *gin.Context) {
	result, err := h.inventoryService.ByProduct(c.Request.Context(), utils.GetSessionFromContext(c), c.Param("id"))
	if err != nil {
		utils.ServiceErrorResponse(c, err, "product")
		return
	}

	utils.ListResponse(c, result.Items, result.Available)
}

// GET /inventory/low-stock
func (h *InventoryHandler) GetLowStock(c *gin.Context) {
	result, err := h.inventoryService.LowStock(c.Request.Context(), utils.GetSessionFromContext(c))
	if err != nil {
		utils.ServiceErrorResponse(c, err, "product")
		return
	}

	utils.ListResponse(c, result.Items, result.Available)
}

// POST /inventory/assign
func (h *InventoryHandler) AssignProduct(c *gin.Context) {
	var req services.AssignProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if err := h.inventoryService.Assign(c.Request.Context(), utils.GetSessionFromContext(c), &req); err != nil {
		utils.ServiceErrorResponse(c, err, "product")
		return
	}

	utils.MessageResponse(c, i18n.KeyInventoryAssigned)
}

// DELETE /inventory/assign
func (h *InventoryHandler) RemoveProduct(c *gin.Context) {
	var req services.RemoveProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if err := h.inventoryService.Remove(c.Request.Context(), utils.GetSessionFromContext(c), &req); err != nil {
		utils.ServiceErrorResponse(c, err, "product")
		return
	}

	utils.MessageResponse(c, i18n.KeyInventoryRemoved)
}

// PUT /inventory/stock
func (h *InventoryHandler) UpdateStock(c *gin.Context) {
	var req services.UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if err := h.inventoryService.UpdateStock(c.Request.Context(), utils.GetSessionFromContext(c), &req); err != nil {
		utils.ServiceErrorResponse(c, err, "product")
		return
	}

	utils.MessageResponse(c, i18n.KeyInventoryUpdated)
}

// POST /inventory/:id/restock
func (h *InventoryHandler) Restock(c *gin.Context) {
	var req services.RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if err := h.inventoryService.Restock(c.Request.Context(), utils.GetSessionFromContext(c), c.Param("id"), &req); err != nil {
		utils.ServiceErrorResponse(c, err, "product")
		return
	}

	utils.MessageResponse(c, i18n.KeyInventoryRestocked)
}

// POST /inventory/restock
func (h *InventoryHandler) BulkRestock(c *gin.Context) {
	var req services.BulkRestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if err := h.inventoryService.BulkRestock(c.Request.Context(), utils.GetSessionFromContext(c), &req); err != nil {
		utils.ServiceErrorResponse(c, err, "product")
		return
	}

	utils.MessageResponse(c, i18n.KeyInventoryRestocked)
}
