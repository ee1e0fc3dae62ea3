// internal/handlers/product.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/resona/resona-api/internal/i18n"
	"github.com/resona/resona-api/internal/services"
	"github.com/resona/resona-api/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
	storageService *services.StorageService
}

func NewProductHandler(productService *services.ProductService, storageService *services.StorageService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		storageService: storageService,
	}
}

// GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	result, err := h.productService.List(c.Request.Context(), utils.GetSessionFromContext(c))
	if err != nil {
		utils.ServiceErrorResponse(c, err, "product")
		return
	}

	utils.ListResponse(c, result.Items, result.Available)
}

// GET /products/mine
func (h *ProductHandler) GetMyProducts(c *gin.Context) {
	session := utils.GetSessionFromContext(c)

	result, err := h.productService.ListByArtist(c.Request.Context(), session, session.Principal)
	if err != nil {
		utils.ServiceErrorResponse(c, err, "product")
		return
	}

	utils.ListResponse(c, result.Items, result.Available)
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.productService.Get(c.Request.Context(), utils.GetSessionFromContext(c), c.Param("id"))
	if err != nil {
		utils.ServiceErrorResponse(c, err, "product")
		return
	}

	utils.SuccessResponse(c, product)
}

// POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	created, err := h.productService.Create(c.Request.Context(), utils.GetSessionFromContext(c), &req)
	if err != nil {
		utils.ServiceErrorResponse(c, err, "product")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":           i18n.T(lang, i18n.KeyProductCreated),
		"product":           created.Product,
		"certificate":       created.Certificate,
		"certificate_error": created.CertificateError,
	})
}

// PUT /products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	product, err := h.productService.Update(c.Request.Context(), utils.GetSessionFromContext(c), c.Param("id"), &req)
	if err != nil {
		utils.ServiceErrorResponse(c, err, "product")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductUpdated),
		"product": product,
	})
}

// DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.productService.Delete(c.Request.Context(), utils.GetSessionFromContext(c), c.Param("id")); err != nil {
		utils.ServiceErrorResponse(c, err, "product")
		return
	}

	utils.MessageResponse(c, i18n.KeyProductDeleted)
}

// POST /products/upload-images
func (h *ProductHandler) UploadProductImages(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationRequired, "images"), nil)
		return
	}

	results, err := h.storageService.UploadProductImages(c.Request.Context(), files)
	if err != nil {
		utils.ServiceErrorResponse(c, err, "file")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyFileUploadSuccess),
		"images":  results,
	})
}
