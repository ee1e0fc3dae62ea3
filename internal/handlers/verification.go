// internal/handlers/verification.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/resona/resona-api/internal/i18n"
	"github.com/resona/resona-api/internal/services"
	"github.com/resona/resona-api/internal/utils"
)

type VerificationHandler struct {
	productService     *services.ProductService
	certificateService *services.CertificateService
}

func NewVerificationHandler(productService *services.ProductService, certificateService *services.CertificateService) *VerificationHandler {
	return &VerificationHandler{
		productService:     productService,
		certificateService: certificateService,
	}
}

// POST /products/:id/certificate
func (h *VerificationHandler) MintCertificate(c *gin.Context) {
	ctx := c.Request.Context()
	session := utils.GetSessionFromContext(c)

	product, err := h.productService.Get(ctx, session, c.Param("id"))
	if err != nil {
		utils.ServiceErrorResponse(c, err, "product")
		return
	}

	cert, err := h.certificateService.Mint(ctx, session, product)
	if err != nil {
		utils.ServiceErrorResponse(c, err, "certificate")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":     i18n.T(utils.GetLangFromContext(c), i18n.KeyCertificateMinted),
		"certificate": cert,
	})
}

// GET /products/:id/verify
// Public; anonymous callers verify with an unauthenticated session.
func (h *VerificationHandler) VerifyProduct(c *gin.Context) {
	result, err := h.certificateService.Verify(c.Request.Context(), utils.GetSessionFromContext(c), c.Param("id"))
	if err != nil {
		utils.ServiceErrorResponse(c, err, "certificate")
		return
	}

	utils.SuccessResponse(c, result)
}
