// internal/handlers/user.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/resona/resona-api/internal/i18n"
	"github.com/resona/resona-api/internal/services"
	"github.com/resona/resona-api/internal/utils"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GET /me
func (h *UserHandler) GetMe(c *gin.Context) {
	me, err := h.userService.Me(c.Request.Context(), utils.GetSessionFromContext(c))
	if err != nil {
		utils.ServiceErrorResponse(c, err, "profile")
		return
	}

	utils.SuccessResponse(c, me)
}

// PUT /me/profile
func (h *UserHandler) SaveProfile(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.SaveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	profile, err := h.userService.SaveProfile(c.Request.Context(), utils.GetSessionFromContext(c), &req)
	if err != nil {
		utils.ServiceErrorResponse(c, err, "profile")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProfileUpdated),
		"profile": profile,
	})
}
