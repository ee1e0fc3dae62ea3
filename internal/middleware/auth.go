// internal/middleware/auth.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/resona/resona-api/internal/i18n"
	"github.com/resona/resona-api/internal/ledger"
	"github.com/resona/resona-api/internal/models"
	"github.com/resona/resona-api/internal/utils"
)

// AuthRequired validates the identity token and stores the caller session.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := utils.GetLangFromContext(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
			c.Abort()
			return
		}

		token, ok := bearerToken(authHeader)
		if !ok {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidToken))
			c.Abort()
			return
		}

		session, err := sessionFromToken(token)
		if err != nil {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthTokenExpired))
			c.Abort()
			return
		}

		c.Set(utils.ContextKeySession, session)
		c.Next()
	}
}

func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !utils.GetSessionFromContext(c).IsAdmin() {
			utils.ForbiddenResponse(c, "")
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuth stores a session when a valid token is present and
// continues anonymously otherwise.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}

		if session, err := sessionFromToken(token); err == nil {
			c.Set(utils.ContextKeySession, session)
		}
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func sessionFromToken(token string) (ledger.Session, error) {
	claims, err := utils.ValidateIdentityToken(token)
	if err != nil {
		return ledger.Session{}, err
	}

	role := models.AppRole(claims.AppRole)
	if !role.Valid() {
		role = models.AppRoleBuyer
	}
	return ledger.Session{
		Principal: claims.Principal,
		AppRole:   role,
		Token:     token,
	}, nil
}
