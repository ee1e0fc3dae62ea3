// internal/middleware/logging.go
package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/resona/resona-api/internal/models"
	"github.com/resona/resona-api/internal/utils"
)

const maxAuditBody = 64 << 10

// AuditRecorder persists one audit entry per mutating request.
type AuditRecorder interface {
	RecordAuditLog(entry *models.AuditLog) error
}

// RequestLogger writes one structured line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).Milliseconds(),
			"ip":       c.ClientIP(),
		}
		if session := utils.GetSessionFromContext(c); !session.IsAnonymous() {
			fields["principal"] = session.Principal
		}

		entry := logrus.WithFields(fields)
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			entry.Error("Request failed")
		case status >= http.StatusBadRequest:
			entry.Warn("Request rejected")
		default:
			entry.Info("Request processed")
		}
	}
}

func AuditLogMiddleware(recorder AuditRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodOptions || c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		var requestData map[string]interface{}
		if c.Request.Body != nil && isJSON(c.ContentType()) {
			body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxAuditBody))
			if err == nil {
				c.Request.Body = io.NopCloser(bytes.NewReader(body))
				if len(body) > 0 {
					_ = json.Unmarshal(body, &requestData)
				}
			}
		}

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}

		entry := &models.AuditLog{
			Action:       c.Request.Method + " " + route,
			ResourceType: extractResourceType(route),
			ResourceID:   c.Param("id"),
			StatusCode:   c.Writer.Status(),
			NewValues:    models.JSONB(requestData),
			IPAddress:    c.ClientIP(),
			UserAgent:    c.Request.UserAgent(),
		}
		session := utils.GetSessionFromContext(c)
		entry.Principal = session.Principal
		entry.AppRole = string(session.AppRole)

		if err := recorder.RecordAuditLog(entry); err != nil {
			logrus.WithError(err).WithField("action", entry.Action).Error("Failed to create audit log")
		}
	}
}

func isJSON(contentType string) bool {
	return contentType == "" || strings.HasSuffix(contentType, "json")
}

// extractResourceType returns the first route segment after the API prefix.
func extractResourceType(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for len(parts) > 0 && (parts[0] == "api" || parts[0] == "v1" || parts[0] == "admin") {
		parts = parts[1:]
	}
	if len(parts) == 0 || parts[0] == "" {
		return "unknown"
	}
	return parts[0]
}
