package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/resona/resona-api/internal/config"
	"github.com/resona/resona-api/internal/models"
	"github.com/resona/resona-api/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.SetIdentitySecret("middleware-test-secret", "resona-identity")
}

type recordedAudit struct {
	mu      sync.Mutex
	entries []*models.AuditLog
}

func (r *recordedAudit) RecordAuditLog(entry *models.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

func sessionEcho(c *gin.Context) {
	s := utils.GetSessionFromContext(c)
	c.JSON(http.StatusOK, gin.H{"principal": s.Principal, "app_role": s.AppRole, "lang": utils.GetLangFromContext(c)})
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	body := decode(t, w)
	errBody, ok := body["error"].(map[string]interface{})
	require.True(t, ok, "expected error envelope, got %v", body)
	return errBody["code"].(string)
}

func token(t *testing.T, principal, role string) string {
	tok, err := utils.GenerateIdentityToken(principal, role, time.Hour)
	require.NoError(t, err)
	return tok
}

func TestAuthRequired(t *testing.T) {
	r := gin.New()
	r.GET("/me", AuthRequired(), sessionEcho)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"valid token", "Bearer " + token(t, "artist-1", "artist"), http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			if tc.status == http.StatusUnauthorized {
				assert.Equal(t, "UNAUTHORIZED", errorCode(t, w))
			}
		})
	}
}

func TestAuthRequiredStoresSession(t *testing.T) {
	r := gin.New()
	r.GET("/me", AuthRequired(), sessionEcho)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, "hub-7", "hub"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "hub-7", body["principal"])
	assert.Equal(t, "hub", body["app_role"])
}

func TestUnknownRoleFallsBackToBuyer(t *testing.T) {
	r := gin.New()
	r.GET("/me", AuthRequired(), sessionEcho)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, "someone", "superuser"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "buyer", decode(t, w)["app_role"])
}

func TestAdminRequired(t *testing.T) {
	r := gin.New()
	r.GET("/admin", AuthRequired(), AdminRequired(), sessionEcho)

	for role, status := range map[string]int{"admin": http.StatusOK, "artist": http.StatusForbidden} {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token(t, role+"-1", role))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, status, w.Code, role)
		if status == http.StatusForbidden {
			assert.Equal(t, "FORBIDDEN", errorCode(t, w))
		}
	}
}

func TestOptionalAuth(t *testing.T) {
	r := gin.New()
	r.GET("/products", OptionalAuth(), sessionEcho)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "", decode(t, w)["principal"])

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("Authorization", "Bearer broken")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "", decode(t, w)["principal"])

	req = httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, "buyer-1", "buyer"))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "buyer-1", decode(t, w)["principal"])
}

func TestResolveLanguage(t *testing.T) {
	assert.Equal(t, "zh_TW", resolveLanguage("zh-TW,zh;q=0.9"))
	assert.Equal(t, "zh_TW", resolveLanguage("zh-Hant"))
	assert.Equal(t, "en", resolveLanguage("fr-FR"))
	assert.Equal(t, "en", resolveLanguage(""))

	r := gin.New()
	r.Use(I18nMiddleware())
	r.GET("/", sessionEcho)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "zh-TW")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "zh_TW", decode(t, w)["lang"])
}

func TestRateLimiterRejectsBurst(t *testing.T) {
	limiter := NewRateLimiter(rate.Every(time.Hour), 2)

	r := gin.New()
	r.Use(limiter.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	var codes []int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)

	// Another client has its own bucket.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestGeneralRateLimitUsesConfig(t *testing.T) {
	r := gin.New()
	r.Use(GeneralRateLimit(config.RateLimitConfig{RequestsPerSecond: 0.001, Burst: 1}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNoContent, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "RATE_LIMITED", errorCode(t, second))
}

func TestAuditLogMiddleware(t *testing.T) {
	recorder := &recordedAudit{}

	r := gin.New()
	r.Use(AuditLogMiddleware(recorder))
	v1 := r.Group("/v1", OptionalAuth())
	v1.GET("/products", func(c *gin.Context) { c.Status(http.StatusOK) })
	v1.PUT("/products/:id", func(c *gin.Context) {
		var body map[string]interface{}
		require.NoError(t, c.ShouldBindJSON(&body))
		c.JSON(http.StatusOK, body)
	})
	v1.PUT("/admin/hubs/:id/:action", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/products", nil))
	assert.Empty(t, recorder.entries)

	req := httptest.NewRequest(http.MethodPut, "/v1/products/p-1", bytes.NewBufferString(`{"name":"Vinyl"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token(t, "artist-1", "artist"))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// The handler still sees the body after it was captured.
	assert.Equal(t, "Vinyl", decode(t, w)["name"])

	req = httptest.NewRequest(http.MethodPut, "/v1/admin/hubs/h-1/approve", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Len(t, recorder.entries, 2)

	entry := recorder.entries[0]
	assert.Equal(t, "PUT /v1/products/:id", entry.Action)
	assert.Equal(t, "products", entry.ResourceType)
	assert.Equal(t, "p-1", entry.ResourceID)
	assert.Equal(t, "artist-1", entry.Principal)
	assert.Equal(t, "artist", entry.AppRole)
	assert.Equal(t, http.StatusOK, entry.StatusCode)
	assert.Equal(t, "Vinyl", entry.NewValues["name"])

	assert.Equal(t, "hubs", recorder.entries[1].ResourceType)
	assert.Equal(t, "h-1", recorder.entries[1].ResourceID)
	assert.Equal(t, "", recorder.entries[1].Principal)
}
