package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/resona/resona-api/internal/cache"
	"github.com/resona/resona-api/internal/config"
	"github.com/resona/resona-api/internal/database/dbtest"
	"github.com/resona/resona-api/internal/ledger"
	"github.com/resona/resona-api/internal/ledger/ledgertest"
	"github.com/resona/resona-api/internal/services"
	"github.com/resona/resona-api/internal/utils"
)

type RouterTestSuite struct {
	suite.Suite
	server   *ledgertest.Server
	config   *config.Config
	registry *services.Registry
	router   *gin.Engine

	artistToken string
	buyerToken  string
	adminToken  string
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta map[string]interface{} `json:"meta"`
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (suite *RouterTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.server = ledgertest.NewServer()

	suite.config = &config.Config{
		Server:    config.ServerConfig{Host: "localhost", Port: "8080", PublicURL: "https://resona.example/", UploadDir: suite.T().TempDir()},
		Identity:  config.IdentityConfig{SecretKey: "router-test-secret", Issuer: "resona-identity"},
		Ledger:    config.LedgerConfig{BaseURL: suite.server.URL, Timeout: 5, NumericPolicy: "reject", CacheTTL: 60},
		Payment:   config.PaymentConfig{Currency: "usd", ArtistPercent: 70, HubPercent: 20, PlatformPercent: 10},
		CORS:      config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		RateLimit: config.RateLimitConfig{RequestsPerSecond: 1000, Burst: 1000},
	}

	client, err := ledger.NewClient(suite.config.Ledger)
	suite.Require().NoError(err)
	suite.Require().NoError(client.Connect(context.Background()))

	suite.registry, err = services.NewRegistry(dbtest.New(suite.T()), suite.config, client, cache.New(time.Minute))
	suite.Require().NoError(err)
	suite.router = Initialize(suite.config, suite.registry)

	suite.artistToken = suite.token("artist-1", "artist")
	suite.buyerToken = suite.token("buyer-1", "buyer")
	suite.adminToken = suite.token("admin-1", "admin")
}

func (suite *RouterTestSuite) TearDownTest() {
	suite.server.Close()
}

func (suite *RouterTestSuite) token(principal, role string) string {
	tok, err := utils.GenerateIdentityToken(principal, role, time.Hour)
	suite.Require().NoError(err)
	return tok
}

func (suite *RouterTestSuite) request(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *RouterTestSuite) decode(w *httptest.ResponseRecorder) envelope {
	var env envelope
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func (suite *RouterTestSuite) TestHealth() {
	w := suite.request(http.MethodGet, "/health", nil, "")

	suite.Require().Equal(http.StatusOK, w.Code)
	var body map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(suite.T(), "healthy", body["status"])
	assert.Equal(suite.T(), "connected", body["ledger"])
}

func (suite *RouterTestSuite) TestPublicProductListAndDegrade() {
	suite.server.Returns("getProducts", []interface{}{
		ledgertest.Product("p1", "artist-1", "Poster", "physical"),
	})

	w := suite.request(http.MethodGet, "/v1/products", nil, "")
	suite.Require().Equal(http.StatusOK, w.Code)
	env := suite.decode(w)
	assert.True(suite.T(), env.Success)
	assert.Equal(suite.T(), true, env.Meta["available"])

	var products []map[string]interface{}
	suite.Require().NoError(json.Unmarshal(env.Data, &products))
	suite.Require().Len(products, 1)
	assert.Equal(suite.T(), "Poster", products[0]["name"])

	// A different caller misses the cache and sees the outage.
	suite.server.SetDown(true)
	w = suite.request(http.MethodGet, "/v1/products", nil, suite.buyerToken)
	suite.Require().Equal(http.StatusOK, w.Code)
	env = suite.decode(w)
	assert.Equal(suite.T(), false, env.Meta["available"])
	assert.JSONEq(suite.T(), `[]`, string(env.Data))
}

func (suite *RouterTestSuite) TestAuthAndAdminGates() {
	w := suite.request(http.MethodGet, "/v1/orders/mine", nil, "")
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)

	w = suite.request(http.MethodGet, "/v1/admin/overview", nil, suite.artistToken)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
	assert.Equal(suite.T(), "FORBIDDEN", suite.decode(w).Error.Code)

	w = suite.request(http.MethodGet, "/v1/orders", nil, suite.buyerToken)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *RouterTestSuite) TestCreateProductValidationAndRejection() {
	w := suite.request(http.MethodPost, "/v1/products", map[string]interface{}{
		"name":         "",
		"description":  "First drop",
		"price":        5000,
		"product_type": "nft",
	}, suite.artistToken)
	suite.Require().Equal(http.StatusBadRequest, w.Code)
	assert.Equal(suite.T(), "VALIDATION_ERROR", suite.decode(w).Error.Code)
	assert.Equal(suite.T(), 0, suite.server.Calls("addProduct"))

	suite.server.Rejects("addProduct", "Caller is not an artist")
	w = suite.request(http.MethodPost, "/v1/products", map[string]interface{}{
		"name":         "Genesis",
		"description":  "First drop",
		"price":        5000,
		"product_type": "nft",
	}, suite.buyerToken)
	suite.Require().Equal(http.StatusUnprocessableEntity, w.Code)
	env := suite.decode(w)
	assert.Equal(suite.T(), "REMOTE_REJECTED", env.Error.Code)
	assert.Equal(suite.T(), "Caller is not an artist", env.Error.Message)
	assert.Equal(suite.T(), suite.buyerToken, suite.server.LastToken("addProduct"))
}

func (suite *RouterTestSuite) TestArtistOrderFilter() {
	w := suite.request(http.MethodGet, "/v1/orders/artist?status=lost", nil, suite.artistToken)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodGet, "/v1/orders/artist?days=-3", nil, suite.artistToken)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	suite.server.Returns("getArtistProducts", []interface{}{
		ledgertest.Product("p2", "artist-1", "Vinyl", "physical"),
	})
	suite.server.Returns("getFilteredArtistOrders", []interface{}{
		ledgertest.Order("o2", "p2", "shipped", 2),
	})
	suite.server.Returns("getArtistOrderSummary", map[string]interface{}{"totalOrders": "1", "shipped": "1"})

	w = suite.request(http.MethodGet, "/v1/orders/artist?status=shipped&hub=h1&search=vinyl", nil, suite.artistToken)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var data struct {
		Orders []struct {
			ID          string `json:"id"`
			ProductName string `json:"product_name"`
		} `json:"orders"`
	}
	suite.Require().NoError(json.Unmarshal(suite.decode(w).Data, &data))
	suite.Require().Len(data.Orders, 1)
	assert.Equal(suite.T(), "o2", data.Orders[0].ID)

	suite.Require().Equal(1, suite.server.Calls("getFilteredArtistOrders"))
	args := suite.server.LastArgs("getFilteredArtistOrders")
	suite.Require().Len(args, 2)
	assert.Contains(suite.T(), string(args[1]), "shipped")
	assert.Contains(suite.T(), string(args[1]), `"h1"`)
}

func (suite *RouterTestSuite) TestOrdersReportDownload() {
	suite.server.Returns("getHubOrders", []interface{}{
		ledgertest.Order("o1", "p1", "shipped", 1700000000000000000),
	})

	w := suite.request(http.MethodGet, "/v1/reports/orders?hub=hub-1&format=csv", nil, suite.artistToken)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	assert.Equal(suite.T(), "text/csv", w.Header().Get("Content-Type"))
	assert.True(suite.T(), strings.HasPrefix(w.Header().Get("Content-Disposition"), `attachment; filename="orders-report-`))
	assert.Equal(suite.T(), "1", w.Header().Get("X-Total-Count"))
	assert.Contains(suite.T(), w.Body.String(), "o1,p1,1,shipped")

	w = suite.request(http.MethodGet, "/v1/reports/orders?hub=hub-1&format=pdf", nil, suite.artistToken)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodGet, "/v1/reports/orders?format=csv", nil, suite.artistToken)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *RouterTestSuite) TestHubModerationIsAudited() {
	suite.server.Returns("approveHub", nil)

	w := suite.request(http.MethodPut, "/v1/admin/hubs/hub-9/approve", nil, suite.adminToken)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = suite.request(http.MethodPut, "/v1/admin/hubs/hub-9/archive", nil, suite.adminToken)
	suite.Require().Equal(http.StatusBadRequest, w.Code)
	assert.Equal(suite.T(), "VALIDATION_ERROR", suite.decode(w).Error.Code)
	assert.Equal(suite.T(), 1, suite.server.Calls("approveHub"))

	w = suite.request(http.MethodGet, "/v1/admin/audit-logs?action=PUT%20/v1/admin/hubs/:id/:action&sort=created_at&order=asc", nil, suite.adminToken)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	env := suite.decode(w)
	var logs []map[string]interface{}
	suite.Require().NoError(json.Unmarshal(env.Data, &logs))
	suite.Require().Len(logs, 2)

	var statuses []float64
	for _, entry := range logs {
		assert.Equal(suite.T(), "admin-1", entry["principal"])
		assert.Equal(suite.T(), "hub-9", entry["resource_id"])
		assert.Equal(suite.T(), "hubs", entry["resource_type"])
		statuses = append(statuses, entry["status_code"].(float64))
	}
	assert.ElementsMatch(suite.T(), []float64{http.StatusOK, http.StatusBadRequest}, statuses)
}

func (suite *RouterTestSuite) TestNotificationReadRejectsBadID() {
	w := suite.request(http.MethodPut, "/v1/admin/notifications/not-a-uuid/read", nil, suite.adminToken)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *RouterTestSuite) TestUploadProductImagesLocally() {
	png := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("images", "cover.png")
	suite.Require().NoError(err)
	_, err = part.Write(png)
	suite.Require().NoError(err)
	suite.Require().NoError(mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/products/upload-images", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+suite.artistToken)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var data struct {
		Images []services.UploadResult `json:"images"`
	}
	suite.Require().NoError(json.Unmarshal(suite.decode(w).Data, &data))
	suite.Require().Len(data.Images, 1)

	stored, err := os.ReadFile(filepath.Join(suite.config.Server.UploadDir, filepath.FromSlash(data.Images[0].Key)))
	suite.Require().NoError(err)
	assert.Equal(suite.T(), png, stored)

	// The local blob is served back under /uploads.
	w = suite.request(http.MethodGet, "/uploads/"+data.Images[0].Key, nil, "")
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), png, w.Body.Bytes())
}

func (suite *RouterTestSuite) TestUploadWithoutImages() {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	suite.Require().NoError(mw.WriteField("note", "nothing"))
	suite.Require().NoError(mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/products/upload-images", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+suite.artistToken)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}
