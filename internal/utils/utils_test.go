package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resona/resona-api/internal/ledger"
	"github.com/resona/resona-api/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestIdentityToken(t *testing.T) {
	SetIdentitySecret("test-secret", "test-issuer")

	token, err := GenerateIdentityToken("aaaaa-bbbbb", "artist", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateIdentityToken(token)
	require.NoError(t, err)
	assert.Equal(t, "aaaaa-bbbbb", claims.Principal)
	assert.Equal(t, "artist", claims.AppRole)

	expired, err := GenerateIdentityToken("aaaaa-bbbbb", "artist", -time.Minute)
	require.NoError(t, err)
	_, err = ValidateIdentityToken(expired)
	assert.Error(t, err)

	SetIdentitySecret("other-secret", "test-issuer")
	_, err = ValidateIdentityToken(token)
	assert.Error(t, err)

	SetIdentitySecret("test-secret", "someone-else")
	_, err = ValidateIdentityToken(token)
	assert.Error(t, err)
}

func TestValidationErrors(t *testing.T) {
	type input struct {
		Name   string `validate:"required"`
		Status string `validate:"required,order_status"`
		Kind   string `validate:"omitempty,product_type"`
	}

	assert.NoError(t, ValidateStruct(input{Name: "x", Status: "shipped", Kind: "nft"}))

	err := ValidateStruct(input{Status: "lost", Kind: "digital"})
	require.Error(t, err)

	errs := GetValidationErrors(fmt.Errorf("wrapped: %w", err))
	require.Len(t, errs, 3)
	assert.Equal(t, "name", errs[0].Field)
	assert.Equal(t, "required", errs[0].Tag)
	assert.Equal(t, "order_status", errs[1].Tag)
	assert.Equal(t, "Status is not a known order status", errs[1].Message)
}

func serviceError(err error) (*httptest.ResponseRecorder, APIResponse) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	ServiceErrorResponse(c, err, "order")

	var resp APIResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestServiceErrorResponse(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{&ledger.RemoteError{Method: "approveHub", Message: "Hub is not pending"}, http.StatusUnprocessableEntity, "REMOTE_REJECTED"},
		{fmt.Errorf("%w: down", ledger.ErrUnavailable), http.StatusServiceUnavailable, "LEDGER_UNAVAILABLE"},
		{ledger.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{fmt.Errorf("%w: nft", models.ErrVariantFields), http.StatusBadRequest, "VALIDATION_ERROR"},
		{fmt.Errorf("%w: not enough inventory", models.ErrInvalidInput), http.StatusBadRequest, "VALIDATION_ERROR"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		w, resp := serviceError(tc.err)
		assert.Equal(t, tc.status, w.Code, tc.code)
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, tc.code, resp.Error.Code)
	}

	_, resp := serviceError(&ledger.RemoteError{Method: "approveHub", Message: "Hub is not pending"})
	assert.Equal(t, "Hub is not pending", resp.Error.Message)

	_, resp = serviceError(&ledger.RemoteError{Method: "approveHub"})
	assert.Equal(t, "ledger.rejected", resp.Error.Message)
}

func TestPaginateSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	result := PaginateSlice(items, PaginationParams{Page: 2, Limit: 2})
	assert.Equal(t, []int{3, 4}, result.Data)
	assert.Equal(t, int64(5), result.Total)
	assert.Equal(t, 3, result.TotalPages)

	result = PaginateSlice(items, PaginationParams{Page: 9, Limit: 2})
	assert.Equal(t, []int{}, result.Data)
}

func TestGetSessionFromContext(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.True(t, GetSessionFromContext(c).IsAnonymous())

	c.Set(ContextKeySession, ledger.Session{Principal: "p", Token: "t", AppRole: models.AppRoleAdmin})
	assert.True(t, GetSessionFromContext(c).IsAdmin())
}

func TestHashing(t *testing.T) {
	hash := HashString("resona")
	assert.Len(t, hash, 64)
	assert.Equal(t, hash, HashString("resona"))
	assert.NotEqual(t, hash, HashString("other"))
	assert.Regexp(t, `^order-[0-9a-f-]{36}$`, NewResourceID("order"))
	assert.Equal(t, "cert-p1-1000", CertificateID("p1", time.UnixMilli(1000)))
}
