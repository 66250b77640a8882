package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Y4SHVINE/smart-product-assistant/internal/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubVerifier struct {
	user  *model.AuthUser
	err   error
	calls int
}

func (s *stubVerifier) VerifyToken(_ context.Context, _ string) (*model.AuthUser, error) {
	s.calls++
	return s.user, s.err
}

func newAuthRouter(verifier *stubVerifier) (*gin.Engine, *int) {
	handlerCalls := 0
	r := gin.New()
	r.Use(NewAuthMiddleware(verifier).RequireAuth())
	r.GET("/protected", func(c *gin.Context) {
		handlerCalls++
		user := c.MustGet("user").(*model.AuthUser)
		c.JSON(http.StatusOK, user)
	})
	return r, &handlerCalls
}

func request(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	verifier := &stubVerifier{}
	r, handlerCalls := newAuthRouter(verifier)

	w := request(r, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 0, verifier.calls, "provider must not be called without a header")
	assert.Equal(t, 0, *handlerCalls)
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	verifier := &stubVerifier{}
	r, handlerCalls := newAuthRouter(verifier)

	for _, header := range []string{"Basic abc", "Bearer ", "token-without-scheme"} {
		w := request(r, header)
		require.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
	assert.Equal(t, 0, *handlerCalls)
}

func TestRequireAuth_RejectedToken(t *testing.T) {
	verifier := &stubVerifier{err: errors.New("invalid JWT")}
	r, handlerCalls := newAuthRouter(verifier)

	w := request(r, "Bearer bad-token")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Invalid or expired token"}`, w.Body.String())
	assert.Equal(t, 1, verifier.calls)
	assert.Equal(t, 0, *handlerCalls)
}

func TestRequireAuth_ProviderFailure(t *testing.T) {
	verifier := &stubVerifier{err: fmt.Errorf("identity provider unreachable: %w", model.ErrUpstream)}
	r, handlerCalls := newAuthRouter(verifier)

	w := request(r, "Bearer any-token")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 0, *handlerCalls)
}

func TestRequireAuth_ValidToken(t *testing.T) {
	verifier := &stubVerifier{user: &model.AuthUser{ID: "user-1", Email: "a@b.c"}}
	r, handlerCalls := newAuthRouter(verifier)

	w := request(r, "Bearer good-token")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, *handlerCalls)
	assert.Contains(t, w.Body.String(), "user-1")
}
