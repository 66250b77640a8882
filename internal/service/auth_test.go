package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyToken_Valid(t *testing.T) {
	var gotAuth, gotAPIKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/v1/user", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotAPIKey = r.Header.Get("apikey")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"user-123","email":"shopper@example.com"}`))
	}))
	defer srv.Close()

	svc := NewAuthService(srv.URL, "service-key")
	user, err := svc.VerifyToken(context.Background(), "token-abc")
	require.NoError(t, err)

	assert.Equal(t, "user-123", user.ID)
	assert.Equal(t, "shopper@example.com", user.Email)
	assert.Equal(t, "Bearer token-abc", gotAuth)
	assert.Equal(t, "service-key", gotAPIKey)
}

func TestVerifyToken_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid JWT"}`))
	}))
	defer srv.Close()

	svc := NewAuthService(srv.URL, "service-key")
	user, err := svc.VerifyToken(context.Background(), "expired")
	require.Error(t, err)
	assert.Nil(t, user)
}

func TestVerifyToken_MissingUserID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	svc := NewAuthService(srv.URL, "service-key")
	_, err := svc.VerifyToken(context.Background(), "token")
	require.Error(t, err)
}

func TestVerifyToken_ProviderDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // immediately unreachable

	svc := NewAuthService(srv.URL, "service-key")
	_, err := svc.VerifyToken(context.Background(), "token")
	require.Error(t, err)
}
