package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Y4SHVINE/smart-product-assistant/internal/model"
)

const defaultAuthTimeout = 10 * time.Second

// AuthService verifies bearer tokens against the external identity provider.
// No session state is held locally; every request is re-verified.
type AuthService struct {
	client     *http.Client
	baseURL    string
	serviceKey string
}

func NewAuthService(baseURL, serviceKey string) *AuthService {
	return &AuthService{
		client:     &http.Client{Timeout: defaultAuthTimeout},
		baseURL:    baseURL,
		serviceKey: serviceKey,
	}
}

// VerifyToken asks the identity provider who the token belongs to. Any
// rejection by the provider surfaces as an error; the middleware maps it to
// 401.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (*model.AuthUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", s.serviceKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity provider unreachable: %v: %w", err, model.ErrUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("invalid or expired token")
	}

	var user model.AuthUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to decode auth response: %w", model.ErrUpstream)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("user not found")
	}

	return &user, nil
}
