package services

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"billbox/internal/config"

	"github.com/google/uuid"
)

// supabaseAdmin relays administrative user operations to the hosted auth
// provider's admin REST API using the service-role key.
type supabaseAdmin struct {
	client     *http.Client
	baseURL    string
	serviceKey string
}

// NewSupabaseAdmin creates an AuthAdminInterface backed by the provider's
// admin endpoints
func NewSupabaseAdmin(cfg config.AuthConfig) AuthAdminInterface {
	return &supabaseAdmin{
		client:     &http.Client{},
		baseURL:    cfg.ProviderURL,
		serviceKey: cfg.ServiceRoleKey,
	}
}

// DeleteAuthUser removes the user's account at the auth provider. A 404 from
// the provider is treated as success so retries stay idempotent.
func (s *supabaseAdmin) DeleteAuthUser(ctx context.Context, userID uuid.UUID) error {
	url := fmt.Sprintf("%s/auth/v1/admin/users/%s", s.baseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build auth admin request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("apikey", s.serviceKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("auth admin request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("auth admin delete returned status %d: %s", resp.StatusCode, string(payload))
	}

	return nil
}
