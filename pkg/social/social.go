package social

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/andela/ah-olympians/pkg/apperror"
)

// Identity is a verified external identity returned by a provider.
type Identity struct {
	Provider   string
	ExternalID string
	Email      string
	Name       string
}

// Verifier exchanges a provider access token for a verified identity.
// The OAuth handshake itself happens on the client; this boundary only
// confirms the token with the provider's userinfo endpoint.
type Verifier interface {
	Verify(ctx context.Context, provider, accessToken, accessTokenSecret string) (*Identity, error)
}

var userInfoEndpoints = map[string]string{
	"google":   "https://www.googleapis.com/oauth2/v3/userinfo",
	"facebook": "https://graph.facebook.com/me?fields=id,name,email",
}

type httpVerifier struct {
	client *http.Client
}

func NewHTTPVerifier() Verifier {
	return &httpVerifier{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (v *httpVerifier) Verify(ctx context.Context, provider, accessToken, accessTokenSecret string) (*Identity, error) {
	endpoint, ok := userInfoEndpoints[provider]
	if !ok {
		return nil, apperror.NotFound(fmt.Sprintf("provider %s was not found", provider))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, apperror.BadRequest("social authentication error")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperror.BadRequest("social authentication error")
	}

	var payload struct {
		Sub   string `json:"sub"`
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperror.BadRequest("social authentication error")
	}

	externalID := payload.Sub
	if externalID == "" {
		externalID = payload.ID
	}
	if externalID == "" {
		return nil, apperror.BadRequest("social authentication error")
	}

	return &Identity{
		Provider:   provider,
		ExternalID: externalID,
		Email:      payload.Email,
		Name:       payload.Name,
	}, nil
}
