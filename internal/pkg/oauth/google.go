package oauth

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const userinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// Profile is the subset of the Google userinfo response the application
// cares about.
type Profile struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// GoogleProvider wraps the OAuth 2.0 authorization-code flow against Google.
// All credential verification is delegated to the provider; the application
// only ever sees the resulting profile.
type GoogleProvider struct {
	config *oauth2.Config
	client *resty.Client
}

// NewGoogleProvider creates a provider from client credentials and the
// registered callback URL.
func NewGoogleProvider(clientID, clientSecret, callbackURL string) *GoogleProvider {
	return &GoogleProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  callbackURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		client: resty.New(),
	}
}

// AuthURL returns the provider consent-screen URL for the given CSRF state.
func (p *GoogleProvider) AuthURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades the callback code for a profile: token exchange followed by
// a userinfo fetch.
func (p *GoogleProvider) Exchange(ctx context.Context, code string) (*Profile, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("oauth code exchange failed: %w", err)
	}

	var profile Profile
	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(token.AccessToken).
		SetResult(&profile).
		Get(userinfoURL)
	if err != nil {
		return nil, fmt.Errorf("userinfo request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("userinfo request failed with status %d", resp.StatusCode())
	}
	if profile.ID == "" {
		return nil, fmt.Errorf("userinfo response missing subject id")
	}

	return &profile, nil
}
