package googleauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const profileURL = "https://www.googleapis.com/oauth2/v1/userinfo?alt=json"

var ErrEmptyProfile = errors.New("googleauth: provider returned an empty profile")

// Profile is the subset of the Google userinfo payload the account flow
// needs.
type Profile struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// Client exchanges authorization codes and fetches profiles. It is an
// interface so the auth flow can run against a fake in tests.
type Client interface {
	AuthURL() string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	FetchProfile(ctx context.Context, token *oauth2.Token) (Profile, error)
}

type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// OAuthClient is the real Google-backed implementation.
type OAuthClient struct {
	oauth2Config *oauth2.Config
}

func New(cfg Config) *OAuthClient {
	return &OAuthClient{
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.profile",
				"openid",
				"https://www.googleapis.com/auth/userinfo.email",
			},
			Endpoint: google.Endpoint,
		},
	}
}

func (c *OAuthClient) AuthURL() string {
	return c.oauth2Config.AuthCodeURL("", oauth2.AccessTypeOffline)
}

func (c *OAuthClient) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return c.oauth2Config.Exchange(ctx, code)
}

func (c *OAuthClient) FetchProfile(ctx context.Context, token *oauth2.Token) (Profile, error) {
	httpClient := c.oauth2Config.Client(ctx, token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, profileURL, nil)
	if err != nil {
		return Profile{}, err
	}

	res, err := httpClient.Do(req)
	if err != nil {
		return Profile{}, fmt.Errorf("fetching google profile: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return Profile{}, fmt.Errorf("fetching google profile: status %d", res.StatusCode)
	}

	var p Profile
	if err := json.NewDecoder(res.Body).Decode(&p); err != nil {
		return Profile{}, fmt.Errorf("decoding google profile: %w", err)
	}
	if p.Email == "" {
		return Profile{}, ErrEmptyProfile
	}

	return p, nil
}
