package ringcentral

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/oauth2"
)

const tokenPath = "restapi/oauth/token"

// NewPasswordTokenSource performs the OAuth2 resource-owner password grant
// against the platform token endpoint and returns a self-refreshing token
// source. The connector core only consumes the token source; it never handles
// credentials itself.
func NewPasswordTokenSource(ctx context.Context, baseURL, clientID, clientSecret, username, password string) (oauth2.TokenSource, error) {
	if baseURL == "" {
		return nil, goerr.New("RingCentral base URL is required")
	}
	if clientID == "" || clientSecret == "" {
		return nil, goerr.New("OAuth client credentials are required")
	}
	if username == "" || password == "" {
		return nil, goerr.New("username and password are required for the password grant")
	}

	cfg := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL:  strings.TrimSuffix(baseURL, "/") + "/" + tokenPath,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}

	token, err := cfg.PasswordCredentialsToken(ctx, username, password)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to obtain access token from RingCentral")
	}

	return cfg.TokenSource(ctx, token), nil
}

// StaticTokenSource wraps a pre-issued bearer token
func StaticTokenSource(accessToken string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
}
