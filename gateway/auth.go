package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core/session"
)

var _ session.Authenticator = (*Client)(nil)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Authenticate exchanges credentials for a bearer token. The login endpoint
// is the one form-encoded call in the API.
func (c *Client) Authenticate(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return "", errors.Wrap(err, "building request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var tok tokenResponse
	if err := c.do(req, &tok); err != nil {
		return "", err
	}
	if tok.AccessToken == "" {
		return "", errors.New("gateway: login response missing access_token")
	}
	return tok.AccessToken, nil
}

func (c *Client) Me(ctx context.Context) (session.User, error) {
	var u session.User
	if err := c.get(ctx, "/auth/me", nil, &u); err != nil {
		return session.User{}, err
	}
	return u, nil
}
