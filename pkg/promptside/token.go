package promptside

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// tokenResponse is the token endpoint's success body. Only access_token is
// contractual; everything else is ignored.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Authenticate performs an OAuth2 client-credentials grant against the
// environment's token endpoint and stores the returned bearer token as the
// client's current token.
//
// Failures are classified into an *AuthError and passed to OnAuthFailure (if
// set) before being returned. Authenticate itself never retries; the caller
// owns that decision.
func (c *Client) Authenticate(ctx context.Context) (string, error) {
	c.logger.Debug("refreshing access token", "token_url", c.TokenURL)

	form := url.Values{"grant_type": {"client_credentials"}}
	if c.scope != "" {
		form.Set("scope", c.scope)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.TokenURL,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return "", c.authFailure(&AuthError{
			Reason:  AuthUnknown,
			Message: "unknown error: " + err.Error(),
			Err:     err,
		})
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", c.authFailure(&AuthError{
			Reason:  AuthConnectionError,
			Message: "connection failed",
			Err:     err,
		})
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", c.authFailure(&AuthError{
			Reason:     AuthConnectionError,
			Message:    "connection failed",
			StatusCode: resp.StatusCode,
			Err:        err,
		})
	}

	switch {
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized:
		return "", c.authFailure(&AuthError{
			Reason:     AuthCredentialsRejected,
			Message:    fmt.Sprintf("credentials rejected (status %d)", resp.StatusCode),
			StatusCode: resp.StatusCode,
		})

	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return "", c.authFailure(&AuthError{
			Reason:     AuthServerError,
			Message:    fmt.Sprintf("authentication failed (status %d)", resp.StatusCode),
			StatusCode: resp.StatusCode,
		})
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil || token.AccessToken == "" {
		return "", c.authFailure(&AuthError{
			Reason:     AuthBadResponse,
			Message:    "unexpected response from server",
			StatusCode: resp.StatusCode,
			Err:        err,
		})
	}

	c.SetBearerToken(token.AccessToken)
	return token.AccessToken, nil
}

// authFailure notifies the optional observer, then hands the failure back
// for propagation.
func (c *Client) authFailure(authErr *AuthError) *AuthError {
	if c.OnAuthFailure != nil {
		c.OnAuthFailure(authErr)
	}
	return authErr
}
