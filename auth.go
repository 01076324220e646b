package studio

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"
)

// deviceLoginEndpoint starts the device authorization flow.
const deviceLoginEndpoint = "/api/device-login"

// AvailableScopes lists the token scopes Studio can grant.
var AvailableScopes = []string{"EXPERIMENTS", "DATASETS", "MODELS"}

// DeviceLoginRequest describes the client asking for a token.
type DeviceLoginRequest struct {
	// ClientName identifies the application requesting access
	ClientName string `json:"client_name"`

	// TokenName is an optional name for the issued token
	TokenName string `json:"token_name,omitempty"`

	// Scopes restricts what the issued token can do, see AvailableScopes
	Scopes []string `json:"scopes,omitempty"`
}

// DeviceLoginResponse is Studio's answer to a device-login start. The user
// opens VerificationURI and enters UserCode; the client polls TokenURI with
// DeviceCode until authorized.
type DeviceLoginResponse struct {
	DeviceCode      string `json:"device_code"`
	UserCode        string `json:"user_code"`
	VerificationURI string `json:"verification_uri"`
	TokenURI        string `json:"token_uri"`
	TokenName       string `json:"token_name"`
	ExpiresIn       int    `json:"expires_in"`
}

func validateScopes(scopes []string) error {
	for _, scope := range scopes {
		if !slices.Contains(AvailableScopes, strings.ToUpper(scope)) {
			return fmt.Errorf("%w: %s", ErrInvalidScopes, scope)
		}
	}
	return nil
}

// StartDeviceLogin begins the device authorization flow. Scopes are checked
// locally before any network call.
func (c *Client) StartDeviceLogin(ctx context.Context, login DeviceLoginRequest) (*DeviceLoginResponse, error) {
	if err := validateScopes(login.Scopes); err != nil {
		return nil, err
	}
	if login.ClientName == "" {
		login.ClientName = "client"
	}
	c.logger.Debugf("starting device login for %s", c.endpoint(deviceLoginEndpoint))

	request, err := c.newRequest(ctx, http.MethodPost, c.endpoint(deviceLoginEndpoint), login, false)
	if err != nil {
		return nil, err
	}
	status, body, err := c.do(request)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("device login failed (%d): %s", status, body)
	}

	var response DeviceLoginResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("error decoding device login response: %w", err)
	}
	return &response, nil
}

// WaitForAccessToken polls the token URI until the user authorizes the
// device code, the code expires, or ctx is cancelled. The wait between polls
// is the client's poll interval.
func (c *Client) WaitForAccessToken(ctx context.Context, login *DeviceLoginResponse) (string, error) {
	payload := map[string]string{"code": login.DeviceCode}

	for attempt := 1; ; attempt++ {
		c.logger.Debugf("token polling attempt #%d", attempt)

		request, err := c.newRequest(ctx, http.MethodPost, login.TokenURI, payload, false)
		if err != nil {
			return "", err
		}
		status, body, err := c.do(request)
		if err != nil {
			return "", err
		}

		if status == http.StatusBadRequest {
			var response struct {
				Detail string `json:"detail"`
			}
			if err := json.Unmarshal(body, &response); err == nil {
				switch response.Detail {
				case "authorization_pending":
					select {
					case <-ctx.Done():
						return "", ctx.Err()
					case <-time.After(c.pollInterval):
					}
					continue
				case "authorization_expired":
					return "", fmt.Errorf("%w: this device code has expired", ErrAuthenticationExpired)
				}
			}
		}
		if status != http.StatusOK {
			return "", fmt.Errorf("token polling failed (%d): %s", status, body)
		}

		var response struct {
			AccessToken string `json:"access_token"`
		}
		if err := json.Unmarshal(body, &response); err != nil {
			return "", fmt.Errorf("error decoding token response: %w", err)
		}
		return response.AccessToken, nil
	}
}
