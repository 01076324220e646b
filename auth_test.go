package studio

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartDeviceLogin(t *testing.T) {
	clearEnv(t)
	srv := newServer(t)
	client := New(WithURL(srv.URL))

	login, err := client.StartDeviceLogin(context.Background(), DeviceLoginRequest{
		TokenName: "random-name",
		Scopes:    []string{"experiments"},
	})
	require.NoError(t, err)
	assert.Equal(t, "random-value", login.DeviceCode)
	assert.Equal(t, "MOCKCODE", login.UserCode)
	assert.Equal(t, srv.URL+"/api/device-login/token", login.TokenURI)
	assert.Equal(t, "random-name", login.TokenName)

	requests := srv.Requests()
	require.Len(t, requests, 1)
	var body map[string]any
	require.NoError(t, json.Unmarshal(requests[0].Body, &body))
	assert.Equal(t, map[string]any{
		"client_name": "client",
		"token_name":  "random-name",
		"scopes":      []any{"experiments"},
	}, body)
}

func TestStartDeviceLoginInvalidScopes(t *testing.T) {
	clearEnv(t)
	srv := newServer(t)
	client := New(WithURL(srv.URL))

	_, err := client.StartDeviceLogin(context.Background(), DeviceLoginRequest{
		Scopes: []string{"experiments", "bogus"},
	})
	assert.ErrorIs(t, err, ErrInvalidScopes)
	assert.Zero(t, srv.Calls(""))
}

func TestWaitForAccessToken(t *testing.T) {
	clearEnv(t)
	srv := newServer(t)
	srv.PendingPolls = 1
	client := New(WithURL(srv.URL), WithPollInterval(time.Millisecond))

	login, err := client.StartDeviceLogin(context.Background(), DeviceLoginRequest{})
	require.NoError(t, err)

	token, err := client.WaitForAccessToken(context.Background(), login)
	require.NoError(t, err)
	assert.Equal(t, "isat_access_token", token)
	// one pending reply, then the grant
	assert.Equal(t, 2, srv.Calls("/api/device-login/token"))
}

func TestWaitForAccessTokenExpired(t *testing.T) {
	clearEnv(t)
	srv := newServer(t)
	srv.Expired = true
	client := New(WithURL(srv.URL), WithPollInterval(time.Millisecond))

	login, err := client.StartDeviceLogin(context.Background(), DeviceLoginRequest{})
	require.NoError(t, err)

	_, err = client.WaitForAccessToken(context.Background(), login)
	assert.ErrorIs(t, err, ErrAuthenticationExpired)
}

func TestWaitForAccessTokenCancelled(t *testing.T) {
	clearEnv(t)
	srv := newServer(t)
	srv.PendingPolls = 1000
	client := New(WithURL(srv.URL), WithPollInterval(time.Hour))

	login, err := client.StartDeviceLogin(context.Background(), DeviceLoginRequest{})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = client.WaitForAccessToken(ctx, login)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
