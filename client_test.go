package studio

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	clearEnv(t)
	stubRemoteURL(t, "")

	client := New()
	require.NotNil(t, client.http)
	assert.Equal(t, defaultTimeout, client.http.Timeout)
	assert.NotNil(t, client.logger)
	assert.Equal(t, defaultPollInterval, client.pollInterval)
	assert.Empty(t, client.Config().Token)
}

func TestNewResolvesConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvToken, "ENV_TOKEN")

	client := New(WithRepoURL("FOO_REPO_URL"))
	assert.Equal(t, "ENV_TOKEN", client.Config().Token)
	assert.Equal(t, "FOO_REPO_URL", client.Config().RepoURL)
	assert.Equal(t, DefaultURL, client.Config().URL)
}

func TestWithConfigFallback(t *testing.T) {
	clearEnv(t)

	client := New(WithConfig(Config{Token: "FILE_TOKEN", RepoURL: "FILE_REPO_URL", URL: "FILE_URL"}))
	assert.Equal(t, Config{Token: "FILE_TOKEN", RepoURL: "FILE_REPO_URL", URL: "FILE_URL"}, client.Config())
}

func TestWithHTTPClient(t *testing.T) {
	clearEnv(t)
	stubRemoteURL(t, "")

	custom := &http.Client{Timeout: time.Second}
	client := New(WithHTTPClient(custom))
	assert.Same(t, custom, client.http)
}

func TestEndpointJoinsCleanly(t *testing.T) {
	clearEnv(t)
	stubRemoteURL(t, "")

	client := New(WithURL("https://studio.example.com/"), WithToken("t"), WithRepoURL("r"))
	assert.Equal(t, "https://studio.example.com/api/live", client.endpoint(liveEndpoint))

	client = New(WithToken("t"), WithRepoURL("r"))
	assert.Equal(t, DefaultURL+"/api/live", client.endpoint(liveEndpoint))
}
