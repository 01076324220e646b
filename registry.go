package studio

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// downloadURIsEndpoint resolves model names to artifact download URIs.
const downloadURIsEndpoint = "/api/model-registry/get-download-uris"

type registryQuery struct {
	version string
	stage   string
}

// RegistryOption narrows a model-registry lookup.
type RegistryOption func(*registryQuery)

// WithVersion requests a specific model version. Mutually exclusive with
// WithStage.
func WithVersion(version string) RegistryOption {
	return func(q *registryQuery) { q.version = version }
}

// WithStage requests the model currently assigned to a stage. Mutually
// exclusive with WithVersion.
func WithStage(stage string) RegistryOption {
	return func(q *registryQuery) { q.stage = stage }
}

type downloadURIsResponse struct {
	Models map[string]string `json:"models"`
}

// GetDownloadURIs returns the download URIs the model registry knows for the
// given repository, keyed by artifact name. The requested model name must be
// present in the response, otherwise ErrModelNotFound is returned.
func (c *Client) GetDownloadURIs(ctx context.Context, repo, name string, opts ...RegistryOption) (map[string]string, error) {
	var query registryQuery
	for _, opt := range opts {
		opt(&query)
	}
	if c.cfg.Offline || c.cfg.Token == "" {
		return nil, ErrMissingConfig
	}
	if query.version != "" && query.stage != "" {
		return nil, ErrVersionAndStage
	}

	params := url.Values{}
	params.Set("repo", repo)
	params.Set("name", name)
	if query.version != "" {
		params.Set("version", query.version)
	}
	if query.stage != "" {
		params.Set("stage", query.stage)
	}

	request, err := c.newRequest(ctx, http.MethodGet, c.endpoint(downloadURIsEndpoint)+"?"+params.Encode(), nil, true)
	if err != nil {
		return nil, err
	}
	status, body, err := c.do(request)
	if err != nil {
		return nil, fmt.Errorf("failed to reach studio api: %w", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("failed to get model download uris from studio (%d): %s", status, body)
	}

	var parsed downloadURIsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("error decoding download uris: %w", err)
	}
	if _, ok := parsed.Models[name]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrModelNotFound, name)
	}
	return parsed.Models, nil
}
