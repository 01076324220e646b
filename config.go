package studio

import (
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultURL is the Studio SaaS endpoint used when no URL is configured.
const DefaultURL = "https://studio.iterative.ai"

// Environment variables consulted when a setting is not passed explicitly.
const (
	EnvToken   = "DVC_STUDIO_TOKEN"
	EnvURL     = "DVC_STUDIO_URL"
	EnvRepoURL = "DVC_STUDIO_REPO_URL"
	EnvOffline = "DVC_STUDIO_OFFLINE"

	// Legacy variable names kept for older setups.
	EnvLegacyToken   = "STUDIO_TOKEN"
	EnvLegacyRepoURL = "STUDIO_REPO_URL"
)

// Config holds the connection settings for Studio.
type Config struct {
	// Token is the Studio access token obtained from the UI or device login
	Token string `yaml:"token"`

	// URL is the base URL of Studio (set it for self-hosted instances)
	URL string `yaml:"url"`

	// RepoURL is the URL of the Git repository imported into Studio
	RepoURL string `yaml:"repo_url"`

	// Offline disables all network calls when true
	Offline bool `yaml:"offline"`
}

// truthyRe matches the spellings accepted for the offline environment variable.
var truthyRe = regexp.MustCompile(`(?i)1|y|yes|true`)

// remoteURL is swapped out in tests to avoid depending on the local git state.
var remoteURL = gitRemoteURL

// ResolveConfig builds the effective configuration. Each field is taken from
// the explicit value first, then from the environment (new names before
// legacy ones), then from the fallback layer, typically a config file.
//
// The returned config has an empty token or repo URL when neither source
// provides one. When no repo URL is configured anywhere, the URL of the
// current repository's git remote is used if a token is present.
func ResolveConfig(explicit, fallback Config) Config {
	config := Config{
		Offline: explicit.Offline || truthy(os.Getenv(EnvOffline)) || fallback.Offline,
	}
	if config.Offline {
		return config
	}

	config.URL = firstOf(explicit.URL, os.Getenv(EnvURL), fallback.URL, DefaultURL)

	config.Token = firstOf(explicit.Token, os.Getenv(EnvToken), os.Getenv(EnvLegacyToken), fallback.Token)
	if config.Token == "" {
		// Nothing can be posted without a token, so the git remote is not
		// consulted and the repo URL is left unresolved.
		return config
	}

	config.RepoURL = firstOf(explicit.RepoURL, os.Getenv(EnvRepoURL), os.Getenv(EnvLegacyRepoURL), fallback.RepoURL)
	if config.RepoURL == "" {
		config.RepoURL = remoteURL()
	}

	return config
}

// LoadConfigFile reads a YAML config file with the same field names the
// environment variables cover: token, url, repo_url and offline.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("error reading config file: %w", err)
	}
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("error parsing config file: %w", err)
	}
	return config, nil
}

func firstOf(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

func truthy(value string) bool {
	return value != "" && truthyRe.MatchString(value)
}

// gitRemoteURL asks git for the remote URL of the repository in the working
// directory. Returns an empty string when there is no repository or remote.
func gitRemoteURL() string {
	out, err := exec.Command("git", "ls-remote", "--get-url").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
