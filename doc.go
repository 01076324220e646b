// Package studio implements a client for the Studio API.
//
// The client covers three surfaces:
//   - Live metrics: posting start/data/done events while an experiment runs
//   - Model registry: resolving model names to artifact download URIs
//   - Device login: obtaining an access token through the device flow
//
// Configuration is resolved from explicit options, environment variables
// (DVC_STUDIO_TOKEN, DVC_STUDIO_URL, DVC_STUDIO_REPO_URL and their legacy
// counterparts) and an optional YAML config file, in that order. When no
// token or repo URL can be resolved, live-metrics posts are skipped without
// touching the network and report a missing-credentials outcome.
//
// Features:
//   - Single-attempt requests with a bounded timeout, no retries
//   - HTTP rejections classified into outcomes instead of errors
//   - Offline mode that suppresses all network calls
//   - Structured logging
//
// All calls are synchronous and a Client may be shared between goroutines.
package studio
