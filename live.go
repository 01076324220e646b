package studio

import (
	"context"
	"net/http"
)

// liveEndpoint receives experiment events.
const liveEndpoint = "/api/live"

// PostLiveMetrics posts one live-metrics event to Studio.
//
// Validation problems (unknown event type, malformed baseline sha, a data
// event without a step) are returned as errors before any network traffic.
// When no token or repo URL is configured, or offline mode is enabled, the
// request is skipped and the returned Outcome says so; this is not an error.
// Transport failures are returned as errors. HTTP-level rejections are
// classified into the Outcome instead of being turned into errors, so
// callers branch on Outcome.Kind.
func (c *Client) PostLiveMetrics(ctx context.Context, event Event) (Outcome, error) {
	if err := event.validate(); err != nil {
		return Outcome{}, err
	}

	if c.cfg.Offline {
		c.logger.Debugf("offline mode enabled, skipping %s event", event.Type)
		return Outcome{Kind: OutcomeOffline}, nil
	}
	if c.cfg.Token == "" || c.cfg.RepoURL == "" {
		c.logger.Debugf("studio token or repo url not configured, skipping %s event", event.Type)
		return Outcome{Kind: OutcomeMissingCredentials}, nil
	}

	body := event.wireBody(c.cfg.RepoURL)
	c.logger.Infof("posting %s event for experiment %q", event.Type, event.Name)

	request, err := c.newRequest(ctx, http.MethodPost, c.endpoint(liveEndpoint), body, true)
	if err != nil {
		return Outcome{}, err
	}
	status, respBody, err := c.do(request)
	if err != nil {
		return Outcome{}, err
	}

	outcome := classify(status, respBody)
	if outcome.Kind != OutcomeSuccess {
		c.logger.Debugf("live metrics post returned %d (%s): %s", status, outcome.Kind, respBody)
	}
	return outcome, nil
}
