package studio

import (
	"bytes"
	"net/http"
)

// OutcomeKind classifies the Studio response to a live-metrics post.
type OutcomeKind int

const (
	// OutcomeNone is the zero value: no request was classified, which is
	// what an Outcome returned alongside an error carries.
	OutcomeNone OutcomeKind = iota

	// OutcomeUnknownError covers every response not listed below.
	OutcomeUnknownError

	// OutcomeSuccess means Studio accepted the event.
	OutcomeSuccess

	// OutcomeMissingCredentials means no token or repo URL was configured
	// and no request was sent.
	OutcomeMissingCredentials

	// OutcomeOffline means offline mode is enabled and no request was sent.
	OutcomeOffline

	// OutcomeInvalidToken means Studio rejected the access token.
	OutcomeInvalidToken

	// OutcomeNotFound means the repository is not known to Studio.
	OutcomeNotFound

	// OutcomeAlreadyExists means an experiment with the same baseline sha
	// and name was already registered.
	OutcomeAlreadyExists
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeMissingCredentials:
		return "missing credentials"
	case OutcomeOffline:
		return "offline"
	case OutcomeInvalidToken:
		return "invalid token"
	case OutcomeNotFound:
		return "not found"
	case OutcomeAlreadyExists:
		return "already exists"
	case OutcomeUnknownError:
		return "unknown error"
	default:
		return "none"
	}
}

// Outcome is the classified result of a live-metrics post. StatusCode and
// Body are zero when no request was sent; Body carries the raw response for
// caller-side diagnostics otherwise.
type Outcome struct {
	Kind       OutcomeKind
	StatusCode int
	Body       []byte
}

// Sent reports whether a request actually went out to Studio.
func (o Outcome) Sent() bool {
	switch o.Kind {
	case OutcomeNone, OutcomeMissingCredentials, OutcomeOffline:
		return false
	}
	return true
}

// alreadyExistsMarker is the body fragment Studio includes in a 400 response
// when the experiment was registered before.
const alreadyExistsMarker = "already exists"

func classify(status int, body []byte) Outcome {
	outcome := Outcome{StatusCode: status, Body: body}
	switch {
	case status == http.StatusOK:
		outcome.Kind = OutcomeSuccess
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		outcome.Kind = OutcomeInvalidToken
	case status == http.StatusNotFound:
		outcome.Kind = OutcomeNotFound
	case status == http.StatusBadRequest && bytes.Contains(bytes.ToLower(body), []byte(alreadyExistsMarker)):
		outcome.Kind = OutcomeAlreadyExists
	default:
		outcome.Kind = OutcomeUnknownError
	}
	return outcome
}
