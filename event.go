package studio

import (
	"fmt"
	"regexp"
	"strings"
)

// EventType is the kind of live-metrics update being posted.
type EventType string

const (
	// EventStart marks the beginning of an experiment run.
	EventStart EventType = "start"

	// EventData carries metric, param and plot updates for one step.
	EventData EventType = "data"

	// EventDone marks the end of an experiment run.
	EventDone EventType = "done"
)

// maxMessageLength is the server-side limit for the optional commit message.
const maxMessageLength = 72

var baselineSHARe = regexp.MustCompile(`^[0-9a-h]{40}$`)

// Event describes one live-metrics update.
//
// BaselineSHA together with Name uniquely identifies the experiment.
type Event struct {
	// Type is the kind of the event (start, data or done)
	Type EventType

	// BaselineSHA is the 40 character sha of the commit the experiment starts from
	BaselineSHA string

	// Name is the experiment name
	Name string

	// Client identifies the tool posting the event
	Client string

	// Message is an optional commit-style message, truncated on the wire
	Message string

	// ExperimentRev is the sha of the revision created for the experiment,
	// only sent with done events
	ExperimentRev string

	// Step is the training-loop step, required for data events
	Step *int

	// Params maps param file paths to their updated contents
	Params map[string]any

	// Metrics maps metric file paths to their updated contents,
	// only sent with data and done events
	Metrics map[string]any

	// Plots maps plot file paths to their updated contents,
	// only sent with data events
	Plots map[string]any

	// Machine is an optional snapshot of the machine running the experiment
	Machine map[string]any
}

// liveRequest is the wire form of an Event. Optional fields are omitted
// instead of being sent as nulls.
type liveRequest struct {
	Type          string         `json:"type"`
	RepoURL       string         `json:"repo_url"`
	BaselineSHA   string         `json:"baseline_sha"`
	Name          string         `json:"name,omitempty"`
	Client        string         `json:"client,omitempty"`
	Message       string         `json:"message,omitempty"`
	Params        map[string]any `json:"params,omitempty"`
	Machine       map[string]any `json:"machine,omitempty"`
	Step          *int           `json:"step,omitempty"`
	Metrics       map[string]any `json:"metrics,omitempty"`
	Plots         map[string]any `json:"plots,omitempty"`
	ExperimentRev string         `json:"experiment_rev,omitempty"`
}

func (e Event) validate() error {
	switch e.Type {
	case EventStart, EventData, EventDone:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidEventType, e.Type)
	}
	if !baselineSHARe.MatchString(strings.ToLower(e.BaselineSHA)) {
		return fmt.Errorf("%w: expected a length 40 commit sha, got %q", ErrInvalidBaselineSHA, e.BaselineSHA)
	}
	if e.Type == EventData && e.Step == nil {
		return ErrMissingStep
	}
	if e.Type == EventDone && e.ExperimentRev != "" &&
		!baselineSHARe.MatchString(strings.ToLower(e.ExperimentRev)) {
		return fmt.Errorf("%w: expected a length 40 commit sha, got %q", ErrInvalidBaselineSHA, e.ExperimentRev)
	}
	return nil
}

// wireBody shapes the event for the live endpoint. Fields that do not apply
// to the event type are dropped even when set.
func (e Event) wireBody(repoURL string) liveRequest {
	body := liveRequest{
		Type:        string(e.Type),
		RepoURL:     repoURL,
		BaselineSHA: strings.ToLower(e.BaselineSHA),
		Name:        e.Name,
		Client:      e.Client,
		Message:     truncate(e.Message, maxMessageLength),
		Params:      e.Params,
		Machine:     e.Machine,
	}
	switch e.Type {
	case EventData:
		body.Step = e.Step
		body.Metrics = e.Metrics
		body.Plots = e.Plots
	case EventDone:
		body.ExperimentRev = strings.ToLower(e.ExperimentRev)
		body.Metrics = e.Metrics
	}
	return body
}

// truncate cuts s to at most limit characters without splitting a rune.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) > limit {
		return string(runes[:limit])
	}
	return s
}
