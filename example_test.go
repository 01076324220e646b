package studio_test

import (
	"context"
	"fmt"

	studio "github.com/iterative/studio-client-go"
)

// Example of posting the lifecycle of an experiment run
func Example_postLiveMetrics() {
	client := studio.New(
		studio.WithToken("isat_access_token"),
		studio.WithRepoURL("git@github.com:iterative/example-get-started.git"),
	)
	ctx := context.Background()

	baseline := "7d4bba9a3063672ba6cb4f83bae18377a2a22adc"

	outcome, err := client.PostLiveMetrics(ctx, studio.Event{
		Type:        studio.EventStart,
		BaselineSHA: baseline,
		Name:        "soupy-leak",
		Client:      "dvclive",
		Machine:     studio.MachineInfo(),
	})
	if err != nil {
		fmt.Printf("Error posting start event: %v\n", err)
		return
	}
	if outcome.Kind != studio.OutcomeSuccess {
		fmt.Printf("Studio rejected the event: %s\n", outcome.Kind)
		return
	}

	step := 0
	_, _ = client.PostLiveMetrics(ctx, studio.Event{
		Type:        studio.EventData,
		BaselineSHA: baseline,
		Name:        "soupy-leak",
		Client:      "dvclive",
		Step:        &step,
		Metrics: map[string]any{
			"dvclive/metrics.json": map[string]any{"data": map[string]any{"loss": 0.42}},
		},
	})

	_, _ = client.PostLiveMetrics(ctx, studio.Event{
		Type:        studio.EventDone,
		BaselineSHA: baseline,
		Name:        "soupy-leak",
		Client:      "dvclive",
	})
}

// Example of resolving model artifacts through the model registry
func Example_getDownloadURIs() {
	client := studio.New(studio.WithToken("isat_access_token"))

	uris, err := client.GetDownloadURIs(
		context.Background(),
		"git@github.com:iterative/example-get-started.git",
		"text-classifier",
		studio.WithStage("prod"),
	)
	if err != nil {
		fmt.Printf("Error getting download uris: %v\n", err)
		return
	}
	for artifact, uri := range uris {
		fmt.Printf("%s -> %s\n", artifact, uri)
	}
}
