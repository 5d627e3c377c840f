package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventValidated          EventType = "validated"
	EventStatesCreated      EventType = "states_created"
	EventTransitionsCreated EventType = "transitions_created"
	EventBuildFailed        EventType = "build_failed"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	// Fingerprint identifies the parameter set being compiled.
	Fingerprint string `json:"fingerprint,omitempty"`
}

// BuildEvent reports progress of a single model build.
type BuildEvent struct {
	EventBase
	Compartments int           `json:"compartments,omitempty"`
	Transitions  int           `json:"transitions,omitempty"`
	Cached       bool          `json:"cached,omitempty"`
	Elapsed      time.Duration `json:"elapsed,omitempty"`
	Err          error         `json:"-"`
}

// BuildHooks defines callbacks for build observability.
// Hooks are advisory: they run synchronously and cannot alter the build.
type BuildHooks struct {
	OnValidated          func(context.Context, *BuildEvent)
	OnStatesCreated      func(context.Context, *BuildEvent)
	OnTransitionsCreated func(context.Context, *BuildEvent)
	OnBuildFailed        func(context.Context, *BuildEvent)
}

// Merge returns hooks that invoke h first and then other.
func (h BuildHooks) Merge(other BuildHooks) BuildHooks {
	return BuildHooks{
		OnValidated:          chain(h.OnValidated, other.OnValidated),
		OnStatesCreated:      chain(h.OnStatesCreated, other.OnStatesCreated),
		OnTransitionsCreated: chain(h.OnTransitionsCreated, other.OnTransitionsCreated),
		OnBuildFailed:        chain(h.OnBuildFailed, other.OnBuildFailed),
	}
}

func chain(a, b func(context.Context, *BuildEvent)) func(context.Context, *BuildEvent) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e *BuildEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
