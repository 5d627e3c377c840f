package epigraph

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/epigraph/internal/compiler"
	"github.com/aretw0/epigraph/internal/logging"
	"github.com/aretw0/epigraph/internal/validator"
	"github.com/aretw0/epigraph/pkg/domain"
	"github.com/aretw0/epigraph/pkg/params"
	"github.com/aretw0/epigraph/pkg/ports"
	"github.com/aretw0/epigraph/pkg/registry"
)

// Builder is the high-level entry point of the library. It runs the
// validation → registry → compilation pipeline for a parameter set.
// A Builder holds no per-build state and may be used from several goroutines.
type Builder struct {
	logger *slog.Logger
	hooks  domain.BuildHooks
	store  ports.ModelStore
}

// Option defines a functional option for configuring the Builder.
type Option func(*Builder)

// WithLogger sets a custom structured logger for status messages.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// WithHooks registers observability hooks. Repeated calls merge the hooks.
func WithHooks(hooks domain.BuildHooks) Option {
	return func(b *Builder) {
		b.hooks = b.hooks.Merge(hooks)
	}
}

// WithStore enables a model cache keyed by parameter fingerprint.
func WithStore(store ports.ModelStore) Option {
	return func(b *Builder) {
		b.store = store
	}
}

// New initializes a Builder.
func New(opts ...Option) *Builder {
	b := &Builder{}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = logging.NewNop()
	}
	return b
}

// Validate checks p without building anything.
func (b *Builder) Validate(p params.Parameters) error {
	return validator.Validate(p)
}

// Build compiles p into an immutable Model. Configuration errors are returned
// before any compartment is generated.
func (b *Builder) Build(ctx context.Context, p params.Parameters) (*domain.Model, error) {
	start := time.Now()
	fingerprint := p.Fingerprint()
	logger := b.logger.With("fingerprint", fingerprint[:12])

	fail := func(err error) (*domain.Model, error) {
		b.emit(ctx, b.hooks.OnBuildFailed, &domain.BuildEvent{
			EventBase: b.event(domain.EventBuildFailed, fingerprint),
			Elapsed:   time.Since(start),
			Err:       err,
		})
		return nil, err
	}

	if err := validator.Validate(p); err != nil {
		logger.Error("invalid configuration", "error", err)
		return fail(fmt.Errorf("invalid configuration: %w", err))
	}
	logger.Info("initialization was done properly")
	b.emit(ctx, b.hooks.OnValidated, &domain.BuildEvent{EventBase: b.event(domain.EventValidated, fingerprint)})

	if b.store != nil {
		model, err := b.store.Load(ctx, fingerprint)
		switch {
		case err == nil:
			logger.Info("model loaded from store", "compartments", model.Len(), "transitions", len(model.Transitions()))
			b.emit(ctx, b.hooks.OnTransitionsCreated, &domain.BuildEvent{
				EventBase:    b.event(domain.EventTransitionsCreated, fingerprint),
				Compartments: model.Len(),
				Transitions:  len(model.Transitions()),
				Cached:       true,
				Elapsed:      time.Since(start),
			})
			return model, nil
		case !errors.Is(err, domain.ErrModelNotFound):
			// A broken cache must not block compilation.
			logger.Warn("model store lookup failed", "error", err)
		}
	}

	reg, err := registry.New(p)
	if err != nil {
		logger.Error("state generation failed", "error", err)
		return fail(fmt.Errorf("failed to create states: %w", err))
	}
	for _, r := range reg.Redirects() {
		logger.Warn("initial count moved past empty chain", "field", r.Field, "to", r.To, "count", r.Count)
	}
	logger.Info("states were created", "compartments", reg.Len(), "chains", reg.Lengths())
	b.emit(ctx, b.hooks.OnStatesCreated, &domain.BuildEvent{
		EventBase:    b.event(domain.EventStatesCreated, fingerprint),
		Compartments: reg.Len(),
	})

	transitions, err := compiler.Compile(p, reg)
	if err != nil {
		logger.Error("transition generation failed", "error", err)
		return fail(fmt.Errorf("failed to create transitions: %w", err))
	}

	compartments := reg.Compartments()
	if unreachable := compiler.Unreachable(compartments, transitions); len(unreachable) > 0 {
		logger.Debug("compartments unreachable from Susceptible", "names", unreachable)
	}

	model := domain.NewModel(compartments, transitions, reg.Lengths(), p.SimulationSteps(), p.Seed)
	logger.Info("state transitions were created", "transitions", len(transitions))
	b.emit(ctx, b.hooks.OnTransitionsCreated, &domain.BuildEvent{
		EventBase:    b.event(domain.EventTransitionsCreated, fingerprint),
		Compartments: model.Len(),
		Transitions:  len(transitions),
		Elapsed:      time.Since(start),
	})

	if b.store != nil {
		if err := b.store.Save(ctx, fingerprint, model); err != nil {
			logger.Warn("failed to store model", "error", err)
		}
	}

	return model, nil
}

func (b *Builder) event(typ domain.EventType, fingerprint string) domain.EventBase {
	return domain.EventBase{Timestamp: time.Now(), Type: typ, Fingerprint: fingerprint}
}

func (b *Builder) emit(ctx context.Context, hook func(context.Context, *domain.BuildEvent), e *domain.BuildEvent) {
	if hook != nil {
		hook(ctx, e)
	}
}

// Build compiles p with a default Builder.
func Build(ctx context.Context, p params.Parameters) (*domain.Model, error) {
	return New().Build(ctx, p)
}

// MustBuild is like Build but panics on error. Intended for tests and examples
// with hard-coded parameters.
func MustBuild(p params.Parameters) *domain.Model {
	model, err := Build(context.Background(), p)
	if err != nil {
		panic(err)
	}
	return model
}
