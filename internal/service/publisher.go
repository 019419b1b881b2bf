package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pkordes/trip-builder/internal/domain"
)

var tracer = otel.Tracer("github.com/pkordes/trip-builder/internal/service")

// Publisher persists a trip snapshot. The store's responsibility ends at
// calling it and reflecting the outcome in IsLoading / IsPublished.
type Publisher interface {
	Publish(ctx context.Context, trip domain.Trip) error
	SaveDraft(ctx context.Context, trip domain.Trip) error
}

// PublishTrip marks the trip published once the publisher accepts it.
// IsLoading is true while the publisher runs. The lock is not held during
// that wait, so other actions proceed; overlapping publishes are not
// coalesced and the last one to finish wins.
func (b *TripBuilder) PublishTrip(ctx context.Context) error {
	return b.persist(ctx, "PublishTrip", true)
}

// SaveDraft hands the trip to the publisher without publishing it.
func (b *TripBuilder) SaveDraft(ctx context.Context) error {
	return b.persist(ctx, "SaveDraft", false)
}

func (b *TripBuilder) persist(ctx context.Context, action string, publish bool) error {
	b.mu.Lock()
	b.state.IsLoading = true
	snapshot := b.state.CurrentTrip.Clone()
	b.mu.Unlock()

	ctx, span := tracer.Start(ctx, "TripBuilder."+action, trace.WithAttributes(
		attribute.String("trip.id", snapshot.ID),
		attribute.Int("trip.days", len(snapshot.Days)),
		attribute.Int64("trip.total_price", snapshot.TotalPrice),
	))
	defer span.End()

	start := time.Now()
	var err error
	if publish {
		snapshot.IsPublished = true
		snapshot.UpdatedAt = b.now()
		err = b.publisher.Publish(ctx, snapshot)
	} else {
		err = b.publisher.SaveDraft(ctx, snapshot)
	}
	b.rec.Publish(action, time.Since(start), err)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.IsLoading = false
	b.rec.Action(action, err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		b.log.ErrorContext(ctx, "trip persistence failed",
			"action", action,
			"trip_id", snapshot.ID,
			"error", err,
		)
		return fmt.Errorf("service.TripBuilder.%s: %w", action, err)
	}

	// Only publishing changes the trip itself; a draft save leaves it as is.
	if publish {
		b.state.CurrentTrip.IsPublished = true
		b.state.CurrentTrip.UpdatedAt = b.now()
	}
	b.log.InfoContext(ctx, "trip persisted", "action", action, "trip_id", snapshot.ID)
	return nil
}

// ---- simulated -------------------------------------------------------------

// SimulatedPublisher stands in for a backend: it waits Delay and succeeds.
type SimulatedPublisher struct {
	Delay time.Duration
}

func (p SimulatedPublisher) Publish(ctx context.Context, _ domain.Trip) error {
	return p.wait(ctx)
}

func (p SimulatedPublisher) SaveDraft(ctx context.Context, _ domain.Trip) error {
	return p.wait(ctx)
}

func (p SimulatedPublisher) wait(ctx context.Context) error {
	t := time.NewTimer(p.Delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// ---- repository-backed -----------------------------------------------------

// TripSaver is the slice of repo.TripRepo the publisher needs.
type TripSaver interface {
	Save(ctx context.Context, trip domain.Trip) (domain.Trip, error)
}

// RetryConfig tunes RepoPublisher.
type RetryConfig struct {
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration

	// BreakerTimeout is how long the breaker stays open before letting a
	// trial request through.
	BreakerTimeout time.Duration
	// BreakerFailures is the number of consecutive failures that opens it.
	BreakerFailures uint32
}

// DefaultRetryConfig returns the production retry settings.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:      3,
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     2 * time.Second,
		BreakerTimeout:  30 * time.Second,
		BreakerFailures: 5,
	}
}

// RepoPublisher saves trips through a TripSaver with exponential-backoff
// retries behind a circuit breaker. Validation errors and an open breaker
// are not retried.
type RepoPublisher struct {
	repo    TripSaver
	breaker *gobreaker.CircuitBreaker[domain.Trip]
	cfg     RetryConfig
}

// NewRepoPublisher constructs a RepoPublisher.
func NewRepoPublisher(r TripSaver, cfg RetryConfig) *RepoPublisher {
	failures := cfg.BreakerFailures
	breaker := gobreaker.NewCircuitBreaker[domain.Trip](gobreaker.Settings{
		Name:        "trip-publisher",
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= failures
		},
	})
	return &RepoPublisher{repo: r, breaker: breaker, cfg: cfg}
}

func (p *RepoPublisher) Publish(ctx context.Context, trip domain.Trip) error {
	trip.IsPublished = true
	return p.save(ctx, trip)
}

func (p *RepoPublisher) SaveDraft(ctx context.Context, trip domain.Trip) error {
	return p.save(ctx, trip)
}

func (p *RepoPublisher) save(ctx context.Context, trip domain.Trip) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = p.cfg.InitialInterval
	bo.MaxInterval = p.cfg.MaxInterval
	bo.MaxElapsedTime = 0 // bounded by MaxRetries and ctx instead

	op := func() error {
		_, err := p.breaker.Execute(func() (domain.Trip, error) {
			return p.repo.Save(ctx, trip)
		})
		switch {
		case err == nil:
			return nil
		case errors.Is(err, gobreaker.ErrOpenState),
			errors.Is(err, gobreaker.ErrTooManyRequests),
			errors.Is(err, domain.ErrValidation),
			errors.Is(err, context.Canceled),
			errors.Is(err, context.DeadlineExceeded):
			return backoff.Permanent(err)
		default:
			return err
		}
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, p.cfg.MaxRetries), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return fmt.Errorf("service.RepoPublisher.save: %w", err)
	}
	return nil
}
