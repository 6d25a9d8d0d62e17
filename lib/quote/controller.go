package quote

import (
	"context"
	"errors"
	"sync"

	"quantovale/lib/pricing"
	"quantovale/lib/telemetry"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Estimator is anything that can price a product, *pricing.Client in
// production.
type Estimator interface {
	Estimate(ctx context.Context, q pricing.Query) (pricing.Estimate, error)
}

// Controller owns a State and runs the pricing call for each submission.
// It is safe for concurrent use, the lock is never held across the call.
type Controller struct {
	estimator Estimator
	tel       telemetry.API

	mu    sync.Mutex
	state State
	stale int64
}

// NewController creates a Controller in the Idle state. tel may be nil.
func NewController(estimator Estimator, tel telemetry.API) *Controller {
	if tel == nil {
		tel = telemetry.SlogAPI{}
	}
	return &Controller{
		estimator: estimator,
		tel:       telemetry.NewScopedAPI("quote", tel),
		state:     NewState(),
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Display() Display {
	return Render(c.State())
}

func (c *Controller) UpdateField(field Field, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = c.state.WithField(field, value)
}

// Submit validates the current request, performs at most one pricing call
// and returns the state right after this submission resolved. If a newer
// submission started in the meantime, the returned state is the newer one
// and this call's outcome has been discarded.
func (c *Controller) Submit(ctx context.Context) State {
	ctx, span := tracer.Start(ctx, "quote.submit")
	defer span.End()

	c.mu.Lock()
	next, call := c.state.Begin()
	c.state = next
	c.mu.Unlock()

	if call == nil {
		c.record(ctx, span, next)
		return next
	}

	span.SetAttributes(
		attribute.Int64("quote.seq", int64(call.Seq)),
		attribute.String("quote.condition", call.Request.Condition),
	)
	c.tel.ReportDebug("controller.submit", call.Seq, call.Request.ProductQuery)

	est, err := c.estimator.Estimate(ctx, call.Request.query())

	c.mu.Lock()
	stale := !c.state.Accepts(call.Seq)
	c.state = c.state.Resolve(call.Seq, est, err)
	out := c.state
	if stale {
		c.stale++
	}
	staleCount := c.stale
	c.mu.Unlock()

	if stale {
		c.tel.ReportCount("controller.stale", staleCount)
		span.SetAttributes(attribute.Bool("quote.stale", true))
		return out
	}
	switch {
	case err == nil:
	case errors.Is(err, pricing.ErrUnreachable), errors.Is(err, pricing.ErrNoPrice):
		c.tel.ReportWarning("controller.submit", err)
	default:
		// the estimator broke its contract, the user still sees the
		// unreachable message
		c.tel.ReportBroken("controller.submit", err)
	}
	c.record(ctx, span, out)
	return out
}

func (c *Controller) record(ctx context.Context, span trace.Span, s State) {
	submissions.Add(ctx, 1, metric.WithAttributes(attribute.String("status", s.Status.String())))
	if s.Status == Failed && s.Err != nil {
		span.SetStatus(codes.Error, s.Err.Message)
	}
}
