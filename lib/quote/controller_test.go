package quote

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"quantovale/lib/pricing"

	"github.com/stretchr/testify/require"
)

type recordingTelemetry struct {
	mu       sync.Mutex
	broken   []string
	warnings []string
	counts   map[string]int64
}

func (r *recordingTelemetry) ReportBroken(id string, params ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.broken = append(r.broken, id)
}
func (r *recordingTelemetry) ReportWarning(id string, params ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, id)
}
func (r *recordingTelemetry) ReportDebug(msg string, params ...any) {}
func (r *recordingTelemetry) ReportCount(id string, count int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.counts == nil {
		r.counts = map[string]int64{}
	}
	r.counts[id] = count
}

// fakeEstimator answers every call with the same estimate/error and records
// the queries it received.
type fakeEstimator struct {
	mu      sync.Mutex
	queries []pricing.Query
	est     pricing.Estimate
	err     error
}

func (f *fakeEstimator) Estimate(_ context.Context, q pricing.Query) (pricing.Estimate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	return f.est, f.err
}

func fill(c *Controller, product, year, condition string) {
	c.UpdateField(FieldProduct, product)
	c.UpdateField(FieldPurchaseYear, year)
	c.UpdateField(FieldCondition, condition)
}

func TestControllerSuccess(t *testing.T) {
	est := &fakeEstimator{est: pricing.Estimate{AveragePrice: 312.7}}
	c := NewController(est, nil)
	fill(c, "PlayStation 5", "2020", ConditionGood)

	s := c.Submit(context.Background())
	require.Equal(t, Success, s.Status)
	require.Equal(t, "€313", c.Display().Price)
	require.Equal(t, []pricing.Query{
		{Product: "PlayStation 5", PurchaseYear: "2020", Condition: "bom"},
	}, est.queries)
}

func TestControllerValidationMakesNoCall(t *testing.T) {
	est := &fakeEstimator{est: pricing.Estimate{AveragePrice: 10}}
	c := NewController(est, nil)
	fill(c, "", "2020", ConditionGood)

	s := c.Submit(context.Background())
	require.Equal(t, Failed, s.Status)
	require.Equal(t, ValidationError, s.Err.Kind)
	require.Equal(t, MessageRequired, s.Err.Message)
	require.Empty(t, est.queries)
}

func TestControllerFailures(t *testing.T) {
	testCases := []struct {
		name    string
		err     error
		message string
	}{
		{
			name:    "missing price",
			err:     fmt.Errorf("%w: average_price missing", pricing.ErrNoPrice),
			message: MessageNoPrice,
		},
		{
			name:    "unreachable",
			err:     fmt.Errorf("%w: connection refused", pricing.ErrUnreachable),
			message: MessageUnreachable,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			tel := &recordingTelemetry{}
			c := NewController(&fakeEstimator{err: test.err}, tel)
			fill(c, "ps5", "2020", ConditionNew)

			s := c.Submit(context.Background())
			require.Equal(t, Failed, s.Status)
			require.Equal(t, RequestError, s.Err.Kind)
			require.Equal(t, test.message, s.Err.Message)
			require.Equal(t, test.message, c.Display().Error)
			require.Equal(t, []string{"quote:controller.submit"}, tel.warnings)
			require.Empty(t, tel.broken)
		})
	}
}

func TestControllerUnexpectedError(t *testing.T) {
	tel := &recordingTelemetry{}
	c := NewController(&fakeEstimator{err: errors.New("estimator exploded")}, tel)
	fill(c, "ps5", "2020", ConditionNew)

	s := c.Submit(context.Background())
	require.Equal(t, MessageUnreachable, s.Err.Message)
	require.Equal(t, []string{"quote:controller.submit"}, tel.broken)
	require.Empty(t, tel.warnings)
}

func TestControllerIdempotentSubmit(t *testing.T) {
	c := NewController(&fakeEstimator{est: pricing.Estimate{AveragePrice: 99.5}}, nil)
	fill(c, "Nintendo Switch", "2019", ConditionAcceptable)

	first := c.Submit(context.Background())
	second := c.Submit(context.Background())

	require.Equal(t, first.Status, second.Status)
	require.Equal(t, first.Result, second.Result)
	require.Equal(t, Render(first), Render(second))
	require.Equal(t, first.Seq+1, second.Seq)
}

// blockingEstimator holds every call until released, so a test can order
// responses however it likes.
type blockingEstimator struct {
	started chan pricing.Query
	release map[string]chan pricing.Estimate
}

func (b *blockingEstimator) Estimate(ctx context.Context, q pricing.Query) (pricing.Estimate, error) {
	b.started <- q
	select {
	case est := <-b.release[q.Product]:
		return est, nil
	case <-ctx.Done():
		return pricing.Estimate{}, ctx.Err()
	}
}

func TestControllerDiscardsOutOfOrderResponse(t *testing.T) {
	est := &blockingEstimator{
		started: make(chan pricing.Query),
		release: map[string]chan pricing.Estimate{
			"slow": make(chan pricing.Estimate),
			"fast": make(chan pricing.Estimate),
		},
	}
	tel := &recordingTelemetry{}
	c := NewController(est, tel)
	fill(c, "slow", "2020", ConditionGood)

	slowDone := make(chan State)
	go func() { slowDone <- c.Submit(context.Background()) }()
	<-est.started

	// edits during flight do not touch the captured request
	c.UpdateField(FieldProduct, "fast")
	require.Equal(t, InFlight, c.State().Status)

	fastDone := make(chan State)
	go func() { fastDone <- c.Submit(context.Background()) }()
	q := <-est.started
	require.Equal(t, "fast", q.Product)

	est.release["fast"] <- pricing.Estimate{AveragePrice: 200}
	fast := <-fastDone
	require.Equal(t, Success, fast.Status)
	require.Equal(t, 200.0, fast.Result.EstimatedPrice)

	est.release["slow"] <- pricing.Estimate{AveragePrice: 100}
	slow := <-slowDone
	require.Equal(t, fast, slow)
	require.Equal(t, fast, c.State())
	require.Equal(t, map[string]int64{"quote:controller.stale": 1}, tel.counts)
}

func TestControllerWithPricingClient(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("query") {
		case "PlayStation 5":
			w.Write([]byte(`{"average_price": 312.7, "ads_count": 40}`)) //nolint:errcheck
		default:
			w.Write([]byte(`{}`)) //nolint:errcheck
		}
	}))
	defer srv.Close()

	c := NewController(pricing.New(pricing.Options{BaseUrl: srv.URL}), nil)

	fill(c, "PlayStation 5", "2020", ConditionGood)
	s := c.Submit(context.Background())
	require.Equal(t, Success, s.Status)
	require.Equal(t, "€313", Render(s).Price)
	require.Equal(t, 40, *s.Result.Details.AdsCount)

	c.UpdateField(FieldProduct, "unknown thing")
	s = c.Submit(context.Background())
	require.Equal(t, Failed, s.Status)
	require.Equal(t, MessageNoPrice, s.Err.Message)

	c.UpdateField(FieldPurchaseYear, "")
	s = c.Submit(context.Background())
	require.Equal(t, MessageRequired, s.Err.Message)
	require.EqualValues(t, 2, calls.Load())
}

func TestControllerConnectionRefused(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	c := NewController(pricing.New(pricing.Options{BaseUrl: "http://" + addr}), nil)
	fill(c, "PlayStation 5", "2020", ConditionGood)

	s := c.Submit(context.Background())
	require.Equal(t, Failed, s.Status)
	require.Equal(t, MessageUnreachable, s.Err.Message)
}
