// Package pricing is a client for the QuantoVale pricing service, an HTTP
// endpoint that estimates the resale price of a used product:
//
//	GET {base}/price?query=<product>&anoCompra=<year>&estado=<condition>
//
// A successful response is a JSON object with a numeric `average_price`.
package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"quantovale/lib/restyutil"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseUrl = "http://127.0.0.1:5000"
	DefaultTimeout = 10 * time.Second

	requestIdHeader = "X-Request-Id"
)

var (
	// ErrUnreachable covers transport failures, timeouts and non-2xx statuses.
	ErrUnreachable = errors.New("pricing service unreachable")
	// ErrNoPrice is returned when a 2xx response carries no usable average_price.
	ErrNoPrice = errors.New("pricing service returned no price")
)

type Query struct {
	Product      string
	PurchaseYear string
	Condition    string
}

// Estimate mirrors the pricing service response. Only AveragePrice is
// guaranteed, the rest are diagnostics the service may or may not send.
type Estimate struct {
	Query              string   `json:"query,omitempty"`
	AveragePrice       float64  `json:"average_price"`
	AdsCount           *int     `json:"ads_count,omitempty"`
	Age                *int     `json:"age,omitempty"`
	DepreciationFactor *float64 `json:"depreciation_factor,omitempty"`
	ConditionFactor    *float64 `json:"estado_factor,omitempty"`
}

type Options struct {
	BaseUrl string
	// defaults to DefaultTimeout when zero
	Timeout time.Duration
	// maximum requests per minute, 0 means unlimited
	RatePerMinute int
	// optional, receives full request/response dumps
	Output restyutil.InstrumentOutput
}

type Client struct {
	http    *resty.Client
	limiter *rate.Limiter
}

func New(opts Options) *Client {
	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(baseUrl, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	restyutil.InstrumentClient(client, tracer, opts.Output)

	var limiter *rate.Limiter
	if opts.RatePerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.RatePerMinute)), 1)
	}

	return &Client{http: client, limiter: limiter}
}

// StatusError is returned for non-2xx responses, it matches ErrUnreachable
// under errors.Is.
type StatusError struct {
	Code int
	// the `error` field of the response body, if any
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: status %d", ErrUnreachable, e.Code)
	}
	return fmt.Sprintf("%s: status %d: %s", ErrUnreachable, e.Code, e.Message)
}

func (e *StatusError) Unwrap() error {
	return ErrUnreachable
}

type errorBody struct {
	Error string `json:"error"`
}

// the pointer distinguishes a missing field from zero.
type priceBody struct {
	AveragePrice *float64 `json:"average_price"`
}

func (c *Client) Estimate(ctx context.Context, q Query) (Estimate, error) {
	if c.limiter != nil {
		err := c.limiter.Wait(ctx)
		if err != nil {
			return Estimate{}, fmt.Errorf("%w: rate limit: %w", ErrUnreachable, err)
		}
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetHeader(requestIdHeader, uuid.NewString()).
		SetQueryParams(map[string]string{
			"query":     q.Product,
			"anoCompra": q.PurchaseYear,
			"estado":    q.Condition,
		}).
		Get("/price")
	if err != nil {
		return Estimate{}, fmt.Errorf("%w: %w", ErrUnreachable, err)
	}

	if !res.IsSuccess() {
		statusErr := &StatusError{Code: res.StatusCode()}
		var body errorBody
		if json.Unmarshal(res.Body(), &body) == nil {
			statusErr.Message = body.Error
		}
		return Estimate{}, statusErr
	}

	return decodeEstimate(res.Body())
}

func decodeEstimate(body []byte) (Estimate, error) {
	var price priceBody
	err := json.Unmarshal(body, &price)
	if err != nil {
		return Estimate{}, fmt.Errorf("%w: decode body: %w", ErrNoPrice, err)
	}
	if price.AveragePrice == nil || *price.AveragePrice == 0 {
		return Estimate{}, fmt.Errorf("%w: average_price missing", ErrNoPrice)
	}
	if *price.AveragePrice < 0 {
		return Estimate{}, fmt.Errorf("%w: negative average_price %v", ErrNoPrice, *price.AveragePrice)
	}

	// diagnostics are best effort, a malformed one never hides the price.
	var out Estimate
	if json.Unmarshal(body, &out) != nil {
		out = Estimate{}
	}
	out.AveragePrice = *price.AveragePrice
	return out, nil
}

