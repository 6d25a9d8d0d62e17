// Package quote holds the state machine behind the QuantoVale price form.
//
// State is a value: every transition (WithField, Begin, Resolve) returns a new
// State and leaves the receiver untouched, so the machine can be driven by a
// bubbletea model, by Controller, or directly from tests.
//
//	Idle --Begin(valid)--> InFlight --Resolve(ok)--> Success
//	Idle --Begin(invalid)--> Failed
//	InFlight --Resolve(error)--> Failed
//
// Success and Failed go back through Validating on the next Begin.
package quote

import (
	"fmt"

	"quantovale/lib/pricing"
)

type Status int

const (
	Idle Status = iota
	Validating
	InFlight
	Success
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case InFlight:
		return "in_flight"
	case Success:
		return "success"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

type Field string

const (
	FieldProduct      Field = "product"
	FieldPurchaseYear Field = "purchase_year"
	FieldCondition    Field = "condition"
)

// condition values as the pricing service expects them
const (
	ConditionNew        = "novo"
	ConditionGood       = "bom"
	ConditionAcceptable = "aceitável"

	DefaultCondition = ConditionGood
)

// Conditions is the display order used by the form.
var Conditions = []string{ConditionNew, ConditionGood, ConditionAcceptable}

func ConditionLabel(condition string) string {
	switch condition {
	case ConditionNew:
		return "New"
	case ConditionGood:
		return "Good"
	case ConditionAcceptable:
		return "Acceptable"
	default:
		return condition
	}
}

type Request struct {
	ProductQuery string `validate:"required"`
	PurchaseYear string `validate:"required"`
	Condition    string `validate:"required,oneof=novo bom aceitável"`
}

func (r Request) query() pricing.Query {
	return pricing.Query{
		Product:      r.ProductQuery,
		PurchaseYear: r.PurchaseYear,
		Condition:    r.Condition,
	}
}

type Result struct {
	EstimatedPrice float64
	// whatever else the pricing service sent along with the price
	Details pricing.Estimate
}

type ErrorKind int

const (
	// ValidationError is raised before any network call.
	ValidationError ErrorKind = iota
	// RequestError covers both malformed responses and transport failures.
	RequestError
)

func (k ErrorKind) String() string {
	if k == ValidationError {
		return "validation"
	}
	return "request"
}

const (
	MessageRequired         = "all fields are required"
	MessageInvalidCondition = "invalid condition"
	MessageNoPrice          = "failed to obtain price, try again"
	MessageUnreachable      = "failed to calculate price, check that the API is reachable"
)

// Error is the user facing failure carried by a Failed state.
type Error struct {
	Kind    ErrorKind
	Message string
	// underlying cause for logging, nil for validation errors
	Cause error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// State is one snapshot of the form. Result is set only when Status is
// Success, Err only when Status is Failed.
type State struct {
	Request Request
	Status  Status
	Result  *Result
	Err     *Error
	// sequence number of the most recently issued call
	Seq uint64
}

// Call is a pricing request issued by Begin. Request is a copy, edits made
// while the call is in flight do not reach it.
type Call struct {
	Seq     uint64
	Request Request
}

func NewState() State {
	return State{
		Request: Request{Condition: DefaultCondition},
		Status:  Idle,
	}
}
