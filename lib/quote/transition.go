package quote

import (
	"errors"

	"quantovale/lib/pricing"
)

// WithField overwrites one request field. Status, result and error are left
// alone, unknown fields are ignored.
func (s State) WithField(field Field, value string) State {
	switch field {
	case FieldProduct:
		s.Request.ProductQuery = value
	case FieldPurchaseYear:
		s.Request.PurchaseYear = value
	case FieldCondition:
		s.Request.Condition = value
	}
	return s
}

// Begin starts a submission. The returned Call is nil when validation fails,
// in which case the state is already Failed and no request must be made.
//
// Begin is allowed while another call is in flight, the older call is then
// superseded and its Resolve is dropped.
func (s State) Begin() (State, *Call) {
	s.Result = nil
	s.Err = nil
	s.Status = Validating

	req := s.Request
	if req.Condition == "" {
		req.Condition = DefaultCondition
	}

	if verr := validateRequest(req); verr != nil {
		s.Status = Failed
		s.Err = verr
		return s, nil
	}

	s.Seq++
	s.Status = InFlight
	return s, &Call{Seq: s.Seq, Request: req}
}

// Resolve applies the outcome of the call numbered seq. Outcomes for any call
// other than the latest one, or arriving when nothing is in flight, leave the
// state unchanged.
func (s State) Resolve(seq uint64, est pricing.Estimate, err error) State {
	if !s.Accepts(seq) {
		return s
	}

	switch {
	case err == nil && est.AveragePrice > 0:
		s.Status = Success
		s.Result = &Result{EstimatedPrice: est.AveragePrice, Details: est}
	case err == nil, errors.Is(err, pricing.ErrNoPrice):
		s.Status = Failed
		s.Err = &Error{Kind: RequestError, Message: MessageNoPrice, Cause: err}
	default:
		s.Status = Failed
		s.Err = &Error{Kind: RequestError, Message: MessageUnreachable, Cause: err}
	}
	return s
}

// Accepts reports whether a response for seq would be applied.
func (s State) Accepts(seq uint64) bool {
	return s.Status == InFlight && seq == s.Seq
}
