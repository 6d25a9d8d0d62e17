package form

import (
	"context"

	"quantovale/lib/quote"
)

type focus int

const (
	focusProduct focus = iota
	focusYear
	focusCondition
	focusSubmit
	focusCount
)

// Model is the root bubbletea model for the quote form.
// Exported so tests can construct and drive it directly.
type Model struct {
	ctx        context.Context
	controller *quote.Controller

	width  int
	height int

	focus     focus
	product   string
	year      string
	condition int

	// set between enter and the submit result arriving, the controller only
	// reports InFlight once the command goroutine has started.
	submitting bool
	last       quote.State
}

// New creates a form bound to controller. every submission runs with ctx.
func New(ctx context.Context, controller *quote.Controller) Model {
	m := Model{
		ctx:        ctx,
		controller: controller,
		condition:  conditionIndex(quote.DefaultCondition),
		last:       controller.State(),
	}
	controller.UpdateField(quote.FieldCondition, m.conditionValue())
	return m
}

func conditionIndex(value string) int {
	for i, c := range quote.Conditions {
		if c == value {
			return i
		}
	}
	return 0
}

func (m Model) conditionValue() string {
	return quote.Conditions[m.condition]
}

// Display is what the view renders, exposed for tests.
func (m Model) Display() quote.Display {
	d := quote.Render(m.last)
	if m.submitting {
		d.Busy = true
		d.SubmitEnabled = false
		d.Price = ""
		d.Error = ""
	}
	return d
}

func (m Model) Product() string   { return m.product }
func (m Model) Year() string      { return m.year }
func (m Model) Condition() string { return m.conditionValue() }
