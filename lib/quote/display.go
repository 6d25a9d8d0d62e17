package quote

import (
	"fmt"
	"math"
)

const CurrencySymbol = "€"

// Display is what a front end should show for a given State.
type Display struct {
	Busy          bool
	SubmitEnabled bool
	// empty unless Status is Success
	Price string
	// empty unless Status is Failed
	Error string
}

func Render(s State) Display {
	d := Display{SubmitEnabled: true}
	switch s.Status {
	case InFlight:
		d.Busy = true
		d.SubmitEnabled = false
	case Success:
		if s.Result != nil {
			d.Price = FormatPrice(s.Result.EstimatedPrice)
		}
	case Failed:
		if s.Err != nil {
			d.Error = s.Err.Message
		}
	}
	return d
}

// RoundPrice rounds half up to a whole currency unit. it stays a float so
// that absurd prices from the service cannot overflow an integer.
func RoundPrice(p float64) float64 {
	return math.Floor(p + 0.5)
}

func FormatPrice(p float64) string {
	return fmt.Sprintf("%s%.0f", CurrencySymbol, RoundPrice(p))
}
