package quote

import (
	"errors"
	"strings"
	"testing"

	"quantovale/lib/pricing"

	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	idle := NewState()
	require.Equal(t, Display{SubmitEnabled: true}, Render(idle))

	inflight, call := filled("PlayStation 5", "2020", ConditionGood).Begin()
	require.Equal(t, Display{Busy: true}, Render(inflight))

	success := inflight.Resolve(call.Seq, pricing.Estimate{AveragePrice: 312.7}, nil)
	require.Equal(t, Display{SubmitEnabled: true, Price: "€313"}, Render(success))

	failed := inflight.Resolve(call.Seq, pricing.Estimate{}, errors.New("refused"))
	require.Equal(t, Display{SubmitEnabled: true, Error: MessageUnreachable}, Render(failed))

	validating := idle
	validating.Status = Validating
	require.Equal(t, Display{SubmitEnabled: true}, Render(validating))
}

func TestRoundPrice(t *testing.T) {
	testCases := []struct {
		price    float64
		expected float64
	}{
		{price: 312.7, expected: 313},
		{price: 312.5, expected: 313},
		{price: 312.49, expected: 312},
		{price: 0.4, expected: 0},
		{price: 1999.99, expected: 2000},
		{price: -2.5, expected: -2},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, RoundPrice(test.price), "price %v", test.price)
	}
	require.Equal(t, "€2000", FormatPrice(1999.99))
}

func TestFormatPriceLarge(t *testing.T) {
	formatted := FormatPrice(1e300)
	require.True(t, strings.HasPrefix(formatted, "€1"), formatted)
	require.NotContains(t, formatted, "-")
	require.Equal(t, "€123456789012", FormatPrice(123456789012.4))
}
