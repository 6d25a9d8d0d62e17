package commands

import (
	"errors"
	"fmt"
	"os"

	"quantovale/lib/pricing"
	"quantovale/lib/quote"
	"quantovale/lib/serviceutil"
	"quantovale/lib/telemetry"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	quoteProduct   string
	quoteYear      string
	quoteCondition string
)

func init() {
	flags := quoteCmd.Flags()
	flags.StringVar(&quoteProduct, "product", "", "Product to price, ex. \"PlayStation 5\".")
	flags.StringVar(&quoteYear, "year", "", "Year the product was purchased.")
	flags.StringVar(&quoteCondition, "condition", quote.DefaultCondition, "One of novo, bom, aceitável.")
	rootCmd.AddCommand(quoteCmd)
}

var quoteCmd = &cobra.Command{
	Use:   "quote --product <name> --year <yyyy> [--condition bom]",
	Short: "Requests a single price estimate and prints it as a table.",
	RunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(verbose)

		client, err := setup(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to setup quote client", err)
		}

		controller := quote.NewController(client, nil)
		controller.UpdateField(quote.FieldProduct, quoteProduct)
		controller.UpdateField(quote.FieldPurchaseYear, quoteYear)
		controller.UpdateField(quote.FieldCondition, quoteCondition)

		state := controller.Submit(cmd.Context())
		display := quote.Render(state)
		if display.Error != "" {
			return errors.New(display.Error)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Field", "Value"})
		t.AppendRow(table.Row{"Product", state.Request.ProductQuery})
		t.AppendRow(table.Row{"Purchase year", state.Request.PurchaseYear})
		t.AppendRow(table.Row{"Condition", quote.ConditionLabel(state.Request.Condition)})
		t.AppendSeparator()
		t.AppendRow(table.Row{"Estimated price", display.Price})
		appendDiagnostics(t, state.Result.Details)
		t.SetStyle(table.StyleRounded)
		t.Render()
		return nil
	},
}

func appendDiagnostics(t table.Writer, est pricing.Estimate) {
	if est.AdsCount != nil {
		t.AppendRow(table.Row{"Ads analyzed", *est.AdsCount})
	}
	if est.Age != nil {
		t.AppendRow(table.Row{"Age (years)", *est.Age})
	}
	if est.DepreciationFactor != nil {
		t.AppendRow(table.Row{"Depreciation factor", fmt.Sprintf("%.2f", *est.DepreciationFactor)})
	}
	if est.ConditionFactor != nil {
		t.AppendRow(table.Row{"Condition factor", fmt.Sprintf("%.2f", *est.ConditionFactor)})
	}
}
