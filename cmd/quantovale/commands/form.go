package commands

import (
	"fmt"
	"os"

	"quantovale/internal/form"
	"quantovale/lib/quote"
	"quantovale/lib/telemetry"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
)

var formLog string

func init() {
	formCmd.Flags().StringVar(&formLog, "log", "quantovale.log", "File to write logs to while the form is open.")
	rootCmd.AddCommand(formCmd)
}

var formCmd = &cobra.Command{
	Use:   "form [--log quantovale.log]",
	Short: "Opens the interactive price form.",
	RunE: func(cmd *cobra.Command, args []string) error {
		logFile, err := os.OpenFile(formLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer logFile.Close()
		telemetry.InitSlogTo(logFile, verbose)

		ctx := cmd.Context()
		client, err := setup(ctx)
		if err != nil {
			return err
		}
		telemetry.InstrumentPerfStats(ctx, cmd.Name())

		m := form.New(ctx, quote.NewController(client, nil))
		p := tea.NewProgram(m, tea.WithContext(ctx))
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("form: %w", err)
		}
		return nil
	},
}
