package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/medxprts/Spacs-sub002/internal/model"
	"github.com/medxprts/Spacs-sub002/internal/validate"
)

var validateReport bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check stored SPAC records for integrity problems",
	Long: `Run the full validation rule set over every tracked SPAC.

By default prints only the per-severity counts. With --report, every
finding is listed with its severity, rule code, and detail. The command
exits non-zero when any CRITICAL finding exists.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateReport, "report", false, "print the full finding-by-finding report")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	_, db, st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	spacs, err := st.ListSPACs(ctx)
	if err != nil {
		return fmt.Errorf("list spacs: %w", err)
	}

	report := validate.New(nil).Run(spacs, time.Now())

	if validateReport {
		validate.Render(os.Stdout, report)
	} else {
		validate.RenderSummary(os.Stdout, report)
	}

	if n := report.Counts[model.SeverityCritical]; n > 0 {
		return fmt.Errorf("%d critical findings", n)
	}
	return nil
}
