package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/medxprts/Spacs-sub002/internal/prices"
)

var pricesSummary bool

var pricesCmd = &cobra.Command{
	Use:   "prices",
	Short: "Refresh market prices for tracked SPAC securities",
	Long: `Fetch quotes for every listed share, unit, and warrant of the
active SPACs, store the observations, and report the trust discount of
each common share. With --summary only the aggregate line is printed.`,
	RunE: runPrices,
}

func init() {
	pricesCmd.Flags().BoolVar(&pricesSummary, "summary", false, "print only the aggregate summary")
	rootCmd.AddCommand(pricesCmd)
}

func runPrices(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, db, st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	spacs, err := st.ActiveSPACs(ctx)
	if err != nil {
		return fmt.Errorf("list active spacs: %w", err)
	}

	client := prices.NewClient(cfg.Prices)
	updater := prices.NewUpdater(client, cfg.Prices.BatchSize, nil)

	rows, summary, err := updater.Update(ctx, spacs, time.Now())
	if err != nil {
		return err
	}

	if err := st.SavePrices(ctx, rows); err != nil {
		return err
	}

	if !pricesSummary {
		for _, r := range rows {
			if r.DiscountPct != nil {
				fmt.Printf("%-8s %-8s %8.2f  discount %+.2f%%\n", r.Symbol, r.Class, r.Price, *r.DiscountPct)
			} else {
				fmt.Printf("%-8s %-8s %8.2f\n", r.Symbol, r.Class, r.Price)
			}
		}
		fmt.Println()
	}

	fmt.Printf("symbols=%d quoted=%d missing=%d discounts=%d premiums=%d avg_discount=%.2f%%\n",
		summary.Symbols, summary.Quoted, summary.Missing,
		summary.Discounts, summary.Premiums, summary.AvgDiscount)

	return nil
}
