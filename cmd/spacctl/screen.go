package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/medxprts/Spacs-sub002/internal/prices"
)

var (
	screenOpportunities bool
	screenMinYield      float64
)

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Screen SPACs trading at a discount to trust",
	Long: `Rank SPACs by the annualized yield of buying the common share at
the last observed price and redeeming at trust value on the deadline.
Requires prices to have been refreshed (see "spacctl prices").`,
	RunE: runScreen,
}

func init() {
	screenCmd.Flags().BoolVar(&screenOpportunities, "opportunities", false, "list qualifying SPACs, best yield first")
	screenCmd.Flags().Float64Var(&screenMinYield, "min-yield", 0, "minimum annualized yield percent")
	rootCmd.AddCommand(screenCmd)
}

func runScreen(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	_, db, st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	spacs, err := st.ActiveSPACs(ctx)
	if err != nil {
		return fmt.Errorf("list active spacs: %w", err)
	}

	quotes, err := st.LatestPrices(ctx)
	if err != nil {
		return fmt.Errorf("load prices: %w", err)
	}

	now := time.Now()
	opps := prices.Screen(spacs, quotes, screenMinYield, now)

	if !screenOpportunities {
		fmt.Printf("screened=%d qualifying=%d min_yield=%.2f%%\n", len(spacs), len(opps), screenMinYield)
		return nil
	}

	if len(opps) == 0 {
		fmt.Println("No qualifying SPACs.")
		return nil
	}

	fmt.Printf("%-6s  %-28s  %8s  %8s  %10s  %9s  %9s\n",
		"TICKER", "NAME", "PRICE", "TRUST", "DEADLINE", "DISCOUNT", "YIELD")
	for _, o := range opps {
		fmt.Printf("%-6s  %-28.28s  %8.2f  %8.2f  %10s  %8.2f%%  %8.2f%%\n",
			o.Ticker, o.Name, o.Price, o.Trust,
			o.Deadline.Format("2006-01-02"), o.Discount, o.Yield)
	}

	return nil
}
