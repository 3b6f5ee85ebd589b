package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/medxprts/Spacs-sub002/internal/edgar"
	"github.com/medxprts/Spacs-sub002/internal/model"
	"github.com/medxprts/Spacs-sub002/internal/pipeline"
	"github.com/medxprts/Spacs-sub002/internal/process"
	"github.com/medxprts/Spacs-sub002/internal/store"
	"github.com/medxprts/Spacs-sub002/internal/writer"
)

var (
	backfillCIK int64
	backfillAll bool
)

var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Replay filing history through the extraction pipeline",
	Long: `Fetch the recent filing history of one SPAC (--cik) or every
tracked SPAC (--all) from EDGAR and run it through the same processors
the monitor uses. Already-stored filings are skipped; field updates are
audited exactly as they are for live polling.`,
	RunE: runBackfill,
}

func init() {
	backfillCmd.Flags().Int64Var(&backfillCIK, "cik", 0, "central index key of one SPAC")
	backfillCmd.Flags().BoolVar(&backfillAll, "all", false, "backfill every tracked SPAC")
	backfillCmd.MarkFlagsOneRequired("cik", "all")
	backfillCmd.MarkFlagsMutuallyExclusive("cik", "all")
	rootCmd.AddCommand(backfillCmd)
}

func runBackfill(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, db, st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	var spacs []model.SPAC
	if backfillAll {
		spacs, err = st.ListSPACs(ctx)
		if err != nil {
			return fmt.Errorf("list spacs: %w", err)
		}
	} else {
		sp, err := st.GetSPAC(ctx, backfillCIK)
		if err != nil {
			return fmt.Errorf("spac %d: %w", backfillCIK, err)
		}
		spacs = []model.SPAC{sp}
	}

	known, err := st.KnownAccessions(ctx, time.Time{})
	if err != nil {
		return fmt.Errorf("load known accessions: %w", err)
	}

	client := edgar.NewClient(cfg.EDGAR)
	logger := slog.Default()

	// The same pipeline the daemon runs, fed synchronously.
	inQueue := pipeline.NewQueue[model.Filing](cfg.Writers.BufferSize)
	filingsOut := pipeline.NewQueue[model.Filing](cfg.Writers.BufferSize)
	auditOut := pipeline.NewQueue[model.FieldUpdate](cfg.Writers.BufferSize)

	disp := pipeline.NewDispatcher(
		inQueue,
		client,
		&storeSPACSource{ctx: ctx, st: st},
		process.All(),
		st,
		nil,
		filingsOut,
		auditOut,
		logger,
	)
	if err := disp.Start(ctx); err != nil {
		return err
	}

	writerCfg := writer.WriterConfig{
		BatchSize:     cfg.Writers.BatchSize,
		FlushInterval: cfg.Writers.FlushInterval,
	}
	filingWriter := writer.NewFilingWriter(writerCfg, filingsOut, db, logger)
	auditWriter := writer.NewAuditWriter(writerCfg, auditOut, db, logger)
	if err := filingWriter.Start(ctx); err != nil {
		return err
	}
	if err := auditWriter.Start(ctx); err != nil {
		return err
	}

	var pushed, skipped int64
	for _, sp := range spacs {
		filings, err := client.GetRecentFilings(ctx, sp.CIK)
		if err != nil {
			fmt.Printf("cik %d: fetch failed: %v\n", sp.CIK, err)
			continue
		}

		// EDGAR lists newest first; replay oldest first so lifecycle
		// transitions apply in order.
		for i := len(filings) - 1; i >= 0; i-- {
			f := filings[i]
			if _, ok := known[f.AccessionNumber]; ok {
				skipped++
				continue
			}
			f.Source = "backfill"
			if !inQueue.Push(f) {
				return fmt.Errorf("filing queue closed")
			}
			pushed++
		}
	}

	// Wait for the dispatcher to drain the queue.
	deadline := time.Now().Add(10 * time.Minute)
	for disp.Stats().FilingsSeen < pushed {
		if time.Now().After(deadline) {
			return fmt.Errorf("backfill timed out with %d of %d filings processed",
				disp.Stats().FilingsSeen, pushed)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	disp.Stop(stopCtx)
	filingWriter.Stop(stopCtx)
	auditWriter.Stop(stopCtx)

	stats := disp.Stats()
	fmt.Printf("backfill complete: spacs=%d filings=%d skipped=%d matched=%d updates=%d errors=%d\n",
		len(spacs), pushed, skipped, stats.FilingsMatched, stats.UpdatesApplied, stats.ProcessorErrors)

	return nil
}

// storeSPACSource adapts the store to the pipeline's SPAC lookup.
type storeSPACSource struct {
	ctx context.Context
	st  *store.Store
}

func (s *storeSPACSource) GetByCIK(cik int64) (model.SPAC, bool) {
	sp, err := s.st.GetSPAC(s.ctx, cik)
	if err != nil {
		return model.SPAC{}, false
	}
	return sp, true
}
