package writer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medxprts/Spacs-sub002/internal/model"
	"github.com/medxprts/Spacs-sub002/internal/pipeline"
)

// FilingWriter consumes processed filings from the pipeline and writes them
// to the filings table.
type FilingWriter struct {
	cfg    WriterConfig
	logger *slog.Logger

	input *pipeline.Queue[model.Filing]

	db *pgxpool.Pool

	batch       []filingRow
	batchMu     sync.Mutex
	flushTicker *time.Ticker

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	metrics WriterMetrics
}

// NewFilingWriter creates a new FilingWriter.
func NewFilingWriter(
	cfg WriterConfig,
	input *pipeline.Queue[model.Filing],
	db *pgxpool.Pool,
	logger *slog.Logger,
) *FilingWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &FilingWriter{
		cfg:    cfg,
		input:  input,
		db:     db,
		logger: logger,
		batch:  make([]filingRow, 0, cfg.BatchSize),
	}
}

// Start begins consuming filings and writing to the database.
func (w *FilingWriter) Start(ctx context.Context) error {
	w.ctx, w.cancel = context.WithCancel(ctx)
	w.flushTicker = time.NewTicker(w.cfg.FlushInterval)

	w.wg.Add(1)
	go w.consumeLoop()

	w.wg.Add(1)
	go w.flushLoop()

	w.logger.Info("filing writer started",
		"batch_size", w.cfg.BatchSize,
		"flush_interval", w.cfg.FlushInterval,
	)
	return nil
}

// Stop gracefully shuts down the writer.
func (w *FilingWriter) Stop(ctx context.Context) error {
	w.logger.Info("stopping filing writer")

	if w.cancel != nil {
		w.cancel()
	}

	if w.flushTicker != nil {
		w.flushTicker.Stop()
	}

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		w.logger.Info("filing writer stopped")
	case <-ctx.Done():
		w.logger.Warn("filing writer stop timed out")
	}

	// Final flush
	w.flush()

	return nil
}

// Stats returns current metrics.
func (w *FilingWriter) Stats() WriterMetrics {
	w.batchMu.Lock()
	defer w.batchMu.Unlock()
	return w.metrics
}

// consumeLoop reads from the input queue and accumulates batches.
func (w *FilingWriter) consumeLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		default:
			f, ok := w.input.TryPop()
			if !ok {
				select {
				case <-w.ctx.Done():
					return
				case <-time.After(10 * time.Millisecond):
					continue
				}
			}

			w.handleFiling(f)
		}
	}
}

// flushLoop periodically flushes the batch.
func (w *FilingWriter) flushLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-w.flushTicker.C:
			w.flush()
		}
	}
}

// handleFiling transforms and adds a filing to the batch.
func (w *FilingWriter) handleFiling(f model.Filing) {
	row := w.transform(f)

	w.batchMu.Lock()
	w.batch = append(w.batch, row)
	shouldFlush := len(w.batch) >= w.cfg.BatchSize
	w.batchMu.Unlock()

	if shouldFlush {
		w.flush()
	}
}

// transform converts a model.Filing to a filingRow.
func (w *FilingWriter) transform(f model.Filing) filingRow {
	return filingRow{
		AccessionNumber: f.AccessionNumber,
		CIK:             f.CIK,
		Form:            f.Form,
		FilingDate:      f.FilingDate,
		Items:           f.Items,
		PrimaryDocument: f.PrimaryDocument,
		URL:             f.URL,
		Source:          f.Source,
		ReceivedAt:      f.ReceivedAt,
		ProcessedAt:     f.ProcessedAt,
	}
}

// flush writes the current batch to the database.
func (w *FilingWriter) flush() {
	w.batchMu.Lock()
	if len(w.batch) == 0 {
		w.batchMu.Unlock()
		return
	}

	batch := w.batch
	w.batch = make([]filingRow, 0, w.cfg.BatchSize)
	w.batchMu.Unlock()

	start := time.Now()

	conflicts, err := w.batchInsert(batch)
	if err != nil {
		w.logger.Error("batch insert failed", "error", err, "count", len(batch))
		w.batchMu.Lock()
		w.metrics.Errors++
		w.batchMu.Unlock()
		return
	}

	w.batchMu.Lock()
	w.metrics.Inserts += int64(len(batch) - conflicts)
	w.metrics.Conflicts += int64(conflicts)
	w.metrics.Flushes++
	w.batchMu.Unlock()

	w.logger.Debug("flushed filings",
		"count", len(batch),
		"conflicts", conflicts,
		"duration", time.Since(start),
	)
}

// batchInsert inserts rows using pgx.Batch with ON CONFLICT DO NOTHING.
func (w *FilingWriter) batchInsert(rows []filingRow) (conflicts int, err error) {
	batch := &pgx.Batch{}
	for _, r := range rows {
		batch.Queue(`
			INSERT INTO filings (accession_number, cik, form, filing_date, items,
				primary_document, url, source, received_at, processed_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (accession_number) DO NOTHING
		`, r.AccessionNumber, r.CIK, r.Form, r.FilingDate, r.Items,
			r.PrimaryDocument, r.URL, r.Source, r.ReceivedAt, r.ProcessedAt)
	}

	// The final flush runs after cancel, so fall back to Background.
	ctx := w.ctx
	if ctx == nil || ctx.Err() != nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
	}

	results := w.db.SendBatch(ctx, batch)
	defer results.Close()

	for range rows {
		ct, err := results.Exec()
		if err != nil {
			return 0, err
		}
		if ct.RowsAffected() == 0 {
			conflicts++
		}
	}

	return conflicts, nil
}
