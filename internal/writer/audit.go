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

// AuditWriter consumes applied field updates from the pipeline and writes
// them to the field_updates audit table.
type AuditWriter struct {
	cfg    WriterConfig
	logger *slog.Logger

	input *pipeline.Queue[model.FieldUpdate]

	db *pgxpool.Pool

	batch       []auditRow
	batchMu     sync.Mutex
	flushTicker *time.Ticker

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	metrics WriterMetrics
}

// NewAuditWriter creates a new AuditWriter.
func NewAuditWriter(
	cfg WriterConfig,
	input *pipeline.Queue[model.FieldUpdate],
	db *pgxpool.Pool,
	logger *slog.Logger,
) *AuditWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditWriter{
		cfg:    cfg,
		input:  input,
		db:     db,
		logger: logger,
		batch:  make([]auditRow, 0, cfg.BatchSize),
	}
}

// Start begins consuming updates and writing to the database.
func (w *AuditWriter) Start(ctx context.Context) error {
	w.ctx, w.cancel = context.WithCancel(ctx)
	w.flushTicker = time.NewTicker(w.cfg.FlushInterval)

	w.wg.Add(1)
	go w.consumeLoop()

	w.wg.Add(1)
	go w.flushLoop()

	w.logger.Info("audit writer started",
		"batch_size", w.cfg.BatchSize,
		"flush_interval", w.cfg.FlushInterval,
	)
	return nil
}

// Stop gracefully shuts down the writer.
func (w *AuditWriter) Stop(ctx context.Context) error {
	w.logger.Info("stopping audit writer")

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
		w.logger.Info("audit writer stopped")
	case <-ctx.Done():
		w.logger.Warn("audit writer stop timed out")
	}

	// Final flush
	w.flush()

	return nil
}

// Stats returns current metrics.
func (w *AuditWriter) Stats() WriterMetrics {
	w.batchMu.Lock()
	defer w.batchMu.Unlock()
	return w.metrics
}

// consumeLoop reads from the input queue and accumulates batches.
func (w *AuditWriter) consumeLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		default:
			u, ok := w.input.TryPop()
			if !ok {
				select {
				case <-w.ctx.Done():
					return
				case <-time.After(10 * time.Millisecond):
					continue
				}
			}

			w.handleUpdate(u)
		}
	}
}

// flushLoop periodically flushes the batch.
func (w *AuditWriter) flushLoop() {
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

// handleUpdate transforms and adds an update to the batch.
func (w *AuditWriter) handleUpdate(u model.FieldUpdate) {
	row := w.transform(u)

	w.batchMu.Lock()
	w.batch = append(w.batch, row)
	shouldFlush := len(w.batch) >= w.cfg.BatchSize
	w.batchMu.Unlock()

	if shouldFlush {
		w.flush()
	}
}

// transform converts a model.FieldUpdate to an auditRow.
func (w *AuditWriter) transform(u model.FieldUpdate) auditRow {
	return auditRow{
		ID:              u.ID,
		CIK:             u.CIK,
		Field:           u.Field,
		OldValue:        u.OldValue,
		NewValue:        u.NewValue,
		Source:          u.Source,
		AccessionNumber: u.AccessionNumber,
		At:              u.At,
	}
}

// flush writes the current batch to the database.
func (w *AuditWriter) flush() {
	w.batchMu.Lock()
	if len(w.batch) == 0 {
		w.batchMu.Unlock()
		return
	}

	batch := w.batch
	w.batch = make([]auditRow, 0, w.cfg.BatchSize)
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

	w.logger.Debug("flushed field updates",
		"count", len(batch),
		"conflicts", conflicts,
		"duration", time.Since(start),
	)
}

// batchInsert inserts rows using pgx.Batch with ON CONFLICT DO NOTHING.
func (w *AuditWriter) batchInsert(rows []auditRow) (conflicts int, err error) {
	batch := &pgx.Batch{}
	for _, r := range rows {
		batch.Queue(`
			INSERT INTO field_updates (id, cik, field, old_value, new_value,
				source, accession_number, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO NOTHING
		`, r.ID, r.CIK, r.Field, r.OldValue, r.NewValue,
			r.Source, r.AccessionNumber, r.At)
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
