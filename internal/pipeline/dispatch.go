package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/medxprts/Spacs-sub002/internal/model"
	"github.com/medxprts/Spacs-sub002/internal/process"
)

// DocumentSource fetches filing document text.
type DocumentSource interface {
	GetDocument(ctx context.Context, f model.Filing) (string, error)
}

// SPACSource provides current SPAC state to processors.
type SPACSource interface {
	GetByCIK(cik int64) (model.SPAC, bool)
}

// Sink applies processor results to durable storage. ApplyFieldUpdates
// returns the subset of updates that actually changed a row; no-ops are
// not returned and must not be audited.
type Sink interface {
	ApplyFieldUpdates(ctx context.Context, updates []model.FieldUpdate) ([]model.FieldUpdate, error)
	RecordDeal(ctx context.Context, d model.Deal) error
	RecordRedemption(ctx context.Context, r model.Redemption) error
	RecordExtension(ctx context.Context, e model.Extension) error
}

// AlertSink receives alerts for delivery.
type AlertSink interface {
	Publish(ctx context.Context, a model.Alert)
}

// DispatcherStats contains runtime statistics.
type DispatcherStats struct {
	FilingsSeen     int64
	FilingsMatched  int64
	UpdatesApplied  int64
	AlertsPublished int64
	DocFetchErrors  int64
	ProcessorErrors int64
}

// Dispatcher routes discovered filings through the processors and fans the
// results out to storage, the batch writers, and the alert sinks.
type Dispatcher struct {
	in         *Queue[model.Filing]
	docs       DocumentSource
	spacs      SPACSource
	processors []process.Processor
	sink       Sink
	alerts     AlertSink
	filingsOut *Queue[model.Filing]
	auditOut   *Queue[model.FieldUpdate]
	logger     *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	stats struct {
		seen, matched, updates, alerts, docErrs, procErrs atomic.Int64
	}
}

// NewDispatcher creates a Dispatcher. filingsOut and auditOut feed the batch
// writers; alerts may be nil when alerting is disabled.
func NewDispatcher(
	in *Queue[model.Filing],
	docs DocumentSource,
	spacs SPACSource,
	processors []process.Processor,
	sink Sink,
	alerts AlertSink,
	filingsOut *Queue[model.Filing],
	auditOut *Queue[model.FieldUpdate],
	logger *slog.Logger,
) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		in:         in,
		docs:       docs,
		spacs:      spacs,
		processors: processors,
		sink:       sink,
		alerts:     alerts,
		filingsOut: filingsOut,
		auditOut:   auditOut,
		logger:     logger,
	}
}

// Start begins consuming filings.
func (d *Dispatcher) Start(ctx context.Context) error {
	d.ctx, d.cancel = context.WithCancel(ctx)

	d.wg.Add(1)
	go d.consumeLoop()

	d.logger.Info("dispatcher started", "processors", len(d.processors))
	return nil
}

// Stop gracefully shuts down the dispatcher.
func (d *Dispatcher) Stop(ctx context.Context) error {
	if d.cancel != nil {
		d.cancel()
	}

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.logger.Info("dispatcher stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stats returns current counters.
func (d *Dispatcher) Stats() DispatcherStats {
	return DispatcherStats{
		FilingsSeen:     d.stats.seen.Load(),
		FilingsMatched:  d.stats.matched.Load(),
		UpdatesApplied:  d.stats.updates.Load(),
		AlertsPublished: d.stats.alerts.Load(),
		DocFetchErrors:  d.stats.docErrs.Load(),
		ProcessorErrors: d.stats.procErrs.Load(),
	}
}

func (d *Dispatcher) consumeLoop() {
	defer d.wg.Done()

	for {
		select {
		case <-d.ctx.Done():
			return
		default:
			f, ok := d.in.TryPop()
			if !ok {
				select {
				case <-d.ctx.Done():
					return
				case <-time.After(10 * time.Millisecond):
					continue
				}
			}
			d.handle(f)
		}
	}
}

// handle runs one filing through every matching processor. Processor failures
// are logged and skipped: a bad document must never drop the filing row.
func (d *Dispatcher) handle(f model.Filing) {
	d.stats.seen.Add(1)

	var spac *model.SPAC
	if s, ok := d.spacs.GetByCIK(f.CIK); ok {
		spac = &s
	}

	matching := make([]process.Processor, 0, 4)
	for _, p := range d.processors {
		if p.Wants(f) {
			matching = append(matching, p)
		}
	}

	var doc string
	if len(matching) > 0 {
		text, err := d.docs.GetDocument(d.ctx, f)
		if err != nil {
			d.stats.docErrs.Add(1)
			d.logger.Warn("document fetch failed, processing metadata only",
				"accession", f.AccessionNumber,
				"form", f.Form,
				"err", err,
			)
		} else {
			doc = text
		}
	}

	var merged process.Result
	for _, p := range matching {
		res, err := d.runProcessor(p, f, doc, spac)
		if err != nil {
			d.stats.procErrs.Add(1)
			d.logger.Error("processor failed",
				"processor", p.Name(),
				"accession", f.AccessionNumber,
				"err", err,
			)
			continue
		}
		merged.Merge(res)
	}

	if !merged.Empty() {
		d.stats.matched.Add(1)
	}

	d.apply(f, merged)
}

// runProcessor invokes a processor with panic isolation.
func (d *Dispatcher) runProcessor(p process.Processor, f model.Filing, doc string, spac *model.SPAC) (res process.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = process.Result{}
			d.stats.procErrs.Add(1)
			d.logger.Error("processor panicked",
				"processor", p.Name(),
				"accession", f.AccessionNumber,
				"panic", r,
			)
		}
	}()
	return p.Process(d.ctx, f, doc, spac)
}

func (d *Dispatcher) apply(f model.Filing, res process.Result) {
	if len(res.Updates) > 0 {
		applied, err := d.sink.ApplyFieldUpdates(d.ctx, res.Updates)
		if err != nil {
			d.logger.Error("apply field updates failed",
				"accession", f.AccessionNumber,
				"count", len(res.Updates),
				"err", err,
			)
		} else {
			d.stats.updates.Add(int64(len(applied)))
			for _, u := range applied {
				d.auditOut.Push(u)
			}
		}
	}

	for _, deal := range res.Deals {
		if err := d.sink.RecordDeal(d.ctx, deal); err != nil {
			d.logger.Error("record deal failed", "cik", deal.CIK, "err", err)
		}
	}
	for _, r := range res.Redemptions {
		if err := d.sink.RecordRedemption(d.ctx, r); err != nil {
			d.logger.Error("record redemption failed", "cik", r.CIK, "err", err)
		}
	}
	for _, e := range res.Extensions {
		if err := d.sink.RecordExtension(d.ctx, e); err != nil {
			d.logger.Error("record extension failed", "cik", e.CIK, "err", err)
		}
	}

	if d.alerts != nil {
		for _, a := range res.Alerts {
			d.alerts.Publish(d.ctx, a)
			d.stats.alerts.Add(1)
		}
	}

	// Pushed last: the filing row reaching the writer marks the filing done.
	now := time.Now().UTC()
	f.ProcessedAt = &now
	d.filingsOut.Push(f)
}
