package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/medxprts/Spacs-sub002/internal/model"
	"github.com/medxprts/Spacs-sub002/internal/process"
)

type fakeDocs struct {
	docs map[string]string
	err  error
}

func (f *fakeDocs) GetDocument(_ context.Context, filing model.Filing) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.docs[filing.AccessionNumber], nil
}

type fakeSPACs struct {
	spacs map[int64]model.SPAC
}

func (f *fakeSPACs) GetByCIK(cik int64) (model.SPAC, bool) {
	s, ok := f.spacs[cik]
	return s, ok
}

type fakeSink struct {
	mu          sync.Mutex
	updates     []model.FieldUpdate
	deals       []model.Deal
	redemptions []model.Redemption
	extensions  []model.Extension
	applyErr    error

	// current mirrors the store's no-op skip: an update whose NewValue
	// matches the recorded current value is not applied or returned.
	current map[string]string
}

func (f *fakeSink) ApplyFieldUpdates(_ context.Context, updates []model.FieldUpdate) ([]model.FieldUpdate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.applyErr != nil {
		return nil, f.applyErr
	}
	applied := make([]model.FieldUpdate, 0, len(updates))
	for _, u := range updates {
		if old, ok := f.current[u.Field]; ok && old == u.NewValue {
			continue
		}
		applied = append(applied, u)
	}
	f.updates = append(f.updates, applied...)
	return applied, nil
}

func (f *fakeSink) RecordDeal(_ context.Context, d model.Deal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deals = append(f.deals, d)
	return nil
}

func (f *fakeSink) RecordRedemption(_ context.Context, r model.Redemption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.redemptions = append(f.redemptions, r)
	return nil
}

func (f *fakeSink) RecordExtension(_ context.Context, e model.Extension) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.extensions = append(f.extensions, e)
	return nil
}

type fakeAlerts struct {
	mu     sync.Mutex
	alerts []model.Alert
}

func (f *fakeAlerts) Publish(_ context.Context, a model.Alert) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts = append(f.alerts, a)
}

type panicProcessor struct{}

func (panicProcessor) Name() string            { return "panic_processor" }
func (panicProcessor) Wants(model.Filing) bool { return true }
func (panicProcessor) Process(context.Context, model.Filing, string, *model.SPAC) (process.Result, error) {
	panic("boom")
}

func dealFiling() model.Filing {
	return model.Filing{
		AccessionNumber: "0001193125-24-000001",
		CIK:             1849058,
		Form:            "8-K",
		FilingDate:      time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		Items:           []string{"1.01"},
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not reached before deadline")
}

func TestDispatcherRoutesDealFiling(t *testing.T) {
	in := NewQueue[model.Filing](16)
	filingsOut := NewQueue[model.Filing](16)
	auditOut := NewQueue[model.FieldUpdate](16)

	docs := &fakeDocs{docs: map[string]string{
		"0001193125-24-000001": "entered into a business combination agreement with Volta Industrial Systems, Inc. " +
			"at an enterprise value of $1.6 billion",
	}}
	spacs := &fakeSPACs{spacs: map[int64]model.SPAC{
		1849058: {CIK: 1849058, Ticker: "EXAC", Status: model.StatusSearching},
	}}
	sink := &fakeSink{}
	alerts := &fakeAlerts{}

	d := NewDispatcher(in, docs, spacs, process.All(), sink, alerts, filingsOut, auditOut, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer d.Stop(context.Background())

	in.Push(dealFiling())

	waitFor(t, func() bool { return filingsOut.Len() > 0 })

	f, _ := filingsOut.TryPop()
	if f.ProcessedAt == nil {
		t.Error("ProcessedAt should be stamped before the filing reaches the writer")
	}

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.deals) != 1 {
		t.Fatalf("deals recorded = %d, want 1", len(sink.deals))
	}
	if sink.deals[0].TargetName != "Volta Industrial Systems, Inc." {
		t.Errorf("deal target = %q", sink.deals[0].TargetName)
	}

	var statusUpdate bool
	for _, u := range sink.updates {
		if u.Field == "status" && u.NewValue == "announced" {
			statusUpdate = true
		}
	}
	if !statusUpdate {
		t.Errorf("missing status update, got %+v", sink.updates)
	}

	// Applied updates flow to the audit writer queue.
	if auditOut.Len() != len(sink.updates) {
		t.Errorf("audit queue = %d rows, want %d", auditOut.Len(), len(sink.updates))
	}

	alerts.mu.Lock()
	defer alerts.mu.Unlock()
	if len(alerts.alerts) != 1 || alerts.alerts[0].Kind != "deal_announced" {
		t.Fatalf("alerts = %+v, want one deal_announced", alerts.alerts)
	}
}

func TestDispatcherAuditsOnlyAppliedUpdates(t *testing.T) {
	in := NewQueue[model.Filing](16)
	filingsOut := NewQueue[model.Filing](16)
	auditOut := NewQueue[model.FieldUpdate](16)

	docs := &fakeDocs{docs: map[string]string{
		"0001193125-24-000001": "entered into a business combination agreement with Volta Industrial Systems, Inc. " +
			"at an enterprise value of $1.6 billion",
	}}
	spacs := &fakeSPACs{spacs: map[int64]model.SPAC{
		1849058: {CIK: 1849058, Ticker: "EXAC", Status: model.StatusSearching},
	}}
	// A re-filed announcement: status is already what the processor writes,
	// so that update is a no-op and must not reach the audit writer.
	sink := &fakeSink{current: map[string]string{"status": "announced"}}

	d := NewDispatcher(in, docs, spacs, process.All(), sink, nil, filingsOut, auditOut, nil)

	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer d.Stop(context.Background())

	in.Push(dealFiling())

	waitFor(t, func() bool { return filingsOut.Len() > 0 })

	sink.mu.Lock()
	applied := len(sink.updates)
	sink.mu.Unlock()
	if applied == 0 {
		t.Fatal("expected some applied updates")
	}
	if got := auditOut.Len(); got != applied {
		t.Errorf("audit queue = %d rows, want %d applied", got, applied)
	}
	for {
		u, ok := auditOut.TryPop()
		if !ok {
			break
		}
		if u.Field == "status" {
			t.Errorf("no-op status update reached the audit queue: %+v", u)
		}
	}

	if got := d.Stats().UpdatesApplied; got != int64(applied) {
		t.Errorf("UpdatesApplied = %d, want %d", got, applied)
	}
}

func TestDispatcherDocFetchFailureStillRecordsFiling(t *testing.T) {
	in := NewQueue[model.Filing](16)
	filingsOut := NewQueue[model.Filing](16)
	auditOut := NewQueue[model.FieldUpdate](16)

	docs := &fakeDocs{err: errors.New("edgar unavailable")}
	spacs := &fakeSPACs{spacs: map[int64]model.SPAC{}}
	sink := &fakeSink{}

	d := NewDispatcher(in, docs, spacs, process.All(), sink, nil, filingsOut, auditOut, nil)

	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer d.Stop(context.Background())

	in.Push(dealFiling())

	waitFor(t, func() bool { return filingsOut.Len() > 0 })

	if got := d.Stats().DocFetchErrors; got != 1 {
		t.Errorf("DocFetchErrors = %d, want 1", got)
	}
}

func TestDispatcherSurvivesProcessorPanic(t *testing.T) {
	in := NewQueue[model.Filing](16)
	filingsOut := NewQueue[model.Filing](16)
	auditOut := NewQueue[model.FieldUpdate](16)

	docs := &fakeDocs{docs: map[string]string{}}
	spacs := &fakeSPACs{spacs: map[int64]model.SPAC{}}
	sink := &fakeSink{}

	procs := []process.Processor{panicProcessor{}, &process.FilingProcessor{}}
	d := NewDispatcher(in, docs, spacs, procs, sink, nil, filingsOut, auditOut, nil)

	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer d.Stop(context.Background())

	in.Push(dealFiling())

	waitFor(t, func() bool { return filingsOut.Len() > 0 })

	if got := d.Stats().ProcessorErrors; got == 0 {
		t.Error("ProcessorErrors should count the panic")
	}

	// The well-behaved processor still ran.
	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.updates) == 0 {
		t.Error("filing processor updates lost to sibling panic")
	}
}
