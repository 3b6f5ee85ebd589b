package edgar

import (
	"context"
	"testing"
	"time"
)

func TestLimiterSpacing(t *testing.T) {
	// 100 req/s => 10ms spacing; 5 requests should take at least 40ms.
	l := NewLimiter(100)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 5; i++ {
		if err := l.Wait(ctx); err != nil {
			t.Fatalf("Wait failed: %v", err)
		}
	}
	elapsed := time.Since(start)

	if elapsed < 40*time.Millisecond {
		t.Errorf("5 requests took %v, want >= 40ms of enforced spacing", elapsed)
	}
}

func TestLimiterFirstRequestImmediate(t *testing.T) {
	l := NewLimiter(1)

	start := time.Now()
	if err := l.Wait(context.Background()); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("first Wait took %v, want immediate", elapsed)
	}
}

func TestLimiterContextCancel(t *testing.T) {
	l := NewLimiter(1)

	// Burn the immediate slot so the next Wait must sleep.
	if err := l.Wait(context.Background()); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := l.Wait(ctx); err != context.DeadlineExceeded {
		t.Errorf("Wait = %v, want context.DeadlineExceeded", err)
	}
}
