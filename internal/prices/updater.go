package prices

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/medxprts/Spacs-sub002/internal/model"
)

// Summary describes one price update pass.
type Summary struct {
	Symbols     int // symbols requested
	Quoted      int // quotes received
	Missing     int // symbols with no quote returned
	AvgDiscount float64
	Discounts   int // commons trading below trust
	Premiums    int // commons trading at or above trust
}

// Updater fetches quotes for the tracked universe and turns them into
// price rows with the trust discount attached.
type Updater struct {
	source    QuoteSource
	batchSize int
	logger    *slog.Logger
}

// NewUpdater creates an Updater. batchSize caps symbols per quote request.
func NewUpdater(source QuoteSource, batchSize int, logger *slog.Logger) *Updater {
	if batchSize <= 0 {
		batchSize = 100
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Updater{
		source:    source,
		batchSize: batchSize,
		logger:    logger,
	}
}

// symbolRef maps one quoted symbol back to its SPAC and share class.
type symbolRef struct {
	cik           int64
	class         string
	trustPerShare *float64
}

// Update fetches quotes for every listed security of the given SPACs.
func (u *Updater) Update(ctx context.Context, spacs []model.SPAC, now time.Time) ([]model.PriceRow, Summary, error) {
	refs := make(map[string]symbolRef)
	var symbols []string

	add := func(sym, class string, sp model.SPAC) {
		sym = strings.ToUpper(strings.TrimSpace(sym))
		if sym == "" {
			return
		}
		if _, dup := refs[sym]; dup {
			return
		}
		refs[sym] = symbolRef{cik: sp.CIK, class: class, trustPerShare: sp.TrustPerShare}
		symbols = append(symbols, sym)
	}

	for _, sp := range spacs {
		if sp.Delisted || sp.Status.Terminal() {
			continue
		}
		add(sp.Ticker, "common", sp)
		add(sp.UnitTicker, "unit", sp)
		add(sp.WarrantTicker, "warrant", sp)
	}

	summary := Summary{Symbols: len(symbols)}
	if len(symbols) == 0 {
		return nil, summary, nil
	}

	var rows []model.PriceRow
	var discountSum float64

	for start := 0; start < len(symbols); start += u.batchSize {
		end := min(start+u.batchSize, len(symbols))

		quotes, err := u.source.GetQuotes(ctx, symbols[start:end])
		if err != nil {
			return nil, summary, fmt.Errorf("update prices: %w", err)
		}

		for _, q := range quotes {
			ref, ok := refs[strings.ToUpper(q.Symbol)]
			if !ok {
				continue
			}

			row := model.PriceRow{
				CIK:        ref.cik,
				Symbol:     strings.ToUpper(q.Symbol),
				Class:      ref.class,
				Price:      q.Price,
				Volume:     q.Volume,
				ObservedAt: now,
			}

			if ref.class == "common" && ref.trustPerShare != nil && *ref.trustPerShare > 0 {
				d := DiscountPct(q.Price, *ref.trustPerShare)
				row.DiscountPct = &d
				discountSum += d
				if d > 0 {
					summary.Discounts++
				} else {
					summary.Premiums++
				}
			}

			rows = append(rows, row)
			summary.Quoted++
		}
	}

	summary.Missing = summary.Symbols - summary.Quoted
	if n := summary.Discounts + summary.Premiums; n > 0 {
		summary.AvgDiscount = discountSum / float64(n)
	}

	u.logger.Info("price update complete",
		"symbols", summary.Symbols,
		"quoted", summary.Quoted,
		"missing", summary.Missing,
		"avg_discount_pct", summary.AvgDiscount,
	)

	return rows, summary, nil
}
