package prices

import (
	"sort"
	"time"

	"github.com/medxprts/Spacs-sub002/internal/model"
)

// Opportunity is one SPAC whose common shares trade at a discount to trust
// with a live deadline, ranked by the annualized redemption yield.
type Opportunity struct {
	CIK      int64
	Name     string
	Ticker   string
	Status   model.Status
	Price    float64
	Trust    float64
	Deadline time.Time
	Discount float64 // percent below trust
	Yield    float64 // annualized, percent
}

// Screen ranks SPACs by annualized yield-to-deadline. Only SPACs with a
// known trust value, a future deadline, and a common-share quote qualify;
// those yielding below minYield are dropped.
func Screen(spacs []model.SPAC, quotes []model.PriceRow, minYield float64, now time.Time) []Opportunity {
	common := make(map[int64]model.PriceRow)
	for _, q := range quotes {
		if q.Class != "common" {
			continue
		}
		prev, ok := common[q.CIK]
		if !ok || q.ObservedAt.After(prev.ObservedAt) {
			common[q.CIK] = q
		}
	}

	var out []Opportunity
	for _, sp := range spacs {
		if sp.Status.Terminal() || sp.Delisted {
			continue
		}
		if sp.TrustPerShare == nil || sp.Deadline == nil || !sp.Deadline.After(now) {
			continue
		}
		q, ok := common[sp.CIK]
		if !ok || q.Price <= 0 {
			continue
		}

		y := AnnualizedYield(q.Price, *sp.TrustPerShare, *sp.Deadline, now)
		if y < minYield {
			continue
		}

		out = append(out, Opportunity{
			CIK:      sp.CIK,
			Name:     sp.Name,
			Ticker:   sp.Ticker,
			Status:   sp.Status,
			Price:    q.Price,
			Trust:    *sp.TrustPerShare,
			Deadline: *sp.Deadline,
			Discount: DiscountPct(q.Price, *sp.TrustPerShare),
			Yield:    y,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Yield > out[j].Yield })
	return out
}
