package prices

import "time"

// DiscountPct returns the discount of price to trust value per share, as a
// percentage of trust value. Negative means the share trades above trust.
func DiscountPct(price, trustPerShare float64) float64 {
	if trustPerShare <= 0 {
		return 0
	}
	return (trustPerShare - price) / trustPerShare * 100
}

// AnnualizedYield returns the annualized return, in percent, of buying at
// price and redeeming at trustPerShare on the deadline. Returns 0 when any
// input makes the calculation meaningless (no deadline upside, free or
// negative price, deadline in the past).
func AnnualizedYield(price, trustPerShare float64, deadline, now time.Time) float64 {
	if price <= 0 || trustPerShare <= 0 {
		return 0
	}
	days := deadline.Sub(now).Hours() / 24
	if days < 1 {
		return 0
	}
	total := trustPerShare/price - 1
	return total * (365 / days) * 100
}
