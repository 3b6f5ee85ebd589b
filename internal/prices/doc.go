// Package prices fetches market quotes for SPAC securities and derives the
// trust discount and annualized yield-to-deadline that the opportunity
// screener ranks on.
package prices
