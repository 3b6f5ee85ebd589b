// Package monitor polls EDGAR for new filings by tracked SPACs.
//
// On each cycle the monitor fans out over the active SPAC universe with
// bounded concurrency, fetches each registrant's recent submissions, and
// hands filings it has not seen before to a FilingHandler. The seen set is
// warmed from the database at startup so a restart does not replay filings
// already processed.
package monitor
