// Package process implements the filing processors.
//
// Each processor watches for a class of filings (by form type and, for 8-Ks,
// item codes), extracts structured facts from the document text, and returns
// field updates, lifecycle events, and alerts. Processors never write to the
// database themselves; the pipeline dispatcher applies their results.
//
// Extraction is heuristic by nature: filings are narrative prose, so the
// helpers in extract.go pull dollar amounts, share counts, percentages, and
// dates from the text near anchor keywords. A processor that finds nothing
// returns an empty Result, never an error.
package process
