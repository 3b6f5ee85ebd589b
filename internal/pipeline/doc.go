// Package pipeline moves discovered filings from the monitor to the
// extraction processors and on to the batch writers.
//
// Flow:
//
//	monitor -> Queue[model.Filing] -> Dispatcher -> processors
//	                                      |-> filing queue  -> writer.FilingWriter
//	                                      |-> audit queue   -> writer.AuditWriter
//	                                      |-> alert sink    -> notify
//
// The Queue is an unbounded-growth ring buffer: the monitor must never
// block on a slow consumer during a poll cycle.
package pipeline
