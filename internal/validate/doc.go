// Package validate checks stored SPAC records for integrity problems.
//
// Each rule inspects one SPAC and yields a finding at one of four
// severities: CRITICAL findings mean the record is actively misleading,
// ERROR means it is internally inconsistent, WARNING means it is suspect,
// and INFO is housekeeping. The full rule set runs over the tracked
// universe and produces a Report that the CLI renders.
package validate
