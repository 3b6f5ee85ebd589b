// Package edgar provides the SEC EDGAR client for filing discovery and retrieval.
//
// Endpoints:
//   - Submissions: https://data.sec.gov/submissions/CIK##########.json
//   - Full-text search: https://efts.sec.gov/LATEST/search-index
//   - Document archives: https://www.sec.gov/Archives/edgar/data
//
// SEC fair-access rules apply to all of them: requests carry a User-Agent
// identifying a contact address, and the client enforces a hard ceiling of
// 10 requests per second across all callers.
package edgar
