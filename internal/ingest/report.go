package ingest

import "fmt"

// Report aggregates per-item outcomes across one ingestion run.
// Success + Failed + Skipped always equals the number of items processed.
type Report struct {
	Success  int
	Failed   int
	Skipped  int
	Failures []string // "<name><extension>: <reason>", in processing order
}

func (r *Report) recordSuccess() {
	r.Success++
}

func (r *Report) recordSkipped() {
	r.Skipped++
}

func (r *Report) recordFailure(name, extension string, err error) {
	r.Failed++
	reason := "Unknown error"
	if err != nil && err.Error() != "" {
		reason = err.Error()
	}
	r.Failures = append(r.Failures, fmt.Sprintf("%s%s: %s", name, extension, reason))
}

// Total is the number of items the report accounts for.
func (r *Report) Total() int {
	return r.Success + r.Failed + r.Skipped
}

func (r *Report) String() string {
	return fmt.Sprintf("uploaded %d, skipped %d, failed %d", r.Success, r.Skipped, r.Failed)
}
