package entity

// JobReport aggregates the outcomes of a run
type JobReport struct {
	Successes int
	Failures  []string
}

// NewJobReport builds a report from results ordered by dispatch index.
// Nil entries (tasks that never ran) are skipped.
func NewJobReport(results []*DomainResult) *JobReport {
	report := &JobReport{Failures: make([]string, 0)}
	for _, result := range results {
		if result == nil {
			continue
		}
		report.Add(result)
	}
	return report
}

// Add records a single result
func (r *JobReport) Add(result *DomainResult) {
	if result.Succeeded() {
		r.Successes++
		return
	}
	r.Failures = append(r.Failures, result.Failure.Message())
}

// Total returns the number of results recorded
func (r *JobReport) Total() int {
	return r.Successes + len(r.Failures)
}
