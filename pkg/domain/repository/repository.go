package repository

import "github.com/WangYihang/Typosquat-Generator/pkg/domain/entity"

// ResultWriter persists the variants of a base domain
type ResultWriter interface {
	// Write writes one file for the base domain and returns its path
	Write(name string, variants []entity.Variant) (string, error)
	// Path returns where Write puts the file for name
	Path(name string) string
}

// ReportWriter persists the aggregate failure report
type ReportWriter interface {
	// WriteReport writes the failure lines and returns the report path
	WriteReport(report *entity.JobReport) (string, error)
}

// TaskQueue manages pending tasks
type TaskQueue interface {
	// Enqueue adds a task to the queue
	Enqueue(task *entity.Task) bool
	// Dequeue removes and returns a task from the queue
	Dequeue() (*entity.Task, bool)
	// Len returns the current queue length
	Len() int
	// Close closes the queue
	Close()
}

// ResultQueue carries worker results back to the coordinator
type ResultQueue interface {
	// Send sends a result to the queue
	Send(result *entity.DomainResult)
	// Receive receives a result from the queue
	Receive() (*entity.DomainResult, bool)
	// Close closes the queue
	Close()
}
