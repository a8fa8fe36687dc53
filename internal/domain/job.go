package domain

import "fmt"

// JobKind identifies a background operation on the mapping engine
type JobKind int

const (
	JobOpenDatabase JobKind = iota
	JobSaveDatabase
	JobRecover
	JobExport
	JobOptimize
	JobWriteExportedMesh
)

var jobNames = map[JobKind]string{
	JobOpenDatabase:      "open_database",
	JobSaveDatabase:      "save_database",
	JobRecover:           "recover",
	JobExport:            "export",
	JobOptimize:          "optimize",
	JobWriteExportedMesh: "write_exported_mesh",
}

func (k JobKind) String() string {
	if name, ok := jobNames[k]; ok {
		return name
	}
	return fmt.Sprintf("job(%d)", int(k))
}

// Title is the heading of the progress dialog shown while the job runs
func (k JobKind) Title() string {
	switch k {
	case JobOpenDatabase:
		return "Loading"
	case JobSaveDatabase:
		return "Saving"
	case JobRecover:
		return "Recovering"
	case JobExport:
		return "Exporting"
	case JobOptimize:
		return "Post-Processing"
	case JobWriteExportedMesh:
		return "Writing"
	default:
		return "Processing"
	}
}

// JobOutcome is how a background job ended
type JobOutcome int

const (
	OutcomeSucceeded JobOutcome = iota
	OutcomeFailed
	OutcomeCanceled
)

func (o JobOutcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeFailed:
		return "failed"
	case OutcomeCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// JobResult is the typed result of a job, interpreted only by the
// completion handler of the job that produced it.
type JobResult struct {
	Code    int
	Err     error
	Outcome JobOutcome
	Path    string
}

// Succeeded builds a successful result
func Succeeded(code int) JobResult {
	return JobResult{Outcome: OutcomeSucceeded, Code: code}
}

// Failed builds a failed result
func Failed(code int, err error) JobResult {
	return JobResult{Outcome: OutcomeFailed, Code: code, Err: err}
}

// OK reports whether the job succeeded
func (r JobResult) OK() bool {
	return r.Outcome == OutcomeSucceeded
}

// Canceled reports whether the job was canceled
func (r JobResult) Canceled() bool {
	return r.Outcome == OutcomeCanceled
}
