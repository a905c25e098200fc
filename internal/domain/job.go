package domain

import "time"

type Operation string

const (
	OperationProbe   Operation = "probe"
	OperationConvert Operation = "convert"
)

func (o Operation) Valid() bool {
	return o == OperationProbe || o == OperationConvert
}

type JobStatus string

const (
	JobStatusSucceeded JobStatus = "succeeded"
	JobStatusFailed    JobStatus = "failed"
	JobStatusSkipped   JobStatus = "skipped"
	JobStatusNotRun    JobStatus = "not_run"
)

// FileJob is one input file submitted to a batch. Index is its position in
// the submission order and is the slot its result lands in.
type FileJob struct {
	Index     int
	InputPath string
	Operation Operation
	Convert   *ConvertRequest
}

// NewJobs builds one job per path, in order, sharing the same request.
func NewJobs(paths []string, op Operation, req *ConvertRequest) []FileJob {
	jobs := make([]FileJob, len(paths))
	for i, p := range paths {
		jobs[i] = FileJob{
			Index:     i,
			InputPath: p,
			Operation: op,
			Convert:   req,
		}
	}
	return jobs
}

type FileResult struct {
	Index        int          `json:"index"`
	InputPath    string       `json:"input_path"`
	Operation    Operation    `json:"operation"`
	Status       JobStatus    `json:"status"`
	Probe        *ProbeResult `json:"probe,omitempty"`
	OutputPath   string       `json:"output_path,omitempty"`
	ErrorKind    ErrorKind    `json:"error_kind,omitempty"`
	ErrorMessage string       `json:"error_message,omitempty"`
	Fingerprint  string       `json:"fingerprint,omitempty"`
	StartedAt    time.Time    `json:"started_at,omitzero"`
	FinishedAt   time.Time    `json:"finished_at,omitzero"`
}

// NotRunResult is the placeholder every slot starts with.
func NotRunResult(job FileJob) FileResult {
	return FileResult{
		Index:     job.Index,
		InputPath: job.InputPath,
		Operation: job.Operation,
		Status:    JobStatusNotRun,
	}
}

func (r *FileResult) MarkAsFailed(err error) {
	r.Status = JobStatusFailed
	r.ErrorKind = KindOf(err)
	r.ErrorMessage = err.Error()
}

func (r *FileResult) MarkAsSkipped(reason string) {
	r.Status = JobStatusSkipped
	r.ErrorKind = ErrorKindOutputExists
	r.ErrorMessage = reason
}

func (r *FileResult) MarkAsSucceeded() {
	r.Status = JobStatusSucceeded
	r.ErrorKind = ErrorKindNone
	r.ErrorMessage = ""
}

func (r *FileResult) Elapsed() time.Duration {
	if r.StartedAt.IsZero() || r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
