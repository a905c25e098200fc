package domain

import (
	"time"

	"github.com/google/uuid"
)

type Counts struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
	NotRun    int `json:"not_run"`
}

// BatchOutcome holds one result per submitted job, in submission order.
type BatchOutcome struct {
	ID         string       `json:"id"`
	Operation  Operation    `json:"operation"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Cancelled  bool         `json:"cancelled"`
	Results    []FileResult `json:"results"`
}

// NewBatchOutcome allocates the slot array for jobs, every slot not_run.
func NewBatchOutcome(op Operation, jobs []FileJob) *BatchOutcome {
	results := make([]FileResult, len(jobs))
	for i, job := range jobs {
		job.Index = i
		results[i] = NotRunResult(job)
	}
	return &BatchOutcome{
		ID:        uuid.NewString(),
		Operation: op,
		StartedAt: time.Now().UTC(),
		Results:   results,
	}
}

func (o *BatchOutcome) Counts() Counts {
	c := Counts{Total: len(o.Results)}
	for _, r := range o.Results {
		switch r.Status {
		case JobStatusSucceeded:
			c.Succeeded++
		case JobStatusFailed:
			c.Failed++
		case JobStatusSkipped:
			c.Skipped++
		default:
			c.NotRun++
		}
	}
	return c
}

// OK reports whether every file either succeeded or was skipped.
func (o *BatchOutcome) OK() bool {
	c := o.Counts()
	return c.Failed == 0 && c.NotRun == 0
}

func (o *BatchOutcome) Elapsed() time.Duration {
	if o.FinishedAt.IsZero() {
		return 0
	}
	return o.FinishedAt.Sub(o.StartedAt)
}

// BatchSummary is the listing form of a stored outcome.
type BatchSummary struct {
	ID         string    `json:"id"`
	Operation  Operation `json:"operation"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Cancelled  bool      `json:"cancelled"`
	Counts     Counts    `json:"counts"`
}

func (o *BatchOutcome) Summary() BatchSummary {
	return BatchSummary{
		ID:         o.ID,
		Operation:  o.Operation,
		StartedAt:  o.StartedAt,
		FinishedAt: o.FinishedAt,
		Cancelled:  o.Cancelled,
		Counts:     o.Counts(),
	}
}
