package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bnema/audiobatch/internal/domain"
	"github.com/bnema/audiobatch/internal/infrastructure/logger"
	"github.com/bnema/audiobatch/internal/port"
)

const maxDefaultWorkers = 4

// DefaultWorkers is the pool size used when none is configured.
func DefaultWorkers() int {
	return max(1, min(runtime.NumCPU(), maxDefaultWorkers))
}

// Runner executes a batch of file jobs on a bounded worker pool. Per-file
// failures are recorded in the outcome; only a missing toolchain or an
// unobtainable output lock fails the whole batch.
type Runner struct {
	converter     port.MediaConverter
	validator     port.InputValidator
	history       port.HistoryStore
	locker        port.DirLocker
	fingerprinter port.Fingerprinter
	tags          port.TagReader
	events        EventPublisher
	workers       int

	outputs pathLocks
}

// NewRunner wires a runner. Everything but converter may be nil.
func NewRunner(
	converter port.MediaConverter,
	validator port.InputValidator,
	history port.HistoryStore,
	locker port.DirLocker,
	fingerprinter port.Fingerprinter,
	events EventPublisher,
	workers int,
) *Runner {
	if workers <= 0 {
		workers = DefaultWorkers()
	}
	return &Runner{
		converter:     converter,
		validator:     validator,
		history:       history,
		locker:        locker,
		fingerprinter: fingerprinter,
		events:        events,
		workers:       workers,
	}
}

// WithTagReader makes probe results carry the file's embedded tags. A tag
// read failure is logged and does not fail the job.
func (r *Runner) WithTagReader(reader port.TagReader) *Runner {
	r.tags = reader
	return r
}

// Run processes jobs and returns one result per job in submission order.
// Jobs never dispatched because ctx was cancelled stay not_run.
func (r *Runner) Run(ctx context.Context, jobs []domain.FileJob) (*domain.BatchOutcome, error) {
	if err := r.converter.CheckToolchain(); err != nil {
		return nil, err
	}

	jobs = append([]domain.FileJob(nil), jobs...)
	for i := range jobs {
		jobs[i].Index = i
	}

	op := domain.OperationProbe
	if len(jobs) > 0 {
		op = jobs[0].Operation
	}
	outcome := domain.NewBatchOutcome(op, jobs)
	logger.Info.Printf("batch %s: %s %d file(s) with %d worker(s)", outcome.ID, op, len(jobs), r.workers)

	release, err := r.lockOutputDirs(ctx, jobs)
	if err != nil && ctx.Err() == nil {
		return nil, err
	}
	defer release()

	collisions := outputCollisions(jobs)
	var done atomic.Int64
	total := len(jobs)

	g := new(errgroup.Group)
	g.SetLimit(r.workers)
	for _, job := range jobs {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			outcome.Results[job.Index] = r.runJob(ctx, outcome.ID, job, collisions[job.Index], &done, total)
			return nil
		})
	}
	_ = g.Wait()

	outcome.FinishedAt = time.Now().UTC()
	outcome.Cancelled = ctx.Err() != nil && interrupted(outcome)

	c := outcome.Counts()
	logger.Info.Printf("batch %s finished in %s: %d succeeded, %d failed, %d skipped, %d not run",
		outcome.ID, outcome.Elapsed().Round(time.Millisecond), c.Succeeded, c.Failed, c.Skipped, c.NotRun)
	r.publish(outcome.ID, Event{
		Type:    EventBatchFinished,
		Done:    int(done.Load()),
		Total:   total,
		Message: batchMessage(outcome),
	})

	if r.history != nil {
		if err := r.history.SaveOutcome(context.WithoutCancel(ctx), outcome); err != nil {
			logger.Error.Printf("batch %s: save history: %v", outcome.ID, err)
		}
	}

	return outcome, nil
}

// outputCollisions maps the index of every convert job whose output path
// was already claimed by an earlier job in the batch to the error it fails
// with. The earliest job keeps the path, so the result does not depend on
// completion order.
func outputCollisions(jobs []domain.FileJob) map[int]error {
	claimed := make(map[string]domain.FileJob)
	collisions := make(map[int]error)
	for _, job := range jobs {
		if job.Operation != domain.OperationConvert || job.Convert.Validate() != nil {
			continue
		}
		out := job.Convert.OutputPathFor(job.InputPath)
		key := absPath(out)
		if first, ok := claimed[key]; ok {
			collisions[job.Index] = fmt.Errorf("%w: output %s is also the output of %s",
				domain.ErrInvalidRequest, out, first.InputPath)
			continue
		}
		claimed[key] = job
	}
	return collisions
}

// lockOutputDirs takes the cross-process lock on every distinct output
// directory once, in sorted order so two batches cannot deadlock.
func (r *Runner) lockOutputDirs(ctx context.Context, jobs []domain.FileJob) (func(), error) {
	noop := func() {}
	if r.locker == nil {
		return noop, nil
	}

	seen := make(map[string]struct{})
	var dirs []string
	for _, job := range jobs {
		if job.Operation != domain.OperationConvert || job.Convert.Validate() != nil {
			continue
		}
		dir := filepath.Dir(absPath(job.Convert.OutputPathFor(job.InputPath)))
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	var unlocks []func()
	release := func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}
	for _, dir := range dirs {
		unlock, err := r.locker.Lock(ctx, dir)
		if err != nil {
			release()
			return noop, fmt.Errorf("lock output directory %s: %w", logger.SanitizeForLog(dir), err)
		}
		unlocks = append(unlocks, unlock)
	}
	return release, nil
}

func (r *Runner) runJob(ctx context.Context, batchID string, job domain.FileJob, collision error, done *atomic.Int64, total int) domain.FileResult {
	res := domain.NotRunResult(job)
	if ctx.Err() != nil {
		return res
	}

	res.StartedAt = time.Now().UTC()
	r.publish(batchID, Event{
		Type:      EventJobStarted,
		Index:     job.Index,
		InputPath: job.InputPath,
		Done:      int(done.Load()),
		Total:     total,
	})

	switch job.Operation {
	case domain.OperationProbe:
		r.probe(ctx, &res, job)
	case domain.OperationConvert:
		r.convert(ctx, &res, job, collision)
	default:
		res.MarkAsFailed(fmt.Errorf("%w: unknown operation %q", domain.ErrInvalidRequest, job.Operation))
	}
	res.FinishedAt = time.Now().UTC()

	if res.Status == domain.JobStatusFailed {
		logger.Warn.Printf("batch %s: %s %s: %s", batchID, job.Operation, logger.SanitizeForLog(job.InputPath), logger.SanitizeForLog(res.ErrorMessage))
	} else {
		logger.Debug.Printf("batch %s: %s %s: %s in %s", batchID, job.Operation, logger.SanitizeForLog(job.InputPath), res.Status, res.Elapsed())
	}

	n := done.Add(1)
	r.publish(batchID, Event{
		Type:      EventJobFinished,
		Index:     job.Index,
		InputPath: job.InputPath,
		Status:    res.Status,
		Message:   res.ErrorMessage,
		Done:      int(n),
		Total:     total,
	})
	return res
}

func (r *Runner) probe(ctx context.Context, res *domain.FileResult, job domain.FileJob) {
	if err := r.checkInput(res, job.InputPath); err != nil {
		res.MarkAsFailed(err)
		return
	}

	probe, err := r.converter.Probe(ctx, job.InputPath)
	if err != nil {
		res.MarkAsFailed(err)
		return
	}
	if r.tags != nil {
		tags, err := r.tags.ReadTags(job.InputPath)
		if err != nil {
			logger.Debug.Printf("read tags %s: %v", logger.SanitizeForLog(job.InputPath), err)
		} else {
			probe.Tags = tags
		}
	}
	res.Probe = probe
	res.MarkAsSucceeded()
}

func (r *Runner) convert(ctx context.Context, res *domain.FileResult, job domain.FileJob, collision error) {
	req := job.Convert
	if err := req.Validate(); err != nil {
		res.MarkAsFailed(err)
		return
	}
	if err := r.checkInput(res, job.InputPath); err != nil {
		res.MarkAsFailed(err)
		return
	}

	out := req.OutputPathFor(job.InputPath)
	res.OutputPath = out
	if samePath(job.InputPath, out) {
		res.MarkAsFailed(fmt.Errorf("%w: output path is the input file", domain.ErrInvalidRequest))
		return
	}
	if collision != nil {
		res.MarkAsFailed(collision)
		return
	}

	unlock := r.outputs.Lock(absPath(out))
	defer unlock()
	if err := ctx.Err(); err != nil {
		res.MarkAsFailed(fmt.Errorf("%w: %v", domain.ErrCancelled, err))
		return
	}

	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		res.MarkAsFailed(fmt.Errorf("%w: create output directory: %v", domain.ErrOutputWriteFailed, err))
		return
	}

	policy := req.Policy()
	if _, err := os.Stat(out); err == nil {
		switch policy {
		case domain.OverwriteSkip:
			res.MarkAsSkipped("output exists: " + out)
			return
		case domain.OverwriteFail:
			res.MarkAsFailed(fmt.Errorf("%w: %s", domain.ErrOutputExists, out))
			return
		}
	}

	params := domain.TranscodeParams{
		SampleRate: req.SampleRate,
		Channels:   req.Channels,
		Overwrite:  policy == domain.OverwriteReplace,
	}
	if req.TargetIsWAV(job.InputPath) {
		depth := req.BitDepth
		if depth == 0 {
			source, err := r.converter.Probe(ctx, job.InputPath)
			if err != nil {
				res.MarkAsFailed(err)
				return
			}
			res.Probe = source
			depth = domain.NearestPCMDepth(source.BitsPerSample)
		}
		codec, err := domain.PCMCodec(depth)
		if err != nil {
			res.MarkAsFailed(err)
			return
		}
		params.Codec = codec
	}

	if err := r.converter.Convert(ctx, job.InputPath, out, params); err != nil {
		res.MarkAsFailed(err)
		return
	}
	res.MarkAsSucceeded()
}

// checkInput runs the pre-flight sniff and, when enabled, fingerprints the
// input. A fingerprint failure is logged but does not fail the job.
func (r *Runner) checkInput(res *domain.FileResult, path string) error {
	if r.validator != nil {
		if err := r.validator.CheckInput(path); err != nil {
			return err
		}
	}
	if r.fingerprinter != nil {
		sum, err := r.fingerprinter.Fingerprint(path)
		if err != nil {
			logger.Warn.Printf("fingerprint %s: %v", logger.SanitizeForLog(path), err)
		} else {
			res.Fingerprint = sum
		}
	}
	return nil
}

func (r *Runner) publish(batchID string, event Event) {
	if r.events != nil {
		r.events.Publish(batchID, event)
	}
}

// interrupted reports whether cancellation actually cost the batch a file.
func interrupted(o *domain.BatchOutcome) bool {
	for _, res := range o.Results {
		if res.Status == domain.JobStatusNotRun || res.ErrorKind == domain.ErrorKindCancelled {
			return true
		}
	}
	return false
}

func batchMessage(o *domain.BatchOutcome) string {
	c := o.Counts()
	msg := fmt.Sprintf("%d/%d succeeded", c.Succeeded, c.Total)
	if o.Cancelled {
		msg += " (cancelled)"
	}
	return msg
}

func absPath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	return abs
}

func samePath(a, b string) bool {
	if absPath(a) == absPath(b) {
		return true
	}
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}

// pathLocks serializes writers of the same output file across concurrent
// Run calls on one Runner.
type pathLocks struct {
	mu    sync.Mutex
	locks map[string]*pathLock
}

type pathLock struct {
	mu   sync.Mutex
	refs int
}

func (p *pathLocks) Lock(key string) (unlock func()) {
	p.mu.Lock()
	if p.locks == nil {
		p.locks = make(map[string]*pathLock)
	}
	l, ok := p.locks[key]
	if !ok {
		l = &pathLock{}
		p.locks[key] = l
	}
	l.refs++
	p.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		p.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(p.locks, key)
		}
		p.mu.Unlock()
	}
}
