package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/audiobatch/internal/domain"
	"github.com/bnema/audiobatch/internal/port/mocks"
)

// fakeConverter stands in for ffmpeg/ffprobe. Probe answers from probes,
// Convert writes a small file to the output path.
type fakeConverter struct {
	probes     map[string]*domain.ProbeResult
	probeErrs  map[string]error
	delays     map[string]time.Duration
	blockUntil chan struct{}
	started    chan string

	active    atomic.Int32
	maxActive atomic.Int32

	mu       sync.Mutex
	converts []convertCall
}

type convertCall struct {
	in, out string
	params  domain.TranscodeParams
}

func newFakeConverter() *fakeConverter {
	return &fakeConverter{
		probes:    make(map[string]*domain.ProbeResult),
		probeErrs: make(map[string]error),
		delays:    make(map[string]time.Duration),
	}
}

func (f *fakeConverter) CheckToolchain() error { return nil }

func (f *fakeConverter) enter(ctx context.Context, path string) error {
	n := f.active.Add(1)
	for {
		cur := f.maxActive.Load()
		if n <= cur || f.maxActive.CompareAndSwap(cur, n) {
			break
		}
	}
	if f.started != nil {
		f.started <- path
	}
	if f.blockUntil != nil {
		select {
		case <-f.blockUntil:
		case <-ctx.Done():
			return fmt.Errorf("fake: %w: %v", domain.ErrCancelled, ctx.Err())
		}
	}
	if d := f.delays[path]; d > 0 {
		time.Sleep(d)
	}
	return nil
}

func (f *fakeConverter) leave() { f.active.Add(-1) }

func (f *fakeConverter) Probe(ctx context.Context, path string) (*domain.ProbeResult, error) {
	defer f.leave()
	if err := f.enter(ctx, path); err != nil {
		return nil, err
	}
	if err := f.probeErrs[path]; err != nil {
		return nil, err
	}
	if p, ok := f.probes[path]; ok {
		return p, nil
	}
	return &domain.ProbeResult{Duration: 10, SampleRate: 44100, Channels: 2, Codec: "flac", BitsPerSample: 16}, nil
}

func (f *fakeConverter) Convert(ctx context.Context, in, out string, params domain.TranscodeParams) error {
	defer f.leave()
	if err := f.enter(ctx, in); err != nil {
		return err
	}
	f.mu.Lock()
	f.converts = append(f.converts, convertCall{in: in, out: out, params: params})
	f.mu.Unlock()
	return os.WriteFile(out, []byte("RIFF-converted"), 0644)
}

func (f *fakeConverter) calls() []convertCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]convertCall(nil), f.converts...)
}

func writeInputs(t *testing.T, dir string, names ...string) []string {
	t.Helper()
	paths := make([]string, len(names))
	for i, n := range names {
		paths[i] = filepath.Join(dir, n)
		require.NoError(t, os.MkdirAll(filepath.Dir(paths[i]), 0755))
		require.NoError(t, os.WriteFile(paths[i], []byte("fLaC audio"), 0644))
	}
	return paths
}

func TestRunner_Run_ProbePreservesOrder(t *testing.T) {
	conv := newFakeConverter()
	paths := writeInputs(t, t.TempDir(), "1.flac", "2.flac", "3.flac", "4.flac", "5.flac", "6.flac", "7.flac", "8.flac")
	for i, p := range paths {
		// Later files finish first.
		conv.delays[p] = time.Duration(len(paths)-i) * 5 * time.Millisecond
	}

	runner := NewRunner(conv, nil, nil, nil, nil, nil, 3)
	outcome, err := runner.Run(context.Background(), domain.NewJobs(paths, domain.OperationProbe, nil))

	require.NoError(t, err)
	require.Len(t, outcome.Results, len(paths))
	for i, res := range outcome.Results {
		assert.Equal(t, i, res.Index)
		assert.Equal(t, paths[i], res.InputPath)
		assert.Equal(t, domain.JobStatusSucceeded, res.Status)
		require.NotNil(t, res.Probe)
		assert.Equal(t, 44100, res.Probe.SampleRate)
		assert.False(t, res.StartedAt.IsZero())
		assert.False(t, res.FinishedAt.Before(res.StartedAt))
	}
	assert.LessOrEqual(t, conv.maxActive.Load(), int32(3))
	assert.False(t, outcome.Cancelled)
	assert.True(t, outcome.OK())
}

func TestRunner_Run_OneUnreadableFile(t *testing.T) {
	dir := t.TempDir()
	paths := writeInputs(t, dir, "a.flac", "b.flac", "d.flac")
	missing := filepath.Join(dir, "c.flac")
	paths = []string{paths[0], paths[1], missing, paths[2]}

	validator := mocks.NewInputValidatorMock(t)
	validator.EXPECT().CheckInput(mock.AnythingOfType("string")).RunAndReturn(func(p string) error {
		if p == missing {
			return fmt.Errorf("%w: %s", domain.ErrFileUnreadable, p)
		}
		return nil
	}).Times(4)

	runner := NewRunner(newFakeConverter(), validator, nil, nil, nil, nil, 2)
	outcome, err := runner.Run(context.Background(), domain.NewJobs(paths, domain.OperationProbe, nil))

	require.NoError(t, err)
	assert.Equal(t, domain.Counts{Total: 4, Succeeded: 3, Failed: 1}, outcome.Counts())
	assert.Equal(t, domain.JobStatusFailed, outcome.Results[2].Status)
	assert.Equal(t, domain.ErrorKindFileUnreadable, outcome.Results[2].ErrorKind)
	assert.Nil(t, outcome.Results[2].Probe)
	assert.False(t, outcome.OK())
}

func TestRunner_Run_ProbeErrorIsPerFile(t *testing.T) {
	conv := newFakeConverter()
	paths := writeInputs(t, t.TempDir(), "a.flac", "b.flac")
	conv.probeErrs[paths[0]] = fmt.Errorf("ffprobe: %w: no audio stream", domain.ErrUnsupportedFormat)

	runner := NewRunner(conv, nil, nil, nil, nil, nil, 1)
	outcome, err := runner.Run(context.Background(), domain.NewJobs(paths, domain.OperationProbe, nil))

	require.NoError(t, err)
	assert.Equal(t, domain.ErrorKindUnsupportedFormat, outcome.Results[0].ErrorKind)
	assert.Equal(t, domain.JobStatusSucceeded, outcome.Results[1].Status)
}

func TestRunner_Run_ToolchainMissing(t *testing.T) {
	conv := mocks.NewMediaConverterMock(t)
	conv.EXPECT().CheckToolchain().
		Return(fmt.Errorf("%w: ffprobe not found", domain.ErrToolchainMissing)).
		Once()
	history := mocks.NewHistoryStoreMock(t)

	runner := NewRunner(conv, nil, history, nil, nil, nil, 2)
	outcome, err := runner.Run(context.Background(), domain.NewJobs([]string{"/a.flac"}, domain.OperationProbe, nil))

	assert.ErrorIs(t, err, domain.ErrToolchainMissing)
	assert.Nil(t, outcome)
}

func TestRunner_Run_EmptyBatch(t *testing.T) {
	runner := NewRunner(newFakeConverter(), nil, nil, nil, nil, nil, 2)
	outcome, err := runner.Run(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, outcome.Results)
	assert.True(t, outcome.OK())
}

func TestRunner_Run_ConvertOverwritePolicies(t *testing.T) {
	tests := []struct {
		name        string
		policy      domain.OverwritePolicy
		wantStatus  domain.JobStatus
		wantKind    domain.ErrorKind
		wantContent string
		wantCalls   int
	}{
		{"fail leaves file untouched", domain.OverwriteFail, domain.JobStatusFailed, domain.ErrorKindOutputExists, "old", 0},
		{"default policy is fail", "", domain.JobStatusFailed, domain.ErrorKindOutputExists, "old", 0},
		{"skip leaves file untouched", domain.OverwriteSkip, domain.JobStatusSkipped, domain.ErrorKindOutputExists, "old", 0},
		{"overwrite replaces file", domain.OverwriteReplace, domain.JobStatusSucceeded, domain.ErrorKindNone, "RIFF-converted", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			outDir := filepath.Join(dir, "out")
			paths := writeInputs(t, dir, "song.mp3")
			require.NoError(t, os.MkdirAll(outDir, 0755))
			existing := filepath.Join(outDir, "song.wav")
			require.NoError(t, os.WriteFile(existing, []byte("old"), 0644))

			conv := newFakeConverter()
			req := &domain.ConvertRequest{OutputDir: outDir, BitDepth: 16, Overwrite: tt.policy}
			runner := NewRunner(conv, nil, nil, nil, nil, nil, 1)

			outcome, err := runner.Run(context.Background(), domain.NewJobs(paths, domain.OperationConvert, req))

			require.NoError(t, err)
			res := outcome.Results[0]
			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Equal(t, tt.wantKind, res.ErrorKind)
			assert.Equal(t, existing, res.OutputPath)

			data, err := os.ReadFile(existing)
			require.NoError(t, err)
			assert.Equal(t, tt.wantContent, string(data))

			calls := conv.calls()
			require.Len(t, calls, tt.wantCalls)
			if tt.wantCalls > 0 {
				assert.True(t, calls[0].params.Overwrite)
			}
		})
	}
}

func TestRunner_Run_ConvertParams(t *testing.T) {
	t.Run("explicit target", func(t *testing.T) {
		dir := t.TempDir()
		paths := writeInputs(t, dir, "in/a.mp3")
		outDir := filepath.Join(dir, "new", "out")
		conv := newFakeConverter()

		req := &domain.ConvertRequest{SampleRate: 48000, Channels: 1, BitDepth: 24, OutputDir: outDir}
		outcome, err := NewRunner(conv, nil, nil, nil, nil, nil, 1).
			Run(context.Background(), domain.NewJobs(paths, domain.OperationConvert, req))

		require.NoError(t, err)
		assert.Equal(t, domain.JobStatusSucceeded, outcome.Results[0].Status)
		calls := conv.calls()
		require.Len(t, calls, 1)
		assert.Equal(t, filepath.Join(outDir, "a.wav"), calls[0].out)
		assert.Equal(t, domain.TranscodeParams{SampleRate: 48000, Channels: 1, Codec: "pcm_s24le"}, calls[0].params)
		assert.FileExists(t, calls[0].out)
	})

	t.Run("zero bit depth preserves source depth", func(t *testing.T) {
		dir := t.TempDir()
		paths := writeInputs(t, dir, "a.flac", "b.flac")
		conv := newFakeConverter()
		conv.probes[paths[0]] = &domain.ProbeResult{Duration: 1, SampleRate: 96000, Channels: 2, BitsPerSample: 24}
		conv.probes[paths[1]] = &domain.ProbeResult{Duration: 1, SampleRate: 44100, Channels: 2}

		req := &domain.ConvertRequest{OutputDir: filepath.Join(dir, "out")}
		outcome, err := NewRunner(conv, nil, nil, nil, nil, nil, 1).
			Run(context.Background(), domain.NewJobs(paths, domain.OperationConvert, req))

		require.NoError(t, err)
		require.True(t, outcome.OK())
		calls := conv.calls()
		require.Len(t, calls, 2)
		codecs := map[string]string{}
		for _, c := range calls {
			codecs[c.in] = c.params.Codec
		}
		assert.Equal(t, "pcm_s24le", codecs[paths[0]])
		assert.Equal(t, "pcm_s16le", codecs[paths[1]])
		assert.NotNil(t, outcome.Results[0].Probe)
	})

	t.Run("keep container skips pcm codec", func(t *testing.T) {
		dir := t.TempDir()
		paths := writeInputs(t, dir, "a.flac")
		conv := newFakeConverter()

		req := &domain.ConvertRequest{SampleRate: 44100, OutputDir: filepath.Join(dir, "out"), KeepContainer: true}
		_, err := NewRunner(conv, nil, nil, nil, nil, nil, 1).
			Run(context.Background(), domain.NewJobs(paths, domain.OperationConvert, req))

		require.NoError(t, err)
		calls := conv.calls()
		require.Len(t, calls, 1)
		assert.Equal(t, filepath.Join(dir, "out", "a.flac"), calls[0].out)
		assert.Empty(t, calls[0].params.Codec)
	})
}

func TestRunner_Run_ConvertRejectsBadRequests(t *testing.T) {
	dir := t.TempDir()
	paths := writeInputs(t, dir, "a.wav", "b.mp3")

	t.Run("output equals input", func(t *testing.T) {
		conv := newFakeConverter()
		req := &domain.ConvertRequest{BitDepth: 16, Overwrite: domain.OverwriteReplace}

		outcome, err := NewRunner(conv, nil, nil, nil, nil, nil, 1).
			Run(context.Background(), domain.NewJobs(paths[:1], domain.OperationConvert, req))

		require.NoError(t, err)
		assert.Equal(t, domain.ErrorKindInvalidRequest, outcome.Results[0].ErrorKind)
		assert.Empty(t, conv.calls())
		data, _ := os.ReadFile(paths[0])
		assert.Equal(t, "fLaC audio", string(data))
	})

	t.Run("unsupported bit depth", func(t *testing.T) {
		conv := newFakeConverter()
		req := &domain.ConvertRequest{BitDepth: 20, OutputDir: filepath.Join(dir, "out")}

		outcome, err := NewRunner(conv, nil, nil, nil, nil, nil, 1).
			Run(context.Background(), domain.NewJobs(paths[1:], domain.OperationConvert, req))

		require.NoError(t, err)
		assert.Equal(t, domain.JobStatusFailed, outcome.Results[0].Status)
		assert.Equal(t, domain.ErrorKindInvalidRequest, outcome.Results[0].ErrorKind)
		assert.Empty(t, conv.calls())
	})
}

func TestRunner_Run_CollidingOutputsAreRejected(t *testing.T) {
	dir := t.TempDir()
	paths := writeInputs(t, dir, "x/track.mp3", "y/track.flac", "track.ogg", "other.mp3")
	conv := newFakeConverter()
	for _, p := range paths {
		conv.delays[p] = 10 * time.Millisecond
	}

	req := &domain.ConvertRequest{BitDepth: 16, OutputDir: filepath.Join(dir, "out"), Overwrite: domain.OverwriteReplace}
	outcome, err := NewRunner(conv, nil, nil, nil, nil, nil, 4).
		Run(context.Background(), domain.NewJobs(paths, domain.OperationConvert, req))

	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusSucceeded, outcome.Results[0].Status)
	assert.Equal(t, domain.JobStatusSucceeded, outcome.Results[3].Status)
	for _, res := range outcome.Results[1:3] {
		assert.Equal(t, domain.JobStatusFailed, res.Status)
		assert.Equal(t, domain.ErrorKindInvalidRequest, res.ErrorKind)
		assert.Contains(t, res.ErrorMessage, paths[0])
	}

	var converted []string
	for _, c := range conv.calls() {
		converted = append(converted, c.in)
	}
	assert.ElementsMatch(t, []string{paths[0], paths[3]}, converted)
}

func TestRunner_Run_ConcurrentRunsSerializeOnOutput(t *testing.T) {
	dir := t.TempDir()
	paths := writeInputs(t, dir, "x/track.mp3", "y/track.flac")
	conv := newFakeConverter()
	for _, p := range paths {
		conv.delays[p] = 20 * time.Millisecond
	}
	req := &domain.ConvertRequest{BitDepth: 16, OutputDir: filepath.Join(dir, "out"), Overwrite: domain.OverwriteReplace}
	runner := NewRunner(conv, nil, nil, nil, nil, nil, 2)

	var wg sync.WaitGroup
	outcomes := make([]*domain.BatchOutcome, len(paths))
	for i, p := range paths {
		wg.Add(1)
		go func() {
			defer wg.Done()
			o, err := runner.Run(context.Background(), domain.NewJobs([]string{p}, domain.OperationConvert, req))
			assert.NoError(t, err)
			outcomes[i] = o
		}()
	}
	wg.Wait()

	for _, o := range outcomes {
		require.NotNil(t, o)
		assert.Equal(t, domain.JobStatusSucceeded, o.Results[0].Status)
	}
	assert.Len(t, conv.calls(), 2)
	assert.Equal(t, int32(1), conv.maxActive.Load())
}

func TestRunner_Run_CancelledWhileWaitingOnOutput(t *testing.T) {
	dir := t.TempDir()
	paths := writeInputs(t, dir, "x/track.mp3", "y/track.flac")
	conv := newFakeConverter()
	conv.blockUntil = make(chan struct{})
	conv.started = make(chan string, 8)
	req := &domain.ConvertRequest{BitDepth: 16, OutputDir: filepath.Join(dir, "out"), Overwrite: domain.OverwriteReplace}
	runner := NewRunner(conv, nil, nil, nil, nil, nil, 1)

	first := make(chan *domain.BatchOutcome, 1)
	go func() {
		o, _ := runner.Run(context.Background(), domain.NewJobs(paths[:1], domain.OperationConvert, req))
		first <- o
	}()
	<-conv.started

	ctx, cancel := context.WithCancel(context.Background())
	second := make(chan *domain.BatchOutcome, 1)
	go func() {
		o, _ := runner.Run(ctx, domain.NewJobs(paths[1:], domain.OperationConvert, req))
		second <- o
	}()
	time.Sleep(50 * time.Millisecond)
	cancel()
	close(conv.blockUntil)

	require.Equal(t, domain.JobStatusSucceeded, (<-first).Results[0].Status)
	waiting := (<-second).Results[0]
	assert.Equal(t, domain.JobStatusFailed, waiting.Status)
	assert.Equal(t, domain.ErrorKindCancelled, waiting.ErrorKind)

	require.Len(t, conv.calls(), 1)
	assert.Equal(t, paths[0], conv.calls()[0].in)
	data, err := os.ReadFile(filepath.Join(dir, "out", "track.wav"))
	require.NoError(t, err)
	assert.Equal(t, "RIFF-converted", string(data))
}

func TestRunner_Run_Cancellation(t *testing.T) {
	conv := newFakeConverter()
	conv.blockUntil = make(chan struct{})
	conv.started = make(chan string, 8)
	paths := writeInputs(t, t.TempDir(), "a.flac", "b.flac", "c.flac", "d.flac")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-conv.started
		cancel()
	}()

	outcome, err := NewRunner(conv, nil, nil, nil, nil, nil, 1).
		Run(ctx, domain.NewJobs(paths, domain.OperationProbe, nil))

	require.NoError(t, err)
	require.Len(t, outcome.Results, 4)
	assert.True(t, outcome.Cancelled)
	assert.Equal(t, domain.JobStatusFailed, outcome.Results[0].Status)
	assert.Equal(t, domain.ErrorKindCancelled, outcome.Results[0].ErrorKind)
	for _, res := range outcome.Results[1:] {
		assert.Equal(t, domain.JobStatusNotRun, res.Status)
		assert.True(t, res.StartedAt.IsZero())
	}
	assert.Equal(t, domain.Counts{Total: 4, Failed: 1, NotRun: 3}, outcome.Counts())
}

func TestRunner_Run_AlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome, err := NewRunner(newFakeConverter(), nil, nil, nil, nil, nil, 2).
		Run(ctx, domain.NewJobs([]string{"/a.flac", "/b.flac"}, domain.OperationProbe, nil))

	require.NoError(t, err)
	assert.True(t, outcome.Cancelled)
	assert.Equal(t, domain.Counts{Total: 2, NotRun: 2}, outcome.Counts())
}

func TestRunner_Run_SavesHistory(t *testing.T) {
	paths := writeInputs(t, t.TempDir(), "a.flac")

	t.Run("saves outcome", func(t *testing.T) {
		history := mocks.NewHistoryStoreMock(t)
		var saved *domain.BatchOutcome
		history.EXPECT().SaveOutcome(mock.Anything, mock.AnythingOfType("*domain.BatchOutcome")).
			Run(func(_ context.Context, o *domain.BatchOutcome) { saved = o }).
			Return(nil).
			Once()

		outcome, err := NewRunner(newFakeConverter(), nil, history, nil, nil, nil, 1).
			Run(context.Background(), domain.NewJobs(paths, domain.OperationProbe, nil))

		require.NoError(t, err)
		assert.Same(t, outcome, saved)
		assert.False(t, saved.FinishedAt.IsZero())
	})

	t.Run("save failure is not fatal", func(t *testing.T) {
		history := mocks.NewHistoryStoreMock(t)
		history.EXPECT().SaveOutcome(mock.Anything, mock.Anything).
			Return(errors.New("disk full")).
			Once()

		outcome, err := NewRunner(newFakeConverter(), nil, history, nil, nil, nil, 1).
			Run(context.Background(), domain.NewJobs(paths, domain.OperationProbe, nil))

		require.NoError(t, err)
		assert.True(t, outcome.OK())
	})
}

func TestRunner_Run_LocksEachOutputDirOnce(t *testing.T) {
	dir := t.TempDir()
	paths := writeInputs(t, dir, "a.mp3", "b.mp3", "c.mp3")
	outDir := filepath.Join(dir, "out")

	var unlocked atomic.Int32
	locker := mocks.NewDirLockerMock(t)
	locker.EXPECT().Lock(mock.Anything, outDir).
		Return(func() { unlocked.Add(1) }, nil).
		Once()

	req := &domain.ConvertRequest{BitDepth: 16, OutputDir: outDir}
	outcome, err := NewRunner(newFakeConverter(), nil, nil, locker, nil, nil, 2).
		Run(context.Background(), domain.NewJobs(paths, domain.OperationConvert, req))

	require.NoError(t, err)
	assert.True(t, outcome.OK())
	assert.Equal(t, int32(1), unlocked.Load())
}

func TestRunner_Run_LockFailureIsFatal(t *testing.T) {
	dir := t.TempDir()
	paths := writeInputs(t, dir, "a.mp3")

	locker := mocks.NewDirLockerMock(t)
	locker.EXPECT().Lock(mock.Anything, mock.AnythingOfType("string")).
		Return(nil, errors.New("held by another process")).
		Once()

	conv := newFakeConverter()
	req := &domain.ConvertRequest{BitDepth: 16, OutputDir: filepath.Join(dir, "out")}
	outcome, err := NewRunner(conv, nil, nil, locker, nil, nil, 1).
		Run(context.Background(), domain.NewJobs(paths, domain.OperationConvert, req))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "lock output directory")
	assert.Nil(t, outcome)
	assert.Empty(t, conv.calls())
}

func TestRunner_Run_Fingerprints(t *testing.T) {
	paths := writeInputs(t, t.TempDir(), "a.flac", "b.flac")

	fp := mocks.NewFingerprinterMock(t)
	fp.EXPECT().Fingerprint(paths[0]).Return("blake2b-256:aa", nil).Once()
	fp.EXPECT().Fingerprint(paths[1]).Return("", errors.New("read error")).Once()

	outcome, err := NewRunner(newFakeConverter(), nil, nil, nil, fp, nil, 1).
		Run(context.Background(), domain.NewJobs(paths, domain.OperationProbe, nil))

	require.NoError(t, err)
	assert.Equal(t, "blake2b-256:aa", outcome.Results[0].Fingerprint)
	assert.Empty(t, outcome.Results[1].Fingerprint)
	assert.Equal(t, domain.JobStatusSucceeded, outcome.Results[1].Status)
}

func TestRunner_Run_ReadsTagsOnProbe(t *testing.T) {
	paths := writeInputs(t, t.TempDir(), "a.flac", "b.flac", "c.flac")

	reader := mocks.NewTagReaderMock(t)
	reader.EXPECT().ReadTags(paths[0]).Return(&domain.AudioTags{Title: "Song", Artist: "Band"}, nil).Once()
	reader.EXPECT().ReadTags(paths[1]).Return(nil, nil).Once()
	reader.EXPECT().ReadTags(paths[2]).Return(nil, errors.New("corrupt frame")).Once()

	outcome, err := NewRunner(newFakeConverter(), nil, nil, nil, nil, nil, 1).
		WithTagReader(reader).
		Run(context.Background(), domain.NewJobs(paths, domain.OperationProbe, nil))

	require.NoError(t, err)
	require.NotNil(t, outcome.Results[0].Probe.Tags)
	assert.Equal(t, "Song", outcome.Results[0].Probe.Tags.Title)
	assert.Nil(t, outcome.Results[1].Probe.Tags)
	assert.Nil(t, outcome.Results[2].Probe.Tags)
	assert.Equal(t, 3, outcome.Counts().Succeeded)
}

func TestRunner_Run_PublishesEvents(t *testing.T) {
	paths := writeInputs(t, t.TempDir(), "a.flac", "b.flac", "c.flac")
	bus := NewEventBus()
	ch := bus.Subscribe(AllBatches)

	outcome, err := NewRunner(newFakeConverter(), nil, nil, nil, nil, bus, 2).
		Run(context.Background(), domain.NewJobs(paths, domain.OperationProbe, nil))
	require.NoError(t, err)
	bus.Unsubscribe(AllBatches, ch)

	counts := map[EventType]int{}
	var last Event
	for ev := range ch {
		assert.Equal(t, outcome.ID, ev.BatchID)
		counts[ev.Type]++
		last = ev
	}
	assert.Equal(t, 3, counts[EventJobStarted])
	assert.Equal(t, 3, counts[EventJobFinished])
	assert.Equal(t, 1, counts[EventBatchFinished])
	assert.Equal(t, EventBatchFinished, last.Type)
	assert.Equal(t, 3, last.Done)
	assert.Equal(t, 3, last.Total)
}

func TestRunner_Run_SizedSubscriberKeepsEveryEvent(t *testing.T) {
	names := make([]string, 200)
	for i := range names {
		names[i] = fmt.Sprintf("t%03d.flac", i)
	}
	paths := writeInputs(t, t.TempDir(), names...)
	bus := NewEventBus()
	ch := bus.SubscribeBuffered(AllBatches, EventsPerBatch(len(paths)))

	// Nothing reads ch while the batch runs.
	_, err := NewRunner(newFakeConverter(), nil, nil, nil, nil, bus, 4).
		Run(context.Background(), domain.NewJobs(paths, domain.OperationProbe, nil))
	require.NoError(t, err)
	bus.Unsubscribe(AllBatches, ch)

	done := map[int]bool{}
	for ev := range ch {
		if ev.Type == EventJobFinished {
			done[ev.Index] = true
		}
	}
	assert.Len(t, done, len(paths))
}

func TestDefaultWorkers(t *testing.T) {
	n := DefaultWorkers()
	assert.GreaterOrEqual(t, n, 1)
	assert.LessOrEqual(t, n, 4)
}

func TestPathLocks(t *testing.T) {
	var locks pathLocks
	var inside atomic.Int32
	var maxInside atomic.Int32

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock("/out/a.wav")
			n := inside.Add(1)
			if n > maxInside.Load() {
				maxInside.Store(n)
			}
			time.Sleep(time.Millisecond)
			inside.Add(-1)
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside.Load())
	assert.Empty(t, locks.locks)
}
