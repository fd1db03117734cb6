// Package orchestrator fans one generation job per viable preference
// source out to the image backend, streams per-job progress, and merges
// the results of a pass.
package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/AkademiaSztuki/awa-api/internal/imagegen"
	"github.com/AkademiaSztuki/awa-api/internal/logger"
	"github.com/AkademiaSztuki/awa-api/internal/prompt"
	"github.com/AkademiaSztuki/awa-api/internal/synthesis"
)

const (
	defaultStagger = 1500 * time.Millisecond
	anonymousUser  = "anonymous"

	// updates per job: start, terminal, plus progress ticks
	updateBufferPerJob = 32
)

// PassState is the lifecycle of one generation pass
type PassState string

const (
	PassIdle        PassState = "idle"
	PassDispatching PassState = "dispatching"
	PassAggregating PassState = "aggregating"
	PassDone        PassState = "done"
	PassAllFailed   PassState = "all_failed"
	PassCancelled   PassState = "cancelled"
)

// PassLock guards against two concurrent passes for the same caller
// across processes. The orchestrator also keeps an in-process guard.
type PassLock interface {
	Acquire(ctx context.Context, callerID, requestID string) (bool, error)
	Release(ctx context.Context, callerID string) error
}

// EventSink receives pass lifecycle events for observability. All
// methods must be non-blocking.
type EventSink interface {
	PassStarted(requestID, callerID string, sources []synthesis.Source, reports map[synthesis.Source]synthesis.QualityReport, conflict synthesis.ConflictAnalysis)
	JobFinished(requestID string, source synthesis.Source, status JobStatus, duration time.Duration)
	PassFinished(requestID string, result *PassResult, err error)
}

type nopSink struct{}

func (nopSink) PassStarted(string, string, []synthesis.Source, map[synthesis.Source]synthesis.QualityReport, synthesis.ConflictAnalysis) {
}
func (nopSink) JobFinished(string, synthesis.Source, JobStatus, time.Duration) {}

func (nopSink) PassFinished(string, *PassResult, error) {}

// ProgressFunc receives backend-reported progress percentages
type ProgressFunc func(percent int)

// streamingProvider is the optional backend capability for live
// progress. Providers without it get the synthetic fallback curve.
type streamingProvider interface {
	GenerateStream(ctx context.Context, request *imagegen.Request, progress ProgressFunc) (*imagegen.Response, error)
}

// Options configure one generation pass
type Options struct {
	CallerID  string
	RequestID string
	Mode      imagegen.Mode
	Iteration int

	// BaseImage is the user's room photo, raw JPEG bytes
	BaseImage []byte

	// InspirationImages are forwarded to the backend for the
	// inspiration_reference job only
	InspirationImages [][]byte
}

// PassResult is the merged outcome of a pass
type PassResult struct {
	RequestID           string
	Results             map[synthesis.Source]*JobResult
	FailedSources       map[synthesis.Source]string
	SkippedSources      []string
	SuccessfulCount     int
	FailedCount         int
	TotalProcessingTime time.Duration
	Reports             map[synthesis.Source]synthesis.QualityReport
	Conflict            synthesis.ConflictAnalysis
}

// PassHandle lets the caller cancel a running pass and wait for its
// final result.
type PassHandle struct {
	requestID string
	cancel    context.CancelFunc
	done      chan struct{}

	mu     sync.Mutex
	state  PassState
	result *PassResult
	err    error
}

func newPassHandle(requestID string, cancel context.CancelFunc) *PassHandle {
	return &PassHandle{
		requestID: requestID,
		cancel:    cancel,
		done:      make(chan struct{}),
		state:     PassIdle,
	}
}

// RequestID returns the pass identifier
func (h *PassHandle) RequestID() string { return h.requestID }

// Cancel asks every in-flight job to abort
func (h *PassHandle) Cancel() {
	h.mu.Lock()
	cancel := h.cancel
	h.mu.Unlock()
	cancel()
}

// State returns the current pass state
func (h *PassHandle) State() PassState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Wait blocks until the pass finishes and returns the merged result
func (h *PassHandle) Wait() (*PassResult, error) {
	<-h.done
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.result, h.err
}

func (h *PassHandle) setState(state PassState) {
	h.mu.Lock()
	h.state = state
	h.mu.Unlock()
}

func (h *PassHandle) finish(state PassState, result *PassResult, err error) {
	h.mu.Lock()
	h.state = state
	h.result = result
	h.err = err
	h.mu.Unlock()
	close(h.done)
}

// Orchestrator runs generation passes against an image backend
type Orchestrator struct {
	provider imagegen.Provider
	builder  *prompt.Builder
	lock     PassLock
	sink     EventSink
	stagger  time.Duration

	mu       sync.Mutex
	inflight map[string]*PassHandle
}

// Config collects the orchestrator dependencies. Provider is required,
// everything else has a working default.
type Config struct {
	Provider imagegen.Provider
	Builder  *prompt.Builder
	Lock     PassLock
	Sink     EventSink
	Stagger  time.Duration
}

// New creates an orchestrator
func New(cfg Config) *Orchestrator {
	builder := cfg.Builder
	if builder == nil {
		builder = prompt.NewPromptBuilder()
	}
	sink := cfg.Sink
	if sink == nil {
		sink = nopSink{}
	}
	stagger := cfg.Stagger
	if stagger == 0 {
		stagger = defaultStagger
	}
	return &Orchestrator{
		provider: cfg.Provider,
		builder:  builder,
		lock:     cfg.Lock,
		sink:     sink,
		stagger:  stagger,
		inflight: make(map[string]*PassHandle),
	}
}

// Run assesses every source, dispatches one job per viable source, and
// returns a stream of job updates plus a handle for cancellation. The
// channel closes once the pass reaches a terminal state.
func (o *Orchestrator) Run(ctx context.Context, inputs synthesis.PromptInputs, roomType string, opts Options) (<-chan JobUpdate, *PassHandle, error) {
	if opts.RequestID == "" {
		opts.RequestID = uuid.New().String()
	}
	caller := opts.CallerID
	if caller == "" {
		caller = anonymousUser
	}
	if !hasAnySignal(inputs) {
		return nil, nil, ErrInsufficientData
	}

	reports := synthesis.AssessAll(inputs)
	viable, skipped := splitViable(reports)
	if len(viable) == 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrAllSourcesSkipped, strings.Join(skipped, "; "))
	}

	// The handle carries the real cancel func from the moment it is
	// published, so a CancelFor racing the synthesis phase still lands.
	passCtx, cancel := context.WithCancel(ctx)

	handle, err := o.acquire(ctx, caller, opts.RequestID, cancel)
	if err != nil {
		cancel()
		return nil, nil, err
	}

	derivation := synthesis.DeriveStyle(inputs.Personality)
	conflict := synthesis.AnalyzeConflicts(inputs)

	jobs := make([]*GenerationJob, 0, len(viable))
	for _, source := range viable {
		weights := synthesis.Synthesize(inputs, source, reports[source], &derivation, &conflict)
		job, buildErr := o.buildJob(source, weights, roomType, opts)
		if buildErr != nil {
			o.release(caller, handle)
			cancel()
			return nil, nil, buildErr
		}
		jobs = append(jobs, job)
	}

	updates := make(chan JobUpdate, len(jobs)*updateBufferPerJob)

	logger.Info("Generation pass starting", logger.Fields{
		"request_id": opts.RequestID,
		"caller_id":  caller,
		"sources":    len(jobs),
		"skipped":    len(skipped),
		"mode":       string(opts.Mode),
	})
	o.sink.PassStarted(opts.RequestID, caller, viable, reports, conflict)

	go o.runPass(passCtx, handle, caller, jobs, skipped, reports, conflict, opts, updates)

	return updates, handle, nil
}

// CancelFor cancels the caller's in-flight pass, if any
func (o *Orchestrator) CancelFor(callerID string) bool {
	if callerID == "" {
		callerID = anonymousUser
	}
	o.mu.Lock()
	handle := o.inflight[callerID]
	o.mu.Unlock()
	if handle == nil {
		return false
	}
	handle.Cancel()
	return true
}

func (o *Orchestrator) acquire(ctx context.Context, caller, requestID string, cancel context.CancelFunc) (*PassHandle, error) {
	o.mu.Lock()
	if _, exists := o.inflight[caller]; exists {
		o.mu.Unlock()
		return nil, ErrPassInFlight
	}
	handle := newPassHandle(requestID, cancel)
	o.inflight[caller] = handle
	o.mu.Unlock()

	if o.lock != nil {
		ok, err := o.lock.Acquire(ctx, caller, requestID)
		if err != nil {
			// Registry being unreachable should not block generation,
			// the in-process guard still holds.
			logger.Error("Pass registry acquire failed, continuing with in-process guard", err, logger.Fields{
				"caller_id": caller,
			})
		} else if !ok {
			o.mu.Lock()
			delete(o.inflight, caller)
			o.mu.Unlock()
			return nil, ErrPassInFlight
		}
	}
	return handle, nil
}

func (o *Orchestrator) release(caller string, handle *PassHandle) {
	o.mu.Lock()
	if o.inflight[caller] == handle {
		delete(o.inflight, caller)
	}
	o.mu.Unlock()

	if o.lock != nil {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := o.lock.Release(releaseCtx, caller); err != nil {
			logger.Error("Pass registry release failed", err, logger.Fields{"caller_id": caller})
		}
	}
}

func (o *Orchestrator) buildJob(source synthesis.Source, weights synthesis.PromptWeights, roomType string, opts Options) (*GenerationJob, error) {
	instruction, err := o.builder.EditInstruction(weights, roomType)
	if err != nil {
		return nil, fmt.Errorf("failed to build edit instruction for %s: %w", source, err)
	}
	text := o.builder.Build(weights, roomType)
	params := imagegen.ParamsFor(opts.Mode, opts.Iteration)
	return newJob(source, text.Prompt, instruction, params, weights), nil
}

//nolint:gocyclo // pass supervision covers dispatch, merge, and terminal states in one place
func (o *Orchestrator) runPass(
	ctx context.Context,
	handle *PassHandle,
	caller string,
	jobs []*GenerationJob,
	skipped []string,
	reports map[synthesis.Source]synthesis.QualityReport,
	conflict synthesis.ConflictAnalysis,
	opts Options,
	updates chan JobUpdate,
) {
	startTime := time.Now()
	handle.setState(PassDispatching)

	remaining := int32(len(jobs))
	var wg sync.WaitGroup
	for i, job := range jobs {
		wg.Add(1)
		go func(index int, job *GenerationJob) {
			defer wg.Done()
			o.runJob(ctx, job, index, &remaining, opts, updates)
		}(i, job)
	}
	wg.Wait()

	handle.setState(PassAggregating)

	result := &PassResult{
		RequestID:           opts.RequestID,
		Results:             make(map[synthesis.Source]*JobResult),
		FailedSources:       make(map[synthesis.Source]string),
		SkippedSources:      skipped,
		TotalProcessingTime: time.Since(startTime),
		Reports:             reports,
		Conflict:            conflict,
	}

	cancelled := ctx.Err() != nil
	for _, job := range jobs {
		update := job.snapshot()
		o.sink.JobFinished(opts.RequestID, job.Source, update.Status, job.duration)
		switch update.Status {
		case JobComplete:
			// last-writer-wins per source key
			result.Results[job.Source] = update.Result
		case JobFailed:
			result.FailedSources[job.Source] = update.Error
		default:
			// pending or streaming jobs only remain after cancellation
		}
	}
	result.SuccessfulCount = len(result.Results)
	result.FailedCount = len(result.FailedSources)

	var state PassState
	var passErr error
	switch {
	case cancelled:
		state = PassCancelled
		passErr = ctx.Err()
	case result.SuccessfulCount == 0:
		state = PassAllFailed
		passErr = fmt.Errorf("%w: %s", ErrAllJobsFailed, failureSummary(result.FailedSources))
	default:
		state = PassDone
	}

	logger.Info("Generation pass finished", logger.Fields{
		"request_id": opts.RequestID,
		"state":      string(state),
		"successful": result.SuccessfulCount,
		"failed":     result.FailedCount,
		"elapsed_ms": result.TotalProcessingTime.Milliseconds(),
	})
	o.sink.PassFinished(opts.RequestID, result, passErr)

	o.release(caller, handle)
	close(updates)
	handle.finish(state, result, passErr)
}

func (o *Orchestrator) runJob(ctx context.Context, job *GenerationJob, index int, remaining *int32, opts Options, updates chan JobUpdate) {
	// Stagger offsets desynchronize the progress curves, they are not a
	// scheduling mechanism.
	if offset := time.Duration(index) * o.stagger; offset > 0 {
		timer := time.NewTimer(offset)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
	if ctx.Err() != nil {
		return
	}

	job.start()
	o.emit(updates, opts.RequestID, job)

	request := &imagegen.Request{
		Source:            job.Source,
		Prompt:            job.Prompt,
		Params:            job.Params,
		SystemInstruction: job.SystemInstruction,
		StyleHint:         job.Weights.DominantStyle,
		BaseImage:         opts.BaseImage,
	}
	if job.Source == synthesis.SourceInspirationReference {
		request.InspirationImages = opts.InspirationImages
	}

	resp, err := o.generate(ctx, job, request, remaining, opts.RequestID, updates)

	// No state mutation once cancellation has been observed.
	if ctx.Err() != nil {
		return
	}

	if err != nil {
		job.fail(err)
		logger.Error("Generation job failed", err, logger.Fields{
			"request_id": opts.RequestID,
			"source":     string(job.Source),
		})
	} else {
		job.complete(resp)
	}
	atomic.AddInt32(remaining, -1)
	o.emit(updates, opts.RequestID, job)
}

// generate calls the backend with retry, feeding either live backend
// progress or the synthetic fallback curve into the job while waiting.
func (o *Orchestrator) generate(ctx context.Context, job *GenerationJob, request *imagegen.Request, remaining *int32, requestID string, updates chan JobUpdate) (*imagegen.Response, error) {
	if sp, ok := o.provider.(streamingProvider); ok {
		return imagegen.WithRetry(ctx, func(attempt int) (*imagegen.Response, error) {
			return sp.GenerateStream(ctx, request, func(percent int) {
				if job.setProgress(percent) {
					o.emit(updates, requestID, job)
				}
			})
		})
	}

	tickerDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(progressTickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-tickerDone:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				lastPending := atomic.LoadInt32(remaining) == 1
				p := fallbackProgress(time.Since(job.startedAt), lastPending)
				if job.setProgress(p) {
					o.emit(updates, requestID, job)
				}
			}
		}
	}()
	defer close(tickerDone)

	return imagegen.WithRetry(ctx, func(attempt int) (*imagegen.Response, error) {
		return o.provider.Generate(ctx, request)
	})
}

// emit sends a snapshot without ever blocking a job goroutine; a full
// buffer drops the intermediate progress event, terminal events re-use
// the same snapshot path on the next send.
func (o *Orchestrator) emit(updates chan JobUpdate, requestID string, job *GenerationJob) {
	update := job.snapshot()
	update.RequestID = requestID
	select {
	case updates <- update:
	default:
	}
}

func splitViable(reports map[synthesis.Source]synthesis.QualityReport) ([]synthesis.Source, []string) {
	var viable []synthesis.Source
	var skipped []string
	for _, source := range synthesis.AllSources() {
		report := reports[source]
		if report.ShouldGenerate {
			viable = append(viable, source)
			continue
		}
		reason := string(report.Status)
		if len(report.Warnings) > 0 {
			reason = report.Warnings[0]
		}
		skipped = append(skipped, fmt.Sprintf("%s: %s", source, reason))
	}
	return viable, skipped
}

func hasAnySignal(inputs synthesis.PromptInputs) bool {
	return len(inputs.Implicit.Swipes) > 0 ||
		inputs.Explicit.PaletteName != "" ||
		inputs.Explicit.Style != "" ||
		inputs.Personality != nil ||
		len(inputs.Inspirations) > 0
}

func failureSummary(failed map[synthesis.Source]string) string {
	parts := make([]string, 0, len(failed))
	for _, source := range synthesis.AllSources() {
		if msg, ok := failed[source]; ok {
			parts = append(parts, fmt.Sprintf("%s: %s", source, msg))
		}
	}
	return strings.Join(parts, "; ")
}
