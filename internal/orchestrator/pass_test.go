package orchestrator

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AkademiaSztuki/awa-api/internal/imagegen"
	"github.com/AkademiaSztuki/awa-api/internal/synthesis"
)

// stubProvider is a controllable backend for pass tests
type stubProvider struct {
	mu    sync.Mutex
	calls int
	delay time.Duration
	fail  map[synthesis.Source]error
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Generate(ctx context.Context, request *imagegen.Request) (*imagegen.Response, error) {
	s.mu.Lock()
	s.calls++
	delay := s.delay
	failErr := s.fail[request.Source]
	s.mu.Unlock()

	if delay > 0 {
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	if failErr != nil {
		return nil, failErr
	}
	return &imagegen.Response{
		Image:          []byte("img-" + string(request.Source)),
		MimeType:       "image/jpeg",
		Model:          "stub",
		ProcessingTime: delay,
	}, nil
}

func (s *stubProvider) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func testOrchestrator(provider imagegen.Provider) *Orchestrator {
	return New(Config{Provider: provider, Stagger: time.Millisecond})
}

// fullInputs yields inputs where every source passes the quality gate
func fullInputs() synthesis.PromptInputs {
	bio := 2.0
	var swipes []synthesis.SwipeRecord
	for i := 0; i < 5; i++ {
		swipes = append(swipes, synthesis.SwipeRecord{
			Style:          "scandinavian",
			Colors:         []string{"#F5F5F0"},
			BiophiliaScore: 2,
			Direction:      "right",
		})
	}
	for i := 0; i < 3; i++ {
		swipes = append(swipes, synthesis.SwipeRecord{Style: "industrial", Direction: "left"})
	}

	return synthesis.BuildInputs(synthesis.Snapshot{
		Swipes:            swipes,
		DominantStyles:    []string{"scandinavian"},
		ExplicitStyle:     "scandinavian",
		PaletteName:       "warm neutrals",
		PaletteHexes:      []string{"#F5F5F0", "#D7CCC8"},
		ExplicitMaterials: []string{"light wood", "linen"},
		BiophiliaAnswer:   &bio,
		Personality: &synthesis.Personality{
			Domains: map[string]float64{"O": 0.7, "C": 0.6, "E": 0.5, "A": 0.6, "N": 0.3},
		},
		Inspirations: []synthesis.Inspiration{
			{URL: "https://example.com/ref.jpg", Tags: []string{"japandi", "#E8E2D5", "light wood"}},
		},
		Activities: []synthesis.Activity{{Name: "read", Frequency: "daily"}},
		PainPoints: []synthesis.PainPoint{{Issue: "storage", Severity: "high"}},
	})
}

func drain(t *testing.T, updates <-chan JobUpdate) []JobUpdate {
	t.Helper()
	var all []JobUpdate
	timeout := time.After(30 * time.Second)
	for {
		select {
		case update, ok := <-updates:
			if !ok {
				return all
			}
			all = append(all, update)
		case <-timeout:
			t.Fatal("timed out draining pass updates")
		}
	}
}

func TestRunInsufficientData(t *testing.T) {
	o := testOrchestrator(&stubProvider{})

	_, _, err := o.Run(context.Background(), synthesis.PromptInputs{}, "living_room", Options{})

	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestRunAllSourcesSkipped(t *testing.T) {
	o := testOrchestrator(&stubProvider{})
	inputs := synthesis.BuildInputs(synthesis.Snapshot{
		Swipes: []synthesis.SwipeRecord{{Style: "modern", Direction: "left"}},
	})

	_, _, err := o.Run(context.Background(), inputs, "living_room", Options{})

	require.ErrorIs(t, err, ErrAllSourcesSkipped)
	assert.Contains(t, err.Error(), string(synthesis.SourceImplicit))
}

func TestRunHappyPath(t *testing.T) {
	provider := &stubProvider{}
	o := testOrchestrator(provider)

	updates, handle, err := o.Run(context.Background(), fullInputs(), "bedroom", Options{
		CallerID: "session-1",
		Mode:     imagegen.ModePreview,
	})
	require.NoError(t, err)

	all := drain(t, updates)
	result, passErr := handle.Wait()

	require.NoError(t, passErr)
	assert.Equal(t, PassDone, handle.State())
	assert.Equal(t, len(synthesis.AllSources()), result.SuccessfulCount)
	assert.Zero(t, result.FailedCount)
	assert.Equal(t, len(synthesis.AllSources()), provider.callCount())

	completed := map[synthesis.Source]bool{}
	for _, update := range all {
		assert.Equal(t, handle.RequestID(), update.RequestID)
		if update.Status == JobComplete {
			completed[update.Source] = true
			require.NotNil(t, update.Result)
			assert.NotEmpty(t, update.Result.Image)
			assert.True(t, strings.HasSuffix(update.Result.Prompt, "."))
			assert.Equal(t, 100, update.Progress)
		}
	}
	for _, source := range synthesis.AllSources() {
		assert.True(t, completed[source], "missing terminal update for %s", source)
		require.Contains(t, result.Results, source)
		assert.NotEmpty(t, result.Results[source].Image)
	}
}

func TestRunPartialFailureIsSuccess(t *testing.T) {
	provider := &stubProvider{fail: map[synthesis.Source]error{
		synthesis.SourcePersonality: errors.New("backend exploded"),
	}}
	o := testOrchestrator(provider)

	updates, handle, err := o.Run(context.Background(), fullInputs(), "living_room", Options{})
	require.NoError(t, err)

	drain(t, updates)
	result, passErr := handle.Wait()

	require.NoError(t, passErr)
	assert.Equal(t, PassDone, handle.State())
	assert.Equal(t, len(synthesis.AllSources())-1, result.SuccessfulCount)
	assert.Equal(t, 1, result.FailedCount)
	assert.Contains(t, result.FailedSources[synthesis.SourcePersonality], "backend exploded")
	assert.NotContains(t, result.Results, synthesis.SourcePersonality)
}

func TestRunAllJobsFailed(t *testing.T) {
	fail := make(map[synthesis.Source]error)
	for _, source := range synthesis.AllSources() {
		fail[source] = errors.New("backend exploded")
	}
	o := testOrchestrator(&stubProvider{fail: fail})

	updates, handle, err := o.Run(context.Background(), fullInputs(), "living_room", Options{})
	require.NoError(t, err)

	drain(t, updates)
	result, passErr := handle.Wait()

	require.ErrorIs(t, passErr, ErrAllJobsFailed)
	assert.Equal(t, PassAllFailed, handle.State())
	assert.Zero(t, result.SuccessfulCount)
	assert.Equal(t, len(synthesis.AllSources()), result.FailedCount)
}

func TestRunRefusesConcurrentPasses(t *testing.T) {
	o := testOrchestrator(&stubProvider{delay: 200 * time.Millisecond})

	updates, handle, err := o.Run(context.Background(), fullInputs(), "living_room", Options{CallerID: "u1"})
	require.NoError(t, err)

	_, _, second := o.Run(context.Background(), fullInputs(), "living_room", Options{CallerID: "u1"})
	assert.ErrorIs(t, second, ErrPassInFlight)

	// A different caller is not blocked.
	otherUpdates, otherHandle, otherErr := o.Run(context.Background(), fullInputs(), "living_room", Options{CallerID: "u2"})
	require.NoError(t, otherErr)

	drain(t, updates)
	drain(t, otherUpdates)
	_, _ = handle.Wait()
	_, _ = otherHandle.Wait()

	// Once the pass finished the caller may start another.
	thirdUpdates, thirdHandle, thirdErr := o.Run(context.Background(), fullInputs(), "living_room", Options{CallerID: "u1"})
	require.NoError(t, thirdErr)
	drain(t, thirdUpdates)
	_, _ = thirdHandle.Wait()
}

func TestRunCancellation(t *testing.T) {
	o := testOrchestrator(&stubProvider{delay: 10 * time.Second})

	updates, handle, err := o.Run(context.Background(), fullInputs(), "living_room", Options{CallerID: "u1"})
	require.NoError(t, err)

	handle.Cancel()
	drain(t, updates)
	result, passErr := handle.Wait()

	require.ErrorIs(t, passErr, context.Canceled)
	assert.Equal(t, PassCancelled, handle.State())
	assert.Zero(t, result.SuccessfulCount)
}

func TestHandleCarriesCancelFromPublication(t *testing.T) {
	o := testOrchestrator(&stubProvider{})

	passCtx, cancel := context.WithCancel(context.Background())
	handle, err := o.acquire(context.Background(), "u1", "req-1", cancel)
	require.NoError(t, err)
	defer o.release("u1", handle)

	// A CancelFor racing the synthesis phase must reach the pass context,
	// not a placeholder.
	handle.Cancel()
	select {
	case <-passCtx.Done():
	default:
		t.Fatal("cancelling a freshly published handle did not abort the pass context")
	}
}

func TestCancelFor(t *testing.T) {
	o := testOrchestrator(&stubProvider{delay: 10 * time.Second})

	assert.False(t, o.CancelFor("nobody"))

	updates, handle, err := o.Run(context.Background(), fullInputs(), "living_room", Options{CallerID: "u1"})
	require.NoError(t, err)

	assert.True(t, o.CancelFor("u1"))
	drain(t, updates)
	_, passErr := handle.Wait()
	assert.ErrorIs(t, passErr, context.Canceled)
}

func TestJobForwardOnlyTransitions(t *testing.T) {
	job := newJob(synthesis.SourceImplicit, "prompt.", "", imagegen.ParamsFor(imagegen.ModePreview, 0), synthesis.PromptWeights{})

	assert.Equal(t, JobPending, job.Status())
	assert.True(t, job.start())
	assert.False(t, job.start())
	assert.Equal(t, JobStreaming, job.Status())

	assert.True(t, job.setProgress(50))
	assert.False(t, job.setProgress(40), "progress must be monotone")
	assert.True(t, job.complete(&imagegen.Response{Image: []byte("x")}))
	assert.Equal(t, JobComplete, job.Status())
	assert.Equal(t, 100, job.Progress())

	assert.False(t, job.setProgress(99), "terminal jobs freeze progress")
	assert.False(t, job.fail(errors.New("late failure")), "complete jobs cannot fail")
	assert.Equal(t, 100, job.Progress())
}

func TestJobFailTerminal(t *testing.T) {
	job := newJob(synthesis.SourceExplicit, "prompt.", "", imagegen.Params{}, synthesis.PromptWeights{})
	job.start()

	assert.True(t, job.fail(errors.New("boom")))
	assert.Equal(t, JobFailed, job.Status())
	assert.False(t, job.complete(&imagegen.Response{}), "failed jobs cannot complete")

	update := job.snapshot()
	assert.Equal(t, "boom", update.Error)
	assert.Nil(t, update.Result)
}

func TestFallbackProgressCurve(t *testing.T) {
	assert.Equal(t, 2, fallbackProgress(0, false))
	assert.Equal(t, 90, fallbackProgress(2*fallbackWindow, false))

	prev := -1
	for _, elapsed := range []time.Duration{0, 5 * time.Second, 15 * time.Second, 45 * time.Second, 90 * time.Second} {
		p := fallbackProgress(elapsed, false)
		assert.GreaterOrEqual(t, p, prev, "curve must be non-decreasing")
		assert.LessOrEqual(t, p, 90)
		prev = p
	}

	// The last pending job runs the same curve faster.
	assert.Greater(t, fallbackProgress(10*time.Second, true), fallbackProgress(10*time.Second, false))
}

func TestOverallProgress(t *testing.T) {
	assert.Equal(t, 50.0, OverallProgress(50, 50, 0, 6))
	assert.Equal(t, 75.0, OverallProgress(50, 50, 3, 6))
	assert.Equal(t, 100.0, OverallProgress(50, 50, 6, 6))
	assert.Equal(t, 30.0, OverallProgress(30, 60, 0, 0))
}
