package observability

import (
	"context"
	"sync"
	"time"

	"github.com/AkademiaSztuki/awa-api/internal/orchestrator"
	"github.com/AkademiaSztuki/awa-api/internal/synthesis"
)

// PassSink mirrors generation pass lifecycle events into Langfuse, one
// trace per pass. All methods are safe for concurrent use and degrade to
// no-ops when Langfuse is disabled.
type PassSink struct {
	client *LangfuseClient

	mu     sync.Mutex
	traces map[string]*Trace
}

func NewPassSink(client *LangfuseClient) *PassSink {
	return &PassSink{
		client: client,
		traces: make(map[string]*Trace),
	}
}

// PassStarted opens a trace for the pass and records the per-source
// quality verdicts and the conflict analysis as events.
func (s *PassSink) PassStarted(requestID, callerID string, sources []synthesis.Source, reports map[synthesis.Source]synthesis.QualityReport, conflict synthesis.ConflictAnalysis) {
	sourceNames := make([]string, len(sources))
	for i, source := range sources {
		sourceNames[i] = string(source)
	}

	trace := s.client.StartTrace(context.Background(), "generation.pass", map[string]interface{}{
		"request_id":        requestID,
		"caller_id":         callerID,
		"sources":           sourceNames,
		"has_conflict":      conflict.HasConflict,
		"conflict_type":     string(conflict.Type),
		"conflict_severity": string(conflict.Severity),
	})

	for source, report := range reports {
		trace.Event("quality.assessed", map[string]interface{}{
			"source":          string(source),
			"status":          string(report.Status),
			"should_generate": report.ShouldGenerate,
			"data_points":     report.DataPoints,
			"confidence":      report.Confidence,
			"warnings":        report.Warnings,
		})
	}

	s.mu.Lock()
	s.traces[requestID] = trace
	s.mu.Unlock()
}

// JobFinished records one source job reaching a terminal status.
func (s *PassSink) JobFinished(requestID string, source synthesis.Source, status orchestrator.JobStatus, duration time.Duration) {
	trace := s.traceFor(requestID)
	if trace == nil {
		return
	}
	trace.Event("job.finished", map[string]interface{}{
		"source":      string(source),
		"status":      string(status),
		"duration_ms": duration.Milliseconds(),
	})
}

// PassFinished closes the pass trace with the merged outcome and flushes.
func (s *PassSink) PassFinished(requestID string, result *orchestrator.PassResult, err error) {
	s.mu.Lock()
	trace := s.traces[requestID]
	delete(s.traces, requestID)
	s.mu.Unlock()
	if trace == nil {
		return
	}

	output := map[string]interface{}{
		"successful_count": result.SuccessfulCount,
		"failed_count":     result.FailedCount,
		"skipped_sources":  result.SkippedSources,
		"duration_ms":      result.TotalProcessingTime.Milliseconds(),
		"image_cost_usd":   CalculateImageCost(result.SuccessfulCount),
	}
	if err != nil {
		output["error"] = err.Error()
	}
	trace.SetOutput(output)
	trace.Finish()
}

func (s *PassSink) traceFor(requestID string) *Trace {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.traces[requestID]
}
