package orchestrator

import (
	"math"
	"time"
)

const (
	// fallbackWindow is the time span the synthetic curve is stretched
	// over; real generations usually finish earlier.
	fallbackWindow = 90 * time.Second

	// fallbackCeiling is where the synthetic curve parks until the
	// backend actually answers.
	fallbackCeiling = 90.0

	// lastJobSpeedup accelerates the curve for the single job still
	// pending after the others finished.
	lastJobSpeedup = 1.3

	progressTickInterval = 500 * time.Millisecond
)

// fallbackProgress returns the synthetic progress percentage for a job
// without backend-reported progress. Ease-out quartic from 2 to 90 over
// the fallback window; the last pending job runs the curve faster.
func fallbackProgress(elapsed time.Duration, lastPending bool) int {
	if elapsed < 0 {
		elapsed = 0
	}
	ms := float64(elapsed.Milliseconds())
	if lastPending {
		ms *= lastJobSpeedup
	}

	t := ms / float64(fallbackWindow.Milliseconds())
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	progress := 2 + 88*(1-math.Pow(1-t, 4))
	if progress > fallbackCeiling {
		progress = fallbackCeiling
	}
	return int(progress)
}

// OverallProgress maps completed job counts into a caller-facing
// progress range: baseline + completed/total·span.
func OverallProgress(baseline, span float64, completed, total int) float64 {
	if total <= 0 {
		return baseline
	}
	return baseline + float64(completed)/float64(total)*span
}
