package orchestrator

import (
	"sync"
	"time"

	"github.com/AkademiaSztuki/awa-api/internal/imagegen"
	"github.com/AkademiaSztuki/awa-api/internal/synthesis"
)

// JobStatus is the per-job lifecycle state. Transitions are forward-only:
// pending → streaming → complete | failed.
type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobStreaming JobStatus = "streaming"
	JobComplete  JobStatus = "complete"
	JobFailed    JobStatus = "failed"
)

func (s JobStatus) rank() int {
	switch s {
	case JobPending:
		return 0
	case JobStreaming:
		return 1
	case JobComplete, JobFailed:
		return 2
	default:
		return -1
	}
}

// Terminal reports whether the status admits no further transitions
func (s JobStatus) Terminal() bool {
	return s == JobComplete || s == JobFailed
}

// GenerationJob is the orchestrator-owned record of one dispatched
// source. Mutated only by the orchestrator, discarded when the pass ends.
type GenerationJob struct {
	Source            synthesis.Source
	Prompt            string
	SystemInstruction string
	Params            imagegen.Params
	Weights           synthesis.PromptWeights

	mu        sync.Mutex
	status    JobStatus
	progress  int
	image     []byte
	mimeType  string
	model     string
	lastError string
	startedAt time.Time
	duration  time.Duration
}

func newJob(source synthesis.Source, prompt, instruction string, params imagegen.Params, weights synthesis.PromptWeights) *GenerationJob {
	return &GenerationJob{
		Source:            source,
		Prompt:            prompt,
		SystemInstruction: instruction,
		Params:            params,
		Weights:           weights,
		status:            JobPending,
	}
}

// start moves the job to streaming and stamps its start time
func (j *GenerationJob) start() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	if JobStreaming.rank() <= j.status.rank() {
		return false
	}
	j.status = JobStreaming
	j.startedAt = time.Now()
	return true
}

// setProgress applies a progress value, clamped to 0-100 and monotone
// non-decreasing. Terminal jobs keep their frozen value. Returns true
// when the stored value changed.
func (j *GenerationJob) setProgress(p int) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.status.Terminal() {
		return false
	}
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	if p <= j.progress {
		return false
	}
	j.progress = p
	return true
}

// complete records a successful backend response and freezes progress at 100
func (j *GenerationJob) complete(resp *imagegen.Response) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.status.Terminal() {
		return false
	}
	j.status = JobComplete
	j.progress = 100
	j.image = resp.Image
	j.mimeType = resp.MimeType
	j.model = resp.Model
	j.duration = resp.ProcessingTime
	return true
}

// fail records a terminal failure
func (j *GenerationJob) fail(err error) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.status.Terminal() {
		return false
	}
	j.status = JobFailed
	j.lastError = err.Error()
	if !j.startedAt.IsZero() {
		j.duration = time.Since(j.startedAt)
	}
	return true
}

func (j *GenerationJob) snapshot() JobUpdate {
	j.mu.Lock()
	defer j.mu.Unlock()
	update := JobUpdate{
		Source:   j.Source,
		Status:   j.status,
		Progress: j.progress,
		Error:    j.lastError,
	}
	if j.status == JobComplete {
		update.Result = &JobResult{
			Source:         j.Source,
			Image:          j.image,
			MimeType:       j.mimeType,
			Model:          j.model,
			Prompt:         j.Prompt,
			Weights:        j.Weights,
			ProcessingTime: j.duration,
		}
	}
	return update
}

// Status returns the current lifecycle state
func (j *GenerationJob) Status() JobStatus {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.status
}

// Progress returns the current progress percentage
func (j *GenerationJob) Progress() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.progress
}

// JobUpdate is one progress or terminal event emitted on the pass stream
type JobUpdate struct {
	RequestID string           `json:"request_id"`
	Source    synthesis.Source `json:"source"`
	Status    JobStatus        `json:"status"`
	Progress  int              `json:"progress"`
	Error     string           `json:"error,omitempty"`
	Result    *JobResult       `json:"result,omitempty"`
}

// JobResult is the successful output of one job
type JobResult struct {
	Source         synthesis.Source        `json:"source"`
	Image          []byte                  `json:"-"`
	ImageURL       string                  `json:"image_url,omitempty"`
	MimeType       string                  `json:"mime_type"`
	Model          string                  `json:"model"`
	Prompt         string                  `json:"prompt"`
	Weights        synthesis.PromptWeights `json:"weights"`
	ProcessingTime time.Duration           `json:"processing_time_ms"`
}
