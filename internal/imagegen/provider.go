package imagegen

import (
	"context"
	"time"

	"github.com/AkademiaSztuki/awa-api/internal/synthesis"
)

// Provider defines the interface for image generation backends
type Provider interface {
	// Generate produces one image for a single preference source
	Generate(ctx context.Context, request *Request) (*Response, error)

	// Name returns the provider name (e.g., "google")
	Name() string
}

// Request contains all parameters needed for one image generation call
type Request struct {
	Source    synthesis.Source
	Prompt    string
	Params    Params
	StyleHint string

	// SystemInstruction frames the edit contract (architectural lock,
	// furniture removal). Empty means the backend default.
	SystemInstruction string

	// BaseImage is the user's room photo for image-to-image editing.
	// Raw JPEG bytes, not base64.
	BaseImage []byte

	// InspirationImages are optional style references. Backends cap how
	// many they accept per call.
	InspirationImages [][]byte
}

// Response contains the result from the image backend
type Response struct {
	Image          []byte
	MimeType       string
	Model          string
	ProcessingTime time.Duration

	// Progress receives backend-reported percentages when the provider
	// supports them. Nil when the backend reports nothing; callers fall
	// back to a synthetic curve.
	Progress <-chan int
}
