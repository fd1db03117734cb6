package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AkademiaSztuki/awa-api/internal/api/middleware"
	"github.com/AkademiaSztuki/awa-api/internal/imagegen"
	"github.com/AkademiaSztuki/awa-api/internal/logger"
	"github.com/AkademiaSztuki/awa-api/internal/metrics"
	"github.com/AkademiaSztuki/awa-api/internal/orchestrator"
	"github.com/AkademiaSztuki/awa-api/internal/services"
	"github.com/AkademiaSztuki/awa-api/internal/storage"
	"github.com/AkademiaSztuki/awa-api/internal/synthesis"
)

type GenerationHandler struct {
	orch       *orchestrator.Orchestrator
	uploader   *storage.Uploader
	records    *services.RecordsService
	cloudwatch *metrics.Client
}

func NewGenerationHandler(orch *orchestrator.Orchestrator, uploader *storage.Uploader, records *services.RecordsService, cloudwatch *metrics.Client) *GenerationHandler {
	return &GenerationHandler{
		orch:       orch,
		uploader:   uploader,
		records:    records,
		cloudwatch: cloudwatch,
	}
}

type GenerateRequest struct {
	Snapshot SnapshotRequest `json:"snapshot"`

	Mode      string `json:"mode"`      // preview (default), upscale, initial, micro, macro
	Iteration int    `json:"iteration"` // refinement count, scales edit strength decay
	Stream    bool   `json:"stream"`    // Enable SSE progress streaming

	// BaseImage is the room photo as base64, required for edit modes
	BaseImage string `json:"base_image"`
	// InspirationImages are base64 reference photos forwarded to the
	// inspiration_reference job
	InspirationImages []string `json:"inspiration_images"`
}

type CancelRequest struct {
	SessionID string `json:"session_id"`
}

// Generate runs one multi-source generation pass.
func (h *GenerationHandler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	caller := callerID(c)

	mode := imagegen.Mode(req.Mode)
	if req.Mode == "" {
		mode = imagegen.ModePreview
	}
	if !validMode(mode) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid mode. Allowed: preview, upscale, initial, micro, macro",
		})
		return
	}

	baseImage, err := decodeImage(req.BaseImage)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid base_image: " + err.Error()})
		return
	}
	inspirations := make([][]byte, 0, len(req.InspirationImages))
	for i, encoded := range req.InspirationImages {
		img, decodeErr := decodeImage(encoded)
		if decodeErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid inspiration_images[%d]: %v", i, decodeErr)})
			return
		}
		inspirations = append(inspirations, img)
	}

	inputs := synthesis.BuildInputs(req.Snapshot.ToSnapshot())

	opts := orchestrator.Options{
		CallerID:          caller,
		RequestID:         c.GetString("request_id"),
		Mode:              mode,
		Iteration:         req.Iteration,
		BaseImage:         baseImage,
		InspirationImages: inspirations,
	}

	updates, handle, err := h.orch.Run(c.Request.Context(), inputs, inputs.RoomType, opts)
	if err != nil {
		switch {
		case errors.Is(err, orchestrator.ErrPassInFlight):
			c.JSON(http.StatusConflict, gin.H{"error": "A generation pass is already running for this session"})
		case errors.Is(err, orchestrator.ErrInsufficientData),
			errors.Is(err, orchestrator.ErrAllSourcesSkipped):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	if req.Stream {
		h.generateStream(c, caller, opts, updates, handle)
		return
	}

	h.generateOneShot(c, caller, opts, handle)
}

// Cancel aborts the caller's in-flight pass.
func (h *GenerationHandler) Cancel(c *gin.Context) {
	var req CancelRequest
	_ = c.ShouldBindJSON(&req)

	caller := req.SessionID
	if caller == "" {
		caller = callerID(c)
	}

	cancelled := h.orch.CancelFor(caller)
	c.JSON(http.StatusOK, gin.H{"cancelled": cancelled})
}

// generateOneShot waits for the whole pass and returns the merged result
func (h *GenerationHandler) generateOneShot(c *gin.Context, caller string, opts orchestrator.Options, handle *orchestrator.PassHandle) {
	result, err := handle.Wait()
	h.finishPass(c.Request.Context(), caller, opts, handle, result)

	switch {
	case err == nil:
		c.JSON(http.StatusOK, h.passPayload(c.Request.Context(), handle, result))
	case errors.Is(err, orchestrator.ErrAllJobsFailed):
		c.JSON(http.StatusBadGateway, gin.H{
			"error":      err.Error(),
			"request_id": handle.RequestID(),
		})
	case errors.Is(err, context.Canceled):
		c.JSON(http.StatusOK, gin.H{
			"request_id": handle.RequestID(),
			"state":      string(orchestrator.PassCancelled),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// generateStream forwards per-job updates over SSE, then a final result
// event and a done terminator.
func (h *GenerationHandler) generateStream(c *gin.Context, caller string, opts orchestrator.Options, updates <-chan orchestrator.JobUpdate, handle *orchestrator.PassHandle) {
	// Set SSE headers
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	for update := range updates {
		writeSSE(c, gin.H{
			"type":   "job",
			"update": update,
		})
	}

	result, err := handle.Wait()
	h.finishPass(c.Request.Context(), caller, opts, handle, result)

	if err != nil {
		writeSSE(c, gin.H{
			"type":       "error",
			"message":    err.Error(),
			"state":      string(handle.State()),
			"request_id": handle.RequestID(),
		})
		return
	}

	writeSSE(c, gin.H{
		"type": "result",
		"data": h.passPayload(c.Request.Context(), handle, result),
	})
	writeSSE(c, gin.H{
		"type":       "done",
		"request_id": handle.RequestID(),
	})
}

// passPayload uploads result images and assembles the response body.
// When S3 is disabled images are inlined as base64.
func (h *GenerationHandler) passPayload(ctx context.Context, handle *orchestrator.PassHandle, result *orchestrator.PassResult) gin.H {
	results := make(map[string]gin.H, len(result.Results))
	for source, jobResult := range result.Results {
		entry := gin.H{
			"source":             string(jobResult.Source),
			"mime_type":          jobResult.MimeType,
			"model":              jobResult.Model,
			"prompt":             jobResult.Prompt,
			"weights":            jobResult.Weights,
			"processing_time_ms": jobResult.ProcessingTime.Milliseconds(),
		}

		if h.uploader != nil && h.uploader.Enabled() {
			url, err := h.uploader.UploadImage(ctx, result.RequestID, string(source), jobResult.Image, jobResult.MimeType)
			if err != nil {
				logger.Error("Image upload failed, inlining result", err, logger.Fields{
					"request_id": result.RequestID,
					"source":     string(source),
				})
				entry["image_base64"] = base64.StdEncoding.EncodeToString(jobResult.Image)
			} else {
				jobResult.ImageURL = url
				entry["image_url"] = url
			}
		} else {
			entry["image_base64"] = base64.StdEncoding.EncodeToString(jobResult.Image)
		}

		results[string(source)] = entry
	}

	return gin.H{
		"request_id":               result.RequestID,
		"state":                    string(handle.State()),
		"results":                  results,
		"failed_sources":           result.FailedSources,
		"skipped_sources":          result.SkippedSources,
		"successful_count":         result.SuccessfulCount,
		"failed_count":             result.FailedCount,
		"total_processing_time_ms": result.TotalProcessingTime.Milliseconds(),
	}
}

// finishPass records bookkeeping and metrics for a finished pass
func (h *GenerationHandler) finishPass(ctx context.Context, caller string, opts orchestrator.Options, handle *orchestrator.PassHandle, result *orchestrator.PassResult) {
	if result == nil {
		return
	}

	if h.cloudwatch != nil {
		h.cloudwatch.RecordPassOutcome(string(handle.State()), result.SuccessfulCount, result.FailedCount, result.TotalProcessingTime)
	}
	sentryMetricsFor(ctx, handle, result)

	if h.records != nil {
		if err := h.records.RecordPass(caller, opts, handle.State(), result); err != nil {
			logger.Error("Recording generation pass failed", err, logger.Fields{
				"request_id": result.RequestID,
				"caller_id":  caller,
			})
		}
	}
}

var handlerSentryMetrics = metrics.NewSentryMetrics()

func sentryMetricsFor(ctx context.Context, handle *orchestrator.PassHandle, result *orchestrator.PassResult) {
	handlerSentryMetrics.RecordPassOutcome(ctx, string(handle.State()), result.SuccessfulCount, result.FailedCount, result.TotalProcessingTime)
}

func writeSSE(c *gin.Context, event gin.H) {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(c.Writer, "data: %s\n\n", eventJSON)
	c.Writer.Flush()
}

func callerID(c *gin.Context) string {
	if id, ok := middleware.SessionFromContext(c); ok && id != "" {
		return id
	}
	return "anonymous"
}

func validMode(mode imagegen.Mode) bool {
	switch mode {
	case imagegen.ModePreview, imagegen.ModeUpscale, imagegen.ModeInitial,
		imagegen.ModeMicro, imagegen.ModeMacro:
		return true
	}
	return false
}

// decodeImage accepts raw base64 or a data URI
func decodeImage(encoded string) ([]byte, error) {
	if encoded == "" {
		return nil, nil
	}
	if idx := strings.Index(encoded, ","); idx != -1 && strings.HasPrefix(encoded, "data:") {
		encoded = encoded[idx+1:]
	}
	return base64.StdEncoding.DecodeString(encoded)
}
