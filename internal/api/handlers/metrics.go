package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

// MetricsHandler reports process-level stats for the ops dashboard. Pass and
// token metrics go to CloudWatch and Langfuse, this endpoint only covers what
// those backends cannot see from outside the process.
type MetricsHandler struct {
	startTime time.Time
	version   string
}

func NewMetricsHandler(version string) *MetricsHandler {
	return &MetricsHandler{
		startTime: time.Now(),
		version:   version,
	}
}

type MetricsResponse struct {
	Status        string         `json:"status"`
	Version       string         `json:"version"`
	StartTime     string         `json:"start_time"`
	Uptime        string         `json:"uptime"`
	UptimeSeconds float64        `json:"uptime_seconds"`
	Runtime       RuntimeMetrics `json:"runtime"`
	Backends      BackendInfo    `json:"backends"`
}

type RuntimeMetrics struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	MemAllocMB   uint64 `json:"mem_alloc_mb"`
	MemTotalMB   uint64 `json:"mem_total_mb"`
	NumGC        uint32 `json:"num_gc"`
}

type BackendInfo struct {
	ImageModel  string `json:"image_model"`
	VisionModel string `json:"vision_model"`
}

const bytesPerMB = 1 << 20

func (h *MetricsHandler) GetMetrics(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	uptime := time.Since(h.startTime)

	c.JSON(http.StatusOK, MetricsResponse{
		Status:        "healthy",
		Version:       h.version,
		StartTime:     h.startTime.UTC().Format(time.RFC3339),
		Uptime:        uptime.Truncate(time.Second).String(),
		UptimeSeconds: uptime.Seconds(),
		Runtime: RuntimeMetrics{
			GoVersion:    runtime.Version(),
			NumGoroutine: runtime.NumGoroutine(),
			MemAllocMB:   m.Alloc / bytesPerMB,
			MemTotalMB:   m.TotalAlloc / bytesPerMB,
			NumGC:        m.NumGC,
		},
		Backends: BackendInfo{
			ImageModel:  "gemini-3-pro-image-preview",
			VisionModel: "gpt-4o-mini",
		},
	})
}
