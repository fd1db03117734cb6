package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AkademiaSztuki/awa-api/internal/vision"
)

// InspirationHandler exposes vision tagging of reference images and
// room photo analysis.
type InspirationHandler struct {
	tagger *vision.Tagger
}

func NewInspirationHandler(tagger *vision.Tagger) *InspirationHandler {
	return &InspirationHandler{tagger: tagger}
}

type TagRequest struct {
	Inspirations []InspirationRequest `json:"inspirations" binding:"required"`
}

type AnalyzeRoomRequest struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
}

// Tag derives style tags for each untagged inspiration. Failures are
// soft: untaggable images come back unchanged.
func (h *InspirationHandler) Tag(c *gin.Context) {
	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if h.tagger == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Vision tagging is not configured"})
		return
	}

	snapshot := SnapshotRequest{Inspirations: req.Inspirations}.ToSnapshot()
	tagged := h.tagger.TagAll(c.Request.Context(), snapshot.Inspirations)

	out := make([]InspirationRequest, 0, len(tagged))
	for _, insp := range tagged {
		out = append(out, InspirationRequest{
			URL:         insp.URL,
			ImageBase64: insp.ImageBase64,
			PreviewURL:  insp.PreviewURL,
			Tags:        insp.Tags,
			Description: insp.Description,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"request_id":   c.GetString("request_id"),
		"inspirations": out,
	})
}

// AnalyzeRoom runs the vision pass over the user's room photo.
func (h *InspirationHandler) AnalyzeRoom(c *gin.Context) {
	var req AnalyzeRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if h.tagger == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Vision analysis is not configured"})
		return
	}

	report, err := h.tagger.AnalyzeRoom(c.Request.Context(), req.ImageBase64)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"request_id": c.GetString("request_id"),
		"report":     report,
	})
}
