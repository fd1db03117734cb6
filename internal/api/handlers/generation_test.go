package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AkademiaSztuki/awa-api/internal/imagegen"
	"github.com/AkademiaSztuki/awa-api/internal/orchestrator"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubProvider struct {
	fail bool
}

func (p *stubProvider) Generate(_ context.Context, _ *imagegen.Request) (*imagegen.Response, error) {
	if p.fail {
		return nil, errors.New("backend down")
	}
	return &imagegen.Response{
		Image:    []byte{0xFF, 0xD8, 0xFF},
		MimeType: "image/jpeg",
		Model:    "stub-model",
	}, nil
}

func (p *stubProvider) Name() string { return "stub" }

func testRouter(provider imagegen.Provider) *gin.Engine {
	orch := orchestrator.New(orchestrator.Config{
		Provider: provider,
		Stagger:  time.Millisecond,
	})

	router := gin.New()
	generationHandler := NewGenerationHandler(orch, nil, nil, nil)
	router.POST("/api/v1/generations", generationHandler.Generate)
	router.POST("/api/v1/generations/cancel", generationHandler.Cancel)

	qualityHandler := NewQualityHandler()
	router.POST("/api/v1/quality/assess", qualityHandler.Assess)
	return router
}

// fullSnapshot carries enough signal to make every source viable.
func fullSnapshot() SnapshotRequest {
	biophilia := 2.0
	s := SnapshotRequest{
		DominantStyles:    []string{"scandinavian"},
		ImplicitColors:    []string{"#E8E2D5", "#8A9A8B"},
		ExplicitStyle:     "scandinavian",
		PaletteName:       "warm neutrals",
		PaletteHexes:      []string{"#E8E2D5", "#C9B8A8"},
		ExplicitMaterials: []string{"light wood", "linen"},
		BiophiliaAnswer:   &biophilia,
		Personality: &PersonalityRequest{
			Domains: map[string]float64{"O": 0.7, "C": 0.6, "E": 0.5, "A": 0.6, "N": 0.3},
		},
		Inspirations: []InspirationRequest{
			{URL: "https://example.com/reference.jpg", Tags: []string{"japandi", "minimal"}},
		},
		Activities: []ActivityRequest{
			{Name: "reading", Frequency: "daily", Needs: []string{"good light"}},
		},
		PainPoints: []PainPointRequest{
			{Issue: "storage", Severity: "high"},
		},
	}
	for i := 0; i < 5; i++ {
		s.Swipes = append(s.Swipes, SwipeRequest{
			Style:          "scandinavian",
			Colors:         []string{"#E8E2D5"},
			BiophiliaScore: 2,
			Direction:      "right",
		})
	}
	for i := 0; i < 3; i++ {
		s.Swipes = append(s.Swipes, SwipeRequest{Style: "industrial", Direction: "left"})
	}
	return s
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGenerateRejectsInvalidBody(t *testing.T) {
	router := testRouter(&stubProvider{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/generations", strings.NewReader("not json"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateRejectsUnknownMode(t *testing.T) {
	router := testRouter(&stubProvider{})

	w := postJSON(t, router, "/api/v1/generations", gin.H{
		"snapshot": fullSnapshot(),
		"mode":     "cinematic",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid mode")
}

func TestGenerateInsufficientData(t *testing.T) {
	router := testRouter(&stubProvider{})

	w := postJSON(t, router, "/api/v1/generations", gin.H{
		"snapshot": SnapshotRequest{},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestGenerateOneShot(t *testing.T) {
	router := testRouter(&stubProvider{})

	w := postJSON(t, router, "/api/v1/generations", gin.H{
		"snapshot": fullSnapshot(),
		"mode":     "preview",
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		RequestID       string                    `json:"request_id"`
		State           string                    `json:"state"`
		Results         map[string]map[string]any `json:"results"`
		SuccessfulCount int                       `json:"successful_count"`
		FailedCount     int                       `json:"failed_count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.RequestID)
	assert.Equal(t, string(orchestrator.PassDone), resp.State)
	assert.Equal(t, 6, resp.SuccessfulCount)
	assert.Zero(t, resp.FailedCount)

	explicit, ok := resp.Results["explicit"]
	require.True(t, ok, "explicit source missing from results")
	assert.Equal(t, "stub-model", explicit["model"])
	assert.NotEmpty(t, explicit["image_base64"], "image should be inlined when S3 is disabled")
	assert.NotEmpty(t, explicit["prompt"])
}

func TestGenerateAllJobsFailed(t *testing.T) {
	router := testRouter(&stubProvider{fail: true})

	w := postJSON(t, router, "/api/v1/generations", gin.H{
		"snapshot": fullSnapshot(),
	})

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "request_id")
}

func TestGenerateStream(t *testing.T) {
	router := testRouter(&stubProvider{})

	w := postJSON(t, router, "/api/v1/generations", gin.H{
		"snapshot": fullSnapshot(),
		"stream":   true,
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

	body := w.Body.String()
	assert.Contains(t, body, `"type":"job"`)
	assert.Contains(t, body, `"type":"result"`)
	assert.Contains(t, body, `"type":"done"`)

	// Every frame is a well-formed SSE data line
	for _, line := range strings.Split(strings.TrimSpace(body), "\n") {
		if line == "" {
			continue
		}
		assert.True(t, strings.HasPrefix(line, "data: "), "unexpected SSE line: %q", line)
	}
}

func TestCancelWithoutPass(t *testing.T) {
	router := testRouter(&stubProvider{})

	w := postJSON(t, router, "/api/v1/generations/cancel", gin.H{})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"cancelled":false`)
}

func TestGenerateRejectsBadBaseImage(t *testing.T) {
	router := testRouter(&stubProvider{})

	w := postJSON(t, router, "/api/v1/generations", gin.H{
		"snapshot":   fullSnapshot(),
		"base_image": "%%%not-base64%%%",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "base_image")
}
