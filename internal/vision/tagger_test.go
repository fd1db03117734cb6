package vision

import (
	"context"
	"testing"

	"github.com/openai/openai-go"
	"github.com/stretchr/testify/assert"

	"github.com/AkademiaSztuki/awa-api/internal/metrics"
	"github.com/AkademiaSztuki/awa-api/internal/synthesis"
)

func TestMergedTags(t *testing.T) {
	analysis := &InspirationAnalysis{
		Style:     "Japandi",
		Colors:    []string{"#E8E2D5", "8A9A8B", " "},
		Materials: []string{"light wood", "Linen", ""},
		Tags:      []string{"minimal", "japandi"},
	}

	tags := analysis.MergedTags()

	assert.Equal(t, []string{"japandi", "#E8E2D5", "#8A9A8B", "light wood", "linen", "minimal"}, tags)
}

func TestMergedTagsEmptyAnalysis(t *testing.T) {
	analysis := &InspirationAnalysis{}
	assert.Empty(t, analysis.MergedTags())
}

func TestStripCodeFences(t *testing.T) {
	assert.Equal(t, `{"style":"boho"}`, stripCodeFences("```json\n{\"style\":\"boho\"}\n```"))
	assert.Equal(t, `{"style":"boho"}`, stripCodeFences("```\n{\"style\":\"boho\"}\n```"))
	assert.Equal(t, `{"style":"boho"}`, stripCodeFences(`{"style":"boho"}`))
}

func TestImageURLForPrecedence(t *testing.T) {
	assert.Equal(t, "data:image/jpeg;base64,abc", imageURLFor(synthesis.Inspiration{
		ImageBase64: "abc",
		URL:         "https://example.com/a.jpg",
	}))
	assert.Equal(t, "https://example.com/a.jpg", imageURLFor(synthesis.Inspiration{
		URL:        "https://example.com/a.jpg",
		PreviewURL: "https://example.com/p.jpg",
	}))
	assert.Equal(t, "https://example.com/p.jpg", imageURLFor(synthesis.Inspiration{
		PreviewURL: "https://example.com/p.jpg",
	}))
	assert.Empty(t, imageURLFor(synthesis.Inspiration{}))
}

func TestDataURIPassesThroughExistingPrefix(t *testing.T) {
	assert.Equal(t, "data:image/png;base64,xyz", dataURI("data:image/png;base64,xyz"))
	assert.Equal(t, "data:image/jpeg;base64,xyz", dataURI("xyz"))
}

func TestRoomReportConversion(t *testing.T) {
	report := &RoomReport{
		RoomType:        "bedroom",
		ClutterEstimate: 0.4,
		DominantColors:  []string{"#FFFFFF", "#C4B5A0"},
		DetectedObjects: []string{"bed", "desk"},
		LightQuality:    "bright",
	}

	analysis := report.ToRoomAnalysis()

	assert.Equal(t, 0.4, analysis.ClutterEstimate)
	assert.Equal(t, []string{"#FFFFFF", "#C4B5A0"}, analysis.DominantColors)
	assert.Equal(t, []string{"bed", "desk"}, analysis.DetectedObjects)
	assert.Equal(t, "bright", analysis.LightQuality)
}

func TestRecordTokenUsageWithoutCloudWatch(t *testing.T) {
	tagger := &Tagger{model: defaultVisionModel, sentryMetrics: metrics.NewSentryMetrics()}
	usage := openai.CompletionUsage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15}

	// No CloudWatch client configured, recording must still be safe.
	assert.NotPanics(t, func() {
		tagger.recordTokenUsage(context.Background(), usage)
	})
}
