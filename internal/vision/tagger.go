// Package vision extracts design signals from user images with a
// vision-language model: style tags from inspiration references and a
// room report from the base photo. Both analyses fail soft, generation
// proceeds without them.
package vision

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/AkademiaSztuki/awa-api/internal/metrics"
	"github.com/AkademiaSztuki/awa-api/internal/observability"
	"github.com/AkademiaSztuki/awa-api/internal/prompt"
	"github.com/AkademiaSztuki/awa-api/internal/synthesis"
)

const (
	defaultVisionModel = "gpt-4o-mini"
	maxRawPreviewChars = 300
)

// InspirationAnalysis is the structured output for one reference image
type InspirationAnalysis struct {
	Style       string   `json:"style"`
	Colors      []string `json:"colors"`
	Materials   []string `json:"materials"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
}

// RoomReport is the structured output for the user's room photo
type RoomReport struct {
	RoomType        string   `json:"room_type"`
	ClutterEstimate float64  `json:"clutter_estimate"`
	DominantColors  []string `json:"dominant_colors"`
	DetectedObjects []string `json:"detected_objects"`
	LightQuality    string   `json:"light_quality"`
}

// Tagger runs vision analyses through the OpenAI chat API
type Tagger struct {
	client        *openai.Client
	loader        *prompt.Loader
	model         string
	cloudwatch    *metrics.Client
	sentryMetrics *metrics.SentryMetrics
}

// NewTagger creates a vision tagger. cloudwatch may be nil when metrics
// are disabled.
func NewTagger(apiKey string, loader *prompt.Loader, cloudwatch *metrics.Client) *Tagger {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Tagger{
		client:        &client,
		loader:        loader,
		model:         defaultVisionModel,
		cloudwatch:    cloudwatch,
		sentryMetrics: metrics.NewSentryMetrics(),
	}
}

// TagInspiration analyzes one reference image and returns its design signals
func (t *Tagger) TagInspiration(ctx context.Context, inspiration synthesis.Inspiration) (*InspirationAnalysis, error) {
	instructions, err := t.loader.GetTaggingInstructions()
	if err != nil {
		return nil, fmt.Errorf("failed to load tagging instructions: %w", err)
	}

	imageURL := imageURLFor(inspiration)
	if imageURL == "" {
		return nil, fmt.Errorf("inspiration has no image data")
	}

	raw, err := t.analyze(ctx, "vision.tag_inspiration", instructions,
		"Analyze this interior design reference image.", imageURL)
	if err != nil {
		return nil, err
	}

	var analysis InspirationAnalysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		log.Printf("❌ VISION: failed to parse tagging output: %v", err)
		log.Printf("Raw output (first %d chars): %s", maxRawPreviewChars, truncate(raw, maxRawPreviewChars))
		return nil, fmt.Errorf("failed to parse tagging output: %w", err)
	}

	return &analysis, nil
}

// TagAll fills Tags and Description on every reference that carries image
// data. Analysis failures are logged and skipped so one bad image never
// blocks a generation pass.
func (t *Tagger) TagAll(ctx context.Context, inspirations []synthesis.Inspiration) []synthesis.Inspiration {
	tagged := make([]synthesis.Inspiration, len(inspirations))
	copy(tagged, inspirations)

	for i := range tagged {
		if len(tagged[i].Tags) > 0 || !tagged[i].HasImageData() {
			continue
		}
		analysis, err := t.TagInspiration(ctx, tagged[i])
		if err != nil {
			log.Printf("⚠️  VISION: tagging inspiration %d failed, continuing without tags: %v", i, err)
			continue
		}
		tagged[i].Tags = analysis.MergedTags()
		tagged[i].Description = analysis.Description
	}

	return tagged
}

// AnalyzeRoom produces a room report from the user's base photo
func (t *Tagger) AnalyzeRoom(ctx context.Context, imageBase64 string) (*RoomReport, error) {
	instructions, err := t.loader.GetRoomAnalysisInstructions()
	if err != nil {
		return nil, fmt.Errorf("failed to load room analysis instructions: %w", err)
	}
	if imageBase64 == "" {
		return nil, fmt.Errorf("room photo is empty")
	}

	raw, err := t.analyze(ctx, "vision.analyze_room", instructions,
		"Analyze this photo of the user's room.", dataURI(imageBase64))
	if err != nil {
		return nil, err
	}

	var report RoomReport
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		log.Printf("❌ VISION: failed to parse room analysis output: %v", err)
		return nil, fmt.Errorf("failed to parse room analysis output: %w", err)
	}

	return &report, nil
}

// analyze sends one system + image + text request and returns the cleaned
// text output
func (t *Tagger) analyze(ctx context.Context, operation, instructions, task, imageURL string) (string, error) {
	startTime := time.Now()
	log.Printf("👁️  VISION REQUEST STARTED (%s, model: %s)", operation, t.model)

	transaction := sentry.StartTransaction(ctx, operation)
	defer transaction.Finish()

	transaction.SetTag("model", t.model)
	transaction.SetTag("provider", "openai")

	trace := observability.GetClient().StartTrace(ctx, operation, map[string]interface{}{
		"model":    t.model,
		"provider": "openai",
	})
	defer trace.Finish()
	gen := trace.Generation(operation, nil)
	defer gen.Finish()

	resp, err := t.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(t.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(instructions),
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(task),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: imageURL,
				}),
			}),
		},
	})
	if err != nil {
		log.Printf("❌ VISION REQUEST FAILED after %v: %v", time.Since(startTime), err)
		transaction.SetTag("success", "false")
		gen.SetLevel("ERROR")
		gen.Metadata(map[string]interface{}{"error": err.Error()})
		sentry.CaptureException(err)
		return "", fmt.Errorf("vision request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		transaction.SetTag("success", "false")
		gen.SetLevel("ERROR")
		return "", fmt.Errorf("vision response had no choices")
	}

	output := stripCodeFences(resp.Choices[0].Message.Content)
	if output == "" {
		transaction.SetTag("success", "false")
		gen.SetLevel("ERROR")
		return "", fmt.Errorf("vision response did not include any output text")
	}

	gen.LogVisionCompletion(t.model, instructions, output, resp.Usage)
	t.recordTokenUsage(ctx, resp.Usage)

	transaction.SetTag("success", "true")
	log.Printf("✅ VISION REQUEST COMPLETED in %v (output: %d chars, tokens: %d)",
		time.Since(startTime), len(output), resp.Usage.TotalTokens)
	return output, nil
}

func (t *Tagger) recordTokenUsage(ctx context.Context, usage openai.CompletionUsage) {
	total := int(usage.TotalTokens)
	input := int(usage.PromptTokens)
	output := int(usage.CompletionTokens)
	if t.cloudwatch != nil {
		t.cloudwatch.RecordVisionTokenUsage(t.model, total, input, output)
	}
	if t.sentryMetrics != nil {
		t.sentryMetrics.RecordVisionTokenUsage(ctx, t.model, total, input, output)
	}
}

// MergedTags flattens the analysis into the tag list the synthesis layer
// consumes: style and materials as plain words, colors as hex tags.
func (a *InspirationAnalysis) MergedTags() []string {
	var tags []string
	if a.Style != "" {
		tags = append(tags, strings.ToLower(a.Style))
	}
	for _, color := range a.Colors {
		color = strings.TrimSpace(color)
		if color == "" {
			continue
		}
		if !strings.HasPrefix(color, "#") {
			color = "#" + color
		}
		tags = append(tags, color)
	}
	for _, material := range a.Materials {
		if material != "" {
			tags = append(tags, strings.ToLower(material))
		}
	}
	for _, tag := range a.Tags {
		if tag != "" {
			tags = append(tags, strings.ToLower(tag))
		}
	}
	return dedupe(tags)
}

// ToRoomAnalysis converts the report into the synthesis input shape
func (r *RoomReport) ToRoomAnalysis() synthesis.RoomAnalysis {
	return synthesis.RoomAnalysis{
		ClutterEstimate: r.ClutterEstimate,
		DominantColors:  r.DominantColors,
		DetectedObjects: r.DetectedObjects,
		LightQuality:    r.LightQuality,
	}
}

func imageURLFor(inspiration synthesis.Inspiration) string {
	switch {
	case inspiration.ImageBase64 != "":
		return dataURI(inspiration.ImageBase64)
	case inspiration.URL != "":
		return inspiration.URL
	case inspiration.PreviewURL != "":
		return inspiration.PreviewURL
	default:
		return ""
	}
}

func dataURI(imageBase64 string) string {
	// Accept both raw base64 and full data URIs
	if strings.HasPrefix(imageBase64, "data:") {
		return imageBase64
	}
	return "data:image/jpeg;base64," + imageBase64
}

func stripCodeFences(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
