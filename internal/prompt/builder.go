// Package prompt renders synthesized preference weights into generation
// prompts. Rule-based and deterministic: the same weights always produce the
// same text.
package prompt

import (
	"fmt"
	"strings"

	"github.com/AkademiaSztuki/awa-api/internal/synthesis"
)

// Builder renders PromptWeights into prompts for the image backend.
type Builder struct{}

// NewPromptBuilder creates a new prompt builder
func NewPromptBuilder() *Builder {
	return &Builder{}
}

// Components are the individual phrases a prompt is assembled from, kept for
// explainability and debugging.
type Components struct {
	RoomType   string `json:"room_type"`
	Style      string `json:"style"`
	Mood       string `json:"mood"`
	Colors     string `json:"colors"`
	Materials  string `json:"materials"`
	Lighting   string `json:"lighting"`
	Biophilia  string `json:"biophilia"`
	Functional string `json:"functional"`
	Layout     string `json:"layout"`
}

// Result is a rendered natural-language prompt with its parts.
type Result struct {
	Prompt     string
	Components Components
	TokenCount int
}

var roomTypeNames = map[string]string{
	"bedroom":     "bedroom",
	"living_room": "living room",
	"kitchen":     "kitchen",
	"bathroom":    "bathroom",
	"home_office": "home office",
	"dining_room": "dining room",
	"kids_room":   "children's bedroom",
}

func roomName(roomType string) string {
	if name, ok := roomTypeNames[roomType]; ok {
		return name
	}
	return "interior space"
}

// Build assembles the natural-language prompt for one source's weights.
func (b *Builder) Build(weights synthesis.PromptWeights, roomType string) Result {
	components := Components{
		RoomType:   "A " + roomName(roomType),
		Style:      stylePhrase(weights),
		Mood:       moodPhrase(weights),
		Colors:     colorPhrase(weights),
		Materials:  materialsPhrase(weights),
		Lighting:   lightingPhrase(weights),
		Biophilia:  biophiliaPhrase(weights),
		Functional: functionalPhrase(weights),
		Layout:     layoutPhrase(weights),
	}

	prompt := assemble(components)
	return Result{
		Prompt:     prompt,
		Components: components,
		TokenCount: len(strings.Fields(prompt)),
	}
}

func stylePhrase(w synthesis.PromptWeights) string {
	if w.DominantStyle == "" {
		return ""
	}
	switch {
	case w.StyleConfidence > 0.7:
		return fmt.Sprintf("in %s style", w.DominantStyle)
	case w.StyleConfidence > 0.4:
		return fmt.Sprintf("with %s influences", w.DominantStyle)
	default:
		return fmt.Sprintf("with eclectic, %s-inspired design", w.DominantStyle)
	}
}

func moodPhrase(w synthesis.PromptWeights) string {
	var moods []string
	if w.Mood.Calming > 0.6 {
		moods = append(moods, "serene", "calming atmosphere")
	} else if w.Mood.Energizing > 0.6 {
		moods = append(moods, "energizing", "invigorating vibe")
	}
	if w.Mood.Inspiring > 0.6 {
		moods = append(moods, "inspiring", "creative energy")
	}

	if len(moods) == 0 {
		return "with balanced, comfortable atmosphere"
	}
	if len(moods) > 2 {
		moods = moods[:2]
	}
	return "featuring " + strings.Join(moods, " and ")
}

func colorPhrase(w synthesis.PromptWeights) string {
	if len(w.ColorPalette) == 0 {
		switch {
		case w.Warmth > 0.6:
			return "in warm tones"
		case w.Warmth < 0.4:
			return "in cool tones"
		default:
			return "in neutral, balanced colors"
		}
	}

	colors := w.ColorPalette
	if len(colors) > 3 {
		colors = colors[:3]
	}
	joined := strings.Join(colors, ", ")

	switch {
	case w.Warmth > 0.6:
		return "with warm color palette of " + joined
	case w.Warmth < 0.4:
		return "with cool color palette of " + joined
	default:
		return "featuring colors of " + joined
	}
}

func materialsPhrase(w synthesis.PromptWeights) string {
	if len(w.Materials) == 0 {
		return ""
	}
	materials := w.Materials
	if len(materials) > 3 {
		materials = materials[:3]
	}
	joined := strings.Join(materials, ", ")

	if w.Complexity > 0.6 {
		return "with rich textures including " + joined
	}
	return "featuring " + joined
}

var lightingMoodPhrases = map[string]string{
	"warm_low":    "soft, warm ambient lighting",
	"warm_dim":    "soft, warm ambient lighting",
	"warm_bright": "bright, inviting warm light",
	"neutral":     "balanced natural daylight",
	"cool_bright": "crisp, focused cool lighting",
}

// lightingMood folds warmth and brightness into the four-way lighting label
// the mood map and the structured prompt use.
func lightingMood(w synthesis.PromptWeights) string {
	if w.Functional.LightingStrategy != "" {
		if _, ok := lightingMoodPhrases[w.Functional.LightingStrategy]; ok {
			return w.Functional.LightingStrategy
		}
	}
	switch {
	case w.Warmth > 0.6 && w.Brightness > 0.5:
		return "warm_bright"
	case w.Warmth > 0.6:
		return "warm_low"
	case w.Warmth < 0.4:
		return "cool_bright"
	default:
		return "neutral"
	}
}

func lightingPhrase(w synthesis.PromptWeights) string {
	var phrases []string
	if moodLight, ok := lightingMoodPhrases[lightingMood(w)]; ok {
		phrases = append(phrases, moodLight)
	}
	if w.Brightness > 0.7 {
		phrases = append(phrases, "abundant natural light")
	} else if w.Brightness > 0.4 {
		phrases = append(phrases, "good natural light")
	}
	if len(phrases) == 0 {
		return ""
	}
	return "with " + strings.Join(phrases, " and ")
}

func biophiliaPhrase(w synthesis.PromptWeights) string {
	descriptor := biophiliaDescriptor(w.BiophiliaDensity, w.BiophiliaElements)
	if descriptor.Tier == "none" {
		return ""
	}
	extra := descriptor.NaturalElements
	if len(extra) > 2 {
		extra = extra[:2]
	}
	if len(extra) == 0 {
		return descriptor.ShortPhrase
	}
	return descriptor.ShortPhrase + ", including " + strings.Join(extra, " and ")
}

func functionalPhrase(w synthesis.PromptWeights) string {
	if len(w.Functional.Priorities) == 0 {
		return ""
	}
	return w.Functional.Priorities[0]
}

func layoutPhrase(w synthesis.PromptWeights) string {
	var phrases []string
	if w.Functional.RequiresZoning {
		phrases = append(phrases, "with distinct functional zones")
	}
	if w.Layout.Description != "" {
		phrases = append(phrases, w.Layout.Description)
	}
	if w.Complexity < 0.3 {
		phrases = append(phrases, "minimalist, uncluttered layout")
	} else if w.Complexity > 0.7 {
		phrases = append(phrases, "richly layered, detailed composition")
	}
	return strings.Join(phrases, ", ")
}

// assemble joins components tier by tier: room and style always lead, then
// mood and colors, then materials and lighting, then the context-dependent
// tail.
func assemble(c Components) string {
	parts := []string{c.RoomType}
	for _, p := range []string{
		c.Style,
		c.Mood, c.Colors,
		c.Materials, c.Lighting,
		c.Biophilia, c.Functional, c.Layout,
	} {
		if p != "" {
			parts = append(parts, p)
		}
	}

	prompt := strings.Join(parts, ", ")
	prompt = strings.ToUpper(prompt[:1]) + prompt[1:]
	if !strings.HasSuffix(prompt, ".") {
		prompt += "."
	}
	return prompt
}
