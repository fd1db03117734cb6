package prompt

import (
	"strings"
	"testing"

	"github.com/AkademiaSztuki/awa-api/internal/synthesis"
)

func sampleWeights() synthesis.PromptWeights {
	return synthesis.PromptWeights{
		Source:           synthesis.SourceImplicit,
		DominantStyle:    "scandinavian",
		StyleConfidence:  0.8,
		ColorPalette:     []string{"#F5F5F0", "#D9CBB8", "#A9A9A9", "#8B7355"},
		Materials:        []string{"light wood", "wool", "linen"},
		Mood:             synthesis.MoodWeights{Calming: 0.8, Energizing: 0.1, Inspiring: 0.3},
		BiophiliaDensity: 0.6,
		Complexity:       0.4,
		Brightness:       0.6,
		Warmth:           0.7,
	}
}

func TestBuildAssemblesAllTiers(t *testing.T) {
	builder := NewPromptBuilder()
	result := builder.Build(sampleWeights(), "living_room")

	if result.Prompt == "" {
		t.Fatal("Build() returned empty prompt")
	}
	if !strings.HasPrefix(result.Prompt, "A living room") {
		t.Errorf("prompt does not start with room type: %q", result.Prompt)
	}
	if !strings.HasSuffix(result.Prompt, ".") {
		t.Errorf("prompt does not end with a period: %q", result.Prompt)
	}
	if !strings.Contains(result.Prompt, "in scandinavian style") {
		t.Errorf("high-confidence style not stated directly: %q", result.Prompt)
	}
	if !strings.Contains(result.Prompt, "serene") {
		t.Errorf("calming mood missing: %q", result.Prompt)
	}
	if !strings.Contains(result.Prompt, "#F5F5F0") {
		t.Errorf("palette colors missing: %q", result.Prompt)
	}
	if result.TokenCount == 0 {
		t.Error("token count not computed")
	}
}

func TestBuildStyleConfidencePhrasing(t *testing.T) {
	builder := NewPromptBuilder()

	w := sampleWeights()
	w.StyleConfidence = 0.5
	result := builder.Build(w, "bedroom")
	if !strings.Contains(result.Prompt, "with scandinavian influences") {
		t.Errorf("mid confidence should soften the style claim: %q", result.Prompt)
	}

	w.StyleConfidence = 0.2
	result = builder.Build(w, "bedroom")
	if !strings.Contains(result.Prompt, "scandinavian-inspired") {
		t.Errorf("low confidence should hedge the style: %q", result.Prompt)
	}
}

func TestBuildUnknownRoomType(t *testing.T) {
	builder := NewPromptBuilder()
	result := builder.Build(sampleWeights(), "garage")
	if !strings.HasPrefix(result.Prompt, "A interior space") {
		t.Errorf("unknown room should fall back to generic: %q", result.Prompt)
	}
}

func TestBuildBiophiliaTiers(t *testing.T) {
	builder := NewPromptBuilder()

	w := sampleWeights()
	w.BiophiliaDensity = 0
	result := builder.Build(w, "living_room")
	if strings.Contains(result.Prompt, "plant") {
		t.Errorf("zero density should produce no plant phrase: %q", result.Prompt)
	}

	w.BiophiliaDensity = 1
	result = builder.Build(w, "living_room")
	if !strings.Contains(result.Prompt, "lush indoor jungle") {
		t.Errorf("full density should describe a jungle: %q", result.Prompt)
	}
}

func TestBuildEmptyPaletteFallsBackToTemperature(t *testing.T) {
	builder := NewPromptBuilder()

	w := sampleWeights()
	w.ColorPalette = nil
	w.Warmth = 0.8
	result := builder.Build(w, "living_room")
	if !strings.Contains(result.Prompt, "in warm tones") {
		t.Errorf("warm fallback missing: %q", result.Prompt)
	}

	w.Warmth = 0.2
	result = builder.Build(w, "living_room")
	if !strings.Contains(result.Prompt, "in cool tones") {
		t.Errorf("cool fallback missing: %q", result.Prompt)
	}
}

func TestBuildDeterministic(t *testing.T) {
	builder := NewPromptBuilder()
	w := sampleWeights()
	first := builder.Build(w, "living_room")
	for i := 0; i < 5; i++ {
		if again := builder.Build(w, "living_room"); again.Prompt != first.Prompt {
			t.Fatalf("prompt not deterministic:\n%s\n%s", first.Prompt, again.Prompt)
		}
	}
}

func TestBuildStructured(t *testing.T) {
	builder := NewPromptBuilder()
	p, err := builder.BuildStructured(sampleWeights(), "living_room")
	if err != nil {
		t.Fatalf("BuildStructured() returned error: %v", err)
	}

	if p.RoomType != "living room" {
		t.Errorf("room type not mapped: %q", p.RoomType)
	}
	if p.PrimaryStyle != "scandinavian" {
		t.Errorf("style not normalized: %q", p.PrimaryStyle)
	}
	if len(p.Colors) == 0 || p.Colors[0] != "#F5F5F0" {
		t.Errorf("hex palette not carried: %v", p.Colors)
	}
	if p.Complexity != "balanced" {
		t.Errorf("complexity label wrong: %q", p.Complexity)
	}
	if p.Plants != 6 {
		t.Errorf("density 0.6 should map to 6 plants, got %d", p.Plants)
	}
	if p.Functional != nil {
		t.Error("non-functional source must not carry functional requirements")
	}

	out, err := p.JSON()
	if err != nil {
		t.Fatalf("JSON() returned error: %v", err)
	}
	if !strings.Contains(out, `"primary_style": "scandinavian"`) {
		t.Errorf("serialized prompt missing style: %s", out)
	}
}

func TestBuildStructuredFunctional(t *testing.T) {
	builder := NewPromptBuilder()
	w := sampleWeights()
	w.Source = synthesis.SourceMixedFunctional
	w.Functional = synthesis.FunctionalNeeds{
		Priorities:       []string{"ample storage", "optimized layout"},
		LightingStrategy: "warm_bright",
		RequiresZoning:   true,
	}

	p, err := builder.BuildStructured(w, "living_room")
	if err != nil {
		t.Fatalf("BuildStructured() returned error: %v", err)
	}
	if p.Functional == nil {
		t.Fatal("functional requirements missing for functional source")
	}
	if !p.Functional.RequiresZoning {
		t.Error("zoning flag lost")
	}
}

func TestBuildStructuredTemperatureFallbackVariesBySource(t *testing.T) {
	builder := NewPromptBuilder()
	w := sampleWeights()
	w.ColorPalette = nil

	implicit, _ := builder.BuildStructured(w, "living_room")
	w.Source = synthesis.SourceExplicit
	explicit, _ := builder.BuildStructured(w, "living_room")

	if implicit.Colors[0] == explicit.Colors[0] {
		t.Error("fallback palettes should rotate per source")
	}
}

func TestEditInstruction(t *testing.T) {
	builder := NewPromptBuilder()
	text, err := builder.EditInstruction(sampleWeights(), "bedroom")
	if err != nil {
		t.Fatalf("EditInstruction() returned error: %v", err)
	}

	if !strings.Contains(text, "ARCHITECTURAL LOCK") {
		t.Error("system instruction missing")
	}
	if !strings.Contains(text, "Professional interior design of a bedroom") {
		t.Errorf("room sentence missing: %s", text)
	}
	if !strings.Contains(text, "- Style: scandinavian") {
		t.Errorf("style line missing: %s", text)
	}
	if !strings.Contains(text, "- Plants: 6 plants") {
		t.Errorf("plant count missing: %s", text)
	}
}

func TestNormalizeStyle(t *testing.T) {
	cases := map[string]string{
		"":                             "modern",
		"Scandinavian":                 "scandinavian",
		"bohemian with modern accents": "bohemian",
		"elevated rustic":              "elevated rustic",
		"cozy hygge":                   "hygge",
		"space opera":                  "modern",
	}
	for in, want := range cases {
		if got := NormalizeStyle(in); got != want {
			t.Errorf("NormalizeStyle(%q) = %q, want %q", in, got, want)
		}
	}
}
