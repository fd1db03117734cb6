package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/AkademiaSztuki/awa-api/internal/synthesis"
)

// StructuredPrompt is the JSON-shaped prompt for backends that follow
// structured instructions better than prose.
type StructuredPrompt struct {
	RoomType        string                  `json:"room_type"`
	PrimaryStyle    string                  `json:"primary_style"`
	SecondaryStyles []string                `json:"secondary_styles"`
	Colors          []string                `json:"colors"`
	Materials       []string                `json:"materials"`
	Complexity      string                  `json:"complexity"`
	Brightness      string                  `json:"brightness"`
	LightingMood    string                  `json:"lighting_mood"`
	NatureMetaphor  string                  `json:"nature_metaphor,omitempty"`
	Texture         string                  `json:"texture"`
	Mood            string                  `json:"mood"`
	Plants          int                     `json:"plants"`
	Functional      *FunctionalRequirements `json:"functional_requirements,omitempty"`
}

// FunctionalRequirements carry declared activity needs into the structured
// prompt for the functional source.
type FunctionalRequirements struct {
	Priorities       []string `json:"functional_priorities"`
	LightingStrategy string   `json:"lighting_strategy,omitempty"`
	RequiresZoning   bool     `json:"requires_zoning"`
}

// BuildStructured renders the weights into the structured JSON prompt.
func (b *Builder) BuildStructured(weights synthesis.PromptWeights, roomType string) (StructuredPrompt, error) {
	descriptor := biophiliaDescriptor(weights.BiophiliaDensity, weights.BiophiliaElements)

	colors := make([]string, 0, 4)
	for _, c := range weights.ColorPalette {
		if strings.HasPrefix(c, "#") {
			colors = append(colors, c)
		}
		if len(colors) == 4 {
			break
		}
	}
	if len(colors) == 0 {
		colors = temperatureColors(weights.Warmth, weights.Source)
	}

	materials := weights.Materials
	if len(materials) == 0 {
		materials = []string{"natural materials"}
	}
	if len(materials) > 4 {
		materials = materials[:4]
	}

	style := NormalizeStyle(weights.DominantStyle)

	p := StructuredPrompt{
		RoomType:     roomName(roomType),
		PrimaryStyle: style,
		Colors:       colors,
		Materials:    materials,
		Complexity:   complexityLabel(weights.Complexity),
		Brightness:   brightnessLabel(weights.Brightness),
		LightingMood: lightingMood(weights),
		Texture:      textureFocus(materials, style),
		Mood:         structuredMood(weights),
		Plants:       descriptor.PlantCount,
	}

	if weights.Source == synthesis.SourceMixedFunctional &&
		(len(weights.Functional.Priorities) > 0 || weights.Functional.RequiresZoning) {
		p.Functional = &FunctionalRequirements{
			Priorities:       weights.Functional.Priorities,
			LightingStrategy: weights.Functional.LightingStrategy,
			RequiresZoning:   weights.Functional.RequiresZoning,
		}
	}

	return p, nil
}

// EditInstruction renders the full prompt for the image-editing backend:
// the architectural-lock system instruction followed by the change list.
// The backend receives the structured data as plain text.
func (b *Builder) EditInstruction(weights synthesis.PromptWeights, roomType string) (string, error) {
	p, err := b.BuildStructured(weights, roomType)
	if err != nil {
		return "", err
	}

	system, err := NewPromptLoader().GetEditSystemInstruction()
	if err != nil {
		return "", err
	}

	colorList := strings.Join(firstStrings(p.Colors, 3), ", ")
	materialList := strings.Join(firstStrings(p.Materials, 2), " and ")

	var functionalText string
	if p.Functional != nil && len(p.Functional.Priorities) > 0 {
		functionalText = "Functional priorities: " + strings.Join(p.Functional.Priorities, ", ") + "."
	}

	var sb strings.Builder
	sb.WriteString(system)
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Professional interior design of a %s.\n\n", p.RoomType)
	sb.WriteString("KEEP: walls, windows, doors, camera angle - IDENTICAL.\n\n")
	sb.WriteString("CHANGE:\n")
	fmt.Fprintf(&sb, "- Style: %s\n", p.PrimaryStyle)
	fmt.Fprintf(&sb, "- Mood: %s\n", orDefault(p.Mood, "match the style"))
	fmt.Fprintf(&sb, "- Wall colors: %s\n", orDefault(colorList, "match the style palette"))
	fmt.Fprintf(&sb, "- Materials: %s\n", orDefault(materialList, "match the style"))
	fmt.Fprintf(&sb, "- Texture: %s\n", p.Texture)
	fmt.Fprintf(&sb, "- Complexity: %s; Brightness: %s; Lighting mood: %s\n", p.Complexity, p.Brightness, p.LightingMood)
	fmt.Fprintf(&sb, "- Plants: %d plants (Interpret into a realistic botanical arrangement)\n", p.Plants)
	if functionalText != "" {
		fmt.Fprintf(&sb, "- Functional requirements: %s\n", functionalText)
	}
	sb.WriteString("- REMOVE COMPLETELY: all furniture, rugs/carpets, curtains/blinds, lamps, wall art, shelves, TVs/monitors, plants, clutter, accessories. Inpaint surfaces behind them.\n")
	fmt.Fprintf(&sb, "- NEW INTERIOR: Add entirely NEW furniture + decor (new shapes, new layout) matching the %s style.\n", p.PrimaryStyle)
	sb.WriteString("- Rugs: REMOVE all. Floor must be visible unless the style REQUIRES a new rug.")

	return sb.String(), nil
}

// JSON serializes the structured prompt for transport.
func (p StructuredPrompt) JSON() (string, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal structured prompt: %w", err)
	}
	return string(data), nil
}

// NormalizeStyle reduces a possibly blended style label ("bohemian with
// modern accents", "elevated rustic") to one member of the known style
// vocabulary, preserving a leading modifier when present.
func NormalizeStyle(style string) string {
	if style == "" {
		return "modern"
	}
	lower := strings.ToLower(strings.TrimSpace(style))

	modifier := ""
	for _, mod := range []string{"elevated", "optimized", "refined", "enhanced"} {
		if strings.HasPrefix(lower, mod+" ") {
			modifier = mod + " "
			break
		}
	}

	// Blended labels ("bohemian with modern accents") resolve to the
	// leading segment's style.
	segments := []string{lower}
	for _, sep := range []string{" with ", " and ", " + "} {
		if strings.Contains(lower, sep) {
			segments = strings.Split(lower, sep)
			break
		}
	}

	for _, segment := range segments {
		for _, known := range knownStyles {
			if strings.Contains(segment, known) {
				return modifier + known
			}
		}
	}
	return "modern"
}

func structuredMood(w synthesis.PromptWeights) string {
	switch {
	case w.Mood.Calming > 0.6:
		return "serene, calming, peaceful"
	case w.Mood.Energizing > 0.6:
		return "energizing, vibrant, dynamic"
	case w.Mood.Inspiring > 0.6:
		return "inspiring, creative, stimulating"
	}
	switch w.Source {
	case synthesis.SourceMixedFunctional:
		return "functional, organized, balanced"
	case synthesis.SourceMixed:
		return "harmonious, balanced, refined"
	case synthesis.SourceImplicit:
		return "intuitive, comfortable, natural"
	case synthesis.SourceExplicit:
		return "intentional, comfortable, balanced"
	case synthesis.SourcePersonality:
		return "personalized, comfortable, balanced"
	default:
		return "comfortable, balanced"
	}
}

var (
	warmPalette    = []string{"#D4A574", "#F5DEB3", "#DEB887", "#CD853F", "#D2691E", "#8B4513"}
	coolPalette    = []string{"#87CEEB", "#B0E0E6", "#E0F6FF", "#4682B4", "#5F9EA0", "#20B2AA"}
	neutralPalette = []string{"#F5F5F5", "#E0E0E0", "#D3D3D3", "#A9A9A9", "#808080", "#696969"}
)

// temperatureColors derives a palette from color temperature when no explicit
// palette survived synthesis. The palette rotates per source so that two
// sources with the same temperature still render differently.
func temperatureColors(warmth float64, source synthesis.Source) []string {
	base := neutralPalette
	if warmth > 0.6 {
		base = warmPalette
	} else if warmth < 0.4 {
		base = coolPalette
	}

	offset := 0
	for i, s := range synthesis.AllSources() {
		if s == source {
			offset = i % len(base)
			break
		}
	}
	rotated := append(append([]string{}, base[offset:]...), base[:offset]...)
	return rotated[:4]
}

func firstStrings(values []string, n int) []string {
	if len(values) < n {
		n = len(values)
	}
	return values[:n]
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
