package synthesis

import "math"

// MoodDirection classifies the gap between current and target mood on the
// restorativeness grid.
type MoodDirection string

const (
	MoodNeutral           MoodDirection = "neutral"
	MoodStressedToRelaxed MoodDirection = "stressed_to_relaxed"
	MoodBoredToInspired   MoodDirection = "bored_to_inspired"
	MoodChaoticToGrounded MoodDirection = "chaotic_to_grounded"
	MoodLowToEnergized    MoodDirection = "low_to_energized"
)

// MoodTransformation is the design adjustment derived from the mood gap.
type MoodTransformation struct {
	Direction          MoodDirection
	Magnitude          string // subtle, moderate, significant
	ColorTemperature   string // warm, cool, neutral
	ColorSaturation    string // muted, moderate, vibrant
	Colors             []string
	Textures           []string
	BiophiliaModifier  float64 // clamped to ±0.5
	LightingWarmth     string
	LightingIntensity  string
	NaturalLight       string  // essential, important, moderate
	ComplexityModifier float64 // clamped to ±0.3
	LayoutOpenness     string  // intimate, balanced, open
	LayoutFlow         string  // structured, organic
}

type moodDesign struct {
	temperature string
	saturation  string
	colors      []string
	textures    []string
	biophilia   float64
	lightWarmth string
	intensity   string
	complexity  float64
	openness    string
	flow        string
}

// Direction-to-design table grounded in environmental psychology findings
// (nature views reduce stress; restorative environments; color and
// lighting effects on mood).
var moodToDesign = map[MoodDirection]moodDesign{
	MoodStressedToRelaxed: {
		temperature: "warm", saturation: "muted",
		colors:      []string{"#F5E6D3", "#E8D5C4", "#D4A574", "#C9A88B"},
		textures:    []string{"soft fabrics", "natural wood", "linen", "cotton"},
		biophilia:   0.3,
		lightWarmth: "warm", intensity: "dim",
		complexity: -0.2,
		openness:   "intimate", flow: "organic",
	},
	MoodBoredToInspired: {
		temperature: "neutral", saturation: "moderate",
		colors:      []string{"#9370DB", "#BA55D3", "#DA70D6", "#FF69B4"},
		textures:    []string{"varied", "artistic", "mixed media", "textured surfaces"},
		biophilia:   0.1,
		lightWarmth: "neutral", intensity: "bright",
		complexity: 0.2,
		openness:   "balanced", flow: "organic",
	},
	MoodChaoticToGrounded: {
		temperature: "warm", saturation: "muted",
		colors:      []string{"#8B7355", "#A0826D", "#B8A082", "#D4C4B0"},
		textures:    []string{"natural", "solid", "consistent", "wood grain"},
		biophilia:   0.2,
		lightWarmth: "warm", intensity: "moderate",
		complexity: -0.3,
		openness:   "balanced", flow: "structured",
	},
	MoodLowToEnergized: {
		temperature: "warm", saturation: "vibrant",
		colors:      []string{"#FF7F50", "#FFD700", "#FF6347", "#FFA500"},
		textures:    []string{"dynamic", "contrasting", "smooth surfaces"},
		biophilia:   0,
		lightWarmth: "neutral", intensity: "bright",
		complexity: 0.1,
		openness:   "open", flow: "structured",
	},
	MoodNeutral: {
		temperature: "neutral", saturation: "moderate",
		colors:      []string{"#F5F5F5", "#E0E0E0", "#D3D3D3", "#C0C0C0"},
		textures:    []string{"balanced", "varied"},
		biophilia:   0,
		lightWarmth: "neutral", intensity: "moderate",
		complexity: 0,
		openness:   "balanced", flow: "structured",
	},
}

// AnalyzeMoodTransformation maps the current→target mood gap to design
// adjustments scaled by the gap magnitude.
func AnalyzeMoodTransformation(current, target MoodPoint) MoodTransformation {
	xGap := target.X - current.X
	yGap := target.Y - current.Y
	magnitude := math.Sqrt(xGap*xGap + yGap*yGap)

	direction := classifyMoodDirection(xGap, yGap, magnitude)
	design := moodToDesign[direction]

	multiplier := 1.0
	magnitudeLabel := "moderate"
	switch {
	case magnitude < 0.5:
		multiplier = 0.5
		magnitudeLabel = "subtle"
	case magnitude >= 1.2:
		multiplier = 1.5
		magnitudeLabel = "significant"
	}

	naturalLight := "moderate"
	switch {
	case magnitude > 1.0:
		naturalLight = "essential"
	case magnitude > 0.5:
		naturalLight = "important"
	}

	return MoodTransformation{
		Direction:          direction,
		Magnitude:          magnitudeLabel,
		ColorTemperature:   design.temperature,
		ColorSaturation:    design.saturation,
		Colors:             design.colors,
		Textures:           design.textures,
		BiophiliaModifier:  clampRange(design.biophilia*multiplier, -0.5, 0.5),
		LightingWarmth:     design.lightWarmth,
		LightingIntensity:  design.intensity,
		NaturalLight:       naturalLight,
		ComplexityModifier: clampRange(design.complexity*multiplier, -0.3, 0.3),
		LayoutOpenness:     design.openness,
		LayoutFlow:         design.flow,
	}
}

func classifyMoodDirection(xGap, yGap, magnitude float64) MoodDirection {
	if magnitude < 0.3 {
		return MoodNeutral
	}

	// Dominant X-axis transformation (calming vs energizing)
	if math.Abs(xGap) > math.Abs(yGap)*1.5 {
		if xGap > 0.5 {
			return MoodStressedToRelaxed
		}
		if xGap < -0.5 {
			return MoodLowToEnergized
		}
	}

	// Dominant Y-axis transformation (inspiring vs grounding)
	if math.Abs(yGap) > math.Abs(xGap)*1.5 && yGap > 0.5 {
		return MoodBoredToInspired
	}

	// Large movement on both axes asks for grounding
	if magnitude > 1.0 && math.Abs(xGap) > 0.4 && math.Abs(yGap) > 0.4 {
		return MoodChaoticToGrounded
	}

	switch {
	case xGap > 0:
		return MoodStressedToRelaxed
	case yGap > 0:
		return MoodBoredToInspired
	default:
		return MoodNeutral
	}
}

// MoodScalars converts the transformation into calming/energizing/inspiring
// weights for prompt synthesis.
func (t MoodTransformation) MoodScalars() MoodWeights {
	scale := 0.5
	switch t.Magnitude {
	case "moderate":
		scale = 0.75
	case "significant":
		scale = 1.0
	}

	switch t.Direction {
	case MoodStressedToRelaxed:
		return MoodWeights{Calming: scale, Energizing: 0.1, Inspiring: 0.3}
	case MoodLowToEnergized:
		return MoodWeights{Calming: 0.1, Energizing: scale, Inspiring: 0.4}
	case MoodBoredToInspired:
		return MoodWeights{Calming: 0.2, Energizing: 0.4, Inspiring: scale}
	case MoodChaoticToGrounded:
		return MoodWeights{Calming: scale, Energizing: 0.2, Inspiring: 0.2}
	default:
		return MoodWeights{Calming: 0.4, Energizing: 0.3, Inspiring: 0.3}
	}
}
