package synthesis

// Snapshot is the raw per-session export from the persistence layer. Fields
// may be missing or zero; BuildInputs normalizes them into PromptInputs.
type Snapshot struct {
	Swipes             []SwipeRecord
	DominantStyles     []string
	ImplicitColors     []string
	ImplicitWarmth     float64
	ImplicitComplexity float64
	ImplicitBrightness float64

	ExplicitStyle      string
	PaletteName        string
	PaletteHexes       []string
	ExplicitMaterials  []string
	ExplicitWarmth     float64
	ExplicitComplexity float64
	ExplicitBrightness float64
	BiophiliaAnswer    *float64 // 0-3, nil when unanswered

	CurrentMood MoodPoint
	IdealMood   MoodPoint

	Vibe           string
	Goals          []string
	Values         []string
	Music          string
	Texture        string
	Light          string
	NatureMetaphor string

	Personality *Personality

	Inspirations  []Inspiration
	HouseholdType string
	SocialContext string
	RoomType      string
	RoomAnalysis  *RoomAnalysis
	Activities    []Activity
	PainPoints    []PainPoint
}

// Defaults applied when the session never answered the corresponding question.
const (
	defaultBiophilia      = 1.0
	defaultVibe           = "balanced"
	defaultMusic          = "silence"
	defaultTexture        = "smooth_wood"
	defaultLight          = "warm_bright"
	defaultNatureMetaphor = "forest"
	defaultRoomType       = "living_room"
)

// BuildInputs assembles the canonical PromptInputs snapshot from raw session
// data. Normalization and defaulting only, no derivation logic.
func BuildInputs(s Snapshot) PromptInputs {
	inputs := PromptInputs{
		Implicit: ImplicitSignals{
			DominantStyles: s.DominantStyles,
			ColorPalette:   s.ImplicitColors,
			Warmth:         clamp01(s.ImplicitWarmth),
			Complexity:     clamp01(s.ImplicitComplexity),
			Brightness:     clamp01(s.ImplicitBrightness),
			Biophilia:      inferImplicitBiophilia(s.Swipes),
			Swipes:         s.Swipes,
		},
		Explicit: ExplicitSignals{
			Style:        s.ExplicitStyle,
			PaletteName:  s.PaletteName,
			PaletteHexes: s.PaletteHexes,
			Materials:    s.ExplicitMaterials,
			Warmth:       clamp01(s.ExplicitWarmth),
			Complexity:   clamp01(s.ExplicitComplexity),
			Brightness:   clamp01(s.ExplicitBrightness),
			Biophilia:    s.BiophiliaAnswer,
		},
		Psychological: Psychological{
			CurrentMood: s.CurrentMood,
			IdealMood:   s.IdealMood,
			Biophilia:   defaultBiophilia,
		},
		Lifestyle: Lifestyle{
			Vibe:   stringOr(s.Vibe, defaultVibe),
			Goals:  s.Goals,
			Values: s.Values,
		},
		Sensory: Sensory{
			Music:          stringOr(s.Music, defaultMusic),
			Texture:        stringOr(s.Texture, defaultTexture),
			Light:          stringOr(s.Light, defaultLight),
			NatureMetaphor: stringOr(s.NatureMetaphor, defaultNatureMetaphor),
		},
		Personality:  normalizePersonality(s.Personality),
		Inspirations: s.Inspirations,
		Household: Household{
			Type:          s.HouseholdType,
			SocialContext: s.SocialContext,
		},
		RoomType:     stringOr(s.RoomType, defaultRoomType),
		RoomAnalysis: s.RoomAnalysis,
		Activities:   s.Activities,
		PainPoints:   s.PainPoints,
	}

	if s.BiophiliaAnswer != nil {
		inputs.Psychological.Biophilia = clampRange(*s.BiophiliaAnswer, 0, 3)
	}

	return inputs
}

// inferImplicitBiophilia averages the biophilia scores of liked swipes.
func inferImplicitBiophilia(swipes []SwipeRecord) float64 {
	sum := 0.0
	n := 0
	for _, sw := range swipes {
		if sw.Liked() {
			sum += sw.BiophiliaScore
			n++
		}
	}
	if n == 0 {
		return defaultBiophilia
	}
	return clampRange(sum/float64(n), 0, 3)
}

// normalizePersonality fills missing domain scores with the neutral 0.5.
// A nil personality stays nil: absence and neutrality mean different
// things to the quality gate.
func normalizePersonality(p *Personality) *Personality {
	if p == nil {
		return nil
	}
	out := &Personality{
		Domains: make(map[string]float64, 5),
		Facets:  p.Facets,
	}
	for _, d := range []string{"O", "C", "E", "A", "N"} {
		if v, ok := p.Domains[d]; ok {
			out.Domains[d] = clamp01(v)
		} else {
			out.Domains[d] = 0.5
		}
	}
	return out
}

func stringOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func clamp01(v float64) float64 {
	return clampRange(v, 0, 1)
}

func clampRange(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
