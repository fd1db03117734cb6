package prompt

// BiophiliaDescriptor maps a 0-1 nature density onto concrete plant
// vocabulary. Image models follow explicit counts better than adjectives, so
// each tier carries both.
type BiophiliaDescriptor struct {
	Tier            string
	Description     string
	PlantDensity    string
	NaturalElements []string
	ShortPhrase     string
	PlantCount      int
}

type biophiliaTier struct {
	max          float64
	tier         string
	plantDensity string
	baseElements []string
	shortPhrase  string
	description  string
	plantCount   int
}

var biophiliaTiers = []biophiliaTier{
	{0.05, "none", "no plants", nil,
		"no plants or greenery",
		"no plants or greenery - clean, plant-free space", 0},
	{0.17, "minimal", "minimal plants", []string{"one tiny plant"},
		"minimal natural touches (1 tiny plant)",
		"minimal natural touches - one tiny potted plant on a shelf", 1},
	{0.34, "subtle", "few plants", []string{"two small plants", "light wood"},
		"subtle natural accents (2 small plants)",
		"subtle natural accents - 2 small plants and light wood detail", 2},
	{0.50, "light", "several plants", []string{"3-4 small/medium plants", "natural materials"},
		"natural presence (3-4 small/medium plants)",
		"natural presence - 3-4 small/medium plants, natural materials", 4},
	{0.67, "moderate", "many plants", []string{"4-6 mixed plants", "rattan", "linen", "wood"},
		"moderate greenery (4-6 mixed plants)",
		"moderate greenery - 4-6 mixed plants, visible natural textures", 6},
	{0.83, "abundant", "abundant plants", []string{"6-8 plants", "one floor plant", "one hanging planter", "natural textures"},
		"abundant greenery (floor + hanging planters)",
		"abundant greenery - floor plant plus hanging planter, 6-8 plants total", 8},
	{1.0, "lush", "jungle-like", []string{"8-12 plants", "large floor plants", "vertical greenery", "botanical atmosphere"},
		"lush indoor jungle (8-12 plants)",
		"lush indoor jungle - many large plants, vertical green accents", 12},
}

func biophiliaDescriptor(density float64, elements []string) BiophiliaDescriptor {
	d := density
	if d < 0 {
		d = 0
	}
	if d > 1 {
		d = 1
	}

	tier := biophiliaTiers[len(biophiliaTiers)-1]
	for _, t := range biophiliaTiers {
		if d <= t.max {
			tier = t
			break
		}
	}

	merged := make([]string, 0, 5)
	seen := map[string]struct{}{}
	for _, e := range append(append([]string{}, tier.baseElements...), elements...) {
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		merged = append(merged, e)
		if len(merged) == 5 {
			break
		}
	}

	return BiophiliaDescriptor{
		Tier:            tier.tier,
		Description:     tier.description,
		PlantDensity:    tier.plantDensity,
		NaturalElements: merged,
		ShortPhrase:     tier.shortPhrase,
		PlantCount:      tier.plantCount,
	}
}

func complexityLabel(complexity float64) string {
	switch {
	case complexity < 0.35:
		return "simple"
	case complexity > 0.70:
		return "complex"
	default:
		return "balanced"
	}
}

func brightnessLabel(brightness float64) string {
	switch {
	case brightness < 0.35:
		return "dark"
	case brightness > 0.70:
		return "bright"
	default:
		return "balanced"
	}
}

var natureMetaphorDescriptions = map[string]string{
	"forest":   "Forest (Dappled light, organic forms, deep greens and earthy browns)",
	"ocean":    "Ocean (Fluid forms, cooler shadows, tranquil blues and seafoam tones)",
	"mountain": "Mountain (Strong vertical lines, rugged stone textures, airy and crisp feel)",
	"desert":   "Desert (Warm directional light, sandy textures, terracotta and ochre palette)",
	"meadow":   "Meadow (Soft diffused light, airy textiles, wildflower accents and fresh greens)",
	"jungle":   "Jungle (Lush foliage, high humidity feel, vibrant exotic colors and dense layering)",
}

func textureFocus(materials []string, style string) string {
	if len(materials) < 2 {
		return "Focus on authentic " + style + " textures"
	}
	return materials[0] + " vs " + materials[1] + " contrast for tactile depth"
}

// knownStyles is the closed vocabulary the image backend understands. Blended
// labels are reduced to the first member found here.
var knownStyles = []string{
	"modern", "scandinavian", "industrial", "minimalist", "rustic",
	"bohemian", "contemporary", "traditional", "mid-century", "japandi",
	"coastal", "farmhouse", "mediterranean", "art-deco", "maximalist",
	"eclectic", "hygge", "zen", "vintage", "transitional",
}
