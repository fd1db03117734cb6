package synthesis

// Research-anchored mappings from Big Five profiles to interior design
// recommendations. Condition keys are domain letters (O, C, E, A, N) or
// facet keys like "O2_Aesthetics"; condition values use the forms ">x",
// "<x", ">=x", "<=x", "a-b" and exact match.
//
// Basis keys: gosling2002 (room-with-a-cue office/bedroom study),
// nasar1989 (symbolic meanings of house styles), whitfield1990 (color
// psychology review), graham2017 (psychology of home environments).

// StyleMapping links a personality condition set to a style recommendation.
type StyleMapping struct {
	ID                   string
	Style                string
	Conditions           map[string]string
	Materials            []string
	Complexity           float64
	ResearchBasis        string
	ConfidenceMultiplier float64
}

const defaultMappingID = "modern_classic"

var styleMappings = []StyleMapping{
	{
		ID:    "eclectic_artistic",
		Style: "eclectic artistic",
		Conditions: map[string]string{
			"O":             ">0.65",
			"O2_Aesthetics": ">0.7",
		},
		Materials:            []string{"mixed textures", "artisanal elements", "vintage finds", "art pieces"},
		Complexity:           0.8,
		ResearchBasis:        "gosling2002",
		ConfidenceMultiplier: 1.0,
	},
	{
		ID:    "bohemian_eclectic",
		Style: "bohemian eclectic",
		Conditions: map[string]string{
			"O":          ">0.7",
			"C":          "<0.4",
			"O1_Fantasy": ">0.6",
		},
		Materials:            []string{"natural fibers", "handcrafted items", "organic shapes", "textured fabrics"},
		Complexity:           0.75,
		ResearchBasis:        "gosling2002",
		ConfidenceMultiplier: 0.95,
	},
	{
		ID:    "maximalist_bold",
		Style: "maximalist artistic",
		Conditions: map[string]string{
			"O":                    ">0.6",
			"E":                    ">0.6",
			"E5_ExcitementSeeking": ">0.65",
		},
		Materials:            []string{"bold patterns", "brass accents", "statement pieces", "vibrant colors"},
		Complexity:           0.85,
		ResearchBasis:        "whitfield1990",
		ConfidenceMultiplier: 0.9,
	},
	{
		ID:    "minimalist_clean",
		Style: "minimalist clean",
		Conditions: map[string]string{
			"C":        ">0.7",
			"O":        "<0.4",
			"C2_Order": ">0.75",
		},
		Materials:            []string{"glass", "polished surfaces", "clean lines", "simple materials"},
		Complexity:           0.2,
		ResearchBasis:        "gosling2002",
		ConfidenceMultiplier: 1.0,
	},
	{
		ID:    "scandinavian_harmonious",
		Style: "Scandinavian",
		Conditions: map[string]string{
			"C": ">0.6",
			"A": ">0.6",
			"N": "<0.4",
		},
		Materials:            []string{"light wood", "natural textiles", "simple forms", "functional beauty"},
		Complexity:           0.4,
		ResearchBasis:        "graham2017",
		ConfidenceMultiplier: 0.9,
	},
	{
		ID:    "cozy_hygge",
		Style: "cozy hygge",
		Conditions: map[string]string{
			"N":                   ">0.6",
			"A":                   ">0.5",
			"E1_Warmth":           ">0.65",
			"A6_TenderMindedness": ">0.6",
		},
		Materials:            []string{"soft textiles", "natural wood", "warm lighting", "comfortable fabrics"},
		Complexity:           0.5,
		ResearchBasis:        "graham2017",
		ConfidenceMultiplier: 0.95,
	},
	{
		ID:    "cozy_sanctuary",
		Style: "cozy sanctuary",
		Conditions: map[string]string{
			"E":          "<0.4",
			"N":          ">0.5",
			"N1_Anxiety": ">0.6",
		},
		Materials:            []string{"enclosed spaces", "soft textures", "calming colors", "protective elements"},
		Complexity:           0.3,
		ResearchBasis:        "graham2017",
		ConfidenceMultiplier: 0.9,
	},
	{
		ID:    "open_contemporary",
		Style: "open contemporary",
		Conditions: map[string]string{
			"E":                 ">0.7",
			"A":                 ">0.5",
			"E2_Gregariousness": ">0.7",
		},
		Materials:            []string{"open layouts", "social spaces", "bright lighting", "inviting furniture"},
		Complexity:           0.6,
		ResearchBasis:        "gosling2002",
		ConfidenceMultiplier: 0.85,
	},
	{
		ID:    "modern_confident",
		Style: "modern confident",
		Conditions: map[string]string{
			"O": ">0.5",
			"N": "<0.4",
			"C": ">0.5",
		},
		Materials:            []string{"sleek surfaces", "modern materials", "confident design", "balanced composition"},
		Complexity:           0.55,
		ResearchBasis:        "nasar1989",
		ConfidenceMultiplier: 0.8,
	},
	{
		ID:                   defaultMappingID,
		Style:                "modern classic",
		Conditions:           map[string]string{}, // balanced profile fallback
		Materials:            []string{"timeless pieces", "balanced materials", "classic proportions", "refined details"},
		Complexity:           0.5,
		ResearchBasis:        "nasar1989",
		ConfidenceMultiplier: 0.7,
	},
}

// ColorMapping links a trait condition to a palette recommendation.
type ColorMapping struct {
	Trait         string
	Facet         string
	Condition     string
	Colors        []string
	Temperature   string // warm, cool, neutral
	Saturation    string // high, medium, low
	ResearchBasis string
}

var colorMappings = []ColorMapping{
	{
		Trait:         "E",
		Condition:     ">0.6",
		Colors:        []string{"#FF7F50", "#FFD700", "#FF6347", "#FFA500"},
		Temperature:   "warm",
		Saturation:    "high",
		ResearchBasis: "whitfield1990",
	},
	{
		Trait:         "E",
		Facet:         "E5_ExcitementSeeking",
		Condition:     ">0.7",
		Colors:        []string{"#FF1493", "#FF00FF", "#DC143C", "#FF4500"},
		Temperature:   "warm",
		Saturation:    "high",
		ResearchBasis: "whitfield1990",
	},
	{
		Trait:         "E",
		Condition:     "<0.4",
		Colors:        []string{"#A9A9A9", "#6B8E9F", "#708090", "#778899"},
		Temperature:   "cool",
		Saturation:    "low",
		ResearchBasis: "whitfield1990",
	},
	{
		Trait:         "N",
		Condition:     ">0.6",
		Colors:        []string{"#F5F5DC", "#E6E6FA", "#FFF8DC", "#F0E68C"},
		Temperature:   "neutral",
		Saturation:    "low",
		ResearchBasis: "whitfield1990",
	},
	{
		Trait:         "O",
		Facet:         "O2_Aesthetics",
		Condition:     ">0.7",
		Colors:        []string{"#9370DB", "#BA55D3", "#DA70D6", "#FF69B4"},
		Temperature:   "neutral",
		Saturation:    "medium",
		ResearchBasis: "gosling2002",
	},
	{
		Trait:         "A",
		Facet:         "A6_TenderMindedness",
		Condition:     ">0.6",
		Colors:        []string{"#FFB6C1", "#FFC0CB", "#FFE4E1", "#FFF0F5"},
		Temperature:   "warm",
		Saturation:    "low",
		ResearchBasis: "graham2017",
	},
	{
		Trait:         "C",
		Condition:     ">0.6",
		Colors:        []string{"#FFFFFF", "#F5F5F5", "#E0E0E0", "#D3D3D3"},
		Temperature:   "neutral",
		Saturation:    "low",
		ResearchBasis: "gosling2002",
	},
}

// MaterialMapping links a trait condition to preferred materials.
type MaterialMapping struct {
	Trait         string
	Facet         string
	Condition     string
	Materials     []string
	ResearchBasis string
}

var materialMappings = []MaterialMapping{
	{Trait: "A", Condition: ">0.6", Materials: []string{"soft textiles", "natural wood", "comfortable fabrics"}, ResearchBasis: "graham2017"},
	{Trait: "N", Condition: ">0.5", Materials: []string{"soft textures", "natural materials", "calming surfaces"}, ResearchBasis: "graham2017"},
	{Trait: "C", Condition: ">0.6", Materials: []string{"glass", "polished surfaces", "clean materials"}, ResearchBasis: "gosling2002"},
	{Trait: "O", Condition: ">0.6", Materials: []string{"mixed textures", "artisanal elements", "varied materials"}, ResearchBasis: "gosling2002"},
	{Trait: "E", Condition: ">0.6", Materials: []string{"brass", "bold accents", "statement materials"}, ResearchBasis: "whitfield1990"},
	{Trait: "A", Facet: "A6_TenderMindedness", Condition: ">0.6", Materials: []string{"soft fabrics", "gentle textures", "organic materials"}, ResearchBasis: "graham2017"},
}
