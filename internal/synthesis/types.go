// Package synthesis converts heterogeneous user signals (swipe behavior,
// survey answers, Big Five personality data, inspiration images) into
// weighted, quality-gated generation instructions for an image backend.
package synthesis

// Source identifies which slice of the input snapshot a generation job may
// draw from. Each viable source becomes one independent generation job.
type Source string

const (
	SourceImplicit             Source = "implicit"
	SourceExplicit             Source = "explicit"
	SourcePersonality          Source = "personality"
	SourceMixed                Source = "mixed"
	SourceMixedFunctional      Source = "mixed_functional"
	SourceInspirationReference Source = "inspiration_reference"
)

// AllSources returns the closed set of generation sources in dispatch order.
func AllSources() []Source {
	return []Source{
		SourceImplicit,
		SourceExplicit,
		SourcePersonality,
		SourceMixed,
		SourceMixedFunctional,
		SourceInspirationReference,
	}
}

// Valid reports whether s is a member of the closed enumeration.
func (s Source) Valid() bool {
	switch s {
	case SourceImplicit, SourceExplicit, SourcePersonality,
		SourceMixed, SourceMixedFunctional, SourceInspirationReference:
		return true
	}
	return false
}

// SwipeRecord is a single behavioral choice from the swipe phase.
type SwipeRecord struct {
	Style          string
	Colors         []string
	BiophiliaScore float64 // 0-3
	Direction      string  // "right" = liked
}

// Liked reports whether the record is a positive signal.
func (s SwipeRecord) Liked() bool { return s.Direction == "right" }

// ImplicitSignals are preferences inferred from swipe behavior.
type ImplicitSignals struct {
	DominantStyles []string
	ColorPalette   []string
	Materials      []string
	Warmth         float64 // 0-1
	Complexity     float64 // 0-1
	Brightness     float64 // 0-1
	Biophilia      float64 // 0-3, inferred
	Swipes         []SwipeRecord
}

// ExplicitSignals are preferences the user stated directly.
type ExplicitSignals struct {
	Style        string
	PaletteName  string
	PaletteHexes []string
	Materials    []string
	Warmth       float64
	Complexity   float64
	Brightness   float64
	// Biophilia is the research-anchored survey field on a 0-3 scale.
	// Nil means the question was never answered.
	Biophilia *float64
}

// MoodPoint is a position on the two-axis restorativeness grid.
type MoodPoint struct {
	X float64 // tense <-> relaxed
	Y float64 // bored <-> inspired
}

// Psychological carries the mood baseline and biophilia measurements.
type Psychological struct {
	CurrentMood MoodPoint
	IdealMood   MoodPoint
	Biophilia   float64 // stated, 0-3
}

type Lifestyle struct {
	Vibe   string
	Goals  []string
	Values []string
}

type Sensory struct {
	Music          string
	Texture        string
	Light          string
	NatureMetaphor string
}

// Personality holds Big Five scores normalized to 0-1. Facets are keyed
// like "O2_Aesthetics" (domain letter, facet number, label).
type Personality struct {
	Domains map[string]float64 // keys O, C, E, A, N
	Facets  map[string]float64
}

// Inspiration is a user-provided reference image.
type Inspiration struct {
	URL         string
	ImageBase64 string
	PreviewURL  string
	Tags        []string
	Description string
}

// HasImageData reports whether the reference carries retrievable image data.
func (i Inspiration) HasImageData() bool {
	return i.URL != "" || i.ImageBase64 != "" || i.PreviewURL != ""
}

type Household struct {
	Type          string
	SocialContext string // alone, partner, family, shared
}

// RoomAnalysis is the vision analysis of the user's current room.
type RoomAnalysis struct {
	ClutterEstimate float64 // 0-1
	DominantColors  []string
	DetectedObjects []string
	LightQuality    string
}

type Activity struct {
	Name      string
	Frequency string // daily, few_times_week, weekly, occasionally, rarely
	Needs     []string
}

type PainPoint struct {
	Issue    string
	Severity string
}

// PromptInputs is the canonical snapshot of every signal the engine may
// consume. It is built once per generation pass and never mutated.
type PromptInputs struct {
	Implicit      ImplicitSignals
	Explicit      ExplicitSignals
	Psychological Psychological
	Lifestyle     Lifestyle
	Sensory       Sensory
	Personality   *Personality
	Inspirations  []Inspiration
	Household     Household
	RoomType      string
	RoomAnalysis  *RoomAnalysis
	Activities    []Activity
	PainPoints    []PainPoint
}

// QualityStatus classifies how trustworthy a signal source is.
type QualityStatus string

const (
	StatusSufficient   QualityStatus = "sufficient"
	StatusLimited      QualityStatus = "limited"
	StatusInsufficient QualityStatus = "insufficient"
)

// QualityReport is the per-source admission decision. Produced once per
// source per pass, never mutated afterwards.
type QualityReport struct {
	Source         Source
	Status         QualityStatus
	ShouldGenerate bool
	DataPoints     int
	Confidence     float64 // 0-100
	Warnings       []string
	Metrics        map[string]float64
}

// StyleDerivation is the personality-driven style recommendation.
type StyleDerivation struct {
	DominantStyle string
	Confidence    float64 // (0, 0.95]
	Materials     []string
	Complexity    float64 // 0-1
	MappingID     string
	MatchScore    float64 // 0-1
	ResearchBasis string
}

type ConflictType string

const (
	ConflictNone      ConflictType = "none"
	ConflictStyle     ConflictType = "style"
	ConflictColors    ConflictType = "colors"
	ConflictMaterials ConflictType = "materials"
	ConflictBiophilia ConflictType = "biophilia"
)

type ConflictSeverity string

const (
	SeverityMinor    ConflictSeverity = "minor"
	SeverityModerate ConflictSeverity = "moderate"
	SeverityMajor    ConflictSeverity = "major"
)

// Conflict is one detected disagreement between signal sources.
type Conflict struct {
	Type     ConflictType
	Severity ConflictSeverity
	Implicit string
	Explicit string
	Detail   string
}

// BlendRecommendation proposes how conflicting sources should be merged.
type BlendRecommendation struct {
	Mixed           string
	MixedFunctional string
	UserMessage     string
}

// ConflictAnalysis compares implicit against explicit signals.
type ConflictAnalysis struct {
	HasConflict    bool
	Type           ConflictType
	Severity       ConflictSeverity
	Conflicts      []Conflict
	Recommendation BlendRecommendation
}

// MoodWeights are the synthesized atmosphere scalars.
type MoodWeights struct {
	Calming    float64
	Energizing float64
	Inspiring  float64
}

// LayoutVariation describes the spatial arrangement policy for a source.
type LayoutVariation struct {
	Arrangement  string
	FocalPoint   string
	Distribution string
	Flow         string
	Description  string
}

// FunctionalNeeds captures activity- and pain-point-driven requirements.
type FunctionalNeeds struct {
	Priorities       []string
	LightingStrategy string
	RequiresZoning   bool
}

// ElementSource records which signal source contributed a prompt element.
type ElementSource struct {
	Source string
	Note   string
}

// PromptWeights is the synthesized output handed to the prompt builder.
// Stable for identical inputs.
type PromptWeights struct {
	Source            Source
	DominantStyle     string
	StyleConfidence   float64
	ColorPalette      []string
	Materials         []string
	Mood              MoodWeights
	BiophiliaDensity  float64 // 0-1
	BiophiliaElements []string
	Complexity        float64 // 0-1
	Brightness        float64 // 0-1
	Warmth            float64 // 0-1
	Layout            LayoutVariation
	Functional        FunctionalNeeds
	Explainability    map[string]ElementSource
}
