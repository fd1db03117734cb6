package handlers

import (
	"github.com/AkademiaSztuki/awa-api/internal/synthesis"
)

// SnapshotRequest is the wire form of a session's signal snapshot. Every
// field is optional, the quality gate decides what is usable.
type SnapshotRequest struct {
	Swipes             []SwipeRequest `json:"swipes"`
	DominantStyles     []string       `json:"dominant_styles"`
	ImplicitColors     []string       `json:"implicit_colors"`
	ImplicitWarmth     float64        `json:"implicit_warmth"`
	ImplicitComplexity float64        `json:"implicit_complexity"`
	ImplicitBrightness float64        `json:"implicit_brightness"`

	ExplicitStyle      string   `json:"explicit_style"`
	PaletteName        string   `json:"palette_name"`
	PaletteHexes       []string `json:"palette_hexes"`
	ExplicitMaterials  []string `json:"explicit_materials"`
	ExplicitWarmth     float64  `json:"explicit_warmth"`
	ExplicitComplexity float64  `json:"explicit_complexity"`
	ExplicitBrightness float64  `json:"explicit_brightness"`
	BiophiliaAnswer    *float64 `json:"biophilia_answer"`

	CurrentMood MoodPointRequest `json:"current_mood"`
	IdealMood   MoodPointRequest `json:"ideal_mood"`

	Vibe           string   `json:"vibe"`
	Goals          []string `json:"goals"`
	Values         []string `json:"values"`
	Music          string   `json:"music"`
	Texture        string   `json:"texture"`
	Light          string   `json:"light"`
	NatureMetaphor string   `json:"nature_metaphor"`

	Personality *PersonalityRequest `json:"personality"`

	Inspirations  []InspirationRequest `json:"inspirations"`
	HouseholdType string               `json:"household_type"`
	SocialContext string               `json:"social_context"`
	RoomType      string               `json:"room_type"`
	RoomAnalysis  *RoomAnalysisRequest `json:"room_analysis"`
	Activities    []ActivityRequest    `json:"activities"`
	PainPoints    []PainPointRequest   `json:"pain_points"`
}

type SwipeRequest struct {
	Style          string   `json:"style"`
	Colors         []string `json:"colors"`
	BiophiliaScore float64  `json:"biophilia_score"`
	Direction      string   `json:"direction"`
}

type MoodPointRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type PersonalityRequest struct {
	Domains map[string]float64 `json:"domains"`
	Facets  map[string]float64 `json:"facets"`
}

type InspirationRequest struct {
	URL         string   `json:"url"`
	ImageBase64 string   `json:"image_base64"`
	PreviewURL  string   `json:"preview_url"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
}

type RoomAnalysisRequest struct {
	ClutterEstimate float64  `json:"clutter_estimate"`
	DominantColors  []string `json:"dominant_colors"`
	DetectedObjects []string `json:"detected_objects"`
	LightQuality    string   `json:"light_quality"`
}

type ActivityRequest struct {
	Name      string   `json:"name"`
	Frequency string   `json:"frequency"`
	Needs     []string `json:"needs"`
}

type PainPointRequest struct {
	Issue    string `json:"issue"`
	Severity string `json:"severity"`
}

// ToSnapshot converts the wire form into the synthesis snapshot.
func (r SnapshotRequest) ToSnapshot() synthesis.Snapshot {
	s := synthesis.Snapshot{
		DominantStyles:     r.DominantStyles,
		ImplicitColors:     r.ImplicitColors,
		ImplicitWarmth:     r.ImplicitWarmth,
		ImplicitComplexity: r.ImplicitComplexity,
		ImplicitBrightness: r.ImplicitBrightness,
		ExplicitStyle:      r.ExplicitStyle,
		PaletteName:        r.PaletteName,
		PaletteHexes:       r.PaletteHexes,
		ExplicitMaterials:  r.ExplicitMaterials,
		ExplicitWarmth:     r.ExplicitWarmth,
		ExplicitComplexity: r.ExplicitComplexity,
		ExplicitBrightness: r.ExplicitBrightness,
		BiophiliaAnswer:    r.BiophiliaAnswer,
		CurrentMood:        synthesis.MoodPoint{X: r.CurrentMood.X, Y: r.CurrentMood.Y},
		IdealMood:          synthesis.MoodPoint{X: r.IdealMood.X, Y: r.IdealMood.Y},
		Vibe:               r.Vibe,
		Goals:              r.Goals,
		Values:             r.Values,
		Music:              r.Music,
		Texture:            r.Texture,
		Light:              r.Light,
		NatureMetaphor:     r.NatureMetaphor,
		HouseholdType:      r.HouseholdType,
		SocialContext:      r.SocialContext,
		RoomType:           r.RoomType,
	}

	for _, sw := range r.Swipes {
		s.Swipes = append(s.Swipes, synthesis.SwipeRecord{
			Style:          sw.Style,
			Colors:         sw.Colors,
			BiophiliaScore: sw.BiophiliaScore,
			Direction:      sw.Direction,
		})
	}

	if r.Personality != nil {
		s.Personality = &synthesis.Personality{
			Domains: r.Personality.Domains,
			Facets:  r.Personality.Facets,
		}
	}

	for _, insp := range r.Inspirations {
		s.Inspirations = append(s.Inspirations, synthesis.Inspiration{
			URL:         insp.URL,
			ImageBase64: insp.ImageBase64,
			PreviewURL:  insp.PreviewURL,
			Tags:        insp.Tags,
			Description: insp.Description,
		})
	}

	if r.RoomAnalysis != nil {
		s.RoomAnalysis = &synthesis.RoomAnalysis{
			ClutterEstimate: r.RoomAnalysis.ClutterEstimate,
			DominantColors:  r.RoomAnalysis.DominantColors,
			DetectedObjects: r.RoomAnalysis.DetectedObjects,
			LightQuality:    r.RoomAnalysis.LightQuality,
		}
	}

	for _, act := range r.Activities {
		s.Activities = append(s.Activities, synthesis.Activity{
			Name:      act.Name,
			Frequency: act.Frequency,
			Needs:     act.Needs,
		})
	}

	for _, pp := range r.PainPoints {
		s.PainPoints = append(s.PainPoints, synthesis.PainPoint{
			Issue:    pp.Issue,
			Severity: pp.Severity,
		})
	}

	return s
}
