package synthesis

import (
	"fmt"
	"math"
	"strings"
)

const (
	styleDistanceMinor    = 0.5
	styleDistanceModerate = 1.5
	styleDistanceDefault  = 2.0

	biophiliaConflictGap = 2.0
	biophiliaMajorGap    = 3.0
)

// Symmetric style compatibility distances. Lower is more compatible;
// unlisted pairs fall back to styleDistanceDefault.
var styleCompatibility = map[string]map[string]float64{
	"modern": {
		"contemporary": 0.3,
		"minimalist":   0.3,
		"scandinavian": 0.5,
		"industrial":   0.7,
		"rustic":       2.0,
		"traditional":  2.5,
		"bohemian":     2.0,
	},
	"scandinavian": {
		"minimalist": 0.3,
		"modern":     0.5,
		"japandi":    0.4,
		"rustic":     1.5,
		"industrial": 1.8,
		"bohemian":   2.0,
	},
	"industrial": {
		"modern":       0.7,
		"contemporary": 0.8,
		"rustic":       1.2,
		"scandinavian": 1.8,
		"traditional":  2.5,
		"bohemian":     2.5,
	},
	"rustic": {
		"traditional":  0.5,
		"farmhouse":    0.3,
		"industrial":   1.2,
		"modern":       2.0,
		"scandinavian": 1.5,
	},
	"bohemian": {
		"eclectic":   0.3,
		"maximalist": 0.5,
		"rustic":     1.0,
		"modern":     2.0,
		"minimalist": 2.5,
	},
}

// AnalyzeConflicts compares implicit against explicit signals and proposes
// a blending policy. Pure function of the inputs; never errors.
func AnalyzeConflicts(inputs PromptInputs) ConflictAnalysis {
	implicitStyle := ""
	if len(inputs.Implicit.DominantStyles) > 0 {
		implicitStyle = inputs.Implicit.DominantStyles[0]
	}
	explicitStyle := inputs.Explicit.Style
	if explicitStyle == "" {
		explicitStyle = styleFromPalette(inputs.Explicit.PaletteName)
	}

	implicitBiophilia := inputs.Implicit.Biophilia
	explicitBiophilia := inputs.Psychological.Biophilia
	if inputs.Explicit.Biophilia != nil {
		explicitBiophilia = *inputs.Explicit.Biophilia
	}

	var conflicts []Conflict

	if implicitStyle != "" && explicitStyle != "" {
		if distance := StyleDistance(implicitStyle, explicitStyle); distance > 0 {
			conflicts = append(conflicts, Conflict{
				Type:     ConflictStyle,
				Severity: styleSeverity(distance),
				Implicit: implicitStyle,
				Explicit: explicitStyle,
				Detail:   fmt.Sprintf("style mismatch: implicit=%s, explicit=%s", implicitStyle, explicitStyle),
			})
		}
	}

	if gap := math.Abs(implicitBiophilia - explicitBiophilia); gap >= biophiliaConflictGap {
		severity := SeverityModerate
		if gap >= biophiliaMajorGap {
			severity = SeverityMajor
		}
		conflicts = append(conflicts, Conflict{
			Type:     ConflictBiophilia,
			Severity: severity,
			Implicit: fmt.Sprintf("%.0f", implicitBiophilia),
			Explicit: fmt.Sprintf("%.0f", explicitBiophilia),
			Detail:   fmt.Sprintf("biophilia mismatch: implicit=%.0f, explicit=%.0f", implicitBiophilia, explicitBiophilia),
		})
	}

	if len(inputs.Implicit.Materials) > 0 && len(inputs.Explicit.Materials) > 0 &&
		!materialsOverlap(inputs.Implicit.Materials, inputs.Explicit.Materials) {
		conflicts = append(conflicts, Conflict{
			Type:     ConflictMaterials,
			Severity: SeverityModerate,
			Detail:   "no material overlap between implicit and explicit preferences",
		})
	}

	analysis := ConflictAnalysis{
		HasConflict: len(conflicts) > 0,
		Type:        ConflictNone,
		Severity:    SeverityMinor,
		Conflicts:   conflicts,
	}
	if len(conflicts) > 0 {
		analysis.Type = conflicts[0].Type
		analysis.Severity = maxSeverity(conflicts)
	}
	analysis.Recommendation = recommend(analysis, implicitStyle, explicitStyle, implicitBiophilia, explicitBiophilia)
	return analysis
}

// StyleDistance returns the compatibility distance between two style names.
// 0 means identical (or substring match at 0.5); unrelated styles are 2.0.
func StyleDistance(a, b string) float64 {
	s1 := strings.ToLower(strings.TrimSpace(a))
	s2 := strings.ToLower(strings.TrimSpace(b))

	if s1 == s2 {
		return 0
	}
	if strings.Contains(s1, s2) || strings.Contains(s2, s1) {
		return 0.5
	}
	if d, ok := styleCompatibility[s1][s2]; ok {
		return d
	}
	if d, ok := styleCompatibility[s2][s1]; ok {
		return d
	}
	return styleDistanceDefault
}

func styleSeverity(distance float64) ConflictSeverity {
	switch {
	case distance <= styleDistanceMinor:
		return SeverityMinor
	case distance <= styleDistanceModerate:
		return SeverityModerate
	default:
		return SeverityMajor
	}
}

func maxSeverity(conflicts []Conflict) ConflictSeverity {
	max := SeverityMinor
	for _, c := range conflicts {
		if c.Severity == SeverityMajor {
			return SeverityMajor
		}
		if c.Severity == SeverityModerate {
			max = SeverityModerate
		}
	}
	return max
}

func materialsOverlap(a, b []string) bool {
	for _, m := range a {
		for _, e := range b {
			if strings.EqualFold(m, e) {
				return true
			}
		}
	}
	return false
}

// styleFromPalette recovers a style name when the palette label embeds one.
func styleFromPalette(palette string) string {
	if palette == "" {
		return ""
	}
	lower := strings.ToLower(palette)
	for _, style := range []string{
		"scandinavian", "modern", "industrial", "rustic", "bohemian",
		"minimalist", "mid-century", "contemporary", "traditional",
	} {
		if strings.Contains(lower, style) {
			return style
		}
	}
	return ""
}

func recommend(analysis ConflictAnalysis, implicitStyle, explicitStyle string, implicitBiophilia, explicitBiophilia float64) BlendRecommendation {
	if !analysis.HasConflict {
		return BlendRecommendation{
			Mixed:           "Blend implicit and explicit preferences harmoniously",
			MixedFunctional: "Use explicit as base, enhance with implicit aesthetics",
		}
	}

	switch analysis.Type {
	case ConflictStyle:
		if implicitStyle != "" && explicitStyle != "" {
			msg := fmt.Sprintf("Łączymy %s z %s dla unikalnego efektu.", implicitStyle, explicitStyle)
			if analysis.Severity == SeverityMajor {
				msg = fmt.Sprintf("Zauważyliśmy różnicę: lubisz %s (z wyborów), ale wybrałeś %s (w ankiecie). Pokażemy oba style!", implicitStyle, explicitStyle)
			}
			return BlendRecommendation{
				Mixed:           fmt.Sprintf("Blend %s aesthetics with %s structural elements", implicitStyle, explicitStyle),
				MixedFunctional: fmt.Sprintf("Use %s as functional base, %s as aesthetic accent", explicitStyle, implicitStyle),
				UserMessage:     msg,
			}
		}
	case ConflictBiophilia:
		avg := math.Round((implicitBiophilia + explicitBiophilia) / 2)
		return BlendRecommendation{
			Mixed:           fmt.Sprintf("Balance biophilia: blend %.0f/3 (implicit) with %.0f/3 (explicit) → %.0f/3", implicitBiophilia, explicitBiophilia, avg),
			MixedFunctional: fmt.Sprintf("Prioritize explicit biophilia (%.0f/3) for functional needs, add implicit touches (%.0f/3)", explicitBiophilia, implicitBiophilia),
			UserMessage:     fmt.Sprintf("Różnica w roślinach: %.0f/3 vs %.0f/3 - znajdziemy złoty środek!", implicitBiophilia, explicitBiophilia),
		}
	}

	return BlendRecommendation{
		Mixed:           "Blend conflicting preferences harmoniously",
		MixedFunctional: "Use explicit as base, enhance with implicit elements",
	}
}
