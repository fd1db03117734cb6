package synthesis

import "strings"

// Integration weights. Behavioral data outweighs stated preferences for
// style and material blending; color temperature also listens to the
// sensory light preference.
const (
	styleWeightImplicit = 0.6
	styleWeightExplicit = 0.4

	colorWeightImplicit = 0.4
	colorWeightExplicit = 0.4
	colorWeightLight    = 0.2
)

var lightIntensiveActivities = map[string]bool{
	"work":     true,
	"read":     true,
	"creative": true,
	"cook":     true,
}

// Synthesize folds the gated inputs, the personality derivation and the
// conflict policy into one PromptWeights record for a source. Deterministic:
// identical arguments always produce identical output. Callers must only
// invoke it for sources whose report says ShouldGenerate.
func Synthesize(inputs PromptInputs, source Source, report QualityReport, derivation *StyleDerivation, conflict *ConflictAnalysis) PromptWeights {
	filtered := FilterInputs(inputs, source)
	mood := AnalyzeMoodTransformation(filtered.Psychological.CurrentMood, filtered.Psychological.IdealMood)

	w := PromptWeights{
		Source:         source,
		Mood:           mood.MoodScalars(),
		Explainability: map[string]ElementSource{},
	}

	synthesizeStyle(&w, filtered, source, derivation, conflict)
	synthesizeColors(&w, filtered, source, mood)
	synthesizeMaterials(&w, filtered, source, derivation)
	synthesizeBiophilia(&w, filtered, source, mood, conflict)
	synthesizeAtmosphere(&w, filtered, source, mood, derivation)
	synthesizeFunctional(&w, filtered, source)

	w.Layout = LayoutFor(source, filtered.Personality, w.Functional.RequiresZoning)
	w.Explainability["layout"] = ElementSource{Source: string(source), Note: w.Layout.Description}

	// Confidence never exceeds what the quality gate granted.
	if max := report.Confidence / 100; w.StyleConfidence > max && max > 0 {
		w.StyleConfidence = max
	}

	return w
}

func synthesizeStyle(w *PromptWeights, in PromptInputs, source Source, derivation *StyleDerivation, conflict *ConflictAnalysis) {
	switch source {
	case SourceImplicit:
		w.DominantStyle = firstOr(in.Implicit.DominantStyles, "modern")
		w.StyleConfidence = 0.8
		w.Explainability["style"] = ElementSource{Source: "implicit", Note: "dominant style across liked swipes"}

	case SourceExplicit:
		w.DominantStyle = stringOr(in.Explicit.Style, styleFromPalette(in.Explicit.PaletteName))
		if w.DominantStyle == "" {
			w.DominantStyle = "modern"
		}
		w.StyleConfidence = 0.9
		w.Explainability["style"] = ElementSource{Source: "explicit", Note: "style stated in the survey"}

	case SourcePersonality:
		if derivation != nil {
			w.DominantStyle = derivation.DominantStyle
			w.StyleConfidence = derivation.Confidence
			w.Explainability["style"] = ElementSource{Source: "personality", Note: "mapping " + derivation.MappingID}
			return
		}
		w.DominantStyle = "modern classic"
		w.StyleConfidence = 0.5
		w.Explainability["style"] = ElementSource{Source: "personality", Note: "default profile"}

	case SourceMixed:
		// Behavioral style leads, survey style shapes structure.
		w.DominantStyle = firstOr(in.Implicit.DominantStyles, stringOr(in.Explicit.Style, "modern"))
		w.StyleConfidence = 0.8
		note := "implicit aesthetics blended with explicit structure"
		if conflict != nil && conflict.HasConflict {
			note = conflict.Recommendation.Mixed
		}
		w.Explainability["style"] = ElementSource{Source: "mixed", Note: note}

	case SourceMixedFunctional:
		// Survey style is the functional base.
		w.DominantStyle = stringOr(in.Explicit.Style, firstOr(in.Implicit.DominantStyles, "modern"))
		w.StyleConfidence = 0.8
		note := "explicit base enhanced with implicit accents"
		if conflict != nil && conflict.HasConflict {
			note = conflict.Recommendation.MixedFunctional
		}
		w.Explainability["style"] = ElementSource{Source: "mixed_functional", Note: note}

	case SourceInspirationReference:
		w.DominantStyle = styleFromTags(in.Inspirations)
		w.StyleConfidence = 0.7
		w.Explainability["style"] = ElementSource{Source: "inspiration_reference", Note: "style extracted from reference image tags"}
	}
}

func synthesizeColors(w *PromptWeights, in PromptInputs, source Source, mood MoodTransformation) {
	var palette []string
	switch source {
	case SourcePersonality:
		palette = PersonalityColors(in.Personality)
		w.Explainability["colors"] = ElementSource{Source: "personality", Note: "trait-matched palettes"}
	case SourceExplicit:
		palette = in.Explicit.PaletteHexes
		w.Explainability["colors"] = ElementSource{Source: "explicit", Note: "chosen palette"}
	case SourceInspirationReference:
		palette = colorTags(in.Inspirations)
		w.Explainability["colors"] = ElementSource{Source: "inspiration_reference", Note: "colors tagged in references"}
	default:
		palette = in.Implicit.ColorPalette
		if len(palette) == 0 {
			palette = in.Explicit.PaletteHexes
		}
		w.Explainability["colors"] = ElementSource{Source: string(source), Note: "implicit palette with explicit fallback"}
	}
	if len(palette) == 0 {
		palette = mood.Colors
		w.Explainability["colors"] = ElementSource{Source: "mood", Note: "mood transformation palette"}
	}
	w.ColorPalette = append([]string(nil), palette...)
}

func synthesizeMaterials(w *PromptWeights, in PromptInputs, source Source, derivation *StyleDerivation) {
	var materials []string
	switch source {
	case SourcePersonality:
		if derivation != nil {
			materials = append(materials, derivation.Materials...)
		}
		materials = append(materials, PersonalityMaterials(in.Personality)...)
	case SourceExplicit:
		materials = in.Explicit.Materials
	case SourceInspirationReference:
		materials = materialTags(in.Inspirations)
	default:
		// Two implicit picks, one explicit.
		materials = append(materials, firstN(in.Implicit.Materials, 2)...)
		materials = append(materials, firstN(in.Explicit.Materials, 1)...)
	}
	w.Materials = dedupeStrings(materials)
}

func synthesizeBiophilia(w *PromptWeights, in PromptInputs, source Source, mood MoodTransformation, conflict *ConflictAnalysis) {
	score := in.Psychological.Biophilia
	if in.Explicit.Biophilia != nil {
		score = *in.Explicit.Biophilia
	}

	// Conflicting biophilia readings blend per the conflict policy.
	if conflict != nil && conflict.HasConflict && conflict.Type == ConflictBiophilia {
		switch source {
		case SourceMixed:
			score = (in.Implicit.Biophilia + score) / 2
		case SourceMixedFunctional:
			// Explicit value already selected above.
		}
	}

	density := clamp01(score/3 + mood.BiophiliaModifier)
	w.BiophiliaDensity = density

	var elements []string
	if density > 0 {
		elements = append(elements, "natural materials")
	}
	if density > 0.33 {
		elements = append(elements, "indoor plants")
	}
	if density > 0.66 {
		elements = append(elements, "organic shapes", "abundant greenery")
	}
	switch in.Sensory.NatureMetaphor {
	case "ocean":
		elements = append(elements, "flowing forms", "water-inspired colors")
	case "forest":
		elements = append(elements, "layered textures", "wood elements")
	case "mountain":
		elements = append(elements, "stone materials", "strong vertical lines")
	}
	w.BiophiliaElements = elements
	w.Explainability["biophilia"] = ElementSource{Source: string(source), Note: "density from biophilia score adjusted by mood gap"}
}

func synthesizeAtmosphere(w *PromptWeights, in PromptInputs, source Source, mood MoodTransformation, derivation *StyleDerivation) {
	var complexity float64
	switch source {
	case SourcePersonality:
		complexity = 0.5
		if derivation != nil {
			complexity = derivation.Complexity
		}
	case SourceExplicit:
		complexity = in.Explicit.Complexity
	default:
		complexity = in.Implicit.Complexity*styleWeightImplicit + in.Explicit.Complexity*styleWeightExplicit
	}
	w.Complexity = clamp01(complexity + mood.ComplexityModifier)

	lightInfluence := 0.5
	if strings.Contains(in.Sensory.Light, "warm") {
		lightInfluence = 0.7
	} else if strings.Contains(in.Sensory.Light, "cool") {
		lightInfluence = 0.3
	}
	w.Warmth = clamp01(in.Implicit.Warmth*colorWeightImplicit +
		in.Explicit.Warmth*colorWeightExplicit +
		lightInfluence*colorWeightLight)

	brightness := in.Implicit.Brightness*styleWeightImplicit + in.Explicit.Brightness*styleWeightExplicit
	if mood.LightingIntensity == "bright" {
		brightness = clamp01(brightness + 0.2)
	} else if mood.LightingIntensity == "dim" {
		brightness = clamp01(brightness - 0.2)
	}
	w.Brightness = brightness
}

func synthesizeFunctional(w *PromptWeights, in PromptInputs, source Source) {
	if source != SourceMixedFunctional && source != SourceInspirationReference {
		return
	}

	var priorities []string
	for _, p := range in.PainPoints {
		switch p.Issue {
		case "storage":
			priorities = append(priorities, "ample storage")
		case "layout":
			priorities = append(priorities, "optimized layout")
		case "light":
			priorities = append(priorities, "improved lighting")
		case "clutter":
			priorities = append(priorities, "organization systems")
		}
	}
	if in.Household.SocialContext == "shared" || in.Household.SocialContext == "family" {
		priorities = append(priorities, "zoning for multiple users")
	}

	lighting := in.Sensory.Light
	for _, a := range in.Activities {
		if lightIntensiveActivities[a.Name] && a.Frequency != "rarely" {
			lighting = "warm_bright"
			break
		}
	}

	w.Functional = FunctionalNeeds{
		Priorities:       dedupeStrings(priorities),
		LightingStrategy: lighting,
		RequiresZoning:   requiresZoning(in),
	}
	if len(priorities) > 0 || len(in.Activities) > 0 {
		w.Explainability["functional"] = ElementSource{Source: string(source), Note: "activity frequencies and pain points"}
	}
}

// requiresZoning holds when frequent activities compete for the room or the
// room is shared.
func requiresZoning(in PromptInputs) bool {
	if in.Household.SocialContext == "shared" || in.Household.SocialContext == "family" {
		return true
	}
	frequent := 0
	for _, a := range in.Activities {
		if activityFrequencyRank(a.Frequency) >= 3 {
			frequent++
		}
	}
	return frequent >= 2
}

// activityFrequencyRank orders activity frequency labels for sorting.
func activityFrequencyRank(freq string) int {
	switch freq {
	case "daily":
		return 4
	case "few_times_week":
		return 3
	case "weekly":
		return 2
	case "occasionally":
		return 1
	default:
		return 0
	}
}

// PrimaryActivities returns the activity names in descending frequency
// order, used by the prompt builder for the functional tier.
func PrimaryActivities(activities []Activity, n int) []string {
	sorted := append([]Activity(nil), activities...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && activityFrequencyRank(sorted[j].Frequency) > activityFrequencyRank(sorted[j-1].Frequency); j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	names := make([]string, 0, n)
	for _, a := range sorted {
		if len(names) == n {
			break
		}
		names = append(names, a.Name)
	}
	return names
}

func styleFromTags(refs []Inspiration) string {
	for _, ref := range refs {
		for _, tag := range ref.Tags {
			if s := styleFromPalette(tag); s != "" {
				return s
			}
		}
	}
	return "contemporary"
}

func colorTags(refs []Inspiration) []string {
	var colors []string
	for _, ref := range refs {
		for _, tag := range ref.Tags {
			if strings.HasPrefix(tag, "#") {
				colors = append(colors, tag)
			}
		}
	}
	return dedupeStrings(colors)
}

func materialTags(refs []Inspiration) []string {
	known := []string{"wood", "stone", "metal", "glass", "linen", "velvet", "rattan", "marble", "concrete", "brass", "leather"}
	var materials []string
	for _, ref := range refs {
		for _, tag := range ref.Tags {
			lower := strings.ToLower(tag)
			for _, k := range known {
				if strings.Contains(lower, k) {
					materials = append(materials, lower)
				}
			}
		}
	}
	return dedupeStrings(materials)
}

func firstOr(values []string, fallback string) string {
	if len(values) > 0 && values[0] != "" {
		return values[0]
	}
	return fallback
}

func firstN(values []string, n int) []string {
	if len(values) < n {
		n = len(values)
	}
	return values[:n]
}

func dedupeStrings(values []string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
