package synthesis

import (
	"fmt"
	"math"
)

// Quality gate thresholds. Empirically chosen constants, see implicit
// thresholds in implicit_quality.go for the swipe-specific set.
const (
	explicitConfidencePerAnswer = 15.0
	explicitMinOptionalAnswers  = 2

	personalityNeutralEpsilon = 0.001

	mixedGoodQualityConfidence = 70.0
	mixedGoodQualityDataPoints = 4

	inspirationConfidenceUsable   = 80.0
	inspirationConfidenceNoImages = 40.0
)

// Assess produces the admission decision for one source. Pure, never
// errors; an unknown source yields a permissive default with a warning.
func Assess(inputs PromptInputs, source Source) QualityReport {
	switch source {
	case SourceImplicit:
		return assessImplicit(inputs)
	case SourceExplicit:
		return assessExplicit(inputs)
	case SourcePersonality:
		return assessPersonality(inputs)
	case SourceMixed:
		return assessMixed(inputs, false)
	case SourceMixedFunctional:
		return assessMixed(inputs, true)
	case SourceInspirationReference:
		return assessInspiration(inputs)
	default:
		return QualityReport{
			Source:         source,
			Status:         StatusLimited,
			ShouldGenerate: true,
			Confidence:     50,
			Warnings:       []string{fmt.Sprintf("unknown source %q, applying permissive default", source)},
		}
	}
}

// AssessAll runs the gate over every source in the enumeration.
func AssessAll(inputs PromptInputs) map[Source]QualityReport {
	reports := make(map[Source]QualityReport, len(AllSources()))
	for _, s := range AllSources() {
		reports[s] = Assess(inputs, s)
	}
	return reports
}

func assessImplicit(inputs PromptInputs) QualityReport {
	q := AssessImplicitQuality(inputs.Implicit.Swipes)

	report := QualityReport{
		Source:     SourceImplicit,
		DataPoints: q.LikeCount,
		Confidence: clampRange(q.QualityScore, 0, 100),
		Metrics: map[string]float64{
			"quality_score":         q.QualityScore,
			"style_consistency":     q.StyleConsistency,
			"color_consistency":     q.ColorConsistency,
			"biophilia_consistency": q.BiophiliaConsistency,
			"like_ratio":            q.LikeRatio,
		},
	}

	switch {
	case q.LikeCount == 0:
		report.Status = StatusInsufficient
		report.Warnings = append(report.Warnings, "no liked swipes, nothing to infer taste from")
	case q.QualityScore < implicitScoreInsufficient:
		report.Status = StatusInsufficient
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("swipe quality score %.0f is too low to trust", q.QualityScore))
	case q.QualityScore < implicitScoreLimited:
		report.Status = StatusLimited
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("swipe signals are noisy (%s)", q.Interpretation))
	default:
		report.Status = StatusSufficient
	}

	report.ShouldGenerate = report.Status != StatusInsufficient
	return report
}

func assessExplicit(inputs PromptInputs) QualityReport {
	report := QualityReport{Source: SourceExplicit}

	// The biophilia rating is the research-anchored field; without it the
	// explicit survey carries no grounded signal.
	if inputs.Explicit.Biophilia == nil {
		report.Status = StatusInsufficient
		report.ShouldGenerate = false
		report.Warnings = append(report.Warnings, "biophilia rating not answered")
		return report
	}

	optional := 0
	if inputs.Explicit.Style != "" {
		optional++
	}
	if inputs.Explicit.PaletteName != "" || len(inputs.Explicit.PaletteHexes) > 0 {
		optional++
	}
	if len(inputs.Explicit.Materials) > 0 {
		optional++
	}
	if inputs.Sensory.Music != "" && inputs.Sensory.Music != defaultMusic {
		optional++
	}
	if inputs.Sensory.Texture != "" {
		optional++
	}
	if inputs.Sensory.Light != "" {
		optional++
	}

	answered := optional + 1 // anchor counts
	report.DataPoints = answered
	report.Confidence = math.Min(100, float64(answered)*explicitConfidencePerAnswer)
	report.Metrics = map[string]float64{"answered_fields": float64(answered)}

	if optional < explicitMinOptionalAnswers {
		report.Status = StatusLimited
		report.Warnings = append(report.Warnings, "few survey answers beyond the biophilia rating")
	} else {
		report.Status = StatusSufficient
	}
	report.ShouldGenerate = true
	return report
}

func assessPersonality(inputs PromptInputs) QualityReport {
	report := QualityReport{Source: SourcePersonality}

	p := inputs.Personality
	if p == nil || len(p.Domains) == 0 {
		report.Status = StatusInsufficient
		report.ShouldGenerate = false
		report.Warnings = append(report.Warnings, "no personality data")
		return report
	}

	allNeutral := true
	for _, v := range p.Domains {
		if math.Abs(v-0.5) > personalityNeutralEpsilon {
			allNeutral = false
			break
		}
	}

	report.DataPoints = len(p.Domains) + len(p.Facets)
	report.Metrics = map[string]float64{
		"extremity":          personalityExtremity(p),
		"facet_completeness": float64(len(p.Facets)) / 30.0,
	}

	if allNeutral && len(p.Facets) == 0 {
		// All-50 domains with no facet breakdown is the signature of a
		// defaulted instrument, not an actual answer set.
		report.Status = StatusLimited
		report.Confidence = 50
		report.Warnings = append(report.Warnings, "all domains neutral with no facets, looks like a fallback profile")
	} else {
		report.Status = StatusSufficient
		if len(p.Facets) > 0 {
			report.Confidence = clampRange(personalityConfidence(p)*100, 30, 95)
		} else {
			report.Confidence = math.Min(100, 60+personalityExtremity(p)*25)
		}
	}

	report.ShouldGenerate = true
	return report
}

func assessMixed(inputs PromptInputs, functional bool) QualityReport {
	source := SourceMixed
	if functional {
		source = SourceMixedFunctional
	}
	report := QualityReport{Source: source}

	implicit := assessImplicit(inputs)
	explicit := assessExplicit(inputs)

	implicitOK := implicit.Status != StatusInsufficient
	explicitOK := explicit.Status != StatusInsufficient

	report.DataPoints = implicit.DataPoints + explicit.DataPoints
	report.Warnings = append(report.Warnings, implicit.Warnings...)
	report.Warnings = append(report.Warnings, explicit.Warnings...)

	switch {
	case implicitOK && explicitOK:
		report.Status = StatusSufficient
		report.Confidence = (implicit.Confidence + explicit.Confidence) / 2
	case implicitOK:
		report.Status = StatusLimited
		report.Confidence = implicit.Confidence
		report.Warnings = append(report.Warnings, "explicit signals missing, blend will lean on swipe behavior")
	case explicitOK:
		report.Status = StatusLimited
		report.Confidence = explicit.Confidence
		report.Warnings = append(report.Warnings, "implicit signals missing, blend will lean on survey answers")
	default:
		report.Status = StatusInsufficient
		report.Warnings = append(report.Warnings, "neither implicit nor explicit signals are usable")
	}

	if functional {
		if len(inputs.Activities) == 0 && len(inputs.PainPoints) == 0 {
			report.Status = StatusInsufficient
			report.Warnings = append(report.Warnings, "no activities or pain points recorded for functional blending")
		} else {
			report.DataPoints += 2
		}
	}

	hasGoodQuality := 0.0
	if report.Confidence >= mixedGoodQualityConfidence && report.DataPoints >= mixedGoodQualityDataPoints {
		hasGoodQuality = 1
	}
	report.Metrics = map[string]float64{
		"implicit_confidence": implicit.Confidence,
		"explicit_confidence": explicit.Confidence,
		"good_quality":        hasGoodQuality,
	}

	report.ShouldGenerate = report.Status != StatusInsufficient
	return report
}

func assessInspiration(inputs PromptInputs) QualityReport {
	report := QualityReport{Source: SourceInspirationReference}

	usable := 0
	for _, ref := range inputs.Inspirations {
		if ref.HasImageData() {
			usable++
		}
	}
	report.DataPoints = usable
	report.Metrics = map[string]float64{
		"references": float64(len(inputs.Inspirations)),
		"usable":     float64(usable),
	}

	switch {
	case usable > 0:
		report.Status = StatusSufficient
		report.Confidence = inspirationConfidenceUsable
	case len(inputs.Inspirations) > 0:
		report.Status = StatusLimited
		report.Confidence = inspirationConfidenceNoImages
		report.Warnings = append(report.Warnings, "references exist but none carry retrievable image data")
	default:
		report.Status = StatusInsufficient
		report.Warnings = append(report.Warnings, "no inspiration references provided")
	}

	report.ShouldGenerate = report.Status != StatusInsufficient
	return report
}

// personalityExtremity is the mean distance of domain scores from neutral,
// scaled to 0-1.
func personalityExtremity(p *Personality) float64 {
	if len(p.Domains) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range p.Domains {
		sum += math.Abs(v-0.5) * 2
	}
	return sum / float64(len(p.Domains))
}
