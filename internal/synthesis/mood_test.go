package synthesis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoodDirectionClassification(t *testing.T) {
	cases := []struct {
		name    string
		current MoodPoint
		ideal   MoodPoint
		want    MoodDirection
	}{
		{"no movement", MoodPoint{X: 0, Y: 0}, MoodPoint{X: 0.1, Y: 0.1}, MoodNeutral},
		{"tense to calm", MoodPoint{X: -1, Y: 0}, MoodPoint{X: 0.5, Y: 0.2}, MoodStressedToRelaxed},
		{"flat to energized", MoodPoint{X: 0.5, Y: 0}, MoodPoint{X: -0.8, Y: 0.1}, MoodLowToEnergized},
		{"bored to inspired", MoodPoint{X: 0, Y: -0.8}, MoodPoint{X: 0.1, Y: 0.6}, MoodBoredToInspired},
		{"big move both axes", MoodPoint{X: -0.6, Y: -0.6}, MoodPoint{X: 0.3, Y: 0.3}, MoodChaoticToGrounded},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := AnalyzeMoodTransformation(c.current, c.ideal)
			assert.Equal(t, c.want, got.Direction)
		})
	}
}

func TestMoodModifiersScaleWithMagnitude(t *testing.T) {
	subtle := AnalyzeMoodTransformation(MoodPoint{X: -0.2, Y: 0}, MoodPoint{X: 0.2, Y: 0})
	assert.Equal(t, "subtle", subtle.Magnitude)

	significant := AnalyzeMoodTransformation(MoodPoint{X: -1, Y: 0}, MoodPoint{X: 1, Y: 0})
	assert.Equal(t, "significant", significant.Magnitude)
	assert.Equal(t, MoodStressedToRelaxed, significant.Direction)

	// Both transformations push biophilia the same way; the larger gap
	// pushes harder, but never past the clamp.
	assert.Greater(t, significant.BiophiliaModifier, subtle.BiophiliaModifier)
	assert.LessOrEqual(t, significant.BiophiliaModifier, 0.5)
	assert.GreaterOrEqual(t, significant.ComplexityModifier, -0.3)
}

func TestMoodNaturalLightThresholds(t *testing.T) {
	small := AnalyzeMoodTransformation(MoodPoint{}, MoodPoint{X: 0.4})
	assert.Equal(t, "moderate", small.NaturalLight)

	mid := AnalyzeMoodTransformation(MoodPoint{}, MoodPoint{X: 0.8})
	assert.Equal(t, "important", mid.NaturalLight)

	large := AnalyzeMoodTransformation(MoodPoint{X: -0.8}, MoodPoint{X: 0.8})
	assert.Equal(t, "essential", large.NaturalLight)
}

func TestMoodScalars(t *testing.T) {
	calm := AnalyzeMoodTransformation(MoodPoint{X: -1, Y: 0}, MoodPoint{X: 1, Y: 0}).MoodScalars()
	assert.InDelta(t, 1.0, calm.Calming, 0.0001)
	assert.Less(t, calm.Energizing, calm.Calming)

	energize := AnalyzeMoodTransformation(MoodPoint{X: 1, Y: 0}, MoodPoint{X: -1, Y: 0}).MoodScalars()
	assert.InDelta(t, 1.0, energize.Energizing, 0.0001)
	assert.Less(t, energize.Calming, energize.Energizing)

	neutral := MoodTransformation{Direction: MoodNeutral, Magnitude: "subtle"}.MoodScalars()
	assert.InDelta(t, 0.4, neutral.Calming, 0.0001)
}

func TestLayoutVariesAcrossSources(t *testing.T) {
	p := &Personality{
		Domains: map[string]float64{"O": 0.5, "C": 0.5, "E": 0.5, "A": 0.5, "N": 0.5},
		Facets:  map[string]float64{"C2_Order": 0.8},
	}

	seen := map[string]bool{}
	for _, s := range AllSources() {
		layout := LayoutFor(s, p, false)
		assert.NotEmpty(t, layout.Arrangement, "source %s", s)
		assert.NotEmpty(t, layout.Description, "source %s", s)
		seen[layout.Arrangement+"/"+layout.FocalPoint] = true
	}
	assert.Greater(t, len(seen), 1, "layouts must differ between sources")
}
