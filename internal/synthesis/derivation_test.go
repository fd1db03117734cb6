package synthesis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveStyleNilProfile(t *testing.T) {
	d := DeriveStyle(nil)
	assert.Equal(t, defaultMappingID, d.MappingID)
	assert.Equal(t, "modern classic", d.DominantStyle)
	assert.InDelta(t, 0.5, d.Confidence, 0.0001)
}

func TestDeriveStyleNeutralFallback(t *testing.T) {
	p := &Personality{Domains: map[string]float64{"O": 0.5, "C": 0.5, "E": 0.5, "A": 0.5, "N": 0.5}}
	d := DeriveStyle(p)

	assert.Equal(t, defaultMappingID, d.MappingID)
	assert.InDelta(t, 0.5, d.Confidence, 0.0001)
	assert.InDelta(t, 0.5, d.Complexity, 0.0001)
}

func TestDeriveStyleMinimalistProfile(t *testing.T) {
	p := &Personality{
		Domains: map[string]float64{"O": 0.2, "C": 0.85, "E": 0.5, "A": 0.5, "N": 0.5},
		Facets:  map[string]float64{"C2_Order": 0.9},
	}
	d := DeriveStyle(p)

	assert.Equal(t, "minimalist_clean", d.MappingID)
	assert.Equal(t, "minimalist clean", d.DominantStyle)
	assert.InDelta(t, 0.2, d.Complexity, 0.0001)
	assert.Contains(t, d.Materials, "glass")
	assert.Greater(t, d.Confidence, 0.8)
	assert.LessOrEqual(t, d.Confidence, 0.95)
}

func TestDeriveStyleDeterministic(t *testing.T) {
	p := &Personality{
		Domains: map[string]float64{"O": 0.8, "C": 0.3, "E": 0.7, "A": 0.6, "N": 0.4},
		Facets:  map[string]float64{"O2_Aesthetics": 0.85, "E5_ExcitementSeeking": 0.7},
	}
	first := DeriveStyle(p)
	for i := 0; i < 10; i++ {
		again := DeriveStyle(p)
		require.Equal(t, first.MappingID, again.MappingID)
		require.Equal(t, first.Confidence, again.Confidence)
		require.Equal(t, first.MatchScore, again.MatchScore)
	}
}

func TestDeriveStyleNeutralDomainsWithFacets(t *testing.T) {
	// Flat domains, strong aesthetic facets. The facet-backed mapping must
	// beat domain-only mappings despite the neutral profile.
	p := &Personality{
		Domains: map[string]float64{"O": 0.5, "C": 0.5, "E": 0.5, "A": 0.5, "N": 0.5},
		Facets: map[string]float64{
			"O2_Aesthetics": 0.95,
			"O1_Fantasy":    0.85,
			"C2_Order":      0.15,
		},
	}
	d := DeriveStyle(p)

	assert.NotEqual(t, defaultMappingID, d.MappingID, "facet evidence should escape the fallback")
	assert.Greater(t, d.Confidence, 0.5)
}

func TestDeriveStyleConfidenceCap(t *testing.T) {
	p := &Personality{
		Domains: map[string]float64{"O": 1, "C": 0, "E": 1, "A": 1, "N": 0},
		Facets: map[string]float64{
			"O2_Aesthetics": 1, "O1_Fantasy": 1, "E5_ExcitementSeeking": 1,
			"E1_Warmth": 1, "E2_Gregariousness": 1,
		},
	}
	d := DeriveStyle(p)
	assert.LessOrEqual(t, d.Confidence, 0.95)
}

func TestEvalCondition(t *testing.T) {
	cases := []struct {
		value float64
		cond  string
		want  bool
	}{
		{0.8, ">0.7", true},
		{0.7, ">0.7", false},
		{0.7, ">=0.7", true},
		{0.3, "<0.4", true},
		{0.4, "<=0.4", true},
		{0.5, "0.4-0.6", true},
		{0.65, "0.4-0.6", false},
		{0.52, "0.5", true},
		{0.58, "0.5", false},
		{0.9, "", true},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, evalCondition(c.value, c.cond), "value %v cond %q", c.value, c.cond)
	}
}

func TestSignalValueFacetFallback(t *testing.T) {
	p := &Personality{Domains: map[string]float64{"N": 0.8}}

	v, ok := signalValue(p, "N1_Anxiety")
	require.True(t, ok)
	assert.InDelta(t, 0.8, v, 0.0001)

	p.Facets = map[string]float64{"N1_Anxiety": 0.3}
	v, ok = signalValue(p, "N1_Anxiety")
	require.True(t, ok)
	assert.InDelta(t, 0.3, v, 0.0001)
}

func TestPersonalityColorsAndMaterials(t *testing.T) {
	p := &Personality{
		Domains: map[string]float64{"O": 0.9, "C": 0.8, "E": 0.5, "A": 0.5, "N": 0.2},
	}

	colors := PersonalityColors(p)
	assert.NotEmpty(t, colors)

	materials := PersonalityMaterials(p)
	assert.NotEmpty(t, materials)

	seen := map[string]int{}
	for _, m := range materials {
		seen[m]++
	}
	for m, n := range seen {
		assert.Equal(t, 1, n, "material %q duplicated", m)
	}

	assert.Nil(t, PersonalityColors(nil))
	assert.Nil(t, PersonalityMaterials(nil))
}
