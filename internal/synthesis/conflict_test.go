package synthesis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyleDistance(t *testing.T) {
	assert.InDelta(t, 0, StyleDistance("Modern", "modern"), 0.0001)
	assert.InDelta(t, 0.5, StyleDistance("modern", "modern classic"), 0.0001, "substring match")
	assert.InDelta(t, 0.3, StyleDistance("modern", "contemporary"), 0.0001)
	assert.InDelta(t, 0.3, StyleDistance("contemporary", "modern"), 0.0001, "symmetric lookup")
	assert.InDelta(t, 2.0, StyleDistance("modern", "rustic"), 0.0001)
	assert.InDelta(t, 2.0, StyleDistance("japandi", "baroque"), 0.0001, "unknown pair defaults")
}

func TestAnalyzeConflictsAgreement(t *testing.T) {
	biophilia := 2.0
	analysis := AnalyzeConflicts(PromptInputs{
		Implicit: ImplicitSignals{DominantStyles: []string{"scandinavian"}, Biophilia: 2, Materials: []string{"light wood"}},
		Explicit: ExplicitSignals{Style: "scandinavian", Biophilia: &biophilia, Materials: []string{"light wood", "wool"}},
	})

	assert.False(t, analysis.HasConflict)
	assert.Equal(t, ConflictNone, analysis.Type)
	assert.Empty(t, analysis.Conflicts)
	assert.NotEmpty(t, analysis.Recommendation.Mixed)
}

func TestAnalyzeConflictsStyleMajor(t *testing.T) {
	biophilia := 1.0
	analysis := AnalyzeConflicts(PromptInputs{
		Implicit: ImplicitSignals{DominantStyles: []string{"modern"}, Biophilia: 1},
		Explicit: ExplicitSignals{Style: "rustic", Biophilia: &biophilia},
	})

	require.True(t, analysis.HasConflict)
	assert.Equal(t, ConflictStyle, analysis.Type)
	assert.Equal(t, SeverityMajor, analysis.Severity)
	assert.Contains(t, analysis.Recommendation.UserMessage, "modern")
	assert.Contains(t, analysis.Recommendation.UserMessage, "rustic")
}

func TestAnalyzeConflictsStyleModerate(t *testing.T) {
	biophilia := 1.0
	analysis := AnalyzeConflicts(PromptInputs{
		Implicit: ImplicitSignals{DominantStyles: []string{"modern"}, Biophilia: 1},
		Explicit: ExplicitSignals{Style: "industrial", Biophilia: &biophilia},
	})

	require.True(t, analysis.HasConflict)
	assert.Equal(t, ConflictStyle, analysis.Type)
	assert.Equal(t, SeverityModerate, analysis.Severity)
}

func TestAnalyzeConflictsBiophiliaGap(t *testing.T) {
	zero := 0.0
	analysis := AnalyzeConflicts(PromptInputs{
		Implicit: ImplicitSignals{DominantStyles: []string{"modern"}, Biophilia: 3},
		Explicit: ExplicitSignals{Style: "modern", Biophilia: &zero},
	})

	require.True(t, analysis.HasConflict)
	assert.Equal(t, ConflictBiophilia, analysis.Type)
	assert.Equal(t, SeverityMajor, analysis.Severity)

	two := 0.5
	analysis = AnalyzeConflicts(PromptInputs{
		Implicit: ImplicitSignals{DominantStyles: []string{"modern"}, Biophilia: 2.5},
		Explicit: ExplicitSignals{Style: "modern", Biophilia: &two},
	})
	require.True(t, analysis.HasConflict)
	assert.Equal(t, ConflictBiophilia, analysis.Type)
	assert.Equal(t, SeverityModerate, analysis.Severity)
}

func TestAnalyzeConflictsMaterials(t *testing.T) {
	biophilia := 1.5
	analysis := AnalyzeConflicts(PromptInputs{
		Implicit: ImplicitSignals{
			DominantStyles: []string{"modern"},
			Biophilia:      1.5,
			Materials:      []string{"steel", "glass"},
		},
		Explicit: ExplicitSignals{
			Style:     "modern",
			Biophilia: &biophilia,
			Materials: []string{"rattan", "linen"},
		},
	})

	require.True(t, analysis.HasConflict)
	assert.Equal(t, ConflictMaterials, analysis.Type)
	assert.Equal(t, SeverityModerate, analysis.Severity)
}

func TestAnalyzeConflictsStyleFromPalette(t *testing.T) {
	biophilia := 1.0
	analysis := AnalyzeConflicts(PromptInputs{
		Implicit: ImplicitSignals{DominantStyles: []string{"bohemian"}, Biophilia: 1},
		Explicit: ExplicitSignals{PaletteName: "minimalist whites", Biophilia: &biophilia},
	})

	require.True(t, analysis.HasConflict)
	assert.Equal(t, ConflictStyle, analysis.Type)
}

func TestConflictPrecedenceStyleFirst(t *testing.T) {
	// Style and biophilia both disagree: the reported type is the first
	// detected conflict, the severity the worst one.
	zero := 0.0
	analysis := AnalyzeConflicts(PromptInputs{
		Implicit: ImplicitSignals{DominantStyles: []string{"modern"}, Biophilia: 3},
		Explicit: ExplicitSignals{Style: "scandinavian", Biophilia: &zero},
	})

	require.True(t, analysis.HasConflict)
	assert.Equal(t, ConflictStyle, analysis.Type)
	assert.Equal(t, SeverityMajor, analysis.Severity)
	assert.Len(t, analysis.Conflicts, 2)
}
