package synthesis

import "testing"

func TestBuildInputsDefaults(t *testing.T) {
	inputs := BuildInputs(Snapshot{})

	if inputs.Lifestyle.Vibe != defaultVibe {
		t.Errorf("expected default vibe %q, got %q", defaultVibe, inputs.Lifestyle.Vibe)
	}
	if inputs.Sensory.Light != defaultLight {
		t.Errorf("expected default light %q, got %q", defaultLight, inputs.Sensory.Light)
	}
	if inputs.RoomType != defaultRoomType {
		t.Errorf("expected default room type %q, got %q", defaultRoomType, inputs.RoomType)
	}
	if inputs.Psychological.Biophilia != defaultBiophilia {
		t.Errorf("expected default biophilia %v, got %v", defaultBiophilia, inputs.Psychological.Biophilia)
	}
	if inputs.Explicit.Biophilia != nil {
		t.Error("unanswered biophilia must stay nil, not default")
	}
	if inputs.Personality != nil {
		t.Error("absent personality must stay nil")
	}
}

func TestBuildInputsClampsRanges(t *testing.T) {
	answer := 7.0
	inputs := BuildInputs(Snapshot{
		ImplicitWarmth:     1.8,
		ExplicitComplexity: -0.5,
		BiophiliaAnswer:    &answer,
	})

	if inputs.Implicit.Warmth != 1 {
		t.Errorf("warmth not clamped: %v", inputs.Implicit.Warmth)
	}
	if inputs.Explicit.Complexity != 0 {
		t.Errorf("complexity not clamped: %v", inputs.Explicit.Complexity)
	}
	if inputs.Psychological.Biophilia != 3 {
		t.Errorf("biophilia not clamped to scale: %v", inputs.Psychological.Biophilia)
	}
}

func TestInferImplicitBiophilia(t *testing.T) {
	swipes := []SwipeRecord{
		{BiophiliaScore: 3, Direction: "right"},
		{BiophiliaScore: 1, Direction: "right"},
		{BiophiliaScore: 0, Direction: "left"},
	}
	got := inferImplicitBiophilia(swipes)
	if got != 2 {
		t.Errorf("expected mean of liked swipes 2, got %v", got)
	}

	if got := inferImplicitBiophilia(nil); got != defaultBiophilia {
		t.Errorf("expected default %v for no likes, got %v", defaultBiophilia, got)
	}
}

func TestNormalizePersonalityFillsDomains(t *testing.T) {
	p := normalizePersonality(&Personality{Domains: map[string]float64{"O": 0.9}})
	for _, d := range []string{"C", "E", "A", "N"} {
		if p.Domains[d] != 0.5 {
			t.Errorf("domain %s not defaulted to neutral: %v", d, p.Domains[d])
		}
	}
	if p.Domains["O"] != 0.9 {
		t.Errorf("provided domain overwritten: %v", p.Domains["O"])
	}
}

func TestFilterInputsIsolatesSources(t *testing.T) {
	inputs := blendTestInputs()
	inputs.Personality = &Personality{Domains: map[string]float64{"O": 0.9}}
	inputs.Activities = []Activity{{Name: "work", Frequency: "daily"}}

	implicit := FilterInputs(inputs, SourceImplicit)
	if implicit.Explicit.Style != "" {
		t.Error("implicit slice must not see explicit style")
	}
	if implicit.Personality != nil {
		t.Error("implicit slice must not see personality")
	}

	explicit := FilterInputs(inputs, SourceExplicit)
	if len(explicit.Implicit.Swipes) != 0 {
		t.Error("explicit slice must not see swipes")
	}

	personality := FilterInputs(inputs, SourcePersonality)
	if personality.Personality == nil {
		t.Error("personality slice lost its profile")
	}
	if len(personality.Implicit.ColorPalette) != 0 || personality.Explicit.Style != "" {
		t.Error("personality slice must not see aesthetic signals")
	}

	mixed := FilterInputs(inputs, SourceMixed)
	if len(mixed.Activities) != 0 {
		t.Error("mixed slice must not see activities")
	}

	functional := FilterInputs(inputs, SourceMixedFunctional)
	if len(functional.Activities) != 1 {
		t.Error("functional slice lost activities")
	}
}
