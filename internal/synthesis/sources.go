package synthesis

// FilterInputs returns a copy of the snapshot restricted to the slice of
// signals a source may use. The aggressive zeroing is what makes the six
// sources structurally different prompts instead of re-labelings of the
// same data.
func FilterInputs(inputs PromptInputs, source Source) PromptInputs {
	filtered := inputs

	switch source {
	case SourceImplicit:
		filtered.Explicit = ExplicitSignals{}
		filtered.Personality = nil
		filtered.Lifestyle = Lifestyle{}
		filtered.Sensory = Sensory{}
		filtered.Inspirations = nil
		filtered.Household = Household{}
		filtered.RoomAnalysis = nil
		filtered.Activities = nil
		filtered.PainPoints = nil
		filtered.Psychological = Psychological{
			// Mood stays neutral so only swipe behavior drives the prompt.
			Biophilia: inputs.Implicit.Biophilia,
		}

	case SourceExplicit:
		filtered.Implicit = ImplicitSignals{}
		filtered.Personality = nil
		filtered.Inspirations = nil
		filtered.RoomAnalysis = nil
		filtered.Activities = nil
		filtered.PainPoints = nil

	case SourcePersonality:
		filtered.Implicit = ImplicitSignals{}
		filtered.Explicit = ExplicitSignals{}
		filtered.Inspirations = nil
		filtered.Lifestyle = Lifestyle{}
		filtered.Sensory = Sensory{}
		filtered.Household = Household{}
		filtered.RoomAnalysis = nil
		filtered.Activities = nil
		filtered.PainPoints = nil
		filtered.Psychological.Biophilia = 0

	case SourceMixed:
		filtered.Activities = nil
		filtered.PainPoints = nil

	case SourceMixedFunctional, SourceInspirationReference:
		// Full snapshot.
	}

	return filtered
}

// HasDataFor reports whether the snapshot carries any signal the source
// could use. Cheaper than a full quality assessment; used for availability
// checks before gating.
func HasDataFor(inputs PromptInputs, source Source) bool {
	hasImplicit := len(inputs.Implicit.Swipes) > 0 || len(inputs.Implicit.DominantStyles) > 0
	hasExplicit := inputs.Explicit.Biophilia != nil || inputs.Explicit.Style != ""

	switch source {
	case SourceImplicit:
		return hasImplicit
	case SourceExplicit:
		return hasExplicit
	case SourcePersonality:
		return inputs.Personality != nil && len(inputs.Personality.Domains) > 0
	case SourceMixed:
		return hasImplicit || hasExplicit
	case SourceMixedFunctional:
		return (hasImplicit || hasExplicit) &&
			(len(inputs.Activities) > 0 || len(inputs.PainPoints) > 0)
	case SourceInspirationReference:
		return len(inputs.Inspirations) > 0
	}
	return false
}
