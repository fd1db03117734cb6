package synthesis

// Facet keys consulted by the personality layout policy.
const (
	facetOrderPreference   = "C2_Order"
	facetExcitementSeeking = "E5_ExcitementSeeking"

	layoutFacetThreshold = 0.6
)

// LayoutFor picks the spatial arrangement policy for a source. Sources get
// deliberately different strategies so the six prompts differ visually,
// not just in wording.
func LayoutFor(source Source, p *Personality, requiresZoning bool) LayoutVariation {
	switch source {
	case SourceImplicit:
		return LayoutVariation{
			Arrangement:  "asymmetrical",
			FocalPoint:   "off-center",
			Distribution: "clustered",
			Flow:         "flexible",
			Description:  "organic, intuitive arrangement with off-center focal point, clustered furniture creating cozy zones",
		}

	case SourceExplicit:
		return LayoutVariation{
			Arrangement:  "balanced",
			FocalPoint:   "centered",
			Distribution: "distributed",
			Flow:         "defined",
			Description:  "balanced, structured layout with centered focal point, evenly distributed furniture creating clear zones",
		}

	case SourcePersonality:
		if p != nil {
			if v, ok := facetOrDomain(p, facetOrderPreference); ok && v > layoutFacetThreshold {
				return LayoutVariation{
					Arrangement:  "symmetrical",
					FocalPoint:   "centered",
					Distribution: "distributed",
					Flow:         "defined",
					Description:  "symmetrical, organized layout with centered focal point, evenly distributed furniture",
				}
			}
			if v, ok := facetOrDomain(p, facetExcitementSeeking); ok && v > layoutFacetThreshold {
				return LayoutVariation{
					Arrangement:  "asymmetrical",
					FocalPoint:   "multiple",
					Distribution: "clustered",
					Flow:         "flexible",
					Description:  "dynamic, asymmetrical layout with multiple focal points, clustered furniture for visual interest",
				}
			}
		}
		return LayoutVariation{
			Arrangement:  "balanced",
			FocalPoint:   "centered",
			Distribution: "distributed",
			Flow:         "open",
			Description:  "balanced layout with centered focal point, open flow",
		}

	case SourceMixed:
		return LayoutVariation{
			Arrangement:  "balanced",
			FocalPoint:   "centered",
			Distribution: "zones",
			Flow:         "flexible",
			Description:  "harmonious, balanced layout with flexible zoning, furniture arranged in functional zones",
		}

	case SourceMixedFunctional:
		if requiresZoning {
			return LayoutVariation{
				Arrangement:  "balanced",
				FocalPoint:   "multiple",
				Distribution: "zones",
				Flow:         "defined",
				Description:  "functional layout with defined zones for different activities, multiple focal points",
			}
		}
		return LayoutVariation{
			Arrangement:  "balanced",
			FocalPoint:   "centered",
			Distribution: "distributed",
			Flow:         "open",
			Description:  "open, functional layout optimized for activities, centered focal point",
		}

	case SourceInspirationReference:
		return LayoutVariation{
			Arrangement:  "asymmetrical",
			FocalPoint:   "off-center",
			Distribution: "clustered",
			Flow:         "flexible",
			Description:  "inspired arrangement following reference images, organic flow with clustered furniture",
		}
	}

	return LayoutVariation{
		Arrangement:  "balanced",
		FocalPoint:   "centered",
		Distribution: "distributed",
		Flow:         "open",
		Description:  "balanced layout with open flow",
	}
}

// facetOrDomain resolves a facet key, falling back to its parent domain.
func facetOrDomain(p *Personality, key string) (float64, bool) {
	if v, ok := p.Facets[key]; ok {
		return v, true
	}
	v, ok := p.Domains[key[:1]]
	return v, ok
}
