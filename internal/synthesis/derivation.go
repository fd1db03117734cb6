package synthesis

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

const (
	conditionExactTolerance = 0.05

	derivationMinScore = 0.3

	// Adjustments applied when all domains are neutral but facet data
	// exists: domain-only mappings are penalized so that a generic profile
	// cannot outrank actual facet evidence.
	neutralDomainEpsilon       = 0.05
	neutralDomainPenalty       = 0.7
	neutralFacetBoostBase      = 1.2
	neutralFacetBoostPerFacet  = 0.05
	neutralFacetBoostMax       = 0.30
	neutralFacetSpan3Bonus     = 0.15
	neutralFacetSpan2Bonus     = 0.08
	neutralFacetExtremityBonus = 0.10
	neutralZeroConditionScore  = 0.3
)

// DeriveStyle maps a Big Five profile onto the style mapping table.
// Deterministic: identical domains and facets always produce the same
// mapping and confidence.
func DeriveStyle(p *Personality) StyleDerivation {
	if p == nil {
		return defaultDerivation()
	}

	neutral := domainsNeutral(p) && len(p.Facets) > 0

	type scored struct {
		mapping StyleMapping
		score   float64
	}
	results := make([]scored, 0, len(styleMappings))
	for _, m := range styleMappings {
		results = append(results, scored{m, mappingScore(p, m, neutral)})
	}

	// Stable ordering: ties broken by table position.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	best := results[0]
	if best.score < derivationMinScore || best.mapping.ID == defaultMappingID {
		return defaultDerivation()
	}

	hasFacets := 0.0
	if len(p.Facets) > 0 {
		hasFacets = 0.1
	}
	confidence := math.Min(0.95, best.score*0.6+best.mapping.ConfidenceMultiplier*0.3+hasFacets)

	return StyleDerivation{
		DominantStyle: best.mapping.Style,
		Confidence:    confidence,
		Materials:     append([]string(nil), best.mapping.Materials...),
		Complexity:    best.mapping.Complexity,
		MappingID:     best.mapping.ID,
		MatchScore:    best.score,
		ResearchBasis: best.mapping.ResearchBasis,
	}
}

func defaultDerivation() StyleDerivation {
	var def StyleMapping
	for _, m := range styleMappings {
		if m.ID == defaultMappingID {
			def = m
			break
		}
	}
	return StyleDerivation{
		DominantStyle: def.Style,
		Confidence:    0.5,
		Materials:     append([]string(nil), def.Materials...),
		Complexity:    def.Complexity,
		MappingID:     def.ID,
		MatchScore:    derivationMinScore,
		ResearchBasis: def.ResearchBasis,
	}
}

// mappingScore combines the fraction of satisfied conditions with the mean
// extremity of the satisfied signals.
func mappingScore(p *Personality, m StyleMapping, neutral bool) float64 {
	if len(m.Conditions) == 0 {
		if neutral {
			return neutralZeroConditionScore
		}
		return 0.5
	}

	matched := 0
	total := 0
	extremitySum := 0.0
	usesFacets := false
	for key, cond := range m.Conditions {
		total++
		if isFacetKey(key) {
			usesFacets = true
		}
		value, ok := signalValue(p, key)
		if !ok {
			continue
		}
		if evalCondition(value, cond) {
			matched++
			extremitySum += math.Abs(value-0.5) * 2
		}
	}

	base := float64(matched) / float64(total)
	avgExtremity := extremitySum / float64(total)
	score := base*0.6 + avgExtremity*0.4

	if neutral {
		if usesFacets {
			score = math.Min(1.0, score*facetBoost(p))
		} else {
			score *= neutralDomainPenalty
		}
	}
	return score
}

// facetBoost rewards mappings backed by facet evidence when the domain
// scores alone say nothing.
func facetBoost(p *Personality) float64 {
	boost := neutralFacetBoostBase

	perFacet := neutralFacetBoostPerFacet * float64(len(p.Facets))
	if perFacet > neutralFacetBoostMax {
		perFacet = neutralFacetBoostMax
	}
	boost += perFacet

	domains := map[byte]struct{}{}
	extremitySum := 0.0
	for key, v := range p.Facets {
		if key != "" {
			domains[key[0]] = struct{}{}
		}
		extremitySum += math.Abs(v-0.5) * 2
	}
	switch {
	case len(domains) >= 3:
		boost += neutralFacetSpan3Bonus
	case len(domains) == 2:
		boost += neutralFacetSpan2Bonus
	}
	if len(p.Facets) > 0 && extremitySum/float64(len(p.Facets)) > 0.4 {
		boost += neutralFacetExtremityBonus
	}
	return boost
}

func domainsNeutral(p *Personality) bool {
	for _, v := range p.Domains {
		if math.Abs(v-0.5) >= neutralDomainEpsilon {
			return false
		}
	}
	return len(p.Domains) > 0
}

func isFacetKey(key string) bool {
	return len(key) > 1
}

// signalValue resolves a condition key to a normalized 0-1 value. Facet
// keys fall back to their parent domain when the facet was not measured.
func signalValue(p *Personality, key string) (float64, bool) {
	if !isFacetKey(key) {
		v, ok := p.Domains[key]
		return v, ok
	}
	if v, ok := p.Facets[key]; ok {
		return v, true
	}
	// Fallback: the domain score estimates an unmeasured facet.
	v, ok := p.Domains[key[:1]]
	return v, ok
}

// evalCondition evaluates the condition grammar: ">x", "<x", ">=x", "<=x",
// "a-b" range and exact match with a small tolerance.
func evalCondition(value float64, cond string) bool {
	if cond == "" {
		return true
	}
	switch {
	case strings.HasPrefix(cond, ">="):
		t, err := strconv.ParseFloat(cond[2:], 64)
		return err == nil && value >= t
	case strings.HasPrefix(cond, "<="):
		t, err := strconv.ParseFloat(cond[2:], 64)
		return err == nil && value <= t
	case strings.HasPrefix(cond, ">"):
		t, err := strconv.ParseFloat(cond[1:], 64)
		return err == nil && value > t
	case strings.HasPrefix(cond, "<"):
		t, err := strconv.ParseFloat(cond[1:], 64)
		return err == nil && value < t
	case strings.Contains(cond, "-"):
		parts := strings.SplitN(cond, "-", 2)
		lo, errLo := strconv.ParseFloat(parts[0], 64)
		hi, errHi := strconv.ParseFloat(parts[1], 64)
		return errLo == nil && errHi == nil && value >= lo && value <= hi
	default:
		exact, err := strconv.ParseFloat(cond, 64)
		return err == nil && math.Abs(value-exact) < conditionExactTolerance
	}
}

// PersonalityColors collects every palette whose trait condition the
// profile satisfies, in table order.
func PersonalityColors(p *Personality) []string {
	if p == nil {
		return nil
	}
	var colors []string
	seen := map[string]struct{}{}
	for _, m := range colorMappings {
		key := m.Trait
		if m.Facet != "" {
			key = m.Facet
		}
		value, ok := signalValue(p, key)
		if !ok || !evalCondition(value, m.Condition) {
			continue
		}
		for _, c := range m.Colors {
			if _, dup := seen[c]; !dup {
				seen[c] = struct{}{}
				colors = append(colors, c)
			}
		}
	}
	return colors
}

// PersonalityMaterials collects every material set whose trait condition
// the profile satisfies, in table order.
func PersonalityMaterials(p *Personality) []string {
	if p == nil {
		return nil
	}
	var materials []string
	seen := map[string]struct{}{}
	for _, m := range materialMappings {
		key := m.Trait
		if m.Facet != "" {
			key = m.Facet
		}
		value, ok := signalValue(p, key)
		if !ok || !evalCondition(value, m.Condition) {
			continue
		}
		for _, mat := range m.Materials {
			if _, dup := seen[mat]; !dup {
				seen[mat] = struct{}{}
				materials = append(materials, mat)
			}
		}
	}
	return materials
}

// personalityConfidence scores how much the profile itself can be trusted:
// extreme scores, complete facet data and facet/domain agreement all
// raise it. Clamped to [0.3, 0.95].
func personalityConfidence(p *Personality) float64 {
	confidence := 0.5

	extremitySum := 0.0
	for _, v := range p.Domains {
		distance := math.Abs(v - 0.5)
		if distance > 0.2 {
			extremitySum += distance * 2
		} else {
			extremitySum += distance
		}
	}
	if len(p.Domains) > 0 {
		confidence += extremitySum / float64(len(p.Domains)) * 0.2
	}

	if len(p.Facets) > 0 {
		confidence += float64(len(p.Facets)) / 30.0 * 0.15
		confidence += facetDomainConsistency(p) * 0.1
	}

	return math.Min(0.95, math.Max(0.3, confidence))
}

// facetDomainConsistency measures how closely per-domain facet averages
// track the domain scores. 1 means perfect alignment.
func facetDomainConsistency(p *Personality) float64 {
	sums := map[string]float64{}
	counts := map[string]int{}
	for key, v := range p.Facets {
		if key == "" {
			continue
		}
		d := key[:1]
		sums[d] += v
		counts[d]++
	}

	total := 0.0
	n := 0
	for d, count := range counts {
		domainScore, ok := p.Domains[d]
		if !ok {
			continue
		}
		avg := sums[d] / float64(count)
		consistency := 1 - math.Abs(domainScore-avg)*2
		if consistency < 0 {
			consistency = 0
		}
		total += consistency
		n++
	}
	if n == 0 {
		return 0.5
	}
	return total / float64(n)
}
