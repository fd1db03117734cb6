package synthesis

import "fmt"

// Weights of the implicit quality sub-scores. Empirically chosen; kept as
// named constants so they can be tuned without touching the scoring code.
const (
	implicitWeightStyle     = 0.40
	implicitWeightColor     = 0.30
	implicitWeightBiophilia = 0.10
	implicitWeightLikeRatio = 0.10
	implicitWeightLikeCount = 0.10

	implicitScoreInsufficient = 15.0
	implicitScoreLimited      = 50.0

	// Likes per full like-count score; fewer likes floor the score.
	implicitLikeCountTarget = 5
)

// ImplicitQuality holds the sub-metrics behind the implicit source report.
type ImplicitQuality struct {
	LikeCount            int
	SwipeCount           int
	LikeRatio            float64
	DominantStyle        string
	DistinctStyles       int
	StyleConsistency     float64 // 0-1
	ColorConsistency     float64 // 0-1
	BiophiliaConsistency float64 // 0-1
	QualityScore         float64 // 0-100
	Interpretation       string
}

// AssessImplicitQuality computes quality sub-metrics for swipe behavior.
// Pure; a zero-like input yields a zero score.
func AssessImplicitQuality(swipes []SwipeRecord) ImplicitQuality {
	q := ImplicitQuality{SwipeCount: len(swipes)}

	var likes []SwipeRecord
	for _, s := range swipes {
		if s.Liked() {
			likes = append(likes, s)
		}
	}
	q.LikeCount = len(likes)
	if q.SwipeCount > 0 {
		q.LikeRatio = float64(q.LikeCount) / float64(q.SwipeCount)
	}
	if q.LikeCount == 0 {
		q.Interpretation = "no positive signals"
		return q
	}

	// Style consistency: share of likes carrying the most common style.
	styleCounts := map[string]int{}
	for _, l := range likes {
		if l.Style != "" {
			styleCounts[l.Style]++
		}
	}
	dominantCount := 0
	for style, n := range styleCounts {
		if n > dominantCount {
			dominantCount = n
			q.DominantStyle = style
		}
	}
	q.DistinctStyles = len(styleCounts)
	q.StyleConsistency = float64(dominantCount) / float64(q.LikeCount)

	// Color consistency: inverse of distinct-color spread. Three or fewer
	// distinct colors across likes reads as a coherent palette.
	distinctColors := map[string]struct{}{}
	for _, l := range likes {
		for _, c := range l.Colors {
			distinctColors[c] = struct{}{}
		}
	}
	if len(distinctColors) > 0 {
		q.ColorConsistency = clamp01(3.0 / float64(len(distinctColors)))
	}

	// Biophilia consistency: narrow score range across likes means the
	// nature preference is stable.
	minB, maxB := likes[0].BiophiliaScore, likes[0].BiophiliaScore
	for _, l := range likes[1:] {
		if l.BiophiliaScore < minB {
			minB = l.BiophiliaScore
		}
		if l.BiophiliaScore > maxB {
			maxB = l.BiophiliaScore
		}
	}
	q.BiophiliaConsistency = clamp01(1 - (maxB-minB)/3)

	// A like ratio near 0 or 1 means the swipes carry little discrimination.
	likeRatioScore := 100.0
	if q.LikeRatio < 0.1 || q.LikeRatio > 0.9 {
		likeRatioScore = 30.0
	}
	likeCountScore := clamp01(float64(q.LikeCount)/implicitLikeCountTarget) * 100

	q.QualityScore = q.StyleConsistency*100*implicitWeightStyle +
		q.ColorConsistency*100*implicitWeightColor +
		q.BiophiliaConsistency*100*implicitWeightBiophilia +
		likeRatioScore*implicitWeightLikeRatio +
		likeCountScore*implicitWeightLikeCount

	q.Interpretation = interpretTaste(q.StyleConsistency, q.DistinctStyles)
	return q
}

func interpretTaste(styleConsistency float64, distinctStyles int) string {
	switch {
	case styleConsistency > 0.6:
		return "clear taste profile"
	case styleConsistency > 0.3 && distinctStyles <= 3:
		return "mixed but coherent taste"
	case distinctStyles > 4:
		return "eclectic taste across many styles"
	default:
		return fmt.Sprintf("varied taste across %d styles", distinctStyles)
	}
}
