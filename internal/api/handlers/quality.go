package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AkademiaSztuki/awa-api/internal/synthesis"
)

// QualityHandler exposes the per-source admission decisions so the
// frontend can tell the user which generation sources their data supports
// before a pass is dispatched.
type QualityHandler struct{}

func NewQualityHandler() *QualityHandler {
	return &QualityHandler{}
}

type AssessRequest struct {
	Snapshot SnapshotRequest `json:"snapshot"`
}

// Assess runs the quality gate, style derivation and conflict analysis
// without generating anything.
func (h *QualityHandler) Assess(c *gin.Context) {
	var req AssessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inputs := synthesis.BuildInputs(req.Snapshot.ToSnapshot())
	reports := synthesis.AssessAll(inputs)
	derivation := synthesis.DeriveStyle(inputs.Personality)
	conflict := synthesis.AnalyzeConflicts(inputs)

	viable := make([]string, 0, len(reports))
	for _, source := range synthesis.AllSources() {
		if reports[source].ShouldGenerate {
			viable = append(viable, string(source))
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"request_id":     c.GetString("request_id"),
		"reports":        reportsPayload(reports),
		"viable_sources": viable,
		"derivation":     derivationPayload(derivation),
		"conflict":       conflictPayload(conflict),
	})
}

func reportsPayload(reports map[synthesis.Source]synthesis.QualityReport) map[string]gin.H {
	out := make(map[string]gin.H, len(reports))
	for source, report := range reports {
		out[string(source)] = gin.H{
			"status":          string(report.Status),
			"should_generate": report.ShouldGenerate,
			"data_points":     report.DataPoints,
			"confidence":      report.Confidence,
			"warnings":        report.Warnings,
			"metrics":         report.Metrics,
		}
	}
	return out
}

func derivationPayload(d synthesis.StyleDerivation) gin.H {
	return gin.H{
		"dominant_style": d.DominantStyle,
		"confidence":     d.Confidence,
		"materials":      d.Materials,
		"complexity":     d.Complexity,
		"mapping_id":     d.MappingID,
		"match_score":    d.MatchScore,
		"research_basis": d.ResearchBasis,
	}
}

func conflictPayload(a synthesis.ConflictAnalysis) gin.H {
	conflicts := make([]gin.H, 0, len(a.Conflicts))
	for _, cf := range a.Conflicts {
		conflicts = append(conflicts, gin.H{
			"type":     string(cf.Type),
			"severity": string(cf.Severity),
			"implicit": cf.Implicit,
			"explicit": cf.Explicit,
			"detail":   cf.Detail,
		})
	}
	return gin.H{
		"has_conflict": a.HasConflict,
		"type":         string(a.Type),
		"severity":     string(a.Severity),
		"conflicts":    conflicts,
		"recommendation": gin.H{
			"mixed":            a.Recommendation.Mixed,
			"mixed_functional": a.Recommendation.MixedFunctional,
			"user_message":     a.Recommendation.UserMessage,
		},
	}
}
