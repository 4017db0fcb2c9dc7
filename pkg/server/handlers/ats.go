package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/talentgraph/talentgraph"
	"github.com/talentgraph/talentgraph/pkg/server/dto"
)

// ATSHandler scores candidates against job descriptions.
type ATSHandler struct {
	client    *talentgraph.Client
	resumeDir string
}

// NewATSHandler creates an ATS handler. resumeDir is where ingested resume
// files live; stored resume_file references are resolved against it.
func NewATSHandler(client *talentgraph.Client, resumeDir string) *ATSHandler {
	return &ATSHandler{client: client, resumeDir: resumeDir}
}

// Analyze handles POST /api/v1/ats/analyze. It scores every candidate with a
// stored resume file against the job description and returns a ranked summary.
func (h *ATSHandler) Analyze(c *gin.Context) {
	var req dto.ATSAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request", Message: err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request", Message: err.Error()})
		return
	}

	results, err := h.client.AnalyzeCandidates(c.Request.Context(), h.resumeDir, req.JobDescription)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, talentgraph.ErrATSUnavailable) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, dto.ErrorResponse{Error: "ats_analysis_failed", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ATSAnalysisResponse{Results: results})
}

// Score handles POST /api/v1/ats/score for a single resume text.
func (h *ATSHandler) Score(c *gin.Context) {
	var req dto.ATSScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request", Message: err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request", Message: err.Error()})
		return
	}

	analysis, err := h.client.ScoreResume(c.Request.Context(), req.ResumeText, req.JobDescription)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, talentgraph.ErrATSUnavailable) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, dto.ErrorResponse{Error: "ats_scoring_failed", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, analysis)
}
