package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/talentgraph/talentgraph"
	"github.com/talentgraph/talentgraph/pkg/server/dto"
)

// CandidatesHandler serves candidate listings read from the graph.
type CandidatesHandler struct {
	client *talentgraph.Client
}

// NewCandidatesHandler creates a candidates handler.
func NewCandidatesHandler(client *talentgraph.Client) *CandidatesHandler {
	return &CandidatesHandler{client: client}
}

// List handles GET /api/v1/candidates.
func (h *CandidatesHandler) List(c *gin.Context) {
	candidates, err := h.client.Candidates(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "candidates_failed", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.CandidatesResponse{
		Candidates: candidates,
		TotalCount: len(candidates),
	})
}

// Get handles GET /api/v1/candidates/:name.
func (h *CandidatesHandler) Get(c *gin.Context) {
	name := c.Param("name")

	detail, err := h.client.Candidate(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, talentgraph.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "candidate_not_found", Message: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "candidate_failed", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, detail)
}
