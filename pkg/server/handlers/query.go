package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/talentgraph/talentgraph"
	"github.com/talentgraph/talentgraph/pkg/server/dto"
)

// QueryHandler answers natural-language questions about candidates.
type QueryHandler struct {
	client *talentgraph.Client
	index  *Index
}

// NewQueryHandler creates a query handler.
func NewQueryHandler(client *talentgraph.Client, index *Index) *QueryHandler {
	return &QueryHandler{client: client, index: index}
}

// Query handles POST /api/v1/query.
func (h *QueryHandler) Query(c *gin.Context) {
	var req dto.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request", Message: err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request", Message: err.Error()})
		return
	}

	retriever, err := h.index.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "index_failed", Message: err.Error()})
		return
	}

	answer := h.client.Answer(c.Request.Context(), req.Query, retriever)
	c.JSON(http.StatusOK, dto.QueryResponse{
		Query:  req.Query,
		Answer: answer,
	})
}
