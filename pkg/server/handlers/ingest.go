package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/talentgraph/talentgraph"
	"github.com/talentgraph/talentgraph/pkg/server/dto"
)

// IngestHandler handles resume ingestion requests.
type IngestHandler struct {
	client     *talentgraph.Client
	index      *Index
	defaultDir string
}

// NewIngestHandler creates an ingest handler. defaultDir is used when a
// request names no directory.
func NewIngestHandler(client *talentgraph.Client, index *Index, defaultDir string) *IngestHandler {
	return &IngestHandler{client: client, index: index, defaultDir: defaultDir}
}

// Ingest handles POST /api/v1/ingest. The run is synchronous; per-file
// failures are tombstoned and reported in the counts rather than failing
// the request.
func (h *IngestHandler) Ingest(c *gin.Context) {
	var req dto.IngestRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request", Message: err.Error()})
			return
		}
	}

	dir := req.Directory
	if dir == "" {
		dir = h.defaultDir
	}
	if dir == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request", Message: "no resume directory configured"})
		return
	}

	report, err := h.client.IngestDirectory(c.Request.Context(), dir)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "ingest_failed", Message: err.Error()})
		return
	}

	if err := h.index.Rebuild(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "index_failed", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.IngestResponse{
		Processed: report.Processed,
		Skipped:   report.Skipped,
		Failed:    report.Failed,
	})
}

// Status handles GET /status.
func (h *IngestHandler) Status(c *gin.Context) {
	status, err := h.client.Status(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "status_failed", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{
		Processed: status.Processed,
		Failed:    status.Failed,
	})
}
