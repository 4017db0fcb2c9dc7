package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentgraph/talentgraph/pkg/server/dto"
	"github.com/talentgraph/talentgraph/pkg/types"
)

func TestIngestProcessesDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "alice.txt"), []byte("resume"), 0o644))

	extractor := &stubExtractor{record: &types.ResumeRecord{
		Person: types.PersonInfo{Name: "Alice Smith"},
		Skills: []string{"Python"},
	}}
	client := newTestClient(t, extractor)
	handler := NewIngestHandler(client, NewIndex(client), "")

	router := gin.New()
	router.POST("/api/v1/ingest", handler.Ingest)

	w := httptest.NewRecorder()
	body := fmt.Sprintf(`{"directory": %q}`, dir)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ingest", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.IngestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Processed)
	assert.Equal(t, 0, resp.Failed)
}

func TestIngestRequiresDirectory(t *testing.T) {
	client := newTestClient(t, &stubExtractor{})
	handler := NewIngestHandler(client, NewIndex(client), "")

	router := gin.New()
	router.POST("/api/v1/ingest", handler.Ingest)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ingest", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatusReportsEmptyLedger(t *testing.T) {
	client := newTestClient(t, &stubExtractor{})
	handler := NewIngestHandler(client, NewIndex(client), "")

	router := gin.New()
	router.GET("/status", handler.Status)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Processed)
	assert.Empty(t, resp.Failed)
}
