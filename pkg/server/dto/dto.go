// Package dto defines the request and response payloads of the HTTP API.
package dto

import (
	"errors"
	"strings"

	"github.com/talentgraph/talentgraph"
	"github.com/talentgraph/talentgraph/pkg/tracker"
)

// MaxQueryLength bounds the accepted question size.
const MaxQueryLength = 4096

// ErrQueryTooLong is returned for questions over MaxQueryLength.
var ErrQueryTooLong = errors.New("query exceeds maximum length")

// QueryRequest is the body of POST /api/v1/query.
type QueryRequest struct {
	Query string `json:"query" binding:"required"`
}

// Validate performs validation on QueryRequest.
func (r *QueryRequest) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return errors.New("query cannot be empty")
	}
	if len(r.Query) > MaxQueryLength {
		return ErrQueryTooLong
	}
	return nil
}

// QueryResponse is the answer to a question.
type QueryResponse struct {
	Query  string `json:"query"`
	Answer string `json:"answer"`
}

// IngestRequest is the body of POST /api/v1/ingest. Directory is optional;
// the server falls back to its configured resume directory.
type IngestRequest struct {
	Directory string `json:"directory,omitempty"`
}

// IngestResponse reports the outcome of an ingestion run.
type IngestResponse struct {
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// StatusResponse lists the ingestion ledger contents.
type StatusResponse struct {
	Processed []tracker.Entry `json:"processed"`
	Failed    []tracker.Entry `json:"failed"`
}

// ATSAnalysisRequest is the body of POST /api/v1/ats/analyze. Every candidate
// with a stored resume file is scored against the job description.
type ATSAnalysisRequest struct {
	JobDescription string `json:"job_description" binding:"required"`
}

// Validate performs validation on ATSAnalysisRequest.
func (r *ATSAnalysisRequest) Validate() error {
	if strings.TrimSpace(r.JobDescription) == "" {
		return errors.New("job_description cannot be empty")
	}
	return nil
}

// ATSAnalysisResponse carries the ranked candidate summary.
type ATSAnalysisResponse struct {
	Results string `json:"results"`
}

// ATSScoreRequest is the body of POST /api/v1/ats/score for scoring a single
// resume text.
type ATSScoreRequest struct {
	JobDescription string `json:"job_description" binding:"required"`
	ResumeText     string `json:"resume_text" binding:"required"`
}

// Validate performs validation on ATSScoreRequest.
func (r *ATSScoreRequest) Validate() error {
	if strings.TrimSpace(r.JobDescription) == "" {
		return errors.New("job_description cannot be empty")
	}
	if strings.TrimSpace(r.ResumeText) == "" {
		return errors.New("resume_text cannot be empty")
	}
	return nil
}

// CandidatesResponse lists every candidate in the graph.
type CandidatesResponse struct {
	Candidates []talentgraph.CandidateSummary `json:"candidates"`
	TotalCount int                            `json:"total_count"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
