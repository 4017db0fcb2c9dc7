package types

import (
	"encoding/json"

	jsonrepair "github.com/kaptinlin/jsonrepair"
)

// ATSAnalysis is the structured result of scoring one resume against a job
// description, applicant-tracking-system style.
type ATSAnalysis struct {
	ATSScore         int      `json:"ats_score"`
	KeywordMatchRate float64  `json:"keyword_match_rate"`
	MissingKeywords  []string `json:"missing_keywords,omitempty"`
	MatchingKeywords []string `json:"matching_keywords,omitempty"`
	Recommendations  []string `json:"recommendations,omitempty"`
}

// CandidateScore pairs a candidate with their analysis for one job description.
type CandidateScore struct {
	Name     string       `json:"name"`
	Analysis *ATSAnalysis `json:"ats_analysis"`
}

// ParseATSAnalysis decodes an LLM-produced analysis payload. Markdown code
// fences are stripped and the JSON is repaired before decoding, matching the
// treatment of extraction output.
func ParseATSAnalysis(raw string) (*ATSAnalysis, error) {
	cleaned := StripCodeFences(raw)
	if repaired, err := jsonrepair.JSONRepair(cleaned); err == nil {
		cleaned = repaired
	}

	var analysis ATSAnalysis
	if err := json.Unmarshal([]byte(cleaned), &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}
