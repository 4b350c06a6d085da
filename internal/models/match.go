package models

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type MatchRequest struct {
	JD string `json:"jd" validate:"required"`
}

// Normalize trims surrounding whitespace from the job description.
func (r *MatchRequest) Normalize() {
	r.JD = strings.TrimSpace(r.JD)
}

func (r *MatchRequest) Validate() error {
	return validate.Struct(r)
}

type Score struct {
	Overall int `json:"overall"`
	Exact   int `json:"exact"`
	Related int `json:"related"`
	Gaps    int `json:"gaps"`
}

type RelatedSkill struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

type MatchResult struct {
	Score         Score          `json:"score"`
	Matched       []string       `json:"matched"`
	Related       []RelatedSkill `json:"related"`
	Gaps          []string       `json:"gaps"`
	Summary       string         `json:"summary"`
	ReplyTemplate string         `json:"replyTemplate"`
}

// NewMatchResult returns a result with every list initialised, so that an
// empty report still serialises as [] rather than null.
func NewMatchResult() *MatchResult {
	return &MatchResult{
		Matched: []string{},
		Related: []RelatedSkill{},
		Gaps:    []string{},
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}
