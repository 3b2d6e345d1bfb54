package server

import (
	"maps"
	"slices"
	"strings"

	"github.com/abhisek/ctdguide/internal/catalog"
	"github.com/abhisek/ctdguide/internal/selection"
)

// maxAnswers bounds the answer map; the largest topic has fewer than 20 questions.
const maxAnswers = 64

// ClassifyRequest is the HTTP request body for POST /v1/classify.
type ClassifyRequest struct {
	Topic   string            `json:"topic"`
	Answers map[string]string `json:"answers"`
	Explain bool              `json:"explain"`

	// Parsed values (populated by Validate)
	parsed map[string]catalog.Answer
}

// Validate trims and parses the request.
func (r *ClassifyRequest) Validate() error {
	r.Topic = strings.TrimSpace(r.Topic)
	if r.Topic == "" {
		return badRequest("validation_error", "topic is required")
	}
	if len(r.Answers) > maxAnswers {
		return badRequest("validation_error", "too many answers")
	}

	r.parsed = make(map[string]catalog.Answer, len(r.Answers))
	for _, id := range slices.Sorted(maps.Keys(r.Answers)) {
		a, err := selection.ParseAnswer(r.Answers[id])
		if err != nil {
			return badRequest("invalid_answer", strings.TrimSpace(id)+": "+err.Error())
		}
		r.parsed[strings.TrimSpace(id)] = a
	}
	return nil
}

// ParsedAnswers returns the validated answers.
func (r *ClassifyRequest) ParsedAnswers() map[string]catalog.Answer {
	return r.parsed
}
