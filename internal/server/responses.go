package server

import (
	"github.com/abhisek/ctdguide/internal/catalog"
	"github.com/abhisek/ctdguide/internal/classify"
	"github.com/abhisek/ctdguide/internal/report"
)

// HealthResponse is returned by GET /healthz.
type HealthResponse struct {
	Status         string `json:"status"`
	CatalogVersion string `json:"catalog_version"`
}

// SectionSummary lists a section and its topics without rule data.
type SectionSummary struct {
	ID     string         `json:"id"`
	Group  string         `json:"group,omitempty"`
	Title  string         `json:"title"`
	Topics []TopicSummary `json:"topics"`
}

// TopicSummary is the short form of a topic.
type TopicSummary struct {
	ID         string `json:"id"`
	Number     int    `json:"number"`
	Title      string `json:"title"`
	AutoSelect bool   `json:"auto_select,omitempty"`
}

// FromSections converts catalog sections into summaries.
func FromSections(sections []catalog.Section) []SectionSummary {
	out := make([]SectionSummary, len(sections))
	for i, s := range sections {
		ss := SectionSummary{ID: s.ID, Group: s.Group, Title: s.Title, Topics: make([]TopicSummary, len(s.Topics))}
		for j, t := range s.Topics {
			ss.Topics[j] = TopicSummary{ID: t.ID, Number: t.Number, Title: t.DisplayTitle(), AutoSelect: t.AutoSelect}
		}
		out[i] = ss
	}
	return out
}

// TopicResponse is returned by GET /v1/topics/{id}.
type TopicResponse struct {
	catalog.Topic
	Section string         `json:"section"`
	Rules   []catalog.Rule `json:"rules"`
}

// ClassifyResponse is returned by POST /v1/classify.
type ClassifyResponse struct {
	Topic      string                    `json:"topic"`
	Outcomes   []report.Outcome          `json:"outcomes"`
	OutOfScope bool                      `json:"out_of_scope"`
	Fallback   string                    `json:"fallback,omitempty"`
	Missing    []string                  `json:"missing"`
	Answers    map[string]catalog.Answer `json:"answers"`
	Trace      *classify.Trace           `json:"trace,omitempty"`
}
