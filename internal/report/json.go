package report

import (
	"encoding/json"
	"io"

	"github.com/abhisek/ctdguide/internal/catalog"
)

// Document is the JSON shape of a report.
type Document struct {
	CatalogVersion string        `json:"catalog_version"`
	Topics         []TopicResult `json:"topics"`
}

// TopicResult is the JSON shape of one topic's classification.
type TopicResult struct {
	ID         string                    `json:"id"`
	Number     int                       `json:"number"`
	Title      string                    `json:"title"`
	Section    string                    `json:"section"`
	Answers    map[string]catalog.Answer `json:"answers"`
	OutOfScope bool                      `json:"out_of_scope"`
	Fallback   string                    `json:"fallback,omitempty"`
	Outcomes   []Outcome                 `json:"outcomes"`
}

// Outcome adds the tier's display name to a catalog outcome.
type Outcome struct {
	Tier      string `json:"tier"`
	TierName  string `json:"tier_name"`
	Report    string `json:"report"`
	Documents string `json:"documents"`
}

// Document converts r into its JSON shape.
func (r Report) Document() Document {
	doc := Document{CatalogVersion: r.CatalogVersion, Topics: make([]TopicResult, 0, len(r.Results))}
	for _, res := range r.Results {
		tr := TopicResult{
			ID:         res.Topic.ID,
			Number:     res.Topic.Number,
			Title:      res.Topic.DisplayTitle(),
			Section:    res.Topic.Section(),
			Answers:    res.Answers,
			OutOfScope: res.OutOfScope(),
			Outcomes:   r.Outcomes(res.Outcomes),
		}
		if tr.Answers == nil {
			tr.Answers = map[string]catalog.Answer{}
		}
		if tr.OutOfScope {
			tr.Fallback = r.Fallback
		}
		doc.Topics = append(doc.Topics, tr)
	}
	return doc
}

// Outcomes converts catalog outcomes, adding tier names.
func (r Report) Outcomes(in []catalog.Outcome) []Outcome {
	out := make([]Outcome, len(in))
	for i, o := range in {
		out[i] = Outcome{Tier: o.Tier, TierName: r.TierName(o.Tier), Report: o.Report, Documents: o.Documents}
	}
	return out
}

// WriteJSON renders the report as indented JSON.
func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r.Document())
}
