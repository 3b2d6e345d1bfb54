// Package report renders classification results for terminals,
// documents and machines.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/ctdguide/internal/catalog"
	"github.com/abhisek/ctdguide/internal/wizard"
)

// Format is an output encoding.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// NothingSelected is printed when no topic was chosen.
const NothingSelected = "선택된 변경사항이 없습니다."

// ParseFormat accepts text, markdown (or md) and json.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, markdown or json)", s)
	}
}

// Report is everything needed to render one classification pass.
type Report struct {
	CatalogVersion string
	Guideline      string
	Fallback       string
	Results        []wizard.TopicResult

	tiers map[string]catalog.Tier
}

// New builds a report of the results against cat.
func New(cat *catalog.Catalog, results []wizard.TopicResult) Report {
	r := Report{
		CatalogVersion: cat.Version(),
		Guideline:      cat.Guideline(),
		Fallback:       cat.Fallback(),
		Results:        results,
		tiers:          make(map[string]catalog.Tier),
	}
	for _, t := range cat.Tiers() {
		r.tiers[t.Code] = t
	}
	return r
}

// TierName returns the display name of a tier code, or the code itself.
func (r Report) TierName(code string) string {
	if t, ok := r.tiers[code]; ok && t.Name != "" {
		return t.Name
	}
	return code
}

// Write renders r to w in the given format.
func Write(w io.Writer, f Format, r Report) error {
	switch f {
	case FormatText:
		return WriteText(w, r)
	case FormatMarkdown:
		return WriteMarkdown(w, r)
	case FormatJSON:
		return WriteJSON(w, r)
	default:
		return fmt.Errorf("unknown format %q", f)
	}
}

// changedSubVariants returns the labels of present sub-variants in
// catalog order.
func changedSubVariants(res wizard.TopicResult) []string {
	var out []string
	for _, sv := range res.Topic.SubVariants {
		if res.Answers[sv.ID] == catalog.AnswerPresent {
			out = append(out, sv.Label)
		}
	}
	return out
}

func topicHeading(t catalog.Topic) string {
	return fmt.Sprintf("%d. %s", t.Number, t.DisplayTitle())
}
