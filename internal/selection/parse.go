package selection

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/abhisek/ctdguide/internal/catalog"
)

// answerAliases maps accepted spellings to answers. The Korean labels
// are the ones printed on the guideline forms.
var answerAliases = map[string]catalog.Answer{
	"present":     catalog.AnswerPresent,
	"yes":         catalog.AnswerPresent,
	"changed":     catalog.AnswerPresent,
	"변경 있음":       catalog.AnswerPresent,
	"변경있음":        catalog.AnswerPresent,
	"absent":      catalog.AnswerAbsent,
	"no":          catalog.AnswerAbsent,
	"unchanged":   catalog.AnswerAbsent,
	"변경 없음":       catalog.AnswerAbsent,
	"변경없음":        catalog.AnswerAbsent,
	"satisfied":   catalog.AnswerSatisfied,
	"met":         catalog.AnswerSatisfied,
	"충족":          catalog.AnswerSatisfied,
	"unsatisfied": catalog.AnswerUnsatisfied,
	"unmet":       catalog.AnswerUnsatisfied,
	"미충족":         catalog.AnswerUnsatisfied,
}

// ParseAnswer converts a user-supplied value into an Answer.
func ParseAnswer(v string) (catalog.Answer, error) {
	a, ok := answerAliases[strings.ToLower(strings.TrimSpace(v))]
	if !ok {
		return catalog.AnswerNone, fmt.Errorf("unknown answer %q (want present, absent, satisfied or unsatisfied)", v)
	}
	return a, nil
}

// ParseAssignment splits "id=value" into its id and answer.
func ParseAssignment(s string) (string, catalog.Answer, error) {
	id, v, ok := strings.Cut(s, "=")
	id = strings.TrimSpace(id)
	if !ok || id == "" {
		return "", catalog.AnswerNone, fmt.Errorf("invalid assignment %q (want id=value)", s)
	}
	a, err := ParseAnswer(v)
	if err != nil {
		return "", catalog.AnswerNone, fmt.Errorf("%s: %w", id, err)
	}
	return id, a, nil
}

// Apply parses and records each "id=value" assignment in order.
// Assignments after the first failing one are not applied.
func (s *Store) Apply(assignments []string) error {
	for _, as := range assignments {
		id, a, err := ParseAssignment(as)
		if err != nil {
			return err
		}
		if err := s.Set(id, a); err != nil {
			return err
		}
	}
	return nil
}

// ApplyMap records every answer in m. Sub-variants are applied before
// requirements so that linked mirroring is deterministic: an explicit
// answer for both halves of a pair resolves to the later one in
// catalog order.
func (s *Store) ApplyMap(m map[string]catalog.Answer) error {
	for _, id := range slices.Sorted(maps.Keys(m)) {
		if !s.topic.HasSubVariant(id) && !s.topic.HasRequirement(id) {
			return &UnknownIDError{Topic: s.topic.ID, ID: id}
		}
	}
	for _, sv := range s.topic.SubVariants {
		if a, ok := m[sv.ID]; ok {
			if err := s.SetSubVariant(sv.ID, a); err != nil {
				return err
			}
		}
	}
	for _, r := range s.topic.Requirements {
		if a, ok := m[r.ID]; ok {
			if err := s.SetRequirement(r.ID, a); err != nil {
				return err
			}
		}
	}
	return nil
}
