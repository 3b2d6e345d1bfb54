package catalog

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/mod/semver"
)

// validateFile performs all semantic checks on a decoded catalog.
// Returns a *ValidationError describing every problem found, or nil.
func validateFile(f *file) error {
	var errs []string

	if !semver.IsValid(f.Version) {
		errs = append(errs, fmt.Sprintf("version %q is not a valid semantic version (want vMAJOR.MINOR.PATCH)", f.Version))
	}
	if strings.TrimSpace(f.Fallback) == "" {
		errs = append(errs, "fallback text is empty")
	}

	gateIDs := make(map[string]bool, len(f.Gates))
	for _, g := range f.Gates {
		if gateIDs[g.ID] {
			errs = append(errs, fmt.Sprintf("duplicate gate ID: %q", g.ID))
		}
		gateIDs[g.ID] = true
	}

	tierIDs := make(map[string]bool, len(f.Tiers))
	for _, t := range f.Tiers {
		if tierIDs[t.Code] {
			errs = append(errs, fmt.Sprintf("duplicate tier code: %q", t.Code))
		}
		tierIDs[t.Code] = true
	}

	sectionIDs := make(map[string]bool, len(f.Sections))
	topics := make(map[string]*Topic)
	var topicOrder []string
	for si := range f.Sections {
		s := &f.Sections[si]
		if sectionIDs[s.ID] {
			errs = append(errs, fmt.Sprintf("duplicate section ID: %q", s.ID))
		}
		sectionIDs[s.ID] = true
		if len(s.Topics) == 0 {
			errs = append(errs, fmt.Sprintf("section %q has no topics", s.ID))
		}
		for ti := range s.Topics {
			t := &s.Topics[ti]
			if _, dup := topics[t.ID]; dup {
				errs = append(errs, fmt.Sprintf("duplicate topic ID: %q", t.ID))
				continue
			}
			topics[t.ID] = t
			topicOrder = append(topicOrder, t.ID)
			errs = append(errs, validateTopic(t)...)
		}
	}

	ruleCount := make(map[string]int, len(topics))
	seen := make(map[string]int)
	for i, r := range f.Rules {
		prefix := fmt.Sprintf("rule %d (topic %q)", i+1, r.Topic)
		t, ok := topics[r.Topic]
		if !ok {
			errs = append(errs, fmt.Sprintf("%s references nonexistent topic", prefix))
			continue
		}
		ruleCount[r.Topic]++

		if r.SubVariant != "" && !t.HasSubVariant(r.SubVariant) {
			errs = append(errs, fmt.Sprintf("%s references nonexistent sub-variant %q", prefix, r.SubVariant))
		}
		for _, id := range r.Satisfied {
			if !t.HasRequirement(id) {
				errs = append(errs, fmt.Sprintf("%s references nonexistent requirement %q", prefix, id))
			}
		}
		for _, id := range r.Unsatisfied {
			if !t.HasRequirement(id) {
				errs = append(errs, fmt.Sprintf("%s references nonexistent requirement %q", prefix, id))
			}
			if slices.Contains(r.Satisfied, id) {
				errs = append(errs, fmt.Sprintf("%s requires %q to be both satisfied and unsatisfied", prefix, id))
			}
		}
		if !tierIDs[r.Tier] {
			errs = append(errs, fmt.Sprintf("%s uses undeclared tier %q", prefix, r.Tier))
		}

		key := ruleKey(r)
		if first, dup := seen[key]; dup {
			errs = append(errs, fmt.Sprintf("%s duplicates rule %d", prefix, first))
		} else {
			seen[key] = i + 1
		}
	}

	for _, id := range topicOrder {
		if ruleCount[id] == 0 {
			errs = append(errs, fmt.Sprintf("topic %q has no rules", id))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Problems: errs}
	}
	return nil
}

// validateTopic checks a topic's own ids and metadata.
func validateTopic(t *Topic) []string {
	var errs []string

	ids := make(map[string]bool, len(t.SubVariants)+len(t.Requirements))
	for _, sv := range t.SubVariants {
		if ids[sv.ID] {
			errs = append(errs, fmt.Sprintf("topic %q: duplicate sub-variant ID %q", t.ID, sv.ID))
		}
		ids[sv.ID] = true
	}
	for _, r := range t.Requirements {
		if ids[r.ID] {
			errs = append(errs, fmt.Sprintf("topic %q: duplicate requirement ID %q", t.ID, r.ID))
		}
		ids[r.ID] = true
	}

	for _, id := range t.Forced {
		if !t.HasSubVariant(id) {
			errs = append(errs, fmt.Sprintf("topic %q: forced sub-variant %q does not exist", t.ID, id))
		}
	}

	linked := make(map[string]bool)
	for _, pair := range t.Linked {
		if pair[0] == pair[1] {
			errs = append(errs, fmt.Sprintf("topic %q: sub-variant %q is linked to itself", t.ID, pair[0]))
		}
		for _, id := range pair {
			if !t.HasSubVariant(id) {
				errs = append(errs, fmt.Sprintf("topic %q: linked sub-variant %q does not exist", t.ID, id))
			}
			if t.IsForced(id) {
				errs = append(errs, fmt.Sprintf("topic %q: sub-variant %q is both forced and linked", t.ID, id))
			}
			if linked[id] {
				errs = append(errs, fmt.Sprintf("topic %q: sub-variant %q appears in more than one linked pair", t.ID, id))
			}
			linked[id] = true
		}
	}

	return errs
}

// ruleKey identifies a rule by everything that affects its result.
func ruleKey(r Rule) string {
	return strings.Join([]string{
		r.Topic,
		r.SubVariant,
		strings.Join(r.Satisfied, ","),
		strings.Join(r.Unsatisfied, ","),
		r.Tier,
		r.Documents,
	}, "\x00")
}
