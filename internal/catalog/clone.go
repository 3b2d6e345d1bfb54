package catalog

import "slices"

// The catalog is shared by every session and request, so accessors hand
// out copies that own all of their slices.

func (t Topic) clone() Topic {
	t.SubVariants = slices.Clone(t.SubVariants)
	t.Requirements = slices.Clone(t.Requirements)
	t.Forced = slices.Clone(t.Forced)
	t.Linked = slices.Clone(t.Linked)
	return t
}

func (s Section) clone() Section {
	s.Topics = cloneTopics(s.Topics)
	return s
}

func (r Rule) clone() Rule {
	r.Satisfied = slices.Clone(r.Satisfied)
	r.Unsatisfied = slices.Clone(r.Unsatisfied)
	return r
}

// cloneTopics returns nil for a nil input.
func cloneTopics(ts []Topic) []Topic {
	if ts == nil {
		return nil
	}
	out := make([]Topic, len(ts))
	for i, t := range ts {
		out[i] = t.clone()
	}
	return out
}
