package classify

import (
	"github.com/abhisek/ctdguide/internal/catalog"
)

// Check is one equality test inside a rule predicate.
type Check struct {
	ID   string         `json:"id"`
	Want catalog.Answer `json:"want"`
	Got  catalog.Answer `json:"got"`
}

// OK reports whether the recorded answer is the wanted one.
func (c Check) OK() bool { return c.Want == c.Got }

// RuleTrace records how a single rule was evaluated.
type RuleTrace struct {
	Index       int          `json:"index"`
	Rule        catalog.Rule `json:"rule"`
	Matched     bool         `json:"matched"`
	SubVariant  *Check       `json:"sub_variant,omitempty"`
	Satisfied   []Check      `json:"satisfied,omitempty"`
	Unsatisfied []Check      `json:"unsatisfied,omitempty"`
}

// Failed returns the checks that did not hold.
func (rt RuleTrace) Failed() []Check {
	var out []Check
	if rt.SubVariant != nil && !rt.SubVariant.OK() {
		out = append(out, *rt.SubVariant)
	}
	for _, c := range rt.Satisfied {
		if !c.OK() {
			out = append(out, c)
		}
	}
	for _, c := range rt.Unsatisfied {
		if !c.OK() {
			out = append(out, c)
		}
	}
	return out
}

// Trace is the full evaluation record of one topic.
type Trace struct {
	Topic string      `json:"topic"`
	Rules []RuleTrace `json:"rules"`
}

// Outcomes returns the outcomes of the matched rules in order. It is
// always equal to what Classify returns for the same input.
func (t Trace) Outcomes() []catalog.Outcome {
	out := make([]catalog.Outcome, 0, len(t.Rules))
	for _, rt := range t.Rules {
		if rt.Matched {
			out = append(out, rt.Rule.Outcome())
		}
	}
	return out
}

// Explain evaluates every rule of the topic like Classify does and
// records each individual check.
func (e *Engine) Explain(topicID string, answers Answers) (Trace, error) {
	rules, err := e.rules.RulesFor(topicID)
	if err != nil {
		return Trace{}, err
	}
	if answers == nil {
		answers = Map(nil)
	}

	tr := Trace{Topic: topicID, Rules: make([]RuleTrace, 0, len(rules))}
	for i, r := range rules {
		rt := RuleTrace{Index: i, Rule: r, Matched: Matches(r, answers)}
		if r.SubVariant != "" {
			rt.SubVariant = &Check{ID: r.SubVariant, Want: catalog.AnswerPresent, Got: answers.Answer(r.SubVariant)}
		}
		for _, id := range r.Satisfied {
			rt.Satisfied = append(rt.Satisfied, Check{ID: id, Want: catalog.AnswerSatisfied, Got: answers.Answer(id)})
		}
		for _, id := range r.Unsatisfied {
			rt.Unsatisfied = append(rt.Unsatisfied, Check{ID: id, Want: catalog.AnswerUnsatisfied, Got: answers.Answer(id)})
		}
		tr.Rules = append(tr.Rules, rt)
	}
	return tr, nil
}
