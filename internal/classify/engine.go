package classify

import (
	"github.com/abhisek/ctdguide/internal/catalog"
)

// Answers supplies recorded answers by sub-variant or requirement id.
// Unanswered ids return catalog.AnswerNone.
type Answers interface {
	Answer(id string) catalog.Answer
}

// Map is the simplest Answers implementation.
type Map map[string]catalog.Answer

// Answer implements Answers.
func (m Map) Answer(id string) catalog.Answer { return m[id] }

// Rules is the read side of the catalog the engine needs.
type Rules interface {
	RulesFor(topicID string) ([]catalog.Rule, error)
}

// Engine evaluates a topic's rules against recorded answers.
// It holds no state besides the catalog and is safe for concurrent use.
type Engine struct {
	rules Rules
}

// New creates an Engine over the given catalog.
func New(rules Rules) *Engine {
	return &Engine{rules: rules}
}

// Classify returns the outcome of every rule of the topic whose
// predicate holds, in catalog order. An empty result means no rule
// covers the answers and is not an error. An unknown topic returns the
// catalog's *UnknownTopicError.
//
// Linked sub-variants are not mirrored here. The writer of answers must
// have applied them already.
func (e *Engine) Classify(topicID string, answers Answers) ([]catalog.Outcome, error) {
	rules, err := e.rules.RulesFor(topicID)
	if err != nil {
		return nil, err
	}
	if answers == nil {
		answers = Map(nil)
	}

	outcomes := make([]catalog.Outcome, 0, len(rules))
	for _, r := range rules {
		if Matches(r, answers) {
			outcomes = append(outcomes, r.Outcome())
		}
	}
	return outcomes, nil
}

// Matches reports whether all three predicate groups of r hold.
// Empty groups are vacuously true; missing answers make a group fail.
func Matches(r catalog.Rule, answers Answers) bool {
	if r.SubVariant != "" && answers.Answer(r.SubVariant) != catalog.AnswerPresent {
		return false
	}
	for _, id := range r.Satisfied {
		if answers.Answer(id) != catalog.AnswerSatisfied {
			return false
		}
	}
	for _, id := range r.Unsatisfied {
		if answers.Answer(id) != catalog.AnswerUnsatisfied {
			return false
		}
	}
	return true
}
