// Package selection records the answers for one topic's classification
// pass. It is the only writer of answers, so it enforces the topic's
// forced and linked sub-variants before the engine ever sees them.
package selection

import (
	"errors"
	"fmt"
	"maps"

	"github.com/abhisek/ctdguide/internal/catalog"
)

// ErrForced is returned when a forced sub-variant is set to absent.
var ErrForced = errors.New("sub-variant is always present for this topic")

// UnknownIDError reports an id that is neither a sub-variant nor a
// requirement of the store's topic.
type UnknownIDError struct {
	Topic string
	ID    string
}

func (e *UnknownIDError) Error() string {
	return fmt.Sprintf("topic %q has no sub-variant or requirement %q", e.Topic, e.ID)
}

// InvalidAnswerError reports an answer value that does not fit the id.
type InvalidAnswerError struct {
	ID     string
	Answer catalog.Answer
	Want   string
}

func (e *InvalidAnswerError) Error() string {
	return fmt.Sprintf("%q cannot be answered %q (want %s)", e.ID, e.Answer, e.Want)
}

// Store holds the answers for a single topic. Not safe for concurrent use.
type Store struct {
	topic   catalog.Topic
	answers map[string]catalog.Answer
}

// New creates an empty store for the topic with forced sub-variants
// already marked present.
func New(topic catalog.Topic) *Store {
	s := &Store{
		topic:   topic,
		answers: make(map[string]catalog.Answer),
	}
	s.applyForced()
	return s
}

func (s *Store) applyForced() {
	for _, id := range s.topic.Forced {
		s.answers[id] = catalog.AnswerPresent
	}
}

// Topic returns the topic the store belongs to.
func (s *Store) Topic() catalog.Topic { return s.topic }

// Answer returns the recorded answer for id, or catalog.AnswerNone.
func (s *Store) Answer(id string) catalog.Answer { return s.answers[id] }

// Set records an answer for a sub-variant or requirement of the topic.
func (s *Store) Set(id string, a catalog.Answer) error {
	switch {
	case s.topic.HasSubVariant(id):
		return s.SetSubVariant(id, a)
	case s.topic.HasRequirement(id):
		return s.SetRequirement(id, a)
	default:
		return &UnknownIDError{Topic: s.topic.ID, ID: id}
	}
}

// SetSubVariant records present or absent for a sub-variant. A linked
// partner receives the same answer.
func (s *Store) SetSubVariant(id string, a catalog.Answer) error {
	if !s.topic.HasSubVariant(id) {
		return &UnknownIDError{Topic: s.topic.ID, ID: id}
	}
	if !a.ForSubVariant() {
		return &InvalidAnswerError{ID: id, Answer: a, Want: "present or absent"}
	}
	if s.topic.IsForced(id) {
		if a != catalog.AnswerPresent {
			return fmt.Errorf("%s: %w", id, ErrForced)
		}
		return nil
	}

	s.answers[id] = a
	if partner, ok := s.topic.Partner(id); ok {
		s.answers[partner] = a
	}
	return nil
}

// SetRequirement records satisfied or unsatisfied for a requirement.
func (s *Store) SetRequirement(id string, a catalog.Answer) error {
	if !s.topic.HasRequirement(id) {
		return &UnknownIDError{Topic: s.topic.ID, ID: id}
	}
	if !a.ForRequirement() {
		return &InvalidAnswerError{ID: id, Answer: a, Want: "satisfied or unsatisfied"}
	}
	s.answers[id] = a
	return nil
}

// Toggle flips a sub-variant between present and absent, or a
// requirement between satisfied and unsatisfied. An unanswered question
// becomes present or satisfied.
func (s *Store) Toggle(id string) error {
	switch {
	case s.topic.HasSubVariant(id):
		next := catalog.AnswerPresent
		if s.answers[id] == catalog.AnswerPresent {
			next = catalog.AnswerAbsent
		}
		return s.SetSubVariant(id, next)
	case s.topic.HasRequirement(id):
		next := catalog.AnswerSatisfied
		if s.answers[id] == catalog.AnswerSatisfied {
			next = catalog.AnswerUnsatisfied
		}
		return s.SetRequirement(id, next)
	default:
		return &UnknownIDError{Topic: s.topic.ID, ID: id}
	}
}

// Reset discards every answer except forced sub-variants.
func (s *Store) Reset() {
	clear(s.answers)
	s.applyForced()
}

// Missing returns the unanswered ids, sub-variants first, in catalog order.
func (s *Store) Missing() []string {
	var out []string
	for _, sv := range s.topic.SubVariants {
		if s.answers[sv.ID] == catalog.AnswerNone {
			out = append(out, sv.ID)
		}
	}
	for _, r := range s.topic.Requirements {
		if s.answers[r.ID] == catalog.AnswerNone {
			out = append(out, r.ID)
		}
	}
	return out
}

// Complete reports whether every question of the topic is answered.
func (s *Store) Complete() bool {
	return len(s.Missing()) == 0
}

// Snapshot returns a copy of the recorded answers.
func (s *Store) Snapshot() map[string]catalog.Answer {
	return maps.Clone(s.answers)
}

// Clone returns an independent copy of the store.
func (s *Store) Clone() *Store {
	return &Store{topic: s.topic, answers: maps.Clone(s.answers)}
}
