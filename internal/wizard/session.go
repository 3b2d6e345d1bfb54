// Package wizard drives a full classification pass: eligibility gates,
// section and topic selection, per-topic answers and the final results.
// It holds no UI state; the terminal screens and the CLI both drive it.
package wizard

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/ctdguide/internal/catalog"
	"github.com/abhisek/ctdguide/internal/classify"
	"github.com/abhisek/ctdguide/internal/selection"
)

// Phase is the step of the flow a session is in.
type Phase int

const (
	PhaseGates    Phase = iota // Eligibility questions
	PhaseSections              // Which CTD sections changed
	PhaseTopics                // Which topics within those sections changed
	PhaseAnswers               // Sub-variant and requirement answers, one topic at a time
	PhaseResults               // Classification results
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseGates:
		return "gates"
	case PhaseSections:
		return "sections"
	case PhaseTopics:
		return "topics"
	case PhaseAnswers:
		return "answers"
	case PhaseResults:
		return "results"
	case PhaseDone:
		return "done"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

var (
	// ErrPhase is returned when an operation is called in the wrong phase.
	ErrPhase = errors.New("not allowed in current phase")

	// ErrIncomplete is returned when advancing with unanswered questions.
	ErrIncomplete = errors.New("unanswered questions remain")

	// ErrStopped is returned when the flow was stopped by a failed gate.
	ErrStopped = errors.New("guide stopped by eligibility question")

	// ErrAutoSelected is returned when clearing a topic that is always changed.
	ErrAutoSelected = errors.New("topic is always changed with its section")
)

// TopicResult is the classification of one target topic.
type TopicResult struct {
	Topic    catalog.Topic
	Outcomes []catalog.Outcome
	Answers  map[string]catalog.Answer
}

// OutOfScope reports whether no rule matched the topic's answers.
func (r TopicResult) OutOfScope() bool { return len(r.Outcomes) == 0 }

// Session is one user's pass through the guide. Not safe for concurrent use.
type Session struct {
	id         string
	cat        *catalog.Catalog
	classifier classify.Classifier
	logger     *slog.Logger

	phase      Phase
	gate       int
	stopped    bool
	stopReason string

	sections map[string]bool
	topics   map[string]bool

	targets []catalog.Topic
	stores  map[string]*selection.Store
	current int
	results []TopicResult
}

// New starts a session at the first gate.
func New(cat *catalog.Catalog, logger *slog.Logger) *Session {
	s := &Session{
		id:         uuid.New().String(),
		cat:        cat,
		classifier: classify.WithLogging(classify.New(cat), logger),
		sections:   make(map[string]bool),
		topics:     make(map[string]bool),
		stores:     make(map[string]*selection.Store),
	}
	s.logger = logger.With("session", s.id)
	s.logger.Info("guide session started", "catalog_version", cat.Version())
	if len(cat.Gates()) == 0 {
		s.phase = PhaseSections
	}
	return s
}

// ID returns the session's unique id.
func (s *Session) ID() string { return s.id }

// Catalog returns the catalog the session classifies against.
func (s *Session) Catalog() *catalog.Catalog { return s.cat }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Stopped reports whether a gate was answered "no".
func (s *Session) Stopped() bool { return s.stopped }

// StopReason returns the failed gate's text.
func (s *Session) StopReason() string { return s.stopReason }

func (s *Session) setPhase(p Phase) {
	if p == s.phase {
		return
	}
	s.logger.Info("phase changed", "from", s.phase, "to", p)
	s.phase = p
}

func (s *Session) require(op string, p Phase) error {
	if s.phase != p {
		return fmt.Errorf("%s in %s phase: %w", op, s.phase, ErrPhase)
	}
	return nil
}

// --- Gates ---

// Gate returns the current gate and its 0-based index.
func (s *Session) Gate() (catalog.Gate, int) {
	gates := s.cat.Gates()
	if s.phase != PhaseGates || s.gate >= len(gates) {
		return catalog.Gate{}, -1
	}
	return gates[s.gate], s.gate
}

// GateCount returns the number of gates in the catalog.
func (s *Session) GateCount() int { return len(s.cat.Gates()) }

// AnswerGate answers the current gate and returns its pass or fail
// text. A "no" stops the flow until BackGate is called.
func (s *Session) AnswerGate(yes bool) (string, error) {
	if err := s.require("answer gate", PhaseGates); err != nil {
		return "", err
	}
	if s.stopped {
		return "", ErrStopped
	}
	gates := s.cat.Gates()
	g := gates[s.gate]
	s.logger.Debug("gate answered", "gate", g.ID, "yes", yes)

	if !yes {
		s.stopped = true
		s.stopReason = g.Fail
		s.logger.Info("guide stopped", "gate", g.ID)
		return g.Fail, nil
	}
	s.gate++
	if s.gate == len(gates) {
		s.setPhase(PhaseSections)
	}
	return g.Pass, nil
}

// BackGate clears a stop, or returns to the previous gate.
func (s *Session) BackGate() error {
	if err := s.require("back gate", PhaseGates); err != nil {
		return err
	}
	if s.stopped {
		s.stopped = false
		s.stopReason = ""
		return nil
	}
	if s.gate > 0 {
		s.gate--
	}
	return nil
}

// --- Sections ---

// SectionChanged returns the recorded answer for a section.
func (s *Session) SectionChanged(sectionID string) (changed, answered bool) {
	changed, answered = s.sections[sectionID]
	return changed, answered
}

// SetSectionChanged records whether the section has a change.
func (s *Session) SetSectionChanged(sectionID string, changed bool) error {
	if err := s.require("set section", PhaseSections); err != nil {
		return err
	}
	if _, ok := s.cat.Section(sectionID); !ok {
		return fmt.Errorf("unknown section %q", sectionID)
	}
	s.sections[sectionID] = changed
	return nil
}

// ConfirmSections requires every section to be answered, then moves to
// topic selection. With no changed section the session goes straight
// to an empty result set.
func (s *Session) ConfirmSections() error {
	if err := s.require("confirm sections", PhaseSections); err != nil {
		return err
	}
	var missing []string
	for _, sec := range s.cat.Sections() {
		if _, ok := s.sections[sec.ID]; !ok {
			missing = append(missing, sec.ID)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: sections %s", ErrIncomplete, strings.Join(missing, ", "))
	}

	// Topics outside the changed sections are forgotten.
	candidates := s.CandidateTopics()
	for id := range s.topics {
		if !slices.ContainsFunc(candidates, func(t catalog.Topic) bool { return t.ID == id }) {
			delete(s.topics, id)
		}
	}
	for _, t := range candidates {
		if t.AutoSelect {
			s.topics[t.ID] = true
		}
	}

	if len(candidates) == 0 {
		s.targets = nil
		s.results = []TopicResult{}
		s.setPhase(PhaseResults)
		return nil
	}
	s.setPhase(PhaseTopics)
	return nil
}

// ChangedSections returns the ids of sections answered as changed, in
// catalog order.
func (s *Session) ChangedSections() []string {
	var out []string
	for _, sec := range s.cat.Sections() {
		if s.sections[sec.ID] {
			out = append(out, sec.ID)
		}
	}
	return out
}

// --- Topics ---

// CandidateTopics returns the topics of the changed sections in catalog order.
func (s *Session) CandidateTopics() []catalog.Topic {
	var out []catalog.Topic
	for _, id := range s.ChangedSections() {
		out = append(out, s.cat.TopicsIn(id)...)
	}
	return out
}

// TopicChanged returns the recorded answer for a topic.
func (s *Session) TopicChanged(topicID string) (changed, answered bool) {
	changed, answered = s.topics[topicID]
	return changed, answered
}

// SetTopicChanged records whether the topic has a change. Auto-selected
// topics cannot be cleared.
func (s *Session) SetTopicChanged(topicID string, changed bool) error {
	if err := s.require("set topic", PhaseTopics); err != nil {
		return err
	}
	t, ok := s.candidate(topicID)
	if !ok {
		if _, err := s.cat.ByID(topicID); err != nil {
			return err
		}
		return fmt.Errorf("topic %q is not in a changed section", topicID)
	}
	if t.AutoSelect && !changed {
		return fmt.Errorf("%s: %w", topicID, ErrAutoSelected)
	}
	s.topics[topicID] = changed
	return nil
}

func (s *Session) candidate(topicID string) (catalog.Topic, bool) {
	for _, t := range s.CandidateTopics() {
		if t.ID == topicID {
			return t, true
		}
	}
	return catalog.Topic{}, false
}

// ConfirmTopics requires every candidate topic to be answered, then
// builds the target list. Answers already given for a topic survive
// going back and confirming again.
func (s *Session) ConfirmTopics() error {
	if err := s.require("confirm topics", PhaseTopics); err != nil {
		return err
	}
	candidates := s.CandidateTopics()
	var missing []string
	for _, t := range candidates {
		if _, ok := s.topics[t.ID]; !ok {
			missing = append(missing, t.ID)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: topics %s", ErrIncomplete, strings.Join(missing, ", "))
	}

	s.targets = s.targets[:0]
	for _, t := range candidates {
		if !s.topics[t.ID] {
			continue
		}
		s.targets = append(s.targets, t)
		if _, ok := s.stores[t.ID]; !ok {
			s.stores[t.ID] = selection.New(t)
		}
	}
	for id := range s.stores {
		if !s.topics[id] {
			delete(s.stores, id)
		}
	}
	s.results = make([]TopicResult, 0, len(s.targets))
	s.current = 0

	s.logger.Info("topics confirmed", "targets", len(s.targets))
	if len(s.targets) == 0 {
		s.setPhase(PhaseResults)
		return nil
	}
	s.setPhase(PhaseAnswers)
	return nil
}

// --- Answers ---

// Targets returns the topics being answered, in catalog order.
func (s *Session) Targets() []catalog.Topic { return slices.Clone(s.targets) }

// Current returns the index of the topic being answered.
func (s *Session) Current() int { return s.current }

// CurrentTopic returns the topic being answered.
func (s *Session) CurrentTopic() (catalog.Topic, bool) {
	if s.phase != PhaseAnswers || s.current >= len(s.targets) {
		return catalog.Topic{}, false
	}
	return s.targets[s.current], true
}

// Store returns the answer store of the current topic, or nil outside
// the answers phase.
func (s *Session) Store() *selection.Store {
	t, ok := s.CurrentTopic()
	if !ok {
		return nil
	}
	return s.stores[t.ID]
}

// NextTopic classifies the current topic and moves to the next one.
// After the last topic the session enters the results phase.
func (s *Session) NextTopic() error {
	if err := s.require("next topic", PhaseAnswers); err != nil {
		return err
	}
	t := s.targets[s.current]
	st := s.stores[t.ID]
	if missing := st.Missing(); len(missing) > 0 {
		return fmt.Errorf("%s: %w: %s", t.ID, ErrIncomplete, strings.Join(missing, ", "))
	}

	outcomes, err := s.classifier.Classify(t.ID, st)
	if err != nil {
		return fmt.Errorf("classify %s: %w", t.ID, err)
	}
	res := TopicResult{Topic: t, Outcomes: outcomes, Answers: st.Snapshot()}
	s.results = append(s.results[:s.current], res)

	s.current++
	if s.current == len(s.targets) {
		s.setPhase(PhaseResults)
	}
	return nil
}

// PrevTopic moves back one topic keeping its answers. From the first
// topic it returns to topic selection.
func (s *Session) PrevTopic() error {
	if err := s.require("previous topic", PhaseAnswers); err != nil {
		return err
	}
	if s.current == 0 {
		s.setPhase(PhaseTopics)
		return nil
	}
	s.current--
	return nil
}

// --- Results ---

// Results returns one result per target topic, in target order.
func (s *Session) Results() ([]TopicResult, error) {
	if s.phase != PhaseResults && s.phase != PhaseDone {
		return nil, fmt.Errorf("results in %s phase: %w", s.phase, ErrPhase)
	}
	out := make([]TopicResult, len(s.results))
	for i, r := range s.results {
		r.Outcomes = slices.Clone(r.Outcomes)
		r.Answers = maps.Clone(r.Answers)
		out[i] = r
	}
	return out, nil
}

// Finish closes the session.
func (s *Session) Finish() error {
	if err := s.require("finish", PhaseResults); err != nil {
		return err
	}
	s.setPhase(PhaseDone)
	return nil
}

// Back returns to the previous step of the flow.
func (s *Session) Back() error {
	switch s.phase {
	case PhaseGates:
		return s.BackGate()
	case PhaseSections:
		if n := s.GateCount(); n > 0 {
			s.gate = n - 1
			s.setPhase(PhaseGates)
		}
	case PhaseTopics:
		s.setPhase(PhaseSections)
	case PhaseAnswers:
		return s.PrevTopic()
	case PhaseResults:
		switch {
		case len(s.CandidateTopics()) == 0:
			s.setPhase(PhaseSections)
		case len(s.targets) == 0:
			s.setPhase(PhaseTopics)
		default:
			s.current = len(s.targets) - 1
			s.setPhase(PhaseAnswers)
		}
	case PhaseDone:
		s.setPhase(PhaseResults)
	}
	return nil
}
