package wizard

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/abhisek/ctdguide/internal/catalog"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSession(t *testing.T) *Session {
	t.Helper()
	return New(catalog.Default(), discardLogger())
}

func passGates(t *testing.T, s *Session) {
	t.Helper()
	for i := 0; i < s.GateCount(); i++ {
		if _, err := s.AnswerGate(true); err != nil {
			t.Fatalf("gate %d: %v", i, err)
		}
	}
	if s.Phase() != PhaseSections {
		t.Fatalf("phase after gates = %s, want sections", s.Phase())
	}
}

// answerSections marks the given sections changed and every other one unchanged.
func answerSections(t *testing.T, s *Session, changed ...string) {
	t.Helper()
	want := make(map[string]bool)
	for _, id := range changed {
		want[id] = true
	}
	for _, sec := range s.Catalog().Sections() {
		if err := s.SetSectionChanged(sec.ID, want[sec.ID]); err != nil {
			t.Fatalf("SetSectionChanged(%s): %v", sec.ID, err)
		}
	}
	if err := s.ConfirmSections(); err != nil {
		t.Fatalf("ConfirmSections: %v", err)
	}
}

func TestNew(t *testing.T) {
	a := newSession(t)
	b := newSession(t)
	if a.ID() == "" || a.ID() == b.ID() {
		t.Errorf("session ids should be unique and non-empty: %q %q", a.ID(), b.ID())
	}
	if a.Phase() != PhaseGates {
		t.Errorf("phase = %s, want gates", a.Phase())
	}
	g, idx := a.Gate()
	if idx != 0 || g.ID != "ctd" {
		t.Errorf("first gate = %s (%d), want ctd (0)", g.ID, idx)
	}
}

func TestGates_NoStopsFlow(t *testing.T) {
	s := newSession(t)
	if _, err := s.AnswerGate(true); err != nil {
		t.Fatal(err)
	}
	text, err := s.AnswerGate(false)
	if err != nil {
		t.Fatal(err)
	}
	g := s.Catalog().Gates()[1]
	if text != g.Fail || !s.Stopped() || s.StopReason() != g.Fail {
		t.Errorf("stopped=%v reason=%q, want fail text of %s", s.Stopped(), s.StopReason(), g.ID)
	}
	if _, err := s.AnswerGate(true); !errors.Is(err, ErrStopped) {
		t.Errorf("answering a stopped gate: err = %v, want ErrStopped", err)
	}

	if err := s.BackGate(); err != nil {
		t.Fatal(err)
	}
	if s.Stopped() {
		t.Error("BackGate should clear the stop")
	}
	if _, idx := s.Gate(); idx != 1 {
		t.Errorf("gate index = %d, want 1", idx)
	}
	if err := s.BackGate(); err != nil {
		t.Fatal(err)
	}
	if _, idx := s.Gate(); idx != 0 {
		t.Errorf("gate index = %d, want 0", idx)
	}
}

func TestGates_PassText(t *testing.T) {
	s := newSession(t)
	text, err := s.AnswerGate(true)
	if err != nil {
		t.Fatal(err)
	}
	if text != s.Catalog().Gates()[0].Pass {
		t.Errorf("pass text = %q", text)
	}
}

func TestWrongPhase(t *testing.T) {
	s := newSession(t)
	if err := s.SetSectionChanged("s1", true); !errors.Is(err, ErrPhase) {
		t.Errorf("SetSectionChanged during gates: %v", err)
	}
	if err := s.NextTopic(); !errors.Is(err, ErrPhase) {
		t.Errorf("NextTopic during gates: %v", err)
	}
	if _, err := s.Results(); !errors.Is(err, ErrPhase) {
		t.Errorf("Results during gates: %v", err)
	}
	if s.Store() != nil {
		t.Error("Store should be nil outside the answers phase")
	}
}

func TestConfirmSections_RequiresEveryAnswer(t *testing.T) {
	s := newSession(t)
	passGates(t, s)
	if err := s.SetSectionChanged("s1", true); err != nil {
		t.Fatal(err)
	}
	if err := s.ConfirmSections(); !errors.Is(err, ErrIncomplete) {
		t.Errorf("ConfirmSections with unanswered sections: %v", err)
	}
	if err := s.SetSectionChanged("zz", true); err == nil {
		t.Error("expected error for unknown section")
	}
}

func TestNoChangedSectionsGivesEmptyResults(t *testing.T) {
	s := newSession(t)
	passGates(t, s)
	answerSections(t, s)

	if s.Phase() != PhaseResults {
		t.Fatalf("phase = %s, want results", s.Phase())
	}
	res, err := s.Results()
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 0 {
		t.Errorf("results = %d, want 0", len(res))
	}
	if err := s.Back(); err != nil {
		t.Fatal(err)
	}
	if s.Phase() != PhaseSections {
		t.Errorf("Back from empty results = %s, want sections", s.Phase())
	}
}

func TestFullFlow(t *testing.T) {
	s := newSession(t)
	passGates(t, s)
	answerSections(t, s, "s1", "ds")

	if s.Phase() != PhaseTopics {
		t.Fatalf("phase = %s, want topics", s.Phase())
	}
	if changed, answered := s.TopicChanged("ds_24"); !changed || !answered {
		t.Error("ds_24 should be auto-selected")
	}
	if err := s.SetTopicChanged("ds_24", false); !errors.Is(err, ErrAutoSelected) {
		t.Errorf("clearing ds_24: %v", err)
	}
	if err := s.SetTopicChanged("p1_8", true); err == nil {
		t.Error("expected error for topic outside changed sections")
	}
	if err := s.ConfirmTopics(); !errors.Is(err, ErrIncomplete) {
		t.Errorf("ConfirmTopics with s1_1 unanswered: %v", err)
	}
	if err := s.SetTopicChanged("s1_1", true); err != nil {
		t.Fatal(err)
	}
	if err := s.ConfirmTopics(); err != nil {
		t.Fatal(err)
	}

	targets := s.Targets()
	if len(targets) != 2 || targets[0].ID != "s1_1" || targets[1].ID != "ds_24" {
		t.Fatalf("targets = %v", targets)
	}

	// s1_1
	if err := s.NextTopic(); !errors.Is(err, ErrIncomplete) {
		t.Errorf("NextTopic with unanswered requirement: %v", err)
	}
	if err := s.Store().Set("r1", catalog.AnswerSatisfied); err != nil {
		t.Fatal(err)
	}
	if err := s.NextTopic(); err != nil {
		t.Fatal(err)
	}

	// ds_24
	if top, _ := s.CurrentTopic(); top.ID != "ds_24" {
		t.Fatalf("current topic = %s, want ds_24", top.ID)
	}
	st := s.Store()
	if err := st.Set("24a", catalog.AnswerAbsent); err != nil {
		t.Fatal(err)
	}
	if err := st.Set("24b", catalog.AnswerAbsent); err != nil {
		t.Fatal(err)
	}
	if err := s.NextTopic(); err != nil {
		t.Fatal(err)
	}

	if s.Phase() != PhaseResults {
		t.Fatalf("phase = %s, want results", s.Phase())
	}
	res, err := s.Results()
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 2 {
		t.Fatalf("results = %d, want 2", len(res))
	}
	if res[0].OutOfScope() || res[0].Outcomes[0].Tier != "AR" {
		t.Errorf("s1_1 result = %+v, want AR", res[0].Outcomes)
	}
	if !res[1].OutOfScope() {
		t.Errorf("ds_24 with nothing present should be out of scope, got %+v", res[1].Outcomes)
	}
	if res[0].Answers["r1"] != catalog.AnswerSatisfied {
		t.Errorf("answers snapshot = %v", res[0].Answers)
	}

	// Going back keeps answers and re-classifies.
	if err := s.Back(); err != nil {
		t.Fatal(err)
	}
	if s.Phase() != PhaseAnswers || s.Current() != 1 {
		t.Fatalf("Back from results: phase=%s current=%d", s.Phase(), s.Current())
	}
	if got := s.Store().Answer("24b"); got != catalog.AnswerAbsent {
		t.Errorf("24b after Back = %q, want absent", got)
	}
	if err := s.Store().Set("24a", catalog.AnswerPresent); err != nil {
		t.Fatal(err)
	}
	if err := s.NextTopic(); err != nil {
		t.Fatal(err)
	}
	res, _ = s.Results()
	if len(res) != 2 || res[1].OutOfScope() || res[1].Outcomes[0].Tier != "Cmaj" {
		t.Errorf("ds_24 after revision = %+v", res[1].Outcomes)
	}

	if err := s.Finish(); err != nil {
		t.Fatal(err)
	}
	if s.Phase() != PhaseDone {
		t.Errorf("phase = %s, want done", s.Phase())
	}
}

func TestPrevTopic_KeepsAnswers(t *testing.T) {
	s := newSession(t)
	passGates(t, s)
	answerSections(t, s, "s1", "ds")
	if err := s.SetTopicChanged("s1_1", true); err != nil {
		t.Fatal(err)
	}
	if err := s.ConfirmTopics(); err != nil {
		t.Fatal(err)
	}
	if err := s.Store().Set("r1", catalog.AnswerUnsatisfied); err != nil {
		t.Fatal(err)
	}
	if err := s.NextTopic(); err != nil {
		t.Fatal(err)
	}
	if err := s.PrevTopic(); err != nil {
		t.Fatal(err)
	}
	if got := s.Store().Answer("r1"); got != catalog.AnswerUnsatisfied {
		t.Errorf("r1 = %q, want unsatisfied", got)
	}

	// From the first topic, back goes to topic selection; confirming
	// again keeps the store.
	if err := s.PrevTopic(); err != nil {
		t.Fatal(err)
	}
	if s.Phase() != PhaseTopics {
		t.Fatalf("phase = %s, want topics", s.Phase())
	}
	if err := s.ConfirmTopics(); err != nil {
		t.Fatal(err)
	}
	if got := s.Store().Answer("r1"); got != catalog.AnswerUnsatisfied {
		t.Errorf("r1 after reconfirm = %q, want unsatisfied", got)
	}
}

func TestBack_FromSectionsReturnsToLastGate(t *testing.T) {
	s := newSession(t)
	passGates(t, s)
	if err := s.Back(); err != nil {
		t.Fatal(err)
	}
	if s.Phase() != PhaseGates {
		t.Fatalf("phase = %s, want gates", s.Phase())
	}
	if _, idx := s.Gate(); idx != s.GateCount()-1 {
		t.Errorf("gate index = %d, want last", idx)
	}
}

func TestResultsAreCopies(t *testing.T) {
	s := newSession(t)
	passGates(t, s)
	answerSections(t, s, "s1")
	if err := s.SetTopicChanged("s1_1", true); err != nil {
		t.Fatal(err)
	}
	if err := s.ConfirmTopics(); err != nil {
		t.Fatal(err)
	}
	if err := s.Store().Set("r1", catalog.AnswerSatisfied); err != nil {
		t.Fatal(err)
	}
	if err := s.NextTopic(); err != nil {
		t.Fatal(err)
	}
	res, _ := s.Results()
	res[0].Answers["r1"] = catalog.AnswerUnsatisfied
	res[0].Outcomes[0].Tier = "X"

	again, _ := s.Results()
	if again[0].Answers["r1"] != catalog.AnswerSatisfied || again[0].Outcomes[0].Tier != "AR" {
		t.Errorf("results were mutated through a returned copy: %+v", again[0])
	}
}
