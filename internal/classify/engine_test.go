package classify

import (
	"bytes"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/abhisek/ctdguide/internal/catalog"
)

// fakeRules is an in-memory rule table keyed by topic.
type fakeRules map[string][]catalog.Rule

func (f fakeRules) RulesFor(topicID string) ([]catalog.Rule, error) {
	rules, ok := f[topicID]
	if !ok {
		return nil, &catalog.UnknownTopicError{ID: topicID}
	}
	return rules, nil
}

const (
	present     = catalog.AnswerPresent
	absent      = catalog.AnswerAbsent
	satisfied   = catalog.AnswerSatisfied
	unsatisfied = catalog.AnswerUnsatisfied
)

func testRules() fakeRules {
	return fakeRules{
		"T": {
			{Topic: "T", SubVariant: "v1", Satisfied: []string{"r1"}, Tier: "AR", Report: "annual", Documents: "T docs"},
		},
		"U": {
			{Topic: "U", SubVariant: "u1", Satisfied: []string{"r3"}, Unsatisfied: []string{"r1", "r2"}, Tier: "IR", Documents: "U-a"},
			{Topic: "U", SubVariant: "u1", Satisfied: []string{"r1", "r2"}, Unsatisfied: []string{"r3"}, Tier: "Cmin", Documents: "U-b"},
		},
		"W": {
			{Topic: "W", Tier: "Cmaj", Documents: "W docs"},
		},
		"O": {
			{Topic: "O", Satisfied: []string{"r1"}, Tier: "IR", Documents: "first"},
			{Topic: "O", Satisfied: []string{"r1"}, Tier: "Cmaj", Documents: "second"},
			{Topic: "O", Unsatisfied: []string{"r1"}, Tier: "AR", Documents: "third"},
		},
	}
}

func tiersOf(outcomes []catalog.Outcome) []string {
	out := make([]string, len(outcomes))
	for i, o := range outcomes {
		out[i] = o.Tier
	}
	return out
}

func TestClassify_Scenarios(t *testing.T) {
	e := New(testRules())

	tests := []struct {
		name    string
		topic   string
		answers Answers
		want    []string
	}{
		{
			name:    "single rule matches",
			topic:   "T",
			answers: Map{"v1": present, "r1": satisfied},
			want:    []string{"AR"},
		},
		{
			name:    "requirement unmet gives no match",
			topic:   "T",
			answers: Map{"v1": present, "r1": unsatisfied},
			want:    []string{},
		},
		{
			name:    "sub-variant absent gives no match",
			topic:   "T",
			answers: Map{"v1": absent, "r1": satisfied},
			want:    []string{},
		},
		{
			name:    "complementary rules pick the first",
			topic:   "U",
			answers: Map{"u1": present, "r1": unsatisfied, "r2": unsatisfied, "r3": satisfied},
			want:    []string{"IR"},
		},
		{
			name:    "complementary rules pick the second",
			topic:   "U",
			answers: Map{"u1": present, "r1": satisfied, "r2": satisfied, "r3": unsatisfied},
			want:    []string{"Cmin"},
		},
		{
			name:    "mixed answers match neither complement",
			topic:   "U",
			answers: Map{"u1": present, "r1": satisfied, "r2": unsatisfied, "r3": unsatisfied},
			want:    []string{},
		},
		{
			name:    "unconditional rule with empty answers",
			topic:   "W",
			answers: Map{},
			want:    []string{"Cmaj"},
		},
		{
			name:    "unconditional rule with nil answers",
			topic:   "W",
			answers: nil,
			want:    []string{"Cmaj"},
		},
		{
			name:    "unconditional rule ignores unrelated answers",
			topic:   "W",
			answers: Map{"x": present, "r9": unsatisfied},
			want:    []string{"Cmaj"},
		},
		{
			name:    "overlapping rules all reported in order",
			topic:   "O",
			answers: Map{"r1": satisfied},
			want:    []string{"IR", "Cmaj"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Classify(tt.topic, tt.answers)
			if err != nil {
				t.Fatalf("Classify: %v", err)
			}
			if got == nil {
				t.Fatal("Classify returned nil slice; want empty slice for no match")
			}
			if !reflect.DeepEqual(tiersOf(got), tt.want) {
				t.Errorf("tiers = %v, want %v", tiersOf(got), tt.want)
			}
		})
	}
}

func TestClassify_OutcomeCarriesRuleText(t *testing.T) {
	e := New(testRules())
	got, err := e.Classify("T", Map{"v1": present, "r1": satisfied})
	if err != nil {
		t.Fatal(err)
	}
	want := catalog.Outcome{Tier: "AR", Report: "annual", Documents: "T docs"}
	if len(got) != 1 || got[0] != want {
		t.Errorf("got %+v, want [%+v]", got, want)
	}
}

func TestClassify_MissingAnswerNeverMatches(t *testing.T) {
	e := New(testRules())
	full := Map{"u1": present, "r1": unsatisfied, "r2": unsatisfied, "r3": satisfied}

	for id := range full {
		t.Run("without "+id, func(t *testing.T) {
			partial := Map{}
			for k, v := range full {
				if k != id {
					partial[k] = v
				}
			}
			got, err := e.Classify("U", partial)
			if err != nil {
				t.Fatalf("missing answer must not error: %v", err)
			}
			if len(got) != 0 {
				t.Errorf("expected no match with %s missing, got %v", id, tiersOf(got))
			}
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	e := New(testRules())
	answers := Map{"r1": satisfied}

	first, _ := e.Classify("O", answers)
	for i := 0; i < 20; i++ {
		again, _ := e.Classify("O", answers)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("call %d returned %v, first call returned %v", i, again, first)
		}
	}
}

func TestClassify_DoesNotMutateAnswers(t *testing.T) {
	e := New(testRules())
	answers := Map{"v1": present}
	if _, err := e.Classify("T", answers); err != nil {
		t.Fatal(err)
	}
	if len(answers) != 1 || answers["v1"] != present {
		t.Errorf("answers were modified: %v", answers)
	}
}

func TestClassify_UnknownTopic(t *testing.T) {
	e := New(testRules())
	got, err := e.Classify("nonexistent-topic", Map{})
	if err == nil {
		t.Fatalf("expected error, got outcomes %v", got)
	}
	var ute *catalog.UnknownTopicError
	if !errors.As(err, &ute) {
		t.Fatalf("error type = %T, want *catalog.UnknownTopicError", err)
	}
	if got != nil {
		t.Errorf("outcomes should be nil on error, got %v", got)
	}
}

func TestClassify_DefaultCatalog(t *testing.T) {
	e := New(catalog.Default())

	tests := []struct {
		name    string
		topic   string
		answers Map
		want    []string
	}{
		{"s1_1 name change", "s1_1", Map{"r1": satisfied}, []string{"AR"}},
		{"s1_1 active ingredient changes", "s1_1", Map{"r1": unsatisfied}, []string{}},
		{"p1_8 coating weight is always major", "p1_8", Map{}, []string{"Cmaj"}},
		{"p7_20 reports both tiers", "p7_20", Map{"r1": satisfied}, []string{"IR", "Cmaj"}},
		{"ds_24 unit operation", "ds_24", Map{"24a": present, "24b": absent}, []string{"Cmaj"}},
		{"ds_24 both sub-variants", "ds_24", Map{"24a": present, "24b": present}, []string{"Cmaj", "Cmaj"}},
		{
			"s2_5 scale change within limits",
			"s2_5",
			Map{"5a": present, "5b": absent, "5c": absent, "r1": satisfied, "r2": satisfied, "r3": satisfied},
			[]string{"AR"},
		},
		{
			"p3_16 linked pair both present",
			"p3_16",
			Map{"16a": present, "16b": present, "r1": unsatisfied, "r2": satisfied, "r3": unsatisfied, "r4": unsatisfied},
			[]string{"Cmaj"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Classify(tt.topic, tt.answers)
			if err != nil {
				t.Fatalf("Classify: %v", err)
			}
			if !reflect.DeepEqual(tiersOf(got), tt.want) {
				t.Errorf("tiers = %v, want %v", tiersOf(got), tt.want)
			}
		})
	}
}

func TestExplain_MatchesClassify(t *testing.T) {
	e := New(testRules())
	inputs := []struct {
		topic   string
		answers Map
	}{
		{"T", Map{"v1": present, "r1": satisfied}},
		{"T", Map{"v1": present}},
		{"U", Map{"u1": present, "r1": satisfied, "r2": satisfied, "r3": unsatisfied}},
		{"O", Map{"r1": satisfied}},
		{"W", nil},
	}
	for _, in := range inputs {
		outcomes, err := e.Classify(in.topic, in.answers)
		if err != nil {
			t.Fatal(err)
		}
		tr, err := e.Explain(in.topic, in.answers)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(tr.Outcomes(), outcomes) {
			t.Errorf("%s: Explain outcomes %v != Classify %v", in.topic, tr.Outcomes(), outcomes)
		}
	}
}

func TestExplain_RecordsFailedChecks(t *testing.T) {
	e := New(testRules())
	tr, err := e.Explain("T", Map{"v1": present, "r1": unsatisfied})
	if err != nil {
		t.Fatal(err)
	}
	if len(tr.Rules) != 1 {
		t.Fatalf("rules traced = %d, want 1", len(tr.Rules))
	}
	rt := tr.Rules[0]
	if rt.Matched {
		t.Error("rule should not match")
	}
	if rt.SubVariant == nil || !rt.SubVariant.OK() {
		t.Errorf("sub-variant check = %+v, want ok", rt.SubVariant)
	}
	failed := rt.Failed()
	if len(failed) != 1 || failed[0].ID != "r1" || failed[0].Got != unsatisfied {
		t.Errorf("failed = %+v, want r1 got unsatisfied", failed)
	}

	if _, err := e.Explain("missing", nil); !errors.Is(err, catalog.ErrUnknownTopic) {
		t.Errorf("Explain unknown topic: %v", err)
	}
}

func TestWithLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c := WithLogging(New(testRules()), logger)

	got, err := c.Classify("O", Map{"r1": satisfied})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("decorator changed result: %v", tiersOf(got))
	}
	if !strings.Contains(buf.String(), "topic classified") || !strings.Contains(buf.String(), "tiers=IR,Cmaj") {
		t.Errorf("log output missing classification record: %s", buf.String())
	}

	buf.Reset()
	if _, err := c.Classify("nope", nil); err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(buf.String(), "classification failed") {
		t.Errorf("log output missing failure record: %s", buf.String())
	}
}
