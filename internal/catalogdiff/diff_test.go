package catalogdiff

import (
	"bytes"
	"strings"
	"testing"

	"github.com/abhisek/ctdguide/internal/catalog"
)

const baseCatalog = `
version: v1.0.0
fallback: "out of scope"
gates: []
tiers:
  - {code: AR, name: annual, report: "report annually"}
  - {code: Cmaj, name: major, report: "prior approval"}
sections:
  - id: s
    title: Section
    topics:
      - id: t
        number: 1
        title: Topic T
        sub_variants:
          - {id: v1, label: first}
        requirements:
          - {id: r1, label: requirement one}
      - id: w
        number: 2
        title: Topic W
rules:
  - topic: t
    sub_variant: v1
    satisfied: [r1]
    tier: AR
    documents: |-
      1. document one
      2. document two
  - topic: w
    tier: Cmaj
    documents: "everything"
`

func mustParse(t *testing.T, src string) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return c
}

func TestCompare_Identical(t *testing.T) {
	a := mustParse(t, baseCatalog)
	res := Compare(a, a)
	if !res.Empty() {
		t.Errorf("identical catalogs should have no differences: %+v", res)
	}
	if res.VersionBumped {
		t.Error("same version should not count as bumped")
	}
}

func TestCompare_DefaultAgainstItself(t *testing.T) {
	if res := Compare(catalog.Default(), catalog.Default()); !res.Empty() {
		t.Errorf("default catalog differs from itself: %+v", res)
	}
}

func TestCompare_Changes(t *testing.T) {
	revised := strings.NewReplacer(
		"version: v1.0.0", "version: v1.1.0",
		"title: Topic T", "title: Topic T revised",
		"2. document two", "2. document two (updated)",
		"label: requirement one", "label: requirement one reworded",
	).Replace(baseCatalog)
	revised = strings.Replace(revised, "      - id: w\n        number: 2\n        title: Topic W\n",
		"      - id: w\n        number: 2\n        title: Topic W\n      - id: x\n        number: 3\n        title: Topic X\n", 1)
	revised += "  - topic: x\n    tier: AR\n    documents: new\n  - topic: t\n    sub_variant: v1\n    unsatisfied: [r1]\n    tier: Cmaj\n    documents: extra\n"

	res := Compare(mustParse(t, baseCatalog), mustParse(t, revised))

	if !res.VersionBumped {
		t.Error("v1.0.0 -> v1.1.0 should count as bumped")
	}
	if len(res.AddedTopics) != 1 || res.AddedTopics[0] != "x" {
		t.Errorf("added = %v, want [x]", res.AddedTopics)
	}
	if len(res.RemovedTopics) != 0 {
		t.Errorf("removed = %v, want none", res.RemovedTopics)
	}
	if len(res.Topics) != 1 {
		t.Fatalf("changed topics = %d, want 1: %+v", len(res.Topics), res.Topics)
	}

	td := res.Topics[0]
	if td.Topic != "t" || !td.TitleChanged() || td.OldRules != 1 || td.NewRules != 2 {
		t.Errorf("topic diff = %+v", td)
	}
	if !strings.Contains(td.Questions, "-r1: requirement one\n") || !strings.Contains(td.Questions, "+r1: requirement one reworded\n") {
		t.Errorf("questions diff:\n%s", td.Questions)
	}
	if len(td.Rules) != 2 {
		t.Fatalf("rule diffs = %d, want 2", len(td.Rules))
	}
	if !strings.Contains(td.Rules[0].Diff, "+2. document two (updated)") || !strings.Contains(td.Rules[0].Diff, " 1. document one") {
		t.Errorf("rule 1 diff:\n%s", td.Rules[0].Diff)
	}
	if !strings.Contains(td.Rules[1].Diff, "+tier: Cmaj") {
		t.Errorf("added rule diff:\n%s", td.Rules[1].Diff)
	}

	var buf bytes.Buffer
	if err := res.Write(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"v1.0.0 -> v1.1.0 (increased)", "+ topic x", "rules: 1 -> 2", "rule 2:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCompare_Downgrade(t *testing.T) {
	older := strings.Replace(baseCatalog, "version: v1.0.0", "version: v2.0.0", 1)
	res := Compare(mustParse(t, older), mustParse(t, baseCatalog))
	if res.VersionBumped {
		t.Error("v2.0.0 -> v1.0.0 should not count as bumped")
	}

	var buf bytes.Buffer
	if err := res.Write(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "not increased") || !strings.Contains(buf.String(), "no differences") {
		t.Errorf("output:\n%s", buf.String())
	}
}
