// Package catalogdiff compares two classification catalogs, typically
// the embedded one and a revised file, and reports what a reviewer
// needs to check before shipping the revision.
package catalogdiff

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"golang.org/x/mod/semver"

	"github.com/abhisek/ctdguide/internal/catalog"
)

// Result is the comparison of an old and a new catalog.
type Result struct {
	OldVersion string
	NewVersion string

	// VersionBumped is true when the new version is greater than the old.
	VersionBumped bool

	AddedTopics   []string
	RemovedTopics []string
	Topics        []TopicDiff

	// Fallback is a line diff of the out-of-scope text, if it changed.
	Fallback string
}

// TopicDiff describes the changes to a topic present in both catalogs.
type TopicDiff struct {
	Topic    string
	OldTitle string
	NewTitle string
	OldRules int
	NewRules int

	// Questions is a line diff of the sub-variant and requirement labels.
	Questions string

	Rules []RuleDiff
}

// TitleChanged reports whether the display title differs.
func (d TopicDiff) TitleChanged() bool { return d.OldTitle != d.NewTitle }

// RuleDiff is the line diff of one rule position. Added or removed
// rules diff against an empty text.
type RuleDiff struct {
	Index int
	Diff  string
}

// Empty reports whether the catalogs are equivalent.
func (r Result) Empty() bool {
	return len(r.AddedTopics) == 0 && len(r.RemovedTopics) == 0 &&
		len(r.Topics) == 0 && r.Fallback == ""
}

// Compare diffs two catalogs. Topics are matched by id.
func Compare(oldCat, newCat *catalog.Catalog) Result {
	res := Result{
		OldVersion:    oldCat.Version(),
		NewVersion:    newCat.Version(),
		VersionBumped: semver.Compare(newCat.Version(), oldCat.Version()) > 0,
	}

	oldTopics := oldCat.Topics()
	newTopics := newCat.Topics()
	hasTopic := func(ts []catalog.Topic, id string) bool {
		return slices.ContainsFunc(ts, func(t catalog.Topic) bool { return t.ID == id })
	}
	for _, t := range newTopics {
		if !hasTopic(oldTopics, t.ID) {
			res.AddedTopics = append(res.AddedTopics, t.ID)
		}
	}
	for _, t := range oldTopics {
		if !hasTopic(newTopics, t.ID) {
			res.RemovedTopics = append(res.RemovedTopics, t.ID)
		}
	}

	dmp := diffmatchpatch.New()
	for _, nt := range newTopics {
		ot, err := oldCat.ByID(nt.ID)
		if err != nil {
			continue
		}
		oldRules, _ := oldCat.RulesFor(nt.ID)
		newRules, _ := newCat.RulesFor(nt.ID)

		td := TopicDiff{
			Topic:    nt.ID,
			OldTitle: ot.DisplayTitle(),
			NewTitle: nt.DisplayTitle(),
			OldRules: len(oldRules),
			NewRules: len(newRules),

			Questions: lineDiff(dmp, questionText(ot), questionText(nt)),
		}
		for i := 0; i < max(len(oldRules), len(newRules)); i++ {
			var before, after string
			if i < len(oldRules) {
				before = ruleText(oldRules[i])
			}
			if i < len(newRules) {
				after = ruleText(newRules[i])
			}
			if d := lineDiff(dmp, before, after); d != "" {
				td.Rules = append(td.Rules, RuleDiff{Index: i, Diff: d})
			}
		}

		if td.TitleChanged() || td.OldRules != td.NewRules || td.Questions != "" || len(td.Rules) > 0 {
			res.Topics = append(res.Topics, td)
		}
	}

	res.Fallback = lineDiff(dmp, oldCat.Fallback(), newCat.Fallback())
	return res
}

// lineDiff returns a line-oriented diff with "-", "+" and " " prefixes,
// or "" when the texts are equal.
func lineDiff(dmp *diffmatchpatch.DiffMatchPatch, before, after string) string {
	if before == after {
		return ""
	}
	a, b, lines := dmp.DiffLinesToChars(terminate(before), terminate(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(line)
		}
	}
	return sb.String()
}

func terminate(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

func questionText(t catalog.Topic) string {
	var sb strings.Builder
	for _, sv := range t.SubVariants {
		fmt.Fprintf(&sb, "%s: %s\n", sv.ID, sv.Label)
	}
	for _, r := range t.Requirements {
		fmt.Fprintf(&sb, "%s: %s\n", r.ID, r.Label)
	}
	if len(t.Forced) > 0 {
		fmt.Fprintf(&sb, "forced: %s\n", strings.Join(t.Forced, ", "))
	}
	for _, pair := range t.Linked {
		fmt.Fprintf(&sb, "linked: %s, %s\n", pair[0], pair[1])
	}
	if t.AutoSelect {
		sb.WriteString("auto_select\n")
	}
	return sb.String()
}

func ruleText(r catalog.Rule) string {
	var sb strings.Builder
	if r.SubVariant != "" {
		fmt.Fprintf(&sb, "sub_variant: %s\n", r.SubVariant)
	}
	if len(r.Satisfied) > 0 {
		fmt.Fprintf(&sb, "satisfied: %s\n", strings.Join(r.Satisfied, ", "))
	}
	if len(r.Unsatisfied) > 0 {
		fmt.Fprintf(&sb, "unsatisfied: %s\n", strings.Join(r.Unsatisfied, ", "))
	}
	fmt.Fprintf(&sb, "tier: %s\n", r.Tier)
	sb.WriteString(terminate(r.Documents))
	return sb.String()
}
