package catalogdiff

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Write prints a human-readable summary of r followed by the text diffs.
func (r Result) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)

	bump := "not increased"
	if r.VersionBumped {
		bump = "increased"
	}
	fmt.Fprintf(bw, "version %s -> %s (%s)\n", r.OldVersion, r.NewVersion, bump)

	if r.Empty() {
		fmt.Fprintln(bw, "no differences")
		return bw.Flush()
	}

	for _, id := range r.AddedTopics {
		fmt.Fprintf(bw, "+ topic %s\n", id)
	}
	for _, id := range r.RemovedTopics {
		fmt.Fprintf(bw, "- topic %s\n", id)
	}

	for _, td := range r.Topics {
		fmt.Fprintf(bw, "\n%s\n%s\n", td.Topic, strings.Repeat("─", 40))
		if td.TitleChanged() {
			fmt.Fprintf(bw, "title: %q -> %q\n", td.OldTitle, td.NewTitle)
		}
		if td.OldRules != td.NewRules {
			fmt.Fprintf(bw, "rules: %d -> %d\n", td.OldRules, td.NewRules)
		}
		if td.Questions != "" {
			fmt.Fprintln(bw, "questions:")
			bw.WriteString(td.Questions)
		}
		for _, rd := range td.Rules {
			fmt.Fprintf(bw, "rule %d:\n", rd.Index+1)
			bw.WriteString(rd.Diff)
		}
	}

	if r.Fallback != "" {
		fmt.Fprintln(bw, "\nfallback:")
		bw.WriteString(r.Fallback)
	}
	return bw.Flush()
}
