package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/ctdguide/internal/catalog"
	"github.com/abhisek/ctdguide/internal/classify"
)

// WriteTrace prints every rule of a topic with the result of each check.
func WriteTrace(w io.Writer, tr classify.Trace) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "rules for %s\n", tr.Topic)
	fmt.Fprintln(bw, strings.Repeat("─", ruleWidth))

	for _, rt := range tr.Rules {
		status := "no match"
		if rt.Matched {
			status = "MATCH"
		}
		fmt.Fprintf(bw, "#%-3d %-5s %s\n", rt.Index+1, rt.Rule.Tier, status)
		if rt.Rule.Unconditional() {
			fmt.Fprintln(bw, "     (unconditional)")
			continue
		}
		if rt.SubVariant != nil {
			writeCheck(bw, *rt.SubVariant)
		}
		for _, c := range rt.Satisfied {
			writeCheck(bw, c)
		}
		for _, c := range rt.Unsatisfied {
			writeCheck(bw, c)
		}
	}

	n := len(tr.Outcomes())
	fmt.Fprintf(bw, "\n%d of %d rules matched\n", n, len(tr.Rules))
	return bw.Flush()
}

func writeCheck(w io.Writer, c classify.Check) {
	mark := "✗"
	if c.OK() {
		mark = "✓"
	}
	got := string(c.Got)
	if c.Got == catalog.AnswerNone {
		got = "unanswered"
	}
	fmt.Fprintf(w, "     %s %-6s want %-11s got %s\n", mark, c.ID, c.Want, got)
}
