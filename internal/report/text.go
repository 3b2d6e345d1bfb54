package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const ruleWidth = 72

// WriteText renders the report for a terminal.
func WriteText(w io.Writer, r Report) error {
	bw := bufio.NewWriter(w)

	if len(r.Results) == 0 {
		fmt.Fprintln(bw, NothingSelected)
		return bw.Flush()
	}

	for i, res := range r.Results {
		if i > 0 {
			fmt.Fprintln(bw)
		}
		fmt.Fprintln(bw, topicHeading(res.Topic))
		fmt.Fprintln(bw, strings.Repeat("─", ruleWidth))

		if svs := changedSubVariants(res); len(svs) > 0 {
			for _, label := range svs {
				fmt.Fprintf(bw, "  ▸ %s\n", label)
			}
			fmt.Fprintln(bw)
		}

		if res.OutOfScope() {
			fmt.Fprintln(bw, indent(r.Fallback, "  "))
			continue
		}
		for j, o := range res.Outcomes {
			if j > 0 {
				fmt.Fprintln(bw, "  "+strings.Repeat("┄", ruleWidth-2))
			}
			fmt.Fprintf(bw, "  [%s] %s\n", o.Tier, r.TierName(o.Tier))
			if o.Report != "" {
				fmt.Fprintln(bw, indent(o.Report, "  "))
			}
			fmt.Fprintln(bw)
			fmt.Fprintln(bw, "  제출자료")
			fmt.Fprintln(bw, indent(o.Documents, "    "))
		}
	}
	return bw.Flush()
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}
