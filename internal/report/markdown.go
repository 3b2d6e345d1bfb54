package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// WriteMarkdown renders the report as a Markdown document with one
// heading per topic.
func WriteMarkdown(w io.Writer, r Report) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "# 제조방법 변경 분류 결과")
	fmt.Fprintln(bw)
	if r.Guideline != "" {
		fmt.Fprintf(bw, "%s (catalog %s)\n\n", r.Guideline, r.CatalogVersion)
	}

	if len(r.Results) == 0 {
		fmt.Fprintln(bw, NothingSelected)
		return bw.Flush()
	}

	for _, res := range r.Results {
		fmt.Fprintf(bw, "## %s\n\n", topicHeading(res.Topic))

		if svs := changedSubVariants(res); len(svs) > 0 {
			for _, label := range svs {
				fmt.Fprintf(bw, "- %s\n", label)
			}
			fmt.Fprintln(bw)
		}

		if res.OutOfScope() {
			fmt.Fprintf(bw, "> %s\n\n", strings.ReplaceAll(r.Fallback, "\n", "\n> "))
			continue
		}
		for _, o := range res.Outcomes {
			fmt.Fprintf(bw, "### %s (%s)\n\n", r.TierName(o.Tier), o.Tier)
			if o.Report != "" {
				fmt.Fprintf(bw, "%s\n\n", mdLines(o.Report))
			}
			fmt.Fprintln(bw, "**제출자료**")
			fmt.Fprintln(bw)
			fmt.Fprintf(bw, "%s\n\n", mdLines(o.Documents))
		}
	}
	return bw.Flush()
}

// mdLines keeps single line breaks by ending each line with a hard break.
func mdLines(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	return strings.Join(lines, "  \n")
}
