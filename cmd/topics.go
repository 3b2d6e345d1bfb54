package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/abhisek/ctdguide/internal/catalog"
)

const titleWidth = 56

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Browse the change catalog",
}

var topicsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all topics (optionally filtered by section)",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		section, _ := cmd.Flags().GetString("section")
		var topics []catalog.Topic
		if section != "" {
			if _, ok := e.cat.Section(section); !ok {
				return fmt.Errorf("no section %q", section)
			}
			topics = e.cat.TopicsIn(section)
		} else {
			topics = e.cat.Topics()
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-8s  %-6s  %s  %4s  %5s\n",
			"ID", "Sec", runewidth.FillRight("Title", titleWidth), "Subs", "Rules")
		fmt.Fprintln(out, strings.Repeat("─", 8+2+6+2+titleWidth+2+4+2+5))

		for _, t := range topics {
			rules, _ := e.cat.RulesFor(t.ID)
			title := fmt.Sprintf("%d. %s", t.Number, t.DisplayTitle())
			title = runewidth.Truncate(title, titleWidth, "...")
			fmt.Fprintf(out, "%-8s  %-6s  %s  %4d  %5d\n",
				t.ID, t.Section(), runewidth.FillRight(title, titleWidth),
				len(t.SubVariants), len(rules))
		}

		fmt.Fprintf(out, "\n%d topics\n", len(topics))
		return nil
	},
}

var topicsShowCmd = &cobra.Command{
	Use:   "show TOPIC",
	Short: "Show a topic's questions and rules",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		t, err := e.cat.ByID(args[0])
		if err != nil {
			return err
		}
		rules, err := e.cat.RulesFor(t.ID)
		if err != nil {
			return err
		}
		return writeTopic(cmd.OutOrStdout(), e.cat, t, rules)
	},
}

func writeTopic(w io.Writer, cat *catalog.Catalog, t catalog.Topic, rules []catalog.Rule) error {
	fmt.Fprintf(w, "%s  %d. %s\n", t.ID, t.Number, t.Title)
	if t.Heading != "" {
		fmt.Fprintf(w, "    %s\n", t.Heading)
	}
	if sec, ok := cat.Section(t.Section()); ok {
		fmt.Fprintf(w, "section  %s %s\n", sec.ID, sec.Title)
	}
	if t.AutoSelect {
		fmt.Fprintln(w, "auto-selected when its section is changed")
	}

	if len(t.SubVariants) > 0 {
		fmt.Fprintln(w, "\nSub-variants")
		for _, sv := range t.SubVariants {
			note := ""
			if t.IsForced(sv.ID) {
				note = "  [forced]"
			} else if p, ok := t.Partner(sv.ID); ok {
				note = "  [linked " + p + "]"
			}
			fmt.Fprintf(w, "  %-4s %s%s\n", sv.ID, sv.Label, note)
		}
	}

	if len(t.Requirements) > 0 {
		fmt.Fprintln(w, "\nRequirements")
		for _, r := range t.Requirements {
			fmt.Fprintf(w, "  %-4s %s\n", r.ID, r.Label)
		}
	}

	fmt.Fprintf(w, "\nRules (%d)\n", len(rules))
	for i, r := range rules {
		fmt.Fprintf(w, "  #%-3d %-5s %s\n", i+1, r.Tier, rulePredicate(r))
		if r.Documents != "" {
			fmt.Fprintf(w, "       documents: %s\n", strings.ReplaceAll(r.Documents, "\n", "\n                  "))
		}
	}
	return nil
}

func rulePredicate(r catalog.Rule) string {
	if r.Unconditional() {
		return "always"
	}
	var parts []string
	if r.SubVariant != "" {
		parts = append(parts, r.SubVariant+" present")
	}
	if len(r.Satisfied) > 0 {
		parts = append(parts, "satisfied "+strings.Join(r.Satisfied, ","))
	}
	if len(r.Unsatisfied) > 0 {
		parts = append(parts, "unsatisfied "+strings.Join(r.Unsatisfied, ","))
	}
	return strings.Join(parts, " and ")
}

func init() {
	topicsListCmd.Flags().String("section", "", "Filter by section id (e.g. p3)")

	topicsCmd.AddCommand(topicsListCmd)
	topicsCmd.AddCommand(topicsShowCmd)
}
