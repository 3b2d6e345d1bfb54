package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/ctdguide/internal/classify"
	"github.com/abhisek/ctdguide/internal/report"
	"github.com/abhisek/ctdguide/internal/selection"
	"github.com/abhisek/ctdguide/internal/wizard"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify one topic from answers given on the command line",
	Example: `  ctdguide classify --topic s1_1 --set r1=satisfied
  ctdguide classify --topic p3_16 --set 16a=present --set r2=충족 --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		topicID, _ := cmd.Flags().GetString("topic")
		sets, _ := cmd.Flags().GetStringArray("set")
		formatName, _ := cmd.Flags().GetString("format")
		explain, _ := cmd.Flags().GetBool("explain")

		format, err := report.ParseFormat(formatName)
		if err != nil {
			return err
		}
		topic, err := e.cat.ByID(topicID)
		if err != nil {
			return err
		}

		store := selection.New(topic)
		if err := store.Apply(sets); err != nil {
			return fmt.Errorf("apply answers: %w", err)
		}
		if missing := store.Missing(); len(missing) > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: unanswered %s; rules that need them will not match\n",
				strings.Join(missing, ", "))
		}

		c := classify.WithLogging(classify.New(e.cat), e.logger)
		outcomes, err := c.Classify(topic.ID, store)
		if err != nil {
			return err
		}

		rep := report.New(e.cat, []wizard.TopicResult{{
			Topic:    topic,
			Outcomes: outcomes,
			Answers:  store.Snapshot(),
		}})
		if err := report.Write(cmd.OutOrStdout(), format, rep); err != nil {
			return err
		}

		if explain {
			tr, err := c.Explain(topic.ID, store)
			if err != nil {
				return err
			}
			// Keep stdout parseable when it carries JSON.
			w := cmd.OutOrStdout()
			if format == report.FormatJSON {
				w = cmd.ErrOrStderr()
			} else {
				fmt.Fprintln(w)
			}
			return report.WriteTrace(w, tr)
		}
		return nil
	},
}

func init() {
	classifyCmd.Flags().String("topic", "", "Topic id (e.g. p3_16)")
	classifyCmd.Flags().StringArray("set", nil, "Answer as id=value; value is present, absent, satisfied or unsatisfied (repeatable)")
	classifyCmd.Flags().String("format", "text", "Output format: text, markdown or json")
	classifyCmd.Flags().Bool("explain", false, "Print how every rule was evaluated")
	_ = classifyCmd.MarkFlagRequired("topic")
}

