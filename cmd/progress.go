package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/academy/internal/lessons"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show completed lessons",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		completions, err := st.ProgressRepo().Completions(cmd.Context())
		if err != nil {
			return err
		}

		done := make(map[int]string, len(completions))
		for _, c := range completions {
			done[c.LessonID] = c.CompletedAt.Local().Format("2006-01-02 15:04")
		}

		out := cmd.OutOrStdout()
		n := 0
		for _, l := range lessons.All() {
			if at, ok := done[l.ID]; ok {
				n++
				fmt.Fprintf(out, "  ✓ %d. %-44s  %s\n", l.ID, l.Title, at)
			} else {
				fmt.Fprintf(out, "  ○ %d. %s\n", l.ID, l.Title)
			}
		}

		p := lessons.Summarize(n, lessons.Count())
		fmt.Fprintf(out, "\n%d of %d lessons completed (%d%%)\n", p.Completed, p.Total, p.Percent)
		return nil
	},
}

var progressCompleteCmd = &cobra.Command{
	Use:   "complete <lesson-id>",
	Short: "Mark a lesson as complete",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid lesson ID %q: %w", args[0], err)
		}
		l, err := lessons.Get(id)
		if err != nil {
			return err
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		added, err := st.ProgressRepo().MarkComplete(cmd.Context(), l.ID)
		if err != nil {
			return err
		}
		if added {
			fmt.Fprintf(cmd.OutOrStdout(), "Marked lesson %d (%s) complete.\n", l.ID, l.Title)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Lesson %d is already complete.\n", l.ID)
		}
		return nil
	},
}

var progressResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget all completed lessons",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("refusing to reset progress without --yes")
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.ProgressRepo().Reset(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Progress reset.")
		return nil
	},
}

func init() {
	progressResetCmd.Flags().Bool("yes", false, "Confirm the reset")

	progressCmd.AddCommand(progressCompleteCmd)
	progressCmd.AddCommand(progressResetCmd)
}
