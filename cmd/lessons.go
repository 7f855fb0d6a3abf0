package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/abhisek/academy/internal/lessons"
)

var lessonsCmd = &cobra.Command{
	Use:   "lessons",
	Short: "Browse the lesson catalog",
}

var lessonsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all lessons",
	RunE: func(cmd *cobra.Command, args []string) error {
		all := lessons.All()
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "%3s  %-44s  %-12s  %8s  %s\n", "ID", "Title", "Difficulty", "Duration", "Rule set")
		fmt.Fprintln(out, strings.Repeat("─", 96))
		for _, l := range all {
			fmt.Fprintf(out, "%3d  %-44s  %-12s  %8s  %s\n",
				l.ID, l.Title, l.Difficulty, l.Duration, l.Exercise.RuleSetID)
		}

		fmt.Fprintf(out, "\n%d lessons\n", len(all))
		return nil
	},
}

var lessonsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a lesson and its practice exercise",
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

		md := lessons.Markdown(l)
		plain, _ := cmd.Flags().GetBool("plain")
		if plain {
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		}

		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
		if err != nil {
			return fmt.Errorf("create renderer: %w", err)
		}
		rendered, err := renderer.Render(md)
		if err != nil {
			return fmt.Errorf("render lesson: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), rendered)
		return nil
	},
}

func init() {
	lessonsShowCmd.Flags().Bool("plain", false, "Print raw Markdown instead of rendering it")

	lessonsCmd.AddCommand(lessonsListCmd)
	lessonsCmd.AddCommand(lessonsShowCmd)
}
