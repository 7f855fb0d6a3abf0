package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/academy/internal/lessons"
	"github.com/abhisek/academy/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect and validate grading rules",
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the loaded rule sets",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := loadEngine(cmd)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-22s  %-48s  %8s  %5s\n", "ID", "Title", "Criteria", "Tiers")
		fmt.Fprintln(out, strings.Repeat("─", 89))

		for _, rs := range engine.RuleSets() {
			title := rs.Title()
			if len(title) > 48 {
				title = title[:45] + "..."
			}
			fmt.Fprintf(out, "%-22s  %-48s  %8d  %5d\n", rs.ID(), title, rs.MaxScore(), len(rs.Tiers()))
		}

		fmt.Fprintf(out, "\n%d rule sets\n", len(engine.RuleSetIDs()))
		return nil
	},
}

var rulesValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a rule document (defaults to the active rules)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source := resolveRulesPath(cmd)
		if len(args) == 1 {
			source = args[0]
		}

		data := rules.Builtin()
		if source != "" {
			var err error
			data, err = os.ReadFile(source)
			if err != nil {
				return fmt.Errorf("read rule document: %w", err)
			}
		} else {
			source = "builtin"
		}

		doc, err := rules.Parse(data)
		if err != nil {
			return fmt.Errorf("%s: %w", source, err)
		}
		engine, err := doc.Build()
		if err != nil {
			return fmt.Errorf("%s: %w", source, err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: ok (version %s, %d rule sets)\n", source, doc.Version, len(engine.RuleSetIDs()))
		if err := lessons.Validate(engine); err != nil {
			fmt.Fprintf(out, "warning: %v\n", err)
		}
		return nil
	},
}

func init() {
	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesValidateCmd)
}
