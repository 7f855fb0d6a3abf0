package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/academy/internal/grading"
)

// maxStdinAnswer bounds how much of stdin is read as an answer.
const maxStdinAnswer = 64 << 10

var errNoAnswer = errors.New("no answer given: pass it as arguments or pipe it on stdin")

var evalCmd = &cobra.Command{
	Use:   "eval <rule-set-id> [answer...]",
	Short: "Grade an answer against a rule set",
	Long: "Grade a free-text answer. The answer is taken from the remaining arguments, or\n" +
		"from stdin when no answer arguments are given and stdin is not a terminal.",
	Example: `  academy eval html-div '<div>Hello</div>'
  echo "store it in an environment variable" | academy eval api-key-storage --explain`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := loadEngine(cmd)
		if err != nil {
			return err
		}

		answer, err := readAnswer(cmd, args[1:])
		if err != nil {
			return err
		}

		v, err := engine.Evaluate(args[0], answer)
		if err != nil {
			return fmt.Errorf("%w (known: %s)", err, strings.Join(engine.RuleSetIDs(), ", "))
		}
		logger.Debug("answer graded",
			zap.String("rule_set", v.RuleSetID),
			zap.String("tier", v.TierID),
			zap.Int("score", v.Score))

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(v)
		}

		explain, _ := cmd.Flags().GetBool("explain")
		rs, _ := engine.RuleSet(v.RuleSetID)
		printVerdict(cmd.OutOrStdout(), v, rs, explain)
		return nil
	},
}

func init() {
	evalCmd.Flags().Bool("explain", false, "List satisfied and unsatisfied criteria")
	evalCmd.Flags().Bool("json", false, "Print the verdict as JSON")
	evalCmd.MarkFlagsMutuallyExclusive("explain", "json")
}

// readAnswer joins answer arguments, or reads stdin when none are given and
// stdin is not an interactive terminal.
func readAnswer(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok {
		if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
			return "", errNoAnswer
		}
	}

	data, err := io.ReadAll(io.LimitReader(in, maxStdinAnswer))
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

func printVerdict(w io.Writer, v grading.Verdict, rs *grading.RuleSet, explain bool) {
	fmt.Fprintf(w, "%s %s (%d/%d)\n", v.Level.Icon(), v.Level.Label(), v.Score, v.MaxScore)
	fmt.Fprintln(w, v.Message)

	if !explain || rs == nil {
		return
	}

	satisfied := make(map[string]bool, len(v.Satisfied))
	for _, id := range v.Satisfied {
		satisfied[id] = true
	}
	fmt.Fprintf(w, "\nTier: %s\n\n", v.TierID)
	for _, c := range rs.Criteria() {
		mark := "✗"
		if satisfied[c.ID] {
			mark = "✓"
		}
		fmt.Fprintf(w, "  %s %-20s  %s\n", mark, c.ID, c.Description)
		if !satisfied[c.ID] && c.Hint != "" {
			fmt.Fprintf(w, "      hint: %s\n", c.Hint)
		}
	}
}
