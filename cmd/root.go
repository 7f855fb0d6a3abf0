package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/academy/internal/grading"
	"github.com/abhisek/academy/internal/logging"
	"github.com/abhisek/academy/internal/rules"
	"github.com/abhisek/academy/internal/store"
)

// logger is replaced in PersistentPreRunE for non-interactive commands.
// The TUI keeps the no-op logger because the alt screen owns the terminal.
var logger = logging.Nop()

var rootCmd = &cobra.Command{
	Use:   "academy",
	Short: "Learn programming with AI, one practice answer at a time",
	Long: "Academy is a terminal tutorial for AI-assisted programming. Each lesson ends with a\n" +
		"free-text exercise that is graded instantly by keyword rules.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd == rootCmd {
			return nil
		}
		debug, _ := cmd.Flags().GetBool("debug")
		l, err := logging.New(debug)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides ACADEMY_DB env var)")
	rootCmd.PersistentFlags().String("rules", "", "Path to a YAML rule document (overrides ACADEMY_RULES env var)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.Flags().Bool("skip-intro", false, "Start on the home screen")

	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(lessonsCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then ACADEMY_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// resolveRulesPath returns the rule document path from --rules, then
// ACADEMY_RULES. Empty means the embedded rules.
func resolveRulesPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("rules"); p != "" {
		return p
	}
	return os.Getenv("ACADEMY_RULES")
}

// loadEngine builds the grading engine from the configured rule document.
func loadEngine(cmd *cobra.Command) (*grading.Engine, error) {
	engine, err := rules.NewLoader(logger).Load(resolveRulesPath(cmd))
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}
	return engine, nil
}

// openStore opens the progress database.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath, store.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	logger.Debug("store ready", zap.String("path", dbPath))
	return st, nil
}
