package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/academy/internal/app"
	"github.com/abhisek/academy/internal/lessons"
)

// runApp loads the rules, opens the store, and launches the TUI. A store
// failure does not stop the app; lessons still work without saved progress.
func runApp(cmd *cobra.Command) error {
	engine, err := loadEngine(cmd)
	if err != nil {
		return err
	}
	if err := lessons.Validate(engine); err != nil {
		return fmt.Errorf("rules do not cover the lesson catalog: %w", err)
	}

	skipIntro, _ := cmd.Flags().GetBool("skip-intro")
	opts := app.Options{
		Engine:      engine,
		SkipWelcome: skipIntro,
	}

	st, err := openStore(cmd)
	if err != nil {
		opts.StoreErr = err.Error()
	} else {
		defer st.Close()
		opts.Progress = st.ProgressRepo()
	}

	return app.Run(opts)
}
