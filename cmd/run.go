package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Deepakpottavatri06/CourseGen/internal/app"
)

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := openEnvFor(cmd, true)
	if err != nil {
		return err
	}
	defer e.Close()

	noSplash, _ := cmd.Flags().GetBool("no-splash")
	e.log.Info("starting tui", "authenticated", e.session.Authenticated())

	return app.Run(app.Options{
		Session:    e.session,
		API:        e.api,
		Log:        e.log,
		SkipSplash: noSplash,
	})
}
