package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Deepakpottavatri06/CourseGen/internal/config"
	"github.com/Deepakpottavatri06/CourseGen/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "coursegen",
	Short: "Generate and read courses from the terminal",
	Long: "CourseGen: request a course on any topic from the generation service, then read it " +
		"section by section in the terminal.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.LoadDotEnv()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides COURSEGEN_DB env var)")
	rootCmd.PersistentFlags().String("api-url", "", "Backend base URL (overrides COURSEGEN_API_URL env var)")
	rootCmd.Flags().Bool("no-splash", false, "Skip the welcome animation")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(coursesCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(requestsCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then COURSEGEN_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// resolveConfig reads the environment and applies --api-url on top.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.ConfigFromEnv()
	if err != nil {
		return cfg, err
	}
	if u, _ := cmd.Flags().GetString("api-url"); u != "" {
		cfg.APIURL = u
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
