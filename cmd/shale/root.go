package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/shale"
	"github.com/spf13/cobra"
)

var (
	verbose     bool
	fixturesDir string
	repoID      string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "shale",
	Short: "A client-side runtime for CMIS-style content repositories",
	Long: `Shale connects to a content repository, resolves its type system and
exposes its objects through a typed, cached session. The CLI runs against
an in-memory repository loaded from YAML fixture files.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&fixturesDir, "fixtures", "./fixtures", "Directory of YAML fixture files")
	rootCmd.PersistentFlags().StringVar(&repoID, "repo", "default", "Repository id to connect to")
}

// connect builds a session from the persistent flags.
func connect() (*shale.Session, error) {
	return shale.Connect(repoID,
		shale.WithFixtures(fixturesDir),
		shale.WithLogger(slog.Default()),
	)
}
