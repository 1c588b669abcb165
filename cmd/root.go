package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"egetutor/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "egetutor",
	Short: "Adaptive trainer for the EGE basic math exam",
	Long: "Egetutor generates themed practice problems for the 21 task categories\n" +
		"of the basic-level EGE math exam, grades answers and adapts the\n" +
		"difficulty per user and per task category.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("data", "", "Path to data directory (overrides EGETUTOR_DATA env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(versionCmd)
}

// openStore resolves the data directory using the --data flag (highest
// priority), then EGETUTOR_DATA, then the default XDG path.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	if d, _ := cmd.Flags().GetString("data"); d != "" {
		return store.Open(d)
	}
	dir, err := store.DefaultDataDir()
	if err != nil {
		return nil, err
	}
	return store.Open(dir)
}

// newLogger builds the CLI logger: quiet warnings-only output by default,
// verbose development output when EGETUTOR_DEBUG is set.
func newLogger() *zap.Logger {
	if os.Getenv("EGETUTOR_DEBUG") != "" {
		log, err := zap.NewDevelopment()
		if err != nil {
			return zap.NewNop()
		}
		return log
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}
