package main

import (
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/forgesdk/quarry/shell"
)

var (
	flagIndexOverride     string
	flagPlatform          string
	flagVersion           string
	flagIncludePrerelease bool
	flagLibDirectory      string
	flagVerbose           bool
)

var rootCmd = &cobra.Command{
	Use:   "quarry",
	Short: "Package tooling for the Forge embedded SDK",
	Long: `Quarry packages, publishes, resolves, and installs third-party
libraries for the Forge embedded SDK. Libraries are distributed as
checksum-verified archives described by a manifest; a central JSON index maps
package names to versioned, per-platform release artifacts.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		configureLogging(loadConfig(shell.NewEnvironment()))
	},
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		log.Error(err.Error())
	}
	return err
}

func configureLogging(config Config) {
	if config.Verbose {
		log.SetLevel(log.DebugLevel)
	}
	if config.ReducedMotion {
		log.SetColorProfile(termenv.Ascii)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagIndexOverride, "index", "", "Index URL (overrides QUARRY_INDEX_URLS / QUARRY_INDEX_URL).")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging.")
}
