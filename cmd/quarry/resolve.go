package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/forgesdk/quarry/core"
	"github.com/forgesdk/quarry/shell"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <package>",
	Short: "Resolve a package to one concrete, platform-specific artifact",
	Args:  cobra.ExactArgs(1),
	RunE:  runResolve,
}

func runResolve(cmd *cobra.Command, args []string) error {
	config := loadConfig(shell.NewEnvironment())
	if config.Platform == "" {
		return errors.New("a target platform is required (--platform or QUARRY_PLATFORM)")
	}

	loader := core.NewIndexLoader(shell.NewHTTPFetcher(), config.IndexCandidates)
	document, _, err := loader.Load()
	if err != nil {
		return err
	}

	resolved, err := core.NewVersionResolver().Resolve(args[0], document, core.Criteria{
		Version:           config.Version,
		IncludePrerelease: config.IncludePrerelease,
		Platform:          config.Platform,
	})
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(resolved)
}

func init() {
	addSelectionFlags(resolveCmd)
	rootCmd.AddCommand(resolveCmd)
}

func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagPlatform, "platform", "", fmt.Sprintf("Target platform, one of: %s.", supportedPlatformList()))
	cmd.Flags().StringVar(&flagVersion, "version", "", "Explicit version to select (default: latest stable).")
	cmd.Flags().BoolVar(&flagIncludePrerelease, "include-prerelease", false, "Allow prerelease versions when selecting the latest.")
}
