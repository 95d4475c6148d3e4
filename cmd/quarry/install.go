package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/forgesdk/quarry/contracts"
	"github.com/forgesdk/quarry/core"
	"github.com/forgesdk/quarry/shell"
	"github.com/forgesdk/quarry/transfer"
)

var installCmd = &cobra.Command{
	Use:   "install <package>",
	Short: "Download, verify, and install a package into the library directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runInstall,
}

func runInstall(cmd *cobra.Command, args []string) error {
	config := loadConfig(shell.NewEnvironment())
	if config.Platform == "" {
		return errors.New("a target platform is required (--platform or QUARRY_PLATFORM)")
	}

	loader := core.NewIndexLoader(shell.NewHTTPFetcher(), config.IndexCandidates)
	document, _, err := loader.Load()
	if err != nil {
		return err
	}

	installer := transfer.NewInstaller(
		core.NewVersionResolver(),
		transfer.NewDownloadClient(shell.NewHTTPFetcher()),
		shell.NewArchiver(),
	)
	_, err = installer.Install(args[0], document, core.Criteria{
		Version:           config.Version,
		IncludePrerelease: config.IncludePrerelease,
		Platform:          config.Platform,
	}, config.LibDirectory)
	return err
}

func supportedPlatformList() string {
	return strings.Join(contracts.SupportedPlatforms, ", ")
}

func init() {
	addSelectionFlags(installCmd)
	installCmd.Flags().StringVar(&flagLibDirectory, "lib-dir", "lib", "Directory packages are installed into.")
	rootCmd.AddCommand(installCmd)
}
