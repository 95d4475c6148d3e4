package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/forgesdk/quarry/contracts"
	"github.com/forgesdk/quarry/core"
	"github.com/forgesdk/quarry/shell"
)

var checkCmd = &cobra.Command{
	Use:   "check <directory>",
	Short: "Validate a package directory's manifest and tier contents",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	manifest, err := checkPackageDirectory(args[0])
	if err != nil {
		return err
	}
	log.Info("Package is valid", "name", manifest.Name, "version", manifest.Version, "tier", manifest.DistributionTier)
	return nil
}

// checkPackageDirectory validates the manifest and the tree behind it; the
// pack command reuses it so nothing unverified is ever archived.
func checkPackageDirectory(directory string) (contracts.Manifest, error) {
	document, err := readManifestDocument(directory)
	if err != nil {
		return contracts.Manifest{}, err
	}

	manifest, warnings, err := core.NewManifestValidator().Validate(document)
	if err != nil {
		return contracts.Manifest{}, err
	}
	reportWarnings(warnings)

	warnings, err = core.NewTierContentChecker(shell.NewDiskFileSystem(directory)).Check(manifest)
	if err != nil {
		return contracts.Manifest{}, err
	}
	reportWarnings(warnings)
	return manifest, nil
}

func readManifestDocument(directory string) (map[string]any, error) {
	raw, err := shell.NewDiskFileSystem(directory).ReadFile(contracts.ManifestFilename)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", filepath.Join(directory, contracts.ManifestFilename), err)
	}
	var document map[string]any
	err = json.Unmarshal(raw, &document)
	if err != nil {
		return nil, &contracts.FormatError{Detail: "manifest is not a JSON object: " + err.Error()}
	}
	return document, nil
}

func reportWarnings(warnings []string) {
	for _, warning := range warnings {
		log.Warn(warning)
	}
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
