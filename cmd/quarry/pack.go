package main

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/forgesdk/quarry/shell"
	"github.com/forgesdk/quarry/transfer"
)

var flagPackOutput string

var packCmd = &cobra.Command{
	Use:   "pack <directory>",
	Short: "Package a validated directory into a distributable archive",
	Args:  cobra.ExactArgs(1),
	RunE:  runPack,
}

func runPack(cmd *cobra.Command, args []string) error {
	manifest, err := checkPackageDirectory(args[0])
	if err != nil {
		return err
	}

	packager := transfer.NewPackager(manifest, args[0], flagPackOutput, shell.NewArchiver())
	sidecar, err := packager.Pack()
	if err != nil {
		return err
	}
	log.Info("Packed",
		"artifact", sidecar.Artifact.FileName,
		"sha256", sidecar.Artifact.SHA256,
		"size", sidecar.Artifact.SizeBytes)
	return nil
}

func init() {
	packCmd.Flags().StringVar(&flagPackOutput, "out", "dist", "Directory the archive and sidecar are written to.")
	rootCmd.AddCommand(packCmd)
}
