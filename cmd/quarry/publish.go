package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/forgesdk/quarry/contracts"
	"github.com/forgesdk/quarry/core"
	"github.com/forgesdk/quarry/transfer"
)

var (
	flagPublishIndexFile string
	flagPublishOutput    string
	flagRemotePrefix     string
)

var publishCmd = &cobra.Command{
	Use:   "publish <sidecar>",
	Short: "Generate a submission bundle from a pack sidecar",
	Long: `Publish consumes the sidecar emitted by 'quarry pack' and writes a
submission bundle: the release payload, a resolution record, and (when a
local index copy is supplied) a preview of the mutated index plus a textual
patch. It never writes to a shared or remote index.`,
	Args: cobra.ExactArgs(1),
	RunE: runPublish,
}

func runPublish(cmd *cobra.Command, args []string) error {
	sidecar, err := readSidecar(args[0])
	if err != nil {
		return err
	}

	request := transfer.SubmissionRequest{
		Sidecar:         sidecar,
		RemotePrefix:    flagRemotePrefix,
		OutputDirectory: flagPublishOutput,
	}
	if flagPublishIndexFile != "" {
		request.IndexDocument, err = readIndexDocument(flagPublishIndexFile)
		if err != nil {
			return err
		}
	}

	err = transfer.NewSubmitter(core.NewIndexMutator()).Submit(request)
	if err != nil {
		return err
	}
	log.Info("Submission bundle ready", "directory", flagPublishOutput)
	return nil
}

func readSidecar(path string) (sidecar contracts.PackSidecar, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return contracts.PackSidecar{}, err
	}
	err = json.Unmarshal(raw, &sidecar)
	if err != nil {
		return contracts.PackSidecar{}, &contracts.FormatError{Detail: "sidecar is not valid JSON: " + err.Error()}
	}
	if sidecar.Package.Name == "" || sidecar.Package.Version == "" {
		return contracts.PackSidecar{}, &contracts.FormatError{Detail: fmt.Sprintf("sidecar %q lacks a package name or version", path)}
	}
	return sidecar, nil
}

func readIndexDocument(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var document map[string]any
	err = json.Unmarshal(raw, &document)
	if err != nil {
		return nil, &contracts.FormatError{Detail: "index is not a JSON object: " + err.Error()}
	}
	return document, nil
}

func init() {
	publishCmd.Flags().StringVar(&flagPublishIndexFile, "index-file", "", "Local copy of the index to preview the mutation against.")
	publishCmd.Flags().StringVar(&flagPublishOutput, "out", "submission", "Directory the submission bundle is written to.")
	publishCmd.Flags().StringVar(&flagRemotePrefix, "remote-prefix", "https://packages.forgesdk.io/artifacts", "Base URL artifacts will be hosted under.")
	rootCmd.AddCommand(publishCmd)
}
