package transfer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/forgesdk/quarry/contracts"
	"github.com/forgesdk/quarry/core"
)

// Submitter turns a pack sidecar into a submission bundle: the release
// payload, a resolution record, and (when a local index copy is supplied) a
// preview of the mutated index plus a textual patch. Nothing here writes to a
// shared or remote index.
type Submitter struct {
	mutator *core.IndexMutator
}

func NewSubmitter(mutator *core.IndexMutator) *Submitter {
	return &Submitter{mutator: mutator}
}

type SubmissionRequest struct {
	Sidecar         contracts.PackSidecar
	RemotePrefix    string
	IndexDocument   map[string]any // optional local copy of the index
	OutputDirectory string
}

func (this *Submitter) Submit(request SubmissionRequest) error {
	payload := releasePayload(request.Sidecar, request.RemotePrefix)

	// The mutation runs before anything lands on disk so a rejected
	// submission leaves the output directory untouched.
	var preview map[string]any
	if request.IndexDocument != nil {
		summary := request.Sidecar.Package
		updated, err := this.mutator.ApplyRelease(request.IndexDocument, summary.Name, summary.Version, payload)
		if err != nil {
			return err
		}
		preview = updated
	}

	err := os.MkdirAll(request.OutputDirectory, 0755)
	if err != nil {
		return err
	}

	log.Info("Writing the release payload...")
	err = this.writeJSON(request.OutputDirectory, "release.json", payload)
	if err != nil {
		return err
	}
	err = this.writeJSON(request.OutputDirectory, "resolution.json", resolutionRecord(request.Sidecar, request.RemotePrefix))
	if err != nil {
		return err
	}

	if preview != nil {
		err = this.writePreview(request, preview)
		if err != nil {
			return err
		}
	}
	return this.writeInstructions(request)
}

func (this *Submitter) writePreview(request SubmissionRequest, preview map[string]any) error {
	log.Info("Writing the mutated index preview...")
	err := this.writeJSON(request.OutputDirectory, "index_preview.json", preview)
	if err != nil {
		return err
	}
	patch := diffDocuments(request.IndexDocument, preview)
	path := filepath.Join(request.OutputDirectory, "index.patch")
	return os.WriteFile(path, []byte(patch), 0644)
}

func (this *Submitter) writeInstructions(request SubmissionRequest) error {
	summary := request.Sidecar.Package
	var builder strings.Builder
	fmt.Fprintf(&builder, "# Submitting %s %s\n\n", summary.Name, summary.Version)
	fmt.Fprintf(&builder, "1. Upload %s to %s\n", request.Sidecar.Artifact.FileName, artifactURL(request.Sidecar, request.RemotePrefix))
	fmt.Fprintf(&builder, "2. Open a release request against the package index using release.json\n")
	if request.IndexDocument != nil {
		fmt.Fprintf(&builder, "3. Compare index_preview.json (or apply index.patch) to confirm the change is purely additive\n")
	}
	fmt.Fprintf(&builder, "\nPublished versions are immutable; a conflicting version will be rejected.\n")
	path := filepath.Join(request.OutputDirectory, "NEXT_STEPS.md")
	return os.WriteFile(path, []byte(builder.String()), 0644)
}

func (this *Submitter) writeJSON(directory, name string, document any) error {
	raw, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(directory, name), append(raw, '\n'), 0644)
}

func releasePayload(sidecar contracts.PackSidecar, remotePrefix string) map[string]any {
	address := artifactURL(sidecar, remotePrefix)
	artifacts := make(map[string]any)
	for platform := range sidecar.Platforms {
		artifacts[platform] = map[string]any{
			"url":    address,
			"sha256": sidecar.Artifact.SHA256,
		}
	}
	return map[string]any{
		"version":   sidecar.Package.Version,
		"artifacts": artifacts,
	}
}

func resolutionRecord(sidecar contracts.PackSidecar, remotePrefix string) (records []contracts.ResolvedRelease) {
	address := artifactURL(sidecar, remotePrefix)
	platforms := make([]string, 0, len(sidecar.Platforms))
	for platform := range sidecar.Platforms {
		platforms = append(platforms, platform)
	}
	sort.Strings(platforms)
	for _, platform := range platforms {
		records = append(records, contracts.ResolvedRelease{
			PackageName: sidecar.Package.Name,
			Version:     sidecar.Package.Version,
			Platform:    platform,
			DownloadURL: address,
			Checksum:    core.ChecksumAlgorithm + ":" + sidecar.Artifact.SHA256,
		})
	}
	return records
}

func artifactURL(sidecar contracts.PackSidecar, remotePrefix string) string {
	return strings.TrimSuffix(remotePrefix, "/") + "/" +
		sidecar.Package.Name + "/" + sidecar.Package.Version + "/" + sidecar.Artifact.FileName
}
