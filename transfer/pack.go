package transfer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/forgesdk/quarry/contracts"
	"github.com/forgesdk/quarry/core"
)

// Packager turns a validated package directory into a distributable archive
// plus the sidecar document the publish workflow consumes.
type Packager struct {
	manifest        contracts.Manifest
	sourceDirectory string
	outputDirectory string
	packer          contracts.ArchivePacker
}

func NewPackager(manifest contracts.Manifest, sourceDirectory, outputDirectory string, packer contracts.ArchivePacker) *Packager {
	return &Packager{
		manifest:        manifest,
		sourceDirectory: sourceDirectory,
		outputDirectory: outputDirectory,
		packer:          packer,
	}
}

func (this *Packager) Pack() (contracts.PackSidecar, error) {
	sources, err := this.topLevelEntries()
	if err != nil {
		return contracts.PackSidecar{}, err
	}

	archiveName := ArchiveFilename(this.manifest.Name, this.manifest.Version)
	archivePath := filepath.Join(this.outputDirectory, archiveName)
	err = os.MkdirAll(this.outputDirectory, 0755)
	if err != nil {
		return contracts.PackSidecar{}, err
	}
	_ = os.Remove(archivePath) // the packer refuses to overwrite

	log.Info("Building the archive...", "archive", archiveName)
	err = this.packer.Pack(sources, archivePath)
	if err != nil {
		return contracts.PackSidecar{}, err
	}

	sidecar, err := this.describeArtifact(archiveName, archivePath)
	if err != nil {
		return contracts.PackSidecar{}, err
	}
	err = this.writeSidecar(sidecar)
	if err != nil {
		return contracts.PackSidecar{}, err
	}
	return sidecar, nil
}

func (this *Packager) topLevelEntries() (sources []string, err error) {
	entries, err := os.ReadDir(this.sourceDirectory)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		sources = append(sources, filepath.Join(this.sourceDirectory, entry.Name()))
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("source directory %q is empty", this.sourceDirectory)
	}
	return sources, nil
}

func (this *Packager) describeArtifact(archiveName, archivePath string) (contracts.PackSidecar, error) {
	file, err := os.Open(archivePath)
	if err != nil {
		return contracts.PackSidecar{}, err
	}
	defer func() { _ = file.Close() }()
	digest, err := core.HashReader(file)
	if err != nil {
		return contracts.PackSidecar{}, err
	}
	info, err := os.Stat(archivePath)
	if err != nil {
		return contracts.PackSidecar{}, err
	}

	availability := make(map[string]bool)
	for _, variant := range this.manifest.Variants {
		availability[variant.Platform] = variant.Binary != nil
	}
	return contracts.PackSidecar{
		SchemaVersion: contracts.SidecarSchemaVersion,
		Package: contracts.PackageSummary{
			Name:             this.manifest.Name,
			Version:          this.manifest.Version,
			Description:      this.manifest.Description,
			License:          this.manifest.License,
			DistributionTier: this.manifest.DistributionTier,
		},
		Artifact: contracts.Artifact{
			FileName:  archiveName,
			Path:      archivePath,
			SHA256:    digest,
			SizeBytes: info.Size(),
		},
		Platforms: availability,
	}, nil
}

func (this *Packager) writeSidecar(sidecar contracts.PackSidecar) error {
	raw, err := json.MarshalIndent(sidecar, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(this.outputDirectory, SidecarFilename(this.manifest.Name, this.manifest.Version))
	log.Info("Writing the sidecar...", "path", path)
	return os.WriteFile(path, append(raw, '\n'), 0644)
}

func ArchiveFilename(name, version string) string {
	return fmt.Sprintf("%s-%s.qpk.tar.gz", name, version)
}

func SidecarFilename(name, version string) string {
	return fmt.Sprintf("%s-%s.qpk.json", name, version)
}
