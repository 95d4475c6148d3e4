package transfer

import (
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/forgesdk/quarry/contracts"
	"github.com/forgesdk/quarry/core"
)

// Installer drives the install path: resolve, fetch-and-verify, extract into
// a staging directory, then move into the library directory. Staging lives
// under the target directory so the final move never crosses filesystems, and
// it is removed on every exit path.
type Installer struct {
	resolver  *core.VersionResolver
	validator *core.ManifestValidator
	client    *DownloadClient
	extractor contracts.ArchiveExtractor
}

func NewInstaller(resolver *core.VersionResolver, client *DownloadClient, extractor contracts.ArchiveExtractor) *Installer {
	return &Installer{
		resolver:  resolver,
		validator: core.NewManifestValidator(),
		client:    client,
		extractor: extractor,
	}
}

func (this *Installer) Install(packageName string, document map[string]any, criteria core.Criteria, targetDirectory string) (contracts.ResolvedRelease, error) {
	resolved, err := this.resolver.Resolve(packageName, document, criteria)
	if err != nil {
		return contracts.ResolvedRelease{}, err
	}
	// The index carries no full manifest; the schema-less reduced form is
	// reconstructed from the resolved release and validated before any
	// bytes move.
	manifest, err := this.validator.ValidateInstallMetadata(map[string]any{
		"name":    resolved.PackageName,
		"version": resolved.Version,
	})
	if err != nil {
		return contracts.ResolvedRelease{}, err
	}
	log.Info("Resolved release", "package", manifest.Name, "version", manifest.Version, "platform", resolved.Platform)

	err = os.MkdirAll(targetDirectory, 0755)
	if err != nil {
		return contracts.ResolvedRelease{}, err
	}
	staging, err := os.MkdirTemp(targetDirectory, ".quarry-install-")
	if err != nil {
		return contracts.ResolvedRelease{}, err
	}
	defer func() { _ = os.RemoveAll(staging) }()

	archivePath := filepath.Join(staging, remoteFileName(resolved.DownloadURL))
	log.Info("Downloading the archive...", "url", resolved.DownloadURL)
	err = this.client.FetchAndVerify(resolved.DownloadURL, resolved.Checksum, archivePath)
	if err != nil {
		return contracts.ResolvedRelease{}, err
	}

	extracted := filepath.Join(staging, "extracted")
	err = this.extractor.Extract(archivePath, extracted)
	if err != nil {
		return contracts.ResolvedRelease{}, err
	}

	// Any previous install is set aside into staging, not deleted, so a
	// failed swap can put it back.
	destination := filepath.Join(targetDirectory, manifest.Name)
	previous := filepath.Join(staging, "previous")
	replaced := false
	if _, statErr := os.Stat(destination); statErr == nil {
		err = os.Rename(destination, previous)
		if err != nil {
			return contracts.ResolvedRelease{}, err
		}
		replaced = true
	}
	err = os.Rename(extracted, destination)
	if err != nil {
		if replaced {
			_ = os.Rename(previous, destination)
		}
		return contracts.ResolvedRelease{}, err
	}
	log.Info("Installed", "path", destination)
	return resolved, nil
}

func remoteFileName(address string) string {
	parsed, err := url.Parse(address)
	if err != nil {
		return "package.qpk.tar.gz"
	}
	base := path.Base(parsed.Path)
	if base == "." || base == "/" || path.Ext(base) == "" {
		return "package.qpk.tar.gz"
	}
	return base
}
