package contracts

// ReleaseEntry is one published version of one package, normalized from
// whichever index shape it was stored in. Raw retains the original node so
// artifact locations can be probed in all their historical forms.
type ReleaseEntry struct {
	Version    string
	Prerelease bool
	Raw        map[string]any
}

type ResolvedRelease struct {
	PackageName string `json:"package_name"`
	Version     string `json:"version"`
	Platform    string `json:"platform"`
	DownloadURL string `json:"download_url"`
	Checksum    string `json:"checksum,omitempty"`
}

type Artifact struct {
	FileName  string `json:"file_name"`
	Path      string `json:"path,omitempty"`
	SHA256    string `json:"sha256"`
	SizeBytes int64  `json:"size_bytes"`
}

const SidecarSchemaVersion = "1"

// PackSidecar is the hand-off document emitted next to a packed archive and
// consumed by the publish workflow.
type PackSidecar struct {
	SchemaVersion string          `json:"schema_version"`
	Package       PackageSummary  `json:"package"`
	Artifact      Artifact        `json:"artifact"`
	Platforms     map[string]bool `json:"platforms"` // platform -> prebuilt binary included
}

type PackageSummary struct {
	Name             string `json:"name"`
	Version          string `json:"version"`
	Description      string `json:"description"`
	License          string `json:"license"`
	DistributionTier string `json:"distribution_tier"`
}
