package contracts

const (
	ManifestFilename = "quarry.json"
	ManifestSchema   = "2.0"
	PackageFormat    = "qpk-1"
)

const (
	TierSource       = "source"
	TierBinaryOnly   = "binary-only"
	TierSourceLegacy = "source-available" // accepted on input, normalized to TierSource
)

var SupportedPlatforms = []string{
	"rp2040",
	"rp2350",
	"esp32",
	"esp32s3",
	"esp32c3",
	"stm32f4",
	"nrf52840",
	"avr",
}

func KnownPlatform(name string) bool {
	for _, platform := range SupportedPlatforms {
		if platform == name {
			return true
		}
	}
	return false
}

type Manifest struct {
	SchemaVersion    string      `json:"schema_version"`
	PackageFormat    string      `json:"package_format"`
	Name             string      `json:"name"`
	Version          string      `json:"version"`
	Description      string      `json:"description"`
	License          string      `json:"license"`
	Platforms        []string    `json:"platforms"`
	DistributionTier string      `json:"distribution_tier"`
	Variants         []Variant   `json:"variants"`
	Provenance       *Provenance `json:"provenance,omitempty"`
	Toolchain        *Toolchain  `json:"toolchain,omitempty"`
	ABI              *ABI        `json:"abi,omitempty"`
}

func (this Manifest) Variant(platform string) (Variant, bool) {
	for _, variant := range this.Variants {
		if variant.Platform == platform {
			return variant, true
		}
	}
	return Variant{}, false
}

type Variant struct {
	Platform string  `json:"platform"`
	Binary   *Binary `json:"binary,omitempty"`
}

type Binary struct {
	Path   string `json:"path"`
	SHA256 string `json:"sha256"`
}

type Provenance struct {
	SourceRepository string `json:"source_repository"`
	SourceRevision   string `json:"source_revision"`
}

type Toolchain struct {
	Compiler   string `json:"compiler"`
	Version    string `json:"version"`
	SDKVersion string `json:"sdk_version"`
}

type ABI struct {
	OptimizationFlags string `json:"optimization_flags"`
	FloatABI          string `json:"float_abi"`
	Exceptions        bool   `json:"exceptions"`
	RTTI              bool   `json:"rtti"`
}
