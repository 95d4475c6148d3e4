package core

import (
	"fmt"
	"strings"

	"github.com/forgesdk/quarry/contracts"
)

// ManifestValidator turns an untyped parsed manifest document into a
// normalized, tier-complete contracts.Manifest. Every violation is collected
// before failing; warnings are advisory and never block.
type ManifestValidator struct {
	violations []string
	warnings   []string
}

func NewManifestValidator() *ManifestValidator {
	return &ManifestValidator{}
}

func (this *ManifestValidator) Validate(document map[string]any) (contracts.Manifest, []string, error) {
	this.violations = nil
	this.warnings = nil

	manifest := contracts.Manifest{
		SchemaVersion: this.requiredString(document, "schema_version"),
		PackageFormat: this.requiredString(document, "package_format"),
		Name:          this.requiredString(document, "name"),
		Version:       this.requiredString(document, "version"),
		Description:   this.requiredString(document, "description"),
		License:       this.requiredString(document, "license"),
	}
	if manifest.SchemaVersion != "" && manifest.SchemaVersion != contracts.ManifestSchema {
		this.violate("schema_version must be %q, got %q", contracts.ManifestSchema, manifest.SchemaVersion)
	}
	if manifest.PackageFormat != "" && manifest.PackageFormat != contracts.PackageFormat {
		this.violate("package_format must be %q, got %q", contracts.PackageFormat, manifest.PackageFormat)
	}
	manifest.DistributionTier = this.normalizeTier(document)
	manifest.Platforms = this.normalizePlatforms(document)
	manifest.Variants = this.normalizeVariants(document, manifest.Platforms)
	manifest.Provenance = this.parseProvenance(document)
	manifest.Toolchain = this.parseToolchain(document)
	manifest.ABI = this.parseABI(document)

	// Tier completeness comes last so its messages can reference
	// already-resolved variant state.
	this.checkTierCompleteness(manifest)

	if len(this.violations) > 0 {
		return contracts.Manifest{}, nil, contracts.NewValidationError(this.violations)
	}
	return manifest, this.warnings, nil
}

// ValidateInstallMetadata accepts the legacy schema-less form used on the
// install path, where the manifest is reconstructed from index metadata and
// only the identifying fields are mandatory.
func (this *ManifestValidator) ValidateInstallMetadata(document map[string]any) (contracts.Manifest, error) {
	this.violations = nil
	this.warnings = nil
	manifest := contracts.Manifest{
		Name:    this.requiredString(document, "name"),
		Version: this.requiredString(document, "version"),
	}
	if description, ok := stringField(document, "description"); ok {
		manifest.Description = description
	}
	if license, ok := stringField(document, "license"); ok {
		manifest.License = license
	}
	if len(this.violations) > 0 {
		return contracts.Manifest{}, contracts.NewValidationError(this.violations)
	}
	return manifest, nil
}

func (this *ManifestValidator) normalizeTier(document map[string]any) string {
	tier, ok := stringField(document, "distribution_tier")
	if !ok || tier == "" {
		this.violate("distribution_tier should not be blank")
		return ""
	}
	switch strings.ToLower(tier) {
	case contracts.TierSource, contracts.TierSourceLegacy:
		return contracts.TierSource
	case contracts.TierBinaryOnly:
		return contracts.TierBinaryOnly
	}
	this.violate("distribution_tier must be %q or %q, got %q", contracts.TierSource, contracts.TierBinaryOnly, tier)
	return ""
}

func (this *ManifestValidator) normalizePlatforms(document map[string]any) (platforms []string) {
	values, ok := document["platforms"].([]any)
	if !ok || len(values) == 0 {
		this.violate("platforms must be a non-empty array")
		return nil
	}
	seen := make(map[string]struct{})
	for _, value := range values {
		platform, ok := value.(string)
		if !ok {
			this.violate("platforms entries must be strings")
			continue
		}
		platform = strings.TrimSpace(platform)
		if _, duplicate := seen[platform]; duplicate {
			continue
		}
		seen[platform] = struct{}{}
		if !contracts.KnownPlatform(platform) {
			this.violate("unrecognized platform %q", platform)
			continue
		}
		platforms = append(platforms, platform)
	}
	return platforms
}

func (this *ManifestValidator) normalizeVariants(document map[string]any, platforms []string) (variants []contracts.Variant) {
	declared := make(map[string]contracts.Variant)
	if values, ok := document["variants"].([]any); ok {
		for _, value := range values {
			entry, ok := value.(map[string]any)
			if !ok {
				this.violate("variants entries must be objects")
				continue
			}
			variant := this.parseVariant(entry)
			declared[variant.Platform] = variant
		}
	}
	for _, platform := range platforms {
		variant, found := declared[platform]
		if !found {
			this.violate("missing variant for declared platform %q", platform)
			continue
		}
		variants = append(variants, variant)
	}
	return variants
}

func (this *ManifestValidator) parseVariant(entry map[string]any) (variant contracts.Variant) {
	variant.Platform, _ = stringField(entry, "platform")
	binary, ok := entry["binary"].(map[string]any)
	if !ok {
		return variant
	}
	path, _ := stringField(binary, "path")
	digest, _ := stringField(binary, "sha256")
	if path == "" {
		this.violate("variant %q: binary.path should not be blank", variant.Platform)
	}
	if digest == "" {
		this.violate("variant %q: binary.sha256 should not be blank", variant.Platform)
	} else if !ValidHexDigest(digest) {
		this.violate("variant %q: binary.sha256 must be 64 hex characters", variant.Platform)
		digest = ""
	}
	variant.Binary = &contracts.Binary{Path: path, SHA256: strings.ToLower(digest)}
	return variant
}

func (this *ManifestValidator) parseProvenance(document map[string]any) *contracts.Provenance {
	entry, ok := document["provenance"].(map[string]any)
	if !ok {
		return nil
	}
	repository, _ := stringField(entry, "source_repository")
	revision, _ := stringField(entry, "source_revision")
	return &contracts.Provenance{SourceRepository: repository, SourceRevision: revision}
}

func (this *ManifestValidator) parseToolchain(document map[string]any) *contracts.Toolchain {
	entry, ok := document["toolchain"].(map[string]any)
	if !ok {
		return nil
	}
	compiler, _ := stringField(entry, "compiler")
	version, _ := stringField(entry, "version")
	sdkVersion, _ := stringField(entry, "sdk_version")
	return &contracts.Toolchain{Compiler: compiler, Version: version, SDKVersion: sdkVersion}
}

func (this *ManifestValidator) parseABI(document map[string]any) *contracts.ABI {
	entry, ok := document["abi"].(map[string]any)
	if !ok {
		return nil
	}
	flags, _ := stringField(entry, "optimization_flags")
	floatABI, _ := stringField(entry, "float_abi")
	exceptions, _ := entry["exceptions"].(bool)
	rtti, _ := entry["rtti"].(bool)
	return &contracts.ABI{OptimizationFlags: flags, FloatABI: floatABI, Exceptions: exceptions, RTTI: rtti}
}

func (this *ManifestValidator) checkTierCompleteness(manifest contracts.Manifest) {
	binaryOnly := manifest.DistributionTier == contracts.TierBinaryOnly
	report := this.warn
	if binaryOnly {
		report = this.violate
	}
	if manifest.Provenance == nil || manifest.Provenance.SourceRepository == "" {
		report("provenance.source_repository is required for binary-only packages (recommended for source packages)")
	}
	if manifest.Toolchain == nil || manifest.Toolchain.SDKVersion == "" {
		report("toolchain.sdk_version is required for binary-only packages (recommended for source packages)")
	}
	if manifest.ABI == nil {
		report("abi is required for binary-only packages (recommended for source packages)")
	}
	for _, variant := range manifest.Variants {
		if variant.Binary == nil {
			report("variant %q has no binary entry (required for binary-only packages)", variant.Platform)
		}
	}
}

func (this *ManifestValidator) requiredString(document map[string]any, field string) string {
	value, ok := stringField(document, field)
	if !ok || value == "" {
		this.violate("%s should not be blank", field)
		return ""
	}
	return value
}

func (this *ManifestValidator) violate(format string, args ...any) {
	this.violations = append(this.violations, fmt.Sprintf(format, args...))
}

func (this *ManifestValidator) warn(format string, args ...any) {
	this.warnings = append(this.warnings, fmt.Sprintf(format, args...))
}

// stringField is the validated-presence accessor used everywhere untrusted
// JSON is read: the type assertion happens before the value is trusted.
func stringField(document map[string]any, field string) (string, bool) {
	value, ok := document[field].(string)
	return strings.TrimSpace(value), ok
}
