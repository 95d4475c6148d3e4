package core

import (
	"errors"
	"strings"
	"testing"

	"github.com/smartystreets/assertions/should"
	"github.com/smartystreets/gunit"

	"github.com/forgesdk/quarry/contracts"
)

func TestManifestValidatorFixture(t *testing.T) {
	gunit.Run(new(ManifestValidatorFixture), t)
}

type ManifestValidatorFixture struct {
	*gunit.Fixture

	validator *ManifestValidator
	document  map[string]any
}

func (this *ManifestValidatorFixture) Setup() {
	this.validator = NewManifestValidator()
	this.document = map[string]any{
		"schema_version":    "2.0",
		"package_format":    "qpk-1",
		"name":              "FastLED",
		"version":           "3.10.2",
		"description":       "Fast, easy LED animation",
		"license":           "MIT",
		"distribution_tier": "binary-only",
		"platforms":         []any{"rp2040", "esp32"},
		"variants": []any{
			map[string]any{
				"platform": "rp2040",
				"binary":   map[string]any{"path": "bin/rp2040/libfastled.a", "sha256": strings.Repeat("AB", 32)},
			},
			map[string]any{
				"platform": "esp32",
				"binary":   map[string]any{"path": "bin/esp32/libfastled.a", "sha256": strings.Repeat("cd", 32)},
			},
		},
		"provenance": map[string]any{
			"source_repository": "https://github.com/FastLED/FastLED",
			"source_revision":   "0f2c5b7",
		},
		"toolchain": map[string]any{
			"compiler":    "arm-none-eabi-gcc",
			"version":     "13.2",
			"sdk_version": "2.1.0",
		},
		"abi": map[string]any{
			"optimization_flags": "-O2",
			"float_abi":          "hard",
			"exceptions":         false,
			"rtti":               true,
		},
	}
}

func (this *ManifestValidatorFixture) validate() (contracts.Manifest, []string, error) {
	return this.validator.Validate(this.document)
}

func (this *ManifestValidatorFixture) assertViolationContaining(fragment string) {
	_, _, err := this.validate()
	var validation *contracts.ValidationError
	this.So(errors.As(err, &validation), should.BeTrue)
	this.So(strings.Join(validation.Violations, "\n"), should.ContainSubstring, fragment)
}

func (this *ManifestValidatorFixture) TestCompleteBinaryOnlyManifestPasses() {
	manifest, warnings, err := this.validate()

	this.So(err, should.BeNil)
	this.So(warnings, should.BeEmpty)
	this.So(manifest.Name, should.Equal, "FastLED")
	this.So(manifest.DistributionTier, should.Equal, contracts.TierBinaryOnly)
	this.So(manifest.Platforms, should.Resemble, []string{"rp2040", "esp32"})
}

func (this *ManifestValidatorFixture) TestHashesNormalizedToLowercase() {
	manifest, _, err := this.validate()

	this.So(err, should.BeNil)
	variant, found := manifest.Variant("rp2040")
	this.So(found, should.BeTrue)
	this.So(variant.Binary.SHA256, should.Equal, strings.Repeat("ab", 32))
}

func (this *ManifestValidatorFixture) TestStringsTrimmed() {
	this.document["name"] = "  FastLED  "
	this.document["license"] = " MIT\t"

	manifest, _, err := this.validate()

	this.So(err, should.BeNil)
	this.So(manifest.Name, should.Equal, "FastLED")
	this.So(manifest.License, should.Equal, "MIT")
}

func (this *ManifestValidatorFixture) TestBlankRequiredFieldsAllReported() {
	this.document["name"] = "   "
	delete(this.document, "description")

	_, _, err := this.validate()

	var validation *contracts.ValidationError
	this.So(errors.As(err, &validation), should.BeTrue)
	joined := strings.Join(validation.Violations, "\n")
	this.So(joined, should.ContainSubstring, "name")
	this.So(joined, should.ContainSubstring, "description")
}

func (this *ManifestValidatorFixture) TestWrongPackageFormatRejected() {
	this.document["package_format"] = "qpk-0"
	this.assertViolationContaining("package_format")
}

func (this *ManifestValidatorFixture) TestWrongSchemaVersionRejected() {
	this.document["schema_version"] = "1.0"
	this.assertViolationContaining("schema_version")
}

func (this *ManifestValidatorFixture) TestLegacyTierSynonymNormalized() {
	this.document["distribution_tier"] = "source-available"

	manifest, _, err := this.validate()

	this.So(err, should.BeNil)
	this.So(manifest.DistributionTier, should.Equal, contracts.TierSource)
}

func (this *ManifestValidatorFixture) TestUnknownTierRejected() {
	this.document["distribution_tier"] = "freeware"
	this.assertViolationContaining("distribution_tier")
}

func (this *ManifestValidatorFixture) TestUnrecognizedPlatformIsFatal() {
	this.document["platforms"] = []any{"rp2040", "esp32", "commodore64"}
	this.assertViolationContaining(`unrecognized platform "commodore64"`)
}

func (this *ManifestValidatorFixture) TestDuplicatePlatformsDeduplicated() {
	this.document["platforms"] = []any{"rp2040", "rp2040", "esp32"}

	manifest, _, err := this.validate()

	this.So(err, should.BeNil)
	this.So(manifest.Platforms, should.Resemble, []string{"rp2040", "esp32"})
}

func (this *ManifestValidatorFixture) TestEmptyPlatformsRejected() {
	this.document["platforms"] = []any{}
	this.assertViolationContaining("platforms")
}

func (this *ManifestValidatorFixture) TestMissingVariantForDeclaredPlatform() {
	this.document["variants"] = this.document["variants"].([]any)[:1]
	this.assertViolationContaining(`missing variant for declared platform "esp32"`)
}

func (this *ManifestValidatorFixture) TestMalformedBinaryHashRejected() {
	variant := this.document["variants"].([]any)[0].(map[string]any)
	variant["binary"].(map[string]any)["sha256"] = "not-a-hash"
	this.assertViolationContaining("64 hex characters")
}

func (this *ManifestValidatorFixture) TestBlankBinaryPathRejected() {
	variant := this.document["variants"].([]any)[0].(map[string]any)
	variant["binary"].(map[string]any)["path"] = ""
	this.assertViolationContaining("binary.path")
}

func (this *ManifestValidatorFixture) TestBinaryOnlyMissingProvenanceFails() {
	delete(this.document, "provenance")
	this.assertViolationContaining("provenance")
}

func (this *ManifestValidatorFixture) TestBinaryOnlyMissingSDKVersionFails() {
	delete(this.document["toolchain"].(map[string]any), "sdk_version")
	this.assertViolationContaining("toolchain.sdk_version")
}

func (this *ManifestValidatorFixture) TestBinaryOnlyMissingABIFails() {
	delete(this.document, "abi")
	this.assertViolationContaining("abi")
}

func (this *ManifestValidatorFixture) TestBinaryOnlyMissingPlatformBinaryFails() {
	variant := this.document["variants"].([]any)[1].(map[string]any)
	delete(variant, "binary")
	this.assertViolationContaining(`variant "esp32" has no binary entry`)
}

func (this *ManifestValidatorFixture) TestSourceTierSameOmissionsOnlyWarn() {
	this.document["distribution_tier"] = "source"
	delete(this.document, "provenance")
	delete(this.document, "toolchain")
	delete(this.document, "abi")
	for _, value := range this.document["variants"].([]any) {
		delete(value.(map[string]any), "binary")
	}

	_, warnings, err := this.validate()

	this.So(err, should.BeNil)
	this.So(warnings, should.NotBeEmpty)
}

func (this *ManifestValidatorFixture) TestInstallMetadataAcceptsSchemalessForm() {
	manifest, err := this.validator.ValidateInstallMetadata(map[string]any{
		"name":    "FastLED",
		"version": "3.10.2",
	})

	this.So(err, should.BeNil)
	this.So(manifest.Name, should.Equal, "FastLED")
	this.So(manifest.Version, should.Equal, "3.10.2")
}

func (this *ManifestValidatorFixture) TestInstallMetadataStillRequiresIdentity() {
	_, err := this.validator.ValidateInstallMetadata(map[string]any{"name": "FastLED"})

	var validation *contracts.ValidationError
	this.So(errors.As(err, &validation), should.BeTrue)
	this.So(strings.Join(validation.Violations, "\n"), should.ContainSubstring, "version")
}
