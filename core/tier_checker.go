package core

import (
	"fmt"
	"path"
	"strings"

	"github.com/forgesdk/quarry/contracts"
)

// implementationExtensions cover C/C++/assembly translation units. Headers
// are deliberately excluded: binary-only packages still ship their headers.
var implementationExtensions = map[string]struct{}{
	".c": {}, ".cc": {}, ".cpp": {}, ".cxx": {}, ".s": {}, ".asm": {},
}

var headerExtensions = map[string]struct{}{
	".h": {}, ".hh": {}, ".hpp": {}, ".hxx": {},
}

var includeLocations = []string{"include", "src"}

// TierContentChecker verifies a package's file tree against its declared
// distribution tier, and declared binary hashes against on-disk bytes.
type TierContentChecker struct {
	fileSystem contracts.FileSystem
}

func NewTierContentChecker(fileSystem contracts.FileSystem) *TierContentChecker {
	return &TierContentChecker{fileSystem: fileSystem}
}

func (this *TierContentChecker) Check(manifest contracts.Manifest) (warnings []string, err error) {
	var violations []string
	var mismatches []*contracts.IntegrityError

	for _, variant := range manifest.Variants {
		if variant.Binary == nil {
			continue
		}
		violation, mismatch := this.checkBinary(variant)
		if violation != "" {
			violations = append(violations, violation)
		}
		if mismatch != nil {
			mismatches = append(mismatches, mismatch)
		}
	}

	listing, listErr := this.fileSystem.Listing()
	if listErr != nil {
		return nil, listErr
	}
	if manifest.DistributionTier == contracts.TierBinaryOnly {
		violations = append(violations, smuggledSources(listing)...)
	} else if !containsSourceOrHeaders(listing) {
		warnings = append(warnings, "source package ships no source or header files under "+strings.Join(includeLocations, " or "))
	}

	if len(mismatches) > 0 {
		// The first mismatch carries the error shape; the rest ride along
		// as violations so nothing is hidden.
		for _, mismatch := range mismatches[1:] {
			violations = append(violations, mismatch.Error())
		}
		return nil, mismatches[0]
	}
	if len(violations) > 0 {
		return nil, contracts.NewValidationError(violations)
	}
	return warnings, nil
}

func (this *TierContentChecker) checkBinary(variant contracts.Variant) (violation string, mismatch *contracts.IntegrityError) {
	binaryPath := path.Clean(variant.Binary.Path)
	if path.IsAbs(binaryPath) || binaryPath == ".." || strings.HasPrefix(binaryPath, "../") {
		return fmt.Sprintf("variant %q: binary path %q escapes the package root", variant.Platform, variant.Binary.Path), nil
	}
	reader, err := this.fileSystem.Open(binaryPath)
	if err != nil {
		return fmt.Sprintf("variant %q: declared binary %q is missing", variant.Platform, binaryPath), nil
	}
	defer func() { _ = reader.Close() }()
	computed, err := HashReader(reader)
	if err != nil {
		return fmt.Sprintf("variant %q: reading binary %q failed: %s", variant.Platform, binaryPath, err), nil
	}
	if computed != variant.Binary.SHA256 {
		return "", &contracts.IntegrityError{Path: binaryPath, Expected: variant.Binary.SHA256, Actual: computed}
	}
	return "", nil
}

func smuggledSources(listing []contracts.FileInfo) (violations []string) {
	for _, file := range listing {
		if _, found := implementationExtensions[strings.ToLower(path.Ext(file.Path()))]; found {
			violations = append(violations, fmt.Sprintf("binary-only package must not contain source file %q", file.Path()))
		}
	}
	return violations
}

func containsSourceOrHeaders(listing []contracts.FileInfo) bool {
	for _, file := range listing {
		if !underIncludeLocation(file.Path()) {
			continue
		}
		extension := strings.ToLower(path.Ext(file.Path()))
		if _, found := headerExtensions[extension]; found {
			return true
		}
		if _, found := implementationExtensions[extension]; found {
			return true
		}
	}
	return false
}

func underIncludeLocation(filePath string) bool {
	for _, location := range includeLocations {
		if strings.HasPrefix(filePath, location+"/") || path.Dir(filePath) == location {
			return true
		}
	}
	return false
}
