package core

import (
	"sort"
	"strings"

	"github.com/forgesdk/quarry/contracts"
)

// The published index has accumulated two document shapes over its history:
// `packages` as an array of named nodes, and `packages` as a name-keyed map
// whose releases may themselves be an array or a version-keyed map. Reads
// normalize into one canonical list; writes preserve the original shape.

type indexShape int

const (
	shapeArray indexShape = iota
	shapeMap
)

func detectIndexShape(document map[string]any) (indexShape, error) {
	switch document["packages"].(type) {
	case []any:
		return shapeArray, nil
	case map[string]any:
		return shapeMap, nil
	}
	return 0, &contracts.FormatError{Detail: "index document has no recognizable 'packages' member"}
}

// findPackageNode locates a package by case-insensitive name across both
// shapes. The stored name (which may differ in case) is returned alongside.
func findPackageNode(document map[string]any, name string) (node map[string]any, storedName string, found bool, err error) {
	shape, err := detectIndexShape(document)
	if err != nil {
		return nil, "", false, err
	}
	switch shape {
	case shapeArray:
		for _, value := range document["packages"].([]any) {
			candidate, ok := value.(map[string]any)
			if !ok {
				continue
			}
			candidateName, _ := stringField(candidate, "name")
			if strings.EqualFold(candidateName, name) {
				return candidate, candidateName, true, nil
			}
		}
	case shapeMap:
		packages := document["packages"].(map[string]any)
		if value, ok := packages[name]; ok {
			if candidate, ok := value.(map[string]any); ok {
				return candidate, name, true, nil
			}
		}
		for key, value := range packages {
			if !strings.EqualFold(key, name) {
				continue
			}
			if candidate, ok := value.(map[string]any); ok {
				return candidate, key, true, nil
			}
		}
	}
	return nil, "", false, nil
}

// normalizeReleases flattens a package node's releases (array or version-keyed
// map) into one ordered list of entries.
func normalizeReleases(node map[string]any) ([]contracts.ReleaseEntry, error) {
	switch releases := node["releases"].(type) {
	case []any:
		return normalizeReleaseList(releases)
	case map[string]any:
		return normalizeReleaseMap(releases)
	}
	return nil, &contracts.FormatError{Detail: "package node's 'releases' is neither an array nor a map"}
}

func normalizeReleaseList(releases []any) (entries []contracts.ReleaseEntry, err error) {
	for _, value := range releases {
		raw, ok := value.(map[string]any)
		if !ok {
			return nil, &contracts.FormatError{Detail: "release entries must be objects"}
		}
		version, _ := stringField(raw, "version")
		entries = append(entries, newReleaseEntry(version, raw))
	}
	return entries, nil
}

func normalizeReleaseMap(releases map[string]any) (entries []contracts.ReleaseEntry, err error) {
	versions := make([]string, 0, len(releases))
	for version := range releases {
		versions = append(versions, version)
	}
	sort.Strings(versions) // deterministic order; callers re-sort by precedence
	for _, version := range versions {
		raw, ok := releases[version].(map[string]any)
		if !ok {
			return nil, &contracts.FormatError{Detail: "release entries must be objects"}
		}
		entries = append(entries, newReleaseEntry(version, raw))
	}
	return entries, nil
}

func newReleaseEntry(version string, raw map[string]any) contracts.ReleaseEntry {
	entry := contracts.ReleaseEntry{Version: version, Raw: raw}
	if prerelease, ok := raw["prerelease"].(bool); ok {
		entry.Prerelease = prerelease
	} else {
		// Build metadata after "+" may itself contain hyphens and never
		// marks a prerelease.
		bare, _, _ := strings.Cut(normalizeVersion(version), "+")
		entry.Prerelease = strings.Contains(bare, "-")
	}
	return entry
}

func normalizeVersion(version string) string {
	version = strings.TrimSpace(version)
	version = strings.TrimPrefix(version, "v")
	version = strings.TrimPrefix(version, "V")
	return version
}
