package core

import (
	"github.com/forgesdk/quarry/contracts"
)

// IndexMutator applies a new release to an index document. Publishing is
// strictly additive: existing releases are never edited or removed, and the
// input document is never mutated (callers receive a structural deep copy).
type IndexMutator struct{}

func NewIndexMutator() *IndexMutator {
	return &IndexMutator{}
}

func (this *IndexMutator) ApplyRelease(document map[string]any, packageName, version string, payload map[string]any) (map[string]any, error) {
	shape, err := detectIndexShape(document)
	if err != nil {
		return nil, err
	}
	updated := deepCopyObject(document)
	entry := deepCopyObject(payload)
	if _, ok := stringField(entry, "version"); !ok {
		entry["version"] = version
	}
	switch shape {
	case shapeArray:
		err = this.applyToArrayShape(updated, packageName, version, entry)
	case shapeMap:
		err = this.applyToMapShape(updated, packageName, version, entry)
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (this *IndexMutator) applyToArrayShape(document map[string]any, packageName, version string, entry map[string]any) error {
	packages := document["packages"].([]any)
	node, storedName, found, _ := findPackageNode(document, packageName)
	if !found {
		node = map[string]any{"name": packageName, "releases": []any{}}
		document["packages"] = append(packages, node)
		storedName = packageName
	}
	releases, ok := node["releases"].([]any)
	if !ok {
		return &contracts.FormatError{Detail: "package node's 'releases' is not an array"}
	}
	if releaseListContains(releases, version) {
		return &contracts.ConflictError{Package: storedName, Version: version}
	}
	node["releases"] = append(releases, entry)
	return nil
}

func (this *IndexMutator) applyToMapShape(document map[string]any, packageName, version string, entry map[string]any) error {
	packages := document["packages"].(map[string]any)
	// Lookup is case-insensitive even for map keys: a differently-cased
	// publish reuses the stored node instead of creating a sibling (see
	// the name-casing decision in DESIGN.md).
	node, storedName, found, _ := findPackageNode(document, packageName)
	if !found {
		// New nodes in the map shape store releases keyed by version.
		node = map[string]any{"releases": map[string]any{}}
		packages[packageName] = node
		storedName = packageName
	}
	switch releases := node["releases"].(type) {
	case []any:
		if releaseListContains(releases, version) {
			return &contracts.ConflictError{Package: storedName, Version: version}
		}
		node["releases"] = append(releases, entry)
		return nil
	case map[string]any:
		for existing := range releases {
			if normalizeVersion(existing) == normalizeVersion(version) {
				return &contracts.ConflictError{Package: storedName, Version: version}
			}
		}
		releases[version] = entry
		return nil
	}
	return &contracts.FormatError{Detail: "package node's 'releases' is neither an array nor a map"}
}

func releaseListContains(releases []any, version string) bool {
	wanted := normalizeVersion(version)
	for _, value := range releases {
		raw, ok := value.(map[string]any)
		if !ok {
			continue
		}
		existing, _ := stringField(raw, "version")
		if normalizeVersion(existing) == wanted {
			return true
		}
	}
	return false
}

func deepCopyObject(source map[string]any) map[string]any {
	target := make(map[string]any, len(source))
	for key, value := range source {
		target[key] = deepCopyValue(value)
	}
	return target
}

func deepCopyValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return deepCopyObject(typed)
	case []any:
		copied := make([]any, len(typed))
		for i, element := range typed {
			copied[i] = deepCopyValue(element)
		}
		return copied
	}
	return value
}
