package core

import (
	"sort"

	"github.com/Masterminds/semver/v3"

	"github.com/forgesdk/quarry/contracts"
)

type Criteria struct {
	Version           string
	IncludePrerelease bool
	Platform          string
}

// VersionResolver turns a package name plus selection criteria into one
// concrete, platform-specific artifact reference.
type VersionResolver struct{}

func NewVersionResolver() *VersionResolver {
	return &VersionResolver{}
}

func (this *VersionResolver) Resolve(packageName string, document map[string]any, criteria Criteria) (contracts.ResolvedRelease, error) {
	node, storedName, found, err := findPackageNode(document, packageName)
	if err != nil {
		return contracts.ResolvedRelease{}, err
	}
	if !found {
		return contracts.ResolvedRelease{}, &contracts.NotFoundError{Package: packageName}
	}
	entries, err := normalizeReleases(node)
	if err != nil {
		return contracts.ResolvedRelease{}, err
	}
	entry, err := this.selectRelease(storedName, entries, criteria)
	if err != nil {
		return contracts.ResolvedRelease{}, err
	}
	location, found := resolveArtifact(entry, criteria.Platform)
	if !found {
		return contracts.ResolvedRelease{}, &contracts.NoArtifactError{
			Package:  storedName,
			Version:  entry.Version,
			Platform: criteria.Platform,
		}
	}
	return contracts.ResolvedRelease{
		PackageName: storedName,
		Version:     entry.Version,
		Platform:    criteria.Platform,
		DownloadURL: location.url,
		Checksum:    location.checksum,
	}, nil
}

func (this *VersionResolver) selectRelease(packageName string, entries []contracts.ReleaseEntry, criteria Criteria) (contracts.ReleaseEntry, error) {
	if criteria.Version != "" {
		wanted := normalizeVersion(criteria.Version)
		for _, entry := range entries {
			if normalizeVersion(entry.Version) == wanted {
				return entry, nil
			}
		}
		return contracts.ReleaseEntry{}, &contracts.NotFoundError{Package: packageName, Version: criteria.Version}
	}

	sortByPrecedence(entries)

	hadPrerelease := false
	for _, entry := range entries {
		if entry.Prerelease && !criteria.IncludePrerelease {
			hadPrerelease = true
			continue
		}
		return entry, nil
	}
	hint := "no releases published"
	if hadPrerelease {
		hint = "only prerelease versions exist; retry with prereleases allowed"
	}
	return contracts.ReleaseEntry{}, &contracts.NotFoundError{Package: packageName, Hint: hint}
}

// sortByPrecedence orders entries by semantic-version precedence, descending.
// Unparseable versions sink below every parseable one.
func sortByPrecedence(entries []contracts.ReleaseEntry) {
	parsed := make(map[string]*semver.Version, len(entries))
	for _, entry := range entries {
		version, err := semver.NewVersion(normalizeVersion(entry.Version))
		if err == nil {
			parsed[entry.Version] = version
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		left, right := parsed[entries[i].Version], parsed[entries[j].Version]
		switch {
		case left == nil && right == nil:
			return entries[i].Version > entries[j].Version
		case left == nil:
			return false
		case right == nil:
			return true
		}
		return left.GreaterThan(right)
	})
}
