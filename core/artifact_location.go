package core

import (
	"strings"

	"github.com/forgesdk/quarry/contracts"
)

// Release entries have expressed per-platform artifacts several ways over the
// index's history: a platform-keyed map (under one of four member names), an
// embedded platform+url pair, a tagged asset list, a generic artifact, or a
// bare top-level url. Candidates are probed in priority order; the first one
// yielding a non-empty URL wins. The hash rides under either "sha256" or the
// older "checksum"; both normalize to one field.

var platformMapKeys = []string{"artifacts", "platforms", "files", "downloads"}

type artifactLocation struct {
	url      string
	checksum string
}

func resolveArtifact(entry contracts.ReleaseEntry, platform string) (artifactLocation, bool) {
	for _, candidate := range artifactCandidates(entry.Raw, platform) {
		if candidate.url != "" {
			return candidate, true
		}
	}
	return artifactLocation{}, false
}

func artifactCandidates(raw map[string]any, platform string) (candidates []artifactLocation) {
	for _, key := range platformMapKeys {
		if platformMap, ok := raw[key].(map[string]any); ok {
			if value, ok := platformMap[platform]; ok {
				candidates = append(candidates, locationFromValue(value))
			}
		}
	}
	if embedded, ok := stringField(raw, "platform"); ok && strings.EqualFold(embedded, platform) {
		candidates = append(candidates, locationFromFields(raw))
	}
	if assets, ok := raw["assets"].([]any); ok {
		for _, value := range assets {
			asset, ok := value.(map[string]any)
			if !ok {
				continue
			}
			if tagged, _ := stringField(asset, "platform"); strings.EqualFold(tagged, platform) {
				candidates = append(candidates, locationFromFields(asset))
			}
		}
	}
	if generic, ok := raw["artifact"]; ok {
		candidates = append(candidates, locationFromValue(generic))
	}
	candidates = append(candidates, artifactLocation{url: bareString(raw["url"])})
	return candidates
}

// locationFromValue handles both value forms found inside platform maps:
// a bare URL string, or an object carrying url and hash fields.
func locationFromValue(value any) artifactLocation {
	switch typed := value.(type) {
	case string:
		return artifactLocation{url: strings.TrimSpace(typed)}
	case map[string]any:
		return locationFromFields(typed)
	}
	return artifactLocation{}
}

func locationFromFields(fields map[string]any) artifactLocation {
	location := artifactLocation{url: bareString(fields["url"])}
	if digest, ok := stringField(fields, "sha256"); ok && digest != "" {
		location.checksum = strings.ToLower(digest)
	} else if digest, ok := stringField(fields, "checksum"); ok && digest != "" {
		location.checksum = strings.ToLower(digest)
	}
	return location
}

func bareString(value any) string {
	typed, _ := value.(string)
	return strings.TrimSpace(typed)
}
