package core

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/forgesdk/quarry/contracts"
)

const DefaultIndexURL = "https://packages.forgesdk.io/index.json"

// CandidateIndexURLs builds the ordered list of index sources: an explicit
// override, then QUARRY_INDEX_URLS (comma list), then QUARRY_INDEX_URL, then
// the hard-coded default. First success wins.
func CandidateIndexURLs(override string, environment contracts.Environment) (candidates []string) {
	if override != "" {
		return []string{override}
	}
	if list, set := environment.LookupEnv("QUARRY_INDEX_URLS"); set {
		for _, candidate := range strings.Split(list, ",") {
			if candidate = strings.TrimSpace(candidate); candidate != "" {
				candidates = append(candidates, candidate)
			}
		}
	}
	if single, set := environment.LookupEnv("QUARRY_INDEX_URL"); set && strings.TrimSpace(single) != "" {
		candidates = append(candidates, strings.TrimSpace(single))
	}
	return append(candidates, DefaultIndexURL)
}

// IndexLoader fetches and parses the release index, trying each candidate URL
// once. A failed candidate is not retried; when every candidate fails the
// aggregate error carries the last underlying message.
type IndexLoader struct {
	fetcher    contracts.Fetcher
	candidates []string
}

func NewIndexLoader(fetcher contracts.Fetcher, candidates []string) *IndexLoader {
	return &IndexLoader{fetcher: fetcher, candidates: candidates}
}

func (this *IndexLoader) Load() (document map[string]any, source string, err error) {
	var lastErr error
	var lastURL string
	for _, candidate := range this.candidates {
		document, err = this.loadOne(candidate)
		if err == nil {
			return document, candidate, nil
		}
		lastErr, lastURL = err, candidate
	}
	return nil, "", &contracts.TransportError{
		URL: lastURL,
		Err: fmt.Errorf("all %d index sources failed, last: %s", len(this.candidates), lastErr),
	}
}

func (this *IndexLoader) loadOne(address string) (map[string]any, error) {
	body, err := this.fetcher.Fetch(address)
	if err != nil {
		return nil, err
	}
	defer func() { _ = body.Close() }()

	var document map[string]any
	err = json.NewDecoder(body).Decode(&document)
	if err != nil {
		return nil, fmt.Errorf("malformed index document: %w", err)
	}
	_, err = detectIndexShape(document)
	if err != nil {
		return nil, err
	}
	return document, nil
}
