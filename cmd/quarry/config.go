package main

import (
	"github.com/forgesdk/quarry/contracts"
	"github.com/forgesdk/quarry/core"
)

// Config is built once per invocation from flags plus environment and passed
// down by parameter; nothing deeper in the pipeline reads the environment.
type Config struct {
	IndexOverride     string
	IndexCandidates   []string
	Platform          string
	Version           string
	IncludePrerelease bool
	LibDirectory      string
	ReducedMotion     bool
	Verbose           bool
}

func loadConfig(environment contracts.Environment) (config Config) {
	config.IndexOverride = flagIndexOverride
	config.IndexCandidates = core.CandidateIndexURLs(flagIndexOverride, environment)
	config.Platform = flagPlatform
	if config.Platform == "" {
		config.Platform, _ = environment.LookupEnv("QUARRY_PLATFORM")
	}
	config.Version = flagVersion
	config.IncludePrerelease = flagIncludePrerelease
	config.LibDirectory = flagLibDirectory
	config.Verbose = flagVerbose
	if _, set := environment.LookupEnv("NO_COLOR"); set {
		config.ReducedMotion = true
	}
	if _, set := environment.LookupEnv("QUARRY_NO_ANIMATION"); set {
		config.ReducedMotion = true
	}
	return config
}
