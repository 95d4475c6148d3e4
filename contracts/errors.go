package contracts

import (
	"fmt"
	"strings"
)

// ValidationError accumulates every field-level violation found in a manifest
// or package tree; it is never raised for just the first problem.
type ValidationError struct {
	Violations []string
}

func NewValidationError(violations []string) *ValidationError {
	return &ValidationError{Violations: violations}
}

func (this *ValidationError) Error() string {
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(this.Violations, "\n  - "))
}

type IntegrityError struct {
	Path     string
	Expected string
	Actual   string
}

func (this *IntegrityError) Error() string {
	return fmt.Sprintf("checksum mismatch for %q: expected %s, computed %s", this.Path, this.Expected, this.Actual)
}

type NotFoundError struct {
	Package string
	Version string
	Hint    string
}

func (this *NotFoundError) Error() string {
	message := fmt.Sprintf("package %q not found in index", this.Package)
	if this.Version != "" {
		message = fmt.Sprintf("version %q of package %q not found in index", this.Version, this.Package)
	}
	if this.Hint != "" {
		message += " (" + this.Hint + ")"
	}
	return message
}

type NoArtifactError struct {
	Package  string
	Version  string
	Platform string
}

func (this *NoArtifactError) Error() string {
	return fmt.Sprintf("release %s@%s has no artifact for platform %q", this.Package, this.Version, this.Platform)
}

type ConflictError struct {
	Package string
	Version string
}

func (this *ConflictError) Error() string {
	return fmt.Sprintf("version %q of package %q is already published; published versions are immutable", this.Version, this.Package)
}

type TransportError struct {
	URL string
	Err error
}

func (this *TransportError) Error() string {
	if this.URL == "" {
		return fmt.Sprintf("transport failure: %s", this.Err)
	}
	return fmt.Sprintf("transport failure for %s: %s", this.URL, this.Err)
}

func (this *TransportError) Unwrap() error { return this.Err }

type FormatError struct {
	Detail string
}

func (this *FormatError) Error() string {
	return "unsupported document format: " + this.Detail
}
