package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Severity classifies an issue raised while translating a document.
type Severity string

// Issue severities.
const (
	// SeverityWarn marks a degraded entity; the build continues.
	SeverityWarn Severity = "warn"
	// SeverityError marks a failure that aborted the build.
	SeverityError Severity = "error"
)

// Issue reports a problem with one entity of a document.
type Issue struct {
	Severity Severity
	Category EntityType
	Name     string
	Message  string
	Err      error
}

func (i Issue) String() string {
	return fmt.Sprintf("[%s] %s %q: %s", i.Severity, i.Category, i.Name, i.Message)
}

// Result aggregates the issues raised during a build or extraction.
type Result struct {
	Issues []Issue
}

// Merge appends the issues of other to r.
func (r *Result) Merge(other Result) {
	if len(other.Issues) == 0 {
		return
	}
	r.Issues = append(r.Issues, other.Issues...)
}

// Warn records a non-fatal issue for the named entity.
func (r *Result) Warn(category EntityType, name string, err error) {
	r.Issues = append(r.Issues, Issue{
		Severity: SeverityWarn,
		Category: category,
		Name:     name,
		Message:  err.Error(),
		Err:      err,
	})
}

// Warnings returns the non-fatal issues in the order they were raised.
func (r Result) Warnings() []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Severity == SeverityWarn {
			out = append(out, issue)
		}
	}
	return out
}

// HasErrors reports whether any issue has error severity.
func (r Result) HasErrors() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Unresolved returns the unresolved reference errors carried by the issues.
func (r Result) Unresolved() []*UnresolvedReferenceError {
	var out []*UnresolvedReferenceError
	for _, issue := range r.Issues {
		var unresolved *UnresolvedReferenceError
		if errors.As(issue.Err, &unresolved) {
			out = append(out, unresolved)
		}
	}
	return out
}

func (r Result) String() string {
	lines := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		lines = append(lines, issue.String())
	}
	return strings.Join(lines, "\n")
}
