package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/subboot/pkg/types"
)

// Severity grades a validation finding
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is one problem reported by Validate
type Finding struct {
	Severity   Severity
	Dependency string
	Message    string
}

func (f Finding) String() string {
	if f.Dependency == "" {
		return fmt.Sprintf("%s: %s", f.Severity, f.Message)
	}
	return fmt.Sprintf("%s: %s: %s", f.Severity, f.Dependency, f.Message)
}

// HasErrors reports whether any finding is error-level
func HasErrors(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Validate checks the semantic content of a parsed manifest. Loading never
// does this, so a run still processes every well-formed entry.
func Validate(deps []types.Dependency) []Finding {
	var findings []Finding
	seen := make(map[string]bool)

	for i, dep := range deps {
		if strings.TrimSpace(dep.Name) == "" {
			findings = append(findings, Finding{
				Severity: SeverityError,
				Message:  fmt.Sprintf("entry %d has no name", i+1),
			})
			continue
		}
		if seen[dep.Name] {
			findings = append(findings, Finding{
				Severity:   SeverityWarning,
				Dependency: dep.Name,
				Message:    "declared more than once",
			})
		}
		seen[dep.Name] = true

		if strings.ContainsAny(dep.Name, `/\`) || dep.Name == "." || dep.Name == ".." {
			findings = append(findings, Finding{
				Severity:   SeverityError,
				Dependency: dep.Name,
				Message:    "name must be a single path element",
			})
		}

		for j, action := range dep.Actions {
			findings = append(findings, validateAction(dep.Name, j+1, action)...)
		}
	}

	return findings
}

func validateAction(dep string, n int, action types.LinkAction) []Finding {
	var findings []Finding
	add := func(sev Severity, format string, args ...interface{}) {
		findings = append(findings, Finding{
			Severity:   sev,
			Dependency: dep,
			Message:    fmt.Sprintf("action %d: ", n) + fmt.Sprintf(format, args...),
		})
	}

	switch action.Type {
	case types.ActionLinkFile, types.ActionLinkIncludeDir:
	case types.ActionUnknown:
		add(SeverityError, "could not parse type %q, valid options are %v",
			action.RawType, types.ValidActionTypes())
	}

	for _, p := range []struct{ field, value string }{{"src", action.Src}, {"dst", action.Dst}} {
		switch {
		case strings.TrimSpace(p.value) == "":
			add(SeverityError, "%s is empty", p.field)
		case filepath.IsAbs(p.value):
			add(SeverityError, "%s %q must be relative", p.field, p.value)
		case escapes(p.value):
			add(SeverityWarning, "%s %q leaves its base directory", p.field, p.value)
		}
	}

	return findings
}

func escapes(rel string) bool {
	clean := filepath.ToSlash(filepath.Clean(rel))
	return clean == ".." || strings.HasPrefix(clean, "../")
}
