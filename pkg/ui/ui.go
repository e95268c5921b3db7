// Package ui renders subboot's user facing output: the confirmation prompt,
// the end of run summary, the status table and validation findings. It
// supports terminal (pterm tables, colors) and plain text output.
package ui

import (
	"fmt"
	"io"

	"github.com/arthur-debert/subboot/pkg/bootstrap"
	"github.com/arthur-debert/subboot/pkg/config"
	"github.com/arthur-debert/subboot/pkg/git"
	"github.com/arthur-debert/subboot/pkg/links"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderSummary renders the end of run report
	RenderSummary(report *bootstrap.Report) error

	// RenderStatus renders the state of every link action
	RenderStatus(rows []StatusRow) error

	// RenderFindings renders manifest validation findings
	RenderFindings(findings []config.Finding) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// StatusRow is one line of `subboot status`
type StatusRow struct {
	links.Status
	// Submodule is the state of the dependency's submodule, empty if unknown
	Submodule git.State
}

// NewRenderer creates a renderer for format. FormatAuto is resolved
// against output.
func NewRenderer(format Format, output io.Writer) Renderer {
	switch Resolve(format, output) {
	case FormatTerminal:
		return &terminalRenderer{w: output}
	default:
		return &textRenderer{w: output}
	}
}

func summaryLine(r *bootstrap.Report) string {
	line := fmt.Sprintf("%s: %d linked, %d unlinked, %d skipped, %d failed, %d hook failures",
		r.Mode,
		r.Count(links.OutcomeLinked),
		r.Count(links.OutcomeUnlinked),
		r.Count(links.OutcomeSkipped),
		r.Count(links.OutcomeFailed),
		len(r.Hooks))
	if r.DryRun {
		line += " (dry run)"
	}
	return line
}

func detail(res links.Result) string {
	if res.Reason != "" {
		return res.Reason
	}
	if res.DryRun {
		return "dry run"
	}
	return ""
}
