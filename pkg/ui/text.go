package ui

import (
	"fmt"
	"io"

	"github.com/arthur-debert/subboot/pkg/bootstrap"
	"github.com/arthur-debert/subboot/pkg/config"
)

// textRenderer writes unstyled lines, one per item
type textRenderer struct {
	w io.Writer
}

func (r *textRenderer) RenderSummary(report *bootstrap.Report) error {
	for _, res := range report.Results {
		line := fmt.Sprintf("%-8s %s %s -> %s", res.Outcome, res.Dependency, res.Action.Dst, res.Action.Src)
		if d := detail(res); d != "" {
			line += " (" + d + ")"
		}
		if _, err := fmt.Fprintln(r.w, line); err != nil {
			return err
		}
	}
	for _, h := range report.Hooks {
		if _, err := fmt.Fprintf(r.w, "hook failed for %s: %v\n", h.Dependency, h.Err); err != nil {
			return err
		}
	}
	if report.LockFile != "" {
		if _, err := fmt.Fprintf(r.w, "lock file written to %s\n", report.LockFile); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(r.w, summaryLine(report))
	return err
}

func (r *textRenderer) RenderStatus(rows []StatusRow) error {
	for _, row := range rows {
		line := fmt.Sprintf("%-9s %s %s", row.State, row.Dependency, row.Action.Dst)
		if row.Target != "" {
			line += " -> " + row.Target
		}
		if row.Submodule != "" {
			line += fmt.Sprintf(" [submodule %s]", row.Submodule)
		}
		if _, err := fmt.Fprintln(r.w, line); err != nil {
			return err
		}
	}
	return nil
}

func (r *textRenderer) RenderFindings(findings []config.Finding) error {
	if len(findings) == 0 {
		_, err := fmt.Fprintln(r.w, "manifest is valid")
		return err
	}
	for _, f := range findings {
		if _, err := fmt.Fprintln(r.w, f.String()); err != nil {
			return err
		}
	}
	return nil
}

func (r *textRenderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.w, msg)
	return err
}
