package ui

import (
	"fmt"
	"io"

	"github.com/arthur-debert/subboot/pkg/bootstrap"
	"github.com/arthur-debert/subboot/pkg/config"
	"github.com/arthur-debert/subboot/pkg/links"
	"github.com/pterm/pterm"
)

// terminalRenderer draws pterm tables with colored states
type terminalRenderer struct {
	w io.Writer
}

// OutcomeStyle returns the pterm style for a link outcome
func OutcomeStyle(o links.Outcome) *pterm.Style {
	switch o {
	case links.OutcomeLinked, links.OutcomeUnlinked:
		return pterm.NewStyle(pterm.FgGreen)
	case links.OutcomeSkipped:
		return pterm.NewStyle(pterm.FgYellow)
	case links.OutcomeFailed:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// StateStyle returns the pterm style for an inspected link state
func StateStyle(s links.State) *pterm.Style {
	switch s {
	case links.StateLinked:
		return pterm.NewStyle(pterm.FgGreen)
	case links.StateMissing:
		return pterm.NewStyle(pterm.FgYellow)
	case links.StateForeign:
		return pterm.NewStyle(pterm.FgCyan)
	case links.StateDangling, links.StateConflict, links.StateInvalid:
		return pterm.NewStyle(pterm.FgRed)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

func (r *terminalRenderer) table(data pterm.TableData) error {
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.w, out)
	return err
}

func (r *terminalRenderer) RenderSummary(report *bootstrap.Report) error {
	if len(report.Results) > 0 {
		data := pterm.TableData{{"Dependency", "Type", "Destination", "Outcome", "Detail"}}
		for _, res := range report.Results {
			data = append(data, []string{
				res.Dependency,
				res.Action.TypeName(),
				res.Action.Dst,
				OutcomeStyle(res.Outcome).Sprint(string(res.Outcome)),
				detail(res),
			})
		}
		if err := r.table(data); err != nil {
			return err
		}
	}

	for _, h := range report.Hooks {
		if _, err := fmt.Fprintln(r.w, pterm.Red(fmt.Sprintf("hook failed for %s: %v", h.Dependency, h.Err))); err != nil {
			return err
		}
	}
	if report.LockFile != "" {
		if _, err := fmt.Fprintln(r.w, pterm.Gray("lock file written to "+report.LockFile)); err != nil {
			return err
		}
	}

	line := summaryLine(report)
	if report.Failed() {
		line = pterm.Yellow(line)
	} else {
		line = pterm.Green(line)
	}
	_, err := fmt.Fprintln(r.w, pterm.Bold.Sprint(line))
	return err
}

func (r *terminalRenderer) RenderStatus(rows []StatusRow) error {
	if len(rows) == 0 {
		return r.RenderMessage("no link actions declared")
	}

	data := pterm.TableData{{"Dependency", "Destination", "State", "Target", "Submodule"}}
	for _, row := range rows {
		data = append(data, []string{
			row.Dependency,
			row.Action.Dst,
			StateStyle(row.State).Sprint(string(row.State)),
			row.Target,
			string(row.Submodule),
		})
	}
	return r.table(data)
}

func (r *terminalRenderer) RenderFindings(findings []config.Finding) error {
	if len(findings) == 0 {
		return r.RenderMessage(pterm.Green("manifest is valid"))
	}

	data := pterm.TableData{{"Severity", "Dependency", "Problem"}}
	for _, f := range findings {
		sev := pterm.Yellow(string(f.Severity))
		if f.Severity == config.SeverityError {
			sev = pterm.Red(string(f.Severity))
		}
		data = append(data, []string{sev, f.Dependency, f.Message})
	}
	return r.table(data)
}

func (r *terminalRenderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.w, msg)
	return err
}
