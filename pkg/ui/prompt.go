package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/subboot/pkg/types"
	"github.com/charmbracelet/lipgloss"
)

// PromptText is the confirmation question asked before a run
func PromptText(mode types.Mode) string {
	if mode == types.ModeClean {
		return "Proceed with project cleanup? (y/[n]) > "
	}
	return "Proceed with project bootstrapping? (y/[n]) > "
}

// Confirm writes prompt and reads one line. Only the exact answer "y"
// confirms; anything else, including end of input, declines.
func Confirm(in io.Reader, out io.Writer, prompt string, format Format) (bool, error) {
	if Resolve(format, out) == FormatTerminal {
		style := lipgloss.NewRenderer(out).NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
		prompt = style.Render(prompt)
	}
	if _, err := fmt.Fprint(out, prompt); err != nil {
		return false, err
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	if err == io.EOF {
		// keep the next output off the prompt line
		_, _ = fmt.Fprintln(out)
	}

	answer := strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
	return answer == "y", nil
}
