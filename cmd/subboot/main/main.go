package main

import (
	"context"
	"fmt"
	"os"

	"github.com/arthur-debert/subboot/cmd/subboot"
	"github.com/arthur-debert/subboot/pkg/errors"
	"github.com/charmbracelet/lipgloss"
)

func main() {
	app := subboot.NewApp()
	err := app.Execute(context.Background(), os.Args[1:])
	_ = app.Close()

	if err != nil {
		// Print the error in red
		errorStyle := lipgloss.NewRenderer(os.Stderr).NewStyle().Foreground(lipgloss.Color("9"))
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		if errors.GetErrorCode(err) == errors.ErrInvalidInput || errors.GetErrorCode(err) == errors.ErrUnknown {
			fmt.Fprintln(os.Stderr, subboot.MsgUsageHint)
		}
	}
	os.Exit(subboot.ExitCode(err))
}
