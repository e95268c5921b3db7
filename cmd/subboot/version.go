package subboot

import (
	"fmt"

	"github.com/arthur-debert/subboot/internal/version"
	"github.com/spf13/cobra"
)

func (a *App) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(a.Out, version.String())
			return err
		},
	}
}
