package commands

import (
	"io"

	"github.com/erraggy/oasprofile"
	"github.com/spf13/cobra"
)

func newVersionCommand(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			Writef(stdout, "oasprofile %s\n", oasprofile.Version())
		},
	}
}
