package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewWhoamiCommand creates the whoami command
func NewWhoamiCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "whoami",
		Short:        "Print the local user id",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openShell(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			out := struct {
				UserID string `json:"user_id"`
			}{UserID: s.UserID}
			return newPrinter(rootOpts, cmd.OutOrStdout()).print(out, func(w io.Writer) {
				fmt.Fprintln(w, s.UserID)
			})
		},
	}
}
