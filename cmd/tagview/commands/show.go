package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/tagview/internal/printer"
	"github.com/five82/tagview/internal/view"
)

func newShowCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Print every attribute of one tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(flags)
			if err != nil {
				return err
			}
			defer func() { _ = rt.Close() }()

			engine, err := refreshOnce(cmd.Context(), rt)
			if err != nil {
				return err
			}

			name := args[0]
			detail, err := engine.Detail(name)
			if errors.Is(err, view.ErrNotFound) {
				return printer.Error("Tag metadata not available",
					fmt.Sprintf("The server returned %d tags but none is named %q.", engine.Snapshot().Len(), name),
					[]string{"Names are case-sensitive; run 'tagview list --search " + name + "' to find it."})
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, detail.Name)
			for _, f := range detail.Fields() {
				fmt.Fprintf(out, "  %-15s %s\n", f.Label+":", f.Value)
			}
			return nil
		},
	}
}
