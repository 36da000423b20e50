package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/tagview/internal/logtail"
	"github.com/five82/tagview/internal/printer"
)

func newLogsCmd(flags *globalFlags) *cobra.Command {
	var (
		lines int
		all   bool
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print recent entries from the tagview log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(flags)
			if err != nil {
				return err
			}
			defer func() { _ = rt.Close() }()

			path := rt.Config.LogFile
			if path == "" {
				printer.Warning("logging is disabled (log_file is empty)\n")
				return nil
			}

			var keep logtail.Keep = logtail.WarningsOnly
			if all {
				keep = nil
			}
			entries, err := logtail.Read(path, lines, keep)
			if err != nil {
				return printer.ErrorWithContext("Failed to read log", err.Error(), [][2]string{{"File", path}}, nil)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, printer.Dim("no matching log entries in "+path))
				return nil
			}
			for _, line := range entries {
				switch logtail.Level(line) {
				case "ERROR":
					line = printer.Bad(line)
				case "WARN":
					line = printer.Warn(line)
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "number of entries to print")
	cmd.Flags().BoolVar(&all, "all", false, "include info and debug entries")
	return cmd
}
