// Package commands implements the tagview command line.
package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/tagview/internal/app"
	"github.com/five82/tagview/internal/printer"
)

var versionString = "dev"

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	prefsPath  string
	apiBind    string
	poll       time.Duration
}

func (g *globalFlags) options() app.Options {
	return app.Options{
		ConfigPath: g.configPath,
		PrefsPath:  g.prefsPath,
		APIBind:    g.apiBind,
		PollEvery:  g.poll,
	}
}

// NewRootCmd builds the tagview command tree.
func NewRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "tagview",
		Short: "tagview - live dashboard for SCADA tag servers",
		Long: `tagview polls a tag server's discovery endpoint, caches every tag's
metadata and renders it as a filterable, searchable table.

Run without a subcommand to open the interactive dashboard. The list, show
and health subcommands perform a single request and print the result.`,
		Version: versionString,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Run(cmd.Context(), flags.options()); err != nil {
				return printer.Error("tagview failed", err.Error(), []string{
					"Check the config file passed with --config (default ~/.config/tagview/config.toml).",
				})
			}
			return nil
		},
		FParseErrWhitelist: cobra.FParseErrWhitelist{},
		SilenceErrors:      true,
		SilenceUsage:       true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file path (default ~/.config/tagview/config.toml)")
	pf.StringVar(&flags.prefsPath, "prefs", "", "preferences file path (default ~/.config/tagview/prefs.toml)")
	pf.StringVar(&flags.apiBind, "api", "", "tag server address, overrides api_bind")
	pf.DurationVar(&flags.poll, "poll", 0, "refresh interval, overrides poll_interval (e.g. 2s)")

	root.AddCommand(
		newListCmd(flags),
		newShowCmd(flags),
		newHealthCmd(flags),
		newLogsCmd(flags),
	)
	return root
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	versionString = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

// setup loads the shared runtime, printing a formatted error on failure.
func setup(flags *globalFlags) (*app.Runtime, error) {
	rt, err := app.Setup(flags.options())
	if err != nil {
		return nil, printer.Error("Failed to load configuration", err.Error(), []string{
			"Fix the config file or pass a different one with --config.",
		})
	}
	return rt, nil
}

// refreshOnce performs a single fetch, printing a formatted error on failure.
func refreshOnce(ctx context.Context, rt *app.Runtime) (*app.Engine, error) {
	engine := rt.NewEngine(nil, nil)
	if err := engine.Refresh(ctx); err != nil {
		return nil, printer.ErrorWithContext("Failed to fetch tags", err.Error(),
			[][2]string{{"Server", rt.Client.BaseURL()}, {"Discovery path", rt.Config.DiscoveryPath}},
			[]string{
				"Start the tag server, or",
				"Point tagview at it with --api host:port",
			})
	}
	return engine, nil
}
