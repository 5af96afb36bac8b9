package terminal

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/de-tools/market-atlas/pkg/runtime/app"
	"github.com/de-tools/market-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/market-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/market-atlas/pkg/services/config"
	"github.com/de-tools/market-atlas/pkg/services/lookup"
	"github.com/de-tools/market-atlas/pkg/services/market"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const DefaultSourcesFile = ".atlascfg"

// CLI represents the command-line interface
type CLI struct {
	reporter *export.Reporter
	rootCmd  *cobra.Command
	logOut   io.Writer

	sourcesPath  string
	profile      string
	settingsPath string

	settings *config.Settings
	logger   zerolog.Logger
	registry config.Registry
	app      *app.App
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
	// LogOutput receives diagnostics. Defaults to stderr so reports stay clean on stdout.
	LogOutput io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stderr
	}

	cli := &CLI{
		reporter: export.NewReporter(opts.Output),
		logOut:   opts.LogOutput,
		logger:   zerolog.Nop(),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	defer cli.close()
	return cli.rootCmd.Execute()
}

// SetArgs overrides the process arguments.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "atlas",
		Short:         "Financial statements and year over year metrics",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := config.LoadSettings(cli.settingsPath)
			if err != nil {
				return err
			}
			cli.settings = settings

			cli.logger = config.NewLogger(settings.Log, cli.logOut)
			cmd.SetContext(cli.logger.WithContext(cmd.Context()))
			return nil
		},
	}

	defaultSources := DefaultSourcesFile
	if home, err := os.UserHomeDir(); err == nil {
		defaultSources = filepath.Join(home, DefaultSourcesFile)
	}

	cmd.PersistentFlags().StringVar(&cli.sourcesPath, "sources", defaultSources, "Path to the data sources file")
	cmd.PersistentFlags().StringVar(&cli.profile, "profile", "", "Data source profile (default from settings)")
	cmd.PersistentFlags().StringVar(&cli.settingsPath, "config", "", "Path to a settings file")

	cmd.AddCommand(commands.NewStatementCmd(cli, cli.reporter))
	cmd.AddCommand(commands.NewSearchCmd(cli, cli.reporter))
	cmd.AddCommand(commands.NewSourcesCmd(cli, cli.reporter))

	return cmd
}

func (cli *CLI) activeProfile() string {
	if cli.profile != "" {
		return cli.profile
	}
	if cli.settings != nil {
		return cli.settings.Upstream.Profile
	}
	return ""
}

func (cli *CLI) Sources(_ context.Context) (config.Registry, string, error) {
	if cli.registry == nil {
		registry, err := config.NewRegistry(cli.sourcesPath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create config registry: %w", err)
		}
		cli.registry = registry
	}
	return cli.registry, cli.activeProfile(), nil
}

func (cli *CLI) open(ctx context.Context) (*app.App, error) {
	if cli.app != nil {
		return cli.app, nil
	}

	registry, profile, err := cli.Sources(ctx)
	if err != nil {
		return nil, err
	}

	a, err := app.Open(ctx, app.Options{
		Sources:  registry,
		Settings: cli.settings,
		Profile:  profile,
	})
	if err != nil {
		return nil, err
	}
	cli.app = a
	return a, nil
}

func (cli *CLI) Market(ctx context.Context) (market.Service, error) {
	a, err := cli.open(ctx)
	if err != nil {
		return nil, err
	}
	return a.Market, nil
}

func (cli *CLI) Lookup(ctx context.Context) (lookup.Service, error) {
	a, err := cli.open(ctx)
	if err != nil {
		return nil, err
	}
	return a.Lookup, nil
}

func (cli *CLI) close() {
	if cli.app == nil {
		return
	}
	if err := cli.app.Close(); err != nil {
		cli.logger.Warn().Err(err).Msg("failed to close database")
	}
}
