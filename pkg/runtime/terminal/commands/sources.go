package commands

import (
	"fmt"

	"github.com/de-tools/market-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

func NewSourcesCmd(backend Backend, reporter *export.Reporter) *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List configured data sources",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			registry, active, err := backend.Sources(ctx)
			if err != nil {
				return err
			}

			profiles, err := registry.GetProfiles(ctx)
			if err != nil {
				return fmt.Errorf("failed to list sources: %w", err)
			}

			return reporter.Sources(profiles, active)
		},
	}
}
