package commands

import (
	"fmt"

	"github.com/de-tools/market-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

type SearchCmd struct {
	query    string
	limit    int
	backend  Backend
	reporter *export.Reporter
}

func NewSearchCmd(backend Backend, reporter *export.Reporter) *cobra.Command {
	sc := &SearchCmd{backend: backend, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search listed companies by symbol or name",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.query, "query", "", "Symbol or company name fragment")
	cmd.Flags().IntVar(&sc.limit, "limit", 10, "Maximum number of suggestions")

	_ = cmd.MarkFlagRequired("query")

	return cmd
}

func (sc *SearchCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	svc, err := sc.backend.Lookup(ctx)
	if err != nil {
		return err
	}

	if _, err := svc.Refresh(ctx); err != nil {
		return fmt.Errorf("failed to load symbol directory: %w", err)
	}

	found, err := svc.Suggest(ctx, sc.query, sc.limit)
	if err != nil {
		return fmt.Errorf("failed to search symbols: %w", err)
	}

	return sc.reporter.Symbols(found)
}
