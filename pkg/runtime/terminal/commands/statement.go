package commands

import (
	"fmt"

	"github.com/de-tools/market-atlas/pkg/financials"
	"github.com/de-tools/market-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

const (
	FormatTable    = "table"
	FormatMarkdown = "markdown"
)

type StatementCmd struct {
	symbol    string
	statement string
	year      int
	format    string
	pretty    bool
	backend   Backend
	reporter  *export.Reporter
}

func NewStatementCmd(backend Backend, reporter *export.Reporter) *cobra.Command {
	sc := &StatementCmd{backend: backend, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "statement",
		Short: "Show a financial statement with year over year changes",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.symbol, "symbol", "", "Ticker symbol (e.g., FPT)")
	cmd.Flags().StringVar(&sc.statement, "statement", "", "Statement kind: income, balance-sheet or cash-flow")
	cmd.Flags().IntVar(&sc.year, "year", 0, "Fiscal year (default is the latest available)")
	cmd.Flags().StringVar(&sc.format, "format", FormatTable, "Output format: table or markdown")
	cmd.Flags().BoolVar(&sc.pretty, "pretty", false, "Render markdown output for the terminal")

	_ = cmd.MarkFlagRequired("symbol")
	_ = cmd.MarkFlagRequired("statement")

	return cmd
}

func (sc *StatementCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	kind, err := financials.ParseStatementKind(sc.statement)
	if err != nil {
		return fmt.Errorf("%w (supported: %v)", err, financials.StatementKinds())
	}
	if sc.format != FormatTable && sc.format != FormatMarkdown {
		return fmt.Errorf("unsupported format %q", sc.format)
	}

	svc, err := sc.backend.Market(ctx)
	if err != nil {
		return err
	}

	view, err := svc.GetStatement(ctx, kind, sc.symbol, sc.year)
	if err != nil {
		return fmt.Errorf("failed to build statement: %w", err)
	}

	if sc.format == FormatMarkdown {
		return sc.reporter.StatementMarkdown(view, sc.pretty)
	}
	return sc.reporter.Statement(view)
}
