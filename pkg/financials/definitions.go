package financials

import (
	"errors"
	"fmt"

	"github.com/de-tools/market-atlas/pkg/models/domain"
)

var ErrUnknownStatement = errors.New("unknown statement")

type statementDefinition struct {
	table []domain.MetricDefinition
	kpis  []domain.MetricDefinition
}

var incomeDefinition = statementDefinition{
	table: []domain.MetricDefinition{
		{Label: "Revenue", Field: "revenue", Mode: domain.ModeAnnual},
		{Label: "Cost of goods sold", Field: "cost_of_goods_sold", Mode: domain.ModeAnnual},
		{Label: "Gross profit", Field: "gross_profit", Mode: domain.ModeAnnual},
		{Label: "Financial income", Field: "financial_income", Mode: domain.ModeAnnual},
		{Label: "Financial expenses", Field: "financial_expenses", Mode: domain.ModeAnnual},
		{Label: "Selling expenses", Field: "selling_expenses", Mode: domain.ModeAnnual},
		{Label: "General and admin expenses", Field: "general_and_admin_expenses", Mode: domain.ModeAnnual},
		{Label: "Operating profit", Field: "operating_profit_loss", Mode: domain.ModeAnnual},
		{Label: "Profit before tax", Field: "net_profit_loss_before_tax", Mode: domain.ModeAnnual},
		{Label: "Profit after tax", Field: "net_profit_loss_after_tax", Mode: domain.ModeAnnual},
	},
	kpis: []domain.MetricDefinition{
		{Label: "Revenue", Field: "revenue", Mode: domain.ModeAnnual},
		{Label: "Gross profit", Field: "gross_profit", Mode: domain.ModeAnnual},
		{Label: "Profit after tax", Field: "net_profit_loss_after_tax", Mode: domain.ModeAnnual},
	},
}

// Balance sheet items are positions at a point in time, so they compare the latest quarter.
var balanceSheetDefinition = statementDefinition{
	table: []domain.MetricDefinition{
		{Label: "Cash and cash equivalents", Field: "cash_and_cash_equivalents", Mode: domain.ModeQuarterLatest},
		{Label: "Short-term investments", Field: "short_term_investments", Mode: domain.ModeQuarterLatest},
		{Label: "Accounts receivable", Field: "accounts_receivable", Mode: domain.ModeQuarterLatest},
		{Label: "Inventories", Field: "inventories", Mode: domain.ModeQuarterLatest},
		{Label: "Total current assets", Field: "total_current_assets", Mode: domain.ModeQuarterLatest},
		{Label: "Fixed assets", Field: "fixed_assets", Mode: domain.ModeQuarterLatest},
		{Label: "Total assets", Field: "total_assets", Mode: domain.ModeQuarterLatest},
		{Label: "Short-term liabilities", Field: "short_term_liabilities", Mode: domain.ModeQuarterLatest},
		{Label: "Long-term liabilities", Field: "long_term_liabilities", Mode: domain.ModeQuarterLatest},
		{Label: "Total liabilities", Field: "total_liabilities", Mode: domain.ModeQuarterLatest},
		{Label: "Owners' equity", Field: "owners_equity", Mode: domain.ModeQuarterLatest},
	},
	kpis: []domain.MetricDefinition{
		{Label: "Total assets", Field: "total_assets", Mode: domain.ModeQuarterLatest},
		{Label: "Total liabilities", Field: "total_liabilities", Mode: domain.ModeQuarterLatest},
		{Label: "Owners' equity", Field: "owners_equity", Mode: domain.ModeQuarterLatest},
	},
}

var cashFlowDefinition = statementDefinition{
	table: []domain.MetricDefinition{
		{Label: "Profit before tax", Field: "net_profit_loss_before_tax", Mode: domain.ModeAnnual},
		{Label: "Depreciation and amortisation", Field: "depreciation_and_amortisation", Mode: domain.ModeAnnual},
		{Label: "Net cash from operating activities", Field: "net_cash_flows_from_operating_activities", Mode: domain.ModeAnnual},
		{Label: "Purchase of fixed assets", Field: "purchase_of_fixed_assets", Mode: domain.ModeAnnual},
		{Label: "Net cash from investing activities", Field: "net_cash_flows_from_investing_activities", Mode: domain.ModeAnnual},
		{Label: "Dividends paid", Field: "dividends_paid", Mode: domain.ModeAnnual},
		{Label: "Net cash from financing activities", Field: "net_cash_flows_from_financing_activities", Mode: domain.ModeAnnual},
		{Label: "Net change in cash", Field: "net_increase_decrease_in_cash", Mode: domain.ModeAnnual},
		{Label: "Cash and cash equivalents", Field: "cash_and_cash_equivalents", Mode: domain.ModeQuarterLatest},
	},
	kpis: []domain.MetricDefinition{
		{Label: "Operating cash flow", Field: "net_cash_flows_from_operating_activities", Mode: domain.ModeAnnual},
		{Label: "Investing cash flow", Field: "net_cash_flows_from_investing_activities", Mode: domain.ModeAnnual},
		{Label: "Financing cash flow", Field: "net_cash_flows_from_financing_activities", Mode: domain.ModeAnnual},
		{Label: "Cash and cash equivalents", Field: "cash_and_cash_equivalents", Mode: domain.ModeQuarterLatest},
	},
}

var definitions = map[domain.StatementKind]statementDefinition{
	domain.StatementIncome:       incomeDefinition,
	domain.StatementBalanceSheet: balanceSheetDefinition,
	domain.StatementCashFlow:     cashFlowDefinition,
}

// StatementKinds lists the supported statements in display order.
func StatementKinds() []domain.StatementKind {
	return []domain.StatementKind{
		domain.StatementIncome,
		domain.StatementBalanceSheet,
		domain.StatementCashFlow,
	}
}

func ParseStatementKind(s string) (domain.StatementKind, error) {
	kind := domain.StatementKind(s)
	if _, ok := definitions[kind]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatement, s)
	}
	return kind, nil
}

// Definitions returns the table metrics and KPI metrics of a statement.
func Definitions(kind domain.StatementKind) (table, kpis []domain.MetricDefinition, err error) {
	def, ok := definitions[kind]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownStatement, kind)
	}
	return def.table, def.kpis, nil
}
