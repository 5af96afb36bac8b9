package financials

import (
	"errors"
	"fmt"
	"slices"

	"github.com/de-tools/market-atlas/pkg/models/domain"
)

var (
	ErrNoData       = errors.New("no financial data")
	ErrYearNotFound = errors.New("year not available")
)

// ViewOptions controls how a statement view is built. A zero Year selects the latest year.
type ViewOptions struct {
	Year         int
	Currency     string
	RejectedRows int
}

// BuildStatementView derives the quarterly table and KPI cards of a statement for one year.
func BuildStatementView(
	kind domain.StatementKind,
	rows []domain.FinancialRow,
	opts ViewOptions,
) (domain.StatementView, error) {
	table, kpis, err := Definitions(kind)
	if err != nil {
		return domain.StatementView{}, err
	}

	periods := NewPeriods(rows)
	years := periods.YearsDescending()
	if len(years) == 0 {
		return domain.StatementView{}, ErrNoData
	}

	year := opts.Year
	if year == 0 {
		year = years[0]
	}
	if !slices.Contains(years, year) {
		return domain.StatementView{}, fmt.Errorf("%w: %d", ErrYearNotFound, year)
	}

	view := domain.StatementView{
		Kind:           kind,
		Year:           year,
		AvailableYears: years,
		Rows:           make([]domain.MetricRow, 0, len(table)),
		KPIs:           make([]domain.KPI, 0, len(kpis)),
		RejectedRows:   opts.RejectedRows,
	}

	for _, def := range table {
		row := domain.MetricRow{
			Label:  def.Label,
			Field:  def.Field,
			Mode:   def.Mode,
			Change: percentCell(YoY(periods, def.Field, def.Mode, year)),
		}
		for q := 1; q <= 4; q++ {
			row.Quarters[q-1] = numberCell(quarterValue(periods, year, q, def.Field))
		}
		view.Rows = append(view.Rows, row)
	}

	for _, def := range kpis {
		v, ok := MetricValue(periods, def.Field, def.Mode, year)
		view.KPIs = append(view.KPIs, domain.KPI{
			Label:  def.Label,
			Field:  def.Field,
			Mode:   def.Mode,
			Value:  domain.Cell{Value: ptr(v, ok), Display: FormatMoney(v, ok, opts.Currency)},
			Change: percentCell(YoY(periods, def.Field, def.Mode, year)),
		})
	}

	return view, nil
}

func numberCell(v float64, ok bool) domain.Cell {
	return domain.Cell{Value: ptr(v, ok), Display: FormatNumber(v, ok)}
}

func percentCell(v float64, ok bool) domain.Cell {
	return domain.Cell{Value: ptr(v, ok), Display: FormatPercent(v, ok)}
}

func ptr(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &v
}
