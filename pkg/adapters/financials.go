package adapters

import (
	"github.com/de-tools/market-atlas/pkg/models/api"
	"github.com/de-tools/market-atlas/pkg/models/domain"
)

func MapStatementViewDomainToApi(view domain.StatementView) api.StatementView {
	result := api.StatementView{
		Symbol:         view.Symbol,
		Statement:      string(view.Kind),
		Year:           view.Year,
		AvailableYears: append([]int{}, view.AvailableYears...),
		Rows:           make([]api.MetricRow, 0, len(view.Rows)),
		KPIs:           make([]api.KPI, 0, len(view.KPIs)),
		RejectedRows:   view.RejectedRows,
	}

	for _, r := range view.Rows {
		quarters := make([]api.Cell, 0, len(r.Quarters))
		for _, c := range r.Quarters {
			quarters = append(quarters, MapCellDomainToApi(c))
		}
		result.Rows = append(result.Rows, api.MetricRow{
			Label:    r.Label,
			Field:    r.Field,
			Mode:     string(r.Mode),
			Quarters: quarters,
			YoY:      MapCellDomainToApi(r.Change),
		})
	}

	for _, k := range view.KPIs {
		result.KPIs = append(result.KPIs, api.KPI{
			Label: k.Label,
			Field: k.Field,
			Mode:  string(k.Mode),
			Value: MapCellDomainToApi(k.Value),
			YoY:   MapCellDomainToApi(k.Change),
		})
	}

	return result
}

func MapCellDomainToApi(c domain.Cell) api.Cell {
	cell := api.Cell{Display: c.Display}
	if c.Value != nil {
		v := *c.Value
		cell.Value = &v
	}
	return cell
}
