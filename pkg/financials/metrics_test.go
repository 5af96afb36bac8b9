package financials

import (
	"testing"

	"github.com/de-tools/market-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func TestYoY_Annual(t *testing.T) {
	p := NewPeriods(revenueFixture())

	v, ok := YoY(p, "revenue", domain.ModeAnnual, 2023)
	assert.True(t, ok)
	assert.InDelta(t, 50.0, v, 1e-9)

	_, ok = YoY(p, "revenue", domain.ModeAnnual, 2022)
	assert.False(t, ok, "no 2021 rows means a zero prior sum")

	_, ok = YoY(p, "gross_profit", domain.ModeAnnual, 2023)
	assert.False(t, ok)
}

func TestYoY_AnnualNegativeBase(t *testing.T) {
	p := NewPeriods([]domain.FinancialRow{
		row(2022, 1, map[string]float64{"net_profit_loss_after_tax": -200}),
		row(2023, 1, map[string]float64{"net_profit_loss_after_tax": -100}),
	})

	v, ok := YoY(p, "net_profit_loss_after_tax", domain.ModeAnnual, 2023)
	assert.True(t, ok)
	assert.InDelta(t, 50.0, v, 1e-9, "a smaller loss is growth")
}

func TestYoY_AnnualMatchesFormula(t *testing.T) {
	p := NewPeriods([]domain.FinancialRow{
		row(2022, 1, map[string]float64{"revenue": 12.5}),
		row(2022, 2, map[string]float64{"revenue": 7.25}),
		row(2022, 3, nil),
		row(2023, 1, map[string]float64{"revenue": 3.1}),
		row(2023, 4, map[string]float64{"revenue": 40}),
	})

	cur, prev := p.SumYear(2023, "revenue"), p.SumYear(2022, "revenue")
	v, ok := YoY(p, "revenue", domain.ModeAnnual, 2023)
	assert.True(t, ok)
	assert.InDelta(t, (cur-prev)/prev*100, v, 1e-9)
}

func TestYoY_QuarterLatest(t *testing.T) {
	field := "cash_and_cash_equivalents"

	tests := []struct {
		name     string
		rows     []domain.FinancialRow
		year     int
		expected float64
		ok       bool
	}{
		{
			name: "same quarter prior year",
			rows: []domain.FinancialRow{
				row(2022, 2, map[string]float64{field: 400}),
				row(2023, 1, map[string]float64{field: 100}),
				row(2023, 2, map[string]float64{field: 500}),
			},
			year:     2023,
			expected: 25,
			ok:       true,
		},
		{
			name: "no matching prior quarter",
			rows: []domain.FinancialRow{
				row(2022, 1, map[string]float64{field: 400}),
				row(2023, 2, map[string]float64{field: 500}),
			},
			year: 2023,
		},
		{
			name: "current value missing",
			rows: []domain.FinancialRow{
				row(2022, 2, map[string]float64{field: 400}),
				row(2023, 2, nil),
			},
			year: 2023,
		},
		{
			name: "zero prior value",
			rows: []domain.FinancialRow{
				row(2022, 2, map[string]float64{field: 0}),
				row(2023, 2, map[string]float64{field: 500}),
			},
			year: 2023,
		},
		{
			name: "year without rows",
			rows: []domain.FinancialRow{row(2022, 2, map[string]float64{field: 400})},
			year: 2023,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := YoY(NewPeriods(tt.rows), field, domain.ModeQuarterLatest, tt.year)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.expected, v, 1e-9)
			}
		})
	}
}

func TestYoY_UnknownMode(t *testing.T) {
	_, ok := YoY(NewPeriods(revenueFixture()), "revenue", domain.Mode("weekly"), 2023)
	assert.False(t, ok)
}

func TestMetricValue(t *testing.T) {
	p := NewPeriods([]domain.FinancialRow{
		row(2023, 1, map[string]float64{"revenue": 100, "cash_and_cash_equivalents": 10}),
		row(2023, 3, map[string]float64{"revenue": 50}),
	})

	v, ok := MetricValue(p, "revenue", domain.ModeAnnual, 2023)
	assert.True(t, ok)
	assert.Equal(t, 150.0, v)

	_, ok = MetricValue(p, "revenue", domain.ModeAnnual, 2022)
	assert.False(t, ok)

	_, ok = MetricValue(p, "cash_and_cash_equivalents", domain.ModeQuarterLatest, 2023)
	assert.False(t, ok, "latest quarter carries no cash figure")

	v, ok = MetricValue(p, "revenue", domain.ModeQuarterLatest, 2023)
	assert.True(t, ok)
	assert.Equal(t, 50.0, v)
}
