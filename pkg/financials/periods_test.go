package financials

import (
	"testing"

	"github.com/de-tools/market-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func row(year, quarter int, values map[string]float64) domain.FinancialRow {
	if values == nil {
		values = map[string]float64{}
	}
	return domain.FinancialRow{Year: year, Quarter: quarter, Values: values}
}

func revenueFixture() []domain.FinancialRow {
	return []domain.FinancialRow{
		row(2022, 1, map[string]float64{"revenue": 50}),
		row(2023, 1, map[string]float64{"revenue": 100}),
		row(2022, 2, map[string]float64{"revenue": 150}),
		row(2023, 2, map[string]float64{"revenue": 200}),
	}
}

func TestPeriods_YearsDescending(t *testing.T) {
	p := NewPeriods(append(revenueFixture(), row(2020, 3, nil)))
	assert.Equal(t, []int{2023, 2022, 2020}, p.YearsDescending())

	assert.Empty(t, NewPeriods(nil).YearsDescending())
}

func TestPeriods_RowsForYear(t *testing.T) {
	p := NewPeriods([]domain.FinancialRow{
		row(2023, 1, nil),
		row(2023, 4, nil),
		row(2022, 3, nil),
		row(2023, 2, nil),
	})

	rows := p.RowsForYear(2023)
	quarters := make([]int, 0, len(rows))
	for _, r := range rows {
		quarters = append(quarters, r.Quarter)
	}
	assert.Equal(t, []int{4, 2, 1}, quarters)
	assert.Empty(t, p.RowsForYear(2019))
}

func TestPeriods_SumYear(t *testing.T) {
	p := NewPeriods(append(revenueFixture(), row(2021, 1, map[string]float64{"gross_profit": 5})))

	tests := []struct {
		name     string
		year     int
		field    string
		expected float64
	}{
		{name: "current year", year: 2023, field: "revenue", expected: 300},
		{name: "prior year", year: 2022, field: "revenue", expected: 200},
		{name: "missing field counts as zero", year: 2021, field: "revenue", expected: 0},
		{name: "year without rows", year: 2010, field: "revenue", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, p.SumYear(tt.year, tt.field))
		})
	}
}

func TestPeriods_LatestQuarterOfYear(t *testing.T) {
	p := NewPeriods([]domain.FinancialRow{
		row(2023, 1, nil),
		row(2023, 3, nil),
		row(2022, 4, nil),
	})

	q, ok := p.LatestQuarterOfYear(2023)
	assert.True(t, ok)
	assert.Equal(t, 3, q)

	q, ok = p.LatestQuarterOfYear(2022)
	assert.True(t, ok)
	assert.Equal(t, 4, q)

	_, ok = p.LatestQuarterOfYear(2021)
	assert.False(t, ok)
}

func TestPeriods_LatestQuarterOutOfRange(t *testing.T) {
	// rows built by hand can bypass normalization
	p := NewPeriods([]domain.FinancialRow{row(2023, 7, nil)})

	_, ok := p.LatestQuarterOfYear(2023)
	assert.False(t, ok)
}

func TestPeriods_DoesNotAliasInput(t *testing.T) {
	rows := revenueFixture()
	p := NewPeriods(rows)
	rows[0] = row(1999, 1, nil)

	assert.NotContains(t, p.YearsDescending(), 1999)
}
