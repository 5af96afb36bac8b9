package financials

import (
	"slices"

	"github.com/de-tools/market-atlas/pkg/models/domain"
)

// Periods groups normalized rows by year. Every query scans the full row set; datasets hold a
// few dozen rows per company.
type Periods struct {
	rows []domain.FinancialRow
}

func NewPeriods(rows []domain.FinancialRow) Periods {
	return Periods{rows: slices.Clone(rows)}
}

func (p Periods) Len() int {
	return len(p.rows)
}

// YearsDescending returns the distinct years present, newest first.
func (p Periods) YearsDescending() []int {
	years := make([]int, 0, len(p.rows))
	for _, r := range p.rows {
		if !slices.Contains(years, r.Year) {
			years = append(years, r.Year)
		}
	}
	slices.Sort(years)
	slices.Reverse(years)
	return years
}

// RowsForYear returns the rows of a year, latest quarter first.
func (p Periods) RowsForYear(year int) []domain.FinancialRow {
	var rows []domain.FinancialRow
	for _, r := range p.rows {
		if r.Year == year {
			rows = append(rows, r)
		}
	}
	slices.SortFunc(rows, func(a, b domain.FinancialRow) int {
		return b.Quarter - a.Quarter
	})
	return rows
}

func (p Periods) Row(year, quarter int) (domain.FinancialRow, bool) {
	for _, r := range p.rows {
		if r.Year == year && r.Quarter == quarter {
			return r, true
		}
	}
	return domain.FinancialRow{}, false
}

// SumYear adds a field over every quarter of a year. Missing values count as zero and a year
// without rows sums to zero.
func (p Periods) SumYear(year int, field string) float64 {
	var sum float64
	for _, r := range p.rows {
		if r.Year != year {
			continue
		}
		v, _ := r.Value(field)
		sum += v
	}
	return sum
}

// LatestQuarterOfYear returns the highest quarter present for a year.
func (p Periods) LatestQuarterOfYear(year int) (int, bool) {
	latest := 0
	for _, r := range p.rows {
		if r.Year == year && r.Quarter > latest {
			latest = r.Quarter
		}
	}
	if latest < 1 || latest > 4 {
		return 0, false
	}
	return latest, true
}
