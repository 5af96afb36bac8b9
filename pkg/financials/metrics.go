package financials

import (
	"math"

	"github.com/de-tools/market-atlas/pkg/models/domain"
)

// YoY returns the year-over-year change of a field in percent. The second return value is false
// when the change is undefined: no prior value, a zero prior value, or no quarter to compare.
func YoY(p Periods, field string, mode domain.Mode, year int) (float64, bool) {
	switch mode {
	case domain.ModeAnnual:
		return change(p.SumYear(year, field), p.SumYear(year-1, field))
	case domain.ModeQuarterLatest:
		q, ok := p.LatestQuarterOfYear(year)
		if !ok {
			return 0, false
		}
		cur, ok := quarterValue(p, year, q, field)
		if !ok {
			return 0, false
		}
		prev, ok := quarterValue(p, year-1, q, field)
		if !ok {
			return 0, false
		}
		return change(cur, prev)
	default:
		return 0, false
	}
}

// MetricValue returns the headline value of a metric for a year: the annual sum, or the value
// of the latest quarter.
func MetricValue(p Periods, field string, mode domain.Mode, year int) (float64, bool) {
	switch mode {
	case domain.ModeAnnual:
		if len(p.RowsForYear(year)) == 0 {
			return 0, false
		}
		return p.SumYear(year, field), true
	case domain.ModeQuarterLatest:
		q, ok := p.LatestQuarterOfYear(year)
		if !ok {
			return 0, false
		}
		return quarterValue(p, year, q, field)
	default:
		return 0, false
	}
}

func quarterValue(p Periods, year, quarter int, field string) (float64, bool) {
	row, ok := p.Row(year, quarter)
	if !ok {
		return 0, false
	}
	return row.Value(field)
}

func change(cur, prev float64) (float64, bool) {
	if prev == 0 || math.IsNaN(prev) || math.IsInf(prev, 0) {
		return 0, false
	}
	return finite((cur - prev) / math.Abs(prev) * 100)
}
