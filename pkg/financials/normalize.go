package financials

import (
	"errors"
	"fmt"
	"math"

	"github.com/de-tools/market-atlas/pkg/models/domain"
)

const (
	yearKey    = "year"
	quarterKey = "quarter"

	minYear = 1000
	maxYear = 9999
)

var (
	ErrInvalidPeriod   = errors.New("invalid year or quarter")
	ErrDuplicatePeriod = errors.New("duplicate year and quarter")
)

// identifierKeys are carried by upstream records but are not line items.
var identifierKeys = map[string]struct{}{
	"symbol": {},
	"ticker": {},
}

// Rejection records a raw record that did not make it into the dataset.
type Rejection struct {
	Index int
	Err   error
}

// NormalizeRow validates the period of a raw record and coerces its line items.
// Fields that cannot be read as numbers are left out of the row.
func NormalizeRow(raw map[string]any) (domain.FinancialRow, error) {
	year, ok := periodValue(raw[yearKey])
	if !ok || year < minYear || year > maxYear {
		return domain.FinancialRow{}, fmt.Errorf("%w: year %v", ErrInvalidPeriod, raw[yearKey])
	}
	quarter, ok := periodValue(raw[quarterKey])
	if !ok || quarter < 1 || quarter > 4 {
		return domain.FinancialRow{}, fmt.Errorf("%w: quarter %v", ErrInvalidPeriod, raw[quarterKey])
	}

	values := make(map[string]float64, len(raw))
	for key, v := range raw {
		if key == yearKey || key == quarterKey {
			continue
		}
		if _, skip := identifierKeys[key]; skip {
			continue
		}
		if f, ok := Coerce(v); ok {
			values[key] = f
		}
	}

	return domain.FinancialRow{Year: year, Quarter: quarter, Values: values}, nil
}

// NormalizeRows normalizes a dataset. The first record of a (year, quarter) pair wins;
// later ones are rejected.
func NormalizeRows(raw []map[string]any) ([]domain.FinancialRow, []Rejection) {
	rows := make([]domain.FinancialRow, 0, len(raw))
	var rejected []Rejection
	seen := make(map[[2]int]struct{}, len(raw))

	for i, record := range raw {
		row, err := NormalizeRow(record)
		if err != nil {
			rejected = append(rejected, Rejection{Index: i, Err: err})
			continue
		}
		key := [2]int{row.Year, row.Quarter}
		if _, dup := seen[key]; dup {
			rejected = append(rejected, Rejection{
				Index: i,
				Err:   fmt.Errorf("%w: %d Q%d", ErrDuplicatePeriod, row.Year, row.Quarter),
			})
			continue
		}
		seen[key] = struct{}{}
		rows = append(rows, row)
	}

	return rows, rejected
}

func periodValue(v any) (int, bool) {
	f, ok := Coerce(v)
	if !ok || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(math.Trunc(f)), true
}
