package api

type Cell struct {
	Value   *float64 `json:"value"`
	Display string   `json:"display"`
}

type MetricRow struct {
	Label    string `json:"label"`
	Field    string `json:"field"`
	Mode     string `json:"mode"`
	Quarters []Cell `json:"quarters"` // Q1..Q4
	YoY      Cell   `json:"yoy"`
}

type KPI struct {
	Label string `json:"label"`
	Field string `json:"field"`
	Mode  string `json:"mode"`
	Value Cell   `json:"value"`
	YoY   Cell   `json:"yoy"`
}

type StatementView struct {
	Symbol         string      `json:"symbol"`
	Statement      string      `json:"statement"`
	Year           int         `json:"year"`
	AvailableYears []int       `json:"available_years"`
	Rows           []MetricRow `json:"rows"`
	KPIs           []KPI       `json:"kpis"`
	RejectedRows   int         `json:"rejected_rows"`
}
