package api

type Error struct {
	Error       string   `json:"error"`
	Retryable   bool     `json:"retryable"`
	Suggestions []Symbol `json:"suggestions,omitempty"`
}

type Health struct {
	Status  string `json:"status"`
	Symbols int    `json:"symbols"`
}
