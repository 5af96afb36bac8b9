package domain

import "fmt"

// SourceConfig describes one upstream data source profile.
type SourceConfig struct {
	Name     string
	Host     string
	Token    string
	RowsPath string // JSONPath selecting the payload inside a response envelope
}

func (c SourceConfig) String() string {
	return fmt.Sprintf("%s:%s", c.Name, c.Host)
}
