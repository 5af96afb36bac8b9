package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/charmbracelet/glamour"
	"github.com/de-tools/market-atlas/pkg/models/domain"
)

const DefaultStyle = "dark"

type TableConfig struct {
	LabelWidth int
	CellWidth  int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		LabelWidth: 32,
		CellWidth:  18,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
	style  string
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
		style:  DefaultStyle,
	}
}

// WithStyle sets the glamour style used by pretty markdown output.
func (c *Reporter) WithStyle(style string) *Reporter {
	c.style = style
	return c
}

const statementTableTmpl = `
{{.Symbol}} {{title .Kind}} {{.Year}}
Available years: {{years .AvailableYears}}{{if .RejectedRows}}
Rejected rows: {{.RejectedRows}}{{end}}

{{separator}}
{{formatRow "Metric" "Q1" "Q2" "Q3" "Q4" "YoY"}}
{{separator}}
{{range .Rows}}{{formatRow .Label (index .Quarters 0).Display (index .Quarters 1).Display (index .Quarters 2).Display (index .Quarters 3).Display .Change.Display}}
{{end}}{{separator}}
{{if .KPIs}}
=== Key figures ===
{{range .KPIs}}
{{.Label}}: {{.Value.Display}} ({{.Change.Display}})
{{end}}{{end}}`

const statementMarkdownTmpl = `# {{.Symbol}} {{title .Kind}} {{.Year}}

Available years: {{years .AvailableYears}}
{{if .KPIs}}
## Key figures

| Metric | Value | YoY |
|:---|---:|---:|
{{range .KPIs}}| {{.Label}} | {{.Value.Display}} | {{.Change.Display}} |
{{end}}{{end}}
## Statement

| Metric | Q1 | Q2 | Q3 | Q4 | YoY |
|:---|---:|---:|---:|---:|---:|
{{range .Rows}}| {{.Label}} | {{(index .Quarters 0).Display}} | {{(index .Quarters 1).Display}} | {{(index .Quarters 2).Display}} | {{(index .Quarters 3).Display}} | {{.Change.Display}} |
{{end}}`

func (c *Reporter) funcs() template.FuncMap {
	return template.FuncMap{
		"formatRow": func(label string, cells ...string) string {
			var b strings.Builder
			fmt.Fprintf(&b, "| %-*s |", c.config.LabelWidth, label)
			for _, cell := range cells {
				fmt.Fprintf(&b, " %*s |", c.config.CellWidth, cell)
			}
			return b.String()
		},
		"separator": func() string {
			cells := strings.Repeat(strings.Repeat("-", c.config.CellWidth+2)+"+", 5)
			return "+" + strings.Repeat("-", c.config.LabelWidth+2) + "+" + cells
		},
		"title": func(kind domain.StatementKind) string {
			return strings.ReplaceAll(string(kind), "-", " ")
		},
		"years": func(years []int) string {
			parts := make([]string, 0, len(years))
			for _, y := range years {
				parts = append(parts, fmt.Sprint(y))
			}
			return strings.Join(parts, ", ")
		},
	}
}

// Statement writes the view as a fixed-width text table.
func (c *Reporter) Statement(view domain.StatementView) error {
	t, err := template.New("statement").Funcs(c.funcs()).Parse(statementTableTmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(c.writer, view)
}

// StatementMarkdown writes the view as markdown, rendered for the terminal when pretty is set.
func (c *Reporter) StatementMarkdown(view domain.StatementView, pretty bool) error {
	t, err := template.New("statement-md").Funcs(c.funcs()).Parse(statementMarkdownTmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	var b strings.Builder
	if err := t.Execute(&b, view); err != nil {
		return err
	}

	out := b.String()
	if pretty {
		out, err = glamour.Render(out, c.style)
		if err != nil {
			return fmt.Errorf("failed to render markdown: %w", err)
		}
	}

	_, err = io.WriteString(c.writer, out)
	return err
}

func (c *Reporter) Symbols(symbols []domain.Symbol) error {
	if len(symbols) == 0 {
		_, err := fmt.Fprintln(c.writer, "No matching symbols.")
		return err
	}
	for _, s := range symbols {
		line := fmt.Sprintf("%-8s %s", s.Symbol, s.Name)
		if s.Exchange != "" {
			line += fmt.Sprintf(" (%s)", s.Exchange)
		}
		if _, err := fmt.Fprintln(c.writer, line); err != nil {
			return err
		}
	}
	return nil
}

func (c *Reporter) Sources(names []string, active string) error {
	for _, name := range names {
		marker := " "
		if name == active {
			marker = "*"
		}
		if _, err := fmt.Fprintf(c.writer, "%s %s\n", marker, name); err != nil {
			return err
		}
	}
	return nil
}
