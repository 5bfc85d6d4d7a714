package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Iron-Ham/prodpath/internal/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// Colors for text output
var (
	labelColor = lipgloss.Color("#A78BFA") // Purple
	valueColor = lipgloss.Color("#10B981") // Green
	mutedColor = lipgloss.Color("#9CA3AF") // Gray
)

// printer writes command results in the configured format. Text output is
// styled with a renderer bound to the destination writer, so styling drops
// out automatically when the writer is not a terminal.
type printer struct {
	w      io.Writer
	format string

	label lipgloss.Style
	value lipgloss.Style
	muted lipgloss.Style
}

func newPrinter(w io.Writer, cfg config.OutputConfig) *printer {
	p := &printer{w: w, format: cfg.Format}
	r := lipgloss.NewRenderer(w)
	p.label = r.NewStyle()
	p.value = r.NewStyle()
	p.muted = r.NewStyle()
	if cfg.Color {
		p.label = p.label.Foreground(labelColor).Bold(true)
		p.value = p.value.Foreground(valueColor)
		p.muted = p.muted.Foreground(mutedColor)
	}
	return p
}

func (p *printer) structured() bool {
	return p.format == config.FormatJSON || p.format == config.FormatYAML
}

// encode writes v as JSON or YAML.
func (p *printer) encode(v any) error {
	switch p.format {
	case config.FormatJSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case config.FormatYAML:
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", p.format)
	}
}

// field prints "label: value" with the label padded to width.
func (p *printer) field(width int, label string, value any) {
	fmt.Fprintf(p.w, "%s %s\n", p.label.Render(fmt.Sprintf("%-*s", width, label+":")), p.value.Render(fmt.Sprint(value)))
}

func (p *printer) note(msg string) {
	fmt.Fprintln(p.w, p.muted.Render(msg))
}

// table prints rows in borderless, left-aligned columns.
func (p *printer) table(header []string, rows [][]string) {
	tbl := tablewriter.NewWriter(p.w)
	tbl.SetHeader(header)
	tbl.SetAutoFormatHeaders(false)
	tbl.SetAutoWrapText(false)
	tbl.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tbl.SetAlignment(tablewriter.ALIGN_LEFT)
	tbl.SetBorder(false)
	tbl.SetHeaderLine(false)
	tbl.SetCenterSeparator("")
	tbl.SetColumnSeparator("")
	tbl.SetRowSeparator("")
	tbl.SetTablePadding("  ")
	tbl.SetNoWhiteSpace(true)
	tbl.AppendBulk(rows)
	tbl.Render()
}
