// Package format renders run summaries and reports as terminal or Markdown tables.
package format

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Mode controls the output format.
type Mode int

const (
	ASCII    Mode = iota // box-drawn terminal tables
	Markdown             // GitHub-flavoured Markdown tables
)

// ParseMode maps "ascii" or "markdown" (also "md") to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ascii", "text":
		return ASCII, nil
	case "markdown", "md":
		return Markdown, nil
	}
	return ASCII, fmt.Errorf("format: unknown mode %q (want ascii or markdown)", s)
}

func (m Mode) String() string {
	if m == Markdown {
		return "markdown"
	}
	return "ascii"
}

// Align is the horizontal alignment of a column.
type Align int

const (
	AlignDefault Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// Column configures one 1-based column.
type Column struct {
	Number   int
	Align    Align
	MaxWidth int // wrap beyond this width; 0 = unlimited
}

// Table is built once and rendered in the Mode chosen at creation.
type Table interface {
	Title(s string)
	Header(cols ...string)
	Row(vals ...any)
	Footer(vals ...any)
	Columns(cols ...Column)
	Len() int
	String() string
}

// NewTable returns a Table that renders in m.
func NewTable(m Mode) Table {
	w := table.NewWriter()
	if m == ASCII {
		w.SetStyle(table.StyleLight)
	}
	return &prettyTable{w: w, mode: m}
}

type prettyTable struct {
	w    table.Writer
	mode Mode
	rows int
}

func (t *prettyTable) Title(s string) { t.w.SetTitle(s) }

func (t *prettyTable) Header(cols ...string) {
	row := make(table.Row, len(cols))
	for i, c := range cols {
		row[i] = c
	}
	t.w.AppendHeader(row)
}

func (t *prettyTable) Row(vals ...any) {
	t.w.AppendRow(table.Row(append([]any(nil), vals...)))
	t.rows++
}

func (t *prettyTable) Footer(vals ...any) {
	t.w.AppendFooter(table.Row(append([]any(nil), vals...)))
}

func (t *prettyTable) Columns(cols ...Column) {
	cfgs := make([]table.ColumnConfig, len(cols))
	for i, c := range cols {
		cfgs[i] = table.ColumnConfig{
			Number:   c.Number,
			Align:    c.Align.text(),
			WidthMax: c.MaxWidth,
		}
	}
	t.w.SetColumnConfigs(cfgs)
}

func (t *prettyTable) Len() int { return t.rows }

func (t *prettyTable) String() string {
	if t.mode == Markdown {
		return t.w.RenderMarkdown()
	}
	return t.w.Render()
}

func (a Align) text() text.Align {
	switch a {
	case AlignLeft:
		return text.AlignLeft
	case AlignRight:
		return text.AlignRight
	case AlignCenter:
		return text.AlignCenter
	default:
		return text.AlignDefault
	}
}
