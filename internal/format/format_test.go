package format_test

import (
	"strings"
	"testing"

	"iocccorg/internal/format"
)

func TestASCII_BasicTable(t *testing.T) {
	tb := format.NewTable(format.ASCII)
	tb.Header("Year", "Award", "Entry")
	tb.Row("2019", "Best one-liner", "bellard")
	tb.Row("1984", "Grand Prize", "mullender")
	out := tb.String()

	for _, want := range []string{"Best one-liner", "mullender", "───"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	if tb.Len() != 2 {
		t.Errorf("Len = %d, want 2", tb.Len())
	}
}

func TestMarkdown_BasicTable(t *testing.T) {
	tb := format.NewTable(format.Markdown)
	tb.Header("Field", "Found", "Coverage")
	tb.Row("award", 3, "75.0%")
	out := tb.String()

	if !strings.Contains(out, "| Field") {
		t.Errorf("expected markdown header with '| Field':\n%s", out)
	}
	if !strings.Contains(out, "---") {
		t.Errorf("expected markdown separator '---':\n%s", out)
	}
	if !strings.Contains(out, "75.0%") {
		t.Errorf("expected '75.0%%' in output:\n%s", out)
	}
}

func TestMarkdown_WithFooter(t *testing.T) {
	tb := format.NewTable(format.Markdown)
	tb.Header("Year", "Entries")
	tb.Row("1984", 1)
	tb.Row("2019", 2)
	tb.Footer("TOTAL", 3)
	out := tb.String()

	if !strings.Contains(out, "TOTAL") {
		t.Errorf("expected footer 'TOTAL' in output:\n%s", out)
	}
}

func TestColumns_RightAlign(t *testing.T) {
	tb := format.NewTable(format.ASCII)
	tb.Header("Name", "Value")
	tb.Row("rows", 12345)
	tb.Columns(format.Column{Number: 2, Align: format.AlignRight})
	if out := tb.String(); !strings.Contains(out, "12345") {
		t.Errorf("expected '12345' in output:\n%s", out)
	}
}

func TestSameData_DualFormat(t *testing.T) {
	build := func(m format.Mode) string {
		tb := format.NewTable(m)
		tb.Header("A", "B")
		tb.Row("x", "y")
		return tb.String()
	}
	ascii := build(format.ASCII)
	md := build(format.Markdown)
	if ascii == md {
		t.Error("ASCII and Markdown output should differ")
	}
	for _, out := range []string{ascii, md} {
		if !strings.Contains(out, "x") || !strings.Contains(out, "y") {
			t.Errorf("expected data in output:\n%s", out)
		}
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    format.Mode
		wantErr bool
	}{
		{"", format.ASCII, false},
		{"ascii", format.ASCII, false},
		{"Markdown", format.Markdown, false},
		{"md", format.Markdown, false},
		{"html", format.ASCII, true},
	}
	for _, tc := range tests {
		got, err := format.ParseMode(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseMode(%q) err = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

// --- Helper tests ---

func TestTruncate(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 8, "hello..."},
		{"abcdef", 3, "abc"},
		{"two\nlines", 20, "two lines"},
		{"Ünïcödé text", 6, "Ünï..."},
	}
	for _, tc := range tests {
		if got := format.Truncate(tc.in, tc.maxLen); got != tc.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tc.in, tc.maxLen, got, tc.want)
		}
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		part, total int
		want        string
	}{
		{0, 0, "-"},
		{0, 4, "0.0%"},
		{3, 4, "75.0%"},
		{1, 3, "33.3%"},
		{2, 2, "100.0%"},
	}
	for _, tc := range tests {
		if got := format.Percent(tc.part, tc.total); got != tc.want {
			t.Errorf("Percent(%d, %d) = %q, want %q", tc.part, tc.total, got, tc.want)
		}
	}
}

func TestBoolMark(t *testing.T) {
	if format.BoolMark(true) != "✓" || format.BoolMark(false) != "✗" {
		t.Error("BoolMark marks wrong")
	}
}
