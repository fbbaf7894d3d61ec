package main

import (
	"fmt"
	"io"
	"sort"

	"iocccorg/internal/curate"
	"iocccorg/internal/format"
	"iocccorg/internal/manifest"
	"iocccorg/internal/organize"
	"iocccorg/internal/store"
)

const (
	authorsWidth = 40
	summaryWidth = 60
	outputWidth  = 60
)

// printTable writes tb, or a placeholder line when it has no rows.
func printTable(w io.Writer, tb format.Table) {
	if tb.Len() == 0 {
		fmt.Fprintln(w, "No entries.")
		return
	}
	fmt.Fprintln(w, tb.String())
}

// summaryTable shows how many records got each field from real evidence.
func summaryTable(res *organize.Result, mode format.Mode) format.Table {
	stats := res.Completeness
	tb := format.NewTable(mode)
	tb.Title("Field coverage")
	tb.Header("Field", "Inferred", "Defaulted", "Coverage")
	for _, field := range []string{curate.FieldAward, curate.FieldAuthors, curate.FieldSummary} {
		found := stats.Found[field]
		tb.Row(field, found, stats.Records-found, format.Percent(found, stats.Records))
	}
	tb.Footer("files", stats.Records, "entries", res.Entries)
	tb.Columns(
		format.Column{Number: 2, Align: format.AlignRight},
		format.Column{Number: 3, Align: format.AlignRight},
		format.Column{Number: 4, Align: format.AlignRight},
	)
	return tb
}

func rowsTable(rows []manifest.Row, mode format.Mode) format.Table {
	tb := format.NewTable(mode)
	tb.Header("Year", "Award", "Entry", "Authors", "Output")
	for _, r := range rows {
		tb.Row(r.Period, r.Award, r.EntryID, format.Truncate(r.Authors, authorsWidth), r.OutputDir)
	}
	tb.Footer("", "", "", "rows", len(rows))
	tb.Columns(format.Column{Number: 5, MaxWidth: outputWidth})
	return tb
}

func entriesTable(entries []store.Entry, mode format.Mode) format.Table {
	tb := format.NewTable(mode)
	tb.Title(fmt.Sprintf("Catalog entries (%d)", len(entries)))
	tb.Header("Year", "Award", "Entry", "Authors", "Summary", "Complete")
	for _, e := range entries {
		complete := e.Sources[curate.FieldAward] != curate.SourceDefault &&
			e.Sources[curate.FieldAuthors] != curate.SourceDefault &&
			e.Sources[curate.FieldSummary] != curate.SourceDefault
		tb.Row(e.Period, e.Award, e.EntryID,
			format.Truncate(e.Authors, authorsWidth),
			format.Truncate(e.Summary, summaryWidth),
			format.BoolMark(complete))
	}
	tb.Columns(format.Column{Number: 6, Align: format.AlignCenter})
	return tb
}

// yearTable counts distinct entries and files per year.
func yearTable(rows []manifest.Row, mode format.Mode) format.Table {
	type count struct{ files, entries int }
	byYear := map[string]*count{}
	seen := map[string]bool{}
	for _, r := range rows {
		c := byYear[r.Period]
		if c == nil {
			c = &count{}
			byYear[r.Period] = c
		}
		c.files++
		if !seen[r.OutputDir] {
			seen[r.OutputDir] = true
			c.entries++
		}
	}
	years := make([]string, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Strings(years)

	tb := format.NewTable(mode)
	tb.Title("Entries by year")
	tb.Header("Year", "Entries", "Files")
	var entries int
	for _, y := range years {
		tb.Row(y, byYear[y].entries, byYear[y].files)
		entries += byYear[y].entries
	}
	tb.Footer("TOTAL", entries, len(rows))
	tb.Columns(
		format.Column{Number: 2, Align: format.AlignRight},
		format.Column{Number: 3, Align: format.AlignRight},
	)
	return tb
}
