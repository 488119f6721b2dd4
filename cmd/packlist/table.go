package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
	alignCenter
)

type tableView struct {
	headers []string
	rows    [][]string
	aligns  []columnAlignment
	// footer is rendered as a single row spanning all columns.
	footer string
}

func renderTable(view tableView) string {
	columns := len(view.headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i, h := range view.headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range view.rows {
		r := make(table.Row, columns)
		for i := range r {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	if view.footer != "" {
		footer := make(table.Row, columns)
		for i := range footer {
			footer[i] = view.footer
		}
		tw.AppendFooter(footer, table.RowConfig{AutoMerge: true})
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       textAlign(view.aligns, i),
			AlignHeader: text.AlignLeft,
			AlignFooter: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)
	tw.Style().Format.Footer = text.FormatDefault

	return tw.Render()
}

func textAlign(aligns []columnAlignment, i int) text.Align {
	if i >= len(aligns) {
		return text.AlignLeft
	}
	switch aligns[i] {
	case alignRight:
		return text.AlignRight
	case alignCenter:
		return text.AlignCenter
	default:
		return text.AlignLeft
	}
}
