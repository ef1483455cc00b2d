package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type field struct {
	name  string
	value string
}

// renderFields draws a two-column name/value table. Values wider than
// maxWidth wrap so checksums and long paths stay readable.
func renderFields(title string, fields []field, maxWidth int) string {
	if len(fields) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	if title != "" {
		tw.SetTitle(title)
	}
	tw.AppendHeader(table.Row{"Field", "Value"})
	for _, f := range fields {
		tw.AppendRow(table.Row{f.name, f.value})
	}

	valueConfig := table.ColumnConfig{
		Number:      2,
		Align:       text.AlignLeft,
		AlignHeader: text.AlignLeft,
	}
	if maxWidth > 0 {
		valueConfig.WidthMax = maxWidth
		valueConfig.WidthMaxEnforcer = text.WrapHard
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft, Colors: text.Colors{text.Bold}},
		valueConfig,
	})

	return tw.Render()
}
