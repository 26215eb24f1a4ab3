package core

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const (
	rowKindColumnName = "op"
	truncationSuffix  = "..."
	// width of types without a fixed display width, like strings
	variableTypeWidth = 30
)

// RenderTableau consumes all rows of the iterator and writes them to w as a table,
// followed by a line with the number of rows. It returns the number of printed rows.
//
// With DeriveColumnWidthByType every row is written as soon as it arrives and
// values wider than their column are truncated. Otherwise all rows are
// collected first to size the columns by content.
func RenderTableau(w io.Writer, schema Schema, iter RowIterator, opts TableauOptions) (int, error) {
	if opts.MaxColumnWidth <= 0 {
		return 0, fmt.Errorf("%w: max column width should be greater than 0, got %d", ErrInvalidPrintStyle, opts.MaxColumnWidth)
	}

	if !iter.HasNext() {
		_, err := io.WriteString(w, "Empty set\n")
		return 0, err
	}

	if opts.DeriveColumnWidthByType {
		return renderTableauByType(w, schema, iter, opts)
	}

	var rows []table.Row
	for iter.HasNext() {
		row, err := iter.Next()
		if err != nil {
			return 0, fmt.Errorf("iter.Next: %w", err)
		}
		rows = append(rows, tableauRow(row, opts))
	}

	t := table.NewWriter()
	t.AppendHeader(tableauHeader(schema, opts))
	t.AppendRows(rows)
	t.SetColumnConfigs(tableauColumnConfigs(schema, opts))
	t.SetStyle(table.StyleDefault)
	t.Style().Format = table.FormatOptions{
		Footer: text.FormatDefault,
		Header: text.FormatDefault,
		Row:    text.FormatDefault,
	}

	_, err := fmt.Fprintf(w, "%s\n%s", t.Render(), rowsInSet(len(rows)))
	if err != nil {
		return 0, err
	}

	return len(rows), nil
}

func rowsInSet(n int) string {
	if n == 1 {
		return "1 row in set\n"
	}
	return fmt.Sprintf("%d rows in set\n", n)
}

// columnWidthsByType sizes every column from its declared type, its name
// and the null text, capped at the maximum column width.
func columnWidthsByType(schema Schema, opts TableauOptions) []int {
	var widths []int
	if opts.PrintRowKind {
		widths = append(widths, len(rowKindColumnName))
	}

	for _, field := range schema.Fields() {
		width := field.Type.DisplayWidth()
		if width == 0 {
			width = variableTypeWidth
		}
		width = max(width, text.RuneWidthWithoutEscSequences(field.Name), text.RuneWidthWithoutEscSequences(opts.NullColumn))
		widths = append(widths, min(width, opts.MaxColumnWidth))
	}

	return widths
}

// renderTableauByType writes the header right away and every row when it arrives.
func renderTableauByType(w io.Writer, schema Schema, iter RowIterator, opts TableauOptions) (int, error) {
	widths := columnWidthsByType(schema, opts)
	border := tableauBorder(widths)

	header := make([]string, 0, len(widths))
	for _, v := range tableauHeader(schema, opts) {
		header = append(header, fmt.Sprint(v))
	}

	_, err := io.WriteString(w, border+tableauLine(header, widths)+border)
	if err != nil {
		return 0, err
	}

	count := 0
	for iter.HasNext() {
		row, err := iter.Next()
		if err != nil {
			return count, fmt.Errorf("iter.Next: %w", err)
		}

		cells := RowToStrings(row, opts.NullColumn)
		if opts.PrintRowKind {
			cells = append([]string{row.Kind.ShortString()}, cells...)
		}

		_, err = io.WriteString(w, tableauLine(cells, widths))
		if err != nil {
			return count, err
		}
		count++
	}

	_, err = io.WriteString(w, border+rowsInSet(count))
	if err != nil {
		return count, err
	}

	return count, nil
}

func tableauBorder(widths []int) string {
	var sb strings.Builder
	sb.WriteString("+")
	for _, width := range widths {
		sb.WriteString(strings.Repeat("-", width+2))
		sb.WriteString("+")
	}
	sb.WriteString("\n")
	return sb.String()
}

func tableauLine(cells []string, widths []int) string {
	var sb strings.Builder
	sb.WriteString("|")
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = truncate(cells[i], width)
		}
		sb.WriteString(" ")
		sb.WriteString(text.AlignRight.Apply(cell, width))
		sb.WriteString(" |")
	}
	sb.WriteString("\n")
	return sb.String()
}

func tableauHeader(schema Schema, opts TableauOptions) table.Row {
	header := make(table.Row, 0, schema.FieldCount()+1)
	if opts.PrintRowKind {
		header = append(header, rowKindColumnName)
	}
	for _, name := range schema.FieldNames() {
		header = append(header, truncate(name, opts.MaxColumnWidth))
	}
	return header
}

func tableauRow(row Row, opts TableauOptions) table.Row {
	out := make(table.Row, 0, len(row.Values)+1)
	if opts.PrintRowKind {
		out = append(out, row.Kind.ShortString())
	}
	for _, v := range RowToStrings(row, opts.NullColumn) {
		out = append(out, truncate(v, opts.MaxColumnWidth))
	}
	return out
}

func tableauColumnConfigs(schema Schema, opts TableauOptions) []table.ColumnConfig {
	var configs []table.ColumnConfig

	number := 1
	if opts.PrintRowKind {
		configs = append(configs, table.ColumnConfig{
			Number:      number,
			Align:       text.AlignRight,
			AlignHeader: text.AlignRight,
		})
		number++
	}

	for range schema.Fields() {
		configs = append(configs, table.ColumnConfig{
			Number:      number,
			Align:       text.AlignRight,
			AlignHeader: text.AlignRight,
		})
		number++
	}

	return configs
}

// truncate cuts the value to maxWidth characters, marking the cut with "...".
func truncate(value string, maxWidth int) string {
	if text.RuneWidthWithoutEscSequences(value) <= maxWidth {
		return value
	}
	if maxWidth <= len(truncationSuffix) {
		return text.Trim(value, maxWidth)
	}
	return text.Trim(value, maxWidth-len(truncationSuffix)) + truncationSuffix
}
