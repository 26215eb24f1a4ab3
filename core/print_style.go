package core

import (
	"fmt"
	"math"
)

// NullColumn is the default text printed in place of null values.
const NullColumn = "(NULL)"

type printStyleKind int

const (
	printStyleUnknown printStyleKind = iota
	printStyleTableau
	printStyleRawContent
)

// TableauOptions configure the tableau form of a result.
type TableauOptions struct {
	// maximum width of a single column, longer values are truncated
	MaxColumnWidth int
	// text printed in place of null values
	NullColumn string
	// derive column width from declared type (true) or from content (false)
	DeriveColumnWidthByType bool
	// print a leading column with the row kind of each row
	PrintRowKind bool
}

// PrintStyle describes how a result is printed. It is either a tableau
// style or a raw content style, the zero value is neither and can't be printed.
type PrintStyle struct {
	kind    printStyleKind
	tableau TableauOptions
}

// TableauStyle prints the schema and all rows as a table to the result output.
func TableauStyle(maxColumnWidth int, nullColumn string, deriveColumnWidthByType, printRowKind bool) (PrintStyle, error) {
	if maxColumnWidth <= 0 {
		return PrintStyle{}, fmt.Errorf("%w: max column width should be greater than 0, got %d", ErrInvalidPrintStyle, maxColumnWidth)
	}

	return PrintStyle{
		kind: printStyleTableau,
		tableau: TableauOptions{
			MaxColumnWidth:          maxColumnWidth,
			NullColumn:              nullColumn,
			DeriveColumnWidthByType: deriveColumnWidthByType,
			PrintRowKind:            printRowKind,
		},
	}, nil
}

// RawContentStyle logs every row as comma separated values, one line per row.
func RawContentStyle() PrintStyle {
	return PrintStyle{kind: printStyleRawContent}
}

// DefaultPrintStyle is a tableau style with unbounded column width,
// content derived widths and hidden row kinds.
func DefaultPrintStyle() PrintStyle {
	return PrintStyle{
		kind: printStyleTableau,
		tableau: TableauOptions{
			MaxColumnWidth: math.MaxInt,
			NullColumn:     NullColumn,
		},
	}
}

func (s PrintStyle) IsTableau() bool {
	return s.kind == printStyleTableau
}

func (s PrintStyle) IsRawContent() bool {
	return s.kind == printStyleRawContent
}

// Tableau returns tableau options and true if the style is a tableau style.
func (s PrintStyle) Tableau() (TableauOptions, bool) {
	return s.tableau, s.kind == printStyleTableau
}

func (s PrintStyle) String() string {
	switch s.kind {
	case printStyleTableau:
		return fmt.Sprintf("tableau(maxColumnWidth=%d, nullColumn=%q, deriveColumnWidthByType=%t, printRowKind=%t)",
			s.tableau.MaxColumnWidth, s.tableau.NullColumn, s.tableau.DeriveColumnWidthByType, s.tableau.PrintRowKind)
	case printStyleRawContent:
		return "rawContent"
	default:
		return "unknown"
	}
}
