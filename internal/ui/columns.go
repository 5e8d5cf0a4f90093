package ui

// columns.go provides column width calculation for bubbles/table.

import (
	"github.com/charmbracelet/bubbles/table"
)

// cellPadding is the horizontal padding bubbles/table adds to every cell
const cellPadding = 2

// ColumnSpec defines a table column with flexible or fixed width.
// Use FlexRatio for columns that should expand/contract with terminal width.
// Use FixedWidth for columns that should maintain constant width.
type ColumnSpec struct {
	Title      string
	MinWidth   int // Minimum width (0 = no minimum)
	FixedWidth int // If > 0, use this exact width (ignores FlexRatio)
	FlexRatio  int // Relative ratio for flexible columns (0 = fixed-only)
}

// CalculateColumns computes column widths from specs so the rendered table,
// cell padding included, fits totalWidth.
// Flexible columns split remaining space by ratio after fixed columns are allocated.
func CalculateColumns(specs []ColumnSpec, totalWidth int) []table.Column {
	fixedTotal := cellPadding * len(specs)
	flexTotal := 0
	for _, s := range specs {
		if s.FixedWidth > 0 {
			fixedTotal += s.FixedWidth
		} else {
			flexTotal += s.FlexRatio
		}
	}

	remaining := totalWidth - fixedTotal
	if remaining < 0 {
		remaining = 0
	}

	columns := make([]table.Column, len(specs))
	for i, s := range specs {
		var width int
		if s.FixedWidth > 0 {
			width = s.FixedWidth
		} else if flexTotal > 0 {
			width = remaining * s.FlexRatio / flexTotal
		}

		if s.MinWidth > 0 && width < s.MinWidth {
			width = s.MinWidth
		}

		columns[i] = table.Column{Title: s.Title, Width: width}
	}

	return columns
}

// RepositoryColumns returns column specs for the repository list
func RepositoryColumns() []ColumnSpec {
	return []ColumnSpec{
		{Title: "Repository", FlexRatio: 1, MinWidth: 12},
		{Title: "Stars", FixedWidth: 7},
		{Title: "Forks", FixedWidth: 7},
		{Title: "Language", FixedWidth: 12},
		{Title: "Pushed", FixedWidth: 14},
	}
}
