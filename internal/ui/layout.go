package ui

// Grid geometry. A cell is a bordered box; cellHeight includes both border
// rows.
const (
	cellWidth   = 30
	cellHeight  = 6
	cellGap     = 1
	maxGridCols = 6
)

// Chrome around the content box: header, command bar, flash line.
const chromeHeight = 3

// LayoutCompactWidth is the width below which the header drops the cart total.
const LayoutCompactWidth = 80

// contentWidth is the inner width of the content box.
func (m Model) contentWidth() int {
	return max(m.width-2, 0)
}

// contentHeight is the outer height of the content box.
func (m Model) contentHeight() int {
	return max(m.height-chromeHeight, 3)
}

// gridColumns returns how many cells fit side by side in width.
func gridColumns(width int) int {
	cols := (width + cellGap) / (cellWidth + cellGap)
	if cols < 1 {
		return 1
	}
	if cols > maxGridCols {
		return maxGridCols
	}
	return cols
}

// gridWindow returns the half-open range of rows to draw so the row holding
// selected stays visible.
func gridWindow(rows, visible, selectedRow int) (start, end int) {
	if visible <= 0 || rows <= visible {
		return 0, rows
	}
	start = selectedRow - visible + 1
	if start < 0 {
		start = 0
	}
	end = start + visible
	if end > rows {
		end = rows
		start = end - visible
	}
	return start, end
}
