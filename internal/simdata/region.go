package simdata

import (
	"fmt"

	"github.com/hagness/depwarn/internal/deprec"
)

// Region is a mutable cell selection over a grid.
type Region struct {
	grid     *Grid
	selected []bool
}

// NewRegion creates a region over grid. When preselect is true every cell
// starts selected, otherwise the region starts empty.
func NewRegion(grid *Grid, preselect bool) (*Region, error) {
	if grid == nil {
		return nil, fmt.Errorf("region requires a grid")
	}
	r := &Region{
		grid:     grid,
		selected: make([]bool, grid.GlobalSize()),
	}
	if preselect {
		r.SelectAll()
	}
	return r, nil
}

// SelectAll marks every cell selected.
func (r *Region) SelectAll() {
	for i := range r.selected {
		r.selected[i] = true
	}
}

// DeselectAll clears the selection.
func (r *Region) DeselectAll() {
	for i := range r.selected {
		r.selected[i] = false
	}
}

// SelectCell adds the cell at (i,j,k) to the selection.
func (r *Region) SelectCell(i, j, k int) error {
	g, err := r.grid.GlobalIndex(i, j, k)
	if err != nil {
		return err
	}
	r.selected[g] = true
	return nil
}

// SelectedCells returns the flat indices of all selected cells, ascending.
func (r *Region) SelectedCells() []int {
	var out []int
	for i, sel := range r.selected {
		if sel {
			out = append(out, i)
		}
	}
	return out
}

// Count returns the number of selected cells.
func (r *Region) Count() int {
	n := 0
	for _, sel := range r.selected {
		if sel {
			n++
		}
	}
	return n
}

// ActiveList returns the selected flat indices.
//
// Flagged: deprecated since 1.9; the selection accessor is SelectedCells.
func (r *Region) ActiveList() ([]int, error) {
	if err := deprec.Emit(deprec.Notice{
		API:      "simdata.Region.ActiveList",
		Message:  "the active_list property is deprecated, use SelectedCells",
		Since:    "1.9",
		Category: deprec.Deprecation,
	}); err != nil {
		return nil, err
	}
	return r.SelectedCells(), nil
}

// GetActiveList was the camel-case alias of ActiveList.
//
// Flagged: removed in 2.1. The call always fails; the installed policy only
// decides whether the removal is also recorded or logged.
func (r *Region) GetActiveList() ([]int, error) {
	n := deprec.Notice{
		API:      "simdata.Region.GetActiveList",
		Message:  "getActiveList was removed, use SelectedCells",
		Since:    "2.1",
		Category: deprec.Removal,
	}
	if err := deprec.Emit(n); err != nil {
		return nil, err
	}
	return nil, &deprec.SignalError{Notice: n}
}
