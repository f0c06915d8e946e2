package simdata

import "fmt"

// Grid is a rectangular corner-point-free grid: uniform cells, all active.
type Grid struct {
	nx, ny, nz int
	dx, dy, dz float64
}

// NewRectangular builds a grid from cell counts and per-axis cell sizes.
func NewRectangular(dims [3]int, cell [3]float64) (*Grid, error) {
	for i, n := range dims {
		if n <= 0 {
			return nil, fmt.Errorf("grid dimension %d must be positive, got %d", i, n)
		}
	}
	for i, s := range cell {
		if s <= 0 {
			return nil, fmt.Errorf("cell size %d must be positive, got %g", i, s)
		}
	}
	return &Grid{
		nx: dims[0], ny: dims[1], nz: dims[2],
		dx: cell[0], dy: cell[1], dz: cell[2],
	}, nil
}

// Dims returns the cell counts along each axis.
func (g *Grid) Dims() (nx, ny, nz int) { return g.nx, g.ny, g.nz }

// GlobalSize returns the total number of cells.
func (g *Grid) GlobalSize() int { return g.nx * g.ny * g.nz }

// CellVolume returns the uniform per-cell volume.
func (g *Grid) CellVolume() float64 { return g.dx * g.dy * g.dz }

// GlobalIndex maps (i,j,k) to the flat cell index.
func (g *Grid) GlobalIndex(i, j, k int) (int, error) {
	if i < 0 || i >= g.nx || j < 0 || j >= g.ny || k < 0 || k >= g.nz {
		return 0, fmt.Errorf("cell (%d,%d,%d) outside grid %dx%dx%d", i, j, k, g.nx, g.ny, g.nz)
	}
	return i + j*g.nx + k*g.nx*g.ny, nil
}
