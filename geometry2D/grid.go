package geometry2D

import (
	"github.com/notargets/gothermal/types"
	"github.com/notargets/gothermal/utils"
)

// Grid is a uniform rectangular grid of Nx×Ny cells with spacing Dx, Dy.
type Grid struct {
	Nx, Ny int
	Dx, Dy float64
}

func NewGrid(nx, ny int, dx, dy float64) (g Grid, err error) {
	g = Grid{Nx: nx, Ny: ny, Dx: dx, Dy: dy}
	err = g.Validate()
	return
}

func (g Grid) NumCells() int { return g.Nx * g.Ny }

func (g Grid) Validate() (err error) {
	switch {
	case g.Nx < 3:
		return &types.InvalidGridError{Field: "nx", Reason: "at least 3 cells are needed to hold the boundaries"}
	case g.Ny < 3:
		return &types.InvalidGridError{Field: "ny", Reason: "at least 3 cells are needed to hold the boundaries"}
	case !(g.Dx > 0) || !utils.IsFinite(g.Dx):
		return &types.InvalidGridError{Field: "dx", Reason: "spacing must be positive and finite"}
	case !(g.Dy > 0) || !utils.IsFinite(g.Dy):
		return &types.InvalidGridError{Field: "dy", Reason: "spacing must be positive and finite"}
	}
	return
}

// Axes returns cell centre coordinates, centred on the origin.
func (g Grid) Axes() (x, y []float64) {
	linspace := func(n int, d float64) (v []float64) {
		var (
			lim = float64(n-1) * d / 2
		)
		v = make([]float64, n)
		for k := range v {
			v[k] = -lim + float64(k)*d
		}
		return
	}
	return linspace(g.Nx, g.Dx), linspace(g.Ny, g.Dy)
}
