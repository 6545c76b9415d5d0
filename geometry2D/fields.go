package geometry2D

import (
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gothermal/types"
)

// Fields holds the five co-registered cell fields of a problem. Each is an
// nx×ny matrix indexed At(i, j), i along x and j along y.
type Fields struct {
	Conductivity *mat.Dense // W/m/K
	HeatCapacity *mat.Dense // J/kg/K
	Density      *mat.Dense // kg/m^3
	Source       *mat.Dense // W/m^3
	Velocity     *mat.Dense // m/s, along x
}

func NewFields(nx, ny int) (f Fields) {
	return Fields{
		Conductivity: mat.NewDense(nx, ny, nil),
		HeatCapacity: mat.NewDense(nx, ny, nil),
		Density:      mat.NewDense(nx, ny, nil),
		Source:       mat.NewDense(nx, ny, nil),
		Velocity:     mat.NewDense(nx, ny, nil),
	}
}

func (f Fields) named() (names []string, fields []*mat.Dense) {
	return []string{"conductivity", "heat_capacity", "density", "source", "velocity"},
		[]*mat.Dense{f.Conductivity, f.HeatCapacity, f.Density, f.Source, f.Velocity}
}

// Validate checks that every field is present and shaped like the grid.
func (f Fields) Validate(g Grid) (err error) {
	names, fields := f.named()
	for n, F := range fields {
		if F == nil {
			return &types.InvalidGridError{Field: names[n], Reason: "field is missing", Nx: g.Nx, Ny: g.Ny}
		}
		if nr, nc := F.Dims(); nr != g.Nx || nc != g.Ny {
			return &types.InvalidGridError{Field: names[n], Reason: "shape mismatch",
				Nx: g.Nx, Ny: g.Ny, Rows: nr, Cols: nc}
		}
	}
	return
}

// Shape returns the common shape of the fields, or an InvalidGridError when they disagree.
func (f Fields) Shape() (nx, ny int, err error) {
	names, fields := f.named()
	for n, F := range fields {
		if F == nil {
			return 0, 0, &types.InvalidGridError{Field: names[n], Reason: "field is missing"}
		}
	}
	nx, ny = f.Conductivity.Dims()
	err = f.Validate(Grid{Nx: nx, Ny: ny})
	return
}
