package geometry2D

import (
	"fmt"
)

// Model is the output contract of a grid model provider.
type Model struct {
	Grid
	Fields
	X, Y []float64 // cell centre axes
}

// GridModel builds the property grids of a problem. Implementations only
// prepare data, they never see the solver.
type GridModel interface {
	Build() (m *Model, err error)
}

type PointSource struct {
	I, J  int
	Value float64
}

// UniformMedium fills every cell with the same material, velocity and
// source. PointSources are added on top of the uniform source.
type UniformMedium struct {
	Grid
	Conductivity, HeatCapacity, Density float64
	Velocity, Source                    float64
	PointSources                        []PointSource
}

func (um *UniformMedium) Build() (m *Model, err error) {
	if err = um.Grid.Validate(); err != nil {
		return
	}
	var (
		nx, ny = um.Nx, um.Ny
		f      = NewFields(nx, ny)
	)
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			f.Conductivity.Set(i, j, um.Conductivity)
			f.HeatCapacity.Set(i, j, um.HeatCapacity)
			f.Density.Set(i, j, um.Density)
			f.Velocity.Set(i, j, um.Velocity)
			f.Source.Set(i, j, um.Source)
		}
	}
	for _, ps := range um.PointSources {
		if ps.I < 0 || ps.I >= nx || ps.J < 0 || ps.J >= ny {
			err = fmt.Errorf("point source (%d,%d) is outside the %dx%d grid", ps.I, ps.J, nx, ny)
			return
		}
		f.Source.Set(ps.I, ps.J, f.Source.At(ps.I, ps.J)+ps.Value)
	}
	m = &Model{
		Grid:   um.Grid,
		Fields: f,
	}
	m.X, m.Y = um.Grid.Axes()
	return
}
