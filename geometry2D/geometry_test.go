package geometry2D

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gothermal/types"
)

func TestGrid(t *testing.T) {
	{ // Axes are centred on the origin with the requested spacing
		g, err := NewGrid(5, 3, 2., 0.5)
		require.NoError(t, err)
		x, y := g.Axes()
		assert.Equal(t, []float64{-4, -2, 0, 2, 4}, x)
		assert.Equal(t, []float64{-0.5, 0, 0.5}, y)
		assert.Equal(t, 15, g.NumCells())
	}
	{ // Bad grids are rejected with the offending field named
		for _, g := range []Grid{{2, 5, 1, 1}, {5, 2, 1, 1}, {5, 5, 0, 1}, {5, 5, 1, -1}} {
			err := g.Validate()
			assert.True(t, errors.Is(err, types.ErrInvalidGrid), "%v", g)
		}
		var ige *types.InvalidGridError
		require.True(t, errors.As(Grid{5, 5, 1, 0}.Validate(), &ige))
		assert.Equal(t, "dy", ige.Field)
	}
}

func TestFields(t *testing.T) {
	{ // Shape mismatch names the field
		f := NewFields(4, 4)
		f.Velocity = mat.NewDense(4, 3, nil)
		_, _, err := f.Shape()
		var ige *types.InvalidGridError
		require.True(t, errors.As(err, &ige))
		assert.Equal(t, "velocity", ige.Field)
		assert.Equal(t, 3, ige.Cols)
	}
	{ // Missing fields are rejected
		f := NewFields(4, 4)
		f.Density = nil
		assert.True(t, errors.Is(f.Validate(Grid{Nx: 4, Ny: 4}), types.ErrInvalidGrid))
	}
	{
		nx, ny, err := NewFields(6, 4).Shape()
		require.NoError(t, err)
		assert.Equal(t, 6, nx)
		assert.Equal(t, 4, ny)
	}
}

func TestUniformMedium(t *testing.T) {
	um := &UniformMedium{
		Grid:         Grid{Nx: 5, Ny: 5, Dx: 1, Dy: 1},
		Conductivity: 0.6, HeatCapacity: 4184, Density: 1000,
		PointSources: []PointSource{{I: 2, J: 2, Value: 1}},
	}
	m, err := um.Build()
	require.NoError(t, err)
	assert.Equal(t, 0.6, m.Conductivity.At(4, 0))
	assert.Equal(t, 1000., m.Density.At(1, 3))
	assert.Equal(t, 1., m.Source.At(2, 2))
	assert.Equal(t, 0., m.Source.At(2, 3))
	assert.Len(t, m.X, 5)
	require.NoError(t, m.Fields.Validate(m.Grid))

	um.PointSources = []PointSource{{I: 5, J: 0, Value: 1}}
	_, err = um.Build()
	assert.Error(t, err)
}
