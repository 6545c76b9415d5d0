package AdvectionDiffusion2D

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gothermal/InputParameters"
	"github.com/notargets/gothermal/geometry2D"
	"github.com/notargets/gothermal/types"
	"github.com/notargets/gothermal/utils"
)

func greensProblem(t *testing.T, kappa float64) *geometry2D.Model {
	m := uniformModel(t, 5, 5, kappa, 0)
	m.Source.Set(2, 2, 1)
	return m
}

func solveModel(t *testing.T, m *geometry2D.Model, freq float64) *mat.CDense {
	T, err := Solve(m.Source, m.Conductivity, m.Velocity, m.Dx, m.Dy, m.HeatCapacity, m.Density, freq)
	require.NoError(t, err)
	return T
}

func TestGreensFunction(t *testing.T) {
	var (
		m   = greensProblem(t, 1)
		src = mat.DenseCopyOf(m.Source)
		T   = solveModel(t, m, 0)
		re  = utils.RealPart(T)
		tol = 1.e-12
	)
	nx, ny := T.Dims()
	require.Equal(t, 5, nx)
	require.Equal(t, 5, ny)
	// Exact discrete solution on the 3x3 interior
	assert.InDelta(t, 3./8, re.At(2, 2), tol)
	for _, ij := range [][2]int{{1, 2}, {3, 2}, {2, 1}, {2, 3}} {
		assert.InDelta(t, 1./8, re.At(ij[0], ij[1]), tol)
	}
	for _, ij := range [][2]int{{1, 1}, {1, 3}, {3, 1}, {3, 3}} {
		assert.InDelta(t, 1./16, re.At(ij[0], ij[1]), tol)
	}
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			assert.Equal(t, 0., imag(T.At(i, j)))
			assert.InDelta(t, re.At(i, j), re.At(j, i), tol)      // diagonal symmetry
			assert.InDelta(t, re.At(i, j), re.At(nx-1-i, j), tol) // mirror symmetry
			if types.CellBC(i, j, nx, ny).IsBoundary() {
				assert.Equal(t, complex(0, 0), T.At(i, j))
			}
		}
	}
	// Strictly decreasing from the centre toward the edges
	assert.Greater(t, re.At(2, 2), re.At(1, 2))
	assert.Greater(t, re.At(1, 2), re.At(1, 1))
	assert.Greater(t, re.At(1, 1), re.At(0, 1))
	// The source passed in is not modified
	assert.True(t, mat.Equal(src, m.Source))
}

func TestConductivityScaling(t *testing.T) {
	var (
		T1 = utils.RealPart(solveModel(t, greensProblem(t, 1), 0))
		T2 = utils.RealPart(solveModel(t, greensProblem(t, 2), 0))
	)
	for i := 1; i < 4; i++ {
		for j := 1; j < 4; j++ {
			assert.InDelta(t, 0.5*T1.At(i, j), T2.At(i, j), 1.e-12)
		}
	}
}

func TestFrequencyResponse(t *testing.T) {
	var (
		nx, ny = 21, 11
		m      = uniformModel(t, nx, ny, 1, 0.4)
	)
	for i := 8; i < 12; i++ {
		m.Source.Set(i, 5, 1)
	}
	var (
		T0    = solveModel(t, m, 0)
		diffs []float64
	)
	{ // Steady state is real
		for i := 0; i < nx; i++ {
			for j := 0; j < ny; j++ {
				assert.InDelta(t, 0, imag(T0.At(i, j)), 1.e-9*cmplx.Abs(T0.At(10, 5)))
			}
		}
	}
	{ // A finite frequency gives a phase lag and a smaller amplitude
		T := solveModel(t, m, 0.5)
		assert.Greater(t, math.Abs(imag(T.At(10, 5))), 1.e-6)
		assert.Less(t, cmplx.Abs(T.At(10, 5)), cmplx.Abs(T0.At(10, 5)))
	}
	{ // Converges to the steady state as the frequency goes to zero
		for _, freq := range []float64{1.e-2, 1.e-4, 1.e-6, 1.e-8} {
			T := solveModel(t, m, freq)
			var maxDiff float64
			for i := 0; i < nx; i++ {
				for j := 0; j < ny; j++ {
					maxDiff = math.Max(maxDiff, cmplx.Abs(T.At(i, j)-T0.At(i, j)))
				}
			}
			diffs = append(diffs, maxDiff)
		}
		for k := 1; k < len(diffs); k++ {
			assert.Less(t, diffs[k], diffs[k-1])
		}
		assert.Less(t, diffs[len(diffs)-1], 1.e-6*cmplx.Abs(T0.At(10, 5)))
	}
}

func TestSolverOrderings(t *testing.T) {
	var (
		nx, ny = 31, 9
		g      = geometry2D.Grid{Nx: nx, Ny: ny, Dx: 2.5e-6, Dy: 1.e-6}
		f      = heterogeneousFields(nx, ny)
		off    = false
		sp     = InputParameters.SolverDefaults()
	)
	Ta, err := NewSolver(nil).SolveFields(g, f, 1.e3)
	require.NoError(t, err)
	sp.Reorder = &off
	sp.ParallelDegree = 3
	Tb, err := NewSolver(&sp).SolveFields(g, f, 1.e3)
	require.NoError(t, err)
	scale := cmplx.Abs(Ta.At(nx/2, ny/2))
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			assert.InDelta(t, 0, cmplx.Abs(Ta.At(i, j)-Tb.At(i, j)), 1.e-10*scale)
		}
	}
}

func TestSolveErrors(t *testing.T) {
	{ // Shape disagreement is caught before assembly
		m := uniformModel(t, 5, 5, 1, 0)
		_, err := Solve(mat.NewDense(5, 4, nil), m.Conductivity, m.Velocity, 1, 1, m.HeatCapacity, m.Density, 0)
		assert.True(t, errors.Is(err, types.ErrInvalidGrid))
		_, err = Solve(m.Source, m.Conductivity, nil, 1, 1, m.HeatCapacity, m.Density, 0)
		assert.True(t, errors.Is(err, types.ErrInvalidGrid))
	}
	{ // Zero conductivity is non-physical
		m := uniformModel(t, 5, 5, 1, 0)
		m.Conductivity.Set(2, 2, 0)
		_, err := Solve(m.Source, m.Conductivity, m.Velocity, 1, 1, m.HeatCapacity, m.Density, 0)
		assert.True(t, errors.Is(err, types.ErrNonPhysicalProperty))
	}
	{ // A singular operator surfaces as a SingularSystemError
		var (
			g  = geometry2D.Grid{Nx: 3, Ny: 3, Dx: 1, Dy: 1}
			tr = utils.NewTriplets(9, 9, 9)
		)
		for k := 0; k < 9; k++ {
			if k != 4 {
				tr.Add(k, k, 1)
			}
		}
		tr.Add(4, 3, 1) // row 4 duplicates row 3
		sys := &System{Grid: g, Operator: tr.ToCSR(), RHS: make([]float64, 9)}
		_, err := NewSolver(nil).SolveSystem(sys)
		require.Error(t, err)
		var sse *types.SingularSystemError
		require.True(t, errors.As(err, &sse))
		assert.Equal(t, 4, sse.Row)
	}
	{ // A provider failure is wrapped
		um := &geometry2D.UniformMedium{Grid: geometry2D.Grid{Nx: 1, Ny: 5, Dx: 1, Dy: 1}}
		_, err := NewSolver(nil).SolveModel(um, 0)
		assert.True(t, errors.Is(err, types.ErrInvalidGrid))
	}
}

func TestSolveParameters(t *testing.T) {
	var ip InputParameters.InputParameters2D
	require.NoError(t, ip.Parse([]byte(`
Title: Green's function
Nx: 5
Ny: 5
Dx: 1
Dy: 1
Conductivity: 1
HeatCapacity: 1
Density: 1
PointSources:
  - {I: 2, J: 2, Value: 1}
Solver:
  ParallelDegree: 2
`)))
	T, err := SolveParameters(&ip)
	require.NoError(t, err)
	assert.InDelta(t, 3./8, real(T.At(2, 2)), 1.e-12)
	assert.InDelta(t, 1./16, real(T.At(3, 3)), 1.e-12)
}
