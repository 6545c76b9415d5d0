package AdvectionDiffusion2D

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gothermal/InputParameters"
	"github.com/notargets/gothermal/geometry2D"
	"github.com/notargets/gothermal/types"
	"github.com/notargets/gothermal/utils"
)

/*
Solver computes the steady state (Frequency = 0) or single frequency time
harmonic temperature field of a heterogeneous 2D medium with T = 0 on all four
boundaries. A solve is assemble -> banded LU -> reshape, nothing is kept
between calls.
*/
type Solver struct {
	Params InputParameters.SolverParameters
}

func NewSolver(sp *InputParameters.SolverParameters) (s *Solver) {
	s = &Solver{Params: InputParameters.SolverDefaults()}
	if sp != nil {
		s.Params = *sp
	}
	return
}

// Solve is the single call surface: fields are nx×ny, indexed [i,j].
// The caller's source matrix is never modified.
func Solve(source, conductivity, velocity *mat.Dense, dx, dy float64,
	heatCapacity, density *mat.Dense, frequency float64) (T *mat.CDense, err error) {
	var (
		f = geometry2D.Fields{
			Conductivity: conductivity,
			HeatCapacity: heatCapacity,
			Density:      density,
			Source:       source,
			Velocity:     velocity,
		}
		nx, ny int
	)
	if nx, ny, err = f.Shape(); err != nil {
		return
	}
	return NewSolver(nil).SolveFields(geometry2D.Grid{Nx: nx, Ny: ny, Dx: dx, Dy: dy}, f, frequency)
}

// SolveParameters builds the uniform medium described by ip and solves it.
func SolveParameters(ip *InputParameters.InputParameters2D) (T *mat.CDense, err error) {
	return NewSolver(&ip.Solver).SolveModel(ip.GridModel(), ip.Frequency)
}

func (s *Solver) SolveModel(gm geometry2D.GridModel, frequency float64) (T *mat.CDense, err error) {
	var (
		m *geometry2D.Model
	)
	if m, err = gm.Build(); err != nil {
		return nil, fmt.Errorf("building grid model: %w", err)
	}
	return s.SolveFields(m.Grid, m.Fields, frequency)
}

func (s *Solver) SolveFields(g geometry2D.Grid, f geometry2D.Fields, frequency float64) (T *mat.CDense, err error) {
	var (
		sys  *System
		flat []complex128
	)
	if sys, err = Assemble(g, f, frequency, s.Params.ParallelDegree); err != nil {
		return
	}
	if flat, err = s.SolveSystem(sys); err != nil {
		return
	}
	T = utils.Reshape(flat, g.Nx, g.Ny)
	return
}

// SolveSystem returns the flat solution of Operator * T = -RHS.
func (s *Solver) SolveSystem(sys *System) (x []complex128, err error) {
	var (
		g    = sys.Grid
		b    = make([]complex128, len(sys.RHS))
		perm utils.Index
		lu   *utils.BandLU
	)
	for k, q := range sys.RHS {
		b[k] = complex(-q, 0)
	}
	if s.Params.ReorderEnabled() && g.Ny < g.Nx {
		perm = utils.TransposedOrdering(g.Nx, g.Ny)
	}
	if lu, err = utils.NewBandLU(sys.Operator, perm, s.pivotTolerance()); err != nil {
		return
	}
	x = lu.Solve(b)
	if k := utils.FirstNonFinite(x); k >= 0 {
		return nil, &types.SingularSystemError{Row: k, Reason: "non-finite solution"}
	}
	res := RelativeResidual(sys.Operator, x, b)
	log.WithFields(log.Fields{
		"kl":       lu.KL,
		"ku":       lu.KU,
		"reorder":  perm != nil,
		"residual": res,
		"complex":  !sys.Operator.IsReal(),
	}).Debug("solved system")
	if tol := s.Params.ResidualTolerance; tol > 0 && res > tol {
		return nil, &types.SingularSystemError{Row: -1, Residual: res, Reason: "near singular operator"}
	}
	return
}

func (s *Solver) pivotTolerance() float64 {
	if s.Params.PivotTolerance > 0 {
		return s.Params.PivotTolerance
	}
	return utils.DefaultPivotTolerance
}

// RelativeResidual returns |A*x - b| / |b|, or |A*x - b| when b is zero.
func RelativeResidual(A utils.CSR, x, b []complex128) float64 {
	var (
		ax     = A.MulVec(x)
		rr, ri = make([]float64, len(b)), make([]float64, len(b))
		br, bi = make([]float64, len(b)), make([]float64, len(b))
	)
	for k := range b {
		r := ax[k] - b[k]
		rr[k], ri[k] = real(r), imag(r)
		br[k], bi[k] = real(b[k]), imag(b[k])
	}
	var (
		rNorm = math.Hypot(floats.Norm(rr, 2), floats.Norm(ri, 2))
		bNorm = math.Hypot(floats.Norm(br, 2), floats.Norm(bi, 2))
	)
	if bNorm == 0 {
		return rNorm
	}
	return rNorm / bNorm
}
