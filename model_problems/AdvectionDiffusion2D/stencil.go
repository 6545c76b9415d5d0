package AdvectionDiffusion2D

import (
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gothermal/geometry2D"
)

// Stencil holds the five point coefficients of one interior row. West and
// East connect to i∓1 (column offset ∓1), South and North to j∓1 (offset ∓nx).
type Stencil struct {
	West, East, South, North complex128
	Diag                     complex128
}

// cellData gives stride aware read access to the raw field storage.
type cellData struct {
	kappa, c, rho, v []float64
	stride           int
}

func newCellData(f geometry2D.Fields) (cd cellData) {
	raw := func(F *mat.Dense) ([]float64, int) {
		rm := F.RawMatrix()
		return rm.Data, rm.Stride
	}
	cd.kappa, cd.stride = raw(f.Conductivity)
	cd.c, _ = raw(f.HeatCapacity)
	cd.rho, _ = raw(f.Density)
	cd.v, _ = raw(f.Velocity)
	return
}

func (cd cellData) K(i, j int) float64    { return cd.kappa[i*cd.stride+j] }
func (cd cellData) CRho(i, j int) float64 { return cd.c[i*cd.stride+j] * cd.rho[i*cd.stride+j] }
func (cd cellData) V(i, j int) float64    { return cd.v[i*cd.stride+j] }

/*
interiorStencil discretizes

	div(kappa grad T) - c rho v dT/dx + Q + i omega c rho T dx dy = 0

at interior cell (i, j). Face conductivities are arithmetic means of the two
cells straddling the face; convection is x directed and centred, so its two
contributions cancel on the diagonal.
*/
func interiorStencil(cd cellData, dx, dy, omega float64, i, j int) (st Stencil) {
	var (
		cRho = cd.CRho(i, j)
		cv   = 0.5 * cRho * cd.V(i, j) * dy
		kW   = 0.5 * (cd.K(i-1, j) + cd.K(i-1, j-1)) * dy / dx
		kE   = 0.5 * (cd.K(i, j) + cd.K(i, j-1)) * dy / dx
		kN   = 0.5 * (cd.K(i-1, j) + cd.K(i, j)) * dx / dy
		kS   = 0.5 * (cd.K(i, j-1) + cd.K(i-1, j-1)) * dx / dy
	)
	st.West = complex(kW-cv, 0)
	st.East = complex(kE+cv, 0)
	st.North = complex(kN, 0)
	st.South = complex(kS, 0)
	st.Diag = complex(-(kW + kE + kN + kS), -cRho*omega*dx*dy)
	return
}
