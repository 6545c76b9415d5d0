package AdvectionDiffusion2D

import (
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gothermal/types"
	"github.com/notargets/gothermal/utils"
)

// DirichletRow writes the identity row of a boundary cell: T = 0 is enforced
// together with a zero right hand side.
func DirichletRow(tr *utils.Triplets, row int) {
	tr.Add(row, row, 1)
}

// ZeroBoundarySource returns a copy of Q with its four boundary strips set to
// zero. The caller's matrix is left untouched.
func ZeroBoundarySource(Q mat.Matrix) (Qb *mat.Dense) {
	var (
		nx, ny = Q.Dims()
	)
	Qb = mat.DenseCopyOf(Q)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			if types.CellBC(i, j, nx, ny).IsBoundary() {
				Qb.Set(i, j, 0)
			}
		}
	}
	return
}
