package utils

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

/*
Grid fields are stored as nx×ny matrices, indexed [i,j] with i along x and j along y.
Every linear system built from a field uses the flat index j*nx + i, so the y index
is the outer (slow) one. Flatten, Reshape and the assembler must all agree on this.
*/

type Index []int

func NewIndex(N int) (I Index) {
	return make(Index, N)
}

func NewRange(rmin, rmax int) (r Index) {
	var (
		size = rmax - rmin + 1 // INCLUSIVE RANGE
	)
	r = make(Index, size)
	for i := range r {
		r[i] = i + rmin
	}
	return
}

// Inverse returns J such that J[I[k]] = k. I must be a permutation.
func (I Index) Inverse() (J Index) {
	J = make(Index, len(I))
	for k, ind := range I {
		J[ind] = k
	}
	return
}

func FlatIndex(i, j, nx int) int { return j*nx + i }

func CellIJ(ind, nx int) (i, j int) {
	j = ind / nx
	i = ind - j*nx
	return
}

// TransposedOrdering returns the permutation new -> flat that walks the grid
// with x as the outer index. A banded factorization of a 5 point operator
// has half bandwidth nx in flat order and ny in this order.
func TransposedOrdering(nx, ny int) (perm Index) {
	perm = NewIndex(nx * ny)
	var k int
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			perm[k] = FlatIndex(i, j, nx)
			k++
		}
	}
	return
}

func Flatten(F mat.Matrix) (flat []float64) {
	var (
		nx, ny = F.Dims()
	)
	flat = make([]float64, nx*ny)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			flat[FlatIndex(i, j, nx)] = F.At(i, j)
		}
	}
	return
}

func FlattenComplex(F *mat.CDense) (flat []complex128) {
	var (
		nx, ny = F.Dims()
	)
	flat = make([]complex128, nx*ny)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			flat[FlatIndex(i, j, nx)] = F.At(i, j)
		}
	}
	return
}

// Reshape is the inverse of FlattenComplex.
func Reshape(flat []complex128, nx, ny int) (F *mat.CDense) {
	if len(flat) != nx*ny {
		panic(fmt.Errorf("mismatch in reshape: len(flat) = %d, nx*ny = %d*%d", len(flat), nx, ny))
	}
	F = mat.NewCDense(nx, ny, nil)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			F.Set(i, j, flat[FlatIndex(i, j, nx)])
		}
	}
	return
}

func ReshapeReal(flat []float64, nx, ny int) (F *mat.Dense) {
	if len(flat) != nx*ny {
		panic(fmt.Errorf("mismatch in reshape: len(flat) = %d, nx*ny = %d*%d", len(flat), nx, ny))
	}
	F = mat.NewDense(nx, ny, nil)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			F.Set(i, j, flat[FlatIndex(i, j, nx)])
		}
	}
	return
}

func RealPart(F *mat.CDense) (R *mat.Dense) {
	var (
		nr, nc = F.Dims()
	)
	R = mat.NewDense(nr, nc, nil)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			R.Set(i, j, real(F.At(i, j)))
		}
	}
	return
}

func ImagPart(F *mat.CDense) (R *mat.Dense) {
	var (
		nr, nc = F.Dims()
	)
	R = mat.NewDense(nr, nc, nil)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			R.Set(i, j, imag(F.At(i, j)))
		}
	}
	return
}
