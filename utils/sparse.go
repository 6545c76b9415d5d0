package utils

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"github.com/james-bowman/sparse"
	"github.com/james-bowman/sparse/blas"
)

// Triplet is one (row, column, value) entry of a coordinate (COO) matrix.
type Triplet struct {
	Row, Col int
	Val      complex128
}

// Triplets accumulates COO entries in any order. Duplicate (row, col) pairs
// are summed when converted to CSR.
type Triplets struct {
	nr, nc int
	T      []Triplet
}

func NewTriplets(nr, nc, capacity int) (tr *Triplets) {
	return &Triplets{
		nr: nr,
		nc: nc,
		T:  make([]Triplet, 0, capacity),
	}
}

func (tr *Triplets) Dims() (r, c int) { return tr.nr, tr.nc }
func (tr *Triplets) Len() int         { return len(tr.T) }

func (tr *Triplets) Add(i, j int, val complex128) {
	if i < 0 || i >= tr.nr || j < 0 || j >= tr.nc {
		panic(fmt.Errorf("triplet index out of bounds: (%d,%d), dims = (%d,%d)", i, j, tr.nr, tr.nc))
	}
	tr.T = append(tr.T, Triplet{i, j, val})
}

// Append moves the entries of B into the receiver, B must have the same dimensions.
func (tr *Triplets) Append(B *Triplets) {
	if B.nr != tr.nr || B.nc != tr.nc {
		panic(fmt.Errorf("triplet dimension mismatch: (%d,%d) and (%d,%d)", tr.nr, tr.nc, B.nr, B.nc))
	}
	tr.T = append(tr.T, B.T...)
}

// ToCSR consolidates the triplets into row compressed form. The real part of
// every stored entry goes into Re, so the sparsity pattern of Re is the full
// pattern; Im only holds nonzero imaginary parts and is nil for a real matrix.
func (tr *Triplets) ToCSR() (R CSR) {
	var (
		T      = make([]Triplet, len(tr.T))
		reP    = make([]int, tr.nr+1)
		imP    = make([]int, tr.nr+1)
		reJ    []int
		imJ    []int
		reD    []float64
		imD    []float64
		isReal = true
	)
	copy(T, tr.T)
	sort.Slice(T, func(a, b int) bool {
		if T[a].Row != T[b].Row {
			return T[a].Row < T[b].Row
		}
		return T[a].Col < T[b].Col
	})
	for k := 0; k < len(T); {
		var (
			row, col = T[k].Row, T[k].Col
			sum      complex128
		)
		for ; k < len(T) && T[k].Row == row && T[k].Col == col; k++ {
			sum += T[k].Val
		}
		reJ = append(reJ, col)
		reD = append(reD, real(sum))
		reP[row+1]++
		if imag(sum) != 0 {
			imJ = append(imJ, col)
			imD = append(imD, imag(sum))
			imP[row+1]++
			isReal = false
		}
	}
	for i := 0; i < tr.nr; i++ {
		reP[i+1] += reP[i]
		imP[i+1] += imP[i]
	}
	R = CSR{
		Re: sparse.NewCSR(tr.nr, tr.nc, reP, reJ, reD),
	}
	if !isReal {
		R.Im = sparse.NewCSR(tr.nr, tr.nc, imP, imJ, imD)
	}
	return
}

// CSR is a complex sparse matrix stored as two real CSR matrices, A = Re + i*Im.
type CSR struct {
	Re, Im *sparse.CSR
}

func (m CSR) Dims() (r, c int) { return m.Re.Dims() }
func (m CSR) IsReal() bool     { return m.Im == nil }
func (m CSR) NNZ() int         { return m.Re.NNZ() }

func (m CSR) At(i, j int) complex128 {
	if m.Im == nil {
		return complex(m.Re.At(i, j), 0)
	}
	return complex(m.Re.At(i, j), m.Im.At(i, j))
}

func (m CSR) RawRe() *blas.SparseMatrix { return m.Re.RawMatrix() }

// DoRowNonZero calls fn for every stored entry of row i in ascending column order.
func (m CSR) DoRowNonZero(i int, fn func(j int, v complex128)) {
	var (
		re = m.Re.RawMatrix()
		im *blas.SparseMatrix
		q  int
	)
	if m.Im != nil {
		im = m.Im.RawMatrix()
		q = im.Indptr[i]
	}
	for p := re.Indptr[i]; p < re.Indptr[i+1]; p++ {
		var (
			j = re.Ind[p]
			v = complex(re.Data[p], 0)
		)
		if im != nil && q < im.Indptr[i+1] && im.Ind[q] == j {
			v += complex(0, im.Data[q])
			q++
		}
		fn(j, v)
	}
}

// RowSum returns the sum of all stored entries of row i.
func (m CSR) RowSum(i int) (sum complex128) {
	m.DoRowNonZero(i, func(j int, v complex128) { sum += v })
	return
}

func (m CSR) MaxAbs() (maxAbs float64) {
	var (
		nr, _ = m.Dims()
	)
	for i := 0; i < nr; i++ {
		m.DoRowNonZero(i, func(j int, v complex128) {
			maxAbs = math.Max(maxAbs, cmplx.Abs(v))
		})
	}
	return
}

// Bandwidth returns the lower and upper half bandwidths of the matrix after
// symmetric permutation by perm (new -> old), nil perm is the identity.
func (m CSR) Bandwidth(perm Index) (kl, ku int) {
	var (
		nr, _ = m.Dims()
		inv   Index
		re    = m.Re.RawMatrix()
	)
	if perm != nil {
		inv = perm.Inverse()
	}
	for i := 0; i < nr; i++ {
		for p := re.Indptr[i]; p < re.Indptr[i+1]; p++ {
			var (
				r, c = i, re.Ind[p]
			)
			if inv != nil {
				r, c = inv[r], inv[c]
			}
			if r-c > kl {
				kl = r - c
			}
			if c-r > ku {
				ku = c - r
			}
		}
	}
	return
}

// MulVec returns y = A*x.
func (m CSR) MulVec(x []complex128) (y []complex128) {
	var (
		nr, nc = m.Dims()
		xr     = make([]float64, nc)
		xi     = make([]float64, nc)
		yr     = make([]float64, nr)
		yi     = make([]float64, nr)
	)
	if len(x) != nc {
		panic(fmt.Errorf("dimension mismatch: len(x) = %d, ncols = %d", len(x), nc))
	}
	for k, v := range x {
		xr[k], xi[k] = real(v), imag(v)
	}
	m.Re.MulVecTo(yr, false, xr)
	m.Re.MulVecTo(yi, false, xi)
	if m.Im != nil {
		var (
			t1 = make([]float64, nr)
			t2 = make([]float64, nr)
		)
		m.Im.MulVecTo(t1, false, xi)
		m.Im.MulVecTo(t2, false, xr)
		for k := 0; k < nr; k++ {
			yr[k] -= t1[k]
			yi[k] += t2[k]
		}
	}
	y = make([]complex128, nr)
	for k := range y {
		y[k] = complex(yr[k], yi[k])
	}
	return
}
