package utils

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/notargets/gothermal/types"
)

const (
	DefaultPivotTolerance = 1.e-13
)

/*
BandLU is an LU factorization with partial pivoting of a complex band matrix
with kl sub-diagonals and ku super-diagonals. Row swaps push fill into the
upper triangle, so each row stores 2*kl+ku+1 entries:

	A[r][c] is at data[r*w + c - r + kl], for r-kl <= c <= r+kl+ku

The factorization is carried out in the permuted ordering perm (new -> old),
which lets a caller pick the ordering with the smaller bandwidth.
*/
type BandLU struct {
	N, KL, KU int
	w         int
	data      []complex128
	ipiv      []int
	perm      Index
}

// NewBandLU factors A. A SingularSystemError is returned when a pivot is
// no larger than pivotTol times the largest entry of A.
func NewBandLU(A CSR, perm Index, pivotTol float64) (lu *BandLU, err error) {
	var (
		nr, nc = A.Dims()
		scale  = A.MaxAbs()
		inv    Index
	)
	if nr != nc {
		panic(fmt.Errorf("band LU requires a square matrix, have %dx%d", nr, nc))
	}
	if perm == nil {
		perm = NewRange(0, nr-1)
	}
	if len(perm) != nr {
		panic(fmt.Errorf("permutation length %d does not match matrix order %d", len(perm), nr))
	}
	inv = perm.Inverse()
	kl, ku := A.Bandwidth(perm)
	lu = &BandLU{
		N:    nr,
		KL:   kl,
		KU:   ku,
		w:    2*kl + ku + 1,
		ipiv: make([]int, nr),
		perm: perm,
	}
	lu.data = make([]complex128, nr*lu.w)
	for r := 0; r < nr; r++ {
		A.DoRowNonZero(perm[r], func(j int, v complex128) {
			lu.data[lu.pos(r, inv[j])] += v
		})
	}
	if scale == 0 {
		return nil, &types.SingularSystemError{Row: 0, Reason: "zero matrix"}
	}
	if err = lu.factor(pivotTol * scale); err != nil {
		return nil, err
	}
	return
}

func (lu *BandLU) pos(r, c int) int { return r*lu.w + c - r + lu.KL }

func (lu *BandLU) factor(tol float64) (err error) {
	var (
		n, kl, ku = lu.N, lu.KL, lu.KU
		d         = lu.data
	)
	for k := 0; k < n; k++ {
		var (
			p      = k
			pivAbs = cmplx.Abs(d[lu.pos(k, k)])
			rMax   = min(n-1, k+kl)
			cMax   = min(n-1, k+kl+ku)
		)
		for r := k + 1; r <= rMax; r++ {
			if a := cmplx.Abs(d[lu.pos(r, k)]); a > pivAbs {
				p, pivAbs = r, a
			}
		}
		if !(pivAbs > tol) || math.IsNaN(pivAbs) {
			return &types.SingularSystemError{Row: lu.perm[k], Pivot: pivAbs, Reason: "pivot below tolerance"}
		}
		lu.ipiv[k] = p
		if p != k {
			for c := k; c <= cMax; c++ {
				a, b := lu.pos(k, c), lu.pos(p, c)
				d[a], d[b] = d[b], d[a]
			}
		}
		piv := d[lu.pos(k, k)]
		for r := k + 1; r <= rMax; r++ {
			lkr := lu.pos(r, k)
			if d[lkr] == 0 {
				continue
			}
			l := d[lkr] / piv
			d[lkr] = l
			for c := k + 1; c <= cMax; c++ {
				d[lu.pos(r, c)] -= l * d[lu.pos(k, c)]
			}
		}
	}
	return
}

// Solve returns x with A*x = b; b and x use the unpermuted ordering.
func (lu *BandLU) Solve(b []complex128) (x []complex128) {
	var (
		n, kl, ku = lu.N, lu.KL, lu.KU
		d         = lu.data
		y         = make([]complex128, n)
	)
	if len(b) != n {
		panic(fmt.Errorf("dimension mismatch: len(b) = %d, N = %d", len(b), n))
	}
	for k, old := range lu.perm {
		y[k] = b[old]
	}
	for k := 0; k < n; k++ {
		if p := lu.ipiv[k]; p != k {
			y[k], y[p] = y[p], y[k]
		}
		if y[k] == 0 {
			continue
		}
		for r := k + 1; r <= min(n-1, k+kl); r++ {
			y[r] -= d[lu.pos(r, k)] * y[k]
		}
	}
	for k := n - 1; k >= 0; k-- {
		s := y[k]
		for c := k + 1; c <= min(n-1, k+kl+ku); c++ {
			s -= d[lu.pos(k, c)] * y[c]
		}
		y[k] = s / d[lu.pos(k, k)]
	}
	x = make([]complex128, n)
	for k, old := range lu.perm {
		x[old] = y[k]
	}
	return
}
