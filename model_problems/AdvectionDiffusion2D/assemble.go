package AdvectionDiffusion2D

import (
	"math"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gothermal/geometry2D"
	"github.com/notargets/gothermal/types"
	"github.com/notargets/gothermal/utils"
)

// System is the assembled linear system of one solve: Operator * T = -RHS,
// with T and RHS flattened as j*nx + i.
type System struct {
	Grid      geometry2D.Grid
	Frequency float64 // Hz
	Operator  utils.CSR
	RHS       []float64
	Source    *mat.Dense // private copy of the source with zeroed boundaries
}

func ValidateFrequency(frequency float64) error {
	if !(frequency >= 0) || math.IsInf(frequency, 0) {
		return &types.InvalidGridError{Field: "frequency", Reason: "frequency must be finite and non-negative"}
	}
	return nil
}

/*
CheckProperties scans the cells read by the interior stencil. Conductivity
is read on faces at i-1..i, j-1..j, so its range is 0 <= i <= nx-2 and
0 <= j <= ny-2; the remaining fields are only read at interior cells.
The first offending cell in flat order is reported.
*/
func CheckProperties(g geometry2D.Grid, f geometry2D.Fields) (err error) {
	var (
		nx, ny = g.Nx, g.Ny
	)
	positive := func(name string, F *mat.Dense, i, j int) error {
		if val := F.At(i, j); !(val > 0) || math.IsInf(val, 1) {
			return &types.NonPhysicalPropertyError{Property: name, I: i, J: j, Value: val}
		}
		return nil
	}
	finite := func(name string, F *mat.Dense, i, j int) error {
		if val := F.At(i, j); !utils.IsFinite(val) {
			return &types.NonPhysicalPropertyError{Property: name, I: i, J: j, Value: val}
		}
		return nil
	}
	for j := 0; j < ny-1; j++ {
		for i := 0; i < nx-1; i++ {
			if err = positive("conductivity", f.Conductivity, i, j); err != nil {
				return
			}
			if i == 0 || j == 0 {
				continue
			}
			if err = positive("heat_capacity", f.HeatCapacity, i, j); err != nil {
				return
			}
			if err = positive("density", f.Density, i, j); err != nil {
				return
			}
			if err = finite("velocity", f.Velocity, i, j); err != nil {
				return
			}
			if err = finite("source", f.Source, i, j); err != nil {
				return
			}
		}
	}
	return
}

// Assemble builds the operator and right hand side for the given fields.
// Rows are split over parallelDegree goroutines by y index; 0 uses NumCPU.
func Assemble(g geometry2D.Grid, f geometry2D.Fields, frequency float64, parallelDegree int) (sys *System, err error) {
	if err = g.Validate(); err != nil {
		return
	}
	if err = f.Validate(g); err != nil {
		return
	}
	if err = ValidateFrequency(frequency); err != nil {
		return
	}
	if err = CheckProperties(g, f); err != nil {
		return
	}
	var (
		nx, ny = g.Nx, g.Ny
		N      = g.NumCells()
		pm     = utils.NewPartitionMap(parallelDegree, 0, ny)
		parts  = make([]*utils.Triplets, pm.ParallelDegree)
		cd     = newCellData(f)
		omega  = 2 * math.Pi * frequency
	)
	sys = &System{
		Grid:      g,
		Frequency: frequency,
		Source:    ZeroBoundarySource(f.Source),
	}
	pm.Run(func(np, jMin, jMax int) {
		tr := utils.NewTriplets(N, N, 5*nx*(jMax-jMin))
		for j := jMin; j < jMax; j++ {
			for i := 0; i < nx; i++ {
				row := utils.FlatIndex(i, j, nx)
				if types.CellBC(i, j, nx, ny).IsBoundary() {
					DirichletRow(tr, row)
					continue
				}
				st := interiorStencil(cd, g.Dx, g.Dy, omega, i, j)
				tr.Add(row, row, st.Diag)
				tr.Add(row, row-1, st.West)
				tr.Add(row, row+nx, st.North)
				tr.Add(row, row+1, st.East)
				tr.Add(row, row-nx, st.South)
			}
		}
		parts[np] = tr
	})
	all := utils.NewTriplets(N, N, 5*N)
	for _, tr := range parts {
		all.Append(tr)
	}
	sys.Operator = all.ToCSR()
	sys.RHS = utils.Flatten(sys.Source)
	if log.IsLevelEnabled(log.DebugLevel) {
		log.WithFields(log.Fields{
			"nx":        nx,
			"ny":        ny,
			"nnz":       sys.Operator.NNZ(),
			"frequency": frequency,
			"parallel":  pm.ParallelDegree,
			"mem":       utils.GetMemUsage(),
		}).Debug("assembled operator")
	}
	return
}
