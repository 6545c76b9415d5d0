package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
	log "github.com/sirupsen/logrus"

	"github.com/notargets/gothermal/geometry2D"
	"github.com/notargets/gothermal/utils"
)

// SolverParameters control the assembly and the linear solve.
type SolverParameters struct {
	ParallelDegree    int     `yaml:"ParallelDegree"`    // goroutines used in assembly, 0 = NumCPU
	PivotTolerance    float64 `yaml:"PivotTolerance"`    // relative to the largest operator entry
	ResidualTolerance float64 `yaml:"ResidualTolerance"` // relative residual accepted after the solve, 0 disables the check
	Reorder           *bool   `yaml:"Reorder"`           // factor along the shorter grid dimension
}

func SolverDefaults() SolverParameters {
	reorder := true
	return SolverParameters{
		ParallelDegree:    0,
		PivotTolerance:    utils.DefaultPivotTolerance,
		ResidualTolerance: 1.e-8,
		Reorder:           &reorder,
	}
}

func (sp SolverParameters) ReorderEnabled() bool {
	return sp.Reorder == nil || *sp.Reorder
}

// Parameters obtained from the YAML input file, describing a uniform medium problem
type InputParameters2D struct {
	Title        string                   `yaml:"Title"`
	Nx           int                      `yaml:"Nx"`
	Ny           int                      `yaml:"Ny"`
	Dx           float64                  `yaml:"Dx"`
	Dy           float64                  `yaml:"Dy"`
	Frequency    float64                  `yaml:"Frequency"` // Hz, 0 is steady state
	Conductivity float64                  `yaml:"Conductivity"`
	HeatCapacity float64                  `yaml:"HeatCapacity"`
	Density      float64                  `yaml:"Density"`
	Velocity     float64                  `yaml:"Velocity"`
	Source       float64                  `yaml:"Source"`
	PointSources []geometry2D.PointSource `yaml:"PointSources"`
	Solver       SolverParameters         `yaml:"Solver"`
}

func (ip *InputParameters2D) Parse(data []byte) error {
	ip.Solver = SolverDefaults()
	return yaml.Unmarshal(data, ip)
}

// GridModel returns the uniform medium provider described by the parameters.
func (ip *InputParameters2D) GridModel() geometry2D.GridModel {
	return &geometry2D.UniformMedium{
		Grid:         geometry2D.Grid{Nx: ip.Nx, Ny: ip.Ny, Dx: ip.Dx, Dy: ip.Dy},
		Conductivity: ip.Conductivity,
		HeatCapacity: ip.HeatCapacity,
		Density:      ip.Density,
		Velocity:     ip.Velocity,
		Source:       ip.Source,
		PointSources: ip.PointSources,
	}
}

func (ip *InputParameters2D) Print() {
	log.WithFields(log.Fields{
		"title":     ip.Title,
		"grid":      fmt.Sprintf("%dx%d", ip.Nx, ip.Ny),
		"dx":        ip.Dx,
		"dy":        ip.Dy,
		"frequency": ip.Frequency,
	}).Info("problem parameters")
	log.WithFields(log.Fields{
		"conductivity":  ip.Conductivity,
		"heat_capacity": ip.HeatCapacity,
		"density":       ip.Density,
		"velocity":      ip.Velocity,
		"source":        ip.Source,
		"point_sources": len(ip.PointSources),
	}).Info("medium")
	log.WithFields(log.Fields{
		"parallel_degree":    ip.Solver.ParallelDegree,
		"pivot_tolerance":    ip.Solver.PivotTolerance,
		"residual_tolerance": ip.Solver.ResidualTolerance,
		"reorder":            ip.Solver.ReorderEnabled(),
	}).Info("solver")
}
