package utils

import (
	"fmt"
	"math"
	"math/cmplx"
	"runtime"
)

func GetMemUsage() string {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	// For info on each, see: https://golang.org/pkg/runtime/#MemStats
	bToMb := func(b uint64) uint64 {
		return b / 1024 / 1024
	}
	return fmt.Sprintf("Alloc = %v MiB TotalAlloc = %v MiB Sys = %v MiB NumGC = %v",
		bToMb(m.Alloc), bToMb(m.TotalAlloc), bToMb(m.Sys), m.NumGC)
}

func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// FirstNonFinite returns the index of the first NaN or Inf entry, or -1.
func FirstNonFinite(A any) int {
	switch v := A.(type) {
	case []float64:
		for i, f := range v {
			if !IsFinite(f) {
				return i
			}
		}
	case []complex128:
		for i, c := range v {
			if cmplx.IsNaN(c) || cmplx.IsInf(c) {
				return i
			}
		}
	default:
		panic(fmt.Errorf("unsupported type %T", A))
	}
	return -1
}
