package types

import "fmt"

// BCFLAG classifies a grid cell by the boundary strip it sits on. Every
// boundary strip carries a fixed zero value (Dirichlet).
type BCFLAG uint8

const (
	BC_None BCFLAG = iota // interior cell
	BC_South
	BC_North
	BC_West
	BC_East
)

var bcNames = [...]string{
	BC_None:  "interior",
	BC_South: "south",
	BC_North: "north",
	BC_West:  "west",
	BC_East:  "east",
}

func (bc BCFLAG) String() string {
	if int(bc) < len(bcNames) {
		return bcNames[bc]
	}
	return fmt.Sprintf("BCFLAG(%d)", uint8(bc))
}

// CellBC returns the boundary classification of cell (i, j) on an nx×ny grid.
// Rows of y take precedence at the corners, matching the assembly order.
func CellBC(i, j, nx, ny int) BCFLAG {
	switch {
	case j == 0:
		return BC_South
	case j == ny-1:
		return BC_North
	case i == 0:
		return BC_West
	case i == nx-1:
		return BC_East
	}
	return BC_None
}

func (bc BCFLAG) IsBoundary() bool { return bc != BC_None }
