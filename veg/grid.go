package veg

import (
	"fmt"
	"math"

	"bitbucket.org/ctessum/sparse"
	"github.com/usace/veg-processor/utils"
)

// Grid is the vegetation classification raster: one integer zone code per
// cell, stored in a dense array sharing the spatial shape of the depth
// series. It is the accumulating state of the succession simulation and is
// mutated in place by each annual transition pass.
type Grid struct {
	Codes *sparse.DenseArray
}

func InitGrid(codes *sparse.DenseArray) (Grid, error) {
	if len(codes.Shape) != 2 {
		return Grid{}, fmt.Errorf("vegetation grid requires a 2-d array, got shape %v", codes.Shape)
	}
	return Grid{Codes: codes}, nil
}

func InitGridFromRaster(raster utils.TifRaster) (Grid, error) {
	return InitGrid(raster.Data)
}

// TypeMask returns a 0/1 mask of the cells currently classified with a zone
// code. NoData cells (NaN) never match.
func (g Grid) TypeMask(code int) *sparse.DenseArray {
	mask := sparse.ZerosDense(g.Codes.Shape...)
	target := float64(code)
	for i, v := range g.Codes.Elements {
		if v == target {
			mask.Elements[i] = 1
		}
	}
	return mask
}

// Apply writes a destination code at every cell the mask selects, leaving all
// other cells untouched. Returns the number of cells changed.
func (g Grid) Apply(mask *sparse.DenseArray, dest int) int {
	n := 0
	target := float64(dest)
	for i, m := range mask.Elements {
		if m != 0 {
			g.Codes.Elements[i] = target
			n++
		}
	}
	return n
}

// Count reports how many cells carry a zone code.
func (g Grid) Count(code int) int {
	n := 0
	target := float64(code)
	for _, v := range g.Codes.Elements {
		if v == target {
			n++
		}
	}
	return n
}

func (g Grid) Copy() Grid {
	codes := sparse.ZerosDense(g.Codes.Shape...)
	copy(codes.Elements, g.Codes.Elements)
	return Grid{Codes: codes}
}

// maskedCodes is the diagnostic overlay: zone codes where the mask selects,
// NaN elsewhere.
func (g Grid) maskedCodes(mask *sparse.DenseArray) *sparse.DenseArray {
	out := sparse.ZerosDense(g.Codes.Shape...)
	for i, m := range mask.Elements {
		if m != 0 {
			out.Elements[i] = g.Codes.Elements[i]
		} else {
			out.Elements[i] = math.NaN()
		}
	}
	return out
}
