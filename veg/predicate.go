package veg

import (
	"fmt"

	"bitbucket.org/ctessum/sparse"
	"github.com/usace/veg-processor/hydro"
)

// Op is a threshold comparison applied cell-wise to depth values. NaN depth
// (nodata) fails every comparison.
type Op string

const (
	OpLE Op = "le"
	OpLT Op = "lt"
	OpGE Op = "ge"
	OpGT Op = "gt"
)

func (o Op) Eval(v float64, threshold float64) bool {
	switch o {
	case OpLE:
		return v <= threshold
	case OpLT:
		return v < threshold
	case OpGE:
		return v >= threshold
	case OpGT:
		return v > threshold
	}
	return false
}

func (o Op) Valid() error {
	switch o {
	case OpLE, OpLT, OpGE, OpGT:
		return nil
	}
	return fmt.Errorf("unknown comparison operator %q", string(o))
}

// AnyCondition marks a cell when the comparison holds at one or more time
// steps inside the window.
func AnyCondition(w hydro.Window, op Op, threshold float64) *sparse.DenseArray {
	rows := w.Series.Rows()
	cols := w.Series.Cols()
	mask := sparse.ZerosDense(rows, cols)
	for t := w.T0; t < w.T1; t++ {
		for y := 0; y < rows; y++ {
			for x := 0; x < cols; x++ {
				if op.Eval(w.Series.Depth.Get(t, y, x), threshold) {
					mask.Set(1, y, x)
				}
			}
		}
	}
	return mask
}

// FrequencyCondition marks a cell when the fraction of window time steps
// satisfying the comparison exceeds the ratio. The window is assumed serially
// complete; the twelve month check upstream is the guarantee.
func FrequencyCondition(w hydro.Window, op Op, threshold float64, ratio float64) *sparse.DenseArray {
	rows := w.Series.Rows()
	cols := w.Series.Cols()
	mask := sparse.ZerosDense(rows, cols)
	steps := w.Steps()
	if steps == 0 {
		return mask
	}
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			hits := 0
			for t := w.T0; t < w.T1; t++ {
				if op.Eval(w.Series.Depth.Get(t, y, x), threshold) {
					hits++
				}
			}
			if float64(hits)/float64(steps) > ratio {
				mask.Set(1, y, x)
			}
		}
	}
	return mask
}

// And combines 0/1 masks cell-wise.
func And(masks ...*sparse.DenseArray) *sparse.DenseArray {
	out := sparse.ZerosDense(masks[0].Shape...)
	for i := range out.Elements {
		all := true
		for _, m := range masks {
			if m.Elements[i] == 0 {
				all = false
				break
			}
		}
		if all {
			out.Elements[i] = 1
		}
	}
	return out
}
