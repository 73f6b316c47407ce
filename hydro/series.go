package hydro

import (
	"fmt"
	"time"

	"bitbucket.org/ctessum/sparse"
)

// DepthVariable is the raster variable carrying inundation depth, water
// surface elevation minus the domain DEM.
var DepthVariable string = "WSE_MEAN"

// Series is one simulated year of monthly inundation depth as a time indexed
// 3-d array with shape (time, y, x). The time axis is serially complete by
// construction: the sequence generator's twelve month check is the upstream
// guarantee, and no gap detection happens here.
type Series struct {
	Variable string
	Times    []time.Time
	Depth    *sparse.DenseArray
}

func InitSeries(variable string, times []time.Time, depth *sparse.DenseArray) (Series, error) {
	if len(depth.Shape) != 3 {
		return Series{}, fmt.Errorf("series %v requires a 3-d array, got shape %v", variable, depth.Shape)
	}
	if depth.Shape[0] != len(times) {
		return Series{}, fmt.Errorf("series %v has %v time steps but %v dates", variable, depth.Shape[0], len(times))
	}
	for i := 1; i < len(times); i++ {
		if !times[i].After(times[i-1]) {
			return Series{}, fmt.Errorf("series %v dates are not strictly increasing at index %v (%v)", variable, i, times[i])
		}
	}
	return Series{Variable: variable, Times: times, Depth: depth}, nil
}

// Rows and Cols give the spatial shape shared with the vegetation grid.
func (s Series) Rows() int { return s.Depth.Shape[1] }
func (s Series) Cols() int { return s.Depth.Shape[2] }

// MonthSpan is an inclusive year-month range, the resolution transition rule
// windows are defined at.
type MonthSpan struct {
	StartYear  int
	StartMonth time.Month
	EndYear    int
	EndMonth   time.Month
}

func (m MonthSpan) contains(d time.Time) bool {
	ym := d.Year()*12 + int(d.Month()) - 1
	lo := m.StartYear*12 + int(m.StartMonth) - 1
	hi := m.EndYear*12 + int(m.EndMonth) - 1
	return ym >= lo && ym <= hi
}

// Window is a contiguous run of time indices selected from a series.
type Window struct {
	Series Series
	T0     int // first index in the window
	T1     int // one past the last index
}

func (w Window) Steps() int { return w.T1 - w.T0 }

// Select returns the window of time steps whose year and month fall inside
// the span, mirroring a label based date range selection.
func (s Series) Select(span MonthSpan) Window {
	t0 := len(s.Times)
	t1 := 0
	for i, d := range s.Times {
		if span.contains(d) {
			if i < t0 {
				t0 = i
			}
			t1 = i + 1
		}
	}
	if t0 >= t1 {
		return Window{Series: s, T0: 0, T1: 0}
	}
	return Window{Series: s, T0: t0, T1: t1}
}
