package veg

import (
	"fmt"
	"time"

	"bitbucket.org/ctessum/sparse"
	"github.com/usace/veg-processor/hydro"
	"go.uber.org/zap"
)

// Plotter receives each intermediate mask of a rule evaluation as a labeled
// overlay. It is a pure side channel: nothing it does affects the grid.
type Plotter interface {
	Plot(label string, values *sparse.DenseArray)
}

type nopPlotter struct{}

func (nopPlotter) Plot(label string, values *sparse.DenseArray) {}

// Engine applies the transition rule catalog to a vegetation grid for one
// simulated year. Rules run in ascending source code order; the catalog is
// validated at construction so no destination code is also a source code.
type Engine struct {
	rules   []Rule
	log     *zap.SugaredLogger
	plotter Plotter
}

func InitEngine(rules []Rule, log *zap.SugaredLogger, plotter Plotter) (Engine, error) {
	sorted, err := validateRuleSet(rules)
	if err != nil {
		return Engine{}, err
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if plotter == nil {
		plotter = nopPlotter{}
	}
	return Engine{rules: sorted, log: log, plotter: plotter}, nil
}

// Transition evaluates every rule against the grid and the year of depth
// data, mutating the grid in place. The reference date establishes the
// calendar year rule windows resolve against.
func (e Engine) Transition(grid Grid, series hydro.Series, refDate time.Time) error {
	if grid.Codes.Shape[0] != series.Rows() || grid.Codes.Shape[1] != series.Cols() {
		return fmt.Errorf("vegetation grid shape %v does not match depth series spatial shape [%v %v]", grid.Codes.Shape, series.Rows(), series.Cols())
	}
	for _, rule := range e.rules {
		e.applyRule(rule, grid, series, refDate.Year())
	}
	return nil
}

func (e Engine) applyRule(rule Rule, grid Grid, series hydro.Series, year int) {
	e.plotter.Plot(fmt.Sprintf("Input - %v", rule.Name), grid.Codes)
	typeMask := grid.TypeMask(rule.Source)
	e.plotter.Plot(fmt.Sprintf("Veg Type Mask (%v)", rule.Name), grid.maskedCodes(typeMask))

	conditionMasks := make([]*sparse.DenseArray, 0, len(rule.Conditions))
	for i, c := range rule.Conditions {
		w := series.Select(c.Window.Resolve(year))
		var mask *sparse.DenseArray
		switch c.Kind {
		case AnyDepth:
			mask = AnyCondition(w, c.Op, c.Threshold)
		case InundationFrequency:
			mask = FrequencyCondition(w, c.Op, c.Threshold, c.Ratio)
		}
		conditionMasks = append(conditionMasks, mask)
		e.plotter.Plot(fmt.Sprintf("Condition %v (%v %v %v %v)", i+1, rule.Name, c.Kind, c.Op, c.Threshold), grid.maskedCodes(mask))
	}

	transitionMask := And(conditionMasks...)
	combined := And(typeMask, transitionMask)
	e.plotter.Plot(fmt.Sprintf("Combined Mask (%v)", rule.Name), grid.maskedCodes(combined))

	n := grid.Apply(combined, rule.Dest)
	e.plotter.Plot(fmt.Sprintf("Output - %v", rule.Name), grid.Codes)
	e.log.Infow("finished zone transitions", "rule", rule.Name, "source", rule.Source, "dest", rule.Dest, "cells", n)
}
