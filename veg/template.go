package veg

import (
	"fmt"

	"bitbucket.org/ctessum/sparse"
	"github.com/usace/veg-processor/hydro"
)

// ReferenceVariable anchors the shape contract for datasets built from a
// template: every new variable must match it exactly.
var ReferenceVariable string = hydro.DepthVariable

type Variable struct {
	Data  *sparse.DenseArray
	Attrs map[string]string
}

// Dataset is a labeled container of same-shape variables plus the coordinate
// and global attributes copied from whatever dataset it was templated on.
type Dataset struct {
	Coords    map[string][]float64
	Attrs     map[string]string
	Variables map[string]Variable
}

// DatasetFromTemplate builds an output dataset with the template's coordinate
// structure and attributes, holding the supplied variables. A variable whose
// array shape differs from the template's reference variable is rejected
// outright, regardless of dimension labels.
func DatasetFromTemplate(template Dataset, newVariables map[string]Variable) (Dataset, error) {
	ref, ok := template.Variables[ReferenceVariable]
	if !ok {
		return Dataset{}, fmt.Errorf("template dataset has no reference variable %v", ReferenceVariable)
	}
	out := Dataset{
		Coords:    make(map[string][]float64, len(template.Coords)),
		Attrs:     make(map[string]string, len(template.Attrs)),
		Variables: make(map[string]Variable, len(newVariables)),
	}
	for name, c := range template.Coords {
		coord := make([]float64, len(c))
		copy(coord, c)
		out.Coords[name] = coord
	}
	for k, v := range template.Attrs {
		out.Attrs[k] = v
	}
	for name, v := range newVariables {
		if !shapeEqual(v.Data.Shape, ref.Data.Shape) {
			return Dataset{}, fmt.Errorf("shape of variable %q (%v) does not match the template shape (%v)", name, v.Data.Shape, ref.Data.Shape)
		}
		out.Variables[name] = v
	}
	return out, nil
}

func shapeEqual(a []int, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
