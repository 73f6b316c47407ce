package veg

import (
	"strings"
	"testing"

	"bitbucket.org/ctessum/sparse"
)

func TestDatasetFromTemplate(t *testing.T) {
	template := Dataset{
		Coords: map[string][]float64{"y": {0, 1}, "x": {0, 1, 2}},
		Attrs:  map[string]string{"crs": "EPSG:26915"},
		Variables: map[string]Variable{
			ReferenceVariable: {Data: sparse.ZerosDense(2, 3)},
		},
	}
	out, err := DatasetFromTemplate(template, map[string]Variable{
		"VEG_TYPE": {Data: sparse.ZerosDense(2, 3), Attrs: map[string]string{"units": "zone code"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := out.Variables["VEG_TYPE"]; !ok {
		t.Fatal("output missing new variable")
	}
	if out.Attrs["crs"] != "EPSG:26915" {
		t.Error("template attributes not copied")
	}
	if len(out.Coords["x"]) != 3 {
		t.Error("template coordinates not copied")
	}
}

func TestDatasetFromTemplateShapeMismatch(t *testing.T) {
	template := Dataset{
		Variables: map[string]Variable{
			ReferenceVariable: {Data: sparse.ZerosDense(2, 3)},
		},
	}
	_, err := DatasetFromTemplate(template, map[string]Variable{
		"VEG_TYPE": {Data: sparse.ZerosDense(3, 2)},
	})
	if err == nil {
		t.Fatal("expected shape mismatch error")
	}
	if !strings.Contains(err.Error(), "VEG_TYPE") {
		t.Errorf("error should name the offending variable: %v", err)
	}
}

func TestDatasetFromTemplateMissingReference(t *testing.T) {
	_, err := DatasetFromTemplate(Dataset{}, map[string]Variable{
		"VEG_TYPE": {Data: sparse.ZerosDense(2, 2)},
	})
	if err == nil {
		t.Fatal("expected missing reference variable error")
	}
}
