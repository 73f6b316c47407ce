package hydro

import (
	"testing"
)

func TestClassifyQuintiles(t *testing.T) {
	annual := map[int]float64{
		2006: 1.0,
		2008: 2.0,
		2011: 3.0,
		2015: 4.0,
		2019: 5.0,
		2020: 6.0,
		2021: 7.0,
		2022: 8.0,
		2023: 9.0,
		2024: 10.0,
	}
	q, err := ClassifyQuintiles(annual)
	if err != nil {
		t.Fatal(err)
	}
	if q[2006] != 1 {
		t.Errorf("driest year should be quintile 1, got %v", q[2006])
	}
	if q[2024] != 5 {
		t.Errorf("wettest year should be quintile 5, got %v", q[2024])
	}
	for year, rank := range q {
		if rank < 1 || rank > 5 {
			t.Errorf("year %v ranked %v, outside 1-5", year, rank)
		}
	}
}

func TestClassifyQuintilesTooFewYears(t *testing.T) {
	_, err := ClassifyQuintiles(map[int]float64{2006: 1, 2007: 2})
	if err == nil {
		t.Fatal("expected error for fewer than 5 years")
	}
}

func TestSampleSequenceDeterministic(t *testing.T) {
	qs := InitQuintileSampler()
	a := qs.SampleSequence(2030, 25, 1234)
	b := qs.SampleSequence(2030, 25, 1234)
	if len(a) != 25 {
		t.Fatalf("expected 25 entries, got %v", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed diverged at %v: %v vs %v", i, a[i], b[i])
		}
		if a[i].Quintile < 1 || a[i].Quintile > 5 {
			t.Errorf("quintile %v out of range", a[i].Quintile)
		}
		if a[i].WaterYear != 2030+i {
			t.Errorf("expected consecutive water years, got %v at %v", a[i].WaterYear, i)
		}
	}
}
