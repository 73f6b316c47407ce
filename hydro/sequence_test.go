package hydro

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// writeSourceYear drops monthly raster stand-ins for one water year into dir.
func writeSourceYear(t *testing.T, dir string, waterYear int, months int) {
	t.Helper()
	d := time.Date(waterYear-1, time.October, 15, 0, 0, 0, 0, time.UTC)
	for i := 0; i < months; i++ {
		name := fmt.Sprintf("WSE_MEAN_%v_%02d_%02d.tif", d.Year(), int(d.Month()), d.Day())
		err := os.WriteFile(filepath.Join(dir, name), []byte(name+" payload"), 0644)
		if err != nil {
			t.Fatal(err)
		}
		d = d.AddDate(0, 1, 0)
	}
}

func TestGenerateRenaming(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	writeSourceYear(t, src, 2006, 12)
	catalog, err := BuildCatalog(src)
	if err != nil {
		t.Fatal(err)
	}
	g := InitSequenceGenerator(catalog, map[int]int{1: 2006}, out, nil)
	err = g.Generate([]TargetEntry{{WaterYear: 2030, Quintile: 1}})
	if err != nil {
		t.Fatal(err)
	}
	// the fall months take the prior calendar year of the target water year
	if _, err := os.Stat(filepath.Join(out, "WSE_MEAN_2029_10_15.tif")); err != nil {
		t.Error("expected october relabeled to 2029")
	}
	if _, err := os.Stat(filepath.Join(out, "WSE_MEAN_2029_12_15.tif")); err != nil {
		t.Error("expected december relabeled to 2029")
	}
	if _, err := os.Stat(filepath.Join(out, "WSE_MEAN_2030_03_15.tif")); err != nil {
		t.Error("expected march relabeled to 2030")
	}
	if _, err := os.Stat(filepath.Join(out, "WSE_MEAN_2030_09_15.tif")); err != nil {
		t.Error("expected september relabeled to 2030")
	}
}

func TestGenerateCopiesContentUnchanged(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	writeSourceYear(t, src, 2006, 12)
	catalog, _ := BuildCatalog(src)
	g := InitSequenceGenerator(catalog, map[int]int{1: 2006}, out, nil)
	if err := g.Generate([]TargetEntry{{WaterYear: 2031, Quintile: 1}}); err != nil {
		t.Fatal(err)
	}
	want, _ := os.ReadFile(filepath.Join(src, "WSE_MEAN_2006_03_15.tif"))
	got, err := os.ReadFile(filepath.Join(out, "WSE_MEAN_2031_03_15.tif"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Error("copied raster content differs from source")
	}
}

func TestGenerateIdempotent(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	writeSourceYear(t, src, 2006, 12)
	catalog, _ := BuildCatalog(src)
	g := InitSequenceGenerator(catalog, map[int]int{2: 2006}, out, nil)
	seq := []TargetEntry{{WaterYear: 2030, Quintile: 2}}
	if err := g.Generate(seq); err != nil {
		t.Fatal(err)
	}
	first, _ := os.ReadFile(filepath.Join(out, "WSE_MEAN_2030_05_15.tif"))
	if err := g.Generate(seq); err != nil {
		t.Fatal(err)
	}
	second, _ := os.ReadFile(filepath.Join(out, "WSE_MEAN_2030_05_15.tif"))
	if !bytes.Equal(first, second) {
		t.Error("rerun changed output bytes")
	}
	entries, _ := os.ReadDir(out)
	if len(entries) != 12 {
		t.Errorf("rerun changed output file count, got %v", len(entries))
	}
}

func TestGenerateIncompleteYear(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	writeSourceYear(t, src, 2006, 11)
	catalog, _ := BuildCatalog(src)
	g := InitSequenceGenerator(catalog, map[int]int{1: 2006}, out, nil)
	err := g.Generate([]TargetEntry{{WaterYear: 2030, Quintile: 1}})
	if err == nil {
		t.Fatal("expected missing data error for 11 month year")
	}
}

func TestGenerateMissingSourceYear(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	writeSourceYear(t, src, 2006, 12)
	catalog, _ := BuildCatalog(src)
	g := InitSequenceGenerator(catalog, map[int]int{1: 2011}, out, nil)
	err := g.Generate([]TargetEntry{{WaterYear: 2030, Quintile: 1}})
	if !errors.Is(err, ErrNoSourceFiles) {
		t.Fatalf("expected ErrNoSourceFiles, got %v", err)
	}
}

func TestGenerateMissingQuintileMapping(t *testing.T) {
	src := t.TempDir()
	writeSourceYear(t, src, 2006, 12)
	catalog, _ := BuildCatalog(src)
	g := InitSequenceGenerator(catalog, map[int]int{1: 2006}, t.TempDir(), nil)
	err := g.Generate([]TargetEntry{{WaterYear: 2030, Quintile: 4}})
	if err == nil {
		t.Fatal("expected error for unmapped quintile")
	}
}

func TestCatalogExcludesVariantsAndUndated(t *testing.T) {
	src := t.TempDir()
	writeSourceYear(t, src, 2006, 12)
	os.WriteFile(filepath.Join(src, "WSE_MEAN_SLR_2006_03_15.tif"), []byte("slr"), 0644)
	os.WriteFile(filepath.Join(src, "readme.txt"), []byte("notes"), 0644)
	os.WriteFile(filepath.Join(src, "WSE_MEAN_notadate.tif"), []byte("x"), 0644)
	catalog, err := BuildCatalog(src)
	if err != nil {
		t.Fatal(err)
	}
	if len(catalog.Entries) != 12 {
		t.Errorf("expected 12 catalog entries, got %v", len(catalog.Entries))
	}
}

func TestCatalogFromPathsListing(t *testing.T) {
	// shaped like an s3 directory listing rather than a local walk
	paths := []string{
		"model-output/wse/WSE_MEAN_2005_10_01.tif",
		"model-output/wse/WSE_MEAN_2005_11_01.tif",
		"model-output/wse/WSE_MEAN_2006_09_01.tif",
		"model-output/wse/WSE_MEAN_SLR_2005_12_01.tif",
		"model-output/wse/catalog.txt",
		"model-output/wse/WSE_MEAN_nodate.tif",
	}
	c := CatalogFromPaths(paths)
	if len(c.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %v", len(c.Entries))
	}
	files := c.WaterYearFiles(2006)
	if len(files) != 3 {
		t.Fatalf("expected 3 files in water year 2006, got %v", len(files))
	}
	if files[0].Path != paths[0] || files[2].Path != paths[2] {
		t.Errorf("files not sorted chronologically: %v", files)
	}
}

func TestLoadTargetSequence(t *testing.T) {
	csv := "Water Year,Quintile\r\n2030,1\r\n2031,3\r\n2032,5\r\n"
	seq, err := LoadTargetSequence([]byte(csv))
	if err != nil {
		t.Fatal(err)
	}
	if len(seq) != 3 {
		t.Fatalf("expected 3 entries, got %v", len(seq))
	}
	if seq[1].WaterYear != 2031 || seq[1].Quintile != 3 {
		t.Errorf("bad entry %v", seq[1])
	}
}

func TestLoadTargetSequenceBadHeader(t *testing.T) {
	_, err := LoadTargetSequence([]byte("Year,Rank\n2030,1\n"))
	if err == nil {
		t.Fatal("expected header error")
	}
}

func TestParseQuintileMap(t *testing.T) {
	m, err := ParseQuintileMap("1:2006, 2:2011,5:2023")
	if err != nil {
		t.Fatal(err)
	}
	if m[1] != 2006 || m[2] != 2011 || m[5] != 2023 {
		t.Errorf("bad map %v", m)
	}
	if _, err := ParseQuintileMap("1-2006"); err == nil {
		t.Error("expected parse error")
	}
}
