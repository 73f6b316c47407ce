package hydro

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/usace/veg-processor/utils"
	"go.uber.org/zap"
)

// MonthsPerWaterYear is the required raster cadence. The generator assumes
// strictly monthly output and will not interpolate a short year.
var MonthsPerWaterYear int = 12

var ErrNoSourceFiles = errors.New("no source wse files found")

var sequenceHeaderWaterYear string = "Water Year"
var sequenceHeaderQuintile string = "Quintile"

// TargetEntry is one row of the synthetic run: the water year being simulated
// and the flow quintile assigned to it.
type TargetEntry struct {
	WaterYear int
	Quintile  int
}

// LoadTargetSequence parses the quintile sequence csv, expecting "Water Year"
// and "Quintile" columns. Tolerates windows and unix line endings.
func LoadTargetSequence(data []byte) ([]TargetEntry, error) {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	lines := strings.Split(text, "\n")
	entries := make([]TargetEntry, 0)
	yearIdx := -1
	quintileIdx := -1
	for i, line := range lines {
		if len(line) == 0 {
			continue
		}
		cells := strings.Split(line, ",")
		if i == 0 {
			for idx, c := range cells {
				switch strings.TrimSpace(c) {
				case sequenceHeaderWaterYear:
					yearIdx = idx
				case sequenceHeaderQuintile:
					quintileIdx = idx
				}
			}
			if yearIdx == -1 || quintileIdx == -1 {
				return entries, fmt.Errorf("quintile sequence header must contain %q and %q columns, found %v", sequenceHeaderWaterYear, sequenceHeaderQuintile, lines[0])
			}
			continue
		}
		if len(cells) <= yearIdx || len(cells) <= quintileIdx {
			return entries, fmt.Errorf("quintile sequence row %v has %v columns, expected at least %v", i, len(cells), max(yearIdx, quintileIdx)+1)
		}
		wy, err := strconv.Atoi(strings.TrimSpace(cells[yearIdx]))
		if err != nil {
			return entries, fmt.Errorf("quintile sequence row %v: bad water year %q", i, cells[yearIdx])
		}
		q, err := strconv.Atoi(strings.TrimSpace(cells[quintileIdx]))
		if err != nil {
			return entries, fmt.Errorf("quintile sequence row %v: bad quintile %q", i, cells[quintileIdx])
		}
		entries = append(entries, TargetEntry{WaterYear: wy, Quintile: q})
	}
	return entries, nil
}

// ParseQuintileMap parses a quintile-to-source-year attribute of the form
// "1:2006,2:2023".
func ParseQuintileMap(s string) (map[int]int, error) {
	out := make(map[int]int)
	for _, pair := range strings.Split(s, ",") {
		parts := strings.Split(strings.TrimSpace(pair), ":")
		if len(parts) != 2 {
			return out, fmt.Errorf("bad quintile map entry %q, expected quintile:year", pair)
		}
		q, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return out, fmt.Errorf("bad quintile %q in map entry %q", parts[0], pair)
		}
		year, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return out, fmt.Errorf("bad year %q in map entry %q", parts[1], pair)
		}
		out[q] = year
	}
	return out, nil
}

// SequenceGenerator reassembles a catalog of monthly WSE rasters into a
// synthetic multi-year run by copying each analog year's files under names
// encoding the target water year. File contents and timestamps are untouched;
// only names change, so reruns overwrite identical outputs.
type SequenceGenerator struct {
	Catalog        Catalog
	QuintileToYear map[int]int
	OutputDir      string
	Log            *zap.SugaredLogger
}

func InitSequenceGenerator(catalog Catalog, quintileToYear map[int]int, outputDir string, log *zap.SugaredLogger) SequenceGenerator {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return SequenceGenerator{
		Catalog:        catalog,
		QuintileToYear: quintileToYear,
		OutputDir:      outputDir,
		Log:            log,
	}
}

// Generate copies and relabels the catalog rasters for every target entry. A
// target entry with no source files, or with fewer than twelve monthly files,
// aborts the run rather than skipping.
func (g SequenceGenerator) Generate(sequence []TargetEntry) error {
	if len(g.Catalog.Entries) == 0 {
		return fmt.Errorf("%w in catalog", ErrNoSourceFiles)
	}
	for _, entry := range sequence {
		if err := g.generateYear(entry); err != nil {
			return err
		}
	}
	g.Log.Infow("generated analog sequence", "years", len(sequence), "output", g.OutputDir)
	return nil
}

func (g SequenceGenerator) generateYear(entry TargetEntry) error {
	sourceYear, ok := g.QuintileToYear[entry.Quintile]
	if !ok {
		return fmt.Errorf("quintile %v has no source year mapping", entry.Quintile)
	}
	files := g.Catalog.WaterYearFiles(sourceYear)
	if len(files) == 0 {
		return fmt.Errorf("%w for source water year %v", ErrNoSourceFiles, sourceYear)
	}
	if len(files) < MonthsPerWaterYear {
		return fmt.Errorf("missing data for source water year %v: found %v monthly files, need %v", sourceYear, len(files), MonthsPerWaterYear)
	}
	g.Log.Infow("mapping analog year", "source", sourceYear, "target", entry.WaterYear)
	for _, f := range files {
		year := RelabelYear(f.Date, entry.WaterYear)
		name := fmt.Sprintf("WSE_MEAN_%v_%02d_%02d%v", year, int(f.Date.Month()), f.Date.Day(), rasterExtension)
		data, err := os.ReadFile(f.Path)
		if err != nil {
			return fmt.Errorf("could not read source raster %v: %v", f.Path, err)
		}
		dest := filepath.Join(g.OutputDir, name)
		err = utils.WriteLocalBytes(data, g.OutputDir, dest)
		if err != nil {
			return fmt.Errorf("could not write %v: %v", dest, err)
		}
		g.Log.Debugw("copied raster", "source", f.Path, "dest", dest)
	}
	return nil
}
