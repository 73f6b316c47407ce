package hydro

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// VariantMarker flags sea level rise variant rasters which are excluded from
// analog sequence processing.
var VariantMarker string = "SLR"

var rasterExtension string = ".tif"

type CatalogEntry struct {
	Path string
	Date time.Time
}

// Catalog holds the dated WSE rasters available under a source location.
// Files without a parsable date token and variant rasters are invisible to it.
type Catalog struct {
	Entries []CatalogEntry
}

// BuildCatalog walks a directory tree collecting dated *.tif rasters.
func BuildCatalog(root string) (Catalog, error) {
	paths := make([]string, 0)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return Catalog{}, err
	}
	return CatalogFromPaths(paths), nil
}

// CatalogFromPaths filters an arbitrary path list (local walk or an s3
// listing) down to dated rasters.
func CatalogFromPaths(paths []string) Catalog {
	entries := make([]CatalogEntry, 0, len(paths))
	for _, p := range paths {
		if !strings.EqualFold(filepath.Ext(p), rasterExtension) {
			continue
		}
		if strings.Contains(p, VariantMarker) {
			continue
		}
		d, ok := ExtractDate(p)
		if !ok {
			continue
		}
		entries = append(entries, CatalogEntry{Path: p, Date: d})
	}
	return Catalog{Entries: entries}
}

// WaterYearFiles returns the catalog entries dated within a water year,
// sorted chronologically.
func (c Catalog) WaterYearFiles(waterYear int) []CatalogEntry {
	start, end := WaterYearSpan(waterYear)
	matched := make([]CatalogEntry, 0, 12)
	for _, e := range c.Entries {
		if e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		matched = append(matched, e)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Date.Before(matched[j].Date) })
	return matched
}
