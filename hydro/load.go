package hydro

import (
	"fmt"
	"time"

	"bitbucket.org/ctessum/sparse"
	"github.com/usace/veg-processor/utils"
)

// LoadSeries reads one water year of monthly depth rasters from the catalog
// into a stacked series. The twelve month completeness requirement applies
// here exactly as in sequence generation, since the transition engine assumes
// a serially complete time axis.
func LoadSeries(catalog Catalog, waterYear int) (Series, utils.TifRaster, error) {
	files := catalog.WaterYearFiles(waterYear)
	if len(files) == 0 {
		return Series{}, utils.TifRaster{}, fmt.Errorf("%w for water year %v", ErrNoSourceFiles, waterYear)
	}
	if len(files) < MonthsPerWaterYear {
		return Series{}, utils.TifRaster{}, fmt.Errorf("missing data for water year %v: found %v monthly files, need %v", waterYear, len(files), MonthsPerWaterYear)
	}
	var depth *sparse.DenseArray
	var template utils.TifRaster
	times := make([]time.Time, 0, len(files))
	for i, f := range files {
		raster, err := utils.ReadTif(f.Path)
		if err != nil {
			return Series{}, utils.TifRaster{}, err
		}
		if i == 0 {
			template = raster
			depth = sparse.ZerosDense(len(files), raster.Data.Shape[0], raster.Data.Shape[1])
		}
		if raster.Data.Shape[0] != depth.Shape[1] || raster.Data.Shape[1] != depth.Shape[2] {
			return Series{}, utils.TifRaster{}, fmt.Errorf("raster %v shape %v does not match series shape %v", f.Path, raster.Data.Shape, depth.Shape[1:])
		}
		offset := i * depth.Shape[1] * depth.Shape[2]
		copy(depth.Elements[offset:offset+len(raster.Data.Elements)], raster.Data.Elements)
		times = append(times, f.Date)
	}
	s, err := InitSeries(DepthVariable, times, depth)
	if err != nil {
		return Series{}, utils.TifRaster{}, err
	}
	return s, template, nil
}
