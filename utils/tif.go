package utils

import (
	"errors"
	"fmt"
	"math"

	"bitbucket.org/ctessum/sparse"
	"github.com/dewberry/gdal"
)

// TifRaster is a single band read whole into memory, plus the georeferencing
// needed to write derived rasters back out with the same footprint.
type TifRaster struct {
	FilePath     string
	NoData       float64
	GeoTransform [6]float64
	Projection   string
	Data         *sparse.DenseArray // shape (y, x)
}

// ReadTif loads band 1 of a GeoTIFF into a dense array. NoData cells are
// mapped to NaN so threshold comparisons never match them.
func ReadTif(fp string) (TifRaster, error) {
	ds, err := gdal.Open(fp, gdal.ReadOnly)
	if err != nil {
		return TifRaster{}, errors.New("Cannot connect to tif at path " + fp + err.Error())
	}
	defer ds.Close()
	rb := ds.RasterBand(1)
	xSize := rb.XSize()
	ySize := rb.YSize()
	buffer := make([]float32, xSize*ySize)
	err = rb.IO(gdal.Read, 0, 0, xSize, ySize, buffer, xSize, ySize, 0, 0)
	if err != nil {
		return TifRaster{}, fmt.Errorf("could not read band 1 of %v: %v", fp, err)
	}
	raster := TifRaster{
		FilePath:   fp,
		Projection: ds.Projection(),
		Data:       sparse.ZerosDense(ySize, xSize),
	}
	gt := ds.GeoTransform()
	copy(raster.GeoTransform[:], gt[:])
	nodata, hasNoData := rb.NoDataValue()
	raster.NoData = nodata
	for i, v := range buffer {
		val := float64(v)
		if hasNoData && val == nodata {
			val = math.NaN()
		}
		raster.Data.Elements[i] = val
	}
	return raster, nil
}

// WriteTif persists a 2-d array as a single band GeoTIFF carrying the
// template raster's georeferencing. The array shape must match the template.
func WriteTif(fp string, template TifRaster, data *sparse.DenseArray) error {
	if len(data.Shape) != 2 {
		return fmt.Errorf("can only write 2-d arrays, got shape %v", data.Shape)
	}
	if data.Shape[0] != template.Data.Shape[0] || data.Shape[1] != template.Data.Shape[1] {
		return fmt.Errorf("array shape %v does not match template %v shape %v", data.Shape, template.FilePath, template.Data.Shape)
	}
	driver, err := gdal.GetDriverByName("GTiff")
	if err != nil {
		return err
	}
	ySize := data.Shape[0]
	xSize := data.Shape[1]
	ds := driver.Create(fp, xSize, ySize, 1, gdal.Float32, nil)
	defer ds.Close()
	ds.SetGeoTransform(template.GeoTransform)
	err = ds.SetProjection(template.Projection)
	if err != nil {
		return err
	}
	rb := ds.RasterBand(1)
	err = rb.SetNoDataValue(template.NoData)
	if err != nil {
		return err
	}
	buffer := make([]float32, xSize*ySize)
	for i, v := range data.Elements {
		if math.IsNaN(v) {
			buffer[i] = float32(template.NoData)
		} else {
			buffer[i] = float32(v)
		}
	}
	return rb.IO(gdal.Write, 0, 0, xSize, ySize, buffer, xSize, ySize, 0, 0)
}
