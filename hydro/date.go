package hydro

import (
	"path/filepath"
	"strings"
	"time"
)

var dateTokenLayout string = "2006_01_02"

// ExtractDate pulls the calendar date embedded in a HEC-RAS output file name,
// where the last three underscore delimited tokens of the stem encode
// YYYY_MM_DD (e.g. WSE_MEAN_2006_10_01.tif). The second return is false when
// the name carries no valid date; callers treat that as a skip signal.
func ExtractDate(path string) (time.Time, bool) {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	parts := strings.Split(stem, "_")
	if len(parts) < 3 {
		return time.Time{}, false
	}
	token := strings.Join(parts[len(parts)-3:], "_")
	d, err := time.Parse(dateTokenLayout, token)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// WaterYear maps a calendar date to its water year. The water year runs
// October 1 through September 30, so October through December belong to the
// following calendar year's water year.
func WaterYear(d time.Time) int {
	if d.Month() >= time.October {
		return d.Year() + 1
	}
	return d.Year()
}

// WaterYearSpan returns the inclusive calendar bounds of a water year.
func WaterYearSpan(waterYear int) (time.Time, time.Time) {
	start := time.Date(waterYear-1, time.October, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(waterYear, time.September, 30, 0, 0, 0, 0, time.UTC)
	return start, end
}

// RelabelYear computes the calendar year a source file takes when renamed into
// a target water year. A file dated October through December sits in the fall
// of the water year and is relabeled target minus one; January through
// September keeps the target year.
func RelabelYear(fileDate time.Time, targetWaterYear int) int {
	if fileDate.Month() >= time.October {
		return targetWaterYear - 1
	}
	return targetWaterYear
}
