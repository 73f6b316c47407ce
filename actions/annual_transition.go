package actions

import (
	"fmt"
	"os"
	"time"

	"github.com/usace/cc-go-sdk"
	"github.com/usace/veg-processor/hydro"
	"github.com/usace/veg-processor/plotting"
	"github.com/usace/veg-processor/utils"
	"github.com/usace/veg-processor/veg"
	"go.uber.org/zap"
)

// AnnualTransitionAction runs one simulated year of vegetation zone
// transitions: load the water year of depth rasters, apply the rule catalog
// to the current classification raster, persist the updated classification.
//
// Parameters:
//
//	wse_directory   - directory holding the year's monthly depth rasters
//	veg_type_raster - current classification GeoTIFF
//	output_raster   - path for the updated classification GeoTIFF
//	water_year      - simulated water year to evaluate
//	rules_catalog   - yaml rule file path, or "builtin" for the default catalog
//	plot_directory  - directory for diagnostic heatmaps, or "none"
type AnnualTransitionAction struct {
	action cc.Action
}

func InitAnnualTransitionAction(action cc.Action) AnnualTransitionAction {
	return AnnualTransitionAction{action: action}
}

func (ata AnnualTransitionAction) Compute(pm *cc.PluginManager) error {
	a := ata.action
	wseDirectory := a.Parameters.GetStringOrFail("wse_directory")
	vegTypePath := a.Parameters.GetStringOrFail("veg_type_raster")
	outputPath := a.Parameters.GetStringOrFail("output_raster")
	waterYear := a.Parameters.GetIntOrFail("water_year")
	rulesCatalog := a.Parameters.GetStringOrFail("rules_catalog")
	plotDirectory := a.Parameters.GetStringOrFail("plot_directory")

	zapLogger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer zapLogger.Sync()
	log := zapLogger.Sugar()

	catalog, err := hydro.BuildCatalog(wseDirectory)
	if err != nil {
		pm.LogError(cc.Error{
			ErrorLevel: cc.ERROR,
			Error:      fmt.Sprintf("could not catalog %v: %v", wseDirectory, err),
		})
		return err
	}
	series, template, err := hydro.LoadSeries(catalog, waterYear)
	if err != nil {
		pm.LogError(cc.Error{
			ErrorLevel: cc.ERROR,
			Error:      err.Error(),
		})
		return err
	}
	vegRaster, err := utils.ReadTif(vegTypePath)
	if err != nil {
		pm.LogError(cc.Error{
			ErrorLevel: cc.ERROR,
			Error:      err.Error(),
		})
		return err
	}
	grid, err := veg.InitGridFromRaster(vegRaster)
	if err != nil {
		pm.LogError(cc.Error{
			ErrorLevel: cc.ERROR,
			Error:      err.Error(),
		})
		return err
	}

	rules := veg.DefaultRules()
	if rulesCatalog != "builtin" {
		rulesBytes, err := os.ReadFile(rulesCatalog)
		if err != nil {
			pm.LogError(cc.Error{
				ErrorLevel: cc.ERROR,
				Error:      fmt.Sprintf("could not read rules catalog %v: %v", rulesCatalog, err),
			})
			return err
		}
		rules, err = veg.LoadRules(rulesBytes)
		if err != nil {
			pm.LogError(cc.Error{
				ErrorLevel: cc.ERROR,
				Error:      err.Error(),
			})
			return err
		}
	}
	var plotter veg.Plotter
	if plotDirectory != "none" {
		err = os.MkdirAll(plotDirectory, 0755)
		if err != nil {
			return err
		}
		plotter = plotting.InitFilePlotter(plotDirectory, log)
	}
	engine, err := veg.InitEngine(rules, log, plotter)
	if err != nil {
		pm.LogError(cc.Error{
			ErrorLevel: cc.ERROR,
			Error:      err.Error(),
		})
		return err
	}
	refDate := time.Date(waterYear, time.June, 1, 0, 0, 0, 0, time.UTC)
	err = engine.Transition(grid, series, refDate)
	if err != nil {
		pm.LogError(cc.Error{
			ErrorLevel: cc.ERROR,
			Error:      err.Error(),
		})
		return err
	}

	// the template dataset carries the first month's raster as the shape
	// reference for the output classification
	templateDataset := veg.Dataset{
		Attrs:     map[string]string{"source": template.FilePath},
		Variables: map[string]veg.Variable{veg.ReferenceVariable: {Data: template.Data}},
	}
	outDataset, err := veg.DatasetFromTemplate(templateDataset, map[string]veg.Variable{
		"VEG_TYPE": {Data: grid.Codes, Attrs: map[string]string{"water_year": fmt.Sprint(waterYear)}},
	})
	if err != nil {
		pm.LogError(cc.Error{
			ErrorLevel: cc.ERROR,
			Error:      err.Error(),
		})
		return err
	}
	err = utils.WriteTif(outputPath, template, outDataset.Variables["VEG_TYPE"].Data)
	if err != nil {
		pm.LogError(cc.Error{
			ErrorLevel: cc.ERROR,
			Error:      err.Error(),
		})
		return err
	}
	pm.LogMessage(cc.Message{
		Message: fmt.Sprintf("wrote updated vegetation classification for water year %v to %v", waterYear, outputPath),
	})
	return nil
}
