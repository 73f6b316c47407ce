package actions

import (
	"fmt"
	"os"

	"github.com/usace/cc-go-sdk"
	"github.com/usace/veg-processor/hydro"
	"github.com/usace/veg-processor/utils"
	"go.uber.org/zap"
)

// GenerateSequenceAction reassembles the monthly WSE raster catalog into a
// synthetic multi-year run directory from a quintile sequence and a
// quintile-to-year mapping. The catalog can come from a local directory walk
// or an s3 backed store listing, and the sequence from a csv or a seeded
// sampler draw.
//
// Parameters:
//
//	source_store          - store key for an s3 backed catalog, or "local"
//	source_directory      - directory (or store prefix) holding the WSE rasters
//	output_directory      - destination for the relabeled sequence
//	quintile_sequence     - csv with "Water Year" and "Quintile" columns, or
//	                        "sample" to draw a synthetic sequence
//	quintile_to_year_map  - e.g. "1:2006,2:2011,3:2015,4:2019,5:2023"
//	sequence_start_year   - first target water year when sampling
//	sequence_years        - sequence length when sampling
//	sequence_seed         - sampling seed when sampling
type GenerateSequenceAction struct {
	action cc.Action
}

func InitGenerateSequenceAction(action cc.Action) GenerateSequenceAction {
	return GenerateSequenceAction{action: action}
}

func (gsa GenerateSequenceAction) Compute(pm *cc.PluginManager) error {
	a := gsa.action
	sourceStore := a.Parameters.GetStringOrFail("source_store")
	sourceDirectory := a.Parameters.GetStringOrFail("source_directory")
	outputDirectory := a.Parameters.GetStringOrFail("output_directory")
	quintileMapString := a.Parameters.GetStringOrFail("quintile_to_year_map")

	quintileToYear, err := hydro.ParseQuintileMap(quintileMapString)
	if err != nil {
		pm.LogError(cc.Error{
			ErrorLevel: cc.ERROR,
			Error:      err.Error(),
		})
		return err
	}
	sequence, err := resolveSequence(a)
	if err != nil {
		pm.LogError(cc.Error{
			ErrorLevel: cc.ERROR,
			Error:      err.Error(),
		})
		return err
	}
	catalog, err := resolveCatalog(a.IOManager, sourceStore, sourceDirectory)
	if err != nil {
		pm.LogError(cc.Error{
			ErrorLevel: cc.ERROR,
			Error:      fmt.Sprintf("could not catalog %v: %v", sourceDirectory, err),
		})
		return err
	}
	zapLogger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer zapLogger.Sync()
	generator := hydro.InitSequenceGenerator(catalog, quintileToYear, outputDirectory, zapLogger.Sugar())
	err = generator.Generate(sequence)
	if err != nil {
		pm.LogError(cc.Error{
			ErrorLevel: cc.ERROR,
			Error:      err.Error(),
		})
		return err
	}
	pm.LogMessage(cc.Message{
		Message: fmt.Sprintf("generated %v year sequence in %v", len(sequence), outputDirectory),
	})
	return nil
}

// resolveCatalog builds the raster catalog from a local directory walk, or
// from an s3 directory listing when a store key is given.
func resolveCatalog(ioManager cc.IOManager, storeKey string, directory string) (hydro.Catalog, error) {
	if storeKey == "local" {
		return hydro.BuildCatalog(directory)
	}
	paths, err := utils.ListAllPaths(ioManager, storeKey, directory, "*.tif")
	if err != nil {
		return hydro.Catalog{}, err
	}
	return hydro.CatalogFromPaths(paths), nil
}

// resolveSequence loads the target sequence csv, or draws a seeded synthetic
// sequence when no csv is supplied.
func resolveSequence(a cc.Action) ([]hydro.TargetEntry, error) {
	source := a.Parameters.GetStringOrFail("quintile_sequence")
	if source == "sample" {
		startYear := a.Parameters.GetIntOrFail("sequence_start_year")
		years := a.Parameters.GetIntOrFail("sequence_years")
		seed := a.Parameters.GetIntOrFail("sequence_seed")
		sampler := hydro.InitQuintileSampler()
		return sampler.SampleSequence(startYear, years, int64(seed)), nil
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("could not read quintile sequence %v: %v", source, err)
	}
	return hydro.LoadTargetSequence(data)
}
