package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/usace/cc-go-sdk"
	"github.com/usace/veg-processor/actions"
)

var pluginName string = "veg-processor"

func main() {

	fmt.Println("veg-processor!")
	pm, err := cc.InitPluginManager()
	if err != nil {
		pm.LogError(cc.Error{
			ErrorLevel: cc.FATAL,
			Error:      "could not initiate plugin manager",
		})
		return
	}
	err = computePayload(pm)
	if err != nil {
		pm.LogError(cc.Error{
			ErrorLevel: cc.FATAL,
			Error:      "could not compute payload",
		})
		return
	} else {
		pm.ReportProgress(cc.StatusReport{
			Status:   "complete",
			Progress: 100,
		})
	}
}
func computePayload(pm *cc.PluginManager) error {
	payload := pm.GetPayload()
	if len(payload.Actions) == 0 {
		err := errors.New("expecting at least 1 action to be defined, found none")
		pm.LogError(cc.Error{
			ErrorLevel: cc.FATAL,
			Error:      err.Error(),
		})
		return err
	}
	for _, a := range payload.Actions {
		switch a.Name {
		case "generate_sequence":
			gsa := actions.InitGenerateSequenceAction(a)
			err := gsa.Compute(pm)
			if err != nil {
				return err
			}
		case "annual_transition":
			ata := actions.InitAnnualTransitionAction(a)
			err := ata.Compute(pm)
			if err != nil {
				return err
			}
			err = uploadClassification(pm, a)
			if err != nil {
				return err
			}
		default:
			err := fmt.Errorf("unknown action %v, expecting generate_sequence or annual_transition", a.Name)
			pm.LogError(cc.Error{
				ErrorLevel: cc.FATAL,
				Error:      err.Error(),
			})
			return err
		}
	}
	return nil
}

// uploadClassification pushes the updated classification raster to the first
// payload output referencing a veg raster, if one is defined. Local runs with
// no outputs are valid.
func uploadClassification(pm *cc.PluginManager, a cc.Action) error {
	payload := pm.GetPayload()
	outputPath := a.Parameters.GetStringOrFail("output_raster")
	for _, rfd := range payload.Outputs {
		if !strings.Contains(rfd.Name, "VegTypeRaster") {
			continue
		}
		data, err := os.ReadFile(outputPath)
		if err != nil {
			pm.LogError(cc.Error{
				ErrorLevel: cc.ERROR,
				Error:      fmt.Sprintf("could not read classification output %v: %v", outputPath, err),
			})
			return err
		}
		ds := cc.DataSource{
			Name:      rfd.Name,
			ID:        &uuid.NameSpaceDNS,
			Paths:     rfd.Paths,
			StoreName: rfd.StoreName,
		}
		err = pm.PutFile(data, ds, 0)
		if err != nil {
			pm.LogError(cc.Error{
				ErrorLevel: cc.ERROR,
				Error:      err.Error(),
			})
			return err
		}
	}
	return nil
}
