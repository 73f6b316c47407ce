package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/usace/cc-go-sdk"
	"github.com/usace/filesapi"
)

func WriteLocalBytes(b []byte, destinationRoot string, destinationPath string) error {
	if _, err := os.Stat(destinationRoot); os.IsNotExist(err) {
		err = os.MkdirAll(destinationRoot, 0755)
		if err != nil {
			return err
		}
	}
	if dir := filepath.Dir(destinationPath); dir != destinationRoot {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			err = os.MkdirAll(dir, 0755)
			if err != nil {
				return err
			}
		}
	}
	return os.WriteFile(destinationPath, b, 0644)
}

// ListAllPaths pages through an s3 backed store directory, used to build the
// WSE raster catalog when model output lives in object storage rather than on
// the local file system.
func ListAllPaths(ioManager cc.IOManager, storeKey string, directoryKey string, filter string) ([]string, error) {
	store, err := ioManager.GetStore(storeKey)
	var pathList []string
	if err != nil {
		return pathList, err
	}
	session, ok := store.Session.(cc.S3DataStore)
	if !ok {
		return pathList, fmt.Errorf("%v was not an s3datastore type", storeKey)
	}
	rawSession, ok := session.GetSession().(filesapi.FileStore)
	if !ok {
		return pathList, errors.New("could not convert s3datastore raw session into filestore type")
	}
	pageIdx := 0
	input := filesapi.ListDirInput{
		Path:   filesapi.PathConfig{Path: directoryKey},
		Page:   pageIdx,
		Size:   filesapi.DEFAULTMAXKEYS,
		Filter: filter,
	}
	for {
		fapiresult, err := rawSession.ListDir(input)
		if err != nil {
			return pathList, err
		}
		list := *fapiresult
		for _, s := range list {
			pathList = append(pathList, s.Path)
		}
		if len(list) < 1000 {
			return pathList, nil
		}
		pageIdx++
		input.Page = pageIdx
	}
}
