package inspector

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/eflow-hydraulics/hdf-inspector/internal/models"
)

// Find recursively scans a folder for HDF5 files (.hdf, .h5, .hdf5) and
// returns their FileInfo records sorted by file name. Files that cannot
// be opened are still listed, with Accessible false and the error noted,
// so a project browser can show everything it found.
func (ins *Inspector) Find(ctx context.Context, folderPath string) ([]models.FileInfo, error) {
	_, span := ins.tracer.Start(ctx, "find")
	defer span.End()
	ins.touch()

	st, err := os.Stat(folderPath)
	if err != nil {
		return nil, fmt.Errorf("folder does not exist: %s", folderPath)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", folderPath)
	}

	files := []models.FileInfo{}
	err = filepath.WalkDir(folderPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			ins.logger.Warnf("Skipping %s: %v", path, err)
			return nil
		}
		if d.IsDir() || !isHDFExtension(path) {
			return nil
		}
		files = append(files, *ins.Info(ctx, path))
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})
	return files, nil
}

func isHDFExtension(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hdf", ".h5", ".hdf5":
		return true
	}
	return false
}
