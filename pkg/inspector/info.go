package inspector

import (
	"context"
	"os"
	"path/filepath"

	"github.com/scigolib/hdf5"

	"github.com/eflow-hydraulics/hdf-inspector/internal/models"
)

// Info inspects a single file and never fails: problems are reported
// through the Accessible and Error fields so the caller can render them
// directly. Accessible means the file opened as a valid HDF5 container.
func (ins *Inspector) Info(ctx context.Context, filePath string) *models.FileInfo {
	_, span := ins.tracer.Start(ctx, "info")
	defer span.End()
	ins.touch()

	info := &models.FileInfo{
		Name: filepath.Base(filePath),
		Path: filePath,
	}
	if abs, err := filepath.Abs(filePath); err == nil {
		info.Path = abs
	}

	st, err := os.Stat(filePath)
	if err != nil {
		info.Error = err.Error()
		return info
	}
	info.SizeMB = float64(st.Size()) / (1024.0 * 1024.0)
	info.Modified = st.ModTime().UTC()

	f, err := hdf5.Open(filePath)
	if err != nil {
		info.Error = err.Error()
		return info
	}
	defer f.Close()

	info.Accessible = true
	info.GroupsCount, info.DatasetsCount = countObjects(f)
	return info
}

// countObjects tallies non-root groups and datasets in the whole file.
func countObjects(f *hdf5.File) (groups, datasets int) {
	f.Walk(func(path string, obj hdf5.Object) {
		switch obj.(type) {
		case *hdf5.Group:
			if path != "/" {
				groups++
			}
		case *hdf5.Dataset:
			datasets++
		}
	})
	return groups, datasets
}
