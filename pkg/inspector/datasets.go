package inspector

import (
	"context"

	"github.com/scigolib/hdf5"
	"go.opentelemetry.io/otel/attribute"
)

// Datasets returns the absolute paths of every dataset in the file,
// depth-first in pre-order, keeping the file's own entry order. Group
// paths never appear in the result.
func (ins *Inspector) Datasets(ctx context.Context, filePath string) ([]string, error) {
	_, span := ins.tracer.Start(ctx, "datasets")
	defer span.End()
	span.SetAttributes(attribute.String("file.path", filePath))
	ins.touch()

	f, err := hdf5.Open(filePath)
	if err != nil {
		span.RecordError(err)
		return nil, &OpenError{Path: filePath, Err: err}
	}
	defer f.Close()

	paths := []string{}
	collectDatasets(f.Root(), "/", func(path string, _ *hdf5.Dataset) {
		paths = append(paths, path)
	})
	return paths, nil
}
