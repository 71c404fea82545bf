package inspector

import (
	"context"
	"fmt"
	"strings"

	"github.com/scigolib/hdf5"
	"go.opentelemetry.io/otel/attribute"
)

// Sample reads at most maxElements values from the start of the named
// dataset's flattened representation. The read is bounded regardless of
// the dataset's true size, which is what makes previewing multi-gigabyte
// files safe. maxElements <= 0 falls back to the configured cap.
func (ins *Inspector) Sample(ctx context.Context, filePath, datasetPath string, maxElements int) ([]float64, error) {
	_, span := ins.tracer.Start(ctx, "sample")
	defer span.End()
	span.SetAttributes(
		attribute.String("file.path", filePath),
		attribute.String("dataset.path", datasetPath),
	)
	ins.touch()

	if maxElements <= 0 {
		maxElements = ins.config.Inspect.MaxSampleElements
	}

	f, err := hdf5.Open(filePath)
	if err != nil {
		span.RecordError(err)
		return nil, &OpenError{Path: filePath, Err: err}
	}
	defer f.Close()

	ds, err := resolveDataset(f, filePath, datasetPath)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	vals, err := sampleDataset(ds, datasetPath, maxElements)
	if err != nil {
		span.RecordError(err)
	}
	return vals, err
}

// resolveDataset walks the group hierarchy segment by segment. A path
// that is absent, or that resolves to a group, yields
// DatasetNotFoundError.
func resolveDataset(f *hdf5.File, filePath, datasetPath string) (*hdf5.Dataset, error) {
	notFound := &DatasetNotFoundError{Path: filePath, DatasetPath: datasetPath}

	segments := []string{}
	for _, seg := range strings.Split(datasetPath, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	if len(segments) == 0 {
		return nil, notFound
	}

	group := f.Root()
	for i, seg := range segments {
		var match hdf5.Object
		for _, child := range group.Children() {
			if child.Name() == seg {
				match = child
				break
			}
		}
		if match == nil {
			return nil, notFound
		}

		if i == len(segments)-1 {
			ds, ok := match.(*hdf5.Dataset)
			if !ok {
				return nil, notFound
			}
			return ds, nil
		}

		next, ok := match.(*hdf5.Group)
		if !ok {
			return nil, notFound
		}
		group = next
	}
	return nil, notFound
}

// sampleDataset does the bounded read on an already resolved dataset.
// Multi-dimensional datasets are read whole rows at a time via a
// hyperslab selection, then truncated, so at most one extra row beyond
// the cap is ever materialized.
func sampleDataset(ds *hdf5.Dataset, datasetPath string, maxElements int) ([]float64, error) {
	meta, err := describeDataset(ds)
	if err != nil {
		return nil, &ReadError{DatasetPath: datasetPath, Err: err}
	}

	total := meta.totalElements()
	if total == 0 {
		return []float64{}, nil
	}
	n := uint64(maxElements)
	if total < n {
		n = total
	}

	// Scalar dataspaces hold a single value; a plain read is already
	// bounded.
	if len(meta.Shape) == 0 {
		vals, err := ds.Read()
		if err != nil {
			return nil, &ReadError{DatasetPath: datasetPath, Err: err}
		}
		if uint64(len(vals)) > n {
			vals = vals[:n]
		}
		return vals, nil
	}

	rowElems := uint64(1)
	for _, d := range meta.Shape[1:] {
		rowElems *= d
	}
	if rowElems == 0 {
		return []float64{}, nil
	}

	rows := (n + rowElems - 1) / rowElems
	if rows > meta.Shape[0] {
		rows = meta.Shape[0]
	}

	start := make([]uint64, len(meta.Shape))
	count := make([]uint64, len(meta.Shape))
	count[0] = rows
	copy(count[1:], meta.Shape[1:])

	raw, err := ds.ReadSlice(start, count)
	if err != nil {
		return nil, &ReadError{DatasetPath: datasetPath, Err: err}
	}

	vals, err := toFloat64s(raw)
	if err != nil {
		return nil, &ReadError{DatasetPath: datasetPath, Err: err}
	}
	if uint64(len(vals)) > n {
		vals = vals[:n]
	}
	return vals, nil
}

// toFloat64s converts the native slice returned by a hyperslab read into
// float64 values for the response.
func toFloat64s(raw interface{}) ([]float64, error) {
	switch v := raw.(type) {
	case []float64:
		return v, nil
	case []float32:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	case []int8:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	case []int16:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	case []int32:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	case []int64:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	case []uint8:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	case []uint16:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	case []uint32:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	case []uint64:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported element type %T", raw)
	}
}
