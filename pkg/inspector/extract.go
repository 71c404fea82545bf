package inspector

import (
	"context"
	"fmt"
	"strings"

	"github.com/scigolib/hdf5"
	"go.opentelemetry.io/otel/attribute"

	"github.com/eflow-hydraulics/hdf-inspector/internal/models"
)

// Bucket says which half of the extraction result a category feeds.
type Bucket string

// Extraction buckets.
const (
	BucketGeometry Bucket = "geometry"
	BucketResults  Bucket = "results"
)

// PatternCategory is one named HEC-RAS data category recognized by path
// substring, matched case-insensitively.
type PatternCategory struct {
	Name       string
	Bucket     Bucket
	Substrings []string
}

// Matches reports whether a dataset path belongs to this category.
func (c PatternCategory) Matches(path string) bool {
	lower := strings.ToLower(path)
	for _, sub := range c.Substrings {
		if strings.Contains(lower, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}

// PatternTable is a versioned set of categories. Keeping it a value the
// inspector is constructed with, rather than hard-coded matching, lets
// new data producers be supported without code changes.
type PatternTable struct {
	Version    string
	Categories []PatternCategory
}

// Validate checks the table is usable before any file is matched
// against it.
func (t PatternTable) Validate() error {
	if t.Version == "" {
		return fmt.Errorf("pattern table has no version")
	}
	if len(t.Categories) == 0 {
		return fmt.Errorf("pattern table %s has no categories", t.Version)
	}
	for _, c := range t.Categories {
		if c.Name == "" {
			return fmt.Errorf("pattern table %s: category with empty name", t.Version)
		}
		if c.Bucket != BucketGeometry && c.Bucket != BucketResults {
			return fmt.Errorf("pattern table %s: category %s has unknown bucket %q",
				t.Version, c.Name, c.Bucket)
		}
		if len(c.Substrings) == 0 {
			return fmt.Errorf("pattern table %s: category %s has no substrings",
				t.Version, c.Name)
		}
	}
	return nil
}

// DefaultPatternTable returns the built-in table for HEC-RAS plan files.
// The substrings mirror the dataset layout HEC-RAS 6.x writes for 2D
// flow areas and unsteady output blocks.
func DefaultPatternTable() PatternTable {
	return PatternTable{
		Version: "hecras-v1",
		Categories: []PatternCategory{
			{
				Name:       "mesh_nodes",
				Bucket:     BucketGeometry,
				Substrings: []string{"cells center coordinate", "2dmesh/nodes"},
			},
			{
				Name:       "mesh_elements",
				Bucket:     BucketGeometry,
				Substrings: []string{"cells facepoint indexes", "2dmesh/elements"},
			},
			{
				Name:       "terrain",
				Bucket:     BucketGeometry,
				Substrings: []string{"terrain", "2dterrain/elevation"},
			},
			{
				Name:       "max_wse",
				Bucket:     BucketResults,
				Substrings: []string{"maxwse", "water surface"},
			},
			{
				Name:       "max_velocity",
				Bucket:     BucketResults,
				Substrings: []string{"maxvelocity", "max velocity", "velocity"},
			},
			{
				Name:       "max_depth",
				Bucket:     BucketResults,
				Substrings: []string{"maxdepth", "max depth", "depth"},
			},
		},
	}
}

// Well-known root attributes copied into extraction metadata.
var metadataAttrs = []string{"File Type", "Version", "Created"}

// Extract scans every dataset path against the pattern table and pulls a
// bounded numeric sample for each match into the geometry or results
// bucket. Datasets matching no category stay out of the buckets but
// remain visible through Structure. The extraction summary always lists
// every category with a 1/0 found flag, so a UI checklist can render
// misses as well as hits.
func (ins *Inspector) Extract(ctx context.Context, filePath string) (*models.HecRasData, error) {
	_, span := ins.tracer.Start(ctx, "extract")
	defer span.End()
	span.SetAttributes(attribute.String("file.path", filePath))
	ins.touch()

	f, err := hdf5.Open(filePath)
	if err != nil {
		span.RecordError(err)
		return nil, &OpenError{Path: filePath, Err: err}
	}
	defer f.Close()

	data := &models.HecRasData{
		File:              filePath,
		GeometryData:      map[string][]float64{},
		ResultsData:       map[string][]float64{},
		Metadata:          map[string]string{},
		ExtractionSummary: map[string]int{},
	}

	ins.extractMetadata(f, data.Metadata)

	found := map[string]bool{}
	capElems := ins.config.Inspect.MaxSampleElements

	collectDatasets(f.Root(), "/", func(path string, ds *hdf5.Dataset) {
		for _, cat := range ins.patterns.Categories {
			if !cat.Matches(path) {
				continue
			}
			found[cat.Name] = true

			vals, err := sampleDataset(ds, path, capElems)
			if err != nil {
				// Best-effort: an unreadable match is still counted as
				// found, its values just stay out of the bucket.
				ins.logger.Warnf("Skipping %s values: %v", path, err)
				continue
			}
			switch cat.Bucket {
			case BucketGeometry:
				data.GeometryData[path] = vals
			case BucketResults:
				data.ResultsData[path] = vals
			}
		}
	})

	for _, cat := range ins.patterns.Categories {
		key := string(cat.Bucket) + "_" + cat.Name
		if found[cat.Name] {
			data.ExtractionSummary[key] = 1
		} else {
			data.ExtractionSummary[key] = 0
		}
	}
	data.ExtractionSummary["geometry_datasets"] = len(data.GeometryData)
	data.ExtractionSummary["results_datasets"] = len(data.ResultsData)
	data.ExtractionSummary["metadata_items"] = len(data.Metadata)

	return data, nil
}

// extractMetadata copies the well-known root attributes, defaulting each
// to "Unknown" so the metadata block always has the same keys.
func (ins *Inspector) extractMetadata(f *hdf5.File, dst map[string]string) {
	for _, key := range metadataAttrs {
		dst[key] = "Unknown"
	}

	attrs, err := f.Root().Attributes()
	if err != nil {
		ins.logger.Debugf("Root attributes unreadable: %v", err)
		return
	}
	for _, attr := range attrs {
		for _, key := range metadataAttrs {
			if attr.Name == key {
				dst[key] = stringifyAttrValue(attr.ReadValue())
			}
		}
	}
}

func collectDatasets(g *hdf5.Group, path string, visit func(string, *hdf5.Dataset)) {
	for _, child := range g.Children() {
		childPath := joinPath(path, child.Name())
		switch v := child.(type) {
		case *hdf5.Dataset:
			visit(childPath, v)
		case *hdf5.Group:
			collectDatasets(v, childPath, visit)
		}
	}
}
