package inspector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternCategoryMatches(t *testing.T) {
	cat := PatternCategory{
		Name:       "mesh_nodes",
		Bucket:     BucketGeometry,
		Substrings: []string{"cells center coordinate", "2dmesh/nodes"},
	}

	assert.True(t, cat.Matches("/Geometry/Cells Center Coordinate"))
	assert.True(t, cat.Matches("/model/2DMesh/Nodes"))
	assert.False(t, cat.Matches("/Results/MaxWSE"))
	assert.False(t, cat.Matches(""))
}

func TestPatternTableValidate(t *testing.T) {
	assert.NoError(t, DefaultPatternTable().Validate())

	tests := []struct {
		name  string
		table PatternTable
	}{
		{"empty table", PatternTable{}},
		{"no version", PatternTable{Categories: []PatternCategory{
			{Name: "x", Bucket: BucketResults, Substrings: []string{"x"}},
		}}},
		{"no categories", PatternTable{Version: "v1"}},
		{"empty category name", PatternTable{Version: "v1", Categories: []PatternCategory{
			{Bucket: BucketResults, Substrings: []string{"x"}},
		}}},
		{"unknown bucket", PatternTable{Version: "v1", Categories: []PatternCategory{
			{Name: "x", Bucket: "sideways", Substrings: []string{"x"}},
		}}},
		{"no substrings", PatternTable{Version: "v1", Categories: []PatternCategory{
			{Name: "x", Bucket: BucketResults},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.table.Validate())
		})
	}
}

func TestExtract(t *testing.T) {
	ins := newTestInspector(t)
	path := writePlanFile(t)

	data, err := ins.Extract(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, path, data.File)

	require.Contains(t, data.GeometryData, "/Geometry/Cells Center Coordinate")
	assert.Len(t, data.GeometryData["/Geometry/Cells Center Coordinate"], 10)

	require.Contains(t, data.ResultsData, "/Results/MaxWSE")
	assert.Equal(t, []float64{10, 11, 12, 13, 14, 15, 16, 17, 18, 19},
		data.ResultsData["/Results/MaxWSE"])
	assert.Contains(t, data.ResultsData, "/Results/MaxVelocity")

	// Every category reports a found flag, hits and misses alike.
	assert.Equal(t, 1, data.ExtractionSummary["geometry_mesh_nodes"])
	assert.Equal(t, 0, data.ExtractionSummary["geometry_mesh_elements"])
	assert.Equal(t, 0, data.ExtractionSummary["geometry_terrain"])
	assert.Equal(t, 1, data.ExtractionSummary["results_max_wse"])
	assert.Equal(t, 1, data.ExtractionSummary["results_max_velocity"])
	assert.Equal(t, 0, data.ExtractionSummary["results_max_depth"])

	assert.Equal(t, 1, data.ExtractionSummary["geometry_datasets"])
	assert.Equal(t, 2, data.ExtractionSummary["results_datasets"])
	assert.Equal(t, 3, data.ExtractionSummary["metadata_items"])
}

func TestExtractMetadataDefaults(t *testing.T) {
	ins := newTestInspector(t)
	path := writePlanFile(t)

	data, err := ins.Extract(context.Background(), path)
	require.NoError(t, err)

	// The fixture writes no root attributes, so every well-known key
	// falls back to its default.
	assert.Equal(t, "Unknown", data.Metadata["File Type"])
	assert.Equal(t, "Unknown", data.Metadata["Version"])
	assert.Equal(t, "Unknown", data.Metadata["Created"])
}

func TestExtractRespectsSampleCap(t *testing.T) {
	ins := newTestInspector(t)
	ins.config.Inspect.MaxSampleElements = 3
	path := writePlanFile(t)

	data, err := ins.Extract(context.Background(), path)
	require.NoError(t, err)

	for path, vals := range data.GeometryData {
		assert.LessOrEqual(t, len(vals), 3, "geometry %s over cap", path)
	}
	for path, vals := range data.ResultsData {
		assert.LessOrEqual(t, len(vals), 3, "results %s over cap", path)
	}
}

func TestExtractMissingFile(t *testing.T) {
	ins := newTestInspector(t)

	_, err := ins.Extract(context.Background(), "/no/such/file.hdf")

	var openErr *OpenError
	assert.ErrorAs(t, err, &openErr)
}
