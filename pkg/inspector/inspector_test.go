package inspector

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/scigolib/hdf5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eflow-hydraulics/hdf-inspector/internal/models"
	"github.com/eflow-hydraulics/hdf-inspector/pkg/config"
)

func newTestInspector(t *testing.T) *Inspector {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{Port: 8000},
		Inspect: config.InspectConfig{
			MaxDepth:          -1,
			MaxSampleElements: 1000,
		},
	}

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	ins, err := New(cfg, logger)
	require.NoError(t, err)
	return ins
}

// writePlanFile builds a small HEC-RAS-shaped plan file:
//
//	/Geometry/Cells Center Coordinate  float64 [5 x 2]
//	/Results/MaxWSE                    float64 [10]
//	/Results/MaxVelocity               float32 [4]
func writePlanFile(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "plan.p01.hdf")

	fw, err := hdf5.CreateForWrite(path, hdf5.CreateTruncate)
	require.NoError(t, err)

	_, err = fw.CreateGroup("/Geometry")
	require.NoError(t, err)
	_, err = fw.CreateGroup("/Results")
	require.NoError(t, err)

	coords, err := fw.CreateDataset("/Geometry/Cells Center Coordinate", hdf5.Float64, []uint64{5, 2})
	require.NoError(t, err)
	require.NoError(t, coords.Write([]float64{
		0.0, 0.5,
		1.0, 1.5,
		2.0, 2.5,
		3.0, 3.5,
		4.0, 4.5,
	}))
	require.NoError(t, coords.WriteAttribute("units", "m"))

	wse, err := fw.CreateDataset("/Results/MaxWSE", hdf5.Float64, []uint64{10})
	require.NoError(t, err)
	require.NoError(t, wse.Write([]float64{10, 11, 12, 13, 14, 15, 16, 17, 18, 19}))

	vel, err := fw.CreateDataset("/Results/MaxVelocity", hdf5.Float32, []uint64{4})
	require.NoError(t, err)
	require.NoError(t, vel.Write([]float32{0.1, 0.2, 0.3, 0.4}))

	require.NoError(t, fw.Close())
	return path
}

func TestInfo(t *testing.T) {
	ins := newTestInspector(t)
	path := writePlanFile(t)

	info := ins.Info(context.Background(), path)

	assert.Equal(t, "plan.p01.hdf", info.Name)
	assert.True(t, info.Accessible)
	assert.Empty(t, info.Error)
	assert.Greater(t, info.SizeMB, 0.0)
	assert.False(t, info.Modified.IsZero())
	assert.Equal(t, 2, info.GroupsCount)
	assert.Equal(t, 3, info.DatasetsCount)
	assert.True(t, filepath.IsAbs(info.Path))
}

func TestInfoIsIdempotent(t *testing.T) {
	ins := newTestInspector(t)
	path := writePlanFile(t)

	first := ins.Info(context.Background(), path)
	second := ins.Info(context.Background(), path)

	assert.Equal(t, first, second)
}

func TestInfoMissingFile(t *testing.T) {
	ins := newTestInspector(t)

	info := ins.Info(context.Background(), "/no/such/file.hdf")

	assert.False(t, info.Accessible)
	assert.NotEmpty(t, info.Error)
	assert.Equal(t, "file.hdf", info.Name)
}

func TestInfoNotAnHDF5File(t *testing.T) {
	ins := newTestInspector(t)

	path := filepath.Join(t.TempDir(), "bogus.h5")
	require.NoError(t, os.WriteFile(path, []byte("not an hdf5 container"), 0o644))

	info := ins.Info(context.Background(), path)

	assert.False(t, info.Accessible)
	assert.NotEmpty(t, info.Error)
	assert.Greater(t, info.SizeMB, 0.0)
}

func TestStructure(t *testing.T) {
	ins := newTestInspector(t)
	path := writePlanFile(t)

	st, err := ins.Structure(context.Background(), path, StructureOptions{MaxDepth: -1})
	require.NoError(t, err)

	assert.Equal(t, path, st.FilePath)
	assert.Equal(t, "/", st.Root.Name)
	assert.Equal(t, "/", st.Root.Path)
	assert.Equal(t, models.NodeKindGroup, st.Root.Kind)
	assert.Equal(t, 2, st.TotalGroups)
	assert.Equal(t, 3, st.TotalDatasets)

	var coords *models.TreeNode
	for i := range st.Root.Children {
		group := &st.Root.Children[i]
		assert.Equal(t, models.NodeKindGroup, group.Kind)
		for j := range group.Children {
			if group.Children[j].Name == "Cells Center Coordinate" {
				coords = &group.Children[j]
			}
		}
	}
	require.NotNil(t, coords, "coordinate dataset missing from tree")
	assert.Equal(t, models.NodeKindDataset, coords.Kind)
	assert.Equal(t, "/Geometry/Cells Center Coordinate", coords.Path)
	assert.Equal(t, []uint64{5, 2}, coords.Shape)
	assert.Equal(t, "float64", coords.Dtype)
	assert.Empty(t, coords.Children, "datasets never have children")
}

func TestStructureMaxDepthZero(t *testing.T) {
	ins := newTestInspector(t)
	path := writePlanFile(t)

	st, err := ins.Structure(context.Background(), path, StructureOptions{MaxDepth: 0})
	require.NoError(t, err)

	assert.Empty(t, st.Root.Children)
	assert.Equal(t, 0, st.TotalGroups)
	assert.Equal(t, 0, st.TotalDatasets)
}

func TestStructureMaxDepthOne(t *testing.T) {
	ins := newTestInspector(t)
	path := writePlanFile(t)

	st, err := ins.Structure(context.Background(), path, StructureOptions{MaxDepth: 1})
	require.NoError(t, err)

	assert.Len(t, st.Root.Children, 2)
	for _, child := range st.Root.Children {
		assert.Empty(t, child.Children, "depth 1 must not descend into %s", child.Name)
	}
	assert.Equal(t, 2, st.TotalGroups)
	assert.Equal(t, 0, st.TotalDatasets)
}

func TestStructureIncludesAttributes(t *testing.T) {
	ins := newTestInspector(t)
	path := writePlanFile(t)

	st, err := ins.Structure(context.Background(), path, StructureOptions{
		MaxDepth:          -1,
		IncludeAttributes: true,
	})
	require.NoError(t, err)

	var units string
	for _, group := range st.Root.Children {
		for _, child := range group.Children {
			if child.Name == "Cells Center Coordinate" {
				units = child.Attributes["units"]
			}
		}
	}
	assert.Equal(t, "m", units)
}

func TestStructureOpenError(t *testing.T) {
	ins := newTestInspector(t)

	_, err := ins.Structure(context.Background(), "/no/such/file.hdf", StructureOptions{MaxDepth: -1})

	var openErr *OpenError
	require.ErrorAs(t, err, &openErr)
	assert.Equal(t, "/no/such/file.hdf", openErr.Path)
}

func TestDatasets(t *testing.T) {
	ins := newTestInspector(t)
	path := writePlanFile(t)

	paths, err := ins.Datasets(context.Background(), path)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"/Geometry/Cells Center Coordinate",
		"/Results/MaxWSE",
		"/Results/MaxVelocity",
	}, paths)
	for _, p := range paths {
		assert.NotEqual(t, "/Geometry", p, "group paths must not be listed")
		assert.NotEqual(t, "/Results", p, "group paths must not be listed")
	}
}

func TestSample(t *testing.T) {
	ins := newTestInspector(t)
	path := writePlanFile(t)

	vals, err := ins.Sample(context.Background(), path, "/Results/MaxWSE", 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 11, 12}, vals)
}

func TestSampleCapBeyondDatasetSize(t *testing.T) {
	ins := newTestInspector(t)
	path := writePlanFile(t)

	vals, err := ins.Sample(context.Background(), path, "/Results/MaxWSE", 100)
	require.NoError(t, err)
	assert.Len(t, vals, 10, "sample length is min(cap, dataset size)")
}

func TestSampleMultiDimensional(t *testing.T) {
	ins := newTestInspector(t)
	path := writePlanFile(t)

	vals, err := ins.Sample(context.Background(), path, "/Geometry/Cells Center Coordinate", 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.0, 0.5, 1.0}, vals, "flattened row-major order")
}

func TestSampleFloat32Widens(t *testing.T) {
	ins := newTestInspector(t)
	path := writePlanFile(t)

	vals, err := ins.Sample(context.Background(), path, "/Results/MaxVelocity", 2)
	require.NoError(t, err)
	require.Len(t, vals, 2)
	assert.InDelta(t, 0.1, vals[0], 1e-6)
	assert.InDelta(t, 0.2, vals[1], 1e-6)
}

func TestSampleDefaultsToConfiguredCap(t *testing.T) {
	ins := newTestInspector(t)
	ins.config.Inspect.MaxSampleElements = 4
	path := writePlanFile(t)

	vals, err := ins.Sample(context.Background(), path, "/Results/MaxWSE", 0)
	require.NoError(t, err)
	assert.Len(t, vals, 4)
}

func TestSampleOnGroupPath(t *testing.T) {
	ins := newTestInspector(t)
	path := writePlanFile(t)

	_, err := ins.Sample(context.Background(), path, "/Geometry", 10)

	var notFound *DatasetNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "/Geometry", notFound.DatasetPath)
}

func TestSampleMissingDataset(t *testing.T) {
	ins := newTestInspector(t)
	path := writePlanFile(t)

	_, err := ins.Sample(context.Background(), path, "/Results/NoSuchThing", 10)

	var notFound *DatasetNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestSampleMissingFile(t *testing.T) {
	ins := newTestInspector(t)

	_, err := ins.Sample(context.Background(), "/no/such/file.hdf", "/Results/MaxWSE", 10)

	var openErr *OpenError
	assert.ErrorAs(t, err, &openErr)
}

func TestFind(t *testing.T) {
	ins := newTestInspector(t)

	dir := t.TempDir()
	sub := filepath.Join(dir, "runs")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	plan := writePlanFile(t)
	for _, dst := range []string{
		filepath.Join(dir, "b-plan.hdf"),
		filepath.Join(sub, "a-plan.h5"),
	} {
		data, err := os.ReadFile(plan)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(dst, data, 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.hdf5"), []byte("garbage"), 0o644))

	files, err := ins.Find(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, files, 3)

	assert.Equal(t, "a-plan.h5", files[0].Name)
	assert.Equal(t, "b-plan.hdf", files[1].Name)
	assert.Equal(t, "broken.hdf5", files[2].Name)

	assert.True(t, files[0].Accessible)
	assert.True(t, files[1].Accessible)
	assert.False(t, files[2].Accessible, "unreadable files are listed, not dropped")
	assert.NotEmpty(t, files[2].Error)
}

func TestFindMissingFolder(t *testing.T) {
	ins := newTestInspector(t)

	_, err := ins.Find(context.Background(), "/no/such/folder")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "folder does not exist")
}

func TestFindOnFilePath(t *testing.T) {
	ins := newTestInspector(t)
	path := writePlanFile(t)

	_, err := ins.Find(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestNewWithPatternsRejectsBadTable(t *testing.T) {
	cfg := &config.Config{Inspect: config.InspectConfig{MaxSampleElements: 10}}
	logger := logrus.New()

	_, err := NewWithPatterns(cfg, logger, PatternTable{})
	assert.Error(t, err)
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("cause")

	assert.ErrorIs(t, &OpenError{Path: "/f", Err: cause}, cause)
	assert.ErrorIs(t, &ReadError{DatasetPath: "/d", Err: cause}, cause)
}
