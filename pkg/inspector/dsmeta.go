package inspector

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/scigolib/hdf5"
)

// datasetMeta is the shape and element-type metadata of a dataset entry.
// Shape is empty for scalar and null dataspaces.
type datasetMeta struct {
	Shape []uint64
	Dtype string
}

func (m *datasetMeta) totalElements() uint64 {
	total := uint64(1)
	for _, d := range m.Shape {
		total *= d
	}
	return total
}

var dtypeRe = regexp.MustCompile(`^(\w+) \(size=(\d+) bytes\)$`)

// describeDataset recovers shape and element type for a dataset. The
// hdf5 package exposes this metadata only through its Info() summary
// string, formatted "Dataset: <datatype>, <dataspace>, <layout>", so
// that summary is taken apart here. The dataspace part is one of
// "scalar", "null", "1D array [5]", "2D array [3 x 4]" or
// "3D array [2 3 4]".
func describeDataset(ds *hdf5.Dataset) (*datasetMeta, error) {
	info, err := ds.Info()
	if err != nil {
		return nil, err
	}

	s := strings.TrimPrefix(info, "Dataset: ")
	parts := strings.SplitN(s, ", ", 3)
	if len(parts) < 2 {
		return nil, fmt.Errorf("unrecognized dataset summary %q", info)
	}

	meta := &datasetMeta{Dtype: friendlyDtype(parts[0])}

	meta.Shape, err = parseDims(parts[1])
	if err != nil {
		return nil, err
	}
	return meta, nil
}

// friendlyDtype turns the library's "float (size=8 bytes)" notation into
// an h5py-style type name like "float64". Unknown classes keep the raw
// notation. Signedness of fixed-point types is not recoverable here.
func friendlyDtype(raw string) string {
	m := dtypeRe.FindStringSubmatch(raw)
	if m == nil {
		return raw
	}
	class, size := m[1], m[2]
	bits, err := strconv.Atoi(size)
	if err != nil {
		return raw
	}
	bits *= 8

	switch class {
	case "integer":
		return fmt.Sprintf("int%d", bits)
	case "float":
		return fmt.Sprintf("float%d", bits)
	case "string":
		return fmt.Sprintf("string(%s)", size)
	default:
		return raw
	}
}

var dimsRe = regexp.MustCompile(`\[([0-9][0-9x ]*)\]`)

func parseDims(dataspace string) ([]uint64, error) {
	switch dataspace {
	case "scalar", "null":
		return nil, nil
	}

	m := dimsRe.FindStringSubmatch(dataspace)
	if m == nil {
		return nil, fmt.Errorf("unrecognized dataspace %q", dataspace)
	}

	fields := strings.FieldsFunc(m[1], func(r rune) bool {
		return r == ' ' || r == 'x'
	})
	dims := make([]uint64, 0, len(fields))
	for _, f := range fields {
		if f == "" {
			continue
		}
		d, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad dimension %q in dataspace %q", f, dataspace)
		}
		dims = append(dims, d)
	}
	if len(dims) == 0 {
		return nil, fmt.Errorf("no dimensions in dataspace %q", dataspace)
	}
	return dims, nil
}
