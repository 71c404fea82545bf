package models

import "time"

// Node kinds used in TreeNode.Kind.
const (
	NodeKindGroup   = "group"
	NodeKindDataset = "dataset"
)

// FileInfo describes a single HDF5 file on disk. It is computed per
// request and never cached; Error is set instead of failing the call.
type FileInfo struct {
	Name          string    `json:"name"`
	Path          string    `json:"path"`
	SizeMB        float64   `json:"size_mb"`
	Modified      time.Time `json:"modified"`
	Accessible    bool      `json:"accessible"`
	GroupsCount   int       `json:"groups_count"`
	DatasetsCount int       `json:"datasets_count"`
	Error         string    `json:"error,omitempty"`
}

// TreeNode is one entry in the structural tree of an HDF5 file.
// Path is the absolute slash-delimited key; the root node's path is "/".
// Datasets never have children. Error carries a per-node traversal
// failure without aborting the surrounding walk.
type TreeNode struct {
	Name       string            `json:"name"`
	Path       string            `json:"path"`
	Kind       string            `json:"node_type"`
	Children   []TreeNode        `json:"children"`
	Attributes map[string]string `json:"attributes"`
	Shape      []uint64          `json:"shape,omitempty"`
	Dtype      string            `json:"dtype,omitempty"`
	Error      string            `json:"error,omitempty"`
}

// FileStructure is the result of a full structural walk.
// TotalGroups and TotalDatasets count non-root nodes reachable from Root.
type FileStructure struct {
	FilePath      string   `json:"file_path"`
	Root          TreeNode `json:"root"`
	TotalGroups   int      `json:"total_groups"`
	TotalDatasets int      `json:"total_datasets"`
	Error         string   `json:"error,omitempty"`
}

// HecRasData holds the heuristic extraction result for a HEC-RAS file.
// Dataset paths that match no known pattern are absent here but remain
// visible through the structural walk.
type HecRasData struct {
	File              string               `json:"file"`
	GeometryData      map[string][]float64 `json:"geometry_data"`
	ResultsData       map[string][]float64 `json:"results_data"`
	Metadata          map[string]string    `json:"metadata"`
	ExtractionSummary map[string]int       `json:"extraction_summary"`
}

// FileRequest is the request body shared by the single-path endpoints.
type FileRequest struct {
	FilePath string `json:"file_path" binding:"required"`
}

// StructureRequest asks for the structural tree of a file.
// MaxDepth < 0 means unbounded; 0 returns the bare root node.
type StructureRequest struct {
	FilePath          string `json:"file_path" binding:"required"`
	MaxDepth          *int   `json:"max_depth,omitempty"`
	IncludeAttributes bool   `json:"include_attributes"`
}

// SampleRequest asks for the first MaxElements values of one dataset.
type SampleRequest struct {
	FilePath    string `json:"file_path" binding:"required"`
	DatasetPath string `json:"dataset_path" binding:"required"`
	MaxElements int    `json:"max_elements"`
}

// FindRequest asks for a recursive scan of a folder for HDF5 files.
type FindRequest struct {
	FolderPath string `json:"folder_path" binding:"required"`
}

// DatasetsResponse wraps the flattened dataset listing.
type DatasetsResponse struct {
	FilePath string   `json:"file_path"`
	Datasets []string `json:"datasets"`
	Error    string   `json:"error,omitempty"`
}

// SampleResponse wraps a bounded dataset sample.
type SampleResponse struct {
	FilePath    string    `json:"file_path"`
	DatasetPath string    `json:"dataset_path"`
	Values      []float64 `json:"values"`
	Error       string    `json:"error,omitempty"`
}

// ErrorResponse is the tagged error record returned when an operation
// fails before it can produce a result body of its own.
type ErrorResponse struct {
	Error string `json:"error"`
}
