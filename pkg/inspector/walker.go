package inspector

import (
	"context"
	"fmt"

	"github.com/scigolib/hdf5"
	"go.opentelemetry.io/otel/attribute"

	"github.com/eflow-hydraulics/hdf-inspector/internal/models"
)

// StructureOptions bounds a structural walk.
type StructureOptions struct {
	// MaxDepth limits recursion below the root group: 0 returns the bare
	// root node, negative values mean unbounded.
	MaxDepth int
	// IncludeAttributes copies entry attributes into each node as
	// string-keyed, string-valued pairs.
	IncludeAttributes bool
}

// Structure opens the file and builds its full structural tree. The walk
// is best-effort: an entry whose metadata cannot be read is annotated
// with a per-node error instead of aborting the traversal. Children keep
// the file's own entry order; they are never re-sorted.
func (ins *Inspector) Structure(ctx context.Context, filePath string, opts StructureOptions) (*models.FileStructure, error) {
	_, span := ins.tracer.Start(ctx, "structure")
	defer span.End()
	span.SetAttributes(attribute.String("file.path", filePath))
	ins.touch()

	f, err := hdf5.Open(filePath)
	if err != nil {
		span.RecordError(err)
		return nil, &OpenError{Path: filePath, Err: err}
	}
	defer f.Close()

	root := ins.buildNode(f.Root(), "/", "/", 0, opts)

	st := &models.FileStructure{
		FilePath: filePath,
		Root:     *root,
	}
	countNodes(root.Children, &st.TotalGroups, &st.TotalDatasets)

	ins.logger.Debugf("walked %s: %d groups, %d datasets", filePath, st.TotalGroups, st.TotalDatasets)
	return st, nil
}

// buildNode converts one hdf5 object into a TreeNode, recursing into
// group children until opts.MaxDepth is exhausted.
func (ins *Inspector) buildNode(obj hdf5.Object, name, path string, depth int, opts StructureOptions) *models.TreeNode {
	node := &models.TreeNode{
		Name:       name,
		Path:       path,
		Children:   []models.TreeNode{},
		Attributes: map[string]string{},
	}

	switch v := obj.(type) {
	case *hdf5.Group:
		node.Kind = models.NodeKindGroup

		if opts.IncludeAttributes {
			attrs, err := v.Attributes()
			if err != nil {
				node.Error = fmt.Sprintf("attributes unreadable: %v", err)
			} else {
				for _, attr := range attrs {
					node.Attributes[attr.Name] = stringifyAttrValue(attr.ReadValue())
				}
			}
		}

		if opts.MaxDepth >= 0 && depth >= opts.MaxDepth {
			return node
		}
		for _, child := range v.Children() {
			childNode := ins.buildNode(child, child.Name(), joinPath(path, child.Name()), depth+1, opts)
			node.Children = append(node.Children, *childNode)
		}

	case *hdf5.Dataset:
		node.Kind = models.NodeKindDataset

		meta, err := describeDataset(v)
		if err != nil {
			node.Error = fmt.Sprintf("metadata unreadable: %v", err)
		} else {
			node.Shape = meta.Shape
			node.Dtype = meta.Dtype
		}

		if opts.IncludeAttributes {
			attrs, err := v.Attributes()
			if err != nil {
				if node.Error == "" {
					node.Error = fmt.Sprintf("attributes unreadable: %v", err)
				}
			} else {
				for _, attr := range attrs {
					node.Attributes[attr.Name] = stringifyAttrValue(attr.ReadValue())
				}
			}
		}

	default:
		node.Error = fmt.Sprintf("unsupported entry type %T", obj)
	}

	return node
}

// stringifyAttrValue renders an attribute value as a string. Non-string
// values go through %v, which is lossy but consistent.
func stringifyAttrValue(val interface{}, err error) string {
	if err != nil {
		return fmt.Sprintf("<unreadable: %v>", err)
	}
	if s, ok := val.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", val)
}

func joinPath(parent, name string) string {
	if parent == "/" {
		return "/" + name
	}
	return parent + "/" + name
}

func countNodes(nodes []models.TreeNode, groups, datasets *int) {
	for i := range nodes {
		switch nodes[i].Kind {
		case models.NodeKindGroup:
			*groups++
		case models.NodeKindDataset:
			*datasets++
		}
		countNodes(nodes[i].Children, groups, datasets)
	}
}
