package validators

import (
	"nodeBoard/internal/enums"
	"nodeBoard/internal/errs"
	"nodeBoard/internal/models"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

const MaxWhiteboardTitleLength = 200

func ValidateWhiteboardTitle(title string) []error {
	if utf8.RuneCountInString(title) > MaxWhiteboardTitleLength {
		return []error{errs.ErrWhiteboardTitleTooLong}
	}
	return nil
}

// ValidateGraph checks node and edge integrity and assigns ids to edges
// that arrive without one. Cycles are allowed; execution tracks visits.
func ValidateGraph(nodes models.Nodes, edges models.Edges) []error {
	var errors []error
	ids := make(map[string]bool, len(nodes))

	for _, node := range nodes {
		if strings.TrimSpace(node.ID) == "" {
			errors = append(errors, errs.ErrEmptyNodeId)
			continue
		}
		if ids[node.ID] {
			errors = append(errors, errs.ErrDuplicateNodeId)
			continue
		}
		ids[node.ID] = true
		if !slices.Contains(enums.NodeTypes, node.Type) {
			errors = append(errors, errs.ErrUnknownNodeType)
		}
	}

	pairs := make(map[[2]string]bool, len(edges))
	for i := range edges {
		edge := &edges[i]
		if !ids[edge.Source] || !ids[edge.Target] {
			errors = append(errors, errs.ErrEdgeUnknownNode)
			continue
		}
		if edge.Source == edge.Target {
			errors = append(errors, errs.ErrSelfLoopEdge)
			continue
		}
		pair := [2]string{edge.Source, edge.Target}
		if pairs[pair] {
			errors = append(errors, errs.ErrDuplicateEdge)
			continue
		}
		pairs[pair] = true
		if edge.ID == "" {
			edge.ID = uuid.NewString()
		}
	}
	return errors
}
