package execution

import "nodeBoard/internal/models"

// graph indexes a whiteboard's edge list. Adjacency keeps edge order so the
// walk is deterministic.
type graph struct {
	nodes    models.Nodes
	index    map[string]int
	incoming map[string][]string
	outgoing map[string][]string
}

func newGraph(nodes models.Nodes, edges models.Edges) *graph {
	g := &graph{
		nodes:    nodes,
		index:    make(map[string]int, len(nodes)),
		incoming: make(map[string][]string),
		outgoing: make(map[string][]string),
	}
	for i, node := range nodes {
		g.index[node.ID] = i
	}
	for _, edge := range edges {
		if _, ok := g.index[edge.Source]; !ok {
			continue
		}
		if _, ok := g.index[edge.Target]; !ok {
			continue
		}
		g.outgoing[edge.Source] = append(g.outgoing[edge.Source], edge.Target)
		g.incoming[edge.Target] = append(g.incoming[edge.Target], edge.Source)
	}
	return g
}

func (g *graph) node(id string) *models.Node {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	return &g.nodes[i]
}

func (g *graph) inputs(id string) Inputs {
	var in Inputs
	for _, source := range g.incoming[id] {
		in.add(g.node(source))
	}
	return in
}
