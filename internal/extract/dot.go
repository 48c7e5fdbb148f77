package extract

import (
	"io"

	"github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"
)

// InternalGraph builds a directed graph over the file's defined elements
// with internal call edges only.
func (m *FileModel) InternalGraph() graph.Graph[string, string] {
	g := graph.New(graph.StringHash, graph.Directed())
	m.addElementVertices(g)
	for _, e := range m.Graph.Edges() {
		if e.Kind == EdgeInternal {
			_ = g.AddEdge(e.Caller, e.Callee)
		}
	}
	return g
}

// EntireGraph builds a directed graph over the defined elements plus every
// external callee, with all call edges.
func (m *FileModel) EntireGraph() graph.Graph[string, string] {
	g := graph.New(graph.StringHash, graph.Directed())
	m.addElementVertices(g)
	for _, e := range m.Graph.Edges() {
		if e.Kind == EdgeExternal {
			_ = g.AddVertex(e.Callee)
		}
		_ = g.AddEdge(e.Caller, e.Callee)
	}
	return g
}

// WriteDOT serializes a graph in Graphviz DOT form. Rendering DOT to an
// image is left to external tooling.
func WriteDOT(g graph.Graph[string, string], w io.Writer) error {
	return draw.DOT(g, w)
}

func (m *FileModel) addElementVertices(g graph.Graph[string, string]) {
	for i := range m.Classes {
		_ = g.AddVertex(m.Classes[i].QualifiedName)
	}
	for i := range m.Functions {
		_ = g.AddVertex(m.Functions[i].QualifiedName)
	}
}
