package extract

import (
	"fmt"
	"sort"
	"strings"
)

// EdgeKind classifies a call edge. Internal edges point at a qualified name
// defined in the same file; external edges point at imported or unresolved
// names, kept in their literal textual form.
type EdgeKind string

const (
	EdgeInternal EdgeKind = "internal"
	EdgeExternal EdgeKind = "external"
)

// CallEdge is one directed call-reference edge.
type CallEdge struct {
	Caller string   `json:"caller" yaml:"caller"`
	Callee string   `json:"callee" yaml:"callee"`
	Kind   EdgeKind `json:"kind" yaml:"kind"`
}

// CallGraph is the set of call edges for one file. The (caller, callee,
// kind) triple is unique; insertion order is preserved for deterministic
// serialization. Self-edges (recursion) are permitted.
type CallGraph struct {
	edges []CallEdge
	seen  map[CallEdge]struct{}
}

// NewCallGraph returns an empty call graph.
func NewCallGraph() *CallGraph {
	return &CallGraph{seen: make(map[CallEdge]struct{})}
}

// Add records an edge, dropping exact duplicates.
func (g *CallGraph) Add(caller, callee string, kind EdgeKind) {
	edge := CallEdge{Caller: caller, Callee: callee, Kind: kind}
	if _, ok := g.seen[edge]; ok {
		return
	}
	g.seen[edge] = struct{}{}
	g.edges = append(g.edges, edge)
}

// Edges returns all edges in insertion order.
func (g *CallGraph) Edges() []CallEdge {
	return g.edges
}

// Len returns the number of edges.
func (g *CallGraph) Len() int {
	return len(g.edges)
}

// Callees returns the sorted, de-duplicated callee names for a caller,
// restricted to the given kind.
func (g *CallGraph) Callees(caller string, kind EdgeKind) []string {
	var names []string
	for _, e := range g.edges {
		if e.Caller == caller && e.Kind == kind {
			names = append(names, e.Callee)
		}
	}
	return sortedUnique(names)
}

// AllCallees returns the sorted, de-duplicated callee names for a caller
// across both edge kinds.
func (g *CallGraph) AllCallees(caller string) []string {
	var names []string
	for _, e := range g.edges {
		if e.Caller == caller {
			names = append(names, e.Callee)
		}
	}
	return sortedUnique(names)
}

// Summary renders the graph as a human-readable per-caller listing, used in
// detail documents and as model-prompt context.
func (g *CallGraph) Summary() string {
	if len(g.edges) == 0 {
		return "no calls"
	}
	var callers []string
	byCaller := make(map[string]*CallGraph)
	for _, e := range g.edges {
		sub, ok := byCaller[e.Caller]
		if !ok {
			sub = NewCallGraph()
			byCaller[e.Caller] = sub
			callers = append(callers, e.Caller)
		}
		sub.Add(e.Caller, e.Callee, e.Kind)
	}

	var b strings.Builder
	for i, caller := range callers {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s:", caller)
		if internal := byCaller[caller].Callees(caller, EdgeInternal); len(internal) > 0 {
			fmt.Fprintf(&b, " internal: %s;", strings.Join(internal, ", "))
		}
		if external := byCaller[caller].Callees(caller, EdgeExternal); len(external) > 0 {
			fmt.Fprintf(&b, " external: %s;", strings.Join(external, ", "))
		}
	}
	return b.String()
}

// sortedUnique sorts and de-duplicates a slice of names.
func sortedUnique(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
