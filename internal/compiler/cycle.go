package compiler

import (
	"fmt"
	"strings"

	"github.com/roach88/lexc/internal/ir"
)

// CycleWarning represents a reference cycle among unresolved entries.
//
// The resolver drops entries caught in a cycle exactly like entries with a
// missing component. This analysis is advisory: it tells the author which
// drops are cycles, without changing what gets dropped.
type CycleWarning struct {
	Path    []string `json:"path"`    // Cycle path: ["day*", "light*", "day*"]
	Message string   `json:"message"` // Human-readable description
	Level   string   `json:"level"`   // always "info"
}

// Diagnostic converts the warning into an advisory diagnostic.
func (w CycleWarning) Diagnostic() ir.Diagnostic {
	return ir.Diagnostic{
		Code:     CodeReferenceCycle,
		Severity: ir.SeverityInfo,
		Key:      w.Path[0],
		Refs:     w.Path,
		Message:  w.Message,
	}
}

// AnalyzeCycles finds reference cycles among unresolved entries.
//
// The algorithm:
//  1. Build entry → referenced entry edges, following the same key, key*,
//     key# lookup the resolver uses, restricted to unresolved entries
//  2. Use Tarjan's algorithm to find strongly connected components
//  3. Report each SCC with size > 1 or a self-loop
//
// Nodes are visited in insertion order so the output is deterministic.
// No unresolved entries, or none in a cycle, returns an empty list.
func AnalyzeCycles(table *ir.Table, unresolved []*ir.Entry) []CycleWarning {
	if len(unresolved) == 0 {
		return []CycleWarning{}
	}

	graph := buildReferenceGraph(table, unresolved)
	sccs := tarjanSCC(graph)

	warnings := []CycleWarning{}
	for _, scc := range sccs {
		if len(scc) > 1 || (len(scc) == 1 && hasSelfLoop(scc[0], graph)) {
			warnings = append(warnings, cycleSCCToWarning(scc, graph))
		}
	}
	return warnings
}

// referenceGraph maps entry key → keys of the unresolved entries it
// references. order keeps the insertion order of the nodes.
type referenceGraph struct {
	order []string
	edges map[string][]string
}

// buildReferenceGraph constructs the reference graph of pending entries.
func buildReferenceGraph(table *ir.Table, unresolved []*ir.Entry) referenceGraph {
	pending := make(map[string]bool, len(unresolved))
	for _, e := range unresolved {
		pending[e.Key] = true
	}

	g := referenceGraph{edges: make(map[string][]string, len(unresolved))}
	for _, e := range unresolved {
		g.order = append(g.order, e.Key)
		g.edges[e.Key] = []string{}
		for _, r := range e.Refs {
			if r.Literal {
				continue
			}
			if target := lookupRef(table, r.Key); target != nil && pending[target.Key] {
				g.edges[e.Key] = append(g.edges[e.Key], target.Key)
			}
		}
	}
	return g
}

// hasSelfLoop checks if a node has an edge to itself.
func hasSelfLoop(node string, g referenceGraph) bool {
	for _, neighbor := range g.edges[node] {
		if neighbor == node {
			return true
		}
	}
	return false
}

// tarjanSCC finds strongly connected components using Tarjan's algorithm.
//
// Returns a list of SCCs in completion order. Each SCC lists its members
// starting from the node that closed it.
func tarjanSCC(g referenceGraph) [][]string {
	var (
		index   = 0
		stack   []string
		indices = make(map[string]int)
		lowlink = make(map[string]int)
		onStack = make(map[string]bool)
		sccs    [][]string
	)

	var strongConnect func(string)
	strongConnect = func(v string) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range g.edges[v] {
			if _, visited := indices[w]; !visited {
				strongConnect(w)
				lowlink[v] = min(lowlink[v], lowlink[w])
			} else if onStack[w] {
				lowlink[v] = min(lowlink[v], indices[w])
			}
		}

		// v is a root node: pop the stack and emit the SCC
		if lowlink[v] == indices[v] {
			var scc []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			// start the path at the root
			for i, j := 0, len(scc)-1; i < j; i, j = i+1, j-1 {
				scc[i], scc[j] = scc[j], scc[i]
			}
			sccs = append(sccs, scc)
		}
	}

	for _, node := range g.order {
		if _, visited := indices[node]; !visited {
			strongConnect(node)
		}
	}

	return sccs
}

// cycleSCCToWarning converts an SCC to a CycleWarning.
func cycleSCCToWarning(scc []string, g referenceGraph) CycleWarning {
	if len(scc) == 1 {
		key := scc[0]
		return CycleWarning{
			Path:    []string{key, key},
			Message: fmt.Sprintf("entry refers to itself: %s → %s", key, key),
			Level:   "info",
		}
	}

	path := reconstructCyclePath(scc, g)
	return CycleWarning{
		Path:    path,
		Message: fmt.Sprintf("reference cycle: %s", strings.Join(path, " → ")),
		Level:   "info",
	}
}

// reconstructCyclePath builds a cycle path from an SCC.
//
// Strategy: start at the first node, follow edges to other SCC members,
// continue until we return to the start node.
func reconstructCyclePath(scc []string, g referenceGraph) []string {
	if len(scc) == 0 {
		return []string{}
	}

	sccSet := make(map[string]bool, len(scc))
	for _, node := range scc {
		sccSet[node] = true
	}

	start := scc[0]
	current := start
	path := []string{current}
	visited := make(map[string]bool)

	for {
		visited[current] = true

		var next string
		for _, neighbor := range g.edges[current] {
			if sccSet[neighbor] && (!visited[neighbor] || neighbor == start) {
				next = neighbor
				break
			}
		}

		if next == "" {
			break
		}

		path = append(path, next)
		if next == start {
			break
		}
		current = next
	}

	return path
}
