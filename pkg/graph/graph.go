// Package graph implements the cross-entity knowledge graph connecting
// bills, legislators, committees, programs, Tribes, and policy barriers —
// a naturally cyclic structure (spec Design Notes §9). Nodes live in an
// array-backed arena keyed by typed id; edges are (from, kind, to,
// metadata) records in a separate sequence, so traversal is filter-and-join
// over slices rather than pointer-chasing, avoiding ownership ambiguity in
// cyclic references.
//
// Adapted from the teacher's pkg/store.TripleStore: same RWMutex-guarded,
// multi-index, idempotent-insert shape, restructured from an RDF
// subject/predicate/object triple store into a typed node arena plus
// edge-kind indexes.
package graph

import (
	"fmt"
	"sync"
)

// NodeKind identifies the entity type a node represents.
type NodeKind string

const (
	NodeTribe      NodeKind = "tribe"
	NodeProgram    NodeKind = "program"
	NodeBill       NodeKind = "bill"
	NodeLegislator NodeKind = "legislator"
	NodeCommittee  NodeKind = "committee"
	NodeBarrier    NodeKind = "barrier"
)

// NodeID is a typed node reference: kind plus the entity's natural key
// (tribe_id, program_id, bill_id, bioguide_id, committee code, barrier id).
type NodeID struct {
	Kind NodeKind
	Key  string
}

func (id NodeID) String() string {
	return fmt.Sprintf("%s:%s", id.Kind, id.Key)
}

// EdgeKind identifies a relationship type between two nodes.
type EdgeKind string

const (
	EdgeDelegates      EdgeKind = "delegates"       // legislator -> tribe
	EdgeSponsors       EdgeKind = "sponsors"        // legislator -> bill
	EdgeAffects        EdgeKind = "affects"         // bill -> program
	EdgeServesOnComm   EdgeKind = "serves_on"       // legislator -> committee
	EdgeEligibleFor    EdgeKind = "eligible_for"     // tribe -> program
	EdgeRaises         EdgeKind = "raises"          // tribe -> barrier
	EdgeAddressedBy    EdgeKind = "addressed_by"    // barrier -> program
)

// Edge is one (from, kind, to) relationship record, with optional
// metadata (e.g. a relevance score, an effective date).
type Edge struct {
	From     NodeID
	Kind     EdgeKind
	To       NodeID
	Metadata map[string]string
}

// Graph is an arena of nodes (by NodeID, value opaque to this package —
// callers store whatever payload they like) plus an edge sequence indexed
// three ways for O(1)-amortized traversal in either direction.
type Graph struct {
	mu sync.RWMutex

	nodes map[NodeID]any
	edges []Edge

	// byFrom[n] lists indexes into edges whose From == n.
	byFrom map[NodeID][]int
	// byTo[n] lists indexes into edges whose To == n.
	byTo map[NodeID][]int
	// byKind[k] lists indexes into edges whose Kind == k.
	byKind map[EdgeKind][]int

	seen map[string]bool // dedupe key: from|kind|to
}

// New constructs an empty Graph.
func New() *Graph {
	return &Graph{
		nodes:  make(map[NodeID]any),
		byFrom: make(map[NodeID][]int),
		byTo:   make(map[NodeID][]int),
		byKind: make(map[EdgeKind][]int),
		seen:   make(map[string]bool),
	}
}

// PutNode inserts or replaces a node's payload in the arena.
func (g *Graph) PutNode(id NodeID, payload any) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nodes[id] = payload
}

// Node retrieves a node's payload, and whether it exists.
func (g *Graph) Node(id NodeID) (any, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	v, ok := g.nodes[id]
	return v, ok
}

// AddEdge appends an edge record, indexing it by from/to/kind. Idempotent:
// re-adding an identical (from, kind, to) edge updates its metadata rather
// than creating a duplicate record.
func (g *Graph) AddEdge(e Edge) {
	g.mu.Lock()
	defer g.mu.Unlock()

	key := e.From.String() + "|" + string(e.Kind) + "|" + e.To.String()
	if g.seen[key] {
		for i, existing := range g.edges {
			if existing.From == e.From && existing.Kind == e.Kind && existing.To == e.To {
				g.edges[i].Metadata = e.Metadata
				return
			}
		}
	}
	g.seen[key] = true

	idx := len(g.edges)
	g.edges = append(g.edges, e)
	g.byFrom[e.From] = append(g.byFrom[e.From], idx)
	g.byTo[e.To] = append(g.byTo[e.To], idx)
	g.byKind[e.Kind] = append(g.byKind[e.Kind], idx)
}

// From returns every edge whose From matches id, optionally filtered to a
// single EdgeKind (pass "" for all kinds).
func (g *Graph) From(id NodeID, kind EdgeKind) []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.filterIndexes(g.byFrom[id], func(e Edge) bool {
		return kind == "" || e.Kind == kind
	})
}

// To returns every edge whose To matches id, optionally filtered to a
// single EdgeKind.
func (g *Graph) To(id NodeID, kind EdgeKind) []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.filterIndexes(g.byTo[id], func(e Edge) bool {
		return kind == "" || e.Kind == kind
	})
}

// ByKind returns every edge of the given kind.
func (g *Graph) ByKind(kind EdgeKind) []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	idxs := g.byKind[kind]
	out := make([]Edge, len(idxs))
	for i, idx := range idxs {
		out[i] = g.edges[idx]
	}
	return out
}

func (g *Graph) filterIndexes(idxs []int, keep func(Edge) bool) []Edge {
	out := make([]Edge, 0, len(idxs))
	for _, idx := range idxs {
		e := g.edges[idx]
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// NodeCount returns the number of nodes in the arena.
func (g *Graph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

// EdgeCount returns the number of distinct edges.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.edges)
}
