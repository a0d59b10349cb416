/*
 * GraphCore
 *
 * Copyright 2026 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

/*
Package graph implements the top-level container (C4): vertex and edge
maps, element lifecycle, and the fixed six-step mutation order that keeps
the property store, adjacency store and every registered index coherent
(invariant 5). It is the single lock domain of the engine (§5) - callers
never see a lock directly, only WithLock/WithRLock and the operations
built on top of them.
*/
package graph

import (
	"sync"

	"github.com/krotik/graphcore/graph/data"
	"github.com/krotik/graphcore/graph/index"
	"github.com/krotik/graphcore/graph/util"
)

/*
Graph is the in-memory property-graph container. A process may host many
independent Graph instances (§9, "global mutable state" design note); none
of its state is package-level.
*/
type Graph struct {
	cfg *Config

	mutex sync.RWMutex

	vertexIDs  *util.Allocator
	edgeIDs    *util.Allocator
	propIDs    *util.Allocator
	coerce     *util.Coercion

	vertices map[util.ID]*data.Vertex
	edges    map[util.ID]*data.Edge

	vertexIndex *index.Manager
	edgeIndex   *index.Manager
}

/*
New creates an empty Graph configured by cfg. A nil cfg uses
DefaultConfig().
*/
func New(cfg *Config) *Graph {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	g := &Graph{
		cfg:       cfg,
		vertexIDs: util.NewAllocator(),
		edgeIDs:   util.NewAllocator(),
		propIDs:   util.NewAllocator(),
		coerce:    util.NewCoercion(),
		vertices:  make(map[util.ID]*data.Vertex),
		edges:     make(map[util.ID]*data.Edge),
	}
	g.vertexIndex = index.NewManager(vertexSource{g})
	g.edgeIndex = index.NewManager(edgeSource{g})
	return g
}

/*
Config returns the resolved configuration this Graph was built with.
*/
func (g *Graph) Config() *Config { return g.cfg }

/*
Coercion returns the value-coercion engine (C10) this Graph uses for
comparisons, shared by its indices and query evaluation.
*/
func (g *Graph) Coercion() *util.Coercion { return g.coerce }

/*
VertexIndex returns the index manager tracking vertex properties.
*/
func (g *Graph) VertexIndex() *index.Manager { return g.vertexIndex }

/*
EdgeIndex returns the index manager tracking edge properties.
*/
func (g *Graph) EdgeIndex() *index.Manager { return g.edgeIndex }

/*
Stats summarizes the container's current size and diagnostic counters, for
a host-platform logging/monitoring layer to export (metrics export itself
is an external collaborator, §1).
*/
type Stats struct {
	VertexCount     int
	EdgeCount       int
	CoerceAttempts  int64
	CoerceFailures  int64
}

/*
Stats returns a snapshot of the container's current statistics.
*/
func (g *Graph) Stats() Stats {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return Stats{
		VertexCount:    len(g.vertices),
		EdgeCount:      len(g.edges),
		CoerceAttempts: g.coerce.Attempts(),
		CoerceFailures: g.coerce.Failures(),
	}
}

/*
WithLock runs fn with the container's write lock held, letting a caller
batch several mutations into a single critical section. Transaction and
the snapshot reader do not go through it: Begin takes the write lock
directly.
*/
func (g *Graph) WithLock(fn func() error) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	return fn()
}

/*
WithRLock runs fn with the container's read lock held.
*/
func (g *Graph) WithRLock(fn func() error) error {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return fn()
}

/*
AddVertex creates a vertex with the given label (empty label defaults to
data.DefaultVertexLabel) and an optional caller-supplied id. Passing a
nil id allocates a fresh one; a non-nil id that already exists in the
vertex domain fails with DuplicateIdentifier.
*/
func (g *Graph) AddVertex(label string, id interface{}) (*data.Vertex, error) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	return g.addVertexLocked(label, id)
}

func (g *Graph) addVertexLocked(label string, id interface{}) (*data.Vertex, error) {
	vid, err := g.resolveID(g.vertexIDs, id)
	if err != nil {
		return nil, err
	}

	v := data.NewVertex(vid, label)
	g.vertices[vid] = v
	return v, nil
}

/*
AddEdge creates an edge labeled label from outID to inID. Both endpoints
must already exist as live vertices (invariant 1); a self-loop
(outID == inID) is permitted.
*/
func (g *Graph) AddEdge(outID util.ID, label string, inID util.ID, id interface{}) (*data.Edge, error) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	return g.addEdgeLocked(outID, label, inID, id)
}

func (g *Graph) addEdgeLocked(outID util.ID, label string, inID util.ID, id interface{}) (*data.Edge, error) {
	out, ok := g.vertices[outID]
	if !ok || out.Removed() {
		return nil, &util.GraphError{Type: util.ErrElementNotFound, Detail: "source vertex not found"}
	}
	in, ok := g.vertices[inID]
	if !ok || in.Removed() {
		return nil, &util.GraphError{Type: util.ErrElementNotFound, Detail: "target vertex not found"}
	}

	eid, err := g.resolveID(g.edgeIDs, id)
	if err != nil {
		return nil, err
	}

	e := data.NewEdge(eid, label, outID, inID)
	g.edges[eid] = e

	out.Adjacency().AddOut(label, eid)
	in.Adjacency().AddIn(label, eid)

	return e, nil
}

func (g *Graph) resolveID(alloc *util.Allocator, id interface{}) (util.ID, error) {
	if id == nil {
		return alloc.Next(), nil
	}
	return alloc.Coerce(id)
}

/*
Vertex returns the live vertex with the given id, or ElementNotFound.
*/
func (g *Graph) Vertex(id util.ID) (*data.Vertex, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return g.vertexLocked(id)
}

func (g *Graph) vertexLocked(id util.ID) (*data.Vertex, error) {
	v, ok := g.vertices[id]
	if !ok {
		return nil, &util.GraphError{Type: util.ErrElementNotFound, Detail: "no such vertex"}
	}
	return v, nil
}

/*
Edge returns the live edge with the given id, or ElementNotFound.
*/
func (g *Graph) Edge(id util.ID) (*data.Edge, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return g.edgeLocked(id)
}

func (g *Graph) edgeLocked(id util.ID) (*data.Edge, error) {
	e, ok := g.edges[id]
	if !ok {
		return nil, &util.GraphError{Type: util.ErrElementNotFound, Detail: "no such edge"}
	}
	return e, nil
}

/*
Vertices returns every live vertex in the container, in unspecified
order, or the subset matching the supplied ids if any are given.
*/
func (g *Graph) Vertices(ids ...util.ID) []*data.Vertex {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return g.verticesLocked(ids...)
}

/*
VerticesLocked is the lock-free twin of Vertices, exported for callers
that already hold the container's lock across several reads (the query
executor runs a planner probe and a scan/filter pass under one
WithRLock section; sync.RWMutex is not reentrant, so it cannot simply
call Vertices again).
*/
func (g *Graph) VerticesLocked(ids ...util.ID) []*data.Vertex {
	return g.verticesLocked(ids...)
}

func (g *Graph) verticesLocked(ids ...util.ID) []*data.Vertex {
	if len(ids) > 0 {
		ret := make([]*data.Vertex, 0, len(ids))
		for _, id := range ids {
			if v, ok := g.vertices[id]; ok {
				ret = append(ret, v)
			}
		}
		return ret
	}

	ret := make([]*data.Vertex, 0, len(g.vertices))
	for _, v := range g.vertices {
		ret = append(ret, v)
	}
	return ret
}

/*
Edges returns every live edge in the container, in unspecified order, or
the subset matching the supplied ids if any are given.
*/
func (g *Graph) Edges(ids ...util.ID) []*data.Edge {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return g.edgesLocked(ids...)
}

/*
EdgesLocked is the lock-free twin of Edges, for callers already holding
the container's lock (see VerticesLocked).
*/
func (g *Graph) EdgesLocked(ids ...util.ID) []*data.Edge {
	return g.edgesLocked(ids...)
}

func (g *Graph) edgesLocked(ids ...util.ID) []*data.Edge {
	if len(ids) > 0 {
		ret := make([]*data.Edge, 0, len(ids))
		for _, id := range ids {
			if e, ok := g.edges[id]; ok {
				ret = append(ret, e)
			}
		}
		return ret
	}

	ret := make([]*data.Edge, 0, len(g.edges))
	for _, e := range g.edges {
		ret = append(ret, e)
	}
	return ret
}

/*
RemoveVertex removes a vertex and, per invariant 2, every incident edge
and every vertex-property (with its meta-properties). The id is retired
and never reissued.
*/
func (g *Graph) RemoveVertex(id util.ID) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	return g.removeVertexLocked(id)
}

func (g *Graph) removeVertexLocked(id util.ID) error {
	v, ok := g.vertices[id]
	if !ok {
		return &util.GraphError{Type: util.ErrElementNotFound, Detail: "no such vertex"}
	}

	for _, de := range v.Adjacency().EdgesDirected(data.Both) {
		g.removeEdgeLocked(de.ID)
	}

	for _, vp := range v.All() {
		g.vertexIndex.Remove(vp.ID())
		g.propIDs.Retire(vp.ID())
	}

	delete(g.vertices, id)
	v.MarkRemoved()
	g.vertexIDs.Retire(id)
	return nil
}

/*
RemoveEdge removes an edge and detaches it from both endpoints'
adjacency.
*/
func (g *Graph) RemoveEdge(id util.ID) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	return g.removeEdgeLocked(id)
}

func (g *Graph) removeEdgeLocked(id util.ID) error {
	e, ok := g.edges[id]
	if !ok {
		return &util.GraphError{Type: util.ErrElementNotFound, Detail: "no such edge"}
	}

	g.edgeIndex.Remove(id)

	if out, ok := g.vertices[e.OutVertex()]; ok {
		out.Adjacency().RemoveOut(e.Label(), id)
	}
	if in, ok := g.vertices[e.InVertex()]; ok {
		in.Adjacency().RemoveIn(e.Label(), id)
	}

	delete(g.edges, id)
	e.MarkRemoved()
	g.edgeIDs.Retire(id)
	return nil
}

/*
PutVertexProperty attaches or replaces a value under key on vertex v,
using cardinality card exactly as given: the zero value of card is
data.Single, and the graph's DefaultCardinality is not applied here
(callers that want it pass cfg.DefaultCardinality). The vertex index
manager is resynced for the affected key as the final mutation step
(§4.4 step 6).
*/
func (g *Graph) PutVertexProperty(v *data.Vertex, key string, value interface{}, card data.Cardinality) (*data.VertexProperty, error) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	return g.putVertexPropertyLocked(v, key, value, card)
}

func (g *Graph) putVertexPropertyLocked(v *data.Vertex, key string, value interface{}, card data.Cardinality) (*data.VertexProperty, error) {
	if v.Removed() {
		return nil, &util.GraphError{Type: util.ErrElementRemoved, Detail: "vertex has been removed"}
	}
	if value == nil && !g.cfg.AllowNullPropertyValues {
		return nil, &util.GraphError{Type: util.ErrCardinalityViolation, Detail: "null property values are disallowed by configuration"}
	}

	vp, err := v.Put(g.propIDs.Next, g.coerce, key, value, card)
	if err != nil {
		return nil, err
	}

	g.vertexIndex.Resync(v.ID(), []string{key})
	return vp, nil
}

/*
RemoveVertexProperty detaches a single vertex-property instance from its
owning vertex and resyncs the affected index entries.
*/
func (g *Graph) RemoveVertexProperty(vp *data.VertexProperty) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	g.removeVertexPropertyLocked(vp)
}

func (g *Graph) removeVertexPropertyLocked(vp *data.VertexProperty) {
	v := vp.Vertex()
	key := vp.Key()
	v.Remove(vp)
	g.propIDs.Retire(vp.ID())
	g.vertexIndex.Resync(v.ID(), []string{key})
}

/*
PutEdgeProperty sets a single-valued property on edge e.
*/
func (g *Graph) PutEdgeProperty(e *data.Edge, key string, value interface{}) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	return g.putEdgePropertyLocked(e, key, value)
}

func (g *Graph) putEdgePropertyLocked(e *data.Edge, key string, value interface{}) error {
	if e.Removed() {
		return &util.GraphError{Type: util.ErrElementRemoved, Detail: "edge has been removed"}
	}
	if value == nil && !g.cfg.AllowNullPropertyValues {
		return &util.GraphError{Type: util.ErrCardinalityViolation, Detail: "null property values are disallowed by configuration"}
	}
	if key == "" {
		return &util.GraphError{Type: util.ErrInvalidArgument, Detail: "property key must not be empty"}
	}

	e.Properties().Put(key, value)
	g.edgeIndex.Resync(e.ID(), []string{key})
	return nil
}

/*
RemoveEdgeProperty removes key from edge e.
*/
func (g *Graph) RemoveEdgeProperty(e *data.Edge, key string) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	g.removeEdgePropertyLocked(e, key)
}

func (g *Graph) removeEdgePropertyLocked(e *data.Edge, key string) {
	e.Properties().Remove(key)
	g.edgeIndex.Resync(e.ID(), []string{key})
}

/*
Close releases in-memory resources held by the container. There is no
persistence beyond explicit snapshots (§3 "Lifecycle").
*/
func (g *Graph) Close() {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	g.vertices = make(map[util.ID]*data.Vertex)
	g.edges = make(map[util.ID]*data.Edge)
	g.vertexIndex = index.NewManager(vertexSource{g})
	g.edgeIndex = index.NewManager(edgeSource{g})
}

// vertexSource adapts the Graph's vertex-property data to the index
// package's Source interface (values under a key, for a given vertex
// id), without indices ever holding a *data.Vertex pointer.
type vertexSource struct{ g *Graph }

func (s vertexSource) Values(id util.ID, key string) []interface{} {
	v, ok := s.g.vertices[id]
	if !ok {
		return nil
	}
	vps := v.Values(key)
	ret := make([]interface{}, len(vps))
	for i, vp := range vps {
		ret[i] = vp.Value()
	}
	return ret
}

func (s vertexSource) IDs() []util.ID {
	ids := make([]util.ID, 0, len(s.g.vertices))
	for id := range s.g.vertices {
		ids = append(ids, id)
	}
	return ids
}

// edgeSource adapts single-valued edge properties to the index
// package's Source interface.
type edgeSource struct{ g *Graph }

func (s edgeSource) Values(id util.ID, key string) []interface{} {
	e, ok := s.g.edges[id]
	if !ok {
		return nil
	}
	if v, ok := e.Properties().Get(key); ok {
		return []interface{}{v}
	}
	return nil
}

func (s edgeSource) IDs() []util.ID {
	ids := make([]util.ID, 0, len(s.g.edges))
	for id := range s.g.edges {
		ids = append(ids, id)
	}
	return ids
}
