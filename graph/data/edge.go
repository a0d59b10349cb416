/*
 * GraphCore
 *
 * Copyright 2026 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package data

import "github.com/krotik/graphcore/graph/util"

/*
Edge is a directed graph edge: a stable identity, a label, a source and
target vertex, and a single-valued property map. A self-loop (Out == In)
is permitted (§3).
*/
type Edge struct {
	id         util.ID
	label      string
	outVertex  util.ID
	inVertex   util.ID
	properties *PropertyMap
	removed    bool
}

/*
NewEdge constructs an Edge. Only the graph container may call this, as
part of AddEdge's mutation-order step 2.
*/
func NewEdge(id util.ID, label string, out, in util.ID) *Edge {
	return &Edge{
		id:         id,
		label:      label,
		outVertex:  out,
		inVertex:   in,
		properties: NewPropertyMap(),
	}
}

/*
ID returns the identifier of this edge.
*/
func (e *Edge) ID() util.ID { return e.id }

/*
Kind returns KindEdge.
*/
func (e *Edge) Kind() Kind { return KindEdge }

/*
Removed reports whether this edge has been removed from its graph.
*/
func (e *Edge) Removed() bool { return e.removed }

/*
MarkRemoved tombstones this edge.
*/
func (e *Edge) MarkRemoved() { e.removed = true }

/*
Label returns the edge label.
*/
func (e *Edge) Label() string { return e.label }

/*
OutVertex returns the identifier of the source vertex.
*/
func (e *Edge) OutVertex() util.ID { return e.outVertex }

/*
InVertex returns the identifier of the target vertex.
*/
func (e *Edge) InVertex() util.ID { return e.inVertex }

/*
IsSelfLoop reports whether this edge's source and target are the same
vertex.
*/
func (e *Edge) IsSelfLoop() bool { return e.outVertex == e.inVertex }

/*
OtherEnd returns the identifier of the vertex on the opposite end from
vertex. It returns (0, false) if vertex is neither end of this edge.
*/
func (e *Edge) OtherEnd(vertex util.ID) (util.ID, bool) {
	switch vertex {
	case e.outVertex:
		return e.inVertex, true
	case e.inVertex:
		return e.outVertex, true
	}
	return 0, false
}

/*
Properties returns the single-valued property map of this edge.
*/
func (e *Edge) Properties() *PropertyMap { return e.properties }
