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

import (
	"sort"

	"github.com/krotik/graphcore/graph/util"
)

/*
Vertex is a graph vertex: a stable identity, a label, a multimap from
property key to one-or-more vertex-property instances, and adjacency
(§3). A Vertex exclusively owns its vertex-properties (§3 "Ownership").
*/
type Vertex struct {
	id         util.ID
	label      string
	properties map[string][]*VertexProperty
	adjacency  *Adjacency
	removed    bool
}

/*
DefaultVertexLabel is the label a vertex has unless one is supplied
explicitly (§3).
*/
const DefaultVertexLabel = "vertex"

/*
NewVertex constructs a Vertex. Only the graph container may call this, as
part of AddVertex's mutation-order step 2.
*/
func NewVertex(id util.ID, label string) *Vertex {
	if label == "" {
		label = DefaultVertexLabel
	}
	return &Vertex{
		id:         id,
		label:      label,
		properties: make(map[string][]*VertexProperty),
		adjacency:  NewAdjacency(),
	}
}

/*
ID returns the identifier of this vertex.
*/
func (v *Vertex) ID() util.ID { return v.id }

/*
Kind returns KindVertex.
*/
func (v *Vertex) Kind() Kind { return KindVertex }

/*
Removed reports whether this vertex has been removed from its graph.
*/
func (v *Vertex) Removed() bool { return v.removed }

/*
MarkRemoved tombstones this vertex. Only the graph container may call
this, as part of Remove's mutation-order step (reverse of AddVertex).
*/
func (v *Vertex) MarkRemoved() { v.removed = true }

/*
Label returns the vertex label.
*/
func (v *Vertex) Label() string { return v.label }

/*
Adjacency returns the adjacency store for this vertex (C3).
*/
func (v *Vertex) Adjacency() *Adjacency { return v.adjacency }

/*
Put adds a vertex-property under key with the given cardinality (C2
put()):

  - Single: removes every existing instance of key, then appends.
  - List: appends unconditionally (duplicates allowed).
  - Set: fails with ErrCardinalityViolation if any existing instance under
    key already has a coerced-equal value; otherwise appends.

newID supplies the identifier for the new vertex-property instance (the
vertex-property domain allocator lives in the graph container, §4.1).
*/
func (v *Vertex) Put(newID func() util.ID, coerce *util.Coercion, key string, value interface{}, card Cardinality) (*VertexProperty, error) {
	if key == "" {
		return nil, &util.GraphError{Type: util.ErrInvalidArgument, Detail: "property key must not be empty"}
	}

	existing := v.properties[key]

	switch card {
	case Single:
		for _, vp := range existing {
			vp.markRemoved()
		}
		vp := newVertexProperty(newID(), v, key, value, card)
		v.properties[key] = []*VertexProperty{vp}
		return vp, nil

	case List:
		vp := newVertexProperty(newID(), v, key, value, card)
		v.properties[key] = append(existing, vp)
		return vp, nil

	case Set:
		for _, vp := range existing {
			if coerce.Equal(vp.value, value) {
				return nil, &util.GraphError{Type: util.ErrCardinalityViolation,
					Detail: "a vertex-property with this value already exists under key " + key}
			}
		}
		vp := newVertexProperty(newID(), v, key, value, card)
		v.properties[key] = append(existing, vp)
		return vp, nil
	}

	return nil, &util.GraphError{Type: util.ErrInvalidArgument, Detail: "unknown cardinality"}
}

/*
Remove removes a single vertex-property instance from this vertex.
*/
func (v *Vertex) Remove(vp *VertexProperty) {
	list := v.properties[vp.key]
	for i, e := range list {
		if e == vp {
			v.properties[vp.key] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(v.properties[vp.key]) == 0 {
		delete(v.properties, vp.key)
	}
	vp.markRemoved()
}

/*
Values returns the vertex-property instances currently stored under key,
in insertion order.
*/
func (v *Vertex) Values(key string) []*VertexProperty {
	return v.properties[key]
}

/*
All returns every vertex-property instance on this vertex.
*/
func (v *Vertex) All() []*VertexProperty {
	var ret []*VertexProperty
	for _, key := range v.Keys() {
		ret = append(ret, v.properties[key]...)
	}
	return ret
}

/*
Keys returns the set of property keys currently present on this vertex,
sorted for stable iteration.
*/
func (v *Vertex) Keys() []string {
	keys := make([]string, 0, len(v.properties))
	for k := range v.properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
