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
VertexProperty is a keyed value attached to a Vertex. It carries its own
identity and its own single-valued meta-property map (§3). A vertex owns
its vertex-properties exclusively; a vertex-property owns its own
meta-property map exclusively (§3 "Ownership").
*/
type VertexProperty struct {
	id          util.ID
	vertex      *Vertex
	key         string
	value       interface{}
	cardinality Cardinality
	meta        *PropertyMap
	removed     bool
}

/*
newVertexProperty constructs a VertexProperty. It is called only by
Vertex.Put, which the graph container (C4) uses to store a property.
*/
func newVertexProperty(id util.ID, vertex *Vertex, key string, value interface{}, card Cardinality) *VertexProperty {
	return &VertexProperty{
		id:          id,
		vertex:      vertex,
		key:         key,
		value:       value,
		cardinality: card,
		meta:        NewPropertyMap(),
	}
}

/*
ID returns the identifier of this vertex-property.
*/
func (vp *VertexProperty) ID() util.ID { return vp.id }

/*
Kind returns KindVertexProperty.
*/
func (vp *VertexProperty) Kind() Kind { return KindVertexProperty }

/*
Removed reports whether this vertex-property has been removed from its
vertex.
*/
func (vp *VertexProperty) Removed() bool { return vp.removed }

/*
Vertex returns the vertex that owns this vertex-property.
*/
func (vp *VertexProperty) Vertex() *Vertex { return vp.vertex }

/*
Key returns the property key.
*/
func (vp *VertexProperty) Key() string { return vp.key }

/*
Value returns the current value of this vertex-property.
*/
func (vp *VertexProperty) Value() interface{} { return vp.value }

/*
Cardinality returns the cardinality this vertex-property was declared
with.
*/
func (vp *VertexProperty) Cardinality() Cardinality { return vp.cardinality }

/*
Meta returns the meta-property map for this vertex-property instance.
Meta-property operations mirror single-valued property semantics on the
hosting instance (§4.2).
*/
func (vp *VertexProperty) Meta() *PropertyMap { return vp.meta }

func (vp *VertexProperty) setValue(v interface{}) { vp.value = v }

func (vp *VertexProperty) markRemoved() { vp.removed = true }
