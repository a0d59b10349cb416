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
Package data holds the property-graph data model: vertices, edges,
vertex-properties and their property maps, plus the per-vertex adjacency
store. It implements C2 (property store) and C3 (adjacency store) and the
Vertex/Edge/VertexProperty entity shapes of the data model.

Dynamic dispatch over element kinds is replaced by a closed Kind enum and a
single Element interface every concrete type satisfies, per the REDESIGN
FLAGS note on tagged variants.
*/
package data

import "github.com/krotik/graphcore/graph/util"

/*
Kind identifies which concrete entity an Element is.
*/
type Kind int

const (
	KindVertex Kind = iota
	KindEdge
	KindVertexProperty
)

/*
String returns a human-readable name for a Kind.
*/
func (k Kind) String() string {
	switch k {
	case KindVertex:
		return "vertex"
	case KindEdge:
		return "edge"
	case KindVertexProperty:
		return "vertexProperty"
	}
	return "unknown"
}

/*
Element is satisfied by Vertex, Edge and VertexProperty. It exposes
identity and removal state; once Removed() is true every further
operation on the element other than ID/Kind/Removed and equality must
fail with ErrElementRemoved (invariant, §4.4).
*/
type Element interface {
	ID() util.ID
	Kind() Kind
	Removed() bool
}

/*
Cardinality governs how many value instances a vertex-property key may
carry on a single vertex (§3, C2).
*/
type Cardinality int

const (
	Single Cardinality = iota
	List
	Set
)

/*
String returns the canonical lower-case name of a Cardinality.
*/
func (c Cardinality) String() string {
	switch c {
	case Single:
		return "single"
	case List:
		return "list"
	case Set:
		return "set"
	}
	return "unknown"
}

/*
ParseCardinality parses the canonical lower-case name of a Cardinality.
*/
func ParseCardinality(s string) (Cardinality, bool) {
	switch s {
	case "single":
		return Single, true
	case "list":
		return List, true
	case "set":
		return Set, true
	}
	return 0, false
}

/*
Direction selects which incident edges/neighbors of a vertex to consider
(§6).
*/
type Direction int

const (
	Out Direction = iota
	In
	Both
)

/*
String returns the canonical lower-case name of a Direction.
*/
func (d Direction) String() string {
	switch d {
	case Out:
		return "out"
	case In:
		return "in"
	case Both:
		return "both"
	}
	return "unknown"
}
