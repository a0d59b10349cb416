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
Adjacency is the per-vertex incident-edge store (C3). It keeps two
label-partitioned multisets of edge identifiers: one for edges where this
vertex is the source (outgoing) and one for edges where it is the target
(incoming). A self-loop edge is added to both, which is what makes a
self-loop vertex appear twice under Direction Both (§6, §8).

Adjacency holds only weak references (edge identifiers resolved through
the owning Graph, never Edge pointers) so it never extends an edge's
lifetime on its own (§3 "Ownership").
*/
type Adjacency struct {
	out map[string][]util.ID // label -> outgoing edge ids
	in  map[string][]util.ID // label -> incoming edge ids
}

/*
NewAdjacency creates an empty Adjacency store.
*/
func NewAdjacency() *Adjacency {
	return &Adjacency{out: make(map[string][]util.ID), in: make(map[string][]util.ID)}
}

/*
AddOut records an outgoing edge under label.
*/
func (a *Adjacency) AddOut(label string, edge util.ID) {
	a.out[label] = append(a.out[label], edge)
}

/*
AddIn records an incoming edge under label.
*/
func (a *Adjacency) AddIn(label string, edge util.ID) {
	a.in[label] = append(a.in[label], edge)
}

/*
RemoveOut deletes one occurrence of edge from the outgoing set under
label.
*/
func (a *Adjacency) RemoveOut(label string, edge util.ID) {
	a.out[label] = removeOne(a.out[label], edge)
}

/*
RemoveIn deletes one occurrence of edge from the incoming set under
label.
*/
func (a *Adjacency) RemoveIn(label string, edge util.ID) {
	a.in[label] = removeOne(a.in[label], edge)
}

func removeOne(list []util.ID, id util.ID) []util.ID {
	for i, v := range list {
		if v == id {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

/*
Edges returns, in a stable but unspecified order, the distinct edge
identifiers incident to this vertex in the given direction and (if any
are given) restricted to one of labels. Direction Both deduplicates: a
self-loop edge is only returned once (§6).
*/
func (a *Adjacency) Edges(direction Direction, labels ...string) []util.ID {
	switch direction {
	case Out:
		return collect(a.out, labels)
	case In:
		return collect(a.in, labels)
	default:
		seen := make(map[util.ID]bool)
		var ret []util.ID
		for _, id := range collect(a.out, labels) {
			if !seen[id] {
				seen[id] = true
				ret = append(ret, id)
			}
		}
		for _, id := range collect(a.in, labels) {
			if !seen[id] {
				seen[id] = true
				ret = append(ret, id)
			}
		}
		return ret
	}
}

/*
EdgesDirected is like Edges but additionally returns, for each returned
edge id, whether it was found in the outgoing bucket for this call. It is
used by Vertex.Vertices to determine the correct "other end" per bucket,
and does not deduplicate across Out/In (a self-loop appears once per
bucket it is in, matching the "both-neighbors" rule of §6/§8).
*/
func (a *Adjacency) EdgesDirected(direction Direction, labels ...string) []DirectedEdge {
	var ret []DirectedEdge
	if direction == Out || direction == Both {
		for _, id := range collect(a.out, labels) {
			ret = append(ret, DirectedEdge{ID: id, Outgoing: true})
		}
	}
	if direction == In || direction == Both {
		for _, id := range collect(a.in, labels) {
			ret = append(ret, DirectedEdge{ID: id, Outgoing: false})
		}
	}
	return ret
}

/*
DirectedEdge pairs an edge identifier with the bucket (outgoing/incoming)
it was found in.
*/
type DirectedEdge struct {
	ID       util.ID
	Outgoing bool
}

func collect(buckets map[string][]util.ID, labels []string) []util.ID {
	if len(labels) == 0 {
		var ret []util.ID
		for _, ids := range buckets {
			ret = append(ret, ids...)
		}
		return ret
	}

	var ret []util.ID
	for _, label := range labels {
		ret = append(ret, buckets[label]...)
	}
	return ret
}
