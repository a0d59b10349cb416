/*
 * GraphCore
 *
 * Copyright 2026 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package query

import (
	"sort"

	"github.com/krotik/graphcore/graph"
	"github.com/krotik/graphcore/graph/data"
	"github.com/krotik/graphcore/graph/util"
)

/*
QueryVertices plans and runs c against g's vertex domain, returning an
Iterator over the matching vertices. Planning and filtering run inside a
single read-lock section (graph.Graph.WithRLock), so the result reflects
one consistent snapshot of the container even though the planner may
probe several indices before the scan/filter pass runs.
*/
func QueryVertices(g *graph.Graph, c Criterion) (graph.Iterator, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}

	var items []interface{}

	err := g.WithRLock(func() error {
		mgr := g.VertexIndex()
		p := planFor(mgr, c)
		coerce := g.Coercion()

		var candidates []*data.Vertex
		if p.scan {
			candidates = g.VerticesLocked()
		} else {
			candidates = g.VerticesLocked(p.ids...)
		}

		matched := make([]*data.Vertex, 0, len(candidates))
		for _, v := range candidates {
			if match(c, vertexContext(coerce, v)) {
				matched = append(matched, v)
			}
		}

		if !p.ordered {
			sort.Slice(matched, func(i, j int) bool { return matched[i].ID() < matched[j].ID() })
		}

		items = make([]interface{}, len(matched))
		for i, v := range matched {
			items[i] = v
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return graph.NewSliceIterator(items), nil
}

/*
QueryEdges plans and runs c against g's edge domain, the edge-domain
counterpart of QueryVertices. MetaEq and CardinalityEq criteria never
match an edge (edges have neither meta-properties nor cardinality).
*/
func QueryEdges(g *graph.Graph, c Criterion) (graph.Iterator, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}

	var items []interface{}

	err := g.WithRLock(func() error {
		mgr := g.EdgeIndex()
		p := planFor(mgr, c)
		coerce := g.Coercion()

		var candidates []*data.Edge
		if p.scan {
			candidates = g.EdgesLocked()
		} else {
			candidates = g.EdgesLocked(p.ids...)
		}

		matched := make([]*data.Edge, 0, len(candidates))
		for _, e := range candidates {
			if match(c, edgeContext(coerce, e)) {
				matched = append(matched, e)
			}
		}

		if !p.ordered {
			sort.Slice(matched, func(i, j int) bool { return matched[i].ID() < matched[j].ID() })
		}

		items = make([]interface{}, len(matched))
		for i, e := range matched {
			items[i] = e
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return graph.NewSliceIterator(items), nil
}

/*
QueryVertexProperties runs the vertex-property sub-query operation
(§4.8): given a vertex already in hand, it returns the vertex-property
instances under key (or every key if key is empty) that satisfy every
criterion in criteria, evaluated against each candidate vertex-property's
own value and meta-properties rather than against the owning vertex.
*/
func QueryVertexProperties(coerce *util.Coercion, v *data.Vertex, key string, criteria []Criterion) ([]*data.VertexProperty, error) {
	for _, c := range criteria {
		if err := Validate(c); err != nil {
			return nil, err
		}
	}

	var candidates []*data.VertexProperty
	if key != "" {
		candidates = v.Values(key)
	} else {
		candidates = v.All()
	}

	var ret []*data.VertexProperty
	for _, vp := range candidates {
		if vertexPropertyMatchesAll(coerce, vp, criteria) {
			ret = append(ret, vp)
		}
	}
	return ret, nil
}

func vertexPropertyMatchesAll(coerce *util.Coercion, vp *data.VertexProperty, criteria []Criterion) bool {
	ctx := context{
		coerce: coerce,
		valuesOf: func(key string) []interface{} {
			if key != vp.Key() {
				return nil
			}
			return []interface{}{vp.Value()}
		},
		vertexPropsOf: func(key string) []*data.VertexProperty {
			if key != vp.Key() {
				return nil
			}
			return []*data.VertexProperty{vp}
		},
	}
	for _, c := range criteria {
		if !match(c, ctx) {
			return false
		}
	}
	return true
}
