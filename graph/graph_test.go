/*
 * GraphCore
 *
 * Copyright 2026 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package graph

import (
	"testing"

	"github.com/krotik/graphcore/graph/data"
)

func TestAddVertexAllocatesAndCoercesIDs(t *testing.T) {
	g := New(nil)

	v1, err := g.AddVertex("person", nil)
	if err != nil {
		t.Fatalf("AddVertex: %v", err)
	}

	v2, err := g.AddVertex("person", 100)
	if err != nil {
		t.Fatalf("AddVertex with explicit id: %v", err)
	}
	if v2.ID() != 100 {
		t.Fatalf("expected id 100, got %v", v2.ID())
	}

	if _, err := g.AddVertex("person", 100); err == nil {
		t.Fatal("expected a duplicate explicit id to fail")
	}

	if v1.ID() == v2.ID() {
		t.Fatal("expected distinct auto-allocated and explicit ids")
	}
}

func TestAddEdgeRequiresLiveEndpoints(t *testing.T) {
	g := New(nil)
	v1, _ := g.AddVertex("person", nil)

	if _, err := g.AddEdge(v1.ID(), "knows", 9999, nil); err == nil {
		t.Fatal("expected AddEdge to fail when the target vertex does not exist")
	}

	v2, _ := g.AddVertex("person", nil)
	e, err := g.AddEdge(v1.ID(), "knows", v2.ID(), nil)
	if err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	if e.OutVertex() != v1.ID() || e.InVertex() != v2.ID() {
		t.Fatalf("unexpected edge endpoints: %v -> %v", e.OutVertex(), e.InVertex())
	}
}

func TestRemoveVertexCascadesToIncidentEdgesAndProperties(t *testing.T) {
	g := New(nil)
	v1, _ := g.AddVertex("person", nil)
	v2, _ := g.AddVertex("person", nil)
	e, err := g.AddEdge(v1.ID(), "knows", v2.ID(), nil)
	if err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	if _, err := g.PutVertexProperty(v1, "name", "ada", data.Single); err != nil {
		t.Fatalf("PutVertexProperty: %v", err)
	}

	if err := g.RemoveVertex(v1.ID()); err != nil {
		t.Fatalf("RemoveVertex: %v", err)
	}

	if _, err := g.Vertex(v1.ID()); err == nil {
		t.Fatal("expected removed vertex to be unreachable")
	}
	if _, err := g.Edge(e.ID()); err == nil {
		t.Fatal("expected the incident edge to be removed along with its vertex")
	}
	if _, err := g.Vertex(v2.ID()); err != nil {
		t.Fatalf("expected the other endpoint to survive, got %v", err)
	}
	if len(v2.Adjacency().Edges(data.Both, "knows")) != 0 {
		t.Fatal("expected v2's adjacency to be detached from the removed edge")
	}
}

func TestRemoveVertexIDIsNeverReissued(t *testing.T) {
	g := New(nil)
	v1, _ := g.AddVertex("person", nil)
	id := v1.ID()

	if err := g.RemoveVertex(id); err != nil {
		t.Fatalf("RemoveVertex: %v", err)
	}

	v2, _ := g.AddVertex("person", nil)
	if v2.ID() == id {
		t.Fatalf("expected a retired vertex id to never be reissued, got %v again", id)
	}

	if _, err := g.AddVertex("person", id); err == nil {
		t.Fatal("expected coercing a retired id to fail")
	}
}

func TestCreateSingleIndexAfterDataRebuildsFromCurrentState(t *testing.T) {
	g := New(nil)

	v1, _ := g.AddVertex("person", nil)
	if _, err := g.PutVertexProperty(v1, "dept", "eng", data.Single); err != nil {
		t.Fatalf("PutVertexProperty: %v", err)
	}
	v2, _ := g.AddVertex("person", nil)
	if _, err := g.PutVertexProperty(v2, "dept", "sales", data.Single); err != nil {
		t.Fatalf("PutVertexProperty: %v", err)
	}

	// The index is created only after both vertices already carry the
	// property - it must rebuild from current state, not start empty.
	single := g.VertexIndex().CreateSingle("dept", g.Coercion())

	ids := single.Lookup("eng")
	if len(ids) != 1 || ids[0] != v1.ID() {
		t.Fatalf("expected dept=eng to already contain %v, got %v", v1.ID(), ids)
	}
	ids = single.Lookup("sales")
	if len(ids) != 1 || ids[0] != v2.ID() {
		t.Fatalf("expected dept=sales to already contain %v, got %v", v2.ID(), ids)
	}
}

func TestPutVertexPropertyResyncsSingleKeyIndex(t *testing.T) {
	g := New(nil)
	g.VertexIndex().CreateSingle("dept", g.Coercion())

	v, _ := g.AddVertex("person", nil)
	if _, err := g.PutVertexProperty(v, "dept", "eng", data.Single); err != nil {
		t.Fatalf("PutVertexProperty: %v", err)
	}

	single, _ := g.VertexIndex().Single("dept")
	ids := single.Lookup("eng")
	if len(ids) != 1 || ids[0] != v.ID() {
		t.Fatalf("expected vertex %v indexed under dept=eng, got %v", v.ID(), ids)
	}

	if _, err := g.PutVertexProperty(v, "dept", "sales", data.Single); err != nil {
		t.Fatalf("PutVertexProperty: %v", err)
	}
	if len(single.Lookup("eng")) != 0 {
		t.Fatal("expected the old dept=eng bucket to be cleared after replacing a single-cardinality value")
	}
	if ids := single.Lookup("sales"); len(ids) != 1 || ids[0] != v.ID() {
		t.Fatalf("expected vertex reindexed under dept=sales, got %v", ids)
	}
}

func TestRemoveVertexPropertyResyncsIndex(t *testing.T) {
	g := New(nil)
	g.VertexIndex().CreateSingle("dept", g.Coercion())

	v, _ := g.AddVertex("person", nil)
	vp, err := g.PutVertexProperty(v, "dept", "eng", data.Single)
	if err != nil {
		t.Fatalf("PutVertexProperty: %v", err)
	}

	g.RemoveVertexProperty(vp)

	single, _ := g.VertexIndex().Single("dept")
	if len(single.Lookup("eng")) != 0 {
		t.Fatal("expected the index bucket cleared after removing the vertex property")
	}
}

func TestPutEdgePropertyRejectsEmptyKey(t *testing.T) {
	g := New(nil)
	v1, _ := g.AddVertex("person", nil)
	v2, _ := g.AddVertex("person", nil)
	e, _ := g.AddEdge(v1.ID(), "knows", v2.ID(), nil)

	if err := g.PutEdgeProperty(e, "", "x"); err == nil {
		t.Fatal("expected an empty property key to be rejected")
	}
}

func TestMutatingARemovedVertexFails(t *testing.T) {
	g := New(nil)
	v, _ := g.AddVertex("person", nil)
	if err := g.RemoveVertex(v.ID()); err != nil {
		t.Fatalf("RemoveVertex: %v", err)
	}

	if _, err := g.PutVertexProperty(v, "k", "v", data.Single); err == nil {
		t.Fatal("expected PutVertexProperty on a removed vertex to fail")
	}
}

func TestStatsReflectsContainerSize(t *testing.T) {
	g := New(nil)
	v1, _ := g.AddVertex("person", nil)
	v2, _ := g.AddVertex("person", nil)
	if _, err := g.AddEdge(v1.ID(), "knows", v2.ID(), nil); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}

	stats := g.Stats()
	if stats.VertexCount != 2 {
		t.Fatalf("expected VertexCount 2, got %d", stats.VertexCount)
	}
	if stats.EdgeCount != 1 {
		t.Fatalf("expected EdgeCount 1, got %d", stats.EdgeCount)
	}
}

func TestSelfLoopEdgeAllowed(t *testing.T) {
	g := New(nil)
	v, _ := g.AddVertex("person", nil)

	e, err := g.AddEdge(v.ID(), "self", v.ID(), nil)
	if err != nil {
		t.Fatalf("expected a self-loop edge to be permitted: %v", err)
	}
	if !e.IsSelfLoop() {
		t.Fatal("expected IsSelfLoop to report true")
	}
}
