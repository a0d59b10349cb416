/*
 * GraphCore
 *
 * Copyright 2026 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package codec

import (
	"bytes"
	"testing"

	"github.com/krotik/graphcore/graph"
	"github.com/krotik/graphcore/graph/data"
)

func buildSample(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New(nil)

	v1, err := g.AddVertex("person", nil)
	if err != nil {
		t.Fatalf("AddVertex: %v", err)
	}
	if _, err := g.PutVertexProperty(v1, "name", "ada", data.Single); err != nil {
		t.Fatalf("PutVertexProperty: %v", err)
	}
	vp, err := g.PutVertexProperty(v1, "tag", "x", data.Set)
	if err != nil {
		t.Fatalf("PutVertexProperty tag: %v", err)
	}
	vp.Meta().Put("source", "import")

	v2, err := g.AddVertex("person", nil)
	if err != nil {
		t.Fatalf("AddVertex: %v", err)
	}
	if _, err := g.PutVertexProperty(v2, "name", "bob", data.Single); err != nil {
		t.Fatalf("PutVertexProperty: %v", err)
	}

	e, err := g.AddEdge(v1.ID(), "knows", v2.ID(), nil)
	if err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	if err := g.PutEdgeProperty(e, "since", 2020); err != nil {
		t.Fatalf("PutEdgeProperty: %v", err)
	}

	return g
}

func TestWriteReadRoundTrip(t *testing.T) {
	src := buildSample(t)

	var buf bytes.Buffer
	if err := Write(&buf, src); err != nil {
		t.Fatalf("Write: %v", err)
	}

	dst := graph.New(nil)
	if err := Read(&buf, dst, DefaultReadOptions(dst)); err != nil {
		t.Fatalf("Read: %v", err)
	}

	if got, want := len(dst.Vertices()), len(src.Vertices()); got != want {
		t.Fatalf("expected %d vertices, got %d", want, got)
	}
	if got, want := len(dst.Edges()), len(src.Edges()); got != want {
		t.Fatalf("expected %d edges, got %d", want, got)
	}

	var found bool
	for _, v := range dst.Vertices() {
		vps := v.Values("name")
		if len(vps) == 1 && vps[0].Value() == "ada" {
			found = true
			tagVps := v.Values("tag")
			if len(tagVps) != 1 || tagVps[0].Value() != "x" {
				t.Fatalf("expected tag x to survive round-trip, got %v", tagVps)
			}
			if src, ok := tagVps[0].Meta().Get("source"); !ok || src != "import" {
				t.Fatalf("expected meta-property source=import to survive, got %v (%v)", src, ok)
			}
		}
	}
	if !found {
		t.Fatal("vertex 'ada' not found after round-trip")
	}
}

func TestReadStrictPolicyRejectsCollision(t *testing.T) {
	src := buildSample(t)
	var buf bytes.Buffer
	if err := Write(&buf, src); err != nil {
		t.Fatalf("Write: %v", err)
	}
	snapshot := buf.Bytes()

	dst := graph.New(nil)
	if err := Read(bytes.NewReader(snapshot), dst, ReadOptions{Policy: graph.Strict}); err != nil {
		t.Fatalf("first import should succeed: %v", err)
	}

	if err := Read(bytes.NewReader(snapshot), dst, ReadOptions{Policy: graph.Strict}); err == nil {
		t.Fatal("expected a strict-policy re-import to fail on id collision")
	}

	// The failed import must not have partially applied - the graph keeps
	// exactly the vertices/edges from the first import.
	if got, want := len(dst.Vertices()), len(src.Vertices()); got != want {
		t.Fatalf("expected rollback to leave %d vertices, got %d", want, got)
	}
}

func TestReadGenerateNewIDPolicy(t *testing.T) {
	src := buildSample(t)
	var buf bytes.Buffer
	if err := Write(&buf, src); err != nil {
		t.Fatalf("Write: %v", err)
	}
	snapshot := buf.Bytes()

	dst := graph.New(nil)
	if err := Read(bytes.NewReader(snapshot), dst, ReadOptions{Policy: graph.GenerateNewID}); err != nil {
		t.Fatalf("first import: %v", err)
	}
	if err := Read(bytes.NewReader(snapshot), dst, ReadOptions{Policy: graph.GenerateNewID}); err != nil {
		t.Fatalf("second import with GenerateNewID: %v", err)
	}

	if got, want := len(dst.Vertices()), 2*len(src.Vertices()); got != want {
		t.Fatalf("expected %d vertices after two imports, got %d", want, got)
	}
}

func TestReadMergePropertiesPolicyKeepsIdentityAndAddsValues(t *testing.T) {
	src := buildSample(t)
	var buf bytes.Buffer
	if err := Write(&buf, src); err != nil {
		t.Fatalf("Write: %v", err)
	}
	snapshot := buf.Bytes()

	dst := graph.New(nil)
	if err := Read(bytes.NewReader(snapshot), dst, ReadOptions{Policy: graph.Strict}); err != nil {
		t.Fatalf("first import: %v", err)
	}
	countBefore := len(dst.Vertices())

	if err := Read(bytes.NewReader(snapshot), dst, ReadOptions{Policy: graph.MergeProperties}); err != nil {
		t.Fatalf("merge import: %v", err)
	}

	if got := len(dst.Vertices()); got != countBefore {
		t.Fatalf("expected MergeProperties to keep the same vertex identities, got %d vertices (was %d)", got, countBefore)
	}

	var ada *data.Vertex
	for _, v := range dst.Vertices() {
		if vals := v.Values("name"); len(vals) == 1 && vals[0].Value() == "ada" {
			ada = v
			break
		}
	}
	if ada == nil {
		t.Fatal("expected to still find vertex 'ada' after a merge import")
	}
	// name has Single cardinality: merging the same value again must not
	// produce a second instance.
	if n := len(ada.Values("name")); n != 1 {
		t.Fatalf("expected a single-cardinality property to remain singular after merge, got %d instances", n)
	}
}

func TestReadReplaceElementPolicyDropsOldIncidentEdges(t *testing.T) {
	src := buildSample(t)
	var buf bytes.Buffer
	if err := Write(&buf, src); err != nil {
		t.Fatalf("Write: %v", err)
	}
	snapshot := buf.Bytes()

	dst := graph.New(nil)
	if err := Read(bytes.NewReader(snapshot), dst, ReadOptions{Policy: graph.Strict}); err != nil {
		t.Fatalf("first import: %v", err)
	}
	countBefore := len(dst.Vertices())

	if err := Read(bytes.NewReader(snapshot), dst, ReadOptions{Policy: graph.ReplaceElement}); err != nil {
		t.Fatalf("replace import: %v", err)
	}

	if got := len(dst.Vertices()); got != countBefore {
		t.Fatalf("expected ReplaceElement to keep the same vertex identities, got %d vertices (was %d)", got, countBefore)
	}

	var ada *data.Vertex
	for _, v := range dst.Vertices() {
		if vals := v.Values("name"); len(vals) == 1 && vals[0].Value() == "ada" {
			ada = v
			break
		}
	}
	if ada == nil {
		t.Fatal("expected to still find a vertex named 'ada' after a replace import")
	}
	// The replaced vertex is a fresh element; its incoming edges from the
	// first import do not survive the replacement.
	if n := len(ada.Adjacency().EdgesDirected(data.Both)); n != 0 {
		t.Fatalf("expected the replaced vertex to have no surviving incident edges, got %d", n)
	}
}

func TestScalarRoundTrip(t *testing.T) {
	cases := []interface{}{int32(7), int64(7), float32(1.5), float64(1.5), true, "hello"}
	for _, c := range cases {
		s, err := EncodeScalar(c)
		if err != nil {
			t.Fatalf("EncodeScalar(%v): %v", c, err)
		}
		back, err := DecodeScalar(s)
		if err != nil {
			t.Fatalf("DecodeScalar(%v): %v", s, err)
		}
		if back != c {
			t.Fatalf("round trip mismatch: %v (%T) != %v (%T)", back, back, c, c)
		}
	}
}
