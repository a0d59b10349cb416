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
	"testing"

	"github.com/krotik/graphcore/graph/util"
)

func newIDSeq() func() util.ID {
	var n util.ID
	return func() util.ID {
		n++
		return n
	}
}

func TestVertexPutSingleCardinalityReplaces(t *testing.T) {
	v := NewVertex(1, "t")
	coerce := util.NewCoercion()
	next := newIDSeq()

	first, err := v.Put(next, coerce, "k", "a", Single)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, err := v.Put(next, coerce, "k", "b", Single); err != nil {
		t.Fatalf("Put: %v", err)
	}

	vals := v.Values("k")
	if len(vals) != 1 || vals[0].Value() != "b" {
		t.Fatalf("expected single value 'b', got %v", vals)
	}
	if !first.Removed() {
		t.Fatal("expected the replaced single-cardinality instance to be marked removed")
	}
}

func TestVertexPutListCardinalityAppendsDuplicates(t *testing.T) {
	v := NewVertex(1, "t")
	coerce := util.NewCoercion()
	next := newIDSeq()

	if _, err := v.Put(next, coerce, "k", "a", List); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, err := v.Put(next, coerce, "k", "a", List); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if len(v.Values("k")) != 2 {
		t.Fatalf("expected 2 list entries, got %d", len(v.Values("k")))
	}
}

func TestVertexPutSetCardinalityRejectsDuplicateValue(t *testing.T) {
	v := NewVertex(1, "t")
	coerce := util.NewCoercion()
	next := newIDSeq()

	if _, err := v.Put(next, coerce, "k", "a", Set); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, err := v.Put(next, coerce, "k", "a", Set); err == nil {
		t.Fatal("expected a duplicate set-cardinality value to fail")
	}
	if _, err := v.Put(next, coerce, "k", "b", Set); err != nil {
		t.Fatalf("Put of a distinct set value should succeed: %v", err)
	}

	if len(v.Values("k")) != 2 {
		t.Fatalf("expected 2 set entries, got %d", len(v.Values("k")))
	}
}

func TestVertexRemovePropertyPrunesEmptyKey(t *testing.T) {
	v := NewVertex(1, "t")
	coerce := util.NewCoercion()
	next := newIDSeq()

	vp, err := v.Put(next, coerce, "k", "a", Single)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	v.Remove(vp)

	if len(v.Values("k")) != 0 {
		t.Fatal("expected no values under k after removal")
	}
	for _, key := range v.Keys() {
		if key == "k" {
			t.Fatal("expected key k to be pruned once empty")
		}
	}
	if !vp.Removed() {
		t.Fatal("expected the removed vertex-property to be marked removed")
	}
}

func TestAdjacencySelfLoopAppearsTwiceUnderBoth(t *testing.T) {
	a := NewAdjacency()
	a.AddOut("knows", 1)
	a.AddIn("knows", 1)

	ids := a.Edges(Both, "knows")
	if len(ids) != 1 {
		t.Fatalf("Edges(Both) deduplicates by id, expected 1 distinct id, got %d", len(ids))
	}

	directed := a.EdgesDirected(Both, "knows")
	if len(directed) != 2 {
		t.Fatalf("EdgesDirected(Both) must not deduplicate a self-loop, expected 2, got %d", len(directed))
	}
}

func TestAdjacencyRemoveOneOccurrence(t *testing.T) {
	a := NewAdjacency()
	a.AddOut("rel", 1)
	a.AddOut("rel", 1)
	a.RemoveOut("rel", 1)

	ids := a.Edges(Out, "rel")
	if len(ids) != 1 {
		t.Fatalf("expected 1 remaining occurrence, got %d", len(ids))
	}
}

func TestEdgeOtherEndAndSelfLoop(t *testing.T) {
	e := NewEdge(1, "rel", 10, 10)
	if !e.IsSelfLoop() {
		t.Fatal("expected a same out/in edge to be a self-loop")
	}
	other, ok := e.OtherEnd(10)
	if !ok || other != 10 {
		t.Fatalf("expected OtherEnd(10) to return (10, true) for a self-loop, got (%v, %v)", other, ok)
	}
	if _, ok := e.OtherEnd(99); ok {
		t.Fatal("expected OtherEnd of an unrelated vertex to fail")
	}
}
