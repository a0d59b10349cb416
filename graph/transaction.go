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
	"github.com/krotik/graphcore/graph/data"
	"github.com/krotik/graphcore/graph/util"
)

/*
Transaction batches vertex/edge mutations under a single write-lock
section, held for the transaction's whole lifetime. Rollback undoes the
vertex and edge creations staged so far; staged removals and property
writes are not undone (see RemoveVertex). The snapshot reader uses one
transaction per import. It is grounded on EliasDB's graph.Trans, which stages node/edge
stores and removes and commits or rolls them back as a unit - simplified
here to an in-process undo log under one held lock, since there is no
WAL or cross-process durability to recover (Non-goals, §1).
*/
type Transaction struct {
	g     *Graph
	undo  []func()
	err   error
	owned bool // true once Commit/Rollback has run
}

/*
Begin starts a transaction against g, acquiring its write lock
immediately. The caller must eventually call Commit or Rollback to
release it.
*/
func (g *Graph) Begin() *Transaction {
	g.mutex.Lock()
	return &Transaction{g: g}
}

/*
AddVertex stages a vertex creation. On failure the transaction records
the error; subsequent staged operations are rejected until Rollback.
*/
func (t *Transaction) AddVertex(label string, id interface{}) (*data.Vertex, error) {
	if t.err != nil {
		return nil, t.err
	}

	v, err := t.g.addVertexLocked(label, id)
	if err != nil {
		t.err = err
		return nil, err
	}

	vid := v.ID()
	t.undo = append(t.undo, func() { t.g.removeVertexLocked(vid) })
	return v, nil
}

/*
AddEdge stages an edge creation between two vertices already visible to
the transaction's Graph (whether created by this transaction or not).
*/
func (t *Transaction) AddEdge(outID util.ID, label string, inID util.ID, id interface{}) (*data.Edge, error) {
	if t.err != nil {
		return nil, t.err
	}

	e, err := t.g.addEdgeLocked(outID, label, inID, id)
	if err != nil {
		t.err = err
		return nil, err
	}

	eid := e.ID()
	t.undo = append(t.undo, func() { t.g.removeEdgeLocked(eid) })
	return e, nil
}

/*
ReinstateVertexID releases a vertex id this same transaction has just
retired via RemoveVertex, so a subsequent AddVertex may claim it and recreate an
element under that identity instead of being rejected as a duplicate
(used by the snapshot reader's ReplaceElement conflict policy).
*/
func (t *Transaction) ReinstateVertexID(id util.ID) error {
	if t.err != nil {
		return t.err
	}
	if err := t.g.vertexIDs.Reinstate(id); err != nil {
		t.err = err
		return err
	}
	return nil
}

/*
ReinstateEdgeID is ReinstateVertexID's edge-domain counterpart.
*/
func (t *Transaction) ReinstateEdgeID(id util.ID) error {
	if t.err != nil {
		return t.err
	}
	if err := t.g.edgeIDs.Reinstate(id); err != nil {
		t.err = err
		return err
	}
	return nil
}

/*
RemoveVertex stages removal of a vertex id. Staged removals cannot be
undone by Rollback (the elements and their incident state are gone);
Transaction therefore only guarantees all-or-nothing for the creations
staged in the same transaction, matching §4.11's "all-or-nothing at the
element-level" scope.
*/
func (t *Transaction) RemoveVertex(id util.ID) error {
	if t.err != nil {
		return t.err
	}
	if err := t.g.removeVertexLocked(id); err != nil {
		t.err = err
		return err
	}
	return nil
}

/*
RemoveEdge stages removal of an edge.
*/
func (t *Transaction) RemoveEdge(id util.ID) error {
	if t.err != nil {
		return t.err
	}
	if err := t.g.removeEdgeLocked(id); err != nil {
		t.err = err
		return err
	}
	return nil
}

/*
Commit finalizes the transaction and releases its write lock. If any
staged step had already failed, Commit rolls back instead and returns
that error.
*/
func (t *Transaction) Commit() error {
	if t.owned {
		return nil
	}
	t.owned = true
	defer t.g.mutex.Unlock()

	if t.err != nil {
		t.rollback()
		return t.err
	}
	return nil
}

/*
Rollback undoes every successfully staged step, in reverse order, and
releases the write lock.
*/
func (t *Transaction) Rollback() {
	if t.owned {
		return
	}
	t.owned = true
	defer t.g.mutex.Unlock()
	t.rollback()
}

/*
Vertex returns the live vertex with the given id, without taking the
container lock again (the transaction already holds it for its whole
lifetime).
*/
func (t *Transaction) Vertex(id util.ID) (*data.Vertex, error) {
	return t.g.vertexLocked(id)
}

/*
Edge returns the live edge with the given id, without re-locking.
*/
func (t *Transaction) Edge(id util.ID) (*data.Edge, error) {
	return t.g.edgeLocked(id)
}

/*
PutVertexProperty attaches or replaces a value under key on vertex v,
within this transaction's already-held write lock.
*/
func (t *Transaction) PutVertexProperty(v *data.Vertex, key string, value interface{}, card data.Cardinality) (*data.VertexProperty, error) {
	if t.err != nil {
		return nil, t.err
	}
	vp, err := t.g.putVertexPropertyLocked(v, key, value, card)
	if err != nil {
		t.err = err
		return nil, err
	}
	return vp, nil
}

/*
PutEdgeProperty sets a single-valued property on edge e, within this
transaction's already-held write lock.
*/
func (t *Transaction) PutEdgeProperty(e *data.Edge, key string, value interface{}) error {
	if t.err != nil {
		return t.err
	}
	if err := t.g.putEdgePropertyLocked(e, key, value); err != nil {
		t.err = err
		return err
	}
	return nil
}

func (t *Transaction) rollback() {
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
}
