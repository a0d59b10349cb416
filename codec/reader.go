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
	"encoding/json"
	"io"

	"github.com/krotik/common/logutil"
	"github.com/krotik/graphcore/graph"
	"github.com/krotik/graphcore/graph/data"
	"github.com/krotik/graphcore/graph/util"
)

var log = logutil.GetLogger("graph.codec")

/*
ReadOptions parameterizes Read.
*/
type ReadOptions struct {
	/*
		Policy governs how an incoming id already present in the target
		domain is resolved (§4.9). The zero value (graph.Strict) is not a
		sensible default for callers who omit this field; use
		DefaultReadOptions to start from the container's configured
		default instead.
	*/
	Policy graph.ConflictPolicy
}

/*
DefaultReadOptions returns ReadOptions seeded from g's configured
default conflict policy.
*/
func DefaultReadOptions(g *graph.Graph) ReadOptions {
	return ReadOptions{Policy: g.Config().IDConflictPolicyOnImport}
}

/*
Read decodes a Document from in and merges it into g under opts.Policy,
all inside a single graph.Transaction. If a step fails partway through,
the vertices and edges this call created are removed again; elements it
removed under the ReplaceElement and MergeProperties policies, and
properties it wrote onto vertices that already existed, are not
restored (see graph.Transaction). Unknown document fields are dropped
by encoding/json's default decode behavior; no warning is logged for
them.
*/
func Read(in io.Reader, g *graph.Graph, opts ReadOptions) error {
	var doc Document
	dec := json.NewDecoder(in)
	if err := dec.Decode(&doc); err != nil {
		return malformed("could not decode snapshot document: %s", err)
	}
	return ReadDocument(&doc, g, opts)
}

/*
ReadDocument merges an already-decoded Document into g under opts.Policy.
*/
func ReadDocument(doc *Document, g *graph.Graph, opts ReadOptions) error {
	r := &reader{
		g:     g,
		opts:  opts,
		remap: make(map[string]util.ID),
	}

	tx := g.Begin()
	if err := r.importAll(tx, doc); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

type reader struct {
	g     *graph.Graph
	opts  ReadOptions
	remap map[string]util.ID // foreign id (as written) -> local id
}

func (r *reader) importAll(tx *graph.Transaction, doc *Document) error {
	for _, vr := range doc.Vertices {
		if vr.ID == "" {
			return malformed("vertex record missing required field id")
		}
		if err := r.importVertex(tx, vr); err != nil {
			return err
		}
	}
	for _, er := range doc.Edges {
		if er.ID == "" || er.Out == "" || er.In == "" {
			return malformed("edge record missing required id/out/in field")
		}
		if err := r.importEdge(tx, er); err != nil {
			return err
		}
	}
	return nil
}

func (r *reader) importVertex(tx *graph.Transaction, vr VertexRecord) error {
	existing, exists := lookupVertex(tx, vr.ID)

	var local util.ID
	switch {
	case !exists:
		v, err := tx.AddVertex(vr.Label, vr.ID)
		if err != nil {
			return err
		}
		local = v.ID()

	case r.opts.Policy == graph.Strict:
		return &util.GraphError{Type: util.ErrIdentifierConflict,
			Detail: "vertex id " + vr.ID + " already exists in target"}

	case r.opts.Policy == graph.GenerateNewID:
		v, err := tx.AddVertex(vr.Label, nil)
		if err != nil {
			return err
		}
		local = v.ID()
		log.Debug("remapped imported vertex ", vr.ID, " to ", local)

	case r.opts.Policy == graph.MergeProperties:
		local = existing.ID()
		log.Debug("merging properties into existing vertex ", local)

	case r.opts.Policy == graph.ReplaceElement:
		local = existing.ID()
		log.Debug("replacing existing vertex ", local)
		if err := tx.RemoveVertex(local); err != nil {
			return err
		}
		if err := tx.ReinstateVertexID(local); err != nil {
			return err
		}
		v, err := tx.AddVertex(vr.Label, local)
		if err != nil {
			return err
		}
		local = v.ID()

	default:
		return &util.GraphError{Type: util.ErrInvalidArgument, Detail: "unknown conflict policy"}
	}

	r.remap[vr.ID] = local

	v, err := tx.Vertex(local)
	if err != nil {
		return err
	}

	for key, instances := range vr.Properties {
		for _, pr := range instances {
			if pr.Value.Type == "" {
				return malformed("vertex-property %q missing required scalar type", key)
			}
			value, err := DecodeScalar(pr.Value)
			if err != nil {
				return err
			}
			card, ok := data.ParseCardinality(pr.Cardinality)
			if !ok {
				card = r.g.Config().DefaultCardinality
			}
			var vp *data.VertexProperty
			if r.opts.Policy == graph.MergeProperties && card == data.Set {
				// A set value the vertex already carries is kept as it is
				// (its meta-properties are merged below) instead of being
				// rejected as a duplicate.
				for _, cur := range v.Values(key) {
					if r.g.Coercion().Equal(cur.Value(), value) {
						vp = cur
						break
					}
				}
			}
			if vp == nil {
				vp, err = tx.PutVertexProperty(v, key, value, card)
				if err != nil {
					return err
				}
			}
			for mk, ms := range pr.Meta {
				mv, err := DecodeScalar(ms)
				if err != nil {
					return err
				}
				vp.Meta().Put(mk, mv)
			}
		}
	}

	return nil
}

func (r *reader) importEdge(tx *graph.Transaction, er EdgeRecord) error {
	out, ok := r.remap[er.Out]
	if !ok {
		return malformed("edge %q references unknown vertex %q", er.ID, er.Out)
	}
	in, ok := r.remap[er.In]
	if !ok {
		return malformed("edge %q references unknown vertex %q", er.ID, er.In)
	}

	existing, exists := lookupEdge(tx, er.ID)

	var local util.ID
	switch {
	case !exists:
		e, err := tx.AddEdge(out, er.Label, in, er.ID)
		if err != nil {
			return err
		}
		local = e.ID()

	case r.opts.Policy == graph.Strict:
		return &util.GraphError{Type: util.ErrIdentifierConflict,
			Detail: "edge id " + er.ID + " already exists in target"}

	case r.opts.Policy == graph.GenerateNewID:
		e, err := tx.AddEdge(out, er.Label, in, nil)
		if err != nil {
			return err
		}
		local = e.ID()

	case r.opts.Policy == graph.MergeProperties, r.opts.Policy == graph.ReplaceElement:
		// An edge has no independent identity worth merging into (its
		// endpoints define it); both non-strict "keep identity" policies
		// replace it outright when it already exists.
		existingID := existing.ID()
		if err := tx.RemoveEdge(existingID); err != nil {
			return err
		}
		if err := tx.ReinstateEdgeID(existingID); err != nil {
			return err
		}
		e, err := tx.AddEdge(out, er.Label, in, existingID)
		if err != nil {
			return err
		}
		local = e.ID()

	default:
		return &util.GraphError{Type: util.ErrInvalidArgument, Detail: "unknown conflict policy"}
	}

	r.remap[er.ID] = local

	e, err := tx.Edge(local)
	if err != nil {
		return err
	}

	for key, sv := range er.Properties {
		if sv.Type == "" {
			return malformed("edge property %q missing required scalar type", key)
		}
		value, err := DecodeScalar(sv)
		if err != nil {
			return err
		}
		if err := tx.PutEdgeProperty(e, key, value); err != nil {
			return err
		}
	}

	return nil
}

func lookupVertex(tx *graph.Transaction, foreignID string) (*data.Vertex, bool) {
	vid, err := util.ParseID(foreignID)
	if err != nil {
		return nil, false
	}
	v, err := tx.Vertex(vid)
	if err != nil {
		return nil, false
	}
	return v, true
}

func lookupEdge(tx *graph.Transaction, foreignID string) (*data.Edge, bool) {
	eid, err := util.ParseID(foreignID)
	if err != nil {
		return nil, false
	}
	e, err := tx.Edge(eid)
	if err != nil {
		return nil, false
	}
	return e, true
}
