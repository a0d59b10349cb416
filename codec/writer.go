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
	"sort"

	"github.com/krotik/graphcore/graph"
	"github.com/krotik/graphcore/graph/data"
)

/*
Write renders every live element of g as a Document and encodes it to
out as JSON, in stable ascending-id order (so a diff between two writes
of an unchanged graph is empty) - grounded on EliasDB's ExportPartition,
which iterates node/edge keys to an io.Writer rather than building an
intermediate in-memory tree; Write instead builds the Document value
first since encoding/json's Marshal already handles streaming output
efficiently for a document this size, and a Document is reused by tests
without reparsing JSON.
*/
func Write(out io.Writer, g *graph.Graph) error {
	doc, err := BuildDocument(g)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

/*
BuildDocument materializes g's current state as a Document without
writing it anywhere, useful for tests and for storage.FileSink's
metadata computation.
*/
func BuildDocument(g *graph.Graph) (*Document, error) {
	doc := &Document{Version: FormatVersion}

	vertices := g.Vertices()
	sort.Slice(vertices, func(i, j int) bool { return vertices[i].ID() < vertices[j].ID() })

	for _, v := range vertices {
		rec := VertexRecord{
			ID:         v.ID().String(),
			Label:      v.Label(),
			Properties: make(map[string][]VertexPropertyRecord),
		}
		for _, key := range v.Keys() {
			for _, vp := range v.Values(key) {
				meta, err := encodeMeta(vp.Meta())
				if err != nil {
					return nil, err
				}
				sv, err := EncodeScalar(vp.Value())
				if err != nil {
					return nil, err
				}
				rec.Properties[key] = append(rec.Properties[key], VertexPropertyRecord{
					ID:          vp.ID().String(),
					Cardinality: vp.Cardinality().String(),
					Value:       sv,
					Meta:        meta,
				})
			}
		}
		doc.Vertices = append(doc.Vertices, rec)
	}

	edges := g.Edges()
	sort.Slice(edges, func(i, j int) bool { return edges[i].ID() < edges[j].ID() })

	for _, e := range edges {
		rec := EdgeRecord{
			ID:         e.ID().String(),
			Label:      e.Label(),
			Out:        e.OutVertex().String(),
			In:         e.InVertex().String(),
			Properties: make(map[string]Scalar),
		}
		for _, key := range e.Properties().Keys() {
			val, _ := e.Properties().Get(key)
			sv, err := EncodeScalar(val)
			if err != nil {
				return nil, err
			}
			rec.Properties[key] = sv
		}
		doc.Edges = append(doc.Edges, rec)
	}

	return doc, nil
}

func encodeMeta(m *data.PropertyMap) (map[string]Scalar, error) {
	if m == nil || m.Len() == 0 {
		return nil, nil
	}
	ret := make(map[string]Scalar, m.Len())
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		sv, err := EncodeScalar(v)
		if err != nil {
			return nil, err
		}
		ret[k] = sv
	}
	return ret, nil
}
