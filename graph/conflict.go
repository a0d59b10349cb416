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

/*
ConflictPolicy governs how the snapshot reader (package codec) resolves
an identifier already present in the target container (§4.9). It lives
in this package, rather than in codec, so that Config can name a default
policy without codec needing to import graph back (the reader instead
takes a *graph.Graph and a *graph.Transaction as its target).
*/
type ConflictPolicy int

const (
	/*
		Strict fails the whole import with IdentifierConflict the first
		time an incoming id already exists in the target domain.
	*/
	Strict ConflictPolicy = iota

	/*
		GenerateNewID allocates a fresh id for the incoming element and
		remaps every reference to it within the same import. Default.
	*/
	GenerateNewID

	/*
		MergeProperties keeps the existing element and overwrites/appends
		its properties per their cardinality, preserving its neighbor
		edges.
	*/
	MergeProperties

	/*
		ReplaceElement removes the existing element (and, for a vertex,
		its incident edges) and creates a new one from the incoming
		properties.
	*/
	ReplaceElement
)

func (p ConflictPolicy) String() string {
	switch p {
	case Strict:
		return "strict"
	case GenerateNewID:
		return "generate_new_id"
	case MergeProperties:
		return "merge_properties"
	case ReplaceElement:
		return "replace_element"
	}
	return "unknown"
}
