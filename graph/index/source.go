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
Package index implements the three secondary-index kinds of the engine:
the single-key index (C5), the composite index (C6) and the range index
(C7). Indices never hold Vertex/Edge pointers (only util.ID values),
mirroring EliasDB's own index manager which stores node keys, not node
objects (graph/util/indexmanager.go) - this also keeps the package free of
an import cycle with the graph container that owns the elements.
*/
package index

import "github.com/krotik/graphcore/graph/util"

/*
Source supplies the current values stored under a property key for an
element, as seen by the graph container. Indices call back into a Source
to resync themselves after a mutation instead of owning element data
directly (invariant 5: index contents are a pure function of current
element state).
*/
type Source interface {
	/*
		Values returns every value currently stored under key on element
		id. Vertex-property keys may return zero, one or many values
		(list/set cardinality); edge and meta-property keys return zero
		or one.
	*/
	Values(id util.ID, key string) []interface{}

	/*
		IDs returns every live element id currently in this domain, used to
		rebuild an index from current state the moment it is created
		(§4.5: "on create(key) the index rebuilds itself from current
		state").
	*/
	IDs() []util.ID
}
