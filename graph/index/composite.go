/*
 * GraphCore
 *
 * Copyright 2026 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package index

import (
	"strings"

	"github.com/krotik/graphcore/graph/util"
)

/*
CompositeIndex maintains a joint index over an ordered tuple of property
keys (C6), e.g. (dept, city). A lookup may supply either a full tuple of
values or a prefix of it (the leading keys only); a prefix lookup scans
the bucket space for matches the way EliasDB's HTree iterates key
segments one level at a time.

An element whose keys are multi-valued (list/set cardinality) is indexed
once per entry of the cross product of its per-key value sets. A vertex
with dept in {"eng","sales"} and city "nyc" contributes two bucket
entries: (eng,nyc) and (sales,nyc).
*/
type CompositeIndex struct {
	keys    []string
	coerce  *util.Coercion
	forward map[string]map[util.ID]bool // joined bucket key -> element ids
	members map[util.ID]map[string]bool // element id -> buckets it currently occupies
}

/*
NewCompositeIndex creates a composite index over keys, in the given
order. The order matters for prefix lookups: a prefix must start at
keys[0].
*/
func NewCompositeIndex(keys []string, coerce *util.Coercion) *CompositeIndex {
	cp := make([]string, len(keys))
	copy(cp, keys)
	return &CompositeIndex{
		keys:    cp,
		coerce:  coerce,
		forward: make(map[string]map[util.ID]bool),
		members: make(map[util.ID]map[string]bool),
	}
}

/*
Keys returns the ordered key tuple this index is defined over.
*/
func (ci *CompositeIndex) Keys() []string { return ci.keys }

/*
Resync recomputes the buckets id belongs to under this index, given a
fetch function that supplies the current values under a single key. It
is idempotent and self-healing (invariant 5), mirroring SingleKeyIndex.
*/
func (ci *CompositeIndex) Resync(id util.ID, values func(key string) []interface{}) {
	tuples := ci.crossProduct(values)

	newBuckets := make(map[string]bool, len(tuples))
	for _, t := range tuples {
		newBuckets[ci.join(t)] = true
	}

	old := ci.members[id]
	for b := range old {
		if !newBuckets[b] {
			if ids, ok := ci.forward[b]; ok {
				delete(ids, id)
				if len(ids) == 0 {
					delete(ci.forward, b)
				}
			}
		}
	}

	for b := range newBuckets {
		ids, ok := ci.forward[b]
		if !ok {
			ids = make(map[util.ID]bool)
			ci.forward[b] = ids
		}
		ids[id] = true
	}

	if len(newBuckets) == 0 {
		delete(ci.members, id)
	} else {
		ci.members[id] = newBuckets
	}
}

/*
Remove deletes id from every bucket of this index.
*/
func (ci *CompositeIndex) Remove(id util.ID) {
	ci.Resync(id, func(string) []interface{} { return nil })
}

/*
Lookup returns the elements whose values under every key of this index's
tuple are coerced-equal to the corresponding entry of values, in a
stable order. len(values) must equal len(ci.keys); use LookupPrefix for
a partial match.
*/
func (ci *CompositeIndex) Lookup(values []interface{}) []util.ID {
	if len(values) != len(ci.keys) {
		return nil
	}
	return ci.lookupBucket(ci.join(values))
}

/*
LookupPrefix returns the elements matching the leading len(prefix) keys
of this index's tuple, ignoring the remaining keys. A one-element prefix
degrades to a single-key-style lookup over ci.keys[0].
*/
func (ci *CompositeIndex) LookupPrefix(prefix []interface{}) []util.ID {
	if len(prefix) == 0 || len(prefix) > len(ci.keys) {
		return nil
	}
	want := ci.joinPrefix(prefix)

	seen := make(map[util.ID]bool)
	var ret []util.ID
	for b, ids := range ci.forward {
		if !strings.HasPrefix(b, want) {
			continue
		}
		for id := range ids {
			if !seen[id] {
				seen[id] = true
				ret = append(ret, id)
			}
		}
	}
	sortIDs(ret)
	return ret
}

func (ci *CompositeIndex) lookupBucket(bucket string) []util.ID {
	ids := ci.forward[bucket]
	ret := make([]util.ID, 0, len(ids))
	for id := range ids {
		ret = append(ret, id)
	}
	sortIDs(ret)
	return ret
}

/*
DistinctValueCount returns the number of distinct buckets tracked, used
by the query planner as a selectivity estimate for the full tuple (§4.8).
*/
func (ci *CompositeIndex) DistinctValueCount() int { return len(ci.forward) }

// join renders a complete value tuple as a bucket key, one canonical
// segment per key, separated by a byte that cannot appear inside a
// segment (each segment is itself prefixed by a \x00-led discriminator
// from CanonicalKey, so a literal \x01 separator cannot be confused with
// segment content).
func (ci *CompositeIndex) join(values []interface{}) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = ci.coerce.CanonicalKey(v)
	}
	return strings.Join(parts, "\x01")
}

func (ci *CompositeIndex) joinPrefix(values []interface{}) string {
	s := ci.join(values)
	if len(values) == len(ci.keys) {
		return s
	}
	return s + "\x01"
}

// crossProduct expands the per-key value sets into the full cross
// product of tuples an element contributes to this index. A missing key
// (no values at all) means the element does not participate in the
// index under the current key ordering (SQL-style composite-index
// semantics: all columns must be present).
func (ci *CompositeIndex) crossProduct(values func(key string) []interface{}) [][]interface{} {
	sets := make([][]interface{}, len(ci.keys))
	for i, k := range ci.keys {
		vs := values(k)
		if len(vs) == 0 {
			return nil
		}
		sets[i] = vs
	}

	tuples := [][]interface{}{{}}
	for _, set := range sets {
		var next [][]interface{}
		for _, t := range tuples {
			for _, v := range set {
				nt := make([]interface{}, len(t)+1)
				copy(nt, t)
				nt[len(t)] = v
				next = append(next, nt)
			}
		}
		tuples = next
	}
	return tuples
}
