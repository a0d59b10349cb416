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
	"github.com/krotik/common/sortutil"
	"github.com/krotik/graphcore/graph/util"
)

/*
SingleKeyIndex maintains key -> value -> set<element> for one registered
property key (C5). Maintenance is incremental: Resync(id) recomputes the
buckets id currently belongs to from the element's live values and
removes it from every bucket it no longer belongs to, so the index stays
a pure function of current state (invariant 5) regardless of how many
times it is called for the same id.
*/
type SingleKeyIndex struct {
	key     string
	coerce  *util.Coercion
	forward map[string]map[util.ID]bool // canonical bucket -> element ids
	reverse map[util.ID]string          // element id -> its current bucket (single-key: one bucket matters for first value; see Resync)
}

/*
NewSingleKeyIndex creates a single-key index over key, empty.
*/
func NewSingleKeyIndex(key string, coerce *util.Coercion) *SingleKeyIndex {
	return &SingleKeyIndex{
		key:     key,
		coerce:  coerce,
		forward: make(map[string]map[util.ID]bool),
		reverse: make(map[util.ID]string),
	}
}

/*
Key returns the property key this index tracks.
*/
func (si *SingleKeyIndex) Key() string { return si.key }

/*
Resync recomputes the buckets id belongs to under this index's key, given
its current values. An element contributes to a bucket once per distinct
canonical value; a list-cardinality key with repeated values does not
create duplicate index entries (a lookup returns a set, per C5).
*/
func (si *SingleKeyIndex) Resync(id util.ID, values []interface{}) {
	newBuckets := make(map[string]bool, len(values))
	for _, v := range values {
		newBuckets[si.coerce.CanonicalKey(v)] = true
	}

	for b, ids := range si.forward {
		if !newBuckets[b] {
			if ids[id] {
				delete(ids, id)
				if len(ids) == 0 {
					delete(si.forward, b)
				}
			}
		}
	}

	for b := range newBuckets {
		ids, ok := si.forward[b]
		if !ok {
			ids = make(map[util.ID]bool)
			si.forward[b] = ids
		}
		ids[id] = true
	}

	if len(newBuckets) == 0 {
		delete(si.reverse, id)
	} else {
		// Keep one representative bucket for diagnostics; forward is the
		// source of truth for membership.
		for b := range newBuckets {
			si.reverse[id] = b
			break
		}
	}
}

/*
Remove deletes id from every bucket of this index.
*/
func (si *SingleKeyIndex) Remove(id util.ID) {
	si.Resync(id, nil)
}

/*
Lookup returns the elements whose value under this index's key is
coerced-equal to value, in a stable (sorted by id) order.
*/
func (si *SingleKeyIndex) Lookup(value interface{}) []util.ID {
	ids := si.forward[si.coerce.CanonicalKey(value)]
	ret := make([]util.ID, 0, len(ids))
	for id := range ids {
		ret = append(ret, id)
	}
	sortIDs(ret)
	return ret
}

/*
DistinctValueCount returns the number of distinct buckets tracked, used by
the query planner as a cheap selectivity estimate (§4.8).
*/
func (si *SingleKeyIndex) DistinctValueCount() int { return len(si.forward) }

func sortIDs(ids []util.ID) {
	u64 := make([]uint64, len(ids))
	for i, id := range ids {
		u64[i] = uint64(id)
	}
	sortutil.UInt64s(u64)
	for i, v := range u64 {
		ids[i] = util.ID(v)
	}
}
