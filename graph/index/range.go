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
	"sort"

	"github.com/krotik/graphcore/graph/util"
)

/*
RangeIndex maintains an ordered view over one property key for bounded
(>=, <=, between) queries (C7). Unlike SingleKeyIndex and CompositeIndex,
it cannot bucket by a canonical string: ordering needs the actual
coerced-numeric value, not a discriminated string, so the index keeps a
sorted slice of (value, id) entries and locates bounds with a binary
search (sort.Search), the same idiom sortutil uses for its typed slice
helpers - no ordered-map, skiplist or B-tree library appears anywhere in
the dependency pack, so a sorted slice plus binary search is the
standard-library-only primitive chosen here (see DESIGN.md).

A value that cannot coerce to an ordered float64 (CoerceOrdered) is
simply not entered into the index, so Scan never returns the element
for it; such a value never satisfies a range criterion either.
*/
type RangeIndex struct {
	key     string
	coerce  *util.Coercion
	entries []rangeEntry   // kept sorted by value, then by id
	current map[util.ID]float64 // id -> the value it is currently entered under, for fast removal
}

type rangeEntry struct {
	value float64
	id    util.ID
}

/*
NewRangeIndex creates a range index over key, empty.
*/
func NewRangeIndex(key string, coerce *util.Coercion) *RangeIndex {
	return &RangeIndex{
		key:     key,
		coerce:  coerce,
		current: make(map[util.ID]float64),
	}
}

/*
Key returns the property key this index tracks.
*/
func (ri *RangeIndex) Key() string { return ri.key }

/*
Resync recomputes id's membership in this index given its current
values. Only one orderable value, the smallest, is entered (a range index
assumes a single-valued or single-cardinality ordering key; a
multi-valued key still participates, indexed under its smallest
orderable value, so a >= query never misses it, while callers wanting
exact multi-value range semantics should prefer a full scan).
*/
func (ri *RangeIndex) Resync(id util.ID, values []interface{}) {
	ri.Remove(id)

	best, ok := ri.bestOrderable(values)
	if !ok {
		return
	}

	ri.insert(rangeEntry{value: best, id: id})
	ri.current[id] = best
}

func (ri *RangeIndex) bestOrderable(values []interface{}) (float64, bool) {
	found := false
	var best float64
	for _, v := range values {
		f, ok := ri.coerce.CoerceOrdered(v)
		if !ok {
			continue
		}
		if !found || f < best {
			best = f
			found = true
		}
	}
	return best, found
}

/*
Remove deletes id from this index, if present.
*/
func (ri *RangeIndex) Remove(id util.ID) {
	v, ok := ri.current[id]
	if !ok {
		return
	}
	delete(ri.current, id)

	lo := sort.Search(len(ri.entries), func(i int) bool {
		return ri.entries[i].value >= v
	})
	for i := lo; i < len(ri.entries) && ri.entries[i].value == v; i++ {
		if ri.entries[i].id == id {
			ri.entries = append(ri.entries[:i], ri.entries[i+1:]...)
			return
		}
	}
}

// insert keeps entries sorted by value, ties broken by ascending id
// (§4.7), rather than by insertion order.
func (ri *RangeIndex) insert(e rangeEntry) {
	i := sort.Search(len(ri.entries), func(i int) bool {
		if ri.entries[i].value != e.value {
			return ri.entries[i].value > e.value
		}
		return ri.entries[i].id > e.id
	})
	ri.entries = append(ri.entries, rangeEntry{})
	copy(ri.entries[i+1:], ri.entries[i:])
	ri.entries[i] = e
}

/*
Bound describes a half-open or closed range query bound. A nil Min means
unbounded below; a nil Max means unbounded above.
*/
type Bound struct {
	Min, Max     *float64
	MinInclusive bool
	MaxInclusive bool
}

/*
Scan returns the elements whose indexed value satisfies b, in ascending
value order (so a caller asking for a range query gets the spec's
"ascending by the range key" default ordering, §4.8, without an extra
sort stage).
*/
func (ri *RangeIndex) Scan(b Bound) []util.ID {
	lo := 0
	if b.Min != nil {
		if b.MinInclusive {
			lo = sort.Search(len(ri.entries), func(i int) bool { return ri.entries[i].value >= *b.Min })
		} else {
			lo = sort.Search(len(ri.entries), func(i int) bool { return ri.entries[i].value > *b.Min })
		}
	}

	hi := len(ri.entries)
	if b.Max != nil {
		if b.MaxInclusive {
			hi = sort.Search(len(ri.entries), func(i int) bool { return ri.entries[i].value > *b.Max })
		} else {
			hi = sort.Search(len(ri.entries), func(i int) bool { return ri.entries[i].value >= *b.Max })
		}
	}

	if lo >= hi {
		return nil
	}

	ret := make([]util.ID, hi-lo)
	for i := lo; i < hi; i++ {
		ret[i-lo] = ri.entries[i].id
	}
	return ret
}

/*
Len returns the number of elements currently entered into this index,
used by the planner as a selectivity estimate (§4.8).
*/
func (ri *RangeIndex) Len() int { return len(ri.entries) }
