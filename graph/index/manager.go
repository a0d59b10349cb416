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

	"github.com/krotik/common/datautil"
	"github.com/krotik/graphcore/graph/util"
)

/*
Manager owns every index registered for one element domain (vertices or
edges) and keeps a selectivity-statistics cache the query planner
consults before choosing a strategy (§4.8). One Manager exists per
domain inside the graph container (C4), mirroring EliasDB's separate
node and edge index managers.
*/
type Manager struct {
	source     Source
	single     map[string]*SingleKeyIndex
	composite  map[string]*CompositeIndex // keyed by the joined key names, see compositeName
	rangeIdx   map[string]*RangeIndex
	statsCache *datautil.MapCache
}

/*
NewManager creates an index manager backed by source, which supplies the
live property values an index resyncs from.
*/
func NewManager(source Source) *Manager {
	return &Manager{
		source:     source,
		single:     make(map[string]*SingleKeyIndex),
		composite:  make(map[string]*CompositeIndex),
		rangeIdx:   make(map[string]*RangeIndex),
		statsCache: datautil.NewMapCache(0, 0),
	}
}

/*
CreateSingle registers a single-key index over key, rebuilding it from
every currently live element in the domain (§4.5: "on create(key) the
index rebuilds itself from current state"). It is a no-op if one already
exists.
*/
func (m *Manager) CreateSingle(key string, coerce *util.Coercion) *SingleKeyIndex {
	if idx, ok := m.single[key]; ok {
		return idx
	}
	idx := NewSingleKeyIndex(key, coerce)
	for _, id := range m.source.IDs() {
		idx.Resync(id, m.source.Values(id, key))
	}
	m.single[key] = idx
	m.statsCache.Remove(statKey(singleKind, key))
	return idx
}

/*
CreateComposite registers a composite index over keys, in order,
rebuilding it from current state. It is a no-op if one already exists for
the same ordered tuple.
*/
func (m *Manager) CreateComposite(keys []string, coerce *util.Coercion) *CompositeIndex {
	name := compositeName(keys)
	if idx, ok := m.composite[name]; ok {
		return idx
	}
	idx := NewCompositeIndex(keys, coerce)
	for _, id := range m.source.IDs() {
		idx.Resync(id, func(key string) []interface{} { return m.source.Values(id, key) })
	}
	m.composite[name] = idx
	m.statsCache.Remove(statKey(compositeKind, name))
	return idx
}

/*
CreateRange registers a range index over key, rebuilding it from current
state. It is a no-op if one already exists.
*/
func (m *Manager) CreateRange(key string, coerce *util.Coercion) *RangeIndex {
	if idx, ok := m.rangeIdx[key]; ok {
		return idx
	}
	idx := NewRangeIndex(key, coerce)
	for _, id := range m.source.IDs() {
		idx.Resync(id, m.source.Values(id, key))
	}
	m.rangeIdx[key] = idx
	m.statsCache.Remove(statKey(rangeKind, key))
	return idx
}

/*
DropSingle removes a single-key index.
*/
func (m *Manager) DropSingle(key string) {
	delete(m.single, key)
	m.statsCache.Remove(statKey(singleKind, key))
}

/*
DropComposite removes a composite index over keys.
*/
func (m *Manager) DropComposite(keys []string) {
	name := compositeName(keys)
	delete(m.composite, name)
	m.statsCache.Remove(statKey(compositeKind, name))
}

/*
DropRange removes a range index.
*/
func (m *Manager) DropRange(key string) {
	delete(m.rangeIdx, key)
	m.statsCache.Remove(statKey(rangeKind, key))
}

/*
Single returns the single-key index over key, if one is registered.
*/
func (m *Manager) Single(key string) (*SingleKeyIndex, bool) {
	idx, ok := m.single[key]
	return idx, ok
}

/*
Composite returns the composite index over keys, if one is registered.
*/
func (m *Manager) Composite(keys []string) (*CompositeIndex, bool) {
	idx, ok := m.composite[compositeName(keys)]
	return idx, ok
}

/*
CompositePrefixed returns any registered composite index whose ordered
key tuple starts with prefix, used by the planner to recognize that a
lookup on (dept) can be served by a composite index defined over
(dept, city).
*/
func (m *Manager) CompositePrefixed(prefix []string) (*CompositeIndex, bool) {
	for _, idx := range m.composite {
		if len(idx.keys) < len(prefix) {
			continue
		}
		match := true
		for i, k := range prefix {
			if idx.keys[i] != k {
				match = false
				break
			}
		}
		if match {
			return idx, true
		}
	}
	return nil, false
}

/*
Range returns the range index over key, if one is registered.
*/
func (m *Manager) Range(key string) (*RangeIndex, bool) {
	idx, ok := m.rangeIdx[key]
	return idx, ok
}

/*
IndexedKeys reports every key, or key tuple for a composite index,
currently backed by a registered index, for an is_indexed-style
introspection query (§4.5).
*/
func (m *Manager) IndexedKeys() (single []string, composite [][]string, rangeKeys []string) {
	for k := range m.single {
		single = append(single, k)
	}
	for _, idx := range m.composite {
		composite = append(composite, idx.Keys())
	}
	for k := range m.rangeIdx {
		rangeKeys = append(rangeKeys, k)
	}
	return
}

/*
Resync brings every registered index up to date for id. keys names the
keys the caller changed; it is not consulted, and every registered index
is recomputed from the source. It is called after every property
mutation on id (§4.4 mutation order, index maintenance step).
*/
func (m *Manager) Resync(id util.ID, keys []string) {
	for key, idx := range m.single {
		idx.Resync(id, m.source.Values(id, key))
	}
	for key, idx := range m.rangeIdx {
		idx.Resync(id, m.source.Values(id, key))
	}
	for _, idx := range m.composite {
		idx.Resync(id, func(key string) []interface{} { return m.source.Values(id, key) })
	}
}

/*
Remove deletes id from every registered index, used when an element is
removed from the graph.
*/
func (m *Manager) Remove(id util.ID) {
	for _, idx := range m.single {
		idx.Remove(id)
	}
	for _, idx := range m.rangeIdx {
		idx.Remove(id)
	}
	for _, idx := range m.composite {
		idx.Remove(id)
	}
}

/*
Selectivity returns a cached distinct-value-count estimate for an index,
computing and caching it on first request. The cache is invalidated
whenever the index it describes is created, dropped or rebuilt; it is
deliberately NOT invalidated on ordinary Resync calls, since a full
rebuild is the only event the planner needs to react to (§4.8) and
keeping the count exactly current on every mutation would defeat the
point of caching it.
*/
func (m *Manager) Selectivity(kind string, name string) (int, bool) {
	k := statKey(kind, name)
	if v, ok := m.statsCache.Get(k); ok {
		return v.(int), true
	}

	var n int
	switch kind {
	case singleKind:
		idx, ok := m.single[name]
		if !ok {
			return 0, false
		}
		n = idx.DistinctValueCount()
	case compositeKind:
		idx, ok := m.composite[name]
		if !ok {
			return 0, false
		}
		n = idx.DistinctValueCount()
	case rangeKind:
		idx, ok := m.rangeIdx[name]
		if !ok {
			return 0, false
		}
		n = idx.Len()
	default:
		return 0, false
	}

	m.statsCache.Put(k, n)
	return n, true
}

/*
InvalidateStats drops every cached selectivity estimate, forcing the
next Selectivity call for each index to recompute it. Call this after a
bulk load or snapshot import, where many elements change without an
individual Resync per mutation.
*/
func (m *Manager) InvalidateStats() {
	m.statsCache = datautil.NewMapCache(0, 0)
}

const (
	singleKind    = "single"
	compositeKind = "composite"
	rangeKind     = "range"
)

func statKey(kind, name string) string { return kind + ":" + name }

func compositeName(keys []string) string { return strings.Join(keys, "\x01") }
