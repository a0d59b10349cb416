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
	"testing"

	"github.com/krotik/graphcore/graph/util"
)

func idsEqual(t *testing.T, got []util.ID, want ...util.ID) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	seen := make(map[util.ID]bool, len(want))
	for _, id := range want {
		seen[id] = true
	}
	for _, id := range got {
		if !seen[id] {
			t.Fatalf("unexpected id %v in %v (want %v)", id, got, want)
		}
	}
}

func TestSingleKeyIndexResyncIsSelfHealing(t *testing.T) {
	idx := NewSingleKeyIndex("dept", util.NewCoercion())

	idx.Resync(1, []interface{}{"eng"})
	idx.Resync(2, []interface{}{"eng"})
	idsEqual(t, idx.Lookup("eng"), 1, 2)

	// Moving id 1 to "sales" must remove it from the old bucket.
	idx.Resync(1, []interface{}{"sales"})
	idsEqual(t, idx.Lookup("eng"), 2)
	idsEqual(t, idx.Lookup("sales"), 1)

	idx.Remove(2)
	idsEqual(t, idx.Lookup("eng"))
}

func TestSingleKeyIndexListCardinalityNoDuplicateBuckets(t *testing.T) {
	idx := NewSingleKeyIndex("tag", util.NewCoercion())
	idx.Resync(1, []interface{}{"a", "a", "b"})

	if idx.DistinctValueCount() != 2 {
		t.Fatalf("expected 2 distinct buckets, got %d", idx.DistinctValueCount())
	}
	idsEqual(t, idx.Lookup("a"), 1)
	idsEqual(t, idx.Lookup("b"), 1)
}

func TestCompositeIndexLookupAndPrefix(t *testing.T) {
	idx := NewCompositeIndex([]string{"dept", "city"}, util.NewCoercion())

	values := map[util.ID]map[string][]interface{}{
		1: {"dept": {"eng"}, "city": {"nyc"}},
		2: {"dept": {"eng"}, "city": {"sf"}},
		3: {"dept": {"sales"}, "city": {"nyc"}},
	}
	for id, vs := range values {
		idx.Resync(id, func(key string) []interface{} { return vs[key] })
	}

	idsEqual(t, idx.Lookup([]interface{}{"eng", "nyc"}), 1)
	idsEqual(t, idx.LookupPrefix([]interface{}{"eng"}), 1, 2)
	idsEqual(t, idx.LookupPrefix([]interface{}{"sales"}), 3)
}

func TestCompositeIndexCrossProductForMultiValuedKey(t *testing.T) {
	idx := NewCompositeIndex([]string{"dept", "city"}, util.NewCoercion())

	idx.Resync(1, func(key string) []interface{} {
		switch key {
		case "dept":
			return []interface{}{"eng", "sales"}
		case "city":
			return []interface{}{"nyc"}
		}
		return nil
	})

	idsEqual(t, idx.Lookup([]interface{}{"eng", "nyc"}), 1)
	idsEqual(t, idx.Lookup([]interface{}{"sales", "nyc"}), 1)
}

func TestCompositeIndexRequiresAllColumns(t *testing.T) {
	idx := NewCompositeIndex([]string{"dept", "city"}, util.NewCoercion())
	idx.Resync(1, func(key string) []interface{} {
		if key == "dept" {
			return []interface{}{"eng"}
		}
		return nil // city missing entirely
	})

	if idx.DistinctValueCount() != 0 {
		t.Fatalf("expected an element missing a column to contribute no bucket, got %d", idx.DistinctValueCount())
	}
}

func TestRangeIndexScanAscendingAndBounds(t *testing.T) {
	idx := NewRangeIndex("age", util.NewCoercion())
	idx.Resync(1, []interface{}{30})
	idx.Resync(2, []interface{}{20})
	idx.Resync(3, []interface{}{40})

	lo := 25.0
	got := idx.Scan(Bound{Min: &lo, MinInclusive: true})
	if len(got) != 2 {
		t.Fatalf("expected 2 matches >= 25, got %d", len(got))
	}
	if got[0] != 1 || got[1] != 3 {
		t.Fatalf("expected ascending value order [1,3], got %v", got)
	}
}

func TestRangeIndexTiesBrokenByAscendingID(t *testing.T) {
	idx := NewRangeIndex("age", util.NewCoercion())
	// Inserted out of id order, all sharing the same value - the scan
	// order must come out sorted by id, not by insertion order.
	idx.Resync(3, []interface{}{30})
	idx.Resync(1, []interface{}{30})
	idx.Resync(2, []interface{}{30})

	lo := 0.0
	got := idx.Scan(Bound{Min: &lo, MinInclusive: true})
	want := []util.ID{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected ties broken by ascending id %v, got %v", want, got)
		}
	}
}

func TestRangeIndexRemoveAndResyncKeepsSmallestOrderable(t *testing.T) {
	idx := NewRangeIndex("score", util.NewCoercion())
	idx.Resync(1, []interface{}{"not-a-number", 10, 5})

	lo := 0.0
	hi := 100.0
	got := idx.Scan(Bound{Min: &lo, MinInclusive: true, Max: &hi, MaxInclusive: true})
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("expected id 1 indexed under its smallest orderable value, got %v", got)
	}

	idx.Remove(1)
	if idx.Len() != 0 {
		t.Fatalf("expected index empty after Remove, got len %d", idx.Len())
	}
}

type fakeSource struct {
	values map[util.ID]map[string][]interface{}
}

func (s *fakeSource) Values(id util.ID, key string) []interface{} {
	return s.values[id][key]
}

func (s *fakeSource) IDs() []util.ID {
	ids := make([]util.ID, 0, len(s.values))
	for id := range s.values {
		ids = append(ids, id)
	}
	return ids
}

func TestManagerCreateRebuildsFromExistingElements(t *testing.T) {
	coerce := util.NewCoercion()
	src := &fakeSource{values: map[util.ID]map[string][]interface{}{
		1: {"dept": {"eng"}, "age": {30}},
		2: {"dept": {"sales"}, "age": {40}},
	}}
	mgr := NewManager(src)

	// The elements already exist when each index is created - Create must
	// rebuild from current state rather than starting out empty.
	single := mgr.CreateSingle("dept", coerce)
	idsEqual(t, single.Lookup("eng"), 1)
	idsEqual(t, single.Lookup("sales"), 2)

	rng := mgr.CreateRange("age", coerce)
	if rng.Len() != 2 {
		t.Fatalf("expected range index rebuilt with 2 entries, got %d", rng.Len())
	}

	composite := mgr.CreateComposite([]string{"dept"}, coerce)
	idsEqual(t, composite.Lookup([]interface{}{"eng"}), 1)
}

func TestManagerResyncUpdatesAllRegisteredIndices(t *testing.T) {
	coerce := util.NewCoercion()
	src := &fakeSource{values: map[util.ID]map[string][]interface{}{
		1: {"dept": {"eng"}, "age": {30}},
	}}
	mgr := NewManager(src)
	mgr.CreateSingle("dept", coerce)
	mgr.CreateRange("age", coerce)
	mgr.CreateComposite([]string{"dept"}, coerce)

	mgr.Resync(1, []string{"dept", "age"})

	single, _ := mgr.Single("dept")
	idsEqual(t, single.Lookup("eng"), 1)

	rng, _ := mgr.Range("age")
	if rng.Len() != 1 {
		t.Fatalf("expected range index to contain 1 entry, got %d", rng.Len())
	}

	mgr.Remove(1)
	idsEqual(t, single.Lookup("eng"))
	if rng.Len() != 0 {
		t.Fatalf("expected range index empty after Manager.Remove, got %d", rng.Len())
	}
}

func TestManagerSelectivityCachesAndInvalidates(t *testing.T) {
	coerce := util.NewCoercion()
	src := &fakeSource{values: map[util.ID]map[string][]interface{}{}}
	mgr := NewManager(src)
	mgr.CreateSingle("dept", coerce)

	single, _ := mgr.Single("dept")
	single.Resync(1, []interface{}{"eng"})

	n, ok := mgr.Selectivity("single", "dept")
	if !ok || n != 1 {
		t.Fatalf("expected selectivity 1, got %v (ok=%v)", n, ok)
	}

	single.Resync(2, []interface{}{"sales"})
	// Selectivity is cached and deliberately not refreshed by a plain
	// Resync - it stays at the first-computed value until invalidated.
	n, ok = mgr.Selectivity("single", "dept")
	if !ok || n != 1 {
		t.Fatalf("expected cached selectivity to remain 1, got %v (ok=%v)", n, ok)
	}

	mgr.InvalidateStats()
	n, ok = mgr.Selectivity("single", "dept")
	if !ok || n != 2 {
		t.Fatalf("expected selectivity 2 after invalidation, got %v (ok=%v)", n, ok)
	}
}
