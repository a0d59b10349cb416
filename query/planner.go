/*
 * GraphCore
 *
 * Copyright 2026 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package query

import (
	"github.com/krotik/graphcore/graph/index"
	"github.com/krotik/graphcore/graph/util"
)

/*
plan is the outcome of planning a Criterion against one element domain's
index.Manager: either a candidate set of ids narrower than a full scan,
or an instruction to scan everything. A plan's candidate ids are always
a superset of the true answer - match still re-verifies the whole
criterion against every candidate, so a wrong or stale index can never
produce an incorrect result, only a slower one.
*/
type plan struct {
	ids     []util.ID
	scan    bool // true: ids is meaningless, caller must iterate every element
	ordered bool // true: ids are already in the range index's ascending value order
}

/*
planFor chooses an execution strategy for c against mgr, preferring a
composite index over the longest available prefix of Exact
sub-criteria, then whichever single-key index (for an Exact
sub-criterion) or range index (for a Range sub-criterion) has the
highest Selectivity, and otherwise a full scan. This mirrors
eql/interpreter/lookup.go's and traversal.go's "try an index lookup
first, fall back to a traversal/scan" shape, generalized from EliasDB's
fixed node-key lookup to an open criterion tree.
*/
func planFor(mgr *index.Manager, c Criterion) plan {
	switch n := c.(type) {
	case Exact:
		if idx, ok := mgr.Single(n.Key); ok {
			return plan{ids: idx.Lookup(n.Value)}
		}
		return plan{scan: true}

	case Range:
		if idx, ok := mgr.Range(n.Key); ok {
			return plan{ids: idx.Scan(toBound(n)), ordered: true}
		}
		return plan{scan: true}

	case And:
		return planAnd(mgr, n.Criteria)

	case Or:
		return planOr(mgr, n.Criteria)

	default:
		// Exists/NotExists/Contains/Regex/Not/MetaEq/CardinalityEq carry
		// no indexable shape on their own; wrapped in an And they can
		// still ride along as a post-filter over another branch's
		// candidate set (see planAnd).
		return plan{scan: true}
	}
}

/*
planAnd looks for the most selective way to narrow a conjunction: a
composite index spanning as many of the conjunction's Exact children as
possible (tried from the longest prefix down, since CompositePrefixed
only recognizes an exact, in-order prefix match), then, among the
single-key indices of the Exact children and the range indices of the
Range children, the one with the highest Selectivity (a single-key
index wins a tie). Every sub-criterion, including ones the chosen index
already accounts for, is still re-checked by match - the index only
prunes the scan space.
*/
func planAnd(mgr *index.Manager, children []Criterion) plan {
	var exactKeys []string
	var exactVals []interface{}
	var ranges []Range

	for _, ch := range children {
		switch v := ch.(type) {
		case Exact:
			exactKeys = append(exactKeys, v.Key)
			exactVals = append(exactVals, v.Value)
		case Range:
			ranges = append(ranges, v)
		}
	}

	for n := len(exactKeys); n >= 2; n-- {
		prefix := exactKeys[:n]
		if idx, ok := mgr.CompositePrefixed(prefix); ok {
			return plan{ids: idx.LookupPrefix(exactVals[:n])}
		}
	}

	type candidate struct {
		ids         []util.ID
		ordered     bool
		selectivity int
	}
	var best *candidate

	consider := func(c candidate) {
		if best == nil || c.selectivity > best.selectivity {
			cp := c
			best = &cp
		}
	}

	for i, key := range exactKeys {
		if idx, ok := mgr.Single(key); ok {
			sel, _ := mgr.Selectivity("single", key)
			consider(candidate{ids: idx.Lookup(exactVals[i]), selectivity: sel})
		}
	}
	for _, r := range ranges {
		if idx, ok := mgr.Range(r.Key); ok {
			sel, _ := mgr.Selectivity("range", r.Key)
			consider(candidate{ids: idx.Scan(toBound(r)), ordered: true, selectivity: sel})
		}
	}

	if best == nil {
		return plan{scan: true}
	}
	return plan{ids: best.ids, ordered: best.ordered}
}

/*
planOr plans each branch independently and unions the candidate id sets;
if any branch cannot be planned, the whole disjunction falls back to a
scan, since a partial index-assisted union would silently miss elements
matched only by the unplanned branch.
*/
func planOr(mgr *index.Manager, children []Criterion) plan {
	seen := make(map[util.ID]bool)
	var union []util.ID

	for _, ch := range children {
		p := planFor(mgr, ch)
		if p.scan {
			return plan{scan: true}
		}
		for _, id := range p.ids {
			if !seen[id] {
				seen[id] = true
				union = append(union, id)
			}
		}
	}

	return plan{ids: union}
}

func toBound(r Range) index.Bound {
	return index.Bound{
		Min:          r.Lo,
		Max:          r.Hi,
		MinInclusive: r.LoInclusive,
		MaxInclusive: r.HiInclusive,
	}
}
