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
Package query implements the property-query engine (C8): a programmatic
Criterion algebra, a planner that chooses between an index probe and a
full scan, a lazy deduplicating executor, and aggregations. The Criterion
node shapes are grounded on the operator set of EliasDB's WHERE clause
runtime (eql/interpreter/where.go: equality, range comparisons, string
contains, regexp, boolean combinators) translated into a value tree a
caller builds directly in Go, instead of a parsed and interpreted string
grammar - the query engine is explicitly a programmatic API, not a
language surface (Non-goals).
*/
package query

import "github.com/krotik/graphcore/graph/data"

/*
Criterion is the sum type every predicate node satisfies. Query-engine
predicates collapse dynamic dispatch over many criterion kinds into one
closed variant set, per the REDESIGN FLAGS tagged-variant note, mirrored
here from data.Element's own Kind-tagged design.
*/
type Criterion interface {
	criterion()
}

/*
Exact matches an element with some property under key whose value equals
v under coerced comparison (C10).
*/
type Exact struct {
	Key   string
	Value interface{}
}

func (Exact) criterion() {}

/*
Range matches an element with some numeric-coerced value of key lying in
the interval bounded by Lo/Hi (either may be nil for unbounded).
*/
type Range struct {
	Key         string
	Lo, Hi      *float64
	LoInclusive bool
	HiInclusive bool
}

func (Range) criterion() {}

/*
Exists matches an element that has at least one value under key.
*/
type Exists struct{ Key string }

func (Exists) criterion() {}

/*
NotExists matches an element that has no value under key.
*/
type NotExists struct{ Key string }

func (NotExists) criterion() {}

/*
Contains matches an element whose string-coerced value under key
contains Substr.
*/
type Contains struct {
	Key        string
	Substr     string
	IgnoreCase bool
}

func (Contains) criterion() {}

/*
Regex matches an element whose string-coerced value under key matches
Pattern (RE2 syntax, compiled by match each time the criterion is
evaluated against an element).
*/
type Regex struct {
	Key     string
	Pattern string
}

func (Regex) criterion() {}

/*
And is a conjunction of criteria; an empty And matches everything.
*/
type And struct{ Criteria []Criterion }

func (And) criterion() {}

/*
Or is a disjunction of criteria; an empty Or matches nothing.
*/
type Or struct{ Criteria []Criterion }

func (Or) criterion() {}

/*
Not negates a single criterion.
*/
type Not struct{ Criterion Criterion }

func (Not) criterion() {}

/*
MetaEq matches a vertex that has some instance of OuterKey carrying a
meta-property MetaKey equal (coerced) to Value.
*/
type MetaEq struct {
	OuterKey string
	MetaKey  string
	Value    interface{}
}

func (MetaEq) criterion() {}

/*
CardinalityEq matches an element with some instance of Key declared with
cardinality Card.
*/
type CardinalityEq struct {
	Key  string
	Card data.Cardinality
}

func (CardinalityEq) criterion() {}
