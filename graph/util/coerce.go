/*
 * GraphCore
 *
 * Copyright 2026 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package util

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/krotik/common/stringutil"
)

/*
Coercion counts coercion attempts and failures for diagnostics (C10). A
single process-wide Coercion exists per Graph; it is never shared across
Graph instances so multiple cores can run independently (§9).
*/
type Coercion struct {
	attempts int64
	failures int64
}

/*
NewCoercion creates a new, zeroed Coercion counter.
*/
func NewCoercion() *Coercion {
	return &Coercion{}
}

/*
Attempts returns the number of coercion comparisons performed so far.
*/
func (c *Coercion) Attempts() int64 { return atomic.LoadInt64(&c.attempts) }

/*
Failures returns the number of coercion comparisons that could not produce
a result so far.
*/
func (c *Coercion) Failures() int64 { return atomic.LoadInt64(&c.failures) }

func (c *Coercion) record(ok bool) {
	atomic.AddInt64(&c.attempts, 1)
	if !ok {
		atomic.AddInt64(&c.failures, 1)
	}
}

/*
Equal reports whether a and b are equal under coerced comparison (rules
1-4 of C10). Equal never fails: rule 4 always succeeds for equality by
falling back to string comparison.
*/
func (c *Coercion) Equal(a, b interface{}) bool {
	ok := c.equal(a, b)
	c.record(true)
	return ok
}

func (c *Coercion) equal(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	// Rule 1: same primitive category compares directly.
	if af, aok := asFloat(a); aok {
		if bf, bok := asFloat(b); bok {
			// Rule 2: both numeric, widen and compare.
			return af == bf
		}
	}

	if as, aok := a.(string); aok {
		if bs, bok := b.(string); bok {
			return as == bs
		}
	}

	if ab, aok := a.(bool); aok {
		if bb, bok := b.(bool); bok {
			return ab == bb
		}
	}

	// Rule 3: exactly one string, the other numeric/bool - parse the
	// string into the other side's type and compare.
	if ok, eq := c.crossEqual(a, b); ok {
		return eq
	}
	if ok, eq := c.crossEqual(b, a); ok {
		return eq
	}

	// Rule 4: fall back to string comparison.
	return fmt.Sprint(a) == fmt.Sprint(b)
}

/*
crossEqual implements rule 3 for one ordering of (stringSide, otherSide).
The first return value reports whether the rule applied at all.
*/
func (c *Coercion) crossEqual(stringSide, otherSide interface{}) (applied bool, equal bool) {
	s, ok := stringSide.(string)
	if !ok {
		return false, false
	}

	switch otherSide.(type) {
	case bool:
		ob := otherSide.(bool)
		if stringutil.IsTrueValue(s) == ob {
			return true, true
		}
		// still applied - just not equal, unless s does not parse as a
		// recognizable boolean at all, in which case rule 3 fails and we
		// fall through to rule 4 at the caller.
		if isBooleanLiteral(s) {
			return true, false
		}
		return false, false
	default:
		if of, ok := asFloat(otherSide); ok {
			if sf, err := strconv.ParseFloat(s, 64); err == nil {
				return true, sf == of
			}
			return false, false
		}
	}

	return false, false
}

func isBooleanLiteral(s string) bool {
	switch s {
	case "true", "false", "yes", "no", "on", "off", "1", "0",
		"ok", "active", "enabled":
		return true
	}
	return false
}

/*
Compare orders a relative to b under coerced ordering. It returns
(-1|0|1, true) on success, or (0, false) if the values cannot be ordered
(rule 4 never orders, only equates).
*/
func (c *Coercion) Compare(a, b interface{}) (int, bool) {
	af, aok := c.CoerceOrdered(a)
	bf, bok := c.CoerceOrdered(b)

	ok := aok && bok
	c.record(ok)

	if !ok {
		return 0, false
	}

	switch {
	case af < bf:
		return -1, true
	case af > bf:
		return 1, true
	default:
		return 0, true
	}
}

/*
CoerceOrdered coerces a single value into a float64 for ordering purposes
(range queries, range indices, numeric aggregations). Strings parse as
numbers; booleans do not participate in ordering.
*/
func (c *Coercion) CoerceOrdered(v interface{}) (float64, bool) {
	if f, ok := asFloat(v); ok {
		return f, true
	}
	if s, ok := v.(string); ok {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

/*
asFloat widens any of the recognized numeric primitive types to float64.
*/
func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case ID:
		return float64(n), true
	}
	return 0, false
}

/*
CoerceString renders v as its string representation, the way Contains and
Regex criteria need it (C10 consumers).
*/
func CoerceString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

/*
CanonicalKey returns a bucket key for v such that two values sharing a
key are always coerced-equal (Equal never reports a false positive across
buckets), and such that the common cross-type cases tested by this spec
(a numeric-looking string against a real number, §8 scenario 6) land in
the same bucket. Indices (C5/C6/C7) use this to group values so lookups
are O(1)-ish instead of an O(n) coerced-equality scan.

The priority is numeric, then boolean, then string: a numeric-looking
string buckets with numbers rather than with booleans, since the
cross-category bridge a string can form (rule 3) is ambiguous when the
string is simultaneously numeric-looking and a boolean literal word (e.g.
"1"). Equal() remains the source of truth; CanonicalKey is a bucketing
heuristic for the common cases, not a full reproduction of rule 3's
pairwise, non-transitive bridging, so index-assisted queries covering
that corner case fall back to the executor's scan path rather than to an
incorrect index probe (see the planner, which only trusts CanonicalKey
for single, unambiguous values).
*/
func (c *Coercion) CanonicalKey(v interface{}) string {
	if v == nil {
		return "\x00nil"
	}
	if f, ok := asFloat(v); ok {
		return "\x00num:" + strconv.FormatFloat(f, 'g', -1, 64)
	}
	if b, ok := v.(bool); ok {
		return "\x00bool:" + strconv.FormatBool(b)
	}
	if s, ok := v.(string); ok {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return "\x00num:" + strconv.FormatFloat(f, 'g', -1, 64)
		}
		if isBooleanLiteral(s) {
			return "\x00bool:" + strconv.FormatBool(stringutil.IsTrueValue(s))
		}
		return "\x00str:" + s
	}
	return "\x00str:" + fmt.Sprint(v)
}
