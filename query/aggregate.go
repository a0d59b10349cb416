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

import "github.com/krotik/graphcore/graph/util"

/*
Aggregate computes a single scalar over the values a caller has already
extracted from a query result (e.g. one value per matching vertex under
some key). Aggregation is deliberately decoupled from the executor: a
caller runs QueryVertices/QueryEdges, extracts the values it cares about,
then calls the Aggregate it wants - there is no SQL-style GROUP BY
surface (Non-goals, §1), only these six reducers over a value slice.
*/
type Aggregate string

const (
	Count         Aggregate = "count"
	DistinctCount Aggregate = "distinct_count"
	Min           Aggregate = "min"
	Max           Aggregate = "max"
	Sum           Aggregate = "sum"
	Avg           Aggregate = "avg"
)

/*
Compute reduces values under agg. Count and DistinctCount always
succeed (an empty slice counts as zero); Min/Max/Sum/Avg only consider
values that coerce to an ordered number (CoerceOrdered) and report
ok=false if none do, since there is no meaningful numeric reduction of
zero numbers.
*/
func Compute(coerce *util.Coercion, agg Aggregate, values []interface{}) (float64, bool) {
	switch agg {
	case Count:
		return float64(len(values)), true

	case DistinctCount:
		seen := make(map[string]bool, len(values))
		for _, v := range values {
			seen[coerce.CanonicalKey(v)] = true
		}
		return float64(len(seen)), true

	case Min, Max, Sum, Avg:
		var nums []float64
		for _, v := range values {
			if f, ok := coerce.CoerceOrdered(v); ok {
				nums = append(nums, f)
			}
		}
		if len(nums) == 0 {
			return 0, false
		}
		switch agg {
		case Min:
			m := nums[0]
			for _, f := range nums[1:] {
				if f < m {
					m = f
				}
			}
			return m, true
		case Max:
			m := nums[0]
			for _, f := range nums[1:] {
				if f > m {
					m = f
				}
			}
			return m, true
		case Sum:
			var s float64
			for _, f := range nums {
				s += f
			}
			return s, true
		case Avg:
			var s float64
			for _, f := range nums {
				s += f
			}
			return s / float64(len(nums)), true
		}
	}

	return 0, false
}
