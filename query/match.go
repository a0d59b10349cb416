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
	"regexp"
	"strconv"
	"strings"

	"github.com/krotik/graphcore/graph/data"
	"github.com/krotik/graphcore/graph/util"
)

/*
Validate reports whether every criterion in c's tree can actually be
evaluated, surfacing InvalidArgument for a malformed Regex pattern (§7)
instead of letting it silently evaluate to no-match. Callers run this
once before executing a query, so match itself never has to carry an
error return through its recursion.
*/
func Validate(c Criterion) error {
	switch n := c.(type) {
	case Regex:
		if _, err := regexp.Compile(n.Pattern); err != nil {
			return &util.GraphError{Type: util.ErrInvalidArgument,
				Detail: "malformed regex pattern " + strconv.Quote(n.Pattern) + ": " + err.Error()}
		}

	case And:
		for _, child := range n.Criteria {
			if err := Validate(child); err != nil {
				return err
			}
		}

	case Or:
		for _, child := range n.Criteria {
			if err := Validate(child); err != nil {
				return err
			}
		}

	case Not:
		return Validate(n.Criterion)
	}

	return nil
}

/*
context carries everything match needs to evaluate a Criterion against
one element, without committing to whether that element is a vertex or
an edge. vertexPropsOf is nil for an edge (edges have no
meta-properties or cardinality), in which case MetaEq and CardinalityEq
always evaluate false rather than panicking - the same "criterion simply
does not apply" behavior a string query language would give for an
attribute that does not exist on the element kind.
*/
type context struct {
	coerce        *util.Coercion
	valuesOf      func(key string) []interface{}
	vertexPropsOf func(key string) []*data.VertexProperty
}

func vertexContext(coerce *util.Coercion, v *data.Vertex) context {
	return context{
		coerce: coerce,
		valuesOf: func(key string) []interface{} {
			vps := v.Values(key)
			vals := make([]interface{}, len(vps))
			for i, vp := range vps {
				vals[i] = vp.Value()
			}
			return vals
		},
		vertexPropsOf: v.Values,
	}
}

func edgeContext(coerce *util.Coercion, e *data.Edge) context {
	return context{
		coerce: coerce,
		valuesOf: func(key string) []interface{} {
			if v, ok := e.Properties().Get(key); ok {
				return []interface{}{v}
			}
			return nil
		},
	}
}

/*
match reports whether element c is satisfied under ctx. It is the
single recursive evaluator every Criterion variant funnels through,
mirroring the way eql/interpreter/where.go's CondRuntime.CondEval
recurses over an AST - here over a value tree instead of a parsed one.
*/
func match(c Criterion, ctx context) bool {
	switch n := c.(type) {
	case Exact:
		for _, v := range ctx.valuesOf(n.Key) {
			if ctx.coerce.Equal(v, n.Value) {
				return true
			}
		}
		return false

	case Range:
		for _, v := range ctx.valuesOf(n.Key) {
			f, ok := ctx.coerce.CoerceOrdered(v)
			if !ok {
				continue
			}
			if inBound(f, n) {
				return true
			}
		}
		return false

	case Exists:
		return len(ctx.valuesOf(n.Key)) > 0

	case NotExists:
		return len(ctx.valuesOf(n.Key)) == 0

	case Contains:
		needle := n.Substr
		if n.IgnoreCase {
			needle = strings.ToLower(needle)
		}
		for _, v := range ctx.valuesOf(n.Key) {
			s := util.CoerceString(v)
			if n.IgnoreCase {
				s = strings.ToLower(s)
			}
			if strings.Contains(s, needle) {
				return true
			}
		}
		return false

	case Regex:
		re, err := regexp.Compile(n.Pattern)
		if err != nil {
			return false
		}
		for _, v := range ctx.valuesOf(n.Key) {
			if re.MatchString(util.CoerceString(v)) {
				return true
			}
		}
		return false

	case And:
		for _, child := range n.Criteria {
			if !match(child, ctx) {
				return false
			}
		}
		return true

	case Or:
		if len(n.Criteria) == 0 {
			return false
		}
		for _, child := range n.Criteria {
			if match(child, ctx) {
				return true
			}
		}
		return false

	case Not:
		return !match(n.Criterion, ctx)

	case MetaEq:
		if ctx.vertexPropsOf == nil {
			return false
		}
		for _, vp := range ctx.vertexPropsOf(n.OuterKey) {
			if mv, ok := vp.Meta().Get(n.MetaKey); ok && ctx.coerce.Equal(mv, n.Value) {
				return true
			}
		}
		return false

	case CardinalityEq:
		if ctx.vertexPropsOf == nil {
			return false
		}
		for _, vp := range ctx.vertexPropsOf(n.Key) {
			if vp.Cardinality() == n.Card {
				return true
			}
		}
		return false
	}

	return false
}

func inBound(f float64, r Range) bool {
	if r.Lo != nil {
		if r.LoInclusive {
			if f < *r.Lo {
				return false
			}
		} else if f <= *r.Lo {
			return false
		}
	}
	if r.Hi != nil {
		if r.HiInclusive {
			if f > *r.Hi {
				return false
			}
		} else if f >= *r.Hi {
			return false
		}
	}
	return true
}
