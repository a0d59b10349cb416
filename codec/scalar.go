/*
 * GraphCore
 *
 * Copyright 2026 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package codec

import (
	"strconv"

	"github.com/krotik/graphcore/graph/util"
)

/*
Scalar is a type-marked value: {"t": marker, "v": exact text}. Keeping
the marker alongside the value makes the document self-describing
independent of encoding/json's own type inference (a JSON number alone
cannot distinguish int32 from float64, for instance), satisfying the
"exact textual representation" round-trip rule of §6.
*/
type Scalar struct {
	Type  string `json:"t"`
	Value string `json:"v"`
}

// Recognized scalar type markers.
const (
	TypeInt32  = "i32"
	TypeInt64  = "i64"
	TypeFloat32 = "f32"
	TypeFloat64 = "f64"
	TypeBool   = "bool"
	TypeString = "string"
)

/*
EncodeScalar renders a Go property value as a Scalar. Integers narrower
than int32 are widened to i32; an int is written as i32 when its value
fits in 32 bits and as i64 otherwise; unsigned integers are treated as i64,
which covers the recognized domain without adding unsigned markers the
format does not define.
*/
func EncodeScalar(v interface{}) (Scalar, error) {
	switch n := v.(type) {
	case int32:
		return Scalar{Type: TypeInt32, Value: strconv.FormatInt(int64(n), 10)}, nil
	case int:
		if int64(n) != int64(int32(n)) {
			return Scalar{Type: TypeInt64, Value: strconv.FormatInt(int64(n), 10)}, nil
		}
		return Scalar{Type: TypeInt32, Value: strconv.FormatInt(int64(n), 10)}, nil
	case int8:
		return Scalar{Type: TypeInt32, Value: strconv.FormatInt(int64(n), 10)}, nil
	case int16:
		return Scalar{Type: TypeInt32, Value: strconv.FormatInt(int64(n), 10)}, nil
	case int64:
		return Scalar{Type: TypeInt64, Value: strconv.FormatInt(n, 10)}, nil
	case uint:
		return Scalar{Type: TypeInt64, Value: strconv.FormatUint(uint64(n), 10)}, nil
	case uint8:
		return Scalar{Type: TypeInt64, Value: strconv.FormatUint(uint64(n), 10)}, nil
	case uint16:
		return Scalar{Type: TypeInt64, Value: strconv.FormatUint(uint64(n), 10)}, nil
	case uint32:
		return Scalar{Type: TypeInt64, Value: strconv.FormatUint(uint64(n), 10)}, nil
	case uint64:
		return Scalar{Type: TypeInt64, Value: strconv.FormatUint(n, 10)}, nil
	case util.ID:
		return Scalar{Type: TypeInt64, Value: strconv.FormatUint(uint64(n), 10)}, nil
	case float32:
		return Scalar{Type: TypeFloat32, Value: strconv.FormatFloat(float64(n), 'g', -1, 32)}, nil
	case float64:
		return Scalar{Type: TypeFloat64, Value: strconv.FormatFloat(n, 'g', -1, 64)}, nil
	case bool:
		return Scalar{Type: TypeBool, Value: strconv.FormatBool(n)}, nil
	case string:
		return Scalar{Type: TypeString, Value: n}, nil
	}
	return Scalar{}, &util.GraphError{Type: util.ErrUnsupportedScalarType,
		Detail: "value has no recognized scalar encoding"}
}

/*
DecodeScalar parses a Scalar back into a Go property value of the type
its marker names. An unrecognized marker fails with
ErrUnsupportedScalarType.
*/
func DecodeScalar(s Scalar) (interface{}, error) {
	switch s.Type {
	case TypeInt32:
		n, err := strconv.ParseInt(s.Value, 10, 32)
		if err != nil {
			return nil, malformed("i32 value %q: %s", s.Value, err)
		}
		return int32(n), nil
	case TypeInt64:
		n, err := strconv.ParseInt(s.Value, 10, 64)
		if err != nil {
			return nil, malformed("i64 value %q: %s", s.Value, err)
		}
		return n, nil
	case TypeFloat32:
		f, err := strconv.ParseFloat(s.Value, 32)
		if err != nil {
			return nil, malformed("f32 value %q: %s", s.Value, err)
		}
		return float32(f), nil
	case TypeFloat64:
		f, err := strconv.ParseFloat(s.Value, 64)
		if err != nil {
			return nil, malformed("f64 value %q: %s", s.Value, err)
		}
		return f, nil
	case TypeBool:
		b, err := strconv.ParseBool(s.Value)
		if err != nil {
			return nil, malformed("bool value %q: %s", s.Value, err)
		}
		return b, nil
	case TypeString:
		return s.Value, nil
	}
	return nil, &util.GraphError{Type: util.ErrUnsupportedScalarType,
		Detail: "unrecognized scalar type marker " + s.Type}
}
