// Copyright 2024 Aerospike, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package luaval

import (
	"math"

	lua "github.com/yuin/gopher-lua"
)

// Shape is the structural classification of a Lua table.
type Shape int

const (
	// ShapeEmpty is a table without entries. Its meaning depends on the call site.
	ShapeEmpty Shape = iota
	// ShapeSequence is a table whose keys are exactly the integers 1..n.
	ShapeSequence
	// ShapeMapping is a table whose keys are all strings.
	ShapeMapping
	// ShapeMixed is a table that has both integer and string keys.
	ShapeMixed
	// ShapeInvalid covers holes, non integral numeric keys and keys of other types.
	ShapeInvalid
)

func (s Shape) String() string {
	switch s {
	case ShapeEmpty:
		return "empty"
	case ShapeSequence:
		return "array"
	case ShapeMapping:
		return "hash"
	case ShapeMixed:
		return "mixed"
	default:
		return "invalid"
	}
}

// Classify inspects the keys of tb.
func Classify(tb *lua.LTable) Shape {
	var (
		numeric, str, other int
		maxIndex            float64
		badIndex            bool
	)

	tb.ForEach(func(k, _ lua.LValue) {
		switch key := k.(type) {
		case lua.LNumber:
			numeric++

			f := float64(key)
			if f < 1 || f != math.Trunc(f) {
				badIndex = true
				return
			}

			if f > maxIndex {
				maxIndex = f
			}
		case lua.LString:
			str++
		default:
			other++
		}
	})

	switch {
	case numeric == 0 && str == 0 && other == 0:
		return ShapeEmpty
	case other > 0:
		return ShapeInvalid
	case numeric > 0 && str > 0:
		return ShapeMixed
	case str > 0:
		return ShapeMapping
	case badIndex || maxIndex != float64(numeric):
		return ShapeInvalid
	default:
		return ShapeSequence
	}
}

// toInteger returns n as an int64 when it is integral and in range.
func toInteger(n lua.LNumber) (int64, bool) {
	f := float64(n)
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}

	return int64(f), true
}
