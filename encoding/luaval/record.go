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
	"fmt"

	"github.com/aerospike/aslua/models"
	lua "github.com/yuin/gopher-lua"
)

// BuildRecord converts a table of bin name to value into a write request.
//
// A false bin value marks the bin for deletion. A true bin value is rejected,
// booleans are only accepted inside lists and maps where they become 0 or 1.
func BuildRecord(bins lua.LValue, ttl int64) (*models.Record, error) {
	tb, ok := bins.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%w: got %s", models.ErrNotAMapping, bins.Type())
	}

	if shape := Classify(tb); shape != ShapeMapping {
		return nil, fmt.Errorf("%w: got %s table", models.ErrNotAMapping, shape)
	}

	names := SortedKeys(tb)
	if err := models.ValidateBinCount(len(names)); err != nil {
		return nil, err
	}

	rec, err := models.NewRecord(ttl)
	if err != nil {
		return nil, err
	}

	for _, name := range names {
		if err := models.ValidateBinName(name); err != nil {
			return nil, err
		}

		v, err := binToTyped(tb.RawGetString(name))
		if err != nil {
			return nil, fmt.Errorf("bin %q: %w", name, err)
		}

		rec.Bins[name] = v
	}

	return rec, nil
}

func binToTyped(lv lua.LValue) (any, error) {
	switch v := lv.(type) {
	case lua.LNumber:
		return numberToTyped(v), nil
	case lua.LString:
		return string(v), nil
	case lua.LBool:
		if v {
			return nil, fmt.Errorf("%w: boolean true is not a bin value", models.ErrUnsupportedType)
		}

		return nil, nil
	case *lua.LTable:
		return tableToTyped(v, 1)
	default:
		return nil, fmt.Errorf("%w: %s", models.ErrUnsupportedType, lv.Type())
	}
}

// BinNames converts the stack values from index start to the top into bin names.
func BinNames(L *lua.LState, start int) ([]string, error) {
	top := L.GetTop()
	if start > top {
		return nil, nil
	}

	if err := models.ValidateBinCount(top - start + 1); err != nil {
		return nil, err
	}

	names := make([]string, 0, top-start+1)

	for i := start; i <= top; i++ {
		s, ok := L.Get(i).(lua.LString)
		if !ok {
			return nil, fmt.Errorf("%w: bin name at argument %d must be a string", models.ErrInvalidBinName, i)
		}

		if err := models.ValidateBinName(string(s)); err != nil {
			return nil, err
		}

		names = append(names, string(s))
	}

	return names, nil
}
