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

const (
	clauseSelect  = "select"
	clauseWhere   = "where"
	clauseOrderBy = "orderby"
	clauseIndex   = "index"
)

// BuildQuery converts a query description table into a typed query.
//
//	{
//	  select  = {"bin1", "bin2"},
//	  where   = {bin1 = 10, bin2 = "str", bin3 = {1, 100}},
//	  index   = "bin2",
//	  orderby = {bin1 = aerospike.ORDER_DESC},
//	}
//
// Every clause is optional. A present clause must not be empty.
// Where and orderby entries are ordered by bin name. Only one where bin is
// looked up through a secondary index: the one named by index, or the first
// bin in name order when index is absent. That bin must be indexed on the
// server; the other predicates are applied as filter expressions.
func BuildQuery(namespace, set string, opts lua.LValue) (*models.QuerySpec, error) {
	spec := &models.QuerySpec{
		Namespace: namespace,
		Set:       set,
	}

	switch tb := opts.(type) {
	case nil, *lua.LNilType:
	case *lua.LTable:
		if err := buildClauses(spec, tb); err != nil {
			return nil, fmt.Errorf("%w: %w", models.ErrInvalidQuery, err)
		}
	default:
		return nil, fmt.Errorf("%w: query must be a table, got %s", models.ErrInvalidQuery, opts.Type())
	}

	if err := spec.Validate(); err != nil {
		return nil, err
	}

	return spec, nil
}

func buildClauses(spec *models.QuerySpec, tb *lua.LTable) error {
	var err error

	if lv := tb.RawGetString(clauseSelect); lv != lua.LNil {
		if spec.Select, err = buildSelect(lv); err != nil {
			return err
		}
	}

	if lv := tb.RawGetString(clauseWhere); lv != lua.LNil {
		if spec.Where, err = buildWhere(lv); err != nil {
			return err
		}
	}

	if lv := tb.RawGetString(clauseIndex); lv != lua.LNil {
		name, ok := lv.(lua.LString)
		if !ok || name == "" {
			return fmt.Errorf("index field must be a bin name")
		}

		spec.Index = string(name)
	}

	if lv := tb.RawGetString(clauseOrderBy); lv != lua.LNil {
		if spec.OrderBy, err = buildOrderBy(lv); err != nil {
			return err
		}
	}

	return nil
}

func buildSelect(lv lua.LValue) ([]string, error) {
	tb, ok := lv.(*lua.LTable)
	if !ok || Classify(tb) != ShapeSequence {
		return nil, fmt.Errorf("select field must be an array of bin names")
	}

	n := tb.MaxN()
	if err := models.ValidateBinCount(n); err != nil {
		return nil, fmt.Errorf("select field: %w", err)
	}

	names := make([]string, 0, n)

	for i := 1; i <= n; i++ {
		s, ok := tb.RawGetInt(i).(lua.LString)
		if !ok {
			return nil, fmt.Errorf("select field: bin name at index %d must be a string", i)
		}

		names = append(names, string(s))
	}

	return names, nil
}

func buildWhere(lv lua.LValue) ([]models.Predicate, error) {
	tb, ok := lv.(*lua.LTable)
	if !ok || Classify(tb) != ShapeMapping {
		return nil, fmt.Errorf("where field must be hash table")
	}

	bins := SortedKeys(tb)
	predicates := make([]models.Predicate, 0, len(bins))

	for _, bin := range bins {
		p, err := buildPredicate(bin, tb.RawGetString(bin))
		if err != nil {
			return nil, err
		}

		predicates = append(predicates, p)
	}

	return predicates, nil
}

func buildPredicate(bin string, lv lua.LValue) (models.Predicate, error) {
	switch v := lv.(type) {
	case lua.LNumber:
		i, ok := toInteger(v)
		if !ok {
			return models.Predicate{}, fmt.Errorf("where field %q: number must be an integer", bin)
		}

		return models.Predicate{Bin: bin, Kind: models.PredicateEqual, Value: i}, nil
	case lua.LString:
		return models.Predicate{Bin: bin, Kind: models.PredicateEqual, Value: string(v)}, nil
	case *lua.LTable:
		if Classify(v) != ShapeSequence || v.MaxN() != 2 {
			return models.Predicate{}, fmt.Errorf("where field %q: range must be {min, max}", bin)
		}

		minNum, okMin := v.RawGetInt(1).(lua.LNumber)
		maxNum, okMax := v.RawGetInt(2).(lua.LNumber)

		if !okMin || !okMax {
			return models.Predicate{}, fmt.Errorf("where field %q: range bounds must be integers", bin)
		}

		lo, okMin := toInteger(minNum)
		hi, okMax := toInteger(maxNum)

		if !okMin || !okMax {
			return models.Predicate{}, fmt.Errorf("where field %q: range bounds must be integers", bin)
		}

		return models.Predicate{Bin: bin, Kind: models.PredicateRange, Min: lo, Max: hi}, nil
	default:
		return models.Predicate{}, fmt.Errorf("where field %q: unsupported value type %s", bin, lv.Type())
	}
}

func buildOrderBy(lv lua.LValue) ([]models.Order, error) {
	tb, ok := lv.(*lua.LTable)
	if !ok || Classify(tb) != ShapeMapping {
		return nil, fmt.Errorf("orderby field must be hash table")
	}

	bins := SortedKeys(tb)
	if err := models.ValidateBinCount(len(bins)); err != nil {
		return nil, fmt.Errorf("orderby field: %w", err)
	}

	orders := make([]models.Order, 0, len(bins))

	for _, bin := range bins {
		n, ok := tb.RawGetString(bin).(lua.LNumber)
		if !ok {
			return nil, fmt.Errorf("orderby field %q: direction must be ORDER_ASC or ORDER_DESC", bin)
		}

		dir := models.Direction(n)
		if float64(dir) != float64(n) || (dir != models.OrderAsc && dir != models.OrderDesc) {
			return nil, fmt.Errorf("orderby field %q: direction must be ORDER_ASC or ORDER_DESC", bin)
		}

		orders = append(orders, models.Order{Bin: bin, Direction: dir})
	}

	return orders, nil
}
