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

package models

import "fmt"

// PredicateKind distinguishes equality from range predicates.
type PredicateKind int

const (
	PredicateEqual PredicateKind = iota + 1
	PredicateRange
)

// Predicate is a single where clause on a bin.
// Equality predicates carry an int64 or a string in Value,
// range predicates carry inclusive Min and Max.
type Predicate struct {
	Value any
	Bin   string
	Kind  PredicateKind
	Min   int64
	Max   int64
}

// Direction is the sort direction of an order by clause.
type Direction int

const (
	OrderAsc  Direction = 1
	OrderDesc Direction = 2
)

func (d Direction) String() string {
	switch d {
	case OrderAsc:
		return "asc"
	case OrderDesc:
		return "desc"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Order is a single order by clause.
type Order struct {
	Bin       string
	Direction Direction
}

// UDFCall names a server side function and its arguments.
type UDFCall struct {
	Module   string
	Function string
	Args     []any
}

// Validate checks that the module and function are set.
func (c *UDFCall) Validate() error {
	if c == nil {
		return nil
	}

	if c.Module == "" {
		return fmt.Errorf("%w: udf module is required", ErrInvalidArgument)
	}

	if c.Function == "" {
		return fmt.Errorf("%w: udf function is required", ErrInvalidArgument)
	}

	return nil
}

// QuerySpec is a typed query request.
type QuerySpec struct {
	// Aggregate is applied to the query stream on the server when set.
	Aggregate *UDFCall
	Namespace string
	Set       string
	// Select restricts the returned bins. Empty means all bins.
	Select  []string
	Where   []Predicate
	// Index names the where bin served by the secondary index. The other
	// predicates run as a filter expression. Empty means the first predicate.
	Index   string
	OrderBy []Order
}

// Validate checks clause limits, bin names, ranges and directions.
func (q *QuerySpec) Validate() error {
	if err := ValidateNamespace(q.Namespace, q.Set); err != nil {
		return err
	}

	if err := ValidateBinCount(len(q.Select)); err != nil {
		return fmt.Errorf("%w: select: %w", ErrInvalidQuery, err)
	}

	for _, bin := range q.Select {
		if err := ValidateBinName(bin); err != nil {
			return fmt.Errorf("%w: select: %w", ErrInvalidQuery, err)
		}
	}

	for i := range q.Where {
		if err := q.Where[i].validate(); err != nil {
			return fmt.Errorf("%w: where: %w", ErrInvalidQuery, err)
		}
	}

	if q.Index != "" && q.IndexPredicate() < 0 {
		return fmt.Errorf("%w: index bin %q has no where predicate", ErrInvalidQuery, q.Index)
	}

	if err := ValidateBinCount(len(q.OrderBy)); err != nil {
		return fmt.Errorf("%w: orderby: %w", ErrInvalidQuery, err)
	}

	for _, o := range q.OrderBy {
		if err := ValidateBinName(o.Bin); err != nil {
			return fmt.Errorf("%w: orderby: %w", ErrInvalidQuery, err)
		}

		if o.Direction != OrderAsc && o.Direction != OrderDesc {
			return fmt.Errorf("%w: orderby: bin %q has invalid direction %d", ErrInvalidQuery, o.Bin, o.Direction)
		}
	}

	return q.Aggregate.Validate()
}

// IndexPredicate returns the position in Where of the predicate served by
// the secondary index, or -1 when Index matches no predicate.
func (q *QuerySpec) IndexPredicate() int {
	if len(q.Where) == 0 {
		return -1
	}

	if q.Index == "" {
		return 0
	}

	for i := range q.Where {
		if q.Where[i].Bin == q.Index {
			return i
		}
	}

	return -1
}

func (p *Predicate) validate() error {
	if err := ValidateBinName(p.Bin); err != nil {
		return err
	}

	switch p.Kind {
	case PredicateEqual:
		switch p.Value.(type) {
		case int64, string:
		default:
			return fmt.Errorf("bin %q: equality value must be an integer or a string, got %T", p.Bin, p.Value)
		}
	case PredicateRange:
		if p.Min > p.Max {
			return fmt.Errorf("bin %q: range min %d is greater than max %d", p.Bin, p.Min, p.Max)
		}
	default:
		return fmt.Errorf("bin %q: unknown predicate kind %d", p.Bin, p.Kind)
	}

	return nil
}
