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


package aslua

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	a "github.com/aerospike/aerospike-client-go/v7"
	"github.com/aerospike/aslua/internal/logging"
	"github.com/aerospike/aslua/models"
)

// aggregateBin is the bin under which the server delivers aggregation results.
const aggregateBin = "SUCCESS"

// Query runs spec and returns the matching records. When spec has order
// by clauses the records are sorted on the client, records missing a sort
// bin go last. Items are numbered from 1 in the returned order.
func (c *Context) Query(ctx context.Context, spec *models.QuerySpec) (items []models.ScanItem, err error) {
	defer c.client.track(c.logger, logging.OperationTypeQuery, time.Now(), &err)

	stmt, policy, err := c.compileQuery(spec)
	if err != nil {
		return nil, err
	}

	if spec.Aggregate != nil {
		return nil, fmt.Errorf("%w: aggregate query must be run with QueryAggregate", models.ErrInvalidQuery)
	}

	release, err := c.client.acquireScan(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	stream, err := c.client.cluster.Query(policy, stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to start query: %w", err)
	}

	collector := &scanCollector{}

	logger := logging.WithOperation(c.logger, newOperationID(), logging.OperationTypeQuery)
	if err = c.drain(ctx, logger, logging.OperationTypeQuery, stream, collector.collect); err != nil {
		return nil, err
	}

	if len(spec.OrderBy) > 0 {
		sortItems(collector.items, spec.OrderBy)
	}

	return collector.items, nil
}

// QueryAggregate runs spec through the stream UDF named by spec.Aggregate
// and returns the values it produced.
func (c *Context) QueryAggregate(ctx context.Context, spec *models.QuerySpec) (values []any, err error) {
	defer c.client.track(c.logger, logging.OperationTypeQuery, time.Now(), &err)

	stmt, policy, err := c.compileQuery(spec)
	if err != nil {
		return nil, err
	}

	if spec.Aggregate == nil {
		return nil, fmt.Errorf("%w: aggregate function is required", models.ErrInvalidQuery)
	}

	release, err := c.client.acquireScan(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	stream, err := c.client.cluster.QueryAggregate(policy, stmt,
		spec.Aggregate.Module, spec.Aggregate.Function, toValues(spec.Aggregate.Args)...)
	if err != nil {
		return nil, fmt.Errorf("failed to start aggregate query: %w", err)
	}

	values = make([]any, 0)
	collect := func(rec *a.Record) error {
		v, ok := rec.Bins[aggregateBin]
		if !ok {
			return fmt.Errorf("%w: aggregate result without %s bin", models.ErrIteration, aggregateBin)
		}

		values = append(values, v)

		return nil
	}

	logger := logging.WithOperation(c.logger, newOperationID(), logging.OperationTypeQuery)
	if err = c.drain(ctx, logger, logging.OperationTypeQuery, stream, collect); err != nil {
		return nil, err
	}

	return values, nil
}

// compileQuery turns spec into a statement and a query policy.
// The predicate named by spec.Index, or the first one, is served by a
// secondary index filter; the rest are evaluated on the server as a filter
// expression.
func (c *Context) compileQuery(spec *models.QuerySpec) (*a.Statement, *a.QueryPolicy, error) {
	if spec == nil {
		return nil, nil, fmt.Errorf("%w: query is nil", models.ErrInvalidQuery)
	}

	if spec.Namespace == "" {
		spec.Namespace, spec.Set = c.namespace, c.set
	}

	if err := spec.Validate(); err != nil {
		return nil, nil, err
	}

	stmt := a.NewStatement(spec.Namespace, spec.Set, spec.Select...)
	policy := c.client.policies.queryPolicy()

	if len(spec.Where) == 0 {
		return stmt, policy, nil
	}

	indexed := spec.IndexPredicate()
	if err := stmt.SetFilter(indexFilter(&spec.Where[indexed])); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", models.ErrInvalidQuery, err)
	}

	if len(spec.Where) > 1 {
		exps := make([]*a.Expression, 0, len(spec.Where)-1)
		for i := range spec.Where {
			if i != indexed {
				exps = append(exps, predicateExp(&spec.Where[i]))
			}
		}

		if len(exps) == 1 {
			policy.FilterExpression = exps[0]
		} else {
			policy.FilterExpression = a.ExpAnd(exps...)
		}
	}

	return stmt, policy, nil
}

func indexFilter(p *models.Predicate) *a.Filter {
	if p.Kind == models.PredicateRange {
		return a.NewRangeFilter(p.Bin, p.Min, p.Max)
	}

	return a.NewEqualFilter(p.Bin, p.Value)
}

func predicateExp(p *models.Predicate) *a.Expression {
	if p.Kind == models.PredicateRange {
		return a.ExpAnd(
			a.ExpGreaterEq(a.ExpIntBin(p.Bin), a.ExpIntVal(p.Min)),
			a.ExpLessEq(a.ExpIntBin(p.Bin), a.ExpIntVal(p.Max)),
		)
	}

	if s, ok := p.Value.(string); ok {
		return a.ExpEq(a.ExpStringBin(p.Bin), a.ExpStringVal(s))
	}

	v, _ := p.Value.(int64)

	return a.ExpEq(a.ExpIntBin(p.Bin), a.ExpIntVal(v))
}

// sortItems orders items by the given clauses, first clause first, and
// renumbers them.
func sortItems(items []models.ScanItem, orders []models.Order) {
	sort.SliceStable(items, func(i, j int) bool {
		for _, o := range orders {
			vi, iok := items[i].Bins[o.Bin]
			vj, jok := items[j].Bins[o.Bin]

			// Missing values sort last in both directions.
			switch {
			case !iok && !jok:
				continue
			case !iok:
				return false
			case !jok:
				return true
			}

			cmp := compareValues(vi, vj)
			if cmp == 0 {
				continue
			}

			if o.Direction == models.OrderDesc {
				return cmp > 0
			}

			return cmp < 0
		}

		return false
	})

	for i := range items {
		items[i].Index = i + 1
	}
}

// compareValues orders numbers before strings before anything else.
func compareValues(x, y any) int {
	rx, ry := valueRank(x), valueRank(y)
	if rx != ry {
		return rx - ry
	}

	switch rx {
	case rankNumber:
		fx, fy := toFloat(x), toFloat(y)

		switch {
		case fx < fy:
			return -1
		case fx > fy:
			return 1
		default:
			return 0
		}
	case rankString:
		return strings.Compare(x.(string), y.(string))
	default:
		return strings.Compare(fmt.Sprint(x), fmt.Sprint(y))
	}
}

const (
	rankNumber = iota
	rankString
	rankOther
)

func valueRank(v any) int {
	switch v.(type) {
	case int, int64, int32, float64:
		return rankNumber
	case string:
		return rankString
	default:
		return rankOther
	}
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case float64:
		return n
	default:
		return 0
	}
}
