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

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type deferred struct{ v any }

func TestOperationList_Order(t *testing.T) {
	t.Parallel()

	l := NewOperationList(nil)
	require.NoError(t, l.AddRead("a"))
	require.NoError(t, l.AddWrite("b", int64(1)))
	require.NoError(t, l.AddAppend("c", "x"))
	require.NoError(t, l.AddPrepend("c", "y"))
	require.NoError(t, l.AddIncrement("d", int64(5)))
	require.NoError(t, l.AddTouch())
	require.NoError(t, l.AddRead("a"))

	kinds := make([]OpKind, 0, l.Len())
	for _, op := range l.Operations() {
		kinds = append(kinds, op.Kind)
	}

	require.Equal(t, []OpKind{OpRead, OpWrite, OpAppend, OpPrepend, OpIncrement, OpTouch, OpRead}, kinds)

	ops, err := l.Compile()
	require.NoError(t, err)
	require.Len(t, ops, 7)

	for _, op := range ops {
		require.NotNil(t, op)
	}
}

func TestOperationList_RejectedAddLeavesListUnchanged(t *testing.T) {
	t.Parallel()

	tests := []struct {
		add  func(l *OperationList) error
		want error
		name string
	}{
		{
			name: "append integer",
			add:  func(l *OperationList) error { return l.AddAppend("a", int64(1)) },
			want: ErrInvalidOperand,
		},
		{
			name: "prepend nil",
			add:  func(l *OperationList) error { return l.AddPrepend("a", nil) },
			want: ErrInvalidOperand,
		},
		{
			name: "increment string",
			add:  func(l *OperationList) error { return l.AddIncrement("a", "1") },
			want: ErrInvalidOperand,
		},
		{
			name: "increment float",
			add:  func(l *OperationList) error { return l.AddIncrement("a", 1.5) },
			want: ErrInvalidOperand,
		},
		{
			name: "write nil",
			add:  func(l *OperationList) error { return l.AddWrite("a", nil) },
			want: ErrInvalidOperand,
		},
		{
			name: "long bin name",
			add:  func(l *OperationList) error { return l.AddRead("a_very_long_bin_name") },
			want: ErrInvalidBinName,
		},
		{
			name: "empty bin name",
			add:  func(l *OperationList) error { return l.AddWrite("", "v") },
			want: ErrInvalidBinName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l := NewOperationList(nil)
			require.NoError(t, l.AddRead("ok"))

			require.ErrorIs(t, tt.add(l), tt.want)
			require.Equal(t, 1, l.Len())
		})
	}
}

func TestOperationList_DeferredConversion(t *testing.T) {
	t.Parallel()

	var converted []any

	l := NewOperationList(func(v any) (any, error) {
		d, ok := v.(deferred)
		if !ok {
			return nil, errors.New("unexpected operand")
		}

		converted = append(converted, d.v)

		return d.v, nil
	})

	require.NoError(t, l.AddWrite("list", deferred{v: []any{int64(1), int64(2)}}))
	require.NoError(t, l.AddWrite("str", "plain"))
	require.Empty(t, converted)

	ops, err := l.Compile()
	require.NoError(t, err)
	require.Len(t, ops, 2)
	require.Equal(t, []any{[]any{int64(1), int64(2)}}, converted)
}

func TestOperationList_CompileFailure(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")

	l := NewOperationList(func(any) (any, error) { return nil, errBoom })
	require.NoError(t, l.AddRead("a"))
	require.NoError(t, l.AddWrite("b", deferred{}))

	ops, err := l.Compile()
	require.ErrorIs(t, err, errBoom)
	require.Nil(t, ops)

	noConverter := NewOperationList(nil)
	require.NoError(t, noConverter.AddWrite("b", deferred{}))

	ops, err = noConverter.Compile()
	require.ErrorIs(t, err, ErrUnsupportedType)
	require.Nil(t, ops)
}
