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
	"fmt"

	a "github.com/aerospike/aerospike-client-go/v7"
)

// OpKind is the kind of a single record operation.
type OpKind int

const (
	OpRead OpKind = iota + 1
	OpWrite
	OpAppend
	OpPrepend
	OpIncrement
	OpTouch
)

func (k OpKind) String() string {
	switch k {
	case OpRead:
		return "read"
	case OpWrite:
		return "write"
	case OpAppend:
		return "append"
	case OpPrepend:
		return "prepend"
	case OpIncrement:
		return "increment"
	case OpTouch:
		return "touch"
	default:
		return "unknown"
	}
}

// Operation is one entry of an OperationList.
type Operation struct {
	Kind    OpKind
	Bin     string
	Operand any
}

// Converter turns a deferred operand into a typed value at compile time.
type Converter func(v any) (any, error)

// OperationList is an ordered, append-only list of record operations.
// Operands that are not typed values yet are kept as is and converted by
// the list converter when the list is compiled.
type OperationList struct {
	ops     []Operation
	convert Converter
}

// NewOperationList returns an empty list. convert may be nil, in which case
// only typed operands are accepted at compile time.
func NewOperationList(convert Converter) *OperationList {
	return &OperationList{convert: convert}
}

// Len returns the number of operations in the list.
func (l *OperationList) Len() int {
	return len(l.ops)
}

// Operations returns a copy of the list entries in insertion order.
func (l *OperationList) Operations() []Operation {
	out := make([]Operation, len(l.ops))
	copy(out, l.ops)

	return out
}

func (l *OperationList) AddRead(bin string) error {
	return l.add(OpRead, bin, nil)
}

func (l *OperationList) AddWrite(bin string, operand any) error {
	return l.add(OpWrite, bin, operand)
}

func (l *OperationList) AddAppend(bin string, operand any) error {
	return l.add(OpAppend, bin, operand)
}

func (l *OperationList) AddPrepend(bin string, operand any) error {
	return l.add(OpPrepend, bin, operand)
}

func (l *OperationList) AddIncrement(bin string, operand any) error {
	return l.add(OpIncrement, bin, operand)
}

func (l *OperationList) AddTouch() error {
	return l.add(OpTouch, "", nil)
}

func (l *OperationList) add(kind OpKind, bin string, operand any) error {
	if kind != OpTouch {
		if err := ValidateBinName(bin); err != nil {
			return fmt.Errorf("%s: %w", kind, err)
		}
	}

	if err := validateOperand(kind, operand); err != nil {
		return err
	}

	l.ops = append(l.ops, Operation{Kind: kind, Bin: bin, Operand: operand})

	return nil
}

func validateOperand(kind OpKind, operand any) error {
	switch kind {
	case OpAppend, OpPrepend:
		if _, ok := operand.(string); !ok {
			return fmt.Errorf("%w: %s requires a string, got %T", ErrInvalidOperand, kind, operand)
		}
	case OpIncrement:
		switch operand.(type) {
		case int, int64:
		default:
			return fmt.Errorf("%w: %s requires an integer, got %T", ErrInvalidOperand, kind, operand)
		}
	case OpWrite:
		if operand == nil {
			return fmt.Errorf("%w: %s requires a value", ErrInvalidOperand, kind)
		}
	case OpRead, OpTouch:
	default:
		return fmt.Errorf("%w: unknown operation kind %d", ErrInvalidOperand, kind)
	}

	return nil
}

// Compile materializes the client operations in insertion order.
// On failure no operation is returned.
func (l *OperationList) Compile() ([]*a.Operation, error) {
	out := make([]*a.Operation, 0, len(l.ops))

	for i := range l.ops {
		op, err := l.compile(&l.ops[i])
		if err != nil {
			return nil, fmt.Errorf("operation %d (%s %q): %w", i+1, l.ops[i].Kind, l.ops[i].Bin, err)
		}

		out = append(out, op)
	}

	return out, nil
}

func (l *OperationList) compile(op *Operation) (*a.Operation, error) {
	switch op.Kind {
	case OpRead:
		return a.GetBinOp(op.Bin), nil
	case OpWrite:
		v, err := l.typed(op.Operand)
		if err != nil {
			return nil, err
		}

		return a.PutOp(a.NewBin(op.Bin, v)), nil
	case OpAppend:
		return a.AppendOp(a.NewBin(op.Bin, op.Operand)), nil
	case OpPrepend:
		return a.PrependOp(a.NewBin(op.Bin, op.Operand)), nil
	case OpIncrement:
		return a.AddOp(a.NewBin(op.Bin, op.Operand)), nil
	case OpTouch:
		return a.TouchOp(), nil
	default:
		return nil, fmt.Errorf("%w: unknown operation kind %d", ErrInvalidOperand, op.Kind)
	}
}

func (l *OperationList) typed(v any) (any, error) {
	if IsTyped(v) {
		return v, nil
	}

	if l.convert == nil {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}

	return l.convert(v)
}

// IsTyped reports whether v is already a value the client can pack.
func IsTyped(v any) bool {
	switch v.(type) {
	case nil, bool, int, int64, float64, string, []byte, []any, map[any]any, map[string]any:
		return true
	default:
		return false
	}
}
