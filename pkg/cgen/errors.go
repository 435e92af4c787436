package cgen

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownOperator marks a field value outside a block's legal set.
	ErrUnknownOperator = errors.New("unknown operator")
	// ErrNoScope marks a declaration requested outside any function.
	ErrNoScope = errors.New("declaration requested outside any scope")
	// ErrNoConversion marks a printed variable whose type has no printf conversion.
	ErrNoConversion = errors.New("no printf conversion for type")
	// ErrDuplicateScope marks two scope blocks with the same function name.
	ErrDuplicateScope = errors.New("duplicate function")
	// ErrNotStatement marks a value block used where a statement is expected.
	ErrNotStatement = errors.New("block is not a statement")
	// ErrNotValue marks a statement block plugged into a value socket.
	ErrNotValue = errors.New("block is not a value")
)

// OperatorError reports an illegal operator choice on a block.
type OperatorError struct {
	BlockType string
	BlockID   string
	Field     string
	Value     string
}

func (e *OperatorError) Error() string {
	if e.BlockID != "" {
		return fmt.Sprintf("%s (block %s): unknown operator %q in field %s", e.BlockType, e.BlockID, e.Value, e.Field)
	}
	return fmt.Sprintf("%s: unknown operator %q in field %s", e.BlockType, e.Value, e.Field)
}

func (e *OperatorError) Is(target error) bool {
	return target == ErrUnknownOperator
}
