package domain

import (
	"errors"
	"strings"
	"time"
)

// Operation identifies one of the supported binary arithmetic operations.
type Operation string

const (
	OpAdd      Operation = "add"
	OpSubtract Operation = "subtract"
	OpMultiply Operation = "multiply"
	OpDivide   Operation = "divide"
)

var ErrUnsupportedOperation = errors.New("unsupported operation")
var ErrDivisionByZero = errors.New("division by zero")
var ErrCalculationNotFound = errors.New("calculation not found")

// ParseOperation normalizes a raw operation name to an Operation.
// Matching is case-insensitive; anything outside the fixed set fails.
func ParseOperation(raw string) (Operation, error) {
	switch Operation(strings.ToLower(raw)) {
	case OpAdd:
		return OpAdd, nil
	case OpSubtract:
		return OpSubtract, nil
	case OpMultiply:
		return OpMultiply, nil
	case OpDivide:
		return OpDivide, nil
	}
	return "", ErrUnsupportedOperation
}

// Apply evaluates the operation over the two operands. The zero-divisor guard
// lives here so a divide with b == 0 can never slip past upstream validation.
func (op Operation) Apply(a, b float64) (float64, error) {
	switch op {
	case OpAdd:
		return a + b, nil
	case OpSubtract:
		return a - b, nil
	case OpMultiply:
		return a * b, nil
	case OpDivide:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	}
	return 0, ErrUnsupportedOperation
}

// Calculation is one arithmetic record owned by a single user.
type Calculation struct {
	ID        string    `json:"id"`
	A         float64   `json:"a"`
	B         float64   `json:"b"`
	Operation Operation `json:"operation"`
	Result    *float64  `json:"result"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Compute evaluates the calculation and applies the persist policy:
//
//	persist=false            → compute only, Result untouched
//	persist=true, force=false → set Result only when currently unset
//	persist=true, force=true  → always overwrite Result
//
// The freshly computed value is returned in every mode.
func (c *Calculation) Compute(persist, force bool) (float64, error) {
	val, err := c.Operation.Apply(c.A, c.B)
	if err != nil {
		return 0, err
	}
	if persist && (force || c.Result == nil) {
		v := val
		c.Result = &v
	}
	return val, nil
}
