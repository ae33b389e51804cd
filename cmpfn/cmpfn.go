// Package cmpfn defines the comparator and equality contracts shared by
// every ordered or hashed container in this module, plus the panic type
// used for contract violations (§7 of the design: bounds/shape errors are
// fatal, not propagated as error values).
package cmpfn

import "fmt"

// Cmp is a total-order comparator: negative if a < b, zero if a == b,
// positive if a > b. Implementations must be a consistent total order;
// an inconsistent comparator yields undefined container behaviour and is
// treated as a caller bug, never detected at runtime.
type Cmp[T any] func(a, b T) int

// Eq is an equality predicate. When paired with a Hash function, callers
// must ensure Eq(a,b) implies Hash(a) == Hash(b).
type Eq[T any] func(a, b T) bool

// Ordered is the builtin-ordered subset of Go types a comparator can be
// derived for automatically.
type Ordered interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64 | ~string
}

// Natural returns the comparator induced by a type's native ordering.
func Natural[T Ordered]() Cmp[T] {
	return func(a, b T) int {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	}
}

// NaturalEq returns the equality predicate induced by ==.
func NaturalEq[T comparable]() Eq[T] {
	return func(a, b T) bool { return a == b }
}

// FromEq derives an Eq from a Cmp; used where a container only needs
// equality but callers only have a comparator on hand.
func FromEq[T any](cmp Cmp[T]) Eq[T] {
	return func(a, b T) bool { return cmp(a, b) == 0 }
}

// Violation is a contract-violation error: out-of-bounds access, calling
// Next on an exhausted iterator, or any other condition §7 of the
// design classifies as a programming error rather than a recoverable
// failure (a finaliser shape that disagrees with its container panics
// with finalizer.ShapeMismatch instead). Containers panic with a
// *Violation; they never return it.
type Violation struct {
	Op  string
	Msg string
}

func (v *Violation) Error() string {
	return fmt.Sprintf("%s: %s", v.Op, v.Msg)
}

// Panic raises a contract violation for operation op.
func Panic(op, format string, args ...any) {
	panic(&Violation{Op: op, Msg: fmt.Sprintf(format, args...)})
}
