// Package finalizer implements the compositional finaliser graph of the
// design's §4.1: a type-neutral mechanism for recursive, ownership-aware
// teardown of arbitrarily nested containers and the values they hold.
//
// A Node pairs a release function with a (possibly empty) list of child
// nodes. Containers that store opaque values never know what those values
// are; they know only how many kinds of child value they hold (0, 1, or 2
// — plain elements, or keys and values for maps) and delegate to
// node.Children[i] for each. This is the single dispatch mechanism that
// keeps the rest of the module value-agnostic without a runtime type
// system.
package finalizer

import "fmt"

// Node is one vertex of the finaliser graph. Release is invoked with the
// value being torn down and a reference to this same node (so a release
// function can reach its own Children).
type Node struct {
	Release  func(value any, n *Node)
	Children []*Node
}

// Empty returns a no-op leaf finaliser, for containers whose elements need
// no further release (plain scalars, strings, immutable values).
func Empty() *Node {
	return &Node{Release: func(any, *Node) {}}
}

// Pointer returns a leaf finaliser for values that are themselves
// references to another object. If it is given a child (via Cons), the
// child finaliser is invoked on the pointee before the pointee is
// released; release of the pointee itself is a caller-supplied Close, if
// any, via PointerTo, the type-specific variant below.
func Pointer() *Node {
	n := &Node{}
	n.Release = func(value any, self *Node) {
		if len(self.Children) > 0 {
			Finalize(value, self.Children[0])
		}
	}
	return n
}

// Closer is implemented by pointee types that own an external resource
// (file handle, buffer pool slot, ...) and must be released explicitly;
// Go's GC reclaims plain memory, so this is the only "release the
// pointee's allocation" step a safe re-implementation needs.
type Closer interface {
	Close() error
}

// PointerTo builds a pointer finaliser specialised for *T: it recurses
// into an optional child on the pointee, then calls Close if *T
// implements Closer. Using a generic constructor keeps Node itself
// non-generic (so graphs of mixed element types compose) while giving
// call sites type safety at the point they build the graph.
func PointerTo[T any]() *Node {
	n := &Node{}
	n.Release = func(value any, self *Node) {
		ptr, ok := value.(*T)
		if !ok || ptr == nil {
			return
		}
		if len(self.Children) > 0 {
			Finalize(*ptr, self.Children[0])
		}
		if c, ok := any(ptr).(Closer); ok {
			_ = c.Close()
		}
	}
	return n
}

// For builds a container-specific finaliser: release is supplied by the
// container type T, with an initially empty child list. The container's
// release function is expected to consult n.Children itself (applying
// Children[0] to every contained value, and for maps, Children[1] to
// every value-slot) — see each container package's own Finalizer
// constructor.
func For[T any](release func(v T, n *Node)) *Node {
	n := &Node{}
	n.Release = func(value any, self *Node) {
		v, ok := value.(T)
		if !ok {
			Panic("finalizer.For", "value of type %T does not match finaliser's element type", value)
		}
		release(v, self)
	}
	return n
}

// Cons appends child to parent's child list and returns parent; parent is
// a mutable builder (destructive), matching the design's "compose" op.
func Cons(parent *Node, child *Node) *Node {
	parent.Children = append(parent.Children, child)
	return parent
}

// Finalize invokes node's release function on value — the design's
// "invoke" operation.
func Finalize(value any, node *Node) {
	node.Release(value, node)
}

// Destroy applies node to the pointee of obj, then drops obj's allocation
// (left to the GC) and the finaliser tree itself. It is the convenience
// "destroy-object" operation for a heap-allocated value whose lifetime
// ends here.
func Destroy[T any](obj *T, node *Node) {
	if obj == nil {
		return
	}
	Finalize(*obj, node)
}

// Panic raises a finaliser/container shape mismatch — §7 classifies this
// as an assertion failure, not a recoverable error.
func Panic(op, format string, args ...any) {
	panic(&ShapeMismatch{Op: op, Msg: fmt.Sprintf(format, args...)})
}

// ShapeMismatch is raised when a finaliser graph's shape disagrees with
// the content of the container it is applied to (e.g. a single-child
// graph invoked on a map, which needs two).
type ShapeMismatch struct {
	Op  string
	Msg string
}

func (e *ShapeMismatch) Error() string { return e.Op + ": " + e.Msg }
