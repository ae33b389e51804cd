package corelog

import "testing"

// WarnOutOfUniverse must never panic; it is called from hot insert paths
// in container/vebset, sketch/qdigest and sketch/distinct on malformed
// input.
func TestWarnOutOfUniverseDoesNotPanic(t *testing.T) {
	WarnOutOfUniverse("vebset", 999, 16)
}
