package vec

import "sort"

// sortSlice sorts s in place by cmp. The design explicitly places sort
// algorithms out of scope ("sort/order primitives (comparator and
// equality function types only)") — only the Cmp contract is this
// module's to define; the actual sort is stdlib sort.Slice.
func sortSlice[T any](s []T, cmp func(a, b T) int) {
	sort.Slice(s, func(i, j int) bool { return cmp(s[i], s[j]) < 0 })
}
