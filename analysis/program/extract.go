package program

type constructor interface {
	IsConstructor() bool
}

// ExtractSegments splits a method body into atomic segments by the marker
// pattern. Bodies are expected to have the shape
//
//	identity* stmt* (predicate waituntil stmt*)*
//
// A segment begins at the first non-identity instruction and at every
// predicate assignment immediately followed by a waituntil instruction, and
// ends right before the next beginning or at the end of the body. Static
// methods and constructors have no segments.
func ExtractSegments(body Body) (segs []AtomicSegment) {
	if body.IsStatic() {
		return nil
	}
	if c, ok := body.(constructor); ok && c.IsConstructor() {
		return nil
	}

	n := body.Len()
	first := 0
	for first < n && MarkerOf(body.At(first)) == Identity {
		first++
	}
	if first == n {
		return nil
	}

	begins := func(i int) bool {
		if i == first {
			return true
		}
		return i+1 < n &&
			MarkerOf(body.At(i)) == Predicate &&
			MarkerOf(body.At(i+1)) == WaitUntil
	}

	start := first
	for i := first + 1; i < n; i++ {
		if begins(i) {
			segs = append(segs, AtomicSegment{Body: body, First: start, Last: i - 1})
			start = i
		}
	}
	return append(segs, AtomicSegment{Body: body, First: start, Last: n - 1})
}
