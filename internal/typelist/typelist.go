// Package typelist implements ordered sequences of compile-phase type
// tokens and the combinators the layout machinery is built on. A List
// element is an opaque token; nested Lists are spliced by Flatten.
package typelist

// List is an ordered sequence of tokens. Elements may themselves be
// Lists, in which case Flatten splices them in place.
type List []any

// Count returns the number of elements in l.
func Count(l List) int {
	return len(l)
}

// Nth returns the i-th element of l. It panics if i is out of range,
// mirroring slice indexing.
func Nth(l List, i int) any {
	return l[i]
}

// Join concatenates lists in order. Empty lists are identities, so
// Join() and Join(nil) both return an empty List.
func Join(lists ...List) List {
	total := 0
	for _, l := range lists {
		total += len(l)
	}
	out := make(List, 0, total)
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

// FirstN returns the prefix of l with n elements. FirstN(0) is empty
// and FirstN(Count(l)) is l itself (a copy, so callers may append).
func FirstN(l List, n int) List {
	out := make(List, n)
	copy(out, l[:n])
	return out
}

// Repeat returns a List of n copies of token. Repeat with n == 0 is
// empty. The result is built by doubling, so the number of copy
// passes is O(log n).
func Repeat(token any, n int) List {
	if n <= 0 {
		return List{}
	}
	out := make(List, 1, n)
	out[0] = token
	for len(out) < n {
		half := len(out)
		if half > n-len(out) {
			half = n - len(out)
		}
		out = append(out, out[:half]...)
	}
	return out
}

// Flatten splices nested Lists recursively. Non-list elements pass
// through unchanged, as if wrapped into singleton lists first. The
// result is flat: no element of the returned List is itself a List.
func Flatten(l List) List {
	out := make(List, 0, len(l))
	return flattenInto(out, l)
}

func flattenInto(out, l List) List {
	for _, e := range l {
		if sub, ok := e.(List); ok {
			out = flattenInto(out, sub)
		} else {
			out = append(out, e)
		}
	}
	return out
}
