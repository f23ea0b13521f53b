// Package fibonacci provides the Fibonacci sequence utilities behind the
// merge rule: membership, index lookup, successor and the consecutive-pair
// predicate that decides whether two tiles may merge.
package fibonacci

import "sync"

// MaxIndex is the largest n for which Fib(n) fits in an int64.
const MaxIndex = 92

var (
	mu    sync.Mutex
	terms = []int{0, 1} // terms[n] = Fib(n), grown on demand
)

// Nth returns the n-th Fibonacci term with Fib(0)=0, Fib(1)=1, Fib(2)=1.
// Terms are memoized; each is computed at most once.
// Returns 0 for n <= 0 or n > MaxIndex.
func Nth(n int) int {
	if n <= 0 || n > MaxIndex {
		return 0
	}

	mu.Lock()
	defer mu.Unlock()

	for len(terms) <= n {
		k := len(terms)
		terms = append(terms, terms[k-1]+terms[k-2])
	}
	return terms[n]
}

// IndexOf returns the first 1-indexed position of value in the sequence.
// IndexOf(1) is 1; the second unit term is never reported.
func IndexOf(value int) (int, bool) {
	if value <= 0 {
		return 0, false
	}
	for i := 1; i <= MaxIndex; i++ {
		fib := Nth(i)
		if fib == value {
			return i, true
		}
		if fib > value {
			break
		}
	}
	return 0, false
}

// IsFibonacci reports whether value is a term of the sequence starting at Fib(1).
func IsFibonacci(value int) bool {
	_, ok := IndexOf(value)
	return ok
}

// NextAfter returns the first term strictly greater than value.
// Both unit terms advance to 2. Returns false if value is not a term
// or its successor does not fit in an int.
func NextAfter(value int) (int, bool) {
	idx, ok := IndexOf(value)
	if !ok {
		return 0, false
	}
	for i := idx + 1; i <= MaxIndex; i++ {
		if next := Nth(i); next > value {
			return next, true
		}
	}
	return 0, false
}

// AreConsecutive reports whether a and b are adjacent terms of the sequence,
// in either order. The pair (1, 1) counts: Fib(1) and Fib(2) are both 1.
func AreConsecutive(a, b int) bool {
	if a <= 0 || b <= 0 {
		return false
	}
	if a == 1 && b == 1 {
		return true
	}

	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}

	for i := 1; i < MaxIndex; i++ {
		cur := Nth(i)
		if cur > lo {
			return false
		}
		if cur == lo && Nth(i+1) == hi {
			return true
		}
	}
	return false
}

// MergeResult returns a+b when the two values may merge.
func MergeResult(a, b int) (int, bool) {
	if !AreConsecutive(a, b) {
		return 0, false
	}
	return a + b, true
}

// UpTo lists the terms from Fib(1) that do not exceed limit, in order.
func UpTo(limit int) []int {
	var seq []int
	for i := 1; i <= MaxIndex; i++ {
		fib := Nth(i)
		if fib > limit {
			break
		}
		seq = append(seq, fib)
	}
	return seq
}
