package stream

import "iter"

// Distinct drops values equal to the previously yielded one. Errors are
// passed through and do not reset the comparison.
func Distinct[T any](seq iter.Seq2[T, error], equal func(a, b T) bool) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var last T
		seen := false
		for v, err := range seq {
			if err != nil {
				if !yield(v, err) {
					return
				}
				continue
			}
			if seen && equal(last, v) {
				continue
			}
			last, seen = v, true
			if !yield(v, nil) {
				return
			}
		}
	}
}
