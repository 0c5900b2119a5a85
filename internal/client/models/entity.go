package models

// Entity is implemented by Workout and Exercise.
type Entity[T any] interface {
	Key() string
	Parent() string
	Equal(T) bool
}

// EqualSlices reports whether a and b hold equal entities in the same order.
func EqualSlices[T Entity[T]](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
