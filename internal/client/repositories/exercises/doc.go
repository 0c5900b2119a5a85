// Package exercises is the local cache of exercises, ordered by
// (position, id) within a workout.
package exercises
