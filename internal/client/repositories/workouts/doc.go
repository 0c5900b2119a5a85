// Package workouts is the local cache of workouts.
//
// Rows are keyed by id and listed per user in date-descending order. Every
// committed write notifies live listings through localdb, so Watch observes
// changes made by any writer in the process.
package workouts
