// Package cli is the interactive gympro client.
//
// NewApp wires the local SQLite cache, the gRPC RemoteStores, the
// connectivity monitor and the repositories. App.Run restores the stored
// session, follows the connectivity state and then reads commands until
// exit:
//
//	register | login | logout
//	workouts  list | add | edit <id> | delete <id> | show <id>
//	exercises list <workoutId> | add <workoutId> | edit <id> | delete <id>
//	          reorder <workoutId> | image <id> <path>
//	status | help | exit
//
// "w" and "e" abbreviate workouts and exercises.
package cli
