package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Workouts(ctx context.Context, args []string) error
	Exercises(ctx context.Context, args []string) error
	Status(ctx context.Context) error
}

var errLoginRequired = errors.New("please login first")

const (
	helpLoggedOut = "Available commands: register, login, status, exit"
	helpLoggedIn  = `Available commands:
  workouts  list | add | edit <id> | delete <id> | show <id>
  exercises list <workoutId> | add <workoutId> | edit <id> | delete <id>
            reorder <workoutId> | image <id> <path>
  status, logout, exit`
)

// runREPL reads commands from reader until EOF, exit or ctx is done.
// Command errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for ctx.Err() == nil {
		fmt.Fprintf(w, "gympro %s> ", statusFn())

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, helpLoggedIn)
			} else {
				fmt.Fprintln(w, helpLoggedOut)
			}
		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "status":
			cmdErr = a.Status(ctx)
		case "w", "workouts":
			cmdErr = loggedIn(a, func() error { return a.Workouts(ctx, args) })
		case "e", "exercises":
			cmdErr = loggedIn(a, func() error { return a.Exercises(ctx, args) })
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			fmt.Fprintln(w, "Error:", cmdErr)
		}
	}
}

func loggedIn(a execIface, fn func() error) error {
	if !a.isLoggedIn() {
		return errLoginRequired
	}
	return fn()
}

type usageError string

func (u usageError) Error() string { return "usage: " + string(u) }
