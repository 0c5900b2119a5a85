package cli

import (
	"context"
	"fmt"
	"time"
)

// getSimpleText and getPassword are swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

func (a *App) credentials() (string, string, error) {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return "", "", err
	}
	pw, err := getPassword(a.out)
	if err != nil {
		return "", "", err
	}
	defer clear(pw)
	return username, string(pw), nil
}

func (a *App) Register(ctx context.Context) error {
	username, password, err := a.credentials()
	if err != nil {
		return err
	}
	if err := a.auth.Register(ctx, username, password); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Registered, you can login now")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	username, password, err := a.credentials()
	if err != nil {
		return err
	}
	userID, err := a.auth.Login(ctx, username, password)
	if err != nil {
		return err
	}
	a.setUser(userID)
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

// Logout ends the session and drops the cached workouts of the user.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.setUser("")
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Status(ctx context.Context) error {
	mode := ModeOffline
	if a.online.Online(ctx) {
		mode = ModeOnline
	}
	fmt.Fprintf(a.out, "mode: %s\n", mode)

	if user := a.currentUser(); user != "" {
		fmt.Fprintf(a.out, "user: %s\n", user)
	} else {
		fmt.Fprintln(a.out, "user: -")
	}
	fmt.Fprintf(a.out, "syncing: %t\n", a.sync.IsSyncing())

	at, ok, err := a.prefs.LastSync(ctx)
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintf(a.out, "last sync: %s\n", at.Local().Format(time.DateTime))
	} else {
		fmt.Fprintln(a.out, "last sync: never")
	}
	return nil
}
