package cli

import (
	"context"
	"fmt"
	"iter"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/gympro/internal/client/models"
)

const dateLayout = time.DateOnly

func (a *App) Workouts(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("workouts list|add|edit <id>|delete <id>|show <id>")
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "list", "l":
		return a.listWorkouts(ctx)
	case "add":
		return a.addWorkout(ctx)
	}

	if len(rest) != 1 {
		return usageError("workouts " + sub + " <id>")
	}
	id := rest[0]

	switch sub {
	case "edit":
		return a.editWorkout(ctx, id)
	case "delete", "rm":
		return a.deleteWorkout(ctx, id)
	case "show":
		return a.showWorkout(ctx, id)
	default:
		return usageError("workouts list|add|edit <id>|delete <id>|show <id>")
	}
}

func (a *App) listWorkouts(ctx context.Context) error {
	userID := a.currentUser()
	items, err := settle(ctx, func(ctx context.Context) iter.Seq2[[]models.Workout, error] {
		return a.workouts.ListByParent(ctx, userID)
	}, a.waitFor(ctx))
	if err != nil {
		return err
	}

	if len(items) == 0 {
		fmt.Fprintln(a.out, "No workouts")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tNAME")
	for _, w := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", w.ID, w.Date.Format(dateLayout), w.Name)
	}
	return tw.Flush()
}

func (a *App) promptDate(current time.Time) (time.Time, error) {
	raw, err := GetDefaultText(a.reader, "Date (YYYY-MM-DD)", current.Format(dateLayout), a.out)
	if err != nil {
		return time.Time{}, err
	}
	d, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", raw)
	}
	return d, nil
}

func (a *App) addWorkout(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Name", a.out)
	if err != nil {
		return err
	}
	description, err := GetMultiline(a.reader, "Description", a.out)
	if err != nil {
		return err
	}
	date, err := a.promptDate(time.Now().UTC())
	if err != nil {
		return err
	}

	id, err := a.workouts.Create(ctx, models.Workout{
		UserID:      a.currentUser(),
		Name:        name,
		Description: description,
		Date:        date,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Created workout", id)
	return nil
}

func (a *App) editWorkout(ctx context.Context, id string) error {
	w, err := a.workouts.Get(ctx, id)
	if err != nil {
		return err
	}

	if w.Name, err = GetDefaultText(a.reader, "Name", w.Name, a.out); err != nil {
		return err
	}
	if w.Description, err = GetDefaultText(a.reader, "Description", w.Description, a.out); err != nil {
		return err
	}
	if w.Date, err = a.promptDate(w.Date); err != nil {
		return err
	}

	if err := a.workouts.Update(ctx, w); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Updated")
	return nil
}

func (a *App) deleteWorkout(ctx context.Context, id string) error {
	if err := a.workouts.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted")
	return nil
}

func (a *App) showWorkout(ctx context.Context, id string) error {
	w, err := a.workouts.Get(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s  %s\n", w.Date.Format(dateLayout), w.Name)
	if w.Description != "" {
		fmt.Fprintln(a.out, w.Description)
	}
	return a.listExercises(ctx, id)
}
