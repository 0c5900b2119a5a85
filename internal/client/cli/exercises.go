package cli

import (
	"context"
	"fmt"
	"iter"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/gympro/internal/client/models"
)

const exercisesUsage = "exercises list <workoutId>|add <workoutId>|edit <id>|delete <id>|reorder <workoutId>|image <id> <path>"

func (a *App) Exercises(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usageError(exercisesUsage)
	}
	sub, id := args[0], args[1]

	switch sub {
	case "list", "l":
		return a.listExercises(ctx, id)
	case "add":
		return a.addExercise(ctx, id)
	case "edit":
		return a.editExercise(ctx, id)
	case "delete", "rm":
		return a.deleteExercise(ctx, id)
	case "reorder":
		return a.reorderExercises(ctx, id)
	case "image":
		if len(args) != 3 {
			return usageError("exercises image <id> <path>")
		}
		return a.uploadImage(ctx, id, args[2])
	default:
		return usageError(exercisesUsage)
	}
}

func (a *App) snapshotExercises(ctx context.Context, workoutID string) ([]models.Exercise, error) {
	return settle(ctx, func(ctx context.Context) iter.Seq2[[]models.Exercise, error] {
		return a.exercises.ListByParent(ctx, workoutID)
	}, a.waitFor(ctx))
}

func (a *App) listExercises(ctx context.Context, workoutID string) error {
	items, err := a.snapshotExercises(ctx, workoutID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No exercises")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tID\tNAME\tIMAGE")
	for i, e := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, e.ID, e.Name, e.Image())
	}
	return tw.Flush()
}

func (a *App) addExercise(ctx context.Context, workoutID string) error {
	name, err := GetSimpleText(a.reader, "Name", a.out)
	if err != nil {
		return err
	}
	observations, err := GetMultiline(a.reader, "Observations", a.out)
	if err != nil {
		return err
	}

	id, err := a.exercises.Create(ctx, models.Exercise{
		WorkoutID:    workoutID,
		Name:         name,
		Observations: observations,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Created exercise", id)
	return nil
}

func (a *App) editExercise(ctx context.Context, id string) error {
	e, err := a.exercises.Get(ctx, id)
	if err != nil {
		return err
	}

	if e.Name, err = GetDefaultText(a.reader, "Name", e.Name, a.out); err != nil {
		return err
	}
	if e.Observations, err = GetDefaultText(a.reader, "Observations", e.Observations, a.out); err != nil {
		return err
	}
	image, err := GetDefaultText(a.reader, "Image URL ('-' to remove)", e.Image(), a.out)
	if err != nil {
		return err
	}
	switch image {
	case "-", "":
		e.ImageURL = nil
	default:
		e.ImageURL = &image
	}

	if err := a.exercises.Update(ctx, e); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Updated")
	return nil
}

func (a *App) deleteExercise(ctx context.Context, id string) error {
	if err := a.exercises.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted")
	return nil
}

// permute orders items by the 1-based numbers in order. Every item must be
// named exactly once.
func permute[T any](items []T, order []string) ([]T, error) {
	if len(order) != len(items) {
		return nil, fmt.Errorf("expected %d numbers, got %d", len(items), len(order))
	}
	seen := make([]bool, len(items))
	out := make([]T, 0, len(items))
	for _, s := range order {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > len(items) {
			return nil, fmt.Errorf("invalid number %q", s)
		}
		if seen[n-1] {
			return nil, fmt.Errorf("%d given twice", n)
		}
		seen[n-1] = true
		out = append(out, items[n-1])
	}
	return out, nil
}

func (a *App) reorderExercises(ctx context.Context, workoutID string) error {
	items, err := a.snapshotExercises(ctx, workoutID)
	if err != nil {
		return err
	}
	if len(items) < 2 {
		fmt.Fprintln(a.out, "Nothing to reorder")
		return nil
	}

	for i, e := range items {
		fmt.Fprintf(a.out, "%d. %s\n", i+1, e.Name)
	}
	raw, err := GetSimpleText(a.reader, "New order, e.g. \"2 1 3\"", a.out)
	if err != nil {
		return err
	}

	ordered, err := permute(items, strings.Fields(strings.ReplaceAll(raw, ",", " ")))
	if err != nil {
		return err
	}
	if err := a.exercises.Reorder(ctx, ordered); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Reordered")
	return nil
}

func (a *App) uploadImage(ctx context.Context, id, path string) error {
	url, err := a.exercises.UploadImage(ctx, id, path)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Uploaded", url)
	return nil
}
