package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gympro/internal/common"
	"github.com/dmitrijs2005/gympro/internal/dbx"
	pb "github.com/dmitrijs2005/gympro/internal/proto"
	"github.com/dmitrijs2005/gympro/internal/server/models"
	"github.com/dmitrijs2005/gympro/internal/server/repositories/repomanager"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"google.golang.org/protobuf/types/known/structpb"
)

// DocumentService keeps the workouts and exercises collections. Every call
// is scoped to the calling account.
type DocumentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	validate    *validator.Validate
	newID       func() string
}

func NewDocumentService(db *sql.DB, m repomanager.RepositoryManager) *DocumentService {
	return &DocumentService{
		db:          db,
		repomanager: m,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		newID:       uuid.NewString,
	}
}

func (s *DocumentService) check(v any) error {
	if err := s.validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidDocument, err)
	}
	return nil
}

// ownWorkout fails unless the workout exists and belongs to ownerID.
func (s *DocumentService) ownWorkout(ctx context.Context, tx dbx.DBTX, ownerID, workoutID string) error {
	_, err := s.repomanager.Workouts(tx).Get(ctx, ownerID, workoutID)
	if errors.Is(err, common.ErrNotFound) {
		return invalid("workout %s does not exist", workoutID)
	}
	return err
}

// Create stores data under id and returns the id used. An empty id is
// replaced with a new uuid. Repeating a create with the same id overwrites
// the document.
func (s *DocumentService) Create(ctx context.Context, ownerID, collection, id string, data *structpb.Struct) (string, error) {
	if data == nil {
		return "", invalid("missing data")
	}
	if id == "" {
		id = pb.String(data, pb.FieldID)
	}
	if id == "" {
		id = s.newID()
	}

	switch collection {
	case pb.CollectionWorkouts:
		w := decodeWorkout(ownerID, id, data)
		if err := s.check(w); err != nil {
			return "", err
		}
		if w.UserID != ownerID {
			return "", common.ErrForbidden
		}
		if err := s.repomanager.Workouts(s.db).Create(ctx, &w); err != nil {
			return "", err
		}

	case pb.CollectionExercises:
		e := decodeExercise(ownerID, id, data)
		if err := s.check(e); err != nil {
			return "", err
		}
		err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			if err := s.ownWorkout(ctx, tx, ownerID, e.WorkoutID); err != nil {
				return err
			}
			return s.repomanager.Exercises(tx).Create(ctx, &e)
		})
		if err != nil {
			return "", err
		}

	default:
		return "", common.ErrUnknownCollection
	}
	return id, nil
}

func (s *DocumentService) Get(ctx context.Context, ownerID, collection, id string) (*structpb.Struct, error) {
	switch collection {
	case pb.CollectionWorkouts:
		w, err := s.repomanager.Workouts(s.db).Get(ctx, ownerID, id)
		if err != nil {
			return nil, err
		}
		return encodeWorkout(w)
	case pb.CollectionExercises:
		e, err := s.repomanager.Exercises(s.db).Get(ctx, ownerID, id)
		if err != nil {
			return nil, err
		}
		return encodeExercise(e)
	default:
		return nil, common.ErrUnknownCollection
	}
}

// Replace overwrites an existing document.
func (s *DocumentService) Replace(ctx context.Context, ownerID, collection, id string, data *structpb.Struct) error {
	if data == nil {
		return invalid("missing data")
	}

	switch collection {
	case pb.CollectionWorkouts:
		w := decodeWorkout(ownerID, id, data)
		if err := s.check(w); err != nil {
			return err
		}
		if w.UserID != ownerID {
			return common.ErrForbidden
		}
		return s.repomanager.Workouts(s.db).Update(ctx, &w)

	case pb.CollectionExercises:
		e := decodeExercise(ownerID, id, data)
		if err := s.check(e); err != nil {
			return err
		}
		return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			if err := s.ownWorkout(ctx, tx, ownerID, e.WorkoutID); err != nil {
				return err
			}
			return s.repomanager.Exercises(tx).Update(ctx, &e)
		})

	default:
		return common.ErrUnknownCollection
	}
}

// Patch sets only the given fields. The patched document is validated as a
// whole before anything is written.
func (s *DocumentService) Patch(ctx context.Context, ownerID, collection, id string, fields *structpb.Struct) error {
	switch collection {
	case pb.CollectionWorkouts:
		return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			repo := s.repomanager.Workouts(tx)
			w, err := repo.Get(ctx, ownerID, id)
			if err != nil {
				return err
			}
			cols, err := applyWorkoutPatch(w, fields)
			if err != nil {
				return err
			}
			if err := s.check(w); err != nil {
				return err
			}
			if w.UserID != ownerID {
				return common.ErrForbidden
			}
			return repo.Patch(ctx, ownerID, id, cols)
		})

	case pb.CollectionExercises:
		return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			repo := s.repomanager.Exercises(tx)
			e, err := repo.Get(ctx, ownerID, id)
			if err != nil {
				return err
			}
			cols, err := applyExercisePatch(e, fields)
			if err != nil {
				return err
			}
			if err := s.check(e); err != nil {
				return err
			}
			if _, moved := cols["workout_id"]; moved {
				if err := s.ownWorkout(ctx, tx, ownerID, e.WorkoutID); err != nil {
					return err
				}
			}
			return repo.Patch(ctx, ownerID, id, cols)
		})

	default:
		return common.ErrUnknownCollection
	}
}

// Delete removes one document. Exercises of a deleted workout go with it.
func (s *DocumentService) Delete(ctx context.Context, ownerID, collection, id string) error {
	switch collection {
	case pb.CollectionWorkouts:
		return s.repomanager.Workouts(s.db).Delete(ctx, ownerID, id)
	case pb.CollectionExercises:
		return s.repomanager.Exercises(s.db).Delete(ctx, ownerID, id)
	default:
		return common.ErrUnknownCollection
	}
}

// List returns the documents under parentID: workouts by userId, newest
// first, and exercises by workoutId.
func (s *DocumentService) List(ctx context.Context, ownerID, collection, parentID string) ([]*structpb.Struct, error) {
	switch collection {
	case pb.CollectionWorkouts:
		items, err := s.repomanager.Workouts(s.db).ListByUser(ctx, ownerID, parentID)
		if err != nil {
			return nil, err
		}
		return encodeAll(items, encodeWorkout)
	case pb.CollectionExercises:
		items, err := s.repomanager.Exercises(s.db).ListByWorkout(ctx, ownerID, parentID)
		if err != nil {
			return nil, err
		}
		return encodeAll(items, encodeExercise)
	default:
		return nil, common.ErrUnknownCollection
	}
}

func encodeAll[T models.Workout | models.Exercise](items []T, encode func(*T) (*structpb.Struct, error)) ([]*structpb.Struct, error) {
	out := make([]*structpb.Struct, 0, len(items))
	for i := range items {
		doc, err := encode(&items[i])
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}
