package services

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/gympro/internal/common"
	pb "github.com/dmitrijs2005/gympro/internal/proto"
	"github.com/dmitrijs2005/gympro/internal/server/models"
	"google.golang.org/protobuf/types/known/structpb"
)

func decodeWorkout(ownerID, id string, s *structpb.Struct) models.Workout {
	userID := pb.String(s, pb.FieldUserID)
	if userID == "" {
		userID = ownerID
	}
	return models.Workout{
		ID:          id,
		OwnerID:     ownerID,
		UserID:      userID,
		Name:        pb.String(s, pb.FieldName),
		Description: pb.String(s, pb.FieldDescription),
		Date:        time.UnixMilli(pb.Int64(s, pb.FieldDate)).UTC(),
	}
}

func encodeWorkout(w *models.Workout) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		pb.FieldID:          w.ID,
		pb.FieldUserID:      w.UserID,
		pb.FieldName:        w.Name,
		pb.FieldDescription: w.Description,
		pb.FieldDate:        w.Date.UnixMilli(),
	})
}

func decodeExercise(ownerID, id string, s *structpb.Struct) models.Exercise {
	return models.Exercise{
		ID:           id,
		OwnerID:      ownerID,
		WorkoutID:    pb.String(s, pb.FieldWorkoutID),
		Name:         pb.String(s, pb.FieldName),
		Observations: pb.String(s, pb.FieldObservations),
		ImageURL:     pb.OptionalString(s, pb.FieldImageURL),
		Position:     int(pb.Int64(s, pb.FieldPosition)),
	}
}

func encodeExercise(e *models.Exercise) (*structpb.Struct, error) {
	var image any
	if e.ImageURL != nil {
		image = *e.ImageURL
	}
	return structpb.NewStruct(map[string]any{
		pb.FieldID:           e.ID,
		pb.FieldWorkoutID:    e.WorkoutID,
		pb.FieldName:         e.Name,
		pb.FieldObservations: e.Observations,
		pb.FieldImageURL:     image,
		pb.FieldPosition:     e.Position,
	})
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", common.ErrInvalidDocument, fmt.Sprintf(format, args...))
}

func stringValue(field string, v *structpb.Value) (string, error) {
	s, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", invalid("%s must be a string", field)
	}
	return s.StringValue, nil
}

func numberValue(field string, v *structpb.Value) (int64, error) {
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, invalid("%s must be a number", field)
	}
	return int64(n.NumberValue), nil
}

func optionalStringValue(field string, v *structpb.Value) (*string, error) {
	if _, ok := v.GetKind().(*structpb.Value_NullValue); ok {
		return nil, nil
	}
	s, err := stringValue(field, v)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// applyWorkoutPatch sets the named fields on w and returns the matching
// columns.
func applyWorkoutPatch(w *models.Workout, fields *structpb.Struct) (map[string]any, error) {
	cols := make(map[string]any, len(fields.GetFields()))
	for name, v := range fields.GetFields() {
		switch name {
		case pb.FieldName:
			s, err := stringValue(name, v)
			if err != nil {
				return nil, err
			}
			w.Name, cols["name"] = s, s
		case pb.FieldDescription:
			s, err := stringValue(name, v)
			if err != nil {
				return nil, err
			}
			w.Description, cols["description"] = s, s
		case pb.FieldDate:
			ms, err := numberValue(name, v)
			if err != nil {
				return nil, err
			}
			w.Date = time.UnixMilli(ms).UTC()
			cols["date"] = w.Date
		case pb.FieldUserID:
			s, err := stringValue(name, v)
			if err != nil {
				return nil, err
			}
			w.UserID, cols["user_id"] = s, s
		default:
			return nil, invalid("unknown workout field %q", name)
		}
	}
	return cols, nil
}

func applyExercisePatch(e *models.Exercise, fields *structpb.Struct) (map[string]any, error) {
	cols := make(map[string]any, len(fields.GetFields()))
	for name, v := range fields.GetFields() {
		switch name {
		case pb.FieldName:
			s, err := stringValue(name, v)
			if err != nil {
				return nil, err
			}
			e.Name, cols["name"] = s, s
		case pb.FieldObservations:
			s, err := stringValue(name, v)
			if err != nil {
				return nil, err
			}
			e.Observations, cols["observations"] = s, s
		case pb.FieldImageURL:
			s, err := optionalStringValue(name, v)
			if err != nil {
				return nil, err
			}
			e.ImageURL = s
			if s == nil {
				cols["image_url"] = nil
			} else {
				cols["image_url"] = *s
			}
		case pb.FieldPosition:
			n, err := numberValue(name, v)
			if err != nil {
				return nil, err
			}
			e.Position = int(n)
			cols["position"] = e.Position
		case pb.FieldWorkoutID:
			s, err := stringValue(name, v)
			if err != nil {
				return nil, err
			}
			e.WorkoutID, cols["workout_id"] = s, s
		default:
			return nil, invalid("unknown exercise field %q", name)
		}
	}
	return cols, nil
}
