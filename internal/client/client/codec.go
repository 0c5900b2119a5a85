package client

import (
	"time"

	"github.com/dmitrijs2005/gympro/internal/client/models"
	pb "github.com/dmitrijs2005/gympro/internal/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Codec converts an entity to and from its document form.
type Codec[T any] struct {
	Encode func(T) map[string]any
	Decode func(*structpb.Struct) T
}

var WorkoutCodec = Codec[models.Workout]{
	Encode: func(w models.Workout) map[string]any {
		return map[string]any{
			pb.FieldID:          w.ID,
			pb.FieldUserID:      w.UserID,
			pb.FieldName:        w.Name,
			pb.FieldDescription: w.Description,
			pb.FieldDate:        w.Date.UnixMilli(),
		}
	},
	Decode: func(s *structpb.Struct) models.Workout {
		return models.Workout{
			ID:          pb.String(s, pb.FieldID),
			UserID:      pb.String(s, pb.FieldUserID),
			Name:        pb.String(s, pb.FieldName),
			Description: pb.String(s, pb.FieldDescription),
			Date:        time.UnixMilli(pb.Int64(s, pb.FieldDate)).UTC(),
		}
	},
}

var ExerciseCodec = Codec[models.Exercise]{
	Encode: func(e models.Exercise) map[string]any {
		var image any
		if e.ImageURL != nil {
			image = *e.ImageURL
		}
		return map[string]any{
			pb.FieldID:           e.ID,
			pb.FieldWorkoutID:    e.WorkoutID,
			pb.FieldName:         e.Name,
			pb.FieldObservations: e.Observations,
			pb.FieldImageURL:     image,
			pb.FieldPosition:     e.Position,
		}
	},
	Decode: func(s *structpb.Struct) models.Exercise {
		return models.Exercise{
			ID:           pb.String(s, pb.FieldID),
			WorkoutID:    pb.String(s, pb.FieldWorkoutID),
			Name:         pb.String(s, pb.FieldName),
			Observations: pb.String(s, pb.FieldObservations),
			ImageURL:     pb.OptionalString(s, pb.FieldImageURL),
			Position:     int(pb.Int64(s, pb.FieldPosition)),
		}
	},
}
