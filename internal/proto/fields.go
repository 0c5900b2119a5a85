package proto

import (
	"google.golang.org/protobuf/types/known/structpb"
)

// MetadataAccessToken is the outgoing metadata key carrying the JWT.
const MetadataAccessToken = "access_token"

// Collections.
const (
	CollectionWorkouts  = "workouts"
	CollectionExercises = "exercises"
)

// Request keys.
const (
	KeyCollection  = "collection"
	KeyID          = "id"
	KeyData        = "data"
	KeyFields      = "fields"
	KeyParentID    = "parent_id"
	KeyUsername    = "username"
	KeyPassword    = "password"
	KeyUserID      = "user_id"
	KeyAccessToken = "access_token"
	KeyExt         = "ext"
	KeyContentType = "content_type"
	KeyObjectKey   = "key"
	KeyUploadURL   = "upload_url"
	KeyPublicURL   = "public_url"
)

// Document fields. Dates are unix milliseconds.
const (
	FieldID           = "id"
	FieldUserID       = "userId"
	FieldName         = "name"
	FieldDescription  = "description"
	FieldDate         = "date"
	FieldWorkoutID    = "workoutId"
	FieldObservations = "observations"
	FieldImageURL     = "imageUrl"
	FieldPosition     = "position"
)

// String returns the string value under key, or "" when it is absent or not
// a string.
func String(s *structpb.Struct, key string) string {
	if s == nil {
		return ""
	}
	v, ok := s.GetFields()[key]
	if !ok {
		return ""
	}
	return v.GetStringValue()
}

// OptionalString distinguishes an absent or null value from an empty string.
func OptionalString(s *structpb.Struct, key string) *string {
	if s == nil {
		return nil
	}
	v, ok := s.GetFields()[key]
	if !ok {
		return nil
	}
	if _, isNull := v.GetKind().(*structpb.Value_NullValue); isNull {
		return nil
	}
	str := v.GetStringValue()
	return &str
}

// Int64 returns the numeric value under key truncated to int64.
func Int64(s *structpb.Struct, key string) int64 {
	if s == nil {
		return 0
	}
	v, ok := s.GetFields()[key]
	if !ok {
		return 0
	}
	return int64(v.GetNumberValue())
}

// Struct returns the nested struct under key or nil.
func Struct(s *structpb.Struct, key string) *structpb.Struct {
	if s == nil {
		return nil
	}
	v, ok := s.GetFields()[key]
	if !ok {
		return nil
	}
	return v.GetStructValue()
}

// Has reports whether key is present.
func Has(s *structpb.Struct, key string) bool {
	if s == nil {
		return false
	}
	_, ok := s.GetFields()[key]
	return ok
}

// NewRequest builds a request struct. Values must be accepted by
// structpb.NewValue; *structpb.Struct values are nested as is.
func NewRequest(kv map[string]any) (*structpb.Struct, error) {
	out := &structpb.Struct{Fields: make(map[string]*structpb.Value, len(kv))}
	for k, v := range kv {
		if nested, ok := v.(*structpb.Struct); ok {
			out.Fields[k] = structpb.NewStructValue(nested)
			continue
		}
		val, err := structpb.NewValue(v)
		if err != nil {
			return nil, err
		}
		out.Fields[k] = val
	}
	return out, nil
}
