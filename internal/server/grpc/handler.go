package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gympro/internal/common"
	pb "github.com/dmitrijs2005/gympro/internal/proto"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// toStatus maps service errors to gRPC codes. Unexpected errors are logged
// and hidden behind codes.Internal.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, common.ErrAlreadyExists):
		return status.Error(codes.AlreadyExists, "already exists")
	case errors.Is(err, common.ErrUnauthorized):
		return status.Error(codes.Unauthenticated, "unauthorized")
	case errors.Is(err, common.ErrForbidden):
		return status.Error(codes.PermissionDenied, "forbidden")
	case errors.Is(err, common.ErrInvalidDocument), errors.Is(err, common.ErrUnknownCollection):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	default:
		s.logger.Error(ctx, "request failed", "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}

func (s *GRPCServer) Ping(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return wrapperspb.String("OK"), nil
}

func (s *GRPCServer) Register(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	userName := pb.String(req, pb.KeyUsername)
	s.logger.Info(ctx, "Registration request", "username", userName)

	user, err := s.users.Register(ctx, userName, pb.String(req, pb.KeyPassword))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Info(ctx, "Registered", "username", userName, "id", user.ID)
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	accountID, token, err := s.users.Login(ctx, pb.String(req, pb.KeyUsername), pb.String(req, pb.KeyPassword))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return structpb.NewStruct(map[string]any{
		pb.KeyUserID:      accountID,
		pb.KeyAccessToken: token,
	})
}

// docRequest is the common part of the document calls.
type docRequest struct {
	owner      string
	collection string
	id         string
}

func parseDocRequest(ctx context.Context, req *structpb.Struct, needID bool) (docRequest, error) {
	owner, err := accountFromContext(ctx)
	if err != nil {
		return docRequest{}, err
	}
	r := docRequest{owner: owner, collection: pb.String(req, pb.KeyCollection), id: pb.String(req, pb.KeyID)}
	if r.collection == "" {
		return docRequest{}, status.Error(codes.InvalidArgument, "missing collection")
	}
	if needID && r.id == "" {
		return docRequest{}, status.Error(codes.InvalidArgument, "missing id")
	}
	return r, nil
}

func (s *GRPCServer) CreateDocument(ctx context.Context, req *structpb.Struct) (*wrapperspb.StringValue, error) {
	r, err := parseDocRequest(ctx, req, false)
	if err != nil {
		return nil, err
	}
	id, err := s.documents.Create(ctx, r.owner, r.collection, r.id, pb.Struct(req, pb.KeyData))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return wrapperspb.String(id), nil
}

func (s *GRPCServer) GetDocument(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r, err := parseDocRequest(ctx, req, true)
	if err != nil {
		return nil, err
	}
	doc, err := s.documents.Get(ctx, r.owner, r.collection, r.id)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return doc, nil
}

func (s *GRPCServer) ReplaceDocument(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	r, err := parseDocRequest(ctx, req, true)
	if err != nil {
		return nil, err
	}
	if err := s.documents.Replace(ctx, r.owner, r.collection, r.id, pb.Struct(req, pb.KeyData)); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) PatchDocument(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	r, err := parseDocRequest(ctx, req, true)
	if err != nil {
		return nil, err
	}
	if err := s.documents.Patch(ctx, r.owner, r.collection, r.id, pb.Struct(req, pb.KeyFields)); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) DeleteDocument(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	r, err := parseDocRequest(ctx, req, true)
	if err != nil {
		return nil, err
	}
	if err := s.documents.Delete(ctx, r.owner, r.collection, r.id); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) ListDocuments(ctx context.Context, req *structpb.Struct) (*structpb.ListValue, error) {
	r, err := parseDocRequest(ctx, req, false)
	if err != nil {
		return nil, err
	}
	docs, err := s.documents.List(ctx, r.owner, r.collection, pb.String(req, pb.KeyParentID))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	out := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(docs))}
	for _, d := range docs {
		out.Values = append(out.Values, structpb.NewStructValue(d))
	}
	return out, nil
}

func (s *GRPCServer) PresignUpload(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	owner, err := accountFromContext(ctx)
	if err != nil {
		return nil, err
	}
	key := pb.String(req, pb.KeyObjectKey)
	uploadURL, publicURL, err := s.assets.PresignUpload(ctx, owner, key, pb.String(req, pb.KeyContentType))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return structpb.NewStruct(map[string]any{
		pb.KeyObjectKey: key,
		pb.KeyUploadURL: uploadURL,
		pb.KeyPublicURL: publicURL,
	})
}

func (s *GRPCServer) DeleteAsset(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
	owner, err := accountFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.assets.DeleteAsset(ctx, owner, req.GetValue()); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &emptypb.Empty{}, nil
}
