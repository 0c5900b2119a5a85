// Package grpc serves the DocumentService over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/gympro/internal/logging"
	pb "github.com/dmitrijs2005/gympro/internal/proto"
	"github.com/dmitrijs2005/gympro/internal/server/models"
	"github.com/dmitrijs2005/gympro/internal/server/observability"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

type UserService interface {
	Register(ctx context.Context, userName, password string) (*models.User, error)
	Login(ctx context.Context, userName, password string) (string, string, error)
	AccountID(token string) (string, error)
}

type DocumentService interface {
	Create(ctx context.Context, ownerID, collection, id string, data *structpb.Struct) (string, error)
	Get(ctx context.Context, ownerID, collection, id string) (*structpb.Struct, error)
	Replace(ctx context.Context, ownerID, collection, id string, data *structpb.Struct) error
	Patch(ctx context.Context, ownerID, collection, id string, fields *structpb.Struct) error
	Delete(ctx context.Context, ownerID, collection, id string) error
	List(ctx context.Context, ownerID, collection, parentID string) ([]*structpb.Struct, error)
}

type AssetService interface {
	PresignUpload(ctx context.Context, ownerID, key, contentType string) (string, string, error)
	DeleteAsset(ctx context.Context, ownerID, publicURL string) error
}

type GRPCServer struct {
	pb.UnimplementedDocumentServiceServer
	address   string
	users     UserService
	documents DocumentService
	assets    AssetService
	metrics   *observability.Metrics
	logger    logging.Logger
}

func NewGRPCServer(address string, l logging.Logger, us UserService, ds DocumentService, as AssetService, m *observability.Metrics) *GRPCServer {
	return &GRPCServer{
		address:   address,
		logger:    l.With("module", "grpc_server"),
		users:     us,
		documents: ds,
		assets:    as,
		metrics:   m,
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	var chain []grpc.UnaryServerInterceptor
	if s.metrics != nil {
		chain = append(chain, s.metrics.UnaryServerInterceptor())
	}
	chain = append(chain, s.accessTokenInterceptor)

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(chain...))
	pb.RegisterDocumentServiceServer(srv, s)
	return srv
}

// Run serves until ctx is cancelled, then stops gracefully.
func (s *GRPCServer) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.serve(ctx, lis)
}

func (s *GRPCServer) serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())
	return srv.Serve(lis)
}
