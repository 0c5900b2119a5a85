package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "gympro.v1.DocumentService"

const (
	MethodPing            = "/" + ServiceName + "/Ping"
	MethodRegister        = "/" + ServiceName + "/Register"
	MethodLogin           = "/" + ServiceName + "/Login"
	MethodCreateDocument  = "/" + ServiceName + "/CreateDocument"
	MethodGetDocument     = "/" + ServiceName + "/GetDocument"
	MethodReplaceDocument = "/" + ServiceName + "/ReplaceDocument"
	MethodPatchDocument   = "/" + ServiceName + "/PatchDocument"
	MethodDeleteDocument  = "/" + ServiceName + "/DeleteDocument"
	MethodListDocuments   = "/" + ServiceName + "/ListDocuments"
	MethodPresignUpload   = "/" + ServiceName + "/PresignUpload"
	MethodDeleteAsset     = "/" + ServiceName + "/DeleteAsset"
)

// DocumentServiceClient is the client API for DocumentService.
type DocumentServiceClient interface {
	Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	Register(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	Login(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	CreateDocument(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	GetDocument(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ReplaceDocument(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	PatchDocument(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	DeleteDocument(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	ListDocuments(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.ListValue, error)
	PresignUpload(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	DeleteAsset(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error)
}

type documentServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewDocumentServiceClient(cc grpc.ClientConnInterface) DocumentServiceClient {
	return &documentServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *documentServiceClient) Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	return invoke[wrapperspb.StringValue](ctx, c.cc, MethodPing, in, opts)
}

func (c *documentServiceClient) Register(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, MethodRegister, in, opts)
}

func (c *documentServiceClient) Login(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, MethodLogin, in, opts)
}

func (c *documentServiceClient) CreateDocument(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	return invoke[wrapperspb.StringValue](ctx, c.cc, MethodCreateDocument, in, opts)
}

func (c *documentServiceClient) GetDocument(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, MethodGetDocument, in, opts)
}

func (c *documentServiceClient) ReplaceDocument(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, MethodReplaceDocument, in, opts)
}

func (c *documentServiceClient) PatchDocument(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, MethodPatchDocument, in, opts)
}

func (c *documentServiceClient) DeleteDocument(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, MethodDeleteDocument, in, opts)
}

func (c *documentServiceClient) ListDocuments(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	return invoke[structpb.ListValue](ctx, c.cc, MethodListDocuments, in, opts)
}

func (c *documentServiceClient) PresignUpload(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, MethodPresignUpload, in, opts)
}

func (c *documentServiceClient) DeleteAsset(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, MethodDeleteAsset, in, opts)
}

// DocumentServiceServer is the server API for DocumentService.
type DocumentServiceServer interface {
	Ping(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
	Register(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	Login(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateDocument(context.Context, *structpb.Struct) (*wrapperspb.StringValue, error)
	GetDocument(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ReplaceDocument(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	PatchDocument(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	DeleteDocument(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	ListDocuments(context.Context, *structpb.Struct) (*structpb.ListValue, error)
	PresignUpload(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteAsset(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error)
}

// UnimplementedDocumentServiceServer answers every method with
// codes.Unimplemented. Embed it to stay forward compatible.
type UnimplementedDocumentServiceServer struct{}

func unimplemented(name string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", name)
}

func (UnimplementedDocumentServiceServer) Ping(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return nil, unimplemented("Ping")
}
func (UnimplementedDocumentServiceServer) Register(context.Context, *structpb.Struct) (*emptypb.Empty, error) {
	return nil, unimplemented("Register")
}
func (UnimplementedDocumentServiceServer) Login(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("Login")
}
func (UnimplementedDocumentServiceServer) CreateDocument(context.Context, *structpb.Struct) (*wrapperspb.StringValue, error) {
	return nil, unimplemented("CreateDocument")
}
func (UnimplementedDocumentServiceServer) GetDocument(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("GetDocument")
}
func (UnimplementedDocumentServiceServer) ReplaceDocument(context.Context, *structpb.Struct) (*emptypb.Empty, error) {
	return nil, unimplemented("ReplaceDocument")
}
func (UnimplementedDocumentServiceServer) PatchDocument(context.Context, *structpb.Struct) (*emptypb.Empty, error) {
	return nil, unimplemented("PatchDocument")
}
func (UnimplementedDocumentServiceServer) DeleteDocument(context.Context, *structpb.Struct) (*emptypb.Empty, error) {
	return nil, unimplemented("DeleteDocument")
}
func (UnimplementedDocumentServiceServer) ListDocuments(context.Context, *structpb.Struct) (*structpb.ListValue, error) {
	return nil, unimplemented("ListDocuments")
}
func (UnimplementedDocumentServiceServer) PresignUpload(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented("PresignUpload")
}
func (UnimplementedDocumentServiceServer) DeleteAsset(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error) {
	return nil, unimplemented("DeleteAsset")
}

func handler[Req any, Resp any](fullMethod string, call func(DocumentServiceServer, context.Context, *Req) (Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(DocumentServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		next := func(ctx context.Context, req any) (any, error) {
			return call(srv.(DocumentServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, next)
	}
}

var DocumentServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DocumentServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: handler(MethodPing, DocumentServiceServer.Ping)},
		{MethodName: "Register", Handler: handler(MethodRegister, DocumentServiceServer.Register)},
		{MethodName: "Login", Handler: handler(MethodLogin, DocumentServiceServer.Login)},
		{MethodName: "CreateDocument", Handler: handler(MethodCreateDocument, DocumentServiceServer.CreateDocument)},
		{MethodName: "GetDocument", Handler: handler(MethodGetDocument, DocumentServiceServer.GetDocument)},
		{MethodName: "ReplaceDocument", Handler: handler(MethodReplaceDocument, DocumentServiceServer.ReplaceDocument)},
		{MethodName: "PatchDocument", Handler: handler(MethodPatchDocument, DocumentServiceServer.PatchDocument)},
		{MethodName: "DeleteDocument", Handler: handler(MethodDeleteDocument, DocumentServiceServer.DeleteDocument)},
		{MethodName: "ListDocuments", Handler: handler(MethodListDocuments, DocumentServiceServer.ListDocuments)},
		{MethodName: "PresignUpload", Handler: handler(MethodPresignUpload, DocumentServiceServer.PresignUpload)},
		{MethodName: "DeleteAsset", Handler: handler(MethodDeleteAsset, DocumentServiceServer.DeleteAsset)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gympro/v1/document_service",
}

func RegisterDocumentServiceServer(s grpc.ServiceRegistrar, srv DocumentServiceServer) {
	s.RegisterService(&DocumentServiceDesc, srv)
}
