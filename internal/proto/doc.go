// Package proto declares the gympro DocumentService gRPC contract.
//
// Messages are protobuf well-known types: requests and documents travel as
// structpb.Struct, lists as structpb.ListValue, scalar replies as
// wrapperspb.StringValue and empty replies as emptypb.Empty. Key names used
// inside the structs are the constants in fields.go.
package proto
