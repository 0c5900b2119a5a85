// Package client talks to the gympro document server over gRPC.
//
// GRPCClient owns the connection, attaches the access token to every call
// and maps gRPC status codes to sentinel errors. Collection is the
// per-kind RemoteStore used by the repositories, and Assets uploads and
// deletes exercise images through presigned URLs.
//
// Errors: ErrUnavailable, ErrUnauthorized and ErrAlreadyExists, plus
// common.ErrNotFound for missing documents.
package client
