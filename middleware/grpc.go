package middleware

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// UnaryServerInterceptor creates a gRPC unary server interceptor that refuses
// calls with PermissionDenied while the installation license is invalid
func (c *LicenseClient) UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	c.startupValidation()

	return func(
		ctx context.Context,
		req any,
		_ *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		if err := c.gate(); err != nil {
			return nil, status.Error(codes.PermissionDenied, grpcMessage(err))
		}

		return handler(ctx, req)
	}
}

// StreamServerInterceptor creates a gRPC stream server interceptor that validates the license
func (c *LicenseClient) StreamServerInterceptor() grpc.StreamServerInterceptor {
	c.startupValidation()

	return func(
		srv any,
		ss grpc.ServerStream,
		_ *grpc.StreamServerInfo,
		handler grpc.StreamHandler,
	) error {
		if err := c.gate(); err != nil {
			return status.Error(codes.PermissionDenied, grpcMessage(err))
		}

		return handler(srv, ss)
	}
}
