package store

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// grpcCode walks the error chain looking for a gRPC status.
func grpcCode(err error) codes.Code {
	for err != nil {
		if s, ok := status.FromError(err); ok {
			return s.Code()
		}
		err = errors.Unwrap(err)
	}
	return codes.Unknown
}

// IsPermissionDenied reports whether the backend rejected the operation
// for lack of permission. The reservation engine treats this as a known,
// fail-open condition distinct from other write failures.
func IsPermissionDenied(err error) bool {
	return grpcCode(err) == codes.PermissionDenied
}

// IsNotFound reports whether the error indicates a missing document.
func IsNotFound(err error) bool {
	return grpcCode(err) == codes.NotFound
}

// IsAlreadyExists reports whether a Create lost the race to an existing
// document.
func IsAlreadyExists(err error) bool {
	return grpcCode(err) == codes.AlreadyExists
}
