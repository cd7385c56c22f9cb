package grpc

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/simaogato/transfermarket-backend/internal/domain"
)

// mapError converts domain errors to gRPC status errors.
// Unclassified errors become Internal with a generic message; the cause is logged by the logging interceptor.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrInsufficientBudget):
		return status.Error(codes.ResourceExhausted, err.Error())
	case errors.Is(err, domain.ErrStateConflict):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		return &internalError{cause: err}
	}
}

// internalError reports codes.Internal to the client while keeping the cause for server-side logs
type internalError struct {
	cause error
}

func (e *internalError) Error() string {
	return e.cause.Error()
}

func (e *internalError) Unwrap() error {
	return e.cause
}

// GRPCStatus hides the cause from the client
func (e *internalError) GRPCStatus() *status.Status {
	return status.New(codes.Internal, "internal server error")
}
