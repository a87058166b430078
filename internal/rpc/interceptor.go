package rpc

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/auth"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const requestIDKey = "x-request-id"

// Code maps an error kind onto the gRPC status code callers see.
func Code(kind apperror.Kind) codes.Code {
	switch kind {
	case apperror.KindBadRequest:
		return codes.InvalidArgument
	case apperror.KindNotFound:
		return codes.NotFound
	case apperror.KindConflict:
		return codes.AlreadyExists
	case apperror.KindPreconditionFailed:
		return codes.FailedPrecondition
	case apperror.KindTimeout:
		return codes.DeadlineExceeded
	default:
		return codes.Internal
	}
}

// RecoveryInterceptor turns a handler panic into an INTERNAL status.
func RecoveryInterceptor(log logger.ZapLogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic in grpc handler",
					zap.String("method", info.FullMethod),
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()),
				)
				err = status.Error(codes.Internal, apperror.MessageInternal)
			}
		}()
		return handler(ctx, req)
	}
}

// ContextInterceptor builds the request context from x-request-id metadata and echoes the id back.
func ContextInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		incoming := ""
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if vals := md.Get(requestIDKey); len(vals) > 0 {
				incoming = vals[0]
			}
		}
		rc := auth.NewRequestContext(incoming)
		ctx = auth.WithRequestContext(ctx, rc)
		_ = grpc.SetHeader(ctx, metadata.Pairs(requestIDKey, rc.RequestID))

		return handler(ctx, req)
	}
}

func LoggingInterceptor(log logger.ZapLogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		log.Info("grpc request",
			zap.String("method", info.FullMethod),
			zap.String("code", status.Code(err).String()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", auth.GetRequestID(ctx)),
		)
		return resp, err
	}
}

// ErrorInterceptor translates domain errors into status errors. Status errors pass through.
func ErrorInterceptor(tracker *apperror.Tracker) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		if _, ok := status.FromError(err); ok {
			return nil, err
		}

		appErr := tracker.Track(ctx, err, zap.String("method", info.FullMethod))
		return nil, status.Error(Code(appErr.Kind), appErr.Message)
	}
}
