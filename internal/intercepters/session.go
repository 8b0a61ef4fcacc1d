package intercepters

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/atinyakov/go-link-tracker/internal/app/service"
	"github.com/atinyakov/go-link-tracker/internal/apperr"
	"github.com/atinyakov/go-link-tracker/internal/middleware"
)

// WithSession reads "authorization: Bearer <token>" from the call metadata and
// stores the session in the context. Calls without a token continue
// anonymously; a token that does not verify is rejected.
func WithSession(auth service.AuthIface, log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return handler(ctx, req)
		}

		values := md.Get("authorization")
		if len(values) == 0 || values[0] == "" {
			return handler(ctx, req)
		}

		raw := strings.TrimSpace(strings.TrimPrefix(values[0], "Bearer "))

		session, err := auth.ParseToken(ctx, raw)
		if err != nil {
			if apperr.KindOf(err) == apperr.KindAuthorization {
				return nil, status.Error(codes.Unauthenticated, "invalid session")
			}
			log.Error("cannot verify session", zap.String("method", info.FullMethod), zap.Error(err))
			return nil, status.Error(codes.Unavailable, "cannot verify session")
		}

		return handler(middleware.WithSessionContext(ctx, session), req)
	}
}
