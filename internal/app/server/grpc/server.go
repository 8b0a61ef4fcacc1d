// Package grpc exposes the public view endpoint and the signed-in read API
// over gRPC.
package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/atinyakov/go-link-tracker/internal/app/service"
	"github.com/atinyakov/go-link-tracker/internal/apperr"
	"github.com/atinyakov/go-link-tracker/internal/intercepters"
	"github.com/atinyakov/go-link-tracker/internal/middleware"
	"github.com/atinyakov/go-link-tracker/internal/models"
)

// Server wraps the gRPC server and dependencies.
type Server struct {
	grpcServer *grpc.Server
	port       int
	logger     *zap.Logger
}

// New creates a gRPC server serving impl.
func New(impl *LinkViewerServer, auth service.AuthIface, logger *zap.Logger, port int) *Server {
	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logging.UnaryServerInterceptor(intercepters.InterceptorLogger(logger)),
			intercepters.SubnetIPInterceptor,
			intercepters.WithSession(auth, logger),
		),
	)

	s.RegisterService(&ServiceDesc, impl)

	return &Server{
		grpcServer: s,
		port:       port,
		logger:     logger,
	}
}

// Serve accepts connections on lis until the server stops.
func (s *Server) Serve(lis net.Listener) error {
	return s.grpcServer.Serve(lis)
}

// Start listens on the configured port and serves.
func (s *Server) Start() error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		s.logger.Error("gRPC server failed to listen", zap.Error(err))
		return err
	}

	s.logger.Info("gRPC server listening on port", zap.Int("port", s.port))
	return s.Serve(lis)
}

// GracefulStop shuts down the server gracefully.
func (s *Server) GracefulStop() {
	s.grpcServer.GracefulStop()
}

// LinkViewerServer implements LinkViewerService on top of the services.
type LinkViewerServer struct {
	Views         service.ViewServiceIface
	Links         service.LinkServiceIface
	Stats         service.StatsServiceIface
	TrustedSubnet string
	Logger        *zap.Logger
}

// toStatus maps service errors to gRPC status codes. Unexpected errors are
// logged and reported without detail.
func (s *LinkViewerServer) toStatus(err error) error {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		return status.Error(codes.NotFound, err.Error())
	case apperr.KindValidation:
		return status.Error(codes.InvalidArgument, err.Error())
	case apperr.KindConflict:
		return status.Error(codes.AlreadyExists, err.Error())
	case apperr.KindAuthorization:
		if errors.Is(err, apperr.ErrForbidden) {
			return status.Error(codes.PermissionDenied, err.Error())
		}
		return status.Error(codes.Unauthenticated, err.Error())
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	}

	if s.Logger != nil {
		s.Logger.Error("rpc failed", zap.Error(err))
	}
	return status.Error(codes.Internal, "temporarily unavailable, please retry")
}

func requireSession(ctx context.Context) (*models.Session, error) {
	session, ok := middleware.SessionFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "sign in required")
	}
	return session, nil
}

// OpenLink resolves a token, applies the password gate and records the view
// when the destination is revealed.
func (s *LinkViewerServer) OpenLink(ctx context.Context, req *OpenLinkRequest) (*models.ViewResponse, error) {
	var client string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if ua := md.Get("user-agent"); len(ua) > 0 {
			client = ua[0]
		}
	}

	result, err := s.Views.Open(ctx, service.ViewRequest{
		Token:    req.Token,
		Password: req.Password,
		ViewerID: middleware.UserIDFromContext(ctx),
		Client:   client,
	})
	if err != nil {
		return nil, s.toStatus(err)
	}

	if result.Decision.Denied {
		return nil, status.Error(codes.PermissionDenied, "wrong password")
	}

	link := result.Link
	resp := &models.ViewResponse{
		Token:        link.Token,
		Name:         link.Name,
		Description:  link.Description,
		ThumbnailURL: link.Thumbnail(),
		Protected:    result.Decision.Protected,
		Visible:      result.Decision.Visible,
		Password:     result.Decision.RevealedPassword,
		Views:        link.Views,
	}
	if result.Decision.Visible {
		resp.URL = link.URL
	}

	return resp, nil
}

// ListLinks returns the caller's links.
func (s *LinkViewerServer) ListLinks(ctx context.Context, _ *Empty) (*ListLinksResponse, error) {
	session, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}

	links, err := s.Links.List(ctx, session.UserID)
	if err != nil {
		return nil, s.toStatus(err)
	}

	items := make([]models.LinkResponse, 0, len(links))
	for _, l := range links {
		items = append(items, models.LinkResponse{Link: l, ViewURL: s.Links.ViewURL(l.Token)})
	}

	return &ListLinksResponse{Items: items}, nil
}

// GetDashboard returns the caller's statistics.
func (s *LinkViewerServer) GetDashboard(ctx context.Context, _ *Empty) (*models.Dashboard, error) {
	session, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}

	dash, err := s.Stats.Dashboard(ctx, session.UserID)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return dash, nil
}

// GetServiceStats returns service-wide counts to callers in the trusted subnet.
func (s *LinkViewerServer) GetServiceStats(ctx context.Context, _ *Empty) (*models.ServiceStats, error) {
	if !intercepters.TrustedCaller(ctx, s.TrustedSubnet) {
		return nil, status.Error(codes.PermissionDenied, "caller outside trusted subnet")
	}

	stats, err := s.Stats.ServiceStats(ctx)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return stats, nil
}
