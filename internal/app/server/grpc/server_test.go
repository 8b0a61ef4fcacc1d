package grpc_test

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/atinyakov/go-link-tracker/internal/app/server/grpc"
	"github.com/atinyakov/go-link-tracker/internal/app/service"
	"github.com/atinyakov/go-link-tracker/internal/apperr"
	"github.com/atinyakov/go-link-tracker/internal/middleware"
	"github.com/atinyakov/go-link-tracker/internal/mocks"
	"github.com/atinyakov/go-link-tracker/internal/models"
)

type fixture struct {
	views  *mocks.MockViewServiceIface
	links  *mocks.MockLinkServiceIface
	stats  *mocks.MockStatsServiceIface
	auth   *mocks.MockAuthIface
	client *grpc.Client
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &fixture{
		views: mocks.NewMockViewServiceIface(ctrl),
		links: mocks.NewMockLinkServiceIface(ctrl),
		stats: mocks.NewMockStatsServiceIface(ctrl),
		auth:  mocks.NewMockAuthIface(ctrl),
	}

	impl := &grpc.LinkViewerServer{
		Views:         f.views,
		Links:         f.links,
		Stats:         f.stats,
		TrustedSubnet: "10.0.0.0/24",
		Logger:        zap.NewNop(),
	}
	srv := grpc.New(impl, f.auth, zap.NewNop(), 0)

	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.GracefulStop)

	conn, err := gogrpc.NewClient("passthrough:///bufnet",
		gogrpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		gogrpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	f.client = grpc.NewClient(conn)
	return f
}

func TestOpenLink(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pw := "pw"
	link := &models.Link{ID: "l1", Token: "AbCd1234", Name: "Docs", URL: "https://example.com/docs", Password: &pw}

	t.Run("gated without password", func(t *testing.T) {
		f.views.EXPECT().Open(gomock.Any(), gomock.Any()).
			Return(&service.ViewResult{Link: link, Decision: service.GateDecision{Protected: true}}, nil)

		resp, err := f.client.OpenLink(ctx, &grpc.OpenLinkRequest{Token: "AbCd1234"})
		require.NoError(t, err)
		assert.True(t, resp.Protected)
		assert.Empty(t, resp.URL)
	})

	t.Run("password passed through", func(t *testing.T) {
		f.views.EXPECT().Open(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req service.ViewRequest) (*service.ViewResult, error) {
				require.NotNil(t, req.Password)
				assert.Equal(t, "pw", *req.Password)
				assert.Nil(t, req.ViewerID)
				return &service.ViewResult{Link: link, Decision: service.GateDecision{Protected: true, Attempted: true, Visible: true}}, nil
			})

		resp, err := f.client.OpenLink(ctx, &grpc.OpenLinkRequest{Token: "AbCd1234", Password: &pw})
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/docs", resp.URL)
	})

	t.Run("wrong password", func(t *testing.T) {
		f.views.EXPECT().Open(gomock.Any(), gomock.Any()).
			Return(&service.ViewResult{Link: link, Decision: service.GateDecision{Protected: true, Attempted: true, Denied: true}}, nil)

		bad := "nope"
		_, err := f.client.OpenLink(ctx, &grpc.OpenLinkRequest{Token: "AbCd1234", Password: &bad})
		assert.Equal(t, codes.PermissionDenied, status.Code(err))
	})

	t.Run("unknown token", func(t *testing.T) {
		f.views.EXPECT().Open(gomock.Any(), gomock.Any()).Return(nil, apperr.ErrNotFound)

		_, err := f.client.OpenLink(ctx, &grpc.OpenLinkRequest{Token: "missing"})
		assert.Equal(t, codes.NotFound, status.Code(err))
	})

	t.Run("store failure hides detail", func(t *testing.T) {
		f.views.EXPECT().Open(gomock.Any(), gomock.Any()).Return(nil, errors.New("pq: too many connections"))

		_, err := f.client.OpenLink(ctx, &grpc.OpenLinkRequest{Token: "AbCd1234"})
		assert.Equal(t, codes.Internal, status.Code(err))
		assert.NotContains(t, err.Error(), "too many connections")
	})
}

func TestGetDashboard(t *testing.T) {
	f := newFixture(t)

	t.Run("anonymous", func(t *testing.T) {
		_, err := f.client.GetDashboard(context.Background())
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("signed in", func(t *testing.T) {
		f.auth.EXPECT().ParseToken(gomock.Any(), "good").Return(&models.Session{UserID: "u1"}, nil)
		f.stats.EXPECT().Dashboard(gomock.Any(), "u1").Return(&models.Dashboard{TotalLinks: 1, TotalViews: 4}, nil)

		ctx := metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer good")
		dash, err := f.client.GetDashboard(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(4), dash.TotalViews)
	})
}

func TestListLinks(t *testing.T) {
	f := newFixture(t)

	f.auth.EXPECT().ParseToken(gomock.Any(), "good").Return(&models.Session{UserID: "u1"}, nil)
	f.links.EXPECT().List(gomock.Any(), "u1").Return([]models.Link{{ID: "l1", Token: "AbCd1234"}}, nil)
	f.links.EXPECT().ViewURL("AbCd1234").Return("http://x/view?token=AbCd1234")

	ctx := metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer good")
	resp, err := f.client.ListLinks(ctx)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "http://x/view?token=AbCd1234", resp.Items[0].ViewURL)
}

func TestGetServiceStats(t *testing.T) {
	f := newFixture(t)

	t.Run("outside subnet", func(t *testing.T) {
		ctx := metadata.AppendToOutgoingContext(context.Background(), "x-real-ip", "192.168.1.1")
		_, err := f.client.GetServiceStats(ctx)
		assert.Equal(t, codes.PermissionDenied, status.Code(err))
	})

	t.Run("trusted caller", func(t *testing.T) {
		f.stats.EXPECT().ServiceStats(gomock.Any()).Return(&models.ServiceStats{Links: 5, Users: 2}, nil)

		ctx := metadata.AppendToOutgoingContext(context.Background(), "x-real-ip", "10.0.0.9")
		stats, err := f.client.GetServiceStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, &models.ServiceStats{Links: 5, Users: 2}, stats)
	})
}

func TestLinkViewerServer_Direct(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStats := mocks.NewMockStatsServiceIface(ctrl)
	impl := &grpc.LinkViewerServer{Stats: mockStats}

	ctx := middleware.WithSessionContext(context.Background(), &models.Session{UserID: "u1"})
	mockStats.EXPECT().Dashboard(gomock.Any(), "u1").Return(nil, apperr.ErrNotFound)

	_, err := impl.GetDashboard(ctx, &grpc.Empty{})
	assert.Equal(t, codes.NotFound, status.Code(err))
}
