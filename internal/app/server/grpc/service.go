package grpc

import (
	"context"

	"google.golang.org/grpc"

	"github.com/atinyakov/go-link-tracker/internal/models"
)

// serviceName is the fully qualified gRPC service name.
const serviceName = "linktracker.LinkViewer"

// OpenLinkRequest asks for a link by token, optionally with a password attempt.
type OpenLinkRequest struct {
	Token    string  `json:"token"`
	Password *string `json:"password,omitempty"`
}

// Empty is the request of calls that take no arguments.
type Empty struct{}

// ListLinksResponse holds the caller's links.
type ListLinksResponse struct {
	Items []models.LinkResponse `json:"items"`
}

// LinkViewerService is the server API registered under serviceName.
type LinkViewerService interface {
	OpenLink(ctx context.Context, req *OpenLinkRequest) (*models.ViewResponse, error)
	ListLinks(ctx context.Context, req *Empty) (*ListLinksResponse, error)
	GetDashboard(ctx context.Context, req *Empty) (*models.Dashboard, error)
	GetServiceStats(ctx context.Context, req *Empty) (*models.ServiceStats, error)
}

// unary builds a method handler that decodes Req and dispatches to call.
func unary[Req any](method string, call func(srv LinkViewerService, ctx context.Context, req *Req) (any, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(LinkViewerService), ctx, in)
			}

			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + serviceName + "/" + method,
			}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(LinkViewerService), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes LinkViewerService for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*LinkViewerService)(nil),
	Methods: []grpc.MethodDesc{
		unary("OpenLink", func(srv LinkViewerService, ctx context.Context, req *OpenLinkRequest) (any, error) {
			return srv.OpenLink(ctx, req)
		}),
		unary("ListLinks", func(srv LinkViewerService, ctx context.Context, req *Empty) (any, error) {
			return srv.ListLinks(ctx, req)
		}),
		unary("GetDashboard", func(srv LinkViewerService, ctx context.Context, req *Empty) (any, error) {
			return srv.GetDashboard(ctx, req)
		}),
		unary("GetServiceStats", func(srv LinkViewerService, ctx context.Context, req *Empty) (any, error) {
			return srv.GetServiceStats(ctx, req)
		}),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "linktracker",
}

// Client calls LinkViewerService over a client connection.
type Client struct {
	conn grpc.ClientConnInterface
}

// NewClient wraps conn.
func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

func (c *Client) invoke(ctx context.Context, method string, in, out any, opts ...grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	return c.conn.Invoke(ctx, "/"+serviceName+"/"+method, in, out, opts...)
}

// OpenLink opens a link by token.
func (c *Client) OpenLink(ctx context.Context, in *OpenLinkRequest, opts ...grpc.CallOption) (*models.ViewResponse, error) {
	out := new(models.ViewResponse)
	if err := c.invoke(ctx, "OpenLink", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// ListLinks returns the caller's links.
func (c *Client) ListLinks(ctx context.Context, opts ...grpc.CallOption) (*ListLinksResponse, error) {
	out := new(ListLinksResponse)
	if err := c.invoke(ctx, "ListLinks", &Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// GetDashboard returns the caller's dashboard.
func (c *Client) GetDashboard(ctx context.Context, opts ...grpc.CallOption) (*models.Dashboard, error) {
	out := new(models.Dashboard)
	if err := c.invoke(ctx, "GetDashboard", &Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// GetServiceStats returns service-wide counts.
func (c *Client) GetServiceStats(ctx context.Context, opts ...grpc.CallOption) (*models.ServiceStats, error) {
	out := new(models.ServiceStats)
	if err := c.invoke(ctx, "GetServiceStats", &Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
