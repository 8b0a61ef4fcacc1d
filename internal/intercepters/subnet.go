package intercepters

import (
	"context"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
)

type contextKey string

// RealIPKey stores the caller address taken from x-real-ip or the peer.
const RealIPKey contextKey = "real-ip"

// SubnetIPInterceptor records the caller IP in the context so handlers can check
// it against the trusted subnet. x-real-ip wins over the transport peer.
func SubnetIPInterceptor(
	ctx context.Context,
	req interface{},
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (interface{}, error) {
	if ip := realIP(ctx); ip != "" {
		ctx = context.WithValue(ctx, RealIPKey, ip)
	}
	return handler(ctx, req)
}

func realIP(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if ips := md.Get("x-real-ip"); len(ips) > 0 && ips[0] != "" {
			return ips[0]
		}
	}

	if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
		host, _, err := net.SplitHostPort(p.Addr.String())
		if err == nil {
			return host
		}
	}

	return ""
}

// TrustedCaller reports whether the IP stored by SubnetIPInterceptor lies in cidr.
func TrustedCaller(ctx context.Context, cidr string) bool {
	_, trusted, err := net.ParseCIDR(cidr)
	if err != nil {
		return false
	}

	raw, _ := ctx.Value(RealIPKey).(string)
	ip := net.ParseIP(raw)

	return ip != nil && trusted.Contains(ip)
}
