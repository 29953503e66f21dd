package web

import (
	"context"
	"net"
	"net/http"

	"github.com/JonMunkholm/customerlookup/internal/assistant"
	"github.com/JonMunkholm/customerlookup/internal/core"
)

// WithRequestMetadata adds the caller's IP, User-Agent and request shape to
// ctx for the lookup audit log.
func WithRequestMetadata(ctx context.Context, r *http.Request, kind assistant.Kind) context.Context {
	ctx = core.ContextWithCallerIP(ctx, clientIP(r))
	ctx = core.ContextWithUserAgent(ctx, r.UserAgent())
	ctx = core.ContextWithCallerKind(ctx, string(kind))
	return ctx
}

// clientIP strips the port from RemoteAddr when present.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
