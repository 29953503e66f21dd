package core

import "context"

type contextKey string

const (
	ctxKeyCallerIP  contextKey = "lookup_caller_ip"
	ctxKeyUserAgent contextKey = "lookup_user_agent"
	ctxKeyCaller    contextKey = "lookup_caller_kind"
)

// ContextWithCallerIP adds the caller's IP address for the lookup audit log.
func ContextWithCallerIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ctxKeyCallerIP, ip)
}

// ContextWithUserAgent adds the caller's User-Agent for the lookup audit log.
func ContextWithUserAgent(ctx context.Context, ua string) context.Context {
	return context.WithValue(ctx, ctxKeyUserAgent, ua)
}

// ContextWithCallerKind records which request shape the caller used
// (function call, tool call, direct).
func ContextWithCallerKind(ctx context.Context, kind string) context.Context {
	return context.WithValue(ctx, ctxKeyCaller, kind)
}

// CallerIPFromContext extracts the caller IP, or "".
func CallerIPFromContext(ctx context.Context) string {
	return stringFromContext(ctx, ctxKeyCallerIP)
}

// UserAgentFromContext extracts the caller User-Agent, or "".
func UserAgentFromContext(ctx context.Context) string {
	return stringFromContext(ctx, ctxKeyUserAgent)
}

// CallerKindFromContext extracts the caller request shape, or "".
func CallerKindFromContext(ctx context.Context) string {
	return stringFromContext(ctx, ctxKeyCaller)
}

func stringFromContext(ctx context.Context, key contextKey) string {
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}
