package cart

import "context"

type sessionKey struct{}

// NewContext installs the session for the request tree below it.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// FromContext returns the installed session. Calling it outside a tree
// where NewContext ran is a programming error and panics rather than
// handing back a silent default.
func FromContext(ctx context.Context) *Session {
	s, ok := ctx.Value(sessionKey{}).(*Session)
	if !ok {
		panic("cart: session not installed in context, wrap the handler with SessionMiddleware")
	}
	return s
}
