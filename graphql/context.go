package graphql

import (
	"context"
	"encoding/json"
	"net/http"
)

// Context keys for resolver injection (avoids circular imports).
type contextKey string

const CtxKeySessionID contextKey = "sessionID"

// SessionIDFromContext returns the browsing session bound to the request, if any.
func SessionIDFromContext(ctx context.Context) string {
	if v := ctx.Value(CtxKeySessionID); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// WithSessionID attaches a session id to ctx.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CtxKeySessionID, id)
}

// A query may run against a session's filter state.
// Resolved from: X-Session-ID header > __Session query param > JSON variables.__Session
const (
	HeaderSession     = "X-Session-ID"
	QueryParamSession = "__Session"
	VarSession        = "__Session"
)

// GetSessionID extracts the session id from header or query param.
func GetSessionID(r *http.Request) string {
	if h := r.Header.Get(HeaderSession); h != "" {
		return h
	}
	return r.URL.Query().Get(QueryParamSession)
}

// ParseSessionFromVariables reads variables.__Session from a POST body.
func ParseSessionFromVariables(body []byte) (string, bool) {
	var payload struct {
		Variables map[string]interface{} `json:"variables"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Variables == nil {
		return "", false
	}
	if v, ok := payload.Variables[VarSession].(string); ok && v != "" {
		return v, true
	}
	return "", false
}
