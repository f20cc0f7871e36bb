package auth

import "strings"

// Cookie names shared by the handlers and the resolver.
const (
	SessionCookie       = "token"
	ImpersonationCookie = "impersonate_token"
)

// CookieGetter is the subset of *gin.Context (or *http.Request via a
// thin wrapper) the resolver needs.
type CookieGetter interface {
	Cookie(name string) (string, error)
}

// ResolveToken picks the credential for an inbound request.
//
// Precedence: when the request is tutor-scoped (the referer path
// contains a /tutor segment, or the request path itself is under
// /api/tutor) a non-empty impersonation cookie wins over the session
// cookie. Otherwise the session cookie is used. A bearer Authorization
// header is the fallback for non-browser clients. Returns "" when no
// credential is present.
func ResolveToken(refererPath, requestPath string, cookies CookieGetter, authHeader string) string {
	if tutorScoped(refererPath, requestPath) {
		if tok, err := cookies.Cookie(ImpersonationCookie); err == nil && tok != "" {
			return tok
		}
	}
	if tok, err := cookies.Cookie(SessionCookie); err == nil && tok != "" {
		return tok
	}
	return bearerToken(authHeader)
}

func tutorScoped(refererPath, requestPath string) bool {
	if hasSegment(refererPath, "tutor") {
		return true
	}
	p := strings.ToLower(requestPath)
	return strings.HasPrefix(p, "/api/tutor/") || p == "/api/tutor"
}

// hasSegment reports whether path contains seg as a whole path
// segment, so "/tutoring" does not count as "/tutor".
func hasSegment(path, seg string) bool {
	for _, part := range strings.Split(path, "/") {
		if strings.EqualFold(part, seg) {
			return true
		}
	}
	return false
}

func bearerToken(authHeader string) string {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
