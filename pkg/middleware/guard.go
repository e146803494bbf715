package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"echoclime/pkg/claims"
	"echoclime/pkg/session"
)

const storyCategory string = "ice|urban|marine|energy|forests|water|transport|agriculture|weather"

var (
	// Logout stays public so it is accepted (and idempotent) even when no
	// session exists anymore.
	publicURLs = map[string]string{
		"/api/login":   http.MethodPost,
		"/api/signup":  http.MethodPost,
		"/api/logout":  http.MethodPost,
		"/api/session": http.MethodGet,
		"/api/stories": http.MethodGet,
		"/api/story/{story_id:[a-zA-Z0-9]+}": http.MethodGet,
		"/api/stories/{category:(?:" + storyCategory + ")}": http.MethodGet,
	}
)

// SessionSource is the read side of the session store a guard needs.
type SessionSource interface {
	Snapshot() session.Snapshot
}

// Guard protects the API subrouter. While the store is still rehydrating it
// answers 503 and takes no authorization decision; once loading is done,
// anonymous callers get 401 and authenticated ones proceed with the current
// user attached to the request context. The check runs on every request, so a
// logout is observed immediately.
func Guard(store SessionSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := mux.CurrentRoute(r)
			template, err := route.GetPathTemplate()
			if err != nil {
				http.Error(w, "Route not found", http.StatusNotFound)
				return
			}

			if method, ok := publicURLs[template]; ok && method == r.Method {
				next.ServeHTTP(w, r)
				return
			}

			snap := store.Snapshot()
			if snap.Loading {
				w.Header().Set("Retry-After", "1")
				http.Error(w, `{"message":"session store warming up"}`, http.StatusServiceUnavailable)
				return
			}
			if snap.User == nil {
				http.Error(w, `{"message":"unauthorized"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), claims.SessionContextKey, snap.User)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GuardPage protects an app page. Anonymous visitors are redirected to the
// login surface; a store still rehydrating gets the neutral waiting answer
// with no redirect.
func GuardPage(store SessionSource, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		snap := store.Snapshot()
		if snap.Loading {
			w.Header().Set("Retry-After", "1")
			http.Error(w, "Loading EchoClime...", http.StatusServiceUnavailable)
			return
		}
		if snap.User == nil {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		ctx := context.WithValue(r.Context(), claims.SessionContextKey, snap.User)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
