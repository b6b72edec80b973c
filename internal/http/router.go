package http

import (
	"net/http"
	"strings"
	"time"

	"placenet/internal/domain/user"
	"placenet/internal/http/handlers"
	"placenet/internal/http/metrics"
	httpmw "placenet/internal/http/middleware"
	"placenet/internal/observability"
)

type RouterDependencies struct {
	JobHandler         *handlers.JobHandler
	ApplicationHandler *handlers.ApplicationHandler
	MessageHandler     *handlers.MessageHandler
	WSHandler          *handlers.WSHandler
	MetricsHandler     *handlers.MetricsHandler
	AuthMiddleware     *httpmw.AuthMiddleware
	Limiter            httpmw.Limiter
	Metrics            *metrics.Collector
	Logger             *observability.Logger
	RequestTimeout     time.Duration
}

type Router struct {
	deps RouterDependencies
}

const maxBodyBytes = 1 << 20

const (
	publicListLimit  = 60
	publicListWindow = time.Minute
)

func NewRouter(deps RouterDependencies) http.Handler {
	return &Router{deps: deps}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	// WebSocket connections outlive any sane request deadline, so the
	// upgrade path skips the timeout wrapper.
	if req.Method == http.MethodGet && req.URL.Path == "/ws" {
		handler := httpmw.Chain(http.HandlerFunc(r.deps.WSHandler.Connect), httpmw.RequestID, httpmw.Recover)
		handler.ServeHTTP(w, req)
		return
	}
	handler := httpmw.Chain(r.baseHandler(), httpmw.RequestID, httpmw.Logging(r.deps.Logger), httpmw.BodyLimit(maxBodyBytes), httpmw.Recover, httpmw.Metrics(r.deps.Metrics), httpmw.Timeout(r.deps.RequestTimeout))
	handler.ServeHTTP(w, req)
}

func (r *Router) baseHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path

		switch {
		case req.Method == http.MethodGet && path == "/health":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		case req.Method == http.MethodGet && path == "/metrics":
			r.deps.MetricsHandler.Get(w, req)
			return
		case req.Method == http.MethodGet && path == "/jobs":
			// The public listing is the only unauthenticated query that
			// hits the database, so it carries a per-IP quota.
			httpmw.RateLimit(r.deps.Limiter, httpmw.ClientIP, publicListLimit, publicListWindow)(http.HandlerFunc(r.deps.JobHandler.ListPublic)).ServeHTTP(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/jobs/"):
			r.deps.JobHandler.Get(w, req)
			return
		}

		if strings.HasPrefix(path, "/applications") || strings.HasPrefix(path, "/jobs") || strings.HasPrefix(path, "/recruiter") || strings.HasPrefix(path, "/messages") {
			protected := r.deps.AuthMiddleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				r.handleProtected(w, req)
			}))
			protected.ServeHTTP(w, req)
			return
		}

		http.NotFound(w, req)
	})
}

func (r *Router) handleProtected(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path

	switch {
	case req.Method == http.MethodPost && path == "/applications":
		httpmw.RequireRole(user.RoleStudent)(http.HandlerFunc(r.deps.ApplicationHandler.Apply)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/applications":
		httpmw.RequireRole(user.RoleStudent)(http.HandlerFunc(r.deps.ApplicationHandler.ListStudent)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPut && strings.HasPrefix(path, "/applications/") && strings.HasSuffix(path, "/status"):
		httpmw.RequireRole(user.RoleRecruiter)(http.HandlerFunc(r.deps.ApplicationHandler.UpdateStatus)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/recruiter/applications":
		httpmw.RequireRole(user.RoleRecruiter)(http.HandlerFunc(r.deps.ApplicationHandler.ListRecruiter)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/recruiter/applications/pipeline":
		httpmw.RequireRole(user.RoleRecruiter)(http.HandlerFunc(r.deps.ApplicationHandler.Pipeline)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/recruiter/jobs":
		httpmw.RequireRole(user.RoleRecruiter)(http.HandlerFunc(r.deps.JobHandler.ListByRecruiter)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/jobs":
		httpmw.RequireRole(user.RoleRecruiter)(http.HandlerFunc(r.deps.JobHandler.Create)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPut && strings.HasPrefix(path, "/jobs/"):
		httpmw.RequireRole(user.RoleRecruiter)(http.HandlerFunc(r.deps.JobHandler.Update)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/jobs/"):
		httpmw.RequireRole(user.RoleRecruiter)(http.HandlerFunc(r.deps.JobHandler.Delete)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/messages":
		r.deps.MessageHandler.Send(w, req)
		return
	case req.Method == http.MethodGet && path == "/messages":
		r.deps.MessageHandler.List(w, req)
		return
	}

	http.NotFound(w, req)
}
