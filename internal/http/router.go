package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"jobly/internal/common"
	"jobly/internal/http/handlers"
	"jobly/internal/http/metrics"
	httpmw "jobly/internal/http/middleware"
	"jobly/internal/http/response"
)

type RouterDependencies struct {
	CompanyHandler *handlers.CompanyHandler
	JobHandler     *handlers.JobHandler
	MetricsHandler *handlers.MetricsHandler
	AuthMiddleware *httpmw.AuthMiddleware
	Metrics        *metrics.Collector
	Logger         *slog.Logger
	WriteLimiter   httpmw.Limiter
	WriteLimit     int
	TrustProxy     bool
	RequestTimeout time.Duration
}

type Router struct {
	deps    RouterDependencies
	handler http.Handler
}

const maxBodyBytes = 1 << 20

func NewRouter(deps RouterDependencies) http.Handler {
	r := &Router{deps: deps}
	r.handler = httpmw.Chain(r.baseHandler(),
		httpmw.RequestID,
		httpmw.Logging(deps.Logger),
		httpmw.BodyLimit(maxBodyBytes),
		httpmw.Recover,
		httpmw.Metrics(deps.Metrics),
		httpmw.Timeout(deps.RequestTimeout),
	)
	return r
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
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
		}

		if path == "/companies" || strings.HasPrefix(path, "/companies/") || path == "/jobs" || strings.HasPrefix(path, "/jobs/") {
			r.deps.AuthMiddleware.Authenticate(http.HandlerFunc(r.handleResources)).ServeHTTP(w, req)
			return
		}

		response.Error(w, common.NewError(common.CodeNotFound, "route not found", nil))
	})
}

func (r *Router) handleResources(w http.ResponseWriter, req *http.Request) {
	parts := strings.Split(strings.Trim(req.URL.Path, "/"), "/")
	companies := r.deps.CompanyHandler
	jobs := r.deps.JobHandler

	switch {
	case parts[0] == "companies" && len(parts) == 1 && req.Method == http.MethodGet:
		companies.List(w, req)
	case parts[0] == "companies" && len(parts) == 1 && req.Method == http.MethodPost:
		r.admin(companies.Create).ServeHTTP(w, req)
	case parts[0] == "companies" && len(parts) == 2 && req.Method == http.MethodGet:
		companies.Get(w, req)
	case parts[0] == "companies" && len(parts) == 2 && req.Method == http.MethodPatch:
		r.admin(companies.Update).ServeHTTP(w, req)
	case parts[0] == "companies" && len(parts) == 2 && req.Method == http.MethodDelete:
		r.admin(companies.Delete).ServeHTTP(w, req)
	case parts[0] == "companies" && len(parts) == 3 && parts[2] == "jobs" && req.Method == http.MethodGet:
		companies.Jobs(w, req)
	case parts[0] == "jobs" && len(parts) == 1 && req.Method == http.MethodGet:
		jobs.List(w, req)
	case parts[0] == "jobs" && len(parts) == 1 && req.Method == http.MethodPost:
		r.admin(jobs.Create).ServeHTTP(w, req)
	case parts[0] == "jobs" && len(parts) == 2 && req.Method == http.MethodGet:
		jobs.Get(w, req)
	case parts[0] == "jobs" && len(parts) == 2 && req.Method == http.MethodPatch:
		r.admin(jobs.Update).ServeHTTP(w, req)
	case parts[0] == "jobs" && len(parts) == 2 && req.Method == http.MethodDelete:
		r.admin(jobs.Delete).ServeHTTP(w, req)
	default:
		response.Error(w, common.NewError(common.CodeNotFound, "route not found", nil))
	}
}

// admin gates a write route: the caller must be an administrator and is
// then subject to the per-client write limit.
func (r *Router) admin(h http.HandlerFunc) http.Handler {
	limited := httpmw.RateLimit(r.deps.WriteLimiter, httpmw.WriteKey(r.deps.TrustProxy), r.deps.WriteLimit, time.Minute)(h)
	return httpmw.RequireAdmin(limited)
}
