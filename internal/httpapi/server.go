// Package httpapi serves a read-only JSON view of the store.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Makepad-fr/tada/internal/due"
	"github.com/Makepad-fr/tada/internal/store"
)

// Options configure the router.
type Options struct {
	Logger *log.Logger
	// Registry is exposed at /metrics and receives the request metrics.
	// Without it /metrics is not mounted.
	Registry *prometheus.Registry
	// AllowedOrigins enables CORS for browser clients.
	AllowedOrigins []string
}

// Router serves the store over HTTP.
type Router struct {
	store    *store.Store
	log      *log.Logger
	opts     Options
	requests *prometheus.CounterVec
}

// NewRouter creates a new router instance
func NewRouter(s *store.Store, opts Options) *Router {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	rt := &Router{store: s, log: opts.Logger, opts: opts}
	rt.requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tada_http_requests_total",
		Help: "HTTP requests by route and status code.",
	}, []string{"route", "code"})
	if opts.Registry != nil {
		opts.Registry.MustRegister(rt.requests)
	}
	return rt
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(rt.logRequests)
	if len(rt.opts.AllowedOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: rt.opts.AllowedOrigins,
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	// other processes write the blob; every read starts from it
	router.Group(func(r chi.Router) {
		r.Use(rt.reload)
		r.Get("/healthz", rt.healthCheck)
		r.Route("/projects", func(r chi.Router) {
			r.Get("/", rt.listProjects)
			r.Get("/{projectID}", rt.getProject)
		})
		r.Route("/due", func(r chi.Router) {
			r.Get("/", rt.dueSoon)
			r.Get("/today", rt.dueBucket(due.BucketToday))
			r.Get("/tomorrow", rt.dueBucket(due.BucketTomorrow))
			r.Get("/week", rt.dueBucket(due.BucketNextWeek))
		})
	})
	if rt.opts.Registry != nil {
		router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(rt.opts.Registry, promhttp.HandlerOpts{}))
	}
	return router
}

func (rt *Router) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		rt.requests.WithLabelValues(route, strconv.Itoa(ww.Status())).Inc()
		rt.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimiddleware.GetReqID(r.Context()),
		)
	})
}

// reload refreshes the store from its backend. A failed read is logged and
// the last good snapshot is served.
func (rt *Router) reload(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := rt.store.Reload(); err != nil {
			rt.log.Warn("serving cached projects", "err", err)
		}
		next.ServeHTTP(w, r)
	})
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":   "healthy",
		"state":    rt.store.State().String(),
		"projects": rt.store.Len(),
	})
}

func (rt *Router) listProjects(w http.ResponseWriter, r *http.Request) {
	projects := rt.store.Projects()
	out := make([]projectView, 0, len(projects))
	for _, p := range projects {
		out = append(out, newProjectView(p))
	}
	respondJSON(w, http.StatusOK, out)
}

func (rt *Router) getProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "projectID")
	p, ok := rt.store.Project(id)
	if !ok {
		respondError(w, http.StatusNotFound, store.ErrProjectNotFound.Error())
		return
	}
	respondJSON(w, http.StatusOK, newProjectView(p))
}

func (rt *Router) dueSoon(w http.ResponseWriter, r *http.Request) {
	res := rt.store.DueSoon()
	out := make(map[due.Bucket][]dueItemView, len(due.AllBuckets))
	for _, b := range due.AllBuckets {
		out[b] = newDueViews(res.Get(b))
	}
	respondJSON(w, http.StatusOK, out)
}

func (rt *Router) dueBucket(b due.Bucket) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var items []due.Item
		switch b {
		case due.BucketToday:
			items = rt.store.DueToday()
		case due.BucketTomorrow:
			items = rt.store.DueTomorrow()
		default:
			items = rt.store.DueNextWeek()
		}
		respondJSON(w, http.StatusOK, newDueViews(items))
	}
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// ListenAndServe serves h on addr until ctx is done, then shuts down.
func ListenAndServe(ctx context.Context, addr string, h http.Handler, logger *log.Logger) error {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("server stopped")
	return nil
}
