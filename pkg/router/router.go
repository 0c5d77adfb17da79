// Package router is a small method-aware HTTP router with wildcard segments,
// request ids and structured access logs.
package router

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RequestIDHeader carries the request id in and out.
const RequestIDHeader = "X-Request-ID"

type HandlerFunc func(http.ResponseWriter, *http.Request)

type ctxKey int

const (
	requestIDKey ctxKey = iota
	paramsKey
)

type Router struct {
	mux       *http.ServeMux
	routes    map[string]HandlerFunc // key = METHOD:PATH
	paths     map[string]bool
	wildcards []string // registration order, more specific first
	logger    *zap.Logger
}

// New returns a Router that logs every request to logger.
func New(logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Router{
		mux:    http.NewServeMux(),
		routes: make(map[string]HandlerFunc),
		paths:  make(map[string]bool),
		logger: logger,
	}
	r.mux.HandleFunc("/", r.wrap(r.dispatch))
	return r
}

func (r *Router) dispatch(w http.ResponseWriter, req *http.Request) {
	if h, ok := r.routes[req.Method+":"+req.URL.Path]; ok {
		h(w, req)
		return
	}

	pathMatched := r.paths[req.URL.Path]
	for _, pattern := range r.wildcards {
		params, ok := matchWildcardRoute(req.URL.Path, pattern)
		if !ok {
			continue
		}
		pathMatched = true
		if h, ok := r.routes[req.Method+":"+pattern]; ok {
			h(w, req.WithContext(context.WithValue(req.Context(), paramsKey, params)))
			return
		}
	}

	if pathMatched {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	http.Error(w, "Not Found", http.StatusNotFound)
}

// matchWildcardRoute matches a request path against a pattern where "*"
// stands for one segment, or for every remaining segment when it is last.
// It returns the segments the wildcards captured.
func matchWildcardRoute(requestPath, routePattern string) ([]string, bool) {
	requestSegments := strings.Split(strings.Trim(requestPath, "/"), "/")
	routeSegments := strings.Split(strings.Trim(routePattern, "/"), "/")

	var params []string
	last := len(routeSegments) - 1
	if routeSegments[last] == "*" {
		if len(requestSegments) <= last {
			return nil, false
		}
		for i := 0; i < last; i++ {
			if routeSegments[i] == "*" {
				params = append(params, requestSegments[i])
			} else if requestSegments[i] != routeSegments[i] {
				return nil, false
			}
		}
		return append(params, strings.Join(requestSegments[last:], "/")), true
	}

	if len(requestSegments) != len(routeSegments) {
		return nil, false
	}
	for i, seg := range routeSegments {
		if seg == "*" {
			params = append(params, requestSegments[i])
			continue
		}
		if requestSegments[i] != seg {
			return nil, false
		}
	}
	return params, true
}

func (r *Router) register(method, path string, handler HandlerFunc) {
	r.routes[method+":"+path] = handler
	if strings.Contains(path, "*") && !r.paths[path] {
		r.wildcards = append(r.wildcards, path)
	}
	r.paths[path] = true
}

func (r *Router) GET(path string, handler HandlerFunc)  { r.register(http.MethodGet, path, handler) }
func (r *Router) POST(path string, handler HandlerFunc) { r.register(http.MethodPost, path, handler) }

// Handle mounts h on a ServeMux pattern, bypassing method routing. Use it
// for prefix trees such as /swagger/.
func (r *Router) Handle(pattern string, h http.Handler) {
	r.mux.HandleFunc(pattern, r.wrap(h.ServeHTTP))
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Params returns the path segments captured by wildcards, in order.
func Params(req *http.Request) []string {
	p, _ := req.Context().Value(paramsKey).([]string)
	return p
}

// Param returns the i-th wildcard segment or "".
func Param(req *http.Request, i int) string {
	p := Params(req)
	if i < 0 || i >= len(p) {
		return ""
	}
	return p[i]
}

// RequestID returns the id assigned to req.
func RequestID(req *http.Request) string {
	id, _ := req.Context().Value(requestIDKey).(string)
	return id
}

// wrap assigns a request id, echoes it and writes one access log line.
func (r *Router) wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		id := req.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		req = req.WithContext(context.WithValue(req.Context(), requestIDKey, id))

		lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		h(lrw, req)

		r.logger.Check(levelFor(lrw.statusCode), "request").Write(
			zap.String("request_id", id),
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Int("status", lrw.statusCode),
			zap.Int("bytes", lrw.written),
			zap.Duration("took", time.Since(start)),
		)
	}
}

func levelFor(code int) zapcore.Level {
	switch {
	case code >= 500:
		return zapcore.ErrorLevel
	case code >= 400:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}

// Timeouts configures the server started by Start.
type Timeouts struct {
	Read     time.Duration
	Write    time.Duration
	Shutdown time.Duration
}

// Start serves on addr until ctx is done, then shuts down gracefully.
func (r *Router) Start(ctx context.Context, addr string, t Timeouts) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  t.Read,
		WriteTimeout: t.Write,
	}

	errCh := make(chan error, 1)
	go func() {
		r.logger.Info("server started", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), t.Shutdown)
	defer cancel()
	r.logger.Info("shutting down server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
	written    int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	n, err := lrw.ResponseWriter.Write(b)
	lrw.written += n
	return n, err
}
