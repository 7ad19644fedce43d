package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/erraggy/oasdocs/document"
	"github.com/erraggy/oasdocs/navigation"
	"github.com/erraggy/oasdocs/renderer"
	"github.com/erraggy/oasdocs/selection"
)

// TargetHeader names the element the selection in the request query resolves
// to on the rendered page, when there is one.
const TargetHeader = "X-Selection-Target"

// snapshot is one loaded document and its navigation model. A failed load is
// a snapshot too: it carries the error and renders as the error page.
type snapshot struct {
	doc      *document.Document
	model    *navigation.Model
	err      error
	loadedAt time.Time
}

func newSnapshot(doc *document.Document, err error) *snapshot {
	s := &snapshot{doc: doc, err: err, loadedAt: time.Now()}
	if err == nil {
		s.model = navigation.Build(doc)
	}
	return s
}

// Server serves the documentation page of one document over HTTP.
type Server struct {
	cfg     *Config
	logger  document.Logger
	metrics *metrics
	handler http.Handler
	current atomic.Pointer[snapshot]
	static  bool

	httpServer *http.Server
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger sets the logger used for requests, reloads and the watcher.
// Default: document.NopLogger
func WithLogger(l document.Logger) Option {
	return func(s *Server) error {
		if l != nil {
			s.logger = l
		}
		return nil
	}
}

// WithDocument serves doc instead of loading cfg.Spec. Reload and Watch have
// nothing to reload for such a server.
func WithDocument(doc *document.Document) Option {
	return func(s *Server) error {
		if doc == nil {
			return errors.New("server: WithDocument requires a document")
		}
		s.current.Store(newSnapshot(doc, nil))
		s.static = true
		return nil
	}
}

// New creates a server and performs the initial load of cfg.Spec. A document
// that fails to load is not an error here: the server starts and shows the
// error page until a reload succeeds.
func New(cfg *Config, opts ...Option) (*Server, error) {
	if cfg == nil {
		cfg = NewDefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Server{
		cfg:     cfg,
		logger:  document.NopLogger{},
		metrics: newMetrics(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	if snap := s.current.Load(); snap != nil {
		s.metrics.observeLoad(snap)
	} else {
		_ = s.Reload() // logged, and shown on the page
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)
	s.handler = chain(mux,
		correlationIDMiddleware,
		loggingMiddleware(s.logger, s.metrics),
		recoveryMiddleware(s.logger),
		rateLimitMiddleware(cfg.RateLimit, s.metrics, "/healthz", "/metrics"),
	)
	return s, nil
}

// Handler returns the HTTP handler, middleware included.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Reload loads cfg.Spec again and swaps it in. The returned error is the load
// error, which the page now shows. Without a spec path the page shows the
// "No API spec loaded." state.
func (s *Server) Reload() error {
	if s.static {
		return nil
	}
	var snap *snapshot
	if s.cfg.Spec == "" {
		snap = newSnapshot(nil, nil)
	} else {
		opts := []document.Option{
			document.WithFilePath(s.cfg.Spec),
			document.WithLogger(s.logger),
		}
		if s.cfg.MaxSpecSize > 0 {
			opts = append(opts, document.WithMaxSize(s.cfg.MaxSpecSize))
		}
		doc, err := document.LoadWithOptions(opts...)
		snap = newSnapshot(doc, err)
	}
	s.current.Store(snap)
	s.metrics.observeLoad(snap)

	if snap.err != nil {
		s.logger.Warn("document reload failed", "spec", s.cfg.Spec, "error", snap.err)
		return snap.err
	}
	if s.cfg.Spec != "" {
		stats := snap.doc.Stats()
		s.logger.Info("document loaded",
			"spec", s.cfg.Spec,
			"operations", stats.OperationCount,
			"schemas", stats.SchemaCount)
	}
	return nil
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
// The watcher runs alongside when cfg.Watch.Enabled is set.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("server: listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if s.cfg.Watch.Enabled {
		if err := s.Watch(ctx); err != nil {
			_ = ln.Close()
			return err
		}
	}

	s.httpServer = &http.Server{
		Handler:      s.handler,
		ReadTimeout:  s.cfg.GetReadTimeout(),
		WriteTimeout: s.cfg.GetWriteTimeout(),
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting documentation server", "addr", ln.Addr().String(), "path", s.cfg.mountPath())
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		s.logger.Info("shutting down documentation server")
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET "+s.cfg.mountPath()+"{$}", s.handlePage)
	mux.HandleFunc("GET "+s.cfg.mountPath()+"openapi", s.handleSource)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", s.metrics.handler())
}

func (s *Server) renderOptions(q url.Values) []renderer.Option {
	return []renderer.Option{
		renderer.WithExpanded(!s.cfg.Compact),
		renderer.WithClassNames(s.cfg.ClassNames),
		renderer.WithBasePath(s.cfg.mountPath()),
		renderer.WithQuery(q),
	}
}

// handlePage handles GET {base_path}. The selection in the query marks the
// active sidebar entry; a load error is shown as the error page with 200.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	snap := s.current.Load()

	if snap.err != nil {
		page, err := renderer.ErrorPage(snap.err, s.renderOptions(r.URL.Query())...)
		if err != nil {
			s.renderFailed(w, r, err)
			return
		}
		s.writePage(w, r, page)
		return
	}

	// Replay the selection the URL asks for through a controller, so the
	// query is normalised and a component scroll is queued for this page.
	var navigated string
	router := selection.NewMemoryRouter(r.URL.Query())
	ctrl := selection.NewController(router, selection.WithNavigate(func(anchor string) {
		navigated = anchor
	}))
	switch state := ctrl.State(); state.Kind {
	case selection.KindEndpoint:
		ctrl.SelectEndpoint(state.Anchor)
	case selection.KindComponent:
		ctrl.SelectComponent(state.Anchor)
	}

	page, err := renderer.Render(snap.doc, snap.model, ctrl.State(), s.renderOptions(router.Query())...)
	if err != nil {
		s.renderFailed(w, r, err)
		return
	}
	s.metrics.renders.Inc()

	if !ctrl.Commit(page) && navigated != "" {
		page.ScrollIntoView(navigated)
	}
	if target := page.Target(); target != "" {
		w.Header().Set(TargetHeader, target)
	}
	s.writePage(w, r, page)
}

func (s *Server) writePage(w http.ResponseWriter, r *http.Request, page *renderer.Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := page.WriteTo(w); err != nil {
		s.logger.Debug("page write failed", "error", err, "correlation_id", CorrelationID(r.Context()))
	}
}

func (s *Server) renderFailed(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("page render failed", "error", err, "correlation_id", CorrelationID(r.Context()))
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

// handleSource handles GET /openapi: the raw document as loaded.
func (s *Server) handleSource(w http.ResponseWriter, r *http.Request) {
	snap := s.current.Load()
	switch {
	case snap.err != nil:
		http.Error(w, renderer.ErrorPrefix+renderer.ErrorMessage(snap.err), http.StatusServiceUnavailable)
		return
	case snap.doc == nil:
		http.Error(w, renderer.EmptyMessage, http.StatusNotFound)
		return
	}

	contentType := "application/yaml"
	if snap.doc.Format == document.SourceFormatJSON {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(snap.doc.Source())
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status   string `json:"status"`
	Spec     string `json:"spec,omitempty"`
	Loaded   bool   `json:"loaded"`
	Error    string `json:"error,omitempty"`
	LoadedAt string `json:"loadedAt"`

	Operations int `json:"operations"`
	Schemas    int `json:"schemas"`
}

// handleHealth handles GET /healthz. The server is healthy even while the
// document is invalid; the body says why the page shows an error.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := s.current.Load()
	resp := HealthResponse{
		Status:   "ok",
		Spec:     s.cfg.Spec,
		Loaded:   snap.err == nil && !snap.doc.IsEmpty(),
		LoadedAt: snap.loadedAt.UTC().Format(time.RFC3339),
	}
	if snap.err != nil {
		resp.Error = renderer.ErrorMessage(snap.err)
	} else {
		stats := snap.doc.Stats()
		resp.Operations = stats.OperationCount
		resp.Schemas = stats.SchemaCount
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}
