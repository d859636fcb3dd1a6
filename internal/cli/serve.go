package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/engrave/pkg/buildinfo"
	"github.com/matzehuels/engrave/pkg/cache"
	"github.com/matzehuels/engrave/pkg/errors"
	"github.com/matzehuels/engrave/pkg/observability"
	"github.com/matzehuels/engrave/pkg/pipeline"
)

const (
	// maxScoreBytes bounds a request body.
	maxScoreBytes = 1 << 20

	shutdownTimeout = 5 * time.Second

	// serveKeyPrefix keeps server artifacts apart from CLI ones in a shared cache dir.
	serveKeyPrefix = "serve:"
)

// contentTypes maps artifact formats to the media types served for them.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render server",
		Long: `Run the HTTP render server.

Endpoints:
  POST /render           engrave an inline score, reply with every artifact (base64 JSON)
  POST /render/{format}  engrave an inline score, reply with one raw artifact
  GET  /kinds            barline kinds and justification names
  GET  /healthz          liveness and version

The request body carries the score inline:
  {"score": "[[staves]]\n...", "score_format": "toml", "formats": ["svg"], "scale": 2}

Score paths are not accepted; the server never reads local files.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe serves until ctx is cancelled, then shuts down gracefully.
func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(noCache, cache.NewScopedKeyer(nil, serveKeyPrefix))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "initialize runner")
	}
	defer runner.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           newServer(runner, logger).routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	printInfo("Listening on %s", StyleLink.Render("http://"+addr))
	if strings.HasPrefix(addr, ":") || strings.HasPrefix(addr, "0.0.0.0") {
		printWarning("Listening on all interfaces")
	}
	printKeyValue("Version", buildinfo.Version)
	printKeyValue("Cache", c.cacheStatus(noCache))
	printNewline()
	printNextStep("Try", "curl -s -X POST http://"+addr+`/render/svg -d '{"score":"[[staves]]"}'`)

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return errors.Wrap(errors.ErrCodeInternal, err, "listen on %s", addr)
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "shutdown")
		}
		return ctx.Err()
	}
}

// cacheStatus describes where the server caches artifacts.
func (c *CLI) cacheStatus(noCache bool) string {
	if noCache {
		return "disabled"
	}
	dir, err := c.resolveCacheDir()
	if err != nil {
		return "disabled"
	}
	return dir
}

// =============================================================================
// Server
// =============================================================================

// server answers render requests with a shared pipeline runner.
type server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

func newServer(runner *pipeline.Runner, logger *log.Logger) *server {
	return &server{runner: runner, logger: logger}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Get("/kinds", s.handleKinds)
	r.Post("/render", s.handleRender)
	r.Post("/render/{format}", s.handleRenderFormat)
	return r
}

// observe reports every request to the server hooks and logs it at debug level.
func (s *server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.Server()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		ww.Header().Set("Server", buildinfo.UserAgent())
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, time.Since(start))
		s.logger.Debug("handled request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"request_id", middleware.GetReqID(r.Context()),
			"duration", time.Since(start))
	})
}

// =============================================================================
// Responses
// =============================================================================

type apiResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// renderData is the body of a successful POST /render. Artifacts are
// base64-encoded by encoding/json.
type renderData struct {
	ScoreHash   string            `json:"score_hash"`
	Cached      bool              `json:"cached"`
	Staves      int               `json:"staves"`
	Notes       int               `json:"notes"`
	Annotations int               `json:"annotations"`
	Artifacts   map[string][]byte `json:"artifacts"`
}

func respond(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiResponse{Success: true, Data: data})
}

// respondError writes err with the status its code maps to.
func respondError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(errors.HTTPStatus(err))
	json.NewEncoder(w).Encode(apiResponse{Error: &apiError{Code: string(code), Message: errors.UserMessage(err)}})
}

// =============================================================================
// Handlers
// =============================================================================

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *server) handleKinds(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, listKinds())
}

func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decodeRequest(w, r)
	if err != nil {
		respondError(w, err)
		return
	}
	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, renderData{
		ScoreHash:   result.ScoreHash,
		Cached:      result.CacheInfo.RenderHit,
		Staves:      result.Stats.StaveCount,
		Notes:       result.Stats.NoteCount,
		Annotations: result.Stats.AnnotationCount,
		Artifacts:   result.Artifacts,
	})
}

// handleRenderFormat replies with a single raw artifact. The format in the
// path overrides any formats in the body.
func (s *server) handleRenderFormat(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		respondError(w, err)
		return
	}
	opts, err := s.decodeRequest(w, r)
	if err != nil {
		respondError(w, err)
		return
	}
	opts.Formats = []string{format}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		respondError(w, err)
		return
	}
	cacheStatus := "miss"
	if result.CacheInfo.RenderHit {
		cacheStatus = "hit"
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Engrave-Cache", cacheStatus)
	w.Header().Set("X-Engrave-Score-Hash", result.ScoreHash)
	w.WriteHeader(http.StatusOK)
	w.Write(result.Artifacts[format])
}

// decodeRequest reads pipeline options from the body. Only inline scores are
// accepted.
func (s *server) decodeRequest(w http.ResponseWriter, r *http.Request) (pipeline.Options, error) {
	var opts pipeline.Options
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxScoreBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	if opts.Source != "" {
		return opts, errors.New(errors.ErrCodeInvalidInput, "score paths are not accepted, send the score inline")
	}
	if opts.Score == "" {
		return opts, errors.New(errors.ErrCodeInvalidInput, "score is required")
	}
	opts.Logger = s.logger.With("request_id", middleware.GetReqID(r.Context()))
	return opts, nil
}
