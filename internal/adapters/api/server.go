// Package api expone las composiciones, el registry de posiciones y los precios
// por HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/alejandrodnm/rebalancer/internal/adapters/defillama"
	"github.com/alejandrodnm/rebalancer/internal/domain"
	"github.com/alejandrodnm/rebalancer/internal/metrics"
	"github.com/alejandrodnm/rebalancer/internal/ports"
	"github.com/alejandrodnm/rebalancer/internal/registry"
)

// Composer compone una estrategia en el modo pedido. Lo implementa
// *composition.Orchestrator.
type Composer interface {
	ComposeWithMode(ctx context.Context, name string, mode domain.MergeMode) (domain.PortfolioComposition, error)
	Strategies() []string
}

// APRResolver resuelve el APR de una posición. Lo implementa *composition.Resolver.
type APRResolver interface {
	ResolveAPR(ctx context.Context, meta domain.PositionMetadata) (domain.PositionYield, error)
}

// PriceSource devuelve precios por id de CoinGecko. Lo implementa *defillama.Adapter.
type PriceSource interface {
	PriceByCoingeckoID(ctx context.Context, id string) (defillama.Price, error)
}

// Config configura el servidor.
type Config struct {
	Addr           string
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// Deps son los componentes que sirve la API. Storage y Prices pueden ser nil.
type Deps struct {
	Composer Composer
	Registry *registry.Registry
	Resolver APRResolver
	Prices   PriceSource
	Storage  ports.Storage
}

// Códigos de error de la API
const (
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeUnsupportedStrategy = "UNSUPPORTED_STRATEGY"
	ErrCodeInvalidInput        = "INVALID_INPUT"
	ErrCodeUpstreamFailed      = "UPSTREAM_FETCH_FAILED"
	ErrCodeTimeout             = "TIMEOUT"
	ErrCodeInternal            = "INTERNAL_ERROR"
	ErrCodeUnavailable         = "UNAVAILABLE"
)

// Server es la API HTTP.
type Server struct {
	cfg     Config
	deps    Deps
	handler http.Handler
}

// NewServer crea el servidor y monta las rutas.
func NewServer(cfg Config, deps Deps) *Server {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
	s := &Server{cfg: cfg, deps: deps}
	s.handler = s.routes()
	return s
}

// Handler devuelve el http.Handler con middlewares y CORS.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(s.cfg.RequestTimeout))
	r.Use(metrics.Middleware)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/strategies", s.handleStrategies)
		r.Get("/compositions/{strategy}", s.handleComposition)
		r.Get("/compositions/{strategy}/history", s.handleHistory)

		r.Get("/positions", s.handlePositions)
		r.Get("/positions/{id}", s.handlePosition)
		r.Get("/positions/{id}/apr", s.handlePositionAPR)

		r.Get("/prices/{symbol}", s.handlePrice)
	})

	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})
	return c.Handler(r)
}

// Run sirve hasta que ctx se cancele y luego hace un shutdown ordenado.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("api listening", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("api.Run: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("api.Run: shutdown: %w", err)
	}
	slog.Info("api stopped")
	return nil
}

// --- handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"positions": s.deps.Registry.Len(),
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	})
}

func (s *Server) handleStrategies(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"strategies": s.deps.Composer.Strategies()})
}

func (s *Server) handleComposition(w http.ResponseWriter, r *http.Request) {
	mode, err := domain.ParseMergeMode(r.URL.Query().Get("merge"))
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeInvalidInput, err.Error())
		return
	}

	pc, err := s.deps.Composer.ComposeWithMode(r.Context(), chi.URLParam(r, "strategy"), mode)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	w.Header().Set("X-Computed-At", pc.ComputedAt.Format(time.RFC3339))
	writeJSON(w, http.StatusOK, pc)
}

// historyEntry es una composición guardada con su metadata.
type historyEntry struct {
	ID          string                      `json:"id"`
	ComputedAt  time.Time                   `json:"computed_at"`
	TotalAPR    float64                     `json:"total_apr"`
	Composition domain.PortfolioComposition `json:"composition"`
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.deps.Storage == nil {
		writeError(w, http.StatusServiceUnavailable, ErrCodeUnavailable, "storage is disabled")
		return
	}

	to := time.Now().UTC()
	from := to.Add(-7 * 24 * time.Hour)
	q := r.URL.Query()
	var err error
	if v := q.Get("from"); v != "" {
		if from, err = time.Parse(time.RFC3339, v); err != nil {
			writeError(w, http.StatusBadRequest, ErrCodeInvalidInput, fmt.Sprintf("invalid from %q: expected RFC3339", v))
			return
		}
	}
	if v := q.Get("to"); v != "" {
		if to, err = time.Parse(time.RFC3339, v); err != nil {
			writeError(w, http.StatusBadRequest, ErrCodeInvalidInput, fmt.Sprintf("invalid to %q: expected RFC3339", v))
			return
		}
	}

	history, err := s.deps.Storage.GetHistory(r.Context(), chi.URLParam(r, "strategy"), from, to)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]historyEntry, len(history))
	for i, pc := range history {
		out[i] = historyEntry{ID: pc.ID, ComputedAt: pc.ComputedAt, TotalAPR: pc.TotalAPR(), Composition: pc}
	}
	writeJSON(w, http.StatusOK, out)
}

// handlePositions con project y symbol devuelve la primera posición que
// coincide; con uno solo (o ninguno) devuelve la lista filtrada.
func (s *Server) handlePositions(w http.ResponseWriter, r *http.Request) {
	project := r.URL.Query().Get("project")
	symbol := r.URL.Query().Get("symbol")

	if project != "" && symbol != "" {
		meta, err := s.deps.Registry.LookupByProjectSymbol(project, symbol)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, meta)
		return
	}

	out := make([]domain.PositionMetadata, 0)
	for _, meta := range s.deps.Registry.Entries() {
		if project != "" && !strings.EqualFold(meta.Project, project) {
			continue
		}
		if symbol != "" && !strings.EqualFold(meta.Symbol, symbol) {
			continue
		}
		out = append(out, meta)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handlePosition(w http.ResponseWriter, r *http.Request) {
	meta, err := s.deps.Registry.Lookup(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, meta)
}

func (s *Server) handlePositionAPR(w http.ResponseWriter, r *http.Request) {
	meta, err := s.deps.Registry.Lookup(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	y, err := s.deps.Resolver.ResolveAPR(r.Context(), meta)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"position_id":     y.PositionID,
		"apr":             y.APR,
		"discount_factor": y.DiscountFactor,
		"discounted_apr":  y.DiscountedAPR(),
		"apr_pct":         domain.FormatPercent(y.APR),
		"source":          y.Source,
	})
}

func (s *Server) handlePrice(w http.ResponseWriter, r *http.Request) {
	if s.deps.Prices == nil {
		writeError(w, http.StatusServiceUnavailable, ErrCodeUnavailable, "price source is disabled")
		return
	}
	symbol := chi.URLParam(r, "symbol")
	id, ok := s.deps.Registry.Params().PriceID(symbol)
	if !ok {
		writeError(w, http.StatusNotFound, ErrCodeNotFound, fmt.Sprintf("no price id for symbol %s", symbol))
		return
	}
	price, err := s.deps.Prices.PriceByCoingeckoID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, price)
}

// --- respuestas ---

// apiError es el cuerpo estándar de error: {"error": {"code", "message"}}.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("api: encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]apiError{"error": {Code: code, Message: message}})
}

// writeDomainError traduce la taxonomía de errores a status HTTP.
func writeDomainError(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	if status >= 500 {
		slog.Warn("api request failed", "status", status, "err", err)
	}
	writeError(w, status, code, err.Error())
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUpstreamNotFound):
		return http.StatusNotFound, ErrCodeNotFound
	case errors.Is(err, domain.ErrUnsupportedStrategy):
		return http.StatusBadRequest, ErrCodeUnsupportedStrategy
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, ErrCodeTimeout
	case errors.Is(err, domain.ErrUpstreamFetch):
		return http.StatusBadGateway, ErrCodeUpstreamFailed
	}
	return http.StatusInternalServerError, ErrCodeInternal
}
