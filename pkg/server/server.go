// Package server exposes the matching engine over HTTP. The canonical pool
// is fixed at startup; single-record matches are cached against a
// fingerprint of that pool so identical requests do not rescore the roster.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/codeGROOVE-dev/rematch/pkg/cache"
	"github.com/codeGROOVE-dev/rematch/pkg/fighter"
	"github.com/codeGROOVE-dev/rematch/pkg/match"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server serves match requests against a fixed canonical pool.
type Server struct {
	matcher *match.Matcher
	cache   *cache.Cache
	logger  *slog.Logger
	pool    []fighter.CanonicalRecord
	poolTag string

	registry      *prometheus.Registry
	matchesTotal  *prometheus.CounterVec
	matchDuration prometheus.Histogram
}

// Option configures a Server.
type Option func(*config)

type config struct {
	matcher *match.Matcher
	cache   *cache.Cache
	logger  *slog.Logger
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithMatcher sets a configured matcher instead of the defaults.
func WithMatcher(m *match.Matcher) Option {
	return func(c *config) { c.matcher = m }
}

// WithCache sets the result cache. Without it results are recomputed on
// every request.
func WithCache(cc *cache.Cache) Option {
	return func(c *config) { c.cache = cc }
}

// New creates a Server for the given canonical pool.
func New(pool []fighter.CanonicalRecord, opts ...Option) *Server {
	cfg := &config{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.matcher == nil {
		cfg.matcher = match.New(match.WithLogger(cfg.logger))
	}
	if cfg.cache == nil {
		cfg.cache = cache.NewNull()
	}

	registry := prometheus.NewRegistry()
	auto := promauto.With(registry)

	return &Server{
		matcher: cfg.matcher,
		cache:   cfg.cache,
		logger:  cfg.logger,
		pool:    pool,
		poolTag: poolFingerprint(pool),
		registry: registry,
		matchesTotal: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rematch",
			Name:      "matches_total",
			Help:      "Match decisions by classification.",
		}, []string{"classification"}),
		matchDuration: auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: "rematch",
			Name:      "match_duration_seconds",
			Help:      "Time to score one request against the pool.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// Router builds the HTTP routes.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.POST("/v1/match", s.handleMatch)
	r.POST("/v1/batch", s.handleBatch)
	r.GET("/healthz", s.handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))
	return r
}

// Run serves the API on addr until the listener fails.
func (s *Server) Run(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}
	s.logger.Info("serving matches", "addr", addr, "pool", len(s.pool))
	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("serve %s: %w", addr, err)
	}
	return nil
}

func (s *Server) handleMatch(c *gin.Context) {
	var src fighter.SourceRecord
	if err := c.ShouldBindJSON(&src); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	start := time.Now()
	res, err := s.matchOne(c.Request.Context(), src)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.matchesTotal.WithLabelValues(string(res.Classification)).Inc()
	s.matchDuration.Observe(time.Since(start).Seconds())

	c.JSON(http.StatusOK, res)
}

type batchRequest struct {
	Sources []fighter.SourceRecord `json:"sources"`
}

type batchResponse struct {
	Results []fighter.Result `json:"results"`
	Total   int              `json:"total"`
}

func (s *Server) handleBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	start := time.Now()
	results := s.matcher.MatchBatch(req.Sources, s.pool)
	for i := range results {
		s.matchesTotal.WithLabelValues(string(results[i].Classification)).Inc()
	}
	s.matchDuration.Observe(time.Since(start).Seconds())

	c.JSON(http.StatusOK, batchResponse{Results: results, Total: len(results)})
}

func (s *Server) handleHealth(c *gin.Context) {
	stats := s.cache.Stats()
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"pool_size":    len(s.pool),
		"cache_hits":   stats.Hits,
		"cache_misses": stats.Misses,
	})
}

// matchOne validates and scores one source record, going through the result
// cache keyed by the request and the pool fingerprint.
func (s *Server) matchOne(ctx context.Context, src fighter.SourceRecord) (fighter.Result, error) {
	if err := src.Validate(); err != nil {
		return fighter.Result{}, err
	}
	payload, err := json.Marshal(src)
	if err != nil {
		return fighter.Result{}, fmt.Errorf("encode request: %w", err)
	}

	key := cache.Key("match", s.poolTag, string(payload))
	data, cached, err := s.cache.Do(ctx, key, func(context.Context) ([]byte, error) {
		res, err := s.matcher.Rank(src, s.pool)
		if err != nil {
			return nil, err
		}
		return json.Marshal(res)
	})
	if err != nil {
		return fighter.Result{}, err
	}

	var res fighter.Result
	if err := json.Unmarshal(data, &res); err != nil {
		return fighter.Result{}, fmt.Errorf("decode cached result: %w", err)
	}
	s.logger.DebugContext(ctx, "match served", "source", src.Key(), "cached", cached)
	return res, nil
}

// poolFingerprint digests the canonical roster so cached results are tied
// to its exact contents.
func poolFingerprint(pool []fighter.CanonicalRecord) string {
	data, err := json.Marshal(pool)
	if err != nil {
		return "pool-" + strconv.Itoa(len(pool))
	}
	return cache.Key("pool", string(data))
}
