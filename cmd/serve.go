package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/cobra"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/soiltex/internal/config"
	"github.com/sells-group/soiltex/internal/render"
	"github.com/sells-group/soiltex/internal/report"
	"github.com/sells-group/soiltex/internal/texture"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP classification API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(texture.Default(), cfg.Server, cfg.Plot),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("server listening", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	},
}

// classifierCache builds one classifier per system on demand and reuses it;
// classifiers are immutable, so sharing across requests is safe.
type classifierCache struct {
	mu       sync.Mutex
	registry *texture.Registry
	byName   map[string]*texture.Classifier
}

func (cc *classifierCache) get(name string) (*texture.Classifier, error) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if c, ok := cc.byName[name]; ok {
		return c, nil
	}
	sys, err := cc.registry.Get(name)
	if err != nil {
		return nil, err
	}
	c, err := texture.FromSystem(sys)
	if err != nil {
		return nil, err
	}
	cc.byName[name] = c
	return c, nil
}

func newRouter(reg *texture.Registry, serverCfg config.ServerConfig, plotCfg config.PlotConfig) http.Handler {
	cache := &classifierCache{registry: reg, byName: map[string]*texture.Classifier{}}
	limiter := rate.NewLimiter(rate.Limit(serverCfg.RateLimit), serverCfg.RateBurst)
	log := zap.L().With(zap.String("component", "serve"))

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/api/systems", func(w http.ResponseWriter, r *http.Request) {
		type entry struct {
			Name        string `json:"name"`
			Classes     int    `json:"classes"`
			Description string `json:"description"`
		}
		var out []entry
		for _, name := range reg.Names() {
			sys, err := reg.Get(name)
			if err != nil {
				continue
			}
			out = append(out, entry{Name: sys.Name, Classes: len(sys.Classes), Description: sys.Description()})
		}
		writeJSON(w, http.StatusOK, out)
	})

	r.Get("/api/systems/{name}", func(w http.ResponseWriter, r *http.Request) {
		c, err := cache.get(chi.URLParam(r, "name"))
		if err != nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
			return
		}

		fc := geojson.FeatureCollection{}
		for _, class := range c.ClassOrder() {
			fc.Features = append(fc.Features, &geojson.Feature{
				ID:         class,
				Geometry:   c.Geometry(class),
				Properties: map[string]interface{}{"class": class},
			})
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"name":        c.System().Name,
			"description": c.System().Description(),
			"class_order": c.ClassOrder(),
			"geometry":    &fc,
		})
	})

	r.Get("/api/systems/{name}/plot.svg", func(w http.ResponseWriter, r *http.Request) {
		c, err := cache.get(chi.URLParam(r, "name"))
		if err != nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
			return
		}
		svg, err := render.Diagram(c, nil, render.Options{
			Width:   plotCfg.Width,
			SizeMin: plotCfg.SizeMin,
			SizeMax: plotCfg.SizeMax,
		})
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write([]byte(svg))
	})

	r.Post("/api/classify", func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
			return
		}

		var req struct {
			System string    `json:"system"`
			Clay   []float64 `json:"clay"`
			Sand   []float64 `json:"sand"`
			Silt   []float64 `json:"silt"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		if req.System == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "system is required"})
			return
		}

		c, err := cache.get(req.System)
		if err != nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
			return
		}
		labels, err := c.Classify(req.Clay, req.Sand, req.Silt)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		rep := report.New(c, labels, 0)
		log.Info("batch classified",
			zap.String("report", rep.ID),
			zap.String("system", req.System),
			zap.Int("samples", rep.Samples),
		)
		writeJSON(w, http.StatusOK, map[string]any{
			"labels": labels,
			"report": rep,
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (default from config, 8080)")
	rootCmd.AddCommand(serveCmd)
}
