package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Server handles web requests for the raytracer
type Server struct {
	cfg    config.Config
	logger core.Logger
	router *mux.Router
}

// NewServer creates a new web server
func NewServer(cfg config.Config, logger core.Logger) *Server {
	if logger == nil {
		logger = core.NopLogger{}
	}
	s := &Server{cfg: cfg, logger: logger}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(Recovery(s.logger))
	r.Use(RequestLogger(s.logger))
	r.Use(CORS)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/scenes", s.handleScenes).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/render", s.handleRender).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/render/ws", s.handleRenderStream).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/inspect", s.handleInspect).Methods(http.MethodGet, http.MethodOptions)
	return r
}

// Handler returns the routed handler with middleware applied
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is done, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	s.logger.Infof("starting web server on %s", s.cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes and the scene files on disk
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := scene.ListScenes(s.cfg.SceneDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, scenes)
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene       string          // Built-in name or file name inside the scene directory
	Width       int             // 0 = scene camera
	Height      int             // 0 = scene camera
	FieldOfView float64         // Degrees, 0 = scene camera
	MaxDepth    int             // Reflection and refraction depth
	TileSize    int             // Tile edge in pixels
	Format      renderer.Format // Encoding for /api/render
}

// parseRenderRequest reads render parameters from the query string,
// falling back to the server config
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	q := r.URL.Query()
	req := &RenderRequest{Scene: s.cfg.Scene}
	if name := q.Get("scene"); name != "" {
		req.Scene = name
	}

	var err error
	if req.Width, err = parseIntParam(q, "width", s.cfg.Width, 0, 4000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(q, "height", s.cfg.Height, 0, 4000); err != nil {
		return nil, err
	}
	if req.FieldOfView, err = parseFloatParam(q, "fov", s.cfg.FieldOfView, 0, 179); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(q, "maxDepth", s.cfg.MaxDepth, 1, 50); err != nil {
		return nil, err
	}
	if req.TileSize, err = parseIntParam(q, "tileSize", s.cfg.TileSize, 1, 512); err != nil {
		return nil, err
	}

	format := s.cfg.Format
	if f := q.Get("format"); f != "" {
		format = f
	}
	if req.Format, err = renderer.ParseFormat(format); err != nil {
		return nil, err
	}
	return req, nil
}

// loadScene resolves a built-in scene or a .toml file inside the scene
// directory. Paths outside the directory are never read.
func (s *Server) loadScene(name string) (*scene.Scene, error) {
	if strings.HasSuffix(name, ".toml") {
		return scene.LoadFile(filepath.Join(s.cfg.SceneDir, filepath.Base(name)))
	}
	return scene.Get(name)
}

// prepare builds the scene and camera for a request
func (s *Server) prepare(req *RenderRequest) (*scene.Scene, *renderer.Camera, error) {
	sc, err := s.loadScene(req.Scene)
	if err != nil {
		return nil, nil, err
	}

	cfg := s.cfg
	cfg.Width, cfg.Height, cfg.FieldOfView = req.Width, req.Height, req.FieldOfView
	camera, err := renderer.NewCameraFromConfig(cfg.Camera(sc.Camera))
	if err != nil {
		return nil, nil, err
	}
	camera.MaxDepth = req.MaxDepth
	return sc, camera, nil
}

// parseIntParam parses and validates an integer parameter
func parseIntParam(values url.Values, name string, defaultValue, min, max int) (int, error) {
	str := values.Get(name)
	if str == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", name, err)
	}
	if value < min || value > max {
		return 0, fmt.Errorf("%s must be between %d and %d", name, min, max)
	}
	return value, nil
}

// parseFloatParam parses and validates a float parameter
func parseFloatParam(values url.Values, name string, defaultValue, min, max float64) (float64, error) {
	str := values.Get(name)
	if str == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", name, err)
	}
	if value < min || value > max {
		return 0, fmt.Errorf("%s must be between %g and %g", name, min, max)
	}
	return value, nil
}

// prepareErrorStatus maps scene and camera setup errors to HTTP statuses
func prepareErrorStatus(err error) int {
	switch {
	case errors.Is(err, scene.ErrUnknownScene),
		errors.Is(err, scene.ErrInvalidSceneFile),
		errors.Is(err, renderer.ErrInvalidCanvas):
		return http.StatusBadRequest
	default:
		return http.StatusNotFound
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
