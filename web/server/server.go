package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/core"
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/geometry"
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/integrator"
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/log"
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/renderer"
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/scene"
	"github.com/klauspost/compress/gzhttp"
)

var logger = log.New("server")

// Request limits shared by the render and inspect endpoints
const (
	minWidth      = 16
	maxWidth      = 2000
	maxSamples    = 10000
	maxDepthLimit = 1000
	defaultScene  = "default"
)

// Server serves rendered frames and scene information over HTTP
type Server struct {
	port    int
	mux     *http.ServeMux
	timeout time.Duration
}

// NewServer creates a web server listening on port. Renders longer than
// renderTimeout are cut short and return the partial frame; zero means no limit.
func NewServer(port int, renderTimeout time.Duration) *Server {
	s := &Server{port: port, mux: http.NewServeMux(), timeout: renderTimeout}

	// JSON responses are gzipped for clients that accept it
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.Handle("/api/scenes", gzhttp.GzipHandler(http.HandlerFunc(s.handleScenes)))
	s.mux.Handle("/api/scene-config", gzhttp.GzipHandler(http.HandlerFunc(s.handleSceneConfig)))
	s.mux.Handle("/api/inspect", gzhttp.GzipHandler(http.HandlerFunc(s.handleInspect)))
	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/render/stream", s.handleRenderStream)
	return s
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene      string `json:"scene"`
	Width      int    `json:"width"`      // 0 keeps the scene width
	Samples    int    `json:"samples"`    // 0 keeps the scene samples per pixel
	MaxDepth   int    `json:"maxDepth"`   // 0 keeps the scene depth
	Seed       int64  `json:"seed"`       // 0 keeps the scene seed
	Integrator string `json:"integrator"` // path or normal
}

// Handler returns the HTTP handler for all API endpoints
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.mux,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Noticef("starting web server on http://localhost%s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Notice("shutting down web server")
		return srv.Shutdown(shutdownCtx)
	}
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	type sceneEntry struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	var entries []sceneEntry
	for _, info := range scene.ListScenes() {
		entries = append(entries, sceneEntry{Name: info.Name, Description: info.Description})
	}
	writeJSON(w, http.StatusOK, entries)
}

// handleRender traces a frame and responds with it as a PNG.
// Render statistics are reported in X-Render-* headers.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	integratorInst, err := integrator.New(req.Integrator, integrator.Config{MaxDepth: sceneObj.SamplingConfig.MaxDepth})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// A client disconnect cancels the request context and stops the workers
	ctx := r.Context()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	img, stats, err := renderer.NewRaytracer(sceneObj, integratorInst).Render(ctx)
	if err != nil && !errors.Is(err, renderer.ErrInterrupted) {
		writeError(w, http.StatusInternalServerError, "render error: "+err.Error())
		return
	}
	if err != nil {
		if r.Context().Err() != nil {
			logger.Infof("client went away during %s render", req.Scene)
			return
		}
		logger.Warningf("%s render cut short: %v", req.Scene, err)
		w.Header().Set("X-Render-Partial", "true")
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Render-Samples", strconv.Itoa(stats.TotalSamples))
	w.Header().Set("X-Render-Tiles", fmt.Sprintf("%d/%d", stats.TilesRendered, stats.TotalTiles))
	w.Header().Set("X-Render-Elapsed-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	if err := png.Encode(w, img); err != nil {
		logger.Errorf("failed to encode frame: %v", err)
	}
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = defaultScene
	}

	sceneObj, err := scene.Build(sceneName, scene.BuildOptions{})
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	config := sceneObj.SamplingConfig
	response := map[string]interface{}{
		"scene": sceneName,
		"defaults": map[string]interface{}{
			"width":           config.Width,
			"height":          config.Height,
			"samplesPerPixel": config.SamplesPerPixel,
			"maxDepth":        config.MaxDepth,
			"seed":            config.Seed,
		},
		"limits": map[string]interface{}{
			"width":    map[string]int{"min": minWidth, "max": maxWidth},
			"samples":  map[string]int{"min": 1, "max": maxSamples},
			"maxDepth": map[string]int{"min": 1, "max": maxDepthLimit},
		},
	}
	writeJSON(w, http.StatusOK, response)
}

// parseRenderRequest parses and validates the query parameters shared by render and inspect
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{
		Scene:      values.Get("scene"),
		Integrator: values.Get("integrator"),
	}
	if req.Scene == "" {
		req.Scene = defaultScene
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 0, minWidth, maxWidth); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(values, "samples", 0, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(values, "maxDepth", 0, 1, maxDepthLimit); err != nil {
		return nil, err
	}
	if value := values.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseInt(value, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", value)
		}
	}

	if req.Width > 800 && req.Samples > 100 {
		logger.Warning("large image with high samples may render slowly")
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene builds the requested scene, applies the request overrides and
// builds its BVH. Scenes that need files on disk are not served.
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	sceneObj, err := scene.Build(req.Scene, scene.BuildOptions{
		Camera: geometry.CameraConfig{Width: req.Width},
	})
	if err != nil {
		return nil, err
	}

	config := &sceneObj.SamplingConfig
	if req.Samples > 0 {
		config.SamplesPerPixel = req.Samples
	}
	if req.MaxDepth > 0 {
		config.MaxDepth = req.MaxDepth
	}
	if req.Seed != 0 {
		config.Seed = req.Seed
	}

	if err := sceneObj.Preprocess(core.NewSeededSampler(config.Seed)); err != nil {
		return nil, err
	}
	return sceneObj, nil
}

// statusFor maps scene construction errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, scene.ErrUnknownScene), errors.Is(err, scene.ErrMeshRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
