package server

import (
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func doRequest(t *testing.T, s *Server, path string, query url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path+"?"+query.Encode(), nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	rec := doRequest(t, NewServer(0, 0), "/api/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %q", body["status"])
	}
}

func TestHandleScenes(t *testing.T) {
	rec := doRequest(t, NewServer(0, 0), "/api/scenes", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var entries []struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&entries); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}

	found := false
	for _, e := range entries {
		if e.Description == "" {
			t.Errorf("scene %q has no description", e.Name)
		}
		if e.Name == "cornell" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected cornell in %v", entries)
	}
}

func TestHandleSceneConfig(t *testing.T) {
	rec := doRequest(t, NewServer(0, 0), "/api/scene-config", url.Values{"scene": {"cornell"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Scene    string `json:"scene"`
		Defaults struct {
			Width           int `json:"width"`
			SamplesPerPixel int `json:"samplesPerPixel"`
			MaxDepth        int `json:"maxDepth"`
		} `json:"defaults"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Scene != "cornell" || body.Defaults.Width != 400 || body.Defaults.SamplesPerPixel != 200 || body.Defaults.MaxDepth != 50 {
		t.Errorf("unexpected cornell config: %+v", body)
	}

	rec = doRequest(t, NewServer(0, 0), "/api/scene-config", url.Values{"scene": {"nope"}})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown scene, got %d", rec.Code)
	}
}

func TestHandleRender(t *testing.T) {
	query := url.Values{
		"scene":   {"single-sphere"},
		"width":   {"32"},
		"samples": {"1"},
		"seed":    {"3"},
	}
	rec := doRequest(t, NewServer(0, 0), "/api/render", query)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("expected image/png, got %q", ct)
	}
	if rec.Header().Get("X-Render-Partial") != "" {
		t.Error("complete render should not be marked partial")
	}
	if got := rec.Header().Get("X-Render-Samples"); got != "576" {
		t.Errorf("expected 576 samples (32x18x1), got %q", got)
	}

	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("failed to decode png: %v", err)
	}
	if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 18 {
		t.Errorf("expected 32x18, got %v", img.Bounds())
	}
}

func TestHandleRender_Timeout(t *testing.T) {
	query := url.Values{"scene": {"single-sphere"}, "width": {"32"}, "samples": {"1"}}
	rec := doRequest(t, NewServer(0, time.Nanosecond), "/api/render", query)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with partial frame, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Render-Partial") != "true" {
		t.Error("expected partial frame header")
	}
	if _, err := png.Decode(rec.Body); err != nil {
		t.Errorf("partial frame should still be a png: %v", err)
	}
}

func TestHandleRender_BadRequests(t *testing.T) {
	tests := []struct {
		name  string
		query url.Values
	}{
		{"unknown scene", url.Values{"scene": {"nope"}}},
		{"width too small", url.Values{"scene": {"single-sphere"}, "width": {"4"}}},
		{"width not a number", url.Values{"width": {"wide"}}},
		{"samples out of range", url.Values{"samples": {"0"}}},
		{"bad seed", url.Values{"seed": {"x"}}},
		{"unknown integrator", url.Values{"scene": {"single-sphere"}, "width": {"16"}, "integrator": {"bdpt"}}},
		{"mesh scene without mesh", url.Values{"scene": {"ply"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, NewServer(0, 0), "/api/render", tt.query)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}

			var body map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode error body: %v", err)
			}
			if body["error"] == "" {
				t.Error("expected an error message")
			}
		})
	}
}

func TestHandleInspect(t *testing.T) {
	s := NewServer(0, 0)

	// Center pixel of the single sphere frame looks straight at the sphere
	query := url.Values{"scene": {"single-sphere"}, "width": {"32"}, "x": {"16"}, "y": {"9"}}
	rec := doRequest(t, s, "/api/inspect", query)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp InspectResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if !resp.Hit {
		t.Fatal("expected the center ray to hit the sphere")
	}
	if resp.GeometryType != "sphere" || resp.MaterialType != "lambertian" {
		t.Errorf("expected lambertian sphere, got %s %s", resp.MaterialType, resp.GeometryType)
	}
	if resp.Distance < 0.45 || resp.Distance > 0.6 {
		t.Errorf("expected distance near 0.5, got %f", resp.Distance)
	}
	if !resp.FrontFace {
		t.Error("expected a front face hit")
	}

	// Top-left corner sees only sky
	query.Set("x", "0")
	query.Set("y", "0")
	rec = doRequest(t, s, "/api/inspect", query)
	resp = InspectResponse{}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if resp.Hit {
		t.Errorf("expected a miss at the corner, got %+v", resp)
	}
}

func TestHandleInspect_BadRequests(t *testing.T) {
	tests := []struct {
		name  string
		query url.Values
	}{
		{"missing x", url.Values{"scene": {"single-sphere"}, "y": {"1"}}},
		{"missing y", url.Values{"scene": {"single-sphere"}, "x": {"1"}}},
		{"outside frame", url.Values{"scene": {"single-sphere"}, "width": {"32"}, "x": {"32"}, "y": {"0"}}},
		{"negative pixel", url.Values{"scene": {"single-sphere"}, "width": {"32"}, "x": {"0"}, "y": {"-1"}}},
		{"unknown scene", url.Values{"scene": {"nope"}, "x": {"0"}, "y": {"0"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, NewServer(0, 0), "/api/inspect", tt.query)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestExtractGeometryInfo_Unknown(t *testing.T) {
	kind, props := extractGeometryInfo(nil)
	if kind != "unknown" || len(props) != 0 {
		t.Errorf("expected unknown with no properties, got %s %v", kind, props)
	}
}
