package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/log"
)

// captureLogs redirects log output for the duration of the test
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetSink(&buf)
	t.Cleanup(func() {
		log.SetSink(os.Stdout)
		log.SetLevel(log.Notice)
	})
	return &buf
}

func TestRenderCommand(t *testing.T) {
	logs := captureLogs(t)
	out := filepath.Join(t.TempDir(), "frames", "sphere.png")

	args := []string{"raytracer", "render", "--scene", "single-sphere", "--width", "32", "--spp", "2", "--seed", "7", "--out", out}
	if err := newApp().Run(args); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("expected output image: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("failed to decode output: %v", err)
	}
	if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 18 {
		t.Errorf("expected 32x18 frame, got %v", img.Bounds())
	}

	if !strings.Contains(logs.String(), "frame statistics") {
		t.Errorf("expected frame statistics in log output, got %q", logs.String())
	}
}

func TestRenderCommand_NormalIntegrator(t *testing.T) {
	captureLogs(t)
	out := filepath.Join(t.TempDir(), "normals.png")

	args := []string{"raytracer", "render", "-s", "octahedron", "--width", "16", "--spp", "1", "--integrator", "normal", "-o", out}
	if err := newApp().Run(args); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("expected output image: %v", err)
	}
}

func TestRenderCommand_Errors(t *testing.T) {
	captureLogs(t)
	out := filepath.Join(t.TempDir(), "never.png")

	tests := []struct {
		name string
		args []string
	}{
		{"unknown scene", []string{"--scene", "nonexistent"}},
		{"unknown integrator", []string{"--scene", "single-sphere", "--integrator", "bdpt"}},
		{"ply without mesh", []string{"--scene", "ply"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"raytracer", "render", "--width", "8", "--out", out}, tt.args...)
			if err := newApp().Run(args); err == nil {
				t.Error("expected error")
			}
		})
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("expected no output file, got %v", err)
	}
}

func TestScenesCommand(t *testing.T) {
	logs := captureLogs(t)

	if err := newApp().Run([]string{"raytracer", "scenes"}); err != nil {
		t.Fatalf("scenes failed: %v", err)
	}

	for _, name := range []string{"default", "single-sphere", "cornell", "motion-blur", "octahedron", "textures", "ply"} {
		if !strings.Contains(logs.String(), name) {
			t.Errorf("expected scene %q in listing", name)
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no flags", []string{"raytracer", "scenes"}},
		{"verbose", []string{"raytracer", "-v", "scenes"}},
		{"very verbose", []string{"raytracer", "-vv", "scenes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := captureLogs(t)
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("%v panicked: %v", tt.args, r)
				}
			}()

			if err := newApp().Run(tt.args); err != nil {
				t.Fatalf("%v failed: %v", tt.args, err)
			}
			if !strings.Contains(logs.String(), "cornell") {
				t.Errorf("expected scene listing, got %q", logs.String())
			}
		})
	}
}

func TestVersionFlag(t *testing.T) {
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out

	if err := app.Run([]string{"raytracer", "--version"}); err != nil {
		t.Fatalf("--version failed: %v", err)
	}
	if !strings.Contains(out.String(), app.Version) {
		t.Errorf("expected version %s in output, got %q", app.Version, out.String())
	}
}

func TestInspectCommand(t *testing.T) {
	logs := captureLogs(t)

	if err := newApp().Run([]string{"raytracer", "-v", "inspect", "--scene", "octahedron"}); err != nil {
		t.Fatalf("inspect failed: %v", err)
	}

	out := logs.String()
	for _, want := range []string{"BVH nodes", "33", "Primitives", "17"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in inspect output, got %q", want, out)
		}
	}
}
