package geometry

import (
	"math"
	"testing"

	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/core"
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/material"
)

var testMaterial = material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))

func assertVecNear(t *testing.T, label string, got, expected core.Vec3, tolerance float64) {
	t.Helper()
	if math.Abs(got.X-expected.X) > tolerance ||
		math.Abs(got.Y-expected.Y) > tolerance ||
		math.Abs(got.Z-expected.Z) > tolerance {
		t.Errorf("%s: expected %v, got %v", label, expected, got)
	}
}

func mustSphere(t *testing.T, center core.Vec3, radius float64, mat material.Material) *Sphere {
	t.Helper()
	sphere, err := NewSphere(center, radius, mat)
	if err != nil {
		t.Fatalf("NewSphere failed: %v", err)
	}
	return sphere
}
