package material

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/core"
)

func TestNewDielectric_RejectsNonPositiveIndex(t *testing.T) {
	for _, ior := range []float64{0, -1.5} {
		glass, err := NewDielectric(ior)
		if !errors.Is(err, ErrInvalidRefractiveIndex) {
			t.Errorf("NewDielectric(%g): expected ErrInvalidRefractiveIndex, got %v", ior, err)
		}
		if glass != nil {
			t.Errorf("NewDielectric(%g): expected nil material", ior)
		}
	}

	if _, err := NewDielectric(1.5); err != nil {
		t.Errorf("NewDielectric(1.5): unexpected error %v", err)
	}
}

func TestReflectance(t *testing.T) {
	tests := []struct {
		name     string
		cosine   float64
		ior      float64
		expected float64
	}{
		{"Normal incidence glass", 1.0, 1.5, ((1 - 1.5) / (1 + 1.5)) * ((1 - 1.5) / (1 + 1.5))},
		{"Normal incidence water", 1.0, 1.33, ((1 - 1.33) / (1 + 1.33)) * ((1 - 1.33) / (1 + 1.33))},
		{"Grazing incidence", 0.0, 1.5, 1.0},
		{"Matched index", 1.0, 1.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reflectance(tt.cosine, tt.ior)
			if math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("Reflectance(%g, %g) = %g, expected %g", tt.cosine, tt.ior, got, tt.expected)
			}
		})
	}
}

func TestReflectance_NormalIncidenceIsR0(t *testing.T) {
	ior := 1.5
	r0 := (1 - ior) / (1 + ior)
	r0 = r0 * r0
	if got := Reflectance(1.0, ior); got != r0 {
		t.Errorf("Reflectance(1, %g) = %g, expected exactly %g", ior, got, r0)
	}
}

func TestDielectric_AlwaysScattersWithWhiteAttenuation(t *testing.T) {
	glass, _ := NewDielectric(1.5)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))
	white := core.NewVec3(1, 1, 1)

	ray := core.NewRayAtTime(core.NewVec3(0, 1, 0), core.NewVec3(1, -1, 0), 0.4)
	hit := &HitRecord{
		T:         1.0,
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		FrontFace: true,
		Material:  glass,
	}

	hasReflection := false
	hasRefraction := false
	for i := 0; i < 500; i++ {
		result, scattered := glass.Scatter(ray, hit, sampler)
		if !scattered {
			t.Fatal("Dielectric should always scatter")
		}
		if !result.Attenuation.Equals(white) {
			t.Fatalf("Expected attenuation %v, got %v", white, result.Attenuation)
		}
		if result.Scattered.Time != 0.4 {
			t.Fatalf("Scattered ray should keep time 0.4, got %g", result.Scattered.Time)
		}
		if result.Scattered.Direction.Y > 0 {
			hasReflection = true
		} else {
			hasRefraction = true
		}
	}

	if !hasReflection || !hasRefraction {
		t.Errorf("Expected both reflection and refraction, got reflection=%v refraction=%v",
			hasReflection, hasRefraction)
	}
}

func TestDielectric_SnellsLaw(t *testing.T) {
	glass, _ := NewDielectric(1.5)

	// 30 degree incidence from air; a high sample always loses the Schlick draw
	direction := core.NewVec3(math.Sin(math.Pi/6), 0, -math.Cos(math.Pi/6))
	ray := core.NewRay(core.NewVec3(0, 0, 1), direction)
	hit := &HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 0, 1), FrontFace: true}

	result, _ := glass.Scatter(ray, hit, constantSampler{0.999})
	out := result.Scattered.Direction.Normalize()

	if out.Z >= 0 {
		t.Fatalf("Expected refraction into the surface, got %v", out)
	}

	sinTransmitted := math.Sqrt(out.X*out.X + out.Y*out.Y)
	expected := math.Sin(math.Pi/6) / 1.5
	if math.Abs(sinTransmitted-expected) > 1e-9 {
		t.Errorf("sin(theta_t) = %f, expected %f", sinTransmitted, expected)
	}

	// Offset origin sits on the normal side of the surface
	if result.Scattered.Origin.Z != SelfIntersectionOffset {
		t.Errorf("Expected origin offset %g along the normal, got %v", SelfIntersectionOffset, result.Scattered.Origin)
	}
}

func TestDielectric_TotalInternalReflection(t *testing.T) {
	glass, _ := NewDielectric(1.5)

	// Leaving glass at a grazing angle; the hit normal faces the incoming ray
	direction := core.NewVec3(1, 0, -0.1)
	ray := core.NewRay(core.NewVec3(-1, 0, 0.1), direction)
	hit := &HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 0, 1), FrontFace: false}

	for _, sample := range []float64{0.0, 0.5, 0.999} {
		result, scattered := glass.Scatter(ray, hit, constantSampler{sample})
		if !scattered {
			t.Fatal("Dielectric should always scatter")
		}
		if result.Scattered.Direction.Z <= 0 {
			t.Errorf("sample %g: expected total internal reflection, got direction %v",
				sample, result.Scattered.Direction)
		}
	}
}

func TestDielectric_NormalIncidenceReflectsOnLowSample(t *testing.T) {
	glass, _ := NewDielectric(1.5)
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	hit := &HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 0, 1), FrontFace: true}

	result, _ := glass.Scatter(ray, hit, constantSampler{0.0})
	if !vecApproxEqual(result.Scattered.Direction, core.NewVec3(0, 0, 1), 1e-12) {
		t.Errorf("Expected straight reflection, got %v", result.Scattered.Direction)
	}

	result, _ = glass.Scatter(ray, hit, constantSampler{0.5})
	if !vecApproxEqual(result.Scattered.Direction, core.NewVec3(0, 0, -1), 1e-12) {
		t.Errorf("Expected straight transmission, got %v", result.Scattered.Direction)
	}
}
