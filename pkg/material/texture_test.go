package material

import (
	"testing"

	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/core"
)

func TestCheckerTexture(t *testing.T) {
	even := core.NewVec3(1, 1, 1)
	odd := core.NewVec3(0.2, 0.3, 0.1)
	checker := NewCheckerTexture(1.0, even, odd)

	tests := []struct {
		name     string
		point    core.Vec3
		expected core.Vec3
	}{
		{"Origin cell", core.NewVec3(0.5, 0.5, 0.5), even},
		{"Step in X", core.NewVec3(1.5, 0.5, 0.5), odd},
		{"Step in X and Y", core.NewVec3(1.5, 1.5, 0.5), even},
		{"Negative cell", core.NewVec3(-0.5, 0.5, 0.5), odd},
		{"Two negative steps", core.NewVec3(-0.5, -0.5, 0.5), even},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checker.Sample(core.Vec2{}, tt.point)
			if !got.Equals(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestSolidColor(t *testing.T) {
	color := core.NewVec3(0.1, 0.2, 0.3)
	solid := NewSolidColor(color)
	if got := solid.Sample(core.NewVec2(0.7, 0.1), core.NewVec3(5, 5, 5)); !got.Equals(color) {
		t.Errorf("Expected %v, got %v", color, got)
	}
}
