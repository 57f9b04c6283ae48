package geometry

import (
	"math"
	"testing"

	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/core"
)

func TestNewAxisAlignedBox(t *testing.T) {
	box := NewAxisAlignedBox(core.NewVec3(2, 0, -1), core.NewVec3(0, 4, 1), testMaterial)

	assertVecNear(t, "center", box.Center, core.NewVec3(1, 2, 0), 1e-12)
	assertVecNear(t, "size", box.Size, core.NewVec3(1, 2, 1), 1e-12)
	if !box.Rotation.Equals(core.Vec3{}) {
		t.Errorf("Expected zero rotation, got %v", box.Rotation)
	}

	bbox := box.BoundingBox()
	assertVecNear(t, "bbox min", bbox.Min, core.NewVec3(0, 0, -1), 1e-12)
	assertVecNear(t, "bbox max", bbox.Max, core.NewVec3(2, 4, 1), 1e-12)
}

func TestBox_OutwardNormals(t *testing.T) {
	box := NewAxisAlignedBox(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1), testMaterial)

	directions := []core.Vec3{
		core.NewVec3(1, 0, 0), core.NewVec3(-1, 0, 0),
		core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0),
		core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1),
	}

	for _, outward := range directions {
		// Offset within the face plane so the ray avoids the face diagonals
		offset := core.NewVec3(0.13, 0.21, 0.17)
		offset = offset.Subtract(outward.Multiply(offset.Dot(outward)))
		origin := outward.Multiply(5).Add(offset)
		hit, isHit := box.Hit(core.NewRay(origin, outward.Negate()), 0.001, math.Inf(1))
		if !isHit {
			t.Fatalf("Expected hit from %v", outward)
		}
		if !hit.FrontFace {
			t.Errorf("Face %v: expected front face", outward)
		}
		assertVecNear(t, "normal", hit.Normal, outward, 1e-12)
		if math.Abs(hit.T-4) > 1e-9 {
			t.Errorf("Face %v: expected t=4, got %f", outward, hit.T)
		}
	}
}

func TestBox_HitFromInside(t *testing.T) {
	box := NewAxisAlignedBox(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1), testMaterial)

	hit, isHit := box.Hit(core.NewRay(core.NewVec3(0.1, 0.2, 0), core.NewVec3(0, 0, 1)), 0.001, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit from inside")
	}
	if hit.FrontFace {
		t.Error("Expected back face hit from inside")
	}
	assertVecNear(t, "normal", hit.Normal, core.NewVec3(0, 0, -1), 1e-12)
}

func TestBox_RotatedBoundingBoxContainsCorners(t *testing.T) {
	center := core.NewVec3(1, 2, 3)
	size := core.NewVec3(0.5, 1, 1.5)
	rotation := core.NewVec3(math.Pi/4, math.Pi/6, math.Pi/3)
	box := NewBox(center, size, rotation, testMaterial)

	bbox := box.BoundingBox()
	for _, face := range box.Faces() {
		quad := face.(*Quad)
		for _, v := range []core.Vec3{quad.First.V0, quad.First.V1, quad.First.V2, quad.Second.V2} {
			if v.X < bbox.Min.X-1e-9 || v.Y < bbox.Min.Y-1e-9 || v.Z < bbox.Min.Z-1e-9 ||
				v.X > bbox.Max.X+1e-9 || v.Y > bbox.Max.Y+1e-9 || v.Z > bbox.Max.Z+1e-9 {
				t.Errorf("Corner %v outside bounding box %v", v, bbox)
			}
		}
	}

	// A ray through the center always hits a rotated box
	hit, isHit := box.Hit(core.NewRay(center.Add(core.NewVec3(0, 0, 10)), core.NewVec3(0, 0, -1)), 0.001, math.Inf(1))
	if !isHit || !hit.FrontFace {
		t.Errorf("Expected front face hit through center, got %v", hit)
	}
}
