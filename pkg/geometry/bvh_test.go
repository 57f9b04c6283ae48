package geometry

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/core"
	"github.com/CeruleanLeaves/coms-336-raytracer/pkg/material"
)

func TestNewBVH_Empty(t *testing.T) {
	sampler := core.NewSeededSampler(42)

	root, err := NewBVH(nil, sampler)
	if !errors.Is(err, ErrEmptyShapeList) {
		t.Errorf("Expected ErrEmptyShapeList, got %v", err)
	}
	if root != nil {
		t.Error("Expected no tree for an empty shape list")
	}
}

// boundsShape is a shape that reports a fixed bounding box and never hits
type boundsShape struct {
	box core.AABB
}

func (b boundsShape) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return nil, false
}

func (b boundsShape) BoundingBox() core.AABB {
	return b.box
}

func TestNewBVH_InvalidBounds(t *testing.T) {
	sampler := core.NewSeededSampler(42)
	valid := mustSphere(t, core.NewVec3(0, 0, 0), 1, testMaterial)

	tests := []struct {
		name string
		box  core.AABB
	}{
		{"inverted", core.AABB{Min: core.NewVec3(1, 0, 0), Max: core.NewVec3(0, 1, 1)}},
		{"nan", core.AABB{Min: core.NewVec3(math.NaN(), 0, 0), Max: core.NewVec3(1, 1, 1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := NewBVH([]Shape{valid, boundsShape{box: tt.box}}, sampler)
			if !errors.Is(err, ErrInvalidBounds) {
				t.Errorf("Expected ErrInvalidBounds, got %v", err)
			}
			if root != nil {
				t.Error("Expected no tree for invalid bounds")
			}
		})
	}
}

func TestNewBVH_SingleShapeIsLeaf(t *testing.T) {
	sphere := mustSphere(t, core.NewVec3(0, 0, -1), 0.5, testMaterial)

	root, err := NewBVH([]Shape{sphere}, core.NewSeededSampler(42))
	if err != nil {
		t.Fatalf("NewBVH failed: %v", err)
	}

	if root.Left != Shape(sphere) || root.Right != Shape(sphere) {
		t.Error("Single shape BVH should be a leaf holding the shape on both sides")
	}
	if root.Box != sphere.BoundingBox() {
		t.Errorf("Leaf box %v should equal shape box %v", root.Box, sphere.BoundingBox())
	}

	hit, isHit := root.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0.001, math.Inf(1))
	if !isHit || math.Abs(hit.T-0.5) > 1e-9 {
		t.Errorf("Expected hit at t=0.5, got %v", hit)
	}
}

func TestNewBVH_DoesNotReorderInput(t *testing.T) {
	shapes := randomShapes(rand.New(rand.NewSource(7)), 20)
	original := make([]Shape, len(shapes))
	copy(original, shapes)

	if _, err := NewBVH(shapes, core.NewSeededSampler(42)); err != nil {
		t.Fatalf("NewBVH failed: %v", err)
	}

	for i := range shapes {
		if shapes[i] != original[i] {
			t.Fatalf("Input slice reordered at index %d", i)
		}
	}
}

func TestBVH_BoxesContainChildren(t *testing.T) {
	shapes := randomShapes(rand.New(rand.NewSource(3)), 50)
	root, _ := NewBVH(shapes, core.NewSeededSampler(42))

	var walk func(node *BVHNode)
	walk = func(node *BVHNode) {
		if !node.Box.Contains(node.Left.BoundingBox()) || !node.Box.Contains(node.Right.BoundingBox()) {
			t.Fatalf("Node box %v does not contain its children", node.Box)
		}
		if node.Left == node.Right {
			return
		}
		walk(node.Left.(*BVHNode))
		walk(node.Right.(*BVHNode))
	}
	walk(root)
}

func TestBVH_Stats(t *testing.T) {
	tests := []struct {
		shapes   int
		maxDepth int
	}{
		{1, 0},
		{2, 1},
		{3, 2},
		{8, 3},
		{100, 7},
	}

	for _, tt := range tests {
		root, _ := NewBVH(randomShapes(rand.New(rand.NewSource(1)), tt.shapes), core.NewSeededSampler(42))
		stats := root.Stats()

		if stats.LeafNodes != tt.shapes {
			t.Errorf("%d shapes: expected %d leaves, got %d", tt.shapes, tt.shapes, stats.LeafNodes)
		}
		if stats.TotalNodes != 2*tt.shapes-1 {
			t.Errorf("%d shapes: expected %d nodes, got %d", tt.shapes, 2*tt.shapes-1, stats.TotalNodes)
		}
		if stats.MaxDepth != tt.maxDepth {
			t.Errorf("%d shapes: expected max depth %d, got %d", tt.shapes, tt.maxDepth, stats.MaxDepth)
		}
	}
}

// The BVH must find exactly what a brute-force scan finds
func TestBVH_MatchesLinearScan(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 4, 5} {
		random := rand.New(rand.NewSource(seed))
		shapes := randomShapes(random, 1+random.Intn(60))

		root, err := NewBVH(shapes, core.NewSeededSampler(seed))
		if err != nil {
			t.Fatalf("NewBVH failed: %v", err)
		}
		list := NewShapeList(shapes...)

		for i := 0; i < 500; i++ {
			origin := randomPoint(random, 8)
			direction := randomPoint(random, 1)
			ray := core.NewRayAtTime(origin, direction, random.Float64())
			tMin := 0.001
			tMax := math.Inf(1)
			if i%3 == 0 {
				tMax = random.Float64() * 10
			}

			bvhHit, bvhOK := root.Hit(ray, tMin, tMax)
			listHit, listOK := list.Hit(ray, tMin, tMax)

			if bvhOK != listOK {
				t.Fatalf("seed %d ray %d: BVH hit=%v, linear scan hit=%v", seed, i, bvhOK, listOK)
			}
			if !bvhOK {
				continue
			}
			if bvhHit.T != listHit.T || !bvhHit.Point.Equals(listHit.Point) || bvhHit.Material != listHit.Material {
				t.Fatalf("seed %d ray %d: BVH (t=%f, %v) differs from linear scan (t=%f, %v)",
					seed, i, bvhHit.T, bvhHit.Point, listHit.T, listHit.Point)
			}
		}
	}
}

func randomPoint(random *rand.Rand, scale float64) core.Vec3 {
	return core.NewVec3(random.Float64()*2-1, random.Float64()*2-1, random.Float64()*2-1).Multiply(scale)
}

// randomShapes mixes spheres, moving spheres and triangles, each with its own material
func randomShapes(random *rand.Rand, n int) []Shape {
	shapes := make([]Shape, 0, n)
	for i := 0; i < n; i++ {
		mat := material.NewLambertian(core.NewVec3(random.Float64(), random.Float64(), random.Float64()))
		center := randomPoint(random, 5)

		switch i % 3 {
		case 0:
			sphere, _ := NewSphere(center, 0.1+random.Float64(), mat)
			shapes = append(shapes, sphere)
		case 1:
			sphere, _ := NewMovingSphere(center, center.Add(randomPoint(random, 0.5)), 0, 1, 0.1+random.Float64()*0.5, mat)
			shapes = append(shapes, sphere)
		default:
			shapes = append(shapes, NewTriangle(
				center, center.Add(randomPoint(random, 1)), center.Add(randomPoint(random, 1)), mat, nil))
		}
	}
	return shapes
}

func TestCoincidentShapes_FirstWins(t *testing.T) {
	red := material.NewLambertian(core.NewVec3(1, 0, 0))
	blue := material.NewLambertian(core.NewVec3(0, 0, 1))
	shapes := []Shape{
		mustSphere(t, core.NewVec3(0, 0, -2), 0.5, red),
		mustSphere(t, core.NewVec3(0, 0, -2), 0.5, blue),
	}
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	root, err := NewBVH(shapes, core.NewSeededSampler(7))
	if err != nil {
		t.Fatalf("NewBVH failed: %v", err)
	}

	aggregates := []struct {
		name  string
		shape Shape
	}{
		{"linear scan", NewShapeList(shapes...)},
		{"bvh", root},
	}
	for _, agg := range aggregates {
		t.Run(agg.name, func(t *testing.T) {
			hit, ok := agg.shape.Hit(ray, 0.001, math.Inf(1))
			if !ok {
				t.Fatal("Expected a hit")
			}
			if hit.Material != red {
				t.Error("Expected the first of two coincident shapes to win the tie")
			}
		})
	}
}
