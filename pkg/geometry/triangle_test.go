package geometry

import (
	"math"
	"testing"
)

func TestTriangleArea(t *testing.T) {
	// Create a right triangle with sides 3, 4, 5
	tri := NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 4, 0),
	)

	area := tri.Area()
	expected := 6.0 // (3 * 4) / 2 = 6

	if math.Abs(area-expected) > 1e-10 {
		t.Errorf("Area failed: expected %v, got %v", expected, area)
	}
}

func TestTriangleCenter(t *testing.T) {
	tri := NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 3, 0),
	)

	center := tri.Center()
	expected := NewVector3(1, 1, 0)

	if center != expected {
		t.Errorf("Center failed: expected %v, got %v", expected, center)
	}
}

func TestTriangleCalculateNormal(t *testing.T) {
	tri := NewTriangle(
		Vector3{},
		NewVector3(0, 0, 0),
		NewVector3(1, 0, 0),
		NewVector3(0, 1, 0),
	)

	normal := tri.CalculateNormal()
	expected := NewVector3(0, 0, 1)

	if normal.Distance(expected) > 1e-10 {
		t.Errorf("CalculateNormal failed: expected %v, got %v", expected, normal)
	}
}

func TestTriangleBarycentric(t *testing.T) {
	tri := NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 3, 0),
	)

	center := tri.Barycentric(1.0/3.0, 1.0/3.0)
	if center.Distance(tri.Center()) > 1e-10 {
		t.Errorf("Barycentric center failed: expected %v, got %v", tri.Center(), center)
	}

	corner := tri.Barycentric(1, 0)
	if corner.Distance(tri.V2) > 1e-10 {
		t.Errorf("Barycentric corner failed: expected %v, got %v", tri.V2, corner)
	}
}

func TestTriangleIntersectRayHit(t *testing.T) {
	tri := NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(-1, -1, 0),
		NewVector3(1, -1, 0),
		NewVector3(0, 1, 0),
	)

	dist, hit := tri.IntersectRay(NewVector3(0, 0, 5), NewVector3(0, 0, -1))
	if !hit {
		t.Fatal("IntersectRay failed: expected a hit")
	}
	if math.Abs(dist-5.0) > 1e-10 {
		t.Errorf("IntersectRay distance failed: expected 5, got %v", dist)
	}
}

func TestTriangleIntersectRayMiss(t *testing.T) {
	tri := NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(-1, -1, 0),
		NewVector3(1, -1, 0),
		NewVector3(0, 1, 0),
	)

	// Outside the triangle
	if _, hit := tri.IntersectRay(NewVector3(5, 5, 5), NewVector3(0, 0, -1)); hit {
		t.Error("IntersectRay failed: expected a miss beside the triangle")
	}

	// Behind the ray origin
	if _, hit := tri.IntersectRay(NewVector3(0, 0, -5), NewVector3(0, 0, -1)); hit {
		t.Error("IntersectRay failed: expected a miss behind the origin")
	}

	// Parallel to the triangle plane
	if _, hit := tri.IntersectRay(NewVector3(0, 0, 5), NewVector3(1, 0, 0)); hit {
		t.Error("IntersectRay failed: expected a miss for a parallel ray")
	}
}

func TestBoundingBoxExtend(t *testing.T) {
	bbox := NewBoundingBox()
	bbox.Extend(NewVector3(1, 2, 3))
	bbox.Extend(NewVector3(-1, 0, 5))

	if bbox.Min != NewVector3(-1, 0, 3) {
		t.Errorf("Extend failed: unexpected min %v", bbox.Min)
	}
	if bbox.Max != NewVector3(1, 2, 5) {
		t.Errorf("Extend failed: unexpected max %v", bbox.Max)
	}
	if !bbox.IsValid() {
		t.Error("IsValid failed: expected a valid box")
	}
}

func TestBoundingBoxDegenerate(t *testing.T) {
	bbox := NewBoundingBox()
	bbox.Extend(NewVector3(1, 1, 1))

	if !bbox.IsDegenerate() {
		t.Error("IsDegenerate failed: single-point box should be degenerate")
	}

	bbox.Extend(NewVector3(2, 3, 4))
	if bbox.IsDegenerate() {
		t.Error("IsDegenerate failed: box with extent should not be degenerate")
	}
}
