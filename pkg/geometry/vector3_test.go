package geometry

import (
	"math"
	"testing"
)

func TestVector3Add(t *testing.T) {
	v1 := NewVector3(1, 2, 3)
	v2 := NewVector3(4, 5, 6)
	result := v1.Add(v2)

	expected := NewVector3(5, 7, 9)
	if result != expected {
		t.Errorf("Add failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Sub(t *testing.T) {
	v1 := NewVector3(5, 7, 9)
	v2 := NewVector3(1, 2, 3)
	result := v1.Sub(v2)

	expected := NewVector3(4, 5, 6)
	if result != expected {
		t.Errorf("Sub failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Length(t *testing.T) {
	v := NewVector3(3, 4, 0)
	length := v.Length()

	expected := 5.0
	if math.Abs(length-expected) > 1e-10 {
		t.Errorf("Length failed: expected %v, got %v", expected, length)
	}
}

func TestVector3Cross(t *testing.T) {
	x := NewVector3(1, 0, 0)
	y := NewVector3(0, 1, 0)
	result := x.Cross(y)

	expected := NewVector3(0, 0, 1)
	if result != expected {
		t.Errorf("Cross failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Normalize(t *testing.T) {
	v := NewVector3(0, 3, 4)
	result := v.Normalize()

	if math.Abs(result.Length()-1.0) > 1e-10 {
		t.Errorf("Normalize failed: expected unit length, got %v", result.Length())
	}
}

func TestVector3NormalizeZero(t *testing.T) {
	v := NewVector3(0, 0, 0)
	result := v.Normalize()

	if result != (Vector3{}) {
		t.Errorf("Normalize of zero vector failed: expected zero, got %v", result)
	}
}

func TestVector3AngleTo(t *testing.T) {
	x := NewVector3(1, 0, 0)
	y := NewVector3(0, 1, 0)

	angle := x.AngleTo(y)
	if math.Abs(angle-math.Pi/2) > 1e-10 {
		t.Errorf("AngleTo failed: expected %v, got %v", math.Pi/2, angle)
	}

	opposite := x.AngleTo(NewVector3(-1, 0, 0))
	if math.Abs(opposite-math.Pi) > 1e-10 {
		t.Errorf("AngleTo failed: expected %v, got %v", math.Pi, opposite)
	}
}

func TestVector3IsFinite(t *testing.T) {
	if !NewVector3(1, 2, 3).IsFinite() {
		t.Error("IsFinite failed: finite vector reported as non-finite")
	}
	if NewVector3(math.NaN(), 0, 0).IsFinite() {
		t.Error("IsFinite failed: NaN component not detected")
	}
	if NewVector3(0, math.Inf(1), 0).IsFinite() {
		t.Error("IsFinite failed: infinite component not detected")
	}
}
