package discovery

import (
	"math"
	"testing"
)

func TestHaversineZeroForSamePoint(t *testing.T) {
	if d := Haversine(-1.2921, 36.8219, -1.2921, 36.8219); d != 0 {
		t.Fatalf("expected 0, got %v", d)
	}
}

func TestHaversineOneDegreeOfLatitude(t *testing.T) {
	// One degree of latitude is roughly 111.19 km on a 6371 km sphere.
	d := Haversine(0, 0, 1, 0)
	if math.Abs(d-111.19) > 0.2 {
		t.Fatalf("expected ~111.19 km, got %v", d)
	}
}

func TestHaversineSymmetric(t *testing.T) {
	a := Haversine(-1.2921, 36.8219, -4.0435, 39.6682) // Nairobi -> Mombasa
	b := Haversine(-4.0435, 39.6682, -1.2921, 36.8219)
	if math.Abs(a-b) > 1e-9 {
		t.Fatalf("distance should be symmetric: %v vs %v", a, b)
	}
	if a < 400 || a > 500 {
		t.Fatalf("Nairobi-Mombasa should be ~440 km, got %v", a)
	}
}
