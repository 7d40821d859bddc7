package utils

import (
	"math"
	"testing"
)

func TestHaversineZeroForSamePoint(t *testing.T) {
	if d := Haversine(23.0225, 72.5714, 23.0225, 72.5714); d != 0 {
		t.Errorf("expected zero distance for identical points, got %f", d)
	}
}

func TestHaversineSymmetry(t *testing.T) {
	d1 := Haversine(23.2200, 72.6500, 21.1700, 72.8300)
	d2 := Haversine(21.1700, 72.8300, 23.2200, 72.6500)
	if math.Abs(d1-d2) > 1e-9 {
		t.Errorf("expected symmetric distances, got %f and %f", d1, d2)
	}
}

func TestHaversineKnownDistance(t *testing.T) {
	// Gandhinagar to Surat is roughly 230 km as the crow flies.
	d := Haversine(23.2200, 72.6500, 21.1700, 72.8300)
	if d < 220 || d > 240 {
		t.Errorf("Gandhinagar-Surat distance out of range: %f km", d)
	}
}

func TestSquaredEuclideanOrdering(t *testing.T) {
	// Not a physical distance, but closer points must yield smaller values.
	near := SquaredEuclidean(23.0, 72.5, 23.0225, 72.5714)
	far := SquaredEuclidean(23.0, 72.5, 21.1700, 72.8300)
	if near >= far {
		t.Errorf("expected near (%f) < far (%f)", near, far)
	}
}

func TestCentroidDistanceMissingCoordinate(t *testing.T) {
	lat := 23.0
	for _, metric := range []string{MetricHaversine, MetricEuclidean} {
		if d := CentroidDistance(23.0, 72.5, nil, nil, metric); !math.IsInf(d, 1) {
			t.Errorf("%s: expected +Inf for missing centroid, got %f", metric, d)
		}
		if d := CentroidDistance(23.0, 72.5, &lat, nil, metric); !math.IsInf(d, 1) {
			t.Errorf("%s: expected +Inf for missing longitude, got %f", metric, d)
		}
	}
}

func TestCentroidDistanceMetricSelection(t *testing.T) {
	lat, lon := 23.0225, 72.5714

	got := CentroidDistance(23.0, 72.5, &lat, &lon, MetricEuclidean)
	want := SquaredEuclidean(23.0, 72.5, lat, lon)
	if got != want {
		t.Errorf("euclidean: got %f, want %f", got, want)
	}

	got = CentroidDistance(23.0, 72.5, &lat, &lon, MetricHaversine)
	want = Haversine(23.0, 72.5, lat, lon)
	if got != want {
		t.Errorf("haversine: got %f, want %f", got, want)
	}
}
