package store

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/rt1856/Manrega/utils"
)

func TestSeedIdempotent(t *testing.T) {
	ds := newSeededDistrictStore(t)
	ctx := context.Background()

	if err := ds.Seed(ctx); err != nil {
		t.Fatalf("re-seed: %v", err)
	}

	count, err := ds.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != len(gujaratDistricts) {
		t.Errorf("expected %d districts after double seed, got %d", len(gujaratDistricts), count)
	}
}

func TestListAllSortedByName(t *testing.T) {
	ds := newSeededDistrictStore(t)

	districts, err := ds.ListAll(context.Background(), "Gujarat")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(districts) != len(gujaratDistricts) {
		t.Fatalf("expected %d districts, got %d", len(gujaratDistricts), len(districts))
	}

	names := make([]string, len(districts))
	for i, d := range districts {
		names[i] = d.Name
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("districts not sorted by name: %v", names)
	}
}

func TestListAllUnseededIsEmpty(t *testing.T) {
	ds := NewDistrictStore(newTestStore(t), utils.MetricHaversine)

	districts, err := ds.ListAll(context.Background(), "Gujarat")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(districts) != 0 {
		t.Errorf("expected empty slice from unseeded store, got %d rows", len(districts))
	}
}

func TestListAllUnknownStateIsEmpty(t *testing.T) {
	ds := newSeededDistrictStore(t)

	districts, err := ds.ListAll(context.Background(), "Kerala")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(districts) != 0 {
		t.Errorf("expected no districts for unknown state, got %d", len(districts))
	}
}

func TestGetByCode(t *testing.T) {
	ds := newSeededDistrictStore(t)
	ctx := context.Background()

	d, err := ds.GetByCode(ctx, "GJ01")
	if err != nil {
		t.Fatalf("get GJ01: %v", err)
	}
	if d.Name != "Ahmedabad" {
		t.Errorf("expected Ahmedabad, got %s", d.Name)
	}
	if !d.HasCentroid() {
		t.Error("expected GJ01 to carry a centroid")
	}
	if d.TotalHouseholds != 1200000 {
		t.Errorf("expected 1200000 households, got %d", d.TotalHouseholds)
	}

	if _, err := ds.GetByCode(ctx, "GJ99"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown code, got %v", err)
	}
}

func TestFindNearest(t *testing.T) {
	ds := newSeededDistrictStore(t)
	ctx := context.Background()

	cases := []struct {
		lat, lon float64
		want     string
	}{
		{23.0, 72.5, "GJ01"},   // Ahmedabad
		{21.17, 72.83, "GJ29"}, // Surat, exact centroid
		{21.64, 69.60, "GJ26"}, // Porbandar
	}
	for _, tc := range cases {
		d, err := ds.FindNearest(ctx, tc.lat, tc.lon)
		if err != nil {
			t.Fatalf("nearest (%f, %f): %v", tc.lat, tc.lon, err)
		}
		if d.Code != tc.want {
			t.Errorf("nearest (%f, %f): expected %s, got %s", tc.lat, tc.lon, tc.want, d.Code)
		}
	}
}

func TestFindNearestTieBreaksByCode(t *testing.T) {
	// Aravalli (GJ04) and Sabarkantha (GJ28) share the centroid (23.5, 73.0)
	// in the reference list; the lower code must win deterministically.
	ds := newSeededDistrictStore(t)

	d, err := ds.FindNearest(context.Background(), 23.5, 73.0)
	if err != nil {
		t.Fatalf("nearest: %v", err)
	}
	if d.Code != "GJ04" {
		t.Errorf("expected tie to resolve to GJ04, got %s", d.Code)
	}
}

func TestFindNearestNoCentroids(t *testing.T) {
	s := newTestStore(t)
	ds := NewDistrictStore(s, utils.MetricHaversine)

	// Only a district without coordinates registered.
	insertDistrict(t, s, "XX01", "Nowhere", nil, nil, 100000)

	if _, err := ds.FindNearest(context.Background(), 23.0, 72.5); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound with no centroided districts, got %v", err)
	}
}

func TestFindNearestSkipsMissingCentroid(t *testing.T) {
	s := newTestStore(t)
	ds := NewDistrictStore(s, utils.MetricHaversine)

	lat, lon := 23.0, 72.6
	insertDistrict(t, s, "XX01", "Nowhere", nil, nil, 100000)
	insertDistrict(t, s, "XX02", "Somewhere", &lat, &lon, 50000)

	d, err := ds.FindNearest(context.Background(), 23.0, 72.5)
	if err != nil {
		t.Fatalf("nearest: %v", err)
	}
	if d.Code != "XX02" {
		t.Errorf("expected the centroided district to win, got %s", d.Code)
	}
}

func TestFindNearestEuclideanVariant(t *testing.T) {
	s := newTestStore(t)
	ds := NewDistrictStore(s, utils.MetricEuclidean)
	if err := ds.Seed(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// At single-state extents the planar ordering matches the geodesic one.
	d, err := ds.FindNearest(context.Background(), 23.0, 72.5)
	if err != nil {
		t.Fatalf("nearest: %v", err)
	}
	if d.Code != "GJ01" {
		t.Errorf("expected GJ01 under euclidean metric, got %s", d.Code)
	}
}
