package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	sq "github.com/Masterminds/squirrel"

	"github.com/rt1856/Manrega/models"
	"github.com/rt1856/Manrega/utils"
)

// districtColumns is the canonical select list; scanDistrict must stay in
// step with it.
var districtColumns = []string{
	"id", "district_code", "district_name", "district_name_hindi",
	"district_name_gujarati", "state_code", "state_name",
	"state_name_hindi", "state_name_gujarati",
	"latitude", "longitude", "population", "total_households",
}

// DistrictStore serves the read-only district registry.
type DistrictStore struct {
	*Store

	// distanceMetric selects the nearest-match distance function,
	// "haversine" or "euclidean".
	distanceMetric string
}

func NewDistrictStore(s *Store, distanceMetric string) *DistrictStore {
	if distanceMetric == "" {
		distanceMetric = utils.MetricHaversine
	}
	return &DistrictStore{Store: s, distanceMetric: distanceMetric}
}

// Seed populates the registry from the fixed Gujarat reference list. Seeding
// an already-populated store is a no-op so restarts never duplicate rows.
func (ds *DistrictStore) Seed(ctx context.Context) error {
	count, err := ds.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		log.Printf("Districts already seeded (%d rows), skipping", count)
		return nil
	}

	return ds.WithTx(ctx, func(tx *sql.Tx) error {
		for _, d := range gujaratDistricts {
			query, args, err := ds.SQ.Insert("districts").
				Columns("district_code", "district_name", "district_name_hindi",
					"district_name_gujarati", "latitude", "longitude",
					"population", "total_households").
				Values(d.Code, d.Name, d.NameHindi, d.NameGujarati,
					d.Lat, d.Lon, d.Population, d.Households).
				ToSql()
			if err != nil {
				return fmt.Errorf("build district insert: %w", err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("seed district %s: %w", d.Code, err)
			}
		}
		log.Printf("Seeded %d districts", len(gujaratDistricts))
		return nil
	})
}

// ListAll returns every district for the given state, sorted by display name.
// An unseeded store yields an empty slice, not an error.
func (ds *DistrictStore) ListAll(ctx context.Context, state string) ([]models.District, error) {
	builder := ds.SQ.Select(districtColumns...).From("districts").OrderBy("district_name ASC")
	if state != "" {
		builder = builder.Where(sq.Eq{"state_name": state})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build district list: %w", err)
	}

	rows, err := ds.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list districts: %w", err)
	}
	defer rows.Close()

	districts := make([]models.District, 0)
	for rows.Next() {
		d, err := scanDistrict(rows)
		if err != nil {
			return nil, err
		}
		districts = append(districts, d)
	}
	return districts, rows.Err()
}

// GetByCode looks up one district; a missing code yields ErrNotFound.
func (ds *DistrictStore) GetByCode(ctx context.Context, code string) (*models.District, error) {
	query, args, err := ds.SQ.Select(districtColumns...).
		From("districts").
		Where(sq.Eq{"district_code": code}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build district lookup: %w", err)
	}

	row := ds.DB.QueryRowContext(ctx, query, args...)
	d, err := scanDistrict(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// FindNearest scans all districts with a centroid and returns the one closest
// to (lat, lon) under the configured distance metric. Scan order is district
// code ascending and only a strictly smaller distance replaces the current
// best, so ties resolve to the first code deterministically. ErrNotFound is
// returned when no district carries a centroid.
func (ds *DistrictStore) FindNearest(ctx context.Context, lat, lon float64) (*models.District, error) {
	query, args, err := ds.SQ.Select(districtColumns...).
		From("districts").
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		OrderBy("district_code ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build nearest scan: %w", err)
	}

	rows, err := ds.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("scan districts: %w", err)
	}
	defer rows.Close()

	var (
		nearest     *models.District
		minDistance = -1.0
	)
	for rows.Next() {
		d, err := scanDistrict(rows)
		if err != nil {
			return nil, err
		}
		distance := utils.CentroidDistance(lat, lon, d.Latitude, d.Longitude, ds.distanceMetric)
		if nearest == nil || distance < minDistance {
			candidate := d
			nearest = &candidate
			minDistance = distance
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if nearest == nil {
		return nil, ErrNotFound
	}
	return nearest, nil
}

// Count returns the number of registered districts.
func (ds *DistrictStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := ds.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM districts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count districts: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDistrict(row rowScanner) (models.District, error) {
	var (
		d                         models.District
		nameHindi, nameGujarati   sql.NullString
		stateHindi, stateGujarati sql.NullString
	)
	err := row.Scan(
		&d.ID, &d.Code, &d.Name, &nameHindi, &nameGujarati,
		&d.StateCode, &d.StateName, &stateHindi, &stateGujarati,
		&d.Latitude, &d.Longitude, &d.Population, &d.TotalHouseholds,
	)
	if err == sql.ErrNoRows {
		return d, err
	}
	if err != nil {
		return d, fmt.Errorf("scan district: %w", err)
	}
	d.NameHindi = nameHindi.String
	d.NameGujarati = nameGujarati.String
	d.StateNameHindi = stateHindi.String
	d.StateNameGujarati = stateGujarati.String
	return d, nil
}
