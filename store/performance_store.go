package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	sq "github.com/Masterminds/squirrel"

	"github.com/rt1856/Manrega/models"
)

var performanceColumns = []string{
	"district_code", "year", "month",
	"households_provided_employment", "persons_worked",
	"total_person_days", "sc_person_days", "st_person_days", "women_person_days",
	"total_expenditure", "works_taken_up", "works_completed",
	"avg_days_per_household", "data_source",
}

// PerformanceStore reads and writes the monthly metric fact table.
type PerformanceStore struct {
	*Store

	districts *DistrictStore
}

func NewPerformanceStore(s *Store, districts *DistrictStore) *PerformanceStore {
	return &PerformanceStore{Store: s, districts: districts}
}

// Get returns the record for an exact (district, year, month) key, or
// ErrNotFound.
func (ps *PerformanceStore) Get(ctx context.Context, code string, year, month int) (*models.MonthlyMetric, error) {
	query, args, err := ps.SQ.Select(performanceColumns...).
		From("performance_data").
		Where(sq.Eq{"district_code": code, "year": year, "month": month}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build metric lookup: %w", err)
	}
	return ps.queryOne(ctx, query, args)
}

// GetLatest returns the most recent record for a district, ordered by year
// then month descending.
func (ps *PerformanceStore) GetLatest(ctx context.Context, code string) (*models.MonthlyMetric, error) {
	query, args, err := ps.SQ.Select(performanceColumns...).
		From("performance_data").
		Where(sq.Eq{"district_code": code}).
		OrderBy("year DESC", "month DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build latest lookup: %w", err)
	}
	return ps.queryOne(ctx, query, args)
}

// GetTrend returns the district's full series in chronological order. The
// slice is empty when the district has no records.
func (ps *PerformanceStore) GetTrend(ctx context.Context, code string) ([]models.MonthlyMetric, error) {
	query, args, err := ps.SQ.Select(performanceColumns...).
		From("performance_data").
		Where(sq.Eq{"district_code": code}).
		OrderBy("year ASC", "month ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build trend lookup: %w", err)
	}

	rows, err := ps.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query trend: %w", err)
	}
	defer rows.Close()

	trend := make([]models.MonthlyMetric, 0)
	for rows.Next() {
		m, err := scanMetric(rows)
		if err != nil {
			return nil, err
		}
		trend = append(trend, m)
	}
	return trend, rows.Err()
}

// Upsert writes a record keyed on (district_code, year, month), replacing all
// fields in a single statement when the key already exists. It reports
// success as a bool; a duplicate key is never surfaced to the caller.
func (ps *PerformanceStore) Upsert(ctx context.Context, m *models.MonthlyMetric) bool {
	query, args, err := ps.SQ.Insert("performance_data").
		Columns(performanceColumns...).
		Values(m.DistrictCode, m.Year, m.Month,
			m.HouseholdsEmployed, m.PersonsWorked,
			m.TotalPersonDays, m.SCPersonDays, m.STPersonDays, m.WomenPersonDays,
			m.TotalExpenditure, m.WorksTakenUp, m.WorksCompleted,
			m.AvgDaysPerHousehold, m.DataSource).
		Suffix(`ON CONFLICT (district_code, year, month) DO UPDATE SET
			households_provided_employment = excluded.households_provided_employment,
			persons_worked = excluded.persons_worked,
			total_person_days = excluded.total_person_days,
			sc_person_days = excluded.sc_person_days,
			st_person_days = excluded.st_person_days,
			women_person_days = excluded.women_person_days,
			total_expenditure = excluded.total_expenditure,
			works_taken_up = excluded.works_taken_up,
			works_completed = excluded.works_completed,
			avg_days_per_household = excluded.avg_days_per_household,
			data_source = excluded.data_source,
			last_updated = CURRENT_TIMESTAMP`).
		ToSql()
	if err != nil {
		log.Printf("Error building performance upsert: %v", err)
		return false
	}

	if _, err := ps.DB.ExecContext(ctx, query, args...); err != nil {
		log.Printf("Error saving performance data for %s %d/%d: %v",
			m.DistrictCode, m.Month, m.Year, err)
		return false
	}
	return true
}

// GetOrSynthesize returns the stored record for the key, or derives a
// plausible one from the district's household count and persists it. The
// synthesized values are a pure function of (code, year, month), so the
// first call locks in the numbers and every later call returns the same row.
func (ps *PerformanceStore) GetOrSynthesize(ctx context.Context, code string, year, month int) (*models.MonthlyMetric, error) {
	m, err := ps.Get(ctx, code, year, month)
	if err == nil {
		return m, nil
	}
	if err != ErrNotFound {
		return nil, err
	}

	var households int64 = defaultHouseholds
	if d, derr := ps.districts.GetByCode(ctx, code); derr == nil {
		households = d.TotalHouseholds
	}

	synth := synthesizeMetric(code, year, month, households)
	if !ps.Upsert(ctx, synth) {
		// Persisting is best-effort; the derived record is still valid.
		log.Printf("Could not persist synthesized record for %s %d/%d", code, month, year)
	}
	return synth, nil
}

// Count returns the total number of performance records.
func (ps *PerformanceStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := ps.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM performance_data`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count performance records: %w", err)
	}
	return count, nil
}

// LatestPeriod returns the most recent (year, month) present in the fact
// table, or (0, 0) when it is empty.
func (ps *PerformanceStore) LatestPeriod(ctx context.Context) (int, int, error) {
	var year, month sql.NullInt64
	err := ps.DB.QueryRowContext(ctx, `
		SELECT year, month FROM performance_data
		ORDER BY year DESC, month DESC LIMIT 1`).Scan(&year, &month)
	if err == sql.ErrNoRows {
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, fmt.Errorf("latest period: %w", err)
	}
	return int(year.Int64), int(month.Int64), nil
}

func (ps *PerformanceStore) queryOne(ctx context.Context, query string, args []interface{}) (*models.MonthlyMetric, error) {
	row := ps.DB.QueryRowContext(ctx, query, args...)
	m, err := scanMetric(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func scanMetric(row rowScanner) (models.MonthlyMetric, error) {
	var m models.MonthlyMetric
	err := row.Scan(
		&m.DistrictCode, &m.Year, &m.Month,
		&m.HouseholdsEmployed, &m.PersonsWorked,
		&m.TotalPersonDays, &m.SCPersonDays, &m.STPersonDays, &m.WomenPersonDays,
		&m.TotalExpenditure, &m.WorksTakenUp, &m.WorksCompleted,
		&m.AvgDaysPerHousehold, &m.DataSource,
	)
	if err == sql.ErrNoRows {
		return m, err
	}
	if err != nil {
		return m, fmt.Errorf("scan metric: %w", err)
	}
	return m, nil
}
