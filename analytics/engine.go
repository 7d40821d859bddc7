package analytics

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/rt1856/Manrega/config"
	"github.com/rt1856/Manrega/models"
	"github.com/rt1856/Manrega/store"
)

// Metric columns accepted by Rank. households_provided_employment is the
// default ranking metric.
const (
	MetricHouseholdsEmployed = "households_provided_employment"
	MetricPersonsWorked      = "persons_worked"
	MetricTotalPersonDays    = "total_person_days"
	MetricWorksCompleted     = "works_completed"
)

var rankMetrics = map[string]bool{
	MetricHouseholdsEmployed: true,
	MetricPersonsWorked:      true,
	MetricTotalPersonDays:    true,
	MetricWorksCompleted:     true,
}

// StateAverage holds the per-field arithmetic mean across all districts with
// a record for one period. Rate fields are means of per-district ratios.
type StateAverage struct {
	HouseholdsEmployed     float64 `json:"households_provided_employment"`
	PersonsWorked          float64 `json:"persons_worked"`
	TotalPersonDays        float64 `json:"total_person_days"`
	WorksCompleted         float64 `json:"works_completed"`
	WomenParticipationRate float64 `json:"women_participation_rate"`
	WorksCompletionRate    float64 `json:"works_completion_rate"`
	ExpenditurePerPerson   float64 `json:"expenditure_per_person"`
}

// Comparison is the full district-versus-state view served by the compare
// endpoint.
type Comparison struct {
	District       models.MonthlyMetric `json:"district"`
	StateAvg       StateAverage         `json:"state_avg"`
	DistrictRank   int                  `json:"district_rank"`
	TotalDistricts int                  `json:"total_districts"`
	ComparisonType string               `json:"comparison_type"`
	Percentages    map[string]float64   `json:"comparison_percentages"`
}

// Engine computes state aggregates, ranks, and district comparisons over the
// performance store. Finished comparisons are cached in the analytics cache
// table for cacheTTL.
type Engine struct {
	districts   *store.DistrictStore
	performance *store.PerformanceStore
	cache       *store.AnalyticsCache
	cacheTTL    time.Duration
}

func NewEngine(districts *store.DistrictStore, performance *store.PerformanceStore, cache *store.AnalyticsCache, cacheTTL time.Duration) *Engine {
	return &Engine{
		districts:   districts,
		performance: performance,
		cache:       cache,
		cacheTTL:    cacheTTL,
	}
}

// StateAverageFor computes the state-wide mean of each metric for one period.
// Only districts holding a record for that period contribute; a district with
// a zero denominator contributes zero to the affected rate, not an error.
func (e *Engine) StateAverageFor(ctx context.Context, year, month int) (*StateAverage, error) {
	row := e.performance.DB.QueryRowContext(ctx, e.stateAverageQuery(), year, month)

	var (
		households, persons, days, completed      sql.NullFloat64
		womenRate, completionRate, expenditurePer sql.NullFloat64
	)
	err := row.Scan(&households, &persons, &days, &completed,
		&womenRate, &completionRate, &expenditurePer)
	if err != nil {
		return nil, fmt.Errorf("state averages for %d/%d: %w", month, year, err)
	}

	return &StateAverage{
		HouseholdsEmployed:     math.Round(households.Float64),
		PersonsWorked:          math.Round(persons.Float64),
		TotalPersonDays:        math.Round(days.Float64),
		WorksCompleted:         math.Round(completed.Float64),
		WomenParticipationRate: round1(womenRate.Float64),
		WorksCompletionRate:    round1(completionRate.Float64),
		ExpenditurePerPerson:   math.Round(expenditurePer.Float64),
	}, nil
}

func (e *Engine) stateAverageQuery() string {
	return e.performance.Rebind(`
		SELECT
			AVG(households_provided_employment),
			AVG(persons_worked),
			AVG(total_person_days),
			AVG(works_completed),
			AVG(COALESCE(women_person_days * 100.0 / NULLIF(total_person_days, 0), 0)),
			AVG(COALESCE(works_completed * 100.0 / NULLIF(works_taken_up, 0), 0)),
			AVG(COALESCE(total_expenditure / NULLIF(persons_worked, 0), 0))
		FROM performance_data
		WHERE year = ? AND month = ?`)
}

// Rank positions a district among all registered districts by the chosen
// metric over each district's latest record, descending. Rank 1 is best. A
// district with no data ranks worst (totalDistricts) rather than erroring;
// ties resolve by district code ascending so exactly one district holds each
// position.
func (e *Engine) Rank(ctx context.Context, code, metric string) (int, int, error) {
	if !rankMetrics[metric] {
		metric = MetricHouseholdsEmployed
	}

	total, err := e.districts.Count(ctx)
	if err != nil {
		return 0, 0, err
	}

	q := fmt.Sprintf(`
		SELECT pd.district_code
		FROM performance_data pd
		INNER JOIN (
			SELECT district_code, MAX(year * 12 + month) AS latest
			FROM performance_data
			GROUP BY district_code
		) l ON pd.district_code = l.district_code
		   AND pd.year * 12 + pd.month = l.latest
		ORDER BY pd.%s DESC, pd.district_code ASC`, metric)

	rows, err := e.performance.DB.QueryContext(ctx, q)
	if err != nil {
		return 0, 0, fmt.Errorf("rank query: %w", err)
	}
	defer rows.Close()

	rank := 0
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return 0, 0, fmt.Errorf("scan rank row: %w", err)
		}
		rank++
		if c == code {
			return rank, total, rows.Err()
		}
	}
	if err := rows.Err(); err != nil {
		return 0, 0, err
	}
	return total, total, nil
}

// PercentDelta is the district value's deviation from the state value in
// percent, rounded to one decimal. A zero state value yields 0.0 so output
// stays JSON-safe.
func PercentDelta(districtValue, stateValue float64) float64 {
	if stateValue == 0 {
		return 0.0
	}
	return round1((districtValue - stateValue) / stateValue * 100)
}

// Compare assembles the district-versus-state view for a period. The district
// record comes from GetOrSynthesize, so the operation degrades to placeholder
// data for never-seeded periods instead of failing.
func (e *Engine) Compare(ctx context.Context, code string, year, month int) (*Comparison, error) {
	cacheKey := config.CacheKey("compare", code, year, month)
	if data, ok := e.cache.Get(ctx, cacheKey); ok {
		var cached Comparison
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	district, err := e.performance.GetOrSynthesize(ctx, code, year, month)
	if err != nil {
		return nil, err
	}

	stateAvg, err := e.StateAverageFor(ctx, year, month)
	if err != nil {
		return nil, err
	}

	rank, total, err := e.Rank(ctx, code, MetricHouseholdsEmployed)
	if err != nil {
		return nil, err
	}

	comparison := &Comparison{
		District:       *district,
		StateAvg:       *stateAvg,
		DistrictRank:   rank,
		TotalDistricts: total,
		ComparisonType: "state",
		Percentages: map[string]float64{
			MetricHouseholdsEmployed: PercentDelta(float64(district.HouseholdsEmployed), stateAvg.HouseholdsEmployed),
			MetricPersonsWorked:      PercentDelta(float64(district.PersonsWorked), stateAvg.PersonsWorked),
			MetricTotalPersonDays:    PercentDelta(float64(district.TotalPersonDays), stateAvg.TotalPersonDays),
			MetricWorksCompleted:     PercentDelta(float64(district.WorksCompleted), stateAvg.WorksCompleted),
		},
	}

	if data, err := json.Marshal(comparison); err == nil {
		if err := e.cache.Put(ctx, cacheKey, data, e.cacheTTL); err != nil {
			log.Printf("Error caching comparison for %s: %v", code, err)
		}
	}
	return comparison, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
