package analytics

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rt1856/Manrega/config"
	"github.com/rt1856/Manrega/models"
	"github.com/rt1856/Manrega/store"
	"github.com/rt1856/Manrega/utils"
)

type testEnv struct {
	store       *store.Store
	districts   *store.DistrictStore
	performance *store.PerformanceStore
	cache       *store.AnalyticsCache
	engine      *Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		DBDriver:   "sqlite3",
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
	}
	s, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(s.Close)

	districts := store.NewDistrictStore(s, utils.MetricHaversine)
	performance := store.NewPerformanceStore(s, districts)
	cache := store.NewAnalyticsCache(s)
	return &testEnv{
		store:       s,
		districts:   districts,
		performance: performance,
		cache:       cache,
		engine:      NewEngine(districts, performance, cache, time.Hour),
	}
}

func (e *testEnv) addDistrict(t *testing.T, code, name string, lat, lon float64, households int64) {
	t.Helper()

	query, args, err := e.store.SQ.Insert("districts").
		Columns("district_code", "district_name", "latitude", "longitude",
			"population", "total_households").
		Values(code, name, lat, lon, households*5, households).
		ToSql()
	if err != nil {
		t.Fatalf("build insert: %v", err)
	}
	if _, err := e.store.DB.Exec(query, args...); err != nil {
		t.Fatalf("insert district %s: %v", code, err)
	}
}

func (e *testEnv) addMetric(t *testing.T, code string, year, month int, households, persons, days, takenUp, completed int64, women int64, expenditure float64) {
	t.Helper()

	ok := e.performance.Upsert(context.Background(), &models.MonthlyMetric{
		DistrictCode:       code,
		Year:               year,
		Month:              month,
		HouseholdsEmployed: households,
		PersonsWorked:      persons,
		TotalPersonDays:    days,
		WomenPersonDays:    women,
		TotalExpenditure:   expenditure,
		WorksTakenUp:       takenUp,
		WorksCompleted:     completed,
		DataSource:         models.SourceReal,
	})
	if !ok {
		t.Fatalf("upsert metric for %s", code)
	}
}

func TestStateAverageIsMeanOfDistricts(t *testing.T) {
	env := newTestEnv(t)
	env.addDistrict(t, "TA01", "Alpha", 23.0, 72.6, 100000)
	env.addDistrict(t, "TB01", "Beta", 21.1, 72.8, 50000)

	env.addMetric(t, "TA01", 2025, 3, 100, 200, 8000, 80, 40, 4000, 1600000)
	env.addMetric(t, "TB01", 2025, 3, 50, 100, 4000, 40, 30, 1600, 1200000)

	avg, err := env.engine.StateAverageFor(context.Background(), 2025, 3)
	if err != nil {
		t.Fatalf("state average: %v", err)
	}

	if avg.HouseholdsEmployed != 75 {
		t.Errorf("households: expected 75, got %f", avg.HouseholdsEmployed)
	}
	if avg.PersonsWorked != 150 {
		t.Errorf("persons: expected 150, got %f", avg.PersonsWorked)
	}
	if avg.TotalPersonDays != 6000 {
		t.Errorf("person-days: expected 6000, got %f", avg.TotalPersonDays)
	}
	if avg.WorksCompleted != 35 {
		t.Errorf("works completed: expected 35, got %f", avg.WorksCompleted)
	}

	// Women participation: mean of per-district ratios, 50% and 40%.
	if avg.WomenParticipationRate != 45.0 {
		t.Errorf("women rate: expected 45.0, got %f", avg.WomenParticipationRate)
	}
	// Completion: mean of 50% and 75%.
	if avg.WorksCompletionRate != 62.5 {
		t.Errorf("completion rate: expected 62.5, got %f", avg.WorksCompletionRate)
	}
	// Expenditure per person: mean of 8000 and 12000.
	if avg.ExpenditurePerPerson != 10000 {
		t.Errorf("expenditure per person: expected 10000, got %f", avg.ExpenditurePerPerson)
	}
}

func TestStateAverageZeroDenominatorContributesZero(t *testing.T) {
	env := newTestEnv(t)
	env.addDistrict(t, "TA01", "Alpha", 23.0, 72.6, 100000)
	env.addDistrict(t, "TB01", "Beta", 21.1, 72.8, 50000)

	// Beta has no works taken up; its completion ratio counts as zero.
	env.addMetric(t, "TA01", 2025, 3, 100, 200, 8000, 80, 40, 4000, 1600000)
	env.addMetric(t, "TB01", 2025, 3, 50, 100, 4000, 0, 0, 1600, 1200000)

	avg, err := env.engine.StateAverageFor(context.Background(), 2025, 3)
	if err != nil {
		t.Fatalf("state average: %v", err)
	}
	// Mean of 50% and 0%.
	if avg.WorksCompletionRate != 25.0 {
		t.Errorf("completion rate: expected 25.0, got %f", avg.WorksCompletionRate)
	}
}

func TestPercentDelta(t *testing.T) {
	cases := []struct {
		district, state, want float64
	}{
		{120, 100, 20.0},
		{80, 100, -20.0},
		{100, 100, 0.0},
		{42, 0, 0.0},  // zero state value must not fault
		{0, 0, 0.0},
		{100, 3, 3233.3}, // rounded to one decimal
	}
	for _, tc := range cases {
		if got := PercentDelta(tc.district, tc.state); got != tc.want {
			t.Errorf("PercentDelta(%f, %f) = %f, want %f", tc.district, tc.state, got, tc.want)
		}
	}
}

func TestRank(t *testing.T) {
	env := newTestEnv(t)
	env.addDistrict(t, "TA01", "Alpha", 23.0, 72.6, 100000)
	env.addDistrict(t, "TB01", "Beta", 21.1, 72.8, 50000)
	env.addDistrict(t, "TC01", "Gamma", 22.3, 70.8, 80000)

	env.addMetric(t, "TA01", 2025, 3, 300, 600, 24000, 240, 120, 12000, 4800000)
	env.addMetric(t, "TB01", 2025, 3, 100, 200, 8000, 80, 40, 4000, 1600000)
	// Gamma has no data and must rank worst.

	ctx := context.Background()

	rank, total, err := env.engine.Rank(ctx, "TA01", MetricHouseholdsEmployed)
	if err != nil {
		t.Fatalf("rank TA01: %v", err)
	}
	if rank != 1 || total != 3 {
		t.Errorf("TA01: expected (1, 3), got (%d, %d)", rank, total)
	}

	rank, total, err = env.engine.Rank(ctx, "TB01", MetricHouseholdsEmployed)
	if err != nil {
		t.Fatalf("rank TB01: %v", err)
	}
	if rank != 2 || total != 3 {
		t.Errorf("TB01: expected (2, 3), got (%d, %d)", rank, total)
	}

	rank, total, err = env.engine.Rank(ctx, "TC01", MetricHouseholdsEmployed)
	if err != nil {
		t.Fatalf("rank TC01: %v", err)
	}
	if rank != 3 || total != 3 {
		t.Errorf("TC01: expected worst rank (3, 3), got (%d, %d)", rank, total)
	}
}

func TestRankUsesLatestPeriodPerDistrict(t *testing.T) {
	env := newTestEnv(t)
	env.addDistrict(t, "TA01", "Alpha", 23.0, 72.6, 100000)
	env.addDistrict(t, "TB01", "Beta", 21.1, 72.8, 50000)

	// Alpha led in February but Beta leads in its newer March record.
	env.addMetric(t, "TA01", 2025, 2, 500, 900, 36000, 400, 300, 18000, 7200000)
	env.addMetric(t, "TA01", 2025, 3, 100, 200, 8000, 80, 40, 4000, 1600000)
	env.addMetric(t, "TB01", 2025, 3, 300, 600, 24000, 240, 120, 12000, 4800000)

	rank, _, err := env.engine.Rank(context.Background(), "TB01", MetricHouseholdsEmployed)
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if rank != 1 {
		t.Errorf("expected TB01 to lead on latest records, got rank %d", rank)
	}
}

func TestCompareDegradesToSynthesizedData(t *testing.T) {
	env := newTestEnv(t)
	env.addDistrict(t, "TA01", "Alpha", 23.0, 72.6, 100000)
	env.addDistrict(t, "TB01", "Beta", 21.1, 72.8, 50000)

	// No performance data seeded at all: compare must still answer.
	c, err := env.engine.Compare(context.Background(), "TA01", 2025, 7)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}

	if c.District.DataSource != models.SourceSynthetic {
		t.Errorf("expected synthesized district record, got source %q", c.District.DataSource)
	}
	if c.DistrictRank < 1 || c.DistrictRank > c.TotalDistricts {
		t.Errorf("rank %d outside [1, %d]", c.DistrictRank, c.TotalDistricts)
	}
	if c.TotalDistricts != 2 {
		t.Errorf("expected 2 total districts, got %d", c.TotalDistricts)
	}
	if len(c.Percentages) != 4 {
		t.Errorf("expected 4 percentage deltas, got %d", len(c.Percentages))
	}
}

func TestCompareStateAverageOverSeededDistricts(t *testing.T) {
	env := newTestEnv(t)
	env.addDistrict(t, "TA01", "Alpha", 23.0, 72.6, 100000)
	env.addDistrict(t, "TB01", "Beta", 21.1, 72.8, 50000)

	env.addMetric(t, "TA01", 2025, 3, 100, 200, 8000, 80, 40, 4000, 1600000)
	env.addMetric(t, "TB01", 2025, 3, 50, 100, 4000, 40, 30, 1600, 1200000)

	c, err := env.engine.Compare(context.Background(), "TA01", 2025, 3)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}

	if c.StateAvg.HouseholdsEmployed != 75 {
		t.Errorf("state average households: expected 75, got %f", c.StateAvg.HouseholdsEmployed)
	}
	// Alpha's 100 against the mean of 75.
	if got := c.Percentages[MetricHouseholdsEmployed]; got != 33.3 {
		t.Errorf("households delta: expected 33.3, got %f", got)
	}
	if c.District.DataSource != models.SourceReal {
		t.Errorf("expected the stored record, got source %q", c.District.DataSource)
	}
}

func TestCompareWritesAnalyticsCache(t *testing.T) {
	env := newTestEnv(t)
	env.addDistrict(t, "TA01", "Alpha", 23.0, 72.6, 100000)
	env.addMetric(t, "TA01", 2025, 3, 100, 200, 8000, 80, 40, 4000, 1600000)

	ctx := context.Background()
	if _, err := env.engine.Compare(ctx, "TA01", 2025, 3); err != nil {
		t.Fatalf("compare: %v", err)
	}

	key := config.CacheKey("compare", "TA01", 2025, 3)
	if _, found := env.cache.Get(ctx, key); !found {
		t.Error("expected comparison to be cached in the analytics table")
	}
}
