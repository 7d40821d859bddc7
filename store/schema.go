package store

import (
	"context"
	"fmt"
)

// initSchema creates the two data tables plus the aggregate cache table. All
// statements are idempotent so a restart against an existing database is a
// no-op.
func (s *Store) initSchema(ctx context.Context) error {
	idCol := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if s.driver == "postgres" {
		idCol = "SERIAL PRIMARY KEY"
	}

	statements := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS districts (
			id %s,
			district_code TEXT UNIQUE NOT NULL,
			district_name TEXT NOT NULL,
			district_name_hindi TEXT,
			district_name_gujarati TEXT,
			state_code TEXT DEFAULT 'GJ',
			state_name TEXT DEFAULT 'Gujarat',
			state_name_hindi TEXT DEFAULT 'गुजरात',
			state_name_gujarati TEXT DEFAULT 'ગુજરાત',
			latitude REAL,
			longitude REAL,
			population BIGINT DEFAULT 0,
			total_households BIGINT DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`, idCol),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS performance_data (
			id %s,
			district_code TEXT NOT NULL REFERENCES districts (district_code),
			year INTEGER NOT NULL,
			month INTEGER NOT NULL,
			households_provided_employment BIGINT DEFAULT 0,
			persons_worked BIGINT DEFAULT 0,
			total_person_days BIGINT DEFAULT 0,
			sc_person_days BIGINT DEFAULT 0,
			st_person_days BIGINT DEFAULT 0,
			women_person_days BIGINT DEFAULT 0,
			total_expenditure REAL DEFAULT 0,
			works_taken_up BIGINT DEFAULT 0,
			works_completed BIGINT DEFAULT 0,
			avg_days_per_household REAL DEFAULT 0,
			data_source TEXT DEFAULT 'mock',
			last_updated TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (district_code, year, month)
		)`, idCol),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS analytics_cache (
			id %s,
			cache_key TEXT UNIQUE NOT NULL,
			cache_data TEXT NOT NULL,
			expires_at TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`, idCol),

		`CREATE INDEX IF NOT EXISTS idx_district_code ON districts (district_code)`,
		`CREATE INDEX IF NOT EXISTS idx_performance_district ON performance_data (district_code)`,
		`CREATE INDEX IF NOT EXISTS idx_performance_year_month ON performance_data (year, month)`,
		`CREATE INDEX IF NOT EXISTS idx_performance_composite ON performance_data (district_code, year, month)`,
		`CREATE INDEX IF NOT EXISTS idx_analytics_cache_key ON analytics_cache (cache_key)`,
		`CREATE INDEX IF NOT EXISTS idx_analytics_expires ON analytics_cache (expires_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}
