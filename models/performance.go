package models

// Data provenance tags carried in MonthlyMetric.DataSource.
const (
	SourceReal      = "real"
	SourceSample    = "sample"
	SourceSynthetic = "synthetic"
)

// MonthlyMetric holds one district's MGNREGA performance numbers for a single
// (year, month) period. The composite key (DistrictCode, Year, Month) is
// unique in the store; numeric fields default to zero and are never negative.
type MonthlyMetric struct {
	DistrictCode        string  `json:"district_code"`
	Year                int     `json:"year"`
	Month               int     `json:"month"`
	HouseholdsEmployed  int64   `json:"households_provided_employment"`
	PersonsWorked       int64   `json:"persons_worked"`
	TotalPersonDays     int64   `json:"total_person_days"`
	SCPersonDays        int64   `json:"sc_person_days"`
	STPersonDays        int64   `json:"st_person_days"`
	WomenPersonDays     int64   `json:"women_person_days"`
	TotalExpenditure    float64 `json:"total_expenditure"`
	WorksTakenUp        int64   `json:"works_taken_up"`
	WorksCompleted      int64   `json:"works_completed"`
	AvgDaysPerHousehold float64 `json:"avg_days_per_household"`
	DataSource          string  `json:"data_source"`
}
