package store

import (
	"fmt"
	"hash/fnv"
	"math/rand"

	"github.com/rt1856/Manrega/models"
)

// defaultHouseholds scales synthesis for a district code that is not in the
// registry.
const defaultHouseholds = 200000

// synthesizeMetric derives plausible MGNREGA numbers for a period from the
// district's household count. The generator is seeded from the composite key,
// so the same (code, year, month) always produces identical values even
// before the record is persisted.
//
// Ratios follow the reference data distribution: 8-18% of households get
// employment, 1.5-2.2 persons work per employed household, each works 40-60
// days, SC/ST/women shares are 30-40%/20-30%/40-50% of person-days, and
// expenditure runs 200-300 rupees per person-day.
func synthesizeMetric(code string, year, month int, households int64) *models.MonthlyMetric {
	rng := rand.New(rand.NewSource(synthSeed(code, year, month)))

	employment := int64(float64(households) * (0.08 + 0.10*rng.Float64()))
	persons := int64(float64(employment) * (1.5 + 0.7*rng.Float64()))
	daysPerPerson := 40 + rng.Intn(21)
	personDays := persons * int64(daysPerPerson)

	return &models.MonthlyMetric{
		DistrictCode:        code,
		Year:                year,
		Month:               month,
		HouseholdsEmployed:  employment,
		PersonsWorked:       persons,
		TotalPersonDays:     personDays,
		SCPersonDays:        int64(float64(personDays) * (0.30 + 0.10*rng.Float64())),
		STPersonDays:        int64(float64(personDays) * (0.20 + 0.10*rng.Float64())),
		WomenPersonDays:     int64(float64(personDays) * (0.40 + 0.10*rng.Float64())),
		TotalExpenditure:    float64(personDays) * float64(200+rng.Intn(101)),
		WorksTakenUp:        int64(float64(employment) * (0.70 + 0.20*rng.Float64())),
		WorksCompleted:      int64(float64(employment) * (0.50 + 0.30*rng.Float64())),
		AvgDaysPerHousehold: float64(daysPerPerson),
		DataSource:          models.SourceSynthetic,
	}
}

func synthSeed(code string, year, month int) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%d|%d", code, year, month)
	return int64(h.Sum64())
}
