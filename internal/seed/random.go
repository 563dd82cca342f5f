package seed

import (
	"fmt"
	"math/rand"

	"github.com/orderpay/schedule/internal/domain"
	"github.com/orderpay/schedule/internal/schedule"
)

var bonusSteps = []float64{0, 0, 0, 10, 20, 30}

// RandomMonth generates a plausible dense month: most employees work most
// days and every date gets one shared bonus.
func RandomMonth(rng *rand.Rand, month schedule.MonthKey, employees []domain.Employee) []domain.DayRecord {
	records := schedule.BuildDefaultSchedule(month, employees)

	bonusByDate := map[string]float64{}
	for i := range records {
		r := &records[i]

		bonus, ok := bonusByDate[r.Date]
		if !ok {
			bonus = bonusSteps[rng.Intn(len(bonusSteps))]
			bonusByDate[r.Date] = bonus
		}
		r.Bonus = bonus

		// roughly one day off in four
		if rng.Intn(4) == 0 {
			continue
		}

		start := 8 + rng.Intn(4)
		r.Shift1Start = clock(start, 0)
		r.Shift1End = clock(start+4+rng.Intn(5), 30*rng.Intn(2))

		if rng.Intn(5) == 0 {
			start2 := 14 + rng.Intn(4)
			r.HasShift2 = true
			r.Shift2Start = clock(start2, 0)
			r.Shift2End = clock(start2+2+rng.Intn(3), 0)
		}

		r.Orders = rng.Intn(25)
	}

	return records
}

func clock(h, m int) string {
	return fmt.Sprintf("%02d:%02d", h, m)
}
