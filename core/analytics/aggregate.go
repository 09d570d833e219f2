package analytics

import (
	"math"
	"sort"

	"github.com/greencampus/greencampus/core/goal"
	"github.com/greencampus/greencampus/core/resource"
)

// MaxTrends is the number of most recent months reported by MonthlyTrends.
const MaxTrends = 12

// Summarize sums and averages the usage of the records.
func Summarize(records []resource.Record) CampusStats {
	var cs CampusStats
	for _, rec := range records {
		cs.TotalElectricity += rec.ElectricityUsage
		cs.TotalWater += rec.WaterConsumption
		cs.TotalWaste += rec.WasteGenerated
	}
	cs.RecordCount = len(records)

	if cs.RecordCount > 0 {
		n := float64(cs.RecordCount)
		cs.AvgElectricity = cs.TotalElectricity / n
		cs.AvgWater = cs.TotalWater / n
		cs.AvgWaste = cs.TotalWaste / n
	}
	return cs
}

// Total sums the usage of the records.
func Total(records []resource.Record) Totals {
	s := Summarize(records)
	return Totals{TotalElectricity: s.TotalElectricity, TotalWater: s.TotalWater, TotalWaste: s.TotalWaste}
}

// Distribute sums the usage of the records.
func Distribute(records []resource.Record) Distribution {
	t := Total(records)
	return Distribution{Electricity: t.TotalElectricity, Water: t.TotalWater, Waste: t.TotalWaste}
}

// Trends groups records by (month, year), most recent first, keeping at most `limit` groups.
func Trends(records []resource.Record, limit int) []MonthlyTrend {
	type period struct{ month, year int }

	byPeriod := make(map[period]*MonthlyTrend)
	for _, rec := range records {
		key := period{month: rec.Month, year: rec.Year}
		t, ok := byPeriod[key]
		if !ok {
			t = &MonthlyTrend{Month: rec.Month, Year: rec.Year}
			byPeriod[key] = t
		}
		t.Electricity += rec.ElectricityUsage
		t.Water += rec.WaterConsumption
		t.Waste += rec.WasteGenerated
	}

	trends := make([]MonthlyTrend, 0, len(byPeriod))
	for _, t := range byPeriod {
		trends = append(trends, *t)
	}
	sort.Slice(trends, func(i, j int) bool {
		if trends[i].Year != trends[j].Year {
			return trends[i].Year > trends[j].Year
		}
		return trends[i].Month > trends[j].Month
	})
	if limit >= 0 && len(trends) > limit {
		trends = trends[:limit]
	}
	return trends
}

// GoalProgress measures each goal against the matching campus total, keeping the goals order.
// The percentage is capped at 100 and is 0 for goals without a positive target.
func GoalProgress(goals []goal.Goal, totals Totals) []Progress {
	progress := make([]Progress, 0, len(goals))
	for _, g := range goals {
		var actual float64
		switch g.TargetType {
		case goal.TypeEnergy:
			actual = totals.TotalElectricity
		case goal.TypeWater:
			actual = totals.TotalWater
		case goal.TypeWaste:
			actual = totals.TotalWaste
		}

		var pct float64
		if g.TargetValue > 0 {
			pct = math.Min(actual/g.TargetValue*100, 100)
		}
		progress = append(progress, Progress{Goal: g, Actual: actual, Percentage: pct})
	}
	return progress
}
