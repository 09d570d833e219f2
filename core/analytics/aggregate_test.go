package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/greencampus/greencampus/core/goal"
	"github.com/greencampus/greencampus/core/resource"
)

func record(electricity, water, waste float64, month, year int) resource.Record {
	return resource.Record{
		ElectricityUsage: electricity,
		WaterConsumption: water,
		WasteGenerated:   waste,
		Month:            month,
		Year:             year,
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name    string
		records []resource.Record
		want    CampusStats
	}{
		{name: "no records", want: CampusStats{}},
		{
			name:    "single record",
			records: []resource.Record{record(120, 40, 6, 1, 2024)},
			want: CampusStats{
				Stats: Stats{
					TotalElectricity: 120, TotalWater: 40, TotalWaste: 6,
					AvgElectricity: 120, AvgWater: 40, AvgWaste: 6,
				},
				RecordCount: 1,
			},
		},
		{
			name: "sum & average",
			records: []resource.Record{
				record(100, 10, 0, 1, 2024),
				record(200, 20, 0, 2, 2024),
				record(300, 30, 0, 3, 2024),
			},
			want: CampusStats{
				Stats: Stats{
					TotalElectricity: 600, TotalWater: 60,
					AvgElectricity: 200, AvgWater: 20,
				},
				RecordCount: 3,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summarize(tt.records))
		})
	}
}

func TestTotalAndDistribute(t *testing.T) {
	records := []resource.Record{
		record(100, 10, 1, 1, 2024),
		record(50.5, 5, 0.5, 1, 2023),
	}
	assert.Equal(t, Totals{TotalElectricity: 150.5, TotalWater: 15, TotalWaste: 1.5}, Total(records))
	assert.Equal(t, Distribution{Electricity: 150.5, Water: 15, Waste: 1.5}, Distribute(records))
	assert.Equal(t, Totals{}, Total(nil))
}

func TestTrends(t *testing.T) {
	t.Run("grouped & sorted", func(t *testing.T) {
		records := []resource.Record{
			record(1, 1, 1, 3, 2023),
			record(10, 10, 10, 1, 2024),
			record(5, 5, 5, 12, 2023),
			record(20, 20, 20, 1, 2024),
		}
		want := []MonthlyTrend{
			{Month: 1, Year: 2024, Electricity: 30, Water: 30, Waste: 30},
			{Month: 12, Year: 2023, Electricity: 5, Water: 5, Waste: 5},
			{Month: 3, Year: 2023, Electricity: 1, Water: 1, Waste: 1},
		}
		assert.Equal(t, want, Trends(records, MaxTrends))
	})

	t.Run("capped at the most recent months", func(t *testing.T) {
		var records []resource.Record
		for year := 2022; year <= 2024; year++ {
			for month := 1; month <= 12; month++ {
				records = append(records, record(float64(month), 0, 0, month, year))
			}
		}
		got := Trends(records, MaxTrends)
		if assert.Len(t, got, MaxTrends) {
			assert.Equal(t, MonthlyTrend{Month: 12, Year: 2024, Electricity: 12}, got[0])
			assert.Equal(t, MonthlyTrend{Month: 1, Year: 2024, Electricity: 1}, got[MaxTrends-1])
		}
		for i := 1; i < len(got); i++ {
			prev, curr := got[i-1], got[i]
			assert.True(t, prev.Year > curr.Year || (prev.Year == curr.Year && prev.Month > curr.Month),
				"trends must be strictly descending: %v then %v", prev, curr)
		}
	})

	t.Run("empty", func(t *testing.T) {
		got := Trends(nil, MaxTrends)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestGoalProgress(t *testing.T) {
	totals := Totals{TotalElectricity: 600, TotalWater: 1500, TotalWaste: 40}
	goals := []goal.Goal{
		{ID: "1", TargetType: goal.TypeWater, TargetValue: 3000},
		{ID: "2", TargetType: goal.TypeEnergy, TargetValue: 300},
		{ID: "3", TargetType: goal.TypeWaste, TargetValue: 0},
		{ID: "4", TargetType: goal.TypeWaste, TargetValue: 160},
	}
	want := []Progress{
		{Goal: goals[0], Actual: 1500, Percentage: 50},
		{Goal: goals[1], Actual: 600, Percentage: 100}, // clamped
		{Goal: goals[2], Actual: 40, Percentage: 0},    // no target
		{Goal: goals[3], Actual: 40, Percentage: 25},
	}
	got := GoalProgress(goals, totals)
	assert.Equal(t, want, got)
	for _, p := range got {
		assert.True(t, p.Percentage >= 0 && p.Percentage <= 100, "percentage out of range: %v", p.Percentage)
	}

	assert.Equal(t, []Progress{}, GoalProgress(nil, totals))
}

func TestParsePeriodFilter(t *testing.T) {
	f := ParsePeriodFilter("3", "2024")
	if assert.NotNil(t, f.Month) && assert.NotNil(t, f.Year) {
		assert.Equal(t, 3, *f.Month)
		assert.Equal(t, 2024, *f.Year)
	}

	f = ParsePeriodFilter("march", "")
	assert.Nil(t, f.Month)
	assert.Nil(t, f.Year)
}
