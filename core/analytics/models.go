package analytics

import (
	"github.com/greencampus/greencampus/core"
	"github.com/greencampus/greencampus/core/goal"
	"github.com/greencampus/greencampus/core/resource"
)

// Stats sums and averages usage over a set of records. Zero-valued when the set is empty.
type Stats struct {
	TotalElectricity float64 `json:"totalElectricity"`
	TotalWater       float64 `json:"totalWater"`
	TotalWaste       float64 `json:"totalWaste"`
	AvgElectricity   float64 `json:"avgElectricity"`
	AvgWater         float64 `json:"avgWater"`
	AvgWaste         float64 `json:"avgWaste"`
}

func (s Stats) Averages() Averages {
	return Averages{AvgElectricity: s.AvgElectricity, AvgWater: s.AvgWater, AvgWaste: s.AvgWaste}
}

// CampusStats are Stats over the whole campus along with the number of records they cover.
type CampusStats struct {
	Stats
	RecordCount int `json:"recordCount"`
}

type Averages struct {
	AvgElectricity float64 `json:"avgElectricity"`
	AvgWater       float64 `json:"avgWater"`
	AvgWaste       float64 `json:"avgWaste"`
}

type Totals struct {
	TotalElectricity float64 `json:"totalElectricity"`
	TotalWater       float64 `json:"totalWater"`
	TotalWaste       float64 `json:"totalWaste"`
}

// Distribution holds the grand totals used for proportion displays.
type Distribution struct {
	Electricity float64 `json:"electricity"`
	Water       float64 `json:"water"`
	Waste       float64 `json:"waste"`
}

// MonthlyTrend is the usage summed over one (month, year).
type MonthlyTrend struct {
	Month       int     `json:"month"`
	Year        int     `json:"year"`
	Electricity float64 `json:"electricity"`
	Water       float64 `json:"water"`
	Waste       float64 `json:"waste"`
}

// Progress is a Goal along with the campus total it is measured against.
type Progress struct {
	goal.Goal
	Actual     float64 `json:"actual"`
	Percentage float64 `json:"percentage"`
}

type Suggestion struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// PeriodFilter restricts aggregates to an exact month and/or year. Nil fields select everything.
type PeriodFilter struct {
	Month *int
	Year  *int
}

// ParsePeriodFilter reads raw query values. Values that are not integers are ignored.
func ParsePeriodFilter(month, year string) PeriodFilter {
	return PeriodFilter{
		Month: core.ParseOptionalInt(month),
		Year:  core.ParseOptionalInt(year),
	}
}

func (f PeriodFilter) records() resource.Filter {
	return resource.Filter{Month: f.Month, Year: f.Year}
}
