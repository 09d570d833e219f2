package resource

import (
	"sort"
	"time"

	"github.com/greencampus/greencampus/core"
	"github.com/greencampus/greencampus/core/user"
)

const MinYear = 2020

// MaxUsage bounds every usage figure so campus-wide sums stay finite.
const MaxUsage = 1e9

// Record is one user's self-reported usage for a month.
// Several records may exist for the same (user, month, year).
type Record struct {
	ID               string    `json:"id" firestore:"-" db:"id"`
	UserID           string    `json:"userId" firestore:"userId" db:"user_id"`
	ElectricityUsage float64   `json:"electricityUsage" firestore:"electricityUsage" db:"electricity_usage"`
	WaterConsumption float64   `json:"waterConsumption" firestore:"waterConsumption" db:"water_consumption"`
	WasteGenerated   float64   `json:"wasteGenerated" firestore:"wasteGenerated" db:"waste_generated"`
	Month            int       `json:"month" firestore:"month" db:"month"`
	Year             int       `json:"year" firestore:"year" db:"year"`
	CreatedAt        time.Time `json:"createdAt" firestore:"createdAt" db:"created_at"` // UTC
	UpdatedAt        time.Time `json:"updatedAt" firestore:"updatedAt" db:"updated_at"` // UTC
}

// Entry is a Record with its owner attached. User is nil when the owner no longer exists.
type Entry struct {
	Record
	User *user.Summary `json:"user"`
}

// NewRecord contains information needed to create a new Record.
type NewRecord struct {
	ElectricityUsage *float64 `json:"electricityUsage" validate:"required,gte=0,lte=1000000000"`
	WaterConsumption *float64 `json:"waterConsumption" validate:"required,gte=0,lte=1000000000"`
	WasteGenerated   *float64 `json:"wasteGenerated" validate:"required,gte=0,lte=1000000000"`
	Month            *int     `json:"month" validate:"required,min=1,max=12"`
	Year             *int     `json:"year" validate:"required,min=2020"`
}

func (nr *NewRecord) Validate(v *core.Validator) error { return v.Struct(nr) }

// UpdateRecord defines what information may be provided to modify an existing Record.
type UpdateRecord struct {
	ElectricityUsage *float64 `json:"electricityUsage" validate:"omitempty,gte=0,lte=1000000000"`
	WaterConsumption *float64 `json:"waterConsumption" validate:"omitempty,gte=0,lte=1000000000"`
	WasteGenerated   *float64 `json:"wasteGenerated" validate:"omitempty,gte=0,lte=1000000000"`
	Month            *int     `json:"month" validate:"omitempty,min=1,max=12"`
	Year             *int     `json:"year" validate:"omitempty,min=2020"`
}

func (ur *UpdateRecord) Validate(v *core.Validator) error { return v.Struct(ur) }

func (ur UpdateRecord) apply(rec Record) Record {
	if ur.ElectricityUsage != nil {
		rec.ElectricityUsage = *ur.ElectricityUsage
	}
	if ur.WaterConsumption != nil {
		rec.WaterConsumption = *ur.WaterConsumption
	}
	if ur.WasteGenerated != nil {
		rec.WasteGenerated = *ur.WasteGenerated
	}
	if ur.Month != nil {
		rec.Month = *ur.Month
	}
	if ur.Year != nil {
		rec.Year = *ur.Year
	}
	return rec
}

// Filter selects records by exact match on its non-empty fields.
type Filter struct {
	UserID string
	Month  *int
	Year   *int
}

// NewFilter builds a Filter from raw query values; unparsable values select everything.
func NewFilter(month, year string) Filter {
	return Filter{
		Month: core.ParseOptionalInt(month),
		Year:  core.ParseOptionalInt(year),
	}
}

func (f Filter) Match(rec Record) bool {
	if f.UserID != "" && rec.UserID != f.UserID {
		return false
	}
	if f.Month != nil && rec.Month != *f.Month {
		return false
	}
	if f.Year != nil && rec.Year != *f.Year {
		return false
	}
	return true
}

// SortByPeriod sorts records by year then month, most recent first.
func SortByPeriod(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Year != records[j].Year {
			return records[i].Year > records[j].Year
		}
		return records[i].Month > records[j].Month
	})
}

// SortByCreated sorts records by creation time, most recent first.
func SortByCreated(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
}

// Newest returns the `n` most recently created records, leaving `records` untouched.
func Newest(records []Record, n int) []Record {
	res := make([]Record, len(records))
	copy(res, records)
	SortByCreated(res)
	if len(res) > n {
		res = res[:n]
	}
	return res
}
