package goal

import (
	"time"

	"github.com/greencampus/greencampus/core"
)

// Target types
const (
	TypeEnergy = "energy"
	TypeWater  = "water"
	TypeWaste  = "waste"
)

var AllTypes = []string{TypeEnergy, TypeWater, TypeWaste}

// MaxTargetValue bounds targets the same way record usages are bounded.
const MaxTargetValue = 1e9

// Goal is a campus-wide sustainability target.
type Goal struct {
	ID          string    `json:"id" firestore:"-" db:"id"`
	TargetType  string    `json:"targetType" firestore:"targetType" db:"target_type"`
	TargetValue float64   `json:"targetValue" firestore:"targetValue" db:"target_value"`
	Description string    `json:"description" firestore:"description" db:"description"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt" db:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updatedAt" firestore:"updatedAt" db:"updated_at"` // UTC
}

// NewGoal contains information needed to create a new Goal.
type NewGoal struct {
	TargetType  string   `json:"targetType" validate:"required,oneof=energy water waste"`
	TargetValue *float64 `json:"targetValue" validate:"required,gte=0,lte=1000000000"`
	Description string   `json:"description" validate:"required,notblank"`
}

func (ng *NewGoal) Validate(v *core.Validator) error {
	ng.TargetType = core.CleanString(ng.TargetType, true /* lower */)
	ng.Description = core.CleanString(ng.Description)
	return v.Struct(ng)
}
