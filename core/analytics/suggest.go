package analytics

// Suggestion thresholds, compared against average usage per record.
const (
	ElectricityThreshold = 500
	WaterThreshold       = 300
	WasteThreshold       = 50
)

// Suggestion types
const (
	TypeElectricity = "electricity"
	TypeWater       = "water"
	TypeWaste       = "waste"
)

var (
	electricityAdvice = "High electricity usage. Switch to LED bulbs and unplug devices."
	waterAdvice       = "High water consumption. Fix leaks and use water-saving fixtures."
	wasteAdvice       = "High waste generation. Practice waste segregation and recycling."
)

// Suggest returns one piece of advice per average above its threshold.
// The result is empty, never nil, when usage is within limits.
func Suggest(avg Averages) []Suggestion {
	suggestions := make([]Suggestion, 0, 3)
	if avg.AvgElectricity > ElectricityThreshold {
		suggestions = append(suggestions, Suggestion{Type: TypeElectricity, Message: electricityAdvice})
	}
	if avg.AvgWater > WaterThreshold {
		suggestions = append(suggestions, Suggestion{Type: TypeWater, Message: waterAdvice})
	}
	if avg.AvgWaste > WasteThreshold {
		suggestions = append(suggestions, Suggestion{Type: TypeWaste, Message: wasteAdvice})
	}
	return suggestions
}
