package domain

// ValueCategory is the categorical label derived from a final value rating.
// The thresholds are part of the public contract; the colors and copy shown
// for each band are a frontend concern.
type ValueCategory string

const (
	ValueExcellent ValueCategory = "excellent"
	ValueGood      ValueCategory = "good"
	ValueFair      ValueCategory = "fair"
	ValuePoor      ValueCategory = "poor"
)

// CategoryForRating maps a final value rating (5.0–10.0) to its label.
func CategoryForRating(rating float64) ValueCategory {
	switch {
	case rating >= 9.5:
		return ValueExcellent
	case rating >= 7:
		return ValueGood
	case rating >= 6:
		return ValueFair
	default:
		return ValuePoor
	}
}
