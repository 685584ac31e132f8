package model

// Label bands are part of the boundary contract: downstream consumers display
// these exact strings, so the thresholds here must not drift.

// CompatibilityLevel maps a match score to its display band.
func CompatibilityLevel(score float64) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 70:
		return "Very Good"
	case score >= 60:
		return "Good"
	case score >= 40:
		return "Fair"
	default:
		return "Poor"
	}
}

// ConnectionRecommendation maps a match score to advisory copy.
func ConnectionRecommendation(score float64) string {
	switch {
	case score >= 75:
		return "Highly recommended connection"
	case score >= 60:
		return "Promising networking opportunity"
	case score >= 40:
		return "Consider context before connecting"
	default:
		return "Low compatibility - proceed with caution"
	}
}

// MeetingGrade maps a meeting-success probability to a letter grade.
func MeetingGrade(probability float64) string {
	switch {
	case probability >= 85:
		return "A+"
	case probability >= 75:
		return "A"
	case probability >= 65:
		return "B+"
	case probability >= 55:
		return "B"
	default:
		return "C"
	}
}

// RiskLevel maps a deal-success probability (0-100) to a risk band.
func RiskLevel(probability float64) string {
	switch {
	case probability >= 70:
		return "Low"
	case probability >= 50:
		return "Medium"
	default:
		return "High"
	}
}

// RecommendedAction maps a deal-success probability (0-100) to advisory copy.
func RecommendedAction(probability float64) string {
	switch {
	case probability >= 70:
		return "Proceed with confidence"
	case probability >= 50:
		return "Proceed with standard precautions"
	default:
		return "Consider additional risk mitigation"
	}
}
