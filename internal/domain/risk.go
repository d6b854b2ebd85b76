package domain

// Risk ratings are the product of likelihood and impact, each on a 1..5 scale.
const (
	MinRiskFactor = 1
	MaxRiskFactor = 5
)

// RiskRating validates likelihood and impact and returns their product and
// level.
func RiskRating(likelihood, impact int) (int, RiskLevel, error) {
	if likelihood < MinRiskFactor || likelihood > MaxRiskFactor ||
		impact < MinRiskFactor || impact > MaxRiskFactor {
		return 0, "", ErrInvalidRating
	}
	rating := likelihood * impact
	return rating, LevelForRating(rating), nil
}

// LevelForRating buckets a rating.
func LevelForRating(rating int) RiskLevel {
	switch {
	case rating <= 4:
		return RiskLow
	case rating <= 9:
		return RiskMedium
	case rating <= 16:
		return RiskHigh
	default:
		return RiskCritical
	}
}
