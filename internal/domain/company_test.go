package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hejazi/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 30, 0, 0, time.UTC)
}

func TestCompany_NextEvaluationMonth(t *testing.T) {
	now := date(2026, time.March, 17)

	tests := []struct {
		name     string
		last     *time.Time
		interval int
		want     time.Time
	}{
		{"never evaluated", nil, 3, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)},
		{"monthly", ptr(date(2026, time.February, 28)), 1, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)},
		{"zero interval defaults to monthly", ptr(date(2026, time.January, 31)), 0, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)},
		{"quarterly across year end", ptr(date(2025, time.November, 30)), 3, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)},
		{"december monthly", ptr(date(2025, time.December, 31)), 1, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{"yearly", ptr(date(2025, time.June, 15)), 12, time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &domain.Company{LastEvaluatedAt: tt.last, EvaluationIntervalMonths: tt.interval}
			assert.Equal(t, tt.want, c.NextEvaluationMonth(now))
		})
	}
}

func TestScorePercentage(t *testing.T) {
	assert.Equal(t, 66.67, domain.ScorePercentage(2, 3))
	assert.Equal(t, 100.0, domain.ScorePercentage(10, 10))
	assert.Equal(t, 0.0, domain.ScorePercentage(5, 0))
}

func TestRiskRating(t *testing.T) {
	tests := []struct {
		likelihood, impact int
		rating             int
		level              domain.RiskLevel
	}{
		{1, 1, 1, domain.RiskLow},
		{2, 2, 4, domain.RiskLow},
		{1, 5, 5, domain.RiskMedium},
		{3, 3, 9, domain.RiskMedium},
		{2, 5, 10, domain.RiskHigh},
		{4, 4, 16, domain.RiskHigh},
		{4, 5, 20, domain.RiskCritical},
		{5, 5, 25, domain.RiskCritical},
	}
	for _, tt := range tests {
		rating, level, err := domain.RiskRating(tt.likelihood, tt.impact)
		assert.NoError(t, err)
		assert.Equal(t, tt.rating, rating)
		assert.Equal(t, tt.level, level)
	}

	_, _, err := domain.RiskRating(0, 3)
	assert.ErrorIs(t, err, domain.ErrInvalidRating)
	_, _, err = domain.RiskRating(3, 6)
	assert.ErrorIs(t, err, domain.ErrInvalidRating)
}

func ptr(t time.Time) *time.Time { return &t }
