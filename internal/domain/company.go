package domain

import (
	"math"
	"time"
)

// DefaultEvaluationIntervalMonths applies when a company has no interval set.
const DefaultEvaluationIntervalMonths = 1

// MonthStart truncates t to the first day of its month in UTC.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// NextEvaluationMonth returns the first day of the month in which the
// company is next due. A company that was never evaluated is due in the
// month of now.
func (c *Company) NextEvaluationMonth(now time.Time) time.Time {
	if c.LastEvaluatedAt == nil {
		return MonthStart(now)
	}
	interval := c.EvaluationIntervalMonths
	if interval <= 0 {
		interval = DefaultEvaluationIntervalMonths
	}
	// Adding months to day 1 never overflows into the following month.
	return MonthStart(*c.LastEvaluatedAt).AddDate(0, interval, 0)
}

// ScorePercentage returns total/max as a percentage rounded to two decimals.
func ScorePercentage(total, maxScore int) float64 {
	if maxScore <= 0 {
		return 0
	}
	return math.Round(float64(total)/float64(maxScore)*10000) / 100
}
