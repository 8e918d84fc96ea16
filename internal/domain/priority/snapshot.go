package priority

import (
	"math"
	"time"
)

// Rating is the qualitative band for a weekly efficiency score.
type Rating string

// Efficiency ratings, best first.
const (
	RatingElite            Rating = "elite"
	RatingExcellent        Rating = "excellent"
	RatingGood             Rating = "good"
	RatingAverage          Rating = "average"
	RatingNeedsImprovement Rating = "needs_improvement"
)

// WeekBounds returns the ISO week window containing now: Monday
// 00:00:00 through Sunday 23:59:59 in now's location.
func WeekBounds(now time.Time) (start, end time.Time) {
	// time.Weekday counts from Sunday; shift so Monday is day zero.
	daysSinceMonday := (int(now.Weekday()) + 6) % 7

	y, m, d := now.AddDate(0, 0, -daysSinceMonday).Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	sunday := start.AddDate(0, 0, 6)
	end = time.Date(sunday.Year(), sunday.Month(), sunday.Day(), 23, 59, 59, 0, now.Location())
	return start, end
}

// EfficiencyScore computes the 0-100 weekly efficiency score: a base of
// 50, up to 25 points for completion volume, a response-speed bonus,
// and up to 10 points for tier1 volume. hasResponse is false when no
// consultation completions happened this week, in which case the
// response bonus is skipped entirely.
func EfficiencyScore(
	totalCompleted, tier1Completed int,
	avgConsultationResponse time.Duration,
	hasResponse bool,
) int {
	score := 50.0

	score += math.Min(25, float64(totalCompleted)*2.5)

	if hasResponse {
		switch {
		case avgConsultationResponse < EliteResponseTime:
			score += 15
		case avgConsultationResponse < ExcellentResponseTime:
			score += 10
		}
	}

	score += math.Min(10, float64(tier1Completed)*2)

	final := int(math.Round(score))
	if final < 0 {
		return 0
	}
	if final > 100 {
		return 100
	}
	return final
}

// RatingForScore maps an efficiency score to its qualitative band.
func RatingForScore(score int) Rating {
	switch {
	case score >= 90:
		return RatingElite
	case score >= 80:
		return RatingExcellent
	case score >= 70:
		return RatingGood
	case score >= 60:
		return RatingAverage
	default:
		return RatingNeedsImprovement
	}
}

// ResponseBenchmarkRatio compares an average consultation response time
// against the 24-hour benchmark: 100 means at benchmark, above 100
// means faster. Returns 0 when avg is non-positive (no data).
func ResponseBenchmarkRatio(avg time.Duration) int {
	if avg <= 0 {
		return 0
	}
	return int(math.Round(AverageResponseTime.Seconds() / avg.Seconds() * 100))
}
