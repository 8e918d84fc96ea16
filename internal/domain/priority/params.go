// Package priority implements the scoring policy of the revenue
// protection engine: per-task-type score formulas, the score-to-level
// banding, the deadline-proximity multiplier, and the benchmark
// constants used by the weekly snapshot. Everything here is pure
// computation over an injected clock; data access lives in the
// taskengine service.
package priority

import "time"

// Params defines the tunable constants of the scoring policy. The
// defaults encode the production heuristics; tests and future tuning
// can override individual values.
type Params struct {
	// MaxScore is the uniform upper clamp applied to every score.
	MaxScore int

	// ViewedCapScore caps consultations the provider has already opened
	// but not answered, once ViewedCapAfter has elapsed. An opened
	// request is less likely to be forgotten, so it yields the top
	// slots to unseen ones.
	ViewedCapScore int
	ViewedCapAfter time.Duration

	// JanuaryBoostFactor inflates deposit-collection scores during
	// January, the peak no-show month.
	JanuaryBoostFactor float64

	// FollowUpMinAge suppresses follow-up tasks for consultations
	// answered less than this long ago.
	FollowUpMinAge time.Duration

	// StaleConversationMinAge is the quiet period before a thread where
	// the provider spoke last becomes a task.
	StaleConversationMinAge time.Duration

	// DepositWindow bounds how far ahead deposit-collection looks.
	DepositWindow time.Duration

	// ConfirmationWindow bounds how far ahead confirmation reminders look.
	ConfirmationWindow time.Duration

	// OccasionWindowDays is the lookahead, in days, for birthday and
	// anniversary outreach (inclusive of today).
	OccasionWindowDays int

	// HealedPhotoMinAge and HealedPhotoMaxAge bound the window after a
	// completed session in which a healed-photo request makes sense.
	HealedPhotoMinAge time.Duration
	HealedPhotoMaxAge time.Duration
}

// NewDefaultParams returns the production scoring constants.
func NewDefaultParams() *Params {
	return &Params{
		MaxScore:                1000,
		ViewedCapScore:          700,
		ViewedCapAfter:          2 * time.Hour,
		JanuaryBoostFactor:      1.2,
		FollowUpMinAge:          24 * time.Hour,
		StaleConversationMinAge: 48 * time.Hour,
		DepositWindow:           14 * 24 * time.Hour,
		ConfirmationWindow:      48 * time.Hour,
		OccasionWindowDays:      7,
		HealedPhotoMinAge:       14 * 24 * time.Hour,
		HealedPhotoMaxAge:       30 * 24 * time.Hour,
	}
}

// Benchmark constants for the weekly snapshot. These are fixed across
// providers and used only for comparative reporting, never for task
// scoring.
const (
	// Response-time benchmarks for answering a new consultation.
	EliteResponseTime     = 15 * time.Minute
	ExcellentResponseTime = time.Hour
	GoodResponseTime      = 4 * time.Hour
	AverageResponseTime   = 24 * time.Hour

	// Completion-rate bands (percent of surfaced tasks completed).
	EliteCompletionRate     = 90
	ExcellentCompletionRate = 80
	GoodCompletionRate      = 70
	AverageCompletionRate   = 65

	// Follow-up-rate bands (percent of follow-up tasks acted on).
	EliteFollowUpRate     = 100
	ExcellentFollowUpRate = 90
	GoodFollowUpRate      = 75
	AverageFollowUpRate   = 60
)
